// Package testutil wires an in-memory database and token helpers for
// package tests.
package testutil

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"blog-backend/internal/auth"
	"blog-backend/internal/config"
	"blog-backend/internal/database"
	"blog-backend/internal/models"
	"blog-backend/internal/rbac"

	"github.com/glebarez/sqlite"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const (
	TestSecret   = "test-secret-test-secret-test-secret!"
	TestPassword = "password123"
	TenantID     = 1
)

// NewDB opens a fresh in-memory sqlite database with the full schema and
// points the global database.DB at it for handler code.
func NewDB(t *testing.T) *gorm.DB {
	t.Helper()

	// A named shared-cache DSN keeps every pooled connection on the same
	// in-memory database while isolating tests from each other.
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	database.DB = db
	return db
}

// Config returns a config suitable for handler tests.
func Config(t *testing.T) *config.Config {
	t.Helper()
	return &config.Config{
		HTTPPort:    "0",
		JWTSecret:   TestSecret,
		TenantID:    TenantID,
		UploadPath:  t.TempDir(),
		CORSOrigins: "*",
	}
}

// NewUser creates an active user with TestPassword and, when roleName is
// non-empty, assigns the role with its default permission grants.
func NewUser(t *testing.T, db *gorm.DB, name, email, roleName string) *models.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte(TestPassword), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	user := &models.User{Name: name, Email: email, PasswordHash: string(hash), IsActive: true}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("create user: %v", err)
	}

	if roleName != "" {
		role, err := rbac.EnsureRole(db, roleName)
		if err != nil {
			t.Fatalf("ensure role: %v", err)
		}
		if err := rbac.Assign(db, user.ID, role.ID); err != nil {
			t.Fatalf("assign role: %v", err)
		}
	}
	return user
}

// NewSuperAdmin creates a superadmin at the given permissions level,
// creating the type on the fly. Level 0 means no type.
func NewSuperAdmin(t *testing.T, db *gorm.DB, email string, level int, active bool) *models.SuperAdmin {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte(TestPassword), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	admin := &models.SuperAdmin{
		Name:         "Admin " + email,
		Email:        email,
		PasswordHash: string(hash),
		IsActive:     active,
	}
	if level > 0 {
		adminType := &models.SuperAdminType{}
		err := db.Where(models.SuperAdminType{Name: fmt.Sprintf("level-%d", level)}).
			Attrs(models.SuperAdminType{PermissionsLevel: level}).
			FirstOrCreate(adminType).Error
		if err != nil {
			t.Fatalf("create admin type: %v", err)
		}
		admin.AdminTypeID = &adminType.ID
	}
	if err := db.Create(admin).Error; err != nil {
		t.Fatalf("create superadmin: %v", err)
	}
	return admin
}

// UserToken mints a bearer token for a regular user.
func UserToken(t *testing.T, user *models.User) string {
	t.Helper()
	token, err := auth.GenerateToken(TestSecret, user.ID, user.Email, auth.KindUser)
	if err != nil {
		t.Fatalf("generate token: %v", err)
	}
	return token
}

// AdminToken mints a bearer token for a superadmin.
func AdminToken(t *testing.T, admin *models.SuperAdmin) string {
	t.Helper()
	token, err := auth.GenerateToken(TestSecret, admin.ID, admin.Email, auth.KindSuperAdmin)
	if err != nil {
		t.Fatalf("generate token: %v", err)
	}
	return token
}

// NewApp builds a fiber app with the same error handler the server uses, so
// handler errors surface as the JSON envelope clients see.
func NewApp() *fiber.App {
	return fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			if e, ok := err.(*fiber.Error); ok {
				return c.Status(e.Code).JSON(fiber.Map{"error": e.Message})
			}
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "unexpected server error"})
		},
	})
}

// Do sends a JSON request through the fiber test harness.
func Do(t *testing.T, app *fiber.App, method, path, token string, body any) *http.Response {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("%s %s: %v", method, path, err)
	}
	return resp
}

// DecodeMap reads a JSON object response body.
func DecodeMap(t *testing.T, resp *http.Response) map[string]any {
	t.Helper()
	defer resp.Body.Close()

	var m map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&m); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return m
}
