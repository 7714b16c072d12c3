package superadmin

import (
	"errors"
	"strings"

	"blog-backend/internal/auth"
	"blog-backend/internal/config"
	"blog-backend/internal/database"
	"blog-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const msgInvalidCredentials = "invalid email or password"

// Creating or activating superadmin accounts requires this tier ("Admin" in
// the seeded types).
const minManageLevel = 3

type RegisterRequest struct {
	Name        string `json:"name"`
	Email       string `json:"email"`
	Password    string `json:"password"`
	Company     string `json:"company"`
	AdminTypeID *uint  `json:"admin_type_id"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type adminResponse struct {
	ID       uint   `json:"id"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Company  string `json:"company,omitempty"`
	Type     string `json:"type,omitempty"`
	IsActive bool   `json:"is_active"`
}

func toResponse(a *models.SuperAdmin) adminResponse {
	res := adminResponse{
		ID:       a.ID,
		Name:     a.Name,
		Email:    a.Email,
		Company:  a.Company,
		IsActive: a.IsActive,
	}
	if a.AdminType != nil {
		res.Type = a.AdminType.Name
	}
	return res
}

// caller loads the authenticated superadmin and enforces the minimum
// permissions level for management actions.
func caller(c *fiber.Ctx, minLevel int) (*models.SuperAdmin, error) {
	id := auth.SuperAdminID(c)
	if id == 0 {
		return nil, fiber.NewError(fiber.StatusForbidden, "forbidden")
	}

	var admin models.SuperAdmin
	if err := database.DB.Preload("AdminType").First(&admin, id).Error; err != nil {
		return nil, fiber.NewError(fiber.StatusForbidden, "forbidden")
	}
	if !admin.IsActive {
		return nil, fiber.NewError(fiber.StatusForbidden, "forbidden")
	}
	if minLevel > 0 {
		if admin.AdminType == nil || admin.AdminType.PermissionsLevel < minLevel {
			return nil, fiber.NewError(fiber.StatusForbidden, "forbidden")
		}
	}
	return &admin, nil
}

func validateRegistration(body *RegisterRequest) error {
	body.Email = strings.TrimSpace(strings.ToLower(body.Email))
	body.Name = strings.TrimSpace(body.Name)

	if body.Name == "" || body.Email == "" || body.Password == "" {
		return fiber.NewError(fiber.StatusBadRequest, "name, email and password are required")
	}
	if len(body.Password) < 8 {
		return fiber.NewError(fiber.StatusBadRequest, "password must be at least 8 characters")
	}
	if body.AdminTypeID != nil {
		var adminType models.SuperAdminType
		if err := database.DB.First(&adminType, *body.AdminTypeID).Error; err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "unknown admin type")
		}
	}
	return nil
}

func createAdmin(body *RegisterRequest, active bool) (*models.SuperAdmin, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(body.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fiber.NewError(fiber.StatusInternalServerError, "could not hash password")
	}

	admin := models.SuperAdmin{
		Name:         body.Name,
		Email:        body.Email,
		Company:      body.Company,
		AdminTypeID:  body.AdminTypeID,
		PasswordHash: string(hash),
		IsActive:     active,
	}
	if err := database.DB.Create(&admin).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, fiber.NewError(fiber.StatusBadRequest, "this email address is already registered")
		}
		return nil, fiber.NewError(fiber.StatusInternalServerError, "could not create superadmin")
	}
	return &admin, nil
}

// POST /api/superadmin/register
//
// Self-service registration. The account always lands pending: activation is
// a separate administrative action, never something the registrant controls.
func RegisterHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body RegisterRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
		}
		if err := validateRegistration(&body); err != nil {
			return err
		}

		var count int64
		database.DB.Model(&models.SuperAdmin{}).Where("email = ?", body.Email).Count(&count)
		if count > 0 {
			return fiber.NewError(fiber.StatusBadRequest, "this email address is already registered")
		}

		admin, err := createAdmin(&body, false)
		if err != nil {
			return err
		}

		return c.Status(fiber.StatusCreated).JSON(fiber.Map{
			"id":        admin.ID,
			"email":     admin.Email,
			"is_active": admin.IsActive,
			"message":   "registration received, pending approval",
		})
	}
}

// POST /api/superadmin/admins  (active superadmin, level >= 3)
//
// Administrative creation path: the account starts active.
func CreateHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if _, err := caller(c, minManageLevel); err != nil {
			return err
		}

		var body RegisterRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
		}
		if err := validateRegistration(&body); err != nil {
			return err
		}

		var count int64
		database.DB.Model(&models.SuperAdmin{}).Where("email = ?", body.Email).Count(&count)
		if count > 0 {
			return fiber.NewError(fiber.StatusBadRequest, "this email address is already registered")
		}

		admin, err := createAdmin(&body, true)
		if err != nil {
			return err
		}

		return c.Status(fiber.StatusCreated).JSON(toResponse(admin))
	}
}

// POST /api/superadmin/admins/:id/activate  (active superadmin, level >= 3)
func ActivateHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if _, err := caller(c, minManageLevel); err != nil {
			return err
		}

		var admin models.SuperAdmin
		if err := database.DB.Preload("AdminType").First(&admin, "id = ?", c.Params("id")).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "superadmin not found")
		}

		if !admin.IsActive {
			admin.IsActive = true
			if err := database.DB.Save(&admin).Error; err != nil {
				return fiber.NewError(fiber.StatusInternalServerError, "could not activate superadmin")
			}
		}

		return c.JSON(toResponse(&admin))
	}
}

// POST /api/superadmin/login
func LoginHandler(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body LoginRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
		}

		body.Email = strings.TrimSpace(strings.ToLower(body.Email))

		var admin models.SuperAdmin
		if err := database.DB.Preload("AdminType").Where("email = ?", body.Email).First(&admin).Error; err != nil {
			return fiber.NewError(fiber.StatusUnauthorized, msgInvalidCredentials)
		}
		if err := bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(body.Password)); err != nil {
			return fiber.NewError(fiber.StatusUnauthorized, msgInvalidCredentials)
		}
		if !admin.IsActive {
			return fiber.NewError(fiber.StatusUnauthorized, msgInvalidCredentials)
		}

		token, err := auth.GenerateToken(cfg.JWTSecret, admin.ID, admin.Email, auth.KindSuperAdmin)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "could not issue token")
		}

		return c.JSON(fiber.Map{
			"token": token,
			"admin": toResponse(&admin),
		})
	}
}

// POST /api/superadmin/logout
func LogoutHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusNoContent)
	}
}

// GET /api/superadmin/types
func ListTypesHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var types []models.SuperAdminType
		if err := database.DB.Order("permissions_level asc").Find(&types).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "could not list admin types")
		}

		res := make([]fiber.Map, 0, len(types))
		for _, t := range types {
			res = append(res, fiber.Map{
				"id":                t.ID,
				"name":              t.Name,
				"description":       t.Description,
				"permissions_level": t.PermissionsLevel,
			})
		}
		return c.JSON(res)
	}
}
