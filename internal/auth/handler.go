package auth

import (
	"errors"
	"strings"

	"blog-backend/internal/config"
	"blog-backend/internal/database"
	"blog-backend/internal/models"
	"blog-backend/internal/rbac"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Login failures are deliberately indistinguishable: unknown email, wrong
// password and inactive account all surface this message.
const msgInvalidCredentials = "invalid email or password"

type RegisterRequest struct {
	Name            string `json:"name"`
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirm_password"`
	Role            string `json:"role"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// POST /api/auth/register
func RegisterHandler(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body RegisterRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
		}

		body.Email = strings.TrimSpace(strings.ToLower(body.Email))
		body.Name = strings.TrimSpace(body.Name)

		if body.Name == "" || body.Email == "" || body.Password == "" {
			return fiber.NewError(fiber.StatusBadRequest, "name, email and password are required")
		}
		if len(body.Password) < 8 {
			return fiber.NewError(fiber.StatusBadRequest, "password must be at least 8 characters")
		}
		if body.Password != body.ConfirmPassword {
			return fiber.NewError(fiber.StatusBadRequest, "passwords do not match")
		}

		roleName := body.Role
		if roleName == "" {
			roleName = models.RoleReader
		}
		if roleName != models.RoleWriter && roleName != models.RoleReader {
			return fiber.NewError(fiber.StatusBadRequest, "role must be writer or reader")
		}

		var count int64
		database.DB.Model(&models.User{}).Where("email = ?", body.Email).Count(&count)
		if count > 0 {
			return fiber.NewError(fiber.StatusBadRequest, "this email address is already registered")
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(body.Password), bcrypt.DefaultCost)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "could not hash password")
		}

		user := models.User{
			Name:         body.Name,
			Email:        body.Email,
			PasswordHash: string(hash),
			IsActive:     true,
		}

		err = database.DB.Transaction(func(tx *gorm.DB) error {
			if err := tx.Create(&user).Error; err != nil {
				return err
			}
			role, err := rbac.EnsureRole(tx, roleName)
			if err != nil {
				return err
			}
			return rbac.Assign(tx, user.ID, role.ID)
		})
		if err != nil {
			// Unique-index race with a concurrent registration.
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return fiber.NewError(fiber.StatusBadRequest, "this email address is already registered")
			}
			return fiber.NewError(fiber.StatusInternalServerError, "could not create user")
		}

		return c.Status(fiber.StatusCreated).JSON(fiber.Map{
			"id":    user.ID,
			"name":  user.Name,
			"email": user.Email,
			"role":  roleName,
		})
	}
}

// POST /api/auth/login
func LoginHandler(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body LoginRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
		}

		body.Email = strings.TrimSpace(strings.ToLower(body.Email))

		var user models.User
		if err := database.DB.Where("email = ?", body.Email).First(&user).Error; err != nil {
			return fiber.NewError(fiber.StatusUnauthorized, msgInvalidCredentials)
		}
		if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(body.Password)); err != nil {
			return fiber.NewError(fiber.StatusUnauthorized, msgInvalidCredentials)
		}
		if !user.IsActive {
			return fiber.NewError(fiber.StatusUnauthorized, msgInvalidCredentials)
		}

		token, err := GenerateToken(cfg.JWTSecret, user.ID, user.Email, KindUser)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "could not issue token")
		}

		return c.JSON(fiber.Map{
			"token": token,
			"user": fiber.Map{
				"id":    user.ID,
				"name":  user.Name,
				"email": user.Email,
			},
		})
	}
}

// POST /api/auth/logout
//
// Tokens are stateless; the transition back to anonymous happens when the
// client discards the token. The endpoint exists so the flow is explicit.
func LogoutHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusNoContent)
	}
}

// GET /api/auth/me
func MeHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID := UserID(c)

		var user models.User
		if err := database.DB.First(&user, userID).Error; err != nil {
			return fiber.NewError(fiber.StatusUnauthorized, "account no longer exists")
		}

		roles, err := rbac.RolesOf(database.DB, user.ID)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "could not load roles")
		}
		perms, err := rbac.PermissionsOf(database.DB, user.ID)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "could not load permissions")
		}

		return c.JSON(fiber.Map{
			"id":            user.ID,
			"name":          user.Name,
			"email":         user.Email,
			"profile_image": user.ProfileImage,
			"roles":         roles,
			"permissions":   perms,
		})
	}
}

// POST /api/auth/account/delete
//
// Deletes the calling account and everything it authored. Blogs cascade to
// their comments and likes at the database level.
func DeleteAccountHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID := UserID(c)

		err := database.DB.Transaction(func(tx *gorm.DB) error {
			var blogs []models.Blog
			if err := tx.Where("author_id = ?", userID).Find(&blogs).Error; err != nil {
				return err
			}
			for i := range blogs {
				if err := tx.Select("Comments", "Likes", "Tags").Delete(&blogs[i]).Error; err != nil {
					return err
				}
			}
			if err := tx.Where("user_id = ?", userID).Delete(&models.UserRole{}).Error; err != nil {
				return err
			}
			if err := tx.Where("user_id = ?", userID).Delete(&models.Like{}).Error; err != nil {
				return err
			}
			return tx.Delete(&models.User{}, userID).Error
		})
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "could not delete account")
		}

		return c.SendStatus(fiber.StatusNoContent)
	}
}
