package blog

import (
	"errors"

	"blog-backend/internal/auth"
	"blog-backend/internal/config"
	"blog-backend/internal/database"
	"blog-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// POST /api/blogs/:id/like
//
// Strict toggle: an existing like is removed, a missing one is created.
// Concurrent toggles race on the (tenant, blog, user) unique index, which is
// the correctness backstop; a duplicate-key insert means another request won
// and the post is already liked.
func ToggleLikeHandler(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID := auth.UserID(c)

		var b models.Blog
		err := database.DB.Where("tenant_id = ? AND id = ?", cfg.TenantID, c.Params("id")).First(&b).Error
		if err != nil {
			return fiber.NewError(fiber.StatusNotFound, "blog post not found")
		}
		if b.Status != models.BlogStatusPublished {
			if b.AuthorID == nil || *b.AuthorID != userID {
				return fiber.NewError(fiber.StatusNotFound, "blog post not found")
			}
		}

		var like models.Like
		err = database.DB.
			Where("tenant_id = ? AND blog_id = ? AND user_id = ?", cfg.TenantID, b.ID, userID).
			First(&like).Error

		liked := false
		switch {
		case err == nil:
			if err := database.DB.Delete(&like).Error; err != nil {
				return fiber.NewError(fiber.StatusInternalServerError, "could not remove like")
			}
		case errors.Is(err, gorm.ErrRecordNotFound):
			like = models.Like{TenantID: cfg.TenantID, BlogID: b.ID, UserID: userID}
			if err := database.DB.Create(&like).Error; err != nil && !errors.Is(err, gorm.ErrDuplicatedKey) {
				return fiber.NewError(fiber.StatusInternalServerError, "could not like post")
			}
			liked = true
		default:
			return fiber.NewError(fiber.StatusInternalServerError, "could not toggle like")
		}

		var likesCount int64
		database.DB.Model(&models.Like{}).Where("blog_id = ?", b.ID).Count(&likesCount)

		return c.JSON(fiber.Map{
			"liked":       liked,
			"likes_count": likesCount,
		})
	}
}
