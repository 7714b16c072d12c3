package comment

import (
	"strings"

	"blog-backend/internal/auth"
	"blog-backend/internal/config"
	"blog-backend/internal/database"
	"blog-backend/internal/models"
	"blog-backend/internal/rbac"
	"blog-backend/internal/upload"

	"github.com/gofiber/fiber/v2"
)

type AddCommentRequest struct {
	Body     string `json:"comment" form:"comment"`
	IsImage  bool   `json:"is_image" form:"is_image"`
	ImageURL string `json:"image_url" form:"image_url"`
}

// POST /api/blogs/:id/comments  (requires can_comment)
//
// Comments land pending; superadmin moderation decides what readers see.
func AddHandler(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID := auth.UserID(c)
		if !rbac.HasPermission(database.DB, userID, models.PermCanComment) {
			return fiber.NewError(fiber.StatusForbidden, "you do not have permission to comment")
		}

		var b models.Blog
		err := database.DB.
			Where("tenant_id = ? AND id = ? AND status = ?", cfg.TenantID, c.Params("id"), models.BlogStatusPublished).
			First(&b).Error
		if err != nil {
			return fiber.NewError(fiber.StatusNotFound, "blog post not found")
		}

		var body AddCommentRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
		}

		body.Body = strings.TrimSpace(body.Body)
		body.ImageURL = strings.TrimSpace(body.ImageURL)
		if body.Body == "" && body.ImageURL == "" {
			return fiber.NewError(fiber.StatusBadRequest, "comment text is required")
		}

		var user models.User
		if err := database.DB.First(&user, userID).Error; err != nil {
			return fiber.NewError(fiber.StatusUnauthorized, "account no longer exists")
		}

		// An external image URL makes this an image comment regardless of
		// what the form said.
		if body.ImageURL != "" {
			body.IsImage = true
		}

		comment := models.Comment{
			TenantID: cfg.TenantID,
			BlogID:   b.ID,
			UserID:   &user.ID,
			Name:     user.Name,
			Email:    user.Email,
			IsImage:  body.IsImage,
			ImageURL: body.ImageURL,
			Body:     body.Body,
			Status:   models.CommentStatusPending,
		}

		if file, err := c.FormFile("image"); err == nil && file != nil {
			name, err := upload.Save(c, file, cfg.UploadPath)
			if err != nil {
				return fiber.NewError(fiber.StatusBadRequest, "could not store comment image")
			}
			comment.Image = name
			comment.IsImage = true
		}

		if err := database.DB.Create(&comment).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "could not submit comment")
		}

		return c.Status(fiber.StatusCreated).JSON(fiber.Map{
			"id":      comment.ID,
			"status":  comment.Status,
			"message": "your comment has been submitted and is pending approval",
		})
	}
}

// DELETE /api/comments/:id
//
// Allowed for the comment's creator, the parent blog's author, and holders
// of can_delete_comment. Everyone else gets the uniform forbidden outcome.
func DeleteHandler(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID := auth.UserID(c)

		var comment models.Comment
		err := database.DB.Where("tenant_id = ? AND id = ?", cfg.TenantID, c.Params("id")).First(&comment).Error
		if err != nil {
			return fiber.NewError(fiber.StatusNotFound, "comment not found")
		}

		var b models.Blog
		var parent *models.Blog
		if err := database.DB.First(&b, comment.BlogID).Error; err == nil {
			parent = &b
		}

		if !rbac.CanModerateComment(database.DB, userID, &comment, parent) {
			return fiber.NewError(fiber.StatusForbidden, "you do not have permission to delete this comment")
		}

		if err := database.DB.Delete(&comment).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "could not delete comment")
		}
		upload.Remove(cfg.UploadPath, comment.Image)

		return c.SendStatus(fiber.StatusNoContent)
	}
}
