package superadmin

import (
	"blog-backend/internal/database"
	"blog-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

type commentResponse struct {
	ID        uint   `json:"id"`
	BlogID    uint   `json:"blog_id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Body      string `json:"comment"`
	IsImage   bool   `json:"is_image"`
	ImageURL  string `json:"image_url,omitempty"`
	Status    string `json:"status"`
	CreatedAt string `json:"created_at"`
}

type setStatusRequest struct {
	Status models.CommentStatus `json:"status"`
}

func validCommentStatus(s models.CommentStatus) bool {
	switch s {
	case models.CommentStatusPending, models.CommentStatusApproved,
		models.CommentStatusSpam, models.CommentStatusRejected:
		return true
	}
	return false
}

// GET /api/superadmin/comments?status=pending  (any active superadmin)
func ListCommentsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if _, err := caller(c, 0); err != nil {
			return err
		}

		q := database.DB.Model(&models.Comment{}).Order("created_at desc")
		if status := models.CommentStatus(c.Query("status")); status != "" {
			if !validCommentStatus(status) {
				return fiber.NewError(fiber.StatusBadRequest, "unknown comment status")
			}
			q = q.Where("status = ?", status)
		}

		var comments []models.Comment
		if err := q.Find(&comments).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "could not list comments")
		}

		res := make([]commentResponse, 0, len(comments))
		for _, cm := range comments {
			res = append(res, commentResponse{
				ID:        cm.ID,
				BlogID:    cm.BlogID,
				Name:      cm.Name,
				Email:     cm.Email,
				Body:      cm.Body,
				IsImage:   cm.IsImage,
				ImageURL:  cm.ImageURL,
				Status:    string(cm.Status),
				CreatedAt: cm.CreatedAt.Format("2006-01-02 15:04:05"),
			})
		}
		return c.JSON(res)
	}
}

// POST /api/superadmin/comments/:id/status  (any active superadmin)
func SetCommentStatusHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if _, err := caller(c, 0); err != nil {
			return err
		}

		var body setStatusRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
		}
		if !validCommentStatus(body.Status) {
			return fiber.NewError(fiber.StatusBadRequest, "unknown comment status")
		}

		var comment models.Comment
		if err := database.DB.First(&comment, "id = ?", c.Params("id")).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "comment not found")
		}

		comment.Status = body.Status
		if err := database.DB.Save(&comment).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "could not update comment")
		}

		return c.JSON(fiber.Map{"id": comment.ID, "status": comment.Status})
	}
}
