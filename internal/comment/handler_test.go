package comment_test

import (
	"fmt"
	"net/http"
	"testing"

	"blog-backend/internal/auth"
	"blog-backend/internal/comment"
	"blog-backend/internal/config"
	"blog-backend/internal/models"
	"blog-backend/internal/rbac"
	"blog-backend/internal/testutil"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newApp(cfg *config.Config) *fiber.App {
	app := testutil.NewApp()
	user := app.Group("/api", auth.JWTMiddleware(cfg), auth.RequireKind(auth.KindUser))
	user.Post("/blogs/:id/comments", comment.AddHandler(cfg))
	user.Delete("/comments/:id", comment.DeleteHandler(cfg))
	return app
}

func publishedBlog(t *testing.T, db *gorm.DB, authorID uint) *models.Blog {
	t.Helper()
	b := &models.Blog{
		TenantID: testutil.TenantID,
		Title:    fmt.Sprintf("Post %d", authorID),
		Content:  "x",
		AuthorID: &authorID,
		Status:   models.BlogStatusPublished,
	}
	require.NoError(t, db.Create(b).Error)
	return b
}

func newComment(t *testing.T, db *gorm.DB, blogID uint, user *models.User) *models.Comment {
	t.Helper()
	c := &models.Comment{
		TenantID: testutil.TenantID, BlogID: blogID, UserID: &user.ID,
		Name: user.Name, Email: user.Email, Body: "a comment",
	}
	require.NoError(t, db.Create(c).Error)
	return c
}

func TestAddComment(t *testing.T) {
	db := testutil.NewDB(t)
	cfg := testutil.Config(t)
	app := newApp(cfg)

	author := testutil.NewUser(t, db, "A", "a@example.com", models.RoleWriter)
	reader := testutil.NewUser(t, db, "R", "r@example.com", models.RoleReader)
	b := publishedBlog(t, db, author.ID)
	path := fmt.Sprintf("/api/blogs/%d/comments", b.ID)

	t.Run("lands pending with the commenter's identity", func(t *testing.T) {
		resp := testutil.Do(t, app, http.MethodPost, path, testutil.UserToken(t, reader), fiber.Map{
			"comment": "great post",
		})
		require.Equal(t, http.StatusCreated, resp.StatusCode)

		var c models.Comment
		require.NoError(t, db.Where("blog_id = ?", b.ID).First(&c).Error)
		assert.Equal(t, models.CommentStatusPending, c.Status)
		assert.Equal(t, reader.Name, c.Name)
		assert.Equal(t, reader.Email, c.Email)
	})

	t.Run("image URL forces an image comment", func(t *testing.T) {
		resp := testutil.Do(t, app, http.MethodPost, path, testutil.UserToken(t, reader), fiber.Map{
			"comment": "look", "image_url": "https://example.com/cat.png",
		})
		require.Equal(t, http.StatusCreated, resp.StatusCode)

		var c models.Comment
		require.NoError(t, db.Where("blog_id = ? AND image_url <> ''", b.ID).First(&c).Error)
		assert.True(t, c.IsImage)
	})

	t.Run("requires can_comment", func(t *testing.T) {
		nobody := testutil.NewUser(t, db, "N", "n@example.com", "")
		resp := testutil.Do(t, app, http.MethodPost, path, testutil.UserToken(t, nobody), fiber.Map{
			"comment": "hi",
		})
		assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	})

	t.Run("draft blogs do not accept comments", func(t *testing.T) {
		draft := &models.Blog{TenantID: testutil.TenantID, Title: "Drafty", Content: "x", AuthorID: &author.ID}
		require.NoError(t, db.Create(draft).Error)
		resp := testutil.Do(t, app, http.MethodPost,
			fmt.Sprintf("/api/blogs/%d/comments", draft.ID), testutil.UserToken(t, reader), fiber.Map{
				"comment": "hi",
			})
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})

	t.Run("empty comment rejected", func(t *testing.T) {
		resp := testutil.Do(t, app, http.MethodPost, path, testutil.UserToken(t, reader), fiber.Map{
			"comment": "   ",
		})
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})
}

func TestDeleteCommentAuthorization(t *testing.T) {
	db := testutil.NewDB(t)
	cfg := testutil.Config(t)
	app := newApp(cfg)

	author := testutil.NewUser(t, db, "Author", "author@example.com", models.RoleWriter)
	commenter := testutil.NewUser(t, db, "Commenter", "commenter@example.com", models.RoleReader)
	bystander := testutil.NewUser(t, db, "Bystander", "bystander@example.com", models.RoleReader)

	moderator := testutil.NewUser(t, db, "Moderator", "moderator@example.com", "")
	modRole, err := rbac.EnsureRole(db, "moderator")
	require.NoError(t, err)
	require.NoError(t, rbac.Grant(db, modRole.ID, models.PermCanDeleteComment))
	require.NoError(t, rbac.Assign(db, moderator.ID, modRole.ID))

	b := publishedBlog(t, db, author.ID)

	deletePath := func(c *models.Comment) string {
		return fmt.Sprintf("/api/comments/%d", c.ID)
	}

	t.Run("comment creator may delete", func(t *testing.T) {
		c := newComment(t, db, b.ID, commenter)
		resp := testutil.Do(t, app, http.MethodDelete, deletePath(c), testutil.UserToken(t, commenter), nil)
		assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	})

	t.Run("blog author may delete", func(t *testing.T) {
		c := newComment(t, db, b.ID, commenter)
		resp := testutil.Do(t, app, http.MethodDelete, deletePath(c), testutil.UserToken(t, author), nil)
		assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	})

	t.Run("can_delete_comment holder may delete", func(t *testing.T) {
		c := newComment(t, db, b.ID, commenter)
		resp := testutil.Do(t, app, http.MethodDelete, deletePath(c), testutil.UserToken(t, moderator), nil)
		assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	})

	t.Run("everyone else is forbidden", func(t *testing.T) {
		c := newComment(t, db, b.ID, commenter)
		resp := testutil.Do(t, app, http.MethodDelete, deletePath(c), testutil.UserToken(t, bystander), nil)
		assert.Equal(t, http.StatusForbidden, resp.StatusCode)

		var still models.Comment
		assert.NoError(t, db.First(&still, c.ID).Error, "comment survives the forbidden attempt")
	})
}
