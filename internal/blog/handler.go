package blog

import (
	"strings"
	"time"

	"blog-backend/internal/auth"
	"blog-backend/internal/config"
	"blog-backend/internal/database"
	"blog-backend/internal/models"
	"blog-backend/internal/rbac"
	"blog-backend/internal/upload"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// Missing and not-owned are deliberately indistinguishable on edit/delete so
// callers cannot probe which blog ids exist.
const msgBlogNotFound = "blog post not found or you do not have permission to modify it"

type CreateBlogRequest struct {
	Title      string `json:"title" form:"title"`
	Excerpt    string `json:"excerpt" form:"excerpt"`
	Content    string `json:"content" form:"content"`
	CategoryID *uint  `json:"category_id" form:"category_id"`
	Tags       string `json:"tags" form:"tags"` // comma separated
}

type UpdateBlogRequest struct {
	Title       *string `json:"title" form:"title"`
	Excerpt     *string `json:"excerpt" form:"excerpt"`
	Content     *string `json:"content" form:"content"`
	CategoryID  *uint   `json:"category_id" form:"category_id"`
	Tags        *string `json:"tags" form:"tags"`
	Status      *string `json:"status" form:"status"`
	RemoveImage bool    `json:"remove_image" form:"remove_image"`
}

type BlogSummary struct {
	ID          uint       `json:"id"`
	Title       string     `json:"title"`
	Slug        string     `json:"slug"`
	Excerpt     string     `json:"excerpt"`
	Status      string     `json:"status"`
	Category    string     `json:"category,omitempty"`
	Tags        []string   `json:"tags"`
	AuthorName  string     `json:"author_name,omitempty"`
	PublishedAt *time.Time `json:"published_at,omitempty"`
}

func toSummary(b *models.Blog) BlogSummary {
	s := BlogSummary{
		ID:          b.ID,
		Title:       b.Title,
		Slug:        b.Slug,
		Excerpt:     b.Excerpt,
		Status:      string(b.Status),
		Tags:        make([]string, 0, len(b.Tags)),
		PublishedAt: b.PublishedAt,
	}
	if b.Category != nil {
		s.Category = b.Category.Name
	}
	if b.Author != nil {
		s.AuthorName = b.Author.Name
	}
	for _, t := range b.Tags {
		s.Tags = append(s.Tags, t.Name)
	}
	return s
}

// setTags parses a comma separated tag list, gets or creates each tag by
// (tenant, name) and replaces the blog's tag set wholesale.
func setTags(db *gorm.DB, b *models.Blog, tenantID uint, raw string) error {
	var tags []models.Tag
	for _, part := range strings.Split(raw, ",") {
		name := strings.TrimSpace(part)
		if name == "" {
			continue
		}
		var tag models.Tag
		if err := db.Where(models.Tag{TenantID: tenantID, Name: name}).
			FirstOrCreate(&tag, models.Tag{TenantID: tenantID, Name: name}).Error; err != nil {
			return err
		}
		tags = append(tags, tag)
	}
	return db.Model(b).Association("Tags").Replace(tags)
}

// ownedBlog loads a blog only when the caller authored it; anything else is
// the shared not-found outcome.
func ownedBlog(tenantID, userID uint, blogID string) (*models.Blog, error) {
	var b models.Blog
	err := database.DB.
		Where("tenant_id = ? AND id = ? AND author_id = ?", tenantID, blogID, userID).
		First(&b).Error
	if err != nil {
		return nil, fiber.NewError(fiber.StatusNotFound, msgBlogNotFound)
	}
	return &b, nil
}

// GET /api/blogs
func ListPublishedHandler(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var blogs []models.Blog
		err := database.DB.
			Preload("Category").Preload("Tags").Preload("Author").
			Where("tenant_id = ? AND status = ?", cfg.TenantID, models.BlogStatusPublished).
			Order("published_at desc").
			Find(&blogs).Error
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "could not list blogs")
		}

		res := make([]BlogSummary, 0, len(blogs))
		for i := range blogs {
			res = append(res, toSummary(&blogs[i]))
		}
		return c.JSON(res)
	}
}

// GET /api/blogs/:id
//
// Published posts are public. Drafts and archived posts are visible to their
// author only; everyone else gets the not-found outcome.
func DetailHandler(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID := auth.UserID(c)

		var b models.Blog
		err := database.DB.
			Preload("Category").Preload("Tags").Preload("Author").
			Where("tenant_id = ? AND id = ?", cfg.TenantID, c.Params("id")).
			First(&b).Error
		if err != nil {
			return fiber.NewError(fiber.StatusNotFound, "blog post not found")
		}
		if b.Status != models.BlogStatusPublished {
			if userID == 0 || b.AuthorID == nil || *b.AuthorID != userID {
				return fiber.NewError(fiber.StatusNotFound, "blog post not found")
			}
		}

		var comments, imageComments []models.Comment
		database.DB.Where("blog_id = ? AND status = ? AND is_image = ?", b.ID, models.CommentStatusApproved, false).
			Order("created_at desc").Find(&comments)
		database.DB.Where("blog_id = ? AND status = ? AND is_image = ?", b.ID, models.CommentStatusApproved, true).
			Order("created_at desc").Find(&imageComments)

		var likesCount int64
		database.DB.Model(&models.Like{}).Where("blog_id = ?", b.ID).Count(&likesCount)

		userLiked := false
		if userID != 0 {
			var n int64
			database.DB.Model(&models.Like{}).Where("blog_id = ? AND user_id = ?", b.ID, userID).Count(&n)
			userLiked = n > 0
		}

		return c.JSON(fiber.Map{
			"blog":           toSummary(&b),
			"content":        b.Content,
			"featured_image": b.FeaturedImage,
			"comments":       comments,
			"image_comments": imageComments,
			"likes_count":    likesCount,
			"user_liked":     userLiked,
		})
	}
}

// GET /api/search?q=
func SearchHandler(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		q := strings.TrimSpace(c.Query("q"))
		res := fiber.Map{"query": q, "blogs": []BlogSummary{}, "users": []fiber.Map{}}
		if q == "" {
			return c.JSON(res)
		}
		pattern := "%" + strings.ToLower(q) + "%"

		var blogs []models.Blog
		database.DB.
			Preload("Category").Preload("Tags").Preload("Author").
			Where("tenant_id = ? AND status = ? AND (lower(title) LIKE ? OR lower(content) LIKE ?)",
				cfg.TenantID, models.BlogStatusPublished, pattern, pattern).
			Find(&blogs)
		blogRes := make([]BlogSummary, 0, len(blogs))
		for i := range blogs {
			blogRes = append(blogRes, toSummary(&blogs[i]))
		}
		res["blogs"] = blogRes

		var users []models.User
		database.DB.Where("lower(name) LIKE ? OR lower(email) LIKE ?", pattern, pattern).Find(&users)
		userRes := make([]fiber.Map, 0, len(users))
		for _, u := range users {
			userRes = append(userRes, fiber.Map{"id": u.ID, "name": u.Name})
		}
		res["users"] = userRes

		return c.JSON(res)
	}
}

// GET /api/users/:id/profile
func ProfileHandler(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var user models.User
		if err := database.DB.First(&user, "id = ?", c.Params("id")).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "user not found")
		}

		var blogs []models.Blog
		database.DB.
			Preload("Category").Preload("Tags").
			Where("tenant_id = ? AND author_id = ? AND status = ?", cfg.TenantID, user.ID, models.BlogStatusPublished).
			Order("published_at desc").
			Find(&blogs)

		blogRes := make([]BlogSummary, 0, len(blogs))
		for i := range blogs {
			blogRes = append(blogRes, toSummary(&blogs[i]))
		}

		return c.JSON(fiber.Map{
			"user":  fiber.Map{"id": user.ID, "name": user.Name, "profile_image": user.ProfileImage},
			"blogs": blogRes,
		})
	}
}

// GET /api/dashboard
func DashboardHandler(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID := auth.UserID(c)

		var blogs []models.Blog
		database.DB.
			Preload("Category").Preload("Tags").
			Where("tenant_id = ? AND author_id = ?", cfg.TenantID, userID).
			Order("created_at desc").
			Find(&blogs)

		blogRes := make([]BlogSummary, 0, len(blogs))
		for i := range blogs {
			blogRes = append(blogRes, toSummary(&blogs[i]))
		}

		type categoryCount struct {
			ID        uint   `json:"id"`
			Name      string `json:"name"`
			PostCount int64  `json:"post_count"`
		}
		var categories []categoryCount
		database.DB.Model(&models.Category{}).
			Select("categories.id, categories.name, COUNT(blogs.id) AS post_count").
			Joins("LEFT JOIN blogs ON blogs.category_id = categories.id").
			Where("categories.tenant_id = ?", cfg.TenantID).
			Group("categories.id, categories.name").
			Order("post_count desc").
			Limit(12).
			Scan(&categories)

		return c.JSON(fiber.Map{
			"blogs":      blogRes,
			"categories": categories,
		})
	}
}

// POST /api/blogs  (requires can_write)
func CreateHandler(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID := auth.UserID(c)
		if !rbac.HasPermission(database.DB, userID, models.PermCanWrite) {
			return fiber.NewError(fiber.StatusForbidden, "you do not have permission to write blog posts")
		}

		var body CreateBlogRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
		}

		body.Title = strings.TrimSpace(body.Title)
		if body.Title == "" || strings.TrimSpace(body.Content) == "" {
			return fiber.NewError(fiber.StatusBadRequest, "title and content are required")
		}

		// Unknown category ids are dropped rather than rejected.
		var categoryID *uint
		if body.CategoryID != nil {
			var cat models.Category
			if err := database.DB.First(&cat, "tenant_id = ? AND id = ?", cfg.TenantID, *body.CategoryID).Error; err == nil {
				categoryID = &cat.ID
			}
		}

		b := models.Blog{
			TenantID:   cfg.TenantID,
			Title:      body.Title,
			Excerpt:    body.Excerpt,
			Content:    body.Content,
			CategoryID: categoryID,
			AuthorID:   &userID,
			Status:     models.BlogStatusDraft,
		}

		if file, err := c.FormFile("featured_image"); err == nil && file != nil {
			name, err := upload.Save(c, file, cfg.UploadPath)
			if err != nil {
				return fiber.NewError(fiber.StatusBadRequest, "could not store featured image")
			}
			b.FeaturedImage = name
		}

		if err := database.DB.Create(&b).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "could not create blog post")
		}
		if body.Tags != "" {
			if err := setTags(database.DB, &b, cfg.TenantID, body.Tags); err != nil {
				return fiber.NewError(fiber.StatusInternalServerError, "could not assign tags")
			}
		}

		database.DB.Preload("Category").Preload("Tags").First(&b, b.ID)
		return c.Status(fiber.StatusCreated).JSON(toSummary(&b))
	}
}

// PUT /api/blogs/:id  (author only)
func UpdateHandler(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID := auth.UserID(c)

		b, err := ownedBlog(cfg.TenantID, userID, c.Params("id"))
		if err != nil {
			return err
		}

		var body UpdateBlogRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
		}

		if body.Title != nil {
			title := strings.TrimSpace(*body.Title)
			if title == "" {
				return fiber.NewError(fiber.StatusBadRequest, "title cannot be empty")
			}
			b.Title = title
		}
		if body.Excerpt != nil {
			b.Excerpt = *body.Excerpt
		}
		if body.Content != nil {
			if strings.TrimSpace(*body.Content) == "" {
				return fiber.NewError(fiber.StatusBadRequest, "content cannot be empty")
			}
			b.Content = *body.Content
		}
		if body.CategoryID != nil {
			var cat models.Category
			if err := database.DB.First(&cat, "tenant_id = ? AND id = ?", cfg.TenantID, *body.CategoryID).Error; err == nil {
				b.CategoryID = &cat.ID
			}
		}
		if body.Status != nil {
			status := models.BlogStatus(*body.Status)
			switch status {
			case models.BlogStatusDraft, models.BlogStatusPublished, models.BlogStatusArchived:
				b.Status = status
			default:
				return fiber.NewError(fiber.StatusBadRequest, "status must be draft, published or archived")
			}
		}

		if file, err := c.FormFile("featured_image"); err == nil && file != nil {
			name, err := upload.Save(c, file, cfg.UploadPath)
			if err != nil {
				return fiber.NewError(fiber.StatusBadRequest, "could not store featured image")
			}
			upload.Remove(cfg.UploadPath, b.FeaturedImage)
			b.FeaturedImage = name
		} else if body.RemoveImage && b.FeaturedImage != "" {
			upload.Remove(cfg.UploadPath, b.FeaturedImage)
			b.FeaturedImage = ""
		}

		if err := database.DB.Save(b).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "could not update blog post")
		}

		// An empty tags field clears the set; an absent one leaves it alone.
		if body.Tags != nil {
			if err := setTags(database.DB, b, cfg.TenantID, *body.Tags); err != nil {
				return fiber.NewError(fiber.StatusInternalServerError, "could not assign tags")
			}
		}

		database.DB.Preload("Category").Preload("Tags").First(b, b.ID)
		return c.JSON(toSummary(b))
	}
}

// DELETE /api/blogs/:id  (author only)
func DeleteHandler(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID := auth.UserID(c)

		b, err := ownedBlog(cfg.TenantID, userID, c.Params("id"))
		if err != nil {
			return err
		}

		if err := database.DB.Select("Comments", "Likes", "Tags").Delete(b).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "could not delete blog post")
		}
		upload.Remove(cfg.UploadPath, b.FeaturedImage)

		return c.SendStatus(fiber.StatusNoContent)
	}
}
