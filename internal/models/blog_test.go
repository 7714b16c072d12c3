package models_test

import (
	"errors"
	"testing"

	"blog-backend/internal/models"
	"blog-backend/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestBlogPublishedAtInvariant(t *testing.T) {
	db := testutil.NewDB(t)
	author := testutil.NewUser(t, db, "A", "a@example.com", "")

	blog := &models.Blog{
		TenantID: testutil.TenantID,
		Title:    "My Post",
		Content:  "body",
		AuthorID: &author.ID,
		Status:   models.BlogStatusDraft,
	}
	require.NoError(t, db.Create(blog).Error)
	assert.Nil(t, blog.PublishedAt, "drafts have no published_at")

	blog.Status = models.BlogStatusPublished
	require.NoError(t, db.Save(blog).Error)
	require.NotNil(t, blog.PublishedAt, "publishing stamps published_at")
	firstPublished := *blog.PublishedAt

	// saving again while published keeps the original timestamp
	blog.Excerpt = "edited"
	require.NoError(t, db.Save(blog).Error)
	require.NotNil(t, blog.PublishedAt)
	assert.Equal(t, firstPublished.Unix(), blog.PublishedAt.Unix())

	blog.Status = models.BlogStatusDraft
	require.NoError(t, db.Save(blog).Error)
	assert.Nil(t, blog.PublishedAt, "unpublishing clears published_at")

	var stored models.Blog
	require.NoError(t, db.First(&stored, blog.ID).Error)
	assert.Nil(t, stored.PublishedAt)
}

func TestBlogSlug(t *testing.T) {
	db := testutil.NewDB(t)

	t.Run("derived from title", func(t *testing.T) {
		blog := &models.Blog{TenantID: testutil.TenantID, Title: "Hello, World!", Content: "x"}
		require.NoError(t, db.Create(blog).Error)
		assert.Equal(t, "hello-world", blog.Slug)
	})

	t.Run("explicit slug wins", func(t *testing.T) {
		blog := &models.Blog{TenantID: testutil.TenantID, Title: "Another", Slug: "custom", Content: "x"}
		require.NoError(t, db.Create(blog).Error)
		assert.Equal(t, "custom", blog.Slug)
	})

	t.Run("fallback when title slugifies to nothing", func(t *testing.T) {
		blog := &models.Blog{TenantID: testutil.TenantID, Title: "!!!", Content: "x"}
		require.NoError(t, db.Create(blog).Error)
		assert.Regexp(t, `^blog-\d+$`, blog.Slug)
	})

	t.Run("empty title is rejected", func(t *testing.T) {
		blog := &models.Blog{TenantID: testutil.TenantID, Content: "x"}
		err := db.Create(blog).Error
		assert.ErrorIs(t, err, models.ErrBlogTitleRequired)
	})

	t.Run("duplicate slug within tenant is rejected", func(t *testing.T) {
		first := &models.Blog{TenantID: testutil.TenantID, Title: "Same Title", Content: "x"}
		require.NoError(t, db.Create(first).Error)
		second := &models.Blog{TenantID: testutil.TenantID, Title: "Same Title", Content: "x"}
		err := db.Create(second).Error
		assert.True(t, errors.Is(err, gorm.ErrDuplicatedKey), "got %v", err)
	})
}

func TestCategoryAndTagSlugs(t *testing.T) {
	db := testutil.NewDB(t)

	cat := &models.Category{TenantID: testutil.TenantID, Name: "Tips & Tricks"}
	require.NoError(t, db.Create(cat).Error)
	assert.Equal(t, "tips-tricks", cat.Slug)

	tag := &models.Tag{TenantID: testutil.TenantID, Name: "Machine Learning"}
	require.NoError(t, db.Create(tag).Error)
	assert.Equal(t, "machine-learning", tag.Slug)
}

func TestUserEmailUnique(t *testing.T) {
	db := testutil.NewDB(t)

	testutil.NewUser(t, db, "First", "dup@example.com", "")
	second := &models.User{Name: "Second", Email: "dup@example.com", PasswordHash: "x", IsActive: true}
	err := db.Create(second).Error
	assert.True(t, errors.Is(err, gorm.ErrDuplicatedKey), "got %v", err)

	var count int64
	db.Model(&models.User{}).Where("email = ?", "dup@example.com").Count(&count)
	assert.EqualValues(t, 1, count)
}

func TestLikeUniquePerUserAndBlog(t *testing.T) {
	db := testutil.NewDB(t)
	user := testutil.NewUser(t, db, "U", "u@example.com", "")

	blog := &models.Blog{TenantID: testutil.TenantID, Title: "Liked", Content: "x"}
	require.NoError(t, db.Create(blog).Error)

	like := &models.Like{TenantID: testutil.TenantID, BlogID: blog.ID, UserID: user.ID}
	require.NoError(t, db.Create(like).Error)

	dup := &models.Like{TenantID: testutil.TenantID, BlogID: blog.ID, UserID: user.ID}
	err := db.Create(dup).Error
	assert.True(t, errors.Is(err, gorm.ErrDuplicatedKey), "got %v", err)
}

func TestSuperAdminDefaultsInactive(t *testing.T) {
	db := testutil.NewDB(t)

	admin := &models.SuperAdmin{Name: "SA", Email: "sa@example.com", PasswordHash: "x"}
	require.NoError(t, db.Create(admin).Error)

	var stored models.SuperAdmin
	require.NoError(t, db.First(&stored, admin.ID).Error)
	assert.False(t, stored.IsActive)
}
