package models

import (
	"errors"
	"fmt"
	"time"

	"blog-backend/internal/slug"

	"gorm.io/gorm"
)

type BlogStatus string

const (
	BlogStatusDraft     BlogStatus = "draft"
	BlogStatusPublished BlogStatus = "published"
	BlogStatusArchived  BlogStatus = "archived"
)

var ErrBlogTitleRequired = errors.New("blog title is required")

// Blog is a tenant-scoped post, unique per (tenant, slug). PublishedAt is
// set exactly when Status is published; the BeforeSave hook keeps the two
// in lockstep on every write.
type Blog struct {
	ID            uint       `gorm:"primaryKey"`
	TenantID      uint       `gorm:"not null;uniqueIndex:idx_blogs_tenant_slug;index:idx_blogs_tenant_status"`
	Title         string     `gorm:"size:255;not null"`
	Slug          string     `gorm:"size:300;not null;uniqueIndex:idx_blogs_tenant_slug"`
	Excerpt       string     `gorm:"type:text"`
	Content       string     `gorm:"type:text;not null"`
	FeaturedImage string     `gorm:"size:255"`
	Status        BlogStatus `gorm:"size:20;not null;default:draft;index:idx_blogs_tenant_status"`
	AuthorID      *uint
	Author        *User `gorm:"constraint:OnDelete:SET NULL"`
	CategoryID    *uint
	Category      *Category `gorm:"constraint:OnDelete:SET NULL"`
	Tags          []Tag     `gorm:"many2many:blog_tags"`
	Comments      []Comment `gorm:"constraint:OnDelete:CASCADE"`
	Likes         []Like    `gorm:"constraint:OnDelete:CASCADE"`
	PublishedAt   *time.Time
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

func (b *Blog) BeforeSave(tx *gorm.DB) error {
	if b.Title == "" {
		return ErrBlogTitleRequired
	}

	if b.Slug == "" {
		b.Slug = slug.Make(b.Title)
	}
	// Titles made of only symbols slugify to nothing; fall back to a
	// timestamped slug so the unique index still has something to hold.
	if b.Slug == "" {
		b.Slug = fmt.Sprintf("blog-%d", time.Now().UnixNano())
	}

	if b.Status == BlogStatusPublished && b.PublishedAt == nil {
		now := time.Now()
		b.PublishedAt = &now
	}
	if b.Status != BlogStatusPublished && b.PublishedAt != nil {
		b.PublishedAt = nil
	}
	return nil
}
