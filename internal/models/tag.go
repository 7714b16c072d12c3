package models

import (
	"blog-backend/internal/slug"

	"gorm.io/gorm"
)

// Tag is a tenant-scoped label attached to blogs, unique per (tenant, slug).
type Tag struct {
	ID       uint   `gorm:"primaryKey"`
	TenantID uint   `gorm:"not null;uniqueIndex:idx_tags_tenant_slug"`
	Name     string `gorm:"size:100;not null"`
	Slug     string `gorm:"size:120;not null;uniqueIndex:idx_tags_tenant_slug"`
}

func (t *Tag) BeforeSave(tx *gorm.DB) error {
	if t.Slug == "" {
		t.Slug = slug.Make(t.Name)
	}
	return nil
}
