package models

import (
	"blog-backend/internal/slug"

	"gorm.io/gorm"
)

// Category is a tenant-scoped taxonomy entry, unique per (tenant, slug).
type Category struct {
	ID       uint   `gorm:"primaryKey"`
	TenantID uint   `gorm:"not null;uniqueIndex:idx_categories_tenant_slug"`
	Name     string `gorm:"size:100;not null"`
	Slug     string `gorm:"size:120;not null;uniqueIndex:idx_categories_tenant_slug"`
}

func (c *Category) BeforeSave(tx *gorm.DB) error {
	if c.Slug == "" {
		c.Slug = slug.Make(c.Name)
	}
	return nil
}
