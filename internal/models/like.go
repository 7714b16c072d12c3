package models

import "time"

// Like records one user liking one blog. The composite unique index is the
// backstop for concurrent toggles: at most one row per (tenant, blog, user).
type Like struct {
	ID        uint `gorm:"primaryKey"`
	TenantID  uint `gorm:"not null;uniqueIndex:idx_likes_tenant_blog_user"`
	BlogID    uint `gorm:"not null;uniqueIndex:idx_likes_tenant_blog_user"`
	UserID    uint `gorm:"not null;uniqueIndex:idx_likes_tenant_blog_user"`
	User      User `gorm:"constraint:OnDelete:CASCADE"`
	CreatedAt time.Time
}
