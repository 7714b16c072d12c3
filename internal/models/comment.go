package models

import "time"

type CommentStatus string

const (
	CommentStatusPending  CommentStatus = "pending"
	CommentStatusApproved CommentStatus = "approved"
	CommentStatusSpam     CommentStatus = "spam"
	CommentStatusRejected CommentStatus = "rejected"
)

// Comment belongs to a Blog and is deleted with it. Name and email are
// copied from the commenting user so the comment survives account deletion.
type Comment struct {
	ID        uint `gorm:"primaryKey"`
	TenantID  uint `gorm:"not null;index"`
	BlogID    uint `gorm:"not null;index"`
	UserID    *uint
	User      *User         `gorm:"constraint:OnDelete:SET NULL"`
	Name      string        `gorm:"size:100;not null"`
	Email     string        `gorm:"size:150;not null"`
	IsImage   bool          `gorm:"not null;default:false"`
	Image     string        `gorm:"size:255"`
	ImageURL  string        `gorm:"size:500"`
	Body      string        `gorm:"column:comment;type:text;not null"`
	Status    CommentStatus `gorm:"size:20;not null;default:pending;index"`
	CreatedAt time.Time
}
