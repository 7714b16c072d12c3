package models

import "time"

// SuperAdminType is a named privilege tier. Higher PermissionsLevel means
// more privilege; listings order by it.
type SuperAdminType struct {
	ID               uint   `gorm:"primaryKey"`
	Name             string `gorm:"size:100;uniqueIndex;not null"`
	Description      string `gorm:"type:text"`
	PermissionsLevel int    `gorm:"not null;default:1"`
	CreatedAt        time.Time
}

// SuperAdmin is a privileged account in an identity space separate from User.
// Self-registered accounts start inactive and stay that way until an
// administrative action activates them.
type SuperAdmin struct {
	ID           uint   `gorm:"primaryKey"`
	Name         string `gorm:"size:100;not null"`
	Email        string `gorm:"size:150;uniqueIndex;not null"`
	Company      string `gorm:"size:255"`
	AdminTypeID  *uint
	AdminType    *SuperAdminType `gorm:"constraint:OnDelete:SET NULL"`
	PasswordHash string          `gorm:"size:255;not null"`
	ProfileImage string          `gorm:"size:255"`
	IsActive     bool            `gorm:"not null;default:false"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
