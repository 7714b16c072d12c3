package models

// Well-known role and permission names. Registration creates the role a user
// picks and grants it the matching default permission set.
const (
	RoleWriter = "writer"
	RoleReader = "reader"

	PermCanWrite         = "can_write"
	PermCanRead          = "can_read"
	PermCanComment       = "can_comment"
	PermCanDeleteComment = "can_delete_comment"
)

type Role struct {
	ID   uint   `gorm:"primaryKey"`
	Name string `gorm:"size:50;uniqueIndex;not null"`
}

type Permission struct {
	ID   uint   `gorm:"primaryKey"`
	Name string `gorm:"size:100;uniqueIndex;not null"`
}

// UserRole links a user to a role. The composite unique index makes Assign
// idempotent at the database level.
type UserRole struct {
	ID     uint `gorm:"primaryKey"`
	UserID uint `gorm:"not null;uniqueIndex:idx_user_roles_pair"`
	RoleID uint `gorm:"not null;uniqueIndex:idx_user_roles_pair"`
	User   User `gorm:"constraint:OnDelete:CASCADE"`
	Role   Role `gorm:"constraint:OnDelete:CASCADE"`
}

// RolePermission links a role to a permission, unique per pair.
type RolePermission struct {
	ID           uint       `gorm:"primaryKey"`
	RoleID       uint       `gorm:"not null;uniqueIndex:idx_role_permissions_pair"`
	PermissionID uint       `gorm:"not null;uniqueIndex:idx_role_permissions_pair"`
	Role         Role       `gorm:"constraint:OnDelete:CASCADE"`
	Permission   Permission `gorm:"constraint:OnDelete:CASCADE"`
}
