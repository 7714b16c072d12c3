// Package rbac holds the role/permission graph and the authorization
// predicates every protected handler goes through. The graph is exactly two
// hops deep: User -> Role -> Permission.
package rbac

import (
	"blog-backend/internal/models"

	"gorm.io/gorm"
)

// defaultGrants is the permission set a role receives when it is first
// created during registration or seeding.
var defaultGrants = map[string][]string{
	models.RoleWriter: {models.PermCanWrite, models.PermCanRead, models.PermCanComment},
	models.RoleReader: {models.PermCanRead, models.PermCanComment},
}

// EnsureRole gets or creates the named role and, when it carries a default
// permission set, grants it. Safe to call on every registration.
func EnsureRole(db *gorm.DB, name string) (*models.Role, error) {
	var role models.Role
	if err := db.Where(models.Role{Name: name}).FirstOrCreate(&role).Error; err != nil {
		return nil, err
	}
	for _, perm := range defaultGrants[name] {
		if err := Grant(db, role.ID, perm); err != nil {
			return nil, err
		}
	}
	return &role, nil
}

// Grant links a role to a permission, creating the permission if it does not
// exist yet. Idempotent: granting twice leaves exactly one association row.
func Grant(db *gorm.DB, roleID uint, permName string) error {
	var perm models.Permission
	if err := db.Where(models.Permission{Name: permName}).FirstOrCreate(&perm).Error; err != nil {
		return err
	}
	return db.Where(models.RolePermission{RoleID: roleID, PermissionID: perm.ID}).
		FirstOrCreate(&models.RolePermission{RoleID: roleID, PermissionID: perm.ID}).Error
}

// Assign links a user to a role. Idempotent per (user, role) pair.
func Assign(db *gorm.DB, userID, roleID uint) error {
	return db.Where(models.UserRole{UserID: userID, RoleID: roleID}).
		FirstOrCreate(&models.UserRole{UserID: userID, RoleID: roleID}).Error
}

// PermissionsOf returns the union of permission names reachable from every
// role the user holds.
func PermissionsOf(db *gorm.DB, userID uint) ([]string, error) {
	var names []string
	err := db.Model(&models.Permission{}).
		Distinct("permissions.name").
		Joins("JOIN role_permissions ON role_permissions.permission_id = permissions.id").
		Joins("JOIN user_roles ON user_roles.role_id = role_permissions.role_id").
		Where("user_roles.user_id = ?", userID).
		Pluck("permissions.name", &names).Error
	return names, err
}

// RolesOf returns the names of the roles the user holds.
func RolesOf(db *gorm.DB, userID uint) ([]string, error) {
	var names []string
	err := db.Model(&models.Role{}).
		Joins("JOIN user_roles ON user_roles.role_id = roles.id").
		Where("user_roles.user_id = ?", userID).
		Pluck("roles.name", &names).Error
	return names, err
}

// HasPermission reports whether the user can perform the named action. A
// missing permission is false, never an error; an unauthenticated caller
// (userID zero) short-circuits without touching the database.
func HasPermission(db *gorm.DB, userID uint, permName string) bool {
	if userID == 0 {
		return false
	}
	var count int64
	err := db.Model(&models.Permission{}).
		Joins("JOIN role_permissions ON role_permissions.permission_id = permissions.id").
		Joins("JOIN user_roles ON user_roles.role_id = role_permissions.role_id").
		Where("user_roles.user_id = ? AND permissions.name = ?", userID, permName).
		Count(&count).Error
	if err != nil {
		return false
	}
	return count > 0
}

// CanModerateComment reports whether the user may delete the comment:
// holders of can_delete_comment, the comment's own creator, and the author
// of the blog the comment sits on.
func CanModerateComment(db *gorm.DB, userID uint, comment *models.Comment, blog *models.Blog) bool {
	if userID == 0 {
		return false
	}
	if comment.UserID != nil && *comment.UserID == userID {
		return true
	}
	if blog != nil && blog.AuthorID != nil && *blog.AuthorID == userID {
		return true
	}
	return HasPermission(db, userID, models.PermCanDeleteComment)
}
