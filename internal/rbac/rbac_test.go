package rbac_test

import (
	"testing"

	"blog-backend/internal/models"
	"blog-backend/internal/rbac"
	"blog-backend/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAssignIsIdempotent(t *testing.T) {
	db := testutil.NewDB(t)
	user := testutil.NewUser(t, db, "Ada", "ada@example.com", "")
	role, err := rbac.EnsureRole(db, models.RoleReader)
	require.NoError(t, err)

	require.NoError(t, rbac.Assign(db, user.ID, role.ID))
	require.NoError(t, rbac.Assign(db, user.ID, role.ID))

	var count int64
	db.Model(&models.UserRole{}).Where("user_id = ? AND role_id = ?", user.ID, role.ID).Count(&count)
	assert.EqualValues(t, 1, count)
}

func TestGrantIsIdempotent(t *testing.T) {
	db := testutil.NewDB(t)
	role, err := rbac.EnsureRole(db, models.RoleWriter)
	require.NoError(t, err)

	require.NoError(t, rbac.Grant(db, role.ID, models.PermCanDeleteComment))
	require.NoError(t, rbac.Grant(db, role.ID, models.PermCanDeleteComment))

	var perm models.Permission
	require.NoError(t, db.Where("name = ?", models.PermCanDeleteComment).First(&perm).Error)

	var count int64
	db.Model(&models.RolePermission{}).Where("role_id = ? AND permission_id = ?", role.ID, perm.ID).Count(&count)
	assert.EqualValues(t, 1, count)
}

func TestDefaultRoleGrants(t *testing.T) {
	db := testutil.NewDB(t)

	writer := testutil.NewUser(t, db, "W", "w@example.com", models.RoleWriter)
	reader := testutil.NewUser(t, db, "R", "r@example.com", models.RoleReader)

	writerPerms, err := rbac.PermissionsOf(db, writer.ID)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{models.PermCanWrite, models.PermCanRead, models.PermCanComment}, writerPerms)

	readerPerms, err := rbac.PermissionsOf(db, reader.ID)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{models.PermCanRead, models.PermCanComment}, readerPerms)
}

func TestHasPermission(t *testing.T) {
	db := testutil.NewDB(t)
	user := testutil.NewUser(t, db, "R", "r@example.com", models.RoleReader)

	t.Run("anonymous caller is always false", func(t *testing.T) {
		assert.False(t, rbac.HasPermission(db, 0, models.PermCanRead))
	})

	t.Run("missing permission is false, not an error", func(t *testing.T) {
		assert.False(t, rbac.HasPermission(db, user.ID, models.PermCanDeleteComment))
		assert.False(t, rbac.HasPermission(db, user.ID, "no_such_permission"))
	})

	t.Run("granting the role flips the check without restart", func(t *testing.T) {
		assert.False(t, rbac.HasPermission(db, user.ID, models.PermCanWrite))

		var role models.Role
		require.NoError(t, db.Where("name = ?", models.RoleReader).First(&role).Error)
		require.NoError(t, rbac.Grant(db, role.ID, models.PermCanWrite))

		assert.True(t, rbac.HasPermission(db, user.ID, models.PermCanWrite))
	})

	t.Run("union across multiple roles", func(t *testing.T) {
		multi := testutil.NewUser(t, db, "M", "m@example.com", models.RoleReader)
		writerRole, err := rbac.EnsureRole(db, models.RoleWriter)
		require.NoError(t, err)
		require.NoError(t, rbac.Assign(db, multi.ID, writerRole.ID))

		perms, err := rbac.PermissionsOf(db, multi.ID)
		require.NoError(t, err)
		assert.Contains(t, perms, models.PermCanWrite)
		assert.Contains(t, perms, models.PermCanComment)
	})
}

func TestCanModerateComment(t *testing.T) {
	db := testutil.NewDB(t)

	author := testutil.NewUser(t, db, "Author", "author@example.com", models.RoleWriter)
	commenter := testutil.NewUser(t, db, "Commenter", "commenter@example.com", models.RoleReader)
	moderator := testutil.NewUser(t, db, "Mod", "mod@example.com", models.RoleReader)
	bystander := testutil.NewUser(t, db, "Other", "other@example.com", models.RoleReader)

	blog := &models.Blog{TenantID: testutil.TenantID, Title: "Post", Content: "body", AuthorID: &author.ID}
	require.NoError(t, db.Create(blog).Error)
	comment := &models.Comment{
		TenantID: testutil.TenantID, BlogID: blog.ID, UserID: &commenter.ID,
		Name: commenter.Name, Email: commenter.Email, Body: "hi",
	}
	require.NoError(t, db.Create(comment).Error)

	modOnly, err := rbac.EnsureRole(db, "moderator")
	require.NoError(t, err)
	require.NoError(t, rbac.Grant(db, modOnly.ID, models.PermCanDeleteComment))
	require.NoError(t, rbac.Assign(db, moderator.ID, modOnly.ID))

	assert.True(t, rbac.CanModerateComment(db, commenter.ID, comment, blog), "comment creator")
	assert.True(t, rbac.CanModerateComment(db, author.ID, comment, blog), "blog author")
	assert.True(t, rbac.CanModerateComment(db, moderator.ID, comment, blog), "permission holder")
	assert.False(t, rbac.CanModerateComment(db, bystander.ID, comment, blog), "unrelated user")
	assert.False(t, rbac.CanModerateComment(db, 0, comment, blog), "anonymous")
}
