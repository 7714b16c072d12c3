package main

import (
	"fmt"

	"blog-backend/internal/models"
	"blog-backend/internal/rbac"

	"github.com/spf13/cobra"
)

func newPermsCommand() *cobra.Command {
	permsCmd := &cobra.Command{
		Use:   "perms",
		Short: "Manage role permissions",
	}

	permsCmd.AddCommand(&cobra.Command{
		Use:   "grant-delete-comment",
		Short: "Grant can_delete_comment to the writer and reader roles",
		Long: `Ensures the can_delete_comment permission exists and grants it to both
default roles. Without the grant, users can still delete their own comments
and comments on their own blogs; the permission adds blanket deletion.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			db, _, err := openDB()
			if err != nil {
				return err
			}
			for _, roleName := range []string{models.RoleWriter, models.RoleReader} {
				role, err := rbac.EnsureRole(db, roleName)
				if err != nil {
					return err
				}
				if err := rbac.Grant(db, role.ID, models.PermCanDeleteComment); err != nil {
					return fmt.Errorf("granting to %q: %w", roleName, err)
				}
				fmt.Printf("%s: can_delete_comment granted\n", roleName)
			}
			return nil
		},
	})

	return permsCmd
}
