package main

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"blog-backend/internal/models"
	"blog-backend/internal/rbac"

	"github.com/spf13/cobra"
)

func newUsersCommand() *cobra.Command {
	usersCmd := &cobra.Command{
		Use:   "users",
		Short: "Inspect user accounts",
	}

	usersCmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List users with their roles",
		RunE: func(cmd *cobra.Command, args []string) error {
			db, _, err := openDB()
			if err != nil {
				return err
			}

			var users []models.User
			if err := db.Order("id asc").Find(&users).Error; err != nil {
				return err
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tNAME\tEMAIL\tACTIVE\tROLES\tCREATED")
			for _, u := range users {
				roles, err := rbac.RolesOf(db, u.ID)
				if err != nil {
					return err
				}
				fmt.Fprintf(w, "%d\t%s\t%s\t%t\t%s\t%s\n",
					u.ID, u.Name, u.Email, u.IsActive,
					strings.Join(roles, ","),
					u.CreatedAt.Format("2006-01-02 15:04"))
			}
			return w.Flush()
		},
	})

	return usersCmd
}
