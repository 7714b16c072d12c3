package main

import (
	"fmt"

	"blog-backend/internal/models"
	"blog-backend/internal/rbac"

	"github.com/spf13/cobra"
)

// The category set the site launched with.
var seedCategories = []string{
	"Daily Life",
	"Motivation",
	"Self Improvement",
	"Career Guidance",
	"Student Life",
	"AI & Machine Learning",
	"Startups",
	"Freelancing",
	"Online Earning",
	"Tech News",
	"Technology",
	"Programming",
	"Django",
	"Projects",
	"Tutorials",
	"Tips & Tricks",
}

var seedAdminTypes = []models.SuperAdminType{
	{Name: "Admin", Description: "Full administrative access with all permissions", PermissionsLevel: 3},
	{Name: "Manager", Description: "Manager with content moderation and user management permissions", PermissionsLevel: 2},
	{Name: "Editor", Description: "Editor with limited permissions for content management", PermissionsLevel: 1},
}

func newSeedCommand() *cobra.Command {
	seedCmd := &cobra.Command{
		Use:   "seed [roles|categories|admin-types]",
		Short: "Seed reference data",
	}

	seedCmd.AddCommand(&cobra.Command{
		Use:   "roles",
		Short: "Create the writer and reader roles with their default permissions",
		RunE: func(cmd *cobra.Command, args []string) error {
			db, _, err := openDB()
			if err != nil {
				return err
			}
			for _, name := range []string{models.RoleWriter, models.RoleReader} {
				if _, err := rbac.EnsureRole(db, name); err != nil {
					return fmt.Errorf("seeding role %q: %w", name, err)
				}
				fmt.Printf("role %q ready\n", name)
			}
			return nil
		},
	})

	seedCmd.AddCommand(&cobra.Command{
		Use:   "categories",
		Short: "Create the default blog categories for the configured tenant",
		RunE: func(cmd *cobra.Command, args []string) error {
			db, cfg, err := openDB()
			if err != nil {
				return err
			}
			for _, name := range seedCategories {
				var cat models.Category
				err := db.Where(models.Category{TenantID: cfg.TenantID, Name: name}).
					FirstOrCreate(&cat, models.Category{TenantID: cfg.TenantID, Name: name}).Error
				if err != nil {
					return fmt.Errorf("seeding category %q: %w", name, err)
				}
				fmt.Printf("category %q ready (slug %q)\n", cat.Name, cat.Slug)
			}
			return nil
		},
	})

	seedCmd.AddCommand(&cobra.Command{
		Use:   "admin-types",
		Short: "Create the superadmin privilege tiers",
		RunE: func(cmd *cobra.Command, args []string) error {
			db, _, err := openDB()
			if err != nil {
				return err
			}
			for _, t := range seedAdminTypes {
				var existing models.SuperAdminType
				err := db.Where(models.SuperAdminType{Name: t.Name}).
					Attrs(models.SuperAdminType{Description: t.Description, PermissionsLevel: t.PermissionsLevel}).
					FirstOrCreate(&existing).Error
				if err != nil {
					return fmt.Errorf("seeding admin type %q: %w", t.Name, err)
				}
				fmt.Printf("admin type %q ready (level %d)\n", existing.Name, existing.PermissionsLevel)
			}
			return nil
		},
	})

	return seedCmd
}
