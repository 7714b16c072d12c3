package main

import (
	"fmt"

	"blog-backend/internal/models"

	"github.com/go-extras/cobraflags"
	"github.com/spf13/cobra"
	"golang.org/x/crypto/bcrypt"
)

const (
	emailFlag    = "email"
	nameFlag     = "name"
	passwordFlag = "password"
	companyFlag  = "company"
	typeFlag     = "type"
	allFlag      = "all"
)

var createFlags = map[string]cobraflags.Flag{
	emailFlag: &cobraflags.StringFlag{
		Name:  emailFlag,
		Value: "",
		Usage: "Email address for the new superadmin (required)",
	},
	nameFlag: &cobraflags.StringFlag{
		Name:  nameFlag,
		Value: "",
		Usage: "Display name (required)",
	},
	passwordFlag: &cobraflags.StringFlag{
		Name:  passwordFlag,
		Value: "",
		Usage: "Password, at least 8 characters (required)",
	},
	companyFlag: &cobraflags.StringFlag{
		Name:  companyFlag,
		Value: "",
		Usage: "Company name",
	},
	typeFlag: &cobraflags.StringFlag{
		Name:  typeFlag,
		Value: "Admin",
		Usage: "SuperAdmin type name (Admin, Manager, Editor)",
	},
}

var activateFlags = map[string]cobraflags.Flag{
	emailFlag: &cobraflags.StringFlag{
		Name:  emailFlag,
		Value: "",
		Usage: "Email of the pending superadmin to activate",
	},
	allFlag: &cobraflags.BoolFlag{
		Name:  allFlag,
		Value: false,
		Usage: "Activate every pending superadmin",
	},
}

func newSuperAdminCommand() *cobra.Command {
	saCmd := &cobra.Command{
		Use:   "superadmin [create|activate]",
		Short: "Manage superadmin accounts",
	}

	createCmd := &cobra.Command{
		Use:   "create",
		Short: "Create a superadmin directly; the account starts active",
		RunE:  runSuperAdminCreate,
	}
	cobraflags.RegisterMap(createCmd, createFlags)

	activateCmd := &cobra.Command{
		Use:   "activate",
		Short: "Approve pending superadmin registrations",
		RunE:  runSuperAdminActivate,
	}
	cobraflags.RegisterMap(activateCmd, activateFlags)

	saCmd.AddCommand(createCmd)
	saCmd.AddCommand(activateCmd)
	return saCmd
}

func runSuperAdminCreate(cmd *cobra.Command, args []string) error {
	email := createFlags[emailFlag].GetString()
	name := createFlags[nameFlag].GetString()
	password := createFlags[passwordFlag].GetString()
	if email == "" || name == "" || password == "" {
		return fmt.Errorf("--email, --name and --password are required")
	}
	if len(password) < 8 {
		return fmt.Errorf("password must be at least 8 characters")
	}

	db, _, err := openDB()
	if err != nil {
		return err
	}

	var adminTypeID *uint
	if typeName := createFlags[typeFlag].GetString(); typeName != "" {
		var adminType models.SuperAdminType
		if err := db.Where("name = ?", typeName).First(&adminType).Error; err != nil {
			return fmt.Errorf("unknown admin type %q (run 'blogctl seed admin-types' first)", typeName)
		}
		adminTypeID = &adminType.ID
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	// Direct creation is the administrative path: no pending state.
	admin := models.SuperAdmin{
		Name:         name,
		Email:        email,
		Company:      createFlags[companyFlag].GetString(),
		AdminTypeID:  adminTypeID,
		PasswordHash: string(hash),
		IsActive:     true,
	}
	if err := db.Create(&admin).Error; err != nil {
		return fmt.Errorf("could not create superadmin: %w", err)
	}

	fmt.Printf("superadmin %s created (id %d, active)\n", admin.Email, admin.ID)
	return nil
}

func runSuperAdminActivate(cmd *cobra.Command, args []string) error {
	email := activateFlags[emailFlag].GetString()
	all := activateFlags[allFlag].GetBool()
	if email == "" && !all {
		return fmt.Errorf("pass --email or --all")
	}

	db, _, err := openDB()
	if err != nil {
		return err
	}

	q := db.Model(&models.SuperAdmin{}).Where("is_active = ?", false)
	if !all {
		q = q.Where("email = ?", email)
	}

	res := q.Update("is_active", true)
	if res.Error != nil {
		return fmt.Errorf("could not activate: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		fmt.Println("no pending superadmins matched")
		return nil
	}

	fmt.Printf("activated %d superadmin(s)\n", res.RowsAffected)
	return nil
}
