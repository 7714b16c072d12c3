package database

import (
	"blog-backend/internal/config"
	"blog-backend/internal/models"

	"github.com/rs/zerolog"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

func Init(cfg *config.Config, log zerolog.Logger) {
	var err error

	DB, err = gorm.Open(postgres.Open(cfg.DatabaseDSN), &gorm.Config{
		TranslateError: true,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("cannot connect to database")
	}

	if err := Migrate(DB); err != nil {
		log.Fatal().Err(err).Msg("auto-migration failed")
	}

	log.Info().Msg("database connected, migration complete")
}

// Migrate creates or updates the schema for every entity. Shared with tests
// and blogctl, which open their own connections.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.SuperAdminType{},
		&models.SuperAdmin{},
		&models.Role{},
		&models.Permission{},
		&models.UserRole{},
		&models.RolePermission{},
		&models.Category{},
		&models.Tag{},
		&models.Blog{},
		&models.Comment{},
		&models.Like{},
	)
}
