package config

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	HTTPPort    string
	DatabaseDSN string
	JWTSecret   string
	CORSOrigins string
	TenantID    uint   // tenant stamped onto every content row
	UploadPath  string // directory for comment/blog image uploads
}

func Load() *Config {
	cfg := load()

	if cfg.JWTSecret == "" {
		log.Fatal("[FATAL] JWT_SECRET is not set; refusing to start")
	}
	if len(cfg.JWTSecret) < 32 {
		log.Fatal("[FATAL] JWT_SECRET must be at least 32 characters")
	}
	if cfg.TenantID == 0 {
		log.Fatal("[FATAL] TENANT_ID must be a positive integer")
	}

	return cfg
}

// LoadDB skips the JWT checks; blogctl talks to the database only.
func LoadDB() *Config {
	cfg := load()
	if cfg.TenantID == 0 {
		log.Fatal("[FATAL] TENANT_ID must be a positive integer")
	}
	return cfg
}

func load() *Config {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	v := viper.New()
	v.AutomaticEnv()
	v.SetDefault("HTTP_PORT", "8080")
	v.SetDefault("DATABASE_DSN", "host=localhost user=postgres password=postgres dbname=blog port=5432 sslmode=disable")
	v.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:5173")
	v.SetDefault("TENANT_ID", 1)
	v.SetDefault("UPLOAD_PATH", "./uploads")

	return &Config{
		HTTPPort:    v.GetString("HTTP_PORT"),
		DatabaseDSN: v.GetString("DATABASE_DSN"),
		JWTSecret:   v.GetString("JWT_SECRET"),
		CORSOrigins: v.GetString("CORS_ALLOWED_ORIGINS"),
		TenantID:    v.GetUint("TENANT_ID"),
		UploadPath:  v.GetString("UPLOAD_PATH"),
	}
}
