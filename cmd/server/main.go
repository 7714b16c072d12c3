package main

import (
	"strings"

	"blog-backend/internal/auth"
	"blog-backend/internal/blog"
	"blog-backend/internal/comment"
	"blog-backend/internal/config"
	"blog-backend/internal/database"
	"blog-backend/internal/logger"
	"blog-backend/internal/superadmin"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
)

func main() {
	cfg := config.Load()
	log := logger.New(nil)
	database.Init(cfg, log)

	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			if e, ok := err.(*fiber.Error); ok {
				return c.Status(e.Code).JSON(fiber.Map{
					"error": e.Message,
				})
			}
			log.Error().Err(err).Str("path", c.Path()).Msg("unexpected error")
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "unexpected server error",
			})
		},
	})

	corsOrigins := strings.Split(cfg.CORSOrigins, ",")
	for i := range corsOrigins {
		corsOrigins[i] = strings.TrimSpace(corsOrigins[i])
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins: strings.Join(corsOrigins, ","),
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
	}))

	api := app.Group("/api")

	// Public user auth
	api.Post("/auth/register", auth.RegisterHandler(cfg))
	api.Post("/auth/login", auth.LoginHandler(cfg))

	// Public superadmin auth (independent identity space)
	api.Post("/superadmin/register", superadmin.RegisterHandler())
	api.Post("/superadmin/login", superadmin.LoginHandler(cfg))
	api.Get("/superadmin/types", superadmin.ListTypesHandler())

	// Public reads; identity is optional but personalizes the response
	public := api.Group("", auth.OptionalJWTMiddleware(cfg))
	public.Get("/blogs", blog.ListPublishedHandler(cfg))
	public.Get("/blogs/:id", blog.DetailHandler(cfg))
	public.Get("/search", blog.SearchHandler(cfg))
	public.Get("/users/:id/profile", blog.ProfileHandler(cfg))

	// SuperAdmin-authenticated routes. Registered before the user group:
	// Fiber middleware matches by prefix, and the user group's middleware
	// sits on /api itself.
	admin := api.Group("/superadmin", auth.JWTMiddleware(cfg), auth.RequireKind(auth.KindSuperAdmin))
	admin.Post("/logout", superadmin.LogoutHandler())
	admin.Post("/admins", superadmin.CreateHandler())
	admin.Post("/admins/:id/activate", superadmin.ActivateHandler())
	admin.Get("/comments", superadmin.ListCommentsHandler())
	admin.Post("/comments/:id/status", superadmin.SetCommentStatusHandler())

	// User-authenticated routes
	user := api.Group("", auth.JWTMiddleware(cfg), auth.RequireKind(auth.KindUser))
	user.Post("/auth/logout", auth.LogoutHandler())
	user.Get("/auth/me", auth.MeHandler())
	user.Post("/auth/account/delete", auth.DeleteAccountHandler())

	user.Get("/dashboard", blog.DashboardHandler(cfg))
	user.Post("/blogs", blog.CreateHandler(cfg))
	user.Put("/blogs/:id", blog.UpdateHandler(cfg))
	user.Delete("/blogs/:id", blog.DeleteHandler(cfg))
	user.Post("/blogs/:id/like", blog.ToggleLikeHandler(cfg))
	user.Post("/blogs/:id/comments", comment.AddHandler(cfg))
	user.Delete("/comments/:id", comment.DeleteHandler(cfg))

	log.Info().Str("port", cfg.HTTPPort).Msg("server listening")
	if err := app.Listen(":" + cfg.HTTPPort); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}
