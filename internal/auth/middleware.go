package auth

import (
	"fmt"
	"strings"

	"blog-backend/internal/config"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

const (
	CtxIdentityIDKey = "identity_id"
	CtxEmailKey      = "identity_email"
	CtxKindKey       = "identity_kind"
)

func parseToken(cfg *config.Config, tokenStr string) (*JWTCustomClaims, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &JWTCustomClaims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method")
		}
		return []byte(cfg.JWTSecret), nil
	})
	if err != nil || !token.Valid {
		return nil, fmt.Errorf("invalid or expired token")
	}
	claims, ok := token.Claims.(*JWTCustomClaims)
	if !ok {
		return nil, fmt.Errorf("malformed claims")
	}
	return claims, nil
}

func bearerToken(c *fiber.Ctx) (string, bool) {
	authHeader := c.Get("Authorization")
	if authHeader == "" {
		return "", false
	}
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return "", false
	}
	return parts[1], true
}

// JWTMiddleware requires a valid bearer token of any identity kind and
// stores its claims in the request locals.
func JWTMiddleware(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		tokenStr, ok := bearerToken(c)
		if !ok {
			return fiber.NewError(fiber.StatusUnauthorized, "missing or malformed Authorization header")
		}

		claims, err := parseToken(cfg, tokenStr)
		if err != nil {
			return fiber.NewError(fiber.StatusUnauthorized, "invalid or expired token")
		}

		c.Locals(CtxIdentityIDKey, claims.IdentityID)
		c.Locals(CtxEmailKey, claims.Email)
		c.Locals(CtxKindKey, claims.Kind)

		return c.Next()
	}
}

// OptionalJWTMiddleware populates identity locals when a valid token is
// present but lets anonymous requests through. Used on public reads that
// personalize their response (like flags, author-only drafts).
func OptionalJWTMiddleware(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if tokenStr, ok := bearerToken(c); ok {
			if claims, err := parseToken(cfg, tokenStr); err == nil {
				c.Locals(CtxIdentityIDKey, claims.IdentityID)
				c.Locals(CtxEmailKey, claims.Email)
				c.Locals(CtxKindKey, claims.Kind)
			}
		}
		return c.Next()
	}
}

// RequireKind gates a route group to one identity space.
func RequireKind(kind IdentityKind) fiber.Handler {
	return func(c *fiber.Ctx) error {
		got, ok := c.Locals(CtxKindKey).(IdentityKind)
		if !ok || got != kind {
			return fiber.NewError(fiber.StatusForbidden, "forbidden")
		}
		return c.Next()
	}
}

// UserID returns the authenticated user's id, or 0 when the request is
// anonymous or authenticated as a superadmin.
func UserID(c *fiber.Ctx) uint {
	kind, ok := c.Locals(CtxKindKey).(IdentityKind)
	if !ok || kind != KindUser {
		return 0
	}
	id, _ := c.Locals(CtxIdentityIDKey).(uint)
	return id
}

// SuperAdminID returns the authenticated superadmin's id, or 0.
func SuperAdminID(c *fiber.Ctx) uint {
	kind, ok := c.Locals(CtxKindKey).(IdentityKind)
	if !ok || kind != KindSuperAdmin {
		return 0
	}
	id, _ := c.Locals(CtxIdentityIDKey).(uint)
	return id
}
