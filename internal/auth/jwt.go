package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// IdentityKind separates the two authentication spaces. A token minted for
// one kind never satisfies the other's middleware.
type IdentityKind string

const (
	KindUser       IdentityKind = "user"
	KindSuperAdmin IdentityKind = "superadmin"
)

type JWTCustomClaims struct {
	IdentityID uint         `json:"identity_id"`
	Email      string       `json:"email"`
	Kind       IdentityKind `json:"kind"`
	jwt.RegisteredClaims
}

func GenerateToken(secret string, identityID uint, email string, kind IdentityKind) (string, error) {
	claims := &JWTCustomClaims{
		IdentityID: identityID,
		Email:      email,
		Kind:       kind,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(24 * time.Hour)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}
