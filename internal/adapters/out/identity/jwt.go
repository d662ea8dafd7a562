// Package identity verifies bearer tokens and extracts the request
// principal. Tokens are HS256 JWTs carrying the user's UUID and role.
package identity

import (
	"errors"

	"foodtruck/internal/core/domain/model/kernel"
	"foodtruck/internal/core/ports"

	"github.com/golang-jwt/jwt/v5"
)

var ErrInvalidToken = errors.New("invalid access token")

// Claims is the JWT payload issued by the auth service. The user identifier
// travels in the "uuid" claim.
type Claims struct {
	UserID string `json:"uuid"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

// JWTIdentityProvider implements ports.IdentityProvider over HS256 tokens.
type JWTIdentityProvider struct {
	secret []byte
}

// NewJWTIdentityProvider creates a verifier for the given shared secret.
func NewJWTIdentityProvider(secret string) *JWTIdentityProvider {
	return &JWTIdentityProvider{secret: []byte(secret)}
}

// Verify parses and validates the token and returns the principal.
// Tokens without a role default to the customer role; expiry and signature
// failures surface as ErrInvalidToken.
func (p *JWTIdentityProvider) Verify(tokenStr string) (ports.Principal, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(_ *jwt.Token) (any, error) {
		return p.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return ports.Principal{}, errors.Join(ErrInvalidToken, err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return ports.Principal{}, ErrInvalidToken
	}

	userID, err := kernel.UUIDFromString(claims.UserID)
	if err != nil {
		return ports.Principal{}, errors.Join(ErrInvalidToken, err)
	}

	role := claims.Role
	if role == "" {
		role = ports.RoleUser
	}

	return ports.Principal{
		UserID: userID,
		Role:   role,
	}, nil
}
