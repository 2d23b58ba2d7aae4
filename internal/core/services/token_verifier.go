package services

import (
	"context"

	"stockroom/internal/core/domain"
	"stockroom/internal/core/ports"

	"github.com/golang-jwt/jwt/v5"
)

// idTokenClaims mirrors the claims carried by identity-provider tokens:
// the subject is the uid, email travels as a private claim.
type idTokenClaims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

type jwtVerifier struct {
	secret []byte
}

// NewJWTVerifier returns a TokenVerifier that accepts HS256-signed ID tokens.
func NewJWTVerifier(secret string) ports.TokenVerifier {
	return &jwtVerifier{secret: []byte(secret)}
}

func (v *jwtVerifier) Verify(ctx context.Context, tokenString string) (*ports.TokenClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &idTokenClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, domain.ErrInvalidToken
		}
		return v.secret, nil
	})
	if err != nil {
		return nil, domain.ErrInvalidToken
	}

	claims, ok := token.Claims.(*idTokenClaims)
	if !ok || !token.Valid || claims.Subject == "" {
		return nil, domain.ErrInvalidToken
	}

	return &ports.TokenClaims{
		UID:   domain.UserID(claims.Subject),
		Email: claims.Email,
	}, nil
}
