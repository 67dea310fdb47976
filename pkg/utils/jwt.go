package utils

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/emonshikder007/chat-app/config"
	"github.com/emonshikder007/chat-app/pkg/errors"
)

// GenerateJWTToken mints a signed access token carrying the user id as subject.
func GenerateJWTToken(userID uuid.UUID, cfg config.Config) (string, error) {
	expiry := time.Duration(cfg.JWT.ExpiredIn) * time.Hour
	if cfg.JWT.ExpiredIn <= 0 {
		expiry = 24 * time.Hour
	}

	claims := jwt.RegisteredClaims{
		Subject:   userID.String(),
		IssuedAt:  jwt.NewNumericDate(time.Now()),
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(expiry)),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(cfg.JWT.Secret))
}

// ParseJWTToken validates the token and returns the user id it was minted for.
func ParseJWTToken(tokenStr string, cfg config.Config) (uuid.UUID, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &jwt.RegisteredClaims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.Unauthorized("unexpected signing method")
		}
		return []byte(cfg.JWT.Secret), nil
	})
	if err != nil || !token.Valid {
		return uuid.Nil, errors.Unauthorized("invalid or expired token")
	}

	claims, ok := token.Claims.(*jwt.RegisteredClaims)
	if !ok {
		return uuid.Nil, errors.Unauthorized("invalid token claims")
	}

	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return uuid.Nil, errors.Unauthorized("invalid token subject")
	}
	return userID, nil
}
