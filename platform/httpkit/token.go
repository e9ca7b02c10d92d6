package httpkit

import (
	"time"

	"leadflow_backend/platform/config"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// SignAccessToken mints an HS256 access token that AuthRequired accepts.
func SignAccessToken(cfg config.TokenIssuerConfig, userID uuid.UUID, roles []string, now time.Time) (string, error) {
	claims := jwt.MapClaims{
		"sub":   userID.String(),
		"type":  "access",
		"roles": roles,
		"exp":   now.Add(cfg.GetAccessTokenTTL()).Unix(),
		"iat":   now.Unix(),
	}

	tokenObj := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return tokenObj.SignedString([]byte(cfg.GetJWTAccessSecret()))
}
