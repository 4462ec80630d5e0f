package security

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const (
	defaultJWTSecret  = "axis6-dev-secret"
	defaultExpiration = time.Hour * 24
)

var (
	jwtSecret  = defaultJWTSecret
	expiration = defaultExpiration
)

// Init overrides the signing secret and token lifetime from config.
func Init(secret string, expireHours int) {
	if secret != "" {
		jwtSecret = secret
	}
	if expireHours > 0 {
		expiration = time.Duration(expireHours) * time.Hour
	}
}

// UserClaims carries the business identity embedded in every token.
type UserClaims struct {
	UserID uint64   `json:"user_id"`
	Roles  []string `json:"roles"`
	jwt.RegisteredClaims
}
