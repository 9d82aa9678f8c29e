package jwt

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenTTLHours is how long issued tokens stay valid (7 days).
const TokenTTLHours = 168

func Issue(secret string, userID int64, role string) (string, error) {
	claims := jwt.MapClaims{
		"sub":  userID,
		"role": role,
		"exp":  time.Now().Add(TokenTTLHours * time.Hour).Unix(),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(secret))
}
