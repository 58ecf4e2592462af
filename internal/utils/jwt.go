package utils

import (
	"os"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// tokenTTL is the lifetime of issued access tokens.
const tokenTTL = 24 * time.Hour

// jwtSecret is the HMAC signing key. It defaults to the JWT_SECRET
// environment variable and can be overridden at startup via SetJWTSecret.
var jwtSecret = []byte(os.Getenv("JWT_SECRET"))

// SetJWTSecret overrides the signing key. Called once from main after
// configuration is loaded.
func SetJWTSecret(secret string) {
	jwtSecret = []byte(secret)
}

// Claims carries the authenticated principal's identity inside a JWT.
type Claims struct {
	UserID      int    `json:"user_id"`
	Username    string `json:"username"`
	IsStaff     bool   `json:"is_staff"`
	IsSuperuser bool   `json:"is_superuser"`
	jwt.RegisteredClaims
}

// GenerateJWT issues a signed HS256 token for the given principal. The token
// carries a unique jti so it can be revoked individually on logout.
func GenerateJWT(userID int, username string, isStaff, isSuperuser bool) (string, error) {
	now := time.Now()
	claims := Claims{
		UserID:      userID,
		Username:    username,
		IsStaff:     isStaff,
		IsSuperuser: isSuperuser,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.New().String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(tokenTTL)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(jwtSecret)
}

// ValidateJWT parses and verifies a token string, returning its claims.
func ValidateJWT(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return jwtSecret, nil
	})
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
