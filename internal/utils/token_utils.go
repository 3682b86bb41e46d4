package utils

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/stocknest/stocknest_backend/internal/core/domain"
)

// AccessClaims are the JWT claims carried by access tokens. Role and
// permissions travel in the token so route gates do not need a user lookup.
type AccessClaims struct {
	Role        string   `json:"role"`
	Permissions []string `json:"permissions,omitempty"`
	jwt.RegisteredClaims
}

// GenerateAccessJWT generates a signed access token for the given user.
func GenerateAccessJWT(user *domain.User, secret string, expiry time.Duration, issuer string) (string, error) {
	perms := make([]string, len(user.Permissions))
	for i, p := range user.Permissions {
		perms[i] = string(p)
	}
	now := time.Now()
	claims := AccessClaims{
		Role:        string(user.Role),
		Permissions: perms,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   user.UserID,
			ExpiresAt: jwt.NewNumericDate(now.Add(expiry)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// ParseAccessJWT parses an access token string and validates its signature
// and standard claims.
func ParseAccessJWT(tokenString string, secret string) (*AccessClaims, error) {
	claims := &AccessClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, jwt.ErrTokenSignatureInvalid
	}
	return claims, nil
}
