package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Account roles. Admin passes every role gate.
const (
	RoleAdmin  = "Admin"
	RoleDoctor = "Doctor"
	RoleStaff  = "Staff"
)

// ValidRole reports whether role is one of the three known account roles.
func ValidRole(role string) bool {
	return role == RoleAdmin || role == RoleDoctor || role == RoleStaff
}

// Identity is the authenticated caller as seen by handlers and services.
// It is carried on the request context; core components never read ambient
// session state.
type Identity struct {
	Username string `json:"username"`
	FullName string `json:"full_name"`
	Role     string `json:"role"`
}

// Claims is the JWT payload for a logged-in user.
type Claims struct {
	jwt.RegisteredClaims
	FullName string `json:"full_name"`
	Role     string `json:"role"`
}

// TokenIssuer signs and verifies HMAC bearer tokens.
type TokenIssuer struct {
	secret []byte
	ttl    time.Duration
}

func NewTokenIssuer(secret []byte, ttl time.Duration) *TokenIssuer {
	return &TokenIssuer{secret: secret, ttl: ttl}
}

// Issue signs a token for the given identity.
func (t *TokenIssuer) Issue(id Identity) (string, error) {
	now := time.Now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   id.Username,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(t.ttl)),
		},
		FullName: id.FullName,
		Role:     id.Role,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(t.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Parse verifies a token string and returns the identity it carries.
func (t *TokenIssuer) Parse(tokenStr string) (Identity, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return t.secret, nil
	})
	if err != nil {
		return Identity{}, fmt.Errorf("parse token: %w", err)
	}
	if !token.Valid {
		return Identity{}, fmt.Errorf("invalid token")
	}

	return Identity{
		Username: claims.Subject,
		FullName: claims.FullName,
		Role:     claims.Role,
	}, nil
}
