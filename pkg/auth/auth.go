// Package auth provides password hashing and signed bearer tokens.
package auth

import (
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

// DefaultTokenTTL is how long an issued token stays valid.
const DefaultTokenTTL = 30 * 24 * time.Hour

// BearerToken extracts the token from an Authorization header value.
// Both "Bearer <token>" and a raw token are accepted; an empty header
// yields an empty token.
func BearerToken(header string) string {
	const prefix = "Bearer "
	if len(header) > len(prefix) && strings.EqualFold(header[:len(prefix)], prefix) {
		return header[len(prefix):]
	}
	return header
}

// Claims carries the token subject: the ID of the user it was issued to.
type Claims struct {
	UserID string `json:"user_id"`
	jwt.RegisteredClaims
}

// Service hashes credentials and issues/verifies HS256 tokens.
type Service struct {
	secret     []byte
	tokenTTL   time.Duration
	bcryptCost int
}

// NewService creates an auth service. A zero tokenTTL falls back to
// DefaultTokenTTL, a zero bcryptCost to bcrypt.DefaultCost.
func NewService(secret string, tokenTTL time.Duration, bcryptCost int) *Service {
	if tokenTTL == 0 {
		tokenTTL = DefaultTokenTTL
	}
	if bcryptCost == 0 {
		bcryptCost = bcrypt.DefaultCost
	}
	return &Service{
		secret:     []byte(secret),
		tokenTTL:   tokenTTL,
		bcryptCost: bcryptCost,
	}
}

// HashPassword returns a salted one-way hash of the password.
func (s *Service) HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.bcryptCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hash), nil
}

// CheckPassword reports whether the password matches the stored hash.
// A mismatch is a normal outcome, not an error.
func (s *Service) CheckPassword(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

// GenerateToken signs a token asserting the given user as its subject.
func (s *Service) GenerateToken(userID string) (string, error) {
	now := time.Now()
	claims := Claims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.tokenTTL)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// ValidateToken verifies signature and expiry and returns the subject user
// ID. Any failure means the token asserts no identity.
func (s *Service) ValidateToken(tokenString string) (string, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil {
		return "", fmt.Errorf("invalid token: %w", err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return "", fmt.Errorf("invalid token claims")
	}
	if claims.UserID == "" {
		return "", fmt.Errorf("token has no subject")
	}
	return claims.UserID, nil
}
