package auth

import (
	"fmt"
	"time"

	"github.com/gdugdh24/insightsphere-backend/internal/domain"
	"github.com/golang-jwt/jwt/v5"
)

// TokenManager issues and verifies HS256 access tokens.
type TokenManager struct {
	secret []byte
	expiry time.Duration
	issuer string
	now    func() time.Time
}

func NewTokenManager(secret string, expiry time.Duration, issuer string) *TokenManager {
	return &TokenManager{
		secret: []byte(secret),
		expiry: expiry,
		issuer: issuer,
		now:    time.Now,
	}
}

func (m *TokenManager) Generate(userID int) (string, time.Time, error) {
	now := m.now()
	expiresAt := now.Add(m.expiry)
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": userID,
		"iss":     m.issuer,
		"exp":     expiresAt.Unix(),
		"iat":     now.Unix(),
	})

	signed, err := token.SignedString(m.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, expiresAt, nil
}

// Verify returns the user id carried by a valid token.
func (m *TokenManager) Verify(tokenString string) (int, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return m.secret, nil
	},
		jwt.WithIssuer(m.issuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(m.now),
	)
	if err != nil || !token.Valid {
		return 0, domain.ErrInvalidToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return 0, domain.ErrInvalidToken
	}
	// JSON numbers decode as float64.
	userID, ok := claims["user_id"].(float64)
	if !ok || userID <= 0 {
		return 0, domain.ErrInvalidToken
	}
	return int(userID), nil
}
