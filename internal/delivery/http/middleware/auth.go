package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/gdugdh24/insightsphere-backend/internal/domain"
	"github.com/gin-gonic/gin"
)

type TokenVerifier interface {
	VerifyToken(ctx context.Context, token string) (int, error)
}

type AuthMiddleware struct {
	verifier TokenVerifier
}

func NewAuthMiddleware(verifier TokenVerifier) *AuthMiddleware {
	return &AuthMiddleware{verifier: verifier}
}

type errorBody struct {
	Error string      `json:"error"`
	Kind  domain.Kind `json:"kind"`
}

// RequireAuth validates the bearer token and stores user_id in the context.
func (m *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		scheme, token, found := strings.Cut(header, " ")
		if !found || !strings.EqualFold(scheme, "Bearer") || strings.TrimSpace(token) == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, errorBody{
				Error: "missing bearer token",
				Kind:  domain.KindUnauthorized,
			})
			return
		}

		userID, err := m.verifier.VerifyToken(c.Request.Context(), strings.TrimSpace(token))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, errorBody{
				Error: domain.ErrInvalidToken.Message,
				Kind:  domain.KindUnauthorized,
			})
			return
		}

		c.Set("user_id", userID)
		c.Next()
	}
}
