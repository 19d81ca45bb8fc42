package handler

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/gdugdh24/insightsphere-backend/internal/domain"
	"github.com/gdugdh24/insightsphere-backend/internal/logging"
	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error string      `json:"error"`
	Kind  domain.Kind `json:"kind"`
}

var kindStatus = map[domain.Kind]int{
	domain.KindValidation:       http.StatusBadRequest,
	domain.KindNotFound:         http.StatusNotFound,
	domain.KindConflict:         http.StatusConflict,
	domain.KindInvalidOperation: http.StatusUnprocessableEntity,
	domain.KindExpired:          http.StatusGone,
	domain.KindUpstream:         http.StatusServiceUnavailable,
	domain.KindUnauthorized:     http.StatusUnauthorized,
	domain.KindInternal:         http.StatusInternalServerError,
}

// StatusFor maps a domain error kind to its HTTP status.
func StatusFor(kind domain.Kind) int {
	if status, ok := kindStatus[kind]; ok {
		return status
	}
	return http.StatusInternalServerError
}

// respondError writes err as JSON. Upstream and internal failures expose
// only a generic message; the cause goes to the log.
func respondError(c *gin.Context, err error) {
	kind := domain.KindOf(err)
	status := StatusFor(kind)

	msg := err.Error()
	switch kind {
	case domain.KindUpstream:
		msg = domain.ErrUpstream.Message
		logging.Ctx(c.Request.Context()).Warn().Err(err).Str("path", c.FullPath()).Msg("[HTTP] Upstream failure")
	case domain.KindInternal:
		msg = "internal server error"
		logging.Ctx(c.Request.Context()).Error().Err(err).Str("path", c.FullPath()).Msg("[HTTP] Request failed")
	}

	c.AbortWithStatusJSON(status, ErrorResponse{Error: msg, Kind: kind})
}

// respondBindError reports a request that failed to bind or validate.
func respondBindError(c *gin.Context, err error) {
	c.AbortWithStatusJSON(http.StatusBadRequest, ErrorResponse{
		Error: bindMessage(err),
		Kind:  domain.KindValidation,
	})
}

func bindMessage(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return "invalid request body"
	}
	parts := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		field := toSnake(fe.Field())
		switch fe.Tag() {
		case "required":
			parts = append(parts, field+" is required")
		case "min", "max":
			parts = append(parts, fmt.Sprintf("%s must satisfy %s=%s", field, fe.Tag(), fe.Param()))
		case "oneof":
			parts = append(parts, fmt.Sprintf("%s must be one of: %s", field, fe.Param()))
		default:
			parts = append(parts, fmt.Sprintf("%s is invalid (%s)", field, fe.Tag()))
		}
	}
	return strings.Join(parts, "; ")
}

func toSnake(s string) string {
	var sb strings.Builder
	for i, r := range s {
		if r >= 'A' && r <= 'Z' {
			if i > 0 && !(s[i-1] >= 'A' && s[i-1] <= 'Z') {
				sb.WriteByte('_')
			}
			sb.WriteRune(r + ('a' - 'A'))
			continue
		}
		sb.WriteRune(r)
	}
	return sb.String()
}

// currentUserID returns the id set by the auth middleware.
func currentUserID(c *gin.Context) (int, bool) {
	v, _ := c.Get("user_id")
	id, ok := v.(int)
	if !ok {
		c.AbortWithStatusJSON(http.StatusUnauthorized, ErrorResponse{
			Error: "unauthorized",
			Kind:  domain.KindUnauthorized,
		})
		return 0, false
	}
	return id, true
}

func pathID(c *gin.Context, name string) (int, bool) {
	id, err := strconv.Atoi(c.Param(name))
	if err != nil || id <= 0 {
		c.AbortWithStatusJSON(http.StatusBadRequest, ErrorResponse{
			Error: fmt.Sprintf("invalid %s", name),
			Kind:  domain.KindValidation,
		})
		return 0, false
	}
	return id, true
}

func queryLimit(c *gin.Context) (int, bool) {
	raw := c.Query("limit")
	if raw == "" {
		return 0, true
	}
	limit, err := strconv.Atoi(raw)
	if err != nil || limit < 0 {
		c.AbortWithStatusJSON(http.StatusBadRequest, ErrorResponse{
			Error: "limit must be a non-negative integer",
			Kind:  domain.KindValidation,
		})
		return 0, false
	}
	return limit, true
}
