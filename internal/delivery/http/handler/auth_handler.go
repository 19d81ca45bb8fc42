package handler

import (
	"net/http"

	"github.com/gdugdh24/insightsphere-backend/internal/domain"
	"github.com/gdugdh24/insightsphere-backend/internal/usecase/auth"
	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	authUseCase *auth.AuthUseCase
}

func NewAuthHandler(authUseCase *auth.AuthUseCase) *AuthHandler {
	return &AuthHandler{
		authUseCase: authUseCase,
	}
}

// GoogleAuthRequest carries a Google Sign-In ID token
type GoogleAuthRequest struct {
	IDToken string `json:"id_token" binding:"required"`
}

// GitHubAuthRequest carries a GitHub OAuth authorization code
type GitHubAuthRequest struct {
	Code string `json:"code" binding:"required"`
}

// Register handles POST /auth/register
// @Summary Register
// @Description Create an account with email and password
// @Tags auth
// @Accept json
// @Produce json
// @Param request body auth.RegisterRequest true "Credentials"
// @Success 201 {object} auth.AuthResponse
// @Failure 400 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /auth/register [post]
func (h *AuthHandler) Register(c *gin.Context) {
	var req auth.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	resp, err := h.authUseCase.Register(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// Login handles POST /auth/login
// @Summary Login
// @Tags auth
// @Accept json
// @Produce json
// @Param request body auth.LoginRequest true "Credentials"
// @Success 200 {object} auth.AuthResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Router /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req auth.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	resp, err := h.authUseCase.Login(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Google handles POST /auth/google
// @Summary Google sign-in
// @Tags auth
// @Accept json
// @Produce json
// @Param request body GoogleAuthRequest true "Google ID token"
// @Success 200 {object} auth.AuthResponse
// @Failure 401 {object} ErrorResponse
// @Failure 503 {object} ErrorResponse
// @Router /auth/google [post]
func (h *AuthHandler) Google(c *gin.Context) {
	var req GoogleAuthRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	h.providerLogin(c, domain.ProviderGoogle, req.IDToken)
}

// GitHub handles POST /auth/github
// @Summary GitHub sign-in
// @Tags auth
// @Accept json
// @Produce json
// @Param request body GitHubAuthRequest true "OAuth code"
// @Success 200 {object} auth.AuthResponse
// @Failure 401 {object} ErrorResponse
// @Failure 503 {object} ErrorResponse
// @Router /auth/github [post]
func (h *AuthHandler) GitHub(c *gin.Context) {
	var req GitHubAuthRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	h.providerLogin(c, domain.ProviderGitHub, req.Code)
}

func (h *AuthHandler) providerLogin(c *gin.Context, provider domain.AuthProvider, credential string) {
	resp, err := h.authUseCase.LoginWithProvider(c.Request.Context(), provider, credential)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Me handles GET /auth/me
// @Summary Current user
// @Tags auth
// @Security BearerAuth
// @Produce json
// @Success 200 {object} domain.User
// @Failure 401 {object} ErrorResponse
// @Router /auth/me [get]
func (h *AuthHandler) Me(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	user, err := h.authUseCase.Me(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

// UpdatePhone handles PUT /auth/phone
// @Summary Set phone number for SMS alerts
// @Tags auth
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body auth.UpdatePhoneRequest true "E.164 phone number"
// @Success 200 {object} domain.User
// @Failure 400 {object} ErrorResponse
// @Router /auth/phone [put]
func (h *AuthHandler) UpdatePhone(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req auth.UpdatePhoneRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	user, err := h.authUseCase.UpdatePhone(c.Request.Context(), userID, &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}
