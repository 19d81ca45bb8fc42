package handler

import (
	"net/http"

	"github.com/gdugdh24/insightsphere-backend/internal/usecase/profile"
	"github.com/gin-gonic/gin"
)

type ProfileHandler struct {
	profileUseCase *profile.ProfileUseCase
}

func NewProfileHandler(profileUseCase *profile.ProfileUseCase) *ProfileHandler {
	return &ProfileHandler{
		profileUseCase: profileUseCase,
	}
}

// UpsertMyProfile handles POST /collab/profile
// @Summary Create or update my creator profile
// @Description Creates the profile on first call (display_name and niche required), patches it afterwards
// @Tags profile
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body profile.UpsertProfileRequest true "Profile fields"
// @Success 200 {object} domain.CreatorProfile
// @Success 201 {object} domain.CreatorProfile
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Router /collab/profile [post]
func (h *ProfileHandler) UpsertMyProfile(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req profile.UpsertProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	p, created, err := h.profileUseCase.CreateOrUpdate(c.Request.Context(), userID, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	c.JSON(status, p)
}

// GetMyProfile handles GET /collab/profile
// @Summary Get my creator profile
// @Tags profile
// @Security BearerAuth
// @Produce json
// @Success 200 {object} domain.CreatorProfile
// @Failure 404 {object} ErrorResponse
// @Router /collab/profile [get]
func (h *ProfileHandler) GetMyProfile(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	p, err := h.profileUseCase.GetMyProfile(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

// GetProfile handles GET /collab/profile/:id
// @Summary Get a creator profile
// @Tags profile
// @Security BearerAuth
// @Produce json
// @Param id path int true "Profile ID"
// @Success 200 {object} domain.CreatorProfile
// @Failure 404 {object} ErrorResponse
// @Router /collab/profile/{id} [get]
func (h *ProfileHandler) GetProfile(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	p, err := h.profileUseCase.GetProfile(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}
