package handler

import (
	"net/http"

	"github.com/gdugdh24/insightsphere-backend/internal/usecase/competitor"
	"github.com/gin-gonic/gin"
)

type CompetitorHandler struct {
	competitorUseCase *competitor.CompetitorUseCase
}

func NewCompetitorHandler(competitorUseCase *competitor.CompetitorUseCase) *CompetitorHandler {
	return &CompetitorHandler{competitorUseCase: competitorUseCase}
}

// Add handles POST /competitors
// @Summary Track a competitor channel
// @Tags competitors
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body competitor.AddRequest true "Channel URL"
// @Success 201 {object} competitor.Details
// @Failure 400 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /competitors [post]
func (h *CompetitorHandler) Add(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req competitor.AddRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	details, err := h.competitorUseCase.Add(c.Request.Context(), userID, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, details)
}

// List handles GET /competitors
// @Summary List tracked competitors
// @Tags competitors
// @Security BearerAuth
// @Produce json
// @Success 200 {array} domain.Competitor
// @Router /competitors [get]
func (h *CompetitorHandler) List(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	competitors, err := h.competitorUseCase.List(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"competitors": competitors, "count": len(competitors)})
}

// Get handles GET /competitors/:id
// @Summary Competitor with its synced videos
// @Tags competitors
// @Security BearerAuth
// @Produce json
// @Param id path int true "Competitor ID"
// @Success 200 {object} competitor.Details
// @Failure 404 {object} ErrorResponse
// @Router /competitors/{id} [get]
func (h *CompetitorHandler) Get(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	details, err := h.competitorUseCase.Get(c.Request.Context(), userID, id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, details)
}

// Sync handles POST /competitors/:id/sync
// @Summary Refresh a competitor's statistics and latest uploads
// @Tags competitors
// @Security BearerAuth
// @Produce json
// @Param id path int true "Competitor ID"
// @Success 200 {object} competitor.SyncResult
// @Failure 404 {object} ErrorResponse
// @Failure 503 {object} ErrorResponse
// @Router /competitors/{id}/sync [post]
func (h *CompetitorHandler) Sync(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	result, err := h.competitorUseCase.Sync(c.Request.Context(), userID, id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// Viral handles GET /competitors/:id/viral
// @Summary A competitor's best-scoring videos
// @Tags competitors
// @Security BearerAuth
// @Produce json
// @Param id path int true "Competitor ID"
// @Param min_score query int false "Minimum viral score (default 70)"
// @Success 200 {array} domain.CompetitorVideo
// @Failure 404 {object} ErrorResponse
// @Router /competitors/{id}/viral [get]
func (h *CompetitorHandler) Viral(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var q competitor.ViralQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		respondBindError(c, err)
		return
	}

	videos, err := h.competitorUseCase.ViralVideos(c.Request.Context(), userID, id, q.MinScore)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"videos": videos, "count": len(videos)})
}

// Gaps handles GET /competitors/gaps
// @Summary Most viewed content across tracked competitors
// @Tags competitors
// @Security BearerAuth
// @Produce json
// @Success 200 {object} competitor.ContentGaps
// @Router /competitors/gaps [get]
func (h *CompetitorHandler) Gaps(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	gaps, err := h.competitorUseCase.ContentGaps(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gaps)
}

// Delete handles DELETE /competitors/:id
// @Summary Stop tracking a competitor
// @Tags competitors
// @Security BearerAuth
// @Param id path int true "Competitor ID"
// @Success 204
// @Failure 404 {object} ErrorResponse
// @Router /competitors/{id} [delete]
func (h *CompetitorHandler) Delete(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := h.competitorUseCase.Delete(c.Request.Context(), userID, id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
