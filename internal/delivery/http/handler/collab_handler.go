package handler

import (
	"net/http"

	"github.com/gdugdh24/insightsphere-backend/internal/domain"
	"github.com/gdugdh24/insightsphere-backend/internal/usecase/collab"
	"github.com/gin-gonic/gin"
)

type CollabHandler struct {
	collabUseCase  *collab.CollabUseCase
	insightUseCase *collab.InsightUseCase
}

func NewCollabHandler(collabUseCase *collab.CollabUseCase, insightUseCase *collab.InsightUseCase) *CollabHandler {
	return &CollabHandler{
		collabUseCase:  collabUseCase,
		insightUseCase: insightUseCase,
	}
}

// FindMatches handles GET /collab/matches
// @Summary Ranked collaboration matches
// @Tags collab
// @Security BearerAuth
// @Produce json
// @Param niche query string false "Niche substring"
// @Param style query string false "Content style substring"
// @Param min_audience query int false "Minimum audience"
// @Param max_audience query int false "Maximum audience"
// @Param limit query int false "Result limit (default 20, max 100)"
// @Success 200 {array} collab.MatchResult
// @Failure 400 {object} ErrorResponse
// @Router /collab/matches [get]
func (h *CollabHandler) FindMatches(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var q collab.MatchQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		respondBindError(c, err)
		return
	}

	results, err := h.collabUseCase.FindMatches(c.Request.Context(), userID, q)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"matches": results, "count": len(results)})
}

// Compatibility handles GET /collab/compatibility/:id
// @Summary Detailed compatibility with AI analysis
// @Tags collab
// @Security BearerAuth
// @Produce json
// @Param id path int true "Profile ID"
// @Success 200 {object} collab.CompatibilityReport
// @Failure 404 {object} ErrorResponse
// @Failure 503 {object} ErrorResponse
// @Router /collab/compatibility/{id} [get]
func (h *CollabHandler) Compatibility(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	profileID, ok := pathID(c, "id")
	if !ok {
		return
	}

	report, err := h.insightUseCase.Compatibility(c.Request.Context(), userID, profileID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, report)
}

// Pitch handles POST /collab/pitch
// @Summary Generate pitch templates
// @Tags collab
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body collab.PitchInput true "Pitch target"
// @Success 200 {array} collab.PitchTemplate
// @Failure 503 {object} ErrorResponse
// @Router /collab/pitch [post]
func (h *CollabHandler) Pitch(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var in collab.PitchInput
	if err := c.ShouldBindJSON(&in); err != nil {
		respondBindError(c, err)
		return
	}

	pitches, err := h.insightUseCase.Pitch(c.Request.Context(), userID, in)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"pitches": pitches})
}

// Ideas handles POST /collab/ideas
// @Summary Generate collaboration ideas
// @Tags collab
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body collab.IdeasInput true "Partner profile"
// @Success 200 {array} collab.CollabIdea
// @Failure 503 {object} ErrorResponse
// @Router /collab/ideas [post]
func (h *CollabHandler) Ideas(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var in collab.IdeasInput
	if err := c.ShouldBindJSON(&in); err != nil {
		respondBindError(c, err)
		return
	}

	ideas, err := h.insightUseCase.Ideas(c.Request.Context(), userID, in)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ideas": ideas})
}

// CreateRequest handles POST /collab/requests
// @Summary Send a collaboration request
// @Tags collab
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body collab.CreateRequestInput true "Request"
// @Success 201 {object} domain.CollabRequest
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Failure 422 {object} ErrorResponse
// @Router /collab/requests [post]
func (h *CollabHandler) CreateRequest(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var in collab.CreateRequestInput
	if err := c.ShouldBindJSON(&in); err != nil {
		respondBindError(c, err)
		return
	}

	req, err := h.collabUseCase.CreateRequest(c.Request.Context(), userID, in)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, req)
}

// ListRequests handles GET /collab/requests
// @Summary List pending requests
// @Tags collab
// @Security BearerAuth
// @Produce json
// @Param direction query string false "incoming, outgoing or both"
// @Success 200 {object} collab.PendingRequests
// @Failure 400 {object} ErrorResponse
// @Router /collab/requests [get]
func (h *CollabHandler) ListRequests(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	direction, err := domain.ParseDirection(c.Query("direction"))
	if err != nil {
		respondError(c, err)
		return
	}

	pending, err := h.collabUseCase.ListPending(c.Request.Context(), userID, direction)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, pending)
}

// Respond handles PUT /collab/requests/:id
// @Summary Accept or decline a request
// @Tags collab
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path int true "Request ID"
// @Param request body collab.RespondInput true "Decision"
// @Success 200 {object} domain.CollabRequest
// @Failure 404 {object} ErrorResponse
// @Failure 410 {object} ErrorResponse
// @Failure 422 {object} ErrorResponse
// @Router /collab/requests/{id} [put]
func (h *CollabHandler) Respond(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	requestID, ok := pathID(c, "id")
	if !ok {
		return
	}

	var in collab.RespondInput
	if err := c.ShouldBindJSON(&in); err != nil {
		respondBindError(c, err)
		return
	}

	req, err := h.collabUseCase.Respond(c.Request.Context(), userID, requestID, in)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, req)
}

// History handles GET /collab/history
// @Summary Resolved collaboration requests
// @Tags collab
// @Security BearerAuth
// @Produce json
// @Param limit query int false "Result limit"
// @Success 200 {array} domain.CollabRequest
// @Router /collab/history [get]
func (h *CollabHandler) History(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	limit, ok := queryLimit(c)
	if !ok {
		return
	}

	history, err := h.collabUseCase.History(c.Request.Context(), userID, limit)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"requests": history, "count": len(history)})
}
