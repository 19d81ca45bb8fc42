package handler

import (
	"net/http"

	"github.com/gdugdh24/insightsphere-backend/internal/usecase/trend"
	"github.com/gin-gonic/gin"
)

type TrendHandler struct {
	trendUseCase *trend.TrendUseCase
}

func NewTrendHandler(trendUseCase *trend.TrendUseCase) *TrendHandler {
	return &TrendHandler{trendUseCase: trendUseCase}
}

// Analyze handles POST /trends/analyze
// @Summary Analyze a topic's virality
// @Tags trends
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body trend.AnalyzeRequest true "Topic"
// @Success 200 {object} trend.AnalysisResult
// @Failure 400 {object} ErrorResponse
// @Failure 503 {object} ErrorResponse
// @Router /trends/analyze [post]
func (h *TrendHandler) Analyze(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req trend.AnalyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	result, err := h.trendUseCase.Analyze(c.Request.Context(), userID, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// History handles GET /trends/history
// @Summary Past analyses
// @Tags trends
// @Security BearerAuth
// @Produce json
// @Param limit query int false "Result limit"
// @Success 200 {array} domain.TrendAnalysis
// @Router /trends/history [get]
func (h *TrendHandler) History(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	limit, ok := queryLimit(c)
	if !ok {
		return
	}

	analyses, err := h.trendUseCase.History(c.Request.Context(), userID, limit)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"analyses": analyses})
}
