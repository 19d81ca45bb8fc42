package handler

import (
	"net/http"

	"github.com/gdugdh24/insightsphere-backend/internal/usecase/alert"
	"github.com/gin-gonic/gin"
)

type AlertHandler struct {
	alertUseCase *alert.AlertUseCase
}

func NewAlertHandler(alertUseCase *alert.AlertUseCase) *AlertHandler {
	return &AlertHandler{alertUseCase: alertUseCase}
}

// CreateRule handles POST /alerts/rules
// @Summary Create a trend alert rule
// @Tags alerts
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body alert.CreateRuleRequest true "Rule"
// @Success 201 {object} domain.AlertRule
// @Failure 400 {object} ErrorResponse
// @Router /alerts/rules [post]
func (h *AlertHandler) CreateRule(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req alert.CreateRuleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	rule, err := h.alertUseCase.Create(c.Request.Context(), userID, &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, rule)
}

// ListRules handles GET /alerts/rules
// @Summary List my alert rules
// @Tags alerts
// @Security BearerAuth
// @Produce json
// @Success 200 {array} domain.AlertRule
// @Router /alerts/rules [get]
func (h *AlertHandler) ListRules(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	rules, err := h.alertUseCase.List(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"rules": rules})
}

// UpdateRule handles PUT /alerts/rules/:id
// @Summary Update an alert rule
// @Tags alerts
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path int true "Rule ID"
// @Param request body alert.UpdateRuleRequest true "Changes"
// @Success 200 {object} domain.AlertRule
// @Failure 404 {object} ErrorResponse
// @Router /alerts/rules/{id} [put]
func (h *AlertHandler) UpdateRule(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	ruleID, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req alert.UpdateRuleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	rule, err := h.alertUseCase.Update(c.Request.Context(), userID, ruleID, &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, rule)
}

// DeleteRule handles DELETE /alerts/rules/:id
// @Summary Delete an alert rule
// @Tags alerts
// @Security BearerAuth
// @Param id path int true "Rule ID"
// @Success 204
// @Failure 404 {object} ErrorResponse
// @Router /alerts/rules/{id} [delete]
func (h *AlertHandler) DeleteRule(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	ruleID, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := h.alertUseCase.Delete(c.Request.Context(), userID, ruleID); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
