package api

import (
	"net/http"

	"reprise/backend/internal/service"

	"github.com/gin-gonic/gin"
)

type RecommendationHandler struct {
	recommendationService service.RecommendationService
}

func NewRecommendationHandler(recommendationService service.RecommendationService) *RecommendationHandler {
	return &RecommendationHandler{recommendationService: recommendationService}
}

// UpdateProgressRequest marks one schedule day as done or not done.
type UpdateProgressRequest struct {
	Day  string `json:"day" binding:"required"`
	Done *bool  `json:"done" binding:"required"`
}

// GetRecommendation godoc
// @Summary Get my workout plan
// @Description Returns the weekly plan, generating it when missing or stale. Requires a complete profile.
// @Tags Recommendation
// @Produce json
// @Security BearerAuth
// @Success 200 {object} domain.WorkoutRecommendation
// @Failure 400 {object} gin.H "Profile incomplete"
// @Failure 503 {object} gin.H "Exercise dataset missing"
// @Router /recommendation [get]
func (h *RecommendationHandler) GetRecommendation(c *gin.Context) {
	accountID, ok := mustAccountID(c)
	if !ok {
		return
	}
	rec, err := h.recommendationService.GetRecommendation(c.Request.Context(), accountID)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, rec)
}

// Regenerate draws a new plan even when the current one is fresh.
func (h *RecommendationHandler) Regenerate(c *gin.Context) {
	accountID, ok := mustAccountID(c)
	if !ok {
		return
	}
	rec, err := h.recommendationService.RegenerateForAccount(c.Request.Context(), accountID)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, rec)
}

func (h *RecommendationHandler) UpdateProgress(c *gin.Context) {
	var req UpdateProgressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}
	accountID, ok := mustAccountID(c)
	if !ok {
		return
	}

	rec, err := h.recommendationService.UpdateProgress(c.Request.Context(), accountID, req.Day, *req.Done)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, rec)
}
