package api

import (
	"errors"
	"net/http"

	"reprise/backend/internal/recommend"
	"reprise/backend/internal/service"

	"github.com/gin-gonic/gin"
)

// respondWithError maps a service error to a status code and JSON body.
func respondWithError(c *gin.Context, err error) {
	_ = c.Error(err)

	var incomplete *service.IncompleteProfileError
	if errors.As(err, &incomplete) {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": incomplete.Error(), "missing": incomplete.Missing})
		return
	}

	var overlap *service.OverlapError
	if errors.As(err, &overlap) {
		c.AbortWithStatusJSON(http.StatusConflict, gin.H{"error": overlap.Error(), "conflictId": overlap.ConflictID().Hex()})
		return
	}

	var genErr *recommend.GenerationError
	if errors.As(err, &genErr) {
		if genErr.Kind == recommend.KindDatasetMissing {
			abortWithError(c, http.StatusServiceUnavailable, genErr.Message)
			return
		}
		abortWithError(c, http.StatusInternalServerError, "Failed to generate workout plan.")
		return
	}

	switch {
	case errors.Is(err, service.ErrInvalidProfile),
		errors.Is(err, service.ErrInvalidStepCount),
		errors.Is(err, service.ErrInvalidPeriod),
		errors.Is(err, service.ErrInvalidTarget),
		errors.Is(err, service.ErrInvalidDateRange),
		errors.Is(err, service.ErrInvalidMonth),
		errors.Is(err, service.ErrUnknownDay):
		abortWithError(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrRecommendationNotFound),
		errors.Is(err, service.ErrGoalPlanNotFound),
		errors.Is(err, service.ErrOverrideNotFound):
		abortWithError(c, http.StatusNotFound, err.Error())
	default:
		abortWithError(c, http.StatusInternalServerError, "Internal server error.")
	}
}
