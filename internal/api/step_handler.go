package api

import (
	"net/http"
	"time"

	"reprise/backend/internal/service"

	"github.com/gin-gonic/gin"
)

type StepHandler struct {
	stepService service.StepService
}

func NewStepHandler(stepService service.StepService) *StepHandler {
	return &StepHandler{stepService: stepService}
}

// LogStepsRequest is the daily step total. Date defaults to today.
type LogStepsRequest struct {
	Date      string `json:"date"` // YYYY-MM-DD
	StepCount *int   `json:"stepCount" binding:"required,min=0"`
}

// LogSteps godoc
// @Summary Record my steps for a day
// @Description Creates or updates the step log of one day. Sending the stored count again changes nothing.
// @Tags Steps
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param steps body LogStepsRequest true "Step count"
// @Success 201 {object} domain.StepLog "Created"
// @Success 200 {object} domain.StepLog "Updated or unchanged"
// @Failure 400 {object} gin.H "Validation error"
// @Router /steps [post]
func (h *StepHandler) LogSteps(c *gin.Context) {
	var req LogStepsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}
	accountID, ok := mustAccountID(c)
	if !ok {
		return
	}

	var date time.Time
	if req.Date != "" {
		if date, ok = parseDateOrAbort(c, "date", req.Date); !ok {
			return
		}
	}

	log, outcome, err := h.stepService.LogSteps(c.Request.Context(), accountID, date, *req.StepCount)
	if err != nil {
		respondWithError(c, err)
		return
	}
	status := http.StatusOK
	if outcome == service.OutcomeCreated {
		status = http.StatusCreated
	}
	c.JSON(status, log)
}

// History returns totals grouped by ?period=daily|weekly|monthly.
func (h *StepHandler) History(c *gin.Context) {
	accountID, ok := mustAccountID(c)
	if !ok {
		return
	}
	history, err := h.stepService.History(c.Request.Context(), accountID, c.DefaultQuery("period", "daily"))
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, history)
}
