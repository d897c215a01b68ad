package api

import (
	"net/http"
	"strconv"
	"time"

	"reprise/backend/internal/domain"
	"reprise/backend/internal/service"

	"github.com/gin-gonic/gin"
)

type GoalHandler struct {
	goalService service.GoalService
}

func NewGoalHandler(goalService service.GoalService) *GoalHandler {
	return &GoalHandler{goalService: goalService}
}

// --- DTOs ---

type SetOverrideRequest struct {
	TargetSteps int `json:"targetSteps" binding:"required,min=1"`
}

type GoalPlanRequest struct {
	StartDate   string `json:"startDate" binding:"required"` // YYYY-MM-DD
	EndDate     string `json:"endDate" binding:"required"`
	TargetSteps int    `json:"targetSteps" binding:"required,min=1"`
	Description string `json:"description" binding:"max=100"`
}

func (r GoalPlanRequest) toInput(c *gin.Context) (service.PlanInput, bool) {
	start, ok := parseDateOrAbort(c, "startDate", r.StartDate)
	if !ok {
		return service.PlanInput{}, false
	}
	end, ok := parseDateOrAbort(c, "endDate", r.EndDate)
	if !ok {
		return service.PlanInput{}, false
	}
	return service.PlanInput{StartDate: start, EndDate: end, TargetSteps: r.TargetSteps, Description: r.Description}, true
}

// --- Goal resolution ---

// GetGoal godoc
// @Summary Get the effective step goal of a day
// @Description Override for the day wins over a covering goal plan, which wins over the profile default.
// @Tags Goals
// @Produce json
// @Security BearerAuth
// @Param date query string false "YYYY-MM-DD, defaults to today"
// @Success 200 {object} service.EffectiveGoal
// @Router /steps/goal [get]
func (h *GoalHandler) GetGoal(c *gin.Context) {
	accountID, ok := mustAccountID(c)
	if !ok {
		return
	}
	date, ok := dateQuery(c, "date")
	if !ok {
		return
	}
	goal, err := h.goalService.EffectiveGoal(c.Request.Context(), accountID, date)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"date": date.Format(domain.DateLayout), "target": goal.Target, "source": goal.Source})
}

func (h *GoalHandler) Daily(c *gin.Context) {
	accountID, ok := mustAccountID(c)
	if !ok {
		return
	}
	date, ok := dateQuery(c, "date")
	if !ok {
		return
	}
	view, err := h.goalService.DailyView(c.Request.Context(), accountID, date)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// Weekly lists the days of the current week before ?date (default today).
func (h *GoalHandler) Weekly(c *gin.Context) {
	accountID, ok := mustAccountID(c)
	if !ok {
		return
	}
	anchor, ok := dateQuery(c, "date")
	if !ok {
		return
	}
	views, err := h.goalService.WeeklyView(c.Request.Context(), accountID, anchor)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"anchor": anchor.Format(domain.DateLayout), "days": views})
}

// Monthly aggregates ?year=&month=, defaulting to the current month.
func (h *GoalHandler) Monthly(c *gin.Context) {
	accountID, ok := mustAccountID(c)
	if !ok {
		return
	}
	now := time.Now().UTC()
	year, err := strconv.Atoi(c.DefaultQuery("year", strconv.Itoa(now.Year())))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid year.")
		return
	}
	month, err := strconv.Atoi(c.DefaultQuery("month", strconv.Itoa(int(now.Month()))))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid month.")
		return
	}

	view, err := h.goalService.MonthlyView(c.Request.Context(), accountID, year, month)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// --- Overrides ---

func (h *GoalHandler) SetOverride(c *gin.Context) {
	var req SetOverrideRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}
	accountID, ok := mustAccountID(c)
	if !ok {
		return
	}
	date, ok := parseDateOrAbort(c, "date", c.Param("date"))
	if !ok {
		return
	}

	override, err := h.goalService.SetOverride(c.Request.Context(), accountID, date, req.TargetSteps)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, override)
}

func (h *GoalHandler) DeleteOverride(c *gin.Context) {
	accountID, ok := mustAccountID(c)
	if !ok {
		return
	}
	date, ok := parseDateOrAbort(c, "date", c.Param("date"))
	if !ok {
		return
	}
	if err := h.goalService.DeleteOverride(c.Request.Context(), accountID, date); err != nil {
		respondWithError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// --- Goal plans ---

func (h *GoalHandler) ListPlans(c *gin.Context) {
	accountID, ok := mustAccountID(c)
	if !ok {
		return
	}
	plans, err := h.goalService.ListPlans(c.Request.Context(), accountID)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, plans)
}

// CreatePlan godoc
// @Summary Create a step goal plan
// @Description Sets a step target for an inclusive date range. Ranges of one account may not overlap.
// @Tags Goals
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param plan body GoalPlanRequest true "Plan"
// @Success 201 {object} domain.StepGoalPlan
// @Failure 400 {object} gin.H "Validation error"
// @Failure 409 {object} gin.H "Overlaps an existing plan"
// @Router /steps/plans [post]
func (h *GoalHandler) CreatePlan(c *gin.Context) {
	var req GoalPlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}
	accountID, ok := mustAccountID(c)
	if !ok {
		return
	}
	in, ok := req.toInput(c)
	if !ok {
		return
	}

	plan, err := h.goalService.CreatePlan(c.Request.Context(), accountID, in)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, plan)
}

func (h *GoalHandler) UpdatePlan(c *gin.Context) {
	var req GoalPlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}
	accountID, ok := mustAccountID(c)
	if !ok {
		return
	}
	planID, ok := objectIDParam(c, "planId")
	if !ok {
		return
	}
	in, ok := req.toInput(c)
	if !ok {
		return
	}

	plan, err := h.goalService.UpdatePlan(c.Request.Context(), accountID, planID, in)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, plan)
}

func (h *GoalHandler) DeletePlan(c *gin.Context) {
	accountID, ok := mustAccountID(c)
	if !ok {
		return
	}
	planID, ok := objectIDParam(c, "planId")
	if !ok {
		return
	}
	if err := h.goalService.DeletePlan(c.Request.Context(), accountID, planID); err != nil {
		respondWithError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
