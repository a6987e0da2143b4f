package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/KasumiMercury/primind-reminder-scheduling/internal/domain"
	"github.com/KasumiMercury/primind-reminder-scheduling/internal/service/plans"
)

type PlanHandler struct {
	planService *plans.Service
}

func NewPlanHandler(planService *plans.Service) *PlanHandler {
	return &PlanHandler{
		planService: planService,
	}
}

func (h *PlanHandler) HandleCreate(c *gin.Context) {
	ctx := c.Request.Context()

	var req planRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.WarnContext(ctx, "plan request unmarshal failed",
			slog.String("error", err.Error()),
		)
		respondError(c, http.StatusBadRequest, "validation_error", err.Error())
		return
	}

	result, err := h.planService.Create(ctx, plans.CreateInput{
		Label:        req.Label,
		Category:     req.Category,
		Frequency:    domain.Frequency(req.Frequency),
		CustomDays:   req.customWeekdays(),
		ReminderTime: domain.TimeOfDay{Hour: req.ReminderTime.Hour, Minute: req.ReminderTime.Minute},
		EndDate:      req.EndDate,
	})
	if err != nil {
		if isValidationError(err) {
			respondError(c, http.StatusBadRequest, "validation_error", err.Error())
			return
		}
		slog.ErrorContext(ctx, "failed to create plan",
			slog.String("error", err.Error()),
		)
		respondError(c, http.StatusInternalServerError, "processing_error", "failed to create plan")
		return
	}

	c.JSON(http.StatusCreated, planResultResponse(result))
}

func (h *PlanHandler) HandleUpdate(c *gin.Context) {
	ctx := c.Request.Context()
	id := c.Param("id")

	var req planRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.WarnContext(ctx, "plan request unmarshal failed",
			slog.String("plan_id", id),
			slog.String("error", err.Error()),
		)
		respondError(c, http.StatusBadRequest, "validation_error", err.Error())
		return
	}

	result, err := h.planService.Update(ctx, id, plans.UpdateInput{
		Label:        req.Label,
		Category:     req.Category,
		Frequency:    domain.Frequency(req.Frequency),
		CustomDays:   req.customWeekdays(),
		ReminderTime: domain.TimeOfDay{Hour: req.ReminderTime.Hour, Minute: req.ReminderTime.Minute},
		EndDate:      req.EndDate,
	})
	if err != nil {
		if errors.Is(err, domain.ErrPlanNotFound) {
			respondError(c, http.StatusNotFound, "not_found", "plan not found")
			return
		}
		if isValidationError(err) {
			respondError(c, http.StatusBadRequest, "validation_error", err.Error())
			return
		}
		slog.ErrorContext(ctx, "failed to update plan",
			slog.String("plan_id", id),
			slog.String("error", err.Error()),
		)
		respondError(c, http.StatusInternalServerError, "processing_error", "failed to update plan")
		return
	}

	c.JSON(http.StatusOK, planResultResponse(result))
}

func (h *PlanHandler) HandleDelete(c *gin.Context) {
	ctx := c.Request.Context()
	id := c.Param("id")

	if err := h.planService.Delete(ctx, id); err != nil {
		if errors.Is(err, domain.ErrPlanNotFound) {
			respondError(c, http.StatusNotFound, "not_found", "plan not found")
			return
		}
		slog.ErrorContext(ctx, "failed to delete plan",
			slog.String("plan_id", id),
			slog.String("error", err.Error()),
		)
		respondError(c, http.StatusInternalServerError, "processing_error", "failed to delete plan")
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *PlanHandler) HandleGet(c *gin.Context) {
	ctx := c.Request.Context()
	id := c.Param("id")

	plan, err := h.planService.Get(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrPlanNotFound) {
			respondError(c, http.StatusNotFound, "not_found", "plan not found")
			return
		}
		slog.ErrorContext(ctx, "failed to load plan",
			slog.String("plan_id", id),
			slog.String("error", err.Error()),
		)
		respondError(c, http.StatusInternalServerError, "processing_error", "failed to load plan")
		return
	}

	c.JSON(http.StatusOK, newPlanResponse(plan))
}

func (h *PlanHandler) HandleList(c *gin.Context) {
	ctx := c.Request.Context()

	allPlans, err := h.planService.List(ctx)
	if err != nil {
		slog.ErrorContext(ctx, "failed to list plans",
			slog.String("error", err.Error()),
		)
		respondError(c, http.StatusInternalServerError, "processing_error", "failed to list plans")
		return
	}

	responses := make([]planResponse, 0, len(allPlans))
	for _, plan := range allPlans {
		responses = append(responses, newPlanResponse(plan))
	}

	c.JSON(http.StatusOK, gin.H{"plans": responses})
}

func planResultResponse(result *plans.PlanResult) planResponse {
	resp := newPlanResponse(result.Plan)
	resp.TimingAdapted = result.TimingAdapted
	resp.TimingReasons = result.TimingReasons
	if result.TimingAdapted {
		resp.EffectiveTime = &timeOfDayPayload{
			Hour:   result.EffectiveTime.Hour,
			Minute: result.EffectiveTime.Minute,
		}
	}
	return resp
}

func isValidationError(err error) bool {
	return errors.Is(err, domain.ErrEmptyLabel) ||
		errors.Is(err, domain.ErrInvalidFrequency) ||
		errors.Is(err, domain.ErrInvalidReminderTime) ||
		errors.Is(err, domain.ErrEmptyCustomDays) ||
		errors.Is(err, domain.ErrInvalidCustomDay)
}
