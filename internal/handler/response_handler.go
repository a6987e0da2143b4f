package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/KasumiMercury/primind-reminder-scheduling/internal/domain"
	"github.com/KasumiMercury/primind-reminder-scheduling/internal/service/timing"
)

type ResponseHandler struct {
	timingService *timing.Service
}

func NewResponseHandler(timingService *timing.Service) *ResponseHandler {
	return &ResponseHandler{
		timingService: timingService,
	}
}

// HandleRecordResponse folds one taken/snoozed/ignored response into the
// plan's behavior profile.
func (h *ResponseHandler) HandleRecordResponse(c *gin.Context) {
	ctx := c.Request.Context()
	planID := c.Param("id")

	var req responseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.WarnContext(ctx, "response request unmarshal failed",
			slog.String("plan_id", planID),
			slog.String("error", err.Error()),
		)
		respondError(c, http.StatusBadRequest, "validation_error", err.Error())
		return
	}

	at := time.Time{}
	if req.At != nil {
		at = *req.At
	}

	profile, err := h.timingService.RecordResponse(ctx, planID, domain.ResponseStatus(req.Status), at)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidResponse) {
			respondError(c, http.StatusBadRequest, "validation_error", "status must be taken, snoozed, or ignored")
			return
		}
		slog.ErrorContext(ctx, "failed to record response",
			slog.String("plan_id", planID),
			slog.String("error", err.Error()),
		)
		respondError(c, http.StatusInternalServerError, "processing_error", "failed to record response")
		return
	}

	bestHour, bestScore := profile.BestHour()
	c.JSON(http.StatusOK, profileResponse{
		PlanID:            profile.PlanID,
		DataPoints:        profile.DataPoints,
		ConsecutiveMisses: profile.ConsecutiveMisses,
		BestHour:          bestHour,
		BestHourScore:     bestScore,
		UpdatedAt:         profile.UpdatedAt,
	})
}

// HandleResetProfile discards the plan's accumulated behavior history.
func (h *ResponseHandler) HandleResetProfile(c *gin.Context) {
	ctx := c.Request.Context()
	planID := c.Param("id")

	if err := h.timingService.ResetProfile(ctx, planID); err != nil {
		slog.ErrorContext(ctx, "failed to reset profile",
			slog.String("plan_id", planID),
			slog.String("error", err.Error()),
		)
		respondError(c, http.StatusInternalServerError, "processing_error", "failed to reset profile")
		return
	}

	c.Status(http.StatusNoContent)
}
