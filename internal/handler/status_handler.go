package handler

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/KasumiMercury/primind-reminder-scheduling/internal/service/status"
)

type StatusHandler struct {
	reporter *status.Reporter
}

func NewStatusHandler(reporter *status.Reporter) *StatusHandler {
	return &StatusHandler{
		reporter: reporter,
	}
}

func (h *StatusHandler) HandleStatus(c *gin.Context) {
	ctx := c.Request.Context()
	id := runID(c)

	report, err := h.reporter.Report(ctx, id)
	if err != nil {
		slog.ErrorContext(ctx, "status report failed",
			slog.String("run_id", id),
			slog.String("error", err.Error()),
		)
		respondError(c, http.StatusInternalServerError, "processing_error", "status report failed")
		return
	}

	c.Header(runIDHeader, id)
	c.JSON(http.StatusOK, report)
}
