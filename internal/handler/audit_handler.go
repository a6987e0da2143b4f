package handler

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/KasumiMercury/primind-reminder-scheduling/internal/service/audit"
)

const confirmResetHeader = "X-Confirm-Reset"

type AuditHandler struct {
	auditService *audit.Service
}

func NewAuditHandler(auditService *audit.Service) *AuditHandler {
	return &AuditHandler{
		auditService: auditService,
	}
}

// HandleAudit runs a read-only reconciliation pass and returns the report.
func (h *AuditHandler) HandleAudit(c *gin.Context) {
	ctx := c.Request.Context()
	id := runID(c)

	report, err := h.auditService.Audit(ctx, id)
	if err != nil {
		slog.ErrorContext(ctx, "audit failed",
			slog.String("run_id", id),
			slog.String("error", err.Error()),
		)
		respondError(c, http.StatusInternalServerError, "processing_error", "audit failed")
		return
	}

	c.Header(runIDHeader, id)
	c.JSON(http.StatusOK, report)
}

func (h *AuditHandler) HandleCleanupOrphaned(c *gin.Context) {
	ctx := c.Request.Context()
	id := runID(c)

	result, err := h.auditService.CleanupOrphaned(ctx, id)
	if err != nil {
		slog.ErrorContext(ctx, "orphan cleanup failed",
			slog.String("run_id", id),
			slog.String("error", err.Error()),
		)
		respondError(c, http.StatusInternalServerError, "processing_error", "orphan cleanup failed")
		return
	}

	c.Header(runIDHeader, id)
	c.JSON(http.StatusOK, result)
}

func (h *AuditHandler) HandleRepairMissing(c *gin.Context) {
	ctx := c.Request.Context()
	id := runID(c)

	result, err := h.auditService.RepairMissing(ctx, id)
	if err != nil {
		slog.ErrorContext(ctx, "missing-handle repair failed",
			slog.String("run_id", id),
			slog.String("error", err.Error()),
		)
		respondError(c, http.StatusInternalServerError, "processing_error", "repair failed")
		return
	}

	c.Header(runIDHeader, id)
	c.JSON(http.StatusOK, result)
}

// HandleResetSystem wipes the platform queue and rebuilds every plan's
// triggers. The destructive step requires an explicit confirmation header.
func (h *AuditHandler) HandleResetSystem(c *gin.Context) {
	ctx := c.Request.Context()
	id := runID(c)

	if c.GetHeader(confirmResetHeader) != "true" {
		respondError(c, http.StatusPreconditionRequired, "confirmation_required",
			"system reset requires the "+confirmResetHeader+" header set to true")
		return
	}

	result, err := h.auditService.ResetSystem(ctx, id)
	if err != nil {
		slog.ErrorContext(ctx, "system reset failed",
			slog.String("run_id", id),
			slog.String("error", err.Error()),
		)
		respondError(c, http.StatusInternalServerError, "processing_error", "system reset failed")
		return
	}

	c.Header(runIDHeader, id)
	c.JSON(http.StatusOK, result)
}
