package status

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/KasumiMercury/primind-reminder-scheduling/internal/domain"
	"github.com/KasumiMercury/primind-reminder-scheduling/internal/service/audit"
)

// Report is a point-in-time health snapshot for display. It is assembled
// from a read-only audit pass and never triggers repairs.
type Report struct {
	HasPermissions bool   `json:"has_permissions"`
	TotalScheduled int    `json:"total_scheduled"`
	TotalPlans     int    `json:"total_plans"`
	HasIssues      bool   `json:"has_issues"`
	Summary        string `json:"summary"`
}

// Reporter produces user-facing health snapshots.
type Reporter struct {
	platform domain.NotificationPlatform
	auditor  *audit.Service
}

func NewReporter(platform domain.NotificationPlatform, auditor *audit.Service) *Reporter {
	return &Reporter{
		platform: platform,
		auditor:  auditor,
	}
}

// Report checks notification permission and runs one read-only audit pass.
func (r *Reporter) Report(ctx context.Context, runID string) (*Report, error) {
	state, err := r.platform.PermissionState(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to check notification permission: %w", err)
	}

	report, err := r.auditor.Audit(ctx, runID)
	if err != nil {
		return nil, err
	}

	result := &Report{
		HasPermissions: state.Granted(),
		TotalScheduled: report.TotalLive,
		TotalPlans:     report.TotalPlans,
		HasIssues:      report.HasIssues(),
		Summary:        report.Summary(),
	}

	slog.DebugContext(ctx, "status report generated",
		slog.String("run_id", runID),
		slog.Bool("has_permissions", result.HasPermissions),
		slog.Bool("has_issues", result.HasIssues),
	)

	return result, nil
}
