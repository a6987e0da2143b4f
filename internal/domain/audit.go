package domain

import (
	"fmt"
	"time"
)

// MissingHandle is a handle a plan references that no longer exists in the
// live platform queue.
type MissingHandle struct {
	PlanID   string `json:"plan_id"`
	HandleID string `json:"handle_id"`
}

// DuplicateFinding flags a plan holding more live handles than its frequency
// justifies, or literal duplicate IDs in its handle list.
type DuplicateFinding struct {
	PlanID        string   `json:"plan_id"`
	HandleIDs     []string `json:"handle_ids"`
	ExpectedCount int      `json:"expected_count"`
	LiveCount     int      `json:"live_count"`
}

// AuditReport is the three-way diff between plan-referenced handles and the
// live platform queue.
type AuditReport struct {
	Orphaned     []string           `json:"orphaned"`
	Missing      []MissingHandle    `json:"missing"`
	Duplicated   []DuplicateFinding `json:"duplicated"`
	TrackedCount int                `json:"tracked_count"`
	TotalPlans   int                `json:"total_plans"`
	TotalLive    int                `json:"total_live"`
	GeneratedAt  time.Time          `json:"generated_at"`
}

func NewAuditReport(totalPlans, totalLive int) *AuditReport {
	return &AuditReport{
		Orphaned:    make([]string, 0),
		Missing:     make([]MissingHandle, 0),
		Duplicated:  make([]DuplicateFinding, 0),
		TotalPlans:  totalPlans,
		TotalLive:   totalLive,
		GeneratedAt: time.Now(),
	}
}

// HasIssues reports drift that warrants repair. Duplicates are surfaced but
// do not by themselves flip the health summary.
func (r *AuditReport) HasIssues() bool {
	return len(r.Orphaned) > 0 || len(r.Missing) > 0
}

func (r *AuditReport) Summary() string {
	if !r.HasIssues() && len(r.Duplicated) == 0 {
		return fmt.Sprintf("healthy: %d plans tracking %d live notifications", r.TotalPlans, r.TotalLive)
	}
	return fmt.Sprintf("drift detected: %d orphaned, %d missing, %d duplicated (%d plans, %d live)",
		len(r.Orphaned), len(r.Missing), len(r.Duplicated), r.TotalPlans, r.TotalLive)
}
