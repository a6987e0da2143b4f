package domain

import (
	"context"
	"time"
)

// AuditResultRecord is one audit or repair outcome destined for the
// analytics sink.
type AuditResultRecord struct {
	RunID           string
	Operation       string
	At              time.Time
	TotalPlans      int
	TotalLive       int
	OrphanedCount   int
	MissingCount    int
	DuplicatedCount int
	RepairedCount   int
	FailedCount     int
}

// AuditResultRecorder ships audit outcomes to an analytics backend.
type AuditResultRecorder interface {
	RecordAuditResults(ctx context.Context, records []AuditResultRecord) error
	Flush(ctx context.Context) error
	Close() error
}
