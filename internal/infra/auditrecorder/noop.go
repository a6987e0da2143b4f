package auditrecorder

import (
	"context"

	"github.com/KasumiMercury/primind-reminder-scheduling/internal/domain"
)

type noopRecorder struct{}

func NewNoopRecorder() domain.AuditResultRecorder {
	return &noopRecorder{}
}

func (n *noopRecorder) RecordAuditResults(_ context.Context, _ []domain.AuditResultRecord) error {
	return nil
}

func (n *noopRecorder) Flush(_ context.Context) error {
	return nil
}

func (n *noopRecorder) Close() error {
	return nil
}
