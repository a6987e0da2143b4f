package metrics

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const auditMeterName = "reminder.audit"

type AuditMetrics struct {
	driftDetected   metric.Int64Counter
	repairsApplied  metric.Int64Counter
	auditDuration   metric.Float64Histogram
	repairDuration  metric.Float64Histogram
}

func NewAuditMetrics() (*AuditMetrics, error) {
	meter := otel.Meter(auditMeterName)

	driftDetected, err := meter.Int64Counter(
		"reminder_drift_detected_total",
		metric.WithDescription("Total number of drifted handles found during audit"),
		metric.WithUnit("{handle}"),
	)
	if err != nil {
		return nil, err
	}

	repairsApplied, err := meter.Int64Counter(
		"reminder_repairs_applied_total",
		metric.WithDescription("Total number of repair actions applied"),
		metric.WithUnit("{repair}"),
	)
	if err != nil {
		return nil, err
	}

	auditDuration, err := meter.Float64Histogram(
		"reminder_audit_duration_seconds",
		metric.WithDescription("Audit pass duration"),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(
			0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10,
		),
	)
	if err != nil {
		return nil, err
	}

	repairDuration, err := meter.Float64Histogram(
		"reminder_repair_duration_seconds",
		metric.WithDescription("Repair operation duration"),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(
			0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30,
		),
	)
	if err != nil {
		return nil, err
	}

	return &AuditMetrics{
		driftDetected:  driftDetected,
		repairsApplied: repairsApplied,
		auditDuration:  auditDuration,
		repairDuration: repairDuration,
	}, nil
}

func (m *AuditMetrics) RecordDrift(ctx context.Context, category string, count int) {
	if count == 0 {
		return
	}
	m.driftDetected.Add(ctx, int64(count),
		metric.WithAttributes(attribute.String("category", category)),
	)
}

func (m *AuditMetrics) RecordRepair(ctx context.Context, operation string, count int) {
	if count == 0 {
		return
	}
	m.repairsApplied.Add(ctx, int64(count),
		metric.WithAttributes(attribute.String("operation", operation)),
	)
}

func (m *AuditMetrics) RecordAuditDuration(ctx context.Context, d time.Duration) {
	m.auditDuration.Record(ctx, d.Seconds())
}

func (m *AuditMetrics) RecordRepairDuration(ctx context.Context, operation string, d time.Duration) {
	m.repairDuration.Record(ctx, d.Seconds(),
		metric.WithAttributes(attribute.String("operation", operation)),
	)
}
