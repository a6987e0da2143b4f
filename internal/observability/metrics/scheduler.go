package metrics

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const schedulerMeterName = "reminder.scheduler"

type SchedulerMetrics struct {
	triggersScheduled metric.Int64Counter
	triggersCancelled metric.Int64Counter
	partialFailures   metric.Int64Counter
	timingAdjusted    metric.Int64Counter
	scheduleDuration  metric.Float64Histogram
}

func NewSchedulerMetrics() (*SchedulerMetrics, error) {
	meter := otel.Meter(schedulerMeterName)

	triggersScheduled, err := meter.Int64Counter(
		"reminder_triggers_scheduled_total",
		metric.WithDescription("Total number of platform triggers scheduled"),
		metric.WithUnit("{trigger}"),
	)
	if err != nil {
		return nil, err
	}

	triggersCancelled, err := meter.Int64Counter(
		"reminder_triggers_cancelled_total",
		metric.WithDescription("Total number of platform triggers cancelled"),
		metric.WithUnit("{trigger}"),
	)
	if err != nil {
		return nil, err
	}

	partialFailures, err := meter.Int64Counter(
		"reminder_partial_failures_total",
		metric.WithDescription("Total number of per-item scheduling or cancellation failures"),
		metric.WithUnit("{failure}"),
	)
	if err != nil {
		return nil, err
	}

	timingAdjusted, err := meter.Int64Counter(
		"reminder_timing_adjusted_total",
		metric.WithDescription("Total number of reminders whose time was adjusted by the smart-timing pipeline"),
		metric.WithUnit("{reminder}"),
	)
	if err != nil {
		return nil, err
	}

	scheduleDuration, err := meter.Float64Histogram(
		"reminder_schedule_duration_seconds",
		metric.WithDescription("Time spent scheduling one plan against the platform"),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(
			0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5,
		),
	)
	if err != nil {
		return nil, err
	}

	return &SchedulerMetrics{
		triggersScheduled: triggersScheduled,
		triggersCancelled: triggersCancelled,
		partialFailures:   partialFailures,
		timingAdjusted:    timingAdjusted,
		scheduleDuration:  scheduleDuration,
	}, nil
}

func (m *SchedulerMetrics) RecordScheduled(ctx context.Context, frequency string, count int) {
	m.triggersScheduled.Add(ctx, int64(count),
		metric.WithAttributes(attribute.String("frequency", frequency)),
	)
}

func (m *SchedulerMetrics) RecordCancelled(ctx context.Context, count int) {
	m.triggersCancelled.Add(ctx, int64(count))
}

func (m *SchedulerMetrics) RecordPartialFailure(ctx context.Context, operation string, count int) {
	if count == 0 {
		return
	}
	m.partialFailures.Add(ctx, int64(count),
		metric.WithAttributes(attribute.String("operation", operation)),
	)
}

func (m *SchedulerMetrics) RecordTimingAdjusted(ctx context.Context, stage string) {
	m.timingAdjusted.Add(ctx, 1,
		metric.WithAttributes(attribute.String("stage", stage)),
	)
}

func (m *SchedulerMetrics) RecordScheduleDuration(ctx context.Context, d time.Duration) {
	m.scheduleDuration.Record(ctx, d.Seconds())
}
