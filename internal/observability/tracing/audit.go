package tracing

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const auditTracerName = "github.com/KasumiMercury/primind-reminder-scheduling/internal/service/audit"

func AuditTracer() trace.Tracer {
	return otel.Tracer(auditTracerName)
}

func StartAuditSpan(ctx context.Context, runID string) (context.Context, trace.Span) {
	return AuditTracer().Start(ctx, "audit.detect",
		trace.WithAttributes(
			attribute.String("run_id", runID),
		),
	)
}

func StartRepairSpan(ctx context.Context, runID, operation string) (context.Context, trace.Span) {
	return AuditTracer().Start(ctx, "audit.repair."+operation,
		trace.WithAttributes(
			attribute.String("run_id", runID),
			attribute.String("operation", operation),
		),
	)
}

func StartPlatformCallSpan(ctx context.Context, operation string) (context.Context, trace.Span) {
	return AuditTracer().Start(ctx, "audit.platform."+operation,
		trace.WithSpanKind(trace.SpanKindClient),
	)
}

func RecordAuditResult(span trace.Span, orphaned, missing, duplicated, totalPlans, totalLive int, err error) {
	span.SetAttributes(
		attribute.Int("audit.orphaned_count", orphaned),
		attribute.Int("audit.missing_count", missing),
		attribute.Int("audit.duplicated_count", duplicated),
		attribute.Int("audit.total_plans", totalPlans),
		attribute.Int("audit.total_live", totalLive),
	)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	} else {
		span.SetStatus(codes.Ok, "")
	}
}

func RecordRepairResult(span trace.Span, repaired, failed int, err error) {
	span.SetAttributes(
		attribute.Int("repair.repaired_count", repaired),
		attribute.Int("repair.failed_count", failed),
	)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	} else {
		span.SetStatus(codes.Ok, "")
	}
}
