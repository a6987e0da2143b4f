//go:build gcloud

package auditrecorder

import (
	"context"
	"log/slog"
	"time"

	"cloud.google.com/go/bigquery"

	"github.com/KasumiMercury/primind-reminder-scheduling/internal/domain"
)

type bigQueryRecord struct {
	RecordedAt      time.Time `bigquery:"recorded_at"`
	RunID           string    `bigquery:"run_id"`
	Operation       string    `bigquery:"operation"`
	TotalPlans      int64     `bigquery:"total_plans"`
	TotalLive       int64     `bigquery:"total_live"`
	OrphanedCount   int64     `bigquery:"orphaned_count"`
	MissingCount    int64     `bigquery:"missing_count"`
	DuplicatedCount int64     `bigquery:"duplicated_count"`
	RepairedCount   int64     `bigquery:"repaired_count"`
	FailedCount     int64     `bigquery:"failed_count"`
}

type bigQueryRecorder struct {
	client   *bigquery.Client
	inserter *bigquery.Inserter
	dataset  string
	table    string
}

func NewRecorder(ctx context.Context, cfg *Config) (domain.AuditResultRecorder, error) {
	if cfg.Disabled {
		slog.InfoContext(ctx, "audit result recording disabled")
		return NewNoopRecorder(), nil
	}

	if cfg.BigQueryProjectID == "" {
		slog.WarnContext(ctx, "BigQuery project ID not configured, audit result recording disabled")
		return NewNoopRecorder(), nil
	}

	client, err := bigquery.NewClient(ctx, cfg.BigQueryProjectID)
	if err != nil {
		slog.ErrorContext(ctx, "failed to create BigQuery client, audit result recording disabled",
			slog.String("error", err.Error()),
			slog.String("project_id", cfg.BigQueryProjectID),
		)
		return NewNoopRecorder(), nil
	}

	table := client.Dataset(cfg.BigQueryDataset).Table(cfg.BigQueryTable)
	inserter := table.Inserter()

	slog.InfoContext(ctx, "audit result recorder initialized",
		slog.String("type", "bigquery"),
		slog.String("project_id", cfg.BigQueryProjectID),
		slog.String("dataset", cfg.BigQueryDataset),
		slog.String("table", cfg.BigQueryTable),
	)

	return &bigQueryRecorder{
		client:   client,
		inserter: inserter,
		dataset:  cfg.BigQueryDataset,
		table:    cfg.BigQueryTable,
	}, nil
}

func (r *bigQueryRecorder) RecordAuditResults(ctx context.Context, records []domain.AuditResultRecord) error {
	if len(records) == 0 {
		return nil
	}

	now := time.Now()
	bqRecords := make([]*bigQueryRecord, 0, len(records))
	for _, record := range records {
		bqRecords = append(bqRecords, &bigQueryRecord{
			RecordedAt:      now,
			RunID:           record.RunID,
			Operation:       record.Operation,
			TotalPlans:      int64(record.TotalPlans),
			TotalLive:       int64(record.TotalLive),
			OrphanedCount:   int64(record.OrphanedCount),
			MissingCount:    int64(record.MissingCount),
			DuplicatedCount: int64(record.DuplicatedCount),
			RepairedCount:   int64(record.RepairedCount),
			FailedCount:     int64(record.FailedCount),
		})
	}

	if err := r.inserter.Put(ctx, bqRecords); err != nil {
		slog.WarnContext(ctx, "failed to insert audit results to BigQuery",
			slog.String("error", err.Error()),
			slog.Int("record_count", len(records)),
		)
	}

	return nil
}

func (r *bigQueryRecorder) Flush(_ context.Context) error {
	return nil
}

func (r *bigQueryRecorder) Close() error {
	if r.client != nil {
		return r.client.Close()
	}
	return nil
}
