package logging

import (
	"context"
	"log/slog"
	"os"
)

// ServiceInfo identifies the running service in every log line.
type ServiceInfo struct {
	Name     string
	Version  string
	Revision string
}

type contextHandler struct {
	slog.Handler
	projectID string
}

// NewHandler builds the service-wide slog handler: JSON output with service
// attributes, plus GCP trace correlation attrs on gcloud builds.
func NewHandler(level slog.Level, info ServiceInfo, projectID string) slog.Handler {
	base := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: level,
	})

	attrs := []slog.Attr{
		slog.String("service", info.Name),
	}
	if info.Version != "" {
		attrs = append(attrs, slog.String("version", info.Version))
	}
	if info.Revision != "" {
		attrs = append(attrs, slog.String("revision", info.Revision))
	}

	return &contextHandler{
		Handler:   base.WithAttrs(attrs),
		projectID: projectID,
	}
}

func (h *contextHandler) Handle(ctx context.Context, rec slog.Record) error {
	if attrs := gcpTraceAttrs(ctx, h.projectID); len(attrs) > 0 {
		rec.AddAttrs(attrs...)
	}
	return h.Handler.Handle(ctx, rec)
}
