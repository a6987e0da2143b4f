//go:build !gcloud

package logging

import (
	"context"
	"log/slog"
)

// gcpTraceAttrs is a no-op outside gcloud builds; log records carry no
// Cloud Trace correlation attributes locally.
func gcpTraceAttrs(_ context.Context, _ string) []slog.Attr {
	return nil
}
