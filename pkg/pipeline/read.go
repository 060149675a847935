package pipeline

import (
	"context"
	"time"

	"github.com/matzehuels/flowlayout/pkg/document"
	"github.com/matzehuels/flowlayout/pkg/observability"
)

// ReadDocument reads a document file and reports the read to the
// pipeline hooks.
func ReadDocument(ctx context.Context, path string) (*document.Document, error) {
	hooks := observability.Pipeline()
	hooks.OnReadStart(ctx, path)
	start := time.Now()

	d, err := document.ReadFile(path)
	n := 0
	if d != nil {
		n = len(d.Items)
	}
	hooks.OnReadComplete(ctx, path, n, time.Since(start), err)
	return d, err
}
