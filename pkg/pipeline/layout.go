package pipeline

import (
	"context"
	"time"

	"github.com/matzehuels/flowlayout/pkg/document"
	"github.com/matzehuels/flowlayout/pkg/observability"
)

// ComputeLayout applies the overrides in opts to d and lays it out.
// It does not consult any cache.
func ComputeLayout(ctx context.Context, d *document.Document, opts Options) (document.Layout, error) {
	if err := opts.ValidateForLayout(); err != nil {
		return document.Layout{}, err
	}
	doc := opts.Apply(d)

	hooks := observability.Pipeline()
	hooks.OnLayoutStart(ctx, opts.Source, len(doc.Items))
	start := time.Now()

	l, err := document.Compute(doc)
	hooks.OnLayoutComplete(ctx, opts.Source, l.RowCount(), time.Since(start), err)
	return l, err
}
