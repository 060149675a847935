// Package pipeline runs the read → layout → render pipeline for flow
// documents.
//
// The CLI, the HTTP server and batch runs all go through a [Runner], so
// overrides, caching and output formats behave the same at every entry
// point.
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	result, err := runner.Execute(ctx, doc, pipeline.Options{
//	    Width:   document.IntPtr(320),
//	    Formats: []string{"json", "table"},
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	os.Stdout.Write(result.Artifacts["table"])
//
// Run individual stages:
//
//	layout, err := runner.ComputeLayout(ctx, doc, opts)
//	artifacts, err := runner.Render(ctx, layout, opts)
package pipeline

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/flowlayout/pkg/cache"
	"github.com/matzehuels/flowlayout/pkg/document"
	"github.com/matzehuels/flowlayout/pkg/errors"
	"github.com/matzehuels/flowlayout/pkg/flow"
	"github.com/matzehuels/flowlayout/pkg/sink"
)

const (
	// DefaultFormat is rendered when no format is requested.
	DefaultFormat = sink.FormatJSON

	// DefaultConcurrency bounds ExecuteBatch.
	DefaultConcurrency = 4
)

// Options configures a pipeline run. Layout overrides replace the
// corresponding document fields; nil or empty means "keep the document's".
type Options struct {
	// Layout overrides
	Width         *int   `json:"width,omitempty"`
	WidthMode     string `json:"width_mode,omitempty"`
	Height        *int   `json:"height,omitempty"`
	HeightMode    string `json:"height_mode,omitempty"`
	HorizontalGap *int   `json:"horizontal_gap,omitempty"`
	VerticalGap   *int   `json:"vertical_gap,omitempty"`
	Refresh       bool   `json:"refresh,omitempty"` // Skip cache reads

	// Render options
	Formats []string `json:"formats,omitempty"`

	// Runtime options (not serialized)
	Source      string      `json:"-"` // Names the document in logs and hooks
	Concurrency int         `json:"-"`
	Logger      *log.Logger `json:"-"`

	validated bool
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Source is the document's name, usually its path.
	Source string

	// Document is the input document with overrides applied.
	Document *document.Document

	// DocumentHash is the content hash of Document.
	DocumentHash string

	// Layout is the computed layout.
	Layout document.Layout

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	Stats     Stats
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	ItemCount   int
	HiddenCount int
	RowCount    int
	LayoutTime  time.Duration
	RenderTime  time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	LayoutHit bool // Whether the layout came from cache
	RenderHit bool // Whether all artifacts came from cache
}

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !sink.IsValid(format) {
		return errors.New(errors.ErrCodeInvalidFormat, "invalid format: %q (must be one of: %s)", format, strings.Join(sink.ValidFormats, ", "))
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// ValidateAndSetDefaults checks overrides and applies defaults.
// It is idempotent.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if err := o.ValidateForLayout(); err != nil {
		return err
	}
	if err := o.ValidateForRender(); err != nil {
		return err
	}
	if o.Concurrency <= 0 {
		o.Concurrency = DefaultConcurrency
	}
	o.validated = true
	return nil
}

// ValidateForLayout checks the layout overrides.
func (o *Options) ValidateForLayout() error {
	modes := []struct {
		name string
		mode string
	}{
		{"width_mode", o.WidthMode},
		{"height_mode", o.HeightMode},
	}
	for _, m := range modes {
		if m.mode == "" {
			continue
		}
		if _, err := flow.ParseMode(m.mode); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidConstraint, err, "%s", m.name)
		}
	}
	sizes := []struct {
		name string
		v    *int
	}{
		{"width", o.Width},
		{"height", o.Height},
		{"horizontal_gap", o.HorizontalGap},
		{"vertical_gap", o.VerticalGap},
	}
	for _, sz := range sizes {
		if sz.v != nil && *sz.v < 0 {
			return errors.New(errors.ErrCodeInvalidInput, "%s cannot be negative", sz.name)
		}
	}
	o.setLogger()
	return nil
}

// ValidateForRender applies the default format and checks formats.
func (o *Options) ValidateForRender() error {
	if len(o.Formats) == 0 {
		o.Formats = []string{DefaultFormat}
	}
	o.setLogger()
	return ValidateFormats(o.Formats)
}

func (o *Options) setLogger() {
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// Apply returns a copy of d with the overrides applied. d is not modified.
func (o *Options) Apply(d *document.Document) *document.Document {
	out := d.Clone()
	if o.Width != nil {
		out.Width = *o.Width
	}
	if o.WidthMode != "" {
		out.WidthMode = o.WidthMode
	}
	if o.Height != nil {
		out.Height = *o.Height
	}
	if o.HeightMode != "" {
		out.HeightMode = o.HeightMode
	}
	if o.HorizontalGap != nil {
		out.HorizontalGap = document.IntPtr(*o.HorizontalGap)
	}
	if o.VerticalGap != nil {
		out.VerticalGap = document.IntPtr(*o.VerticalGap)
	}
	return out
}

// LayoutKeyOpts returns cache key options for the effective document.
func LayoutKeyOpts(d *document.Document) cache.LayoutKeyOpts {
	s := d.Spacing()
	return cache.LayoutKeyOpts{
		WidthMode:     d.WidthMode,
		Width:         d.Width,
		HeightMode:    d.HeightMode,
		Height:        d.Height,
		HorizontalGap: s.Horizontal,
		VerticalGap:   s.Vertical,
	}
}

// ArtifactKeyOpts returns cache key options for artifact rendering.
func ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	return cache.ArtifactKeyOpts{Format: format}
}

// documentHash hashes the JSON form of d.
func documentHash(d *document.Document) (string, error) {
	data, err := document.Marshal(d, document.FormatJSON)
	if err != nil {
		return "", fmt.Errorf("serialize document: %w", err)
	}
	return cache.Hash(data), nil
}
