package pipeline

import (
	"context"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/matzehuels/flowlayout/pkg/cache"
	"github.com/matzehuels/flowlayout/pkg/document"
	"github.com/matzehuels/flowlayout/pkg/errors"
)

func chips() *document.Document {
	return &document.Document{
		Width:         100,
		WidthMode:     "at_most",
		HorizontalGap: document.IntPtr(10),
		VerticalGap:   document.IntPtr(10),
		Items: []document.Item{
			{ID: "go", Width: 40, Height: 20},
			{ID: "rust", Width: 40, Height: 20},
			{ID: "zig", Width: 40, Height: 20},
		},
	}
}

func TestValidateFormat(t *testing.T) {
	tests := []struct {
		format  string
		wantErr bool
	}{
		{"json", false},
		{"toml", false},
		{"table", false},
		{"svg", true},
		{"JSON", true}, // case-sensitive
		{"", true},
	}

	for _, tt := range tests {
		err := ValidateFormat(tt.format)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateFormat(%q) error = %v, wantErr %v", tt.format, err, tt.wantErr)
		}
	}
}

func TestValidateFormats(t *testing.T) {
	if err := ValidateFormats([]string{"json", "table"}); err != nil {
		t.Errorf("Valid formats should pass: %v", err)
	}
	if err := ValidateFormats([]string{"json", "png"}); err == nil {
		t.Error("Invalid format should fail")
	}
	if err := ValidateFormats(nil); err != nil {
		t.Errorf("Empty formats should pass: %v", err)
	}
}

func TestValidateAndSetDefaults(t *testing.T) {
	var o Options
	if err := o.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("ValidateAndSetDefaults: %v", err)
	}
	if diff := cmp.Diff([]string{DefaultFormat}, o.Formats); diff != "" {
		t.Errorf("default formats (-want +got):\n%s", diff)
	}
	if o.Concurrency != DefaultConcurrency {
		t.Errorf("Concurrency = %d, want %d", o.Concurrency, DefaultConcurrency)
	}
	if o.Logger == nil {
		t.Error("Logger should default to a discard logger")
	}
}

func TestValidateOptionsErrors(t *testing.T) {
	tests := []struct {
		name string
		opts Options
		code errors.Code
	}{
		{"bad mode", Options{WidthMode: "sometimes"}, errors.ErrCodeInvalidConstraint},
		{"negative width", Options{Width: document.IntPtr(-1)}, errors.ErrCodeInvalidInput},
		{"negative gap", Options{VerticalGap: document.IntPtr(-5)}, errors.ErrCodeInvalidInput},
		{"bad format", Options{Formats: []string{"gif"}}, errors.ErrCodeInvalidFormat},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.opts.ValidateAndSetDefaults()
			if !errors.Is(err, tt.code) {
				t.Errorf("err = %v, want code %s", err, tt.code)
			}
		})
	}
}

func TestValidateOptionsReportsFirstInvalidField(t *testing.T) {
	tests := []struct {
		name string
		opts Options
		want string
	}{
		{"both modes", Options{WidthMode: "often", HeightMode: "rarely"}, "width_mode"},
		{"height mode", Options{HeightMode: "rarely"}, "height_mode"},
		{"all sizes", Options{
			Width:         document.IntPtr(-1),
			Height:        document.IntPtr(-1),
			HorizontalGap: document.IntPtr(-1),
			VerticalGap:   document.IntPtr(-1),
		}, "width cannot be negative"},
		{"gaps", Options{HorizontalGap: document.IntPtr(-1), VerticalGap: document.IntPtr(-1)}, "horizontal_gap cannot be negative"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for i := 0; i < 20; i++ {
				o := tt.opts
				err := o.ValidateForLayout()
				if err == nil || !strings.Contains(err.Error(), tt.want) {
					t.Fatalf("ValidateForLayout() = %v, want it to mention %q", err, tt.want)
				}
			}
		})
	}
}

func TestApplyDoesNotModifyInput(t *testing.T) {
	d := chips()
	o := Options{Width: document.IntPtr(300), WidthMode: "exact", HorizontalGap: document.IntPtr(0)}
	got := o.Apply(d)

	if got.Width != 300 || got.WidthMode != "exact" || *got.HorizontalGap != 0 {
		t.Errorf("overrides not applied: %+v", got)
	}
	if d.Width != 100 || d.WidthMode != "at_most" || *d.HorizontalGap != 10 {
		t.Errorf("input modified: %+v", d)
	}
}

func TestExecute(t *testing.T) {
	r := NewRunner(nil, nil, nil)
	res, err := r.Execute(context.Background(), chips(), Options{Formats: []string{"json", "table"}})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}

	if res.Layout.Width != 90 || res.Layout.Height != 50 {
		t.Errorf("size = %dx%d, want 90x50", res.Layout.Width, res.Layout.Height)
	}
	want := Stats{ItemCount: 3, RowCount: 2}
	got := res.Stats
	got.LayoutTime, got.RenderTime = 0, 0
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("stats (-want +got):\n%s", diff)
	}
	if len(res.Artifacts) != 2 {
		t.Errorf("artifacts = %d, want 2", len(res.Artifacts))
	}
	if !strings.Contains(string(res.Artifacts["table"]), "zig") {
		t.Errorf("table artifact missing item:\n%s", res.Artifacts["table"])
	}
	if res.DocumentHash == "" {
		t.Error("DocumentHash should be set")
	}
}

func TestExecuteWidthOverride(t *testing.T) {
	r := NewRunner(nil, nil, nil)
	res, err := r.Execute(context.Background(), chips(), Options{Width: document.IntPtr(200)})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if res.Stats.RowCount != 1 {
		t.Errorf("rows = %d, want 1", res.Stats.RowCount)
	}
	if res.Layout.Width != 140 {
		t.Errorf("width = %d, want 140", res.Layout.Width)
	}
	if res.Document.Width != 200 {
		t.Errorf("result document width = %d, want 200", res.Document.Width)
	}
}

func TestExecuteCaching(t *testing.T) {
	c, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	r := NewRunner(c, nil, nil)
	defer r.Close()
	ctx := context.Background()

	first, err := r.Execute(ctx, chips(), Options{})
	if err != nil {
		t.Fatalf("first Execute: %v", err)
	}
	if first.CacheInfo.LayoutHit || first.CacheInfo.RenderHit {
		t.Errorf("first run should miss: %+v", first.CacheInfo)
	}

	second, err := r.Execute(ctx, chips(), Options{})
	if err != nil {
		t.Fatalf("second Execute: %v", err)
	}
	if !second.CacheInfo.LayoutHit || !second.CacheInfo.RenderHit {
		t.Errorf("second run should hit: %+v", second.CacheInfo)
	}
	if diff := cmp.Diff(first.Layout, second.Layout); diff != "" {
		t.Errorf("cached layout differs (-first +second):\n%s", diff)
	}

	other, err := r.Execute(ctx, chips(), Options{Width: document.IntPtr(50)})
	if err != nil {
		t.Fatalf("override Execute: %v", err)
	}
	if other.CacheInfo.LayoutHit {
		t.Error("a different width should not hit the cache")
	}

	refreshed, err := r.Execute(ctx, chips(), Options{Refresh: true})
	if err != nil {
		t.Fatalf("refresh Execute: %v", err)
	}
	if refreshed.CacheInfo.LayoutHit || refreshed.CacheInfo.RenderHit {
		t.Errorf("refresh should skip cache reads: %+v", refreshed.CacheInfo)
	}
}

func TestExecuteInvalidDocument(t *testing.T) {
	d := chips()
	d.Items = append(d.Items, document.Item{ID: "go", Width: 1, Height: 1})

	_, err := NewRunner(nil, nil, nil).Execute(context.Background(), d, Options{})
	if !errors.Is(err, errors.ErrCodeInvalidItem) {
		t.Errorf("err = %v, want INVALID_ITEM", err)
	}
}

func TestExecuteBatch(t *testing.T) {
	r := NewRunner(nil, nil, nil)
	wide := chips()
	wide.Width = 500

	inputs := []Input{
		{Document: chips()},
		{Path: "../document/testdata/chips.json"},
		{Document: wide},
	}
	results, err := r.ExecuteBatch(context.Background(), inputs, Options{Concurrency: 2})
	if err != nil {
		t.Fatalf("ExecuteBatch: %v", err)
	}
	if len(results) != 3 {
		t.Fatalf("results = %d, want 3", len(results))
	}

	rows := []int{results[0].Stats.RowCount, results[1].Stats.RowCount, results[2].Stats.RowCount}
	if diff := cmp.Diff([]int{2, 2, 1}, rows); diff != "" {
		t.Errorf("row counts (-want +got):\n%s", diff)
	}
	if results[1].Source != "../document/testdata/chips.json" {
		t.Errorf("Source = %q", results[1].Source)
	}
}

func TestExecuteBatchError(t *testing.T) {
	r := NewRunner(nil, nil, nil)
	inputs := []Input{
		{Document: chips()},
		{Path: "testdata/missing.json"},
	}
	_, err := r.ExecuteBatch(context.Background(), inputs, Options{})
	if !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("err = %v, want FILE_NOT_FOUND", err)
	}
	if err == nil || !strings.Contains(err.Error(), "missing.json") {
		t.Errorf("error should name the input: %v", err)
	}
}
