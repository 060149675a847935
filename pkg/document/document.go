package document

import (
	"fmt"

	"github.com/matzehuels/flowlayout/pkg/errors"
	"github.com/matzehuels/flowlayout/pkg/flow"
)

// Item sizing keywords accepted in layout_width / layout_height.
const (
	SizeFixed = "fixed" // The item's own width/height, regardless of the container
	SizeWrap  = "wrap"  // The item's own size, shrunk to fit the container
	SizeMatch = "match" // The container's available size on that axis
)

// Document is a container and its items.
type Document struct {
	Width      int    `json:"width,omitempty" toml:"width,omitempty"`
	WidthMode  string `json:"width_mode,omitempty" toml:"width_mode,omitempty"`
	Height     int    `json:"height,omitempty" toml:"height,omitempty"`
	HeightMode string `json:"height_mode,omitempty" toml:"height_mode,omitempty"`

	// Gaps default to flow.DefaultHorizontalGap and flow.DefaultVerticalGap
	// when unset.
	HorizontalGap *int `json:"horizontal_gap,omitempty" toml:"horizontal_gap,omitempty"`
	VerticalGap   *int `json:"vertical_gap,omitempty" toml:"vertical_gap,omitempty"`

	Padding Padding `json:"padding" toml:"padding"`
	Items   []Item  `json:"items" toml:"items"`
}

// Padding is the container padding.
type Padding struct {
	Top    int `json:"top" toml:"top"`
	Right  int `json:"right" toml:"right"`
	Bottom int `json:"bottom" toml:"bottom"`
	Left   int `json:"left" toml:"left"`
}

// Edges converts p to flow.Edges.
func (p Padding) Edges() flow.Edges {
	return flow.Edges{Top: p.Top, Right: p.Right, Bottom: p.Bottom, Left: p.Left}
}

// Item is one element of the container.
type Item struct {
	ID           string `json:"id" toml:"id"`
	Label        string `json:"label,omitempty" toml:"label,omitempty"`
	Width        int    `json:"width" toml:"width"`
	Height       int    `json:"height" toml:"height"`
	Hidden       bool   `json:"hidden,omitempty" toml:"hidden,omitempty"`
	LayoutWidth  string `json:"layout_width,omitempty" toml:"layout_width,omitempty"`
	LayoutHeight string `json:"layout_height,omitempty" toml:"layout_height,omitempty"`
}

// Normalize fills in default item ids ("item-1", "item-2", ...) and
// validates the document. It is idempotent.
func (d *Document) Normalize() error {
	for i := range d.Items {
		if d.Items[i].ID == "" {
			d.Items[i].ID = fmt.Sprintf("item-%d", i+1)
		}
	}
	return d.Validate()
}

// Validate checks constraint modes, sizes, padding and item ids.
func (d *Document) Validate() error {
	if _, _, err := d.Constraints(); err != nil {
		return err
	}
	dims := []struct {
		name string
		v    int
	}{
		{"width", d.Width},
		{"height", d.Height},
		{"padding top", d.Padding.Top},
		{"padding right", d.Padding.Right},
		{"padding bottom", d.Padding.Bottom},
		{"padding left", d.Padding.Left},
	}
	for _, dim := range dims {
		if err := errors.ValidateDimension(dim.name, dim.v); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidDocument, err, "container")
		}
	}
	if d.HorizontalGap != nil && *d.HorizontalGap < 0 {
		return errors.New(errors.ErrCodeInvalidDocument, "horizontal_gap cannot be negative")
	}
	if d.VerticalGap != nil && *d.VerticalGap < 0 {
		return errors.New(errors.ErrCodeInvalidDocument, "vertical_gap cannot be negative")
	}

	seen := make(map[string]bool, len(d.Items))
	for i, it := range d.Items {
		if err := errors.ValidateItemID(it.ID); err != nil {
			return fmt.Errorf("item %d: %w", i+1, err)
		}
		if seen[it.ID] {
			return errors.New(errors.ErrCodeInvalidItem, "duplicate item id %q", it.ID)
		}
		seen[it.ID] = true
		if err := errors.ValidateDimension("item "+it.ID+" width", it.Width); err != nil {
			return err
		}
		if err := errors.ValidateDimension("item "+it.ID+" height", it.Height); err != nil {
			return err
		}
		if _, err := parseDimension(it.LayoutWidth, it.Width); err != nil {
			return fmt.Errorf("item %s layout_width: %w", it.ID, err)
		}
		if _, err := parseDimension(it.LayoutHeight, it.Height); err != nil {
			return fmt.Errorf("item %s layout_height: %w", it.ID, err)
		}
	}
	return nil
}

// Constraints returns the container's width and height constraints. An
// unset width mode is at_most when a width is given, unspecified otherwise.
// The same rule applies to height.
func (d *Document) Constraints() (width, height flow.Constraint, err error) {
	width, err = constraint(d.WidthMode, d.Width)
	if err != nil {
		return width, height, fmt.Errorf("width_mode: %w", err)
	}
	height, err = constraint(d.HeightMode, d.Height)
	if err != nil {
		return width, height, fmt.Errorf("height_mode: %w", err)
	}
	return width, height, nil
}

func constraint(mode string, v int) (flow.Constraint, error) {
	if mode == "" {
		if v > 0 {
			return flow.AtMostOf(v), nil
		}
		return flow.UnspecifiedConstraint(), nil
	}
	m, err := flow.ParseMode(mode)
	if err != nil {
		return flow.Constraint{}, errors.Wrap(errors.ErrCodeInvalidConstraint, err, "invalid mode")
	}
	if m == flow.Unspecified {
		return flow.UnspecifiedConstraint(), nil
	}
	return flow.Constraint{Mode: m, Value: v}, nil
}

// Spacing returns the document's gaps with defaults applied.
func (d *Document) Spacing() flow.Spacing {
	s := flow.DefaultSpacing()
	if d.HorizontalGap != nil {
		s.Horizontal = *d.HorizontalGap
	}
	if d.VerticalGap != nil {
		s.Vertical = *d.VerticalGap
	}
	return s
}

// Options returns the flow options for the document's spacing and padding.
func (d *Document) Options() []flow.Option {
	s := d.Spacing()
	return []flow.Option{
		flow.WithSpacing(s.Horizontal, s.Vertical),
		flow.WithPadding(d.Padding.Edges()),
	}
}

// Container builds a flow container over the document's items. The boxes
// are in document order and receive their rectangles when the container
// is laid out.
func (d *Document) Container() (*flow.Container, []*Box) {
	boxes := make([]*Box, len(d.Items))
	items := make([]flow.Measurable, len(d.Items))
	for i, it := range d.Items {
		boxes[i] = NewBox(it)
		items[i] = boxes[i]
	}
	return flow.New(items, d.Options()...), boxes
}

// Clone returns a deep copy of the document.
func (d *Document) Clone() *Document {
	c := *d
	c.Items = append([]Item(nil), d.Items...)
	if d.HorizontalGap != nil {
		v := *d.HorizontalGap
		c.HorizontalGap = &v
	}
	if d.VerticalGap != nil {
		v := *d.VerticalGap
		c.VerticalGap = &v
	}
	return &c
}

// IntPtr is a helper for setting optional gaps.
func IntPtr(v int) *int { return &v }

func parseDimension(kind string, size int) (flow.Dimension, error) {
	switch kind {
	case "", SizeFixed:
		return flow.Fixed(size), nil
	case SizeWrap:
		return flow.Wrap(), nil
	case SizeMatch:
		return flow.Match(), nil
	}
	return flow.Dimension{}, errors.New(errors.ErrCodeInvalidItem, "unknown size %q (must be one of: fixed, wrap, match)", kind)
}
