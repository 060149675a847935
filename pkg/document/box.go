package document

import "github.com/matzehuels/flowlayout/pkg/flow"

// Box is the flow item built from a document [Item]. It measures to its
// intrinsic size adjusted by the constraint it receives and remembers where
// it was placed.
type Box struct {
	Item Item

	dw, dh flow.Dimension
	rect   flow.Rect
	placed bool
}

// NewBox creates a box for it. Invalid layout sizes fall back to fixed;
// call [Document.Validate] first to reject them.
func NewBox(it Item) *Box {
	dw, err := parseDimension(it.LayoutWidth, it.Width)
	if err != nil {
		dw = flow.Fixed(it.Width)
	}
	dh, err := parseDimension(it.LayoutHeight, it.Height)
	if err != nil {
		dh = flow.Fixed(it.Height)
	}
	return &Box{Item: it, dw: dw, dh: dh}
}

// Measure implements flow.Measurable.
func (b *Box) Measure(width, height flow.Constraint) flow.Size {
	return flow.Size{
		Width:  resolveAxis(b.Item.Width, width),
		Height: resolveAxis(b.Item.Height, height),
	}
}

func resolveAxis(intrinsic int, c flow.Constraint) int {
	switch c.Mode {
	case flow.Exact:
		return c.Value
	case flow.AtMost:
		return min(intrinsic, c.Value)
	default:
		return intrinsic
	}
}

// Visible implements flow.Measurable.
func (b *Box) Visible() bool { return !b.Item.Hidden }

// LayoutSize implements flow.Sized.
func (b *Box) LayoutSize() (flow.Dimension, flow.Dimension) { return b.dw, b.dh }

// Place implements flow.Placeable.
func (b *Box) Place(r flow.Rect) {
	b.rect = r
	b.placed = true
}

// Rect returns the last placement and whether the box has been placed.
func (b *Box) Rect() (flow.Rect, bool) { return b.rect, b.placed }
