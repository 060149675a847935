package flow

// Measurable is the capability every item in a flow container provides.
type Measurable interface {
	// Measure returns the item's desired size under the given constraints.
	Measure(width, height Constraint) Size

	// Visible reports whether the item takes part in layout. Collapsed
	// items are skipped by every stage.
	Visible() bool
}

// Placeable items receive their final rectangle from [Container.Layout].
type Placeable interface {
	Place(r Rect)
}

// Sized items request a per-axis dimension. Items that do not implement
// Sized are measured as WrapContent on both axes.
type Sized interface {
	LayoutSize() (width, height Dimension)
}

// Measured is a visible item together with its measured size.
type Measured struct {
	// Index is the item's position in the original item list.
	Index int
	Item  Measurable
	Size  Size
}

// measure runs the measuring stage: every visible item is measured under
// the child constraints derived from the container's constraints.
func measure(items []Measurable, width, height Constraint, padding Edges) []Measured {
	out := make([]Measured, 0, len(items))
	for i, it := range items {
		if it == nil || !it.Visible() {
			continue
		}
		dw, dh := Wrap(), Wrap()
		if s, ok := it.(Sized); ok {
			dw, dh = s.LayoutSize()
		}
		sz := it.Measure(
			ChildConstraint(width, padding.Horizontal(), dw),
			ChildConstraint(height, padding.Vertical(), dh),
		)
		sz.Width = max(sz.Width, 0)
		sz.Height = max(sz.Height, 0)
		out = append(out, Measured{Index: i, Item: it, Size: sz})
	}
	return out
}
