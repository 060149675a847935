package flow

// Placement is an item's final rectangle.
type Placement struct {
	// Index is the item's position in the original item list.
	Index int
	Item  Measurable
	Rect  Rect
}

// Position assigns rectangles row by row starting at the padding's top-left
// corner. Items in a row share the row's top edge.
func Position(rows []Row, padding Edges, spacing Spacing) []Placement {
	var n int
	for _, r := range rows {
		n += len(r.Items)
	}
	out := make([]Placement, 0, n)

	top := padding.Top
	for _, r := range rows {
		x := padding.Left
		for _, m := range r.Items {
			out = append(out, Placement{
				Index: m.Index,
				Item:  m.Item,
				Rect:  Rect{X: x, Y: top, Width: m.Size.Width, Height: m.Size.Height},
			})
			x += m.Size.Width + spacing.Horizontal
		}
		top += r.Height + spacing.Vertical
	}
	return out
}
