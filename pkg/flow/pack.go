package flow

// Row is a maximal run of items that fit the available width.
type Row struct {
	Items []Measured

	// UsedWidth is the sum of item widths plus the gaps between them.
	UsedWidth int

	// Height is the tallest item in the row.
	Height int
}

// Pack groups items into rows, first-fit by arrival. A row is closed when it
// already holds an item and adding the next one (plus its trailing gap)
// would exceed available. An empty row accepts any item, so an item wider
// than available ends up alone in its own row.
//
// Pack allocates fresh rows on every call and never reorders items.
func Pack(items []Measured, available, hgap int) []Row {
	var rows []Row
	var cur []Measured
	used, height := 0, 0

	closeRow := func() {
		rows = append(rows, Row{Items: cur, UsedWidth: used - hgap, Height: height})
		cur, used, height = nil, 0, 0
	}

	for _, m := range items {
		if len(cur) > 0 && exceeds(used, m.Size.Width+hgap, available) {
			closeRow()
		}
		cur = append(cur, m)
		used += m.Size.Width + hgap
		height = max(height, m.Size.Height)
	}
	if len(cur) > 0 {
		closeRow()
	}
	return rows
}

// exceeds reports whether used+add > limit without overflowing when limit
// is Unbounded.
func exceeds(used, add, limit int) bool {
	return add > limit-used
}
