package flow

// Result is the outcome of a measuring pass.
type Result struct {
	// Available is the content width the rows were packed against.
	// It is [Unbounded] when the width constraint is Unspecified.
	Available int

	Rows    []Row
	Content Size
	Size    Size
}

// RowCount returns the number of packed rows.
func (r Result) RowCount() int { return len(r.Rows) }

// ItemCount returns the number of packed (visible) items.
func (r Result) ItemCount() int {
	var n int
	for _, row := range r.Rows {
		n += len(row.Items)
	}
	return n
}

// Compute runs the resolve, measure, pack and aggregate stages. It has no
// side effects other than calling Measure on visible items, so it is safe to
// call repeatedly with different constraints or from several goroutines.
func Compute(items []Measurable, width, height Constraint, opts ...Option) Result {
	return compute(items, width, height, newConfig(opts), nil)
}

func compute(items []Measurable, width, height Constraint, cfg Config, trace func(Phase)) Result {
	step := func(p Phase) {
		if trace != nil {
			trace(p)
		}
	}

	step(Measuring)
	available, _ := Resolve(width, cfg.Padding.Left, cfg.Padding.Right)
	measured := measure(items, width, height, cfg.Padding)

	step(Packing)
	rows := Pack(measured, available, cfg.Spacing.Horizontal)

	step(Aggregating)
	content := ContentSize(rows, cfg.Spacing.Vertical)
	return Result{
		Available: available,
		Rows:      rows,
		Content:   content,
		Size:      FinalSize(content, width, height, cfg.Padding),
	}
}
