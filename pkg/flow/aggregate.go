package flow

// ContentSize returns the size needed to fit all rows, excluding padding.
// The vertical gap is applied only between rows.
func ContentSize(rows []Row, vgap int) Size {
	if len(rows) == 0 {
		return Size{}
	}
	var s Size
	for _, r := range rows {
		s.Width = max(s.Width, r.UsedWidth)
		s.Height += r.Height
	}
	s.Height += vgap * (len(rows) - 1)
	return s
}

// FinalSize returns the container's size: the constraint value on an Exact
// axis, otherwise the content size plus padding on that axis.
func FinalSize(content Size, width, height Constraint, padding Edges) Size {
	return Size{
		Width:  finalAxis(content.Width, width, padding.Horizontal()),
		Height: finalAxis(content.Height, height, padding.Vertical()),
	}
}

func finalAxis(content int, c Constraint, padding int) int {
	if c.Mode == Exact {
		return c.Value
	}
	return content + padding
}
