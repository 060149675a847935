package flow

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

// box is a fixed-size test item that records its placement.
type box struct {
	w, h   int
	hidden bool
	dw, dh Dimension

	measured int
	placed   *Rect
}

func (b *box) Measure(width, height Constraint) Size {
	b.measured++
	return Size{Width: axis(b.w, width), Height: axis(b.h, height)}
}

func axis(intrinsic int, c Constraint) int {
	switch c.Mode {
	case Exact:
		return c.Value
	case AtMost:
		return min(intrinsic, c.Value)
	default:
		return intrinsic
	}
}

func (b *box) Visible() bool { return !b.hidden }

func (b *box) Place(r Rect) { b.placed = &r }

func (b *box) LayoutSize() (Dimension, Dimension) { return b.dw, b.dh }

func boxes(sizes ...[2]int) []Measurable {
	out := make([]Measurable, len(sizes))
	for i, s := range sizes {
		out[i] = &box{w: s[0], h: s[1]}
	}
	return out
}

func measuredOf(sizes ...[2]int) []Measured {
	out := make([]Measured, len(sizes))
	for i, s := range sizes {
		out[i] = Measured{Index: i, Size: Size{Width: s[0], Height: s[1]}}
	}
	return out
}

func rowIndexes(rows []Row) [][]int {
	out := make([][]int, len(rows))
	for i, r := range rows {
		for _, m := range r.Items {
			out[i] = append(out[i], m.Index)
		}
	}
	return out
}

// Measured.Item points at a box whose counters change between passes.
var ignoreItems = cmpopts.IgnoreFields(Measured{}, "Item")

func TestThreeItemScenario(t *testing.T) {
	items := boxes([2]int{40, 20}, [2]int{40, 20}, [2]int{40, 20})
	res := Compute(items, AtMostOf(100), UnspecifiedConstraint(), WithSpacing(10, 10))

	if got, want := rowIndexes(res.Rows), [][]int{{0, 1}, {2}}; !cmp.Equal(got, want) {
		t.Fatalf("rows mismatch (-want +got):\n%s", cmp.Diff(want, got))
	}
	if res.Rows[0].UsedWidth != 90 || res.Rows[1].UsedWidth != 40 {
		t.Errorf("UsedWidth = %d, %d, want 90, 40", res.Rows[0].UsedWidth, res.Rows[1].UsedWidth)
	}
	if res.Rows[0].Height != 20 || res.Rows[1].Height != 20 {
		t.Errorf("Height = %d, %d, want 20, 20", res.Rows[0].Height, res.Rows[1].Height)
	}
	if want := (Size{Width: 90, Height: 50}); res.Content != want {
		t.Errorf("Content = %+v, want %+v", res.Content, want)
	}

	placed := Position(res.Rows, Edges{}, Spacing{Horizontal: 10, Vertical: 10})
	want := []Rect{
		{X: 0, Y: 0, Width: 40, Height: 20},
		{X: 50, Y: 0, Width: 40, Height: 20},
		{X: 0, Y: 30, Width: 40, Height: 20},
	}
	got := make([]Rect, len(placed))
	for i, p := range placed {
		got[i] = p.Rect
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("placements mismatch (-want +got):\n%s", diff)
	}
}

func TestOversizedItem(t *testing.T) {
	items := boxes([2]int{150, 30})
	// A fixed dimension keeps 150 under the parent's AtMost(100).
	items[0].(*box).dw = Fixed(150)

	res := Compute(items, AtMostOf(100), UnspecifiedConstraint())
	if res.RowCount() != 1 {
		t.Fatalf("RowCount() = %d, want 1", res.RowCount())
	}
	if res.Content.Width != 150 {
		t.Errorf("Content.Width = %d, want 150", res.Content.Width)
	}
}

func TestOversizedItemBetweenOthers(t *testing.T) {
	rows := Pack(measuredOf([2]int{30, 10}, [2]int{150, 10}, [2]int{30, 10}), 100, 10)
	if diff := cmp.Diff([][]int{{0}, {1}, {2}}, rowIndexes(rows)); diff != "" {
		t.Errorf("rows mismatch (-want +got):\n%s", diff)
	}
}

func TestZeroItems(t *testing.T) {
	for _, items := range [][]Measurable{nil, {}, {&box{w: 10, h: 10, hidden: true}}} {
		res := Compute(items, AtMostOf(100), UnspecifiedConstraint())
		if res.RowCount() != 0 {
			t.Errorf("RowCount() = %d, want 0", res.RowCount())
		}
		if res.Content != (Size{}) {
			t.Errorf("Content = %+v, want zero", res.Content)
		}
	}
}

func TestEmptyWithPadding(t *testing.T) {
	res := Compute(nil, AtMostOf(100), AtMostOf(100), WithPadding(Edges{Top: 1, Right: 2, Bottom: 3, Left: 4}))
	if want := (Size{Width: 6, Height: 4}); res.Size != want {
		t.Errorf("Size = %+v, want %+v", res.Size, want)
	}
}

func TestPackInvariants(t *testing.T) {
	tests := []struct {
		name      string
		sizes     [][2]int
		available int
		hgap      int
	}{
		{"uniform", [][2]int{{20, 5}, {20, 6}, {20, 7}, {20, 8}, {20, 9}}, 70, 5},
		{"mixed", [][2]int{{5, 1}, {90, 2}, {3, 30}, {60, 4}, {40, 5}, {1, 1}}, 100, 10},
		{"zero gap", [][2]int{{50, 1}, {50, 2}, {50, 3}}, 100, 0},
		{"zero available", [][2]int{{1, 1}, {1, 1}}, 0, 0},
		{"many", manySizes(200), 97, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := measuredOf(tt.sizes...)
			rows := Pack(in, tt.available, tt.hgap)

			next := 0
			for i, r := range rows {
				if len(r.Items) == 0 {
					t.Fatalf("row %d is empty", i)
				}
				wantHeight, wantUsed := 0, -tt.hgap
				for _, m := range r.Items {
					if m.Index != next {
						t.Fatalf("row %d: item %d out of order, want %d", i, m.Index, next)
					}
					next++
					wantHeight = max(wantHeight, m.Size.Height)
					wantUsed += m.Size.Width + tt.hgap
				}
				if r.Height != wantHeight {
					t.Errorf("row %d: Height = %d, want %d", i, r.Height, wantHeight)
				}
				if r.UsedWidth != wantUsed {
					t.Errorf("row %d: UsedWidth = %d, want %d", i, r.UsedWidth, wantUsed)
				}
				if len(r.Items) > 1 && r.UsedWidth > tt.available {
					t.Errorf("row %d: UsedWidth %d exceeds available %d", i, r.UsedWidth, tt.available)
				}
			}
			if next != len(in) {
				t.Errorf("packed %d items, want %d", next, len(in))
			}
		})
	}
}

func manySizes(n int) [][2]int {
	out := make([][2]int, n)
	for i := range out {
		out[i] = [2]int{(i*37)%50 + 1, (i*13)%20 + 1}
	}
	return out
}

func TestPackExactFitBoundary(t *testing.T) {
	tests := []struct {
		available int
		want      [][]int
	}{
		{89, [][]int{{0}, {1}}},
		{90, [][]int{{0}, {1}}}, // the trailing gap counts toward the break
		{99, [][]int{{0}, {1}}},
		{100, [][]int{{0, 1}}},
		{101, [][]int{{0, 1}}},
	}
	for _, tt := range tests {
		rows := Pack(measuredOf([2]int{40, 20}, [2]int{40, 20}), tt.available, 10)
		if diff := cmp.Diff(tt.want, rowIndexes(rows)); diff != "" {
			t.Errorf("available %d: rows mismatch (-want +got):\n%s", tt.available, diff)
		}
	}
}

func TestPackNoTenItemCap(t *testing.T) {
	in := measuredOf(manySizes(25)...)
	rows := Pack(in, Unbounded, 10)
	if len(rows) != 1 || len(rows[0].Items) != 25 {
		t.Fatalf("want a single row of 25 items, got %v", rowIndexes(rows))
	}
}

func TestUnspecifiedWidthNeverWraps(t *testing.T) {
	items := boxes([2]int{400, 10}, [2]int{400, 10}, [2]int{400, 10})
	res := Compute(items, UnspecifiedConstraint(), UnspecifiedConstraint())
	if res.RowCount() != 1 {
		t.Errorf("RowCount() = %d, want 1", res.RowCount())
	}
	if res.Available != Unbounded {
		t.Errorf("Available = %d, want Unbounded", res.Available)
	}
	if res.Size.Width != 1220 {
		t.Errorf("Size.Width = %d, want 1220", res.Size.Width)
	}
}

func TestComputeIdempotent(t *testing.T) {
	items := boxes(manySizes(40)...)
	a := Compute(items, AtMostOf(120), UnspecifiedConstraint(), WithSpacing(4, 2))
	b := Compute(items, AtMostOf(120), UnspecifiedConstraint(), WithSpacing(4, 2))

	if diff := cmp.Diff(a, b, ignoreItems); diff != "" {
		t.Errorf("results differ (-first +second):\n%s", diff)
	}
	pa := Position(a.Rows, Edges{}, Spacing{4, 2})
	pb := Position(b.Rows, Edges{}, Spacing{4, 2})
	if diff := cmp.Diff(pa, pb, cmpopts.IgnoreFields(Placement{}, "Item")); diff != "" {
		t.Errorf("placements differ (-first +second):\n%s", diff)
	}
}

func TestCollapsedItemsSkipped(t *testing.T) {
	hidden := &box{w: 40, h: 99, hidden: true}
	items := []Measurable{&box{w: 40, h: 20}, hidden, &box{w: 40, h: 20}}

	res := Compute(items, AtMostOf(100), UnspecifiedConstraint(), WithSpacing(10, 10))
	if hidden.measured != 0 {
		t.Errorf("hidden item measured %d times", hidden.measured)
	}
	if diff := cmp.Diff([][]int{{0, 2}}, rowIndexes(res.Rows)); diff != "" {
		t.Errorf("rows mismatch (-want +got):\n%s", diff)
	}
	if res.Content.Height != 20 {
		t.Errorf("Content.Height = %d, want 20", res.Content.Height)
	}
}

func TestNilItemsSkipped(t *testing.T) {
	res := Compute([]Measurable{nil, &box{w: 5, h: 5}}, AtMostOf(100), UnspecifiedConstraint())
	if res.ItemCount() != 1 || res.Rows[0].Items[0].Index != 1 {
		t.Errorf("unexpected rows %v", rowIndexes(res.Rows))
	}
}

func TestNegativeMeasurementClamped(t *testing.T) {
	res := Compute(boxes([2]int{-5, -5}), UnspecifiedConstraint(), UnspecifiedConstraint())
	if got := res.Rows[0].Items[0].Size; got != (Size{}) {
		t.Errorf("Size = %+v, want zero", got)
	}
}

func TestMatchParentChild(t *testing.T) {
	wide := &box{w: 10, h: 10, dw: Match()}
	items := []Measurable{&box{w: 10, h: 10}, wide, &box{w: 10, h: 10}}

	res := Compute(items, ExactOf(120), UnspecifiedConstraint(), WithPadding(EdgeSymmetric(0, 10)))
	if diff := cmp.Diff([][]int{{0}, {1}, {2}}, rowIndexes(res.Rows)); diff != "" {
		t.Errorf("rows mismatch (-want +got):\n%s", diff)
	}
	if got := res.Rows[1].Items[0].Size.Width; got != 100 {
		t.Errorf("match-parent width = %d, want 100", got)
	}
	if res.Size.Width != 120 {
		t.Errorf("Size.Width = %d, want exact 120", res.Size.Width)
	}
}
