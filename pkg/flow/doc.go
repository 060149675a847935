// Package flow implements a flow layout engine: items are wrapped into rows
// that fit a container's available width, and each item receives a position.
//
// # Overview
//
// A layout pass runs through five stages:
//
//  1. Resolve: turn the container's [Constraint] on each axis into an
//     available content size (outer bound minus padding, clamped to zero)
//  2. Measure: ask every visible [Measurable] item for its desired size
//  3. Pack: group measured items into [Row]s, greedy first-fit by arrival
//  4. Aggregate: derive the content size and the final container size
//  5. Position: assign each item a [Rect], top-aligned within its row
//
// Stages 1-4 are exposed together as [Compute], a pure function of the item
// list, the constraints and the configuration. Stage 5 is [Position].
//
// # Containers
//
// Hosts that run separate measurement and placement passes use a
// [Container]:
//
//	c := flow.New(items, flow.WithSpacing(10, 10))
//	size := c.Measure(flow.AtMostOf(320), flow.UnspecifiedConstraint())
//	c.Layout(0, 0, size.Width, size.Height)
//
// Layout places items using only the most recently committed measurement.
// Collapsed items (Visible() == false) are never measured, packed or placed.
//
// # Packing
//
// An item wider than the available width is never split or dropped: it
// occupies a row of its own. Items are never reordered.
package flow
