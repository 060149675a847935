package flow

import (
	"fmt"
	"sync"
)

// Phase is the stage a [Container] pass has reached.
type Phase uint8

const (
	Idle Phase = iota
	Measuring
	Packing
	Aggregating
	SizeCommitted
	Positioning
	Done
)

var phaseNames = [...]string{"idle", "measuring", "packing", "aggregating", "size_committed", "positioning", "done"}

func (p Phase) String() string {
	if int(p) < len(phaseNames) {
		return phaseNames[p]
	}
	return fmt.Sprintf("phase(%d)", p)
}

// Container lays out a fixed list of items. Its configuration is set at
// construction and cannot change afterwards. The only state kept between
// calls is the most recently committed measurement.
type Container struct {
	items []Measurable
	cfg   Config

	mu        sync.Mutex
	committed *Result
	placed    []Placement
	phase     Phase
	pass      uint64 // bumped by every Measure
}

// New creates a container for items. The slice is copied.
func New(items []Measurable, opts ...Option) *Container {
	return &Container{
		items: append([]Measurable(nil), items...),
		cfg:   newConfig(opts),
	}
}

// Config returns the container's fixed configuration.
func (c *Container) Config() Config { return c.cfg }

// Items returns the container's items in insertion order.
func (c *Container) Items() []Measurable {
	return append([]Measurable(nil), c.items...)
}

// Measure runs a measuring pass and commits the result. Hosts may call it
// several times before Layout; only the last call is used for placement.
func (c *Container) Measure(width, height Constraint) Size {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.pass++
	c.phase = Idle
	res := compute(c.items, width, height, c.cfg, func(p Phase) { c.phase = p })
	c.committed = &res
	c.placed = nil
	c.phase = SizeCommitted
	return res.Size
}

// Layout positions every packed item inside the container whose outer
// bounds are (left, top, right, bottom) in parent coordinates. Rectangles
// passed to [Placeable.Place] are relative to the container's origin, as
// are those returned by [Container.Placements]. Layout does nothing if
// Measure has not been called.
func (c *Container) Layout(left, top, right, bottom int) {
	c.mu.Lock()
	if c.committed == nil {
		c.mu.Unlock()
		return
	}
	c.phase = Positioning
	pass := c.pass
	placed := Position(c.committed.Rows, c.cfg.Padding, c.cfg.Spacing)
	c.placed = placed
	c.mu.Unlock()

	for _, p := range placed {
		if pl, ok := p.Item.(Placeable); ok {
			pl.Place(p.Rect)
		}
	}

	// A Measure that ran while items were being placed keeps its
	// SizeCommitted phase.
	c.mu.Lock()
	if c.pass == pass {
		c.phase = Done
	}
	c.mu.Unlock()
}

// Result returns the committed measurement, or false if Measure has not run.
func (c *Container) Result() (Result, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.committed == nil {
		return Result{}, false
	}
	return *c.committed, true
}

// Placements returns the rectangles assigned by the last Layout call.
func (c *Container) Placements() []Placement {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]Placement(nil), c.placed...)
}

// Phase returns the stage the latest pass reached.
func (c *Container) Phase() Phase {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.phase
}
