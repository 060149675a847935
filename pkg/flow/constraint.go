package flow

import (
	"fmt"
	"math"
)

// Mode is the sizing mode a container receives on one axis.
type Mode uint8

const (
	Unspecified Mode = iota // No bound on this axis
	Exact                   // The size is fixed to Value
	AtMost                  // Content may be smaller than Value, never larger
)

// Unbounded is the available size reported for an Unspecified axis.
const Unbounded = math.MaxInt

var modeNames = map[Mode]string{
	Unspecified: "unspecified",
	Exact:       "exact",
	AtMost:      "at_most",
}

// String returns the lower-case name used in documents and flags.
func (m Mode) String() string {
	if s, ok := modeNames[m]; ok {
		return s
	}
	return fmt.Sprintf("mode(%d)", m)
}

// ParseMode converts a name produced by [Mode.String] back into a Mode.
// The empty string parses as Unspecified.
func ParseMode(s string) (Mode, error) {
	if s == "" {
		return Unspecified, nil
	}
	for m, name := range modeNames {
		if name == s {
			return m, nil
		}
	}
	return Unspecified, fmt.Errorf("unknown constraint mode %q (must be one of: exact, at_most, unspecified)", s)
}

// Constraint is a sizing mode plus its bound. Value is ignored for Unspecified.
type Constraint struct {
	Mode  Mode
	Value int
}

// ExactOf returns an Exact constraint.
func ExactOf(v int) Constraint { return Constraint{Mode: Exact, Value: v} }

// AtMostOf returns an AtMost constraint.
func AtMostOf(v int) Constraint { return Constraint{Mode: AtMost, Value: v} }

// UnspecifiedConstraint returns a constraint with no bound.
func UnspecifiedConstraint() Constraint { return Constraint{Mode: Unspecified} }

// String formats the constraint as "mode(value)".
func (c Constraint) String() string {
	if c.Mode == Unspecified {
		return c.Mode.String()
	}
	return fmt.Sprintf("%s(%d)", c.Mode, c.Value)
}

// Resolve returns the content size available on one axis after removing
// padding. For Exact and AtMost the result is clamped to zero and bounded is
// true. For Unspecified, Resolve returns [Unbounded] and false.
func Resolve(c Constraint, padStart, padEnd int) (available int, bounded bool) {
	if c.Mode == Unspecified {
		return Unbounded, false
	}
	return max(c.Value-padStart-padEnd, 0), true
}

// DimensionKind selects how an item asks to be sized on one axis.
type DimensionKind uint8

const (
	WrapContent DimensionKind = iota // As large as the content, bounded by the parent
	MatchParent                      // As large as the parent's available space
	FixedSize                        // A fixed number of layout units
)

// Dimension is an item's requested size on one axis.
type Dimension struct {
	Kind  DimensionKind
	Value int
}

// Wrap returns a WrapContent dimension.
func Wrap() Dimension { return Dimension{Kind: WrapContent} }

// Match returns a MatchParent dimension.
func Match() Dimension { return Dimension{Kind: MatchParent} }

// Fixed returns a FixedSize dimension of n units.
func Fixed(n int) Dimension { return Dimension{Kind: FixedSize, Value: n} }

// ChildConstraint derives the constraint passed to an item from the
// container's constraint, the container's padding on that axis and the
// item's requested dimension.
func ChildConstraint(parent Constraint, padding int, dim Dimension) Constraint {
	if dim.Kind == FixedSize {
		return ExactOf(max(dim.Value, 0))
	}
	if parent.Mode == Unspecified {
		return UnspecifiedConstraint()
	}
	avail := max(parent.Value-padding, 0)
	if dim.Kind == MatchParent {
		return Constraint{Mode: parent.Mode, Value: avail}
	}
	return AtMostOf(avail)
}
