package flow

// Default gaps in layout units.
const (
	DefaultHorizontalGap = 10
	DefaultVerticalGap   = 8
)

// Spacing is the gap inserted between items in a row (Horizontal) and
// between rows (Vertical).
type Spacing struct {
	Horizontal int
	Vertical   int
}

// DefaultSpacing returns the default gaps.
func DefaultSpacing() Spacing {
	return Spacing{Horizontal: DefaultHorizontalGap, Vertical: DefaultVerticalGap}
}

// Config is the fixed configuration of a layout: spacing and container padding.
type Config struct {
	Spacing Spacing
	Padding Edges
}

// Option configures a [Container] or a [Compute] call.
type Option func(*Config)

// WithSpacing sets the horizontal and vertical gaps. Negative gaps are
// treated as zero.
func WithSpacing(horizontal, vertical int) Option {
	return func(c *Config) {
		c.Spacing = Spacing{Horizontal: max(horizontal, 0), Vertical: max(vertical, 0)}
	}
}

// WithPadding sets the container padding.
func WithPadding(p Edges) Option {
	return func(c *Config) { c.Padding = p }
}

func newConfig(opts []Option) Config {
	cfg := Config{Spacing: DefaultSpacing()}
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}
