package cache

// LayoutKeyOpts are the inputs that change a computed layout besides the
// document itself.
type LayoutKeyOpts struct {
	WidthMode     string `json:"width_mode,omitempty"`
	Width         int    `json:"width,omitempty"`
	HeightMode    string `json:"height_mode,omitempty"`
	Height        int    `json:"height,omitempty"`
	HorizontalGap int    `json:"hgap"`
	VerticalGap   int    `json:"vgap"`
}

// ArtifactKeyOpts are the inputs that change a rendered artifact.
type ArtifactKeyOpts struct {
	Format string `json:"format"`
}

// Keyer derives cache keys.
type Keyer interface {
	// LayoutKey returns the key for a layout of the document with the given hash.
	LayoutKey(documentHash string, opts LayoutKeyOpts) string

	// ArtifactKey returns the key for an artifact rendered from the layout with the given hash.
	ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string
}

// DefaultKeyer hashes key options into fixed-length keys.
type DefaultKeyer struct{}

// NewDefaultKeyer creates a DefaultKeyer.
func NewDefaultKeyer() Keyer { return DefaultKeyer{} }

// LayoutKey implements Keyer.
func (DefaultKeyer) LayoutKey(documentHash string, opts LayoutKeyOpts) string {
	return hashKey("layout", documentHash, opts)
}

// ArtifactKey implements Keyer.
func (DefaultKeyer) ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", layoutHash, opts)
}
