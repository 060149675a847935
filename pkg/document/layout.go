package document

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/matzehuels/flowlayout/pkg/flow"
)

// Layout is the serialization format of a computed flow layout.
type Layout struct {
	// Final container size
	Width  int `json:"width" bson:"width" toml:"width"`
	Height int `json:"height" bson:"height" toml:"height"`

	// Size of the rows without padding
	ContentWidth  int `json:"content_width" bson:"content_width" toml:"content_width"`
	ContentHeight int `json:"content_height" bson:"content_height" toml:"content_height"`

	// Available is the content width rows were packed against; nil when the
	// width was unspecified.
	Available *int `json:"available,omitempty" bson:"available,omitempty" toml:"available,omitempty"`

	Rows   []Row    `json:"rows" bson:"rows" toml:"rows"`
	Items  []Placed `json:"items" bson:"items" toml:"items"`
	Hidden []string `json:"hidden,omitempty" bson:"hidden,omitempty" toml:"hidden,omitempty"`
}

// Row is one packed row.
type Row struct {
	Index     int      `json:"index" bson:"index" toml:"index"`
	Y         int      `json:"y" bson:"y" toml:"y"`
	UsedWidth int      `json:"used_width" bson:"used_width" toml:"used_width"`
	Height    int      `json:"height" bson:"height" toml:"height"`
	Items     []string `json:"items" bson:"items" toml:"items"`
}

// Placed is an item's final rectangle, relative to the container origin.
type Placed struct {
	ID     string `json:"id" bson:"id" toml:"id"`
	Label  string `json:"label,omitempty" bson:"label,omitempty" toml:"label,omitempty"`
	Row    int    `json:"row" bson:"row" toml:"row"`
	X      int    `json:"x" bson:"x" toml:"x"`
	Y      int    `json:"y" bson:"y" toml:"y"`
	Width  int    `json:"width" bson:"width" toml:"width"`
	Height int    `json:"height" bson:"height" toml:"height"`
}

// ItemCount returns the number of placed items.
func (l Layout) ItemCount() int { return len(l.Items) }

// RowCount returns the number of rows.
func (l Layout) RowCount() int { return len(l.Rows) }

// Compute lays the document out: a measuring pass under the document's
// constraints followed by a placement pass inside the measured size.
func Compute(d *Document) (Layout, error) {
	if err := d.Validate(); err != nil {
		return Layout{}, err
	}
	width, height, err := d.Constraints()
	if err != nil {
		return Layout{}, err
	}

	c, boxes := d.Container()
	size := c.Measure(width, height)
	c.Layout(0, 0, size.Width, size.Height)

	res, _ := c.Result()
	return FromPlacements(res, c.Placements(), boxes), nil
}

// FromPlacements converts a committed flow result and the placement pass
// that followed it into a Layout. Item rectangles are the ones each box
// received; a row's Y is the top of its first item. boxes must be the full
// item list the result was computed from.
func FromPlacements(res flow.Result, placed []flow.Placement, boxes []*Box) Layout {
	l := Layout{
		Width:         res.Size.Width,
		Height:        res.Size.Height,
		ContentWidth:  res.Content.Width,
		ContentHeight: res.Content.Height,
		Rows:          make([]Row, 0, len(res.Rows)),
		Items:         make([]Placed, 0, len(placed)),
	}
	if res.Available != flow.Unbounded {
		v := res.Available
		l.Available = &v
	}

	rowOf := make(map[int]int, res.ItemCount())
	for i, r := range res.Rows {
		row := Row{Index: i, UsedWidth: r.UsedWidth, Height: r.Height, Items: make([]string, len(r.Items))}
		for j, m := range r.Items {
			row.Items[j] = boxes[m.Index].Item.ID
			rowOf[m.Index] = i
		}
		l.Rows = append(l.Rows, row)
	}

	seen := make([]bool, len(l.Rows))
	for _, p := range placed {
		b := boxes[p.Index]
		rect, ok := b.Rect()
		if !ok {
			rect = p.Rect
		}
		ri := rowOf[p.Index]
		if !seen[ri] {
			l.Rows[ri].Y = rect.Y
			seen[ri] = true
		}
		l.Items = append(l.Items, Placed{
			ID:     b.Item.ID,
			Label:  b.Item.Label,
			Row:    ri,
			X:      rect.X,
			Y:      rect.Y,
			Width:  rect.Width,
			Height: rect.Height,
		})
	}

	for _, b := range boxes {
		if b.Item.Hidden {
			l.Hidden = append(l.Hidden, b.Item.ID)
		}
	}
	return l
}

// MarshalLayout serializes a Layout to pretty-printed JSON bytes.
func MarshalLayout(l Layout) ([]byte, error) {
	return json.MarshalIndent(l, "", "  ")
}

// UnmarshalLayout deserializes JSON bytes into a Layout.
func UnmarshalLayout(data []byte) (Layout, error) {
	var l Layout
	if err := json.Unmarshal(data, &l); err != nil {
		return Layout{}, fmt.Errorf("unmarshal layout: %w", err)
	}
	return l, nil
}

// WriteLayoutFile writes a Layout to a JSON file.
func WriteLayoutFile(l Layout, path string) error {
	data, err := MarshalLayout(l)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// ReadLayoutFile reads a Layout from a JSON file.
func ReadLayoutFile(path string) (Layout, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Layout{}, fmt.Errorf("read %s: %w", path, err)
	}
	return UnmarshalLayout(data)
}
