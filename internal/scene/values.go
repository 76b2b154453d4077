package scene

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
	"gopkg.in/yaml.v3"

	"github.com/grindlemire/go-ace/internal/layout"
)

// Dim is a length written as a number of pixels, a percentage ("50%") or
// "auto".
type Dim struct {
	layout.Dimension
	set bool
}

// UnmarshalYAML parses a length.
func (d *Dim) UnmarshalYAML(n *yaml.Node) error {
	if n.Kind != yaml.ScalarNode {
		return fmt.Errorf("line %d: length must be a scalar", n.Line)
	}
	v, err := parseDim(n.Value)
	if err != nil {
		return fmt.Errorf("line %d: %w", n.Line, err)
	}
	d.Dimension, d.set = v, true
	return nil
}

func parseDim(s string) (layout.Dimension, error) {
	s = strings.TrimSpace(s)
	switch {
	case s == "" || s == "auto":
		return layout.Auto(), nil
	case strings.HasSuffix(s, "%"):
		f, err := strconv.ParseFloat(strings.TrimSuffix(s, "%"), 32)
		if err != nil {
			return layout.Dimension{}, fmt.Errorf("bad percentage %q", s)
		}
		return layout.Percent(float32(f)), nil
	default:
		f, err := strconv.ParseFloat(strings.TrimSuffix(s, "px"), 32)
		if err != nil {
			return layout.Dimension{}, fmt.Errorf("bad length %q", s)
		}
		if f < 0 {
			return layout.Dimension{}, fmt.Errorf("negative length %q", s)
		}
		return layout.Px(float32(f)), nil
	}
}

// Color is an opaque "#rrggbb" or "#rgb" color, or "transparent".
type Color struct {
	color.RGBA
}

// UnmarshalYAML parses a hex color.
func (c *Color) UnmarshalYAML(n *yaml.Node) error {
	if n.Value == "transparent" {
		c.RGBA = color.RGBA{}
		return nil
	}
	v, err := colorful.Hex(n.Value)
	if err != nil {
		return fmt.Errorf("line %d: bad color %q: %w", n.Line, n.Value, err)
	}
	r, g, b := v.RGB255()
	c.RGBA = color.RGBA{R: r, G: g, B: b, A: 255}
	return nil
}

// Edges is one value for every side, two values (vertical, horizontal) or
// four values (left, top, right, bottom).
type Edges struct {
	layout.Edges
}

// UnmarshalYAML parses an edge list.
func (e *Edges) UnmarshalYAML(n *yaml.Node) error {
	var vals []float32
	switch n.Kind {
	case yaml.ScalarNode:
		var v float32
		if err := n.Decode(&v); err != nil {
			return fmt.Errorf("line %d: bad edge: %w", n.Line, err)
		}
		vals = []float32{v}
	case yaml.SequenceNode:
		if err := n.Decode(&vals); err != nil {
			return fmt.Errorf("line %d: bad edges: %w", n.Line, err)
		}
	default:
		return fmt.Errorf("line %d: edges must be a number or a list", n.Line)
	}
	switch len(vals) {
	case 1:
		e.Edges = layout.EdgeAll(vals[0])
	case 2:
		e.Edges = layout.Edges{Left: vals[1], Top: vals[0], Right: vals[1], Bottom: vals[0]}
	case 4:
		e.Edges = layout.Edges{Left: vals[0], Top: vals[1], Right: vals[2], Bottom: vals[3]}
	default:
		return fmt.Errorf("line %d: edges take 1, 2 or 4 values, got %d", n.Line, len(vals))
	}
	return nil
}

var alignments = map[string]layout.Alignment{
	"top_start":     layout.AlignmentTopStart,
	"top_center":    layout.AlignmentTopCenter,
	"top_end":       layout.AlignmentTopEnd,
	"center_start":  layout.AlignmentCenterStart,
	"center":        layout.AlignmentCenter,
	"center_end":    layout.AlignmentCenterEnd,
	"bottom_start":  layout.AlignmentBottomStart,
	"bottom_center": {Horizontal: 0, Vertical: 1},
	"bottom_end":    layout.AlignmentBottomEnd,
}

var flexAligns = map[string]layout.FlexAlign{
	"start":         layout.FlexStart,
	"center":        layout.FlexCenter,
	"end":           layout.FlexEnd,
	"stretch":       layout.FlexStretch,
	"space_between": layout.FlexSpaceBetween,
	"space_around":  layout.FlexSpaceAround,
	"space_evenly":  layout.FlexSpaceEvenly,
}

var visibilities = map[string]layout.Visibility{
	"visible":   layout.Visible,
	"invisible": layout.Invisible,
	"gone":      layout.Gone,
}

var directions = map[string]layout.AlignDirection{
	"left":   layout.AlignLeft,
	"middle": layout.AlignMiddle,
	"right":  layout.AlignRight,
	"top":    layout.AlignTop,
	"center": layout.AlignCenter,
	"bottom": layout.AlignBottom,
}

var horizontalLines = map[string]layout.HorizontalAlign{
	"start":  layout.HorizontalStart,
	"center": layout.HorizontalCenter,
	"end":    layout.HorizontalEnd,
}

var verticalLines = map[string]layout.VerticalAlign{
	"top":    layout.VerticalTop,
	"center": layout.VerticalCenter,
	"bottom": layout.VerticalBottom,
}

func lookup[T any](table map[string]T, what, key string) (T, error) {
	v, ok := table[key]
	if !ok {
		var zero T
		return zero, fmt.Errorf("unknown %s %q", what, key)
	}
	return v, nil
}
