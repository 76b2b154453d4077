package scene

import (
	"bytes"
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	ace "github.com/grindlemire/go-ace"
	"github.com/grindlemire/go-ace/internal/layout"
)

// Kinds a node may declare.
const (
	KindBox      = "box"
	KindRow      = "row"
	KindColumn   = "column"
	KindGrid     = "grid"
	KindScroll   = "scroll"
	KindRelative = "relative"
	KindText     = "text"
	KindListItem = "list_item"
)

// Rule anchors one line of a node inside a relative container.
type Rule struct {
	Anchor string `yaml:"anchor"`
	Align  string `yaml:"align"`
}

// Node is one element of a scene.
type Node struct {
	Kind       string  `yaml:"kind"`
	ID         string  `yaml:"id"`
	Width      Dim     `yaml:"width"`
	Height     Dim     `yaml:"height"`
	MinWidth   Dim     `yaml:"min_width"`
	MinHeight  Dim     `yaml:"min_height"`
	MaxWidth   Dim     `yaml:"max_width"`
	MaxHeight  Dim     `yaml:"max_height"`
	Padding    Edges   `yaml:"padding"`
	Margin     Edges   `yaml:"margin"`
	Border     Edges   `yaml:"border"`
	Align      string  `yaml:"align"`
	Weight     float32 `yaml:"weight"`
	Visibility string  `yaml:"visibility"`

	Background  Color `yaml:"background"`
	Foreground  Color `yaml:"foreground"`
	BorderColor Color `yaml:"border_color"`

	// Linear and grid settings.
	Space      float32 `yaml:"space"`
	MainAlign  string  `yaml:"main_align"`
	CrossAlign string  `yaml:"cross_align"`
	Columns    int     `yaml:"columns"`
	ColumnGap  float32 `yaml:"column_gap"`
	RowGap     float32 `yaml:"row_gap"`

	// Axis of a scroll node: vertical (default) or horizontal.
	Axis string `yaml:"axis"`

	Text  string          `yaml:"text"`
	Rules map[string]Rule `yaml:"rules"`

	Children []Node `yaml:"children"`
}

// Scene is a parsed scene file.
type Scene struct {
	Root Node `yaml:"root"`
}

var _ ace.Frontend = (*Scene)(nil)

// Parse decodes a scene. Unknown keys are an error.
func Parse(data []byte) (*Scene, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	var s Scene
	if err := dec.Decode(&s); err != nil {
		return nil, fmt.Errorf("decode scene: %w", err)
	}
	if s.Root.Kind == "" {
		return nil, errors.New("scene has no root node")
	}
	return &s, nil
}

// Load reads and parses a scene file.
func Load(path string) (*Scene, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read scene: %w", err)
	}
	s, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}

// LoadPage builds the scene's nodes in ctx's tree and returns the root.
// Nodes built before an error are released.
func (s *Scene) LoadPage(ctx *ace.PipelineContext) (ace.NodeID, error) {
	b := &builder{tree: ctx.Tree()}
	id, err := b.build(&s.Root, "root")
	if err != nil {
		b.release()
		return ace.InvalidNodeID, err
	}
	return id, nil
}

type builder struct {
	tree  *ace.Tree
	built []*ace.FrameNode
}

func (b *builder) release() {
	for _, n := range b.built {
		b.tree.Release(n.ID())
	}
}

func (b *builder) build(n *Node, path string) (ace.NodeID, error) {
	pattern, err := n.pattern()
	if err != nil {
		return ace.InvalidNodeID, fmt.Errorf("%s: %w", path, err)
	}
	fn := b.tree.CreateFrameNode(n.Kind, ace.InvalidNodeID, pattern)
	b.built = append(b.built, fn)
	if li, ok := pattern.(*ace.ListItemPattern); ok {
		tree, id := b.tree, fn.ID()
		li.OnDelete = func() {
			if parent, ok := tree.Parent(id); ok {
				tree.RemoveChild(parent.ID(), id)
			}
		}
	}
	if err := n.apply(fn.LayoutProperty()); err != nil {
		return ace.InvalidNodeID, fmt.Errorf("%s: %w", path, err)
	}
	*fn.PaintProperty() = ace.PaintProperty{
		Background:  n.Background.RGBA,
		Foreground:  n.Foreground.RGBA,
		BorderColor: n.BorderColor.RGBA,
	}

	if n.Kind == KindText && len(n.Children) > 0 {
		return ace.InvalidNodeID, fmt.Errorf("%s: text nodes have no children", path)
	}
	for i := range n.Children {
		child := &n.Children[i]
		cid, err := b.build(child, fmt.Sprintf("%s.children[%d]", path, i))
		if err != nil {
			return ace.InvalidNodeID, err
		}
		b.tree.AddChild(fn.ID(), cid, -1)
	}
	return fn.ID(), nil
}

func (n *Node) pattern() (ace.Pattern, error) {
	switch n.Kind {
	case KindBox:
		return &ace.BoxPattern{}, nil
	case KindRow, KindColumn:
		p := ace.NewColumn(n.Space)
		if n.Kind == KindRow {
			p = ace.NewRow(n.Space)
		}
		if n.MainAlign != "" {
			v, err := lookup(flexAligns, "main_align", n.MainAlign)
			if err != nil {
				return nil, err
			}
			p.MainAlign = v
		}
		if n.CrossAlign != "" {
			v, err := lookup(flexAligns, "cross_align", n.CrossAlign)
			if err != nil {
				return nil, err
			}
			p.CrossAlign = v
		}
		return p, nil
	case KindGrid:
		if n.Columns < 1 {
			return nil, fmt.Errorf("grid needs at least one column")
		}
		return &ace.GridPattern{Columns: n.Columns, ColumnGap: n.ColumnGap, RowGap: n.RowGap}, nil
	case KindScroll:
		switch n.Axis {
		case "", "vertical":
			return ace.NewScrollPattern(layout.AxisVertical), nil
		case "horizontal":
			return ace.NewScrollPattern(layout.AxisHorizontal), nil
		}
		return nil, fmt.Errorf("unknown axis %q", n.Axis)
	case KindRelative:
		return &ace.RelativeContainerPattern{}, nil
	case KindText:
		return ace.NewTextPattern(n.Text), nil
	case KindListItem:
		return &ace.ListItemPattern{}, nil
	case "":
		return nil, errors.New("node has no kind")
	}
	return nil, fmt.Errorf("unknown kind %q", n.Kind)
}

func (n *Node) apply(lp *layout.Property) error {
	lp.ID = n.ID
	lp.Measure.SelfIdealSize = layout.CalcSize{Width: n.Width.Dimension, Height: n.Height.Dimension}
	if n.MinWidth.set || n.MinHeight.set {
		lp.Measure.MinSize = layout.CalcSize{Width: n.MinWidth.Dimension, Height: n.MinHeight.Dimension}
	}
	if n.MaxWidth.set || n.MaxHeight.set {
		lp.Measure.MaxSize = layout.CalcSize{Width: n.MaxWidth.Dimension, Height: n.MaxHeight.Dimension}
	}
	lp.Padding = n.Padding.Edges
	lp.Margin = n.Margin.Edges
	lp.BorderWidth = n.Border.Edges
	lp.LayoutWeight = n.Weight

	if n.Align != "" {
		v, err := lookup(alignments, "align", n.Align)
		if err != nil {
			return err
		}
		lp.Alignment = v
	}
	if n.Visibility != "" {
		v, err := lookup(visibilities, "visibility", n.Visibility)
		if err != nil {
			return err
		}
		lp.Visibility = v
	}

	if len(n.Rules) > 0 {
		lp.AlignRules = make(map[layout.AlignDirection]layout.AlignRule, len(n.Rules))
	}
	for name, r := range n.Rules {
		dir, err := lookup(directions, "rule", name)
		if err != nil {
			return err
		}
		rule := layout.AlignRule{Anchor: r.Anchor}
		if dir.IsHorizontal() {
			rule.Horizontal, err = lookup(horizontalLines, "horizontal line", r.Align)
		} else {
			rule.Vertical, err = lookup(verticalLines, "vertical line", r.Align)
		}
		if err != nil {
			return fmt.Errorf("rule %s: %w", name, err)
		}
		lp.AlignRules[dir] = rule
	}
	return nil
}
