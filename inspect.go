package ace

import (
	"fmt"
	"io"
	"strings"
)

// NodeDump is a snapshot of one node and its subtree after layout.
type NodeDump struct {
	ID       NodeID     `yaml:"id" json:"id"`
	Tag      string     `yaml:"tag" json:"tag"`
	Key      string     `yaml:"key,omitempty" json:"key,omitempty"`
	Custom   bool       `yaml:"custom,omitempty" json:"custom,omitempty"`
	X        float32    `yaml:"x" json:"x"`
	Y        float32    `yaml:"y" json:"y"`
	Width    float32    `yaml:"width" json:"width"`
	Height   float32    `yaml:"height" json:"height"`
	Children []NodeDump `yaml:"children,omitempty" json:"children,omitempty"`
}

// DumpTree snapshots the subtree at id with global frame rects. Custom
// nodes appear with a zero rect since they are not laid out.
func (t *Tree) DumpTree(id NodeID) (NodeDump, bool) {
	n, ok := t.Node(id)
	if !ok {
		return NodeDump{}, false
	}
	d := NodeDump{ID: n.ID(), Tag: n.Tag()}
	switch v := n.(type) {
	case *FrameNode:
		r := v.GlobalRect()
		d.X, d.Y, d.Width, d.Height = r.X, r.Y, r.Width, r.Height
		d.Key = v.layoutProperty.ID
	case *CustomNode:
		d.Custom = true
	}
	for _, c := range n.base().ChildIDs() {
		if cd, ok := t.DumpTree(c); ok {
			d.Children = append(d.Children, cd)
		}
	}
	return d, true
}

// Find returns the first node in the dump, depth first, whose key is key.
func (d NodeDump) Find(key string) (NodeDump, bool) {
	if d.Key == key {
		return d, true
	}
	for _, c := range d.Children {
		if f, ok := c.Find(key); ok {
			return f, true
		}
	}
	return NodeDump{}, false
}

// WriteText writes the dump as an indented outline, one node per line.
func (d NodeDump) WriteText(w io.Writer) error {
	return d.writeText(w, 0)
}

func (d NodeDump) writeText(w io.Writer, depth int) error {
	label := d.Tag
	if d.Key != "" {
		label += "#" + d.Key
	}
	var err error
	if d.Custom {
		_, err = fmt.Fprintf(w, "%s%s [%d]\n", strings.Repeat("  ", depth), label, d.ID)
	} else {
		_, err = fmt.Fprintf(w, "%s%s [%d] (%g,%g %gx%g)\n",
			strings.Repeat("  ", depth), label, d.ID, d.X, d.Y, d.Width, d.Height)
	}
	if err != nil {
		return err
	}
	for _, c := range d.Children {
		if err := c.writeText(w, depth+1); err != nil {
			return err
		}
	}
	return nil
}
