package ace

import (
	"image/color"
	"sync"

	"github.com/grindlemire/go-ace/internal/layout"
)

// Canvas is the drawing sink handed to paint methods.
type Canvas interface {
	Save()
	Restore()
	Translate(dx, dy float32)
	DrawRect(r Rect, c color.Color)
	DrawText(text string, origin Offset, c color.Color)
}

// DrawOp names one recorded canvas call.
type DrawOp uint8

const (
	OpSave DrawOp = iota
	OpRestore
	OpTranslate
	OpRect
	OpText
)

func (o DrawOp) String() string {
	switch o {
	case OpSave:
		return "save"
	case OpRestore:
		return "restore"
	case OpTranslate:
		return "translate"
	case OpRect:
		return "rect"
	case OpText:
		return "text"
	default:
		return "unknown"
	}
}

// DrawCommand is one recorded canvas call.
type DrawCommand struct {
	Op     DrawOp
	Rect   Rect
	Origin Offset
	Text   string
	Color  color.RGBA
}

// RecordingCanvas stores canvas calls for later replay or inspection.
type RecordingCanvas struct {
	cmds []DrawCommand
}

var _ Canvas = (*RecordingCanvas)(nil)

func (c *RecordingCanvas) Save()    { c.cmds = append(c.cmds, DrawCommand{Op: OpSave}) }
func (c *RecordingCanvas) Restore() { c.cmds = append(c.cmds, DrawCommand{Op: OpRestore}) }

func (c *RecordingCanvas) Translate(dx, dy float32) {
	c.cmds = append(c.cmds, DrawCommand{Op: OpTranslate, Origin: layout.NewOffset(dx, dy)})
}

func (c *RecordingCanvas) DrawRect(r Rect, col color.Color) {
	c.cmds = append(c.cmds, DrawCommand{Op: OpRect, Rect: r, Color: toRGBA(col)})
}

func (c *RecordingCanvas) DrawText(text string, origin Offset, col color.Color) {
	c.cmds = append(c.cmds, DrawCommand{Op: OpText, Origin: origin, Text: text, Color: toRGBA(col)})
}

// Commands returns the recorded calls.
func (c *RecordingCanvas) Commands() []DrawCommand { return c.cmds }

// Reset discards all recorded calls.
func (c *RecordingCanvas) Reset() { c.cmds = c.cmds[:0] }

func toRGBA(c color.Color) color.RGBA {
	if c == nil {
		return color.RGBA{}
	}
	return color.RGBAModel.Convert(c).(color.RGBA)
}

// PaintProperty holds a node's paint-only configuration. Changing it
// schedules a render pass without a layout pass.
type PaintProperty struct {
	Background  color.RGBA
	Foreground  color.RGBA
	BorderColor color.RGBA
}

// PaintWrapper is what a paint method sees of its node.
type PaintWrapper struct {
	Geometry       *layout.GeometryNode
	LayoutProperty *layout.Property
	Property       *PaintProperty
}

// ContentRect returns the content box relative to the node's frame.
func (w *PaintWrapper) ContentRect() Rect {
	size, _ := w.Geometry.ContentSize()
	return layout.NewRect(w.Geometry.ContentOffset(), size)
}

// PaintMethod draws one node. Patterns that draw nothing return a nil
// PaintMethod.
type PaintMethod interface {
	Paint(c Canvas, w *PaintWrapper)
}

// PaintFunc adapts a function to PaintMethod.
type PaintFunc func(c Canvas, w *PaintWrapper)

// Paint calls f.
func (f PaintFunc) Paint(c Canvas, w *PaintWrapper) { f(c, w) }

// backgroundPaint fills the frame with the background color and outlines
// the border when one is set.
var backgroundPaint = PaintFunc(func(c Canvas, w *PaintWrapper) {
	frame := layout.NewRect(Offset{}, w.Geometry.FrameSize())
	if w.Property.Background.A > 0 {
		c.DrawRect(frame, w.Property.Background)
	}
	if w.Property.BorderColor.A > 0 && w.LayoutProperty != nil {
		b := w.LayoutProperty.BorderWidth
		if b.Top > 0 {
			c.DrawRect(layout.NewRect(Offset{}, layout.NewSize(frame.Width, b.Top)), w.Property.BorderColor)
		}
		if b.Bottom > 0 {
			c.DrawRect(layout.NewRect(layout.NewOffset(0, frame.Height-b.Bottom), layout.NewSize(frame.Width, b.Bottom)), w.Property.BorderColor)
		}
		if b.Left > 0 {
			c.DrawRect(layout.NewRect(Offset{}, layout.NewSize(b.Left, frame.Height)), w.Property.BorderColor)
		}
		if b.Right > 0 {
			c.DrawRect(layout.NewRect(layout.NewOffset(frame.Width-b.Right, 0), layout.NewSize(b.Right, frame.Height)), w.Property.BorderColor)
		}
	}
})

// RenderContext is a node's retained drawing state: its frame in global
// coordinates, the last recorded display list and the paint order of its
// children. It is written on the UI thread and may be read from others.
type RenderContext struct {
	mu       sync.Mutex
	frame    Rect
	canvas   RecordingCanvas
	children []NodeID
	paints   int
}

// FrameRect returns the global frame synced after the last layout.
func (r *RenderContext) FrameRect() Rect {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.frame
}

// Commands returns a copy of the last recorded display list.
func (r *RenderContext) Commands() []DrawCommand {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]DrawCommand(nil), r.canvas.cmds...)
}

// Children returns the paint order pushed by the last render-tree flush.
func (r *RenderContext) Children() []NodeID {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]NodeID(nil), r.children...)
}

// PaintCount returns how many times the node has been painted.
func (r *RenderContext) PaintCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.paints
}

func (r *RenderContext) syncFrame(frame Rect) {
	r.mu.Lock()
	r.frame = frame
	r.mu.Unlock()
}

func (r *RenderContext) setChildren(ids []NodeID) {
	r.mu.Lock()
	r.children = ids
	r.mu.Unlock()
}

// record replaces the display list with what pm paints.
func (r *RenderContext) record(pm PaintMethod, w *PaintWrapper) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.canvas.Reset()
	if pm != nil {
		pm.Paint(&r.canvas, w)
	}
	r.paints++
}
