package ace

import (
	"strings"

	"github.com/chewxy/math32"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/grindlemire/go-ace/internal/layout"
)

// TextPattern is a leaf that sizes itself to its text. Lines break at
// newlines and, when the width is bounded, between words.
type TextPattern struct {
	BasePattern
	text  string
	face  font.Face
	lines []string
}

// NewTextPattern returns a text leaf using the 7x13 bitmap face.
func NewTextPattern(text string) *TextPattern {
	return &TextPattern{text: text, face: basicfont.Face7x13}
}

// Text returns the current text.
func (p *TextPattern) Text() string { return p.text }

// Lines returns the lines produced by the last measure.
func (p *TextPattern) Lines() []string { return p.lines }

// SetText replaces the text and schedules a measure and repaint.
func (p *TextPattern) SetText(text string) {
	if text == p.text {
		return
	}
	p.text = text
	if host, ok := p.Host(); ok {
		host.MarkDirtyNode(layout.FlagUpdateMeasure | layout.FlagUpdateRender)
	}
}

// SetFace replaces the font face.
func (p *TextPattern) SetFace(face font.Face) {
	p.face = face
	if host, ok := p.Host(); ok {
		host.MarkDirtyNode(layout.FlagUpdateMeasure | layout.FlagUpdateRender)
	}
}

// CreateLayoutAlgorithm measures the text as the node's content.
func (p *TextPattern) CreateLayoutAlgorithm() layout.Algorithm {
	return &layout.CustomAlgorithm{
		MeasureContentFunc: p.measureContent,
		MeasureFunc: func(w *layout.Wrapper) {
			layout.PerformMeasureSelf(w, nil)
		},
	}
}

func (p *TextPattern) measureContent(c layout.Constraint) (layout.SizeF, bool) {
	maxWidth := c.MaxSize.Width
	if c.SelfIdealSize.HasWidth {
		maxWidth = c.SelfIdealSize.Width
	}
	p.lines = wrapText(p.face, p.text, maxWidth)

	var width float32
	for _, line := range p.lines {
		width = math32.Max(width, advance(p.face, line))
	}
	height := lineHeight(p.face) * float32(len(p.lines))
	return layout.NewSize(math32.Ceil(width), math32.Ceil(height)), true
}

// CreatePaintMethod draws the background and one text run per line.
func (p *TextPattern) CreatePaintMethod() PaintMethod {
	lines := p.lines
	face := p.face
	return PaintFunc(func(c Canvas, w *PaintWrapper) {
		backgroundPaint(c, w)
		origin := w.Geometry.ContentOffset()
		ascent := toFloat(face.Metrics().Ascent)
		lh := lineHeight(face)
		for i, line := range lines {
			c.DrawText(line, layout.NewOffset(origin.X, origin.Y+ascent+lh*float32(i)), w.Property.Foreground)
		}
	})
}

func toFloat(v fixed.Int26_6) float32 {
	return float32(v) / 64
}

func advance(face font.Face, s string) float32 {
	return toFloat(font.MeasureString(face, s))
}

func lineHeight(face font.Face) float32 {
	return toFloat(face.Metrics().Height)
}

// wrapText splits text into lines no wider than maxWidth where word breaks
// allow. A single word wider than maxWidth keeps its own line.
func wrapText(face font.Face, text string, maxWidth float32) []string {
	if text == "" {
		return nil
	}
	var out []string
	for _, para := range strings.Split(text, "\n") {
		if layout.IsInfinite(maxWidth) || advance(face, para) <= maxWidth {
			out = append(out, para)
			continue
		}
		var line string
		for _, word := range strings.Fields(para) {
			candidate := word
			if line != "" {
				candidate = line + " " + word
			}
			if line != "" && advance(face, candidate) > maxWidth {
				out = append(out, line)
				line = word
				continue
			}
			line = candidate
		}
		out = append(out, line)
	}
	return out
}
