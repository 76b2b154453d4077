package layout

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

// node builds a wrapper with fresh geometry for tests.
func node(id int64, a Algorithm, configure func(p *Property)) *Wrapper {
	p := NewProperty()
	if configure != nil {
		configure(p)
	}
	w := NewWrapper(id, "test", NewGeometryNode(), p)
	w.SetAlgorithm(a, false)
	return w
}

// leaf builds a childless box wrapper with a fixed size.
func leaf(id int64, width, height float32) *Wrapper {
	return node(id, BoxAlgorithm{}, func(p *Property) { p.SetSelfIdealSize(width, height) })
}

func rect(x, y, w, h float32) RectF {
	return RectF{X: x, Y: y, Width: w, Height: h}
}

func assertFrame(t *testing.T, w *Wrapper, want RectF) {
	t.Helper()
	if diff := cmp.Diff(want, w.Geometry().FrameRect()); diff != "" {
		t.Errorf("frame of %d mismatch (-want +got):\n%s", w.HostID(), diff)
	}
}
