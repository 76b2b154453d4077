package ace

import (
	"github.com/grindlemire/go-ace/internal/gesture"
	"github.com/grindlemire/go-ace/internal/layout"
)

// HitTestResult says how a touch test ended for one node.
type HitTestResult uint8

const (
	// HitOutOfRegion: the point missed the node.
	HitOutOfRegion HitTestResult = iota
	// HitBubbling: the node was hit and nodes behind it are still tested.
	HitBubbling
	// HitStopBubbling: the node was hit and nodes behind it are skipped.
	HitStopBubbling
)

// TouchTest collects the targets under the global point (x, y). Children
// are tested front to back, which is the reverse of paint order, and the
// node's gesture hub composes their recognizers with its own.
func (n *FrameNode) TouchTest(x, y float32, result *gesture.TouchTestResult) HitTestResult {
	if n.layoutProperty.Visibility != layout.Visible {
		return HitOutOfRegion
	}
	if !n.GlobalRect().Contains(x, y) {
		return HitOutOfRegion
	}

	mode := gesture.HitTestDefault
	if n.gestureHub != nil {
		mode = n.gestureHub.HitTestMode()
	}

	var inner gesture.TouchTestResult
	childStopped := false
	childHit := false
	if mode != gesture.HitTestBlock {
		children := n.tree.frameChildren(n.id)
		for i := len(children) - 1; i >= 0; i-- {
			switch children[i].TouchTest(x, y, &inner) {
			case HitStopBubbling:
				childStopped, childHit = true, true
			case HitBubbling:
				childHit = true
			}
			if childStopped {
				break
			}
		}
	}

	if mode == gesture.HitTestNone || n.gestureHub == nil {
		*result = append(*result, inner...)
		switch {
		case mode == gesture.HitTestNone && childStopped:
			return HitStopBubbling
		case mode == gesture.HitTestNone && childHit:
			return HitBubbling
		case mode == gesture.HitTestNone:
			return HitOutOfRegion
		case childStopped:
			return HitStopBubbling
		}
		return HitBubbling
	}

	n.gestureHub.UpdateGestureHierarchy()
	n.gestureHub.ProcessTouchTestHit(n.geometry.GlobalOffset(), inner, result)

	switch mode {
	case gesture.HitTestTransparent:
		return HitBubbling
	case gesture.HitTestBlock:
		return HitStopBubbling
	}
	if childStopped || n.gestureHub.IsResponsive() {
		return HitStopBubbling
	}
	return HitBubbling
}
