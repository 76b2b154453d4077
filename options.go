package ace

import (
	"fmt"
	"time"

	"github.com/grindlemire/go-ace/internal/layout"
)

// PipelineOption is a functional option for configuring a PipelineContext.
type PipelineOption func(*PipelineContext) error

// WithFrameRate sets the vsync rate of Run. Default is 60 fps. Valid range
// is 1-240 fps.
func WithFrameRate(fps int) PipelineOption {
	return func(p *PipelineContext) error {
		if fps < 1 {
			return fmt.Errorf("frame rate must be at least 1 fps")
		}
		if fps > 240 {
			return fmt.Errorf("frame rate cannot exceed 240 fps")
		}
		p.frameDuration = time.Second / time.Duration(fps)
		return nil
	}
}

// WithRootSize sets the initial root surface size.
func WithRootSize(width, height float32) PipelineOption {
	return func(p *PipelineContext) error {
		if width < 0 || height < 0 {
			return fmt.Errorf("root size %vx%v must not be negative", width, height)
		}
		p.rootSize = layout.NewSize(width, height)
		return nil
	}
}

// WithTouchSlop sets how far a finger may move before a tap is abandoned.
func WithTouchSlop(slop float32) PipelineOption {
	return func(p *PipelineContext) error {
		if slop <= 0 {
			return fmt.Errorf("touch slop must be positive")
		}
		p.touchSlop = slop
		return nil
	}
}

// WithLongPressDuration sets how long a press is held before it counts as
// a long press.
func WithLongPressDuration(d time.Duration) PipelineOption {
	return func(p *PipelineContext) error {
		if d <= 0 {
			return fmt.Errorf("long press duration must be positive")
		}
		p.longPressDuration = d
		return nil
	}
}

// WithSwipeDeleteRatio sets the share of a list item's width a swipe must
// travel before release deletes the item. Valid range is (0, 1].
func WithSwipeDeleteRatio(ratio float32) PipelineOption {
	return func(p *PipelineContext) error {
		if ratio <= 0 || ratio > 1 {
			return fmt.Errorf("swipe delete ratio %v out of range (0, 1]", ratio)
		}
		p.swipeDeleteRatio = ratio
		return nil
	}
}

// WithPhaseObserver calls fn on every pipeline state transition.
func WithPhaseObserver(fn func(PipelineState)) PipelineOption {
	return func(p *PipelineContext) error {
		p.phaseObserver = fn
		return nil
	}
}
