// layout.go re-exports layout and gesture types from the internal packages.
// Any changes to internal/layout or internal/gesture types must be mirrored here.
package ace

import (
	"github.com/grindlemire/go-ace/internal/gesture"
	"github.com/grindlemire/go-ace/internal/layout"
)

// Size is a width and height in virtual pixels.
type Size = layout.SizeF

// Offset is a position in virtual pixels.
type Offset = layout.OffsetF

// Rect is an offset plus a size.
type Rect = layout.RectF

// Edges holds per-side insets.
type Edges = layout.Edges

// Constraint is the measuring contract a parent hands to a child.
type Constraint = layout.Constraint

// LayoutProperty is a node's declared layout configuration.
type LayoutProperty = layout.Property

// GeometryNode is a node's measured and positioned geometry.
type GeometryNode = layout.GeometryNode

// Dimension is a length that is fixed, a percentage or automatic.
type Dimension = layout.Dimension

// Px, Percent and Auto build Dimensions.
var (
	Px      = layout.Px
	Percent = layout.Percent
	Auto    = layout.Auto
)

// Axis selects the main direction of linear and scroll layouts.
type Axis = layout.Axis

const (
	AxisVertical   = layout.AxisVertical
	AxisHorizontal = layout.AxisHorizontal
)

// Alignment places a child inside a box container.
type Alignment = layout.Alignment

var (
	AlignmentTopStart    = layout.AlignmentTopStart
	AlignmentTopCenter   = layout.AlignmentTopCenter
	AlignmentTopEnd      = layout.AlignmentTopEnd
	AlignmentCenterStart = layout.AlignmentCenterStart
	AlignmentCenter      = layout.AlignmentCenter
	AlignmentCenterEnd   = layout.AlignmentCenterEnd
	AlignmentBottomStart = layout.AlignmentBottomStart
	AlignmentBottomEnd   = layout.AlignmentBottomEnd
)

// FlexAlign distributes or aligns children of a linear layout.
type FlexAlign = layout.FlexAlign

const (
	FlexStart        = layout.FlexStart
	FlexCenter       = layout.FlexCenter
	FlexEnd          = layout.FlexEnd
	FlexStretch      = layout.FlexStretch
	FlexSpaceBetween = layout.FlexSpaceBetween
	FlexSpaceAround  = layout.FlexSpaceAround
	FlexSpaceEvenly  = layout.FlexSpaceEvenly
)

// Visibility controls whether a node is measured and painted.
type Visibility = layout.Visibility

const (
	Visible   = layout.Visible
	Invisible = layout.Invisible
	Gone      = layout.Gone
)

// AlignDirection names the item line a relative rule positions.
type AlignDirection = layout.AlignDirection

const (
	AlignLeft   = layout.AlignLeft
	AlignMiddle = layout.AlignMiddle
	AlignRight  = layout.AlignRight
	AlignTop    = layout.AlignTop
	AlignCenter = layout.AlignCenter
	AlignBottom = layout.AlignBottom
)

// AlignRule anchors an item line to a line of its anchor.
type AlignRule = layout.AlignRule

const (
	HorizontalStart  = layout.HorizontalStart
	HorizontalCenter = layout.HorizontalCenter
	HorizontalEnd    = layout.HorizontalEnd
	VerticalTop      = layout.VerticalTop
	VerticalCenter   = layout.VerticalCenter
	VerticalBottom   = layout.VerticalBottom
)

// ContainerAnchor anchors a relative rule to the container.
const ContainerAnchor = layout.ContainerAnchor

// ErrLayoutCycle is reported by relative containers whose rules form a cycle.
var ErrLayoutCycle = layout.ErrLayoutCycle

// PropertyChangeFlag records which pipeline stages a change affects.
type PropertyChangeFlag = layout.PropertyChangeFlag

const (
	FlagUpdateMeasure  = layout.FlagUpdateMeasure
	FlagUpdateLayout   = layout.FlagUpdateLayout
	FlagUpdateRender   = layout.FlagUpdateRender
	FlagUpdateChildren = layout.FlagUpdateChildren
)

// TouchEvent is one raw pointer sample.
type TouchEvent = gesture.TouchEvent

// TouchType is the phase of a touch sample.
type TouchType = gesture.TouchType

const (
	TouchDown   = gesture.TouchDown
	TouchMove   = gesture.TouchMove
	TouchUp     = gesture.TouchUp
	TouchCancel = gesture.TouchCancel
)

// GestureEvent is what gesture callbacks receive.
type GestureEvent = gesture.GestureEvent

// Gesture declarations attachable to a node.
type (
	Gesture          = gesture.Gesture
	GestureInfo      = gesture.GestureInfo
	TapGesture       = gesture.TapGesture
	PanGesture       = gesture.PanGesture
	LongPressGesture = gesture.LongPressGesture
	GestureGroup     = gesture.GestureGroup
	PanEvent         = gesture.PanEvent
	PanDirection     = gesture.PanDirection
	GestureEventHub  = gesture.GestureEventHub
)

const (
	PriorityExclusive  = gesture.PriorityExclusive
	PriorityLow        = gesture.PriorityLow
	PriorityHigh       = gesture.PriorityHigh
	PriorityParallel   = gesture.PriorityParallel
	MaskNormal         = gesture.MaskNormal
	MaskIgnoreInternal = gesture.MaskIgnoreInternal
	GroupExclusive     = gesture.GroupExclusive
	GroupParallel      = gesture.GroupParallel
)

const (
	PanLeft       = gesture.PanLeft
	PanRight      = gesture.PanRight
	PanUp         = gesture.PanUp
	PanDown       = gesture.PanDown
	PanHorizontal = gesture.PanHorizontal
	PanVertical   = gesture.PanVertical
	PanAll        = gesture.PanAll
)

// HitTestMode controls how a node takes part in touch testing.
type HitTestMode = gesture.HitTestMode

const (
	HitTestDefault     = gesture.HitTestDefault
	HitTestBlock       = gesture.HitTestBlock
	HitTestTransparent = gesture.HitTestTransparent
	HitTestNone        = gesture.HitTestNone
)
