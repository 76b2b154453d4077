package layout

// Alignment places a child inside its parent's content box. Each component
// ranges from -1 (start) through 0 (center) to 1 (end).
type Alignment struct {
	Horizontal, Vertical float32
}

var (
	AlignmentTopStart    = Alignment{Horizontal: -1, Vertical: -1}
	AlignmentTopCenter   = Alignment{Horizontal: 0, Vertical: -1}
	AlignmentTopEnd      = Alignment{Horizontal: 1, Vertical: -1}
	AlignmentCenterStart = Alignment{Horizontal: -1, Vertical: 0}
	AlignmentCenter      = Alignment{Horizontal: 0, Vertical: 0}
	AlignmentCenterEnd   = Alignment{Horizontal: 1, Vertical: 0}
	AlignmentBottomStart = Alignment{Horizontal: -1, Vertical: 1}
	AlignmentBottomEnd   = Alignment{Horizontal: 1, Vertical: 1}
)

// Offset returns the child's position inside parent.
func (a Alignment) Offset(parent, child SizeF) OffsetF {
	return OffsetF{
		X: (parent.Width - child.Width) / 2 * (1 + a.Horizontal),
		Y: (parent.Height - child.Height) / 2 * (1 + a.Vertical),
	}
}

// FlexAlign distributes or aligns children of a linear layout.
type FlexAlign uint8

const (
	FlexStart FlexAlign = iota
	FlexCenter
	FlexEnd
	FlexStretch
	FlexSpaceBetween
	FlexSpaceAround
	FlexSpaceEvenly
)

// AlignDirection names which edge or center line of an item an anchor rule
// positions. The first three are horizontal, the last three vertical.
type AlignDirection uint8

const (
	AlignLeft AlignDirection = iota
	AlignMiddle
	AlignRight
	AlignTop
	AlignCenter
	AlignBottom
)

// IsHorizontal reports whether the direction constrains the x axis.
func (d AlignDirection) IsHorizontal() bool {
	return d <= AlignRight
}

func (d AlignDirection) String() string {
	switch d {
	case AlignLeft:
		return "left"
	case AlignMiddle:
		return "middle"
	case AlignRight:
		return "right"
	case AlignTop:
		return "top"
	case AlignCenter:
		return "center"
	case AlignBottom:
		return "bottom"
	default:
		return "unknown"
	}
}

// HorizontalAlign names the reference line on the anchor for x rules.
type HorizontalAlign uint8

const (
	HorizontalStart HorizontalAlign = iota
	HorizontalCenter
	HorizontalEnd
)

// VerticalAlign names the reference line on the anchor for y rules.
type VerticalAlign uint8

const (
	VerticalTop VerticalAlign = iota
	VerticalCenter
	VerticalBottom
)

// ContainerAnchor anchors a rule to the relative container itself.
const ContainerAnchor = "__container__"

// IsContainerAnchor reports whether anchor refers to the container.
// "container" is accepted as a short alias.
func IsContainerAnchor(anchor string) bool {
	return anchor == ContainerAnchor || anchor == "container"
}

// AlignRule anchors one reference line of an item to a line of its anchor.
type AlignRule struct {
	Anchor     string
	Horizontal HorizontalAlign
	Vertical   VerticalAlign
}
