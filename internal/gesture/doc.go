// Package gesture turns raw touch sequences into recognized gestures.
//
// Each node registers actuators (click, pan, long press, scrollable, raw
// touch listeners) and a declared list of Gesture descriptors on its
// GestureEventHub. At every touch test the hub collects the recognizers
// that apply to the touch point and composes them, together with the
// recognizers bubbling up from its children, into Exclusive and Parallel
// groups according to each declared gesture's priority and mask. The
// GestureReferee then feeds the touch sequence to the composed set and
// settles which recognizer wins.
package gesture
