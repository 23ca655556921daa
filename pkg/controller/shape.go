package controller

import (
	"github.com/hamzahamidi/Xidi/pkg/xinput"
)

// Shape is an immutable description of one controller layout: how many
// virtual elements of each kind exist, the semantic type of each axis, and
// which XInput element feeds each virtual element. A mapper is bound to one
// shape at construction and never switches.
type Shape struct {
	name       string
	axes       []AxisType
	numButtons int
	numPovs    int
	feed       map[xinput.ControllerElement]Element
}

// Name returns the configuration name of the shape.
func (s *Shape) Name() string { return s.name }

// NumInstances returns how many elements of the given kind the shape
// defines.
func (s *Shape) NumInstances(kind ElementKind) int {
	switch kind {
	case KindAxis:
		return len(s.axes)
	case KindButton:
		return s.numButtons
	case KindPov:
		return s.numPovs
	}
	return 0
}

// AxisType returns the semantic type of the axis at the given instance
// index. The index must be in bounds.
func (s *Shape) AxisType(index int) AxisType { return s.axes[index] }

// AxisInstanceIndex returns the instance index of the n-th axis (zero
// based) with the given semantic type, or -1 when no such axis exists.
func (s *Shape) AxisInstanceIndex(t AxisType, n int) int {
	for i, at := range s.axes {
		if at != t {
			continue
		}
		if n == 0 {
			return i
		}
		n--
	}
	return -1
}

// InstanceForXInput returns the virtual element fed by the given XInput
// controller element, if the shape maps it at all.
func (s *Shape) InstanceForXInput(e xinput.ControllerElement) (Element, bool) {
	elem, ok := s.feed[e]
	return elem, ok
}

// SharedTriggerAxisDirection returns the direction multiplier a trigger
// contributes to a shared trigger axis: positive for LT, negative for RT.
// The sign convention is fixed for every shape; a zero return would be a
// defect in the shape table.
func (s *Shape) SharedTriggerAxisDirection(trigger xinput.ControllerElement) int32 {
	if trigger == xinput.TriggerLT {
		return 1
	}
	return -1
}

func axis(i int) Element   { return Element{Kind: KindAxis, Index: i} }
func button(i int) Element { return Element{Kind: KindButton, Index: i} }
func pov(i int) Element    { return Element{Kind: KindPov, Index: i} }

// StandardGamepad models a classic DirectInput gamepad: the right stick on
// the Z and RotZ axes and both triggers as digital buttons.
var StandardGamepad = &Shape{
	name:       "StandardGamepad",
	axes:       []AxisType{AxisX, AxisY, AxisZ, AxisRZ},
	numButtons: 12,
	numPovs:    1,
	feed: map[xinput.ControllerElement]Element{
		xinput.StickLeftX:       axis(0),
		xinput.StickLeftY:       axis(1),
		xinput.StickRightX:      axis(2),
		xinput.StickRightY:      axis(3),
		xinput.TriggerLT:        button(6),
		xinput.TriggerRT:        button(7),
		xinput.Dpad:             pov(0),
		xinput.ButtonA:          button(0),
		xinput.ButtonB:          button(1),
		xinput.ButtonX:          button(2),
		xinput.ButtonY:          button(3),
		xinput.ButtonLB:         button(4),
		xinput.ButtonRB:         button(5),
		xinput.ButtonBack:       button(8),
		xinput.ButtonStart:      button(9),
		xinput.ButtonLeftStick:  button(10),
		xinput.ButtonRightStick: button(11),
	},
}

// ExtendedGamepad keeps the classic right-stick placement of
// StandardGamepad but exposes the triggers as their own RotX and RotY axes.
var ExtendedGamepad = &Shape{
	name:       "ExtendedGamepad",
	axes:       []AxisType{AxisX, AxisY, AxisZ, AxisRX, AxisRY, AxisRZ},
	numButtons: 10,
	numPovs:    1,
	feed: map[xinput.ControllerElement]Element{
		xinput.StickLeftX:       axis(0),
		xinput.StickLeftY:       axis(1),
		xinput.StickRightX:      axis(2),
		xinput.StickRightY:      axis(5),
		xinput.TriggerLT:        axis(3),
		xinput.TriggerRT:        axis(4),
		xinput.Dpad:             pov(0),
		xinput.ButtonA:          button(0),
		xinput.ButtonB:          button(1),
		xinput.ButtonX:          button(2),
		xinput.ButtonY:          button(3),
		xinput.ButtonLB:         button(4),
		xinput.ButtonRB:         button(5),
		xinput.ButtonBack:       button(6),
		xinput.ButtonStart:      button(7),
		xinput.ButtonLeftStick:  button(8),
		xinput.ButtonRightStick: button(9),
	},
}

// XInputNative mirrors the layout XInput itself presents: the left trigger
// on Z, the right trigger on RotZ, and the right stick on RotX/RotY.
var XInputNative = &Shape{
	name:       "XInputNative",
	axes:       []AxisType{AxisX, AxisY, AxisZ, AxisRX, AxisRY, AxisRZ},
	numButtons: 10,
	numPovs:    1,
	feed: map[xinput.ControllerElement]Element{
		xinput.StickLeftX:       axis(0),
		xinput.StickLeftY:       axis(1),
		xinput.TriggerLT:        axis(2),
		xinput.StickRightX:      axis(3),
		xinput.StickRightY:      axis(4),
		xinput.TriggerRT:        axis(5),
		xinput.Dpad:             pov(0),
		xinput.ButtonA:          button(0),
		xinput.ButtonB:          button(1),
		xinput.ButtonX:          button(2),
		xinput.ButtonY:          button(3),
		xinput.ButtonLB:         button(4),
		xinput.ButtonRB:         button(5),
		xinput.ButtonBack:       button(6),
		xinput.ButtonStart:      button(7),
		xinput.ButtonLeftStick:  button(8),
		xinput.ButtonRightStick: button(9),
	},
}

// XInputSharedTriggers combines both triggers into a single bidirectional
// Z axis: LT pushes positive, RT negative, both together cancel out.
var XInputSharedTriggers = &Shape{
	name:       "XInputSharedTriggers",
	axes:       []AxisType{AxisX, AxisY, AxisZ, AxisRX, AxisRY},
	numButtons: 10,
	numPovs:    1,
	feed: map[xinput.ControllerElement]Element{
		xinput.StickLeftX:       axis(0),
		xinput.StickLeftY:       axis(1),
		xinput.TriggerLT:        axis(2),
		xinput.TriggerRT:        axis(2),
		xinput.StickRightX:      axis(3),
		xinput.StickRightY:      axis(4),
		xinput.Dpad:             pov(0),
		xinput.ButtonA:          button(0),
		xinput.ButtonB:          button(1),
		xinput.ButtonX:          button(2),
		xinput.ButtonY:          button(3),
		xinput.ButtonLB:         button(4),
		xinput.ButtonRB:         button(5),
		xinput.ButtonBack:       button(6),
		xinput.ButtonStart:      button(7),
		xinput.ButtonLeftStick:  button(8),
		xinput.ButtonRightStick: button(9),
	},
}

// DefaultShape is used when no layout is configured or the configured name
// is not recognized.
var DefaultShape = StandardGamepad

var shapesByName = map[string]*Shape{
	StandardGamepad.name:      StandardGamepad,
	ExtendedGamepad.name:      ExtendedGamepad,
	XInputNative.name:         XInputNative,
	XInputSharedTriggers.name: XInputSharedTriggers,
}

// Shapes returns all built-in shapes in a stable order.
func Shapes() []*Shape {
	return []*Shape{StandardGamepad, ExtendedGamepad, XInputNative, XInputSharedTriggers}
}

// ShapeByName looks up a built-in shape by its configuration name. It
// returns nil for unrecognized names; callers fall back to DefaultShape.
func ShapeByName(name string) *Shape {
	return shapesByName[name]
}
