// Package controller implements a virtual DirectInput-style controller on
// top of an XInput gamepad: data format negotiation against an
// application-declared byte layout, per-axis calibration properties, object
// enumeration, and translation of live or buffered controller state into
// the negotiated layout.
package controller

import "fmt"

// ElementKind distinguishes the three kinds of virtual controller objects.
type ElementKind int

const (
	KindAxis ElementKind = iota
	KindButton
	KindPov
)

func (k ElementKind) String() string {
	switch k {
	case KindAxis:
		return "axis"
	case KindButton:
		return "button"
	case KindPov:
		return "pov"
	}
	return "unknown"
}

// Width returns the number of bytes one element of this kind occupies in an
// application data packet: axes and POVs are 4-byte values, buttons a
// single byte.
func (k ElementKind) Width() uint32 {
	switch k {
	case KindAxis, KindPov:
		return 4
	case KindButton:
		return 1
	}
	return 0
}

// Element addresses one virtual controller object: a kind plus a zero-based
// instance index within that kind.
type Element struct {
	Kind  ElementKind
	Index int
}

func (e Element) String() string {
	return fmt.Sprintf("%s %d", e.Kind, e.Index)
}

// AxisType is the semantic identity of an axis, standing in for the
// DirectInput axis GUIDs.
type AxisType int

const (
	AxisX AxisType = iota
	AxisY
	AxisZ
	AxisRX
	AxisRY
	AxisRZ
)

func (a AxisType) String() string {
	switch a {
	case AxisX:
		return "X Axis"
	case AxisY:
		return "Y Axis"
	case AxisZ:
		return "Z Axis"
	case AxisRX:
		return "RotX Axis"
	case AxisRY:
		return "RotY Axis"
	case AxisRZ:
		return "RotZ Axis"
	}
	return "Unknown Axis"
}

// ObjectGuid identifies the semantic type of an object in a data format or
// an enumeration descriptor, mirroring the predefined DirectInput object
// GUIDs.
type ObjectGuid int

const (
	GuidXAxis ObjectGuid = iota
	GuidYAxis
	GuidZAxis
	GuidRxAxis
	GuidRyAxis
	GuidRzAxis
	GuidButton
	GuidPov
)

func (g ObjectGuid) String() string {
	switch g {
	case GuidXAxis, GuidYAxis, GuidZAxis, GuidRxAxis, GuidRyAxis, GuidRzAxis:
		return axisTypeForGuid[g].String()
	case GuidButton:
		return "Button"
	case GuidPov:
		return "POV"
	}
	return "Unknown"
}

var axisTypeForGuid = map[ObjectGuid]AxisType{
	GuidXAxis:  AxisX,
	GuidYAxis:  AxisY,
	GuidZAxis:  AxisZ,
	GuidRxAxis: AxisRX,
	GuidRyAxis: AxisRY,
	GuidRzAxis: AxisRZ,
}

var guidForAxisType = map[AxisType]ObjectGuid{
	AxisX:  GuidXAxis,
	AxisY:  GuidYAxis,
	AxisZ:  GuidZAxis,
	AxisRX: GuidRxAxis,
	AxisRY: GuidRyAxis,
	AxisRZ: GuidRzAxis,
}

// GuidForAxisType returns the object GUID for an axis semantic type.
func GuidForAxisType(t AxisType) ObjectGuid { return guidForAxisType[t] }

// TypeMask carries the kind bits and instance selector of an object
// specification or descriptor, using the DIDFT bit layout: kind flags in
// the low byte, the instance number (or the any-instance wildcard) in bits
// 8-23.
type TypeMask uint32

const (
	TypeAll        TypeMask = 0x00000000
	TypeAbsAxis    TypeMask = 0x00000002
	TypePushButton TypeMask = 0x00000004
	TypePov        TypeMask = 0x00000010

	typeInstanceMask  TypeMask = 0x00ffff00
	typeAnyInstance   TypeMask = 0x00ffff00
	typeInstanceShift          = 8
)

// AnyInstance builds a TypeMask selecting any instance of the given kind
// bits.
func AnyInstance(kind TypeMask) TypeMask {
	return kind | typeAnyInstance
}

// SpecificInstance builds a TypeMask selecting one instance of the given
// kind bits.
func SpecificInstance(kind TypeMask, instance int) TypeMask {
	return kind | (TypeMask(instance)<<typeInstanceShift)&typeInstanceMask
}

// MakeTypeTag encodes an element kind and instance number the way
// enumeration descriptors report them.
func MakeTypeTag(kind ElementKind, instance int) TypeMask {
	return SpecificInstance(kindTypeBits(kind), instance)
}

func kindTypeBits(kind ElementKind) TypeMask {
	switch kind {
	case KindAxis:
		return TypeAbsAxis
	case KindButton:
		return TypePushButton
	case KindPov:
		return TypePov
	}
	return 0
}

func (t TypeMask) allowsAnyInstance() bool {
	return t&typeInstanceMask == typeAnyInstance
}

func (t TypeMask) instance() int {
	return int((t & typeInstanceMask) >> typeInstanceShift)
}

func (t TypeMask) kind() (ElementKind, bool) {
	switch {
	case t&TypeAbsAxis != 0:
		return KindAxis, true
	case t&TypePushButton != 0:
		return KindButton, true
	case t&TypePov != 0:
		return KindPov, true
	}
	return 0, false
}
