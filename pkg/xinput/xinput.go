// Package xinput models the state of an XInput gamepad and provides access
// to live controller state.
//
// On Windows the state is read from the XInput runtime (xinput1_4.dll with
// older fallbacks). On other platforms the system device always reports
// not-connected, which keeps the rest of the stack testable anywhere.
package xinput

// Button bits of Gamepad.Buttons, matching XINPUT_GAMEPAD_*.
const (
	ButtonMaskDpadUp        uint16 = 0x0001
	ButtonMaskDpadDown      uint16 = 0x0002
	ButtonMaskDpadLeft      uint16 = 0x0004
	ButtonMaskDpadRight     uint16 = 0x0008
	ButtonMaskStart         uint16 = 0x0010
	ButtonMaskBack          uint16 = 0x0020
	ButtonMaskLeftThumb     uint16 = 0x0040
	ButtonMaskRightThumb    uint16 = 0x0080
	ButtonMaskLeftShoulder  uint16 = 0x0100
	ButtonMaskRightShoulder uint16 = 0x0200
	ButtonMaskA             uint16 = 0x1000
	ButtonMaskB             uint16 = 0x2000
	ButtonMaskX             uint16 = 0x4000
	ButtonMaskY             uint16 = 0x8000
)

// Value ranges of the analog elements.
const (
	StickRangeMin   int32 = -32768
	StickRangeMax   int32 = 32767
	StickNeutral    int32 = 0
	TriggerRangeMin int32 = 0
	TriggerRangeMax int32 = 255
	TriggerNeutral  int32 = 0

	// TriggerThreshold is the pressed/released cutoff when a trigger is
	// treated as a digital button (XINPUT_GAMEPAD_TRIGGER_THRESHOLD).
	TriggerThreshold int32 = 30
)

// Status codes returned by GetState, matching the Windows error codes the
// XInput runtime produces.
const (
	StatusSuccess      uint32 = 0
	StatusNotConnected uint32 = 1167
)

// Gamepad is the instantaneous controller state, laid out like
// XINPUT_GAMEPAD.
type Gamepad struct {
	Buttons      uint16
	LeftTrigger  uint8
	RightTrigger uint8
	ThumbLX      int16
	ThumbLY      int16
	ThumbRX      int16
	ThumbRY      int16
}

// State is a Gamepad plus the packet number the runtime stamps on each
// distinct controller state.
type State struct {
	PacketNumber uint32
	Gamepad      Gamepad
}

// Device reads live controller state. GetState returns the most recent
// state along with a status code; any code other than StatusSuccess means
// the returned state is unusable and callers should substitute neutral.
type Device interface {
	GetState() (State, uint32)
}

// ControllerElement identifies one physical input on an XInput controller.
type ControllerElement int

const (
	StickLeftX ControllerElement = iota
	StickLeftY
	StickRightX
	StickRightY
	TriggerLT
	TriggerRT
	Dpad
	ButtonA
	ButtonB
	ButtonX
	ButtonY
	ButtonLB
	ButtonRB
	ButtonBack
	ButtonStart
	ButtonLeftStick
	ButtonRightStick

	NumControllerElements = iota
)

func (e ControllerElement) String() string {
	switch e {
	case StickLeftX:
		return "StickLeftX"
	case StickLeftY:
		return "StickLeftY"
	case StickRightX:
		return "StickRightX"
	case StickRightY:
		return "StickRightY"
	case TriggerLT:
		return "TriggerLT"
	case TriggerRT:
		return "TriggerRT"
	case Dpad:
		return "Dpad"
	case ButtonA:
		return "ButtonA"
	case ButtonB:
		return "ButtonB"
	case ButtonX:
		return "ButtonX"
	case ButtonY:
		return "ButtonY"
	case ButtonLB:
		return "ButtonLB"
	case ButtonRB:
		return "ButtonRB"
	case ButtonBack:
		return "ButtonBack"
	case ButtonStart:
		return "ButtonStart"
	case ButtonLeftStick:
		return "ButtonLeftStick"
	case ButtonRightStick:
		return "ButtonRightStick"
	}
	return "Unknown"
}

// digitalButtonMasks pairs each digital button element with its bit in
// Gamepad.Buttons.
var digitalButtonMasks = map[ControllerElement]uint16{
	ButtonA:          ButtonMaskA,
	ButtonB:          ButtonMaskB,
	ButtonX:          ButtonMaskX,
	ButtonY:          ButtonMaskY,
	ButtonLB:         ButtonMaskLeftShoulder,
	ButtonRB:         ButtonMaskRightShoulder,
	ButtonBack:       ButtonMaskBack,
	ButtonStart:      ButtonMaskStart,
	ButtonLeftStick:  ButtonMaskLeftThumb,
	ButtonRightStick: ButtonMaskRightThumb,
}

// ButtonMaskForElement returns the Gamepad.Buttons bit for a digital button
// element, or 0 if the element is not a digital button.
func ButtonMaskForElement(e ControllerElement) uint16 {
	return digitalButtonMasks[e]
}

// PovCentered is the POV value reported when no direction is pressed, per
// the DirectInput convention.
const PovCentered int32 = -1

// PovFromButtons converts the D-pad bits of a button mask to a POV angle in
// hundredths of a degree: 0 is up, increasing clockwise in 4500 unit steps.
// Conflicting opposite directions cancel out; no direction yields
// PovCentered.
func PovFromButtons(buttons uint16) int32 {
	up := buttons&ButtonMaskDpadUp != 0
	down := buttons&ButtonMaskDpadDown != 0
	left := buttons&ButtonMaskDpadLeft != 0
	right := buttons&ButtonMaskDpadRight != 0

	if up && down {
		up, down = false, false
	}
	if left && right {
		left, right = false, false
	}

	switch {
	case up && right:
		return 4500
	case down && right:
		return 13500
	case down && left:
		return 22500
	case up && left:
		return 31500
	case up:
		return 0
	case right:
		return 9000
	case down:
		return 18000
	case left:
		return 27000
	}

	return PovCentered
}
