package controller

import (
	"encoding/binary"
	"fmt"

	"github.com/hamzahamidi/Xidi/pkg/xinput"
)

// WriteControllerState translates an XInput gamepad state into the
// negotiated application data packet layout, writing into buf. The buffer
// must be at least as large as the negotiated packet size; all of it is
// zeroed first, so unmapped axis and button offsets read as neutral, and
// POV offsets the format declared but the controller cannot serve are
// explicitly centered.
func (m *Mapper) WriteControllerState(gamepad xinput.Gamepad, buf []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.ensureAxisPropertiesLocked()

	if uint32(len(buf)) < m.packetSize {
		return fmt.Errorf("buffer size %d below packet size %d: %w", len(buf), m.packetSize, ErrInvalidParameter)
	}

	for i := range buf {
		buf[i] = 0
	}

	// Guards against a shape that routes two XInput elements to the same
	// virtual element, which is only legal for a shared trigger axis.
	written := make(map[Element]struct{})

	if err := m.writeTriggersLocked(gamepad, buf, written); err != nil {
		return err
	}
	if err := m.writeSticksLocked(gamepad, buf, written); err != nil {
		return err
	}
	if err := m.writeDpadLocked(gamepad, buf, written); err != nil {
		return err
	}
	if err := m.writeButtonsLocked(gamepad, buf, written); err != nil {
		return err
	}

	for offset := range m.povOffsetsUnused {
		writeInt32(buf, offset, xinput.PovCentered)
	}
	return nil
}

// writeTriggersLocked handles LT and RT, which unlike other elements may
// feed an axis, a button, or together one shared axis.
func (m *Mapper) writeTriggersLocked(gamepad xinput.Gamepad, buf []byte, written map[Element]struct{}) error {
	elemLT, okLT := m.shape.InstanceForXInput(xinput.TriggerLT)
	elemRT, okRT := m.shape.InstanceForXInput(xinput.TriggerRT)

	m.cachedLT = int32(gamepad.LeftTrigger)
	m.cachedRT = int32(gamepad.RightTrigger)

	if okLT && okRT && elemLT == elemRT {
		if elemLT.Kind != KindAxis || elemLT.Index >= m.shape.NumInstances(KindAxis) {
			return fmt.Errorf("triggers share non-axis element %s: %w", elemLT, ErrInternal)
		}
		value, err := m.sharedTriggerAxisValue(m.cachedLT, m.cachedRT)
		if err != nil {
			return err
		}
		written[elemLT] = struct{}{}
		m.writeAxisValueLocked(elemLT, value, buf)
		return nil
	}

	triggers := []struct {
		elem  Element
		ok    bool
		value int32
	}{
		{elemLT, okLT, m.cachedLT},
		{elemRT, okRT, m.cachedRT},
	}
	for _, t := range triggers {
		if !t.ok {
			continue
		}
		switch t.elem.Kind {
		case KindAxis:
			if t.elem.Index >= m.shape.NumInstances(KindAxis) {
				return fmt.Errorf("trigger axis %s out of bounds: %w", t.elem, ErrInternal)
			}
			written[t.elem] = struct{}{}
			m.writeAxisValueLocked(t.elem, separateTriggerAxisValue(t.value), buf)
		case KindButton:
			if t.elem.Index >= m.shape.NumInstances(KindButton) {
				return fmt.Errorf("trigger button %s out of bounds: %w", t.elem, ErrInternal)
			}
			written[t.elem] = struct{}{}
			m.writeButtonValueLocked(t.elem, t.value > xinput.TriggerThreshold, buf)
		default:
			return fmt.Errorf("trigger mapped to %s: %w", t.elem, ErrInternal)
		}
	}
	return nil
}

// sharedTriggerAxisValue combines both raw trigger values into one analog
// value in the stick domain. Each trigger contributes one half of the
// domain, so two equally pressed triggers cancel out to neutral exactly.
func (m *Mapper) sharedTriggerAxisValue(rawLT, rawRT int32) (int32, error) {
	mult := m.shape.SharedTriggerAxisDirection(xinput.TriggerLT)
	switch {
	case mult > 0:
		mult = 1
	case mult < 0:
		mult = -1
	default:
		return 0, fmt.Errorf("shared trigger axis with zero direction: %w", ErrInternal)
	}

	combined := mult*rawLT + (-mult)*rawRT
	if combined >= 0 {
		return mapValueInRangeToRange(combined, 0, xinput.TriggerRangeMax, 0, xinput.StickRangeMax), nil
	}
	return mapValueInRangeToRange(combined, 0, -xinput.TriggerRangeMax, 0, xinput.StickRangeMin), nil
}

// separateTriggerAxisValue maps one trigger's value onto the full stick
// domain: released is the negative extreme, fully pressed the positive one.
func separateTriggerAxisValue(raw int32) int32 {
	return mapValueInRangeToRange(raw, xinput.TriggerRangeMin, xinput.TriggerRangeMax, xinput.StickRangeMin, xinput.StickRangeMax)
}

func (m *Mapper) writeSticksLocked(gamepad xinput.Gamepad, buf []byte, written map[Element]struct{}) error {
	sticks := []struct {
		source   xinput.ControllerElement
		value    int32
		inverted bool
	}{
		{xinput.StickLeftX, int32(gamepad.ThumbLX), false},
		{xinput.StickLeftY, int32(gamepad.ThumbLY), true},
		{xinput.StickRightX, int32(gamepad.ThumbRX), false},
		{xinput.StickRightY, int32(gamepad.ThumbRY), true},
	}

	for _, s := range sticks {
		elem, ok := m.shape.InstanceForXInput(s.source)
		if !ok {
			continue
		}
		if elem.Kind != KindAxis || elem.Index >= m.shape.NumInstances(KindAxis) {
			return fmt.Errorf("stick %s mapped to %s: %w", s.source, elem, ErrInternal)
		}
		if _, dup := written[elem]; dup {
			return fmt.Errorf("stick %s remaps element %s: %w", s.source, elem, ErrInternal)
		}
		written[elem] = struct{}{}

		value := s.value
		if s.inverted {
			value = invertAxisValue(value, xinput.StickRangeMin, xinput.StickRangeMax)
		}
		m.writeAxisValueLocked(elem, value, buf)
	}
	return nil
}

func (m *Mapper) writeDpadLocked(gamepad xinput.Gamepad, buf []byte, written map[Element]struct{}) error {
	elem, ok := m.shape.InstanceForXInput(xinput.Dpad)
	if !ok {
		return nil
	}
	if elem.Kind != KindPov || elem.Index >= m.shape.NumInstances(KindPov) {
		return fmt.Errorf("dpad mapped to %s: %w", elem, ErrInternal)
	}
	if _, dup := written[elem]; dup {
		return fmt.Errorf("dpad remaps element %s: %w", elem, ErrInternal)
	}
	written[elem] = struct{}{}
	m.writePovValueLocked(elem, xinput.PovFromButtons(gamepad.Buttons), buf)
	return nil
}

func (m *Mapper) writeButtonsLocked(gamepad xinput.Gamepad, buf []byte, written map[Element]struct{}) error {
	for source := xinput.ButtonA; source <= xinput.ButtonRightStick; source++ {
		elem, ok := m.shape.InstanceForXInput(source)
		if !ok {
			continue
		}
		if elem.Kind != KindButton || elem.Index >= m.shape.NumInstances(KindButton) {
			return fmt.Errorf("button %s mapped to %s: %w", source, elem, ErrInternal)
		}
		if _, dup := written[elem]; dup {
			return fmt.Errorf("button %s remaps element %s: %w", source, elem, ErrInternal)
		}
		written[elem] = struct{}{}
		m.writeButtonValueLocked(elem, gamepad.Buttons&xinput.ButtonMaskForElement(source) != 0, buf)
	}
	return nil
}

// writeAxisValueLocked transforms a raw analog value through the axis's
// calibration and writes it if the application's data format maps the
// element.
func (m *Mapper) writeAxisValueLocked(elem Element, raw int32, buf []byte) {
	offset, ok := m.instanceToOffset[elem]
	if !ok {
		return
	}
	writeInt32(buf, offset, m.transformAxisValueLocked(elem.Index, raw))
}

func (m *Mapper) writeButtonValueLocked(elem Element, pressed bool, buf []byte) {
	offset, ok := m.instanceToOffset[elem]
	if !ok {
		return
	}
	if pressed {
		buf[offset] = 0x80
	} else {
		buf[offset] = 0x00
	}
}

func (m *Mapper) writePovValueLocked(elem Element, value int32, buf []byte) {
	offset, ok := m.instanceToOffset[elem]
	if !ok {
		return
	}
	writeInt32(buf, offset, value)
}

func writeInt32(buf []byte, offset uint32, value int32) {
	binary.LittleEndian.PutUint32(buf[offset:offset+4], uint32(value))
}
