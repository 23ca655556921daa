package controller

import "fmt"

// PropertyID selects one of the properties the mapper handles, standing in
// for the DIPROP_* property GUIDs.
type PropertyID int

const (
	PropAxisMode PropertyID = iota
	PropDeadzone
	PropSaturation
	PropRange
)

func (p PropertyID) String() string {
	switch p {
	case PropAxisMode:
		return "AxisMode"
	case PropDeadzone:
		return "Deadzone"
	case PropSaturation:
		return "Saturation"
	case PropRange:
		return "Range"
	}
	return "Unknown"
}

// TargetHow selects how a property request addresses its target.
type TargetHow uint32

const (
	// TargetDevice addresses the whole device; Obj must be 0.
	TargetDevice TargetHow = 0
	// TargetByOffset addresses the element mapped at a negotiated data
	// format offset.
	TargetByOffset TargetHow = 1
	// TargetById addresses an element by its type tag, as reported in
	// enumeration descriptors.
	TargetById TargetHow = 2
	// TargetByUsage is never resolvable on a virtual controller.
	TargetByUsage TargetHow = 3
)

// Structure sizes a property request must declare, mirroring the DirectInput
// property structures.
const (
	PropertyHeaderSize uint32 = 16
	PropertyDwordSize  uint32 = 20
	PropertyRangeSize  uint32 = 24
)

// AxisModeAbsolute is the only axis mode the virtual controller operates in.
const AxisModeAbsolute uint32 = 0

// PropertyHeader is the common preamble of every property request.
type PropertyHeader struct {
	// Size of the full property structure: PropertyDwordSize for axis
	// mode, deadzone and saturation, PropertyRangeSize for range.
	Size uint32
	// HeaderSize must be PropertyHeaderSize.
	HeaderSize uint32
	// Obj identifies the target per How: 0 for the whole device, a data
	// format offset, or a type tag.
	Obj uint32
	How TargetHow
}

// PropertyData carries the payload of a property request. Value is used by
// the dword-sized properties, RangeMin and RangeMax by the range property.
type PropertyData struct {
	Value    uint32
	RangeMin int32
	RangeMax int32
}

func isPropertyHandled(prop PropertyID) bool {
	switch prop {
	case PropAxisMode, PropDeadzone, PropSaturation, PropRange:
		return true
	}
	return false
}

func propertySize(prop PropertyID) uint32 {
	if prop == PropRange {
		return PropertyRangeSize
	}
	return PropertyDwordSize
}

// resolveElementLocked turns a property or object query target into an
// element, following the supported addressing methods only.
func (m *Mapper) resolveElementLocked(obj uint32, how TargetHow) (Element, bool) {
	switch how {
	case TargetByOffset:
		return m.instanceForOffsetLocked(obj)
	case TargetById:
		return m.elementForTypeTagLocked(obj)
	}
	return Element{}, false
}

func (m *Mapper) elementForTypeTagLocked(tag uint32) (Element, bool) {
	kind, ok := TypeMask(tag).kind()
	if !ok {
		return Element{}, false
	}
	idx := TypeMask(tag).instance()
	if idx >= m.shape.NumInstances(kind) {
		return Element{}, false
	}
	return Element{Kind: kind, Index: idx}, true
}

// GetProperty reads a property into data. Validation order matters: an
// unhandled property is reported before any header problem is.
func (m *Mapper) GetProperty(prop PropertyID, hdr *PropertyHeader, data *PropertyData) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.logger.Debug("getting property", "property", prop.String(), "how", uint32(hdr.How), "obj", hdr.Obj)

	m.ensureAxisPropertiesLocked()

	if !isPropertyHandled(prop) {
		return fmt.Errorf("property %s: %w", prop, ErrUnsupported)
	}
	if hdr.HeaderSize != PropertyHeaderSize {
		return fmt.Errorf("header size %d: %w", hdr.HeaderSize, ErrInvalidParameter)
	}
	if hdr.How == TargetDevice && hdr.Obj != 0 {
		return fmt.Errorf("device-wide request with nonzero object %d: %w", hdr.Obj, ErrInvalidParameter)
	}

	if prop == PropAxisMode {
		if hdr.Size != PropertyDwordSize {
			return fmt.Errorf("structure size %d: %w", hdr.Size, ErrInvalidParameter)
		}
		data.Value = AxisModeAbsolute
		return nil
	}

	if hdr.Size != propertySize(prop) {
		return fmt.Errorf("structure size %d: %w", hdr.Size, ErrInvalidParameter)
	}

	// The calibration properties are per-axis; reading them device-wide
	// is meaningless.
	if hdr.How == TargetDevice {
		return fmt.Errorf("property %s is per-axis: %w", prop, ErrUnsupported)
	}

	elem, ok := m.resolveElementLocked(hdr.Obj, hdr.How)
	if !ok {
		return fmt.Errorf("object %d: %w", hdr.Obj, ErrObjectNotFound)
	}
	if elem.Kind != KindAxis {
		return fmt.Errorf("property %s on %s: %w", prop, elem, ErrUnsupported)
	}

	props := &m.axisProps[elem.Index]
	switch prop {
	case PropDeadzone:
		data.Value = props.deadzone
	case PropSaturation:
		data.Value = props.saturation
	case PropRange:
		data.RangeMin = props.rangeMin
		data.RangeMax = props.rangeMax
	}
	return nil
}

// SetProperty writes a property from data. Device-wide calibration writes
// apply to every axis; setting the axis mode to its only supported value
// returns ErrNoEffect.
func (m *Mapper) SetProperty(prop PropertyID, hdr *PropertyHeader, data *PropertyData) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.logger.Debug("setting property", "property", prop.String(), "how", uint32(hdr.How), "obj", hdr.Obj)

	m.ensureAxisPropertiesLocked()

	if !isPropertyHandled(prop) {
		return fmt.Errorf("property %s: %w", prop, ErrUnsupported)
	}
	if hdr.HeaderSize != PropertyHeaderSize {
		return fmt.Errorf("header size %d: %w", hdr.HeaderSize, ErrInvalidParameter)
	}
	if hdr.How == TargetDevice && hdr.Obj != 0 {
		return fmt.Errorf("device-wide request with nonzero object %d: %w", hdr.Obj, ErrInvalidParameter)
	}

	if prop == PropAxisMode {
		if hdr.Size != PropertyDwordSize {
			return fmt.Errorf("structure size %d: %w", hdr.Size, ErrInvalidParameter)
		}
		if data.Value == AxisModeAbsolute {
			return ErrNoEffect
		}
		return fmt.Errorf("axis mode %d: %w", data.Value, ErrUnsupported)
	}

	if hdr.Size != propertySize(prop) {
		return fmt.Errorf("structure size %d: %w", hdr.Size, ErrInvalidParameter)
	}

	startAxis := 0
	endAxis := 0
	if hdr.How == TargetDevice {
		endAxis = m.shape.NumInstances(KindAxis) - 1
		if endAxis < startAxis {
			return fmt.Errorf("device has no axes: %w", ErrObjectNotFound)
		}
	} else {
		elem, ok := m.resolveElementLocked(hdr.Obj, hdr.How)
		if !ok {
			return fmt.Errorf("object %d: %w", hdr.Obj, ErrObjectNotFound)
		}
		if elem.Kind != KindAxis {
			return fmt.Errorf("property %s on %s: %w", prop, elem, ErrUnsupported)
		}
		startAxis = elem.Index
		endAxis = elem.Index
	}

	switch prop {
	case PropDeadzone:
		if data.Value < AxisDeadzoneMin || data.Value > AxisDeadzoneMax {
			return fmt.Errorf("deadzone %d out of range: %w", data.Value, ErrInvalidParameter)
		}
		for i := startAxis; i <= endAxis; i++ {
			m.axisProps[i].deadzone = data.Value
			m.axisProps[i].recompute()
		}
	case PropSaturation:
		if data.Value < AxisSaturationMin || data.Value > AxisSaturationMax {
			return fmt.Errorf("saturation %d out of range: %w", data.Value, ErrInvalidParameter)
		}
		for i := startAxis; i <= endAxis; i++ {
			m.axisProps[i].saturation = data.Value
			m.axisProps[i].recompute()
		}
	case PropRange:
		if data.RangeMin >= data.RangeMax {
			return fmt.Errorf("range [%d, %d] is not ascending: %w", data.RangeMin, data.RangeMax, ErrInvalidParameter)
		}
		for i := startAxis; i <= endAxis; i++ {
			m.axisProps[i].rangeMin = data.RangeMin
			m.axisProps[i].rangeMax = data.RangeMax
			m.axisProps[i].recompute()
		}
	}
	return nil
}
