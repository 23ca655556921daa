package controller

import "fmt"

// ObjectInstanceSize is the size an object descriptor request must declare,
// mirroring sizeof(DIDEVICEOBJECTINSTANCE).
const ObjectInstanceSize uint32 = 316

// Descriptor flag bits.
const (
	FlagPolled         uint32 = 0x8000
	FlagAspectPosition uint32 = 0x0100
)

// ObjectInstance describes one virtual controller object to an application.
type ObjectInstance struct {
	Size uint32
	// Guid is the object's semantic type.
	Guid ObjectGuid
	// Offset is the object's position in a data packet: the native layout
	// position when no data format is set, otherwise the negotiated
	// offset, with -1 marking objects the format does not map.
	Offset int32
	// TypeTag carries the kind bits and instance number.
	TypeTag TypeMask
	Flags   uint32
	Name    string
}

// EnumResponse is a callback's verdict on whether enumeration proceeds.
type EnumResponse int

const (
	EnumStop EnumResponse = iota
	EnumContinue
)

// Capabilities reports the element counts of the virtual controller.
type Capabilities struct {
	Axes    uint32
	Buttons uint32
	Povs    uint32
}

// Capabilities returns the element counts of the mapper's shape.
func (m *Mapper) Capabilities() Capabilities {
	return Capabilities{
		Axes:    uint32(m.shape.NumInstances(KindAxis)),
		Buttons: uint32(m.shape.NumInstances(KindButton)),
		Povs:    uint32(m.shape.NumInstances(KindPov)),
	}
}

// EnumerateObjects calls cb once per virtual object the flags select, axes
// first, then POVs, then buttons, each kind in ascending instance order.
// TypeAll selects every kind. The callback stops the enumeration cleanly by
// returning EnumStop; any response other than EnumStop or EnumContinue
// aborts with an error.
func (m *Mapper) EnumerateObjects(flags TypeMask, cb func(*ObjectInstance) EnumResponse) error {
	enumerate := func(kind ElementKind, kindBits TypeMask) (stopped bool, err error) {
		if flags != TypeAll && flags&kindBits == 0 {
			return false, nil
		}
		count := m.shape.NumInstances(kind)
		for i := 0; i < count; i++ {
			m.mu.Lock()
			desc := m.objectInstanceLocked(kind, i)
			m.mu.Unlock()

			switch cb(desc) {
			case EnumContinue:
			case EnumStop:
				return true, nil
			default:
				return false, fmt.Errorf("enumeration callback returned an unrecognized response: %w", ErrInvalidParameter)
			}
		}
		return false, nil
	}

	for _, k := range []struct {
		kind ElementKind
		bits TypeMask
	}{
		{KindAxis, TypeAbsAxis},
		{KindPov, TypePov},
		{KindButton, TypePushButton},
	} {
		stopped, err := enumerate(k.kind, k.bits)
		if err != nil || stopped {
			return err
		}
	}
	return nil
}

// GetObjectInfo describes a single object addressed by offset or type tag.
// declaredSize is the structure size the caller claims and must equal
// ObjectInstanceSize.
func (m *Mapper) GetObjectInfo(declaredSize uint32, obj uint32, how TargetHow) (*ObjectInstance, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if declaredSize != ObjectInstanceSize {
		return nil, fmt.Errorf("descriptor size %d: %w", declaredSize, ErrInvalidParameter)
	}
	elem, ok := m.resolveElementLocked(obj, how)
	if !ok {
		return nil, fmt.Errorf("object %d: %w", obj, ErrObjectNotFound)
	}
	return m.objectInstanceLocked(elem.Kind, elem.Index), nil
}

// objectInstanceLocked builds the descriptor for one object. The reported
// offset follows DirectInput's observed behavior rather than its documented
// behavior: once a data format is set the negotiated offsets are reported,
// with -1 for unmapped objects, instead of the native layout positions.
func (m *Mapper) objectInstanceLocked(kind ElementKind, index int) *ObjectInstance {
	numAxes := uint32(m.shape.NumInstances(KindAxis))
	numPovs := uint32(m.shape.NumInstances(KindPov))

	desc := &ObjectInstance{
		Size:    ObjectInstanceSize,
		TypeTag: MakeTypeTag(kind, index),
		Flags:   FlagPolled,
	}

	switch kind {
	case KindAxis:
		axisType := m.shape.AxisType(index)
		desc.Offset = int32(uint32(index) * KindAxis.Width())
		desc.Guid = GuidForAxisType(axisType)
		desc.Flags |= FlagAspectPosition
		desc.Name = axisType.String()
	case KindPov:
		desc.Offset = int32(numAxes*KindAxis.Width() + uint32(index)*KindPov.Width())
		desc.Guid = GuidPov
		desc.Name = fmt.Sprintf("POV %d", 1+index)
	case KindButton:
		desc.Offset = int32(numAxes*KindAxis.Width() + numPovs*KindPov.Width() + uint32(index)*KindButton.Width())
		desc.Guid = GuidButton
		desc.Name = fmt.Sprintf("Button %d", 1+index)
	}

	if m.formatSet {
		desc.Offset = m.offsetForInstanceLocked(Element{Kind: kind, Index: index})
	}
	return desc
}
