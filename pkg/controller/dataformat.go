package controller

import "fmt"

// MaxDataPacketSize is the largest application data packet accepted during
// format negotiation.
const MaxDataPacketSize uint32 = 1024

// ObjectSpec is one entry of an application data format: where in the packet
// the value goes, which kinds of element may serve it, and optionally which
// semantic type. A nil Guid accepts any type compatible with the kind bits.
type ObjectSpec struct {
	Guid   *ObjectGuid
	Offset uint32
	Type   TypeMask
}

// DataFormat is an application's declared packet layout.
type DataFormat struct {
	Objects  []ObjectSpec
	DataSize uint32
}

// GuidPtr is a convenience for building ObjectSpec literals.
func GuidPtr(g ObjectGuid) *ObjectGuid { return &g }

// ResetDataFormat discards any negotiated data format. Calibration
// properties are unaffected.
func (m *Mapper) ResetDataFormat() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.resetDataFormatLocked()
}

// SetDataFormat negotiates an application data format against the mapper's
// shape. On success the bidirectional instance/offset correspondence is
// rebuilt and the packet size recorded; on any error the mapper is left with
// no data format set, even if one was set before the call.
//
// Wildcard-instance entries consume elements in ascending instance order and
// never revisit a consumed element. A wildcard entry that no element can
// serve is accepted and remembered as an unused offset; a specific-instance
// entry that cannot be served is an error.
func (m *Mapper) SetDataFormat(df *DataFormat) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.logger.Debug("negotiating application data format",
		"shape", m.shape.Name(), "dataSize", df.DataSize, "numObjects", len(df.Objects))

	// Invalidate any prior format first so a failed negotiation cannot
	// leave a stale one behind.
	m.resetDataFormatLocked()

	if df.DataSize%4 != 0 {
		return fmt.Errorf("data packet size %d is not a multiple of 4: %w", df.DataSize, ErrInvalidParameter)
	}
	if df.DataSize > MaxDataPacketSize {
		return fmt.Errorf("data packet size %d exceeds maximum %d: %w", df.DataSize, MaxDataPacketSize, ErrInvalidParameter)
	}

	numAxes := m.shape.NumInstances(KindAxis)
	numButtons := m.shape.NumInstances(KindButton)
	numPovs := m.shape.NumInstances(KindPov)

	axisUsed := make([]bool, numAxes)
	buttonUsed := make([]bool, numButtons)
	povUsed := make([]bool, numPovs)
	offsetUsed := make([]bool, df.DataSize)

	// Wildcard entries dequeue from these cursors, which only ever move
	// forward.
	nextUnusedAxis := 0
	nextUnusedButton := 0
	nextUnusedPov := 0

	for i := range df.Objects {
		obj := &df.Objects[i]

		kind, ok := obj.Type.kind()
		if !ok {
			m.resetDataFormatLocked()
			return fmt.Errorf("object %d: unrecognized type mask %#x: %w", i, uint32(obj.Type), ErrInvalidParameter)
		}

		if !checkAndSetOffsets(offsetUsed, obj.Offset, kind.Width(), df.DataSize) {
			m.resetDataFormatLocked()
			return fmt.Errorf("object %d: offset %d overlaps or exceeds packet size: %w", i, obj.Offset, ErrInvalidParameter)
		}

		anyInstance := obj.Type.allowsAnyInstance()
		specificInstance := obj.Type.instance()

		var err error
		switch kind {
		case KindAxis:
			err = m.negotiateAxisLocked(obj, anyInstance, specificInstance, axisUsed, nextUnusedAxis)
		case KindButton:
			err = m.negotiateButtonOrPovLocked(obj, KindButton, GuidButton, anyInstance, specificInstance, buttonUsed, nextUnusedButton, m.buttonOffsetsUnused)
		case KindPov:
			err = m.negotiateButtonOrPovLocked(obj, KindPov, GuidPov, anyInstance, specificInstance, povUsed, nextUnusedPov, m.povOffsetsUnused)
		}
		if err != nil {
			m.resetDataFormatLocked()
			return fmt.Errorf("object %d: %w", i, err)
		}

		for nextUnusedAxis < numAxes && axisUsed[nextUnusedAxis] {
			nextUnusedAxis++
		}
		for nextUnusedButton < numButtons && buttonUsed[nextUnusedButton] {
			nextUnusedButton++
		}
		for nextUnusedPov < numPovs && povUsed[nextUnusedPov] {
			nextUnusedPov++
		}
	}

	m.packetSize = df.DataSize
	m.formatSet = true
	m.logger.Debug("application data format accepted",
		"packetSize", m.packetSize, "mappedElements", len(m.instanceToOffset))
	return nil
}

// negotiateAxisLocked resolves one axis entry. A nil guid accepts any axis
// type; a guid restricts the search to axes of that semantic type, with a
// specific instance counting within that type only.
func (m *Mapper) negotiateAxisLocked(obj *ObjectSpec, anyInstance bool, specificInstance int, axisUsed []bool, nextUnusedAxis int) error {
	if obj.Guid == nil {
		idx := specificInstance
		if anyInstance {
			idx = nextUnusedAxis
		}
		if selectInstance(axisUsed, idx) {
			m.mapInstanceAndOffsetLocked(Element{Kind: KindAxis, Index: idx}, obj.Offset)
			return nil
		}
		if !anyInstance {
			return fmt.Errorf("axis instance %d unavailable: %w", specificInstance, ErrInvalidParameter)
		}
		m.logger.Debug("data format declares an axis the controller lacks", "offset", obj.Offset)
		m.axisOffsetsUnused[obj.Offset] = struct{}{}
		return nil
	}

	axisType, isAxisGuid := axisTypeForGuid[*obj.Guid]

	if anyInstance {
		if isAxisGuid {
			for n := 0; ; n++ {
				idx := m.shape.AxisInstanceIndex(axisType, n)
				if idx < 0 {
					break
				}
				if selectInstance(axisUsed, idx) {
					m.mapInstanceAndOffsetLocked(Element{Kind: KindAxis, Index: idx}, obj.Offset)
					return nil
				}
			}
		}
		m.logger.Debug("data format declares an axis type the controller lacks",
			"type", obj.Guid.String(), "offset", obj.Offset)
		m.axisOffsetsUnused[obj.Offset] = struct{}{}
		return nil
	}

	if !isAxisGuid {
		return fmt.Errorf("axis entry with non-axis type %s: %w", obj.Guid, ErrInvalidParameter)
	}
	idx := m.shape.AxisInstanceIndex(axisType, specificInstance)
	if !selectInstance(axisUsed, idx) {
		return fmt.Errorf("%s instance %d unavailable: %w", obj.Guid, specificInstance, ErrInvalidParameter)
	}
	m.mapInstanceAndOffsetLocked(Element{Kind: KindAxis, Index: idx}, obj.Offset)
	return nil
}

// negotiateButtonOrPovLocked resolves one button or POV entry. These kinds
// have a single semantic type, so the guid must be absent or match.
func (m *Mapper) negotiateButtonOrPovLocked(obj *ObjectSpec, kind ElementKind, wantGuid ObjectGuid, anyInstance bool, specificInstance int, used []bool, nextUnused int, offsetsUnused map[uint32]struct{}) error {
	if obj.Guid != nil && *obj.Guid != wantGuid {
		return fmt.Errorf("%s entry with mismatched type %s: %w", kind, obj.Guid, ErrInvalidParameter)
	}

	idx := specificInstance
	if anyInstance {
		idx = nextUnused
	}
	if selectInstance(used, idx) {
		m.mapInstanceAndOffsetLocked(Element{Kind: kind, Index: idx}, obj.Offset)
		return nil
	}
	if !anyInstance {
		return fmt.Errorf("%s instance %d unavailable: %w", kind, specificInstance, ErrInvalidParameter)
	}
	m.logger.Debug("data format declares an element the controller lacks",
		"kind", kind.String(), "offset", obj.Offset)
	offsetsUnused[obj.Offset] = struct{}{}
	return nil
}

// selectInstance claims one element instance if the index is in bounds and
// the instance has not already been claimed by an earlier entry. Index 0 is
// as selectable as any other.
func selectInstance(used []bool, idx int) bool {
	if idx >= 0 && idx < len(used) && !used[idx] {
		used[idx] = true
		return true
	}
	return false
}

// checkAndSetOffsets verifies that width bytes starting at offset fit inside
// the packet and are not already claimed, then claims them.
func checkAndSetOffsets(offsetUsed []bool, offset, width, dataSize uint32) bool {
	// Subtraction form so an offset near the top of uint32 cannot wrap.
	if width > dataSize || offset > dataSize-width {
		return false
	}
	for i := offset; i < offset+width; i++ {
		if offsetUsed[i] {
			return false
		}
	}
	for i := offset; i < offset+width; i++ {
		offsetUsed[i] = true
	}
	return true
}

// NativeDataFormat builds the data format matching a shape's native layout
// as reported by enumeration: all axes first, then POVs, then buttons, each
// addressed by specific instance and semantic type.
func NativeDataFormat(shape *Shape) *DataFormat {
	if shape == nil {
		shape = DefaultShape
	}

	numAxes := shape.NumInstances(KindAxis)
	numButtons := shape.NumInstances(KindButton)
	numPovs := shape.NumInstances(KindPov)

	df := &DataFormat{}
	offset := uint32(0)

	// A specific instance combined with an axis guid counts within that
	// semantic type, so each entry carries the axis's ordinal among axes of
	// the same type, not its global index.
	ordinalByType := make(map[AxisType]int)
	for i := 0; i < numAxes; i++ {
		axisType := shape.AxisType(i)
		df.Objects = append(df.Objects, ObjectSpec{
			Guid:   GuidPtr(GuidForAxisType(axisType)),
			Offset: offset,
			Type:   SpecificInstance(TypeAbsAxis, ordinalByType[axisType]),
		})
		ordinalByType[axisType]++
		offset += KindAxis.Width()
	}
	for i := 0; i < numPovs; i++ {
		df.Objects = append(df.Objects, ObjectSpec{
			Guid:   GuidPtr(GuidPov),
			Offset: offset,
			Type:   SpecificInstance(TypePov, i),
		})
		offset += KindPov.Width()
	}
	for i := 0; i < numButtons; i++ {
		df.Objects = append(df.Objects, ObjectSpec{
			Guid:   GuidPtr(GuidButton),
			Offset: offset,
			Type:   SpecificInstance(TypePushButton, i),
		})
		offset += KindButton.Width()
	}

	// Round the packet up to the required multiple of 4.
	df.DataSize = (offset + 3) &^ 3
	return df
}
