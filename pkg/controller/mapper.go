package controller

import (
	"log/slog"
	"sync"

	"github.com/hamzahamidi/Xidi/pkg/xinput"
)

// Default and legal bounds of the per-axis calibration properties.
// Deadzone and saturation are expressed in ten-thousandths of the axis
// half-range.
const (
	DefaultAxisRangeMin int32 = -32768
	DefaultAxisRangeMax int32 = 32767

	AxisDeadzoneMin       uint32 = 0
	AxisDeadzoneMax       uint32 = 10000
	AxisSaturationMin     uint32 = 0
	AxisSaturationMax     uint32 = 10000
	DefaultAxisDeadzone   uint32 = 0
	DefaultAxisSaturation uint32 = 10000

	calibrationScale = 10000
)

// axisProperties holds the calibration state of one axis. The raw cutoffs
// and the range neutral are derived values, recomputed whenever a property
// is written, so the per-value transform is pure integer comparisons and one
// linear rescale.
type axisProperties struct {
	rangeMin   int32
	rangeMax   int32
	deadzone   uint32
	saturation uint32

	rangeNeutral          int32
	deadzoneRawPositive   int32
	deadzoneRawNegative   int32
	saturationRawPositive int32
	saturationRawNegative int32
}

// recompute refreshes the derived calibration values from the configured
// range, deadzone and saturation.
func (p *axisProperties) recompute() {
	p.rangeNeutral = (p.rangeMin + p.rangeMax) / 2
	p.deadzoneRawPositive = int32(int64(xinput.StickRangeMax) * int64(p.deadzone) / calibrationScale)
	p.deadzoneRawNegative = int32(int64(xinput.StickRangeMin) * int64(p.deadzone) / calibrationScale)
	p.saturationRawPositive = int32(int64(xinput.StickRangeMax) * int64(p.saturation) / calibrationScale)
	p.saturationRawNegative = int32(int64(xinput.StickRangeMin) * int64(p.saturation) / calibrationScale)
}

// Mapper binds one controller shape to one application data format and
// translates XInput state through both. All exported methods are safe for
// concurrent use; a single mutex guards the offset correspondence, the
// calibration array and the cached trigger values.
type Mapper struct {
	shape  *Shape
	logger *slog.Logger

	mu sync.Mutex

	// Lazily allocated on first property access, sized to the shape's
	// axis count. Survives data format resets.
	axisProps []axisProperties

	// Bidirectional instance/offset correspondence, only ever mutated
	// together. Empty and invalid until a format negotiation succeeds.
	instanceToOffset map[Element]uint32
	offsetToInstance map[uint32]Element

	// Offsets the application declared but no element could serve; they
	// still receive a neutral value on every state refresh.
	axisOffsetsUnused   map[uint32]struct{}
	buttonOffsetsUnused map[uint32]struct{}
	povOffsetsUnused    map[uint32]struct{}

	formatSet  bool
	packetSize uint32

	// Last seen raw trigger values, needed to recompute a shared trigger
	// axis when only one trigger reports a buffered change.
	cachedLT int32
	cachedRT int32
}

// NewMapper creates a mapper for the given shape. A nil shape selects
// DefaultShape; a nil logger selects slog.Default().
func NewMapper(shape *Shape, logger *slog.Logger) *Mapper {
	if shape == nil {
		shape = DefaultShape
	}
	if logger == nil {
		logger = slog.Default()
	}
	m := &Mapper{
		shape:    shape,
		logger:   logger,
		cachedLT: xinput.TriggerNeutral,
		cachedRT: xinput.TriggerNeutral,
	}
	m.resetDataFormatLocked()
	return m
}

// Shape returns the controller shape the mapper was built with.
func (m *Mapper) Shape() *Shape { return m.shape }

// IsDataFormatSet reports whether a data format negotiation has succeeded
// since construction or the last failed negotiation.
func (m *Mapper) IsDataFormatSet() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.formatSet
}

// PacketSize returns the negotiated application data packet size, or 0 when
// no format is set.
func (m *Mapper) PacketSize() uint32 {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.formatSet {
		return 0
	}
	return m.packetSize
}

// OffsetForInstance returns the negotiated offset of an element, or -1 when
// the element is unmapped or no format is set.
func (m *Mapper) OffsetForInstance(e Element) int32 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.offsetForInstanceLocked(e)
}

func (m *Mapper) offsetForInstanceLocked(e Element) int32 {
	if !m.formatSet {
		return -1
	}
	offset, ok := m.instanceToOffset[e]
	if !ok {
		return -1
	}
	return int32(offset)
}

// InstanceForOffset returns the element mapped at a negotiated offset.
func (m *Mapper) InstanceForOffset(offset uint32) (Element, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.instanceForOffsetLocked(offset)
}

func (m *Mapper) instanceForOffsetLocked(offset uint32) (Element, bool) {
	if !m.formatSet {
		return Element{}, false
	}
	e, ok := m.offsetToInstance[offset]
	return e, ok
}

func (m *Mapper) resetDataFormatLocked() {
	m.instanceToOffset = make(map[Element]uint32)
	m.offsetToInstance = make(map[uint32]Element)
	m.axisOffsetsUnused = make(map[uint32]struct{})
	m.buttonOffsetsUnused = make(map[uint32]struct{})
	m.povOffsetsUnused = make(map[uint32]struct{})
	m.formatSet = false
}

func (m *Mapper) mapInstanceAndOffsetLocked(e Element, offset uint32) {
	m.logger.Debug("mapping instance to data format offset",
		"kind", e.Kind.String(), "index", e.Index, "offset", offset)
	m.instanceToOffset[e] = offset
	m.offsetToInstance[offset] = e
}

// ensureAxisPropertiesLocked allocates the calibration array on first use.
func (m *Mapper) ensureAxisPropertiesLocked() {
	if m.axisProps != nil {
		return
	}
	m.axisProps = make([]axisProperties, m.shape.NumInstances(KindAxis))
	for i := range m.axisProps {
		m.axisProps[i] = axisProperties{
			rangeMin:   DefaultAxisRangeMin,
			rangeMax:   DefaultAxisRangeMax,
			deadzone:   DefaultAxisDeadzone,
			saturation: DefaultAxisSaturation,
		}
		m.axisProps[i].recompute()
	}
}

// mapValueInRangeToRange linearly rescales a value from one range onto
// another.
func mapValueInRangeToRange(value, oldMin, oldMax, newMin, newMax int32) int32 {
	num := int64(value-oldMin) * int64(newMax-newMin)
	return newMin + int32(num/int64(oldMax-oldMin))
}

// invertAxisValue flips a value around the center of its range.
func invertAxisValue(value, rangeMin, rangeMax int32) int32 {
	center := (rangeMin + rangeMax) / 2
	return center + (center - value)
}

// transformAxisValueLocked maps a raw analog value, in the stick domain
// [-32768, 32767], into the axis's configured range. Each half of the
// domain is handled independently: values inside the deadzone cutoff snap
// to the range neutral, values at or beyond the saturation cutoff clamp to
// the range extreme, and the span between the two cutoffs rescales linearly.
// With default calibration the transform is the identity onto the default
// range.
func (m *Mapper) transformAxisValueLocked(axisIndex int, raw int32) int32 {
	props := &m.axisProps[axisIndex]

	if raw > 0 {
		if raw <= props.deadzoneRawPositive {
			return props.rangeNeutral
		}
		if raw >= props.saturationRawPositive {
			return props.rangeMax
		}
		return mapValueInRangeToRange(raw, props.deadzoneRawPositive, props.saturationRawPositive, props.rangeNeutral, props.rangeMax)
	}

	if raw >= props.deadzoneRawNegative {
		return props.rangeNeutral
	}
	if raw <= props.saturationRawNegative {
		return props.rangeMin
	}
	return mapValueInRangeToRange(raw, props.deadzoneRawNegative, props.saturationRawNegative, props.rangeNeutral, props.rangeMin)
}
