package controller

import (
	"fmt"

	"github.com/hamzahamidi/Xidi/pkg/xinput"
)

// EventData is one buffered change delivered to an application, addressed
// by negotiated data format offset.
type EventData struct {
	Offset    uint32
	Value     int32
	Sequence  uint32
	Timestamp uint32
}

// EventSource is the buffered-event collaborator the mapper drains. The
// mapper holds the source's lock across an entire drain so that the count,
// the overflow indicator and the events themselves form one consistent
// snapshot.
type EventSource interface {
	Lock()
	Unlock()
	Count() int
	Peek(i int) xinput.Event
	Pop() xinput.Event
	Overflowed() bool
}

// WriteBufferedEvents drains up to maxEvents translated events from src
// into out, returning how many were written and whether the source had
// overflowed. With peek set events are not consumed. A nil out consumes
// events (unless peeking) without writing any, which flushes the source.
//
// Events on elements the data format does not map are skipped without
// consuming output capacity. Overflow is reported regardless of how many
// events were written.
func (m *Mapper) WriteBufferedEvents(src EventSource, out []EventData, maxEvents int, peek bool) (int, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.ensureAxisPropertiesLocked()

	if out != nil && maxEvents > len(out) {
		maxEvents = len(out)
	}

	src.Lock()
	defer src.Unlock()

	numEvents := src.Count()
	overflowed := src.Overflowed()

	written := 0
	for i := 0; i < numEvents && written < maxEvents; i++ {
		var ev xinput.Event
		if peek {
			ev = src.Peek(i)
		} else {
			ev = src.Pop()
		}

		if out == nil {
			continue
		}

		elem, ok := m.shape.InstanceForXInput(ev.Element)
		if !ok {
			continue
		}
		offset, mapped := m.instanceToOffset[elem]
		if !mapped {
			continue
		}

		value := ev.Value

		// A trigger feeding a button needs its raw analog value turned
		// into a button value.
		isTrigger := ev.Element == xinput.TriggerLT || ev.Element == xinput.TriggerRT
		if elem.Kind == KindButton && isTrigger {
			if value > xinput.TriggerThreshold {
				value = 0x80
			} else {
				value = 0x00
			}
		}

		if elem.Kind == KindAxis {
			var err error
			value, err = m.translateAxisEventLocked(ev.Element, elem, value)
			if err != nil {
				return written, overflowed, err
			}
		}

		out[written] = EventData{
			Offset:    offset,
			Value:     value,
			Sequence:  ev.Sequence,
			Timestamp: ev.Timestamp,
		}
		written++
	}

	return written, overflowed, nil
}

// translateAxisEventLocked turns a raw analog event value into the target
// axis's calibrated output. Each source element has its own input range and
// orientation; a shared trigger axis recombines the changed trigger with
// the cached value of the other one.
func (m *Mapper) translateAxisEventLocked(source xinput.ControllerElement, elem Element, raw int32) (int32, error) {
	var value int32

	switch source {
	case xinput.StickLeftX, xinput.StickRightX:
		value = raw

	case xinput.StickLeftY, xinput.StickRightY:
		value = invertAxisValue(raw, xinput.StickRangeMin, xinput.StickRangeMax)

	case xinput.TriggerLT, xinput.TriggerRT:
		elemLT, okLT := m.shape.InstanceForXInput(xinput.TriggerLT)
		elemRT, okRT := m.shape.InstanceForXInput(xinput.TriggerRT)
		if okLT && okRT && elemLT == elemRT {
			if source == xinput.TriggerLT {
				m.cachedLT = raw
			} else {
				m.cachedRT = raw
			}
			var err error
			value, err = m.sharedTriggerAxisValue(m.cachedLT, m.cachedRT)
			if err != nil {
				return 0, err
			}
		} else {
			value = separateTriggerAxisValue(raw)
		}

	default:
		return 0, fmt.Errorf("axis fed by %s: %w", source, ErrInternal)
	}

	return m.transformAxisValueLocked(elem.Index, value), nil
}
