package xinput

import "sync"

// Event is one buffered element-change notification. Button and POV events
// carry values already in the wire convention consumers expect (0x80/0x00
// for buttons, hundredths of a degree or PovCentered for the D-pad); stick
// and trigger events carry the raw analog value.
type Event struct {
	Element   ControllerElement
	Value     int32
	Sequence  uint32
	Timestamp uint32
}

// EventBuffer is a bounded FIFO of controller element changes.
//
// Lock and Unlock expose the buffer's mutex so a consumer can hold it
// across an entire drain: reading Count and Overflowed, then peeking or
// popping, must all happen inside one critical section or events can be
// lost or duplicated between calls. Count, Peek, Pop and Overflowed assume
// the caller holds the lock. RecordStateChanges takes the lock itself.
type EventBuffer struct {
	mu         sync.Mutex
	events     []Event
	capacity   int
	overflowed bool
	sequence   uint32
}

// DefaultEventBufferCapacity bounds how many unconsumed events are kept
// before the oldest are discarded.
const DefaultEventBufferCapacity = 64

// NewEventBuffer creates an event buffer holding up to capacity events.
// A non-positive capacity selects DefaultEventBufferCapacity.
func NewEventBuffer(capacity int) *EventBuffer {
	if capacity <= 0 {
		capacity = DefaultEventBufferCapacity
	}
	return &EventBuffer{capacity: capacity}
}

func (b *EventBuffer) Lock()   { b.mu.Lock() }
func (b *EventBuffer) Unlock() { b.mu.Unlock() }

// Count returns the number of buffered events. Caller must hold the lock.
func (b *EventBuffer) Count() int { return len(b.events) }

// Peek returns the i-th oldest event without consuming it. Caller must
// hold the lock.
func (b *EventBuffer) Peek(i int) Event { return b.events[i] }

// Pop removes and returns the oldest event. Caller must hold the lock.
// Draining the buffer empty clears the overflow indicator.
func (b *EventBuffer) Pop() Event {
	ev := b.events[0]
	b.events = b.events[1:]
	if len(b.events) == 0 {
		b.overflowed = false
	}
	return ev
}

// Overflowed reports whether events were discarded since the buffer was
// last drained empty. Caller must hold the lock.
func (b *EventBuffer) Overflowed() bool { return b.overflowed }

// append adds one event, discarding the oldest and flagging overflow when
// the buffer is full. Caller must hold the lock.
func (b *EventBuffer) append(elem ControllerElement, value int32, timestamp uint32) {
	if len(b.events) >= b.capacity {
		b.events = b.events[1:]
		b.overflowed = true
	}
	b.sequence++
	b.events = append(b.events, Event{
		Element:   elem,
		Value:     value,
		Sequence:  b.sequence,
		Timestamp: timestamp,
	})
}

// RecordStateChanges compares two gamepad states and appends one event per
// element whose value changed, in a fixed element order (analog elements
// first, then the D-pad, then digital buttons).
func (b *EventBuffer) RecordStateChanges(prev, curr Gamepad, timestamp uint32) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if prev.ThumbLX != curr.ThumbLX {
		b.append(StickLeftX, int32(curr.ThumbLX), timestamp)
	}
	if prev.ThumbLY != curr.ThumbLY {
		b.append(StickLeftY, int32(curr.ThumbLY), timestamp)
	}
	if prev.ThumbRX != curr.ThumbRX {
		b.append(StickRightX, int32(curr.ThumbRX), timestamp)
	}
	if prev.ThumbRY != curr.ThumbRY {
		b.append(StickRightY, int32(curr.ThumbRY), timestamp)
	}
	if prev.LeftTrigger != curr.LeftTrigger {
		b.append(TriggerLT, int32(curr.LeftTrigger), timestamp)
	}
	if prev.RightTrigger != curr.RightTrigger {
		b.append(TriggerRT, int32(curr.RightTrigger), timestamp)
	}

	if prevPov, currPov := PovFromButtons(prev.Buttons), PovFromButtons(curr.Buttons); prevPov != currPov {
		b.append(Dpad, currPov, timestamp)
	}

	for elem := ButtonA; elem <= ButtonRightStick; elem++ {
		mask := digitalButtonMasks[elem]
		if prev.Buttons&mask == curr.Buttons&mask {
			continue
		}
		value := int32(0x00)
		if curr.Buttons&mask != 0 {
			value = 0x80
		}
		b.append(elem, value, timestamp)
	}
}
