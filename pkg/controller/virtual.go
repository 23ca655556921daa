package controller

import (
	"log/slog"
	"sync"
	"time"

	"github.com/hamzahamidi/Xidi/pkg/xinput"
)

// VirtualController owns the cached state of one controller: it polls an
// XInput device, detects meaningful state changes, records them into an
// event buffer, and exposes the state through its mapper in the negotiated
// application layout.
type VirtualController struct {
	device xinput.Device
	mapper *Mapper
	events *xinput.EventBuffer
	logger *slog.Logger

	// Timestamps on buffered events, injectable for tests.
	now   func() time.Time
	epoch time.Time

	mu        sync.Mutex
	state     xinput.State
	errorCode uint32
}

// NewVirtualController wires a device to a mapper. A nil mapper gets a
// default-shape mapper; a nil logger selects slog.Default(). The controller
// starts disconnected until the first Refresh.
func NewVirtualController(device xinput.Device, mapper *Mapper, logger *slog.Logger) *VirtualController {
	if logger == nil {
		logger = slog.Default()
	}
	if mapper == nil {
		mapper = NewMapper(nil, logger)
	}
	return &VirtualController{
		device:    device,
		mapper:    mapper,
		events:    xinput.NewEventBuffer(0),
		logger:    logger,
		now:       time.Now,
		epoch:     time.Now(),
		errorCode: xinput.StatusNotConnected,
	}
}

// Mapper returns the mapper bound to this controller.
func (c *VirtualController) Mapper() *Mapper { return c.mapper }

func (c *VirtualController) timestamp() uint32 {
	return uint32(c.now().Sub(c.epoch) / time.Millisecond)
}

// Refresh polls the device and merges the result into the cached state,
// reporting whether the state meaningfully changed. A failed poll
// substitutes neutral state so a disconnected controller reads as released
// rather than frozen. Only a transition across the connected/disconnected
// boundary or a new packet number counts as a change; two distinct failure
// codes in a row are the same disconnected state. Element change events are
// recorded for each change.
func (c *VirtualController) Refresh() bool {
	// Poll outside the lock; the XInput runtime call can block.
	state, status := c.device.GetState()
	if status != xinput.StatusSuccess {
		state = xinput.State{}
	}

	ts := c.timestamp()

	c.mu.Lock()
	defer c.mu.Unlock()

	connectivityChanged := (status == xinput.StatusSuccess) != (c.errorCode == xinput.StatusSuccess)
	packetChanged := status == xinput.StatusSuccess && state.PacketNumber != c.state.PacketNumber

	if !connectivityChanged && !packetChanged {
		// Still report the most recent failure code even when it is not a
		// state change.
		c.errorCode = status
		return false
	}

	if connectivityChanged {
		c.logger.Debug("controller connectivity changed", "from", c.errorCode, "to", status)
	}

	c.events.RecordStateChanges(c.state.Gamepad, state.Gamepad, ts)
	c.state = state
	c.errorCode = status
	return true
}

// State returns the cached controller state and the status code of the poll
// that produced it.
func (c *VirtualController) State() (xinput.State, uint32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state, c.errorCode
}

// WriteState renders the cached state into buf in the negotiated
// application data format.
func (c *VirtualController) WriteState(buf []byte) error {
	c.mu.Lock()
	gamepad := c.state.Gamepad
	c.mu.Unlock()
	return c.mapper.WriteControllerState(gamepad, buf)
}

// BufferedEvents drains up to maxEvents translated change events into out.
// See Mapper.WriteBufferedEvents for the exact semantics of out, maxEvents
// and peek.
func (c *VirtualController) BufferedEvents(out []EventData, maxEvents int, peek bool) (int, bool, error) {
	return c.mapper.WriteBufferedEvents(c.events, out, maxEvents, peek)
}
