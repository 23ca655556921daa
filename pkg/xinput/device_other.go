//go:build !windows

package xinput

// SystemDevice is a stub on platforms without an XInput runtime; it always
// reports not-connected.
type SystemDevice struct {
	userIndex uint32
}

// NewSystemDevice returns a Device bound to the given XInput user index.
func NewSystemDevice(userIndex uint32) *SystemDevice {
	return &SystemDevice{userIndex: userIndex}
}

func (d *SystemDevice) GetState() (State, uint32) {
	return State{}, StatusNotConnected
}
