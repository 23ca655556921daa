//go:build windows

package xinput

import (
	"unsafe"

	"golang.org/x/sys/windows"
)

// Runtime DLL candidates, newest first. xinput1_4 ships with Windows 8+,
// xinput1_3 with the DirectX runtime, xinput9_1_0 with Vista/7.
var xinputDlls = []string{"xinput1_4.dll", "xinput1_3.dll", "xinput9_1_0.dll"}

var procGetState = loadGetState()

func loadGetState() *windows.LazyProc {
	for _, name := range xinputDlls {
		dll := windows.NewLazySystemDLL(name)
		if dll.Load() != nil {
			continue
		}
		proc := dll.NewProc("XInputGetState")
		if proc.Find() == nil {
			return proc
		}
	}
	return nil
}

// SystemDevice reads controller state from the XInput runtime for one user
// index (0-3).
type SystemDevice struct {
	userIndex uint32
}

// NewSystemDevice returns a Device bound to the given XInput user index.
func NewSystemDevice(userIndex uint32) *SystemDevice {
	return &SystemDevice{userIndex: userIndex}
}

// GetState calls XInputGetState. When no XInput runtime is present the
// device reports not-connected.
func (d *SystemDevice) GetState() (State, uint32) {
	var state State
	if procGetState == nil {
		return state, StatusNotConnected
	}
	status, _, _ := procGetState.Call(uintptr(d.userIndex), uintptr(unsafe.Pointer(&state)))
	if uint32(status) != StatusSuccess {
		state = State{}
	}
	return state, uint32(status)
}
