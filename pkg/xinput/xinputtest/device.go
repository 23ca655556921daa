// Package xinputtest provides a scripted fake xinput.Device for tests.
package xinputtest

import (
	"sync"

	"github.com/hamzahamidi/Xidi/pkg/xinput"
)

// Result is one scripted GetState response.
type Result struct {
	State  xinput.State
	Status uint32
}

// Device returns scripted results in order, repeating the last one once the
// script is exhausted. An empty script reports not-connected.
type Device struct {
	mu     sync.Mutex
	script []Result
	next   int
}

// NewDevice creates a fake device with the given script.
func NewDevice(script ...Result) *Device {
	return &Device{script: script}
}

// Push appends results to the script.
func (d *Device) Push(results ...Result) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.script = append(d.script, results...)
}

func (d *Device) GetState() (xinput.State, uint32) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if len(d.script) == 0 {
		return xinput.State{}, xinput.StatusNotConnected
	}
	r := d.script[d.next]
	if d.next < len(d.script)-1 {
		d.next++
	}
	return r.State, r.Status
}
