package controller

import (
	"errors"
	"fmt"
	"io"
	"os"

	"iot-simulator/device"
	"iot-simulator/log"

	"golang.org/x/exp/slices"
)

const (
	dashboardHeader = "===== SISTEMA IoT – PAINEL DE STATUS ====="
	dashboardFooter = "============================================"

	indicatorOn  = "[###]"
	indicatorOff = "[   ]"

	invalidIDMessage = "ID inválido! Tente novamente."
)

// Entry is one row of the registry table given to New.
type Entry struct {
	ID   string
	Name string
}

// DeviceState is a read-only copy of one registered device.
type DeviceState struct {
	ID   string
	Name string
	On   bool
}

// ToggleResult reports what ToggleDevice did.
// Found is false when the identifier is not registered; nothing changed in that case.
type ToggleResult struct {
	ID    string
	Name  string
	Found bool
	On    bool
}

var ErrEmptyRegistry = errors.New("registry has no devices")

type DuplicateIDError struct {
	ID string
}

func (e DuplicateIDError) Error() string {
	return fmt.Sprintf("duplicate device id %q", e.ID)
}

type InvalidEntryError struct {
	Index int
	Entry Entry
}

func (e InvalidEntryError) Error() string {
	return fmt.Sprintf("device entry %d (id=%q, name=%q): id and name must not be empty", e.Index, e.Entry.ID, e.Entry.Name)
}

// Controller owns a fixed set of devices keyed by identifier.
type Controller struct {
	out     io.Writer
	ids     []string // registry order
	devices map[string]*device.Device
}

// New builds the registry from entries. The set of devices cannot change afterwards.
func New(entries []Entry, out io.Writer) (*Controller, error) {
	if len(entries) == 0 {
		return nil, ErrEmptyRegistry
	}
	if out == nil {
		out = os.Stdout
	}

	c := &Controller{
		out:     out,
		ids:     make([]string, 0, len(entries)),
		devices: make(map[string]*device.Device, len(entries)),
	}
	for i, e := range entries {
		if e.ID == "" || e.Name == "" {
			return nil, InvalidEntryError{Index: i, Entry: e}
		}
		if _, exists := c.devices[e.ID]; exists {
			return nil, DuplicateIDError{ID: e.ID}
		}
		c.ids = append(c.ids, e.ID)
		c.devices[e.ID] = device.New(e.Name)
	}
	return c, nil
}

// Lookup returns a copy of the state of the device registered under id.
func (c *Controller) Lookup(id string) (DeviceState, bool) {
	d, ok := c.devices[id]
	if !ok {
		return DeviceState{}, false
	}
	return stateOf(id, d), true
}

func stateOf(id string, d *device.Device) DeviceState {
	return DeviceState{ID: id, Name: d.Name(), On: d.IsOn()}
}

func (c *Controller) IDs() []string {
	return slices.Clone(c.ids)
}

func (c *Controller) Snapshot() []DeviceState {
	states := make([]DeviceState, 0, len(c.ids))
	for _, id := range c.ids {
		states = append(states, stateOf(id, c.devices[id]))
	}
	return states
}

func indicator(d *device.Device) string {
	if d.IsOn() {
		return indicatorOn
	}
	return indicatorOff
}

// ShowDashboard writes one line per device, in registry order.
func (c *Controller) ShowDashboard() {
	fmt.Fprintf(c.out, "\n%s\n", dashboardHeader)
	for _, id := range c.ids {
		d := c.devices[id]
		fmt.Fprintf(c.out, "%s - %-20s | %s %s\n", id, d.Name(), indicator(d), d.Status())
	}
	fmt.Fprintf(c.out, "%s\n\n", dashboardFooter)

	log.GetLogger().Debug().Int("devices", len(c.ids)).Msg("dashboard shown")
}

// ToggleDevice flips the device registered under id and reports the new state.
// An unknown id is reported and leaves every device untouched.
func (c *Controller) ToggleDevice(id string) ToggleResult {
	d, ok := c.devices[id]
	if !ok {
		fmt.Fprintln(c.out, invalidIDMessage)
		log.GetLogger().Warn().Str("id", id).Msg("toggle requested for unknown device")
		return ToggleResult{ID: id}
	}

	if d.IsOn() {
		d.TurnOff()
	} else {
		d.TurnOn()
	}
	fmt.Fprintf(c.out, "%s foi %s.\n", d.Name(), d.Status())

	log.GetLogger().Info().
		Str("id", id).
		Str("name", d.Name()).
		Bool("on", d.IsOn()).
		Msg("device toggled")

	return ToggleResult{ID: id, Name: d.Name(), Found: true, On: d.IsOn()}
}
