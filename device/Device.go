package device

const (
	StatusOn  = "LIGADO"
	StatusOff = "DESLIGADO"
)

// Device is a simulated appliance with a fixed display name and an on/off flag.
type Device struct {
	name string
	on   bool
}

// New returns a device that starts switched off.
func New(name string) *Device {
	return &Device{name: name}
}

func (d *Device) Name() string {
	return d.name
}

func (d *Device) IsOn() bool {
	return d.on
}

func (d *Device) TurnOn() {
	d.on = true
}

func (d *Device) TurnOff() {
	d.on = false
}

// Status returns the label shown on the dashboard for the current state.
func (d *Device) Status() string {
	if d.on {
		return StatusOn
	}
	return StatusOff
}
