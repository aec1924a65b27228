package i2cbus

import (
	"github.com/pkg/errors"
	"periph.io/x/conn/v3/i2c"
	"periph.io/x/conn/v3/i2c/i2creg"
	"periph.io/x/conn/v3/physic"

	"github.com/aluedtke7/krux_display/display"
)

// DefaultSpeed is the bus clock used by OpenPeriph.
const DefaultSpeed = 400 * physic.KiloHertz

// Periph writes registers through a periph.io I²C bus.
type Periph struct {
	b i2c.Bus
}

var _ display.Bus = (*Periph)(nil)

// NewPeriph wraps an already opened bus.
func NewPeriph(b i2c.Bus) *Periph {
	return &Periph{b: b}
}

// OpenPeriph opens the named bus ("" for the first one) and sets its clock.
// A zero speed selects DefaultSpeed. The returned closer releases the bus.
func OpenPeriph(name string, speed physic.Frequency) (*Periph, i2c.BusCloser, error) {
	b, err := i2creg.Open(name)
	if err != nil {
		return nil, nil, errors.Wrapf(err, "i2cbus: failed to open bus %q", name)
	}
	if speed == 0 {
		speed = DefaultSpeed
	}
	if err := b.SetSpeed(speed); err != nil {
		lg.Warnf("Bus %s: can't set speed to %s: %v", b, speed, err)
	}
	return NewPeriph(b), b, nil
}

// WriteRegister writes value to register reg of device dev.
func (p *Periph) WriteRegister(dev uint16, reg, value byte) error {
	d := i2c.Dev{Bus: p.b, Addr: dev}
	if err := d.Tx([]byte{reg, value}, nil); err != nil {
		return errors.Wrapf(err, "i2cbus: write 0x%02X/0x%02X", dev, reg)
	}
	return nil
}

func (p *Periph) String() string {
	return p.b.String()
}
