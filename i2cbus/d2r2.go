package i2cbus

import (
	"github.com/d2r2/go-i2c"
	d2r2log "github.com/d2r2/go-logger"
	"github.com/pkg/errors"

	"github.com/aluedtke7/krux_display/display"
)

var lg = d2r2log.NewPackageLogger("i2cbus", d2r2log.InfoLevel)

// D2R2 writes registers through /dev/i2c-N using github.com/d2r2/go-i2c.
// A device handle is opened on first use of an address and kept open.
type D2R2 struct {
	bus  int
	devs map[uint16]*i2c.I2C
}

var _ display.Bus = (*D2R2)(nil)

// NewD2R2 returns a bus writer for /dev/i2c-<bus>.
func NewD2R2(bus int) *D2R2 {
	return &D2R2{bus: bus, devs: make(map[uint16]*i2c.I2C)}
}

func (b *D2R2) device(dev uint16) (*i2c.I2C, error) {
	if d, ok := b.devs[dev]; ok {
		return d, nil
	}
	if dev > 0x7F {
		return nil, errors.Errorf("i2cbus: invalid address 0x%02X", dev)
	}
	d, err := i2c.NewI2C(uint8(dev), b.bus)
	if err != nil {
		return nil, errors.Wrapf(err, "i2cbus: open device 0x%02X on bus %d", dev, b.bus)
	}
	lg.Debugf("Opened device 0x%02X on bus %d", dev, b.bus)
	b.devs[dev] = d
	return d, nil
}

// WriteRegister writes value to register reg of device dev.
func (b *D2R2) WriteRegister(dev uint16, reg, value byte) error {
	d, err := b.device(dev)
	if err != nil {
		return err
	}
	if err := d.WriteRegU8(reg, value); err != nil {
		return errors.Wrapf(err, "i2cbus: write 0x%02X/0x%02X", dev, reg)
	}
	return nil
}

// Close closes every device opened so far.
func (b *D2R2) Close() error {
	var first error
	for addr, d := range b.devs {
		if err := d.Close(); err != nil && first == nil {
			first = errors.Wrapf(err, "i2cbus: close device 0x%02X", addr)
		}
		delete(b.devs, addr)
	}
	return first
}
