package display

const (
	MaxBacklight = 8
	MinBacklight = 1

	BacklightAddr uint16 = 0x34
	BacklightReg  byte   = 0x91
)

// backlightValue maps a level to the register byte, clamping it to 0-8.
func backlightValue(level int) (int, byte) {
	if level > MaxBacklight {
		level = MaxBacklight
	}
	if level < 0 {
		level = 0
	}
	return level, byte((level + 7) << 4)
}

// SetBacklight sets the backlight level (0-8). Out of range levels are
// clamped. Bus failures are returned as *BusError.
func (d *Display) SetBacklight(level int) error {
	level, val := backlightValue(level)
	if err := d.bus.WriteRegister(BacklightAddr, BacklightReg, val); err != nil {
		return &BusError{Dev: BacklightAddr, Reg: BacklightReg, Value: val, Err: err}
	}
	d.level = level
	lg.Infof("Backlight set to %d (0x%02X)", level, val)
	return nil
}

// Backlight returns the backlight level last written.
func (d *Display) Backlight() int {
	return d.level
}
