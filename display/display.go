// Package display drives the LCD of the device: it programs the controller
// registers, lays out wrapped and centred text, the PIN/letter pads and QR
// codes, and sets the backlight over I2C.
//
// The pixel work is done by a Graphics implementation and the backlight
// write by a Bus implementation, both injected into New.
package display

import (
	"fmt"

	"github.com/pkg/errors"
)

// Graphics is the low-level graphics primitive library the Display draws
// with.
type Graphics interface {
	Init(kind int) error
	Register(addr byte, p Payload) error
	Clear() error
	Rotation(code int) error
	Width() int
	Height() int
	DrawString(x, y int, text string, fg, bg Color) error
	DrawQRCode(y int, code string, panelWidth int) error
}

// Bus writes a single register of a device on the I2C bus.
type Bus interface {
	WriteRegister(dev uint16, reg, value byte) error
}

// Color is a RGB565 color as used by the panel.
type Color uint16

const (
	Black  Color = 0x0000
	Blue   Color = 0x001F
	Green  Color = 0x07E0
	Red    Color = 0xF800
	Orange Color = 0xFD20
	White  Color = 0xFFFF
)

// RGBA implements color.Color.
func (c Color) RGBA() (r, g, b, a uint32) {
	r5 := uint32(c>>11) & 0x1F
	g6 := uint32(c>>5) & 0x3F
	b5 := uint32(c) & 0x1F
	r = (r5<<3 | r5>>2) * 0x101
	g = (g6<<2 | g6>>4) * 0x101
	b = (b5<<3 | b5>>2) * 0x101
	return r, g, b, 0xFFFF
}

// ErrNoColumns is returned when the usable screen width is too small to wrap
// text into.
var ErrNoColumns = errors.New("display: no room for text columns")

// BusError is returned when a backlight write fails on the bus.
type BusError struct {
	Dev   uint16
	Reg   byte
	Value byte
	Err   error
}

func (e *BusError) Error() string {
	return fmt.Sprintf("display: bus write 0x%02X to device 0x%02X register 0x%02X: %v", e.Value, e.Dev, e.Reg, e.Err)
}

func (e *BusError) Unwrap() error {
	return e.Err
}
