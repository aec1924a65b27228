// Package st7789 draws on a ST7789 TFT controller over SPI.
//
// Dev implements display.Graphics: it keeps a RGB565 frame buffer in the
// current rotation, renders text with golang.org/x/image/font and pushes the
// changed rectangle to the controller after every primitive.
package st7789

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"strings"
	"time"

	d2r2log "github.com/d2r2/go-logger"
	"github.com/pkg/errors"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
	"periph.io/x/conn/v3"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/conn/v3/spi"

	"github.com/aluedtke7/krux_display/display"
)

const (
	cmdSWRESET = 0x01
	cmdSLPOUT  = 0x11
	cmdINVON   = 0x21
	cmdDISPOFF = 0x28
	cmdDISPON  = 0x29
	cmdCASET   = 0x2A
	cmdRASET   = 0x2B
	cmdRAMWR   = 0x2C
	cmdMADCTL  = 0x36

	maxTxSize = 4096
)

// MADCTL per rotation code.
var madctl = [4]byte{0x00, 0x60, 0xC0, 0xA0}

var lg = d2r2log.NewPackageLogger("st7789", d2r2log.InfoLevel)

// Opts is the configuration for the ST7789 panel.
type Opts struct {
	W int // native width (default 240)
	H int // native height (default 320)

	RST gpio.PinIO // optional hardware reset pin
}

// Dev is a handle to a ST7789 panel.
type Dev struct {
	c   conn.Conn
	dc  gpio.PinOut
	rst gpio.PinIO

	w, h int // native
	rot  int
	fb   *image.RGBA
	face font.Face

	halted bool
}

var _ display.Graphics = (*Dev)(nil)

// NewSPI connects to the panel on p. The controller is not programmed until
// Init is called.
func NewSPI(p spi.Port, dc gpio.PinOut, opts *Opts) (*Dev, error) {
	if opts == nil {
		opts = &Opts{W: 240, H: 320}
	}
	if opts.W <= 0 || opts.W > 320 || opts.H <= 0 || opts.H > 320 {
		return nil, errors.New("st7789: width and height must be between 1 and 320")
	}
	c, err := p.Connect(40*physic.MegaHertz, spi.Mode0, 8)
	if err != nil {
		return nil, errors.Wrap(err, "st7789")
	}
	return newDev(c, dc, opts), nil
}

func newDev(c conn.Conn, dc gpio.PinOut, opts *Opts) *Dev {
	return &Dev{
		c:    c,
		dc:   dc,
		rst:  opts.RST,
		w:    opts.W,
		h:    opts.H,
		fb:   image.NewRGBA(image.Rect(0, 0, opts.W, opts.H)),
		face: basicfont.Face7x13,
	}
}

// Init resets the controller, wakes it up and turns the display on. The
// panel specific registers are written afterwards with Register.
func (d *Dev) Init(kind int) error {
	lg.Debugf("Init panel type %d", kind)
	if d.rst != nil {
		if err := d.rst.Out(gpio.Low); err != nil {
			return errors.Wrap(err, "st7789: failed to pull RST low")
		}
		time.Sleep(100 * time.Millisecond)
		if err := d.rst.Out(gpio.High); err != nil {
			return errors.Wrap(err, "st7789: failed to pull RST high")
		}
		time.Sleep(100 * time.Millisecond)
	}
	d.halted = false

	if err := d.command(cmdSWRESET, nil); err != nil {
		return err
	}
	time.Sleep(150 * time.Millisecond)
	if err := d.command(cmdSLPOUT, nil); err != nil {
		return err
	}
	time.Sleep(10 * time.Millisecond)
	if err := d.command(cmdINVON, nil); err != nil {
		return err
	}
	if err := d.Rotation(0); err != nil {
		return err
	}
	if err := d.command(cmdDISPON, nil); err != nil {
		return err
	}
	return d.Clear()
}

// Register writes p to the controller register addr.
func (d *Dev) Register(addr byte, p display.Payload) error {
	if d.halted {
		return errors.New("st7789: halted")
	}
	return d.command(addr, p.Bytes())
}

// Clear fills the screen black.
func (d *Dev) Clear() error {
	draw.Draw(d.fb, d.fb.Rect, image.NewUniform(color.Black), image.Point{}, draw.Src)
	return d.flush(d.fb.Rect)
}

// Rotation sets the scan direction: 0 is the native orientation, every step
// turns by 90°. Odd codes swap width and height.
func (d *Dev) Rotation(code int) error {
	if code < 0 || code >= len(madctl) {
		return errors.Errorf("st7789: invalid rotation %d", code)
	}
	if err := d.command(cmdMADCTL, []byte{madctl[code]}); err != nil {
		return err
	}
	w, h := d.w, d.h
	if code%2 == 1 {
		w, h = h, w
	}
	if w != d.fb.Rect.Dx() {
		d.fb = image.NewRGBA(image.Rect(0, 0, w, h))
	}
	d.rot = code
	return nil
}

// Width returns the width in the current rotation. At rotation 0 the frame
// is reported transposed; display.Display swaps it back.
func (d *Dev) Width() int {
	if d.rot == 0 {
		return d.fb.Rect.Dy()
	}
	return d.fb.Rect.Dx()
}

// Height returns the height in the current rotation, transposed at rotation
// 0 like Width.
func (d *Dev) Height() int {
	if d.rot == 0 {
		return d.fb.Rect.Dx()
	}
	return d.fb.Rect.Dy()
}

// DrawString draws text with its top left corner at (x, y) on a box of bg.
func (d *Dev) DrawString(x, y int, text string, fg, bg display.Color) error {
	m := d.face.Metrics()
	box := image.Rect(x, y, x+font.MeasureString(d.face, text).Ceil(), y+(m.Ascent+m.Descent).Ceil())
	draw.Draw(d.fb, box, image.NewUniform(bg), image.Point{}, draw.Src)
	dr := font.Drawer{
		Dst:  d.fb,
		Src:  image.NewUniform(fg),
		Face: d.face,
		Dot:  fixed.P(x, y+m.Ascent.Ceil()),
	}
	dr.DrawString(text)
	return d.flush(box)
}

// DrawQRCode draws a grid of modules ('0' is light, anything else dark)
// scaled to fit panelWidth and centred horizontally, starting at y.
func (d *Dev) DrawQRCode(y int, code string, panelWidth int) error {
	rows := strings.Split(strings.TrimSpace(code), "\n")
	n := len(rows)
	scale := panelWidth / n
	if scale < 1 {
		scale = 1
	}
	x0 := (panelWidth - scale*n) / 2
	if x0 < 0 {
		x0 = 0
	}

	light := image.NewUniform(display.White)
	dark := image.NewUniform(display.Black)
	area := image.Rectangle{}
	for i, row := range rows {
		for j, m := range []byte(strings.TrimSpace(row)) {
			r := image.Rect(x0+j*scale, y+i*scale, x0+(j+1)*scale, y+(i+1)*scale)
			src := dark
			if m == '0' {
				src = light
			}
			draw.Draw(d.fb, r, src, image.Point{}, draw.Src)
			area = area.Union(r)
		}
	}
	return d.flush(area)
}

// Halt turns the display off.
func (d *Dev) Halt() error {
	d.halted = true
	return d.command(cmdDISPOFF, nil)
}

func (d *Dev) String() string {
	return fmt.Sprintf("st7789.Dev{%dx%d}", d.fb.Rect.Dx(), d.fb.Rect.Dy())
}

// flush writes the frame buffer content of r to the controller.
func (d *Dev) flush(r image.Rectangle) error {
	if d.halted {
		return errors.New("st7789: halted")
	}
	r = r.Intersect(d.fb.Rect)
	if r.Empty() {
		return nil
	}
	x0, x1 := r.Min.X, r.Max.X-1
	y0, y1 := r.Min.Y, r.Max.Y-1
	if err := d.command(cmdCASET, []byte{byte(x0 >> 8), byte(x0), byte(x1 >> 8), byte(x1)}); err != nil {
		return err
	}
	if err := d.command(cmdRASET, []byte{byte(y0 >> 8), byte(y0), byte(y1 >> 8), byte(y1)}); err != nil {
		return err
	}

	pixels := make([]byte, 0, r.Dx()*r.Dy()*2)
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			v := toRGB565(d.fb.RGBAAt(x, y))
			pixels = append(pixels, byte(v>>8), byte(v))
		}
	}
	return d.command(cmdRAMWR, pixels)
}

// command sends cmd with DC low followed by data with DC high.
func (d *Dev) command(cmd byte, data []byte) error {
	if err := d.dc.Out(gpio.Low); err != nil {
		return errors.Wrap(err, "st7789")
	}
	if err := d.c.Tx([]byte{cmd}, nil); err != nil {
		return errors.Wrapf(err, "st7789: command 0x%02X", cmd)
	}
	if len(data) == 0 {
		return nil
	}
	if err := d.dc.Out(gpio.High); err != nil {
		return errors.Wrap(err, "st7789")
	}
	for len(data) > 0 {
		n := len(data)
		if n > maxTxSize {
			n = maxTxSize
		}
		if err := d.c.Tx(data[:n], nil); err != nil {
			return errors.Wrapf(err, "st7789: data for 0x%02X", cmd)
		}
		data = data[n:]
	}
	return nil
}

func toRGB565(c color.RGBA) uint16 {
	return uint16(c.R>>3)<<11 | uint16(c.G>>2)<<5 | uint16(c.B>>3)
}
