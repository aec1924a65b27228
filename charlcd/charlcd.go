// Package charlcd is a text only display.Graphics backend for a 20x4
// HD44780 character LCD on an I²C backpack.
//
// Pixel coordinates are mapped to character cells of CellWidth x CellHeight
// pixels, so the layouts of the display package land on the nearest cell.
// QR codes can't be shown.
package charlcd

import (
	"sync"
	"time"

	device "github.com/d2r2/go-hd44780"
	"github.com/d2r2/go-i2c"
	d2r2log "github.com/d2r2/go-logger"
	"github.com/pkg/errors"

	"github.com/aluedtke7/krux_display/display"
)

const (
	numChars   = 20
	numLines   = 4
	CellWidth  = 7
	CellHeight = 14
	i2cAddress = 0x27
)

const (
	cmdClear = iota
	cmdBacklightOn
	cmdBacklightOff
	cmdPrint
)

var lg = d2r2log.NewPackageLogger("charlcd", d2r2log.InfoLevel)

var (
	// ErrNotSupported is returned for primitives a character LCD can't draw.
	ErrNotSupported = errors.New("charlcd: not supported")
	ErrClosed       = errors.New("charlcd: closed")
)

// textDevice is the part of the HD44780 driver used here.
type textDevice interface {
	Clear() error
	BacklightOn() error
	BacklightOff() error
	SetPosition(line, pos int) error
	Write(buf []byte) (int, error)
}

type command struct {
	cmd  int
	row  int
	col  int
	text string
	errc chan error
}

// Lcd implements display.Graphics on a character LCD. All device access is
// serialized through one handler goroutine.
type Lcd struct {
	i2cbus     *i2c.I2C
	dev        textDevice
	cmdChan    chan command
	reconnect  func() error
	bus        int
	initDelay  int
	retryCount int
	rot        int

	mu     sync.Mutex
	closed bool
}

var _ display.Graphics = (*Lcd)(nil)

/*
*
Opens the LCD on /dev/i2c-<bus> and waits initDelay seconds for it to settle
*/
func New(bus int, initDelay int) (*Lcd, error) {
	lg.Debug("LCD initializing...")
	_ = d2r2log.ChangePackageLogLevel("i2c", d2r2log.WarnLevel)
	l := &Lcd{bus: bus, initDelay: initDelay}
	l.reconnect = l.retryDevice
	if err := l.open(); err != nil {
		lg.Error(err.Error())
		return nil, err
	}
	l.start()
	return l, nil
}

func newWithDevice(dev textDevice, reconnect func() error) *Lcd {
	l := &Lcd{dev: dev, reconnect: reconnect}
	l.start()
	return l
}

func (l *Lcd) start() {
	l.cmdChan = make(chan command)
	go l.commandHandler()
}

func (l *Lcd) open() error {
	var err error
	l.i2cbus, err = i2c.NewI2C(i2cAddress, l.bus)
	if err != nil {
		return errors.Wrap(err, "charlcd: open i2c")
	}
	time.Sleep(3 * time.Second)

	dev, err := device.NewLcd(l.i2cbus, device.LCD_20x4)
	if err != nil {
		_ = l.i2cbus.Close()
		l.i2cbus = nil
		return errors.Wrap(err, "charlcd: init lcd")
	}
	l.dev = dev
	time.Sleep(time.Duration(l.initDelay) * time.Second)
	return nil
}

func (l *Lcd) printAt(row, col int, text string) error {
	if err := l.dev.SetPosition(row, col); err != nil {
		return err
	}
	_, err := l.dev.Write([]byte(text))
	return err
}

func (l *Lcd) commandHandler() {
	for c := range l.cmdChan {
		var err error
		switch c.cmd {
		case cmdClear:
			err = l.dev.Clear()
		case cmdBacklightOn:
			err = l.dev.BacklightOn()
		case cmdBacklightOff:
			err = l.dev.BacklightOff()
		case cmdPrint:
			err = l.printAt(c.row, c.col, c.text)
		}
		if err != nil {
			lg.Error(err.Error())
			if rerr := l.reconnect(); rerr != nil {
				lg.Error(rerr.Error())
			}
		}
		c.errc <- errors.Wrap(err, "charlcd")
	}
}

func (l *Lcd) send(c command) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.closed {
		return ErrClosed
	}
	c.errc = make(chan error, 1)
	l.cmdChan <- c
	return <-c.errc
}

func (l *Lcd) retryDevice() error {
	lg.Info("Start of retryDevice(): ", l.retryCount)
	if l.i2cbus != nil {
		_ = l.i2cbus.Close()
		l.i2cbus = nil
	}
	l.retryCount++
	if err := l.open(); err != nil {
		return err
	}
	if err := l.dev.Clear(); err != nil {
		return err
	}
	lg.Infof("End of retryDevice(): %d", l.retryCount)
	return l.dev.BacklightOn()
}

// Init clears the screen and turns the backlight on. The kind is ignored.
func (l *Lcd) Init(kind int) error {
	if err := l.Clear(); err != nil {
		return err
	}
	return l.Backlight(true)
}

// Register has no counterpart on a HD44780; the write is dropped.
func (l *Lcd) Register(addr byte, p display.Payload) error {
	lg.Debugf("Ignoring register 0x%02X (% X)", addr, p.Bytes())
	return nil
}

func (l *Lcd) Clear() error {
	return l.send(command{cmd: cmdClear})
}

// Rotation only records the code, the LCD can't rotate.
func (l *Lcd) Rotation(code int) error {
	l.rot = code
	return nil
}

// Width and Height describe the 20x4 cell grid in pixels. At rotation 0 they
// are transposed, display.Display swaps them back.
func (l *Lcd) Width() int {
	if l.rot == 0 {
		return numLines * CellHeight
	}
	return numChars * CellWidth
}

func (l *Lcd) Height() int {
	if l.rot == 0 {
		return numChars * CellWidth
	}
	return numLines * CellHeight
}

// DrawString prints text in the cell containing (x, y). Text beyond the end
// of the row is cut off, rows outside the display are skipped. Colors are
// ignored.
func (l *Lcd) DrawString(x, y int, text string, fg, bg display.Color) error {
	row, col, ok := cell(x, y)
	if !ok {
		lg.Error("LCD display cell is out of bounds: ", x, y)
		return nil
	}
	text = fit(text, col)
	if text == "" {
		return nil
	}
	return l.send(command{cmd: cmdPrint, row: row, col: col, text: text})
}

func (l *Lcd) DrawQRCode(y int, code string, panelWidth int) error {
	return ErrNotSupported
}

func (l *Lcd) Backlight(on bool) error {
	if on {
		return l.send(command{cmd: cmdBacklightOn})
	}
	return l.send(command{cmd: cmdBacklightOff})
}

// Close stops the handler and releases the bus. Drawing afterwards returns
// ErrClosed.
func (l *Lcd) Close() {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.closed {
		return
	}
	l.closed = true
	close(l.cmdChan)
	if l.i2cbus != nil {
		_ = l.i2cbus.Close()
		l.i2cbus = nil
	}
}

// cell maps a pixel position to a character cell.
func cell(x, y int) (row, col int, ok bool) {
	if x < 0 || y < 0 {
		return 0, 0, false
	}
	row, col = y/CellHeight, x/CellWidth
	return row, col, row < numLines && col < numChars
}

// fit cuts text to what fits between col and the end of the row. The LCD
// character ROM is ASCII, other runes become '?'.
func fit(text string, col int) string {
	b := make([]byte, 0, numChars)
	for _, r := range text {
		if col+len(b) >= numChars {
			break
		}
		if r > 0x7E {
			r = '?'
		}
		b = append(b, byte(r))
	}
	return string(b)
}
