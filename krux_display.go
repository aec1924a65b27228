package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"os/user"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/antigloss/go/logger"
	d2r2log "github.com/d2r2/go-logger"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpioreg"
	"periph.io/x/conn/v3/spi/spireg"
	"periph.io/x/host/v3"

	"github.com/aluedtke7/krux_display/charlcd"
	"github.com/aluedtke7/krux_display/display"
	"github.com/aluedtke7/krux_display/i2cbus"
	"github.com/aluedtke7/krux_display/qrcode"
	"github.com/aluedtke7/krux_display/st7789"
)

var (
	backendPtr   *string
	spiPtr       *string
	dcPtr        *string
	rstPtr       *string
	widthPtr     *int
	heightPtr    *int
	i2cPtr       *string
	i2cDriverPtr *string
	i2cBusPtr    *int
	lcdDelayPtr  *int
	fontSizePtr  *int
	backlightPtr *int
	flashPtr     *int
	textPtr      *string
	qrPtr        *string
	pinPtr       *string
	homePath     string
	closers      []io.Closer
	lg           = d2r2log.NewPackageLogger("main", d2r2log.InfoLevel)
)

// helper for error checking
func check(err error) {
	if err != nil {
		lg.Error(errors.Unwrap(fmt.Errorf("wrapped error: %w", err)).Error())
	}
}

func getHomeDir() string {
	usr, err := user.Current()
	if err != nil {
		return "~/"
	}
	return usr.HomeDir
}

func clamp(v *int, min, max int) {
	if *v < min {
		*v = min
	}
	if *v > max {
		*v = max
	}
}

// digitsOnly drops every rune of s that isn't 0-9.
func digitsOnly(s string) string {
	return strings.Map(func(r rune) rune {
		if r < '0' || r > '9' {
			return -1
		}
		return r
	}, s)
}

type closerFunc func() error

func (f closerFunc) Close() error { return f() }

// openGraphics returns the panel selected with -backend.
func openGraphics() (display.Graphics, error) {
	switch *backendPtr {
	case "st7789":
		port, err := spireg.Open(*spiPtr)
		if err != nil {
			return nil, err
		}
		closers = append(closers, port)
		dc := gpioreg.ByName(*dcPtr)
		if dc == nil {
			return nil, fmt.Errorf("failed to find DC pin %s", *dcPtr)
		}
		var rst gpio.PinIO
		if *rstPtr != "" {
			if rst = gpioreg.ByName(*rstPtr); rst == nil {
				return nil, fmt.Errorf("failed to find RST pin %s", *rstPtr)
			}
		}
		dev, err := st7789.NewSPI(port, dc, &st7789.Opts{W: *widthPtr, H: *heightPtr, RST: rst})
		if err != nil {
			return nil, err
		}
		closers = append(closers, closerFunc(dev.Halt))
		return dev, nil
	case "charlcd":
		l, err := charlcd.New(*i2cBusPtr, *lcdDelayPtr)
		if err != nil {
			return nil, err
		}
		closers = append(closers, closerFunc(func() error {
			l.Close()
			return nil
		}))
		return l, nil
	}
	return nil, fmt.Errorf("unknown backend %q", *backendPtr)
}

// openBus returns the backlight bus selected with -i2cDriver.
func openBus() (display.Bus, error) {
	switch *i2cDriverPtr {
	case "periph":
		b, c, err := i2cbus.OpenPeriph(*i2cPtr, 0)
		if err != nil {
			return nil, err
		}
		closers = append(closers, c)
		logger.Infof("Backlight bus: %s", b)
		return b, nil
	case "d2r2":
		b := i2cbus.NewD2R2(*i2cBusPtr)
		closers = append(closers, b)
		return b, nil
	}
	return nil, fmt.Errorf("unknown i2c driver %q", *i2cDriverPtr)
}

func closeAll() {
	for i := len(closers) - 1; i >= 0; i-- {
		check(closers[i].Close())
	}
}

// runDemo shows every screen the display package offers.
func runDemo(d *display.Display) {
	check(d.FlashText(*textPtr, display.White, time.Duration(*flashPtr)*time.Millisecond))

	entered := ""
	for i, r := range *pinPtr {
		check(d.Clear())
		check(d.DrawNumpad(int(r-'0'), entered, true, display.DefaultPadding, display.White))
		entered += string(r)
		lg.Debugf("PIN digit %d entered", i)
		time.Sleep(500 * time.Millisecond)
	}
	check(d.Clear())
	check(d.DrawNumpad(11, entered, true, display.DefaultPadding, display.Green))
	time.Sleep(time.Second)

	check(d.Clear())
	check(d.DrawKeypad(0, "krux", false, display.DefaultPadding, display.Orange))
	time.Sleep(time.Second)

	if *qrPtr != "" {
		code, err := qrcode.Encode(*qrPtr, qrcode.Medium)
		if err != nil {
			logger.Errorf("Couldn't encode QR code: %s", err)
		} else {
			check(d.Clear())
			check(d.DrawQRCode(display.DefaultPadding, code))
			time.Sleep(3 * time.Second)
		}
	}

	check(d.ToLandscape())
	check(d.DrawCenteredText("Landscape", display.White, display.DefaultPadding))
	time.Sleep(time.Second)
	check(d.ToPortrait())

	for level := display.MaxBacklight; level >= display.MinBacklight; level-- {
		check(d.SetBacklight(level))
		time.Sleep(100 * time.Millisecond)
	}
	check(d.SetBacklight(*backlightPtr))
	check(d.DrawCenteredText(*textPtr, display.White, display.DefaultPadding))
}

func main() {
	defer func() {
		_ = d2r2log.FinalizeLogger()
	}()

	homePath = filepath.Join(getHomeDir(), ".krux_display")
	_ = os.MkdirAll(homePath, os.ModePerm)
	config := logger.Config{
		LogDir:            filepath.Join(homePath, "log"),
		LogFileMaxSize:    2,
		LogFileMaxNum:     30,
		LogFileNumToDel:   3,
		LogDest:           logger.LogDestBoth,
		LogFilenamePrefix: "krux",
		LogSymlinkPrefix:  "krux",
		Flag:              logger.ControlFlagLogDate | logger.ControlFlagLogFuncName,
	}
	_ = logger.Init(&config)
	defer func() {
		if err := recover(); err != nil {
			logger.Error("Panic occurred:", err)
		}
	}()
	logger.Info("Starting Krux display...")

	_ = d2r2log.ChangePackageLogLevel("i2c", d2r2log.WarnLevel)

	// Commandline parameters
	backendPtr = flag.String("backend", "st7789", "display backend (st7789, charlcd)")
	spiPtr = flag.String("spi", "", "SPI port of the st7789 (empty for the first one)")
	dcPtr = flag.String("dc", "GPIO25", "data/command pin of the st7789")
	rstPtr = flag.String("rst", "", "optional reset pin of the st7789")
	widthPtr = flag.Int("width", 240, "native panel width in px (1px...320px)")
	heightPtr = flag.Int("height", 320, "native panel height in px (1px...320px)")
	i2cPtr = flag.String("i2c", "", "I2C bus of the backlight for the periph driver (empty for the first one)")
	i2cDriverPtr = flag.String("i2cDriver", "periph", "I2C driver for the backlight (periph, d2r2)")
	i2cBusPtr = flag.Int("i2cBus", 1, "I2C bus number for the d2r2 driver and the charlcd backend")
	lcdDelayPtr = flag.Int("lcdDelay", 3, "initial delay for the charlcd backend in s (1s...10s)")
	fontSizePtr = flag.Int("fontSize", display.DefaultFontSize, "glyph cell size in px (5px...20px)")
	backlightPtr = flag.Int("backlight", display.MaxBacklight, "backlight level after the demo (0...8)")
	flashPtr = flag.Int("flash", 3000, "duration of the flashed text in ms (100ms...10000ms)")
	textPtr = flag.String("text", "Welcome to Krux", "text to show")
	qrPtr = flag.String("qr", "", "content of a QR code to show")
	pinPtr = flag.String("pin", "1234", "digits typed on the numpad demo")
	flag.Parse()
	clamp(lcdDelayPtr, 1, 10)
	clamp(fontSizePtr, 5, 20)
	clamp(backlightPtr, 0, display.MaxBacklight)
	clamp(flashPtr, 100, 10000)
	if pin := digitsOnly(*pinPtr); pin != *pinPtr {
		logger.Warnf("Ignoring non-digits in -pin %q", *pinPtr)
		*pinPtr = pin
	}

	// Load periph drivers:
	if _, err := host.Init(); err != nil {
		check(err)
	}

	gfx, err := openGraphics()
	if err != nil {
		closeAll()
		log.Fatalf("Couldn't open display: %s", err)
	}
	bus, err := openBus()
	if err != nil {
		closeAll()
		log.Fatalf("Couldn't open backlight bus: %s", err)
	}
	defer closeAll()

	d, err := display.New(gfx, bus, &display.Opts{FontSize: *fontSizePtr})
	if err != nil {
		var be *display.BusError
		if errors.As(err, &be) {
			logger.Errorf("Backlight device 0x%02X doesn't respond", be.Dev)
		}
		closeAll()
		log.Fatalf("Couldn't initialize display: %s", err)
	}
	logger.Infof("Display ready: %dx%d, font %dpx", d.Width(), d.Height(), d.FontSize())

	var ctrlChan = make(chan os.Signal, 1)
	signal.Notify(ctrlChan, os.Interrupt, syscall.SIGTERM)

	runDemo(d)

	<-ctrlChan
	logger.Info("Ctrl+C received... Exiting")
	check(d.Clear())
}
