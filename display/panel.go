package display

import (
	"time"

	d2r2log "github.com/d2r2/go-logger"
	"github.com/pkg/errors"
)

const (
	DefaultPadding       = 10
	DefaultFontSize      = 7
	DefaultFlashDuration = 3000 * time.Millisecond
	LandscapeRotation    = 3
)

var lg = d2r2log.NewPackageLogger("display", d2r2log.InfoLevel)

// Opts configures a Display. Zero values select the defaults.
type Opts struct {
	FontSize int                 // glyph cell size in pixels (default 7)
	Sleep    func(time.Duration) // used by FlashText (default time.Sleep)
}

// Display is the stateful façade over the graphics library and the
// backlight bus. It is not safe for concurrent use.
type Display struct {
	gfx      Graphics
	bus      Bus
	sleep    func(time.Duration)
	fontSize int
	rot      int
	level    int
}

// New programs the controller and sets the backlight to MaxBacklight.
func New(gfx Graphics, bus Bus, opts *Opts) (*Display, error) {
	d := &Display{gfx: gfx, bus: bus, fontSize: DefaultFontSize, sleep: time.Sleep}
	if opts != nil {
		if opts.FontSize > 0 {
			d.fontSize = opts.FontSize
		}
		if opts.Sleep != nil {
			d.sleep = opts.Sleep
		}
	}
	lg.Debug("Display initializing...")
	if err := d.Initialize(); err != nil {
		return nil, err
	}
	if err := d.SetBacklight(MaxBacklight); err != nil {
		return nil, err
	}
	return d, nil
}

// Initialize writes the register init sequence and resets the rotation to
// portrait.
func (d *Display) Initialize() error {
	if err := d.gfx.Init(InitType); err != nil {
		return errors.Wrap(err, "display: init")
	}
	for _, r := range InitSequence {
		if err := d.gfx.Register(r.Addr, r.Payload); err != nil {
			return errors.Wrapf(err, "display: register 0x%02X", r.Addr)
		}
	}
	d.rot = 0
	return nil
}

// FontSize returns the glyph cell size in pixels.
func (d *Display) FontSize() int {
	return d.fontSize
}

func (d *Display) LineHeight() int {
	return d.fontSize * 2
}

// Width returns the width of the current coordinate frame. In portrait
// (rotation 0) the panel's height and width are swapped.
func (d *Display) Width() int {
	if d.rot == 0 {
		return d.gfx.Height()
	}
	return d.gfx.Width()
}

// Height returns the height of the current coordinate frame.
func (d *Display) Height() int {
	if d.rot == 0 {
		return d.gfx.Width()
	}
	return d.gfx.Height()
}

// Rot returns the rotation code last set.
func (d *Display) Rot() int {
	return d.rot
}

// Rotation sets the hardware rotation register and records it.
func (d *Display) Rotation(r int) error {
	if err := d.gfx.Rotation(r); err != nil {
		return errors.Wrapf(err, "display: rotation %d", r)
	}
	d.rot = r
	lg.Infof("Rotation set to %d", r)
	return nil
}

// ToLandscape clears the screen and rotates to landscape.
func (d *Display) ToLandscape() error {
	if err := d.gfx.Clear(); err != nil {
		return errors.Wrap(err, "display: clear")
	}
	return d.Rotation(LandscapeRotation)
}

// ToPortrait clears the screen and runs the whole init sequence again, which
// also resets the rotation.
func (d *Display) ToPortrait() error {
	if err := d.gfx.Clear(); err != nil {
		return errors.Wrap(err, "display: clear")
	}
	return d.Initialize()
}

// Clear clears the screen.
func (d *Display) Clear() error {
	return errors.Wrap(d.gfx.Clear(), "display: clear")
}
