package display

import (
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/pkg/errors"
)

const (
	padTop       = 40
	markerOffset = 10
	marker       = ">"
)

// padLayout describes one on-screen key grid.
type padLayout struct {
	cols, rows int
	left       int // x of the marker in the first column
	pitchX     int // in font sizes
	pitchY     int // in font sizes
	label      func(key int) (string, bool)
}

func numpadLabel(key int) (string, bool) {
	switch key {
	case 10:
		return "Del", true
	case 11:
		return "Go", true
	}
	return strconv.Itoa(key), true
}

func keypadLabel(key int) (string, bool) {
	switch {
	case key == 26:
		return "Del", true
	case key == 27:
		return "Go", true
	case key > 27:
		return "", false
	}
	return string(rune('a' + key)), true
}

// DrawNumpad draws the entered digits (or a mask of the same length) on top
// and a 3x4 grid of the keys 0-9, Del and Go below, marking selectedKey.
func (d *Display) DrawNumpad(selectedKey int, digits string, maskDigits bool, offsetY int, c Color) error {
	return d.drawPad(padLayout{
		cols:   3,
		rows:   4,
		left:   DefaultPadding,
		pitchX: 6,
		pitchY: 4,
		label:  numpadLabel,
	}, selectedKey, digits, maskDigits, offsetY, c)
}

// DrawKeypad draws the entered letters (or a mask of the same length) on top
// and a 5x6 grid of the keys a-z, Del and Go below, marking selectedKey.
func (d *Display) DrawKeypad(selectedKey int, letters string, maskLetters bool, offsetY int, c Color) error {
	return d.drawPad(padLayout{
		cols:   5,
		rows:   6,
		left:   DefaultPadding - 5,
		pitchX: 4,
		pitchY: 3,
		label:  keypadLabel,
	}, selectedKey, letters, maskLetters, offsetY, c)
}

func (d *Display) drawPad(l padLayout, selectedKey int, entered string, mask bool, offsetY int, c Color) error {
	header := entered
	if mask {
		header = strings.Repeat("*", utf8.RuneCountInString(entered))
	}
	if err := d.DrawHCenteredText(header, offsetY, c, DefaultPadding); err != nil {
		return err
	}

	for x := 0; x < l.cols; x++ {
		for y := 0; y < l.rows; y++ {
			key := x + y*l.cols
			label, ok := l.label(key)
			if !ok {
				continue
			}
			keyX := l.left + x*d.fontSize*l.pitchX
			keyY := offsetY + padTop + y*d.fontSize*l.pitchY
			if err := d.gfx.DrawString(keyX+markerOffset, keyY, label, c, Black); err != nil {
				return errors.Wrapf(err, "display: draw key %d", key)
			}
			if key == selectedKey {
				if err := d.gfx.DrawString(keyX, keyY, marker, c, Black); err != nil {
					return errors.Wrapf(err, "display: draw marker %d", key)
				}
			}
		}
	}
	return nil
}
