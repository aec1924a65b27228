package display

import (
	"strings"
	"time"
	"unicode/utf8"

	"github.com/pkg/errors"
)

// ToLines wraps text into lines of a fixed number of columns, sized so that
// a line of fixed width glyphs fits Width() - 2*padding pixels.
//
// A newline starts a new line and occupies its first column. Lines started
// by wrapping drop a leading space or newline.
func (d *Display) ToLines(text string, padding int) ([]string, error) {
	screenWidth := d.Width() - padding*2
	columns := (screenWidth + d.fontSize - 1) / d.fontSize
	if screenWidth <= 0 || columns < 2 {
		return nil, errors.Wrapf(ErrNoColumns, "width %d, font size %d", screenWidth, d.fontSize)
	}

	var lines []*strings.Builder
	col := 0
	for _, r := range text {
		if r == '\n' {
			col = 0
		}
		col = (col + 1) % columns
		if col == 1 {
			b := &strings.Builder{}
			if r != ' ' && r != '\n' {
				b.WriteRune(r)
			}
			lines = append(lines, b)
			continue
		}
		lines[len(lines)-1].WriteRune(r)
	}

	out := make([]string, len(lines))
	for i, b := range lines {
		out[i] = b.String()
	}
	return out, nil
}

// DrawHCenteredText draws text wrapped by ToLines, each line centred
// horizontally, starting at offsetY.
func (d *Display) DrawHCenteredText(text string, offsetY int, c Color, padding int) error {
	screenWidth := d.Width() - padding*2
	lines, err := d.ToLines(text, padding)
	if err != nil {
		return err
	}
	for i, line := range lines {
		offsetX := (screenWidth - d.fontSize*utf8.RuneCountInString(line)) / 2
		if offsetX < 0 {
			offsetX = 0
		}
		if err := d.gfx.DrawString(offsetX, offsetY+i*d.LineHeight(), line, c, Black); err != nil {
			return errors.Wrapf(err, "display: draw line %d", i)
		}
	}
	return nil
}

// DrawCenteredText draws text centred on both axes.
func (d *Display) DrawCenteredText(text string, c Color, padding int) error {
	lines, err := d.ToLines(text, padding)
	if err != nil {
		return err
	}
	screenHeight := d.Height() - padding*2
	linesHeight := len(lines) * d.LineHeight()
	offsetY := (screenHeight - linesHeight) / 2
	if offsetY < 0 {
		offsetY = 0
	}
	return d.DrawHCenteredText(text, offsetY, c, padding)
}

// FlashText shows centred text for duration and clears the screen again.
// It blocks for the whole duration.
func (d *Display) FlashText(text string, c Color, duration time.Duration) error {
	if err := d.Clear(); err != nil {
		return err
	}
	if err := d.DrawCenteredText(text, c, DefaultPadding); err != nil {
		return err
	}
	d.sleep(duration)
	return d.Clear()
}
