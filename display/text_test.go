package display

import (
	"reflect"
	"testing"
	"time"

	"github.com/pkg/errors"
)

func TestToLines(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{"empty", "", nil},
		{"shorter than a line", "hi", []string{"hi"}},
		{"wraps every five", "abcdefgh", []string{"abcde", "fgh"}},
		{"exactly two lines", "abcdefghij", []string{"abcde", "fghij"}},
		{"space at wrap is dropped", "abcde fgh", []string{"abcde", "fgh"}},
		{"space inside a line is kept", "ab cd", []string{"ab cd"}},
		{"newline starts a line", "ab\ncd", []string{"ab", "cd"}},
		{"newline takes a column", "ab\ncdefg", []string{"ab", "cdef", "g"}},
		{"consecutive newlines", "\n\nx", []string{"", "x"}},
		{"newline after full line", "abcde\nf", []string{"abcde", "f"}},
		{"space after newline is kept", "a\n b", []string{"a", " b"}},
		{"multibyte runes", "äöüßé€", []string{"äöüßé", "€"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// 55 px portrait width, 10 px padding, 7 px font: 5 columns
			d, _, _ := newTestDisplay(t, 100, 55)
			got, err := d.ToLines(tt.text, 10)
			if err != nil {
				t.Fatalf("ToLines() error = %v", err)
			}
			if len(got) == 0 && len(tt.want) == 0 {
				return
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ToLines(%q) = %q, want %q", tt.text, got, tt.want)
			}
		})
	}
}

func TestToLinesColumnsRoundUp(t *testing.T) {
	// 36 px usable width with a 7 px font gives ceil(36/7) = 6 columns
	d, _, _ := newTestDisplay(t, 100, 56)
	got, err := d.ToLines("abcdefg", 10)
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"abcdef", "g"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("ToLines() = %q, want %q", got, want)
	}
}

func TestToLinesNoColumns(t *testing.T) {
	tests := []struct {
		name    string
		width   int
		padding int
	}{
		{"negative width", 10, 10},
		{"zero width", 20, 10},
		{"single column", 27, 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, _, _ := newTestDisplay(t, 100, tt.width)
			_, err := d.ToLines("abc", tt.padding)
			if !errors.Is(err, ErrNoColumns) {
				t.Errorf("ToLines() error = %v, want ErrNoColumns", err)
			}
		})
	}
}

func TestDrawHCenteredText(t *testing.T) {
	d, gfx, _ := newTestDisplay(t, 100, 55)
	if err := d.DrawHCenteredText("abcdefgh", 20, Orange, 10); err != nil {
		t.Fatal(err)
	}
	want := []drawCall{
		{0, 20, "abcde", Orange, Black},
		{7, 34, "fgh", Orange, Black},
	}
	if !reflect.DeepEqual(gfx.draws, want) {
		t.Errorf("draws = %+v, want %+v", gfx.draws, want)
	}
}

func TestDrawHCenteredTextPropagatesErrors(t *testing.T) {
	d, gfx, _ := newTestDisplay(t, 100, 55)
	cause := errors.New("spi: timeout")
	gfx.failDraw = cause
	if err := d.DrawHCenteredText("abc", 0, White, 10); !errors.Is(err, cause) {
		t.Errorf("DrawHCenteredText() error = %v, want %v", err, cause)
	}
}

func TestDrawCenteredText(t *testing.T) {
	// portrait: 55 wide, 100 high
	d, gfx, _ := newTestDisplay(t, 100, 55)
	if err := d.DrawCenteredText("abcdefgh", White, 10); err != nil {
		t.Fatal(err)
	}
	// (100 - 20 - 2*14) / 2 = 26
	want := []drawCall{
		{0, 26, "abcde", White, Black},
		{7, 40, "fgh", White, Black},
	}
	if !reflect.DeepEqual(gfx.draws, want) {
		t.Errorf("draws = %+v, want %+v", gfx.draws, want)
	}
}

func TestDrawCenteredTextTooTall(t *testing.T) {
	d, gfx, _ := newTestDisplay(t, 30, 55)
	if err := d.DrawCenteredText("abcdefghijklmno", White, 10); err != nil {
		t.Fatal(err)
	}
	if len(gfx.draws) != 3 || gfx.draws[0].y != 0 {
		t.Errorf("draws = %+v, want 3 lines starting at y=0", gfx.draws)
	}
}

func TestFlashText(t *testing.T) {
	gfx := &recordGfx{w: 100, h: 55}
	bus := &recordBus{}
	var slept []time.Duration
	d, err := New(gfx, bus, &Opts{Sleep: func(dur time.Duration) {
		slept = append(slept, dur)
		gfx.ops = append(gfx.ops, "sleep")
	}})
	if err != nil {
		t.Fatal(err)
	}
	gfx.ops = nil

	if err := d.FlashText("hi", Green, DefaultFlashDuration); err != nil {
		t.Fatal(err)
	}
	want := []string{"clear", "draw", "sleep", "clear"}
	if !reflect.DeepEqual(gfx.ops, want) {
		t.Errorf("ops = %v, want %v", gfx.ops, want)
	}
	if len(slept) != 1 || slept[0] != 3*time.Second {
		t.Errorf("slept = %v, want [3s]", slept)
	}
}
