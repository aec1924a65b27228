package display

import (
	"testing"
)

func findDraws(draws []drawCall, text string) []drawCall {
	var out []drawCall
	for _, dc := range draws {
		if dc.text == text {
			out = append(out, dc)
		}
	}
	return out
}

func TestDrawNumpad(t *testing.T) {
	d, gfx, _ := newTestDisplay(t, 240, 240)
	if err := d.DrawNumpad(4, "1234", false, 10, White); err != nil {
		t.Fatal(err)
	}

	// header + 12 keys + marker
	if len(gfx.draws) != 14 {
		t.Fatalf("got %d draws, want 14", len(gfx.draws))
	}
	if gfx.draws[0].text != "1234" {
		t.Errorf("header = %q, want %q", gfx.draws[0].text, "1234")
	}

	tests := []struct {
		label string
		x, y  int
	}{
		{"0", 20, 50},
		{"4", 62, 78},
		{"9", 20, 134},
		{"Del", 62, 134},
		{"Go", 104, 134},
		{">", 52, 78},
	}
	for _, tt := range tests {
		got := findDraws(gfx.draws, tt.label)
		if len(got) != 1 {
			t.Errorf("%q drawn %d times, want once", tt.label, len(got))
			continue
		}
		if got[0].x != tt.x || got[0].y != tt.y {
			t.Errorf("%q at (%d, %d), want (%d, %d)", tt.label, got[0].x, got[0].y, tt.x, tt.y)
		}
		if got[0].fg != White || got[0].bg != Black {
			t.Errorf("%q colors = %v/%v", tt.label, got[0].fg, got[0].bg)
		}
	}
}

func TestDrawNumpadMarkerFollowsLabel(t *testing.T) {
	d, gfx, _ := newTestDisplay(t, 240, 240)
	if err := d.DrawNumpad(11, "", false, 0, White); err != nil {
		t.Fatal(err)
	}
	n := len(gfx.draws)
	if n < 2 {
		t.Fatalf("got %d draws", n)
	}
	label, marker := gfx.draws[n-2], gfx.draws[n-1]
	if label.text != "Go" || marker.text != ">" {
		t.Fatalf("last draws = %+v, %+v", label, marker)
	}
	if label.x-marker.x != 10 || label.y != marker.y {
		t.Errorf("marker at (%d, %d), label at (%d, %d)", marker.x, marker.y, label.x, label.y)
	}
}

func TestDrawNumpadMasked(t *testing.T) {
	d, gfx, _ := newTestDisplay(t, 240, 240)
	if err := d.DrawNumpad(-1, "1234", true, 10, White); err != nil {
		t.Fatal(err)
	}
	if gfx.draws[0].text != "****" {
		t.Errorf("header = %q, want %q", gfx.draws[0].text, "****")
	}
	if got := findDraws(gfx.draws, ">"); len(got) != 0 {
		t.Errorf("marker drawn %d times, want 0", len(got))
	}
}

func TestDrawKeypad(t *testing.T) {
	d, gfx, _ := newTestDisplay(t, 240, 240)
	if err := d.DrawKeypad(27, "abc", true, 10, Green); err != nil {
		t.Fatal(err)
	}

	// header + 28 keys + marker
	if len(gfx.draws) != 30 {
		t.Fatalf("got %d draws, want 30", len(gfx.draws))
	}
	if gfx.draws[0].text != "***" {
		t.Errorf("header = %q, want %q", gfx.draws[0].text, "***")
	}

	tests := []struct {
		label string
		x, y  int
	}{
		{"a", 15, 50},
		{"e", 127, 50},
		{"f", 15, 71},
		{"z", 15, 155},
		{"Del", 43, 155},
		{"Go", 71, 155},
		{">", 61, 155},
	}
	for _, tt := range tests {
		got := findDraws(gfx.draws, tt.label)
		if len(got) != 1 {
			t.Errorf("%q drawn %d times, want once", tt.label, len(got))
			continue
		}
		if got[0].x != tt.x || got[0].y != tt.y {
			t.Errorf("%q at (%d, %d), want (%d, %d)", tt.label, got[0].x, got[0].y, tt.x, tt.y)
		}
	}
}

func TestDrawKeypadSelectedOutsideGrid(t *testing.T) {
	for _, key := range []int{28, 29, 30, -1} {
		d, gfx, _ := newTestDisplay(t, 240, 240)
		if err := d.DrawKeypad(key, "", false, 0, White); err != nil {
			t.Fatal(err)
		}
		if got := findDraws(gfx.draws, ">"); len(got) != 0 {
			t.Errorf("key %d: marker drawn %d times, want 0", key, len(got))
		}
	}
}
