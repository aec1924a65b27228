package display

import (
	"strings"

	"github.com/pkg/errors"
)

// PadQRCode surrounds a QR module grid ('0' is a light module) with a one
// module quiet zone of '0's.
func PadQRCode(code string) string {
	lines := strings.Split(strings.TrimSpace(code), "\n")
	size := len(lines)
	border := strings.Repeat("0", size+2)

	padded := make([]string, 0, size+2)
	padded = append(padded, border)
	for _, line := range lines {
		padded = append(padded, "0"+line+"0")
	}
	padded = append(padded, border)
	return strings.Join(padded, "\n")
}

// DrawQRCode draws a QR code given as rows of module characters at offsetY,
// adding the quiet zone first.
func (d *Display) DrawQRCode(offsetY int, qrCode string) error {
	err := d.gfx.DrawQRCode(offsetY, PadQRCode(qrCode), d.Width())
	return errors.Wrap(err, "display: draw qr code")
}
