// Package qrcode encodes text as a QR module grid in the textual form the
// display package draws: one row per line, '1' for a dark module and '0'
// for a light one, without a quiet zone.
package qrcode

import (
	"strings"

	"github.com/pkg/errors"
	qr "github.com/skip2/go-qrcode"
)

// RecoveryLevel is the error correction level of the code.
type RecoveryLevel = qr.RecoveryLevel

const (
	Low     = qr.Low
	Medium  = qr.Medium
	High    = qr.High
	Highest = qr.Highest
)

// Encode returns the module grid for content.
func Encode(content string, level RecoveryLevel) (string, error) {
	q, err := qr.New(content, level)
	if err != nil {
		return "", errors.Wrap(err, "qrcode: encode")
	}
	q.DisableBorder = true
	return Grid(q.Bitmap()), nil
}

// Grid renders a bitmap (true is dark) as rows of '1' and '0'.
func Grid(bitmap [][]bool) string {
	var b strings.Builder
	for i, row := range bitmap {
		if i > 0 {
			b.WriteByte('\n')
		}
		for _, dark := range row {
			if dark {
				b.WriteByte('1')
			} else {
				b.WriteByte('0')
			}
		}
	}
	return b.String()
}
