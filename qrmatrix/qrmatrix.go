// Package qrmatrix encodes content into a QR module matrix.
package qrmatrix

import (
	"fmt"

	"github.com/skip2/go-qrcode"

	"github.com/ByLCY/dotqr/layout"
)

// Encode encodes content at the High recovery level. The quiet zone is left
// out; the layout engine adds its own border.
func Encode(content string) (layout.Bitmap, error) {
	qr, err := qrcode.New(content, qrcode.Highest)
	if err != nil {
		return nil, fmt.Errorf("encode qr: %w", err)
	}
	qr.DisableBorder = true
	return layout.NewBitmap(qr.Bitmap())
}
