// Package qr renders the table-tent QR code that links customers to the
// feedback form.
package qr

import (
	"fmt"

	qrcode "github.com/skip2/go-qrcode"

	"relish/internal/errors"
)

// DefaultSize is the PNG edge length in pixels, large enough to scan from a
// printed card.
const DefaultSize = 512

// PNG encodes url as a QR code PNG of the given edge length. Size <= 0
// falls back to DefaultSize.
func PNG(url string, size int) ([]byte, error) {
	if url == "" {
		return nil, errors.NewInvalidRequest("qr url is empty")
	}
	if size <= 0 {
		size = DefaultSize
	}
	png, err := qrcode.Encode(url, qrcode.Medium, size)
	if err != nil {
		return nil, errors.NewInternal(fmt.Errorf("encode qr: %w", err))
	}
	return png, nil
}
