package share

import (
	"fmt"

	qrcode "github.com/skip2/go-qrcode"
)

// qrSize is the rendered image edge in pixels, sized for camera capture.
const qrSize = 180

// QRImage renders the literal code string as a PNG QR image. The
// payload is the bare code with no framing. Callers treat a failure as
// "image unavailable"; the text code remains the fallback.
func QRImage(c string) ([]byte, error) {
	png, err := qrcode.Encode(c, qrcode.Low, qrSize)
	if err != nil {
		return nil, fmt.Errorf("failed to render QR image: %w", err)
	}
	return png, nil
}
