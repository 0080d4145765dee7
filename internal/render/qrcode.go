package render

import (
	"errors"

	"github.com/skip2/go-qrcode"
)

const defaultQRCodeSizePx = 256

// QRCodePNG encodes payload as a PNG QR code. The web viewer shows one that
// points phones at its own URL.
func QRCodePNG(payload string, sizePx int) ([]byte, error) {
	if payload == "" {
		return nil, errors.New("empty QR payload")
	}
	if sizePx <= 0 {
		sizePx = defaultQRCodeSizePx
	}
	return qrcode.Encode(payload, qrcode.Medium, sizePx)
}
