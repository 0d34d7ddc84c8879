// Package barcode decodes 2D barcodes found in ticket images and interprets
// their payloads as structured ticket data.
package barcode

import (
	"context"
	"image"

	"github.com/makiuchi-d/gozxing"
	"github.com/makiuchi-d/gozxing/qrcode"
)

// DecodeQR scans the image for a QR code and returns its interpreted payload.
// A missing QR code is an expected outcome and yields (nil, nil); an error is
// returned only when the image itself cannot be scanned.
func DecodeQR(ctx context.Context, img image.Image) (*Payload, error) {
	if img == nil {
		return nil, nil
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	source := gozxing.NewLuminanceSourceFromImage(img)
	bitmap, err := gozxing.NewBinaryBitmap(gozxing.NewHybridBinarizer(source))
	if err != nil {
		return nil, err
	}

	hints := map[gozxing.DecodeHintType]interface{}{
		gozxing.DecodeHintType_TRY_HARDER: true,
	}
	reader := qrcode.NewQRCodeReader()
	result, err := reader.Decode(bitmap, hints)
	if err != nil {
		// gozxing reports "not found" as an error; treat it as no payload.
		return nil, nil
	}

	text := result.GetText()
	if text == "" {
		return nil, nil
	}
	return ParsePayload(text), nil
}
