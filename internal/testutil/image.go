// Package testutil generates synthetic ticket images for package tests.
package testutil

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"math/rand"

	"github.com/makiuchi-d/gozxing"
	"github.com/makiuchi-d/gozxing/qrcode"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// TicketImageConfig holds configuration for a synthetic ticket rendering.
type TicketImageConfig struct {
	Lines      []string
	Width      int
	Height     int
	Background color.Color
	Foreground color.Color
}

// DefaultTicketImageConfig returns a mobile-ticket-shaped default.
func DefaultTicketImageConfig() TicketImageConfig {
	return TicketImageConfig{
		Lines: []string{
			"Halloween Bash",
			"Name",
			"John Smith",
			"Opening time",
			"Saturday, 28 Oct 2023, 19:00 GMT+1",
			"Ticket name",
			"Advance Entry",
		},
		Width:      480,
		Height:     640,
		Background: color.White,
		Foreground: color.Black,
	}
}

// GenerateTicketImage renders the configured text lines onto a blank
// ticket, one per row, using the basicfont face.
func GenerateTicketImage(cfg TicketImageConfig) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, cfg.Width, cfg.Height))
	draw.Draw(img, img.Bounds(), &image.Uniform{cfg.Background}, image.Point{}, draw.Src)

	face := basicfont.Face7x13
	lineHeight := face.Metrics().Height.Ceil() + 8
	y := 40
	for _, line := range cfg.Lines {
		drawer := &font.Drawer{
			Dst:  img,
			Src:  &image.Uniform{cfg.Foreground},
			Face: face,
			Dot:  fixed.P(24, y),
		}
		drawer.DrawString(line)
		y += lineHeight
	}
	return img
}

// GenerateQRImage encodes the payload as a QR code on a white background
// with a quiet zone.
func GenerateQRImage(payload string, size int) (image.Image, error) {
	writer := qrcode.NewQRCodeWriter()
	matrix, err := writer.Encode(payload, gozxing.BarcodeFormat_QR_CODE, size, size, nil)
	if err != nil {
		return nil, fmt.Errorf("encode qr: %w", err)
	}

	w, h := matrix.GetWidth(), matrix.GetHeight()
	img := image.NewGray(image.Rect(0, 0, w, h))
	for y := range h {
		for x := range w {
			if matrix.Get(x, y) {
				img.SetGray(x, y, color.Gray{Y: 0})
			} else {
				img.SetGray(x, y, color.Gray{Y: 255})
			}
		}
	}
	return img, nil
}

// GenerateNoiseImage produces deterministic pixel noise; nothing in it is
// recognizable as text or a barcode.
func GenerateNoiseImage(width, height int, seed int64) *image.Gray {
	rng := rand.New(rand.NewSource(seed)) //nolint:gosec // deterministic test data
	img := image.NewGray(image.Rect(0, 0, width, height))
	for i := range img.Pix {
		img.Pix[i] = uint8(rng.Intn(256))
	}
	return img
}

// GenerateGradientImage produces a horizontal gray gradient, useful for
// verifying tone and threshold behavior.
func GenerateGradientImage(width, height int) *image.Gray {
	img := image.NewGray(image.Rect(0, 0, width, height))
	for y := range height {
		for x := range width {
			img.SetGray(x, y, color.Gray{Y: uint8(x * 255 / max(width-1, 1))})
		}
	}
	return img
}
