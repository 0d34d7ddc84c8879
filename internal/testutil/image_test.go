package testutil

import (
	"image/color"
	"testing"
)

func TestGenerateTicketImage(t *testing.T) {
	cfg := DefaultTicketImageConfig()
	img := GenerateTicketImage(cfg)

	b := img.Bounds()
	if b.Dx() != cfg.Width || b.Dy() != cfg.Height {
		t.Fatalf("bounds %dx%d, want %dx%d", b.Dx(), b.Dy(), cfg.Width, cfg.Height)
	}

	dark := 0
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if c := color.GrayModel.Convert(img.At(x, y)).(color.Gray); c.Y < 128 {
				dark++
			}
		}
	}
	if dark == 0 {
		t.Error("rendered ticket contains no text pixels")
	}
}

func TestGenerateGradientImage(t *testing.T) {
	img := GenerateGradientImage(64, 4)
	if img.GrayAt(0, 0).Y != 0 {
		t.Errorf("left edge should be black, got %d", img.GrayAt(0, 0).Y)
	}
	if img.GrayAt(63, 0).Y != 255 {
		t.Errorf("right edge should be white, got %d", img.GrayAt(63, 0).Y)
	}
}
