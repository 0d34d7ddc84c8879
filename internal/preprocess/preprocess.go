package preprocess

import (
	"errors"
	"fmt"
	"image"
	"image/color"

	"github.com/disintegration/imaging"
)

// ProcessError represents errors that can occur while preparing an image
// variant for recognition.
type ProcessError struct {
	Operation string
	Err       error
}

func (e *ProcessError) Error() string {
	return fmt.Sprintf("preprocess error in %s: %v", e.Operation, e.Err)
}

func (e *ProcessError) Unwrap() error { return e.Err }

// Options controls the transforms applied to a source image before OCR.
type Options struct {
	Scale           float64 // scale factor relative to the source resolution (1.0 = unchanged)
	Brightness      float64 // multiplicative brightness (1.0 = unchanged)
	Contrast        float64 // contrast multiplier about mid-gray 128 (1.0 = unchanged)
	PaddingFraction float64 // white border as a fraction of the larger image dimension

	Binarize  bool  // hard black/white output instead of grayscale
	Adaptive  bool  // local-mean threshold instead of a fixed cut
	Threshold uint8 // fixed threshold when Adaptive is false

	AdaptiveWindow int // local window size for adaptive thresholding (odd, >= 3)
	AdaptiveBias   int // subtracted from the local mean before comparing

	Denoise          bool
	DenoiseTolerance int // neighbor similarity tolerance in gray levels
}

// DefaultOptions returns a neutral preprocessing configuration.
func DefaultOptions() Options {
	return Options{
		Scale:            1.0,
		Brightness:       1.0,
		Contrast:         1.0,
		PaddingFraction:  0.0,
		Binarize:         false,
		Threshold:        180,
		AdaptiveWindow:   15,
		AdaptiveBias:     10,
		DenoiseTolerance: 12,
	}
}

// Validate checks that options are usable.
func (o Options) Validate() error {
	if o.Scale <= 0 {
		return errors.New("scale must be > 0")
	}
	if o.Brightness <= 0 || o.Contrast <= 0 {
		return errors.New("brightness and contrast multipliers must be > 0")
	}
	if o.PaddingFraction < 0 {
		return errors.New("padding fraction must be >= 0")
	}
	if o.Adaptive && (o.AdaptiveWindow < 3 || o.AdaptiveWindow%2 == 0) {
		return errors.New("adaptive window must be odd and >= 3")
	}
	return nil
}

// Variant is one preprocessed rendition of a source image, labeled with the
// profile that produced it.
type Variant struct {
	Image *image.Gray
	Label string
}

// Preprocess applies the configured transform chain and returns the resulting
// variant. The source image is never modified.
func Preprocess(img image.Image, label string, opts Options) (*Variant, error) {
	if img == nil {
		return nil, &ProcessError{Operation: "preprocess", Err: errors.New("input image is nil")}
	}
	if err := opts.Validate(); err != nil {
		return nil, &ProcessError{Operation: "preprocess", Err: err}
	}

	bounds := img.Bounds()
	if bounds.Dx() <= 0 || bounds.Dy() <= 0 {
		return nil, &ProcessError{Operation: "preprocess", Err: errors.New("empty image")}
	}

	scaled := scaleAndPad(img, opts)
	gray := toGray(scaled)
	adjustTone(gray, opts.Brightness, opts.Contrast)

	if opts.Binarize {
		if opts.Adaptive {
			adaptiveThreshold(gray, opts.AdaptiveWindow, opts.AdaptiveBias)
		} else {
			fixedThreshold(gray, opts.Threshold)
		}
	}

	if opts.Denoise {
		gray = denoise(gray, opts.DenoiseTolerance)
	}

	return &Variant{Image: gray, Label: label}, nil
}

// scaleAndPad resizes the image by the configured factor and centers it on a
// white canvas with the configured border.
func scaleAndPad(img image.Image, opts Options) image.Image {
	bounds := img.Bounds()
	width := int(float64(bounds.Dx()) * opts.Scale)
	height := int(float64(bounds.Dy()) * opts.Scale)
	if width < 1 {
		width = 1
	}
	if height < 1 {
		height = 1
	}

	out := img
	if opts.Scale != 1.0 {
		out = imaging.Resize(img, width, height, imaging.Lanczos)
	}

	if opts.PaddingFraction > 0 {
		longer := width
		if height > longer {
			longer = height
		}
		pad := int(float64(longer) * opts.PaddingFraction)
		if pad > 0 {
			canvas := imaging.New(width+2*pad, height+2*pad, color.White)
			out = imaging.Paste(canvas, out, image.Pt(pad, pad))
		}
	}
	return out
}

// toGray converts the image to luminance-weighted grayscale using the
// ITU-R BT.601 weights.
func toGray(img image.Image) *image.Gray {
	bounds := img.Bounds()
	gray := image.NewGray(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	for y := range bounds.Dy() {
		for x := range bounds.Dx() {
			r, g, b, _ := img.At(bounds.Min.X+x, bounds.Min.Y+y).RGBA()
			lum := 0.299*float64(r>>8) + 0.587*float64(g>>8) + 0.114*float64(b>>8)
			gray.SetGray(x, y, color.Gray{Y: clampByte(lum)})
		}
	}
	return gray
}

// adjustTone applies brightness then contrast in place. Contrast pivots
// around mid-gray 128.
func adjustTone(gray *image.Gray, brightness, contrast float64) {
	if brightness == 1.0 && contrast == 1.0 {
		return
	}
	for i, v := range gray.Pix {
		val := float64(v) * brightness
		val = (val-128)*contrast + 128
		gray.Pix[i] = clampByte(val)
	}
}

func clampByte(v float64) uint8 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v)
}
