package preprocess

import "image"

// fixedThreshold binarizes the image in place: pixels above the threshold
// become white, the rest black.
func fixedThreshold(gray *image.Gray, threshold uint8) {
	for i, v := range gray.Pix {
		if v > threshold {
			gray.Pix[i] = 255
		} else {
			gray.Pix[i] = 0
		}
	}
}

// adaptiveThreshold binarizes the image in place against a per-pixel local
// window mean minus a constant bias. Uses a summed-area table so the cost is
// independent of the window size.
func adaptiveThreshold(gray *image.Gray, window, bias int) {
	b := gray.Bounds()
	w, h := b.Dx(), b.Dy()
	if w == 0 || h == 0 {
		return
	}

	// integral[y][x] holds the sum of all pixels in [0,x) x [0,y).
	integral := make([]uint64, (w+1)*(h+1))
	stride := w + 1
	for y := range h {
		var rowSum uint64
		for x := range w {
			rowSum += uint64(gray.Pix[y*gray.Stride+x])
			integral[(y+1)*stride+x+1] = integral[y*stride+x+1] + rowSum
		}
	}

	half := window / 2
	for y := range h {
		y0 := max(y-half, 0)
		y1 := min(y+half+1, h)
		for x := range w {
			x0 := max(x-half, 0)
			x1 := min(x+half+1, w)
			count := uint64((y1 - y0) * (x1 - x0))
			sum := integral[y1*stride+x1] - integral[y0*stride+x1] -
				integral[y1*stride+x0] + integral[y0*stride+x0]
			mean := int(sum / count)
			if int(gray.Pix[y*gray.Stride+x]) > mean-bias {
				gray.Pix[y*gray.Stride+x] = 255
			} else {
				gray.Pix[y*gray.Stride+x] = 0
			}
		}
	}
}
