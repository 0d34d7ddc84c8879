package preprocess

import "image"

// denoise smooths uniform regions while leaving text edges intact. For each
// interior pixel, if at least 6 of its 8 neighbors are within the tolerance,
// the pixel is replaced with its 3x3 neighborhood average. Pixels sitting on
// an edge (few similar neighbors) are left alone.
func denoise(gray *image.Gray, tolerance int) *image.Gray {
	b := gray.Bounds()
	w, h := b.Dx(), b.Dy()
	if w < 3 || h < 3 {
		return gray
	}

	out := image.NewGray(image.Rect(0, 0, w, h))
	copy(out.Pix, gray.Pix)

	for y := 1; y < h-1; y++ {
		for x := 1; x < w-1; x++ {
			center := int(gray.Pix[y*gray.Stride+x])
			similar := 0
			sum := center
			for dy := -1; dy <= 1; dy++ {
				for dx := -1; dx <= 1; dx++ {
					if dx == 0 && dy == 0 {
						continue
					}
					n := int(gray.Pix[(y+dy)*gray.Stride+x+dx])
					sum += n
					diff := n - center
					if diff < 0 {
						diff = -diff
					}
					if diff <= tolerance {
						similar++
					}
				}
			}
			if similar >= 6 {
				out.Pix[y*out.Stride+x] = uint8(sum / 9)
			}
		}
	}
	return out
}
