package preprocess

// Profile pairs a variant label with the options that produce it.
type Profile struct {
	Label   string
	Options Options
}

// Profiles returns the tuning profiles tried by the multi-variant pass, in
// priority order. No single transform works for every ticket photo: dark
// venue-screen shots need aggressive contrast and binarization, clean app
// screenshots degrade under it, and small print benefits from upscaling.
func Profiles() []Profile {
	highContrast := DefaultOptions()
	highContrast.Contrast = 1.6
	highContrast.Brightness = 1.1
	highContrast.PaddingFraction = 0.05
	highContrast.Binarize = true
	highContrast.Adaptive = true
	highContrast.Denoise = true

	gentle := DefaultOptions()
	gentle.Contrast = 1.15
	gentle.PaddingFraction = 0.03

	highRes := DefaultOptions()
	highRes.Scale = 2.0
	highRes.Contrast = 1.3
	highRes.PaddingFraction = 0.05
	highRes.Denoise = true

	return []Profile{
		{Label: "high-contrast", Options: highContrast},
		{Label: "gentle", Options: gentle},
		{Label: "high-res", Options: highRes},
	}
}
