// Package input decodes caller-supplied ticket files (JPEG, PNG, BMP, or
// PDF) into images for the extraction pipeline.
package input

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"path/filepath"
	"strings"

	_ "golang.org/x/image/bmp"
)

// SupportedExtensions lists the file extensions the loader accepts.
var SupportedExtensions = []string{".jpg", ".jpeg", ".png", ".bmp", ".pdf"}

// IsSupported reports whether the path has a supported extension.
func IsSupported(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, s := range SupportedExtensions {
		if ext == s {
			return true
		}
	}
	return false
}

// Metadata captures lightweight information about a loaded ticket file.
type Metadata struct {
	Path      string
	Format    string
	SizeBytes int64
	Width     int
	Height    int
}

// DecodeImage decodes raw bytes into an image, sniffing the format from the
// content rather than trusting a declared type.
func DecodeImage(data []byte) (image.Image, string, error) {
	if len(data) == 0 {
		return nil, "", errors.New("empty input")
	}
	if isPDF(data) {
		img, err := FirstPDFImage(data)
		if err != nil {
			return nil, "", err
		}
		return img, "pdf", nil
	}
	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, "", fmt.Errorf("decode image: %w", err)
	}
	return img, format, nil
}

// LoadImage opens and decodes a ticket file from disk.
func LoadImage(path string) (image.Image, Metadata, error) {
	if path == "" {
		return nil, Metadata{}, errors.New("empty path")
	}
	if !IsSupported(path) {
		return nil, Metadata{}, fmt.Errorf("unsupported format: %s", filepath.Ext(path))
	}

	data, err := os.ReadFile(path) //nolint:gosec // user-provided ticket path is expected
	if err != nil {
		return nil, Metadata{}, fmt.Errorf("read %s: %w", path, err)
	}

	img, format, err := DecodeImage(data)
	if err != nil {
		return nil, Metadata{}, err
	}

	b := img.Bounds()
	return img, Metadata{
		Path:      path,
		Format:    format,
		SizeBytes: int64(len(data)),
		Width:     b.Dx(),
		Height:    b.Dy(),
	}, nil
}

func isPDF(data []byte) bool {
	return bytes.HasPrefix(data, []byte("%PDF-"))
}
