package input

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"os"
	"path/filepath"
	"sort"

	"github.com/pdfcpu/pdfcpu/pkg/api"
)

// FirstPDFImage extracts the first embedded image from a PDF ticket. Digital
// tickets exported to PDF carry the rendered ticket as a single page image,
// so the first one is the ticket face.
func FirstPDFImage(data []byte) (image.Image, error) {
	tempDir, err := os.MkdirTemp("", "ticketscan-pdf-*")
	if err != nil {
		return nil, fmt.Errorf("create temp directory: %w", err)
	}
	defer func() { _ = os.RemoveAll(tempDir) }()

	src := filepath.Join(tempDir, "ticket.pdf")
	if err := os.WriteFile(src, data, 0o600); err != nil {
		return nil, fmt.Errorf("write temp pdf: %w", err)
	}

	outDir := filepath.Join(tempDir, "images")
	if err := os.MkdirAll(outDir, 0o700); err != nil {
		return nil, fmt.Errorf("create image directory: %w", err)
	}
	if err := api.ExtractImagesFile(src, outDir, []string{"1"}, nil); err != nil {
		return nil, fmt.Errorf("extract images from pdf: %w", err)
	}

	entries, err := os.ReadDir(outDir)
	if err != nil {
		return nil, fmt.Errorf("read extracted images: %w", err)
	}
	var names []string
	for _, e := range entries {
		if !e.IsDir() {
			names = append(names, e.Name())
		}
	}
	if len(names) == 0 {
		return nil, errors.New("pdf contains no extractable images")
	}
	sort.Strings(names)

	raw, err := os.ReadFile(filepath.Join(outDir, names[0])) //nolint:gosec // path built from our temp dir
	if err != nil {
		return nil, fmt.Errorf("read extracted image: %w", err)
	}
	img, _, err := image.Decode(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("decode extracted image: %w", err)
	}
	return img, nil
}
