package engine

import (
	"context"
	"fmt"
	"image"
	"image/png"
	"os"
	"os/exec"
	"strings"
	"unicode"
)

// CLIAdapter shells out to a system-installed tesseract binary. It is the
// best-effort platform text detector: when the binary is not on PATH the
// adapter simply reports unavailable and contributes no attempts.
type CLIAdapter struct {
	path string
}

// NewCLIAdapter probes PATH for the tesseract binary.
func NewCLIAdapter() *CLIAdapter {
	path, err := exec.LookPath("tesseract")
	if err != nil {
		return &CLIAdapter{}
	}
	return &CLIAdapter{path: path}
}

// newCLIAdapterAt is used by tests to pin or clear the binary path.
func newCLIAdapterAt(path string) *CLIAdapter { return &CLIAdapter{path: path} }

func (a *CLIAdapter) Name() string { return "tesseract-cli" }

func (a *CLIAdapter) Available() bool { return a.path != "" }

// Recognize writes the image to a temporary file and runs one CLI pass.
// The binary does not report confidence on plain text output, so the
// attempt carries an estimate derived from the recognized text.
func (a *CLIAdapter) Recognize(ctx context.Context, img image.Image, cfg Config) (Attempt, error) {
	if !a.Available() {
		return Attempt{}, fmt.Errorf("tesseract-cli: binary not found")
	}
	if img == nil {
		return Attempt{}, fmt.Errorf("tesseract-cli: nil image")
	}

	tmp, err := os.CreateTemp("", "ticketscan-*.png")
	if err != nil {
		return Attempt{}, fmt.Errorf("tesseract-cli: temp file: %w", err)
	}
	defer func() { _ = os.Remove(tmp.Name()) }()

	if err := png.Encode(tmp, img); err != nil {
		_ = tmp.Close()
		return Attempt{}, fmt.Errorf("tesseract-cli: encode image: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return Attempt{}, fmt.Errorf("tesseract-cli: close temp file: %w", err)
	}

	args := []string{tmp.Name(), "stdout",
		"--psm", cliPSM(cfg.PageSegMode), "--oem", cliOEM(cfg.EngineMode)}
	if cfg.DPI > 0 {
		args = append(args, "--dpi", fmt.Sprintf("%d", cfg.DPI))
	}
	if cfg.Language != "" {
		args = append(args, "-l", cfg.Language)
	}

	out, err := exec.CommandContext(ctx, a.path, args...).Output()
	if err != nil {
		return Attempt{}, fmt.Errorf("tesseract-cli: %w", err)
	}

	text := strings.TrimSpace(string(out))
	return Attempt{
		Text:       text,
		Confidence: EstimateConfidence(text),
		Method:     a.Name(),
	}, nil
}

func cliPSM(m PageSegMode) string {
	switch m {
	case SegSingleBlock:
		return "6"
	case SegRawLine:
		return "13"
	default:
		return "3"
	}
}

// cliOEM maps the engine mode to tesseract's --oem flag. Unlike runtime
// variables, the CLI accepts the engine mode at startup.
func cliOEM(m EngineMode) string {
	if m == ModeLegacy {
		return "0"
	}
	return "1"
}

// EstimateConfidence derives a rough confidence score from recognized text
// when the backend does not report one. Longer output with a high ratio of
// word characters scores higher; empty output scores zero.
func EstimateConfidence(text string) float64 {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return 0
	}
	wordChars := 0
	for _, r := range trimmed {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == ' ' {
			wordChars++
		}
	}
	ratio := float64(wordChars) / float64(len([]rune(trimmed)))

	length := float64(len(trimmed))
	if length > 200 {
		length = 200
	}
	// Up to 40 points for volume, up to 60 for cleanliness.
	return length/200*40 + ratio*60
}
