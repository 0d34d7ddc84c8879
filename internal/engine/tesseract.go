package engine

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/png"
	"strconv"

	"github.com/otiai10/gosseract/v2"
)

// TesseractAdapter runs recognition through a linked Tesseract engine. Every
// call creates, configures, and closes its own client so that whitelist and
// segmentation settings cannot leak between invocations.
type TesseractAdapter struct{}

// NewTesseractAdapter returns the local neural OCR adapter.
func NewTesseractAdapter() *TesseractAdapter { return &TesseractAdapter{} }

func (a *TesseractAdapter) Name() string { return "tesseract" }

// Available reports true: the engine is linked into the binary.
func (a *TesseractAdapter) Available() bool { return true }

// Recognize runs one recognition pass. The context is consulted before the
// engine starts; an in-flight recognition is allowed to finish rather than
// being killed mid-call.
func (a *TesseractAdapter) Recognize(ctx context.Context, img image.Image, cfg Config) (Attempt, error) {
	if img == nil {
		return Attempt{}, fmt.Errorf("tesseract: nil image")
	}
	if err := ctx.Err(); err != nil {
		return Attempt{}, err
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return Attempt{}, fmt.Errorf("tesseract: encode image: %w", err)
	}

	client := gosseract.NewClient()
	defer func() { _ = client.Close() }()

	if err := a.configure(client, cfg); err != nil {
		return Attempt{}, err
	}
	if err := client.SetImageFromBytes(buf.Bytes()); err != nil {
		return Attempt{}, fmt.Errorf("tesseract: set image: %w", err)
	}

	text, err := client.Text()
	if err != nil {
		return Attempt{}, fmt.Errorf("tesseract: recognize: %w", err)
	}

	return Attempt{
		Text:       text,
		Confidence: meanLineConfidence(client, text),
		Method:     a.Name(),
	}, nil
}

func (a *TesseractAdapter) configure(client *gosseract.Client, cfg Config) error {
	lang := cfg.Language
	if lang == "" {
		lang = "eng"
	}
	if err := client.SetLanguage(lang); err != nil {
		return fmt.Errorf("tesseract: set language: %w", err)
	}
	if err := client.SetPageSegMode(mapPageSegMode(cfg.PageSegMode)); err != nil {
		return fmt.Errorf("tesseract: set page seg mode: %w", err)
	}
	for k, v := range runtimeVariables(cfg) {
		if err := client.SetVariable(gosseract.SettableVariable(k), v); err != nil {
			return fmt.Errorf("tesseract: set %s: %w", k, err)
		}
	}
	return nil
}

// runtimeVariables lists the parameters safe to apply to an initialized
// engine. The OCR engine mode is an init-only parameter and must never
// appear here: the engine rejects it after Init, which would fail every
// recognition. The initialized engine already runs LSTM by default; the
// legacy mode is honored only by the CLI adapter via --oem.
func runtimeVariables(cfg Config) map[string]string {
	vars := map[string]string{}
	if cfg.Whitelist != "" {
		vars["tessedit_char_whitelist"] = cfg.Whitelist
	}
	if cfg.PreserveSpaces {
		vars["preserve_interword_spaces"] = "1"
	}
	if cfg.DPI > 0 {
		vars["user_defined_dpi"] = strconv.Itoa(cfg.DPI)
	}
	return vars
}

func mapPageSegMode(m PageSegMode) gosseract.PageSegMode {
	switch m {
	case SegSingleBlock:
		return gosseract.PSM_SINGLE_BLOCK
	case SegRawLine:
		return gosseract.PSM_RAW_LINE
	default:
		return gosseract.PSM_AUTO
	}
}

// meanLineConfidence averages the engine's per-line confidences. When the
// engine reports no line boxes, EstimateConfidence stands in.
func meanLineConfidence(client *gosseract.Client, text string) float64 {
	boxes, err := client.GetBoundingBoxes(gosseract.RIL_TEXTLINE)
	if err != nil || len(boxes) == 0 {
		return EstimateConfidence(text)
	}
	var sum float64
	for _, b := range boxes {
		sum += b.Confidence
	}
	conf := sum / float64(len(boxes))
	if conf < 0 {
		conf = 0
	}
	if conf > 100 {
		conf = 100
	}
	return conf
}
