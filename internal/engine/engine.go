// Package engine wraps text-recognition backends behind a single adapter
// interface with ticket-specific tuning.
package engine

import (
	"context"
	"image"
)

// PageSegMode selects how the backend segments the page before recognition.
type PageSegMode int

const (
	// SegAuto lets the engine find its own page layout.
	SegAuto PageSegMode = iota
	// SegSingleBlock treats the image as one uniform block of text.
	SegSingleBlock
	// SegRawLine treats the image as raw lines without layout analysis.
	SegRawLine
)

// EngineMode selects the recognition model family. The linked engine fixes
// this at initialization and defaults to LSTM; only the CLI adapter can
// honor a non-default mode.
type EngineMode int

const (
	// ModeLSTM favors the neural recognizer.
	ModeLSTM EngineMode = iota
	// ModeLegacy uses classic pattern matching.
	ModeLegacy
)

// TicketWhitelist restricts recognition to characters that actually occur on
// tickets; stray symbols from photo noise otherwise pollute label matching.
const TicketWhitelist = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789" +
	" .,:;!?()[]'\"&@#/\\-+%£$€"

// Config holds per-call recognition settings. One invocation's configuration
// never leaks into another: adapters create a fresh engine instance per call.
type Config struct {
	PageSegMode    PageSegMode
	EngineMode     EngineMode
	Whitelist      string
	DPI            int
	PreserveSpaces bool // keep interword spacing intact; line pairing depends on it
	Language       string
}

// DefaultConfig returns recognition settings tuned for ticket text.
func DefaultConfig() Config {
	return Config{
		PageSegMode:    SegAuto,
		EngineMode:     ModeLSTM,
		Whitelist:      TicketWhitelist,
		DPI:            300,
		PreserveSpaces: true,
		Language:       "eng",
	}
}

// Attempt is the result of running one adapter against one image variant.
type Attempt struct {
	Text       string
	Confidence float64 // engine-reported, 0-100
	Method     string  // adapter name plus variant label
}

// Adapter is a text-recognition backend.
type Adapter interface {
	// Name identifies the adapter in attempt labels and logs.
	Name() string
	// Available reports whether the backend can run in this environment.
	// Absence is a normal condition, not an error.
	Available() bool
	// Recognize runs one recognition pass. Implementations own an exclusive,
	// short-lived engine instance for the duration of the call and release
	// it on every exit path.
	Recognize(ctx context.Context, img image.Image, cfg Config) (Attempt, error)
}
