// Package pipeline orchestrates the ticket extraction strategies: QR-first,
// fast single-pass OCR, multi-variant OCR, template matching, and a
// best-effort fallback over everything attempted.
package pipeline

import (
	"errors"
	"log/slog"

	"github.com/seatswap/ticketscan/internal/engine"
	"github.com/seatswap/ticketscan/internal/preprocess"
	"github.com/seatswap/ticketscan/internal/score"
)

// Config holds configuration for the extraction pipeline.
type Config struct {
	Engine engine.Config

	// Early-exit thresholds per strategy step.
	FastPassThreshold float64 // engine confidence needed to accept the fast pass
	AdvancedThreshold float64 // engine confidence needed to accept the best variant

	// Template pass tuning.
	TemplateBoost int // added to the raw engine confidence
	TemplateCap   int // upper bound after the boost

	// QR-first tuning. A decoded payload with at least QRMinFields
	// structured fields is treated as ground truth.
	QRMinFields  int
	QRConfidence int

	MaxVariants int // preprocessed variants tried by the advanced pass

	Bonuses score.Bonuses
}

// DefaultConfig returns the default pipeline configuration.
func DefaultConfig() Config {
	return Config{
		Engine:            engine.DefaultConfig(),
		FastPassThreshold: 80,
		AdvancedThreshold: 60,
		TemplateBoost:     10,
		TemplateCap:       90,
		QRMinFields:       3,
		QRConfidence:      95,
		MaxVariants:       3,
		Bonuses:           score.DefaultBonuses(),
	}
}

// Builder constructs a Pipeline with fluent configuration.
type Builder struct {
	cfg      Config
	adapters []engine.Adapter
	logger   *slog.Logger
}

// NewBuilder creates a pipeline builder with defaults.
func NewBuilder() *Builder { return &Builder{cfg: DefaultConfig()} }

// WithEngineConfig replaces the base recognition settings.
func (b *Builder) WithEngineConfig(cfg engine.Config) *Builder {
	b.cfg.Engine = cfg
	return b
}

// WithAdapters replaces the adapter set. Adapters are consulted in order;
// the first available one is the primary engine.
func (b *Builder) WithAdapters(adapters ...engine.Adapter) *Builder {
	b.adapters = adapters
	return b
}

// WithThresholds sets the fast and advanced early-exit thresholds (if > 0).
func (b *Builder) WithThresholds(fast, advanced float64) *Builder {
	if fast > 0 {
		b.cfg.FastPassThreshold = fast
	}
	if advanced > 0 {
		b.cfg.AdvancedThreshold = advanced
	}
	return b
}

// WithMaxVariants caps how many preprocessed variants the advanced pass
// tries.
func (b *Builder) WithMaxVariants(n int) *Builder {
	if n > 0 {
		b.cfg.MaxVariants = n
	}
	return b
}

// WithQRMinFields sets how many structured fields a decoded QR payload needs
// before it is trusted as ground truth (if > 0).
func (b *Builder) WithQRMinFields(n int) *Builder {
	if n > 0 {
		b.cfg.QRMinFields = n
	}
	return b
}

// WithBonuses replaces the confidence bonus table.
func (b *Builder) WithBonuses(bonuses score.Bonuses) *Builder {
	b.cfg.Bonuses = bonuses
	return b
}

// WithLogger sets the logger used for per-attempt diagnostics.
func (b *Builder) WithLogger(logger *slog.Logger) *Builder {
	b.logger = logger
	return b
}

// Config returns a copy of the current config.
func (b *Builder) Config() Config { return b.cfg }

// Validate checks that the configuration is coherent.
func (b *Builder) Validate() error {
	if b.cfg.FastPassThreshold < 0 || b.cfg.FastPassThreshold > 100 {
		return errors.New("fast pass threshold must be within [0, 100]")
	}
	if b.cfg.AdvancedThreshold < 0 || b.cfg.AdvancedThreshold > 100 {
		return errors.New("advanced threshold must be within [0, 100]")
	}
	if b.cfg.QRMinFields < 1 {
		return errors.New("qr min fields must be >= 1")
	}
	if b.cfg.MaxVariants < 1 {
		return errors.New("max variants must be >= 1")
	}
	return nil
}

// Build initializes the pipeline. Without explicit adapters, the linked
// Tesseract engine is primary and the system CLI detector is the optional
// second adapter.
func (b *Builder) Build() (*Pipeline, error) {
	if err := b.Validate(); err != nil {
		return nil, err
	}
	adapters := b.adapters
	if len(adapters) == 0 {
		adapters = []engine.Adapter{
			engine.NewTesseractAdapter(),
			engine.NewCLIAdapter(),
		}
	}
	logger := b.logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Pipeline{
		cfg:      b.cfg,
		adapters: adapters,
		profiles: preprocess.Profiles(),
		logger:   logger,
	}, nil
}

// Pipeline runs the multi-strategy extraction state machine. It holds no
// mutable per-request state; concurrent Extract calls do not share data.
type Pipeline struct {
	cfg      Config
	adapters []engine.Adapter
	profiles []preprocess.Profile
	logger   *slog.Logger
}

// Config returns the pipeline configuration.
func (p *Pipeline) Config() Config { return p.cfg }

// primaryAdapter returns the first available adapter, or nil when none can
// run in this environment.
func (p *Pipeline) primaryAdapter() engine.Adapter {
	for _, a := range p.adapters {
		if a.Available() {
			return a
		}
	}
	return nil
}
