package pipeline

import (
	"context"
	"image"
	"time"

	"github.com/seatswap/ticketscan/internal/barcode"
	"github.com/seatswap/ticketscan/internal/engine"
	"github.com/seatswap/ticketscan/internal/fields"
	"github.com/seatswap/ticketscan/internal/preprocess"
	"github.com/seatswap/ticketscan/internal/score"
)

// Extract runs the strategy state machine against one ticket image and
// always returns a result: strategies short-circuit as soon as one clears
// its confidence threshold, and the final fallback selects the best attempt
// made so far. Poor extraction is reported in-band via a low confidence;
// even host-environment panics collapse to the zero-confidence sentinel.
func (p *Pipeline) Extract(ctx context.Context, img image.Image) (result *Result) {
	start := time.Now()
	defer func() {
		if r := recover(); r != nil {
			p.logger.Error("extraction panicked", "panic", r)
			result = sentinelResult()
		}
		observeExtraction(result.Method, result.Confidence, time.Since(start))
	}()

	if img == nil {
		return sentinelResult()
	}

	// Strategy 1: QR-first. A rich decoded payload is ground truth; skip
	// OCR entirely.
	payload, err := barcode.DecodeQR(ctx, img)
	if err != nil {
		p.logger.Warn("qr decode failed", "error", err)
		payload = nil
	}
	if payload != nil && payload.FieldCount() >= p.cfg.QRMinFields {
		return p.resultFromQR(payload)
	}

	adapter := p.primaryAdapter()
	if adapter == nil {
		p.logger.Warn("no OCR adapter available")
		return p.bestEffort(nil, payload)
	}

	var attempts []engine.Attempt

	// Strategy 2: fast pass on the unmodified image.
	if att, ok := p.recognize(ctx, adapter, img, p.cfg.Engine, "original"); ok {
		attempts = append(attempts, att)
		if att.Confidence > p.cfg.FastPassThreshold {
			return p.finalize(att, payload, MethodFast)
		}
	}

	// Strategy 3: advanced pass over preprocessed variants, sequentially.
	// Each recognition owns a whole engine instance; running variants in
	// parallel trades contention for no speedup.
	advCfg := p.cfg.Engine
	advCfg.PageSegMode = engine.SegSingleBlock
	advanced := p.advancedPass(ctx, adapter, img, advCfg)
	attempts = append(attempts, advanced...)
	if best := bestAttempt(advanced); best != nil && best.Confidence > p.cfg.AdvancedThreshold {
		return p.finalize(*best, payload, MethodAdvanced)
	}

	// Strategy 4: template pass in raw-line segmentation, specialized for
	// mobile-ticket label/value layouts.
	tmplCfg := p.cfg.Engine
	tmplCfg.PageSegMode = engine.SegRawLine
	if att, ok := p.recognize(ctx, adapter, img, tmplCfg, "raw-line"); ok {
		attempts = append(attempts, att)
		if res := p.templateResult(att, payload); res != nil {
			return res
		}
	}

	// Strategy 5: best-effort fallback over every attempt made.
	return p.bestEffort(attempts, payload)
}

// recognize runs one adapter invocation and logs failures; a failed attempt
// simply contributes nothing to the pool.
func (p *Pipeline) recognize(ctx context.Context, adapter engine.Adapter,
	img image.Image, cfg engine.Config, variant string,
) (engine.Attempt, bool) {
	att, err := adapter.Recognize(ctx, img, cfg)
	if err != nil {
		p.logger.Warn("recognition attempt failed",
			"adapter", adapter.Name(), "variant", variant, "error", err)
		return engine.Attempt{}, false
	}
	att.Method = adapter.Name() + "/" + variant
	p.logger.Debug("recognition attempt",
		"method", att.Method, "confidence", att.Confidence, "chars", len(att.Text))
	return att, true
}

// advancedPass generates the tuned variants and recognizes each. A variant
// that fails to generate falls back to the unmodified original image.
func (p *Pipeline) advancedPass(ctx context.Context, adapter engine.Adapter,
	img image.Image, cfg engine.Config,
) []engine.Attempt {
	var attempts []engine.Attempt
	profiles := p.profiles
	if len(profiles) > p.cfg.MaxVariants {
		profiles = profiles[:p.cfg.MaxVariants]
	}
	for _, profile := range profiles {
		var candidate image.Image
		variant, err := preprocess.Preprocess(img, profile.Label, profile.Options)
		if err != nil {
			p.logger.Warn("variant generation failed",
				"variant", profile.Label, "error", err)
			candidate = img
		} else {
			candidate = variant.Image
		}
		if att, ok := p.recognize(ctx, adapter, candidate, cfg, profile.Label); ok {
			attempts = append(attempts, att)
		}
	}
	return attempts
}

// templateResult accepts the raw-line attempt only when layout matching
// recovered an event name or date. Its confidence is the raw engine
// confidence plus a fixed boost, capped.
func (p *Pipeline) templateResult(att engine.Attempt, payload *barcode.Payload) *Result {
	normalized := fields.Normalize(att.Text)
	info, contributors := fields.Extract(normalized, payload)
	if info.EventName == "" && info.EventDate == "" {
		return nil
	}
	confidence := int(att.Confidence) + p.cfg.TemplateBoost
	if confidence > p.cfg.TemplateCap {
		confidence = p.cfg.TemplateCap
	}
	res := p.buildResult(info, att, payload, MethodTemplate, contributors)
	res.Confidence = confidence
	return res
}

// bestEffort returns the best of all attempts, or the sentinel when there is
// none. This step cannot fail to produce a result.
func (p *Pipeline) bestEffort(attempts []engine.Attempt, payload *barcode.Payload) *Result {
	best := bestAttempt(attempts)
	if best == nil {
		if payload != nil {
			// No OCR at all, but a thin QR payload still beats nothing.
			return p.resultFromQR(payload)
		}
		return sentinelResult()
	}
	return p.finalize(*best, payload, MethodFallback)
}

// finalize extracts structured fields from the winning attempt and scores
// the result.
func (p *Pipeline) finalize(att engine.Attempt, payload *barcode.Payload, method string) *Result {
	normalized := fields.Normalize(att.Text)
	info, contributors := fields.Extract(normalized, payload)
	res := p.buildResult(info, att, payload, method, contributors)
	res.Confidence = score.Score(att.Confidence, &info, payload != nil, p.cfg.Bonuses)
	return res
}

func (p *Pipeline) buildResult(info fields.Info, att engine.Attempt,
	payload *barcode.Payload, method string, contributors []string,
) *Result {
	return &Result{
		EventName:       info.EventName,
		EventDate:       info.EventDate,
		EventTime:       info.EventTime,
		Venue:           info.Venue,
		TicketType:      info.TicketType,
		OrderRef:        info.OrderRef,
		HolderName:      info.HolderName,
		LastEntry:       info.LastEntry,
		HasPersonalInfo: score.DetectPersonalInfo(&info, att.Text),
		RawText:         att.Text,
		Method:          method,
		Strategies:      contributors,
	}
}

// resultFromQR builds a result from the decoded payload alone.
func (p *Pipeline) resultFromQR(payload *barcode.Payload) *Result {
	info := fields.Info{
		EventName:  payload.EventName,
		EventDate:  fields.NormalizeDate(payload.EventDate),
		EventTime:  payload.EventTime,
		Venue:      payload.Venue,
		TicketType: payload.TicketType,
		OrderRef:   payload.OrderRef,
		HolderName: payload.HolderName,
	}
	confidence := p.cfg.QRConfidence
	if info.FieldCount() < p.cfg.QRMinFields {
		// Thin payload reached via the no-OCR fallback, not the short
		// circuit; score it honestly instead of asserting ground truth.
		confidence = score.Score(0, &info, true, p.cfg.Bonuses)
	}
	return &Result{
		EventName:       info.EventName,
		EventDate:       info.EventDate,
		EventTime:       info.EventTime,
		Venue:           info.Venue,
		TicketType:      info.TicketType,
		OrderRef:        info.OrderRef,
		HolderName:      info.HolderName,
		Confidence:      confidence,
		HasPersonalInfo: score.DetectPersonalInfo(&info, payload.Raw),
		RawText:         payload.Raw,
		Method:          MethodQR,
	}
}

// bestAttempt returns the attempt with the highest engine confidence.
func bestAttempt(attempts []engine.Attempt) *engine.Attempt {
	var best *engine.Attempt
	for i := range attempts {
		if best == nil || attempts[i].Confidence > best.Confidence {
			best = &attempts[i]
		}
	}
	return best
}
