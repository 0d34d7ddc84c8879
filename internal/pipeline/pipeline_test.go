package pipeline

import (
	"context"
	"errors"
	"image"
	"io"
	"log/slog"
	"testing"

	"github.com/seatswap/ticketscan/internal/engine"
	"github.com/seatswap/ticketscan/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeAdapter scripts one attempt (or error) per page segmentation mode, which
// is enough to steer the pipeline into any strategy branch.
type fakeAdapter struct {
	name      string
	available bool
	calls     int
	attempts  map[engine.PageSegMode]engine.Attempt
	errs      map[engine.PageSegMode]error
}

func (f *fakeAdapter) Name() string {
	if f.name == "" {
		return "fake"
	}
	return f.name
}

func (f *fakeAdapter) Available() bool { return f.available }

func (f *fakeAdapter) Recognize(_ context.Context, _ image.Image, cfg engine.Config) (engine.Attempt, error) {
	f.calls++
	if err, ok := f.errs[cfg.PageSegMode]; ok {
		return engine.Attempt{}, err
	}
	att, ok := f.attempts[cfg.PageSegMode]
	if !ok {
		return engine.Attempt{}, errors.New("no scripted response")
	}
	return att, nil
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func buildPipeline(t *testing.T, fake *fakeAdapter, opts ...func(*Builder)) *Pipeline {
	t.Helper()
	b := NewBuilder().WithAdapters(fake).WithLogger(quietLogger())
	for _, opt := range opts {
		opt(b)
	}
	p, err := b.Build()
	require.NoError(t, err)
	return p
}

const ticketText = "Halloween Bash\n" +
	"Name\n" +
	"John Smith\n" +
	"Opening time\n" +
	"Saturday, 28 Oct 2023, 19:00 GMT+1"

func TestExtract_QRShortCircuitSkipsOCR(t *testing.T) {
	img, err := testutil.GenerateQRImage(`{"event":"Test Gig","date":"2025-12-31","venue":"Hall A"}`, 256)
	require.NoError(t, err)

	fake := &fakeAdapter{available: true}
	p := buildPipeline(t, fake)

	res := p.Extract(context.Background(), img)

	assert.Equal(t, MethodQR, res.Method)
	assert.Equal(t, 95, res.Confidence)
	assert.Equal(t, "Test Gig", res.EventName)
	assert.Equal(t, "2025-12-31", res.EventDate)
	assert.Equal(t, "Hall A", res.Venue)
	assert.Zero(t, fake.calls, "rich QR payload must skip OCR entirely")
}

func TestExtract_FastPass(t *testing.T) {
	fake := &fakeAdapter{
		available: true,
		attempts: map[engine.PageSegMode]engine.Attempt{
			engine.SegAuto: {Text: ticketText, Confidence: 90},
		},
	}
	p := buildPipeline(t, fake)

	ticket := testutil.GenerateTicketImage(testutil.DefaultTicketImageConfig())
	res := p.Extract(context.Background(), ticket)

	assert.Equal(t, MethodFast, res.Method)
	assert.Equal(t, 1, fake.calls)
	assert.Equal(t, "Halloween Bash", res.EventName)
	assert.Equal(t, "John Smith", res.HolderName)
	assert.Equal(t, "2023-10-28", res.EventDate)
	assert.Equal(t, "19:00", res.EventTime)
	assert.True(t, res.HasPersonalInfo)
	assert.Equal(t, 100, res.Confidence)
	assert.Contains(t, res.Strategies, "layout")
}

func TestExtract_AdvancedPass(t *testing.T) {
	fake := &fakeAdapter{
		available: true,
		attempts: map[engine.PageSegMode]engine.Attempt{
			engine.SegAuto:        {Text: "blurry junk", Confidence: 50},
			engine.SegSingleBlock: {Text: ticketText, Confidence: 70},
		},
	}
	p := buildPipeline(t, fake)

	ticket := testutil.GenerateTicketImage(testutil.DefaultTicketImageConfig())
	res := p.Extract(context.Background(), ticket)

	assert.Equal(t, MethodAdvanced, res.Method)
	// One fast attempt plus one attempt per preprocessing variant.
	assert.Equal(t, 1+DefaultConfig().MaxVariants, fake.calls)
	assert.Equal(t, "Halloween Bash", res.EventName)
}

func TestExtract_MaxVariantsHonored(t *testing.T) {
	fake := &fakeAdapter{
		available: true,
		attempts: map[engine.PageSegMode]engine.Attempt{
			engine.SegAuto:        {Text: "junk", Confidence: 10},
			engine.SegSingleBlock: {Text: ticketText, Confidence: 70},
		},
	}
	p := buildPipeline(t, fake, func(b *Builder) { b.WithMaxVariants(1) })

	res := p.Extract(context.Background(), testutil.GenerateNoiseImage(64, 64, 3))

	assert.Equal(t, MethodAdvanced, res.Method)
	assert.Equal(t, 2, fake.calls)
}

func TestExtract_TemplatePass(t *testing.T) {
	fake := &fakeAdapter{
		available: true,
		attempts: map[engine.PageSegMode]engine.Attempt{
			engine.SegAuto:        {Text: "junk", Confidence: 30},
			engine.SegSingleBlock: {Text: "more junk", Confidence: 40},
			engine.SegRawLine:     {Text: "Opening time\n28 Oct 2023", Confidence: 50},
		},
	}
	p := buildPipeline(t, fake)

	res := p.Extract(context.Background(), testutil.GenerateNoiseImage(64, 64, 3))

	assert.Equal(t, MethodTemplate, res.Method)
	assert.Equal(t, "2023-10-28", res.EventDate)
	// Raw engine confidence plus the template boost.
	assert.Equal(t, 60, res.Confidence)
}

func TestExtract_TemplateBoostCapped(t *testing.T) {
	fake := &fakeAdapter{
		available: true,
		attempts: map[engine.PageSegMode]engine.Attempt{
			engine.SegAuto:        {Text: "junk", Confidence: 30},
			engine.SegSingleBlock: {Text: "more junk", Confidence: 50},
			engine.SegRawLine:     {Text: "Opening time\n28 Oct 2023", Confidence: 85},
		},
	}
	p := buildPipeline(t, fake)

	res := p.Extract(context.Background(), testutil.GenerateNoiseImage(64, 64, 3))

	assert.Equal(t, MethodTemplate, res.Method)
	assert.Equal(t, DefaultConfig().TemplateCap, res.Confidence)
}

func TestExtract_FallbackPicksBestAttempt(t *testing.T) {
	fake := &fakeAdapter{
		available: true,
		attempts: map[engine.PageSegMode]engine.Attempt{
			engine.SegAuto:        {Text: "random noise text", Confidence: 30},
			engine.SegSingleBlock: {Text: "gibberish", Confidence: 40},
			engine.SegRawLine:     {Text: "no fields here", Confidence: 20},
		},
	}
	p := buildPipeline(t, fake)

	res := p.Extract(context.Background(), testutil.GenerateNoiseImage(64, 64, 3))

	assert.Equal(t, MethodFallback, res.Method)
	assert.Equal(t, "gibberish", res.RawText)
	assert.Equal(t, 28, res.Confidence) // 40 * 0.7, no field bonuses
}

func TestExtract_SentinelWhenNothingRecognized(t *testing.T) {
	fake := &fakeAdapter{
		available: true,
		errs: map[engine.PageSegMode]error{
			engine.SegAuto:        errors.New("boom"),
			engine.SegSingleBlock: errors.New("boom"),
			engine.SegRawLine:     errors.New("boom"),
		},
	}
	p := buildPipeline(t, fake)

	res := p.Extract(context.Background(), testutil.GenerateNoiseImage(64, 64, 3))

	assert.Equal(t, MethodNone, res.Method)
	assert.Equal(t, 0, res.Confidence)
	assert.Equal(t, "[no text recognized]", res.RawText)
	assert.False(t, res.HasPersonalInfo)
}

func TestExtract_ThinQRBeatsNothing(t *testing.T) {
	img, err := testutil.GenerateQRImage(`{"event":"Test Gig"}`, 256)
	require.NoError(t, err)

	fake := &fakeAdapter{
		available: true,
		errs: map[engine.PageSegMode]error{
			engine.SegAuto:        errors.New("boom"),
			engine.SegSingleBlock: errors.New("boom"),
			engine.SegRawLine:     errors.New("boom"),
		},
	}
	p := buildPipeline(t, fake)

	res := p.Extract(context.Background(), img)

	// A single-field payload is below the ground-truth bar, so it is scored
	// honestly instead of asserting QR confidence.
	assert.Equal(t, MethodQR, res.Method)
	assert.Equal(t, "Test Gig", res.EventName)
	assert.Equal(t, 30, res.Confidence) // event name bonus + QR presence
}

func TestExtract_NoAdapterAvailable(t *testing.T) {
	fake := &fakeAdapter{available: false}
	p := buildPipeline(t, fake)

	res := p.Extract(context.Background(), testutil.GenerateNoiseImage(64, 64, 3))

	assert.Equal(t, MethodNone, res.Method)
	assert.Equal(t, 0, res.Confidence)
	assert.Zero(t, fake.calls)
}

func TestExtract_SkipsUnavailableAdapter(t *testing.T) {
	missing := &fakeAdapter{name: "missing", available: false}
	working := &fakeAdapter{
		name:      "working",
		available: true,
		attempts: map[engine.PageSegMode]engine.Attempt{
			engine.SegAuto: {Text: ticketText, Confidence: 90},
		},
	}
	b := NewBuilder().WithAdapters(missing, working).WithLogger(quietLogger())
	p, err := b.Build()
	require.NoError(t, err)

	res := p.Extract(context.Background(), testutil.GenerateNoiseImage(64, 64, 3))

	assert.Equal(t, MethodFast, res.Method)
	assert.Zero(t, missing.calls)
	assert.Equal(t, 1, working.calls)
}

func TestExtract_NilImage(t *testing.T) {
	p := buildPipeline(t, &fakeAdapter{available: true})
	res := p.Extract(context.Background(), nil)
	assert.Equal(t, MethodNone, res.Method)
	assert.Equal(t, 0, res.Confidence)
}

func TestBuilder_Defaults(t *testing.T) {
	cfg := NewBuilder().Config()
	assert.Equal(t, 80.0, cfg.FastPassThreshold)
	assert.Equal(t, 60.0, cfg.AdvancedThreshold)
	assert.Equal(t, 10, cfg.TemplateBoost)
	assert.Equal(t, 90, cfg.TemplateCap)
	assert.Equal(t, 3, cfg.QRMinFields)
	assert.Equal(t, 95, cfg.QRConfidence)
	assert.Equal(t, 3, cfg.MaxVariants)
}

func TestBuilder_WithQRMinFields(t *testing.T) {
	assert.Equal(t, 4, NewBuilder().WithQRMinFields(4).Config().QRMinFields)
	// Non-positive values keep the default.
	assert.Equal(t, 3, NewBuilder().WithQRMinFields(0).Config().QRMinFields)
}

func TestExtract_RaisedQRMinFieldsDisablesShortCircuit(t *testing.T) {
	img, err := testutil.GenerateQRImage(`{"event":"Test Gig","date":"2025-12-31","venue":"Hall A"}`, 256)
	require.NoError(t, err)

	fake := &fakeAdapter{
		available: true,
		attempts: map[engine.PageSegMode]engine.Attempt{
			engine.SegAuto: {Text: ticketText, Confidence: 90},
		},
	}
	p := buildPipeline(t, fake, func(b *Builder) { b.WithQRMinFields(4) })

	res := p.Extract(context.Background(), img)

	// Three QR fields no longer clear the raised bar, so OCR runs and the
	// payload participates through fusion instead.
	assert.Equal(t, MethodFast, res.Method)
	assert.Equal(t, 1, fake.calls)
	assert.Equal(t, "Hall A", res.Venue)
}

func TestBuilder_InvalidThreshold(t *testing.T) {
	_, err := NewBuilder().WithThresholds(150, 0).Build()
	assert.Error(t, err)
}

func TestSentinelResult(t *testing.T) {
	res := sentinelResult()
	assert.Equal(t, 0, res.Confidence)
	assert.Equal(t, MethodNone, res.Method)
	assert.Equal(t, 0, res.FieldCount())
}
