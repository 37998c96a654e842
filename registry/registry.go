package registry

import (
	"context"
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/signalsfoundry/solarwcs/internal/logging"
	"github.com/signalsfoundry/solarwcs/model"
	"github.com/signalsfoundry/solarwcs/wcs"
)

const tracerName = "github.com/signalsfoundry/solarwcs/registry"

// Lookup directions and outcomes reported to a Recorder.
const (
	DirectionHeaderToFrame = "header_to_frame"
	DirectionFrameToHeader = "frame_to_header"

	OutcomeMatched   = "matched"
	OutcomeNoMapping = "no_mapping"
)

// HeaderTranslator maps a header to a frame. It reports false when the
// header does not describe a frame it knows.
type HeaderTranslator func(h *wcs.Header) (model.Frame, bool)

// FrameTranslator maps a frame to a header using the given projection code.
// It reports false for frames it does not support.
type FrameTranslator func(f model.Frame, projection string) (*wcs.Header, bool)

// Recorder receives one observation per lookup. translator is the name of
// the matching translator, or "" when none matched.
type Recorder interface {
	ObserveLookup(direction, translator, outcome string)
}

type headerEntry struct {
	name string
	fn   HeaderTranslator
}

type frameEntry struct {
	name string
	fn   FrameTranslator
}

// Registry holds the ordered translator lists consulted by generic
// header-to-frame and frame-to-header lookups.
type Registry struct {
	mu sync.RWMutex

	headerToFrame []headerEntry
	frameToHeader []frameEntry

	log      logging.Logger
	recorder Recorder
}

// Option configures a Registry.
type Option func(*Registry)

// WithLogger sets the logger used for lookup diagnostics.
func WithLogger(l logging.Logger) Option {
	return func(r *Registry) {
		if l != nil {
			r.log = l
		}
	}
}

// WithRecorder attaches a metrics recorder.
func WithRecorder(rec Recorder) Option {
	return func(r *Registry) { r.recorder = rec }
}

// New constructs an empty registry.
func New(opts ...Option) *Registry {
	r := &Registry{log: logging.Noop()}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

var defaultRegistry = New()

// Default returns the process-wide registry.
func Default() *Registry { return defaultRegistry }

// AddHeaderTranslator appends fn to the header-to-frame list.
func (r *Registry) AddHeaderTranslator(name string, fn HeaderTranslator) {
	if fn == nil {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.headerToFrame = append(r.headerToFrame, headerEntry{name: name, fn: fn})
}

// AddFrameTranslator appends fn to the frame-to-header list.
func (r *Registry) AddFrameTranslator(name string, fn FrameTranslator) {
	if fn == nil {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.frameToHeader = append(r.frameToHeader, frameEntry{name: name, fn: fn})
}

// HeaderTranslators returns the registered header-to-frame names in order.
func (r *Registry) HeaderTranslators() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, len(r.headerToFrame))
	for i, e := range r.headerToFrame {
		names[i] = e.name
	}
	return names
}

// FrameTranslators returns the registered frame-to-header names in order.
func (r *Registry) FrameTranslators() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, len(r.frameToHeader))
	for i, e := range r.frameToHeader {
		names[i] = e.name
	}
	return names
}

// FrameForHeader tries each header translator in registration order and
// returns the first frame produced.
func (r *Registry) FrameForHeader(ctx context.Context, h *wcs.Header) (model.Frame, bool) {
	r.mu.RLock()
	entries := append([]headerEntry(nil), r.headerToFrame...)
	r.mu.RUnlock()

	ctx, span := startSpan(ctx, "registry.FrameForHeader", len(entries))
	defer span.End()

	for _, e := range entries {
		if f, ok := e.fn(h); ok && f != nil {
			r.observe(ctx, span, DirectionHeaderToFrame, e.name, OutcomeMatched,
				logging.String("frame", f.Kind().String()))
			return f, true
		}
	}
	r.observe(ctx, span, DirectionHeaderToFrame, "", OutcomeNoMapping)
	return nil, false
}

// HeaderForFrame tries each frame translator in registration order and
// returns the first header produced.
func (r *Registry) HeaderForFrame(ctx context.Context, f model.Frame, projection string) (*wcs.Header, bool) {
	r.mu.RLock()
	entries := append([]frameEntry(nil), r.frameToHeader...)
	r.mu.RUnlock()

	ctx, span := startSpan(ctx, "registry.HeaderForFrame", len(entries))
	defer span.End()

	for _, e := range entries {
		if h, ok := e.fn(f, projection); ok && h != nil {
			r.observe(ctx, span, DirectionFrameToHeader, e.name, OutcomeMatched,
				logging.Any("ctype", h.Types()))
			return h, true
		}
	}
	r.observe(ctx, span, DirectionFrameToHeader, "", OutcomeNoMapping)
	return nil, false
}

func (r *Registry) observe(ctx context.Context, span trace.Span, direction, translator, outcome string, extra ...logging.Field) {
	span.SetAttributes(
		attribute.String("wcs.direction", direction),
		attribute.String("wcs.translator", translator),
		attribute.String("wcs.outcome", outcome),
	)
	if r.recorder != nil {
		r.recorder.ObserveLookup(direction, translator, outcome)
	}

	fields := append([]logging.Field{
		logging.String("direction", direction),
		logging.String("outcome", outcome),
	}, extra...)
	if translator != "" {
		fields = append(fields, logging.String("translator", translator))
	}
	r.log.Debug(ctx, "wcs frame lookup", fields...)
}

func startSpan(ctx context.Context, name string, candidates int) (context.Context, trace.Span) {
	if ctx == nil {
		ctx = context.Background()
	}
	return otel.Tracer(tracerName).Start(ctx, name,
		trace.WithAttributes(attribute.Int("wcs.candidates", candidates)))
}
