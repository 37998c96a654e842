// Package httpapi exposes the frame registry over HTTP.
package httpapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/signalsfoundry/solarwcs/core"
	"github.com/signalsfoundry/solarwcs/internal/config"
	"github.com/signalsfoundry/solarwcs/internal/document"
	"github.com/signalsfoundry/solarwcs/internal/logging"
	"github.com/signalsfoundry/solarwcs/internal/observability"
	"github.com/signalsfoundry/solarwcs/registry"
	"github.com/signalsfoundry/solarwcs/wcs"
)

const (
	// FITSContentType selects the FITS codec for request and response bodies.
	FITSContentType = "application/fits"

	maxBodyBytes = 8 << 20
)

var (
	// ErrNoMapping is reported when no registered translator accepts the input.
	ErrNoMapping = errors.New("no frame mapping")
	// ErrBadRequest is reported for undecodable request bodies or parameters.
	ErrBadRequest = errors.New("bad request")
)

// Server serves translation requests against a registry.
type Server struct {
	registry   *registry.Registry
	collector  *observability.TranslationCollector
	log        logging.Logger
	projection string
}

// Option configures a Server.
type Option func(*Server)

// WithCollector enables request metrics and the /metrics endpoint.
func WithCollector(c *observability.TranslationCollector) Option {
	return func(s *Server) { s.collector = c }
}

// WithDefaultProjection sets the projection used when a request names none.
func WithDefaultProjection(p string) Option {
	return func(s *Server) {
		if p != "" {
			s.projection = p
		}
	}
}

// New builds a Server. A nil registry means the process-wide registry with
// the solar translators registered.
func New(reg *registry.Registry, log logging.Logger, opts ...Option) *Server {
	if reg == nil {
		reg = core.RegisterDefault()
	}
	if log == nil {
		log = logging.Noop()
	}
	s := &Server{registry: reg, log: log}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Handler returns the routed HTTP handler.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(requestIDMiddleware(s.log))
	r.Use(tracingMiddleware())
	r.Use(metricsMiddleware(s.collector))

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	if s.collector != nil {
		r.Method(http.MethodGet, "/metrics", s.collector.Handler())
	}
	r.Post("/v1/frame", s.handleFrame)
	r.Post("/v1/header", s.handleHeader)
	return r
}

func (s *Server) handleFrame(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := requestLogger(ctx, s.log)

	h, err := decodeHeader(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	f, ok := s.registry.FrameForHeader(ctx, h)
	if !ok {
		log.Info(ctx, "no frame for header", logging.Any("ctypes", h.Types()))
		writeError(w, http.StatusNotFound, ErrNoMapping)
		return
	}

	doc, err := document.FromFrame(f)
	if err != nil {
		log.Warn(ctx, "translator returned a frame with no document form", logging.Err(err))
		writeError(w, http.StatusUnprocessableEntity, err)
		return
	}
	writeJSON(w, http.StatusOK, doc)
}

func (s *Server) handleHeader(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := requestLogger(ctx, s.log)

	projection := strings.ToUpper(r.URL.Query().Get("projection"))
	if projection == "" {
		projection = s.projection
	}
	if projection != "" && !config.ValidProjection(projection) {
		writeError(w, http.StatusBadRequest, fmt.Errorf("%w: projection %q", ErrBadRequest, projection))
		return
	}

	var doc document.FrameDoc
	if err := decodeJSON(r, &doc); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	f, err := doc.ToFrame()
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	h, ok := s.registry.HeaderForFrame(ctx, f, projection)
	if !ok {
		log.Info(ctx, "no header for frame", logging.String("frame", doc.Frame))
		writeError(w, http.StatusNotFound, ErrNoMapping)
		return
	}

	if acceptsFITS(r) {
		w.Header().Set("Content-Type", FITSContentType)
		w.WriteHeader(http.StatusOK)
		if err := wcs.WriteFITS(w, h); err != nil {
			log.Error(ctx, "failed to encode FITS response", logging.Err(err))
		}
		return
	}
	writeJSON(w, http.StatusOK, document.FromHeader(h))
}

func decodeHeader(r *http.Request) (*wcs.Header, error) {
	if isFITS(r.Header.Get("Content-Type")) {
		h, err := wcs.ReadFITS(http.MaxBytesReader(nil, r.Body, maxBodyBytes))
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrBadRequest, err)
		}
		return h, nil
	}

	var doc document.HeaderDoc
	if err := decodeJSON(r, &doc); err != nil {
		return nil, err
	}
	return doc.ToHeader()
}

func decodeJSON(r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(nil, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		if errors.Is(err, io.EOF) {
			return fmt.Errorf("%w: empty body", ErrBadRequest)
		}
		return fmt.Errorf("%w: %w", ErrBadRequest, err)
	}
	return nil
}

func isFITS(contentType string) bool {
	mt, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return false
	}
	return mt == FITSContentType || mt == "image/fits"
}

func acceptsFITS(r *http.Request) bool {
	for _, part := range strings.Split(r.Header.Get("Accept"), ",") {
		if isFITS(strings.TrimSpace(part)) {
			return true
		}
	}
	return false
}

type errorBody struct {
	Error string `json:"error"`
}

func writeError(w http.ResponseWriter, code int, err error) {
	writeJSON(w, code, errorBody{Error: err.Error()})
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}
