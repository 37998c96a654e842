// Command solarwcs translates between FITS WCS headers and solar frames.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/signalsfoundry/solarwcs/core"
	"github.com/signalsfoundry/solarwcs/internal/config"
	"github.com/signalsfoundry/solarwcs/internal/document"
	"github.com/signalsfoundry/solarwcs/internal/httpapi"
	"github.com/signalsfoundry/solarwcs/internal/logging"
	"github.com/signalsfoundry/solarwcs/internal/observability"
	"github.com/signalsfoundry/solarwcs/registry"
	"github.com/signalsfoundry/solarwcs/wcs"
)

const usage = `usage: solarwcs <command> [flags]

commands:
  frame <file.fits|header.yaml>                      print the frame a header describes
  header [-projection P] [-o out.fits] <frame.yaml>  print or write the header for a frame
  serve [-addr :8080]                                run the HTTP translation service
`

var (
	errUsage     = errors.New("usage")
	errNoMapping = errors.New("no frame mapping")
)

func main() {
	if err := run(context.Background(), os.Args[1:], os.Stdout, os.Stderr); err != nil {
		if !errors.Is(err, errUsage) {
			fmt.Fprintln(os.Stderr, "solarwcs:", err)
		}
		if errors.Is(err, errNoMapping) {
			os.Exit(2)
		}
		os.Exit(1)
	}
}

// app is the wiring shared by every subcommand.
type app struct {
	cfg       config.Config
	log       logging.Logger
	registry  *registry.Registry
	collector *observability.TranslationCollector
}

func newApp(stderr io.Writer) (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	cfg.Log.Output = stderr
	log := logging.New(cfg.Log)

	collector, err := observability.NewTranslationCollector(nil)
	if err != nil {
		return nil, fmt.Errorf("init metrics: %w", err)
	}

	reg := registry.New(registry.WithLogger(log), registry.WithRecorder(collector))
	core.Register(reg)

	return &app{cfg: cfg, log: log, registry: reg, collector: collector}, nil
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	if len(args) == 0 {
		fmt.Fprint(stderr, usage)
		return errUsage
	}

	a, err := newApp(stderr)
	if err != nil {
		return err
	}

	shutdown, err := observability.InitTracing(ctx, a.cfg.Tracing, a.log)
	if err != nil {
		return err
	}
	defer observability.ShutdownWithTimeout(context.Background(), shutdown, a.log)

	switch args[0] {
	case "frame":
		return a.frame(ctx, args[1:], stdout, stderr)
	case "header":
		return a.header(ctx, args[1:], stdout, stderr)
	case "serve":
		return a.serve(ctx, args[1:], stderr)
	case "help", "-h", "--help":
		fmt.Fprint(stdout, usage)
		return nil
	default:
		fmt.Fprintf(stderr, "unknown command %q\n\n%s", args[0], usage)
		return errUsage
	}
}

func (a *app) frame(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("frame", flag.ContinueOnError)
	fs.SetOutput(stderr)
	if err := fs.Parse(args); err != nil {
		return errUsage
	}
	if fs.NArg() != 1 {
		fmt.Fprint(stderr, usage)
		return errUsage
	}
	path := fs.Arg(0)

	h, err := readHeader(path)
	if err != nil {
		return err
	}

	f, ok := a.registry.FrameForHeader(ctx, h)
	if !ok {
		return fmt.Errorf("%w: %s (ctypes %v)", errNoMapping, path, h.Types())
	}
	doc, err := document.FromFrame(f)
	if err != nil {
		return err
	}
	return writeYAML(stdout, doc)
}

func (a *app) header(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("header", flag.ContinueOnError)
	fs.SetOutput(stderr)
	projection := fs.String("projection", a.cfg.Projection, "three-letter projection code for projected frames")
	out := fs.String("o", "", "write the header to this FITS file instead of printing YAML")
	if err := fs.Parse(args); err != nil {
		return errUsage
	}
	if fs.NArg() != 1 {
		fmt.Fprint(stderr, usage)
		return errUsage
	}
	proj := strings.ToUpper(*projection)
	if !config.ValidProjection(proj) {
		return fmt.Errorf("%w: %q", config.ErrInvalidProjection, *projection)
	}

	data, err := os.ReadFile(fs.Arg(0))
	if err != nil {
		return err
	}
	var doc document.FrameDoc
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("decode %s: %w", fs.Arg(0), err)
	}
	f, err := doc.ToFrame()
	if err != nil {
		return err
	}

	h, ok := a.registry.HeaderForFrame(ctx, f, proj)
	if !ok {
		return fmt.Errorf("%w: %s", errNoMapping, doc.Frame)
	}

	if *out == "" {
		return writeYAML(stdout, document.FromHeader(h))
	}
	if err := writeFITSFile(*out, h); err != nil {
		return err
	}
	a.log.Info(ctx, "wrote fits header", logging.String("path", *out), logging.Any("ctypes", h.Types()))
	return nil
}

func (a *app) serve(ctx context.Context, args []string, stderr io.Writer) error {
	fs := flag.NewFlagSet("serve", flag.ContinueOnError)
	fs.SetOutput(stderr)
	addr := fs.String("addr", a.cfg.HTTPAddr, "HTTP listen address")
	if err := fs.Parse(args); err != nil {
		return errUsage
	}

	api := httpapi.New(a.registry, a.log,
		httpapi.WithCollector(a.collector),
		httpapi.WithDefaultProjection(a.cfg.Projection),
	)
	srv := &http.Server{
		Addr:              *addr,
		Handler:           api.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		a.log.Info(ctx, "starting solarwcs HTTP server", logging.String("addr", *addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	stopCtx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	case <-stopCtx.Done():
	}

	a.log.Info(ctx, "shutting down solarwcs HTTP server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

func readHeader(path string) (*wcs.Header, error) {
	if isFITSPath(path) {
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		return wcs.ReadFITS(f)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var doc document.HeaderDoc
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return doc.ToHeader()
}

func isFITSPath(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".fits", ".fit", ".fts":
		return true
	}
	return false
}

func writeFITSFile(path string, h *wcs.Header) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := wcs.WriteFITS(f, h); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

func writeYAML(w io.Writer, v any) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return err
	}
	return enc.Close()
}
