// Package server implements the development preview for the homepage
// features section. It serves the rendered page and fragment, the static
// graphics, and a websocket that tells open pages to reload when the
// features file changes.
package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/crabby-lang/website/internal/assets"
	"github.com/crabby-lang/website/internal/components"
	"github.com/crabby-lang/website/internal/config"
	"github.com/crabby-lang/website/internal/features"
	"github.com/crabby-lang/website/internal/logging"
	"github.com/crabby-lang/website/internal/watcher"
)

const (
	reloadDebounce  = 150 * time.Millisecond
	shutdownTimeout = 5 * time.Second
)

// PreviewServer serves the homepage features with live reload.
type PreviewServer struct {
	config   *config.Config
	logger   logging.Logger
	icons    *assets.FSLoader
	renderer *components.Renderer
	hub      *hub

	featuresMutex sync.RWMutex
	features      features.List

	serverMutex sync.Mutex
	httpServer  *http.Server
	listenAddr  net.Addr
	watcher     *watcher.FileWatcher

	shutdownOnce sync.Once
}

// New creates a preview server and loads the initial feature list. A broken
// features file fails here; later reload failures keep the last good list.
func New(cfg *config.Config, logger logging.Logger) (*PreviewServer, error) {
	if logger == nil {
		logger = logging.Discard()
	}
	logger = logger.WithComponent("server")

	icons := assets.Embedded()
	if cfg.Site.AssetsDir != "" {
		icons = assets.DirLoader(cfg.Site.AssetsDir)
	}

	list, err := features.LoadOrDefault(cfg.Site.FeaturesFile)
	if err != nil {
		return nil, fmt.Errorf("loading features: %w", err)
	}

	s := &PreviewServer{
		config:   cfg,
		logger:   logger,
		icons:    icons,
		renderer: components.NewRenderer(components.WithIcons(icons), components.WithLogger(logger)),
		hub:      newHub(logger),
		features: list,
	}
	s.reportProblems(context.Background(), list)
	return s, nil
}

// Features returns the list currently being served.
func (s *PreviewServer) Features() features.List {
	s.featuresMutex.RLock()
	defer s.featuresMutex.RUnlock()
	return s.features.Clone()
}

func (s *PreviewServer) setFeatures(list features.List) {
	s.featuresMutex.Lock()
	defer s.featuresMutex.Unlock()
	s.features = list
}

// Reload re-reads the features file and tells connected pages to reload.
// On error the previous list stays in place.
func (s *PreviewServer) Reload(ctx context.Context) error {
	perf := logging.StartOperation(s.logger, "reload_features")
	list, err := features.LoadOrDefault(s.config.Site.FeaturesFile)
	if err != nil {
		perf.EndWithError(ctx, err)
		s.logger.Info(ctx, "Keeping previous feature list", "file", s.config.Site.FeaturesFile)
		return err
	}
	s.reportProblems(ctx, list)
	s.setFeatures(list)
	perf.End(ctx)

	s.logger.Info(ctx, "Features reloaded", "count", len(list), "titles", list.Titles())
	s.hub.broadcast(UpdateMessage{Type: MessageFullReload, Timestamp: time.Now()})
	return nil
}

// reportProblems logs validation findings. They never block rendering.
func (s *PreviewServer) reportProblems(ctx context.Context, list features.List) {
	if err := list.Validate(s.icons); err != nil {
		s.logger.Warn(ctx, err, "Feature list has problems; rendering anyway")
	}
}

// Handler returns the HTTP handler with all routes and middleware.
func (s *PreviewServer) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", s.handleIndex)
	mux.HandleFunc("GET /features", s.handleFeatures)
	mux.HandleFunc("GET /health", s.handleHealth)
	mux.HandleFunc("GET /ws", s.handleWebSocket)
	mux.Handle("GET /img/", http.FileServerFS(s.icons.FS()))

	return s.addMiddleware(mux)
}

// Start listens and serves until ctx is cancelled, then shuts down.
func (s *PreviewServer) Start(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.config.Addr())
	if err != nil {
		return fmt.Errorf("listening on %s: %w", s.config.Addr(), err)
	}
	return s.serve(ctx, ln)
}

func (s *PreviewServer) serve(ctx context.Context, ln net.Listener) error {
	if err := s.startWatcher(ctx); err != nil {
		s.logger.Warn(ctx, err, "Hot reload disabled")
	}

	srv := &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	s.serverMutex.Lock()
	s.httpServer = srv
	s.listenAddr = ln.Addr()
	s.serverMutex.Unlock()

	s.logger.Info(ctx, "Preview server listening", "addr", ln.Addr().String())

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Serve(ln)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if shutdownErr := s.Shutdown(shutdownCtx); shutdownErr != nil {
			s.logger.Warn(ctx, shutdownErr, "Cleanup after server error failed")
		}
		return fmt.Errorf("server error: %w", err)
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return s.Shutdown(shutdownCtx)
	}
}

// Addr returns the address the server is listening on, or nil before Start.
func (s *PreviewServer) Addr() net.Addr {
	s.serverMutex.Lock()
	defer s.serverMutex.Unlock()
	return s.listenAddr
}

func (s *PreviewServer) startWatcher(ctx context.Context) error {
	if !s.config.Development.HotReload || s.config.Site.FeaturesFile == "" {
		return nil
	}

	fw, err := watcher.NewFileWatcher(reloadDebounce, s.logger)
	if err != nil {
		return err
	}
	if err := fw.WatchFile(s.config.Site.FeaturesFile); err != nil {
		_ = fw.Stop()
		return fmt.Errorf("watching %s: %w", s.config.Site.FeaturesFile, err)
	}
	fw.AddHandler(func(events []watcher.ChangeEvent) error {
		for _, e := range events {
			s.logger.Debug(ctx, "Features file changed",
				"path", e.Path, "event", e.Type.String(), "size", e.Size, "mod_time", e.ModTime)
		}
		return s.Reload(ctx)
	})
	fw.Start(ctx)

	s.serverMutex.Lock()
	s.watcher = fw
	s.serverMutex.Unlock()
	return nil
}

// Shutdown gracefully shuts down the server and cleans up resources
func (s *PreviewServer) Shutdown(ctx context.Context) error {
	var shutdownErr error

	s.shutdownOnce.Do(func() {
		s.logger.Info(ctx, "Shutting down preview server")

		s.serverMutex.Lock()
		fw := s.watcher
		srv := s.httpServer
		s.serverMutex.Unlock()

		if fw != nil {
			if err := fw.Stop(); err != nil {
				s.logger.Warn(ctx, err, "Stopping file watcher failed")
			}
		}

		s.hub.closeAll()

		if srv != nil {
			shutdownErr = srv.Shutdown(ctx)
		}
	})

	return shutdownErr
}
