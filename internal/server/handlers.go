package server

import (
	"encoding/json"
	"net/http"

	"github.com/a-h/templ"

	"github.com/crabby-lang/website/internal/components"
	siteerrors "github.com/crabby-lang/website/internal/errors"
	"github.com/crabby-lang/website/internal/logging"
	"github.com/crabby-lang/website/internal/version"
)

func (s *PreviewServer) handleIndex(w http.ResponseWriter, r *http.Request) {
	perf := logging.StartOperation(s.logger, "render_homepage")
	page := s.renderer.Homepage(components.PageOptions{
		Title:      s.config.Site.Title,
		Tagline:    s.config.Site.Tagline,
		LiveReload: s.liveReloadEnabled(),
	}, s.Features())

	templ.Handler(page, templ.WithErrorHandler(s.renderErrorHandler)).ServeHTTP(w, r)
	perf.End(r.Context())
}

func (s *PreviewServer) handleFeatures(w http.ResponseWriter, r *http.Request) {
	section := s.renderer.Section(s.Features())
	templ.Handler(section, templ.WithErrorHandler(s.renderErrorHandler)).ServeHTTP(w, r)
}

func (s *PreviewServer) renderErrorHandler(r *http.Request, err error) http.Handler {
	renderErr := siteerrors.NewInternalError(siteerrors.CodeRenderFailed, "rendering failed", err).WithPath(r.URL.Path)
	s.logger.Error(r.Context(), renderErr, "Rendering failed")
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "render failed", http.StatusInternalServerError)
	})
}

// HealthResponse is the body of GET /health.
type HealthResponse struct {
	Status    string `json:"status"`
	Features  int    `json:"features"`
	Version   string `json:"version"`
	Release   bool   `json:"release"`
	HotReload bool   `json:"hot_reload"`
	Clients   int    `json:"clients"`
}

func (s *PreviewServer) handleHealth(w http.ResponseWriter, r *http.Request) {
	info := version.Get()
	resp := HealthResponse{
		Status:    "healthy",
		Features:  len(s.Features()),
		Version:   info.Short(),
		Release:   info.IsRelease(),
		HotReload: s.liveReloadEnabled(),
		Clients:   s.hub.count(),
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		s.logger.Warn(r.Context(), err, "Writing health response failed")
	}
}

func (s *PreviewServer) liveReloadEnabled() bool {
	return s.config.Development.HotReload && s.config.Site.FeaturesFile != ""
}
