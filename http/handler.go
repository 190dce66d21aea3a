package http

import (
	"context"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"

	"github.com/sagarc03/linkshelf"
)

type Service interface {
	List(ctx context.Context, segments []string, hostname string) (linkshelf.Listing, error)
}

type CORSConfig struct {
	Enabled          bool     `mapstructure:"enabled"`
	AllowedOrigins   []string `mapstructure:"allowed_origins"`
	AllowedMethods   []string `mapstructure:"allowed_methods"`
	AllowedHeaders   []string `mapstructure:"allowed_headers"`
	ExposedHeaders   []string `mapstructure:"exposed_headers"`
	AllowCredentials bool     `mapstructure:"allow_credentials"`
	MaxAge           int      `mapstructure:"max_age"`
}

type HandlerConfig struct {
	// ListingPath is the public prefix of listing URLs, e.g. "/downloads".
	ListingPath string
	// StripPrefix mounts the listing routes at "/" for proxies that remove
	// ListingPath before forwarding.
	StripPrefix bool
	Hosts       HostResolver
	CORS        CORSConfig
}

// Handler serves directory listings.
type Handler struct {
	config  HandlerConfig
	service Service
}

// NewHandler creates a new Handler with the given configuration and service.
func NewHandler(config *HandlerConfig, service Service) *Handler {
	return &Handler{
		config:  *config,
		service: service,
	}
}

func (h *Handler) mountPath() string {
	if h.config.StripPrefix {
		return ""
	}
	return strings.TrimRight(h.config.ListingPath, "/")
}

// Router returns an http.Handler with the listing routes. Only GET is
// routed; chi answers other methods with 405.
func (h *Handler) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(RequestLogger)

	if h.config.CORS.Enabled {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins:   h.config.CORS.AllowedOrigins,
			AllowedMethods:   h.config.CORS.AllowedMethods,
			AllowedHeaders:   h.config.CORS.AllowedHeaders,
			ExposedHeaders:   h.config.CORS.ExposedHeaders,
			AllowCredentials: h.config.CORS.AllowCredentials,
			MaxAge:           h.config.CORS.MaxAge,
		}))
	}

	mount := h.mountPath()
	if mount != "" {
		r.Get(mount, func(w http.ResponseWriter, r *http.Request) {
			http.Redirect(w, r, mount+"/", http.StatusMovedPermanently)
		})
	}
	r.Get(mount+"/*", h.handleList)

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		WriteError(w, r, http.StatusNotFound, "not_found", "Not found")
	})

	return r
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	if r.URL.RawQuery != "" {
		WriteError(w, r, http.StatusBadRequest, "invalid_query", "Query parameters are not accepted")
		return
	}

	hostname, err := h.config.Hosts.Resolve(r)
	if err != nil {
		HandleError(w, r, err)
		return
	}

	rest := strings.TrimPrefix(r.URL.EscapedPath(), h.mountPath())
	segments := linkshelf.SplitRequestPath(rest)

	listing, err := h.service.List(r.Context(), segments, hostname)
	if err != nil {
		HandleError(w, r, err)
		return
	}

	if wantsJSON(r) {
		_ = WriteJSON(w, http.StatusOK, listing)
		return
	}

	_ = WriteListing(w, http.StatusOK, listing)
}
