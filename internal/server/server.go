package server

import (
	"context"
	"database/sql"
	"fmt"
	"io/fs"
	"net/http"
	"os"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humago"

	"github.com/joeblew999/plat-assets/internal/api"
	"github.com/joeblew999/plat-assets/internal/api/viewer"
	"github.com/joeblew999/plat-assets/internal/asset"
	"github.com/joeblew999/plat-assets/internal/cobrand/bathnes"
	"github.com/joeblew999/plat-assets/internal/config"
	"github.com/joeblew999/plat-assets/internal/ctxlog"
	"github.com/joeblew999/plat-assets/internal/db"
	"github.com/joeblew999/plat-assets/internal/pinprefix"
	"github.com/joeblew999/plat-assets/internal/service"
	"github.com/joeblew999/plat-assets/internal/templates"
	"github.com/joeblew999/plat-assets/web"
)

// Config holds the server configuration.
type Config struct {
	Host         string
	Port         string
	DataDir      string
	WebDir       string // overrides the embedded web/ directory when set
	MapsEnabled  bool
	PinPrefix    string
	LayerVersion int
	DefaultsFile string
	NoDB         bool
}

const viewerPage = "templates/viewer.html"

// Server is the asset layer HTTP server.
type Server struct {
	config   Config
	mux      *http.ServeMux
	humaAPI  huma.API
	db       *sql.DB
	webFS    fs.FS
	bus      *service.EventBus
	assets   *service.AssetService
	defaults asset.LayerConfig
	platform asset.Platform
	renderer *templates.Renderer
}

// New builds the server and registers the cobrand's asset layers.
func New(ctx context.Context, cfg Config) (*Server, error) {
	log := ctxlog.FromContext(ctx)

	defaults, err := config.Defaults(bathnes.Defaults(), cfg.DefaultsFile)
	if err != nil {
		return nil, err
	}

	var webFS fs.FS = web.FS
	if cfg.WebDir != "" {
		webFS = os.DirFS(cfg.WebDir)
	}

	mux := http.NewServeMux()
	humaConfig := huma.DefaultConfig("plat-assets API", "1.0.0")
	humaConfig.Info.Description = "Asset layer registry for the bathnes cobrand: WFS sources, styling rules and popup attributes."
	humaConfig.Servers = []*huma.Server{
		{URL: fmt.Sprintf("http://%s:%s", cfg.Host, cfg.Port), Description: "Local server"},
	}
	// No $schema property in responses
	humaConfig.CreateHooks = []func(huma.Config) huma.Config{}
	humaConfig.Transformers = append(humaConfig.Transformers, api.LinkTransformer())

	s := &Server{
		config:   cfg,
		mux:      mux,
		humaAPI:  humago.New(mux, humaConfig),
		webFS:    webFS,
		bus:      service.NewEventBus(16),
		defaults: defaults,
	}

	var recorder service.Recorder
	if !cfg.NoDB {
		conn, err := db.Get(db.Config{DataDir: cfg.DataDir, DBName: "assets"})
		if err != nil {
			log.Warn("registration ledger unavailable", "err", err)
		} else {
			s.db = conn
			recorder = db.NewLedger(conn)
		}
	}
	s.assets = service.NewAssetService(ctx, s.bus, recorder)

	if r, err := templates.New(webFS); err == nil {
		s.renderer = r
	} else {
		log.Warn("fragment templates not loaded", "err", err)
	}

	s.platform = asset.Platform{
		MapsEnabled: cfg.MapsEnabled,
		PinPrefix:   s.resolvePinPrefix(),
	}
	asset.Setup(ctx, s.platform, s.assets, bathnes.Layers(defaults, cfg.LayerVersion)...)

	s.routes()
	return s, nil
}

func (s *Server) resolvePinPrefix() string {
	page, err := s.webFS.Open(viewerPage)
	if err != nil {
		return pinprefix.Resolve(s.config.PinPrefix, nil)
	}
	defer page.Close()
	return pinprefix.Resolve(s.config.PinPrefix, page)
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

// OpenAPI returns the generated OpenAPI document.
func (s *Server) OpenAPI() *huma.OpenAPI {
	return s.humaAPI.OpenAPI()
}

// Assets returns the registrar holding the registered layers.
func (s *Server) Assets() *service.AssetService {
	return s.assets
}

// Platform returns what the server told the registrar about the page.
func (s *Server) Platform() asset.Platform {
	return s.platform
}

// Close closes server resources.
func (s *Server) Close() error {
	if s.db == nil {
		return nil
	}
	return db.Close()
}

func (s *Server) routes() {
	api.RegisterRoutes(s.humaAPI, &api.Services{Asset: s.assets, Defaults: s.defaults})
	api.NewInfoHandler("bathnes", s.config.DataDir, s.platform.PinPrefix, s.platform.MapsEnabled, s.db != nil).
		RegisterRoutes(s.humaAPI)
	api.NewDBHandler(s.db).RegisterRoutes(s.humaAPI)

	if s.renderer != nil {
		viewer.NewAssetHandler(s.assets, s.bus, s.renderer).RegisterRoutes(s.humaAPI)
	}

	s.mux.HandleFunc("/viewer", s.handleViewer)
	s.mux.HandleFunc("/", s.handleRoot)
}

func (s *Server) handleRoot(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	http.Redirect(w, r, "/viewer", http.StatusFound)
}

func (s *Server) handleViewer(w http.ResponseWriter, r *http.Request) {
	http.ServeFileFS(w, r, s.webFS, viewerPage)
}
