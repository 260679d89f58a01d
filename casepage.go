// Package casepage is a small server-rendered case viewer built with Go,
// Echo, and templ. It serves a landing page and a per-case detail page under
// /Q/:caseId, each wrapped in its own layout.
//
// Components are supplied through ViewFuncs, so a site can replace any layout
// or page while casepage keeps the routing, middleware, and view tracking.
package casepage

import (
	"context"
	"fmt"
	"io/fs"
	"log"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/a-h/templ"
	"github.com/labstack/echo/v4"
	glog "github.com/labstack/gommon/log"

	"github.com/eringen/casepage/views"
)

// ViewFuncs holds the templ components the handlers compose. Document wraps
// a layout, and a layout wraps a page.
type ViewFuncs struct {
	Document      func(meta PageMeta, body templ.Component) templ.Component
	LandingLayout func(children templ.Component) templ.Component
	CaseLayout    func(children templ.Component) templ.Component
	Landing       func(data views.LandingData) templ.Component
	CaseDetail    func(caseID string) templ.Component
	NotFound      func() templ.Component
	ServerError   func() templ.Component
}

// DefaultViews returns the components from the views package.
func DefaultViews() ViewFuncs {
	return ViewFuncs{
		Document:      views.Document,
		LandingLayout: views.LandingLayout,
		CaseLayout:    views.CaseLayout,
		Landing:       views.Landing,
		CaseDetail:    views.CaseDetail,
		NotFound:      views.NotFound,
		ServerError:   views.ServerError,
	}
}

func (v ViewFuncs) merge(o ViewFuncs) ViewFuncs {
	if o.Document != nil {
		v.Document = o.Document
	}
	if o.LandingLayout != nil {
		v.LandingLayout = o.LandingLayout
	}
	if o.CaseLayout != nil {
		v.CaseLayout = o.CaseLayout
	}
	if o.Landing != nil {
		v.Landing = o.Landing
	}
	if o.CaseDetail != nil {
		v.CaseDetail = o.CaseDetail
	}
	if o.NotFound != nil {
		v.NotFound = o.NotFound
	}
	if o.ServerError != nil {
		v.ServerError = o.ServerError
	}
	return v
}

// App is the central casepage application. It wires together the store,
// cache, handlers, middleware, and components.
type App struct {
	Config SiteConfig
	Echo   *echo.Echo
	Store  *Store
	Cache  *TopCasesCache
	Views  ViewFuncs

	viewLimiter  *ViewLimiter
	stopCleanup  func()
	customRoutes []func(*App)
	staticDir    string
}

// New creates a casepage App with the given configuration.
func New(cfg SiteConfig, opts ...Option) *App {
	cfg.setDefaults()

	a := &App{
		Config:    cfg,
		Echo:      echo.New(),
		Views:     DefaultViews(),
		staticDir: "public",
	}
	a.Echo.HideBanner = true

	for _, opt := range opts {
		opt(a)
	}

	return a
}

// Init opens the database and sets up middleware and routes. Start calls it;
// tests call it directly and drive a.Echo with httptest.
func (a *App) Init() error {
	if a.Config.SessionSecret == "" {
		return fmt.Errorf("casepage: SessionSecret is required")
	}

	lvl, err := parseLogLevel(a.Config.LogLevel)
	if err != nil {
		return fmt.Errorf("casepage: %w", err)
	}
	a.Echo.Logger.SetLevel(lvl)

	store, err := NewStore(a.Config.DatabasePath)
	if err != nil {
		return fmt.Errorf("casepage: init store: %w", err)
	}
	a.Store = store
	a.stopCleanup = store.StartCleanupScheduler(a.Config.ViewRetentionDays, 24*time.Hour, a.Echo.Logger)

	a.Cache = NewTopCasesCache(a.Store, a.Config.TopCasesLimit, a.Config.StatsCacheTTL)
	a.viewLimiter = NewViewLimiter(1, a.Config.ViewWindow)

	a.setupMiddleware()
	a.setupRoutes()

	for _, fn := range a.customRoutes {
		fn(a)
	}
	return nil
}

// Start initializes the app and serves until the server is shut down.
func (a *App) Start() error {
	if err := a.Init(); err != nil {
		return err
	}
	a.Echo.Logger.Infof("casepage listening on %s", a.Config.Addr)
	if err := a.Echo.Start(a.Config.Addr); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Shutdown stops accepting requests and waits for in-flight ones.
func (a *App) Shutdown(ctx context.Context) error {
	return a.Echo.Shutdown(ctx)
}

func (a *App) setupRoutes() {
	e := a.Echo

	embeddedFS, _ := fs.Sub(EmbeddedAssets, "embedded")
	embeddedHandler := http.FileServer(http.FS(embeddedFS))
	e.GET(views.StylesheetPath, echo.WrapHandler(http.StripPrefix("/public/", embeddedHandler)))

	e.Static("/public", a.staticDir)
	e.GET("/robots.txt", handleRobots)
	e.GET("/healthz", handleHealth)

	e.GET("/", a.handleLanding)
	e.GET("/open", handleOpenCase)
	e.GET("/Q", handleCaseIndex)
	e.GET("/Q/:"+CaseIDParam, a.handleCase)
}

// Close cleans up resources. Call this when the app is shutting down.
func (a *App) Close() error {
	if a.stopCleanup != nil {
		a.stopCleanup()
	}
	if a.viewLimiter != nil {
		a.viewLimiter.Close()
	}
	if a.Store != nil {
		return a.Store.Close()
	}
	return nil
}

func parseLogLevel(s string) (glog.Lvl, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return glog.DEBUG, nil
	case "info", "":
		return glog.INFO, nil
	case "warn", "warning":
		return glog.WARN, nil
	case "error":
		return glog.ERROR, nil
	case "off":
		return glog.OFF, nil
	}
	return 0, fmt.Errorf("unknown log level %q", s)
}

// EnvOr returns the value of the environment variable key, or fallback if empty.
func EnvOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// MustEnv returns the value of the environment variable key, or fatally exits if empty.
func MustEnv(key string) string {
	v := os.Getenv(key)
	if v == "" {
		log.Fatalf("casepage: required environment variable %s is not set", key)
	}
	return v
}
