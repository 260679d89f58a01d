package casepage

import "time"

// SiteConfig holds all configuration for a casepage site.
type SiteConfig struct {
	Name        string // Site name (default "Cases")
	URL         string // Canonical URL (default "http://localhost:3000")
	Description string // Shown on the landing page and in meta tags

	Addr         string // Listen address (default ":3000")
	DatabasePath string // SQLite path (default "data/cases.db")

	SessionSecret string // Required: session encryption secret
	CookieSecure  bool   // Set true for HTTPS

	StatsCacheTTL     time.Duration // Most-viewed list TTL (default 1min)
	TopCasesLimit     int           // Most-viewed list length (default 5)
	ViewWindow        time.Duration // One counted view per IP and case per window (default 10min)
	ViewRetentionDays int           // Drop cases not viewed for this long (default 365)

	LogLevel string // debug, info, warn, error, off (default "info")
}

func (c *SiteConfig) setDefaults() {
	if c.Name == "" {
		c.Name = "Cases"
	}
	if c.URL == "" {
		c.URL = "http://localhost:3000"
	}
	if c.Addr == "" {
		c.Addr = ":3000"
	}
	if c.DatabasePath == "" {
		c.DatabasePath = "data/cases.db"
	}
	if c.StatsCacheTTL <= 0 {
		c.StatsCacheTTL = time.Minute
	}
	if c.TopCasesLimit <= 0 {
		c.TopCasesLimit = 5
	}
	if c.ViewWindow <= 0 {
		c.ViewWindow = 10 * time.Minute
	}
	if c.ViewRetentionDays <= 0 {
		c.ViewRetentionDays = 365
	}
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
}

// Option configures additional App behavior.
type Option func(*App)

// WithCustomRoutes registers additional routes on the Echo instance.
// The callback runs after the built-in routes are set up.
func WithCustomRoutes(fn func(*App)) Option {
	return func(a *App) {
		a.customRoutes = append(a.customRoutes, fn)
	}
}

// WithStaticDir sets the directory for user-owned static assets (default "public").
func WithStaticDir(dir string) Option {
	return func(a *App) {
		a.staticDir = dir
	}
}

// WithViews overrides the default components. Nil fields keep the default.
func WithViews(v ViewFuncs) Option {
	return func(a *App) {
		a.Views = a.Views.merge(v)
	}
}
