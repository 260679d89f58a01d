package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/eringen/casepage"
)

// version is set at build time via ldflags.
var version = "dev"

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "serve":
		if err := runServe(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case "version":
		fmt.Printf("casepage %s\n", version)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", os.Args[1])
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`casepage - a server-rendered case viewer built with Go, Echo, and templ

Usage:
  casepage <command>

Commands:
  serve         Start the HTTP server (configured from the environment)
  version       Print the casepage version
  help          Show this help message

Environment:
  SESSION_SECRET       required
  SITE_NAME, SITE_URL, SITE_DESCRIPTION, ADDR, DATABASE_PATH, STATIC_DIR,
  COOKIE_SECURE, STATS_CACHE_TTL, VIEW_WINDOW, VIEW_RETENTION_DAYS, LOG_LEVEL`)
}

func runServe() error {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("load .env: %w", err)
	}

	cfg, err := configFromEnv()
	if err != nil {
		return err
	}

	app := casepage.New(cfg, casepage.WithStaticDir(casepage.EnvOr("STATIC_DIR", "public")))
	defer app.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errc := make(chan error, 1)
	go func() { errc <- app.Start() }()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := app.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return <-errc
}

func configFromEnv() (casepage.SiteConfig, error) {
	cfg := casepage.SiteConfig{
		Name:          os.Getenv("SITE_NAME"),
		URL:           os.Getenv("SITE_URL"),
		Description:   os.Getenv("SITE_DESCRIPTION"),
		Addr:          os.Getenv("ADDR"),
		DatabasePath:  os.Getenv("DATABASE_PATH"),
		SessionSecret: casepage.MustEnv("SESSION_SECRET"),
		LogLevel:      os.Getenv("LOG_LEVEL"),
	}

	var err error
	if v := os.Getenv("COOKIE_SECURE"); v != "" {
		if cfg.CookieSecure, err = strconv.ParseBool(v); err != nil {
			return cfg, fmt.Errorf("COOKIE_SECURE: %w", err)
		}
	}
	if v := os.Getenv("STATS_CACHE_TTL"); v != "" {
		if cfg.StatsCacheTTL, err = time.ParseDuration(v); err != nil {
			return cfg, fmt.Errorf("STATS_CACHE_TTL: %w", err)
		}
	}
	if v := os.Getenv("VIEW_WINDOW"); v != "" {
		if cfg.ViewWindow, err = time.ParseDuration(v); err != nil {
			return cfg, fmt.Errorf("VIEW_WINDOW: %w", err)
		}
		if cfg.ViewWindow <= 0 {
			return cfg, fmt.Errorf("VIEW_WINDOW must be positive")
		}
	}
	if v := os.Getenv("VIEW_RETENTION_DAYS"); v != "" {
		if cfg.ViewRetentionDays, err = strconv.Atoi(v); err != nil {
			return cfg, fmt.Errorf("VIEW_RETENTION_DAYS: %w", err)
		}
	}
	return cfg, nil
}
