// Package main provides the server entry point.
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/exec"
	"os/signal"
	"sort"
	"strings"
	"syscall"
	"time"

	"connectrpc.com/connect"
	"github.com/alecthomas/kingpin/v2"
	"github.com/cockroachdb/errors"
	"github.com/joho/godotenv"
	zlog "github.com/rs/zerolog/log"
	"github.com/samber/lo"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"

	apiconnect "github.com/osa030/musicbox/internal/api/connect"
	"github.com/osa030/musicbox/internal/api/transportv1"
	"github.com/osa030/musicbox/internal/app/filter"
	"github.com/osa030/musicbox/internal/app/session"
	"github.com/osa030/musicbox/internal/app/source"
	"github.com/osa030/musicbox/internal/infra/config"
	"github.com/osa030/musicbox/internal/infra/lastfm"
	"github.com/osa030/musicbox/internal/infra/logger"
	"github.com/osa030/musicbox/internal/infra/spotify"
)

var (
	app        = kingpin.New("musicbox-server", "musicbox playback server")
	configPath = app.Flag("config", "Path to config file").Default("config/server.yaml").String()
	verbose    = app.Flag("verbose", "Enable verbose (DEBUG) logging").Short('v').Bool()
	logfile    = app.Flag("logfile", "Path to log file (default: stdout)").String()

	// check-config command
	checkConfigCmd = app.Command("check-config", "Validate the config file and exit")

	// list-filters command
	listFiltersCmd = app.Command("list-filters", "List available catalog filters and exit")
)

func init() {
	// start command (default) - no need to store the command
	app.Command("start", "Start the server (default)").Default()
}

func main() {
	// Load .env file if it exists (errors are ignored)
	_ = godotenv.Load()

	// Parse command
	command := kingpin.MustParse(app.Parse(os.Args[1:]))

	// Handle list-filters command
	if command == listFiltersCmd.FullCommand() {
		printFilters()
		return
	}

	// Initialize logger
	loggerConfig := logger.Config{
		Output: "stdout",
		Level:  "info",
		File:   "",
	}
	// Override with command-line flags if specified
	if *verbose {
		loggerConfig.Level = "debug"
	}
	if *logfile != "" {
		loggerConfig.Output = "file"
		loggerConfig.File = *logfile
	}
	if err := logger.Init(loggerConfig); err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}

	// Load config
	zlog.Info().Msgf("Loading config from %s", *configPath)
	cfg, err := config.Load(*configPath)
	if err != nil {
		zlog.Fatal().Msgf("Failed to load config: %v", err)
	}

	if command == checkConfigCmd.FullCommand() {
		if _, err := filter.NewChainFromConfig(cfg); err != nil {
			zlog.Fatal().Msgf("Invalid filter config: %v", err)
		}
		fmt.Printf("%s: OK (%d catalog sources)\n", *configPath, len(cfg.Catalog.Sources))
		return
	}

	if err := run(cfg); err != nil {
		zlog.Error().Msgf("Server error: %+v", err)
		os.Exit(1)
	}
}

// run executes the main server logic. Using a separate function ensures
// defer statements are executed even when returning with an error.
func run(cfg *config.Config) error {
	ctx := context.Background()

	deps, err := newDependencies(ctx, cfg)
	if err != nil {
		return err
	}

	// Create catalog sources
	chain, err := source.NewChainFromConfig(ctx, cfg, deps)
	if err != nil {
		return errors.Wrap(err, "failed to create catalog sources")
	}

	// Create catalog filters
	filters, err := filter.NewChainFromConfig(cfg)
	if err != nil {
		return errors.Wrap(err, "failed to create catalog filters")
	}

	// Create session manager and load the catalog
	sessionMgr := session.NewManager(cfg, filter.NewSource(chain, filters))
	if err := sessionMgr.Start(ctx); err != nil {
		return errors.Wrap(err, "failed to start session")
	}
	defer sessionMgr.Close()

	// Create HTTP mux and register the service
	mux := http.NewServeMux()
	path, handler := transportv1.NewTransportServiceHandler(
		apiconnect.NewTransportService(sessionMgr, cfg),
		connect.WithInterceptors(apiconnect.NewTokenInterceptor(cfg.Server.Token)),
	)
	mux.Handle(path, handler)

	if cfg.Server.Token == "" {
		zlog.Warn().Msg("server.token is not set, RPCs are not authenticated")
	}

	// Create server with h2c (HTTP/2 cleartext) support
	server := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           h2c.NewHandler(mux, &http2.Server{}),
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Channel to capture server errors
	serverErrCh := make(chan error, 1)

	// Start server
	go func() {
		zlog.Info().Msgf("Starting server: addr=%s", cfg.Server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErrCh <- err
		}
	}()

	// Execute startup hook if configured (after server is running)
	executeHooks(cfg.Server.Hooks.OnStarted, "on_started")

	// Wait for shutdown signal or server error
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-sigCh:
		zlog.Info().Msg("Received shutdown signal...")
	case err := <-serverErrCh:
		return errors.Wrap(err, "server error")
	}

	// Graceful shutdown
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Stop session first to terminate notification streams
	if err := sessionMgr.Stop(shutdownCtx); err != nil {
		zlog.Error().Msgf("Failed to stop session: %v", err)
	}

	if err := server.Shutdown(shutdownCtx); err != nil {
		zlog.Error().Msgf("Failed to shutdown server: %v", err)
	}

	zlog.Info().Msg("Server stopped")

	// Execute shutdown hook if configured
	executeHooks(cfg.Server.Hooks.OnStopped, "on_stopped")

	return nil
}

// newDependencies creates the external clients needed by the configured
// catalog sources.
func newDependencies(ctx context.Context, cfg *config.Config) (source.Dependencies, error) {
	var deps source.Dependencies

	if !cfg.HasSourceType(config.SourceTypeSpotify) {
		return deps, nil
	}

	spotifyClient, err := spotify.New(ctx, spotify.Config{
		ClientID:     cfg.Spotify.ClientID,
		ClientSecret: cfg.Spotify.ClientSecret,
		RefreshToken: cfg.Spotify.RefreshToken,
		Market:       cfg.Spotify.Market,
	})
	if err != nil {
		return deps, errors.Wrap(err, "failed to create Spotify client")
	}
	deps.Spotify = spotifyClient

	if cfg.LastFm.APIKey != "" {
		lastfmClient, err := lastfm.New(lastfm.Config{APIKey: cfg.LastFm.APIKey})
		if err != nil {
			return deps, errors.Wrap(err, "failed to create Last.fm client")
		}
		deps.Tags = lastfmClient
	} else {
		zlog.Info().Msg("Last.fm API key not configured, spotify tracks use the default genre")
	}

	return deps, nil
}

// printFilters prints available filters.
func printFilters() {
	registry := filter.GetRegistered()
	names := lo.Keys(registry)
	sort.Strings(names)

	fmt.Println("Available Filters:")
	for _, name := range names {
		f := registry[name]()
		codes := strings.Join(f.ReturnCodes(), ", ")
		fmt.Printf("  %-30s - %s [codes: %s]\n", f.Name(), f.Description(), codes)
	}
}

// executeHooks runs a list of shell commands.
func executeHooks(hooks []string, stage string) {
	if len(hooks) == 0 {
		return
	}

	zlog.Info().Msgf("Executing %s hooks (%d commands)", stage, len(hooks))

	for _, hook := range hooks {
		zlog.Info().Msgf("Executing hook: %s", hook)
		// Use sh -c to allow shell features like redirection or pipes
		cmd := exec.Command("sh", "-c", hook)
		cmd.Stdout = os.Stdout
		cmd.Stderr = os.Stderr

		if err := cmd.Run(); err != nil {
			zlog.Error().Err(err).Msgf("Failed to execute hook: %s", hook)
		}
	}
}
