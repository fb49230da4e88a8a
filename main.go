package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/KincaidYang/whoisparser/config"
	"github.com/KincaidYang/whoisparser/handle_resources"
	"github.com/KincaidYang/whoisparser/logger"
	"github.com/KincaidYang/whoisparser/mcp_tools"
	"github.com/KincaidYang/whoisparser/metrics"
	"github.com/KincaidYang/whoisparser/utils"
	"github.com/jessevdk/go-flags"
)

// Options are the command line options of the server.
type Options struct {
	Config string `short:"c" long:"config" description:"Configuration file (default: config.yaml, config.yml or config.json)"`
}

// resourceFromPath extracts the queried name from a request path.
func resourceFromPath(path string) string {
	return strings.ToLower(strings.Trim(path, "/"))
}

// handler serves domain lookups, bounded by the concurrency limiter.
func handler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		w.Header().Set("Allow", "GET, HEAD")
		utils.WriteJSON(w, http.StatusMethodNotAllowed, utils.ErrorResponse{Error: "Method not allowed"})
		return
	}

	resource := resourceFromPath(r.URL.Path)
	if resource == "" {
		utils.HandleHTTPError(w, utils.ErrorTypeBadRequest, "Missing domain name")
		return
	}

	if config.ConcurrencyLimiter != nil {
		if len(config.ConcurrencyLimiter) == cap(config.ConcurrencyLimiter) {
			logger.Module("server").Info("concurrency limit reached, waiting for a slot")
		}
		select {
		case config.ConcurrencyLimiter <- struct{}{}:
		case <-r.Context().Done():
			return
		}
		defer func() { <-config.ConcurrencyLimiter }()
	}
	config.Wg.Add(1)
	defer config.Wg.Done()
	metrics.InFlight.Inc()
	defer metrics.InFlight.Dec()

	handle_resources.HandleDomain(r.Context(), w, resource)
}

// newMux wires every endpoint of the service.
func newMux() *http.ServeMux {
	limiter := utils.NewIPRateLimiter(config.RequestsPerMinute, config.Burst)

	mux := http.NewServeMux()
	mux.Handle("/", limiter.Middleware(http.HandlerFunc(handler)))
	mux.Handle("/interpret", limiter.Middleware(http.HandlerFunc(handle_resources.HandleInterpret)))
	mux.HandleFunc("/health", handle_resources.HandleHealth)
	mux.HandleFunc("/ready", handle_resources.HandleReady)
	mux.HandleFunc("/info", handle_resources.HandleInfo)
	mux.Handle("/metrics", metrics.Handler())
	mux.Handle("/mcp", mcp_tools.Handler(mcp_tools.NewServer(config.Version)))
	return mux
}

func run(configPath string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if err := logger.Init(logger.Options{Env: cfg.Log.Env, File: cfg.Log.File, Level: cfg.Log.Level}); err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer logger.Sync()

	if err := config.Init(cfg); err != nil {
		return err
	}
	log := logger.Module("server")

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", config.Port),
		Handler:           newMux(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Infow("server listening", "port", config.Port, "version", config.Version)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	// On shutdown, stop accepting requests and let running lookups finish.
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	select {
	case err := <-errCh:
		return fmt.Errorf("server failed: %w", err)
	case <-sigCh:
	}

	log.Info("received shutdown signal, waiting for running lookups")
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.Warnw("server shutdown", "error", err)
	}
	config.Wg.Wait()

	log.Info("all lookups completed, shutting down")
	return config.RedisClient.Close()
}

func main() {
	var opts Options
	if _, err := flags.Parse(&opts); err != nil {
		if flags.WroteHelp(err) {
			return
		}
		os.Exit(2)
	}

	if err := run(opts.Config); err != nil {
		fmt.Fprintln(os.Stderr, "whoisparser:", err)
		os.Exit(1)
	}
}
