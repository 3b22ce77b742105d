// Command campaign-keeper starts the campaign state server.
//
// It supports two modes:
//  1. "server" (default) – runs the HTTP server exposing the REST API, WebSocket updates, metrics and an /mcp HTTP endpoint
//  2. "stdio-mcp" – runs an MCP stdio server and spins up an internal HTTP API if none is available
//
// Settings come from the environment (and a .env file); flags override them.
// An optional ngrok tunnel exposes the server during development.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/mark3labs/mcp-go/server"
	"github.com/wricardo/campaign-keeper/api"
	"github.com/wricardo/campaign-keeper/game/config"
	"github.com/wricardo/campaign-keeper/game/reference"
	"github.com/wricardo/campaign-keeper/game/service"
	"github.com/wricardo/campaign-keeper/game/session"
	"github.com/wricardo/campaign-keeper/transport/mcp"
	"github.com/wricardo/campaign-keeper/transport/websocket"
	"golang.ngrok.com/ngrok"
	ngrokConfig "golang.ngrok.com/ngrok/config"
)

// Version information
const (
	Version = "1.0.0"
	AppName = "Campaign Keeper"
)

// Flags override the environment when set explicitly.
var (
	port         = flag.Int("port", 8080, "HTTP server port (CAMPAIGN_PORT)")
	host         = flag.String("host", "localhost", "HTTP server host (CAMPAIGN_HOST)")
	dataDir      = flag.String("data-dir", "data", "Directory holding the campaign store (CAMPAIGN_DATA_DIR)")
	store        = flag.String("store", config.StoreFile, "Campaign store: file or badger (CAMPAIGN_STORE)")
	referenceDir = flag.String("reference-dir", "", "Directory of monster datasets overriding the embedded ones (REFERENCE_DIR)")
	debug        = flag.Bool("debug", false, "Enable debug logging (CAMPAIGN_DEBUG)")
	version      = flag.Bool("version", false, "Show version information")
	ngrokEnabled = flag.Bool("ngrok", false, "Enable ngrok tunnel (NGROK_ENABLED)")
	ngrokAuth    = flag.String("ngrok-auth", "", "Ngrok auth token (NGROK_AUTHTOKEN)")
	ngrokDomain  = flag.String("ngrok-domain", "", "Custom ngrok domain (NGROK_DOMAIN)")
)

func init() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [OPTIONS] [MODE]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "%s v%s\n\n", AppName, Version)
		fmt.Fprintf(os.Stderr, "Available modes:\n")
		fmt.Fprintf(os.Stderr, "  server, http     Run HTTP server with API, WebSocket, and MCP endpoint (default)\n")
		fmt.Fprintf(os.Stderr, "  stdio-mcp        Run MCP stdio server with internal HTTP server\n")
		fmt.Fprintf(os.Stderr, "  mcp-stdio        Alias for stdio-mcp\n")
		fmt.Fprintf(os.Stderr, "  mcp              Alias for stdio-mcp\n")
		fmt.Fprintf(os.Stderr, "\nOptions:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  %s                      # Run HTTP server on default port 8080\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s -store badger        # Keep the campaign in a badger database\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s stdio-mcp            # Run MCP stdio server\n", os.Args[0])
	}
}

// main parses flags, initializes services, and starts the selected mode.
func main() {
	// Load .env file if it exists
	envErr := godotenv.Load()

	flag.Parse()

	if *version {
		fmt.Printf("%s v%s\n", AppName, Version)
		os.Exit(0)
	}

	settings, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Invalid settings: %v\n", err)
		os.Exit(1)
	}
	applyFlags(flag.CommandLine, settings)
	if err := settings.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Invalid settings: %v\n", err)
		os.Exit(1)
	}

	// Logs go to stderr so the stdio MCP transport keeps stdout to itself
	logger := newLogger(os.Stderr, settings.Debug)
	slog.SetDefault(logger)
	if envErr != nil && !os.IsNotExist(envErr) {
		logger.Warn("error loading .env file", "error", envErr)
	}

	mode := "server"
	if args := flag.Args(); len(args) > 0 {
		mode = args[0]
	}
	logger.Info("starting", "app", AppName, "version", Version, "mode", mode)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, err := newApp(ctx, settings, logger)
	if err != nil {
		logger.Error("failed to initialize services", "error", err)
		os.Exit(1)
	}
	defer a.Close()

	switch mode {
	case "stdio-mcp", "mcp-stdio", "mcp":
		err = runStdioMCPWithInternalServer(ctx, a)
	case "server", "http":
		err = runHTTPServer(ctx, a)
	default:
		err = fmt.Errorf("unknown mode: %s. Use 'server' (default) or 'stdio-mcp'", mode)
	}
	if err != nil {
		logger.Error("server stopped", "error", err)
		a.Close()
		os.Exit(1)
	}
}

func newLogger(w io.Writer, debug bool) *slog.Logger {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// applyFlags copies explicitly set flags over the environment settings
func applyFlags(fs *flag.FlagSet, s *config.Settings) {
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "port":
			s.Port = *port
		case "host":
			s.Host = *host
		case "data-dir":
			s.DataDir = *dataDir
		case "store":
			s.Store = *store
		case "reference-dir":
			s.ReferenceDir = *referenceDir
		case "debug":
			s.Debug = *debug
		case "ngrok":
			s.Ngrok.Enabled = *ngrokEnabled
		case "ngrok-auth":
			s.Ngrok.AuthToken = *ngrokAuth
		case "ngrok-domain":
			s.Ngrok.Domain = *ngrokDomain
		}
	})
}

// app holds the wired services shared by both modes
type app struct {
	settings *config.Settings
	logger   *slog.Logger
	store    *session.Manager
	catalog  *reference.Manager
	hub      *websocket.Hub
	service  service.CampaignService

	closeOnce sync.Once
}

// newApp opens the campaign store and wires the pipeline. The websocket hub
// and the file watcher run until ctx is cancelled.
func newApp(ctx context.Context, settings *config.Settings, logger *slog.Logger) (*app, error) {
	catalog, err := reference.NewManager(settings.ReferenceDir, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to load reference data: %w", err)
	}

	store, err := session.Open(settings, logger)
	if err != nil {
		return nil, err
	}

	hub := websocket.NewHub(logger)
	go hub.Run(ctx)

	a := &app{
		settings: settings,
		logger:   logger,
		store:    store,
		catalog:  catalog,
		hub:      hub,
		service: service.NewCampaignService(store,
			service.WithNotifier(hub),
			service.WithMonsters(catalog),
			service.WithLogger(logger),
		),
	}

	if settings.Watch && settings.Store == config.StoreFile {
		go func() {
			onChange := session.ReloadOnChange(store, logger, a.broadcastReload)
			if err := session.Watch(ctx, settings.CampaignPath(), logger, onChange); err != nil {
				logger.Warn("campaign file watcher stopped", "error", err)
			}
		}()
	}
	return a, nil
}

// broadcastReload pushes a campaign edited outside the server to clients
func (a *app) broadcastReload() {
	c, err := a.store.Read()
	if err != nil {
		a.logger.Warn("failed to read reloaded campaign", "error", err)
		return
	}
	message := "Campaign reloaded."
	if c.DisableToasts {
		message = ""
	}
	a.hub.Notify(c, message)
}

// Close releases the campaign store
func (a *app) Close() {
	a.closeOnce.Do(func() {
		if err := a.store.Close(); err != nil {
			a.logger.Warn("failed to close campaign store", "error", err)
		}
	})
}

// mcpHandler serves MCP JSON-RPC messages over HTTP POST
func mcpHandler(mcpClient *mcp.Client) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != "POST" {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}

		body, err := io.ReadAll(r.Body)
		if err != nil {
			http.Error(w, "Failed to read request", http.StatusBadRequest)
			return
		}
		defer r.Body.Close()

		response := mcpClient.GetMCPServer().HandleMessage(r.Context(), body)

		w.Header().Set("Content-Type", "application/json")
		responseData, err := json.Marshal(response)
		if err != nil {
			http.Error(w, "Failed to marshal response", http.StatusInternalServerError)
			return
		}
		w.Write(responseData)
	}
}

// newRouter mounts the API server and the /mcp endpoint
func newRouter(a *app, baseURL string) http.Handler {
	mainRouter := http.NewServeMux()
	mainRouter.Handle("/", api.NewServer(a.service, a.hub, a.logger))
	mainRouter.HandleFunc("/mcp", mcpHandler(mcp.NewClient(baseURL)))
	return mainRouter
}

// runHTTPServer starts the HTTP server with REST API, WebSocket hub, and an /mcp proxy endpoint.
// If ngrok is enabled it also provisions a public tunnel. It returns after ctx is cancelled.
func runHTTPServer(ctx context.Context, a *app) error {
	addr := a.settings.Addr()
	mainRouter := newRouter(a, fmt.Sprintf("http://%s", addr))

	httpServer := &http.Server{
		Addr:         addr,
		Handler:      mainRouter,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	var wg sync.WaitGroup
	serveErr := make(chan error, 1)

	wg.Add(1)
	go func() {
		defer wg.Done()

		a.logger.Info("HTTP server listening",
			"addr", addr,
			"api", fmt.Sprintf("http://%s/api", addr),
			"websocket", fmt.Sprintf("ws://%s/ws", addr),
			"mcp", fmt.Sprintf("http://%s/mcp", addr))

		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
	}()

	if a.settings.Ngrok.Enabled {
		wg.Add(1)
		go func() {
			defer wg.Done()
			runNgrok(ctx, a.settings.Ngrok, mainRouter, a.logger)
		}()
	}

	var err error
	select {
	case <-ctx.Done():
		a.logger.Info("shutting down")
	case err = <-serveErr:
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if shutdownErr := httpServer.Shutdown(shutdownCtx); shutdownErr != nil {
		a.logger.Warn("HTTP server shutdown error", "error", shutdownErr)
	}

	wg.Wait()
	a.logger.Info("server stopped")
	return err
}

// runNgrok serves handler through an ngrok tunnel until ctx is cancelled
func runNgrok(ctx context.Context, settings config.NgrokSettings, handler http.Handler, logger *slog.Logger) {
	if settings.AuthToken == "" {
		logger.Warn("ngrok enabled but no auth token provided (use -ngrok-auth or NGROK_AUTHTOKEN)")
		return
	}

	logger.Info("starting ngrok tunnel")

	var tunnel ngrokConfig.Tunnel
	if settings.Domain != "" {
		tunnel = ngrokConfig.HTTPEndpoint(ngrokConfig.WithDomain(settings.Domain))
		logger.Info("using custom ngrok domain", "domain", settings.Domain)
	} else {
		tunnel = ngrokConfig.HTTPEndpoint()
	}

	tun, err := ngrok.Listen(ctx, tunnel, ngrok.WithAuthtoken(settings.AuthToken))
	if err != nil {
		logger.Warn("failed to start ngrok tunnel", "error", err)
		return
	}

	go func() {
		<-ctx.Done()
		if err := tun.Close(); err != nil {
			logger.Warn("failed to close ngrok tunnel", "error", err)
		}
	}()

	ngrokURL := tun.URL()
	logger.Info("ngrok tunnel established",
		"url", ngrokURL,
		"api", ngrokURL+"/api",
		"websocket", ngrokURL+"/ws",
		"mcp", ngrokURL+"/mcp")

	if err := http.Serve(tun, handler); err != nil && !errors.Is(err, http.ErrServerClosed) && ctx.Err() == nil {
		logger.Warn("ngrok server error", "error", err)
	}
	logger.Info("ngrok tunnel closed")
}

// runStdioMCPWithInternalServer runs an MCP stdio server.
// It tries to reuse an external API at the configured address; if unavailable, it
// starts an internal HTTP API bound to a random loopback port and targets that.
func runStdioMCPWithInternalServer(ctx context.Context, a *app) error {
	externalURL := fmt.Sprintf("http://%s", a.settings.Addr())
	baseURL := externalURL
	a.logger.Info("checking for external API server", "url", externalURL)

	testClient := &http.Client{Timeout: 2 * time.Second}
	resp, err := testClient.Get(externalURL + "/api/health")
	if err == nil && resp.StatusCode < 500 {
		resp.Body.Close()
		a.logger.Info("external API server found, using it for MCP", "url", externalURL)
	} else {
		a.logger.Info("no external API server found, starting internal HTTP server")

		listener, err := net.Listen("tcp", "127.0.0.1:0")
		if err != nil {
			return fmt.Errorf("failed to get available port: %w", err)
		}
		baseURL = fmt.Sprintf("http://%s", listener.Addr().String())

		httpServer := &http.Server{
			Handler: api.NewServer(a.service, a.hub, a.logger),
		}
		go func() {
			if err := httpServer.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
				a.logger.Warn("internal HTTP server error", "error", err)
			}
		}()
		defer httpServer.Close()

		a.logger.Info("internal HTTP server started", "url", baseURL)
	}

	mcpClient := mcp.NewClient(baseURL)
	a.logger.Info("MCP stdio server ready", "api", baseURL)

	if err := server.ServeStdio(mcpClient.GetMCPServer()); err != nil {
		return fmt.Errorf("MCP stdio server error: %w", err)
	}
	return nil
}
