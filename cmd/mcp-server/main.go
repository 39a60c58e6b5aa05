package main

import (
	"context"
	"crypto/subtle"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/sirupsen/logrus"

	"github.com/stitts-dev/efootball-stats/internal/chat"
	"github.com/stitts-dev/efootball-stats/internal/models"
	"github.com/stitts-dev/efootball-stats/internal/services"
	"github.com/stitts-dev/efootball-stats/pkg/config"
	"github.com/stitts-dev/efootball-stats/pkg/database"
	"github.com/stitts-dev/efootball-stats/pkg/logger"
)

func main() {
	var (
		mcpPath  = flag.String("path", "/mcp", "HTTP path for MCP endpoint")
		seedOnly = flag.Bool("seed-only", false, "serve the seed dataset without connecting to the database")
	)
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}
	log := logger.InitLogger(cfg.LogLevel, cfg.IsDevelopment())

	players, closeStore := playerSource(cfg, *seedOnly, log)
	defer closeStore()

	modelCfg := chat.DefaultModelConfig()
	if cfg.LLMTemperature > 0 {
		modelCfg.Temperature = cfg.LLMTemperature
	}
	if cfg.LLMMaxTokens > 0 {
		modelCfg.MaxTokens = cfg.LLMMaxTokens
	}
	tools := &toolset{
		players: players,
		resolver: chat.NewResolver(services.NewGeminiClient(cfg, log), modelCfg,
			chat.WithTimeout(cfg.ExternalAPITimeout),
			chat.WithLogger(log),
		),
		topN: cfg.LeaderboardTopN,
	}

	server := mcp.NewServer(
		&mcp.Implementation{
			Name:    "efootball-stats-mcp",
			Version: "0.1.0",
		},
		nil,
	)
	registry := tools.register(server)

	handler := mcp.NewStreamableHTTPHandler(func(r *http.Request) *mcp.Server {
		return server
	}, &mcp.StreamableHTTPOptions{JSONResponse: true})

	withAuth := requireKey(strings.TrimSpace(os.Getenv("EFSTATS_MCP_API_KEY")))

	mux := http.NewServeMux()
	mux.HandleFunc("/health", withAuth(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	}))
	mux.HandleFunc("/tools", withAuth(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		b, _ := json.MarshalIndent(map[string]any{"tools": registry}, "", "  ")
		w.Write(b)
	}))
	mux.HandleFunc(*mcpPath, withAuth(handler.ServeHTTP))

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%s", cfg.MCPPort),
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		log.Infof("MCP HTTP server listening on :%s%s", cfg.MCPPort, *mcpPath)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("MCP server failed: %v", err)
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Errorf("MCP server forced to shutdown: %v", err)
	}
}

// playerSource reads snapshots from the API database, or from the seed when
// seedOnly is set or the database is unreachable.
func playerSource(cfg *config.Config, seedOnly bool, log *logrus.Logger) (func(context.Context) ([]models.PlayerCard, error), func()) {
	seed := func(context.Context) ([]models.PlayerCard, error) {
		return services.LoadSeed(cfg.SeedFile)
	}
	if seedOnly {
		return seed, func() {}
	}

	db, err := database.NewConnection(cfg.DatabaseDriver, cfg.DatabaseURL, false)
	if err != nil {
		log.WithError(err).Warn("Database unavailable, serving the seed dataset")
		return seed, func() {}
	}
	store := services.NewPlayerStore(db, nil, nil)
	return store.Snapshot, func() { db.Close() }
}

// requireKey checks the X-API-Key header or a bearer token when key is set.
func requireKey(key string) func(http.HandlerFunc) http.HandlerFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			if key == "" {
				next(w, r)
				return
			}
			got := strings.TrimSpace(r.Header.Get("X-API-Key"))
			if got == "" {
				if authz := r.Header.Get("Authorization"); strings.HasPrefix(strings.ToLower(authz), "bearer ") {
					got = strings.TrimSpace(authz[7:])
				}
			}
			if subtle.ConstantTimeCompare([]byte(got), []byte(key)) != 1 {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusUnauthorized)
				w.Write([]byte(`{"error":"unauthorized"}`))
				return
			}
			next(w, r)
		}
	}
}
