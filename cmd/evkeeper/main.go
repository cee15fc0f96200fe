package main

import (
	"context"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"runtime"
	"strings"
	"syscall"
	"time"

	"go-evkeeper/internal/pokemon"
	"go-evkeeper/internal/reference"
	"go-evkeeper/pkg/app"
	"go-evkeeper/pkg/config"
	"go-evkeeper/pkg/module"
	"go-evkeeper/pkg/pokeapi"
	"go-evkeeper/pkg/version"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	evkeeperMiddleware "go-evkeeper/pkg/middleware"

	_ "go.uber.org/automaxprocs"
)

// customLoggerMiddleware logs requests but excludes health check endpoints
func customLoggerMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.HasSuffix(r.URL.Path, "/health") {
			next.ServeHTTP(w, r)
			return
		}
		middleware.Logger(next).ServeHTTP(w, r)
	})
}

// corsMiddleware adds CORS headers for browser clients
func corsMiddleware(next http.Handler) http.Handler {
	allowedOrigin := config.GetEnv("CORS_ALLOWED_ORIGIN", "*")

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", allowedOrigin)
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PATCH, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Accept, Content-Type")
		w.Header().Set("Access-Control-Max-Age", "86400")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func main() {
	versionInfo := version.Get()
	log.Printf("evkeeper %s | build %s", version.GetVersionString(), versionInfo.BuildDate)
	log.Printf("CPUs: %d | GOMAXPROCS: %d", runtime.NumCPU(), runtime.GOMAXPROCS(0))

	ctx := context.Background()

	appCtx, err := app.InitializeApp("evkeeper")
	if err != nil {
		log.Fatalf("Failed to initialize application: %v", err)
	}
	defer appCtx.Shutdown(ctx)

	r := chi.NewRouter()

	r.Use(customLoggerMiddleware)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Timeout(60 * time.Second))
	r.Use(corsMiddleware)
	r.Use(evkeeperMiddleware.TracingMiddleware)

	r.Get("/health", healthHandler)

	// Shared PokeAPI client for the reference tier
	pokeClient := pokeapi.NewClient()

	referenceModule := reference.NewModule(appCtx.MongoDB, appCtx.Redis, pokeClient)
	pokemonModule := pokemon.NewModule(appCtx.MongoDB, appCtx.Redis, referenceModule.Resolver())

	modules := []module.Module{referenceModule, pokemonModule}

	apiPrefix := config.GetAPIPrefix()

	humaConfig := huma.DefaultConfig("EVKeeper API Server", "1.0.0")
	humaConfig.Info.Description = "Pokemon EV training tracker backed by cached PokeAPI reference data"

	var unifiedAPI huma.API
	if apiPrefix == "" {
		unifiedAPI = humachi.New(r, humaConfig)
	} else {
		r.Route(apiPrefix, func(prefixRouter chi.Router) {
			unifiedAPI = humachi.New(prefixRouter, humaConfig)
		})
	}

	referenceModule.RegisterUnifiedRoutes(unifiedAPI, "/reference")
	pokemonModule.RegisterUnifiedRoutes(unifiedAPI, "/pokemon")

	for _, mod := range modules {
		go mod.StartBackgroundTasks(ctx)
	}

	port := app.GetPort("8080")
	host := config.GetHost()

	srv := &http.Server{
		Addr:         host + ":" + port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	log.Printf("Server: http://%s:%s%s | OpenAPI: %s/openapi.json", host, port, apiPrefix, apiPrefix)

	go func() {
		slog.Info("Starting main API evkeeper server", slog.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("Main server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("Received shutdown signal, initiating graceful shutdown...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("Main server forced to shutdown", "error", err)
	}

	for _, mod := range modules {
		mod.Stop()
	}

	appCtx.Shutdown(shutdownCtx)

	slog.Info("EVKeeper shutdown completed successfully")
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)

	versionInfo := version.Get()
	w.Write([]byte(`{"status":"healthy","version":"` + versionInfo.Version + `"}`))
}
