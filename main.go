package main

import (
	"encoding/json"
	stdlog "log"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/patrickmn/go-cache"
	"github.com/username/brokerledger/backend/src/config"
	"github.com/username/brokerledger/backend/src/database"
	"github.com/username/brokerledger/backend/src/handlers"
	"github.com/username/brokerledger/backend/src/logger"
	"github.com/username/brokerledger/backend/src/services"
	"golang.org/x/time/rate"
)

var limiter = rate.NewLimiter(rate.Every(100*time.Millisecond), 30)

func rateLimitMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !limiter.Allow() {
			http.Error(w, http.StatusText(http.StatusTooManyRequests), http.StatusTooManyRequests)
			logger.L.Warn("Rate limit exceeded", "path", r.URL.Path)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")
		allowedOrigins := make(map[string]bool, len(config.Cfg.AllowedOrigins))
		for _, o := range config.Cfg.AllowedOrigins {
			allowedOrigins[o] = true
		}

		if allowedOrigins[origin] {
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Access-Control-Allow-Credentials", "true")
			w.Header().Set("Access-Control-Allow-Methods", "POST, GET, OPTIONS, PUT, DELETE, PATCH")
			w.Header().Set("Access-Control-Allow-Headers", "Accept, Content-Type, Content-Length, Accept-Encoding, Authorization, X-Requested-With")
		} else if origin == "" {
			w.Header().Set("Access-Control-Allow-Origin", "*")
		}

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func main() {
	config.LoadConfig()
	logger.InitLogger(config.Cfg.LogLevel)

	logger.L.Info("BrokerLedger backend server starting...")

	logger.L.Info("Initializing database...", "path", config.Cfg.DatabasePath)
	database.InitDB(config.Cfg.DatabasePath)
	database.RunMigrations(config.Cfg.DatabasePath)

	reportCache := cache.New(cache.NoExpiration, 10*time.Minute)

	priceService := services.NewPriceService(config.Cfg.PriceCacheTTL)
	reportService := services.NewReportService(database.DB, priceService, reportCache)
	stagingService := services.NewStagingService(database.DB, config.Cfg.StagingTTL, reportService)

	ingestHandler := handlers.NewIngestHandler(stagingService)
	reportHandler := handlers.NewReportHandler(reportService)
	aliasHandler := handlers.NewAliasHandler(database.DB, reportService)

	r := chi.NewRouter()

	r.Use(middleware.Recoverer)
	r.Use(handlers.ContextualLoggerMiddleware)
	r.Use(enableCORS)
	r.Use(rateLimitMiddleware)

	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{"message": "BrokerLedger Backend is running"})
	})

	r.Route("/api", func(r chi.Router) {
		r.Post("/ingest/preview", ingestHandler.HandleIngestPreview)
		r.Post("/ingest/commit", ingestHandler.HandleIngestCommit)

		r.Get("/dashboard", reportHandler.HandleGetDashboard)
		r.Get("/reports/summary", reportHandler.HandleGetSummary)
		r.Get("/reports/realized", reportHandler.HandleGetRealized)

		r.Get("/symbols/aliases", aliasHandler.HandleGetAliases)
		r.Post("/symbols/aliases", aliasHandler.HandleSaveAliases)
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasPrefix(r.URL.Path, "/api/") {
			http.NotFound(w, r)
		}
	})

	serverAddr := ":" + config.Cfg.Port
	server := &http.Server{
		Addr:         serverAddr,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	logger.L.Info("Server starting", "address", serverAddr)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		stdlog.Fatalf("Failed to start server: %v", err)
	}
}
