package main

import (
	"context"
	"database/sql"
	"errors"
	"html/template"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"golang.org/x/time/rate"

	"github.com/hardwarehub/alucalc/internal/catalog"
	"github.com/hardwarehub/alucalc/internal/config"
	"github.com/hardwarehub/alucalc/internal/db"
	"github.com/hardwarehub/alucalc/internal/logging"
	"github.com/hardwarehub/alucalc/internal/migrations"
	"github.com/hardwarehub/alucalc/internal/pricing"
	"github.com/hardwarehub/alucalc/internal/ratestore"
	"github.com/hardwarehub/alucalc/internal/seed"
)

const templateDir = "web/templates"

type server struct {
	db          *sql.DB
	rates       pricing.RateBook
	catalog     catalog.Store
	limiter     *ipRateLimiter
	templateDir string
	now         func() time.Time
}

type baseViewData struct {
	ErrorMessage   string
	SuccessMessage string
}

func main() {
	logging.Setup()
	cfg := config.Load()
	ctx := context.Background()

	database, err := db.Open(ctx, cfg.DBPath)
	if err != nil {
		logging.Fatal("failed to open database", "error", err)
	}
	defer database.Close()

	if cfg.IsDev() {
		version, err := migrations.Up(ctx, database, cfg.MigrationsDir)
		if err != nil {
			logging.Fatal("failed to run database migrations", "error", err)
		}
		slog.Info("database migrated", "version", version)
	}

	stats, err := seed.Run(ctx, database, seed.Config{RatesFile: cfg.RatesFile})
	if err != nil {
		logging.Fatal("failed to seed rate tables", "error", err)
	}

	rates, err := ratestore.LoadActive(ctx, database)
	if err != nil {
		logging.Fatal("failed to load rate tables", "error", err)
	}
	slog.Info("rate tables loaded", "version", rates.Version, "activated", stats.Active, "inserted", stats.Inserts)

	srv := &server{
		db:          database,
		rates:       rates,
		catalog:     catalog.Store{Dir: cfg.CatalogDir},
		limiter:     newIPRateLimiter(rate.Limit(cfg.RateLimitRPS), cfg.RateLimitBurst),
		templateDir: templateDir,
		now:         time.Now,
	}

	httpServer := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      srv.routes(),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	go func() {
		slog.Info("listening", "addr", httpServer.Addr)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logging.Fatal("server stopped", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		slog.Error("server shutdown", "error", err)
	}
}

func (s *server) routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(logging.Requests)
	r.Use(middleware.Recoverer)

	r.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(http.Dir("web/static"))))
	r.Get("/", s.handleHome)
	r.Get("/calculators/{product}", s.handleCalculator)
	r.Get("/calculators/{product}/print.pdf", s.handleCalculatorPDF)

	r.Route("/api", func(r chi.Router) {
		if s.limiter != nil {
			r.Use(s.limiter.limitMiddleware)
		}
		r.Post("/quotes/batch", s.handleQuoteBatch)
		r.Post("/quotes/{product}", s.handleQuoteAPI)
		r.Get("/rates", s.handleRates)
		r.Get("/rates/versions", s.handleRateVersions)
		r.Get("/collections", s.handleCollections)
		r.Get("/collections/{slug}", s.handleCollection)
	})

	return r
}

func (s *server) renderTemplate(w http.ResponseWriter, status int, page string, data any) {
	templates, err := template.ParseFiles(
		s.templateDir+"/layout.html",
		s.templateDir+"/"+page,
	)
	if err != nil {
		slog.Error("parse template", "page", page, "error", err)
		http.Error(w, "failed to parse template", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := templates.ExecuteTemplate(w, "layout.html", data); err != nil {
		slog.Error("render template", "page", page, "error", err)
	}
}
