package main

import (
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/sirupsen/logrus"

	"github.com/takumikoubou/mitsumori/internal/catalog"
	"github.com/takumikoubou/mitsumori/internal/config"
	"github.com/takumikoubou/mitsumori/internal/db"
	"github.com/takumikoubou/mitsumori/internal/estimate"
	"github.com/takumikoubou/mitsumori/internal/history"
	"github.com/takumikoubou/mitsumori/internal/kvstore"
	"github.com/takumikoubou/mitsumori/internal/migrations"
	"github.com/takumikoubou/mitsumori/internal/pricing"
	"github.com/takumikoubou/mitsumori/internal/seed"
)

// worksheetInputs are the scalar fields of the estimate being composed.
// They live next to the builder as session state and are only persisted as
// part of a saved quote.
type worksheetInputs struct {
	ProductName               string
	LaborDays                 float64
	DailyLaborRate            float64
	MaterialProfitRatePercent float64
	ProjectProfitRatePercent  float64
	EstimateNumber            string
}

type server struct {
	// One operator, one session: every read or mutation of the stores and
	// the builder goes through mu. This also serializes saves, so same-day
	// estimate numbering cannot race.
	mu      sync.Mutex
	catalog *catalog.Store
	history *history.Store
	builder *estimate.Builder
	inputs  worksheetInputs
	result  *pricing.Result
	groups  []pricing.CategoryGroup
	log     *logrus.Logger
	now     func() time.Time
}

func main() {
	cfg := config.Load()

	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	database, err := db.Open(cfg.DBPath)
	if err != nil {
		log.Fatalf("failed to open database: %v", err)
	}
	defer database.Close()

	if cfg.IsDev() {
		if err := migrations.Up(database, "migrations"); err != nil {
			log.Fatalf("failed to run database migrations: %v", err)
		}
	}

	kv := kvstore.NewSQLite(database)

	stats, err := seed.Run(kv)
	if err != nil {
		log.Fatalf("failed to seed default catalog: %v", err)
	}
	if stats.Inserts > 0 {
		logger.WithField("inserts", stats.Inserts).Info("seeded default catalog")
	}

	srv, err := newServer(kv, cfg.Categories, logger, time.Now)
	if err != nil {
		log.Fatalf("failed to load stores: %v", err)
	}

	r := newRouter(srv)
	r.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(http.Dir("web/static"))))

	addr := ":" + cfg.Port
	logger.WithField("addr", addr).Info("listening")
	if err := http.ListenAndServe(addr, r); err != nil {
		log.Fatalf("server stopped: %v", err)
	}
}

// newServer loads both stores and pre-stages the next estimate number.
func newServer(kv kvstore.Store, categories []string, logger *logrus.Logger, now func() time.Time) (*server, error) {
	catalogStore := catalog.NewStore(kv, categories)
	if err := catalogStore.Load(); err != nil {
		return nil, err
	}

	historyStore := history.NewStore(kv, now)
	if err := historyStore.Load(); err != nil {
		return nil, err
	}

	srv := &server{
		catalog: catalogStore,
		history: historyStore,
		builder: estimate.NewBuilder(),
		log:     logger,
		now:     now,
	}
	srv.inputs.EstimateNumber = historyStore.NextNumber(now())
	return srv, nil
}

func newRouter(s *server) *chi.Mux {
	r := chi.NewRouter()

	r.Get("/", s.handleHome)
	r.Post("/estimate", s.handleWorksheet)

	r.Get("/history/{id}/load", s.handleHistoryLoad)
	r.Post("/history/{id}/delete", s.handleHistoryDelete)
	r.Get("/history/{id}/export", s.handleHistoryExport)

	r.Get("/admin/materials", s.handleAdminMaterialsForm)
	r.Post("/admin/materials", s.handleAdminMaterialsCreate)
	r.Post("/admin/materials/prices", s.handleAdminMaterialsPrices)

	return r
}
