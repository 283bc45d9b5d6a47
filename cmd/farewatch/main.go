package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"farewatch-service/internal/domain/entity"
	domainrepo "farewatch-service/internal/domain/repository"
	"farewatch-service/internal/infrastructure/config"
	"farewatch-service/internal/infrastructure/oauth"
	"farewatch-service/internal/infrastructure/persistence"
	"farewatch-service/internal/infrastructure/router"
	"farewatch-service/internal/interface/delivery"
	interfacerepo "farewatch-service/internal/interface/repository"
	"farewatch-service/internal/interface/scraper"
	"farewatch-service/internal/usecase"
	"farewatch-service/pkg/logger"
	"farewatch-service/pkg/metrics"
	"farewatch-service/templates"

	"github.com/spf13/cobra"
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "farewatch",
		Short:         "Finds cheap round-trip flights from a fixed set of home airports",
		SilenceUsage:  true,
		SilenceErrors: false,
	}
	cmd.AddCommand(runCmd(), serveCmd(), tokenCmd())
	return cmd
}

// searchFlags carries the per-run search settings shared by run and serve.
type searchFlags struct {
	mode         string
	origins      []string
	destinations []string
	scrape       bool
	priceLimit   float64
	minHours     int
	maxStartHour int
	minDays      int
	maxDays      int
	startDate    string
	endDate      string
	dateFrom     string
	dateTo       string
	email        bool
}

const flagDateLayout = "02.01.2006"

func (f *searchFlags) register(cmd *cobra.Command) {
	flags := cmd.Flags()
	flags.StringVar(&f.mode, "mode", "duration", "trip mode: weekend or duration")
	flags.StringSliceVar(&f.origins, "origins", []string{"WRO", "POZ", "KTW"}, "origin airport IATA codes")
	flags.StringSliceVar(&f.destinations, "destinations", nil, "destination IATA codes, empty means all")
	flags.BoolVar(&f.scrape, "scrape", false, "scrape fresh data instead of reusing the cache")
	flags.Float64Var(&f.priceLimit, "price-limit", 500, "round-trip price limit in PLN")
	flags.IntVar(&f.minHours, "min-hours", 10, "weekend mode: minimum trip length in hours")
	flags.IntVar(&f.maxStartHour, "max-start-hour", 11, "weekend mode: latest departure hour")
	flags.IntVar(&f.minDays, "min-days", 4, "duration mode: minimum trip length in days")
	flags.IntVar(&f.maxDays, "max-days", 8, "duration mode: maximum trip length in days")
	flags.StringVar(&f.startDate, "start-date", "", "duration mode: earliest departure, dd.mm.yyyy")
	flags.StringVar(&f.endDate, "end-date", "", "duration mode: latest return, dd.mm.yyyy")
	flags.StringVar(&f.dateFrom, "date-from", "", "scrape window start, dd.mm.yyyy")
	flags.StringVar(&f.dateTo, "date-to", "", "scrape window end, dd.mm.yyyy")
	flags.BoolVar(&f.email, "email", false, "mail the report when Gmail delivery is configured")
}

func (f *searchFlags) toSearchConfig() (usecase.SearchConfig, error) {
	cfg := usecase.SearchConfig{
		Mode:         entity.TripMode(f.mode),
		Origins:      f.origins,
		Destinations: f.destinations,
		Scrape:       f.scrape,
		PriceLimit:   f.priceLimit,
		MinHours:     f.minHours,
		MaxStartHour: f.maxStartHour,
		MinDays:      f.minDays,
		MaxDays:      f.maxDays,
	}

	var err error
	if cfg.StartDate, err = parseFlagDate(f.startDate); err != nil {
		return cfg, err
	}
	if cfg.EndDate, err = parseFlagDate(f.endDate); err != nil {
		return cfg, err
	}

	from, err := parseFlagDate(f.dateFrom)
	if err != nil {
		return cfg, err
	}
	to, err := parseFlagDate(f.dateTo)
	if err != nil {
		return cfg, err
	}
	if from != nil {
		cfg.Window.Start = *from
	}
	if to != nil {
		cfg.Window.End = *to
	}
	return cfg, cfg.Validate()
}

func parseFlagDate(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	d, err := time.Parse(flagDateLayout, s)
	if err != nil {
		return nil, fmt.Errorf("%w: date %q is not dd.mm.yyyy", entity.ErrInvalidConfig, s)
	}
	return &d, nil
}

// buildPipeline wires the pipeline from the service configuration. The
// returned cleanup closes database connections; it is safe to call once.
func buildPipeline(
	ctx context.Context,
	cfg *config.Config,
	origins []string,
	email bool,
	log *logger.ZapLogger,
	m *metrics.Metrics,
) (*usecase.Pipeline, func(), error) {
	cleanups := make([]func(), 0, 2)
	cleanup := func() {
		for _, fn := range cleanups {
			fn()
		}
	}

	kiwi := scraper.NewKiwiClient(scraper.Options{
		BaseURL:    cfg.KiwiBaseURL,
		APIKey:     cfg.KiwiAPIKey,
		Timeout:    cfg.KiwiTimeout,
		RetryCount: cfg.KiwiRetryCount,
	}, log, m)

	cache := interfacerepo.NewFileObservationCache(cfg.CachePath, log)

	timetables, loadErrors := interfacerepo.NewTimetableStore(cfg.TimetableDir, origins, interfacerepo.PreferSeasonal, log)
	if len(loadErrors) > 0 {
		log.Warn("Some timetables are unavailable, affected airports stay unenriched", "count", len(loadErrors))
	}

	var archive domainrepo.TripArchiveRepository
	if cfg.ArchiveEnabled() {
		log.Info("Connecting to MongoDB trip archive")
		mongoClient, db, err := persistence.NewMongoClient(ctx, cfg.MongoURI, cfg.MongoDB, cfg.MongoUser, cfg.MongoPassword)
		if err != nil {
			cleanup()
			return nil, nil, fmt.Errorf("connect to MongoDB: %w", err)
		}
		cleanups = append(cleanups, func() {
			if err := mongoClient.Disconnect(context.Background()); err != nil {
				log.Error("MongoDB disconnect error", "error", err)
			}
		})
		archive = interfacerepo.NewMongoTripArchive(db)
	}

	var airports domainrepo.AirportRepository
	if cfg.AirportDataEnabled() {
		gormDB, err := persistence.NewPostgresDB(cfg.PostgresDSN)
		if err != nil {
			cleanup()
			return nil, nil, fmt.Errorf("connect to PostgreSQL: %w", err)
		}
		airports = interfacerepo.NewGormAirportRepository(gormDB)
	}

	renderer, err := templates.NewRenderer()
	if err != nil {
		cleanup()
		return nil, nil, err
	}

	dispatcher := router.NewDeliveryRouter(log, m)
	dispatcher.Register(delivery.NewFileSink(cfg.ReportPath, log))
	if email {
		if !cfg.EmailConfigured() {
			log.Warn("Email delivery requested but Gmail settings are incomplete, skipping")
		} else {
			gmailOAuth := oauth.NewGmailOAuth(cfg.GmailClientID, cfg.GmailClientSecret, cfg.GmailRefreshToken, log)
			sink, err := delivery.NewGmailSink(ctx, gmailOAuth.GetTokenSource(ctx), cfg.ReportFrom, cfg.ReportTo, log)
			if err != nil {
				cleanup()
				return nil, nil, fmt.Errorf("create Gmail sink: %w", err)
			}
			dispatcher.Register(sink)
		}
	}

	pipeline := usecase.NewPipeline(kiwi, cache, timetables, airports, archive, renderer, dispatcher, log, m)
	return pipeline, cleanup, nil
}
