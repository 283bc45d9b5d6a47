package usecase

import (
	"context"
	"fmt"
	"time"

	"farewatch-service/internal/domain/entity"
	"farewatch-service/internal/domain/repository"
	"farewatch-service/pkg/logger"
	"farewatch-service/pkg/metrics"
)

// ReportRenderer turns a run report into an HTML body. The names map carries
// resolved display names per IATA code; codes without an entry render as-is.
type ReportRenderer interface {
	Render(report *entity.RunReport, names map[string]string) (string, error)
}

// ReportDispatcher fans a rendered report out to delivery sinks. Sinks fail
// independently; Deliver returns how many sinks accepted the report.
type ReportDispatcher interface {
	Deliver(ctx context.Context, report *entity.RunReport, html string) int
}

// Pipeline runs one full discovery pass: obtain observations, qualify them
// against the mode's policy, enrich with timetable data, rank, and hand the
// result to rendering, delivery and archiving. The airports and archive
// repositories are optional; nil disables them.
type Pipeline struct {
	scraper    repository.FlightScraper
	cache      repository.ObservationCache
	timetables repository.TimetableRepository
	airports   repository.AirportRepository
	archive    repository.TripArchiveRepository
	renderer   ReportRenderer
	dispatcher ReportDispatcher
	logger     logger.Logger
	metrics    *metrics.Metrics
}

// NewPipeline wires a pipeline from its collaborators.
func NewPipeline(
	scraper repository.FlightScraper,
	cache repository.ObservationCache,
	timetables repository.TimetableRepository,
	airports repository.AirportRepository,
	archive repository.TripArchiveRepository,
	renderer ReportRenderer,
	dispatcher ReportDispatcher,
	logger logger.Logger,
	m *metrics.Metrics,
) *Pipeline {
	return &Pipeline{
		scraper:    scraper,
		cache:      cache,
		timetables: timetables,
		airports:   airports,
		archive:    archive,
		renderer:   renderer,
		dispatcher: dispatcher,
		logger:     logger,
		metrics:    m,
	}
}

// Run executes the pipeline once and returns the run report.
func (p *Pipeline) Run(ctx context.Context, cfg SearchConfig) (*entity.RunReport, error) {
	started := time.Now()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	observations, err := p.obtainObservations(ctx, cfg)
	if err != nil {
		if p.metrics != nil {
			p.metrics.RunFailures.Inc()
		}
		return nil, err
	}
	if p.metrics != nil {
		p.metrics.ObservationsFetched.Add(float64(len(observations)))
	}

	filter, err := FilterForMode(cfg)
	if err != nil {
		return nil, err
	}

	candidates := make([]entity.TripCandidate, 0, len(observations))
	for _, o := range observations {
		if err := o.Validate(); err != nil {
			p.logger.Debug("Skipping malformed observation", "error", err)
			continue
		}
		if trip, ok := filter.Qualify(o); ok {
			candidates = append(candidates, trip)
		}
	}
	p.logger.Info("Qualified trip candidates",
		"mode", string(cfg.Mode),
		"observations", len(observations),
		"candidates", len(candidates))

	enricher := NewEnricher(p.timetables, p.logger)
	candidates = enricher.EnrichAll(candidates)
	ranked := RankTrips(candidates)

	report := &entity.RunReport{
		Mode:         cfg.Mode,
		Origins:      cfg.Origins,
		PriceLimit:   cfg.PriceLimit,
		FromCache:    !cfg.Scrape,
		GeneratedAt:  time.Now(),
		Observations: len(observations),
		Trips:        ranked,
	}

	html, err := p.renderer.Render(report, p.resolveNames(ctx, report))
	if err != nil {
		if p.metrics != nil {
			p.metrics.RunFailures.Inc()
		}
		return nil, fmt.Errorf("render report: %w", err)
	}

	if p.dispatcher != nil {
		delivered := p.dispatcher.Deliver(ctx, report, html)
		p.logger.Info("Report delivered", "sinks", delivered, "trips", len(ranked))
	}

	p.archiveTrips(ctx, report)

	if p.metrics != nil {
		p.metrics.RunsTotal.Inc()
		p.metrics.CandidatesFound.Add(float64(len(ranked)))
		p.metrics.RunDuration.Observe(time.Since(started).Seconds())
	}
	return report, nil
}

// obtainObservations scrapes fresh data or reloads the cache, per the run
// configuration. A fresh scrape replaces the cache wholesale; a failed cache
// write aborts the run without touching the previously cached set.
func (p *Pipeline) obtainObservations(ctx context.Context, cfg SearchConfig) ([]entity.Observation, error) {
	if !cfg.Scrape {
		observations, err := p.cache.Load(ctx)
		if err != nil {
			return nil, err
		}
		p.logger.Info("Loaded cached observations", "count", len(observations))
		return observations, nil
	}

	p.logger.Info("Scraping flight data", "origins", cfg.Origins)
	observations, err := p.scraper.Fetch(ctx, cfg.Origins, cfg.Destinations, cfg.Window)
	if err != nil {
		return nil, fmt.Errorf("scrape: %w", err)
	}
	if err := p.cache.Save(ctx, observations); err != nil {
		return nil, fmt.Errorf("cache write: %w", err)
	}
	p.logger.Info("Scraped observations cached", "count", len(observations))
	return observations, nil
}

// resolveNames looks up display names for every airport the report mentions.
func (p *Pipeline) resolveNames(ctx context.Context, report *entity.RunReport) map[string]string {
	names := make(map[string]string)
	if p.airports == nil {
		return names
	}
	codes := make(map[string]bool)
	for _, iata := range report.Origins {
		codes[iata] = true
	}
	for _, trip := range report.Trips {
		codes[trip.Origin] = true
		codes[trip.Destination] = true
	}
	for iata := range codes {
		airport, err := p.airports.GetByIATA(ctx, iata)
		if err != nil {
			p.logger.Debug("No airport reference data", "iata", iata, "error", err)
			continue
		}
		names[iata] = airport.DisplayName()
	}
	return names
}

// archiveTrips upserts every reported trip into the history archive. Archive
// errors are logged and do not fail the run.
func (p *Pipeline) archiveTrips(ctx context.Context, report *entity.RunReport) {
	if p.archive == nil {
		return
	}
	now := time.Now()
	for _, trip := range report.Trips {
		key := trip.Key()
		record := &entity.TripRecord{
			TripKey:       key.String(),
			Origin:        key.Origin,
			Destination:   key.Destination,
			DepartureDate: key.DepartureDate,
			ReturnDate:    key.ReturnDate,
			Mode:          report.Mode,
			LastPrice:     trip.Price,
			LastSeenAt:    now,
		}
		if err := p.archive.Upsert(ctx, record); err != nil {
			p.logger.Error("Failed to archive trip", "tripKey", record.TripKey, "error", err)
		}
	}
}
