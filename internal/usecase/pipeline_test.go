package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"farewatch-service/internal/domain/entity"
	"farewatch-service/internal/domain/repository"
	"farewatch-service/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubScraper struct {
	observations []entity.Observation
	err          error
	calls        int
}

func (s *stubScraper) Fetch(ctx context.Context, origins, destinations []string, window repository.DateRange) ([]entity.Observation, error) {
	s.calls++
	return s.observations, s.err
}

type stubCache struct {
	stored  []entity.Observation
	loadErr error
	saveErr error
	saves   int
}

func (s *stubCache) Save(ctx context.Context, observations []entity.Observation) error {
	if s.saveErr != nil {
		return s.saveErr
	}
	s.stored = observations
	s.saves++
	return nil
}

func (s *stubCache) Load(ctx context.Context) ([]entity.Observation, error) {
	if s.loadErr != nil {
		return nil, s.loadErr
	}
	return s.stored, nil
}

type stubRenderer struct {
	html string
	err  error
}

func (s *stubRenderer) Render(report *entity.RunReport, names map[string]string) (string, error) {
	return s.html, s.err
}

type stubDispatcher struct {
	delivered int
	lastHTML  string
	report    *entity.RunReport
}

func (s *stubDispatcher) Deliver(ctx context.Context, report *entity.RunReport, html string) int {
	s.delivered++
	s.lastHTML = html
	s.report = report
	return 1
}

type stubArchive struct {
	records []*entity.TripRecord
	err     error
}

func (s *stubArchive) Upsert(ctx context.Context, record *entity.TripRecord) error {
	if s.err != nil {
		return s.err
	}
	s.records = append(s.records, record)
	return nil
}

func (s *stubArchive) FindByTripKey(ctx context.Context, tripKey string) (*entity.TripRecord, error) {
	for _, r := range s.records {
		if r.TripKey == tripKey {
			return r, nil
		}
	}
	return nil, nil
}

func pipelineObservations() []entity.Observation {
	friday := time.Date(2026, 6, 5, 9, 0, 0, 0, time.UTC)
	monday := time.Date(2026, 6, 8, 20, 0, 0, 0, time.UTC)
	return []entity.Observation{
		observation("WRO", "BCN", friday, monday, 300),
		observation("WRO", "BCN", friday.Add(time.Hour), monday, 250),
		// Over the price limit, filtered out.
		observation("WRO", "LIS", friday, monday, 900),
		// Malformed, skipped before filtering.
		observation("WRO", "X", friday, monday, 100),
	}
}

func newTestPipeline(scraper *stubScraper, cache *stubCache, dispatcher *stubDispatcher, archive *stubArchive) *Pipeline {
	timetables := &stubTimetables{entries: map[string]map[entity.Direction]*entity.TimetableEntry{}}
	var archiveRepo repository.TripArchiveRepository
	if archive != nil {
		archiveRepo = archive
	}
	return NewPipeline(scraper, cache, timetables, nil, archiveRepo,
		&stubRenderer{html: "<html></html>"}, dispatcher, logger.NewNop(), nil)
}

func TestPipelineRunFromCache(t *testing.T) {
	scraper := &stubScraper{}
	cache := &stubCache{stored: pipelineObservations()}
	dispatcher := &stubDispatcher{}
	archive := &stubArchive{}

	p := newTestPipeline(scraper, cache, dispatcher, archive)
	cfg := weekendConfig()

	report, err := p.Run(context.Background(), cfg)
	require.NoError(t, err)

	assert.Zero(t, scraper.calls, "cache reuse must not scrape")
	assert.True(t, report.FromCache)
	assert.Equal(t, 4, report.Observations)

	// Two BCN quotes collapse to the cheaper one.
	require.Len(t, report.Trips, 1)
	assert.Equal(t, 250.0, report.Trips[0].Price)

	assert.Equal(t, 1, dispatcher.delivered)
	assert.Equal(t, "<html></html>", dispatcher.lastHTML)

	require.Len(t, archive.records, 1)
	assert.Equal(t, "WRO:BCN:2026-06-05:2026-06-08", archive.records[0].TripKey)
	assert.Equal(t, 250.0, archive.records[0].LastPrice)
}

func TestPipelineRunEmptyCacheFails(t *testing.T) {
	scraper := &stubScraper{}
	cache := &stubCache{loadErr: entity.ErrNoCachedData}
	dispatcher := &stubDispatcher{}

	p := newTestPipeline(scraper, cache, dispatcher, nil)

	_, err := p.Run(context.Background(), weekendConfig())
	require.ErrorIs(t, err, entity.ErrNoCachedData)
	assert.Zero(t, dispatcher.delivered, "no report on a failed run")
}

func TestPipelineRunScrapeReplacesCache(t *testing.T) {
	scraper := &stubScraper{observations: pipelineObservations()}
	cache := &stubCache{stored: []entity.Observation{
		observation("KTW", "ROM", time.Date(2026, 3, 6, 9, 0, 0, 0, time.UTC), time.Date(2026, 3, 9, 20, 0, 0, 0, time.UTC), 99),
	}}
	dispatcher := &stubDispatcher{}

	p := newTestPipeline(scraper, cache, dispatcher, nil)
	cfg := weekendConfig()
	cfg.Scrape = true

	report, err := p.Run(context.Background(), cfg)
	require.NoError(t, err)

	assert.Equal(t, 1, scraper.calls)
	assert.False(t, report.FromCache)
	assert.Equal(t, 1, cache.saves)
	assert.Equal(t, scraper.observations, cache.stored, "scrape replaces the cache wholesale")
}

func TestPipelineRunScrapeFailureAborts(t *testing.T) {
	scrapeErr := errors.New("upstream down")
	scraper := &stubScraper{err: scrapeErr}
	previous := []entity.Observation{
		observation("WRO", "BCN", time.Date(2026, 6, 5, 9, 0, 0, 0, time.UTC), time.Date(2026, 6, 8, 20, 0, 0, 0, time.UTC), 300),
	}
	cache := &stubCache{stored: previous}
	dispatcher := &stubDispatcher{}

	p := newTestPipeline(scraper, cache, dispatcher, nil)
	cfg := weekendConfig()
	cfg.Scrape = true

	_, err := p.Run(context.Background(), cfg)
	require.ErrorIs(t, err, scrapeErr)
	assert.Equal(t, previous, cache.stored, "a failed scrape leaves the old cache intact")
	assert.Zero(t, dispatcher.delivered)
}

func TestPipelineRunCacheWriteFailureAborts(t *testing.T) {
	writeErr := errors.New("disk full")
	scraper := &stubScraper{observations: pipelineObservations()}
	cache := &stubCache{saveErr: writeErr}
	dispatcher := &stubDispatcher{}

	p := newTestPipeline(scraper, cache, dispatcher, nil)
	cfg := weekendConfig()
	cfg.Scrape = true

	_, err := p.Run(context.Background(), cfg)
	require.ErrorIs(t, err, writeErr)
	assert.Zero(t, dispatcher.delivered)
}

func TestPipelineRunInvalidConfig(t *testing.T) {
	p := newTestPipeline(&stubScraper{}, &stubCache{}, &stubDispatcher{}, nil)

	_, err := p.Run(context.Background(), SearchConfig{Mode: "monthly"})
	require.ErrorIs(t, err, entity.ErrInvalidConfig)
}

func TestPipelineRunArchiveErrorDoesNotFailRun(t *testing.T) {
	scraper := &stubScraper{}
	cache := &stubCache{stored: pipelineObservations()}
	dispatcher := &stubDispatcher{}
	archive := &stubArchive{err: errors.New("mongo unreachable")}

	p := newTestPipeline(scraper, cache, dispatcher, archive)

	report, err := p.Run(context.Background(), weekendConfig())
	require.NoError(t, err)
	assert.Equal(t, 1, dispatcher.delivered)
	require.Len(t, report.Trips, 1)
}
