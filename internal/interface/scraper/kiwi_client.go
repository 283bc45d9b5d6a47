package scraper

import (
	"context"
	"fmt"
	"time"

	"farewatch-service/internal/domain/entity"
	"farewatch-service/internal/domain/repository"
	"farewatch-service/pkg/logger"
	"farewatch-service/pkg/metrics"

	"github.com/go-resty/resty/v2"
)

// Options configures the Kiwi search client.
type Options struct {
	BaseURL    string
	APIKey     string
	Timeout    time.Duration
	RetryCount int
	// PageLimit caps how many itineraries one pair request returns.
	PageLimit int
}

// KiwiClient implements the FlightScraper port against a Kiwi-style search
// API that serves round-trip date/price grids.
type KiwiClient struct {
	http      *resty.Client
	pageLimit int
	logger    logger.Logger
	metrics   *metrics.Metrics
}

// NewKiwiClient creates a search client. Metrics may be nil.
func NewKiwiClient(opts Options, logger logger.Logger, m *metrics.Metrics) *KiwiClient {
	if opts.PageLimit <= 0 {
		opts.PageLimit = 200
	}

	client := resty.New().
		SetBaseURL(opts.BaseURL).
		SetTimeout(opts.Timeout).
		SetRetryCount(opts.RetryCount).
		SetHeader("apikey", opts.APIKey).
		SetHeader("Accept", "application/json")

	return &KiwiClient{
		http:      client,
		pageLimit: opts.PageLimit,
		logger:    logger,
		metrics:   m,
	}
}

var _ repository.FlightScraper = (*KiwiClient)(nil)

// searchResponse mirrors the fields we read from the search endpoint.
type searchResponse struct {
	Data []itinerary `json:"data"`
}

type itinerary struct {
	FlyFrom        string     `json:"flyFrom"`
	FlyTo          string     `json:"flyTo"`
	Price          float64    `json:"price"`
	LocalDeparture time.Time  `json:"local_departure"`
	Route          []routeLeg `json:"route"`
}

type routeLeg struct {
	Return         int       `json:"return"`
	LocalDeparture time.Time `json:"local_departure"`
}

// Fetch gathers observations for every origin and destination pair. A failed
// pair is logged and counted, and the partial result from the other pairs is
// kept. Only a run where every pair failed returns an error.
func (c *KiwiClient) Fetch(ctx context.Context, origins []string, destinations []string, window repository.DateRange) ([]entity.Observation, error) {
	// An empty destination list is one "anywhere" query per origin.
	if len(destinations) == 0 {
		destinations = []string{""}
	}

	var observations []entity.Observation
	var firstFailure error
	failures := 0

	for _, origin := range origins {
		for _, destination := range destinations {
			pair, err := c.fetchPair(ctx, origin, destination, window)
			if err != nil {
				failures++
				scrapeErr := &entity.ScrapeFailureError{Origin: origin, Destination: destination, Err: err}
				if firstFailure == nil {
					firstFailure = scrapeErr
				}
				c.logger.Error("Route fetch failed, continuing", "origin", origin, "destination", destination, "error", err)
				if c.metrics != nil {
					c.metrics.ScrapeFailures.WithLabelValues(origin, destination).Inc()
				}
				continue
			}
			observations = append(observations, pair...)
		}
	}

	if len(observations) == 0 && failures > 0 {
		return nil, fmt.Errorf("all %d route fetches failed: %w", failures, firstFailure)
	}
	c.logger.Info("Scrape finished", "observations", len(observations), "failedPairs", failures)
	return observations, nil
}

// fetchPair queries the search endpoint for one origin/destination pair and
// maps the itineraries to observations. Itineraries without a return leg or
// with inconsistent timestamps are skipped.
func (c *KiwiClient) fetchPair(ctx context.Context, origin, destination string, window repository.DateRange) ([]entity.Observation, error) {
	params := map[string]string{
		"fly_from": origin,
		"curr":     "PLN",
		"limit":    fmt.Sprintf("%d", c.pageLimit),
	}
	if destination != "" {
		params["fly_to"] = destination
	}
	if !window.Start.IsZero() {
		params["date_from"] = window.Start.Format("02/01/2006")
		params["return_from"] = window.Start.Format("02/01/2006")
	}
	if !window.End.IsZero() {
		params["date_to"] = window.End.Format("02/01/2006")
		params["return_to"] = window.End.Format("02/01/2006")
	}

	var body searchResponse
	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParams(params).
		SetResult(&body).
		Get("/v2/search")
	if err != nil {
		return nil, err
	}
	if resp.IsError() {
		return nil, fmt.Errorf("search returned %s", resp.Status())
	}

	observations := make([]entity.Observation, 0, len(body.Data))
	for _, it := range body.Data {
		returnDeparture, ok := returnLegDeparture(it.Route)
		if !ok {
			continue
		}
		o := entity.Observation{
			Origin:      it.FlyFrom,
			Destination: it.FlyTo,
			Departure:   it.LocalDeparture,
			Return:      returnDeparture,
			Price:       it.Price,
		}
		if err := o.Validate(); err != nil {
			c.logger.Debug("Dropping inconsistent itinerary", "error", err)
			continue
		}
		observations = append(observations, o)
	}
	return observations, nil
}

func returnLegDeparture(route []routeLeg) (time.Time, bool) {
	for _, leg := range route {
		if leg.Return == 1 {
			return leg.LocalDeparture, true
		}
	}
	return time.Time{}, false
}
