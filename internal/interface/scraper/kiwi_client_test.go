package scraper

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"farewatch-service/internal/domain/entity"
	"farewatch-service/internal/domain/repository"
	"farewatch-service/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func searchFixture(origin, destination string, price float64, departure, ret time.Time) map[string]interface{} {
	return map[string]interface{}{
		"flyFrom":         origin,
		"flyTo":           destination,
		"price":           price,
		"local_departure": departure.Format(time.RFC3339),
		"route": []map[string]interface{}{
			{"return": 0, "local_departure": departure.Format(time.RFC3339)},
			{"return": 1, "local_departure": ret.Format(time.RFC3339)},
		},
	}
}

func newSearchServer(t *testing.T, handler http.HandlerFunc) (*httptest.Server, *KiwiClient) {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		handler(w, r)
	}))
	t.Cleanup(server.Close)

	client := NewKiwiClient(Options{
		BaseURL: server.URL,
		APIKey:  "test-key",
		Timeout: 5 * time.Second,
	}, logger.NewNop(), nil)
	return server, client
}

func TestKiwiClientFetchMapsItineraries(t *testing.T) {
	departure := time.Date(2026, 6, 5, 9, 0, 0, 0, time.UTC)
	ret := time.Date(2026, 6, 8, 20, 0, 0, 0, time.UTC)

	var gotQuery map[string]string
	_, client := newSearchServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v2/search", r.URL.Path)
		assert.Equal(t, "test-key", r.Header.Get("apikey"))
		gotQuery = map[string]string{
			"fly_from":  r.URL.Query().Get("fly_from"),
			"fly_to":    r.URL.Query().Get("fly_to"),
			"curr":      r.URL.Query().Get("curr"),
			"date_from": r.URL.Query().Get("date_from"),
			"return_to": r.URL.Query().Get("return_to"),
		}
		json.NewEncoder(w).Encode(map[string]interface{}{
			"data": []map[string]interface{}{
				searchFixture("WRO", "BCN", 300, departure, ret),
			},
		})
	})

	window := repository.DateRange{
		Start: time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC),
		End:   time.Date(2026, 6, 30, 0, 0, 0, 0, time.UTC),
	}
	observations, err := client.Fetch(context.Background(), []string{"WRO"}, []string{"BCN"}, window)
	require.NoError(t, err)

	assert.Equal(t, "WRO", gotQuery["fly_from"])
	assert.Equal(t, "BCN", gotQuery["fly_to"])
	assert.Equal(t, "PLN", gotQuery["curr"])
	assert.Equal(t, "01/06/2026", gotQuery["date_from"])
	assert.Equal(t, "30/06/2026", gotQuery["return_to"])

	require.Len(t, observations, 1)
	assert.Equal(t, "WRO", observations[0].Origin)
	assert.Equal(t, "BCN", observations[0].Destination)
	assert.Equal(t, 300.0, observations[0].Price)
	assert.True(t, observations[0].Departure.Equal(departure))
	assert.True(t, observations[0].Return.Equal(ret))
}

func TestKiwiClientFetchSkipsOneWayItineraries(t *testing.T) {
	departure := time.Date(2026, 6, 5, 9, 0, 0, 0, time.UTC)
	ret := time.Date(2026, 6, 8, 20, 0, 0, 0, time.UTC)

	oneWay := searchFixture("WRO", "LIS", 120, departure, ret)
	oneWay["route"] = []map[string]interface{}{
		{"return": 0, "local_departure": departure.Format(time.RFC3339)},
	}

	_, client := newSearchServer(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]interface{}{
			"data": []map[string]interface{}{
				oneWay,
				searchFixture("WRO", "BCN", 300, departure, ret),
			},
		})
	})

	observations, err := client.Fetch(context.Background(), []string{"WRO"}, nil, repository.DateRange{})
	require.NoError(t, err)
	require.Len(t, observations, 1)
	assert.Equal(t, "BCN", observations[0].Destination)
}

func TestKiwiClientFetchAnywhereOmitsFlyTo(t *testing.T) {
	var sawFlyTo bool
	_, client := newSearchServer(t, func(w http.ResponseWriter, r *http.Request) {
		sawFlyTo = r.URL.Query().Has("fly_to")
		json.NewEncoder(w).Encode(map[string]interface{}{"data": []interface{}{}})
	})

	_, err := client.Fetch(context.Background(), []string{"WRO"}, nil, repository.DateRange{})
	require.NoError(t, err)
	assert.False(t, sawFlyTo, "anywhere queries must not pin a destination")
}

func TestKiwiClientFetchContinuesAfterPairFailure(t *testing.T) {
	departure := time.Date(2026, 6, 5, 9, 0, 0, 0, time.UTC)
	ret := time.Date(2026, 6, 8, 20, 0, 0, 0, time.UTC)

	_, client := newSearchServer(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("fly_from") == "POZ" {
			http.Error(w, "upstream error", http.StatusBadGateway)
			return
		}
		json.NewEncoder(w).Encode(map[string]interface{}{
			"data": []map[string]interface{}{
				searchFixture("WRO", "BCN", 300, departure, ret),
			},
		})
	})

	observations, err := client.Fetch(context.Background(), []string{"POZ", "WRO"}, []string{"BCN"}, repository.DateRange{})
	require.NoError(t, err, "a partial result is still a result")
	require.Len(t, observations, 1)
	assert.Equal(t, "WRO", observations[0].Origin)
}

func TestKiwiClientFetchAllPairsFailed(t *testing.T) {
	_, client := newSearchServer(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "upstream error", http.StatusBadGateway)
	})

	_, err := client.Fetch(context.Background(), []string{"WRO", "POZ"}, []string{"BCN"}, repository.DateRange{})
	require.Error(t, err)

	var scrapeErr *entity.ScrapeFailureError
	require.ErrorAs(t, err, &scrapeErr)
	assert.Equal(t, "WRO", scrapeErr.Origin)
	assert.Equal(t, "BCN", scrapeErr.Destination)
}

func TestKiwiClientFetchDropsInconsistentItinerary(t *testing.T) {
	departure := time.Date(2026, 6, 5, 9, 0, 0, 0, time.UTC)
	ret := time.Date(2026, 6, 8, 20, 0, 0, 0, time.UTC)

	// Return before departure fails observation validation.
	inverted := searchFixture("WRO", "LIS", 200, ret, departure)

	_, client := newSearchServer(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]interface{}{
			"data": []map[string]interface{}{
				inverted,
				searchFixture("WRO", "BCN", 300, departure, ret),
			},
		})
	})

	observations, err := client.Fetch(context.Background(), []string{"WRO"}, nil, repository.DateRange{})
	require.NoError(t, err)
	require.Len(t, observations, 1)
	assert.Equal(t, "BCN", observations[0].Destination)
}

func TestKiwiClientPageLimitDefault(t *testing.T) {
	var gotLimit string
	_, client := newSearchServer(t, func(w http.ResponseWriter, r *http.Request) {
		gotLimit = r.URL.Query().Get("limit")
		json.NewEncoder(w).Encode(map[string]interface{}{"data": []interface{}{}})
	})

	_, err := client.Fetch(context.Background(), []string{"WRO"}, nil, repository.DateRange{})
	require.NoError(t, err)
	assert.Equal(t, "200", gotLimit)
}
