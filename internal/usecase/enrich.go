package usecase

import (
	"farewatch-service/internal/domain/entity"
	"farewatch-service/internal/domain/repository"
	"farewatch-service/pkg/logger"
)

// Enricher attaches scheduled clock times from the static timetables to trip
// candidates. Enrichment only augments: a candidate with no matching
// timetable entry keeps nil time fields and stays in the list.
type Enricher struct {
	timetables repository.TimetableRepository
	logger     logger.Logger
}

// NewEnricher creates an enricher over the given timetable store.
func NewEnricher(timetables repository.TimetableRepository, logger logger.Logger) *Enricher {
	return &Enricher{
		timetables: timetables,
		logger:     logger,
	}
}

// EnrichAll fills in departure and arrival clock times for each candidate,
// preserving order and count. The departure leg reads the origin airport's
// departures timetable on the departure date; the return leg reads the same
// airport's arrivals timetable on the return date.
func (e *Enricher) EnrichAll(trips []entity.TripCandidate) []entity.TripCandidate {
	for i := range trips {
		trip := &trips[i]

		if dep := e.timetables.Find(trip.Origin, entity.DirectionDeparture, trip.Destination, trip.Departure); dep != nil {
			scheduled := dep.Scheduled
			trip.DepartureTime = &scheduled
		} else {
			e.logger.Debug("No departure timetable match",
				"origin", trip.Origin,
				"destination", trip.Destination,
				"date", trip.Departure.Format("2006-01-02"))
		}

		if ret := e.timetables.Find(trip.Origin, entity.DirectionArrival, trip.Destination, trip.Return); ret != nil {
			landing := ret.Landing
			trip.ArrivalTime = &landing
		} else {
			e.logger.Debug("No arrival timetable match",
				"origin", trip.Origin,
				"destination", trip.Destination,
				"date", trip.Return.Format("2006-01-02"))
		}
	}
	return trips
}
