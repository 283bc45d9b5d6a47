package usecase

import (
	"sort"

	"farewatch-service/internal/domain/entity"
)

// RankTrips collapses duplicate quotes for the same calendar trip and orders
// the survivors. Duplicates share a trip key (route plus dates, clock times
// ignored); the cheapest quote wins, the first-encountered quote wins exact
// price ties. The result is sorted by price, then departure date, then
// destination code, so equal inputs always rank identically.
func RankTrips(trips []entity.TripCandidate) []entity.TripCandidate {
	index := make(map[entity.TripKey]int, len(trips))
	ranked := make([]entity.TripCandidate, 0, len(trips))

	for _, trip := range trips {
		key := trip.Key()
		if at, seen := index[key]; seen {
			if trip.Price < ranked[at].Price {
				ranked[at] = trip
			}
			continue
		}
		index[key] = len(ranked)
		ranked = append(ranked, trip)
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		a, b := ranked[i], ranked[j]
		if a.Price != b.Price {
			return a.Price < b.Price
		}
		aDate, bDate := a.Key().DepartureDate, b.Key().DepartureDate
		if aDate != bDate {
			return aDate < bDate
		}
		return a.Destination < b.Destination
	})
	return ranked
}
