package entity

import (
	"time"
)

// TripRecord is the persisted history of a reported trip. One record exists
// per trip key; repeated runs update the price fields instead of inserting.
type TripRecord struct {
	ID            string    `bson:"_id,omitempty"`
	TripKey       string    `bson:"tripKey"` // origin:dest:depDate:retDate - unique index
	Origin        string    `bson:"origin"`
	Destination   string    `bson:"destination"`
	DepartureDate string    `bson:"departureDate"`
	ReturnDate    string    `bson:"returnDate"`
	Mode          TripMode  `bson:"mode"`
	LastPrice     float64   `bson:"lastPrice"`
	LowestPrice   float64   `bson:"lowestPrice"`
	TimesSeen     int       `bson:"timesSeen"`
	FirstSeenAt   time.Time `bson:"firstSeenAt"`
	LastSeenAt    time.Time `bson:"lastSeenAt"`
}
