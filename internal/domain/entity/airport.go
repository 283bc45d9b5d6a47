package entity

import (
	"time"

	"gorm.io/gorm"
)

// Airport is reference data for an IATA code, used to put human-readable
// names in reports.
type Airport struct {
	ID        uint
	IATACode  string
	Name      string
	CityName  string
	Country   string
	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt
}

// DisplayName returns the city name when known, falling back to the code.
func (a *Airport) DisplayName() string {
	if a == nil {
		return ""
	}
	if a.CityName == "" {
		return a.IATACode
	}
	return a.CityName
}
