package domain

type FacilityType string

const (
	FacilityTypeHotel      FacilityType = "HOTEL"
	FacilityTypeRestaurant FacilityType = "RESTAURANT"
	FacilityTypeAttraction FacilityType = "ATTRACTION"
)

// Facility is a hotel, restaurant, or point of interest resolved read-only
// from the facilities catalog. The pipeline never mutates a facility.
type Facility struct {
	ID   FacilityID
	Name string
	Type FacilityType

	Latitude  float64
	Longitude float64

	// Cost is the unit cost in rials: per night for hotels, per visit
	// otherwise.
	Cost int64

	RegionID RegionID

	VisitDurationMinutes int
	OpeningHour          int // 0..24
	ClosingHour          int // 0..24; 24 means open through midnight

	Tags   []string
	Rating float64

	Description string
}

// HasTag reports whether the facility carries the given catalog tag.
func (f Facility) HasTag(tag string) bool {
	for _, t := range f.Tags {
		if t == tag {
			return true
		}
	}
	return false
}
