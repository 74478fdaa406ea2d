package domain

// TripID is an internal identifier for a trip record (UUID string).
type TripID string

// FacilityID identifies a facility in the facilities catalog.
type FacilityID int64

// RegionID identifies a city-level catalog partition.
type RegionID string

// UserID identifies the traveler the plan is built for.
type UserID string
