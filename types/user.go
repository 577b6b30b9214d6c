package types

import "time"

// User represents a stored user record enriched with geocoded location data.
// The latitude, longitude, timezone, and cityName fields are derived from the
// zip code during creation or update; they are never accepted from clients and
// are always refreshed together with the zip code.
type User struct {
	// ID is the unique identifier of the user, assigned at creation.
	ID string `json:"id"`

	// Name is the user's display or full name.
	Name string `json:"name"`

	// ZipCode is the postal code the location fields were resolved from.
	ZipCode string `json:"zipCode"`

	// Latitude and Longitude are decimal-degree coordinates for the zip code.
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`

	// Timezone is the UTC offset in seconds at the resolved location.
	Timezone int `json:"timezone"`

	// CityName is the place name the geocoder returned for the zip code.
	CityName string `json:"cityName"`

	// CreatedAt is the timestamp when the record was created.
	CreatedAt time.Time `json:"createdAt"`

	// UpdatedAt is the timestamp of the most recent update to the record.
	UpdatedAt time.Time `json:"updatedAt"`
}
