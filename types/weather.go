package types

// Location is the result of resolving a postal code: coordinates, the UTC
// offset in seconds, and a place name. It is folded into a User record and
// never persisted on its own.
type Location struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Timezone  int     `json:"timezone"`
	CityName  string  `json:"cityName"`
}

// WeatherReport is a current-conditions snapshot for a coordinate pair.
// It is fetched fresh on every request and never cached or persisted.
type WeatherReport struct {
	Temperature float64 `json:"temperature"` // in Celsius
	Description string  `json:"description"`
	Humidity    int     `json:"humidity"` // percentage
	WindSpeed   float64 `json:"windSpeed"`
}

// UserSummary is the reduced user shape returned alongside weather data.
// Coordinates, timestamps, and the id are deliberately absent.
type UserSummary struct {
	Name     string `json:"name"`
	CityName string `json:"cityName"`
	ZipCode  string `json:"zipCode"`
}

// UserWeather pairs a user summary with a fresh weather report.
type UserWeather struct {
	User    UserSummary   `json:"user"`
	Weather WeatherReport `json:"weather"`
}
