// Package apperror defines the error kinds the service reports to callers.
// Each kind is a sentinel error so callers can classify failures with
// errors.Is regardless of the message attached to a particular occurrence.
package apperror

import (
	"errors"
	"fmt"
)

var (
	// ErrUserNotFound means an operation targeted an id with no record.
	ErrUserNotFound = errors.New("user not found")

	// ErrGeoNotFound means the geocoding upstream has no location for the zip code.
	ErrGeoNotFound = errors.New("location not found")

	// ErrGeoLookupFailed means the geocoding upstream failed for any other reason.
	ErrGeoLookupFailed = errors.New("geo lookup failed")

	// ErrWeatherUnavailable means the weather upstream could not be reached or parsed.
	ErrWeatherUnavailable = errors.New("weather unavailable")

	// ErrValidation means the request shape was rejected before the core ran.
	ErrValidation = errors.New("validation error")
)

// AppError carries a human-readable message alongside its kind.
type AppError struct {
	Err     error  // the sentinel kind
	Message string // human-readable error message
}

func (e *AppError) Error() string {
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// UserNotFound reports that no user exists with the given id.
func UserNotFound(id string) *AppError {
	return &AppError{
		Err:     ErrUserNotFound,
		Message: fmt.Sprintf("user not found with id %s", id),
	}
}

// GeoNotFound reports an unknown postal code. The message carries the zip
// code exactly as the caller supplied it, before any normalization.
func GeoNotFound(zipCode string) *AppError {
	return &AppError{
		Err:     ErrGeoNotFound,
		Message: fmt.Sprintf("location not found for zip code %s", zipCode),
	}
}

// GeoLookupFailed reports any non-404 geocoding failure for the given zip code.
func GeoLookupFailed(zipCode string, cause error) *AppError {
	return &AppError{
		Err:     fmt.Errorf("%w: %w", ErrGeoLookupFailed, cause),
		Message: fmt.Sprintf("failed to fetch location data for zip code %s", zipCode),
	}
}

// WeatherUnavailable reports any weather-fetch failure.
func WeatherUnavailable(cause error) *AppError {
	return &AppError{
		Err:     fmt.Errorf("%w: %w", ErrWeatherUnavailable, cause),
		Message: "failed to fetch weather data",
	}
}

// ValidationFailed reports a malformed request field.
func ValidationFailed(message string) *AppError {
	return &AppError{
		Err:     ErrValidation,
		Message: message,
	}
}
