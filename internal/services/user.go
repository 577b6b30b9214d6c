package services

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/userweather/apiserver/apperror"
	"github.com/userweather/apiserver/internal/observability"
	"github.com/userweather/apiserver/internal/store"
	"github.com/userweather/apiserver/types"
)

const (
	usersCollection    = "users"
	defaultCountryCode = "US"
)

// GeoResolver resolves a postal code to coordinates, timezone, and place name.
type GeoResolver interface {
	ResolveZip(ctx context.Context, zipCode, countryCode string) (types.Location, error)
}

// WeatherProvider fetches current conditions for a coordinate pair.
type WeatherProvider interface {
	CurrentWeather(ctx context.Context, lat, lon float64) (types.WeatherReport, error)
}

// CreateUserInput carries the client-supplied fields for a new user.
// Everything else on the record is derived or system-managed.
type CreateUserInput struct {
	Name    string `json:"name"`
	ZipCode string `json:"zipCode"`
}

// UpdateUserInput carries a partial update. Nil fields are left untouched.
type UpdateUserInput struct {
	Name    *string `json:"name"`
	ZipCode *string `json:"zipCode"`
}

// UserService coordinates the record store, the geo resolver, and the weather
// provider for all user operations. Geo data is resolved on create and again
// only when an update actually changes the zip code; the four derived location
// fields always move together with it.
type UserService struct {
	records store.RecordStore
	geo     GeoResolver
	weather WeatherProvider
	metrics *observability.Metrics
}

func NewUserService(records store.RecordStore, geo GeoResolver, weather WeatherProvider, metrics *observability.Metrics) *UserService {
	return &UserService{
		records: records,
		geo:     geo,
		weather: weather,
		metrics: metrics,
	}
}

func (s *UserService) List(ctx context.Context) ([]types.User, error) {
	docs, err := s.records.GetAll(ctx, usersCollection)
	if err != nil {
		return nil, err
	}

	users := make([]types.User, 0, len(docs))
	for _, doc := range docs {
		user, err := userFromDocument(doc)
		if err != nil {
			return nil, err
		}
		users = append(users, user)
	}
	return users, nil
}

func (s *UserService) Get(ctx context.Context, id string) (types.User, error) {
	doc, err := s.records.GetByID(ctx, usersCollection, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return types.User{}, apperror.UserNotFound(id)
		}
		return types.User{}, err
	}
	return userFromDocument(doc)
}

// Create geocodes the zip code and persists the full record. Every new user
// is geocoded up front; resolution failures propagate unchanged and nothing
// is written.
func (s *UserService) Create(ctx context.Context, input CreateUserInput) (types.User, error) {
	location, err := s.geo.ResolveZip(ctx, input.ZipCode, defaultCountryCode)
	if err != nil {
		return types.User{}, err
	}

	doc, err := s.records.Create(ctx, usersCollection, store.Document{
		"name":      input.Name,
		"zipCode":   input.ZipCode,
		"latitude":  location.Latitude,
		"longitude": location.Longitude,
		"timezone":  location.Timezone,
		"cityName":  location.CityName,
	})
	if err != nil {
		return types.User{}, err
	}

	s.metrics.UserOperations.WithLabelValues("create").Inc()
	return userFromDocument(doc)
}

// Update merges a partial update into the existing record. A changed zip code
// triggers exactly one re-resolution and replaces the zip code together with
// all four derived fields; an unchanged zip code skips the upstream call
// entirely so a no-op update can neither waste a rate-limited request nor
// clobber valid derived data with a transient failure.
func (s *UserService) Update(ctx context.Context, id string, input UpdateUserInput) (types.User, error) {
	existing, err := s.Get(ctx, id)
	if err != nil {
		return types.User{}, err
	}

	user := existing

	if input.Name != nil {
		user.Name = *input.Name
	}

	if input.ZipCode != nil && *input.ZipCode != existing.ZipCode {
		location, err := s.geo.ResolveZip(ctx, *input.ZipCode, defaultCountryCode)
		if err != nil {
			return types.User{}, err
		}
		user.ZipCode = *input.ZipCode
		user.Latitude = location.Latitude
		user.Longitude = location.Longitude
		user.Timezone = location.Timezone
		user.CityName = location.CityName
	}

	doc, err := documentFromUser(user)
	if err != nil {
		return types.User{}, err
	}
	merged, err := s.records.Update(ctx, usersCollection, id, doc)
	if err != nil {
		return types.User{}, err
	}

	s.metrics.UserOperations.WithLabelValues("update").Inc()
	return userFromDocument(merged)
}

func (s *UserService) Delete(ctx context.Context, id string) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	if err := s.records.Delete(ctx, usersCollection, id); err != nil {
		return err
	}

	s.metrics.UserOperations.WithLabelValues("delete").Inc()
	return nil
}

// Weather fetches fresh conditions for the user's stored coordinates and
// returns them alongside a reduced user projection.
func (s *UserService) Weather(ctx context.Context, id string) (types.UserWeather, error) {
	user, err := s.Get(ctx, id)
	if err != nil {
		return types.UserWeather{}, err
	}

	report, err := s.weather.CurrentWeather(ctx, user.Latitude, user.Longitude)
	if err != nil {
		return types.UserWeather{}, err
	}

	s.metrics.UserOperations.WithLabelValues("weather").Inc()
	return types.UserWeather{
		User: types.UserSummary{
			Name:     user.Name,
			CityName: user.CityName,
			ZipCode:  user.ZipCode,
		},
		Weather: report,
	}, nil
}

// Documents carry the same json field names as types.User, so conversion is a
// marshal round trip.

func userFromDocument(doc store.Document) (types.User, error) {
	payload, err := json.Marshal(doc)
	if err != nil {
		return types.User{}, err
	}
	var user types.User
	if err := json.Unmarshal(payload, &user); err != nil {
		return types.User{}, err
	}
	return user, nil
}

func documentFromUser(user types.User) (store.Document, error) {
	payload, err := json.Marshal(user)
	if err != nil {
		return nil, err
	}
	var doc store.Document
	if err := json.Unmarshal(payload, &doc); err != nil {
		return nil, err
	}
	return doc, nil
}
