package apperror

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKindsAreDistinguishable(t *testing.T) {
	tests := []struct {
		err  error
		kind error
		not  error
	}{
		{UserNotFound("abc"), ErrUserNotFound, ErrGeoNotFound},
		{GeoNotFound("99999"), ErrGeoNotFound, ErrUserNotFound},
		{GeoLookupFailed("10001", errors.New("boom")), ErrGeoLookupFailed, ErrGeoNotFound},
		{WeatherUnavailable(errors.New("boom")), ErrWeatherUnavailable, ErrGeoLookupFailed},
		{ValidationFailed("bad"), ErrValidation, ErrUserNotFound},
	}
	for _, tt := range tests {
		assert.ErrorIs(t, tt.err, tt.kind)
		assert.NotErrorIs(t, tt.err, tt.not)
	}
}

func TestMessagesCarryIdentifiers(t *testing.T) {
	assert.Contains(t, UserNotFound("abc-123").Error(), "abc-123")
	assert.Contains(t, GeoNotFound("99999-1234").Error(), "99999-1234")
	assert.Contains(t, GeoLookupFailed("10001", errors.New("boom")).Error(), "10001")
}

func TestWrappedErrorsSurviveFurtherWrapping(t *testing.T) {
	err := fmt.Errorf("creating user: %w", GeoNotFound("99999"))
	assert.ErrorIs(t, err, ErrGeoNotFound)

	var appErr *AppError
	assert.ErrorAs(t, err, &appErr)
	assert.Contains(t, appErr.Message, "99999")
}
