package handlers

import (
	"regexp"

	"github.com/userweather/apiserver/apperror"
	"github.com/userweather/apiserver/internal/services"
)

const (
	nameMinLen = 2
	nameMaxLen = 100
)

var zipCodePattern = regexp.MustCompile(`^\d{5}(-\d{4})?$`)

func validateName(name string) error {
	if len(name) < nameMinLen {
		return apperror.ValidationFailed("name must be at least 2 characters long")
	}
	if len(name) > nameMaxLen {
		return apperror.ValidationFailed("name cannot exceed 100 characters")
	}
	return nil
}

func validateZipCode(zipCode string) error {
	if !zipCodePattern.MatchString(zipCode) {
		return apperror.ValidationFailed("zip code must be in valid format (e.g., 12345 or 12345-6789)")
	}
	return nil
}

func validateCreateUser(input services.CreateUserInput) error {
	if input.Name == "" {
		return apperror.ValidationFailed("name is required")
	}
	if err := validateName(input.Name); err != nil {
		return err
	}
	if input.ZipCode == "" {
		return apperror.ValidationFailed("zip code is required")
	}
	return validateZipCode(input.ZipCode)
}

func validateUpdateUser(input services.UpdateUserInput) error {
	if input.Name == nil && input.ZipCode == nil {
		return apperror.ValidationFailed("at least one of name or zipCode is required")
	}
	if input.Name != nil {
		if err := validateName(*input.Name); err != nil {
			return err
		}
	}
	if input.ZipCode != nil {
		if err := validateZipCode(*input.ZipCode); err != nil {
			return err
		}
	}
	return nil
}
