package config

import (
	"errors"
	"fmt"
	"regexp"

	"github.com/go-playground/validator/v10"
)

var (
	// validate is a singleton validator instance
	validate *validator.Validate

	// Validation constants
	MaxIDLength = 64

	idPattern = regexp.MustCompile(`^[a-zA-Z0-9_:-]+$`)
)

func init() {
	validate = validator.New()
}

// ValidateWorld checks a world configuration for the defects an editor
// should surface before analysis. The graph builder itself never calls
// this: it tolerates malformed records by dropping them.
func ValidateWorld(w *World) error {
	if w == nil {
		return errors.New("world config cannot be nil")
	}

	for i := range w.Pressures {
		if err := validateRecord("pressures", w.Pressures[i].ID, &w.Pressures[i]); err != nil {
			return err
		}
	}
	for i := range w.Generators {
		if err := validateRecord("generators", w.Generators[i].ID, &w.Generators[i]); err != nil {
			return err
		}
	}
	for i := range w.Systems {
		if err := validateRecord("systems", w.Systems[i].ID, &w.Systems[i]); err != nil {
			return err
		}
	}
	for i := range w.Actions {
		if err := validateRecord("actions", w.Actions[i].ID, &w.Actions[i]); err != nil {
			return err
		}
	}

	return nil
}

// validateRecord runs struct-tag validation plus id shape checks on a
// single configuration record.
func validateRecord(collection, id string, record any) error {
	if err := validate.Struct(record); err != nil {
		return fmt.Errorf("%s[%s]: %w", collection, id, formatValidationError(err))
	}
	return ValidateID(collection, id)
}

// ValidateID checks that a record id is present, bounded, and uses only
// characters the namespaced node-id scheme can carry.
func ValidateID(collection, id string) error {
	if id == "" {
		return fmt.Errorf("%s: id cannot be empty", collection)
	}
	if len(id) > MaxIDLength {
		return fmt.Errorf("%s: id '%s' exceeds maximum length of %d characters", collection, id, MaxIDLength)
	}
	if !idPattern.MatchString(id) {
		return fmt.Errorf("%s: id '%s' contains invalid characters (only alphanumeric, underscore, colon and dash allowed)", collection, id)
	}
	return nil
}

// formatValidationError converts validator errors to a more user-friendly format
func formatValidationError(err error) error {
	if err == nil {
		return nil
	}

	validationErrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return err
	}

	for _, e := range validationErrs {
		field := e.Field()
		tag := e.Tag()
		param := e.Param()

		switch tag {
		case "required":
			return fmt.Errorf("%s: field is required", field)
		case "min":
			return fmt.Errorf("%s: must be at least %s", field, param)
		case "max":
			return fmt.Errorf("%s: must not exceed %s", field, param)
		default:
			return fmt.Errorf("%s: validation failed (%s)", field, tag)
		}
	}

	return err
}
