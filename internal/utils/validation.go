package utils

import (
	"errors"
	"regexp"
	"strconv"
)

// Stop IDs end up in provider URLs and SOAP bodies: NaPTAN codes, CRS codes.
var validIDPattern = regexp.MustCompile(`^[a-zA-Z0-9_.-]+$`)

// ValidateID validates that an ID is safe and within reasonable limits
func ValidateID(id string) error {
	if id == "" {
		return errors.New("id cannot be empty")
	}

	if len(id) > 100 {
		return errors.New("id too long (max 100 characters)")
	}

	if !validIDPattern.MatchString(id) {
		return errors.New("id contains invalid characters")
	}

	return nil
}

// ParseIndex parses a non-negative position from a path parameter.
func ParseIndex(raw string) (int, error) {
	if raw == "" {
		return 0, errors.New("index cannot be empty")
	}
	index, err := strconv.Atoi(raw)
	if err != nil {
		return 0, errors.New("index must be a number")
	}
	if index < 0 {
		return 0, errors.New("index must be non-negative")
	}
	return index, nil
}
