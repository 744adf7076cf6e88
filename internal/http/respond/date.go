package respond

import (
	"errors"
	"time"
)

var ErrInvalidDate = errors.New("date must be YYYY-MM-DD")

// ParseDate accepts YYYY-MM-DD or RFC 3339. Empty input yields the zero time.
func ParseDate(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}

	if t, err := time.Parse(time.DateOnly, s); err == nil {
		return t, nil
	}

	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}

	return time.Time{}, ErrInvalidDate
}

// OptionalDate is ParseDate for nullable fields.
func OptionalDate(s *string) (*time.Time, error) {
	if s == nil || *s == "" {
		return nil, nil
	}

	t, err := ParseDate(*s)
	if err != nil {
		return nil, err
	}

	return &t, nil
}
