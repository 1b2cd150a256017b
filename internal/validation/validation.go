package validation

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Common validation errors
var (
	ErrInvalidUUID = fmt.Errorf("invalid UUID format")
)

// DateFormat is the only accepted wire format for calendar dates.
const DateFormat = "2006-01-02"

// ValidateUUID checks if a string is a valid UUID
func ValidateUUID(id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidUUID, id)
	}
	return nil
}

// ParseDate parses a calendar date in YYYY-MM-DD form to midnight UTC.
func ParseDate(str string) (time.Time, error) {
	d, err := time.Parse(DateFormat, str)
	if err != nil {
		return time.Time{}, err
	}
	return d.UTC(), nil
}
