package scoring

import (
	"errors"
	"fmt"
)

// Common errors.
var (
	// ErrEmptyCatalog is returned when there are no tracks to score.
	ErrEmptyCatalog = errors.New("empty catalog")

	// ErrUnrecognizedCategory is returned when an answer is not one of the five categories.
	ErrUnrecognizedCategory = errors.New("unrecognized category")

	// ErrDataIntegrity is returned when a catalog record cannot be turned into numbers.
	ErrDataIntegrity = errors.New("catalog data integrity")
)

// InvalidAnswerError names the questionnaire field holding an unknown answer.
type InvalidAnswerError struct {
	Field string
	Value string
}

func (e *InvalidAnswerError) Error() string {
	return fmt.Sprintf("%s: %s = %q", ErrUnrecognizedCategory.Error(), e.Field, e.Value)
}

func (e *InvalidAnswerError) Unwrap() error { return ErrUnrecognizedCategory }

// DataIntegrityError names the catalog record and field that could not be used.
type DataIntegrityError struct {
	TrackID string
	Row     int
	Field   string
	Reason  string
}

func (e *DataIntegrityError) Error() string {
	id := e.TrackID
	if id == "" {
		id = fmt.Sprintf("row %d", e.Row)
	}
	return fmt.Sprintf("%s: track %s: %s %s", ErrDataIntegrity.Error(), id, e.Field, e.Reason)
}

func (e *DataIntegrityError) Unwrap() error { return ErrDataIntegrity }
