package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrMalformedRecord signals a catalog row with a missing or non-numeric field.
	ErrMalformedRecord = errors.New("malformed record")
	// ErrInvalidTarget signals a target color outside the accepted range.
	ErrInvalidTarget = errors.New("invalid target color")
	// ErrNoMatch signals that the facet filters matched zero products.
	ErrNoMatch = errors.New("no products match the selected facets")
	// ErrUnknownFacet signals an unrecognized personal color or product type.
	ErrUnknownFacet = errors.New("unknown facet")
	// ErrCatalogUnavailable signals a catalog store failure.
	ErrCatalogUnavailable = errors.New("catalog unavailable")
)

// MalformedRecordError wraps ErrMalformedRecord with the offending row and field.
type MalformedRecordError struct {
	RecordID string
	Field    string
	Reason   string
}

func (e *MalformedRecordError) Error() string {
	return fmt.Sprintf("%s %q: field %s: %s", ErrMalformedRecord.Error(), e.RecordID, e.Field, e.Reason)
}

func (e *MalformedRecordError) Unwrap() error { return ErrMalformedRecord }

// NewMalformedRecord creates a malformed record error.
func NewMalformedRecord(recordID, field, reason string) error {
	return &MalformedRecordError{RecordID: recordID, Field: field, Reason: reason}
}

// InvalidTargetError wraps ErrInvalidTarget with the rejected component and its allowed range.
type InvalidTargetError struct {
	Field string
	Value float64
	Min   float64
	Max   float64
}

func (e *InvalidTargetError) Error() string {
	return fmt.Sprintf("%s: %s %g outside [%g, %g]", ErrInvalidTarget.Error(), e.Field, e.Value, e.Min, e.Max)
}

func (e *InvalidTargetError) Unwrap() error { return ErrInvalidTarget }

// NewInvalidTarget creates an invalid target error.
func NewInvalidTarget(field string, value, lo, hi float64) error {
	return &InvalidTargetError{Field: field, Value: value, Min: lo, Max: hi}
}
