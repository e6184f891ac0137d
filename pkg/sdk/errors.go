package huematch

import "github.com/kailas-cloud/huematch/internal/domain"

// Sentinel errors re-exported from the domain layer.
// Use errors.Is() to check.
var (
	ErrInvalidTarget      = domain.ErrInvalidTarget
	ErrNoMatch            = domain.ErrNoMatch
	ErrUnknownFacet       = domain.ErrUnknownFacet
	ErrCatalogUnavailable = domain.ErrCatalogUnavailable
	ErrMalformedRecord    = domain.ErrMalformedRecord
)

// InvalidTargetError carries the rejected component and its allowed range.
// Use errors.As() to inspect it.
type InvalidTargetError = domain.InvalidTargetError
