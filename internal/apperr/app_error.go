package apperr

import "github.com/tuanvumaihuynh/storefront/pkg/zerror"

const (
	ValidationErrorCode   = "VALIDATION_FAILED"
	FetchFailureErrorCode = "FETCH_FAILED"
)

var (
	ValidationErr = zerror.NewValidationFailed(ValidationErrorCode, "validation error")

	// FetchFailureErr covers every way the product list can fail to load:
	// transport errors, non-success statuses and undecodable payloads.
	FetchFailureErr = zerror.NewBadGateway(FetchFailureErrorCode, "could not load products")
)
