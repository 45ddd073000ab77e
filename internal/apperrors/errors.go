package apperrors

import "errors"

// Pipeline errors describe failures in the extraction and valuation stages.
// Only ErrRecognitionFailure escalates to a pipeline-level failure; the others
// are local to a single fund and leave that fund's record unenriched.
var (
	// ErrRecognitionFailure indicates that the OCR collaborator could not produce text fragments.
	ErrRecognitionFailure = errors.New("text recognition failed")

	// ErrMalformedResponse indicates that a valuation provider response did not follow the expected layout.
	ErrMalformedResponse = errors.New("malformed valuation response")

	// ErrDivisionGuard indicates a quote whose previous net value is zero.
	ErrDivisionGuard = errors.New("previous net value is zero")

	// ErrTransportFailure indicates a network error, timeout or non-success HTTP status.
	ErrTransportFailure = errors.New("valuation transport failed")
)

// Domain entity errors represent missing or invalid entities in the system.
var (
	// ErrFundNotFound indicates that a fund name could not be resolved to a code.
	ErrFundNotFound = errors.New("fund not found")

	// ErrInvalidFundCode indicates a fund code that is not exactly six digits.
	ErrInvalidFundCode = errors.New("fund code must be 6 digits")

	// ErrNegativeAmount indicates that an amount field has an invalid negative value.
	ErrNegativeAmount = errors.New("amount cannot be negative")

	// ErrEmptyText indicates that a free-text resolve request carried no text.
	ErrEmptyText = errors.New("text cannot be empty")
)

// Operation failure errors represent system-level failures when retrieving or processing data.
var (
	ErrFailedToRetrieveHoldings  = errors.New("failed to retrieve holdings")
	ErrFailedToSaveHoldings      = errors.New("failed to save holdings")
	ErrFailedToRetrieveSnapshots = errors.New("failed to retrieve snapshots")
	ErrFailedToRecordSnapshots   = errors.New("failed to record snapshots")
	ErrFailedToValuate           = errors.New("failed to valuate holdings")
	ErrFailedToLoadRegistry      = errors.New("failed to load fund registry")
)
