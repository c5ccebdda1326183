package domain

import "errors"

var (
	// ErrRankingUnavailable is returned when the ingestion pipeline cannot
	// serve a ranking; the evaluation is abandoned without mutation
	ErrRankingUnavailable = errors.New("ranking source unavailable")

	// ErrDirectoryUnavailable is returned when the member directory cannot
	// be reached for role or display lookups
	ErrDirectoryUnavailable = errors.New("member directory unavailable")

	// ErrWriteConflict is returned when a concurrent evaluation won the
	// crown row for the same community+artist key
	ErrWriteConflict = errors.New("concurrent crown write conflict")

	// ErrInvalidConfirmation is returned when a bulk delete is confirmed
	// with a missing, expired, or mismatched token
	ErrInvalidConfirmation = errors.New("invalid confirmation token")
)
