package handlers

import "errors"

var (
	errMissingTermination     = errors.New("missing termination information")
	errInvalidTerminationDate = errors.New("invalid termination_date, expected RFC 3339")
	errInvalidCount           = errors.New("count must be a positive integer")
	errInvalidOffset          = errors.New("offset must be a non-negative integer")
)
