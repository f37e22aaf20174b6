package domain

import "errors"

var (
	// ErrInvalidInput marks a request rejected by validation before any computation.
	ErrInvalidInput = errors.New("invalid input")

	ErrVehicleNotFound = errors.New("vehicle not found")
)
