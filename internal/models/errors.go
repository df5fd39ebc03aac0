package models

import "errors"

// Error kinds returned by repositories and services. Callers match them with errors.Is.
var (
	ErrNotFound   = errors.New("not found")
	ErrValidation = errors.New("validation failed")
	ErrReferenced = errors.New("referenced by other records")
	ErrStorage    = errors.New("storage failure")
)
