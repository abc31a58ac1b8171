package domain

import "errors"

var (
	// ErrIndexNotReady is returned when a query arrives before the first
	// successful corpus load. Retryable.
	ErrIndexNotReady = errors.New("index not ready: corpus has not been loaded")

	// ErrUnknownCategory is returned for a category outside the closed set.
	ErrUnknownCategory = errors.New("unknown category")

	// ErrCategoryNotFound is returned when a category's corpus directory
	// does not exist under the corpus root.
	ErrCategoryNotFound = errors.New("category directory not found")

	// ErrDocumentNotFound is returned by the content store for an unknown
	// document ID.
	ErrDocumentNotFound = errors.New("document not found")
)
