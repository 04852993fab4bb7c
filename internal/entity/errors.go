package entity

import "errors"

// Domain errors
var (
	// Session errors
	ErrSessionNotFound = errors.New("session not found")
	ErrInvalidRole     = errors.New("invalid message role")

	// Generation errors
	ErrLLMNotConfigured = errors.New("language model is not configured")
	ErrEmptyCompletion  = errors.New("empty completion from language model")

	// Retrieval errors
	ErrVectorStoreUnavailable = errors.New("vector store not available")

	// Validation errors
	ErrMissingField     = errors.New("required field is missing")
	ErrInvalidParameter = errors.New("invalid parameter")

	// Export errors
	ErrUnsupportedFormat = errors.New("unsupported export format")
)
