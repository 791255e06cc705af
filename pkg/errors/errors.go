package errors

import (
	"fmt"
	"time"
)

// ErrorType represents the type of error
type ErrorType string

const (
	// ErrorTypeFetch represents page fetch errors (transport failures and
	// non-success HTTP statuses)
	ErrorTypeFetch ErrorType = "fetch"
	// ErrorTypeExtract represents markup extraction errors
	ErrorTypeExtract ErrorType = "extract"
	// ErrorTypeCache represents cache-related errors
	ErrorTypeCache ErrorType = "cache"
	// ErrorTypeStorage represents storage-related errors
	ErrorTypeStorage ErrorType = "storage"
	// ErrorTypeNotify represents notifier-related errors
	ErrorTypeNotify ErrorType = "notify"
	// ErrorTypeValidation represents validation errors
	ErrorTypeValidation ErrorType = "validation"
	// ErrorTypeConfiguration represents configuration errors
	ErrorTypeConfiguration ErrorType = "configuration"
)

// ScrapeError represents a scraper-specific error
type ScrapeError struct {
	Type    ErrorType
	Source  string
	Message string
	// StatusCode holds the HTTP status when a fetch received a response;
	// zero when the request never completed.
	StatusCode int
	Err        error
	Time       time.Time
}

// Error implements the error interface
func (e *ScrapeError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %s - %v", e.Type, e.Source, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s: %s", e.Type, e.Source, e.Message)
}

// Unwrap returns the underlying error
func (e *ScrapeError) Unwrap() error {
	return e.Err
}

// IsRetryable returns true if the error is retryable
func (e *ScrapeError) IsRetryable() bool {
	switch e.Type {
	case ErrorTypeFetch:
		return true
	case ErrorTypeExtract:
		return false
	default:
		return false
	}
}

// New creates a new ScrapeError
func New(errType ErrorType, source, message string, err error) *ScrapeError {
	return &ScrapeError{
		Type:    errType,
		Source:  source,
		Message: message,
		Err:     err,
		Time:    time.Now(),
	}
}

// NewFetch creates a new fetch error
func NewFetch(source, message string, err error) *ScrapeError {
	return New(ErrorTypeFetch, source, message, err)
}

// NewFetchStatus creates a new fetch error for a non-success HTTP status
func NewFetchStatus(source string, statusCode int) *ScrapeError {
	e := New(ErrorTypeFetch, source, fmt.Sprintf("unexpected status %d", statusCode), nil)
	e.StatusCode = statusCode
	return e
}

// NewExtract creates a new extraction error
func NewExtract(source, message string, err error) *ScrapeError {
	return New(ErrorTypeExtract, source, message, err)
}

// NewCache creates a new cache error
func NewCache(source, message string, err error) *ScrapeError {
	return New(ErrorTypeCache, source, message, err)
}

// NewStorage creates a new storage error
func NewStorage(source, message string, err error) *ScrapeError {
	return New(ErrorTypeStorage, source, message, err)
}

// NewNotify creates a new notifier error
func NewNotify(source, message string, err error) *ScrapeError {
	return New(ErrorTypeNotify, source, message, err)
}

// NewValidation creates a new validation error
func NewValidation(source, message string) *ScrapeError {
	return New(ErrorTypeValidation, source, message, nil)
}

// NewConfiguration creates a new configuration error
func NewConfiguration(source, message string, err error) *ScrapeError {
	return New(ErrorTypeConfiguration, source, message, err)
}
