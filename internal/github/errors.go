package github

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/google/go-github/v66/github"
)

// ErrorType represents different categories of GitHub API errors
type ErrorType string

const (
	ErrorTypeAuth       ErrorType = "authentication"
	ErrorTypePermission ErrorType = "permission"
	ErrorTypeNotFound   ErrorType = "not_found"
	ErrorTypeRateLimit  ErrorType = "rate_limit"
	ErrorTypeNetwork    ErrorType = "network"
	ErrorTypeUnknown    ErrorType = "unknown"
)

// Error represents a structured error from a GitHub call
type Error struct {
	Type      ErrorType
	Message   string
	Cause     error
	Resource  string
	Retryable bool
	ResetAt   time.Time // rate limit reset, zero if unknown
}

// Error implements the error interface
func (e *Error) Error() string {
	if e.Resource != "" {
		return fmt.Sprintf("%s error for %s: %s", e.Type, e.Resource, e.Message)
	}
	return fmt.Sprintf("%s error: %s", e.Type, e.Message)
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.Cause
}

// IsType reports whether err is a *Error of the given type
func IsType(err error, t ErrorType) bool {
	var ghErr *Error
	return errors.As(err, &ghErr) && ghErr.Type == t
}

// WrapError wraps an error returned by go-github into *Error
func WrapError(err error, resource string) error {
	if err == nil {
		return nil
	}

	var ghErr *Error
	if errors.As(err, &ghErr) {
		if ghErr.Resource == "" {
			ghErr.Resource = resource
		}
		return ghErr
	}

	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}

	var rateErr *github.RateLimitError
	if errors.As(err, &rateErr) {
		return &Error{
			Type:      ErrorTypeRateLimit,
			Message:   fmt.Sprintf("rate limit exceeded, resets at %s", rateErr.Rate.Reset.Time.Format(time.Kitchen)),
			Cause:     err,
			Resource:  resource,
			Retryable: true,
			ResetAt:   rateErr.Rate.Reset.Time,
		}
	}

	var abuseErr *github.AbuseRateLimitError
	if errors.As(err, &abuseErr) {
		e := &Error{
			Type:      ErrorTypeRateLimit,
			Message:   "secondary rate limit hit",
			Cause:     err,
			Resource:  resource,
			Retryable: true,
		}
		if abuseErr.RetryAfter != nil {
			e.ResetAt = time.Now().Add(*abuseErr.RetryAfter)
		}
		return e
	}

	var respErr *github.ErrorResponse
	if errors.As(err, &respErr) && respErr.Response != nil {
		return fromResponse(respErr, resource)
	}

	if isNetworkError(err) {
		return &Error{
			Type:      ErrorTypeNetwork,
			Message:   "network error, check your connection",
			Cause:     err,
			Resource:  resource,
			Retryable: true,
		}
	}

	return &Error{
		Type:     ErrorTypeUnknown,
		Message:  err.Error(),
		Cause:    err,
		Resource: resource,
	}
}

// fromResponse maps an API error response onto an error type
func fromResponse(respErr *github.ErrorResponse, resource string) *Error {
	e := &Error{
		Resource: resource,
		Cause:    respErr,
	}

	switch respErr.Response.StatusCode {
	case http.StatusUnauthorized:
		e.Type = ErrorTypeAuth
		e.Message = "authentication failed, set GITHUB_TOKEN or github.token in the config file"
	case http.StatusForbidden:
		if strings.Contains(strings.ToLower(respErr.Message), "rate limit") {
			e.Type = ErrorTypeRateLimit
			e.Message = "rate limit exceeded"
			e.Retryable = true
		} else {
			e.Type = ErrorTypePermission
			e.Message = "insufficient permissions for this token"
		}
	case http.StatusNotFound:
		e.Type = ErrorTypeNotFound
		e.Message = "not found"
	case http.StatusInternalServerError, http.StatusBadGateway, http.StatusServiceUnavailable, http.StatusGatewayTimeout:
		e.Type = ErrorTypeNetwork
		e.Message = "GitHub is temporarily unavailable"
		e.Retryable = true
	default:
		e.Type = ErrorTypeUnknown
		e.Message = respErr.Message
		e.Retryable = respErr.Response.StatusCode >= 500
	}

	return e
}

// isNetworkError checks if an error looks like a connection problem
func isNetworkError(err error) bool {
	errStr := strings.ToLower(err.Error())
	for _, keyword := range []string{
		"connection refused",
		"connection reset",
		"network is unreachable",
		"no such host",
		"i/o timeout",
		"dial tcp",
	} {
		if strings.Contains(errStr, keyword) {
			return true
		}
	}
	return false
}

// RetryConfig defines configuration for retry logic
type RetryConfig struct {
	MaxRetries    int
	InitialDelay  time.Duration
	MaxDelay      time.Duration
	BackoffFactor float64
	// MaxRateLimitWait bounds how long a call waits for a rate limit reset
	MaxRateLimitWait time.Duration
}

// DefaultRetryConfig returns a default retry configuration
func DefaultRetryConfig() *RetryConfig {
	return &RetryConfig{
		MaxRetries:       3,
		InitialDelay:     time.Second,
		MaxDelay:         30 * time.Second,
		BackoffFactor:    2.0,
		MaxRateLimitWait: time.Minute,
	}
}

// WithRetry runs operation until it succeeds, fails with a non-retryable
// error, runs out of attempts, or ctx is done
func WithRetry(ctx context.Context, config *RetryConfig, operation func() error) error {
	if config == nil {
		config = DefaultRetryConfig()
	}

	var lastErr error
	delay := config.InitialDelay

	for attempt := 0; attempt <= config.MaxRetries; attempt++ {
		if attempt > 0 {
			wait := delay
			var ghErr *Error
			if errors.As(lastErr, &ghErr) && !ghErr.ResetAt.IsZero() {
				if untilReset := time.Until(ghErr.ResetAt); untilReset > 0 {
					if untilReset > config.MaxRateLimitWait {
						return lastErr
					}
					wait = untilReset
				}
			}

			timer := time.NewTimer(wait)
			select {
			case <-ctx.Done():
				timer.Stop()
				return ctx.Err()
			case <-timer.C:
			}

			delay = time.Duration(float64(delay) * config.BackoffFactor)
			if delay > config.MaxDelay {
				delay = config.MaxDelay
			}
		}

		err := operation()
		if err == nil {
			return nil
		}
		lastErr = err

		var ghErr *Error
		if !errors.As(err, &ghErr) || !ghErr.Retryable {
			return err
		}
	}

	return fmt.Errorf("operation failed after %d retries: %w", config.MaxRetries, lastErr)
}
