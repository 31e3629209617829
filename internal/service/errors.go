package service

import (
	"errors"
	"fmt"
)

// ErrorType classifies upstream failures so handlers can map them to a
// status code without inspecting messages.
type ErrorType int

const (
	ErrorTypeUnknown ErrorType = iota
	ErrorTypeConfiguration
	ErrorTypeUpstreamStatus
	ErrorTypeNetworkError
	ErrorTypeInvalidResponse
	ErrorTypeMissingRate
)

func (errorType ErrorType) String() string {
	switch errorType {
	case ErrorTypeConfiguration:
		return "configuration"
	case ErrorTypeUpstreamStatus:
		return "upstream_status"
	case ErrorTypeNetworkError:
		return "network"
	case ErrorTypeInvalidResponse:
		return "invalid_response"
	case ErrorTypeMissingRate:
		return "missing_rate"
	default:
		return "unknown"
	}
}

// ServiceError represents a service-specific error with type information.
// StatusCode and UpstreamMessage are set for ErrorTypeUpstreamStatus only.
type ServiceError struct {
	Type            ErrorType
	Message         string
	StatusCode      int
	UpstreamMessage string
	Cause           error
}

func (e *ServiceError) Error() string {
	if e.Type == ErrorTypeUpstreamStatus {
		if e.UpstreamMessage != "" {
			return fmt.Sprintf("%s (status %d): %s", e.Message, e.StatusCode, e.UpstreamMessage)
		}
		return fmt.Sprintf("%s (status %d)", e.Message, e.StatusCode)
	}
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *ServiceError) Unwrap() error {
	return e.Cause
}

// ClassifyError returns the ErrorType carried by err, or ErrorTypeUnknown.
func ClassifyError(err error) ErrorType {
	var serviceError *ServiceError
	if errors.As(err, &serviceError) {
		return serviceError.Type
	}
	return ErrorTypeUnknown
}
