// Package errors provides the ServiceError taxonomy shared by the external-call
// components and its mapping onto BPMN errors for the job workers.
package errors

import (
	"context"
	goerrors "errors"
	"fmt"
	"net"
	"net/http"
	"strings"
	"time"
)

// ==========================
// 1. Service Error Types
// ==========================

// ErrorCode represents standardized internal error codes.
type ErrorCode string

const (
	ErrCodeLLMRequestFailed     ErrorCode = "LLM_REQUEST_FAILED"
	ErrCodeLLMTimeout           ErrorCode = "LLM_TIMEOUT"
	ErrCodeLLMAuthFailed        ErrorCode = "LLM_AUTH_FAILED"
	ErrCodeLLMQuotaExceeded     ErrorCode = "LLM_QUOTA_EXCEEDED"
	ErrCodeLLMMalformedResponse ErrorCode = "LLM_MALFORMED_RESPONSE"

	ErrCodeWebSearchFailed            ErrorCode = "WEB_SEARCH_FAILED"
	ErrCodeWebSearchTimeout           ErrorCode = "WEB_SEARCH_TIMEOUT"
	ErrCodeWebSearchHTTPStatus        ErrorCode = "WEB_SEARCH_HTTP_STATUS"
	ErrCodeWebSearchMalformedResponse ErrorCode = "WEB_SEARCH_MALFORMED_RESPONSE"

	ErrCodeInvalidInput         ErrorCode = "INVALID_INPUT"
	ErrCodeConfigurationMissing ErrorCode = "CONFIGURATION_MISSING"
	ErrCodeInternal             ErrorCode = "INTERNAL_ERROR"
)

// ServiceError is the single error kind surfaced by calls to the LLM and
// search services.
type ServiceError struct {
	Service    string    `json:"service"`
	Code       ErrorCode `json:"code"`
	Message    string    `json:"message"`
	StatusCode int       `json:"statusCode,omitempty"`
	Retryable  bool      `json:"retryable"`
	Timestamp  time.Time `json:"timestamp"`
	Err        error     `json:"-"`
}

func (e *ServiceError) Error() string {
	msg := fmt.Sprintf("%s: %s: %s", e.Service, e.Code, e.Message)
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *ServiceError) Unwrap() error {
	return e.Err
}

// AsServiceError extracts a ServiceError from an error chain.
func AsServiceError(err error) (*ServiceError, bool) {
	var svcErr *ServiceError
	if goerrors.As(err, &svcErr) {
		return svcErr, true
	}
	return nil, false
}

// CodeOf returns the ServiceError code in err, or ErrCodeInternal.
func CodeOf(err error) ErrorCode {
	if svcErr, ok := AsServiceError(err); ok {
		return svcErr.Code
	}
	return ErrCodeInternal
}

// IsTimeout reports whether err is a deadline or network timeout.
func IsTimeout(err error) bool {
	if err == nil {
		return false
	}
	if goerrors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return goerrors.As(err, &netErr) && netErr.Timeout()
}

// ==========================
// 2. BPMN Error Integration
// ==========================

// BPMNError represents an error that can be thrown to the Camunda workflow engine.
type BPMNError struct {
	Code           string                 `json:"code"`
	Message        string                 `json:"message"`
	Details        string                 `json:"details,omitempty"`
	Retryable      bool                   `json:"retryable"`
	Retries        int                    `json:"retries"`
	ErrorVariables map[string]interface{} `json:"errorVariables,omitempty"`
}

func (e *BPMNError) Error() string {
	return fmt.Sprintf("BPMNError[%s]: %s", e.Code, e.Message)
}

// ToErrorVariables returns a map suitable for setting Camunda job fail variables.
func (e *BPMNError) ToErrorVariables() map[string]interface{} {
	vars := map[string]interface{}{
		"errorCode":    e.Code,
		"errorMessage": e.Message,
		"errorDetails": e.Details,
		"retryable":    e.Retryable,
	}
	for k, v := range e.ErrorVariables {
		vars[k] = v
	}
	return vars
}

// ==========================
// 3. Error Constructors
// ==========================

func newServiceError(service string, code ErrorCode, message string, retryable bool, err error) *ServiceError {
	return &ServiceError{
		Service:   service,
		Code:      code,
		Message:   message,
		Retryable: retryable,
		Timestamp: time.Now().UTC(),
		Err:       err,
	}
}

// NewLLMRequestError wraps a transport failure talking to the LLM service.
// Timeouts are classified as ErrCodeLLMTimeout.
func NewLLMRequestError(service string, err error) *ServiceError {
	if IsTimeout(err) {
		return NewLLMTimeoutError(service, err)
	}
	return newServiceError(service, ErrCodeLLMRequestFailed, "request failed", true, err)
}

// NewLLMTimeoutError creates a retryable LLM timeout error.
func NewLLMTimeoutError(service string, err error) *ServiceError {
	return newServiceError(service, ErrCodeLLMTimeout, "request timed out", true, err)
}

// NewLLMStatusError maps a non-2xx LLM response onto auth, quota or request codes.
func NewLLMStatusError(service string, statusCode int, detail string) *ServiceError {
	code := ErrCodeLLMRequestFailed
	retryable := statusCode >= http.StatusInternalServerError
	switch statusCode {
	case http.StatusUnauthorized, http.StatusForbidden:
		code = ErrCodeLLMAuthFailed
	case http.StatusTooManyRequests:
		code = ErrCodeLLMQuotaExceeded
		retryable = true
	}

	msg := fmt.Sprintf("status %d", statusCode)
	if detail = strings.TrimSpace(detail); detail != "" {
		msg += ": " + detail
	}
	svcErr := newServiceError(service, code, msg, retryable, nil)
	svcErr.StatusCode = statusCode
	return svcErr
}

// NewLLMMalformedResponseError reports an unusable completion payload.
func NewLLMMalformedResponseError(service, details string) *ServiceError {
	return newServiceError(service, ErrCodeLLMMalformedResponse, details, false, nil)
}

// NewWebSearchRequestError wraps a transport failure talking to the search API.
func NewWebSearchRequestError(service string, err error) *ServiceError {
	if IsTimeout(err) {
		return newServiceError(service, ErrCodeWebSearchTimeout, "request timed out", true, err)
	}
	return newServiceError(service, ErrCodeWebSearchFailed, "request failed", true, err)
}

// NewWebSearchStatusError reports a non-2xx search API response.
func NewWebSearchStatusError(service string, statusCode int) *ServiceError {
	svcErr := newServiceError(service, ErrCodeWebSearchHTTPStatus,
		fmt.Sprintf("search API returned %d", statusCode),
		statusCode == http.StatusTooManyRequests || statusCode >= http.StatusInternalServerError, nil)
	svcErr.StatusCode = statusCode
	return svcErr
}

// NewWebSearchMalformedResponseError reports a search payload that failed to parse or validate.
func NewWebSearchMalformedResponseError(service string, err error) *ServiceError {
	return newServiceError(service, ErrCodeWebSearchMalformedResponse, "malformed response", false, err)
}

// NewInvalidInputError is raised by job workers for unusable job variables.
func NewInvalidInputError(details string) *ServiceError {
	return newServiceError("worker", ErrCodeInvalidInput, details, false, nil)
}

// NewConfigurationMissingError reports a required setting that is absent at startup.
func NewConfigurationMissingError(key string) *ServiceError {
	return newServiceError("config", ErrCodeConfigurationMissing, key+" is required", false, nil)
}

// ==========================
// 4. Error Conversion to BPMN
// ==========================

// GetRetryCount returns the recommended job retry count for a code.
func GetRetryCount(code ErrorCode) int {
	switch code {
	case ErrCodeLLMRequestFailed,
		ErrCodeWebSearchFailed,
		ErrCodeWebSearchHTTPStatus:
		return 3

	case ErrCodeLLMTimeout,
		ErrCodeWebSearchTimeout,
		ErrCodeLLMQuotaExceeded:
		return 2

	default:
		return 0
	}
}

// ConvertToBPMNError converts a ServiceError to a BPMNError for Camunda.
func ConvertToBPMNError(svcErr *ServiceError) *BPMNError {
	retries := GetRetryCount(svcErr.Code)
	if !svcErr.Retryable {
		retries = 0
	}

	details := ""
	if svcErr.Err != nil {
		details = svcErr.Err.Error()
	}

	return &BPMNError{
		Code:      string(svcErr.Code),
		Message:   svcErr.Message,
		Details:   details,
		Retryable: svcErr.Retryable,
		Retries:   retries,
		ErrorVariables: map[string]interface{}{
			"service":   svcErr.Service,
			"timestamp": svcErr.Timestamp.Format(time.RFC3339),
		},
	}
}

// ==========================
// 5. Utility Functions
// ==========================

// GetErrorCategory returns the category of the error code.
func GetErrorCategory(code ErrorCode) string {
	codeStr := string(code)
	switch {
	case strings.HasPrefix(codeStr, "LLM"):
		return "AI_SERVICE"
	case strings.HasPrefix(codeStr, "WEB_SEARCH"):
		return "SEARCH_SERVICE"
	case strings.Contains(codeStr, "INVALID"):
		return "INPUT"
	case strings.Contains(codeStr, "CONFIGURATION"):
		return "CONFIG"
	default:
		return "OTHER"
	}
}
