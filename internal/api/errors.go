package api

import (
	"errors"
	"fmt"
)

// Authentication errors.
var (
	ErrBadCredentials  = errors.New("invalid email or password")
	ErrAccountInactive = errors.New("account is deactivated, contact your administrator")
	ErrUnauthorized    = errors.New("session expired or token invalid")
	ErrForbidden       = errors.New("insufficient permissions")
)

// Transport errors.
var (
	ErrUnavailable = errors.New("PSP API unavailable")
)

// APIError is a non-auth error response from the PSP API.
type APIError struct {
	StatusCode int
	Code       string
	Message    string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("API error (status %d): %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("API error (status %d)", e.StatusCode)
}

// errorBody is the error envelope the API uses across endpoints.
type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Error   string `json:"error"`
}

func (b errorBody) text() string {
	if b.Message != "" {
		return b.Message
	}
	return b.Error
}
