package http

import (
	"errors"
	"net/http"

	"line-callback/internal/domain"
)

var (
	// Success response
	Success = Status{Code: http.StatusOK, Message: []string{"Success"}}
	// InvalidSignature response
	InvalidSignature = Status{Code: http.StatusBadRequest, Message: []string{"Invalid signature. Please check your channel access token/secret."}}
	// InternalServerError response
	InternalServerError = Status{Code: http.StatusInternalServerError, Message: []string{"Internal Server Error"}}
)

// ResponseBody struct - Generic HTTP response wrapper
type ResponseBody struct {
	Status Status      `json:"status,omitempty"`
	Data   interface{} `json:"data,omitempty"`
}

// Status struct
type Status struct {
	Code    int      `json:"code,omitempty"`
	Message []string `json:"message,omitempty"`
}

// CallbackResponse struct - Body returned to the platform when a webhook was handled
type CallbackResponse struct {
	Status string `json:"status" example:"ok"`
}

// statusForError maps a webhook error to the response status
func statusForError(err error) Status {
	switch {
	case errors.Is(err, domain.ErrSignatureInvalid):
		return InvalidSignature
	default:
		// malformed payloads and downstream failures
		return InternalServerError
	}
}
