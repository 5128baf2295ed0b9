package domain

import "errors"

// Webhook error types. The HTTP adapter maps each one to a status code.

var (
	// ErrSignatureInvalid indicates a missing or mismatching X-Line-Signature
	ErrSignatureInvalid = errors.New("invalid webhook signature")

	// ErrMalformedPayload indicates the verified body is not a usable webhook payload
	ErrMalformedPayload = errors.New("malformed webhook payload")

	// ErrDownstream indicates a call to the LINE platform failed
	ErrDownstream = errors.New("downstream request failed")

	// ErrEvaluatorUnavailable indicates the remote evaluator could not produce a message.
	// It is recovered inside the application service and never fails a request.
	ErrEvaluatorUnavailable = errors.New("evaluator unavailable")
)
