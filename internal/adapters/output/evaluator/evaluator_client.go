package evaluator

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"

	"line-callback/configs"
	"line-callback/internal/domain"
	"line-callback/internal/ports/output"

	"github.com/sirupsen/logrus"
)

// Compile-time check to ensure EvaluatorClientAdapter implements EvaluatorClient interface
var _ output.EvaluatorClient = (*EvaluatorClientAdapter)(nil)

const (
	defaultTimeout = 5 * time.Second
	// Maximum response body size read for error logging
	maxErrorBodySize = 1024
)

// EvaluatorClientAdapter struct - Output adapter for the remote evaluation webhook
type EvaluatorClientAdapter struct {
	httpClient *http.Client
	url        string
	timeout    time.Duration
}

// NewEvaluatorClientAdapter func - Creates new evaluator client adapter
func NewEvaluatorClientAdapter(config configs.Evaluator) (*EvaluatorClientAdapter, error) {
	if config.URL == "" {
		return nil, errors.New("evaluator url is not configured")
	}

	timeout := time.Duration(config.Timeout) * time.Second
	if config.Timeout <= 0 {
		timeout = defaultTimeout
	}

	httpClient := &http.Client{
		Timeout: timeout,
		Transport: &http.Transport{
			DialContext: (&net.Dialer{
				Timeout:   timeout,
				KeepAlive: 30 * time.Second,
			}).DialContext,
			MaxIdleConns:    10,
			IdleConnTimeout: 90 * time.Second,
		},
	}

	logrus.Infof("Evaluator client adapter initialized with url: %s, timeout: %v", config.URL, timeout)

	return &EvaluatorClientAdapter{
		httpClient: httpClient,
		url:        config.URL,
		timeout:    timeout,
	}, nil
}

// Evaluate sends an empty JSON object to the evaluator and returns its message.
// There is no retry: the caller replies with a fixed error string on failure.
func (a *EvaluatorClientAdapter) Evaluate(ctx context.Context) (*domain.EvaluationResult, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, a.url, bytes.NewReader([]byte("{}")))
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create request: %v", domain.ErrEvaluatorUnavailable, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := a.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrEvaluatorUnavailable, err)
	}
	defer resp.Body.Close() // nolint:errcheck

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodySize))
		return nil, fmt.Errorf("%w: status %d - %s", domain.ErrEvaluatorUnavailable, resp.StatusCode, string(body))
	}

	var apiResp evaluationAPIResponse
	if err := json.NewDecoder(resp.Body).Decode(&apiResp); err != nil {
		return nil, fmt.Errorf("%w: failed to parse response: %v", domain.ErrEvaluatorUnavailable, err)
	}
	if apiResp.Message == nil || *apiResp.Message == "" {
		return nil, fmt.Errorf("%w: response has no message", domain.ErrEvaluatorUnavailable)
	}

	logrus.Infof("Evaluator responded with %d characters", len(*apiResp.Message))

	return &domain.EvaluationResult{Message: *apiResp.Message}, nil
}

// evaluationAPIResponse represents the evaluator's JSON response
type evaluationAPIResponse struct {
	Message *string `json:"message"`
}
