package flow

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/weinhaus/storefront/internal/api/metrics"
	"github.com/weinhaus/storefront/internal/core/domain"
)

const (
	defaultTimeout = 30 * time.Second
	maxErrorBody   = 512
)

// Config holds the flow runtime endpoint.
type Config struct {
	BaseURL string
	Timeout time.Duration
}

// Client invokes named flows over HTTP. A flow is served at
// <BaseURL>/<flowName>; requests carry {"data": input} and responses
// {"result": output}. Calls are never retried.
type Client struct {
	baseURL string
	http    *http.Client
}

func NewClient(cfg Config) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		http:    &http.Client{Timeout: timeout},
	}
}

type flowRequest struct {
	Data any `json:"data"`
}

type flowResponse struct {
	Result json.RawMessage `json:"result"`
	Error  *struct {
		Status  string `json:"status"`
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

// Invoke runs flowName with input and decodes its result into output.
// Every failure wraps domain.ErrFlowFailed.
func (c *Client) Invoke(ctx context.Context, flowName string, input, output any) error {
	err := c.invoke(ctx, flowName, input, output)
	result := "ok"
	if err != nil {
		result = "error"
	}
	metrics.FlowInvocationsTotal.WithLabelValues(flowName, result).Inc()
	return err
}

func (c *Client) invoke(ctx context.Context, flowName string, input, output any) error {
	if c.baseURL == "" {
		return fmt.Errorf("%w: %s: no flow endpoint configured", domain.ErrFlowFailed, flowName)
	}

	body, err := json.Marshal(flowRequest{Data: input})
	if err != nil {
		return fmt.Errorf("%w: %s: encode input: %w", domain.ErrFlowFailed, flowName, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/"+flowName, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("%w: %s: %w", domain.ErrFlowFailed, flowName, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %s: %w", domain.ErrFlowFailed, flowName, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return fmt.Errorf("%w: %s: status %d: %s", domain.ErrFlowFailed, flowName, resp.StatusCode, strings.TrimSpace(string(snippet)))
	}

	var fr flowResponse
	if err := json.NewDecoder(resp.Body).Decode(&fr); err != nil {
		return fmt.Errorf("%w: %s: decode response: %w", domain.ErrFlowFailed, flowName, err)
	}
	if fr.Error != nil {
		return fmt.Errorf("%w: %s: %s: %s", domain.ErrFlowFailed, flowName, fr.Error.Status, fr.Error.Message)
	}
	if output == nil || len(fr.Result) == 0 {
		return nil
	}
	if err := json.Unmarshal(fr.Result, output); err != nil {
		return fmt.Errorf("%w: %s: decode result: %w", domain.ErrFlowFailed, flowName, err)
	}
	return nil
}
