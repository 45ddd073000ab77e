// Package ths fetches and parses intraday fund valuations from the 10jqka (THS) chart API.
package ths

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/ndewijer/Fund-Valuation-Backend/internal/apperrors"
)

const (
	// valuationURL is the chart endpoint template; %s is the six-digit fund code.
	valuationURL = "https://gz-fund.10jqka.com.cn/?module=api&controller=index&action=chart&info=vm_fd_%s&start=0930"

	// UserAgent is the mobile browser identity the provider expects.
	UserAgent = "Mozilla/5.0 (iPhone; CPU iPhone OS 17_0 like Mac OS X) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/17.0 Mobile/15E148 Safari/604.1"

	// Referer must point at the provider's fund site or the request is rejected.
	Referer = "https://fund.10jqka.com.cn/"

	// DefaultTimeout bounds one valuation request.
	DefaultTimeout = 10 * time.Second
)

// Client is the transport used to fetch raw valuation responses.
type Client interface {
	QueryValuation(ctx context.Context, code string) (string, error)
}

// FinanceClient fetches valuation charts over HTTP.
type FinanceClient struct {
	httpClient *http.Client
	baseURL    string
}

// NewFinanceClient creates a client whose HTTP requests are bounded by timeout.
// A non-positive timeout selects DefaultTimeout.
func NewFinanceClient(timeout time.Duration) *FinanceClient {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &FinanceClient{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    valuationURL,
	}
}

// NewFinanceClientWithURL creates a client against a different URL template,
// which must contain a single %s for the fund code. Used to point the client
// at a local test server.
func NewFinanceClientWithURL(httpClient *http.Client, urlTemplate string) *FinanceClient {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: DefaultTimeout}
	}
	return &FinanceClient{httpClient: httpClient, baseURL: urlTemplate}
}

// URL returns the chart URL for code.
func (c *FinanceClient) URL(code string) string {
	return fmt.Sprintf(c.baseURL, code)
}

// QueryValuation fetches the raw chart response for a fund code.
//
// Returns:
//   - string: the response body, undecoded
//   - error: wrapping ErrTransportFailure on request errors, timeouts or non-2xx statuses
func (c *FinanceClient) QueryValuation(ctx context.Context, code string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.URL(code), nil)
	if err != nil {
		return "", fmt.Errorf("%w: %w", apperrors.ErrTransportFailure, err)
	}

	req.Header.Set("User-Agent", UserAgent)
	req.Header.Set("Referer", Referer)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %w", apperrors.ErrTransportFailure, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", fmt.Errorf("%w: status %d for %s", apperrors.ErrTransportFailure, resp.StatusCode, code)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("%w: %w", apperrors.ErrTransportFailure, err)
	}

	return string(data), nil
}
