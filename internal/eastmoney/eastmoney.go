// Package eastmoney resolves fund names to codes through the eastmoney fund suggestion API.
package eastmoney

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/buger/jsonparser"

	"github.com/ndewijer/Fund-Valuation-Backend/internal/apperrors"
)

const (
	searchURL = "https://fundsuggest.eastmoney.com/FundSearch/api/FundSearchAPI.ashx?m=1&key="

	userAgent = "Mozilla/5.0 (iPhone; CPU iPhone OS 17_0 like Mac OS X) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/17.0 Mobile/15E148 Safari/604.1"

	// DefaultTimeout bounds one search request.
	DefaultTimeout = 5 * time.Second
)

// SearchClient queries the fund suggestion endpoint.
type SearchClient struct {
	httpClient *http.Client
	baseURL    string
}

// NewSearchClient creates a client with a DefaultTimeout HTTP client.
func NewSearchClient() *SearchClient {
	return &SearchClient{
		httpClient: &http.Client{Timeout: DefaultTimeout},
		baseURL:    searchURL,
	}
}

// NewSearchClientWithURL creates a client against a different base URL; the
// escaped keyword is appended to it.
func NewSearchClientWithURL(httpClient *http.Client, baseURL string) *SearchClient {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: DefaultTimeout}
	}
	return &SearchClient{httpClient: httpClient, baseURL: baseURL}
}

// SearchFund returns the code and official name of the best match for keyword.
// Spaces are removed from keyword first; keywords shorter than two characters
// are not searched.
//
// Returns ErrFundNotFound when nothing matches.
func (c *SearchClient) SearchFund(ctx context.Context, keyword string) (string, string, error) {
	keyword = strings.ReplaceAll(strings.TrimSpace(keyword), " ", "")
	if utf8.RuneCountInString(keyword) < 2 {
		return "", "", apperrors.ErrFundNotFound
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+url.QueryEscape(keyword), nil)
	if err != nil {
		return "", "", err
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", "", fmt.Errorf("fund search request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", "", fmt.Errorf("fund search returned status %d", resp.StatusCode)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", "", err
	}

	return parseSearch(data)
}

// parseSearch reads Datas[0].CODE and Datas[0].NAME from a search response.
func parseSearch(data []byte) (string, string, error) {
	code, err := jsonparser.GetString(data, "Datas", "[0]", "CODE")
	if err != nil {
		if errors.Is(err, jsonparser.KeyPathNotFoundError) {
			return "", "", apperrors.ErrFundNotFound
		}
		return "", "", fmt.Errorf("failed to parse fund search response: %w", err)
	}
	if code == "" {
		return "", "", apperrors.ErrFundNotFound
	}

	name, err := jsonparser.GetString(data, "Datas", "[0]", "NAME")
	if err != nil && !errors.Is(err, jsonparser.KeyPathNotFoundError) {
		return "", "", fmt.Errorf("failed to parse fund search response: %w", err)
	}

	return code, name, nil
}

// Searcher is the lookup contract shared by SearchClient and CachingSearcher.
type Searcher interface {
	SearchFund(ctx context.Context, keyword string) (string, string, error)
}

// CachingSearcher remembers successful lookups in memory.
type CachingSearcher struct {
	next Searcher

	mu    sync.RWMutex
	cache map[string][2]string
}

// NewCachingSearcher wraps next with an in-memory cache of hits.
func NewCachingSearcher(next Searcher) *CachingSearcher {
	return &CachingSearcher{next: next, cache: make(map[string][2]string)}
}

// SearchFund implements Searcher. Misses and errors are not cached.
func (c *CachingSearcher) SearchFund(ctx context.Context, keyword string) (string, string, error) {
	c.mu.RLock()
	hit, ok := c.cache[keyword]
	c.mu.RUnlock()
	if ok {
		return hit[0], hit[1], nil
	}

	code, name, err := c.next.SearchFund(ctx, keyword)
	if err != nil {
		return "", "", err
	}

	c.mu.Lock()
	c.cache[keyword] = [2]string{code, name}
	c.mu.Unlock()

	return code, name, nil
}
