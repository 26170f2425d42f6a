package translation

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

const (
	// DefaultMyMemoryURL is the public MyMemory lookup endpoint
	DefaultMyMemoryURL = "https://api.mymemory.translated.net/get"

	myMemoryTimeout = 30 * time.Second
	maxResponseSize = 1 << 20

	// candidateIndex selects the match used as the translation of record
	candidateIndex = 1
)

// MyMemoryConfig configures a MyMemoryClient
type MyMemoryConfig struct {
	BaseURL           string        // Lookup endpoint, DefaultMyMemoryURL when empty
	Email             string        // Optional contact address, raises the daily quota
	Timeout           time.Duration // Per request timeout
	RequestsPerMinute int           // 0 disables client side rate limiting
	HTTPClient        *http.Client  // Overrides the default client when set
}

// MyMemoryClient implements WordClient for the MyMemory translation memory
type MyMemoryClient struct {
	baseURL    string
	email      string
	httpClient *http.Client
	rateLimit  *rateLimiter
}

// myMemoryResponse is the subset of the lookup response we rely on
type myMemoryResponse struct {
	ResponseStatus  providerStatus  `json:"responseStatus"`
	ResponseDetails string          `json:"responseDetails"`
	Matches         []myMemoryMatch `json:"matches"`
}

type myMemoryMatch struct {
	Translation *string `json:"translation"`
}

// providerStatus accepts the status both as a JSON number and as a string,
// MyMemory uses either depending on the outcome.
type providerStatus int

func (s *providerStatus) UnmarshalJSON(data []byte) error {
	raw := strings.Trim(string(data), `"`)
	if raw == "" || raw == "null" {
		*s = 0
		return nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return fmt.Errorf("invalid responseStatus %s: %w", data, err)
	}
	*s = providerStatus(n)
	return nil
}

// NewMyMemoryClient creates a new MyMemory client
func NewMyMemoryClient(cfg MyMemoryConfig) *MyMemoryClient {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultMyMemoryURL
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = myMemoryTimeout
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}

	return &MyMemoryClient{
		baseURL:    cfg.BaseURL,
		email:      cfg.Email,
		httpClient: httpClient,
		rateLimit:  newRateLimiter(cfg.RequestsPerMinute),
	}
}

// Name returns the provider name
func (c *MyMemoryClient) Name() string {
	return "mymemory"
}

// CloseIdleConnections releases pooled connections of the underlying client
func (c *MyMemoryClient) CloseIdleConnections() {
	c.httpClient.CloseIdleConnections()
}

// Translate looks up a single token and returns the second match
func (c *MyMemoryClient) Translate(ctx context.Context, req Request) (string, error) {
	if err := c.rateLimit.wait(ctx); err != nil {
		return "", transportError(ctx, req.Token, err)
	}

	params := url.Values{}
	params.Set("q", req.Token)
	params.Set("langpair", req.Pair.String())
	if c.email != "" {
		params.Set("de", c.email)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return "", newError(ProviderClientError, req.Token, "failed to create request", err)
	}
	httpReq.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return "", transportError(ctx, req.Token, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return "", transportError(ctx, req.Token, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", classifyRejection(req.Token, resp.StatusCode, strings.TrimSpace(string(body)))
	}

	return parseMyMemoryBody(req.Token, body)
}

func parseMyMemoryBody(token string, body []byte) (string, error) {
	body = bytes.TrimSpace(body)
	if len(body) == 0 || bytes.Equal(body, []byte("null")) {
		return "", newError(MalformedResponse, token, "empty response body", nil)
	}

	var payload myMemoryResponse
	if err := json.Unmarshal(body, &payload); err != nil {
		return "", newError(MalformedResponse, token, "failed to decode response", err)
	}

	// Errors are also reported with HTTP 200 and a failing status in the body
	if payload.ResponseStatus >= 400 {
		return "", classifyRejection(token, int(payload.ResponseStatus), payload.ResponseDetails)
	}

	if len(payload.Matches) <= candidateIndex {
		return "", newError(MalformedResponse, token,
			fmt.Sprintf("expected at least %d matches, got %d", candidateIndex+1, len(payload.Matches)), nil)
	}

	translation := payload.Matches[candidateIndex].Translation
	if translation == nil || strings.TrimSpace(*translation) == "" {
		return "", newError(MalformedResponse, token, "match has no translation", nil)
	}

	return strings.TrimSpace(*translation), nil
}

// classifyRejection maps a failing status to an error kind. Rejections that
// name the language codes are reported as InvalidLanguagePair.
func classifyRejection(token string, status int, details string) *Error {
	err := statusError(token, status, details)
	if status < http.StatusInternalServerError && mentionsLanguage(details) {
		err.Kind = InvalidLanguagePair
	}
	return err
}

func mentionsLanguage(details string) bool {
	upper := strings.ToUpper(details)
	return strings.Contains(upper, "LANGUAGE") || strings.Contains(upper, "LANGPAIR")
}
