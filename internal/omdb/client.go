package omdb

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/jmgilman/go/errors"
)

// Client queries the OMDb API.
type Client struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// WithTimeout sets the per-request timeout of the default HTTP client.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		if timeout > 0 {
			c.httpClient = &http.Client{Timeout: timeout}
		}
	}
}

// New creates an OMDb client.
func New(apiKey, baseURL string, opts ...Option) (*Client, error) {
	apiKey = strings.TrimSpace(apiKey)
	if apiKey == "" {
		return nil, stderrors.New("omdb api key required")
	}
	baseURL = strings.TrimSpace(baseURL)
	if baseURL == "" {
		return nil, stderrors.New("omdb base url required")
	}
	client := &Client{
		apiKey:     apiKey,
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
	for _, opt := range opts {
		opt(client)
	}
	return client, nil
}

// LookupTitle fetches the movie whose title matches title.
func (c *Client) LookupTitle(ctx context.Context, title string) (Record, error) {
	if strings.TrimSpace(title) == "" {
		return nil, errors.New(errors.CodeInvalidInput, "title must not be empty")
	}
	endpoint, err := url.Parse(c.baseURL)
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeInvalidConfig, "parse omdb url")
	}
	params := endpoint.Query()
	params.Set("t", title)
	params.Set("apikey", c.apiKey)
	endpoint.RawQuery = params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint.String(), nil)
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeInternal, "build request")
	}

	requestStart := time.Now()
	resp, err := c.httpClient.Do(req)
	latency := time.Since(requestStart)
	if err != nil {
		return nil, transportError(err, latency)
	}
	defer resp.Body.Close()

	var payload Record
	decodeErr := json.NewDecoder(resp.Body).Decode(&payload)

	if resp.StatusCode != http.StatusOK {
		if message := payload.String("Error"); decodeErr == nil && message != "" {
			return nil, responseError(message)
		}
		return nil, statusError(resp.StatusCode, latency)
	}
	if decodeErr != nil {
		return nil, errors.Wrap(decodeErr, errors.CodeInvalidInput, "decode omdb response")
	}

	switch payload.String("Response") {
	case "True":
		return payload, nil
	case "False":
		return nil, responseError(payload.String("Error"))
	default:
		return nil, errors.New(errors.CodeInvalidInput, "omdb response missing Response field")
	}
}

func responseError(message string) error {
	lower := strings.ToLower(message)
	switch {
	case strings.Contains(lower, "not found"):
		return errors.Newf(errors.CodeNotFound, "omdb: %s", message)
	case strings.Contains(lower, "limit"):
		return errors.Newf(errors.CodeRateLimit, "omdb: %s", message)
	case strings.Contains(lower, "api key"), strings.Contains(lower, "no api"):
		return errors.Newf(errors.CodeUnauthorized, "omdb: %s", message)
	case message == "":
		return errors.New(errors.CodeInvalidInput, "omdb returned an unsuccessful response without an error message")
	default:
		return errors.Newf(errors.CodeUnavailable, "omdb: %s", message)
	}
}

func statusError(status int, latency time.Duration) error {
	code := errors.CodeUnavailable
	switch {
	case status == http.StatusUnauthorized:
		code = errors.CodeUnauthorized
	case status == http.StatusTooManyRequests:
		code = errors.CodeRateLimit
	case status == http.StatusNotFound:
		// A 404 from the endpoint itself means a bad base URL, not a missing movie.
		code = errors.CodeInvalidConfig
	}
	return errors.Newf(code, "omdb returned %d (latency=%v)", status, latency)
}

func transportError(err error, latency time.Duration) error {
	if stderrors.Is(err, context.DeadlineExceeded) || stderrors.Is(err, context.Canceled) {
		return errors.Wrapf(err, errors.CodeTimeout, "execute request (latency=%v)", latency)
	}
	var urlErr *url.Error
	if stderrors.As(err, &urlErr) && urlErr.Timeout() {
		return errors.Wrapf(err, errors.CodeTimeout, "execute request (latency=%v)", latency)
	}
	return errors.Wrapf(err, errors.CodeNetwork, "execute request (latency=%v)", latency)
}
