package geocode

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/jmgilman/go/errors"
)

// Coordinates is a WGS84 point.
type Coordinates struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

type place struct {
	Lat         string `json:"lat"`
	Lon         string `json:"lon"`
	DisplayName string `json:"display_name"`
}

// Client queries a Nominatim search endpoint.
type Client struct {
	baseURL    string
	userAgent  string
	language   string
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

// WithLanguage sets the accept-language sent with each search.
func WithLanguage(language string) Option {
	return func(c *Client) {
		c.language = strings.TrimSpace(language)
	}
}

// New creates a geocoding client. Nominatim rejects anonymous clients, so a
// user agent is required.
func New(baseURL, userAgent string, opts ...Option) (*Client, error) {
	baseURL = strings.TrimSpace(baseURL)
	if baseURL == "" {
		return nil, stderrors.New("geocoding base url required")
	}
	userAgent = strings.TrimSpace(userAgent)
	if userAgent == "" {
		return nil, stderrors.New("geocoding user agent required")
	}
	client := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		userAgent:  userAgent,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
	for _, opt := range opts {
		opt(client)
	}
	return client, nil
}

// Locate returns the coordinates of the best match for query.
func (c *Client) Locate(ctx context.Context, query string) (Coordinates, error) {
	if strings.TrimSpace(query) == "" {
		return Coordinates{}, errors.New(errors.CodeInvalidInput, "query must not be empty")
	}
	endpoint, err := url.Parse(c.baseURL + "/search")
	if err != nil {
		return Coordinates{}, errors.Wrap(err, errors.CodeInvalidConfig, "parse geocoding url")
	}
	params := url.Values{}
	params.Set("q", query)
	params.Set("format", "json")
	params.Set("limit", "1")
	if c.language != "" {
		params.Set("accept-language", c.language)
	}
	endpoint.RawQuery = params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint.String(), nil)
	if err != nil {
		return Coordinates{}, errors.Wrap(err, errors.CodeInternal, "build request")
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json")

	requestStart := time.Now()
	resp, err := c.httpClient.Do(req)
	latency := time.Since(requestStart)
	if err != nil {
		code := errors.CodeNetwork
		var urlErr *url.Error
		if stderrors.Is(err, context.DeadlineExceeded) || (stderrors.As(err, &urlErr) && urlErr.Timeout()) {
			code = errors.CodeTimeout
		}
		return Coordinates{}, errors.Wrapf(err, code, "execute request (latency=%v)", latency)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusTooManyRequests:
		return Coordinates{}, errors.Newf(errors.CodeRateLimit, "geocoding returned %d (latency=%v)", resp.StatusCode, latency)
	case resp.StatusCode == http.StatusForbidden:
		return Coordinates{}, errors.Newf(errors.CodeForbidden, "geocoding returned %d; check geocoding.user_agent", resp.StatusCode)
	case resp.StatusCode != http.StatusOK:
		return Coordinates{}, errors.Newf(errors.CodeUnavailable, "geocoding returned %d (latency=%v)", resp.StatusCode, latency)
	}

	var places []place
	if err := json.NewDecoder(resp.Body).Decode(&places); err != nil {
		return Coordinates{}, errors.Wrap(err, errors.CodeInvalidInput, "decode geocoding response")
	}
	if len(places) == 0 {
		return Coordinates{}, errors.Newf(errors.CodeNotFound, "no location found for %q", query)
	}
	return places[0].coordinates()
}

func (p place) coordinates() (Coordinates, error) {
	lat, err := strconv.ParseFloat(strings.TrimSpace(p.Lat), 64)
	if err != nil {
		return Coordinates{}, errors.Wrapf(err, errors.CodeInvalidInput, "parse latitude %q", p.Lat)
	}
	lon, err := strconv.ParseFloat(strings.TrimSpace(p.Lon), 64)
	if err != nil {
		return Coordinates{}, errors.Wrapf(err, errors.CodeInvalidInput, "parse longitude %q", p.Lon)
	}
	if lat < -90 || lat > 90 || lon < -180 || lon > 180 {
		return Coordinates{}, errors.Newf(errors.CodeInvalidInput, "coordinates out of range: %v, %v", lat, lon)
	}
	return Coordinates{Latitude: lat, Longitude: lon}, nil
}
