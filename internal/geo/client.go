package geo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/hashicorp/go-retryablehttp"
	"golang.org/x/time/rate"
)

// ErrNotFound means the geocoder returned no match for the address. An empty
// result set is a normal answer, not a transport failure.
var ErrNotFound = errors.New("no coordinates found for address")

type Point struct {
	Lat float64
	Lng float64
}

// Geocoder turns a free-text address into coordinates.
type Geocoder interface {
	Search(ctx context.Context, address string) (Point, error)
}

// Client is a Nominatim search client. The provider allows roughly one
// request per second, so every call waits on the shared limiter.
type Client struct {
	baseURL   string
	userAgent string
	http      *retryablehttp.Client
	limiter   *rate.Limiter
}

func NewClient(baseURL, userAgent string) *Client {
	rc := retryablehttp.NewClient()
	rc.RetryWaitMin = 200 * time.Millisecond
	rc.RetryWaitMax = 2 * time.Second
	rc.RetryMax = 2
	rc.HTTPClient.Timeout = 8 * time.Second
	rc.Logger = nil
	// Do not hammer a provider that just told us to slow down; surface the
	// 429 instead of retrying into it.
	rc.CheckRetry = func(ctx context.Context, resp *http.Response, err error) (bool, error) {
		if resp != nil && resp.StatusCode == http.StatusTooManyRequests {
			return false, nil
		}
		return retryablehttp.DefaultRetryPolicy(ctx, resp, err)
	}

	return &Client{
		baseURL:   baseURL,
		userAgent: userAgent,
		http:      rc,
		limiter:   rate.NewLimiter(rate.Every(time.Second), 1),
	}
}

type nominatimHit struct {
	Lat string `json:"lat"`
	Lon string `json:"lon"`
}

func (c *Client) Search(ctx context.Context, address string) (Point, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return Point{}, err
	}

	q := url.Values{}
	q.Set("q", address)
	q.Set("format", "json")
	q.Set("limit", "1")

	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+q.Encode(), nil)
	if err != nil {
		return Point{}, err
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.http.Do(req)
	if err != nil {
		return Point{}, fmt.Errorf("geocoder unreachable: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusTooManyRequests {
		return Point{}, errors.New("geocoder rate limit hit, wait a moment and try again")
	}
	if resp.StatusCode >= 400 {
		return Point{}, fmt.Errorf("geocoder error: %s", resp.Status)
	}

	var hits []nominatimHit
	if err := json.NewDecoder(resp.Body).Decode(&hits); err != nil {
		return Point{}, fmt.Errorf("geocoder response malformed: %w", err)
	}
	if len(hits) == 0 {
		return Point{}, ErrNotFound
	}

	lat, err := strconv.ParseFloat(hits[0].Lat, 64)
	if err != nil {
		return Point{}, fmt.Errorf("geocoder returned bad latitude %q", hits[0].Lat)
	}
	lng, err := strconv.ParseFloat(hits[0].Lon, 64)
	if err != nil {
		return Point{}, fmt.Errorf("geocoder returned bad longitude %q", hits[0].Lon)
	}
	return Point{Lat: lat, Lng: lng}, nil
}
