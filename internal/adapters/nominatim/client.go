// internal/adapters/nominatim/client.go
package nominatim

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"travel_guide/internal/adapters/observability"
	"travel_guide/internal/domain"
)

const service = "nominatim"

var (
	ErrUnauthorized = errors.New("nominatim: unauthorized")
	ErrForbidden    = errors.New("nominatim: forbidden")
)

type Options struct {
	BaseURL   string
	UserAgent string        // the usage policy requires an identifying agent
	Timeout   time.Duration // defaults to 5s
	RPS       float64       // defaults to 1, the public instance's limit
}

type Client struct {
	base string
	ua   string
	hc   *http.Client
	rl   *rate.Limiter
}

func New(o Options) (*Client, error) {
	if o.BaseURL == "" {
		return nil, fmt.Errorf("nominatim base URL is required")
	}
	if strings.TrimSpace(o.UserAgent) == "" {
		return nil, fmt.Errorf("nominatim user agent is required")
	}
	if o.Timeout <= 0 {
		o.Timeout = 5 * time.Second
	}
	if o.RPS <= 0 {
		o.RPS = 1
	}
	return &Client{
		base: strings.TrimRight(o.BaseURL, "/"),
		ua:   o.UserAgent,
		hc:   &http.Client{Timeout: o.Timeout},
		rl:   rate.NewLimiter(rate.Limit(o.RPS), 1),
	}, nil
}

type place struct {
	Lat string `json:"lat"`
	Lon string `json:"lon"`
}

// Locate returns the coordinates of the best match for name, or domain.ErrNotFound.
func (c *Client) Locate(ctx context.Context, name string) (domain.Coordinates, error) {
	q := url.Values{}
	q.Set("format", "json")
	q.Set("q", name)

	var out []place
	if err := c.get(ctx, c.base+"/search?"+q.Encode(), &out); err != nil {
		return domain.NoCoordinates(), err
	}
	if len(out) == 0 {
		return domain.NoCoordinates(), fmt.Errorf("%w: %q", domain.ErrNotFound, name)
	}

	lat, err := strconv.ParseFloat(strings.TrimSpace(out[0].Lat), 64)
	if err != nil {
		return domain.NoCoordinates(), fmt.Errorf("nominatim: bad latitude %q: %w", out[0].Lat, err)
	}
	lon, err := strconv.ParseFloat(strings.TrimSpace(out[0].Lon), 64)
	if err != nil {
		return domain.NoCoordinates(), fmt.Errorf("nominatim: bad longitude %q: %w", out[0].Lon, err)
	}
	return domain.NewCoordinates(lat, lon), nil
}

// get performs one rate-limited GET and decodes the JSON body into out.
func (c *Client) get(ctx context.Context, u string, out any) error {
	if err := c.rl.Wait(ctx); err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.ua)

	start := time.Now()
	resp, err := c.hc.Do(req)
	if err != nil {
		observability.ObserveExternal(service, "search", 0, time.Since(start))
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return err
	}
	defer resp.Body.Close()
	observability.ObserveExternal(service, "search", resp.StatusCode, time.Since(start))

	switch resp.StatusCode {
	case http.StatusOK:
		return json.NewDecoder(resp.Body).Decode(out)

	case http.StatusNotFound:
		return domain.ErrNotFound

	case http.StatusUnauthorized:
		return ErrUnauthorized

	case http.StatusForbidden:
		// the public instance answers 403 to missing or generic user agents
		return ErrForbidden

	default:
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("nominatim: bad status %d: %s", resp.StatusCode, strings.TrimSpace(string(b)))
	}
}
