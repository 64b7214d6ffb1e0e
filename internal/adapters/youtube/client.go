// internal/adapters/youtube/client.go
package youtubead

import (
	"context"
	"errors"
	"fmt"
	"time"

	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
	"google.golang.org/api/youtube/v3"

	"travel_guide/internal/adapters/observability"
	"travel_guide/internal/domain"
)

const (
	service   = "youtube"
	watchBase = "https://www.youtube.com/watch?v="
)

type Options struct {
	APIKey   string
	Endpoint string // optional, for tests
	Timeout  time.Duration
}

type Client struct {
	svc     *youtube.Service
	timeout time.Duration
}

func New(ctx context.Context, o Options) (*Client, error) {
	if o.APIKey == "" {
		return nil, fmt.Errorf("API key is required")
	}
	if o.Timeout <= 0 {
		o.Timeout = 15 * time.Second
	}
	opts := []option.ClientOption{option.WithAPIKey(o.APIKey)}
	if o.Endpoint != "" {
		opts = append(opts, option.WithEndpoint(o.Endpoint))
	}
	svc, err := youtube.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("youtube: new service: %w", err)
	}
	return &Client{svc: svc, timeout: o.Timeout}, nil
}

// SearchQuery is the text sent to the search endpoint for an attraction.
func SearchQuery(query, location string) string {
	return query + " travel guide " + location
}

// TopVideo returns the most viewed video matching the attraction and location.
func (c *Client) TopVideo(ctx context.Context, query, location string) (domain.VideoRef, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	start := time.Now()
	resp, err := c.svc.Search.List([]string{"snippet"}).
		Q(SearchQuery(query, location)).
		Type("video").
		Order("viewCount").
		MaxResults(1).
		Context(ctx).
		Do()
	if err != nil {
		observability.ObserveExternal(service, "search.list", statusOf(err), time.Since(start))
		return domain.NoVideo(), fmt.Errorf("youtube: search: %w", err)
	}
	observability.ObserveExternal(service, "search.list", resp.HTTPStatusCode, time.Since(start))

	if len(resp.Items) == 0 {
		return domain.NoVideo(), nil
	}
	return toVideoRef(resp.Items[0]), nil
}

func toVideoRef(it *youtube.SearchResult) domain.VideoRef {
	if it == nil || it.Id == nil || it.Id.VideoId == "" {
		return domain.NoVideo()
	}
	v := domain.VideoRef{Link: watchBase + it.Id.VideoId}
	if s := it.Snippet; s != nil {
		v.Title = s.Title
		if s.Thumbnails != nil && s.Thumbnails.High != nil {
			v.Thumbnail = s.Thumbnails.High.Url
		}
	}
	return v
}

func statusOf(err error) int {
	var gerr *googleapi.Error
	if errors.As(err, &gerr) {
		return gerr.Code
	}
	return 0
}
