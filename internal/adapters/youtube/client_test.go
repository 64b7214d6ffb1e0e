package youtubead_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	youtubead "travel_guide/internal/adapters/youtube"
	"travel_guide/internal/domain"
)

func newClient(t *testing.T, url string) *youtubead.Client {
	t.Helper()
	cl, err := youtubead.New(context.Background(), youtubead.Options{APIKey: "yt-test", Endpoint: url + "/"})
	require.NoError(t, err)
	return cl
}

func TestClient_TopVideo(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.True(t, strings.HasSuffix(r.URL.Path, "/youtube/v3/search"), "path %s", r.URL.Path)
		q := r.URL.Query()
		assert.Equal(t, "Eiffel Tower travel guide Paris", q.Get("q"))
		assert.Equal(t, "snippet", q.Get("part"))
		assert.Equal(t, "video", q.Get("type"))
		assert.Equal(t, "viewCount", q.Get("order"))
		assert.Equal(t, "1", q.Get("maxResults"))
		assert.Equal(t, "yt-test", q.Get("key"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"items":[{"id":{"kind":"youtube#video","videoId":"abc123"},` +
			`"snippet":{"title":"Paris in 4K","thumbnails":{"high":{"url":"https://i.ytimg.com/vi/abc123/hqdefault.jpg"}}}}]}`))
	}))
	defer ts.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	got, err := newClient(t, ts.URL).TopVideo(ctx, "Eiffel Tower", "Paris")
	require.NoError(t, err)
	assert.Equal(t, domain.VideoRef{
		Title:     "Paris in 4K",
		Link:      "https://www.youtube.com/watch?v=abc123",
		Thumbnail: "https://i.ytimg.com/vi/abc123/hqdefault.jpg",
	}, got)
}

func TestClient_TopVideo_NoResults(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"items":[]}`))
	}))
	defer ts.Close()

	got, err := newClient(t, ts.URL).TopVideo(context.Background(), "Nowhere", "Atlantis")
	require.NoError(t, err)
	assert.Equal(t, domain.NoVideo(), got)
	assert.Equal(t, "No video found", got.Title)
}

func TestClient_TopVideo_MissingThumbnail(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"items":[{"id":{"videoId":"xyz"},"snippet":{"title":"Short"}}]}`))
	}))
	defer ts.Close()

	got, err := newClient(t, ts.URL).TopVideo(context.Background(), "a", "b")
	require.NoError(t, err)
	assert.Equal(t, "Short", got.Title)
	assert.Equal(t, "https://www.youtube.com/watch?v=xyz", got.Link)
	assert.Empty(t, got.Thumbnail)
}

func TestClient_TopVideo_Error(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusForbidden)
		_, _ = w.Write([]byte(`{"error":{"code":403,"message":"quotaExceeded"}}`))
	}))
	defer ts.Close()

	got, err := newClient(t, ts.URL).TopVideo(context.Background(), "a", "b")
	assert.Error(t, err)
	assert.Equal(t, domain.NoVideo(), got)
}

func TestSearchQuery(t *testing.T) {
	assert.Equal(t, "Louvre travel guide Paris, France", youtubead.SearchQuery("Louvre", "Paris, France"))
}

func TestNew_RequiresKey(t *testing.T) {
	_, err := youtubead.New(context.Background(), youtubead.Options{})
	assert.Error(t, err)
}
