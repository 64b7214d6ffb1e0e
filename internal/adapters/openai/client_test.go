package openaiad_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	openaiad "travel_guide/internal/adapters/openai"
	"travel_guide/internal/domain"
)

type chatRequest struct {
	Model    string `json:"model"`
	Messages []struct {
		Role    string `json:"role"`
		Content string `json:"content"`
	} `json:"messages"`
}

func completionBody(content string) string {
	b, _ := json.Marshal(map[string]any{
		"id":      "chatcmpl-test",
		"object":  "chat.completion",
		"created": 1700000000,
		"model":   "gpt-4o",
		"choices": []map[string]any{{
			"index":         0,
			"finish_reason": "stop",
			"message":       map[string]any{"role": "assistant", "content": content},
		}},
	})
	return string(b)
}

func TestClient_Complete(t *testing.T) {
	var got chatRequest
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.True(t, strings.HasSuffix(r.URL.Path, "/chat/completions"), "path %s", r.URL.Path)
		assert.Equal(t, "Bearer sk-test", r.Header.Get("Authorization"))
		body, _ := io.ReadAll(r.Body)
		require.NoError(t, json.Unmarshal(body, &got))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(completionBody("\n  1. Eiffel Tower: Iconic iron tower.  \n")))
	}))
	defer ts.Close()

	cl, err := openaiad.New(openaiad.Options{APIKey: "sk-test", BaseURL: ts.URL + "/v1/"})
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	text, err := cl.Complete(ctx, "be a travel assistant", "list places in Paris")
	require.NoError(t, err)
	assert.Equal(t, "1. Eiffel Tower: Iconic iron tower.", text)

	assert.Equal(t, openaiad.DefaultModel, got.Model)
	require.Len(t, got.Messages, 2)
	assert.Equal(t, "system", got.Messages[0].Role)
	assert.Equal(t, "be a travel assistant", got.Messages[0].Content)
	assert.Equal(t, "user", got.Messages[1].Role)
	assert.Equal(t, "list places in Paris", got.Messages[1].Content)
}

func TestClient_Complete_ErrorIsNotRetried(t *testing.T) {
	var hits int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = w.Write([]byte(`{"error":{"message":"quota exceeded","type":"insufficient_quota"}}`))
	}))
	defer ts.Close()

	cl, err := openaiad.New(openaiad.Options{APIKey: "sk-test", BaseURL: ts.URL + "/v1/"})
	require.NoError(t, err)

	_, err = cl.Complete(context.Background(), "s", "p")
	require.Error(t, err)
	assert.EqualValues(t, 1, atomic.LoadInt32(&hits))
}

func TestClient_Complete_NoChoices(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"x","object":"chat.completion","created":1,"model":"gpt-4o","choices":[]}`))
	}))
	defer ts.Close()

	cl, err := openaiad.New(openaiad.Options{APIKey: "sk-test", BaseURL: ts.URL + "/v1/", Model: "gpt-4o-mini"})
	require.NoError(t, err)

	_, err = cl.Complete(context.Background(), "s", "p")
	assert.True(t, errors.Is(err, domain.ErrNotFound), "got %v", err)
}

func TestNew_RequiresKey(t *testing.T) {
	_, err := openaiad.New(openaiad.Options{})
	assert.Error(t, err)
}
