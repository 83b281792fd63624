package gemini

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func completionBody(text string) string {
	resp := map[string]any{
		"candidates": []map[string]any{
			{"content": map[string]any{"parts": []map[string]any{{"text": text}}}},
		},
	}
	b, _ := json.Marshal(resp)
	return string(b)
}

func TestComplete_Success(t *testing.T) {
	var gotPath, gotKey string
	var gotBody generateRequest

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotKey = r.URL.Query().Get("key")
		body, _ := io.ReadAll(r.Body)
		require.NoError(t, json.Unmarshal(body, &gotBody))
		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, completionBody("hello"))
	}))
	defer ts.Close()

	c := NewClient("test-key", 5*time.Second).WithBaseURL(ts.URL)

	text, err := c.Complete(context.Background(), "say hello", 0.8)
	require.NoError(t, err)
	assert.Equal(t, "hello", text)

	assert.Equal(t, "/models/"+Model+":generateContent", gotPath)
	assert.Equal(t, "test-key", gotKey)
	require.Len(t, gotBody.Contents, 1)
	require.Len(t, gotBody.Contents[0].Parts, 1)
	assert.Equal(t, "say hello", gotBody.Contents[0].Parts[0].Text)
	assert.Equal(t, 0.8, gotBody.GenerationConfig.Temperature)
	assert.Equal(t, 40, gotBody.GenerationConfig.TopK)
	assert.Equal(t, 0.95, gotBody.GenerationConfig.TopP)
	assert.Equal(t, 8192, gotBody.GenerationConfig.MaxOutputTokens)
}

func TestComplete_NotConfigured(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("request should not reach the network without a key")
	}))
	defer ts.Close()

	c := NewClient("", 5*time.Second).WithBaseURL(ts.URL)
	assert.False(t, c.Configured())

	_, err := c.Complete(context.Background(), "anything", 0.5)
	assert.ErrorIs(t, err, ErrNotConfigured)
}

func TestComplete_UpstreamStatusError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		io.WriteString(w, `{"error":{"message":"quota exceeded"}}`)
	}))
	defer ts.Close()

	c := NewClient("test-key", 5*time.Second).WithBaseURL(ts.URL)

	_, err := c.Complete(context.Background(), "prompt", 0.5)
	var upstream *UpstreamError
	require.ErrorAs(t, err, &upstream)
	assert.Equal(t, http.StatusTooManyRequests, upstream.StatusCode)
	assert.Contains(t, upstream.Body, "quota exceeded")
}

func TestComplete_TransportError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	ts.Close() // port now refuses connections

	c := NewClient("test-key", time.Second).WithBaseURL(ts.URL)

	_, err := c.Complete(context.Background(), "prompt", 0.5)
	var upstream *UpstreamError
	require.ErrorAs(t, err, &upstream)
	assert.Equal(t, 0, upstream.StatusCode)
}

func TestComplete_MalformedResponse(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"not json", "<html>gateway error</html>"},
		{"no candidates", `{"candidates":[]}`},
		{"no parts", `{"candidates":[{"content":{"parts":[]}}]}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				io.WriteString(w, tt.body)
			}))
			defer ts.Close()

			c := NewClient("test-key", 5*time.Second).WithBaseURL(ts.URL)

			_, err := c.Complete(context.Background(), "prompt", 0.5)
			var malformed *MalformedResponseError
			assert.ErrorAs(t, err, &malformed)
		})
	}
}

func TestParseStructured(t *testing.T) {
	type payload struct {
		Name string `json:"name"`
	}

	tests := []struct {
		name string
		text string
		want string
	}{
		{"bare json", `{"name":"alpha"}`, "alpha"},
		{"json fence", "```json\n{\"name\":\"beta\"}\n```", "beta"},
		{"plain fence", "```\n{\"name\":\"gamma\"}\n```", "gamma"},
		{"surrounding whitespace", "  \n{\"name\":\"delta\"}\n  ", "delta"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var p payload
			require.NoError(t, ParseStructured(tt.text, &p))
			assert.Equal(t, tt.want, p.Name)
		})
	}
}

func TestParseStructured_InvalidJSON(t *testing.T) {
	var v map[string]any
	err := ParseStructured("not json at all", &v)

	var parseErr *ParseError
	require.ErrorAs(t, err, &parseErr)
	assert.Error(t, errors.Unwrap(parseErr))
}
