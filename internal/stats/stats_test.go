package stats

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClient_Downloads(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/packages/forge/overall", r.URL.Path, "expected the overall endpoint")
		assert.Equal(t, "Forge-CLI/0.1.2", r.Header.Get("User-Agent"), "expected the forge user agent")

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"data": [
				{"category": "with_mirrors", "date": "2026-07-01", "downloads": 100},
				{"category": "without_mirrors", "date": "2026-07-01", "downloads": 999},
				{"category": "with_mirrors", "date": "2026-07-02", "downloads": 250}
			],
			"package": "forge",
			"type": "overall_downloads"
		}`))
	}))
	defer srv.Close()

	c := NewClient("0.1.2", WithBaseURL(srv.URL))
	total, err := c.Downloads(context.Background(), "forge")

	require.NoError(t, err, "expected the request to succeed")
	assert.Equal(t, int64(350), total, "expected only with_mirrors rows to be summed")
}

func TestClient_Downloads_HTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := NewClient("0.1.2", WithBaseURL(srv.URL))
	_, err := c.Downloads(context.Background(), "forge")

	require.Error(t, err, "expected an error for a non-200 response")
	assert.Contains(t, err.Error(), "unexpected status", "expected the status in the error")
}

func TestClient_Downloads_BadJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("not json"))
	}))
	defer srv.Close()

	c := NewClient("0.1.2", WithBaseURL(srv.URL))
	_, err := c.Downloads(context.Background(), "forge")

	require.Error(t, err, "expected a decode error")
}

func TestClient_Downloads_EmptyPackage(t *testing.T) {
	c := NewClient("0.1.2")
	_, err := c.Downloads(context.Background(), "")

	require.Error(t, err, "expected an error for an empty package name")
}

func TestClient_Downloads_ContextCancelled(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	c := NewClient("0.1.2", WithBaseURL(srv.URL))
	_, err := c.Downloads(ctx, "forge")

	require.Error(t, err, "expected an error for a cancelled context")
}

func TestFormatCount(t *testing.T) {
	tests := []struct {
		name string
		in   int64
		want string
	}{
		{name: "zero", in: 0, want: "0"},
		{name: "small", in: 999, want: "999"},
		{name: "thousands", in: 1_000, want: "1.0k"},
		{name: "tens of thousands", in: 22_340, want: "22.3k"},
		{name: "millions", in: 1_500_000, want: "1.5M"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatCount(tt.in))
		})
	}
}
