package fetch

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlain_Success(t *testing.T) {
	const page = `<html lang="en"><head><title>ok</title></head><body><h1>hi</h1></body></html>`
	var gotUserAgent string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUserAgent = r.Header.Get("User-Agent")
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte(page))
	}))
	defer server.Close()

	snap, err := Plain(context.Background(), server.URL, nil)
	require.NoError(t, err)
	require.NotNil(t, snap)

	assert.Equal(t, server.URL, snap.URL)
	assert.Equal(t, 200, snap.StatusCode)
	assert.Equal(t, page, snap.HTML)
	assert.Empty(t, snap.Screenshot)
	assert.False(t, snap.FetchedAt.IsZero())
	assert.Equal(t, DefaultUserAgent, gotUserAgent)
}

func TestPlain_NotFoundReturnsSnapshotAndError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte("<html><body>missing</body></html>"))
	}))
	defer server.Close()

	snap, err := Plain(context.Background(), server.URL, nil)
	require.Error(t, err)

	var fetchErr *Error
	require.ErrorAs(t, err, &fetchErr)
	assert.Contains(t, fetchErr.Message, "404")

	// The body is still captured so the caller can show what came back.
	require.NotNil(t, snap)
	assert.Equal(t, 404, snap.StatusCode)
	assert.Contains(t, snap.HTML, "missing")
}

func TestPlain_InvalidURL(t *testing.T) {
	snap, err := Plain(context.Background(), "not-a-url", nil)
	assert.Nil(t, snap)

	var fetchErr *Error
	require.ErrorAs(t, err, &fetchErr)
	assert.Equal(t, "invalid URL", fetchErr.Message)
}

func TestPlain_ConnectionRefused(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	url := server.URL
	server.Close()

	snap, err := Plain(context.Background(), url, nil)
	assert.Nil(t, snap)

	var fetchErr *Error
	require.ErrorAs(t, err, &fetchErr)
	assert.Equal(t, "HTTP request failed", fetchErr.Message)
}

func TestPlain_FollowsRedirects(t *testing.T) {
	target := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/start" {
			http.Redirect(w, r, "/final", http.StatusFound)
			return
		}
		_, _ = w.Write([]byte("<html><body>done</body></html>"))
	}))
	defer target.Close()

	snap, err := Plain(context.Background(), target.URL+"/start", nil)
	require.NoError(t, err)
	assert.Equal(t, target.URL+"/start", snap.URL)
	assert.Equal(t, target.URL+"/final", snap.FinalURL)
}

func TestPlain_CustomOptions(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "AuditBot/2.0", r.Header.Get("User-Agent"))
		_, _ = w.Write([]byte("<html></html>"))
	}))
	defer server.Close()

	opts := &Options{Timeout: 5 * time.Second, UserAgent: "AuditBot/2.0"}
	_, err := Plain(context.Background(), server.URL, opts)
	require.NoError(t, err)
}

func TestClient_PlainDispatch(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("<html></html>"))
	}))
	defer server.Close()

	client := NewClient(false, nil)
	snap, err := client.Fetch(context.Background(), server.URL)
	require.NoError(t, err)
	assert.Equal(t, 200, snap.StatusCode)
}

func TestDefaultOptions(t *testing.T) {
	opts := DefaultOptions()
	assert.Equal(t, DefaultTimeout, opts.Timeout)
	assert.Equal(t, DefaultSettleDelay, opts.SettleDelay)
	assert.Equal(t, DefaultUserAgent, opts.UserAgent)
}

func TestError_Format(t *testing.T) {
	err := &Error{URL: "https://example.com", Message: "navigation timeout"}
	assert.Equal(t, "fetch error for https://example.com: navigation timeout", err.Error())

	wrapped := &Error{URL: "https://example.com", Message: "HTTP request failed", Cause: assert.AnError}
	assert.ErrorIs(t, wrapped, assert.AnError)
}
