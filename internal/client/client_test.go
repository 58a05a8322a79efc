package client

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/osa911/folio/internal/contact"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var alice = contact.Submission{Name: "Alice", Email: "alice@example.com", Message: "Hello, I'd like to chat."}

func TestClient_Submit_Success(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)

		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/test", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var got map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		assert.Equal(t, map[string]string{
			"name":    "Alice",
			"email":   "alice@example.com",
			"message": "Hello, I'd like to chat.",
		}, got)

		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{"success":true}`)
	}))
	defer srv.Close()

	err := New(srv.URL).Submit(context.Background(), alice)
	require.NoError(t, err)
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
}

func TestClient_Submit_Failures(t *testing.T) {
	tests := []struct {
		name       string
		status     int
		body       string
		wantStatus int
		wantReason string
	}{
		{"server error", http.StatusInternalServerError, `{"success":true}`, 500, "network response was not ok"},
		{"validation rejected", http.StatusBadRequest, `{"success":false,"error":{"code":"VALIDATION_ERROR","message":"Validation failed"}}`, 400, "network response was not ok"},
		{"success false", http.StatusOK, `{"success":false}`, 200, "api returned an error"},
		{"success missing", http.StatusOK, `{"ok":true}`, 200, "api returned an error"},
		{"success not a bool", http.StatusOK, `{"success":"true"}`, 200, "api returned an error"},
		{"not json", http.StatusOK, `<html>hi</html>`, 200, "api returned an error"},
		{"empty body", http.StatusOK, ``, 200, "api returned an error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var calls int32
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				atomic.AddInt32(&calls, 1)
				w.WriteHeader(tt.status)
				_, _ = io.WriteString(w, tt.body)
			}))
			defer srv.Close()

			err := New(srv.URL).Submit(context.Background(), alice)
			require.Error(t, err)
			assert.True(t, errors.Is(err, contact.ErrSubmission))

			var subErr *contact.SubmissionError
			require.True(t, errors.As(err, &subErr))
			assert.Equal(t, tt.wantStatus, subErr.StatusCode)
			assert.Equal(t, tt.wantReason, subErr.Reason)
			assert.Equal(t, int32(1), atomic.LoadInt32(&calls), "no retry expected")
		})
	}
}

func TestClient_Submit_ServerErrorMessage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = io.WriteString(w, `{"success":false,"error":{"code":"TOO_MANY_REQUESTS","message":"Rate limit exceeded"}}`)
	}))
	defer srv.Close()

	err := New(srv.URL).Submit(context.Background(), alice)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "TOO_MANY_REQUESTS: Rate limit exceeded")
}

func TestClient_Submit_TransportError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	err := New(url).Submit(context.Background(), alice)

	var subErr *contact.SubmissionError
	require.True(t, errors.As(err, &subErr))
	assert.Equal(t, 0, subErr.StatusCode)
	assert.Equal(t, "request failed", subErr.Reason)
}

func TestClient_Options(t *testing.T) {
	var gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		_, _ = io.WriteString(w, `{"success":true,"data":{"message":"ok","success":true}}`)
	}))
	defer srv.Close()

	c := New(srv.URL+"/", WithPath("api/v1/contact/submit"), WithTimeout(5*time.Second))
	assert.Equal(t, srv.URL+"/api/v1/contact/submit", c.URL())
	assert.Equal(t, 5*time.Second, c.httpClient.Timeout)

	require.NoError(t, c.Submit(context.Background(), alice))
	assert.Equal(t, "/api/v1/contact/submit", gotPath)
}

func TestClient_DefaultHasNoTimeout(t *testing.T) {
	c := New("http://localhost:8080")
	assert.Zero(t, c.httpClient.Timeout)
	assert.Equal(t, "http://localhost:8080/api/test", c.URL())
}
