package server

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/osa911/folio/internal/client"
	"github.com/osa911/folio/internal/config"
	"github.com/osa911/folio/internal/contact"
	"github.com/osa911/folio/internal/logging"
	"github.com/osa911/folio/internal/models"
	"github.com/osa911/folio/internal/repository"
	"github.com/osa911/folio/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() *config.Config {
	return &config.Config{
		Environment:       "test",
		Port:              "0",
		ContactRateRPS:    1,
		ContactRateBurst:  5,
		RecaptchaMinScore: 0.5,
		AdminToken:        "admin-token",
		ServiceName:       "folio-api-test",
	}
}

func newTestServer(t *testing.T, cfg *config.Config) (*httptest.Server, *repository.MemoryContactRepository) {
	t.Helper()

	logger := logging.NewWriterLogger(io.Discard, "error")
	logging.SetGlobalLogger(logger)

	repo := repository.NewMemoryContactRepository()
	svc := service.NewContactService(repo, logger, service.NewLogDelivery(logger))

	srv, err := NewServer(cfg, Dependencies{Contact: svc})
	require.NoError(t, err)
	require.NoError(t, srv.Init())

	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)
	return ts, repo
}

var jane = contact.Submission{
	Name:    "Jane Doe",
	Email:   "jane@example.com",
	Message: "Hello, I'd like to talk.",
}

func TestServer_ClientSubmitsToTestEndpoint(t *testing.T) {
	ts, repo := newTestServer(t, testConfig())

	c := client.New(ts.URL)
	require.NoError(t, c.Submit(context.Background(), jane))

	stored, err := repo.List(context.Background(), models.ContactListOptions{})
	require.NoError(t, err)
	require.Len(t, stored, 1)
	assert.Equal(t, "jane@example.com", stored[0].Email)
	assert.Equal(t, models.ContactStatusUnread, stored[0].Status)
}

func TestServer_ClientSubmitsToVersionedEndpoint(t *testing.T) {
	ts, _ := newTestServer(t, testConfig())

	c := client.New(ts.URL, client.WithPath("/api/v1/contact/submit"))
	require.NoError(t, c.Submit(context.Background(), jane))
}

func TestServer_InvalidSubmissionIsSubmissionError(t *testing.T) {
	ts, repo := newTestServer(t, testConfig())

	err := client.New(ts.URL).Submit(context.Background(), contact.Submission{Name: "J", Email: "x", Message: "y"})
	require.Error(t, err)

	var subErr *contact.SubmissionError
	require.True(t, errors.As(err, &subErr))
	assert.Equal(t, http.StatusBadRequest, subErr.StatusCode)

	stored, _ := repo.List(context.Background(), models.ContactListOptions{})
	assert.Empty(t, stored)
}

func TestServer_ContactRateLimit(t *testing.T) {
	cfg := testConfig()
	cfg.ContactRateRPS = 0.001
	cfg.ContactRateBurst = 2
	ts, _ := newTestServer(t, cfg)

	c := client.New(ts.URL)
	require.NoError(t, c.Submit(context.Background(), jane))
	require.NoError(t, c.Submit(context.Background(), jane))

	err := c.Submit(context.Background(), jane)
	var subErr *contact.SubmissionError
	require.True(t, errors.As(err, &subErr))
	assert.Equal(t, http.StatusTooManyRequests, subErr.StatusCode)
}

func TestServer_TrailingSlash(t *testing.T) {
	ts, _ := newTestServer(t, testConfig())

	resp, err := http.Get(ts.URL + "/health/")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestServer_AdminFlow(t *testing.T) {
	ts, _ := newTestServer(t, testConfig())
	require.NoError(t, client.New(ts.URL).Submit(context.Background(), jane))

	call := func(method, path, token, body string) *http.Response {
		req, err := http.NewRequest(method, ts.URL+path, strings.NewReader(body))
		require.NoError(t, err)
		if body != "" {
			req.Header.Set("Content-Type", "application/json")
		}
		if token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
		resp, err := http.DefaultClient.Do(req)
		require.NoError(t, err)
		t.Cleanup(func() { resp.Body.Close() })
		return resp
	}

	assert.Equal(t, http.StatusUnauthorized, call(http.MethodGet, "/api/v1/admin/contacts", "", "").StatusCode)

	resp := call(http.MethodGet, "/api/v1/admin/contacts?status=unread", "admin-token", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var list struct {
		Data struct {
			Contacts []struct {
				ID     string `json:"id"`
				Status string `json:"status"`
			} `json:"contacts"`
		} `json:"data"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&list))
	require.Len(t, list.Data.Contacts, 1)
	id := list.Data.Contacts[0].ID

	resp = call(http.MethodPatch, "/api/v1/admin/contacts/"+id, "admin-token", `{"status":"read"}`)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp = call(http.MethodPatch, "/api/v1/admin/contacts/does-not-exist", "admin-token", `{"status":"read"}`)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestServer_StartStopsOnCancel(t *testing.T) {
	logging.SetGlobalLogger(logging.NewWriterLogger(io.Discard, "error"))
	svc := service.NewContactService(repository.NewMemoryContactRepository(), logging.GetGlobalLogger())

	cfg := testConfig()
	cfg.Port = "0"
	srv, err := NewServer(cfg, Dependencies{Contact: svc})
	require.NoError(t, err)
	require.NoError(t, srv.Init())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- srv.Start(ctx) }()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop")
	}
}

func TestNewServer_RequiresDependencies(t *testing.T) {
	_, err := NewServer(nil, Dependencies{})
	assert.Error(t, err)

	_, err = NewServer(testConfig(), Dependencies{})
	assert.Error(t, err)
}
