package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/osa911/folio/internal/api/constants"
	"github.com/osa911/folio/internal/api/dto/common"
	contactdto "github.com/osa911/folio/internal/api/dto/v1/contact"
	"github.com/osa911/folio/internal/api/middleware"
	"github.com/osa911/folio/internal/contact"
	"github.com/osa911/folio/internal/logging"
	"github.com/osa911/folio/internal/models"
	"github.com/osa911/folio/internal/repository"
	"github.com/osa911/folio/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
	logging.SetGlobalLogger(logging.NewWriterLogger(io.Discard, "error"))
}

// mockContactService lets each test override the calls it cares about
type mockContactService struct {
	submitFunc       func(ctx context.Context, sub contact.Submission, info *service.ContactMessageInfo) (*models.ContactMessage, error)
	listFunc         func(ctx context.Context, opts models.ContactListOptions) ([]*models.ContactMessage, error)
	updateStatusFunc func(ctx context.Context, id string, status models.ContactStatus) (*models.ContactMessage, error)
	pingErr          error
}

func (m *mockContactService) Submit(ctx context.Context, sub contact.Submission, info *service.ContactMessageInfo) (*models.ContactMessage, error) {
	if m.submitFunc != nil {
		return m.submitFunc(ctx, sub, info)
	}
	return &models.ContactMessage{ID: "1"}, nil
}

func (m *mockContactService) List(ctx context.Context, opts models.ContactListOptions) ([]*models.ContactMessage, error) {
	if m.listFunc != nil {
		return m.listFunc(ctx, opts)
	}
	return nil, nil
}

func (m *mockContactService) UpdateStatus(ctx context.Context, id string, status models.ContactStatus) (*models.ContactMessage, error) {
	if m.updateStatusFunc != nil {
		return m.updateStatusFunc(ctx, id, status)
	}
	return &models.ContactMessage{ID: id, Status: status}, nil
}

func (m *mockContactService) PurgeRead(context.Context, time.Time) (int64, error) { return 0, nil }

func (m *mockContactService) Ping(context.Context) error { return m.pingErr }

const validBody = `{"name":"Jane Doe","email":"jane@example.com","message":"Hello, I'd like to talk."}`

func contactRouter(h *ContactHandler) *gin.Engine {
	r := gin.New()
	r.Use(middleware.RequestID())
	r.POST("/api/test", middleware.NewValidationMiddleware(nil).ValidateContactRequest(), h.Submit)
	return r
}

func post(r http.Handler, path, body string, headers map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) common.APIResponse {
	t.Helper()
	var resp common.APIResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func TestContactHandler_Submit(t *testing.T) {
	repo := repository.NewMemoryContactRepository()
	svc := service.NewContactService(repo, logging.NewWriterLogger(io.Discard, "error"))
	r := contactRouter(NewContactHandler(svc, nil, 0.5))

	w := post(r, "/api/test", validBody, map[string]string{"X-Real-IP": "203.0.113.9", "User-Agent": "folio-test"})
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Success bool                       `json:"success"`
		Data    contactdto.ContactResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.True(t, resp.Data.Success)
	assert.Equal(t, SuccessMessage, resp.Data.Message)

	stored, err := repo.List(context.Background(), models.ContactListOptions{}.Normalize())
	require.NoError(t, err)
	require.Len(t, stored, 1)
	assert.Equal(t, "Jane Doe", stored[0].Name)
	assert.Equal(t, "203.0.113.9", stored[0].IPAddress)
	assert.Equal(t, "folio-test", stored[0].UserAgent)
}

func TestContactHandler_PassesRequestMetadata(t *testing.T) {
	var gotInfo *service.ContactMessageInfo
	svc := &mockContactService{
		submitFunc: func(_ context.Context, sub contact.Submission, info *service.ContactMessageInfo) (*models.ContactMessage, error) {
			gotInfo = info
			return &models.ContactMessage{ID: "1"}, nil
		},
	}
	r := contactRouter(NewContactHandler(svc, nil, 0.5))

	w := post(r, "/api/test", validBody, map[string]string{constants.HeaderRequestID: "req-1", "Referer": "https://example.com/contact"})
	require.Equal(t, http.StatusOK, w.Code)
	require.NotNil(t, gotInfo)
	assert.Equal(t, "req-1", gotInfo.RequestID)
	assert.Equal(t, "https://example.com/contact", gotInfo.Referrer)
}

func TestContactHandler_ServiceErrors(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   common.ErrorCode
	}{
		{"storage failure", errors.New("connection refused"), http.StatusInternalServerError, common.ErrCodeInternalServer},
		{"validation", fmt.Errorf("%w: name too short", service.ErrValidation), http.StatusBadRequest, common.ErrCodeValidation},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &mockContactService{
				submitFunc: func(context.Context, contact.Submission, *service.ContactMessageInfo) (*models.ContactMessage, error) {
					return nil, tt.err
				},
			}
			w := post(contactRouter(NewContactHandler(svc, nil, 0.5)), "/api/test", validBody, nil)

			assert.Equal(t, tt.wantStatus, w.Code)
			resp := decode(t, w)
			assert.False(t, resp.Success)
			assert.Equal(t, string(tt.wantCode), resp.Error.Code)
		})
	}
}

func TestContactHandler_InvalidInputNeverReachesService(t *testing.T) {
	called := false
	svc := &mockContactService{
		submitFunc: func(context.Context, contact.Submission, *service.ContactMessageInfo) (*models.ContactMessage, error) {
			called = true
			return nil, nil
		},
	}
	w := post(contactRouter(NewContactHandler(svc, nil, 0.5)), "/api/test", `{"name":"Jane","email":"not-an-email","message":"Hello there, friend"}`, nil)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.False(t, called)
}

func TestContactHandler_Recaptcha(t *testing.T) {
	verifier := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = r.ParseForm()
		if r.PostForm.Get("response") == "good" {
			_, _ = w.Write([]byte(`{"success":true,"score":0.9}`))
			return
		}
		_, _ = w.Write([]byte(`{"success":true,"score":0.1}`))
	}))
	defer verifier.Close()

	recaptcha := service.NewRecaptchaService("secret").WithVerifyURL(verifier.URL)
	r := contactRouter(NewContactHandler(&mockContactService{}, recaptcha, 0.5))

	body := func(token string) string {
		var buf bytes.Buffer
		_ = json.NewEncoder(&buf).Encode(contactdto.ContactRequest{
			Name:           "Jane Doe",
			Email:          "jane@example.com",
			Message:        "Hello, I'd like to talk.",
			RecaptchaToken: token,
		})
		return buf.String()
	}

	assert.Equal(t, http.StatusOK, post(r, "/api/test", body("good"), nil).Code)
	assert.Equal(t, http.StatusBadRequest, post(r, "/api/test", body("bad"), nil).Code)
	assert.Equal(t, http.StatusBadRequest, post(r, "/api/test", body(""), nil).Code)
}

func TestHealthHandler(t *testing.T) {
	tests := []struct {
		name       string
		pingErr    error
		wantStatus int
	}{
		{"healthy", nil, http.StatusOK},
		{"database down", errors.New("dial tcp: refused"), http.StatusServiceUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := gin.New()
			r.GET("/health", NewHealthHandler(&mockContactService{pingErr: tt.pingErr}).Check)

			w := httptest.NewRecorder()
			r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
			assert.Equal(t, tt.wantStatus, w.Code)
			if tt.pingErr == nil {
				assert.JSONEq(t, `{"success":true,"data":{"status":"ok"}}`, w.Body.String())
			}
		})
	}
}

func adminRouter(svc service.ContactService) *gin.Engine {
	m := middleware.NewValidationMiddleware(nil)
	h := NewAdminHandler(svc, nil)

	r := gin.New()
	r.GET("/admin/contacts", m.ValidateListContactsRequest(), h.ListContacts)
	r.PATCH("/admin/contacts/:id", m.ValidateUpdateStatusRequest(), h.UpdateContactStatus)
	return r
}

func TestAdminHandler_ListContacts(t *testing.T) {
	var gotOpts models.ContactListOptions
	now := time.Date(2026, 10, 1, 12, 0, 0, 0, time.UTC)
	svc := &mockContactService{
		listFunc: func(_ context.Context, opts models.ContactListOptions) ([]*models.ContactMessage, error) {
			gotOpts = opts
			return []*models.ContactMessage{
				{ID: "a", Name: "Jane", Status: models.ContactStatusUnread, CreatedAt: now, UpdatedAt: now},
			}, nil
		},
	}

	w := httptest.NewRecorder()
	adminRouter(svc).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/admin/contacts?status=unread&offset=5", nil))
	require.Equal(t, http.StatusOK, w.Code)

	assert.Equal(t, "unread", gotOpts.Status)
	assert.Equal(t, 20, gotOpts.Limit)
	assert.Equal(t, 5, gotOpts.Offset)

	var resp struct {
		Data contactdto.ListContactsResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Data.Contacts, 1)
	assert.Equal(t, "a", resp.Data.Contacts[0].ID)
	assert.Equal(t, "unread", resp.Data.Contacts[0].Status)
}

func TestAdminHandler_UpdateContactStatus(t *testing.T) {
	svc := &mockContactService{
		updateStatusFunc: func(_ context.Context, id string, status models.ContactStatus) (*models.ContactMessage, error) {
			if id == "missing" {
				return nil, fmt.Errorf("contact message %s: %w", id, service.ErrNotFound)
			}
			return &models.ContactMessage{ID: id, Status: status}, nil
		},
	}
	r := adminRouter(svc)

	patch := func(id, body string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPatch, "/admin/contacts/"+id, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w
	}

	w := patch("abc", `{"status":"read"}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"read"`)

	assert.Equal(t, http.StatusNotFound, patch("missing", `{"status":"read"}`).Code)
	assert.Equal(t, http.StatusBadRequest, patch("abc", `{"status":"archived"}`).Code)
}

func TestVersionHandler(t *testing.T) {
	r := gin.New()
	r.GET("/api/v1/version", NewVersionHandler().GetVersion)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/version?client_version=v0.0.1", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"client_version":"v0.0.1"`)
}
