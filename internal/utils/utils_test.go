package utils

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/osa911/folio/internal/api/dto/common"
	"github.com/osa911/folio/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newContext(req *http.Request) (*gin.Context, *httptest.ResponseRecorder) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = req
	return c, w
}

func TestGetRealIP(t *testing.T) {
	tests := []struct {
		name    string
		headers map[string]string
		want    string
	}{
		{"real ip header", map[string]string{"X-Real-IP": "203.0.113.7"}, "203.0.113.7"},
		{"forwarded for list", map[string]string{"X-Forwarded-For": "198.51.100.1, 10.0.0.1"}, "198.51.100.1"},
		{"real ip wins", map[string]string{"X-Real-IP": "203.0.113.7", "X-Forwarded-For": "198.51.100.1"}, "203.0.113.7"},
		{"remote addr", nil, "192.0.2.1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			for k, v := range tt.headers {
				req.Header.Set(k, v)
			}
			c, _ := newContext(req)
			assert.Equal(t, tt.want, GetRealIP(c))
		})
	}
}

func TestHandleAPIError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   common.ErrorCode
	}{
		{"not found", fmt.Errorf("message x: %w", service.ErrNotFound), http.StatusNotFound, common.ErrCodeNotFound},
		{"validation", fmt.Errorf("%w: bad", service.ErrValidation), http.StatusBadRequest, common.ErrCodeValidation},
		{"other", assert.AnError, http.StatusInternalServerError, common.ErrCodeInternalServer},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, w := newContext(httptest.NewRequest(http.MethodPost, "/api/test", nil))
			HandleAPIError(c, tt.err, http.StatusInternalServerError, common.ErrCodeInternalServer, "Failed")

			assert.Equal(t, tt.wantStatus, w.Code)
			assert.True(t, c.IsAborted())

			var resp common.APIResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			assert.False(t, resp.Success)
			require.NotNil(t, resp.Error)
			assert.Equal(t, string(tt.wantCode), resp.Error.Code)
			assert.Equal(t, tt.err.Error(), resp.Error.Details)
		})
	}
}

func TestHandleSuccess(t *testing.T) {
	c, w := newContext(httptest.NewRequest(http.MethodGet, "/", nil))
	HandleSuccess(c, gin.H{"ok": true})

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"success":true,"data":{"ok":true}}`, w.Body.String())
}
