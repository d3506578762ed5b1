// ABOUTME: Tests for API error decoding and classification
// ABOUTME: Covers auth vs credential vs validation failure taxonomy

package hexapi

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// errorServer replies to everything with the given status and body.
func errorServer(t *testing.T, status int, body string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(status)
		w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestErrorClassification(t *testing.T) {
	tests := []struct {
		name           string
		status         int
		body           string
		wantAuth       bool
		wantCredential bool
		wantMessage    string
	}{
		{
			name:           "401 is both auth and credential failure",
			status:         http.StatusUnauthorized,
			body:           `{"success": false, "message": "驗證失敗"}`,
			wantAuth:       true,
			wantCredential: true,
			wantMessage:    "驗證失敗",
		},
		{
			name:        "403 forces logout but is not a credential failure",
			status:      http.StatusForbidden,
			body:        `{"success": false}`,
			wantAuth:    true,
			wantMessage: "",
		},
		{
			name:           "400 with auth-prefixed code means bad credentials",
			status:         http.StatusBadRequest,
			body:           `{"success": false, "error": {"code": "auth/wrong-password", "message": "密碼錯誤"}}`,
			wantCredential: true,
			wantMessage:    "密碼錯誤",
		},
		{
			name:        "400 without auth code is a validation failure",
			status:      http.StatusBadRequest,
			body:        `{"success": false, "message": ["欄位不得為空", "格式錯誤"]}`,
			wantMessage: "欄位不得為空、格式錯誤",
		},
		{
			name:        "500 is a plain server failure",
			status:      http.StatusInternalServerError,
			body:        `{"message": "internal"}`,
			wantMessage: "internal",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := errorServer(t, tt.status, tt.body)

			c := New(srv.URL, "shop", nil)
			err := c.CheckSession(context.Background())
			require.Error(t, err)

			apiErr, ok := AsAPIError(err)
			require.True(t, ok)
			assert.Equal(t, tt.status, apiErr.StatusCode)
			assert.Equal(t, tt.wantAuth, IsAuthFailure(err))
			assert.Equal(t, tt.wantCredential, IsCredentialFailure(err))
			assert.Equal(t, tt.wantMessage, apiErr.JoinedMessage())
		})
	}
}

func TestDecodeAPIError_UnparseableBody(t *testing.T) {
	srv := errorServer(t, http.StatusBadGateway, "<html>bad gateway</html>")

	c := New(srv.URL, "shop", nil)
	err := c.CheckSession(context.Background())
	require.Error(t, err)

	apiErr, ok := AsAPIError(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusBadGateway, apiErr.StatusCode)
	assert.Empty(t, apiErr.JoinedMessage())
	assert.Contains(t, apiErr.Error(), "502")
}

func TestClassifiers_IgnoreOtherErrors(t *testing.T) {
	plain := errors.New("dial tcp: connection refused")
	assert.False(t, IsAuthFailure(plain))
	assert.False(t, IsCredentialFailure(plain))

	_, ok := AsAPIError(plain)
	assert.False(t, ok)
}
