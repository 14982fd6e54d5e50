package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"docvault/internal/domain/file"
	"docvault/internal/domain/permission"
	"docvault/internal/service"
)

// stubShareOperations records the last ResolveLink call and plays back a
// canned response.
type stubShareOperations struct {
	ShareOperations

	resolveToken    string
	resolvePassword string
	resolved        *service.ResolvedShare
	resolveErr      error
}

func (s *stubShareOperations) ResolveLink(ctx context.Context, token, password string) (*service.ResolvedShare, error) {
	s.resolveToken = token
	s.resolvePassword = password
	if s.resolveErr != nil {
		return nil, s.resolveErr
	}
	return s.resolved, nil
}

const validToken = "aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa"

func resolveRequest(token string, headers map[string]string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/shares/"+token, nil)
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetPath("/shares/:token")
	c.SetParamNames(paramToken)
	c.SetParamValues(token)
	return c, rec
}

func TestResolveShareLink(t *testing.T) {
	stub := &stubShareOperations{
		resolved: &service.ResolvedShare{
			File: &service.SharedFileInfo{
				Name: "doc.pdf",
				Type: file.TypeDocument,
			},
			Content:     []byte("payload"),
			Permissions: permission.Set{permission.PermissionView, permission.PermissionDownload},
		},
	}
	h := NewShareHandler(stub)

	c, rec := resolveRequest(validToken, nil)
	require.NoError(t, h.ResolveShareLink(c))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, validToken, stub.resolveToken)
	assert.Contains(t, rec.Body.String(), "doc.pdf")
	// JSON []byte content rides as base64.
	assert.Contains(t, rec.Body.String(), `"content"`)
	// The anonymous payload carries no storage or ownership details.
	assert.NotContains(t, rec.Body.String(), "storage_key")
	assert.NotContains(t, rec.Body.String(), "uploaded_by")
	assert.NotContains(t, rec.Body.String(), "project_id")
}

func TestResolveShareLinkRejectsMalformedTokens(t *testing.T) {
	tests := []struct {
		name  string
		token string
	}{
		{"Too short", "abc123"},
		{"Too long", validToken + "aa"},
		{"Uppercase hex", strings.ToUpper(validToken)},
		{"Non-hex characters", strings.Repeat("zz", 32)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stub := &stubShareOperations{}
			h := NewShareHandler(stub)

			c, rec := resolveRequest(tt.token, nil)
			require.NoError(t, h.ResolveShareLink(c))

			assert.Equal(t, http.StatusBadRequest, rec.Code)
			// Malformed tokens never reach the service.
			assert.Empty(t, stub.resolveToken)
		})
	}
}

func TestResolveShareLinkPasswordSources(t *testing.T) {
	t.Run("Header", func(t *testing.T) {
		stub := &stubShareOperations{resolved: &service.ResolvedShare{File: &service.SharedFileInfo{}}}
		h := NewShareHandler(stub)

		c, _ := resolveRequest(validToken, map[string]string{headerSharePassword: "hunter2-hunter2"})
		require.NoError(t, h.ResolveShareLink(c))

		assert.Equal(t, "hunter2-hunter2", stub.resolvePassword)
	})

	t.Run("Query fallback", func(t *testing.T) {
		stub := &stubShareOperations{resolved: &service.ResolvedShare{File: &service.SharedFileInfo{}}}
		h := NewShareHandler(stub)

		e := echo.New()
		req := httptest.NewRequest(http.MethodGet, "/shares/"+validToken+"?password=from-query", nil)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)
		c.SetParamNames(paramToken)
		c.SetParamValues(validToken)

		require.NoError(t, h.ResolveShareLink(c))
		assert.Equal(t, "from-query", stub.resolvePassword)
	})
}

func TestResolveShareLinkPropagatesServiceError(t *testing.T) {
	stub := &stubShareOperations{resolveErr: context.DeadlineExceeded}
	h := NewShareHandler(stub)

	c, _ := resolveRequest(validToken, nil)
	err := h.ResolveShareLink(c)

	// Service errors flow to the central error handler untouched.
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestGenerateLinkHandlerBindsStrictly(t *testing.T) {
	stub := &stubShareOperations{}
	h := NewShareHandler(stub)

	e := echo.New()
	body := `{"permissions":["VIEW"],"unknown_field":true}`
	req := httptest.NewRequest(http.MethodPost, "/api/files/"+uuid.NewString()+"/links", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames(paramID)
	c.SetParamValues(uuid.NewString())
	c.Set("user_id", uuid.New())

	err := h.GenerateLink(c)

	var httpErr *echo.HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusBadRequest, httpErr.Code)
}
