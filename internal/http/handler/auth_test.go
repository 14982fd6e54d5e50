package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"docvault/internal/domain/user"
	"docvault/internal/service"
)

type stubAuthOperations struct {
	registeredEmail string
	loginEmail      string

	user  *user.User
	token string
}

func (s *stubAuthOperations) Register(ctx context.Context, input service.RegisterInput) (*user.User, error) {
	s.registeredEmail = input.Email
	return s.user, nil
}

func (s *stubAuthOperations) Login(ctx context.Context, email, password string) (string, *user.User, error) {
	s.loginEmail = email
	return s.token, s.user, nil
}

func postJSON(path, body string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestSignupNormalizesEmail(t *testing.T) {
	stub := &stubAuthOperations{
		user:  &user.User{ID: uuid.New(), Email: "alice@example.com"},
		token: "signed.jwt.token",
	}
	h := NewAuthHandler(stub)

	c, rec := postJSON("/auth/signup", `{"email":"  Alice@Example.COM ","name":"Alice","password":"a-long-enough-password"}`)
	require.NoError(t, h.Signup(c))

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "alice@example.com", stub.registeredEmail)

	var resp SignupResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, stub.user.ID.String(), resp.UserID)
	assert.Equal(t, "signed.jwt.token", resp.Token)
}

func TestSignupRejectsUnknownFields(t *testing.T) {
	h := NewAuthHandler(&stubAuthOperations{})

	c, _ := postJSON("/auth/signup", `{"email":"a@b.co","password":"a-long-enough-password","role":"admin"}`)
	err := h.Signup(c)

	var httpErr *echo.HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusBadRequest, httpErr.Code)
}

func TestSignupRequiresJSONContentType(t *testing.T) {
	h := NewAuthHandler(&stubAuthOperations{})

	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/auth/signup", strings.NewReader("email=a@b.co"))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	err := h.Signup(c)

	var httpErr *echo.HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusUnsupportedMediaType, httpErr.Code)
}

func TestLoginReturnsToken(t *testing.T) {
	stub := &stubAuthOperations{
		user:  &user.User{ID: uuid.New(), Email: "alice@example.com"},
		token: "signed.jwt.token",
	}
	h := NewAuthHandler(stub)

	c, rec := postJSON("/auth/login", `{"email":"Alice@Example.com","password":"a-long-enough-password"}`)
	require.NoError(t, h.Login(c))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "alice@example.com", stub.loginEmail)

	var resp LoginResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "signed.jwt.token", resp.Token)
}
