package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func doLogin(t *testing.T, s *Server, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader(body))
	w := httptest.NewRecorder()
	s.handleLogin(w, req)
	return w
}

func TestLogin_Success(t *testing.T) {
	s := newTestServer(t)

	w := doLogin(t, s, `{"email": "admin@example.com", "password": "correct-horse"}`)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp LoginResponse
	err := json.Unmarshal(w.Body.Bytes(), &resp)
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Token)

	// The issued token must validate and carry the admin email
	claims, err := s.jwtService.ValidateToken(resp.Token)
	require.NoError(t, err)
	assert.Equal(t, "admin@example.com", claims.Email)
	assert.Equal(t, "admin@example.com", claims.Subject)
}

func TestLogin_WrongPassword(t *testing.T) {
	s := newTestServer(t)

	w := doLogin(t, s, `{"email": "admin@example.com", "password": "wrong"}`)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "invalid email or password")
}

func TestLogin_WrongEmail(t *testing.T) {
	s := newTestServer(t)

	w := doLogin(t, s, `{"email": "intruder@example.com", "password": "correct-horse"}`)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "invalid email or password")
}

func TestLogin_InvalidEmailFormat(t *testing.T) {
	s := newTestServer(t)

	w := doLogin(t, s, `{"email": "not-an-email", "password": "whatever"}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "validation error")
}

func TestLogin_MissingPassword(t *testing.T) {
	s := newTestServer(t)

	w := doLogin(t, s, `{"email": "admin@example.com"}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "validation error")
}

func TestLogin_InvalidBody(t *testing.T) {
	s := newTestServer(t)

	w := doLogin(t, s, `{broken`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid request body")
}
