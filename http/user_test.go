package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/kestrelworks/gatehouse"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCreateUserRequest(t *testing.T, payload string) *http.Request {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/users", strings.NewReader(payload))
	req.Header.Set(echo.HeaderContentType, "application/json")
	req.Header.Set(APIKeyHeader, testAPIKey)
	return req
}

func TestCreateUser(t *testing.T) {
	ts := newTestServer(t, nil)
	ts.withUser(true)

	ts.users.CreateUserFn = func(ctx context.Context, user *gatehouse.User) (string, error) {
		user.ID = uuid.New()
		return "generated-key", nil
	}

	rec := ts.do(newCreateUserRequest(t, `{"username":"newbie","trust_level":0}`))
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var resp CreateUserResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "newbie", resp.User.Username)
	assert.Equal(t, "generated-key", resp.APIKey)
}

func TestCreateUserRequiresStaff(t *testing.T) {
	ts := newTestServer(t, nil)
	ts.withUser(false)

	rec := ts.do(newCreateUserRequest(t, `{"username":"newbie"}`))
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestCreateUserValidatesPayload(t *testing.T) {
	ts := newTestServer(t, nil)
	ts.withUser(true)

	rec := ts.do(newCreateUserRequest(t, `{"username":"ab"}`))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "Username")
}

func TestCreateUserConflict(t *testing.T) {
	ts := newTestServer(t, nil)
	ts.withUser(true)

	ts.users.CreateUserFn = func(ctx context.Context, user *gatehouse.User) (string, error) {
		return "", gatehouse.Conflict("Username already exists")
	}

	rec := ts.do(newCreateUserRequest(t, `{"username":"taken"}`))
	assert.Equal(t, http.StatusConflict, rec.Code)
}
