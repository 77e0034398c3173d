package server

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/duetcal/duetcal-api/internal/config"
	"github.com/duetcal/duetcal-api/internal/logger"
	"github.com/duetcal/duetcal-api/internal/storage/memory"
)

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Error   string          `json:"error"`
	Data    json.RawMessage `json:"data"`
}

type testAPI struct {
	t      *testing.T
	router *gin.Engine
}

func newTestAPI(t *testing.T) *testAPI {
	t.Helper()

	gin.SetMode(gin.TestMode)
	logger.Initialize("error")

	cfg := &config.Config{}
	cfg.Server.Port = "0"
	cfg.Server.GinMode = "release"
	cfg.JWT.Secret = "test-secret"
	cfg.JWT.TTL = time.Hour
	cfg.CORS.AllowOrigins = "*"
	cfg.CORS.AllowMethods = "GET,POST,PATCH,DELETE"
	cfg.CORS.AllowHeaders = "Authorization,Content-Type"

	srv := New(cfg, memory.NewContainer(), nil)
	return &testAPI{t: t, router: srv.Router()}
}

func (a *testAPI) do(method, path, token string, body any) (*httptest.ResponseRecorder, envelope) {
	a.t.Helper()

	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(a.t, err)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)

	var env envelope
	if len(w.Body.Bytes()) > 0 {
		_ = json.Unmarshal(w.Body.Bytes(), &env)
	}
	return w, env
}

// register creates an account and returns its token and user ID.
func (a *testAPI) register(username string) (string, int) {
	a.t.Helper()

	w, env := a.do(http.MethodPost, "/api/auth/register", "", gin.H{
		"username":  username,
		"password":  "correct-horse-battery",
		"email":     username + "@example.com",
		"full_name": "Test " + username,
	})
	require.Equal(a.t, http.StatusCreated, w.Code, "registration should succeed: %s", w.Body.String())

	var data struct {
		Token string `json:"token"`
		User  struct {
			ID int `json:"id"`
		} `json:"user"`
	}
	require.NoError(a.t, json.Unmarshal(env.Data, &data))
	return data.Token, data.User.ID
}

func TestPing(t *testing.T) {
	api := newTestAPI(t)

	w, _ := api.do(http.MethodGet, "/ping", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestAuthRequired(t *testing.T) {
	api := newTestAPI(t)

	w, _ := api.do(http.MethodGet, "/api/events", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w, _ = api.do(http.MethodGet, "/api/events", "not-a-token", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestLogin(t *testing.T) {
	api := newTestAPI(t)
	api.register("alice")

	w, _ := api.do(http.MethodPost, "/api/auth/login", "", gin.H{
		"username": "alice",
		"password": "correct-horse-battery",
	})
	assert.Equal(t, http.StatusOK, w.Code)

	w, _ = api.do(http.MethodPost, "/api/auth/login", "", gin.H{
		"username": "alice",
		"password": "wrong",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestEventSharingFlow(t *testing.T) {
	api := newTestAPI(t)
	aliceToken, _ := api.register("alice")
	bobToken, _ := api.register("bob")

	// Alice creates a partner-level event.
	w, env := api.do(http.MethodPost, "/api/events", aliceToken, gin.H{
		"title":      "Dinner",
		"date":       "2024-03-01",
		"start_time": "19:00",
		"period":     "night",
		"privacy":    "partner",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var created struct {
		ID int `json:"id"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &created))

	// Bob cannot see it yet.
	w, _ = api.do(http.MethodGet, fmt.Sprintf("/api/events/%d", created.ID), bobToken, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	// Alice invites Bob.
	w, env = api.do(http.MethodPost, "/api/partners", aliceToken, gin.H{
		"partner_email": "bob@example.com",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var link struct {
		ID int `json:"id"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &link))

	// Bob sees the pending request and accepts it.
	w, env = api.do(http.MethodGet, "/api/partners/requests", bobToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var pending []struct {
		ID int `json:"id"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &pending))
	require.Len(t, pending, 1)

	w, _ = api.do(http.MethodPost, fmt.Sprintf("/api/partners/%d/respond", link.ID), bobToken, gin.H{
		"status": "accepted",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	// Now the event is in Bob's shared feed and directly accessible.
	w, env = api.do(http.MethodGet, "/api/events/shared", bobToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var shared []struct {
		Title string `json:"title"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &shared))
	require.Len(t, shared, 1)
	assert.Equal(t, "Dinner", shared[0].Title)

	w, _ = api.do(http.MethodGet, fmt.Sprintf("/api/events/%d", created.ID), bobToken, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	// The direction is one-way: Alice gained nothing from Bob.
	w, env = api.do(http.MethodGet, "/api/events/shared", aliceToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var aliceShared []any
	require.NoError(t, json.Unmarshal(env.Data, &aliceShared))
	assert.Empty(t, aliceShared)

	// Bob may comment and react now, but not edit the event record.
	w, _ = api.do(http.MethodPost, fmt.Sprintf("/api/events/%d/comments", created.ID), bobToken, gin.H{
		"content": "looking forward to it",
	})
	assert.Equal(t, http.StatusCreated, w.Code)

	w, _ = api.do(http.MethodPost, fmt.Sprintf("/api/events/%d/reactions", created.ID), bobToken, gin.H{
		"type": "heart",
	})
	assert.Equal(t, http.StatusOK, w.Code)

	w, _ = api.do(http.MethodPatch, fmt.Sprintf("/api/events/%d", created.ID), bobToken, gin.H{
		"title": "Hijacked",
	})
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestValidationErrorsCarryFields(t *testing.T) {
	api := newTestAPI(t)
	token, _ := api.register("alice")

	w, _ := api.do(http.MethodPost, "/api/events", token, gin.H{
		"title":      "Bad",
		"date":       "not-a-date",
		"start_time": "sometime",
		"period":     "midnight",
	})
	require.Equal(t, http.StatusBadRequest, w.Code)

	var body struct {
		Fields map[string]string `json:"fields"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Contains(t, body.Fields, "date")
	assert.Contains(t, body.Fields, "start_time")
	assert.Contains(t, body.Fields, "period")
}
