package handlers

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/jorgeberrex/mars-api/internal/config"
	"github.com/jorgeberrex/mars-api/internal/leaderboard"
)

const testToken = "test-token"

// testEnv wires a Handler over the hand mocks and serves the real router
// so tests exercise routing and middleware too. Redis points at a dead
// address; paths that touch it are not under test here.
type testEnv struct {
	store    *MockStore
	players  *MockPlayerCache
	matches  *MockMatchCache
	webhooks *MockNotifier
	handler  *Handler
	router   http.Handler
}

func newTestEnv() *testEnv {
	env := &testEnv{
		store:    &MockStore{},
		players:  &MockPlayerCache{},
		matches:  &MockMatchCache{},
		webhooks: &MockNotifier{},
	}
	logger := zap.NewNop().Sugar()
	rdb := redis.NewClient(&redis.Options{Addr: "127.0.0.1:1", MaxRetries: -1})
	env.handler = New(Config{
		AppConfig: &config.Config{Token: testToken},
		Store:     env.store,
		Players:   env.players,
		Matches:   env.matches,
		Redis:     rdb,
		Boards:    leaderboard.NewBoardSet(rdb, logger),
		Webhooks:  env.webhooks,
		Logger:    logger,
	})
	env.router = env.handler.Routes()
	return env
}

func (e *testEnv) request(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			t.Fatal(err)
		}
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Authorization", "API-Token "+testToken)
	req.Header.Set(serverIDHeader, "game-1")
	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)
	return rec
}

func errorCodeOf(t *testing.T, rec *httptest.ResponseRecorder) ErrorCode {
	t.Helper()
	var body struct {
		Code ErrorCode `json:"code"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decoding error body: %v", err)
	}
	return body.Code
}

func TestStatusIsOpen(t *testing.T) {
	env := newTestEnv()
	req := httptest.NewRequest(http.MethodGet, "/status", nil)
	rec := httptest.NewRecorder()
	env.router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("status = %d; expected 200 without auth", rec.Code)
	}
}

func TestAuthMiddleware(t *testing.T) {
	env := newTestEnv()

	tests := []struct {
		name     string
		header   string
		expected int
	}{
		{"missing header", "", http.StatusUnauthorized},
		{"wrong scheme", "Bearer " + testToken, http.StatusUnauthorized},
		{"wrong token", "API-Token nope", http.StatusUnauthorized},
		{"valid token", "API-Token " + testToken, http.StatusOK},
	}
	for _, test := range tests {
		req := httptest.NewRequest(http.MethodGet, "/mc/ranks/", nil)
		if test.header != "" {
			req.Header.Set("Authorization", test.header)
		}
		rec := httptest.NewRecorder()
		env.router.ServeHTTP(rec, req)

		if rec.Code != test.expected {
			t.Errorf("%s: status = %d; expected %d", test.name, rec.Code, test.expected)
		}
		if test.expected == http.StatusUnauthorized && errorCodeOf(t, rec) != ErrUnauthorized {
			t.Errorf("%s: expected UNAUTHORIZED_EXCEPTION body", test.name)
		}
	}
}
