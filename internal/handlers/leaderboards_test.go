package handlers

import (
	"net/http"
	"testing"
)

func TestLeaderboardEntriesValidation(t *testing.T) {
	env := newTestEnv()

	tests := []struct {
		name     string
		path     string
		expected int
		code     ErrorCode
	}{
		{"unknown score type", "/mc/leaderboards/BOGUS/ALL_TIME", http.StatusBadRequest, ErrValidation},
		{"unknown period", "/mc/leaderboards/KILLS/FORTNIGHTLY", http.StatusBadRequest, ErrValidation},
		{"lowercase period", "/mc/leaderboards/KILLS/daily", http.StatusBadRequest, ErrValidation},
		{"private score type", "/mc/leaderboards/MESSAGES_SENT/ALL_TIME", http.StatusUnauthorized, ErrUnauthorized},
		{"non-numeric limit", "/mc/leaderboards/KILLS/ALL_TIME?limit=abc", http.StatusBadRequest, ErrValidation},
		{"zero limit", "/mc/leaderboards/KILLS/ALL_TIME?limit=0", http.StatusBadRequest, ErrValidation},
	}
	for _, test := range tests {
		rec := env.request(t, http.MethodGet, test.path, nil)
		if rec.Code != test.expected {
			t.Errorf("%s: status = %d; expected %d", test.name, rec.Code, test.expected)
			continue
		}
		if got := errorCodeOf(t, rec); got != test.code {
			t.Errorf("%s: code = %s; expected %s", test.name, got, test.code)
		}
	}
}
