package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/redis/go-redis/v9"

	"github.com/jorgeberrex/mars-api/internal/models"
)

// endedMatchRetention mirrors the socket router's retention window for
// matches closed retroactively during reconciliation.
const endedMatchRetention = time.Hour

func lastAliveTimeKey(serverID string) string {
	return "server:" + serverID + ":last_alive_time"
}

func currentMatchIDKey(serverID string) string {
	return "server:" + serverID + ":current_match_id"
}

func serverEventsKey(serverID string) string {
	return "server:" + serverID + ":events"
}

// ServerStartup reconciles state left dangling by a crash or hard restart.
// The previous run's match is retroactively ended at the last liveness
// stamp, and every session still open on this server is closed the same
// way, crediting playtime to the player. A first-ever startup just stamps
// liveness and returns.
func (h *Handler) ServerStartup(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	serverID := chi.URLParam(r, "serverId")
	now := nowMillis()

	raw, err := h.redis.Get(ctx, lastAliveTimeKey(serverID)).Result()
	if errors.Is(err, redis.Nil) {
		h.redis.Set(ctx, lastAliveTimeKey(serverID), strconv.FormatInt(now, 10), 0)
		h.jsonResponse(w, http.StatusOK, map[string]any{"reconciled": false})
		return
	}
	if err != nil {
		h.errorResponse(w, ErrValidation, "Server state lookup failed")
		return
	}
	lastAlive, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		lastAlive = now
	}

	matchesEnded := 0
	if matchID, err := h.redis.Get(ctx, currentMatchIDKey(serverID)).Result(); err == nil && matchID != "" {
		match, err := h.matches.Get(ctx, matchID)
		if err != nil {
			h.logger.Warnw("Reconciliation match lookup failed", "serverId", serverID, "matchId", matchID, "error", err)
		} else if match != nil && match.EndedAt == nil {
			match.EndedAt = &lastAlive
			if err := h.matches.SetWithExpiry(ctx, match.ID, match, true, endedMatchRetention); err != nil {
				h.logger.Errorw("Reconciliation match save failed", "serverId", serverID, "matchId", matchID, "error", err)
			} else {
				matchesEnded++
			}
		}
	}

	sessions, err := h.store.OpenServerSessions(ctx, serverID)
	if err != nil {
		h.errorResponse(w, ErrValidation, "Open session lookup failed")
		return
	}
	sessionsClosed := 0
	for i := range sessions {
		session := sessions[i]
		ended := lastAlive
		session.EndedAt = &ended

		player, err := h.players.Get(ctx, session.Player.Name)
		if err != nil {
			h.logger.Warnw("Reconciliation player lookup failed", "playerId", session.Player.ID, "error", err)
		} else if player != nil {
			player.Stats.ServerPlaytime += session.Length()
			if err := h.players.Set(ctx, player.Name, player, true); err != nil {
				h.logger.Errorw("Reconciliation player save failed", "playerId", player.ID, "error", err)
			}
		}

		if err := h.store.SaveSession(ctx, &session); err != nil {
			h.logger.Errorw("Reconciliation session save failed", "sessionId", session.ID, "error", err)
			continue
		}
		sessionsClosed++
	}

	h.redis.Set(ctx, lastAliveTimeKey(serverID), strconv.FormatInt(now, 10), 0)
	h.logger.Infow("Server startup reconciled",
		"serverId", serverID, "matchesEnded", matchesEnded, "sessionsClosed", sessionsClosed)
	h.jsonResponse(w, http.StatusOK, map[string]any{
		"reconciled":     true,
		"matchesEnded":   matchesEnded,
		"sessionsClosed": sessionsClosed,
	})
}

// ServerStatus reports liveness and the match currently being played.
func (h *Handler) ServerStatus(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	serverID := chi.URLParam(r, "serverId")

	raw, err := h.redis.Get(ctx, lastAliveTimeKey(serverID)).Result()
	if errors.Is(err, redis.Nil) {
		h.errorResponse(w, ErrValidation, "Server has never reported in")
		return
	}
	if err != nil {
		h.errorResponse(w, ErrValidation, "Server state lookup failed")
		return
	}
	lastAlive, _ := strconv.ParseInt(raw, 10, 64)

	status := models.ServerStatus{LastAliveTime: lastAlive}
	if matchID, err := h.redis.Get(ctx, currentMatchIDKey(serverID)).Result(); err == nil && matchID != "" {
		match, err := h.matches.Get(ctx, matchID)
		if err == nil && match != nil {
			status.CurrentMatch = match
			status.StatsTracking = match.IsTrackingStats()
		}
	}
	h.jsonResponse(w, http.StatusOK, status)
}

// ServerEvents serves the transient per-server event state. A server with
// nothing set gets the zero value rather than an error.
func (h *Handler) ServerEvents(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	serverID := chi.URLParam(r, "serverId")

	var events models.ServerEvents
	raw, err := h.redis.Get(ctx, serverEventsKey(serverID)).Result()
	if err != nil && !errors.Is(err, redis.Nil) {
		h.errorResponse(w, ErrValidation, "Server event lookup failed")
		return
	}
	if err == nil {
		if err := json.Unmarshal([]byte(raw), &events); err != nil {
			h.logger.Warnw("Malformed server event state", "serverId", serverID, "error", err)
		}
	}
	h.jsonResponse(w, http.StatusOK, events)
}
