package handlers

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"net/http"
	"strings"
	"time"
)

// serverIDHeader carries the calling game server's identity on every
// authenticated request.
const serverIDHeader = "Mars-Server-ID"

// AuthMiddleware validates the static API token. The expected form is
// "Authorization: API-Token <secret>".
func (h *Handler) AuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw := r.Header.Get("Authorization")
		token, ok := strings.CutPrefix(raw, "API-Token ")
		if !ok || token != h.cfg.Token {
			h.errorResponse(w, ErrUnauthorized, "Invalid or missing API token")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// callingServerID returns the game server id attached to the request, or
// empty for non-server callers.
func callingServerID(r *http.Request) string {
	return r.Header.Get(serverIDHeader)
}

func (h *Handler) jsonResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func (h *Handler) errorResponse(w http.ResponseWriter, code ErrorCode, message string) {
	h.jsonResponse(w, statusOf(code), map[string]any{
		"code":    code,
		"message": message,
		"error":   true,
	})
}

// decode parses and validates a JSON request body.
func (h *Handler) decode(w http.ResponseWriter, r *http.Request, out any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, MaxBodySize)
	if err := json.NewDecoder(r.Body).Decode(out); err != nil {
		h.errorResponse(w, ErrValidation, "Invalid JSON body")
		return false
	}
	if err := h.validator.Struct(out); err != nil {
		h.errorResponse(w, ErrValidation, "Validation failed: "+err.Error())
		return false
	}
	return true
}

// decodeSlice parses a JSON array body. Element validation is up to the
// caller since validator.Struct only accepts structs.
func (h *Handler) decodeSlice(w http.ResponseWriter, r *http.Request, out any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, MaxBodySize)
	if err := json.NewDecoder(r.Body).Decode(out); err != nil {
		h.errorResponse(w, ErrValidation, "Invalid JSON body")
		return false
	}
	return true
}

// hashIP hashes addresses before storage when privacy hashing is enabled.
func (h *Handler) hashIP(ip string) string {
	if !h.cfg.EnableIPHashing {
		return ip
	}
	sum := sha256.Sum256([]byte(ip))
	return hex.EncodeToString(sum[:])
}

// Status is the unauthenticated liveness endpoint.
func (h *Handler) Status(w http.ResponseWriter, r *http.Request) {
	h.jsonResponse(w, http.StatusOK, map[string]string{"status": "OK"})
}

func nowMillis() int64 {
	return time.Now().UnixMilli()
}

func lower(s string) string {
	return strings.ToLower(s)
}
