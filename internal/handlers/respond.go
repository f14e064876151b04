package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"go.uber.org/zap"

	mw "mina/internal/middleware"
	"mina/internal/store"
)

type errorResponse struct {
	Error     string `json:"error"`
	Retryable bool   `json:"retryable,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}

// writeRetryable reports a failure the client may retry as-is.
func writeRetryable(w http.ResponseWriter, msg string) {
	writeJSON(w, http.StatusInternalServerError, errorResponse{Error: msg, Retryable: true})
}

func currentUser(w http.ResponseWriter, r *http.Request) (int, bool) {
	id, ok := mw.UserID(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "missing user")
	}
	return id, ok
}

func loadLocation(name string, fallback *time.Location) *time.Location {
	if name == "" {
		return fallback
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return fallback
	}
	return loc
}

// userLocation resolves the zone the user's calendar days are counted in.
func userLocation(ctx context.Context, users store.UserStore, userID int, fallback *time.Location) *time.Location {
	u, err := users.UserByID(ctx, userID)
	if err != nil {
		return fallback
	}
	return loadLocation(u.TimeZone, fallback)
}

func orNop(l *zap.Logger) *zap.Logger {
	if l == nil {
		return zap.NewNop()
	}
	return l
}
