package handlers

import (
	"errors"
	"net/http"

	"go.uber.org/zap"

	"mina/internal/store"
)

type UserHandler struct {
	users  store.UserStore
	logger *zap.Logger
}

func NewUserHandler(users store.UserStore, logger *zap.Logger) *UserHandler {
	return &UserHandler{users: users, logger: orNop(logger)}
}

// GetMe returns the current user's profile
func (h *UserHandler) GetMe(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}
	u, err := h.users.UserByID(r.Context(), userID)
	if errors.Is(err, store.ErrNotFound) {
		writeError(w, http.StatusNotFound, "not found")
		return
	}
	if err != nil {
		h.logger.Error("load profile failed", zap.Int("user_id", userID), zap.Error(err))
		writeError(w, http.StatusInternalServerError, "could not load profile")
		return
	}
	writeJSON(w, http.StatusOK, ToUserDTO(u))
}
