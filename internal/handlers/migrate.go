package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"

	"mina/internal/insights"
	"mina/internal/metrics"
	"mina/internal/store"
)

const maxImportBatch = 1000

type ImportHandler struct {
	entries store.JournalStore
	users   store.UserStore
	loc     *time.Location
	logger  *zap.Logger
}

func NewImportHandler(entries store.JournalStore, users store.UserStore, loc *time.Location, logger *zap.Logger) *ImportHandler {
	if loc == nil {
		loc = time.UTC
	}
	return &ImportHandler{entries: entries, users: users, loc: loc, logger: orNop(logger)}
}

// importedEntry is an entry from another device or export. Entries that only
// carry a local_date are placed at noon of that day.
type importedEntry struct {
	entryRequest
	LocalDate *insights.Day `json:"local_date"`
}

type ImportRequest struct {
	Entries []importedEntry `json:"entries"`
}

type importResponse struct {
	Imported int `json:"imported"`
}

// ImportEntries godoc
// @Summary Import journal entries
// @Description Stores a batch of entries for the authenticated user in one transaction
// @Tags journal
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param data body ImportRequest true "Entries to import"
// @Success 201 {object} importResponse
// @Failure 400 {object} errorResponse
// @Failure 500 {object} errorResponse
// @Router /journal/import [post]
func (h *ImportHandler) ImportEntries(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}

	var req ImportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if len(req.Entries) == 0 {
		writeError(w, http.StatusBadRequest, "no entries provided")
		return
	}
	if len(req.Entries) > maxImportBatch {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("at most %d entries per import", maxImportBatch))
		return
	}

	loc := userLocation(r.Context(), h.users, userID, h.loc)
	batch := make([]store.NewEntry, 0, len(req.Entries))
	for i, e := range req.Entries {
		if e.CreatedAt == nil {
			if e.LocalDate == nil || e.LocalDate.IsZero() {
				writeError(w, http.StatusBadRequest, fmt.Sprintf("entry %d: created_at or local_date required", i))
				return
			}
			noon := e.LocalDate.Time(loc).Add(12 * time.Hour)
			e.CreatedAt = &noon
		}
		in, err := e.toNewEntry()
		if err != nil {
			writeError(w, http.StatusBadRequest, fmt.Sprintf("entry %d: %v", i, err))
			return
		}
		batch = append(batch, in)
	}

	n, err := h.entries.ImportEntries(r.Context(), userID, batch)
	if err != nil {
		h.logger.Error("import entries failed", zap.Int("user_id", userID), zap.Int("count", len(batch)), zap.Error(err))
		writeError(w, http.StatusInternalServerError, "could not import entries")
		return
	}
	metrics.EntriesWrittenTotal.WithLabelValues("import").Add(float64(n))
	h.logger.Info("entries imported", zap.Int("user_id", userID), zap.Int("count", n))
	writeJSON(w, http.StatusCreated, importResponse{Imported: n})
}
