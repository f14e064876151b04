package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"mina/internal/insights"
	"mina/internal/metrics"
	"mina/internal/services"
	"mina/internal/store"
)

const (
	defaultListLimit = 100
	maxTags          = 20
)

type JournalHandler struct {
	entries  store.JournalStore
	users    store.UserStore
	insights *services.InsightService
	loc      *time.Location
	logger   *zap.Logger
}

func NewJournalHandler(entries store.JournalStore, users store.UserStore, insightSvc *services.InsightService, loc *time.Location, logger *zap.Logger) *JournalHandler {
	if loc == nil {
		loc = time.UTC
	}
	return &JournalHandler{entries: entries, users: users, insights: insightSvc, loc: loc, logger: orNop(logger)}
}

type entryRequest struct {
	Body      string             `json:"body"`
	Mood      insights.MoodLevel `json:"mood"`
	WordCount *int               `json:"word_count"`
	Tags      []string           `json:"tags"`
	CreatedAt *time.Time         `json:"created_at"` // RFC 3339; defaults to now
}

// toNewEntry validates the request and fills in the derived word count.
func (req entryRequest) toNewEntry() (store.NewEntry, error) {
	body := strings.TrimSpace(req.Body)
	words := len(strings.Fields(body))
	if req.WordCount != nil {
		if *req.WordCount < 0 {
			return store.NewEntry{}, errors.New("word_count must not be negative")
		}
		words = *req.WordCount
	}
	if body == "" && req.Mood == 0 && words == 0 {
		return store.NewEntry{}, errors.New("entry needs a body or a mood")
	}

	tags := make([]string, 0, len(req.Tags))
	for _, t := range req.Tags {
		if t = strings.TrimSpace(t); t != "" {
			tags = append(tags, t)
		}
	}
	if len(tags) > maxTags {
		return store.NewEntry{}, fmt.Errorf("at most %d tags per entry", maxTags)
	}

	in := store.NewEntry{Body: body, Mood: req.Mood, WordCount: words, Tags: tags}
	if req.CreatedAt != nil {
		in.CreatedAt = *req.CreatedAt
	}
	return in, nil
}

// CreateEntry godoc
// @Summary Write a journal entry
// @Tags journal
// @Accept json
// @Produce json
// @Success 201 {object} EntryDTO
// @Failure 400 {object} errorResponse
// @Router /journal [post]
func (h *JournalHandler) CreateEntry(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}
	var req entryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid body")
		return
	}
	in, err := req.toNewEntry()
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	e, err := h.entries.CreateEntry(r.Context(), userID, in)
	if err != nil {
		h.logger.Error("create entry failed", zap.Int("user_id", userID), zap.Error(err))
		writeError(w, http.StatusInternalServerError, "could not save entry")
		return
	}
	metrics.EntriesWrittenTotal.WithLabelValues("api").Inc()

	loc := userLocation(r.Context(), h.users, userID, h.loc)
	writeJSON(w, http.StatusCreated, ToEntryDTO(e, loc))
}

// ListEntries returns entries newest first, optionally bounded by local dates.
func (h *JournalHandler) ListEntries(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}
	loc := userLocation(r.Context(), h.users, userID, h.loc)
	f := store.EntryFilter{Loc: loc, Limit: defaultListLimit}

	q := r.URL.Query()
	var err error
	if v := q.Get("start_date"); v != "" {
		if f.Start, err = insights.ParseDay(v); err != nil {
			writeError(w, http.StatusBadRequest, "invalid start_date; expected YYYY-MM-DD")
			return
		}
	}
	if v := q.Get("end_date"); v != "" {
		if f.End, err = insights.ParseDay(v); err != nil {
			writeError(w, http.StatusBadRequest, "invalid end_date; expected YYYY-MM-DD")
			return
		}
	}
	if !f.Start.IsZero() && !f.End.IsZero() && f.End.Before(f.Start) {
		writeError(w, http.StatusBadRequest, "end_date before start_date")
		return
	}
	if v := q.Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			writeError(w, http.StatusBadRequest, "invalid limit")
			return
		}
		f.Limit = n
	}

	list, err := h.entries.ListEntries(r.Context(), userID, f)
	if err != nil {
		h.logger.Error("list entries failed", zap.Int("user_id", userID), zap.Error(err))
		writeError(w, http.StatusInternalServerError, "could not load entries")
		return
	}
	writeJSON(w, http.StatusOK, ToEntryDTOs(list, loc))
}

func (h *JournalHandler) DeleteEntry(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}
	id := chi.URLParam(r, "id")
	err := h.entries.DeleteEntry(r.Context(), userID, id)
	if errors.Is(err, store.ErrNotFound) {
		writeError(w, http.StatusNotFound, "entry not found")
		return
	}
	if err != nil {
		h.logger.Error("delete entry failed", zap.Int("user_id", userID), zap.String("entry_id", id), zap.Error(err))
		writeError(w, http.StatusInternalServerError, "could not delete entry")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Streak godoc
// @Summary Current streak ending at a local date
// @Tags journal
// @Produce json
// @Param local_date query string false "YYYY-MM-DD, defaults to today"
// @Success 200 {object} models.DailyStreakMetric
// @Router /journal/streak [get]
func (h *JournalHandler) Streak(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}
	loc := userLocation(r.Context(), h.users, userID, h.loc)
	day, ok := parseLocalDate(w, r)
	if !ok {
		return
	}

	m, err := h.insights.DailyStreak(r.Context(), userID, day, loc)
	if err != nil {
		writeRetryable(w, "could not load entries")
		return
	}
	writeJSON(w, http.StatusOK, m)
}

// parseLocalDate reads the optional local_date query parameter. A zero Day means today.
func parseLocalDate(w http.ResponseWriter, r *http.Request) (insights.Day, bool) {
	v := r.URL.Query().Get("local_date")
	if v == "" {
		return insights.Day{}, true
	}
	d, err := insights.ParseDay(v)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid local_date; expected YYYY-MM-DD")
		return insights.Day{}, false
	}
	return d, true
}
