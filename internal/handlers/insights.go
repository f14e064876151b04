package handlers

import (
	"net/http"
	"time"

	"go.uber.org/zap"

	"mina/internal/insights"
	"mina/internal/services"
	"mina/internal/store"
)

type InsightHandler struct {
	svc    *services.InsightService
	users  store.UserStore
	loc    *time.Location
	logger *zap.Logger
}

func NewInsightHandler(svc *services.InsightService, users store.UserStore, loc *time.Location, logger *zap.Logger) *InsightHandler {
	if loc == nil {
		loc = time.UTC
	}
	return &InsightHandler{svc: svc, users: users, loc: loc, logger: orNop(logger)}
}

type insightQuery struct {
	userID int
	period insights.Period
	today  insights.Day
	loc    *time.Location
}

func (h *InsightHandler) parseQuery(w http.ResponseWriter, r *http.Request) (insightQuery, bool) {
	userID, ok := currentUser(w, r)
	if !ok {
		return insightQuery{}, false
	}
	period := insights.DefaultPeriod
	if v := r.URL.Query().Get("period"); v != "" {
		p, err := insights.ParsePeriod(v)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid period; expected 7D, 30D, 90D or 1Y")
			return insightQuery{}, false
		}
		period = p
	}
	today, ok := parseLocalDate(w, r)
	if !ok {
		return insightQuery{}, false
	}
	return insightQuery{
		userID: userID,
		period: period,
		today:  today,
		loc:    userLocation(r.Context(), h.users, userID, h.loc),
	}, true
}

// GetInsights godoc
// @Summary Insight snapshot for a period
// @Tags insights
// @Produce json
// @Security BearerAuth
// @Param period query string false "7D, 30D, 90D or 1Y (default 30D)"
// @Param local_date query string false "reference day, YYYY-MM-DD"
// @Success 200 {object} insightResponse
// @Failure 400 {object} errorResponse
// @Failure 500 {object} errorResponse
// @Router /insights [get]
func (h *InsightHandler) GetInsights(w http.ResponseWriter, r *http.Request) {
	q, ok := h.parseQuery(w, r)
	if !ok {
		return
	}
	snap, err := h.svc.Snapshot(r.Context(), q.userID, q.period, q.today, q.loc)
	if err != nil {
		writeRetryable(w, "could not load your entries, try again")
		return
	}
	writeJSON(w, http.StatusOK, toInsightResponse(snap))
}

// Analysis returns the snapshot with a short written reading of it.
func (h *InsightHandler) Analysis(w http.ResponseWriter, r *http.Request) {
	q, ok := h.parseQuery(w, r)
	if !ok {
		return
	}
	snap, analysis, err := h.svc.Analysis(r.Context(), q.userID, q.period, q.today, q.loc)
	if err != nil {
		writeRetryable(w, "could not analyze your entries, try again")
		return
	}
	h.logger.Debug("analysis generated", zap.Int("user_id", q.userID), zap.String("period", q.period.Label()))
	writeJSON(w, http.StatusOK, analysisResponse{insightResponse: toInsightResponse(snap), Analysis: analysis})
}
