package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/vitorhrds/schedly/internal/cache"
	"github.com/vitorhrds/schedly/internal/model"
	"github.com/vitorhrds/schedly/internal/schedule"
	"github.com/vitorhrds/schedly/internal/storage"
	"github.com/vitorhrds/schedly/libs/auth"
)

// HostHandler owns host registration and working-hour configuration.
type HostHandler struct {
	hosts        *storage.HostRepository
	intervals    *storage.IntervalRepository
	blockedCache *cache.BlockedDatesCache
	logger       *slog.Logger
	tokenSecret  string
	tokenTTL     time.Duration
}

func NewHostHandler(
	hosts *storage.HostRepository,
	intervals *storage.IntervalRepository,
	blockedCache *cache.BlockedDatesCache,
	logger *slog.Logger,
	tokenSecret string,
	tokenTTL time.Duration,
) *HostHandler {
	if tokenTTL <= 0 {
		tokenTTL = 7 * 24 * time.Hour
	}
	return &HostHandler{
		hosts:        hosts,
		intervals:    intervals,
		blockedCache: blockedCache,
		logger:       logger,
		tokenSecret:  tokenSecret,
		tokenTTL:     tokenTTL,
	}
}

type createHostRequest struct {
	Name     string `json:"name"`
	Username string `json:"username"`
}

type createHostResponse struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Username string `json:"username"`
	Token    string `json:"token"`
}

type timeIntervalsRequest struct {
	Intervals []timeIntervalItem `json:"intervals"`
}

type timeIntervalItem struct {
	WeekDay            int `json:"weekDay"`
	StartTimeInMinutes int `json:"startTimeInMinutes"`
	EndTimeInMinutes   int `json:"endTimeInMinutes"`
}

var usernamePattern = regexp.MustCompile(`^[a-z][a-z0-9-]{2,39}$`)

func (h *HostHandler) Create(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeMessage(w, http.StatusMethodNotAllowed, "Method not allowed.")
		return
	}

	var req createHostRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid request body.")
		return
	}
	req.Name = strings.TrimSpace(req.Name)
	req.Username = strings.TrimSpace(req.Username)
	if req.Name == "" || !usernamePattern.MatchString(req.Username) {
		writeMessage(w, http.StatusBadRequest, "Invalid name or username.")
		return
	}

	host := model.Host{
		ID:       uuid.NewString(),
		Name:     req.Name,
		Username: req.Username,
	}
	if err := h.hosts.Create(r.Context(), host); err != nil {
		if storage.IsConflict(err) {
			writeMessage(w, http.StatusBadRequest, "Username already taken.")
			return
		}
		h.logger.Error("host create failed", "err", err)
		writeMessage(w, http.StatusInternalServerError, "Failed to create user.")
		return
	}

	now := time.Now()
	token, err := auth.SignHS256(auth.Claims{
		Sub:      host.ID,
		Username: host.Username,
		Iat:      now.Unix(),
		Exp:      now.Add(h.tokenTTL).Unix(),
	}, h.tokenSecret)
	if err != nil {
		h.logger.Error("token signing failed", "err", err)
		writeMessage(w, http.StatusInternalServerError, "Failed to issue token.")
		return
	}

	writeJSON(w, http.StatusCreated, createHostResponse{
		ID:       host.ID,
		Name:     host.Name,
		Username: host.Username,
		Token:    token,
	})
}

func (h *HostHandler) UpdateTimeIntervals(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPut {
		writeMessage(w, http.StatusMethodNotAllowed, "Method not allowed.")
		return
	}

	claims, ok := h.authorize(r)
	if !ok {
		writeMessage(w, http.StatusUnauthorized, "Unauthorized.")
		return
	}

	var req timeIntervalsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid request body.")
		return
	}
	if len(req.Intervals) == 0 {
		writeMessage(w, http.StatusBadRequest, "At least one interval is required.")
		return
	}

	intervals, err := intervalsFromRequest(req.Intervals)
	if err != nil {
		writeMessage(w, http.StatusBadRequest, err.Error())
		return
	}

	rows := make([]model.TimeInterval, 0, len(intervals))
	for _, iv := range intervals {
		rows = append(rows, model.TimeInterval{
			HostID:      claims.Sub,
			Weekday:     int(iv.Weekday),
			StartMinute: iv.StartMinute,
			EndMinute:   iv.EndMinute,
		})
	}

	if err := h.intervals.Replace(r.Context(), claims.Sub, rows); err != nil {
		h.logger.Error("interval replace failed", "err", err, "host_id", claims.Sub)
		writeMessage(w, http.StatusInternalServerError, "Failed to save intervals.")
		return
	}

	if err := h.blockedCache.Invalidate(r.Context(), claims.Sub); err != nil {
		h.logger.Warn("blocked-dates cache invalidation failed", "err", err, "host_id", claims.Sub)
	}

	w.WriteHeader(http.StatusCreated)
}

func (h *HostHandler) authorize(r *http.Request) (*auth.Claims, bool) {
	header := r.Header.Get("Authorization")
	token, ok := strings.CutPrefix(header, "Bearer ")
	if !ok || strings.TrimSpace(token) == "" {
		return nil, false
	}
	claims, err := auth.ParseAndVerifyHS256(strings.TrimSpace(token), h.tokenSecret)
	if err != nil {
		return nil, false
	}
	return claims, true
}

// intervalsFromRequest validates the wire intervals into engine intervals. NewWeekPlan
// enforces the per-weekday uniqueness and minimum-length rules.
func intervalsFromRequest(items []timeIntervalItem) ([]schedule.Interval, error) {
	intervals := make([]schedule.Interval, 0, len(items))
	for _, item := range items {
		intervals = append(intervals, schedule.Interval{
			Weekday:     time.Weekday(item.WeekDay),
			StartMinute: item.StartTimeInMinutes,
			EndMinute:   item.EndTimeInMinutes,
		})
	}
	if _, err := schedule.NewWeekPlan(intervals); err != nil {
		return nil, err
	}
	return intervals, nil
}
