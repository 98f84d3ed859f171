package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/mail"
	"strconv"
	"strings"
	"time"

	"github.com/vitorhrds/schedly/internal/cache"
	"github.com/vitorhrds/schedly/internal/model"
	"github.com/vitorhrds/schedly/internal/outbox"
	"github.com/vitorhrds/schedly/internal/schedule"
	"github.com/vitorhrds/schedly/internal/storage"
)

const bookingCreatedEvent = "schedly.booking.created.v1"

// BookingHandler serves the public scheduling page: day availability, month
// blocked-dates, and booking creation.
type BookingHandler struct {
	hosts        *storage.HostRepository
	intervals    *storage.IntervalRepository
	bookings     *storage.BookingRepository
	outboxRepo   *outbox.Repository
	blockedCache *cache.BlockedDatesCache
	logger       *slog.Logger
	now          func() time.Time
}

func NewBookingHandler(
	hosts *storage.HostRepository,
	intervals *storage.IntervalRepository,
	bookings *storage.BookingRepository,
	outboxRepo *outbox.Repository,
	blockedCache *cache.BlockedDatesCache,
	logger *slog.Logger,
) *BookingHandler {
	return &BookingHandler{
		hosts:        hosts,
		intervals:    intervals,
		bookings:     bookings,
		outboxRepo:   outboxRepo,
		blockedCache: blockedCache,
		logger:       logger,
		now:          func() time.Time { return time.Now().UTC() },
	}
}

type availabilityResponse struct {
	PossibleTimes  []int `json:"possibleTimes"`
	AvailableTimes []int `json:"availableTimes"`
}

type blockedDatesResponse struct {
	BlockedWeekDays []int         `json:"blockedWeekDays"`
	Bookings        []bookingItem `json:"bookings"`
}

type bookingItem struct {
	ID   string `json:"id"`
	Date string `json:"date"`
}

type createBookingRequest struct {
	Name         string `json:"name"`
	Email        string `json:"email"`
	Observations string `json:"observations"`
	Date         string `json:"date"`
}

type createBookingResponse struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Email        string `json:"email"`
	Observations string `json:"observations"`
	Date         string `json:"date"`
}

// Availability returns the possible and still-open hourly slots of one date.
func (h *BookingHandler) Availability(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeMessage(w, http.StatusMethodNotAllowed, "Method not allowed.")
		return
	}

	dateStr := strings.TrimSpace(r.URL.Query().Get("date"))
	if dateStr == "" {
		writeMessage(w, http.StatusBadRequest, "Date not provided.")
		return
	}
	day, err := time.ParseInLocation("2006-01-02", dateStr, time.UTC)
	if err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid date.")
		return
	}

	host, ok := h.lookupHost(w, r)
	if !ok {
		return
	}

	// A day that has fully elapsed needs no interval or booking lookup.
	now := h.now()
	if schedule.DayPassed(day, now) {
		writeJSON(w, http.StatusOK, availabilityResponse{
			PossibleTimes:  []int{},
			AvailableTimes: []int{},
		})
		return
	}

	plan, ok := h.loadWeekPlan(w, r.Context(), host.ID)
	if !ok {
		return
	}

	// Only the interval's own window can hold colliding bookings, so the fetch is
	// bounded to [startHour, endHour] of the day (end inclusive).
	var booked []time.Time
	if interval, found := plan.Lookup(day.Weekday()); found {
		from := day.Add(time.Duration(interval.StartHour()) * time.Hour)
		to := day.Add(time.Duration(interval.EndHour()) * time.Hour)
		rows, err := h.bookings.ListBetween(r.Context(), host.ID, from, to)
		if err != nil {
			h.logger.Error("booking lookup failed", "err", err, "host_id", host.ID)
			writeMessage(w, http.StatusInternalServerError, "Failed to load bookings.")
			return
		}
		for _, b := range rows {
			booked = append(booked, b.StartTime)
		}
	}

	avail := schedule.DayAvailability(day, plan, booked, now)
	writeJSON(w, http.StatusOK, availabilityResponse{
		PossibleTimes:  avail.PossibleTimes,
		AvailableTimes: avail.AvailableTimes,
	})
}

// BlockedDates returns the weekdays blocked for every month plus the month's booking
// rows for caller-side cross-referencing. Responses are memoized per
// (host, year, month) in Redis; the engine itself always recomputes.
func (h *BookingHandler) BlockedDates(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeMessage(w, http.StatusMethodNotAllowed, "Method not allowed.")
		return
	}

	yearStr := strings.TrimSpace(r.URL.Query().Get("year"))
	monthStr := strings.TrimSpace(r.URL.Query().Get("month"))
	if yearStr == "" || monthStr == "" {
		writeMessage(w, http.StatusBadRequest, "Year or month not specified.")
		return
	}
	year, err := strconv.Atoi(yearStr)
	if err != nil || year < 1 {
		writeMessage(w, http.StatusBadRequest, "Invalid year or month.")
		return
	}
	monthNum, err := strconv.Atoi(monthStr)
	if err != nil || monthNum < 1 || monthNum > 12 {
		writeMessage(w, http.StatusBadRequest, "Invalid year or month.")
		return
	}
	month := time.Month(monthNum)

	host, ok := h.lookupHost(w, r)
	if !ok {
		return
	}

	if payload, hit := h.blockedCache.Get(r.Context(), host.ID, year, month); hit {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(payload)
		return
	}

	plan, ok := h.loadWeekPlan(w, r.Context(), host.ID)
	if !ok {
		return
	}

	blocked := schedule.BlockedWeekdays(plan)
	blockedInts := make([]int, 0, len(blocked))
	for _, wd := range blocked {
		blockedInts = append(blockedInts, int(wd))
	}

	monthStart := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	rows, err := h.bookings.ListForMonth(r.Context(), host.ID, monthStart)
	if err != nil {
		h.logger.Error("booking lookup failed", "err", err, "host_id", host.ID)
		writeMessage(w, http.StatusInternalServerError, "Failed to load bookings.")
		return
	}
	items := make([]bookingItem, 0, len(rows))
	for _, b := range rows {
		items = append(items, bookingItem{ID: b.ID, Date: b.StartTime.UTC().Format(time.RFC3339)})
	}

	resp := blockedDatesResponse{BlockedWeekDays: blockedInts, Bookings: items}
	payload, err := json.Marshal(resp)
	if err != nil {
		writeMessage(w, http.StatusInternalServerError, "Failed to build response.")
		return
	}
	h.blockedCache.Set(r.Context(), host.ID, year, month, payload)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(payload)
}

// Schedule creates a booking. The slot is normalized to the start of its hour, past
// instants are rejected, and the duplicate check is settled by the unique
// (host_id, start_time) constraint; an outbox event toward the calendar provider is
// written in the same transaction.
func (h *BookingHandler) Schedule(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeMessage(w, http.StatusMethodNotAllowed, "Method not allowed.")
		return
	}

	host, ok := h.lookupHost(w, r)
	if !ok {
		return
	}

	var req createBookingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid request body.")
		return
	}
	req.Name = strings.TrimSpace(req.Name)
	req.Email = strings.TrimSpace(req.Email)
	if req.Name == "" {
		writeMessage(w, http.StatusBadRequest, "Name is required.")
		return
	}
	if _, err := mail.ParseAddress(req.Email); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid email.")
		return
	}
	requested, err := time.Parse(time.RFC3339, req.Date)
	if err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid date.")
		return
	}

	slot, err := schedule.ClaimSlot(requested, nil, h.now())
	if err != nil {
		writeMessage(w, http.StatusBadRequest, "Date is in the past.")
		return
	}

	ctx := r.Context()
	tx, err := h.bookings.Begin(ctx)
	if err != nil {
		writeMessage(w, http.StatusInternalServerError, "Failed to start transaction.")
		return
	}
	defer func() { _ = tx.Rollback(ctx) }()

	booked, err := h.bookings.ListAt(ctx, tx, host.ID, slot)
	if err != nil {
		writeMessage(w, http.StatusInternalServerError, "Failed to check availability.")
		return
	}
	if _, err := schedule.ClaimSlot(requested, booked, h.now()); err != nil {
		if errors.Is(err, schedule.ErrSlotInPast) {
			writeMessage(w, http.StatusBadRequest, "Date is in the past.")
			return
		}
		writeMessage(w, http.StatusConflict, "There is another booking at the same time.")
		return
	}

	booking := &model.Booking{
		HostID:        host.ID,
		ObserverName:  req.Name,
		ObserverEmail: req.Email,
		Observations:  req.Observations,
		StartTime:     slot,
	}
	id, err := h.bookings.Create(ctx, tx, booking)
	if err != nil {
		if storage.IsConflict(err) {
			writeMessage(w, http.StatusConflict, "There is another booking at the same time.")
			return
		}
		h.logger.Error("booking create failed", "err", err, "host_id", host.ID)
		writeMessage(w, http.StatusInternalServerError, "Failed to create booking.")
		return
	}

	evtPayload, err := json.Marshal(map[string]any{
		"booking_id":     id,
		"host_id":        host.ID,
		"host_username":  host.Username,
		"observer_name":  req.Name,
		"observer_email": req.Email,
		"observations":   req.Observations,
		"start_time":     slot.Format(time.RFC3339),
		"end_time":       slot.Add(time.Hour).Format(time.RFC3339),
		"duration_hours": 1,
	})
	if err != nil {
		writeMessage(w, http.StatusInternalServerError, "Failed to build event payload.")
		return
	}
	if err := h.outboxRepo.Insert(ctx, tx, outbox.Event{
		AggregateType: "booking",
		AggregateID:   id,
		EventType:     bookingCreatedEvent,
		Payload:       evtPayload,
	}); err != nil {
		writeMessage(w, http.StatusInternalServerError, "Failed to write outbox event.")
		return
	}

	if err := tx.Commit(ctx); err != nil {
		writeMessage(w, http.StatusInternalServerError, "Failed to commit.")
		return
	}

	if err := h.blockedCache.Invalidate(ctx, host.ID); err != nil {
		h.logger.Warn("blocked-dates cache invalidation failed", "err", err, "host_id", host.ID)
	}

	writeJSON(w, http.StatusCreated, createBookingResponse{
		ID:           id,
		Name:         req.Name,
		Email:        req.Email,
		Observations: req.Observations,
		Date:         slot.Format(time.RFC3339),
	})
}

func (h *BookingHandler) lookupHost(w http.ResponseWriter, r *http.Request) (model.Host, bool) {
	username := strings.TrimSpace(r.PathValue("username"))
	if username == "" {
		writeMessage(w, http.StatusBadRequest, "Username not provided.")
		return model.Host{}, false
	}
	host, err := h.hosts.GetByUsername(r.Context(), username)
	if err != nil {
		if storage.IsNotFound(err) {
			writeMessage(w, http.StatusBadRequest, "User does not exist.")
			return model.Host{}, false
		}
		h.logger.Error("host lookup failed", "err", err, "username", username)
		writeMessage(w, http.StatusInternalServerError, "Failed to load user.")
		return model.Host{}, false
	}
	return host, true
}

func (h *BookingHandler) loadWeekPlan(w http.ResponseWriter, ctx context.Context, hostID string) (schedule.WeekPlan, bool) {
	rows, err := h.intervals.ListByHost(ctx, hostID)
	if err != nil {
		h.logger.Error("interval lookup failed", "err", err, "host_id", hostID)
		writeMessage(w, http.StatusInternalServerError, "Failed to load intervals.")
		return schedule.WeekPlan{}, false
	}
	intervals := make([]schedule.Interval, 0, len(rows))
	for _, row := range rows {
		intervals = append(intervals, schedule.Interval{
			Weekday:     time.Weekday(row.Weekday),
			StartMinute: row.StartMinute,
			EndMinute:   row.EndMinute,
		})
	}
	plan, err := schedule.NewWeekPlan(intervals)
	if err != nil {
		// Stored rows violating the plan rules mean a write-path regression.
		h.logger.Error("stored intervals are invalid", "err", err, "host_id", hostID)
		writeMessage(w, http.StatusInternalServerError, "Failed to load intervals.")
		return schedule.WeekPlan{}, false
	}
	return plan, true
}
