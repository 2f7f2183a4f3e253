package handler

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/fieldshift-dev/workforce-manager/backend/internal/domain"
	"github.com/fieldshift-dev/workforce-manager/backend/internal/geo"
	"github.com/fieldshift-dev/workforce-manager/backend/internal/shifts"
)

type shiftResponse struct {
	ID               int64              `json:"id"`
	Title            string             `json:"title"`
	Type             string             `json:"type"`
	Date             time.Time          `json:"date"`
	StartTime        time.Time          `json:"startTime"`
	EndTime          time.Time          `json:"endTime"`
	Status           domain.ShiftStatus `json:"status"`
	MaxEmployees     int32              `json:"maxEmployees"`
	CurrentEmployees int                `json:"currentEmployees"`
}

type detailedShiftResponse struct {
	shiftResponse
	Description    string `json:"description,omitempty"`
	RequiredSkills string `json:"requiredSkills"`
	BreakDuration  int32  `json:"breakDuration"`
	JobID          int64  `json:"jobID"`
}

func toShiftResponse(shift *domain.Shift) shiftResponse {
	return shiftResponse{
		ID:               shift.ID,
		Title:            shift.Title,
		Type:             shift.Type,
		Date:             shift.Date,
		StartTime:        shift.StartTime,
		EndTime:          shift.EndTime,
		Status:           shift.Status,
		MaxEmployees:     shift.MaxEmployees,
		CurrentEmployees: len(shift.AssignedUserIDs),
	}
}

func toDetailedShiftResponse(shift *domain.Shift) detailedShiftResponse {
	return detailedShiftResponse{
		shiftResponse:  toShiftResponse(shift),
		Description:    shift.Description,
		RequiredSkills: shift.RequiredSkills,
		BreakDuration:  shift.BreakDuration,
		JobID:          shift.JobID,
	}
}

func toShiftResponses(list []*domain.Shift) []shiftResponse {
	responses := make([]shiftResponse, 0, len(list))
	for _, shift := range list {
		responses = append(responses, toShiftResponse(shift))
	}
	return responses
}

func (h *Handler) CreateShift(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Title          string    `json:"title" validate:"required"`
		Type           string    `json:"type" validate:"required"`
		Date           time.Time `json:"date" validate:"required"`
		StartDate      time.Time `json:"startDate" validate:"required"`
		EndDate        time.Time `json:"endDate" validate:"required"`
		StartTime      time.Time `json:"startTime" validate:"required"`
		EndTime        time.Time `json:"endTime" validate:"required"`
		JobID          int64     `json:"jobID" validate:"required"`
		RequiredSkills string    `json:"requiredSkills"`
		Description    string    `json:"description"`
		MaxEmployees   int32     `json:"maxEmployees" validate:"required"`
		BreakDuration  int32     `json:"breakDuration"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	shift, err := h.shifts.Create(shifts.CreateInput{
		Title:          req.Title,
		Type:           req.Type,
		Date:           req.Date,
		StartDate:      req.StartDate,
		EndDate:        req.EndDate,
		StartTime:      req.StartTime,
		EndTime:        req.EndTime,
		JobID:          req.JobID,
		RequiredSkills: req.RequiredSkills,
		Description:    req.Description,
		MaxEmployees:   req.MaxEmployees,
		BreakDuration:  req.BreakDuration,
	})
	if err != nil {
		h.serviceError(w, r, err)
		return
	}

	h.successResponse(w, r, "shift created", toDetailedShiftResponse(shift))
}

func (h *Handler) ListShifts(w http.ResponseWriter, r *http.Request) {
	filters := domain.ShiftFilters{
		Type:   r.URL.Query().Get("type"),
		Status: domain.ShiftStatus(r.URL.Query().Get("status")),
	}

	if dateParam := r.URL.Query().Get("date"); dateParam != "" {
		date, err := time.Parse("2006-01-02", dateParam)
		if err != nil {
			h.errorResponse(w, r, "invalid date filter")
			return
		}
		filters.Date = &date
	}
	if jobIDParam := r.URL.Query().Get("jobID"); jobIDParam != "" {
		jobID, err := strconv.ParseInt(jobIDParam, 10, 64)
		if err != nil {
			h.errorResponse(w, r, "invalid job id filter")
			return
		}
		filters.JobID = jobID
	}

	list, err := h.shifts.List(filters)
	if err != nil {
		h.serviceError(w, r, err)
		return
	}

	h.successResponse(w, r, "shifts retrieved", toShiftResponses(list))
}

func (h *Handler) GetAvailableShifts(w http.ResponseWriter, r *http.Request) {
	var date, startAfter *time.Time

	if dateParam := r.URL.Query().Get("date"); dateParam != "" {
		d, err := time.Parse("2006-01-02", dateParam)
		if err != nil {
			h.errorResponse(w, r, "invalid date filter")
			return
		}
		date = &d
	}
	if timeParam := r.URL.Query().Get("time"); timeParam != "" {
		t, err := time.Parse(time.RFC3339, timeParam)
		if err != nil {
			h.errorResponse(w, r, "invalid time filter")
			return
		}
		startAfter = &t
	}

	list, err := h.shifts.Available(date, startAfter)
	if err != nil {
		h.serviceError(w, r, err)
		return
	}

	h.successResponse(w, r, "available shifts retrieved", toShiftResponses(list))
}

func (h *Handler) GetTodayShifts(w http.ResponseWriter, r *http.Request) {
	list, err := h.shifts.TodayShifts()
	if err != nil {
		h.serviceError(w, r, err)
		return
	}

	h.successResponse(w, r, "today's shifts retrieved", toShiftResponses(list))
}

func (h *Handler) GetUserShifts(w http.ResponseWriter, r *http.Request) {
	myInfo := r.Context().Value(MyInfoCtx).(*domain.User)

	list, err := h.shifts.UserShifts(myInfo.ID)
	if err != nil {
		h.serviceError(w, r, err)
		return
	}

	h.successResponse(w, r, "your shifts retrieved", toShiftResponses(list))
}

func (h *Handler) GetClockInStatus(w http.ResponseWriter, r *http.Request) {
	myInfo := r.Context().Value(MyInfoCtx).(*domain.User)

	status, err := h.shifts.CurrentClockInStatus(myInfo.ID)
	if err != nil {
		h.serviceError(w, r, err)
		return
	}

	h.successResponse(w, r, "clock-in status retrieved", status)
}

func (h *Handler) GetTodayTimeSummary(w http.ResponseWriter, r *http.Request) {
	myInfo := r.Context().Value(MyInfoCtx).(*domain.User)

	summary, err := h.shifts.TodayTimeSummary(myInfo.ID)
	if err != nil {
		h.serviceError(w, r, err)
		return
	}

	h.successResponse(w, r, "time summary retrieved", summary)
}

func (h *Handler) GetRecentTimeEntries(w http.ResponseWriter, r *http.Request) {
	myInfo := r.Context().Value(MyInfoCtx).(*domain.User)

	limit := 0
	if limitParam := r.URL.Query().Get("limit"); limitParam != "" {
		n, err := strconv.Atoi(limitParam)
		if err != nil {
			h.errorResponse(w, r, "invalid limit")
			return
		}
		limit = n
	}

	entries, err := h.shifts.RecentTimeEntries(myInfo.ID, limit)
	if err != nil {
		h.serviceError(w, r, err)
		return
	}

	h.successResponse(w, r, "recent entries retrieved", entries)
}

func (h *Handler) PickupShift(w http.ResponseWriter, r *http.Request) {
	myInfo := r.Context().Value(MyInfoCtx).(*domain.User)
	shiftID := r.Context().Value(ShiftIDCtx).(int64)

	shift, err := h.shifts.Pickup(shiftID, myInfo.ID)
	if err != nil {
		h.serviceError(w, r, err)
		return
	}

	h.publishShiftPickupMail(myInfo, shift)

	h.successResponse(w, r, "shift picked up", toShiftResponse(shift))
}

// publishShiftPickupMail queues a confirmation email. Pickup already
// succeeded at this point, so a queueing failure is only logged.
func (h *Handler) publishShiftPickupMail(user *domain.User, shift *domain.Shift) {
	mailMessage := domain.MailMessage{
		Type: "shift_pickup",
		To:   user.Email,
		Data: domain.ShiftPickupMailData{
			FullName:   user.FullName,
			ShiftTitle: shift.Title,
			Date:       shift.Date,
			StartTime:  shift.StartTime,
			EndTime:    shift.EndTime,
		},
	}

	mailData, err := json.Marshal(mailMessage)
	if err != nil {
		slog.Error("failed to serialize shift pickup mail", "error", err)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(h.config.RabbitMQ.PublishTimeout)*time.Second)
	defer cancel()

	if err := h.mailChannel.PublishWithContext(
		ctx,
		"",
		"email_queue",
		true,
		false,
		amqp.Publishing{
			ContentType: "application/json",
			Body:        mailData,
		},
	); err != nil {
		slog.Error("failed to publish shift pickup mail", "error", err)
	}
}

func (h *Handler) DropShift(w http.ResponseWriter, r *http.Request) {
	myInfo := r.Context().Value(MyInfoCtx).(*domain.User)
	shiftID := r.Context().Value(ShiftIDCtx).(int64)

	shift, err := h.shifts.Drop(shiftID, myInfo.ID)
	if err != nil {
		h.serviceError(w, r, err)
		return
	}

	h.successResponse(w, r, "shift dropped", toShiftResponse(shift))
}

func (h *Handler) ClockIn(w http.ResponseWriter, r *http.Request) {
	myInfo := r.Context().Value(MyInfoCtx).(*domain.User)
	shiftID := r.Context().Value(ShiftIDCtx).(int64)

	var req struct {
		Lat float64 `json:"lat" validate:"latitude"`
		Lon float64 `json:"lon" validate:"longitude"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	shift, err := h.shifts.ClockIn(shiftID, myInfo.ID, geo.Point{Lat: req.Lat, Lon: req.Lon})
	if err != nil {
		h.serviceError(w, r, err)
		return
	}

	h.successResponse(w, r, "clocked in", toShiftResponse(shift))
}

func (h *Handler) ClockOut(w http.ResponseWriter, r *http.Request) {
	myInfo := r.Context().Value(MyInfoCtx).(*domain.User)
	shiftID := r.Context().Value(ShiftIDCtx).(int64)

	var req struct {
		Note string `json:"note"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	shift, err := h.shifts.ClockOut(shiftID, myInfo.ID, req.Note)
	if err != nil {
		h.serviceError(w, r, err)
		return
	}

	h.successResponse(w, r, "clocked out", toShiftResponse(shift))
}

func (h *Handler) RequestClockInChange(w http.ResponseWriter, r *http.Request) {
	myInfo := r.Context().Value(MyInfoCtx).(*domain.User)
	shiftID := r.Context().Value(ShiftIDCtx).(int64)

	var req struct {
		RequestedClockIn time.Time `json:"requestedClockIn" validate:"required"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	shift, err := h.shifts.RequestClockInChange(shiftID, myInfo.ID, req.RequestedClockIn)
	if err != nil {
		h.serviceError(w, r, err)
		return
	}

	h.successResponse(w, r, "clock-in change requested", shift)
}

func (h *Handler) ResolveClockInChange(w http.ResponseWriter, r *http.Request) {
	shiftID := r.Context().Value(ShiftIDCtx).(int64)

	var req struct {
		UserID  int64 `json:"userID" validate:"required"`
		Approve *bool `json:"approve" validate:"required"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	shift, err := h.shifts.ResolveClockInChange(shiftID, req.UserID, *req.Approve)
	if err != nil {
		h.serviceError(w, r, err)
		return
	}

	msg := "clock-in change rejected"
	if *req.Approve {
		msg = "clock-in change approved"
	}
	h.successResponse(w, r, msg, shift)
}
