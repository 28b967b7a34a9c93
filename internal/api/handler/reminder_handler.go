package handler

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	apimw "github.com/gyeongjo/reminderhub/internal/api/middleware"
	"github.com/gyeongjo/reminderhub/internal/scheduler"
)

// ReminderHandler exposes reminder scheduling to the event-management
// service. Called synchronously right after an event is created.
type ReminderHandler struct {
	orch   *scheduler.Orchestrator
	logger *zap.Logger
}

func NewReminderHandler(orch *scheduler.Orchestrator, logger *zap.Logger) *ReminderHandler {
	return &ReminderHandler{orch: orch, logger: logger}
}

type scheduleRemindersRequest struct {
	StartTime time.Time `json:"start_time"`
}

// Schedule handles POST /api/v1/events/{id}/reminders
//
// @Summary     Schedule reminder tasks for an event
// @Tags        reminders
// @Accept      json
// @Produce     json
// @Param       id    path      int                       true  "Event ID"
// @Param       body  body      scheduleRemindersRequest  true  "Event start time (RFC3339)"
// @Success     202   {object}  map[string]any
// @Failure     400   {object}  map[string]string
// @Router      /api/v1/events/{id}/reminders [post]
func (h *ReminderHandler) Schedule(w http.ResponseWriter, r *http.Request) {
	eventID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid event id")
		return
	}

	var req scheduleRemindersRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if req.StartTime.IsZero() {
		respondError(w, http.StatusBadRequest, "start_time is required")
		return
	}

	handles, err := h.orch.ScheduleReminders(r.Context(), eventID, req.StartTime)
	if err != nil {
		h.logger.Warn("schedule reminders failed",
			zap.String("correlation_id", apimw.GetCorrelationID(r.Context())),
			zap.Int64("event_id", eventID),
			zap.Error(err),
		)
		mapError(w, err)
		return
	}

	respondJSON(w, http.StatusAccepted, map[string]any{
		"event_id": eventID,
		"tasks":    handles,
	})
}
