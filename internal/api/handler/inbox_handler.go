package handler

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/gyeongjo/reminderhub/internal/domain"
	"github.com/gyeongjo/reminderhub/internal/service"
)

// InboxHandler serves the notification inbox endpoints consumed by the
// mobile client through the API gateway. The gateway authenticates and
// passes the resolved user as the user_id query parameter.
type InboxHandler struct {
	svc    *service.InboxService
	logger *zap.Logger
}

func NewInboxHandler(svc *service.InboxService, logger *zap.Logger) *InboxHandler {
	return &InboxHandler{svc: svc, logger: logger}
}

// List handles GET /api/v1/notifications
//
// @Summary  List a user's notifications, newest first
// @Tags     notifications
// @Produce  json
// @Param    user_id  query     int   true   "User ID"
// @Param    unread   query     bool  false  "Only unread notifications"
// @Param    page     query     int   false  "Page number (default 1)"
// @Param    limit    query     int   false  "Items per page (default 20, max 100)"
// @Success  200      {object}  map[string]any
// @Router   /api/v1/notifications [get]
func (h *InboxHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := parseUserID(w, r)
	if !ok {
		return
	}

	filter := parseListFilter(r, userID)
	notifications, total, err := h.svc.List(r.Context(), filter)
	if err != nil {
		h.logger.Error("list notifications failed",
			zap.Int64("user_id", userID), zap.Error(err))
		respondError(w, http.StatusInternalServerError, "failed to list notifications")
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"data":  notifications,
		"total": total,
		"page":  filter.Page,
		"limit": filter.Limit,
	})
}

// UnreadCount handles GET /api/v1/notifications/unread-count
//
// @Summary  Unread notification count for the inbox badge
// @Tags     notifications
// @Produce  json
// @Param    user_id  query     int  true  "User ID"
// @Success  200      {object}  map[string]int
// @Router   /api/v1/notifications/unread-count [get]
func (h *InboxHandler) UnreadCount(w http.ResponseWriter, r *http.Request) {
	userID, ok := parseUserID(w, r)
	if !ok {
		return
	}

	count, err := h.svc.UnreadCount(r.Context(), userID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to count notifications")
		return
	}
	respondJSON(w, http.StatusOK, map[string]int{"unread": count})
}

// MarkRead handles PATCH /api/v1/notifications/{id}/read
//
// @Summary  Mark one notification as read
// @Tags     notifications
// @Param    id       path   string  true  "Notification UUID"
// @Param    user_id  query  int     true  "User ID"
// @Success  204
// @Failure  404  {object}  map[string]string
// @Router   /api/v1/notifications/{id}/read [patch]
func (h *InboxHandler) MarkRead(w http.ResponseWriter, r *http.Request) {
	userID, ok := parseUserID(w, r)
	if !ok {
		return
	}

	id := chi.URLParam(r, "id")
	if err := h.svc.MarkRead(r.Context(), id, userID); err != nil {
		mapError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// MarkAllRead handles PATCH /api/v1/notifications/read-all
//
// @Summary  Mark all of a user's notifications as read
// @Tags     notifications
// @Produce  json
// @Param    user_id  query     int  true  "User ID"
// @Success  200      {object}  map[string]int
// @Router   /api/v1/notifications/read-all [patch]
func (h *InboxHandler) MarkAllRead(w http.ResponseWriter, r *http.Request) {
	userID, ok := parseUserID(w, r)
	if !ok {
		return
	}

	updated, err := h.svc.MarkAllRead(r.Context(), userID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to mark notifications read")
		return
	}
	respondJSON(w, http.StatusOK, map[string]int{"updated": updated})
}

// Delete handles DELETE /api/v1/notifications/{id}
//
// @Summary  Delete one of the user's notifications ahead of its retention cleanup
// @Tags     notifications
// @Param    id       path   string  true  "Notification UUID"
// @Param    user_id  query  int     true  "User ID"
// @Success  204
// @Failure  404  {object}  map[string]string
// @Router   /api/v1/notifications/{id} [delete]
func (h *InboxHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, ok := parseUserID(w, r)
	if !ok {
		return
	}

	id := chi.URLParam(r, "id")
	if err := h.svc.Delete(r.Context(), id, userID); err != nil {
		mapError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func parseUserID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	userID, err := strconv.ParseInt(r.URL.Query().Get("user_id"), 10, 64)
	if err != nil || userID <= 0 {
		respondError(w, http.StatusBadRequest, "user_id is required")
		return 0, false
	}
	return userID, true
}

func parseListFilter(r *http.Request, userID int64) domain.ListFilter {
	q := r.URL.Query()
	filter := domain.ListFilter{UserID: userID, Page: 1, Limit: 20}

	if p, err := strconv.Atoi(q.Get("page")); err == nil && p > 0 {
		filter.Page = p
	}
	if l, err := strconv.Atoi(q.Get("limit")); err == nil && l > 0 && l <= 100 {
		filter.Limit = l
	}
	if u, err := strconv.ParseBool(q.Get("unread")); err == nil {
		filter.UnreadOnly = u
	}
	return filter
}
