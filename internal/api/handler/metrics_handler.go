package handler

import (
	"net/http"

	"github.com/gyeongjo/reminderhub/internal/queue"
	"github.com/gyeongjo/reminderhub/internal/taskqueue"
)

// MetricsHandler serves a human-readable JSON queue snapshot.
// Raw Prometheus metrics (counters, histograms) are available at /metrics
// via promhttp.Handler and are separate from this endpoint.
type MetricsHandler struct {
	dq    *queue.DispatchQueue
	store taskqueue.DeferredQueue
}

func NewMetricsHandler(dq *queue.DispatchQueue, store taskqueue.DeferredQueue) *MetricsHandler {
	return &MetricsHandler{dq: dq, store: store}
}

// GetMetrics handles GET /api/v1/metrics
//
// @Summary  Real-time queue depth snapshot
// @Tags     metrics
// @Produce  json
// @Success  200  {object}  map[string]any
// @Router   /api/v1/metrics [get]
func (h *MetricsHandler) GetMetrics(w http.ResponseWriter, r *http.Request) {
	reminders, cleanups := h.dq.Depths()

	pending, err := h.store.PendingCount(r.Context())
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to read pending count")
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"dispatch_depth": map[string]int{
			"reminders": reminders,
			"cleanups":  cleanups,
			"total":     reminders + cleanups,
		},
		"pending_tasks": pending,
	})
}
