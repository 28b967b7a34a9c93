package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/gyeongjo/reminderhub/internal/api/handler"
	apimw "github.com/gyeongjo/reminderhub/internal/api/middleware"
	"github.com/gyeongjo/reminderhub/internal/queue"
	"github.com/gyeongjo/reminderhub/internal/scheduler"
	"github.com/gyeongjo/reminderhub/internal/service"
	"github.com/gyeongjo/reminderhub/internal/taskqueue"
)

// NewRouter wires the chi router, attaches all middleware, and registers
// every route. It is the single source of truth for the HTTP surface area.
func NewRouter(
	orch *scheduler.Orchestrator,
	inbox *service.InboxService,
	dq *queue.DispatchQueue,
	store taskqueue.DeferredQueue,
	reg prometheus.Gatherer,
	logger *zap.Logger,
) http.Handler {
	r := chi.NewRouter()

	// --- global middleware (applied to every route) ---
	r.Use(chimw.Recoverer)          // recover panics, return 500
	r.Use(chimw.RealIP)             // trust X-Forwarded-For / X-Real-IP
	r.Use(chimw.RequestSize(1<<20)) // 1 MB max request body
	r.Use(apimw.CorrelationID)      // X-Correlation-ID inject / echo
	r.Use(apimw.RequestLogger(logger))

	// --- handler instances ---
	rh := handler.NewReminderHandler(orch, logger)
	ih := handler.NewInboxHandler(inbox, logger)
	mh := handler.NewMetricsHandler(dq, store)
	hh := handler.NewHealthHandler()

	// --- routes ---
	r.Get("/health", hh.Health)

	// Raw Prometheus scrape endpoint (for Prometheus server / Grafana)
	r.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))

	r.Route("/api/v1", func(r chi.Router) {
		// Reminder scheduling, called by the event-management service.
		r.Post("/events/{id}/reminders", rh.Schedule)

		// Inbox — note: the literal segments must be registered before
		// /{id} routes so chi does not treat them as IDs.
		r.Get("/notifications/unread-count", ih.UnreadCount)
		r.Patch("/notifications/read-all", ih.MarkAllRead)
		r.Get("/notifications", ih.List)
		r.Patch("/notifications/{id}/read", ih.MarkRead)
		r.Delete("/notifications/{id}", ih.Delete)

		// JSON metrics snapshot
		r.Get("/metrics", mh.GetMetrics)
	})

	return r
}
