package sink

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
)

// Handler is the HTTP surface of the sink. It speaks the SDK's wire format:
// JSON bodies in, a {"status": ...} envelope out.
type Handler struct {
	store   RecordStore
	logger  *slog.Logger
	metrics *Metrics
	now     func() time.Time
}

func NewHandler(store RecordStore, logger *slog.Logger, metrics *Metrics) *Handler {
	return &Handler{
		store:   store,
		logger:  logger,
		metrics: metrics,
		now:     time.Now,
	}
}

// Router wires the sink endpoints.
func (h *Handler) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.Timeout(30 * time.Second))
	r.Use(h.requestLogger)

	r.Post("/api/v1/log-purchase", h.handleLogPurchase)
	r.Post("/api/v1/log-download", h.handleLogDownload)
	r.Get("/api/v1/records", h.handleListRecords)
	r.Get("/healthz", h.handleHealth)
	return r
}

func (h *Handler) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := chimiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		h.logger.InfoContext(r.Context(), "request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"duration_ms", time.Since(start).Milliseconds())
	})
}

func (h *Handler) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeEnvelope(w, http.StatusOK, "ok", "")
}

func (h *Handler) handleLogPurchase(w http.ResponseWriter, r *http.Request) {
	var record PurchaseRecord
	if err := json.NewDecoder(r.Body).Decode(&record); err != nil {
		h.reject(w, r, "purchase", "invalid JSON body")
		return
	}
	if msg := record.validate(); msg != "" {
		h.reject(w, r, "purchase", msg)
		return
	}

	record.ReceivedAt = h.now().UTC()
	if err := h.store.SavePurchase(r.Context(), record); err != nil {
		h.logger.ErrorContext(r.Context(), "saving purchase event failed", "error", err)
		writeEnvelope(w, http.StatusInternalServerError, "error", "storage failure")
		return
	}

	h.metrics.EventsReceived.WithLabelValues("purchase").Inc()
	h.logger.InfoContext(r.Context(), "purchase event received",
		"app_name", record.AppName, "kind", record.Kind, "is_trial", record.IsTrial)
	writeEnvelope(w, http.StatusOK, "ok", "")
}

func (h *Handler) handleLogDownload(w http.ResponseWriter, r *http.Request) {
	var record DownloadRecord
	if err := json.NewDecoder(r.Body).Decode(&record); err != nil {
		h.reject(w, r, "download", "invalid JSON body")
		return
	}
	if msg := record.validate(); msg != "" {
		h.reject(w, r, "download", msg)
		return
	}

	record.ReceivedAt = h.now().UTC()
	if err := h.store.SaveDownload(r.Context(), record); err != nil {
		h.logger.ErrorContext(r.Context(), "saving download event failed", "error", err)
		writeEnvelope(w, http.StatusInternalServerError, "error", "storage failure")
		return
	}

	h.metrics.EventsReceived.WithLabelValues("download").Inc()
	h.logger.InfoContext(r.Context(), "download event received",
		"app_name", record.AppName, "user_id", record.UserID)
	writeEnvelope(w, http.StatusOK, "ok", "")
}

func (h *Handler) handleListRecords(w http.ResponseWriter, r *http.Request) {
	purchases, err := h.store.Purchases(r.Context())
	if err != nil {
		writeEnvelope(w, http.StatusInternalServerError, "error", "storage failure")
		return
	}
	downloads, err := h.store.Downloads(r.Context())
	if err != nil {
		writeEnvelope(w, http.StatusInternalServerError, "error", "storage failure")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{
		"purchases": purchases,
		"downloads": downloads,
	})
}

func (h *Handler) reject(w http.ResponseWriter, r *http.Request, eventType, message string) {
	h.metrics.EventsRejected.WithLabelValues(eventType).Inc()
	h.logger.WarnContext(r.Context(), "rejected event", "type", eventType, "reason", message)
	writeEnvelope(w, http.StatusBadRequest, "error", message)
}

func writeEnvelope(w http.ResponseWriter, status int, state, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	body := map[string]string{"status": state}
	if message != "" {
		body["message"] = message
	}
	_ = json.NewEncoder(w).Encode(body)
}
