// Package httpapi serves the eligibility report read-only over HTTP.
package httpapi

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/alexanderramin/muster/internal/app"
	"github.com/alexanderramin/muster/internal/metrics"
	"github.com/alexanderramin/muster/internal/repository"
	"github.com/alexanderramin/muster/internal/service"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

const dateLayout = "2006-01-02"

type Handler struct {
	logger   *slog.Logger
	reports  app.EligibilityUseCase
	recorder *metrics.Recorder
}

// New builds a Handler. recorder may be nil, in which case /metrics is not mounted.
func New(reports app.EligibilityUseCase, logger *slog.Logger, recorder *metrics.Recorder) *Handler {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Handler{logger: logger, reports: reports, recorder: recorder}
}

func (h *Handler) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(h.logRequests)
	r.Use(middleware.Timeout(30 * time.Second))

	r.Get("/healthz", h.handleHealth)
	r.Get("/eligibility", h.handleEligibility)
	if h.recorder != nil {
		r.Method(http.MethodGet, "/metrics", h.recorder.Handler())
	}
	return r
}

func (h *Handler) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) handleEligibility(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	req, err := parseEligibilityRequest(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	resp, err := h.reports.Report(ctx, req)
	if err != nil {
		status := statusFor(err)
		if status == http.StatusInternalServerError {
			h.logger.ErrorContext(ctx, "eligibility report failed",
				"request_id", middleware.GetReqID(ctx),
				"error", err.Error(),
			)
			writeError(w, status, "failed to build report")
			return
		}
		writeError(w, status, err.Error())
		return
	}

	h.recorder.RecordReport(resp)
	writeJSON(w, http.StatusOK, resp)
}

func parseEligibilityRequest(r *http.Request) (app.EligibilityRequest, error) {
	q := r.URL.Query()
	req := app.EligibilityRequest{
		MemberKey: q.Get("member"),
		Rank:      q.Get("rank"),
	}

	var err error
	if req.OfficersOnly, err = parseBool(q.Get("officers"), "officers"); err != nil {
		return req, err
	}
	if req.EligibleOnly, err = parseBool(q.Get("eligible"), "eligible"); err != nil {
		return req, err
	}
	if raw := q.Get("now"); raw != "" {
		now, err := time.Parse(dateLayout, raw)
		if err != nil {
			return req, errors.New("now: expected YYYY-MM-DD")
		}
		req.Now = &now
	}
	return req, nil
}

func parseBool(raw, name string) (bool, error) {
	if raw == "" {
		return false, nil
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return false, errors.New(name + ": expected true or false")
	}
	return v, nil
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, service.ErrUnknownRank):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func (h *Handler) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		h.logger.InfoContext(r.Context(), "http_request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"duration_ms", time.Since(start).Milliseconds(),
			"request_id", middleware.GetReqID(r.Context()),
		)
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
