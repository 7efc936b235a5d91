package http

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/dmehra2102/Payment-Reconciliation-System/internal/reconciliation/application"
	"github.com/dmehra2102/Payment-Reconciliation-System/internal/reconciliation/domain"
	"github.com/go-chi/chi/v5"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
)

// DeliveryDeduper short-circuits exact redeliveries; pkg/idempotency provides
// the redis-backed implementation.
type DeliveryDeduper interface {
	EventKey(entity, id, status, errorCode string) string
	Seen(ctx context.Context, key string) (bool, error)
	Forget(ctx context.Context, key string) error
}

// Handler receives processor callbacks after the HMAC middleware has
// authenticated them. It always answers success once an event is classified
// and handled; only store failures surface as 5xx so the processor retries.
type Handler struct {
	log     *slog.Logger
	service *application.Service
	idem    DeliveryDeduper
	tracer  trace.Tracer
}

func NewHandler(log *slog.Logger, service *application.Service, idem DeliveryDeduper) *Handler {
	return &Handler{
		log:     log,
		service: service,
		idem:    idem,
		tracer:  otel.Tracer("reconciliation-http"),
	}
}

type webhookReq struct {
	Entity    string          `json:"entity"`
	ID        string          `json:"id"`
	Status    string          `json:"status"`
	ErrorCode string          `json:"errorCode"`
	Info      json.RawMessage `json:"info"`
}

func (h *Handler) Routes() http.Handler {
	r := chi.NewRouter()
	r.Post("/webhooks/aptpay", h.handleWebhook)
	return r
}

func (h *Handler) handleWebhook(w http.ResponseWriter, r *http.Request) {
	ctx, span := h.tracer.Start(r.Context(), "HandleProcessorWebhook")
	defer span.End()

	var req webhookReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid body", http.StatusBadRequest)
		return
	}

	ev := domain.ProcessorEvent{
		Entity:    domain.EntityKind(req.Entity),
		ID:        req.ID,
		Processor: domain.ProcessorAptpay,
		Status:    req.Status,
		ErrorCode: req.ErrorCode,
		Info:      infoString(req.Info),
	}

	if err := ev.Validate(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	// Exact redeliveries within the TTL are short-circuited; a redis failure
	// means we simply process the event, the guarded update keeps that safe.
	key := h.idem.EventKey(req.Entity, req.ID, req.Status, req.ErrorCode)
	seen, err := h.idem.Seen(ctx, key)
	if err != nil {
		h.log.Error("idempotency check failed", "err", err)
	} else if seen {
		h.log.Info("duplicate delivery skipped", "entity", req.Entity, "id", req.ID)
		writeHandled(w)
		return
	}

	if err := h.service.Handle(ctx, ev); err != nil {
		switch {
		case errors.Is(err, domain.ErrMissingID),
			errors.Is(err, domain.ErrMissingStatus),
			errors.Is(err, domain.ErrBadEntity):
			http.Error(w, err.Error(), http.StatusBadRequest)
		default:
			// Release the dedup claim so the processor's retry is not skipped.
			if derr := h.idem.Forget(ctx, key); derr != nil {
				h.log.Error("releasing dedup key failed", "key", key, "err", derr)
			}
			h.log.Error("reconciliation failed", "entity", req.Entity, "id", req.ID, "err", err)
			http.Error(w, "reconciliation failed", http.StatusInternalServerError)
		}
		return
	}

	writeHandled(w)
}

func writeHandled(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(map[string]string{"status": "handled"})
}

// infoString tolerates both free-text and structured info payloads.
func infoString(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	return string(raw)
}
