package collector

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/Tap30/beacon-go/payload"
	"github.com/google/uuid"
	"golang.org/x/time/rate"
)

type Config struct {
	APIKey       string
	APIKeyHeader string
	ProjectID    string
	MaxBodyBytes int64
	// RateLimit caps accepted batches per second. Zero disables limiting.
	RateLimit float64
	Burst     int
}

const defaultMaxBodyBytes = 512 << 10

// Handler accepts message batches posted by mobile clients.
type Handler struct {
	config  Config
	schema  *Schema
	sink    Sink
	metrics *Metrics
	logger  *slog.Logger
	limiter *rate.Limiter
	now     func() time.Time
	newID   func() string
}

func NewHandler(cfg Config, schema *Schema, sink Sink, metrics *Metrics, logger *slog.Logger) *Handler {
	if cfg.APIKeyHeader == "" {
		cfg.APIKeyHeader = "X-API-Key"
	}
	if cfg.MaxBodyBytes <= 0 {
		cfg.MaxBodyBytes = defaultMaxBodyBytes
	}
	if logger == nil {
		logger = slog.Default()
	}
	var limiter *rate.Limiter
	if cfg.RateLimit > 0 {
		if cfg.Burst <= 0 {
			cfg.Burst = 1
		}
		limiter = rate.NewLimiter(rate.Limit(cfg.RateLimit), cfg.Burst)
	}
	return &Handler{
		limiter: limiter,
		config:  cfg,
		schema:  schema,
		sink:    sink,
		metrics: metrics,
		logger:  logger.With("component", "collector"),
		now:     time.Now,
		newID:   uuid.NewString,
	}
}

type batchRequest struct {
	Batch  []json.RawMessage `json:"batch"`
	SentAt *payload.Time     `json:"sentAt"`
}

type batchResponse struct {
	Success  bool     `json:"success"`
	Accepted int      `json:"accepted"`
	Rejected int      `json:"rejected"`
	Errors   []string `json:"errors,omitempty"`
}

// ServeBatch handles POST /v1/batch. Invalid messages are rejected one by
// one; the rest of the batch is still accepted.
func (h *Handler) ServeBatch(w http.ResponseWriter, r *http.Request) {
	receivedAt := payload.TimeFrom(h.now())

	if r.Header.Get(h.config.APIKeyHeader) != h.config.APIKey {
		h.metrics.Rejected.WithLabelValues("unauthorized").Inc()
		writeError(w, http.StatusUnauthorized, "invalid api key")
		return
	}

	if h.limiter != nil && !h.limiter.Allow() {
		h.metrics.Rejected.WithLabelValues("throttled").Inc()
		w.Header().Set("Retry-After", "1")
		writeError(w, http.StatusTooManyRequests, "rate limit exceeded")
		return
	}

	var req batchRequest
	body := http.MaxBytesReader(w, r.Body, h.config.MaxBodyBytes)
	if err := json.NewDecoder(body).Decode(&req); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, http.StatusRequestEntityTooLarge, "request body too large")
			return
		}
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if len(req.Batch) == 0 {
		writeError(w, http.StatusBadRequest, "batch is empty")
		return
	}

	resp := batchResponse{}
	records := make([]Record, 0, len(req.Batch))
	for i, raw := range req.Batch {
		rec, reason, err := h.accept(raw, req.SentAt, receivedAt)
		if err != nil {
			h.metrics.Rejected.WithLabelValues(reason).Inc()
			h.logger.Warn("rejected message", "index", i, "reason", reason, "error", err)
			resp.Errors = append(resp.Errors, err.Error())
			resp.Rejected++
			continue
		}
		records = append(records, rec)
	}

	if len(records) > 0 {
		if err := h.sink.Write(r.Context(), records); err != nil {
			h.logger.Error("failed to write records", "count", len(records), "error", err)
			writeError(w, http.StatusInternalServerError, "failed to store messages")
			return
		}
		for _, rec := range records {
			h.metrics.Accepted.WithLabelValues(rec.Message.Type().String()).Inc()
		}
	}

	resp.Accepted = len(records)
	resp.Success = resp.Rejected == 0
	h.logger.Debug("batch received", "accepted", resp.Accepted, "rejected", resp.Rejected)
	writeJSON(w, http.StatusOK, resp)
}

// accept validates one message and stamps the server fields. A message
// without its own sentAt falls back to the batch sentAt.
func (h *Handler) accept(raw json.RawMessage, batchSentAt *payload.Time, receivedAt payload.Time) (Record, string, error) {
	var doc any
	if err := json.Unmarshal(raw, &doc); err != nil {
		return Record{}, "decode", err
	}
	if err := h.schema.Validate(doc); err != nil {
		return Record{}, "schema", err
	}
	m, err := payload.Decode(raw)
	if err != nil {
		return Record{}, "decode", err
	}

	sentAt, ok := m.SentAt()
	if !ok && batchSentAt != nil {
		sentAt = *batchSentAt
	}
	if !sentAt.IsZero() {
		skew := Skew(sentAt, receivedAt)
		if skew < 0 {
			skew = -skew
		}
		h.metrics.Skew.Observe(skew.Seconds())
	}

	return Record{
		MessageID:         h.newID(),
		ProjectID:         h.config.ProjectID,
		ReceivedAt:        receivedAt,
		Version:           Version,
		Timestamp:         CorrectTimestamp(m.Timestamp(), sentAt, receivedAt),
		OriginalTimestamp: m.Timestamp(),
		Message:           m,
	}, "", nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
