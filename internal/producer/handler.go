// Package producer implements the HTTP ingress that turns client
// requests into published domain events.
package producer

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/eduboost/eventpipe/pkg/event"
	"go.uber.org/zap"
)

// Publisher sends one message to a topic.
type Publisher interface {
	Publish(ctx context.Context, topic, key string, value []byte) error
}

// StatsSource aggregates stored event counts by type.
type StatsSource interface {
	EventStats(ctx context.Context) ([]EventStat, error)
}

type Handler struct {
	pub      Publisher
	stats    StatsSource
	brokerUp func() bool
	log      *zap.Logger
	now      func() time.Time
}

func NewHandler(pub Publisher, stats StatsSource, brokerUp func() bool, log *zap.Logger) *Handler {
	return &Handler{
		pub:      pub,
		stats:    stats,
		brokerUp: brokerUp,
		log:      log.With(zap.String("component", "http-handler")),
		now:      time.Now,
	}
}

// Register binds one endpoint per event type plus health and stats.
func (h *Handler) Register(mux *http.ServeMux) {
	mux.HandleFunc("POST /events/task-completed", h.publishEvent(event.TypeTaskCompleted))
	mux.HandleFunc("POST /events/task-uncompleted", h.publishEvent(event.TypeTaskUncompleted))
	mux.HandleFunc("POST /events/achievement-unlocked", h.publishEvent(event.TypeAchievementUnlocked))
	mux.HandleFunc("POST /events/level-up", h.publishEvent(event.TypeLevelUp))
	mux.HandleFunc("POST /events/user-login", h.publishEvent(event.TypeUserLogin))
	mux.HandleFunc("GET /health", h.health)
	mux.HandleFunc("GET /stats", h.eventStats)
}

type publishResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
}

// publishEvent decodes the request body loosely and forwards payload
// fields verbatim. Only the presence of userId is enforced; clients own
// their payload shape. Publish failures are reported in the body, the
// transport itself stays 200.
func (h *Handler) publishEvent(t event.Type) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var fields map[string]any
		if err := json.NewDecoder(r.Body).Decode(&fields); err != nil {
			writeJSON(w, http.StatusOK, publishResponse{Success: false, Error: "invalid JSON body"})
			return
		}

		userID, _ := fields["userId"].(string)
		if userID == "" {
			writeJSON(w, http.StatusOK, publishResponse{Success: false, Error: "userId is required"})
			return
		}

		value, err := event.Envelope(t, userID, fields, h.now())
		if err != nil {
			writeJSON(w, http.StatusOK, publishResponse{Success: false, Error: err.Error()})
			return
		}

		if err := h.pub.Publish(r.Context(), t.Topic(), userID, value); err != nil {
			h.log.Error("failed to publish event",
				zap.String("event_type", string(t)),
				zap.String("user_id", userID),
				zap.Error(err))
			writeJSON(w, http.StatusOK, publishResponse{Success: false, Error: err.Error()})
			return
		}

		h.log.Info("event published",
			zap.String("event_type", string(t)),
			zap.String("topic", t.Topic()),
			zap.String("user_id", userID))
		writeJSON(w, http.StatusOK, publishResponse{Success: true})
	}
}

func (h *Handler) health(w http.ResponseWriter, r *http.Request) {
	broker := "disconnected"
	if h.brokerUp() {
		broker = "connected"
	}
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "healthy",
		"service": "event-producer",
		"kafka":   broker,
	})
}

func (h *Handler) eventStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.stats.EventStats(r.Context())
	if err != nil {
		h.log.Error("failed to load event stats", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"events": stats})
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
