package producer

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakePublisher struct {
	err    error
	topic  string
	key    string
	value  []byte
	called int
}

func (f *fakePublisher) Publish(ctx context.Context, topic, key string, value []byte) error {
	f.called++
	f.topic = topic
	f.key = key
	f.value = value
	return f.err
}

type fakeStats struct {
	stats []EventStat
	err   error
}

func (f *fakeStats) EventStats(ctx context.Context) ([]EventStat, error) {
	return f.stats, f.err
}

func newTestHandler(pub *fakePublisher, stats *fakeStats, brokerUp bool) *http.ServeMux {
	h := NewHandler(pub, stats, func() bool { return brokerUp }, zap.NewNop())
	h.now = func() time.Time { return time.Date(2026, 8, 31, 10, 0, 0, 0, time.UTC) }

	mux := http.NewServeMux()
	h.Register(mux)
	return mux
}

func doPost(t *testing.T, mux *http.ServeMux, path, body string) (*httptest.ResponseRecorder, publishResponse) {
	t.Helper()

	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	var resp publishResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return rec, resp
}

func TestPublishEvent(t *testing.T) {
	t.Run("task-completed publishes to its topic keyed by user", func(t *testing.T) {
		pub := &fakePublisher{}
		mux := newTestHandler(pub, &fakeStats{}, true)

		rec, resp := doPost(t, mux, "/events/task-completed",
			`{"userId":"u1","taskId":"t1","taskTitle":"Math","points":10}`)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.True(t, resp.Success)
		assert.Empty(t, resp.Error)

		assert.Equal(t, "eduboost.task.completed", pub.topic)
		assert.Equal(t, "u1", pub.key)

		var env map[string]any
		require.NoError(t, json.Unmarshal(pub.value, &env))
		assert.Equal(t, "task_completed", env["eventType"])
		assert.Equal(t, "u1", env["userId"])
		assert.Equal(t, "Math", env["taskTitle"])
		assert.Equal(t, float64(10), env["points"])
		assert.Equal(t, "2026-08-31T10:00:00Z", env["timestamp"])
	})

	t.Run("every endpoint maps to its own topic", func(t *testing.T) {
		endpoints := map[string]string{
			"/events/task-completed":       "eduboost.task.completed",
			"/events/task-uncompleted":     "eduboost.task.uncompleted",
			"/events/achievement-unlocked": "eduboost.achievement.unlocked",
			"/events/level-up":             "eduboost.user.levelup",
			"/events/user-login":           "eduboost.user.login",
		}

		for path, topic := range endpoints {
			pub := &fakePublisher{}
			mux := newTestHandler(pub, &fakeStats{}, true)

			_, resp := doPost(t, mux, path, `{"userId":"u1"}`)

			assert.True(t, resp.Success, path)
			assert.Equal(t, topic, pub.topic, path)
		}
	})

	t.Run("publish failure is a 200 with success false", func(t *testing.T) {
		pub := &fakePublisher{err: errors.New("all brokers down")}
		mux := newTestHandler(pub, &fakeStats{}, true)

		rec, resp := doPost(t, mux, "/events/task-completed", `{"userId":"u1"}`)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.False(t, resp.Success)
		assert.Contains(t, resp.Error, "all brokers down")
	})

	t.Run("missing userId is rejected without publishing", func(t *testing.T) {
		pub := &fakePublisher{}
		mux := newTestHandler(pub, &fakeStats{}, true)

		_, resp := doPost(t, mux, "/events/user-login", `{"email":"a@b.c"}`)

		assert.False(t, resp.Success)
		assert.Contains(t, resp.Error, "userId")
		assert.Zero(t, pub.called)
	})

	t.Run("invalid JSON body is rejected without publishing", func(t *testing.T) {
		pub := &fakePublisher{}
		mux := newTestHandler(pub, &fakeStats{}, true)

		_, resp := doPost(t, mux, "/events/level-up", `{broken`)

		assert.False(t, resp.Success)
		assert.Zero(t, pub.called)
	})

	t.Run("unrecognized payload fields pass through", func(t *testing.T) {
		pub := &fakePublisher{}
		mux := newTestHandler(pub, &fakeStats{}, true)

		_, resp := doPost(t, mux, "/events/user-login", `{"userId":"u1","deviceInfo":"ios","extra":"kept"}`)
		require.True(t, resp.Success)

		var env map[string]any
		require.NoError(t, json.Unmarshal(pub.value, &env))
		assert.Equal(t, "kept", env["extra"])
	})
}

func TestHealth(t *testing.T) {
	t.Run("broker connected", func(t *testing.T) {
		mux := newTestHandler(&fakePublisher{}, &fakeStats{}, true)

		req := httptest.NewRequest(http.MethodGet, "/health", nil)
		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, req)

		var body map[string]string
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Equal(t, "healthy", body["status"])
		assert.Equal(t, "event-producer", body["service"])
		assert.Equal(t, "connected", body["kafka"])
	})

	t.Run("broker disconnected", func(t *testing.T) {
		mux := newTestHandler(&fakePublisher{}, &fakeStats{}, false)

		req := httptest.NewRequest(http.MethodGet, "/health", nil)
		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, req)

		var body map[string]string
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Equal(t, "disconnected", body["kafka"])
	})
}

func TestStats(t *testing.T) {
	t.Run("returns aggregated counts", func(t *testing.T) {
		stats := &fakeStats{stats: []EventStat{
			{EventType: "task_completed", Count: 42, LastEvent: time.Date(2026, 8, 30, 0, 0, 0, 0, time.UTC)},
			{EventType: "user_login", Count: 7},
		}}
		mux := newTestHandler(&fakePublisher{}, stats, true)

		req := httptest.NewRequest(http.MethodGet, "/stats", nil)
		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)

		var body struct {
			Events []EventStat `json:"events"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		require.Len(t, body.Events, 2)
		assert.Equal(t, int64(42), body.Events[0].Count)
	})

	t.Run("store failure is a 500", func(t *testing.T) {
		stats := &fakeStats{err: errors.New("connection refused")}
		mux := newTestHandler(&fakePublisher{}, stats, true)

		req := httptest.NewRequest(http.MethodGet, "/stats", nil)
		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusInternalServerError, rec.Code)

		var body map[string]string
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Contains(t, body["error"], "connection refused")
	})
}
