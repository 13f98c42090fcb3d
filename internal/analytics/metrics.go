// Package analytics consumes every event topic under its own group and
// maintains in-process counters plus a durable trail of completions.
package analytics

import (
	"sync"

	"github.com/eduboost/eventpipe/pkg/event"
	"github.com/prometheus/client_golang/prometheus"
)

// Snapshot is a point-in-time copy of the counters. Counters only grow
// within a process lifetime and reset on restart.
type Snapshot struct {
	TasksCompleted       uint64 `json:"tasksCompleted"`
	TasksUncompleted     uint64 `json:"tasksUncompleted"`
	AchievementsUnlocked uint64 `json:"achievementsUnlocked"`
	LevelUps             uint64 `json:"levelUps"`
	UserLogins           uint64 `json:"userLogins"`
	TotalEvents          uint64 `json:"totalEvents"`
}

// Metrics owns the counters. It is mutated only by the consumer's
// handler goroutine; reads go through Snapshot.
type Metrics struct {
	mu       sync.Mutex
	counters Snapshot

	processed *prometheus.CounterVec
	unknown   prometheus.Counter
}

func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		processed: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "eduboost_events_processed_total",
			Help: "Number of events processed, by event type.",
		}, []string{"event_type"}),
		unknown: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "eduboost_events_unknown_total",
			Help: "Number of events with an unrecognized event type.",
		}),
	}
	reg.MustRegister(m.processed, m.unknown)
	return m
}

// Record counts one processed event. Unknown types count toward the
// total but never toward a named counter.
func (m *Metrics) Record(t event.Type) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.counters.TotalEvents++

	switch t {
	case event.TypeTaskCompleted:
		m.counters.TasksCompleted++
	case event.TypeTaskUncompleted:
		m.counters.TasksUncompleted++
	case event.TypeAchievementUnlocked:
		m.counters.AchievementsUnlocked++
	case event.TypeLevelUp:
		m.counters.LevelUps++
	case event.TypeUserLogin:
		m.counters.UserLogins++
	default:
		m.unknown.Inc()
		return
	}

	m.processed.WithLabelValues(string(t)).Inc()
}

func (m *Metrics) Snapshot() Snapshot {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.counters
}
