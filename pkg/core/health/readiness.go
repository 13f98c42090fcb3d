// Package health tracks per-component readiness of a service.
// Infrastructure modules register a component on construction and mark
// it ready once connected; workers and HTTP handlers read the
// aggregated status.
package health

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

type ComponentStatus struct {
	Name      string    `json:"name"`
	Ready     bool      `json:"ready"`
	StartedAt time.Time `json:"started_at"`
	ReadyAt   time.Time `json:"ready_at,omitempty"`
}

type Status struct {
	Ready      bool              `json:"ready"`
	Components []ComponentStatus `json:"components"`
}

// ComponentManager manages component registration and readiness tracking.
type ComponentManager interface {
	// AddComponent registers a component and returns a function to mark it as ready.
	AddComponent(name string) func()
}

// Checker provides readiness status information.
type Checker interface {
	IsReady() bool
	GetStatus() Status
}

// Waiter blocks until all registered components are ready.
type Waiter interface {
	WaitReady(ctx context.Context) error
}

type component struct {
	name      string
	ready     bool
	startedAt time.Time
	readyAt   time.Time
}

type readiness struct {
	mu         sync.RWMutex
	components map[string]*component
	readyChan  chan struct{}
	readyOnce  sync.Once
	log        *zap.Logger
}

func newReadiness(log *zap.Logger) *readiness {
	return &readiness{
		components: make(map[string]*component),
		readyChan:  make(chan struct{}),
		log:        log,
	}
}

func (r *readiness) AddComponent(name string) func() {
	if name == "" {
		panic("readiness: component name must not be empty")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.components[name]; exists {
		r.log.Warn("component already registered", zap.String("component", name))
	} else {
		r.components[name] = &component{name: name, startedAt: time.Now()}
	}

	return func() { r.markReady(name) }
}

func (r *readiness) markReady(name string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	comp, exists := r.components[name]
	if !exists || comp.ready {
		return
	}
	comp.ready = true
	comp.readyAt = time.Now()

	allReady := len(r.components) > 0
	for _, c := range r.components {
		if !c.ready {
			allReady = false
			break
		}
	}

	if allReady {
		r.readyOnce.Do(func() {
			close(r.readyChan)
			r.log.Info("all components are ready", zap.Int("component_count", len(r.components)))
		})
	}
}

func (r *readiness) IsReady() bool {
	select {
	case <-r.readyChan:
		return true
	default:
		return false
	}
}

func (r *readiness) GetStatus() Status {
	r.mu.RLock()
	defer r.mu.RUnlock()

	status := Status{
		Ready:      r.IsReady(),
		Components: make([]ComponentStatus, 0, len(r.components)),
	}
	for _, comp := range r.components {
		status.Components = append(status.Components, ComponentStatus{
			Name:      comp.name,
			Ready:     comp.ready,
			StartedAt: comp.startedAt,
			ReadyAt:   comp.readyAt,
		})
	}
	return status
}

// WaitReady blocks until all components are ready or the context is cancelled.
func (r *readiness) WaitReady(ctx context.Context) error {
	select {
	case <-r.readyChan:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
