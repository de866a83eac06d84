// Package analytics keeps lightweight in-process request counters. Counts
// reset on restart; nothing here is persisted.
package analytics

import (
	"fmt"
	"sync"
	"time"
)

// Service accumulates per-route request counts.
type Service struct {
	mu        sync.Mutex
	startedAt time.Time
	routes    map[string]int64
	statuses  map[string]int64
	total     int64
}

// NewService creates an empty counter set.
func NewService() *Service {
	return &Service{
		startedAt: time.Now().UTC(),
		routes:    make(map[string]int64),
		statuses:  make(map[string]int64),
	}
}

// Record counts one handled request. The path should be the route pattern,
// not the raw URI, so parameterized routes aggregate.
func (s *Service) Record(method, path string, status int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.total++
	s.routes[method+" "+path]++
	s.statuses[statusClass(status)]++
}

func statusClass(status int) string {
	return fmt.Sprintf("%dxx", status/100)
}

// Snapshot is a point-in-time copy of the counters.
type Snapshot struct {
	UptimeSeconds int64            `json:"uptime_seconds"`
	TotalRequests int64            `json:"total_requests"`
	Routes        map[string]int64 `json:"routes"`
	Statuses      map[string]int64 `json:"statuses"`
}

// Snapshot returns a copy of the current counters.
func (s *Service) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	routes := make(map[string]int64, len(s.routes))
	for k, v := range s.routes {
		routes[k] = v
	}
	statuses := make(map[string]int64, len(s.statuses))
	for k, v := range s.statuses {
		statuses[k] = v
	}
	return Snapshot{
		UptimeSeconds: int64(time.Since(s.startedAt).Seconds()),
		TotalRequests: s.total,
		Routes:        routes,
		Statuses:      statuses,
	}
}
