package session

import (
	"sync"
	"time"

	"github.com/gcbaptista/catalog-search/internal/metrics"
)

// StatsData represents session statistics without mutex (safe for copying)
type StatsData struct {
	SessionsCreated int64     `json:"sessions_created"`
	SessionsDeleted int64     `json:"sessions_deleted"`
	SessionsExpired int64     `json:"sessions_expired"`
	ActiveSessions  int64     `json:"active_sessions"`
	QueryCommits    int64     `json:"query_commits"`
	LastUpdated     time.Time `json:"last_updated"`
}

// Stats tracks session lifecycle counters and mirrors them to Prometheus.
type Stats struct {
	mu   sync.RWMutex
	data StatsData
}

// NewStats creates a new statistics collector
func NewStats() *Stats {
	return &Stats{data: StatsData{LastUpdated: time.Now()}}
}

// RecordCreated increments the session creation counter
func (s *Stats) RecordCreated() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.data.SessionsCreated++
	s.data.LastUpdated = time.Now()
}

// RecordDeleted increments the explicit deletion counter
func (s *Stats) RecordDeleted() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.data.SessionsDeleted++
	s.data.LastUpdated = time.Now()
}

// RecordExpired adds n sessions removed for being idle
func (s *Stats) RecordExpired(n int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.data.SessionsExpired += int64(n)
	s.data.LastUpdated = time.Now()
	metrics.SessionsExpiredTotal.Add(float64(n))
}

// RecordCommit increments the debounced commit counter
func (s *Stats) RecordCommit() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.data.QueryCommits++
	s.data.LastUpdated = time.Now()
	metrics.DebounceCommitsTotal.Inc()
}

// SetActive records the number of live sessions
func (s *Stats) SetActive(n int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.data.ActiveSessions = int64(n)
	s.data.LastUpdated = time.Now()
	metrics.ActiveSessions.Set(float64(n))
}

// GetStats returns a copy of the current statistics
func (s *Stats) GetStats() StatsData {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.data
}
