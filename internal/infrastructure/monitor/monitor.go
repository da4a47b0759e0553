// Package monitor tracks the health of the document store and the
// identity database for the /health endpoint.
package monitor

import (
	"context"
	"sync"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/tasksync/backend/store"
)

const probePath = "health/probe"

type Monitor struct {
	docs     store.Client
	identity *pgxpool.Pool

	status   Status
	mu       sync.RWMutex
	interval time.Duration
	stopCh   chan struct{}
	logger   *zap.Logger
}

func New(docs store.Client, identity *pgxpool.Pool, interval time.Duration, logger *zap.Logger) *Monitor {
	if interval <= 0 {
		interval = 10 * time.Second
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Monitor{
		docs:     docs,
		identity: identity,
		interval: interval,
		stopCh:   make(chan struct{}),
		logger:   logger,
	}
}

func (m *Monitor) Start() {
	go m.loop()
}

func (m *Monitor) Stop() {
	close(m.stopCh)
}

func (m *Monitor) IsOnline() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.status.Store && m.status.Identity
}

func (m *Monitor) GetStatus() Status {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.status
}

func (m *Monitor) loop() {
	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()

	m.refresh()
	for {
		select {
		case <-ticker.C:
			m.refresh()
		case <-m.stopCh:
			return
		}
	}
}

func (m *Monitor) refresh() {
	status := Status{
		Store:     m.checkStore(),
		Identity:  m.checkIdentity(),
		LastCheck: time.Now(),
	}

	m.mu.Lock()
	m.status = status
	m.mu.Unlock()
}

// checkStore issues a probe read; only the round-trip matters, the probe
// document usually does not exist.
func (m *Monitor) checkStore() bool {
	if m.docs == nil {
		return false
	}
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	_, _, err := m.docs.Get(ctx, probePath)
	if err != nil {
		m.logger.Warn("store health probe failed", zap.Error(err))
		return false
	}
	return true
}

func (m *Monitor) checkIdentity() bool {
	if m.identity == nil {
		return false
	}
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	return m.identity.Ping(ctx) == nil
}
