package session

import (
	"context"
	"sync"
)

// MemoryCache is an in-process session cache for tests and local runs
type MemoryCache struct {
	mu       sync.RWMutex
	sessions map[string]*PlayerSession
}

// NewMemoryCache creates an empty in-memory session cache
func NewMemoryCache() *MemoryCache {
	return &MemoryCache{sessions: make(map[string]*PlayerSession)}
}

func (c *MemoryCache) Get(_ context.Context, connID string) (*PlayerSession, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	sess, ok := c.sessions[connID]
	if !ok {
		return nil, nil
	}
	copied := *sess
	return &copied, nil
}

func (c *MemoryCache) Set(_ context.Context, connID string, sess *PlayerSession) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	copied := *sess
	c.sessions[connID] = &copied
	return nil
}

func (c *MemoryCache) Delete(_ context.Context, connID string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	delete(c.sessions, connID)
	return nil
}
