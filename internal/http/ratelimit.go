package http

import (
	"sync"
	"time"
)

// rateLimiter is a simple in-memory fixed-window limiter keyed by client
// address. Windows reset one minute after a client's first counted request.
type rateLimiter struct {
	mu           sync.Mutex
	clients      map[string]*clientWindow
	totalHits    int64
	stopCleanup  chan struct{}
	shutdownOnce sync.Once
}

type clientWindow struct {
	windowStart time.Time
	requests    int
}

const (
	rateLimitPerMinute = 60
	staleClientAfter   = 10 * time.Minute
)

func newRateLimiter() *rateLimiter {
	rl := &rateLimiter{
		clients:     make(map[string]*clientWindow),
		stopCleanup: make(chan struct{}),
	}
	go rl.cleanupLoop()
	return rl
}

func (rl *rateLimiter) allow(client string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := time.Now()
	win, ok := rl.clients[client]
	if !ok || now.Sub(win.windowStart) > time.Minute {
		rl.clients[client] = &clientWindow{windowStart: now, requests: 1}
		return true
	}

	win.requests++
	if win.requests > rateLimitPerMinute {
		rl.totalHits++
		return false
	}
	return true
}

// ActiveClients reports how many client windows are currently tracked.
func (rl *rateLimiter) ActiveClients() int {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	return len(rl.clients)
}

// TotalHits reports how many requests were rejected so far.
func (rl *rateLimiter) TotalHits() int64 {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	return rl.totalHits
}

func (rl *rateLimiter) cleanupLoop() {
	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			rl.dropStale()
		case <-rl.stopCleanup:
			return
		}
	}
}

func (rl *rateLimiter) dropStale() {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	cutoff := time.Now().Add(-staleClientAfter)
	for client, win := range rl.clients {
		if win.windowStart.Before(cutoff) {
			delete(rl.clients, client)
		}
	}
}

func (rl *rateLimiter) stop() {
	rl.shutdownOnce.Do(func() {
		close(rl.stopCleanup)
	})
}
