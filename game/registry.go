package game

import (
	"errors"
	"slices"
	"sync"
)

// ErrGameRunning is returned when starting a game in a channel that already
// has one.
var ErrGameRunning = errors.New("a game is already running in this channel")

// Registry tracks the channels with a running game. The zero value is ready
// to use. It is safe for concurrent use.
type Registry struct {
	mu     sync.Mutex
	active map[string]struct{}
}

// Acquire marks channel as running a game. It returns ErrGameRunning if the
// channel already has one.
func (r *Registry) Acquire(channel string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.active[channel]; ok {
		return ErrGameRunning
	}
	if r.active == nil {
		r.active = make(map[string]struct{})
	}
	r.active[channel] = struct{}{}
	return nil
}

// Release marks channel as free.
func (r *Registry) Release(channel string) {
	r.mu.Lock()
	delete(r.active, channel)
	r.mu.Unlock()
}

// Running reports whether channel has a game.
func (r *Registry) Running(channel string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.active[channel]
	return ok
}

// Channels lists the channels with a running game in sorted order.
func (r *Registry) Channels() []string {
	r.mu.Lock()
	v := make([]string, 0, len(r.active))
	for ch := range r.active {
		v = append(v, ch)
	}
	r.mu.Unlock()
	slices.Sort(v)
	return v
}
