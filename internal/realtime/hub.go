// Package realtime fans task-list snapshots out to live subscribers.
package realtime

import (
	"sync"

	"roseboard/backend/internal/model"
)

// Hub delivers full task-list snapshots per user. Each delivery replaces
// whatever the subscriber held before; there is no merging.
type Hub struct {
	mu   sync.Mutex
	subs map[string]map[*subscription]struct{}
}

type subscription struct {
	ch   chan []model.Task
	once sync.Once
}

func NewHub() *Hub {
	return &Hub{subs: make(map[string]map[*subscription]struct{})}
}

// Subscribe registers a listener for userID. The returned cancel func removes
// it and closes the channel; calling it more than once is safe.
func (h *Hub) Subscribe(userID string) (<-chan []model.Task, func()) {
	sub := &subscription{ch: make(chan []model.Task, 1)}

	h.mu.Lock()
	if h.subs[userID] == nil {
		h.subs[userID] = make(map[*subscription]struct{})
	}
	h.subs[userID][sub] = struct{}{}
	h.mu.Unlock()

	cancel := func() {
		sub.once.Do(func() {
			h.mu.Lock()
			delete(h.subs[userID], sub)
			if len(h.subs[userID]) == 0 {
				delete(h.subs, userID)
			}
			h.mu.Unlock()
			close(sub.ch)
		})
	}
	return sub.ch, cancel
}

// Publish never blocks. A subscriber that has not read the previous snapshot
// gets it replaced by this one.
func (h *Hub) Publish(userID string, tasks []model.Task) {
	snapshot := make([]model.Task, len(tasks))
	copy(snapshot, tasks)

	h.mu.Lock()
	defer h.mu.Unlock()
	for sub := range h.subs[userID] {
		select {
		case <-sub.ch:
		default:
		}
		select {
		case sub.ch <- snapshot:
		default:
		}
	}
}

func (h *Hub) Subscribers(userID string) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.subs[userID])
}
