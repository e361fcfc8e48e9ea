package producer

import "sync"

// recentSet remembers the last capacity keys in insertion order.
type recentSet struct {
	mu    sync.Mutex
	ring  []string
	next  int
	items map[string]int
}

func newRecentSet(capacity int) *recentSet {
	if capacity <= 0 {
		capacity = 1
	}
	return &recentSet{
		ring:  make([]string, capacity),
		items: make(map[string]int, capacity),
	}
}

// Add stores key and reports whether it was absent.
func (r *recentSet) Add(key string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.items[key]; ok {
		return false
	}
	if old := r.ring[r.next]; old != "" {
		if slot, ok := r.items[old]; ok && slot == r.next {
			delete(r.items, old)
		}
	}
	r.ring[r.next] = key
	r.items[key] = r.next
	r.next = (r.next + 1) % len(r.ring)
	return true
}

// Remove forgets key.
func (r *recentSet) Remove(key string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.items, key)
}

func (r *recentSet) Contains(key string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.items[key]
	return ok
}
