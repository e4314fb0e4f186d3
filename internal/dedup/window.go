// Package dedup provides the bounded recent-history window used to suppress
// content items that reappear across polls.
package dedup

// Window is a fixed-capacity FIFO set of content IDs. New IDs enter at the
// front; once the capacity is exceeded the oldest entry is evicted. Membership
// checks never refresh an entry's position, so eviction order is strictly the
// order of first observation.
//
// The ring buffer gives O(1) insert/evict and the set O(1) membership. The
// window is owned by a single goroutine and is not safe for concurrent use.
type Window struct {
	capacity int
	slots    []string
	next     int
	size     int
	members  map[string]struct{}
}

// NewWindow builds a window holding up to capacity IDs. A capacity of zero or
// less yields a window that remembers nothing.
func NewWindow(capacity int) *Window {
	if capacity < 0 {
		capacity = 0
	}
	return &Window{
		capacity: capacity,
		slots:    make([]string, capacity),
		members:  make(map[string]struct{}, capacity),
	}
}

// Contains reports whether id was observed within the window.
func (w *Window) Contains(id string) bool {
	_, ok := w.members[id]
	return ok
}

// Add records id as the most recent observation. Re-adding a known id is a
// no-op that keeps its original position. When the window is full the oldest
// entry is evicted to make room.
func (w *Window) Add(id string) {
	if w.capacity == 0 || id == "" {
		return
	}
	if _, ok := w.members[id]; ok {
		return
	}

	// With next as the write cursor, a full ring means the slot under the
	// cursor holds the oldest entry.
	if w.size == w.capacity {
		delete(w.members, w.slots[w.next])
		w.size--
	}

	w.slots[w.next] = id
	w.next = (w.next + 1) % w.capacity
	w.size++
	w.members[id] = struct{}{}
}

// Len returns the number of IDs currently held.
func (w *Window) Len() int {
	return w.size
}

// Capacity returns the maximum number of IDs the window can hold.
func (w *Window) Capacity() int {
	return w.capacity
}

// IDs returns a snapshot ordered most-recent-first.
func (w *Window) IDs() []string {
	out := make([]string, 0, w.size)
	for i := 1; i <= w.size; i++ {
		out = append(out, w.slots[(w.next-i+w.capacity)%w.capacity])
	}
	return out
}
