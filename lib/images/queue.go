package images

import (
	"sync"
)

// queuedBuild is a build waiting for a free slot
type queuedBuild struct {
	name    string
	startFn func()
}

// BuildQueue runs image builds with a configurable concurrency limit.
// Builds beyond the limit wait in FIFO order.
type BuildQueue struct {
	maxConcurrent int
	active        map[string]bool
	pending       []queuedBuild
	mu            sync.Mutex
}

// NewBuildQueue creates a new build queue with max concurrent limit
func NewBuildQueue(maxConcurrent int) *BuildQueue {
	if maxConcurrent < 1 {
		maxConcurrent = 1
	}
	return &BuildQueue{
		maxConcurrent: maxConcurrent,
		active:        make(map[string]bool),
	}
}

// Enqueue adds a build and returns its queue position.
// Returns 0 if the build starts immediately, >0 if queued.
func (q *BuildQueue) Enqueue(name string, startFn func()) int {
	q.mu.Lock()
	defer q.mu.Unlock()

	if len(q.active) < q.maxConcurrent {
		q.active[name] = true
		go startFn()
		return 0
	}

	q.pending = append(q.pending, queuedBuild{name: name, startFn: startFn})
	return len(q.pending)
}

// MarkComplete releases the slot held by name and starts the next queued build
func (q *BuildQueue) MarkComplete(name string) {
	q.mu.Lock()
	defer q.mu.Unlock()

	delete(q.active, name)

	if len(q.pending) > 0 && len(q.active) < q.maxConcurrent {
		next := q.pending[0]
		q.pending = q.pending[1:]
		q.active[next.name] = true
		go next.startFn()
	}
}

// Cancel drops a queued build that has not started. Returns false if the
// build is running or unknown.
func (q *BuildQueue) Cancel(name string) bool {
	q.mu.Lock()
	defer q.mu.Unlock()

	for i, b := range q.pending {
		if b.name == name {
			q.pending = append(q.pending[:i], q.pending[i+1:]...)
			return true
		}
	}
	return false
}

// GetPosition returns the queue position of a waiting build.
// Returns nil if the build is running or not queued.
func (q *BuildQueue) GetPosition(name string) *int {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.active[name] {
		return nil
	}
	for i, b := range q.pending {
		if b.name == name {
			pos := i + 1
			return &pos
		}
	}
	return nil
}

// IsActive reports whether name is building or queued
func (q *BuildQueue) IsActive(name string) bool {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.active[name] {
		return true
	}
	for _, b := range q.pending {
		if b.name == name {
			return true
		}
	}
	return false
}

// ActiveCount returns number of actively building images
func (q *BuildQueue) ActiveCount() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.active)
}

// PendingCount returns number of queued builds
func (q *BuildQueue) PendingCount() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.pending)
}
