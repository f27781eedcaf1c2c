package images

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"sync"
)

// ProgressUpdate represents a status update or a builder log line
type ProgressUpdate struct {
	Status        string  `json:"status"`
	Progress      int     `json:"progress"`
	QueuePosition *int    `json:"queue_position,omitempty"`
	Error         *string `json:"error,omitempty"`
	Log           string  `json:"log,omitempty"`
}

// ProgressTracker broadcasts build progress to SSE subscribers
type ProgressTracker struct {
	last        ProgressUpdate
	subscribers []chan ProgressUpdate
	closed      bool
	done        chan struct{}
	mu          sync.Mutex
}

// NewProgressTracker creates a tracker starting at initial
func NewProgressTracker(initial ProgressUpdate) *ProgressTracker {
	return &ProgressTracker{last: initial, done: make(chan struct{})}
}

// Update records the current state and broadcasts it
func (p *ProgressTracker) Update(status string, progress int, queuePos *int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return
	}
	p.last = ProgressUpdate{Status: status, Progress: progress, QueuePosition: queuePos}
	p.broadcast(p.last)
}

// Fail broadcasts a failure
func (p *ProgressTracker) Fail(err error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return
	}
	msg := err.Error()
	p.last = ProgressUpdate{Status: StatusFailed, Error: &msg}
	p.broadcast(p.last)
}

// Complete broadcasts success
func (p *ProgressTracker) Complete() {
	p.Update(StatusReady, 100, nil)
}

// Log broadcasts a builder output line, advancing progress when the line
// is a build step header
func (p *ProgressTracker) Log(line string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return
	}
	if pct, ok := stepProgress(line); ok && pct > p.last.Progress {
		p.last.Progress = pct
	}
	update := p.last
	update.Log = line
	p.broadcast(update)
}

// broadcast must be called with mu held
func (p *ProgressTracker) broadcast(update ProgressUpdate) {
	for _, ch := range p.subscribers {
		select {
		case ch <- update:
		default:
			// Non-blocking send (skip slow consumers)
		}
	}
}

// Subscribe adds a subscriber. The current state is delivered first; the
// channel is closed when the build finishes or ctx is done.
func (p *ProgressTracker) Subscribe(ctx context.Context) (<-chan ProgressUpdate, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return nil, fmt.Errorf("tracker closed")
	}

	ch := make(chan ProgressUpdate, 64)
	p.subscribers = append(p.subscribers, ch)
	ch <- p.last

	go func() {
		select {
		case <-ctx.Done():
			p.unsubscribe(ch)
		case <-p.done:
		}
	}()

	return ch, nil
}

func (p *ProgressTracker) unsubscribe(ch chan ProgressUpdate) {
	p.mu.Lock()
	defer p.mu.Unlock()

	for i, sub := range p.subscribers {
		if sub == ch {
			p.subscribers = append(p.subscribers[:i], p.subscribers[i+1:]...)
			close(ch)
			break
		}
	}
}

// Close closes all subscriber channels
func (p *ProgressTracker) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return
	}
	p.closed = true
	close(p.done)
	for _, ch := range p.subscribers {
		close(ch)
	}
	p.subscribers = nil
}

// building spans 20..95% of the progress bar; the rest is queueing,
// resolution and inspection
const (
	buildingStart = 20
	buildingEnd   = 95
)

var stepHeader = regexp.MustCompile(`^Step (\d+)/(\d+) :`)

// stepProgress maps "Step N/M : ..." lines onto the building range
func stepProgress(line string) (int, bool) {
	m := stepHeader.FindStringSubmatch(line)
	if m == nil {
		return 0, false
	}
	n, _ := strconv.Atoi(m[1])
	total, _ := strconv.Atoi(m[2])
	if total == 0 || n > total {
		return 0, false
	}
	return buildingStart + (buildingEnd-buildingStart)*(n-1)/total, true
}

// logWriter splits builder output into lines for the tracker
type logWriter struct {
	tracker *ProgressTracker
	buf     bytes.Buffer
}

func (w *logWriter) Write(p []byte) (int, error) {
	w.buf.Write(p)
	for {
		line, err := w.buf.ReadString('\n')
		if err != nil {
			// Keep the partial line for the next write
			w.buf.Reset()
			w.buf.WriteString(line)
			return len(p), nil
		}
		if line = trimEOL(line); line != "" {
			w.tracker.Log(line)
		}
	}
}

// Flush emits a trailing partial line
func (w *logWriter) Flush() {
	if line := trimEOL(w.buf.String()); line != "" {
		w.tracker.Log(line)
	}
	w.buf.Reset()
}

func trimEOL(s string) string {
	return string(bytes.TrimRight([]byte(s), "\r\n"))
}

// ToSSEReader converts a progress channel to an io.ReadCloser for SSE streaming
func ToSSEReader(ch <-chan ProgressUpdate) io.ReadCloser {
	return &sseStream{ch: ch}
}

// sseStream implements io.ReadCloser for SSE streaming
type sseStream struct {
	ch     <-chan ProgressUpdate
	buffer []byte
}

func (s *sseStream) Read(p []byte) (n int, err error) {
	if len(s.buffer) > 0 {
		n = copy(p, s.buffer)
		s.buffer = s.buffer[n:]
		return n, nil
	}

	update, ok := <-s.ch
	if !ok {
		return 0, io.EOF
	}

	event := "progress"
	if update.Log != "" {
		event = "log"
	}
	data, _ := json.Marshal(update)
	s.buffer = []byte(fmt.Sprintf("event: %s\ndata: %s\n\n", event, data))

	n = copy(p, s.buffer)
	s.buffer = s.buffer[n:]
	return n, nil
}

func (s *sseStream) Close() error {
	return nil
}
