package pipeline

import (
	"sync"

	"github.com/Abhinandangithub01/PhotoSet/internal/ingest"
)

// Status is the lifecycle state of one ledger entry. Entries start pending
// and transition exactly once to success or error.
type Status string

const (
	StatusPending Status = "pending"
	StatusSuccess Status = "success"
	StatusError   Status = "error"
)

// Result is one entry of the batch ledger: the outcome of generating from a
// single uploaded image. GeneratedURL is set iff the status is success; Err
// iff the status is error.
type Result struct {
	ID           string               `json:"id"`
	Original     ingest.UploadedImage `json:"original"`
	Status       Status               `json:"status"`
	GeneratedURL string               `json:"generatedUrl,omitempty"`
	Err          string               `json:"error,omitempty"`
}

// EventType classifies ledger notifications.
type EventType string

const (
	// EventProgress fires as an item starts; Message carries the indicator.
	EventProgress EventType = "progress"
	// EventItem fires when an item reaches a terminal state.
	EventItem EventType = "item"
	// EventDone fires once, after every item is terminal.
	EventDone EventType = "done"
)

// Event is one ledger notification delivered to subscribers.
type Event struct {
	Type      EventType `json:"type"`
	ItemID    string    `json:"itemId,omitempty"`
	Processed int       `json:"processed,omitempty"`
	Total     int       `json:"total"`
	Message   string    `json:"message,omitempty"`
}

// Ledger is the per-batch collection of per-image outcomes. It corresponds
// one-to-one with the image list that was active when the batch launched and
// never tracks later uploads or removals. Mutation is confined to the run
// goroutine; each write touches a disjoint entry.
type Ledger struct {
	mu       sync.Mutex
	entries  []Result
	index    map[string]int
	progress string
	subs     []chan Event
	done     chan struct{}
	finished bool
}

func newLedger(images []ingest.UploadedImage) *Ledger {
	entries := make([]Result, len(images))
	index := make(map[string]int, len(images))
	for i, img := range images {
		entries[i] = Result{ID: img.ID, Original: img, Status: StatusPending}
		index[img.ID] = i
	}
	return &Ledger{
		entries: entries,
		index:   index,
		done:    make(chan struct{}),
	}
}

// Snapshot returns a copy of all entries in batch order.
func (l *Ledger) Snapshot() []Result {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]Result, len(l.entries))
	copy(out, l.entries)
	return out
}

// Progress returns the latest human-readable progress indicator.
func (l *Ledger) Progress() string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.progress
}

// Done is closed once every entry has reached a terminal state.
func (l *Ledger) Done() <-chan struct{} {
	return l.done
}

// Wait blocks until the batch has finished.
func (l *Ledger) Wait() {
	<-l.done
}

// Subscribe registers a buffered event channel. The channel is closed when
// the batch finishes; subscribing to a finished ledger yields an immediately
// closed channel. Slow subscribers miss events rather than stall the run.
func (l *Ledger) Subscribe() <-chan Event {
	ch := make(chan Event, 32)
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.finished {
		close(ch)
		return ch
	}
	l.subs = append(l.subs, ch)
	return ch
}

func (l *Ledger) startItem(id string, processed, total int) {
	l.mu.Lock()
	l.progress = ProgressMessage(processed, total)
	ev := Event{
		Type:      EventProgress,
		ItemID:    id,
		Processed: processed,
		Total:     total,
		Message:   l.progress,
	}
	l.publishLocked(ev)
	l.mu.Unlock()
}

func (l *Ledger) markSuccess(id, generatedURL string) {
	l.transition(id, func(r *Result) {
		r.Status = StatusSuccess
		r.GeneratedURL = generatedURL
	})
}

func (l *Ledger) markError(id, message string) {
	l.transition(id, func(r *Result) {
		r.Status = StatusError
		r.Err = message
	})
}

func (l *Ledger) transition(id string, apply func(*Result)) {
	l.mu.Lock()
	defer l.mu.Unlock()
	i, ok := l.index[id]
	if !ok || l.entries[i].Status != StatusPending {
		// Terminal states never revert.
		return
	}
	apply(&l.entries[i])
	l.publishLocked(Event{
		Type:   EventItem,
		ItemID: id,
		Total:  len(l.entries),
	})
}

func (l *Ledger) finish() {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.finished {
		return
	}
	l.finished = true
	l.publishLocked(Event{Type: EventDone, Total: len(l.entries)})
	for _, ch := range l.subs {
		close(ch)
	}
	l.subs = nil
	close(l.done)
}

func (l *Ledger) publishLocked(ev Event) {
	for _, ch := range l.subs {
		select {
		case ch <- ev:
		default:
		}
	}
}
