package event

import (
	"io"
	"sync"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
)

// Bus fans events out to listeners. Each listener has its own unbounded
// mailbox drained by its own goroutine, so Publish never waits on a slow
// listener and each listener sees events in publish order.
//
// A Bus belongs to one simulation. Close detaches every listener after
// their mailboxes drain; publishing after Close is a no-op.
type Bus struct {
	runID  uuid.UUID
	logger *log.Logger

	mu     sync.Mutex
	boxes  map[*mailbox]struct{}
	closed bool

	seq atomic.Uint64
}

// NewBus creates a bus stamping events with runID. A nil logger discards.
func NewBus(runID uuid.UUID, logger *log.Logger) *Bus {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Bus{
		runID:  runID,
		logger: logger,
		boxes:  make(map[*mailbox]struct{}),
	}
}

// Subscribe attaches l. The returned function detaches it after delivering
// what is already queued and waits for that to finish; it must not be
// called from inside l.
func (b *Bus) Subscribe(l Listener) (unsubscribe func()) {
	m := newMailbox(l, b.logger)

	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		m.close()
		return func() {}
	}
	b.boxes[m] = struct{}{}
	b.mu.Unlock()

	go m.run()

	return func() {
		b.mu.Lock()
		delete(b.boxes, m)
		b.mu.Unlock()
		m.close()
		<-m.done
	}
}

// Publish stamps e and queues it for every listener. Sequence numbers
// follow queue order. The stamped event is returned.
func (b *Bus) Publish(e Event) Event {
	e.RunID = b.runID
	if e.Time.IsZero() {
		e.Time = time.Now()
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	e.Seq = b.seq.Add(1)
	if b.closed {
		return e
	}
	for m := range b.boxes {
		m.push(e)
	}
	return e
}

// Listeners returns the number of attached listeners.
func (b *Bus) Listeners() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.boxes)
}

// Close stops accepting events, waits until every listener has handled
// its queue and detaches all listeners. Must not be called from a listener.
func (b *Bus) Close() {
	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		return
	}
	b.closed = true
	boxes := b.boxes
	b.boxes = nil
	b.mu.Unlock()

	for m := range boxes {
		m.close()
	}
	for m := range boxes {
		<-m.done
	}
}

// mailbox is an unbounded FIFO in front of one listener.
type mailbox struct {
	listener Listener
	logger   *log.Logger

	mu     sync.Mutex
	queue  []Event
	closed bool

	wake chan struct{}
	done chan struct{}
}

func newMailbox(l Listener, logger *log.Logger) *mailbox {
	return &mailbox{
		listener: l,
		logger:   logger,
		wake:     make(chan struct{}, 1),
		done:     make(chan struct{}),
	}
}

func (m *mailbox) push(e Event) {
	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		return
	}
	m.queue = append(m.queue, e)
	m.mu.Unlock()
	m.signal()
}

func (m *mailbox) close() {
	m.mu.Lock()
	m.closed = true
	m.mu.Unlock()
	m.signal()
}

func (m *mailbox) signal() {
	select {
	case m.wake <- struct{}{}:
	default:
	}
}

func (m *mailbox) run() {
	defer close(m.done)
	for {
		m.mu.Lock()
		for len(m.queue) == 0 && !m.closed {
			m.mu.Unlock()
			<-m.wake
			m.mu.Lock()
		}
		batch, closed := m.queue, m.closed
		m.queue = nil
		m.mu.Unlock()

		for _, e := range batch {
			m.deliver(e)
		}
		if closed && len(batch) == 0 {
			return
		}
	}
}

// deliver isolates the bus from a panicking listener.
func (m *mailbox) deliver(e Event) {
	defer func() {
		if r := recover(); r != nil {
			m.logger.Error("listener panicked", "event", e.Type, "seq", e.Seq, "panic", r)
		}
	}()
	m.listener.OnEvent(e)
}
