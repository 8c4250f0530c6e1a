package event

import "sync/atomic"

const (
	// QueueSize must be a power of two.
	QueueSize  = 256
	bufferMask = QueueSize - 1
)

// Queue is a lock-free MPSC ring buffer. Any goroutine may Push; only the
// game loop drains. Each slot carries the sequence number of its last
// write, so a reader never sees a half-written or stale event.
//
// When full, the oldest unread events are dropped.
type Queue struct {
	slots [QueueSize]slot
	head  atomic.Uint64 // Next sequence to read
	tail  atomic.Uint64 // Next sequence to write
}

type slot struct {
	ev    Event
	stamp atomic.Uint64 // seq+1 once ev holds sequence seq
}

// NewQueue creates an empty queue.
func NewQueue() *Queue {
	return &Queue{}
}

// Push adds an event. Safe for concurrent producers.
func (q *Queue) Push(ev Event) {
	seq := q.tail.Add(1) - 1
	s := &q.slots[seq&bufferMask]
	s.ev = ev
	s.stamp.Store(seq + 1)

	// Drop the oldest events if the reader fell a full ring behind
	for {
		head := q.head.Load()
		if head+QueueSize > seq || q.head.CompareAndSwap(head, seq+1-QueueSize) {
			return
		}
	}
}

// Drain appends all pending events to dst in FIFO order and returns it.
// Only the game loop may call Drain.
func (q *Queue) Drain(dst []Event) []Event {
	for {
		head := q.head.Load()
		from, n := q.pending(head, q.tail.Load())
		if n == 0 {
			return dst
		}
		start := len(dst)
		for seq := from; seq < from+n; seq++ {
			dst = append(dst, q.slots[seq&bufferMask].ev)
		}
		if q.commit(head, from+n) {
			return dst
		}
		// A producer dropped events under us, read again from the new head
		dst = dst[:start]
	}
}

// pending returns the readable run starting at head. It stops at the
// first slot whose writer has not finished. It has no side effects.
func (q *Queue) pending(head, tail uint64) (from, n uint64) {
	from = head
	if tail-head > QueueSize {
		from = tail - QueueSize
	}
	for from+n < tail && q.slots[(from+n)&bufferMask].stamp.Load() == from+n+1 {
		n++
	}
	return from, n
}

// commit advances the read position if no producer moved it since head
// was loaded.
func (q *Queue) commit(head, next uint64) bool {
	return q.head.CompareAndSwap(head, next)
}

// Len returns the approximate pending event count.
func (q *Queue) Len() int {
	head := q.head.Load()
	tail := q.tail.Load()
	if tail <= head {
		return 0
	}
	diff := int(tail - head)
	if diff > QueueSize {
		return QueueSize
	}
	return diff
}
