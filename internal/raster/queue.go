package raster

import "microraster/internal/mathutil"

// DefaultQueueCapacity is the number of quads buffered between flushes.
const DefaultQueueCapacity = 16384

// Command is one queued quad: an atlas entry painted into Dst, tinted by Color.
type Command struct {
	Atlas int
	Dst   mathutil.Rect
	Color Color
}

// Queue is a bounded, ordered command buffer. It never grows past its
// capacity; the owner must flush when TryPush reports false.
type Queue struct {
	cmds []Command
}

// NewQueue returns an empty queue. capacity <= 0 selects DefaultQueueCapacity.
func NewQueue(capacity int) *Queue {
	if capacity <= 0 {
		capacity = DefaultQueueCapacity
	}
	return &Queue{cmds: make([]Command, 0, capacity)}
}

// TryPush appends cmd, or reports false if the queue is full.
func (q *Queue) TryPush(cmd Command) bool {
	if q.Full() {
		return false
	}
	q.cmds = append(q.cmds, cmd)
	return true
}

// Full reports whether the next TryPush would fail.
func (q *Queue) Full() bool { return len(q.cmds) == cap(q.cmds) }

// Len returns the number of queued commands.
func (q *Queue) Len() int { return len(q.cmds) }

// Cap returns the capacity fixed at construction.
func (q *Queue) Cap() int { return cap(q.cmds) }

// Commands returns the pending commands in submission order. The slice is
// only valid until the next Reset.
func (q *Queue) Commands() []Command {
	return q.cmds
}

// Reset empties the queue, keeping its storage.
func (q *Queue) Reset() {
	q.cmds = q.cmds[:0]
}
