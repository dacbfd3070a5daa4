package scheduler

// Batch is an ordered group of URLs dispatched together, whose
// completion is tracked as a unit. A batch is complete exactly when
// every item has reached a terminal state, success or failure.
type Batch struct {
	// Key is the batch's monotonically increasing identifier within a
	// search.
	Key int

	// URLs are the batch items, in admission order.
	URLs []string

	completed int
}

// Total returns the number of items in the batch.
func (b *Batch) Total() int {
	return len(b.URLs)
}

// Completed returns how many items have reached a terminal state.
func (b *Batch) Completed() int {
	return b.completed
}

// markDone records one terminal item and reports whether the batch
// just completed. It reports true at most once.
func (b *Batch) markDone() bool {
	b.completed++
	return b.completed == len(b.URLs)
}

// Queue is the FIFO of batches pending dispatch. Earlier-requested
// pages are serviced before later ones. Owned by the scheduler loop;
// not safe for concurrent use.
type Queue struct {
	nextKey int
	pending []*Batch
}

// NewQueue creates an empty queue.
func NewQueue() *Queue {
	return &Queue{}
}

// Push wraps urls as a new batch with a fresh key and appends it to
// the tail.
func (q *Queue) Push(urls []string) *Batch {
	b := &Batch{
		Key:  q.nextKey,
		URLs: urls,
	}
	q.nextKey++
	q.pending = append(q.pending, b)
	return b
}

// Pop removes and returns the head batch, or nil when empty.
func (q *Queue) Pop() *Batch {
	if len(q.pending) == 0 {
		return nil
	}
	b := q.pending[0]
	q.pending = q.pending[1:]
	return b
}

// Len returns the number of batches pending dispatch.
func (q *Queue) Len() int {
	return len(q.pending)
}

// Reset discards all pending batches and restarts key numbering. Used
// when a new search begins; a stale batch from the prior search must
// never dispatch.
func (q *Queue) Reset() {
	q.pending = nil
	q.nextKey = 0
}
