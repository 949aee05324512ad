package scheduler

import (
	"container/heap"

	"github.com/cookiefied/processscheduler/job"
)

// readyQueue implements heap.Interface over job states ordered by less.
// The key of a queued state must not change while it is in the queue.
type readyQueue struct {
	items []*job.State
	less  func(a, b *job.State) bool
}

func newReadyQueue(less func(a, b *job.State) bool) *readyQueue {
	q := &readyQueue{less: less}
	heap.Init(q)
	return q
}

func (q *readyQueue) Len() int { return len(q.items) }

func (q *readyQueue) Less(i, j int) bool {
	return q.less(q.items[i], q.items[j])
}

func (q *readyQueue) Swap(i, j int) {
	q.items[i], q.items[j] = q.items[j], q.items[i]
}

// Push is called by heap.Push. Use PushState instead.
func (q *readyQueue) Push(x any) {
	q.items = append(q.items, x.(*job.State))
}

// Pop is called by heap.Pop. Use PopState instead.
func (q *readyQueue) Pop() any {
	old := q.items
	n := len(old)
	s := old[n-1]
	old[n-1] = nil // avoid memory leak
	q.items = old[:n-1]
	return s
}

func (q *readyQueue) PushState(s *job.State) {
	heap.Push(q, s)
}

func (q *readyQueue) PopState() *job.State {
	return heap.Pop(q).(*job.State)
}

// Peek returns the first state without removing it, or nil when empty.
func (q *readyQueue) Peek() *job.State {
	if len(q.items) == 0 {
		return nil
	}
	return q.items[0]
}

// arrivals feeds states into a ready set in (arrival, submission) order.
type arrivals struct {
	pending []*job.State
	next    int
}

// admit hands every state that has arrived by now to add.
func (a *arrivals) admit(now int, add func(*job.State)) {
	for a.next < len(a.pending) && a.pending[a.next].ArrivedBy(now) {
		add(a.pending[a.next])
		a.next++
	}
}

// nextTime returns the arrival time of the next state not yet admitted.
func (a *arrivals) nextTime() (int, bool) {
	if a.next >= len(a.pending) {
		return 0, false
	}
	return a.pending[a.next].Job.Arrival, true
}
