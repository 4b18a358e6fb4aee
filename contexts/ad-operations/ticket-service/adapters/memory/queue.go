package memory

import (
	"container/heap"
	"context"
	"sync"
	"time"

	"trafficdesk/contexts/ad-operations/ticket-service/ports"
)

type queueItem struct {
	job   ports.DeploymentJob
	dueAt time.Time
	seq   uint64
}

type jobHeap []queueItem

func (h jobHeap) Len() int { return len(h) }
func (h jobHeap) Less(i, j int) bool {
	if h[i].dueAt.Equal(h[j].dueAt) {
		return h[i].seq < h[j].seq
	}
	return h[i].dueAt.Before(h[j].dueAt)
}
func (h jobHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }
func (h *jobHeap) Push(x any)   { *h = append(*h, x.(queueItem)) }
func (h *jobHeap) Pop() any {
	old := *h
	n := len(old)
	item := old[n-1]
	*h = old[:n-1]
	return item
}

// Queue is an in-process delayed queue for tests and single-node runs.
// Dequeue blocks until a job's delay has elapsed or ctx is done.
type Queue struct {
	mu    sync.Mutex
	cond  *sync.Cond
	items jobHeap
	seq   uint64
}

func NewQueue() *Queue {
	q := &Queue{}
	q.cond = sync.NewCond(&q.mu)
	return q
}

func (q *Queue) Enqueue(_ context.Context, job ports.DeploymentJob, delay time.Duration) error {
	q.mu.Lock()
	defer q.mu.Unlock()

	q.seq++
	heap.Push(&q.items, queueItem{job: job, dueAt: time.Now().UTC().Add(delay), seq: q.seq})
	q.cond.Broadcast()
	return nil
}

func (q *Queue) Dequeue(ctx context.Context) (ports.DeploymentJob, ports.Ack, error) {
	// Wake waiters when ctx is cancelled.
	stop := context.AfterFunc(ctx, func() {
		q.mu.Lock()
		q.cond.Broadcast()
		q.mu.Unlock()
	})
	defer stop()

	q.mu.Lock()
	defer q.mu.Unlock()
	for {
		if err := ctx.Err(); err != nil {
			return ports.DeploymentJob{}, nil, err
		}
		if len(q.items) > 0 {
			wait := time.Until(q.items[0].dueAt)
			if wait <= 0 {
				item := heap.Pop(&q.items).(queueItem)
				return item.job, func(context.Context) error { return nil }, nil
			}
			// Re-check once the head job is due.
			timer := time.AfterFunc(wait, func() {
				q.mu.Lock()
				q.cond.Broadcast()
				q.mu.Unlock()
			})
			q.cond.Wait()
			timer.Stop()
			continue
		}
		q.cond.Wait()
	}
}

// Len reports pending jobs, due or not.
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.items)
}
