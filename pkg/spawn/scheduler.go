// Package spawn runs deferred child creation on a virtual clock.
//
// A Scheduler is cooperative and single-threaded: tasks run on the goroutine
// that calls Step, Advance, or Run, one at a time, in due-time order. Tasks
// due at the same instant run in the order they were scheduled.
package spawn

import (
	"container/heap"
	"context"
	"time"

	"github.com/willbeason/procedural-trees/pkg/scene"
)

// Request asks for child Child of Owner to be created after Delay.
type Request struct {
	Owner scene.NodeID
	Child int
	Delay time.Duration
}

// A Task performs a due Request.
type Task func(Request)

type entry struct {
	req Request
	due time.Duration
	seq uint64
	run Task
}

type queue []*entry

func (q queue) Len() int { return len(q) }

func (q queue) Less(i, j int) bool {
	if q[i].due != q[j].due {
		return q[i].due < q[j].due
	}
	return q[i].seq < q[j].seq
}

func (q queue) Swap(i, j int) { q[i], q[j] = q[j], q[i] }

func (q *queue) Push(x any) { *q = append(*q, x.(*entry)) }

func (q *queue) Pop() any {
	old := *q
	e := old[len(old)-1]
	old[len(old)-1] = nil
	*q = old[:len(old)-1]
	return e
}

// Scheduler is not safe for concurrent use.
type Scheduler struct {
	now       time.Duration
	seq       uint64
	pending   queue
	ran       int
	cancelled int
}

// New returns an idle scheduler at time zero.
func New() *Scheduler {
	return &Scheduler{}
}

// Now is the virtual time of the most recently run task or Advance.
func (s *Scheduler) Now() time.Duration {
	return s.now
}

// Pending is the number of requests waiting to run.
func (s *Scheduler) Pending() int {
	return len(s.pending)
}

// Ran is the number of tasks run so far.
func (s *Scheduler) Ran() int {
	return s.ran
}

// Cancelled is the number of requests dropped by cancellation.
func (s *Scheduler) Cancelled() int {
	return s.cancelled
}

// Schedule queues run to be called with req once req.Delay has elapsed from
// now.
func (s *Scheduler) Schedule(req Request, run Task) {
	s.seq++
	heap.Push(&s.pending, &entry{
		req: req,
		due: s.now + req.Delay,
		seq: s.seq,
		run: run,
	})
}

// Step runs the next pending task, moving the clock forward to its due time.
// It returns false if nothing was pending.
func (s *Scheduler) Step() bool {
	if len(s.pending) == 0 {
		return false
	}

	e := heap.Pop(&s.pending).(*entry)
	if e.due > s.now {
		s.now = e.due
	}
	s.ran++
	e.run(e.req)

	return true
}

// Advance runs every task due within d of now, including tasks scheduled by
// those tasks, and leaves the clock at now+d. It returns the number of tasks
// run. The clock never moves backwards; a negative d counts as zero.
func (s *Scheduler) Advance(d time.Duration) int {
	d = max(d, 0)
	until := s.now + d
	n := 0
	for len(s.pending) > 0 && s.pending[0].due <= until {
		s.Step()
		n++
	}
	s.now = until
	return n
}

// Run steps until nothing is pending or ctx is done.
func (s *Scheduler) Run(ctx context.Context) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		if !s.Step() {
			return nil
		}
	}
}

// CancelOwners drops every pending request whose owner matches. It returns
// the number dropped.
func (s *Scheduler) CancelOwners(match func(scene.NodeID) bool) int {
	kept := s.pending[:0]
	dropped := 0
	for _, e := range s.pending {
		if match(e.req.Owner) {
			dropped++
			continue
		}
		kept = append(kept, e)
	}
	for i := len(kept); i < len(s.pending); i++ {
		s.pending[i] = nil
	}
	s.pending = kept
	heap.Init(&s.pending)

	s.cancelled += dropped
	return dropped
}

// CancelSubtree drops every pending request owned by root or any of its
// descendants in g. Call it before discarding the subtree.
func (s *Scheduler) CancelSubtree(g *scene.Graph, root scene.NodeID) int {
	owners := make(map[scene.NodeID]bool)
	for _, id := range g.Subtree(root) {
		owners[id] = true
	}
	return s.CancelOwners(func(id scene.NodeID) bool {
		return owners[id]
	})
}
