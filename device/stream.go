package device

import (
	"context"
	"sync"
	"sync/atomic"
)

// DefaultStreamDepth is the number of operations a stream buffers before Enqueue blocks.
const DefaultStreamDepth = 64

type streamOp struct {
	fn   func() error
	done chan struct{}
}

// Stream is a FIFO executor. Operations run one at a time on a dedicated
// goroutine, in the order they were enqueued.
//
// An error returned by an operation is sticky: it is kept until the next
// Synchronize reports it. Later operations still run, so deallocations
// enqueued after a failed copy are never lost.
type Stream struct {
	workCh   chan streamOp
	wg       sync.WaitGroup
	closed   atomic.Bool
	submitMu sync.RWMutex

	errMu sync.Mutex
	err   error

	pending atomic.Int64
}

// NewStream starts a stream with the given queue depth.
func NewStream(depth int) *Stream {
	if depth <= 0 {
		depth = DefaultStreamDepth
	}

	s := &Stream{
		workCh: make(chan streamOp, depth),
	}

	s.wg.Add(1)
	go s.run()

	return s
}

func (s *Stream) run() {
	defer s.wg.Done()

	for op := range s.workCh {
		s.exec(op)
	}
}

func (s *Stream) exec(op streamOp) {
	if op.fn != nil {
		if err := op.fn(); err != nil {
			s.errMu.Lock()
			if s.err == nil {
				s.err = err
			}
			s.errMu.Unlock()
		}
		s.pending.Add(-1)
	}
	if op.done != nil {
		close(op.done)
	}
}

// Enqueue appends fn to the stream. It returns once fn is queued, not once it ran.
//
// fn must not enqueue onto the same stream; a full queue would deadlock.
//
// Error conditions:
//   - Returns ErrStreamClosed if the stream is closed
//   - Returns ctx.Err() if the context is cancelled before enqueueing
func (s *Stream) Enqueue(ctx context.Context, fn func() error) error {
	s.submitMu.RLock()
	defer s.submitMu.RUnlock()

	if s.closed.Load() {
		return ErrStreamClosed
	}

	s.pending.Add(1)
	select {
	case s.workCh <- streamOp{fn: fn}:
		return nil
	case <-ctx.Done():
		s.pending.Add(-1)
		return ctx.Err()
	}
}

// Synchronize blocks until every operation enqueued before the call has run,
// then returns and clears the first error any of them reported.
func (s *Stream) Synchronize(ctx context.Context) error {
	done := make(chan struct{})

	s.submitMu.RLock()
	if s.closed.Load() {
		s.submitMu.RUnlock()
		return s.takeErr()
	}
	select {
	case s.workCh <- streamOp{done: done}:
	case <-ctx.Done():
		s.submitMu.RUnlock()
		return ctx.Err()
	}
	s.submitMu.RUnlock()

	select {
	case <-done:
		return s.takeErr()
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Pending returns the number of enqueued operations that have not run yet.
func (s *Stream) Pending() int64 {
	return s.pending.Load()
}

func (s *Stream) takeErr() error {
	s.errMu.Lock()
	defer s.errMu.Unlock()

	err := s.err
	s.err = nil
	return err
}

// Close drains the queue and stops the stream. It is idempotent and returns
// any error not yet reported by Synchronize.
func (s *Stream) Close() error {
	if !s.closed.CompareAndSwap(false, true) {
		return nil
	}

	s.submitMu.Lock()
	close(s.workCh)
	s.submitMu.Unlock()

	s.wg.Wait()

	return s.takeErr()
}
