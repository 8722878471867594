package engine

// StepRequest asks the executor to run a batch of whole fixed steps.
type StepRequest struct {
	Steps       int
	FixedStepMS float64
}

// Executor runs the full physics pipeline for offloaded batches on its
// own goroutine with its own Engine. One response (a whole-state
// snapshot) comes back per request, in FIFO order.
type Executor struct {
	requests  chan StepRequest
	responses chan *Snapshot
}

// NewExecutor starts an executor over the given engine, seeded with
// the snapshot (pass nil to keep the engine's current state). The
// engine must not be touched by anyone else afterwards: ownership
// transfers to the executor goroutine.
func NewExecutor(e *Engine, seed *Snapshot) *Executor {
	x := &Executor{
		requests:  make(chan StepRequest, maxInFlight+2),
		responses: make(chan *Snapshot, maxInFlight+2),
	}
	go x.run(e, seed)
	return x
}

func (x *Executor) run(e *Engine, seed *Snapshot) {
	defer close(x.responses)
	if seed != nil {
		e.Restore(seed)
	}
	for req := range x.requests {
		for i := 0; i < req.Steps; i++ {
			e.Step(req.FixedStepMS / 1000)
		}
		x.responses <- e.Capture()
	}
}

// Close stops the executor once queued requests drain. Responses still
// in the channel may be applied or discarded by the consumer.
func (x *Executor) Close() { close(x.requests) }

// maxInFlight is the offload backpressure threshold: at most this many
// unanswered batches, the rest wait in the local FIFO queue.
const maxInFlight = 2

// Offloader is the host-side half of the offload boundary: a bounded
// FIFO hand-off that pipelines at most maxInFlight batches and queues
// (never drops) the rest, preserving step counts exactly.
type Offloader struct {
	exec     *Executor
	inFlight int
	pending  []StepRequest
	closed   bool
}

// NewOffloader wraps an executor. A nil executor yields an offloader
// that refuses every request (WorkerUnavailable).
func NewOffloader(exec *Executor) *Offloader {
	return &Offloader{exec: exec}
}

// Available reports whether requests can still be accepted.
func (o *Offloader) Available() bool {
	return o != nil && o.exec != nil && !o.closed
}

// Request hands a batch to the executor, queueing it locally when the
// pipeline is full. Reports false only when no executor is available.
func (o *Offloader) Request(req StepRequest) bool {
	if !o.Available() {
		return false
	}
	if o.inFlight < maxInFlight {
		o.exec.requests <- req
		o.inFlight++
	} else {
		o.pending = append(o.pending, req)
	}
	return true
}

// InFlight reports the number of unanswered dispatched batches.
func (o *Offloader) InFlight() int { return o.inFlight }

// Pending reports the number of locally queued batches.
func (o *Offloader) Pending() int { return len(o.pending) }

// Poll drains any ready responses without blocking, dispatching queued
// requests as slots free up. After Close, drained responses are
// discarded instead of returned.
func (o *Offloader) Poll() []*Snapshot {
	if o == nil || o.exec == nil {
		return nil
	}
	var out []*Snapshot
	for {
		select {
		case snap, ok := <-o.exec.responses:
			if !ok {
				o.exec = nil
				return out
			}
			o.inFlight--
			if !o.closed {
				out = append(out, snap)
				if len(o.pending) > 0 && o.inFlight < maxInFlight {
					next := o.pending[0]
					o.pending = o.pending[1:]
					o.exec.requests <- next
					o.inFlight++
				}
			}
		default:
			return out
		}
	}
}

// Close tears down the boundary: pending requests are dropped, the
// executor stops after in-flight work, and late responses are
// discarded by subsequent polls.
func (o *Offloader) Close() {
	if o == nil || o.closed {
		return
	}
	o.closed = true
	o.pending = nil
	if o.exec != nil {
		o.exec.Close()
	}
}
