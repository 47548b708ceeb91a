package remediate

import (
	"context"
	"fmt"
	"sync"

	"github.com/thoreinstein/ruleranger/internal/errors"
)

// ErrCoordinatorClosed is returned by Do after Close.
var ErrCoordinatorClosed = errors.New("mutation coordinator is closed")

type job struct {
	fn       func()
	finished chan struct{}
	panicked any
}

// Coordinator runs submitted functions one at a time on a dedicated
// goroutine.
type Coordinator struct {
	jobs   chan *job
	closed chan struct{}
	done   chan struct{}
	once   sync.Once
}

// NewCoordinator starts a coordinator. Close must be called to stop it.
func NewCoordinator() *Coordinator {
	c := &Coordinator{
		jobs:   make(chan *job),
		closed: make(chan struct{}),
		done:   make(chan struct{}),
	}
	go c.loop()
	return c
}

func (c *Coordinator) loop() {
	defer close(c.done)
	for {
		select {
		case j := <-c.jobs:
			c.run(j)
		case <-c.closed:
			return
		}
	}
}

func (c *Coordinator) run(j *job) {
	defer close(j.finished)
	defer func() {
		j.panicked = recover()
	}()
	j.fn()
}

// Do runs fn on the coordinator goroutine and waits for it to return. Once
// fn has been accepted it always runs to completion, even if ctx is
// cancelled while it is running.
func (c *Coordinator) Do(ctx context.Context, fn func()) error {
	j := &job{fn: fn, finished: make(chan struct{})}
	select {
	case c.jobs <- j:
	case <-c.closed:
		return ErrCoordinatorClosed
	case <-ctx.Done():
		return ctx.Err()
	}
	<-j.finished
	if j.panicked != nil {
		return errors.Newf("coordinated job panicked: %s", fmt.Sprint(j.panicked))
	}
	return nil
}

// Close stops the coordinator after the running job, if any, finishes.
func (c *Coordinator) Close() {
	c.once.Do(func() {
		close(c.closed)
	})
	<-c.done
}
