package smt

import (
	"fmt"
	"sync/atomic"
	"time"

	yices2 "github.com/ianamason/yices2_go_bindings/yices_api"
)

// stopRetryInterval spaces repeated interrupts: yices ignores a stop
// request that arrives before the search has started.
const stopRetryInterval = 5 * time.Millisecond

// Solver owns one yices context. It is not safe for concurrent use.
type Solver struct {
	ctx    yices2.ContextT
	closed bool
}

func NewSolver() *Solver {
	s := &Solver{
		ctx: yices2.ContextT{},
	}
	yices2.InitContext(yices2.ConfigT{}, &s.ctx)
	return s
}

func (s *Solver) Close() {
	if s.closed {
		return
	}
	yices2.CloseContext(&s.ctx)
	s.closed = true
}

func (s *Solver) Assert(formulas ...Bool) error {
	errorcode := yices2.AssertFormulas(s.ctx, raws(formulas))
	if errorcode < 0 {
		return fmt.Errorf("%s", yices2.ErrorString())
	}
	return nil
}

// CheckWithTimeout runs the search over the already asserted formulas and
// interrupts it once timeout elapses. timedOut reports whether the
// interruption came from the timer.
func (s *Solver) CheckWithTimeout(timeout time.Duration) (status yices2.SmtStatusT, model *Model, timedOut bool, err error) {
	var (
		fired   atomic.Bool
		done    = make(chan struct{})
		stopped = make(chan struct{})
	)
	go func() {
		defer close(stopped)
		timer := time.NewTimer(timeout)
		defer timer.Stop()
		select {
		case <-done:
			return
		case <-timer.C:
		}
		fired.Store(true)
		ticker := time.NewTicker(stopRetryInterval)
		defer ticker.Stop()
		for {
			yices2.StopSearch(s.ctx)
			select {
			case <-done:
				return
			case <-ticker.C:
			}
		}
	}()
	status = yices2.CheckContext(s.ctx, yices2.ParamT{})
	close(done)
	// no stop request may reach the context once it can be closed
	<-stopped

	switch status {
	case yices2.StatusSat:
		raw := yices2.GetModel(s.ctx, 1)
		if raw == nil {
			return yices2.StatusError, nil, false, fmt.Errorf("get model: %s", yices2.ErrorString())
		}
		return status, NewModel(raw), false, nil
	case yices2.StatusUnsat:
		return status, nil, false, nil
	case yices2.StatusInterrupted:
		return status, nil, fired.Load(), nil
	case yices2.StatusError:
		return status, nil, false, fmt.Errorf("%s", yices2.ErrorString())
	}
	return status, nil, false, nil
}
