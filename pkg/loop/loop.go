// Package loop runs a task repeatedly, carrying a value between cycles.
package loop

import (
	"context"
	"fmt"
	"time"
)

// Next tells Start what to do after a cycle: keep going after an
// interval, or stop, possibly with an error.
//
// The zero value means Continue(0).
type Next struct {
	quit     bool
	err      error
	interval time.Duration
}

func (n Next) String() string {
	if n.err != nil {
		return fmt.Sprintf("[break] with error: %v", n.err)
	}
	if n.quit {
		return "[break] without error"
	}
	return fmt.Sprintf("[continue] interval: %s", n.interval)
}

// Continue lets the loop run another cycle after sleeping interval.
func Continue(interval time.Duration) Next {
	return Next{interval: interval}
}

// Break stops the loop. Start returns err (nil is fine).
func Break(err error) Next {
	return Next{quit: true, err: err}
}

// Task is one cycle of a loop. It receives the value the previous
// cycle returned and decides, via Next, whether to run again.
type Task[T any] func(context.Context, T) (T, Next)

// Start calls task with init, then keeps calling it with the value of
// the previous cycle until the task Breaks or ctx is done.
//
// The last value is returned in either case. When the loop stops
// because of ctx, the error is ctx.Err(); a context already done
// before the first cycle stops the loop without running the task.
func Start[T any](ctx context.Context, init T, task Task[T], options ...LoopOption) (T, error) {
	value := init
	if err := ctx.Err(); err != nil {
		return value, err
	}

	for {
		value_, next := runCycle(ctx, value, task, options)
		if next.err != nil {
			return value_, next.err
		}
		if next.quit {
			return value_, nil
		}
		value = value_

		timer := time.NewTimer(next.interval)
		select {
		case <-ctx.Done():
			if !timer.Stop() {
				<-timer.C
			}
			return value, ctx.Err()
		case <-timer.C:
		}
	}
}

// runCycle applies options freshly for each cycle, so that per-cycle
// timeouts start counting when the cycle does.
func runCycle[T any](ctx context.Context, value T, task Task[T], options []LoopOption) (T, Next) {
	conf := &loopConfig{ctx: ctx}
	for _, opt := range options {
		conf = opt(conf)
	}
	if conf.deferred != nil {
		defer conf.deferred()
	}
	return task(conf.ctx, value)
}

type loopConfig struct {
	ctx      context.Context
	deferred func()
}

type LoopOption func(*loopConfig) *loopConfig

// WithTimeout puts a deadline on the context each cycle receives.
func WithTimeout(d time.Duration) LoopOption {
	return func(conf *loopConfig) *loopConfig {
		ctx, cancel := context.WithTimeout(conf.ctx, d)
		return &loopConfig{
			ctx: ctx,
			deferred: func() {
				if conf.deferred != nil {
					defer conf.deferred()
				}
				cancel()
			},
		}
	}
}
