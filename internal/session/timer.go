package session

import (
	"sync"
	"time"
)

// Timer counts whole elapsed seconds for one active session. It is an owned
// resource: the session that starts it is responsible for stopping it on
// every exit path, and Stop guarantees that no further tick is counted after
// it returns.
type Timer struct {
	mu      sync.Mutex
	elapsed int

	cancel   func() // stops the underlying ticker
	done     chan struct{}
	finished chan struct{}
	stopOnce sync.Once
}

// startSecondTimer starts a timer backed by a real one-second ticker,
// continuing from initial elapsed seconds.
func startSecondTimer(initial int) *Timer {
	ticker := time.NewTicker(time.Second)
	return startTimer(ticker.C, ticker.Stop, initial)
}

// startTimer starts a timer counting ticks from the given channel. cancel is
// invoked exactly once, from Stop, to release the tick source.
func startTimer(ticks <-chan time.Time, cancel func(), initial int) *Timer {
	t := &Timer{
		elapsed:  initial,
		cancel:   cancel,
		done:     make(chan struct{}),
		finished: make(chan struct{}),
	}
	go t.run(ticks)
	return t
}

func (t *Timer) run(ticks <-chan time.Time) {
	defer close(t.finished)
	for {
		select {
		case <-t.done:
			return
		case _, ok := <-ticks:
			if !ok {
				return
			}
			t.mu.Lock()
			t.elapsed++
			t.mu.Unlock()
		}
	}
}

// Elapsed returns the number of whole seconds counted so far.
func (t *Timer) Elapsed() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.elapsed
}

// Stop cancels the tick source and waits for the counting goroutine to exit.
// It is idempotent. After Stop returns, Elapsed is final.
func (t *Timer) Stop() {
	t.stopOnce.Do(func() {
		if t.cancel != nil {
			t.cancel()
		}
		close(t.done)
	})
	<-t.finished
}
