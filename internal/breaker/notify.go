package breaker

import (
	"sync"

	"go.uber.org/zap"
)

// listeners is the in-process pub/sub behind OnBreak and OnClear.
type listeners struct {
	mu      sync.RWMutex
	onBreak []func(payload Value)
	onClear []func()
}

// OnBreak registers fn to run on every Closed → Open transition with the
// observation that caused it.
//
// Listeners run synchronously, in registration order, after the breaker lock
// has been released. Transitions are delivered one at a time in the order they
// happened: usually on the goroutine that tripped the breaker, or on one that
// is still delivering an earlier transition. A listener may call Observe; a
// transition it causes is delivered after the current listeners return. A
// panicking listener is logged and skipped.
func (b *ThresholdBreaker) OnBreak(fn func(payload Value)) {
	if fn == nil {
		return
	}
	b.listeners.mu.Lock()
	b.listeners.onBreak = append(b.listeners.onBreak, fn)
	b.listeners.mu.Unlock()
}

// OnClear registers fn to run on every Open → Closed transition.
//
// A timer-driven clear is delivered on the timer goroutine, after any break
// still being delivered.
func (b *ThresholdBreaker) OnClear(fn func()) {
	if fn == nil {
		return
	}
	b.listeners.mu.Lock()
	b.listeners.onClear = append(b.listeners.onClear, fn)
	b.listeners.mu.Unlock()
}

func (l *listeners) notifyBreak(logger *zap.Logger, payload Value) {
	l.mu.RLock()
	fns := l.onBreak[:len(l.onBreak):len(l.onBreak)]
	l.mu.RUnlock()

	for _, fn := range fns {
		safeCallListener(logger, "break", func() { fn(payload) })
	}
}

func (l *listeners) notifyClear(logger *zap.Logger) {
	l.mu.RLock()
	fns := l.onClear[:len(l.onClear):len(l.onClear)]
	l.mu.RUnlock()

	for _, fn := range fns {
		safeCallListener(logger, "clear", fn)
	}
}
