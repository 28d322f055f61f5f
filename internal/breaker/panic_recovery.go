package breaker

import (
	"fmt"

	"go.uber.org/zap"
)

// safeCallWithRecovery executes a callback and hands any panic to panicHandler.
func safeCallWithRecovery(fn func(), panicHandler func(interface{})) {
	if fn == nil {
		return
	}

	defer func() {
		if r := recover(); r != nil {
			panicHandler(r)
		}
	}()

	fn()
}

// safeCallListener runs a break or clear listener. A panic is logged and the
// remaining listeners still run.
func safeCallListener(logger *zap.Logger, event string, fn func()) {
	safeCallWithRecovery(fn, func(r interface{}) {
		logCallbackPanic(logger, event+" listener", r)
	})
}

// safeCallOnStateChange executes the OnStateChange callback with panic recovery.
// The state transition has already happened and is not undone.
func safeCallOnStateChange(logger *zap.Logger, name string, fn func(string, State, State), from, to State) {
	if fn == nil {
		return
	}

	safeCallWithRecovery(func() {
		fn(name, from, to)
	}, func(r interface{}) {
		logCallbackPanic(logger, "OnStateChange", r,
			zap.Stringer("from", from), zap.Stringer("to", to))
	})
}

// logCallbackPanic logs a callback panic with its stack.
func logCallbackPanic(logger *zap.Logger, callback string, panicValue interface{}, fields ...zap.Field) {
	fields = append(fields,
		zap.String("callback", callback),
		zap.String("panic", fmt.Sprint(panicValue)),
		zap.StackSkip("stack", 3))
	logger.Warn("callback panicked", fields...)
}
