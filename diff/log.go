package diff

import "go.uber.org/zap"

// logger traces delta construction. It stays a nop unless a caller opts in
// with SetDebugLogger; the library is otherwise silent.
var logger = zap.NewNop()

// SetDebugLogger installs a logger for delta construction tracing. Passing
// nil restores the nop logger.
func SetDebugLogger(l *zap.Logger) {
	if l == nil {
		l = zap.NewNop()
	}
	logger = l
}
