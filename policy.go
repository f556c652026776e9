package tpool

import (
	"io"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// ExceptionPolicy receives the captured failure of a worker whose
// routine escaped its task loop. Handle is called at most once per
// worker, never for an orderly exit, and never for a failure inside a
// user task (the loop swallows those and continues).
//
// The pool stores the policy by value and does not synchronize access
// beyond what the policy itself provides.
type ExceptionPolicy interface {
	Handle(failure any)
}

// Rethrow re-raises the captured failure, which is expected to
// terminate the process. It is the default policy.
type Rethrow struct{}

func (Rethrow) Handle(failure any) { panic(failure) }

// TryLog writes a human-readable form of the failure to a shared
// writer and never propagates. The writer sits behind a lock, so one
// TryLog value may be shared by several pools.
type TryLog struct {
	log *zap.Logger
}

// NewTryLog builds a TryLog policy over w.
func NewTryLog(w io.Writer) TryLog {
	core := zapcore.NewCore(
		zapcore.NewConsoleEncoder(zap.NewDevelopmentEncoderConfig()),
		zapcore.Lock(zapcore.AddSync(w)),
		zapcore.ErrorLevel,
	)
	return TryLog{log: zap.New(core)}
}

// NewTryLogWith builds a TryLog policy over an existing logger.
func NewTryLogWith(log *zap.Logger) TryLog {
	return TryLog{log: log}
}

func (p TryLog) Handle(failure any) {
	if p.log == nil {
		return
	}
	p.log.Error("exception in pool thread", zap.Any("failure", failure))
	_ = p.log.Sync()
}
