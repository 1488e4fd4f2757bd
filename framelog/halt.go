package framelog

import (
	"fmt"

	"go.uber.org/zap"
)

// HaltPolicy decides what happens after a log configured with
// HaltOnNewEntry records an entry. The entry has already been emitted and
// appended when Halt is called.
type HaltPolicy interface {
	Halt(title string, e Entry)
}

// HaltFunc adapts a function to HaltPolicy.
type HaltFunc func(title string, e Entry)

func (f HaltFunc) Halt(title string, e Entry) { f(title, e) }

// HaltError is the panic value raised by PanicOnHalt.
type HaltError struct {
	Log   string
	Entry Entry
}

func (e *HaltError) Error() string {
	return fmt.Sprintf("framelog: halted by %q at frame %d: %s", e.Log, e.Entry.Frame, e.Entry.Text)
}

// PanicOnHalt panics with a *HaltError, leaving recovery to the caller.
var PanicOnHalt HaltPolicy = HaltFunc(func(title string, e Entry) {
	panic(&HaltError{Log: title, Entry: e})
})

// ExitOnHalt terminates the process through logger.Fatal.
func ExitOnHalt(logger *zap.Logger) HaltPolicy {
	return HaltFunc(func(title string, e Entry) {
		logger.Fatal("log halted process",
			zap.String("log", title),
			zap.Uint64("frame", e.Frame),
			zap.String("topic", e.Topic),
			zap.String("function", e.Function),
			zap.String("text", e.Text),
		)
	})
}
