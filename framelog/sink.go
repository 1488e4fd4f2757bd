package framelog

import (
	"fmt"
	"io"
	"sync"

	"go.uber.org/zap"
)

// Sink receives rendered entries.
type Sink interface {
	WriteEntry(title, line string, e Entry)
	WriteSeparator()
}

// WriterSink writes rendered lines to an io.Writer, one per entry.
// The line is already fully formatted, so it is written verbatim.
type WriterSink struct {
	mu sync.Mutex
	w  io.Writer
}

func NewWriterSink(w io.Writer) *WriterSink {
	return &WriterSink{w: w}
}

func (s *WriterSink) WriteEntry(_, line string, _ Entry) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fmt.Fprintln(s.w, line)
}

func (s *WriterSink) WriteSeparator() {
	s.mu.Lock()
	defer s.mu.Unlock()
	fmt.Fprintln(s.w)
}

// ZapSink forwards entries to a structured zap logger. It is the alternate
// sink used by logs created with WithAlternateSink.
type ZapSink struct {
	logger *zap.Logger
}

func NewZapSink(logger *zap.Logger) *ZapSink {
	return &ZapSink{logger: logger}
}

func (s *ZapSink) WriteEntry(title, _ string, e Entry) {
	s.logger.Info(e.Text,
		zap.String("log", title),
		zap.String("prefix", e.Prefix),
		zap.Uint64("frame", e.Frame),
		zap.Bool("new_frame", e.NewFrame),
		zap.String("topic", e.Topic),
		zap.String("function", e.Function),
	)
}

// WriteSeparator is a no-op; structured output has no blank lines.
func (s *ZapSink) WriteSeparator() {}

type discardSink struct{}

func (discardSink) WriteEntry(string, string, Entry) {}
func (discardSink) WriteSeparator()                  {}

// Discard is a Sink that drops everything.
var Discard Sink = discardSink{}
