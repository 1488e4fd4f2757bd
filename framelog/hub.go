// Package framelog is an append-only, frame-aware diagnostic log.
//
// Logs are created from a Hub, which is the process-scoped owner of the
// aggregate log, the frame counter, the output format, the sinks and the
// halt policy. Every enabled Log mirrors its entries into the Hub's
// aggregate log in call order.
package framelog

import (
	"os"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// FrameCounter exposes the number of the frame currently being processed.
// Zero means no frame is active.
type FrameCounter interface {
	CurrentFrame() uint64
}

// FrameFunc adapts a function to FrameCounter.
type FrameFunc func() uint64

func (f FrameFunc) CurrentFrame() uint64 { return f() }

var noFrames = FrameFunc(func() uint64 { return 0 })

// Hub owns the state shared by a set of logs.
type Hub struct {
	mu        sync.Mutex
	aggregate *Log
	frames    FrameCounter
	lastFrame uint64
	format    Format
	console   Sink
	alternate Sink
	halt      HaltPolicy
	onBreak   func(title string, e Entry)
	diag      *zap.Logger
	now       func() time.Time
	closed    bool
}

type HubOption func(*Hub)

// WithFrameCounter sets the source of frame numbers.
func WithFrameCounter(fc FrameCounter) HubOption {
	return func(h *Hub) { h.frames = fc }
}

func WithFormat(f Format) HubOption {
	return func(h *Hub) { h.format = f }
}

// WithConsole replaces the default stdout sink.
func WithConsole(s Sink) HubOption {
	return func(h *Hub) { h.console = s }
}

// WithAlternate sets the sink used by logs created with WithAlternateSink.
// Defaults to a ZapSink over the diagnostics logger.
func WithAlternate(s Sink) HubOption {
	return func(h *Hub) { h.alternate = s }
}

// WithHaltPolicy sets the policy invoked for HaltOnNewEntry logs.
// Defaults to ExitOnHalt over the diagnostics logger.
func WithHaltPolicy(p HaltPolicy) HubOption {
	return func(h *Hub) { h.halt = p }
}

// WithBreakHandler replaces the debugger interrupt used by
// BreakOnNewEntry logs.
func WithBreakHandler(fn func(title string, e Entry)) HubOption {
	return func(h *Hub) { h.onBreak = fn }
}

// WithDiagnostics sets the logger used as the error channel.
func WithDiagnostics(logger *zap.Logger) HubOption {
	return func(h *Hub) { h.diag = logger }
}

// WithClock overrides time.Now for entry timestamps.
func WithClock(now func() time.Time) HubOption {
	return func(h *Hub) { h.now = now }
}

// NewHub creates a Hub. Call Close when the process shuts down.
func NewHub(opts ...HubOption) *Hub {
	h := &Hub{
		frames:  noFrames,
		format:  DefaultFormat(),
		console: NewWriterSink(os.Stdout),
		diag:    zap.NewNop(),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(h)
	}

	if h.frames == nil {
		h.frames = noFrames
	}
	if h.alternate == nil {
		h.alternate = NewZapSink(h.diag)
	}
	if h.halt == nil {
		h.halt = ExitOnHalt(h.diag)
	}
	if h.onBreak == nil {
		h.onBreak = func(string, Entry) {
			if debugBuild {
				debugBreak()
			}
		}
	}

	h.aggregate = &Log{hub: h, title: "All"}
	return h
}

// Aggregate returns the log that mirrors every entry recorded through this hub.
func (h *Hub) Aggregate() *Log {
	return h.aggregate
}

// SetFrameCounter swaps the frame source, e.g. when a new scene takes over.
func (h *Hub) SetFrameCounter(fc FrameCounter) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if fc == nil {
		fc = noFrames
	}
	h.frames = fc
}

func (h *Hub) Format() Format {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.format
}

func (h *Hub) SetFormat(f Format) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.format = f
}

// Diagnostics returns the error channel logger.
func (h *Hub) Diagnostics() *zap.Logger {
	return h.diag
}

// Close stops recording. Entries added afterwards are dropped.
func (h *Hub) Close() error {
	h.mu.Lock()
	h.closed = true
	h.mu.Unlock()
	return h.diag.Sync()
}

func (h *Hub) record(l *Log, topic, function, text string) string {
	h.mu.Lock()

	if h.closed || l.disabled {
		h.mu.Unlock()
		return ""
	}

	current := h.frames.CurrentFrame()
	if current < h.lastFrame {
		// The frame source went backwards (scene switch); start over.
		h.lastFrame = 0
	}

	e := Entry{
		ID:       uuid.New(),
		Prefix:   l.prefix,
		Time:     h.now(),
		Frame:    current,
		NewFrame: current > h.lastFrame,
		Topic:    topic,
		Function: function,
		Text:     text,
	}

	var suffix string
	if l.appendSuffix {
		suffix = l.suffix
	}
	line := h.format.Line(l.title, e, suffix)

	sink := h.console
	if l.alternate {
		sink = h.alternate
	}
	if h.format.Separated(e) {
		sink.WriteSeparator()
	}
	sink.WriteEntry(l.title, line, e)

	l.entries = append(l.entries, e)
	if l != h.aggregate {
		h.aggregate.entries = append(h.aggregate.entries, e)
	}
	h.lastFrame = current

	brk, halt := l.breakOnNew, l.haltOnNew
	h.mu.Unlock()

	if brk {
		h.onBreak(l.title, e)
	}
	if halt {
		h.halt.Halt(l.title, e)
	}
	return line
}
