package framelog

import (
	"fmt"
	"io"
	"iter"
	"path/filepath"
	"runtime"
	"slices"
	"strings"

	"go.uber.org/zap"
)

// Log is an ordered, append-only sequence of entries sharing a title and prefix.
// A nil *Log accepts every call and records nothing.
type Log struct {
	hub     *Hub
	title   string
	prefix  string
	entries []Entry

	alternate    bool
	appendSuffix bool
	suffix       string
	disabled     bool
	breakOnNew   bool
	haltOnNew    bool
}

type LogOption func(*Log)

// WithAlternateSink routes the log's output to the hub's alternate sink.
func WithAlternateSink() LogOption {
	return func(l *Log) { l.alternate = true }
}

// WithSuffix appends s to every printed line.
func WithSuffix(s string) LogOption {
	return func(l *Log) {
		l.suffix = s
		l.appendSuffix = s != ""
	}
}

// Disabled creates the log in the disabled state.
func Disabled() LogOption {
	return func(l *Log) { l.disabled = true }
}

// BreakOnNewEntry interrupts into the debugger after each entry. Only
// builds tagged okdebug actually break.
func BreakOnNewEntry() LogOption {
	return func(l *Log) { l.breakOnNew = true }
}

// HaltOnNewEntry hands every entry to the hub's HaltPolicy after recording it.
func HaltOnNewEntry() LogOption {
	return func(l *Log) { l.haltOnNew = true }
}

// NewLog creates a log attached to h.
func (h *Hub) NewLog(title, prefix string, opts ...LogOption) *Log {
	l := &Log{
		hub:    h,
		title:  title,
		prefix: prefix,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

type addArgs struct {
	topic, function       string
	topicSet, functionSet bool
	object                any
	hasObject             bool
}

type AddOption func(*addArgs)

// Topic overrides the default topic, which is the caller's package and file.
func Topic(topic string) AddOption {
	return func(a *addArgs) {
		a.topic = topic
		a.topicSet = true
	}
}

// Function overrides the default function, which is the caller's function name.
func Function(function string) AddOption {
	return func(a *addArgs) {
		a.function = function
		a.functionSet = true
	}
}

// Object appends a description of v to the topic.
func Object(v any) AddOption {
	return func(a *addArgs) {
		a.object = v
		a.hasObject = true
	}
}

// Add records text and returns the rendered line. It returns an empty string
// when the log is disabled.
func (l *Log) Add(text string, opts ...AddOption) string {
	if l == nil {
		return ""
	}
	return l.add(2, text, opts)
}

// Addf is Add with fmt.Sprintf formatting.
func (l *Log) Addf(format string, args ...any) string {
	if l == nil {
		return ""
	}
	return l.add(2, fmt.Sprintf(format, args...), nil)
}

func (l *Log) add(skip int, text string, opts []AddOption) string {
	var a addArgs
	for _, opt := range opts {
		opt(&a)
	}

	if !a.topicSet || !a.functionSet {
		topic, function := callerIdentity(skip)
		if !a.topicSet {
			a.topic = topic
		}
		if !a.functionSet {
			a.function = function
		}
	}
	if a.hasObject {
		a.topic = fmt.Sprintf("%s(%v)", a.topic, a.object)
	}

	return l.hub.record(l, a.topic, a.function, text)
}

// callerIdentity returns "dir/file.go" and the short function name of the
// frame skip levels above the function calling callerIdentity.
func callerIdentity(skip int) (string, string) {
	pc, file, _, ok := runtime.Caller(skip + 1)
	if !ok {
		return "?", "?"
	}

	topic := filepath.Base(filepath.Dir(file)) + "/" + filepath.Base(file)

	function := "?"
	if fn := runtime.FuncForPC(pc); fn != nil {
		function = fn.Name()
		if i := strings.LastIndexByte(function, '/'); i >= 0 {
			function = function[i+1:]
		}
		if i := strings.IndexByte(function, '.'); i >= 0 {
			function = function[i+1:]
		}
	}
	return topic, function
}

func (l *Log) Title() string {
	if l == nil {
		return ""
	}
	return l.title
}

func (l *Log) Prefix() string {
	if l == nil {
		return ""
	}
	return l.prefix
}

func (l *Log) SetDisabled(disabled bool) {
	if l == nil {
		return
	}
	l.hub.mu.Lock()
	defer l.hub.mu.Unlock()
	l.disabled = disabled
}

func (l *Log) IsDisabled() bool {
	if l == nil {
		return true
	}
	l.hub.mu.Lock()
	defer l.hub.mu.Unlock()
	return l.disabled
}

func (l *Log) Len() int {
	if l == nil {
		return 0
	}
	l.hub.mu.Lock()
	defer l.hub.mu.Unlock()
	return len(l.entries)
}

// Entry returns the entry at index i. Out-of-range indices yield a zero
// Entry and a warning on the hub's diagnostics logger.
func (l *Log) Entry(i int) Entry {
	if l == nil {
		return Entry{}
	}
	l.hub.mu.Lock()
	defer l.hub.mu.Unlock()

	if i < 0 || i >= len(l.entries) {
		l.hub.diag.Warn("log entry index out of range",
			zap.String("log", l.title),
			zap.Int("index", i),
			zap.Int("count", len(l.entries)),
		)
		return Entry{}
	}
	return l.entries[i]
}

// Last returns the most recent entry.
func (l *Log) Last() (Entry, bool) {
	if l == nil {
		return Entry{}, false
	}
	l.hub.mu.Lock()
	defer l.hub.mu.Unlock()
	if len(l.entries) == 0 {
		return Entry{}, false
	}
	return l.entries[len(l.entries)-1], true
}

// Entries returns a copy of the recorded entries in order.
func (l *Log) Entries() []Entry {
	if l == nil {
		return nil
	}
	l.hub.mu.Lock()
	defer l.hub.mu.Unlock()
	return slices.Clone(l.entries)
}

// All iterates over a snapshot of the entries.
func (l *Log) All() iter.Seq2[int, Entry] {
	return slices.All(l.Entries())
}

// ExportYAML writes the log's entries as YAML.
func (l *Log) ExportYAML(w io.Writer) error {
	return ExportYAML(w, l.Entries())
}
