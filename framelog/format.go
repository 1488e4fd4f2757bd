package framelog

import (
	"encoding/csv"
	"strconv"
	"strings"
	"unicode/utf8"
)

//go:generate go tool stringer -type=FormatMode

// FormatMode selects how entries are rendered for the sinks.
type FormatMode int

const (
	// FormatDefault renders a single line, moving the text to a second line
	// only when the function name overflows its column.
	FormatDefault FormatMode = iota
	// FormatTabular renders a tab-delimited row of
	// time, frame, prefix, topic, function, text and suffix.
	FormatTabular
	// FormatSecondLine renders the default header and always puts the text
	// on its own line.
	FormatSecondLine
)

// Format controls entry rendering for every log of a Hub.
type Format struct {
	Mode FormatMode

	// BlankBetweenEntries emits an empty line before every entry.
	BlankBetweenEntries bool
	// BlankBetweenFrames emits an empty line before the first entry of a frame.
	BlankBetweenFrames bool

	TitleWidth    int
	TopicWidth    int
	FunctionWidth int
	TimeLayout    string
}

// DefaultFormat returns the format used when a Hub is created without one.
func DefaultFormat() Format {
	return Format{
		Mode:          FormatDefault,
		TitleWidth:    8,
		TopicWidth:    30,
		FunctionWidth: 40,
		TimeLayout:    "15:04:05.000",
	}
}

// Separated reports whether a blank line precedes e.
func (f Format) Separated(e Entry) bool {
	return f.BlankBetweenEntries || (f.BlankBetweenFrames && e.NewFrame)
}

// Line renders e as it appears on a sink. suffix is appended only when non-empty.
func (f Format) Line(title string, e Entry, suffix string) string {
	if f.Mode == FormatTabular {
		return f.row(e, suffix)
	}

	var b strings.Builder
	b.WriteString(e.Time.Format(f.TimeLayout))
	b.WriteByte(' ')
	b.WriteString(frameColumn(e))
	b.WriteByte(' ')
	if e.Prefix != "" {
		b.WriteString(e.Prefix)
		b.WriteByte(' ')
	}
	b.WriteString(fixed(title, f.TitleWidth))
	b.WriteByte(' ')
	b.WriteString(fixed(e.Topic, f.TopicWidth))
	b.WriteByte(' ')
	b.WriteString(e.Function)

	secondLine := f.Mode == FormatSecondLine ||
		(f.FunctionWidth > 0 && utf8.RuneCountInString(e.Function) > f.FunctionWidth)

	if e.Text != "" {
		if secondLine {
			b.WriteByte('\n')
			b.WriteString(strings.Repeat(" ", len(f.TimeLayout)+1))
		} else {
			b.WriteByte(' ')
		}
		b.WriteString(e.Text)
	}

	if suffix != "" {
		b.WriteByte(' ')
		b.WriteString(suffix)
	}

	return b.String()
}

func (f Format) row(e Entry, suffix string) string {
	var b strings.Builder
	w := csv.NewWriter(&b)
	w.Comma = '\t'
	_ = w.Write([]string{
		e.Time.Format(f.TimeLayout),
		strconv.FormatUint(e.Frame, 10),
		e.Prefix,
		e.Topic,
		e.Function,
		e.Text,
		suffix,
	})
	w.Flush()
	return strings.TrimSuffix(b.String(), "\n")
}

func frameColumn(e Entry) string {
	mark := " "
	if e.NewFrame {
		mark = "•"
	}
	return mark + "F" + fixed(strconv.FormatUint(e.Frame, 10), 6)
}

// fixed pads or truncates s to exactly n runes. n <= 0 leaves s untouched.
func fixed(s string, n int) string {
	if n <= 0 {
		return s
	}
	count := utf8.RuneCountInString(s)
	if count == n {
		return s
	}
	if count < n {
		return s + strings.Repeat(" ", n-count)
	}
	runes := []rune(s)
	return string(runes[:n])
}
