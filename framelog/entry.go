package framelog

import (
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"
)

// Entry is a single recorded log event. Entries are values and are never
// modified after a Log records them.
type Entry struct {
	// ID distinguishes otherwise identical entries in memory. It is not
	// part of the serialized form.
	ID uuid.UUID `yaml:"-"`

	Prefix   string    `yaml:"prefix"`
	Time     time.Time `yaml:"time"`
	Frame    uint64    `yaml:"frame"`
	NewFrame bool      `yaml:"new_frame"`
	Topic    string    `yaml:"topic"`
	Function string    `yaml:"function"`
	Text     string    `yaml:"text"`
}

// IsZero reports whether e is the placeholder returned for invalid lookups.
func (e Entry) IsZero() bool {
	return e.ID == uuid.Nil && e.Time.IsZero() && e.Text == "" && e.Topic == ""
}

// ExportYAML writes entries as a YAML sequence.
func ExportYAML(w io.Writer, entries []Entry) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(entries); err != nil {
		return fmt.Errorf("encode entries: %w", err)
	}
	return enc.Close()
}

// ImportYAML reads a sequence previously written by ExportYAML. Imported
// entries carry fresh IDs.
func ImportYAML(r io.Reader) ([]Entry, error) {
	var entries []Entry
	if err := yaml.NewDecoder(r).Decode(&entries); err != nil {
		if err == io.EOF {
			return nil, nil
		}
		return nil, fmt.Errorf("decode entries: %w", err)
	}
	for i := range entries {
		entries[i].ID = uuid.New()
	}
	return entries, nil
}
