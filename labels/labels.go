// Package labels - class name tables loaded from line-oriented label files.
package labels

import (
	"bufio"
	"os"
	"unique"

	"github.com/pkg/errors"
)

var (
	// ErrUnreadable is returned when a label file cannot be opened or read.
	ErrUnreadable = errors.New("label file unreadable")
	// ErrEmpty is returned when a label file holds no lines.
	ErrEmpty = errors.New("label file is empty")
)

// maxLineSize bounds a single label line.
const maxLineSize = 1 << 20

// Label is an interned class name. The zero Label means "no label".
type Label struct {
	name unique.Handle[string]
	ok   bool
}

// NewLabel interns name.
func NewLabel(name string) Label {
	return Label{name: unique.Make(name), ok: true}
}

// Valid reports whether l names a class.
func (l Label) Valid() bool {
	return l.ok
}

// String returns the class name, or "" for the zero Label.
func (l Label) String() string {
	if !l.ok {
		return ""
	}
	return l.name.Value()
}

// Table maps class indices to labels. Index i is line i of the label file.
type Table struct {
	labels []Label
}

// NewTable builds a table from names in index order.
func NewTable(names ...string) *Table {
	t := &Table{labels: make([]Label, len(names))}
	for i, name := range names {
		t.labels[i] = NewLabel(name)
	}
	return t
}

// Load reads a label file with one label per line.
//
// Every line becomes an entry, empty lines included. The table is built all
// or nothing: a read error part way through discards what was read.
//
// Arguments:
//   - path: Path to the label file.
//
// Returns:
//   - *Table: The labels in file order.
//   - error: ErrUnreadable if the file cannot be opened or read, ErrEmpty if it has no lines.
func Load(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(ErrUnreadable, "could not open %s: %v", path, err)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 4096), maxLineSize)

	var names []string
	for scanner.Scan() {
		names = append(names, scanner.Text())
	}

	if err := scanner.Err(); err != nil {
		return nil, errors.Wrapf(ErrUnreadable, "could not read %s: %v", path, err)
	}

	if len(names) == 0 {
		return nil, errors.Wrapf(ErrEmpty, "%s", path)
	}

	return NewTable(names...), nil
}

// Len is the number of labels. A nil table has none.
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.labels)
}

// Resolve returns the label for a class index.
func (t *Table) Resolve(id uint32) (Label, bool) {
	if t == nil || uint64(id) >= uint64(len(t.labels)) {
		return Label{}, false
	}
	return t.labels[id], true
}

// Names returns the class names in index order.
func (t *Table) Names() []string {
	if t == nil {
		return nil
	}
	names := make([]string, len(t.labels))
	for i, l := range t.labels {
		names[i] = l.String()
	}
	return names
}
