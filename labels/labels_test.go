package labels

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeLabels(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "labels.txt")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    []string
	}{
		{"trailing newline", "person\nbicycle\ncar\n", []string{"person", "bicycle", "car"}},
		{"no trailing newline", "person\nbicycle", []string{"person", "bicycle"}},
		{"empty lines kept", "person\n\ncar\n\n", []string{"person", "", "car", ""}},
		{"single blank line", "\n", []string{""}},
		{"spaces preserved", " traffic light \n", []string{" traffic light "}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			table, err := Load(writeLabels(t, tt.content))
			require.NoError(t, err)
			assert.Equal(t, len(tt.want), table.Len())
			assert.Equal(t, tt.want, table.Names())
		})
	}
}

func TestLoadEmpty(t *testing.T) {
	table, err := Load(writeLabels(t, ""))
	assert.Nil(t, table)
	assert.True(t, errors.Is(err, ErrEmpty), "got %v", err)
}

func TestLoadUnreadable(t *testing.T) {
	table, err := Load(filepath.Join(t.TempDir(), "missing.txt"))
	assert.Nil(t, table)
	assert.True(t, errors.Is(err, ErrUnreadable), "got %v", err)

	// A directory opens but fails on the first read.
	table, err = Load(t.TempDir())
	assert.Nil(t, table)
	assert.True(t, errors.Is(err, ErrUnreadable), "got %v", err)
}

func TestLoadLineTooLong(t *testing.T) {
	long := "person\n" + strings.Repeat("x", maxLineSize+1) + "\n"
	table, err := Load(writeLabels(t, long))
	assert.Nil(t, table, "partially read tables are discarded")
	assert.True(t, errors.Is(err, ErrUnreadable), "got %v", err)
}

func TestResolve(t *testing.T) {
	table := NewTable("person", "bicycle", "car")

	l, ok := table.Resolve(1)
	require.True(t, ok)
	assert.Equal(t, "bicycle", l.String())
	assert.Equal(t, NewLabel("bicycle"), l)

	_, ok = table.Resolve(3)
	assert.False(t, ok)
	l, ok = table.Resolve(5)
	assert.False(t, ok)
	assert.False(t, l.Valid())

	var none *Table
	_, ok = none.Resolve(0)
	assert.False(t, ok)
	assert.Nil(t, none.Names())
}

func TestZeroLabel(t *testing.T) {
	var l Label
	assert.False(t, l.Valid())
	assert.Equal(t, "", l.String())
	assert.NotEqual(t, NewLabel(""), l, "an empty class name is still a label")
}

func TestCOCO(t *testing.T) {
	table := COCO()
	assert.Equal(t, 81, table.Len())

	l, ok := table.Resolve(1)
	require.True(t, ok)
	assert.Equal(t, "person", l.String())

	l, ok = table.Resolve(80)
	require.True(t, ok)
	assert.Equal(t, "toothbrush", l.String())

	_, ok = table.Resolve(81)
	assert.False(t, ok)
}
