package textsource

import (
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadText(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "statement.txt")
	require.NoError(t, os.WriteFile(path, []byte("January 5\nCOFFEE SHOP\n4.50\n"), 0644))

	text, err := NewLoader(log.New(io.Discard)).Load(path)
	require.NoError(t, err)
	assert.Equal(t, "January 5\nCOFFEE SHOP\n4.50\n", text)
}

func TestLoadPDFRows(t *testing.T) {
	text, err := NewLoader(log.New(io.Discard)).Load(filepath.Join("testdata", "listing.pdf"))
	require.NoError(t, err)
	assert.Equal(t, []string{
		"12 Mar 24 COLES SUPERMARKET 45.20",
		"13 Mar 24 CRED VOUCHER KMART 19.00",
	}, strings.Split(text, "\n"))
}

func TestLoadBlankPDF(t *testing.T) {
	path := filepath.Join("testdata", "blank.pdf")
	_, err := NewLoader(log.New(io.Discard)).Load(path)
	require.ErrorIs(t, err, ErrNoText)
	assert.Contains(t, err.Error(), path)
}

func TestLoadErrors(t *testing.T) {
	dir := t.TempDir()
	empty := filepath.Join(dir, "empty.txt")
	require.NoError(t, os.WriteFile(empty, []byte("  \n"), 0644))
	garbage := filepath.Join(dir, "broken.PDF")
	require.NoError(t, os.WriteFile(garbage, []byte("this is not a pdf"), 0644))

	tests := []struct {
		name string
		path string
		is   error
	}{
		{name: "missing", path: filepath.Join(dir, "missing.txt"), is: os.ErrNotExist},
		{name: "empty", path: empty, is: ErrNoText},
		{name: "not a pdf", path: garbage},
	}

	loader := NewLoader(log.New(io.Discard))
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := loader.Load(tc.path)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.path)
			if tc.is != nil {
				assert.ErrorIs(t, err, tc.is)
			}
		})
	}
}
