package main

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLineScannerHandlesLongPastedLine(t *testing.T) {
	// A pasted code block can blow past the default 64 KiB token
	// limit; the session must keep reading afterwards.
	long := strings.Repeat("x", 1<<20)
	scanner := newLineScanner(strings.NewReader(long + "\n/help\n"))

	require.True(t, scanner.Scan(), "long line should scan")
	assert.Len(t, scanner.Text(), 1<<20)
	require.True(t, scanner.Scan(), "line after the long one should scan")
	assert.Equal(t, "/help", scanner.Text())
	assert.False(t, scanner.Scan())
	assert.NoError(t, scanner.Err())
}
