package logging

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestCategoryHelpers(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	SetLogger(zap.New(core))
	defer SetLogger(zap.NewNop())

	API("chat request model=%s", "gemini-1.5-flash")
	FilesDebug("polling %s", "files/abc")
	FilesWarn("processing timeout")
	APIError("status %d", 500)

	entries := logs.All()
	assert.Len(t, entries, 4)
	assert.Equal(t, "chat request model=gemini-1.5-flash", entries[0].Message)
	assert.Equal(t, zap.DebugLevel, entries[1].Level)
	assert.Equal(t, zap.WarnLevel, entries[2].Level)
	assert.Equal(t, zap.ErrorLevel, entries[3].Level)
}

func TestInitVerbose(t *testing.T) {
	defer SetLogger(zap.NewNop())
	assert.NoError(t, Init(true))
	assert.NoError(t, Init(false))
}
