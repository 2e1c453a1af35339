package logger

import (
	"bytes"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func capture(t *testing.T, verboseMode bool) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	SetOutput(&buf)
	SetVerbose(verboseMode)
	t.Cleanup(func() {
		SetVerbose(false)
		SetOutput(os.Stderr)
	})
	return &buf
}

func TestSetVerbose(t *testing.T) {
	capture(t, false)
	assert.False(t, IsVerbose())

	SetVerbose(true)
	assert.True(t, IsVerbose())
}

func TestDebug_WhenVerbose(t *testing.T) {
	buf := capture(t, true)

	Debug("test message %s", "arg")

	assert.Equal(t, "[DEBUG] test message arg\n", buf.String())
}

func TestDebugAndInfo_WhenNotVerbose(t *testing.T) {
	buf := capture(t, false)

	Debug("hidden")
	Info("hidden")
	Section("hidden")

	assert.Empty(t, buf.String())
}

func TestWarnAndError_AlwaysPrinted(t *testing.T) {
	buf := capture(t, false)

	Warn("careful %d", 1)
	Error("broken")

	assert.Equal(t, "[WARN] careful 1\n[ERROR] broken\n", buf.String())
}

func TestSection_WhenVerbose(t *testing.T) {
	buf := capture(t, true)

	Section("Regenerate")

	assert.Equal(t, "\n=== Regenerate ===\n", buf.String())
}

func TestEntry_TagsLines(t *testing.T) {
	buf := capture(t, true)

	entry := With("run-1")
	entry.Info("state %s", "REGENERATED")
	entry.Debug("detail")

	assert.Equal(t, "[INFO] (run-1) state REGENERATED\n[DEBUG] (run-1) detail\n", buf.String())
}

func TestEntry_WarnWhenNotVerbose(t *testing.T) {
	buf := capture(t, false)

	With("run-2").Warn("pushed without pull request")

	assert.Equal(t, "[WARN] (run-2) pushed without pull request\n", buf.String())
}
