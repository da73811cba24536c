package debug

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestLog_NoopByDefault(t *testing.T) {
	SetLogger(nil)
	assert.NotPanics(t, func() {
		Log("nothing %d", 1)
	})
}

func TestLog_WritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "debug.log")
	require.NoError(t, Init(path))
	t.Cleanup(func() { _ = Close() })

	Log("popup %s opened", "menu")
	require.NoError(t, Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "popup menu opened")
}

func TestSetLogger_StructuredFields(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	SetLogger(zap.New(core))
	t.Cleanup(func() { SetLogger(nil) })

	Logger().Debug("transition", zap.String("reason", "hover"))
	Logf("flip to %s", "top")

	require.Equal(t, 2, logs.Len())
	entries := logs.All()
	assert.Equal(t, "hover", entries[0].ContextMap()["reason"])
	assert.Equal(t, "flip to top", entries[1].Message)
}
