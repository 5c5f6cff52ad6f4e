package log

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestConfigureLevel(t *testing.T) {
	t.Cleanup(func() { require.NoError(t, Configure("info", []string{"stderr"})) })

	out := filepath.Join(t.TempDir(), "canopy.log")
	require.NoError(t, Configure("warn", []string{out}))
	assert.False(t, Enabled(zapcore.InfoLevel))
	assert.True(t, Enabled(zapcore.WarnLevel))

	OpenDebug()
	assert.True(t, Enabled(zapcore.DebugLevel))
	CloseDebug()
	assert.False(t, Enabled(zapcore.DebugLevel))
	assert.True(t, Enabled(zapcore.InfoLevel))
}

func TestConfigureRejectsUnknownLevel(t *testing.T) {
	assert.Error(t, Configure("loud", nil))
}

func TestStructuredFieldsReachOutput(t *testing.T) {
	t.Cleanup(func() { require.NoError(t, Configure("info", []string{"stderr"})) })

	out := filepath.Join(t.TempDir(), "canopy.log")
	require.NoError(t, Configure("info", []string{out}))
	Infow("transfer committed", "entry", "e-1", "fee", 20)
	Debugw("hidden", "entry", "e-2")
	_ = Sync()

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"msg":"transfer committed"`)
	assert.Contains(t, string(data), `"entry":"e-1"`)
	assert.Contains(t, string(data), `"fee":20`)
	assert.NotContains(t, string(data), "hidden")
}
