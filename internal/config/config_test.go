// Public domain.

package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lulin-kinder/trigger/internal/config"
)

func TestLoad(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "data")
	t.Setenv("KINDER_DATA_PATH", dir)
	t.Setenv("SLACK_BOT_TOKEN", "xoxb-test")
	t.Setenv("SLACK_CHANNEL_ID_CONTROL_ROOM", "C123")

	cfg, err := config.Load()
	require.NoError(t, err)
	assert.Equal(t, dir, cfg.DataPath)
	assert.Equal(t, "xoxb-test", cfg.SlackBotToken)
	assert.Equal(t, "C123", cfg.SlackControlRoom)

	// the data directory is created on load
	st, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, st.IsDir())
}

func TestLoadDefaultsDataPath(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("KINDER_DATA_PATH", "")
	t.Setenv("SLACK_BOT_TOKEN", "")
	t.Setenv("SLACK_CHANNEL_ID_CONTROL_ROOM", "")

	cfg, err := config.Load()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, "Documents", "Kinder_Trigger"), cfg.DataPath)
	assert.Empty(t, cfg.SlackBotToken)
}
