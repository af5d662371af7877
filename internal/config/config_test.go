package config

import (
	"testing"
	"time"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const dir = "/home/steve/.config/propedit"

func TestManager_LoadMissingUsesDefaults(t *testing.T) {
	fsys := afero.NewMemMapFs()
	m := NewManager(fsys, dir)

	require.NoError(t, m.Load())

	assert.Equal(t, DefaultConfig(), m.Get())
	exists, _ := afero.Exists(fsys, m.Path())
	assert.False(t, exists)
}

func TestManager_LoadPartialAndExpand(t *testing.T) {
	t.Setenv("PROPEDIT_TEST_LOGS", "/var/log")
	fsys := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fsys, dir+"/config.json",
		[]byte(`{"close_after_save": true, "log_file": "${PROPEDIT_TEST_LOGS}/propedit.log", "theme": "$PROPEDIT_UNSET_VAR"}`), 0o644))
	m := NewManager(fsys, dir)

	require.NoError(t, m.Load())

	cfg := m.Get()
	assert.True(t, cfg.CloseAfterSave)
	assert.Equal(t, "/var/log/propedit.log", cfg.LogFile)
	assert.Equal(t, "$PROPEDIT_UNSET_VAR", cfg.Theme)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, time.Second, cfg.CloseDelayDuration())
}

func TestManager_LoadInvalidJSON(t *testing.T) {
	fsys := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fsys, dir+"/config.json", []byte(`{`), 0o644))

	err := NewManager(fsys, dir).Load()
	assert.ErrorContains(t, err, "failed to parse config JSON")
}

func TestManager_SetAndPersist(t *testing.T) {
	fsys := afero.NewMemMapFs()
	m := NewManager(fsys, dir)
	require.NoError(t, m.Load())

	require.NoError(t, m.Set("close_after_save", "true"))
	require.NoError(t, m.Set("close_delay", "250ms"))
	require.NoError(t, m.Set("log_level", "DEBUG"))

	reloaded := NewManager(fsys, dir)
	require.NoError(t, reloaded.Load())
	assert.True(t, reloaded.Get().CloseAfterSave)
	assert.Equal(t, 250*time.Millisecond, reloaded.Get().CloseDelayDuration())

	v, err := reloaded.Value("log_level")
	require.NoError(t, err)
	assert.Equal(t, "debug", v)
}

func TestManager_SetRejects(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{name: "unknown_key", key: "lm_studio_url", value: "x"},
		{name: "bad_bool", key: "reveal_secrets", value: "sometimes"},
		{name: "bad_duration", key: "close_delay", value: "soon"},
		{name: "negative_duration", key: "close_delay", value: "-1s"},
		{name: "bad_level", key: "log_level", value: "trace"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fsys := afero.NewMemMapFs()
			m := NewManager(fsys, dir)

			assert.Error(t, m.Set(tt.key, tt.value))
			assert.Equal(t, DefaultConfig(), m.Get())
		})
	}

	_, err := NewManager(afero.NewMemMapFs(), dir).Value("nope")
	assert.ErrorIs(t, err, ErrUnknownKey)
}

func TestKeys(t *testing.T) {
	assert.Equal(t, []string{"close_after_save", "close_delay", "log_file", "log_level", "reveal_secrets", "theme"}, Keys())
}
