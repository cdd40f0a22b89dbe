package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"DESKCALENDAR_CONFIG", "NOTES_FILE", "NOTE_COLOR", "ARCHIVE_DSN",
		"TELEGRAM_TOKEN", "TELEGRAM_CHAT_ID", "REMINDER_TIME", "AUTOSAVE_INTERVAL_MINUTES",
	} {
		t.Setenv(key, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
	assert.Equal(t, "tasks.json", cfg.NotesFile)
	assert.Equal(t, "#3ea85a", cfg.NoteColor)
}

func TestLoadFileThenEnv(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
notes_file: /data/notes.json
note_color: "#3e5ea8"
telegram_chat_id: 42
reminder_time: "07:30"
autosave_interval: 10m
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	t.Setenv("NOTES_FILE", "/override/notes.json")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "/override/notes.json", cfg.NotesFile)
	assert.Equal(t, "#3e5ea8", cfg.NoteColor)
	assert.Equal(t, int64(42), cfg.TelegramChatID)
	assert.Equal(t, "07:30", cfg.ReminderTime)
	assert.Equal(t, 10*time.Minute, cfg.AutosaveInterval)
	assert.Equal(t, DefaultArchiveDSN, cfg.ArchiveDSN)
}

func TestLoadConfigPathFromEnv(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("archive_dsn: archive.db\n"), 0o644))
	t.Setenv("DESKCALENDAR_CONFIG", path)

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "archive.db", cfg.ArchiveDSN)
}

func TestLoadErrors(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		clearEnv(t)
		_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
		assert.Error(t, err)
	})

	t.Run("bad chat id", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("TELEGRAM_CHAT_ID", "abc")
		_, err := Load("")
		assert.Error(t, err)
	})

	t.Run("bad reminder time", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("REMINDER_TIME", "25:00")
		_, err := Load("")
		assert.Error(t, err)
	})
}

func TestAutosaveEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv("AUTOSAVE_INTERVAL_MINUTES", "15")
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, 15*time.Minute, cfg.AutosaveInterval)

	t.Setenv("AUTOSAVE_INTERVAL_MINUTES", "never")
	cfg, err = Load("")
	require.NoError(t, err)
	assert.Zero(t, cfg.AutosaveInterval)
}

func TestParseClock(t *testing.T) {
	h, m, err := ParseClock("07:05")
	require.NoError(t, err)
	assert.Equal(t, 7, h)
	assert.Equal(t, 5, m)

	for _, bad := range []string{"7", "24:00", "12:60", "ab:cd", ""} {
		_, _, err := ParseClock(bad)
		assert.Error(t, err, bad)
	}
}
