package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"desk-calendar/internal/model"
)

const (
	DefaultNotesFile        = "tasks.json"
	DefaultArchiveDSN       = "deskcalendar.db"
	DefaultReminderTime     = "09:00"
	DefaultAutosaveInterval = 5 * time.Minute
)

// Config keeps runtime settings for the calendar.
type Config struct {
	NotesFile        string        `yaml:"notes_file"`
	NoteColor        string        `yaml:"note_color"`
	ArchiveDSN       string        `yaml:"archive_dsn"`
	TelegramToken    string        `yaml:"telegram_token"`
	TelegramChatID   int64         `yaml:"telegram_chat_id"`
	ReminderTime     string        `yaml:"reminder_time"`
	AutosaveInterval time.Duration `yaml:"autosave_interval"`
}

// Default returns the configuration used when nothing is set.
func Default() Config {
	return Config{
		NotesFile:        DefaultNotesFile,
		NoteColor:        model.DefaultColor,
		ArchiveDSN:       DefaultArchiveDSN,
		ReminderTime:     DefaultReminderTime,
		AutosaveInterval: DefaultAutosaveInterval,
	}
}

// Load builds the configuration from defaults, then the optional YAML file at path,
// then environment variables.
func Load(path string) (Config, error) {
	cfg := Default()

	if path == "" {
		path = strings.TrimSpace(os.Getenv("DESKCALENDAR_CONFIG"))
	}
	if path != "" {
		if err := loadFile(path, &cfg); err != nil {
			return cfg, err
		}
	}

	if err := applyEnv(&cfg); err != nil {
		return cfg, err
	}

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Validate checks values that would otherwise fail later at scheduling time.
func (c Config) Validate() error {
	if strings.TrimSpace(c.NotesFile) == "" {
		return errors.New("notes file path is required")
	}
	if c.ReminderTime != "" {
		if _, _, err := ParseClock(c.ReminderTime); err != nil {
			return fmt.Errorf("reminder time: %w", err)
		}
	}
	if c.AutosaveInterval < 0 {
		return fmt.Errorf("autosave interval must not be negative, got %s", c.AutosaveInterval)
	}
	return nil
}

// ParseClock parses an HH:MM wall-clock time.
func ParseClock(value string) (hour, minute int, err error) {
	parts := strings.Split(strings.TrimSpace(value), ":")
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("invalid time %q, expected HH:MM", value)
	}
	hour, err = strconv.Atoi(parts[0])
	if err != nil || hour < 0 || hour > 23 {
		return 0, 0, fmt.Errorf("invalid hour in %q", value)
	}
	minute, err = strconv.Atoi(parts[1])
	if err != nil || minute < 0 || minute > 59 {
		return 0, 0, fmt.Errorf("invalid minute in %q", value)
	}
	return hour, minute, nil
}

func loadFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("config file %q not found", path)
	}
	if err != nil {
		return fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config %q: %w", path, err)
	}
	return nil
}

func applyEnv(cfg *Config) error {
	if v := env("NOTES_FILE"); v != "" {
		cfg.NotesFile = v
	}
	if v := env("NOTE_COLOR"); v != "" {
		cfg.NoteColor = v
	}
	if v := env("ARCHIVE_DSN"); v != "" {
		cfg.ArchiveDSN = v
	}
	if v := env("TELEGRAM_TOKEN"); v != "" {
		cfg.TelegramToken = v
	}
	if v := env("TELEGRAM_CHAT_ID"); v != "" {
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return fmt.Errorf("TELEGRAM_CHAT_ID must be a number: %w", err)
		}
		cfg.TelegramChatID = id
	}
	if v := env("REMINDER_TIME"); v != "" {
		cfg.ReminderTime = v
	}
	if v := env("AUTOSAVE_INTERVAL_MINUTES"); v != "" {
		cfg.AutosaveInterval = parseMinutes(v)
	}
	return nil
}

// parseMinutes turns a minute count into a duration; anything unparsable disables autosave.
func parseMinutes(raw string) time.Duration {
	d, err := time.ParseDuration(raw + "m")
	if err != nil || d <= 0 {
		return 0
	}
	return d
}

func env(key string) string {
	return strings.TrimSpace(os.Getenv(key))
}
