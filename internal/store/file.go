package store

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"desk-calendar/internal/model"
)

const (
	// BackupSuffix is appended to the notes path to name the copy of the previous save.
	BackupSuffix = ".bak"
	// CorruptSuffix names the copy of a notes file that failed to load.
	CorruptSuffix = ".corrupt"
	// TempFilePrefix names the scratch files used for atomic saves.
	TempFilePrefix  = ".deskcalendar-tmp-"
	FilePermissions = 0o644
)

// Load reads the notes file at path. It always returns a usable store: a missing file
// yields an empty store and no error; an empty or corrupt file yields an empty store
// together with an error wrapping ErrEmptyFile or ErrCorrupt.
func Load(path string) (*Store, error) {
	s := New()

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return s, nil
	}
	if err != nil {
		return s, fmt.Errorf("read notes file %q: %w", path, err)
	}

	if len(bytes.TrimSpace(data)) == 0 {
		return s, fmt.Errorf("%w: %s", ErrEmptyFile, path)
	}

	raw, err := decodeDays(data)
	if err != nil {
		return s, fmt.Errorf("%w: %s: %v", ErrCorrupt, path, err)
	}

	s.restore(raw)
	return s, nil
}

// Save writes the whole mapping, empty dates included, to path. The previous file is
// kept next to it with BackupSuffix.
func (s *Store) Save(path string) error {
	data, err := s.MarshalJSON()
	if err != nil {
		return fmt.Errorf("%w %q: %w", ErrWrite, path, err)
	}

	if _, err := os.Stat(path); err == nil {
		if err := copyFile(path, path+BackupSuffix); err != nil {
			slog.Warn("failed to back up notes file", "path", path, "error", err)
		}
	}

	if err := writeFileAtomic(path, data, FilePermissions); err != nil {
		return fmt.Errorf("%w %q: %w", ErrWrite, path, err)
	}
	return nil
}

// MarshalJSON renders the store in the file format: an object keyed by YYYY-MM-DD.
func (s *Store) MarshalJSON() ([]byte, error) {
	return json.MarshalIndent(s.Snapshot(), "", "  ")
}

// decodeDays reads the top-level object key by key. Keys that name the same day, such as
// "2024-05-01" and its legacy form "2024-05-01T00:00:00", have their lists joined in
// file order instead of the later key replacing the earlier one.
func decodeDays(data []byte) (map[model.Date][]model.Note, error) {
	dec := json.NewDecoder(bytes.NewReader(data))

	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, fmt.Errorf("expected a JSON object, got %v", tok)
	}

	days := make(map[model.Date][]model.Note)
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		key, ok := tok.(string)
		if !ok {
			return nil, fmt.Errorf("unexpected token %v", tok)
		}
		date, err := model.ParseDate(key)
		if err != nil {
			return nil, err
		}

		var notes []model.Note
		if err := dec.Decode(&notes); err != nil {
			return nil, fmt.Errorf("notes for %q: %w", key, err)
		}
		merged, ok := days[date]
		if !ok {
			merged = []model.Note{}
		}
		days[date] = append(merged, notes...)
	}

	if _, err := dec.Token(); err != nil {
		return nil, err
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, errors.New("unexpected data after the top-level object")
	}
	return days, nil
}

// restore fills s from decoded data. Notes without an id, or with an id already
// taken, get a fresh one so ids stay unique across the store.
func (s *Store) restore(raw map[model.Date][]model.Note) {
	dates := make([]model.Date, 0, len(raw))
	for d := range raw {
		dates = append(dates, d)
	}
	model.SortDates(dates)

	seen := make(map[int]bool)
	maxID := 0
	var pending []*model.Note

	for _, d := range dates {
		items := raw[d]
		if items == nil {
			items = []model.Note{}
		}
		list := &NoteList{Items: items}
		s.days[d] = list
		for i := range list.Items {
			note := &list.Items[i]
			if note.ID <= 0 || seen[note.ID] {
				pending = append(pending, note)
				continue
			}
			seen[note.ID] = true
			if note.ID > maxID {
				maxID = note.ID
			}
		}
	}

	s.nextID = maxID + 1
	for _, note := range pending {
		note.ID = s.nextID
		s.nextID++
	}
}

// PreserveCorrupt copies the file at path to path+CorruptSuffix. Backups rotate on every
// save, so an unreadable file is set aside here before the session writes over it.
func PreserveCorrupt(path string) (string, error) {
	dst := path + CorruptSuffix
	if err := copyFile(path, dst); err != nil {
		return "", fmt.Errorf("preserve notes file %q: %w", path, err)
	}
	return dst, nil
}

func copyFile(src, dst string) error {
	data, err := os.ReadFile(src)
	if err != nil {
		return err
	}
	return writeFileAtomic(dst, data, FilePermissions)
}

// writeFileAtomic writes data to a temp file in the target directory and renames it
// over filename.
func writeFileAtomic(filename string, data []byte, perm os.FileMode) error {
	dir := filepath.Dir(filename)

	tmpFile, err := os.CreateTemp(dir, TempFilePrefix+"*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	defer os.Remove(tmpFile.Name())

	if _, err := tmpFile.Write(data); err != nil {
		tmpFile.Close()
		return fmt.Errorf("write temp file: %w", err)
	}

	if err := tmpFile.Sync(); err != nil {
		tmpFile.Close()
		return fmt.Errorf("sync temp file: %w", err)
	}

	if err := tmpFile.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}

	if err := os.Chmod(tmpFile.Name(), perm); err != nil {
		return fmt.Errorf("chmod temp file: %w", err)
	}

	if err := os.Rename(tmpFile.Name(), filename); err != nil {
		return fmt.Errorf("rename temp file to %s: %w", filename, err)
	}
	return nil
}
