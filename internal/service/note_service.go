package service

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"desk-calendar/internal/model"
	"desk-calendar/internal/store"
)

var (
	ErrEmptyTitle   = errors.New("note title is empty")
	ErrNoteNotFound = errors.New("note not found")
)

// NoteService owns the note store for one session. Every store call goes through
// its mutex, so front ends and scheduled jobs may share it.
type NoteService struct {
	mu     sync.Mutex
	store  *store.Store
	path   string
	color  string
	dirty  bool
	logger *slog.Logger
}

func NewNoteService(st *store.Store, path, color string, logger *slog.Logger) *NoteService {
	if st == nil {
		st = store.New()
	}
	if color == "" {
		color = model.DefaultColor
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &NoteService{store: st, path: path, color: color, logger: logger}
}

// OpenNoteService loads the notes file at path. Load problems are logged and returned,
// but the service is always usable and starts empty when the file could not be read.
// A file that fails to parse is first copied aside with store.CorruptSuffix.
func OpenNoteService(path, color string, logger *slog.Logger) (*NoteService, error) {
	if logger == nil {
		logger = slog.Default()
	}
	st, err := store.Load(path)
	switch {
	case err == nil:
		sum := st.Summarize()
		logger.Debug("notes loaded", "path", path, "notes", sum.TotalNotes, "dates", sum.DatesWithNotes)
	case errors.Is(err, store.ErrEmptyFile):
		logger.Info("notes file is empty", "path", path)
	case errors.Is(err, store.ErrCorrupt):
		logger.Error("failed to load notes, starting empty", "path", path, "error", err)
		if kept, cerr := store.PreserveCorrupt(path); cerr != nil {
			logger.Error("failed to preserve unreadable notes file", "path", path, "error", cerr)
		} else {
			logger.Warn("unreadable notes file preserved", "copy", kept)
		}
	default:
		logger.Error("failed to load notes, starting empty", "path", path, "error", err)
	}
	return NewNoteService(st, path, color, logger), err
}

// Add appends a note to date. An empty color uses the session default.
func (s *NoteService) Add(date model.Date, title, color string) (model.Note, error) {
	if err := date.Validate(); err != nil {
		return model.Note{}, err
	}
	if color == "" {
		color = s.color
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	note, ok := s.store.AddNote(date, title, color)
	if !ok {
		return model.Note{}, ErrEmptyTitle
	}
	s.dirty = true
	s.logger.Debug("note added", "date", date, "id", note.ID)
	return note, nil
}

// Remove deletes the first note on date equal to note.
func (s *NoteService) Remove(date model.Date, note model.Note) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.store.RemoveNote(date, note) {
		return false
	}
	s.dirty = true
	s.logger.Debug("note removed", "date", date, "id", note.ID)
	return true
}

// RemoveAt deletes the note at a zero-based position on date.
func (s *NoteService) RemoveAt(date model.Date, index int) (model.Note, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	notes := s.store.Notes(date)
	if index < 0 || index >= len(notes) {
		return model.Note{}, fmt.Errorf("%w: %s #%d", ErrNoteNotFound, date, index+1)
	}
	note := notes[index]
	s.store.RemoveNote(date, note)
	s.dirty = true
	s.logger.Debug("note removed", "date", date, "id", note.ID)
	return note, nil
}

// RemoveByID deletes the note with id on date.
func (s *NoteService) RemoveByID(date model.Date, id int) (model.Note, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, note := range s.store.Notes(date) {
		if note.ID == id {
			s.store.RemoveNote(date, note)
			s.dirty = true
			return note, nil
		}
	}
	return model.Note{}, fmt.Errorf("%w: %s id %d", ErrNoteNotFound, date, id)
}

// Select makes date current: it is created in the store if missing and its notes returned.
func (s *NoteService) Select(date model.Date) []model.Note {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.store.Contains(date) && date.Validate() == nil {
		s.store.GetOrCreate(date)
		s.dirty = true
	}
	return s.store.Notes(date)
}

// List returns the notes on date without touching the store.
func (s *NoteService) List(date model.Date) []model.Note {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.store.Notes(date)
}

func (s *NoteService) HasNotes(date model.Date) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.store.HasNotes(date)
}

func (s *NoteService) Summary() store.Summary {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.store.Summarize()
}

// Month returns day -> note count for days of the month that have notes.
func (s *NoteService) Month(year int, month time.Month) map[int]int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.store.Month(year, month)
}

func (s *NoteService) Dates() []model.Date {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.store.Dates()
}

func (s *NoteService) Snapshot() map[model.Date][]model.Note {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.store.Snapshot()
}

// Dirty reports whether there are changes since the last commit.
func (s *NoteService) Dirty() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.dirty
}

func (s *NoteService) Path() string {
	return s.path
}

// Commit saves the store to the session path. On failure the in-memory state is kept
// and the session stays dirty.
func (s *NoteService) Commit() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.store.Save(s.path); err != nil {
		s.logger.Error("failed to save notes", "path", s.path, "error", err)
		return err
	}
	s.dirty = false
	sum := s.store.Summarize()
	s.logger.Info("notes saved", "path", s.path, "notes", sum.TotalNotes, "dates", sum.DatesWithNotes)
	return nil
}

// CommitIfDirty saves only when something changed. It reports whether a save happened.
func (s *NoteService) CommitIfDirty() (bool, error) {
	if !s.Dirty() {
		return false, nil
	}
	if err := s.Commit(); err != nil {
		return false, err
	}
	return true, nil
}
