// Package store keeps notes keyed by calendar date and persists them to a single JSON file.
//
// A Store is owned by exactly one session and is not safe for concurrent use.
package store

import (
	"strings"
	"time"

	"desk-calendar/internal/model"
)

// NoteList is the ordered sequence of notes for one date. Insertion order is display order.
type NoteList struct {
	Items []model.Note
}

func (l *NoteList) Len() int {
	if l == nil {
		return 0
	}
	return len(l.Items)
}

// Summary is the derived note count across the whole store.
type Summary struct {
	TotalNotes     int
	DatesWithNotes int
}

// Store maps calendar dates to their notes.
type Store struct {
	days   map[model.Date]*NoteList
	nextID int
}

// New returns an empty store.
func New() *Store {
	return &Store{
		days:   make(map[model.Date]*NoteList),
		nextID: 1,
	}
}

// GetOrCreate returns the list for date, inserting an empty one if absent.
func (s *Store) GetOrCreate(date model.Date) *NoteList {
	list, ok := s.days[date]
	if !ok {
		list = &NoteList{Items: []model.Note{}}
		s.days[date] = list
	}
	return list
}

// AddNote appends a note to date. Titles that are blank after trimming are ignored, as
// are dates the notes file cannot represent. Invalid UTF-8 in the title is replaced
// so the stored note matches what a save writes.
func (s *Store) AddNote(date model.Date, title, color string) (model.Note, bool) {
	if strings.TrimSpace(title) == "" || date.Validate() != nil {
		return model.Note{}, false
	}
	note := model.Note{
		ID:    s.nextID,
		Title: strings.ToValidUTF8(title, "\uFFFD"),
		Color: strings.ToValidUTF8(color, "\uFFFD"),
	}
	s.nextID++

	list := s.GetOrCreate(date)
	list.Items = append(list.Items, note)
	return note, true
}

// RemoveNote deletes the first note on date equal to note. The date stays in the store.
func (s *Store) RemoveNote(date model.Date, note model.Note) bool {
	list, ok := s.days[date]
	if !ok {
		return false
	}
	for i, item := range list.Items {
		if item == note {
			list.Items = append(list.Items[:i], list.Items[i+1:]...)
			return true
		}
	}
	return false
}

// Summarize returns the total note count and how many dates have at least one note.
// It is computed on each call, so edits made through GetOrCreate are always counted.
func (s *Store) Summarize() Summary {
	var sum Summary
	for _, list := range s.days {
		sum.TotalNotes += list.Len()
		if list.Len() > 0 {
			sum.DatesWithNotes++
		}
	}
	return sum
}

// HasNotes reports whether date has at least one note.
func (s *Store) HasNotes(date model.Date) bool {
	return s.days[date].Len() > 0
}

// Contains reports whether date is present, even with no notes.
func (s *Store) Contains(date model.Date) bool {
	_, ok := s.days[date]
	return ok
}

// Notes returns a copy of the notes on date.
func (s *Store) Notes(date model.Date) []model.Note {
	list, ok := s.days[date]
	if !ok {
		return nil
	}
	out := make([]model.Note, len(list.Items))
	copy(out, list.Items)
	return out
}

// Dates returns every date in the store, oldest first.
func (s *Store) Dates() []model.Date {
	dates := make([]model.Date, 0, len(s.days))
	for d := range s.days {
		dates = append(dates, d)
	}
	model.SortDates(dates)
	return dates
}

// Month returns day-of-month -> note count for days of the month that have notes.
func (s *Store) Month(year int, month time.Month) map[int]int {
	out := make(map[int]int)
	for d, list := range s.days {
		if d.Year == year && d.Month == month && list.Len() > 0 {
			out[d.Day] = list.Len()
		}
	}
	return out
}

// Len returns the number of dates in the store.
func (s *Store) Len() int {
	return len(s.days)
}

// Snapshot returns a deep copy of the mapping.
func (s *Store) Snapshot() map[model.Date][]model.Note {
	out := make(map[model.Date][]model.Note, len(s.days))
	for d := range s.days {
		out[d] = s.Notes(d)
	}
	return out
}
