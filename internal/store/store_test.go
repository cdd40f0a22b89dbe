package store

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"desk-calendar/internal/model"
)

var (
	d1 = model.Date{Year: 2024, Month: time.May, Day: 1}
	d2 = model.Date{Year: 2024, Month: time.May, Day: 2}
	d3 = model.Date{Year: 2024, Month: time.June, Day: 10}
)

func TestGetOrCreateIsIdempotent(t *testing.T) {
	s := New()

	first := s.GetOrCreate(d1)
	second := s.GetOrCreate(d1)

	assert.Same(t, first, second)
	assert.Equal(t, 1, s.Len())
	assert.True(t, s.Contains(d1))
	assert.False(t, s.HasNotes(d1))
	assert.Empty(t, first.Items)
}

func TestAddNote(t *testing.T) {
	s := New()

	first, ok := s.AddNote(d1, "Buy milk", model.DefaultColor)
	require.True(t, ok)
	second, ok := s.AddNote(d1, "Call mom", "#ff0000")
	require.True(t, ok)

	assert.NotEqual(t, first.ID, second.ID)
	assert.Equal(t, []model.Note{first, second}, s.Notes(d1))
	assert.True(t, s.HasNotes(d1))
}

func TestAddNoteRejectsBlankTitle(t *testing.T) {
	s := New()
	s.AddNote(d1, "Existing", model.DefaultColor)
	before := s.Notes(d1)

	for _, title := range []string{"", "   ", "\t\n"} {
		_, ok := s.AddNote(d1, title, model.DefaultColor)
		assert.False(t, ok, "title %q", title)
	}

	assert.Equal(t, before, s.Notes(d1))
}

func TestAddThenRemoveKeepsDate(t *testing.T) {
	s := New()
	note, ok := s.AddNote(d1, "Pay rent", model.DefaultColor)
	require.True(t, ok)

	assert.True(t, s.RemoveNote(d1, note))

	assert.True(t, s.Contains(d1))
	assert.Empty(t, s.Notes(d1))
	assert.Equal(t, Summary{}, s.Summarize())
}

func TestRemoveNoteFirstMatchOnly(t *testing.T) {
	s := New()
	a, _ := s.AddNote(d1, "a", model.DefaultColor)
	b, _ := s.AddNote(d1, "b", model.DefaultColor)
	c, _ := s.AddNote(d1, "c", model.DefaultColor)

	assert.True(t, s.RemoveNote(d1, b))
	assert.Equal(t, []model.Note{a, c}, s.Notes(d1))

	t.Run("not found is a no-op", func(t *testing.T) {
		assert.False(t, s.RemoveNote(d1, b))
		assert.False(t, s.RemoveNote(d2, a))
		assert.False(t, s.Contains(d2))
		assert.Len(t, s.Notes(d1), 2)
	})

	t.Run("matches on the whole value", func(t *testing.T) {
		changed := a
		changed.Title = "A"
		assert.False(t, s.RemoveNote(d1, changed))
	})
}

func TestSummarize(t *testing.T) {
	s := New()
	s.AddNote(d1, "one", model.DefaultColor)
	s.AddNote(d1, "two", model.DefaultColor)
	s.GetOrCreate(d2)
	s.AddNote(d3, "three", model.DefaultColor)

	assert.Equal(t, Summary{TotalNotes: 3, DatesWithNotes: 2}, s.Summarize())

	s.AddNote(d2, "four", model.DefaultColor)
	assert.Equal(t, Summary{TotalNotes: 4, DatesWithNotes: 3}, s.Summarize())

	notes := s.Notes(d3)
	s.RemoveNote(d3, notes[0])
	assert.Equal(t, Summary{TotalNotes: 3, DatesWithNotes: 2}, s.Summarize())
}

func TestSummarizeSeesEditsThroughGetOrCreate(t *testing.T) {
	s := New()
	s.AddNote(d1, "one", model.DefaultColor)
	require.Equal(t, Summary{TotalNotes: 1, DatesWithNotes: 1}, s.Summarize())

	list := s.GetOrCreate(d2)
	list.Items = append(list.Items, model.Note{ID: 99, Title: "direct", Color: model.DefaultColor})

	assert.True(t, s.HasNotes(d2))
	assert.Equal(t, Summary{TotalNotes: 2, DatesWithNotes: 2}, s.Summarize())

	list.Items = list.Items[:0]
	assert.Equal(t, Summary{TotalNotes: 1, DatesWithNotes: 1}, s.Summarize())
}

func TestAddNoteRejectsUnrepresentableDate(t *testing.T) {
	s := New()

	for _, d := range []model.Date{
		{Year: 10000, Month: time.January, Day: 1},
		{Year: -1, Month: time.January, Day: 1},
		{Year: 2024, Month: time.February, Day: 30},
		{},
	} {
		_, ok := s.AddNote(d, "far away", model.DefaultColor)
		assert.False(t, ok, "date %s", d)
	}
	assert.Equal(t, 0, s.Len())
}

func TestAddNoteReplacesInvalidUTF8(t *testing.T) {
	s := New()

	note, ok := s.AddNote(d1, "ok\xff", "#3ea85a\xfe")

	require.True(t, ok)
	assert.Equal(t, "ok\uFFFD", note.Title)
	assert.Equal(t, "#3ea85a\uFFFD", note.Color)
	assert.Equal(t, note, s.Notes(d1)[0])
}

func TestNotesReturnsCopy(t *testing.T) {
	s := New()
	s.AddNote(d1, "original", model.DefaultColor)

	notes := s.Notes(d1)
	notes[0].Title = "changed"

	assert.Equal(t, "original", s.Notes(d1)[0].Title)
	assert.Nil(t, s.Notes(d2))
}

func TestDatesAndMonth(t *testing.T) {
	s := New()
	s.AddNote(d3, "june", model.DefaultColor)
	s.AddNote(d2, "may 2", model.DefaultColor)
	s.AddNote(d2, "may 2 again", model.DefaultColor)
	s.GetOrCreate(d1)

	assert.Equal(t, []model.Date{d1, d2, d3}, s.Dates())
	assert.Equal(t, map[int]int{2: 2}, s.Month(2024, time.May))
	assert.Equal(t, map[int]int{10: 1}, s.Month(2024, time.June))
	assert.Empty(t, s.Month(2023, time.May))
}
