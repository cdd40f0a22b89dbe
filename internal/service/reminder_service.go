package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"desk-calendar/internal/model"
	"desk-calendar/internal/notify"
)

// ReminderTitle is shown when the current day has notes.
const ReminderTitle = "You have tasks for today!"

// Reminder is the same-day notification for one date.
type Reminder struct {
	Date  model.Date
	Notes []model.Note
}

func (r Reminder) Title() string {
	return ReminderTitle
}

func (r Reminder) Body() string {
	return FormatNotes(r.Notes)
}

// ReminderService builds human-readable reminders and summaries.
type ReminderService struct {
	notes *NoteService
}

func NewReminderService(notes *NoteService) *ReminderService {
	return &ReminderService{notes: notes}
}

// Today returns the reminder for now's calendar date and whether there is anything to remind about.
func (s *ReminderService) Today(now time.Time) (Reminder, bool) {
	date := model.DateOf(now)
	notes := s.notes.List(date)
	if len(notes) == 0 {
		return Reminder{Date: date}, false
	}
	return Reminder{Date: date, Notes: notes}, true
}

// Notify sends today's reminder to every notifier. It reports whether a reminder was due.
func (s *ReminderService) Notify(ctx context.Context, now time.Time, notifiers ...notify.Notifier) (bool, error) {
	reminder, ok := s.Today(now)
	if !ok {
		return false, nil
	}
	return true, notify.Multi(notifiers).Notify(ctx, reminder.Title(), reminder.Body())
}

// DailySummary renders the notes for now's date followed by the store summary line.
func (s *ReminderService) DailySummary(now time.Time) string {
	date := model.DateOf(now)
	notes := s.notes.List(date)

	var builder strings.Builder
	builder.WriteString(fmt.Sprintf("📅 %s, %s\n\n", now.Weekday(), formatLongDate(date)))
	if len(notes) == 0 {
		builder.WriteString("- no notes for today\n")
	} else {
		builder.WriteString(FormatNotes(notes))
		builder.WriteByte('\n')
	}
	builder.WriteString("\n")
	builder.WriteString(FormatSummary(s.notes.Summary()))

	return strings.TrimSpace(builder.String())
}

// formatLongDate renders a date as "2 January 2006".
func formatLongDate(d model.Date) string {
	return d.Time(time.UTC).Format("2 January 2006")
}
