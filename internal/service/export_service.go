package service

import (
	"fmt"
	"io"
	"strings"
	"time"

	ics "github.com/arran4/golang-ical"
	"github.com/google/uuid"

	"desk-calendar/internal/config"
	"desk-calendar/internal/model"
)

const ICSProductID = "-//desk-calendar//notes//EN"

// uidNamespace seeds the name-based UUIDs used as event UIDs, so re-exports keep stable ids.
var uidNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("desk-calendar"))

// ExportOptions limits and decorates an iCalendar export. Zero dates mean unbounded.
type ExportOptions struct {
	From      model.Date
	To        model.Date
	AlarmTime string
	Name      string
	Now       time.Time
}

// ExportService renders notes as an iCalendar document.
type ExportService struct {
	notes *NoteService
}

func NewExportService(notes *NoteService) *ExportService {
	return &ExportService{notes: notes}
}

// Export writes one all-day event per note and returns how many were written.
func (s *ExportService) Export(w io.Writer, opts ExportOptions) (int, error) {
	var alarmTrigger string
	if opts.AlarmTime != "" {
		hour, minute, err := config.ParseClock(opts.AlarmTime)
		if err != nil {
			return 0, fmt.Errorf("alarm time: %w", err)
		}
		alarmTrigger = fmt.Sprintf("PT%dH%dM", hour, minute)
	}
	if opts.Now.IsZero() {
		opts.Now = time.Now()
	}
	name := opts.Name
	if name == "" {
		name = "Desk calendar"
	}

	cal := ics.NewCalendar()
	cal.SetProductId(ICSProductID)
	cal.SetMethod(ics.MethodPublish)
	cal.SetXWRCalName(name)
	cal.SetCalscale("GREGORIAN")

	snapshot := s.notes.Snapshot()
	dates := make([]model.Date, 0, len(snapshot))
	for date := range snapshot {
		dates = append(dates, date)
	}
	model.SortDates(dates)

	count := 0
	for _, date := range dates {
		if !opts.From.IsZero() && date.Before(opts.From) {
			continue
		}
		if !opts.To.IsZero() && date.After(opts.To) {
			continue
		}
		for _, note := range snapshot[date] {
			addNoteEvent(cal, date, note, alarmTrigger, opts.Now)
			count++
		}
	}

	if _, err := io.WriteString(w, cal.Serialize()); err != nil {
		return 0, fmt.Errorf("write calendar: %w", err)
	}
	return count, nil
}

func addNoteEvent(cal *ics.Calendar, date model.Date, note model.Note, alarmTrigger string, now time.Time) {
	start := date.Time(time.UTC)
	title := strings.TrimSpace(note.Title)

	event := cal.AddEvent(EventUID(date, note))
	event.SetDtStampTime(now)
	event.SetAllDayStartAt(start)
	event.SetAllDayEndAt(start.AddDate(0, 0, 1))
	event.SetSummary(title)
	setColor(event, note.Color)

	if alarmTrigger != "" {
		alarm := event.AddAlarm()
		alarm.SetAction(ics.ActionDisplay)
		alarm.SetDescription(title)
		alarm.SetTrigger(alarmTrigger)
	}
}

// ColorProperty carries note colors that are not CSS3 color names, such as "#3ea85a".
const ColorProperty = "X-DESK-CALENDAR-COLOR"

// setColor uses COLOR only for CSS3 color names, which is all that property allows.
// Other values are kept in ColorProperty.
func setColor(event *ics.VEvent, color string) {
	color = strings.TrimSpace(color)
	switch {
	case color == "":
	case isColorName(color):
		event.SetProperty(ics.ComponentPropertyColor, strings.ToLower(color))
	default:
		event.SetProperty(ics.ComponentProperty(ColorProperty), color)
	}
}

func isColorName(s string) bool {
	for _, r := range s {
		if (r < 'a' || r > 'z') && (r < 'A' || r > 'Z') {
			return false
		}
	}
	return true
}

// EventUID is stable for a given date and note id.
func EventUID(date model.Date, note model.Note) string {
	name := fmt.Sprintf("%s/%d", date, note.ID)
	return uuid.NewSHA1(uidNamespace, []byte(name)).String() + "@desk-calendar"
}
