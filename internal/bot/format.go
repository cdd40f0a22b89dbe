package bot

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"desk-calendar/internal/model"
	"desk-calendar/internal/service"
	"desk-calendar/internal/store"
)

// callbackData encodes "delete:<date>:<id>", well under Telegram's 64 byte limit.
func callbackData(date model.Date, noteID int) string {
	return fmt.Sprintf("%s%s:%d", cbDeletePrefix, date, noteID)
}

func parseCallback(data string) (confirmationRequest, error) {
	raw, ok := strings.CutPrefix(data, cbDeletePrefix)
	if !ok {
		return confirmationRequest{}, fmt.Errorf("unknown callback %q", data)
	}
	datePart, idPart, ok := strings.Cut(raw, ":")
	if !ok {
		return confirmationRequest{}, fmt.Errorf("malformed callback %q", data)
	}
	date, err := model.ParseDate(datePart)
	if err != nil {
		return confirmationRequest{}, err
	}
	id, err := strconv.Atoi(idPart)
	if err != nil {
		return confirmationRequest{}, fmt.Errorf("malformed note id in %q", data)
	}
	return confirmationRequest{date: date, noteID: id}, nil
}

// formatDay renders the selected day view in HTML.
func formatDay(date, today model.Date, notes []model.Note, sum store.Summary) string {
	var b strings.Builder
	marker := ""
	if date == today {
		marker = " · today"
	}
	t := date.Time(time.UTC)
	fmt.Fprintf(&b, "<b>%d</b> %s, %s%s\n\n", date.Day, t.Format("January"), t.Format("Monday"), marker)
	if len(notes) == 0 {
		b.WriteString("No notes yet. Send a message to add one.\n")
	} else {
		b.WriteString(escape(service.FormatNotes(notes)))
		b.WriteByte('\n')
	}
	fmt.Fprintf(&b, "\n<i>%s</i>", escape(service.FormatSummary(sum)))
	return b.String()
}

func shortTitle(title string, maxLen int) string {
	clean := strings.TrimSpace(strings.ReplaceAll(title, "\n", " "))
	runes := []rune(clean)
	if len(runes) <= maxLen {
		return clean
	}
	if maxLen <= 1 {
		return string(runes[:maxLen])
	}
	return string(runes[:maxLen-1]) + "…"
}
