package service

import (
	"fmt"
	"strings"
	"time"

	"desk-calendar/internal/model"
	"desk-calendar/internal/store"
)

// FormatSummary renders the one-line store summary.
func FormatSummary(sum store.Summary) string {
	return fmt.Sprintf("%d tasks - %d dates with tasks", sum.TotalNotes, sum.DatesWithNotes)
}

// FormatNotes renders notes as a numbered list, one per line.
func FormatNotes(notes []model.Note) string {
	var b strings.Builder
	for i, note := range notes {
		fmt.Fprintf(&b, "%d. %s\n", i+1, strings.TrimSpace(note.Title))
	}
	return strings.TrimSuffix(b.String(), "\n")
}

// FormatMonth renders a Monday-first month grid. Days with notes carry a '*',
// today is marked with '>'.
func FormatMonth(year int, month time.Month, counts map[int]int, today model.Date) string {
	var b strings.Builder
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	fmt.Fprintf(&b, "%s %d\n", first.Format("January"), year)
	b.WriteString(" Mo  Tu  We  Th  Fr  Sa  Su\n")

	offset := (int(first.Weekday()) + 6) % 7
	b.WriteString(strings.Repeat("    ", offset))

	days := model.DaysInMonth(year, month)
	col := offset
	for day := 1; day <= days; day++ {
		prefix, mark := " ", " "
		if (model.Date{Year: year, Month: month, Day: day}) == today {
			prefix = ">"
		}
		if counts[day] > 0 {
			mark = "*"
		}
		fmt.Fprintf(&b, "%s%2d%s", prefix, day, mark)
		col++
		if col == 7 && day != days {
			b.WriteByte('\n')
			col = 0
		}
	}

	lines := strings.Split(b.String(), "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight(line, " ")
	}
	return strings.Join(lines, "\n")
}
