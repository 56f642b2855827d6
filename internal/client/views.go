package client

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/justestif/wellness-journal/internal/journal"
)

const timeFormat = "2006-01-02 15:04"

func newTable(w io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
}

// RenderNotes writes a one-line-per-note table.
func RenderNotes(w io.Writer, notes []journal.Note) error {
	if len(notes) == 0 {
		_, err := fmt.Fprintln(w, "No notes yet.")
		return err
	}

	tw := newTable(w)
	fmt.Fprintln(tw, "ID\t\tTITLE\tCATEGORY\tUPDATED")
	for _, n := range notes {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n",
			n.ID, n.Emoji, truncate(n.Title, 40), n.Category, n.UpdatedAt.Local().Format(timeFormat))
	}
	return tw.Flush()
}

// RenderNote writes a single note in full.
func RenderNote(w io.Writer, n *journal.Note) error {
	tw := newTable(w)
	fmt.Fprintf(tw, "ID:\t%s\n", n.ID)
	fmt.Fprintf(tw, "Title:\t%s %s\n", n.Emoji, n.Title)
	fmt.Fprintf(tw, "Category:\t%s\n", n.Category)
	fmt.Fprintf(tw, "Colors:\t%s on %s\n", n.TextColor, n.BackgroundColor)
	if len(n.Stickers) > 0 {
		fmt.Fprintf(tw, "Stickers:\t%s\n", strings.Join(n.Stickers, " "))
	}
	fmt.Fprintf(tw, "Created:\t%s\n", n.CreatedAt.Local().Format(timeFormat))
	fmt.Fprintf(tw, "Updated:\t%s\n", n.UpdatedAt.Local().Format(timeFormat))
	if err := tw.Flush(); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "\n%s\n", n.Content)
	return err
}

// RenderCategories writes each category with the number of notes in it.
func RenderCategories(w io.Writer, notes []journal.Note) error {
	counts := make(map[string]int, len(journal.Categories))
	for _, n := range notes {
		counts[n.Category]++
	}

	tw := newTable(w)
	fmt.Fprintln(tw, "CATEGORY\tNOTES")
	for _, c := range journal.Categories {
		fmt.Fprintf(tw, "%s\t%d\n", c, counts[c])
	}
	return tw.Flush()
}

// RenderMoods writes a one-line-per-day table.
func RenderMoods(w io.Writer, moods []journal.Mood) error {
	if len(moods) == 0 {
		_, err := fmt.Fprintln(w, "No moods recorded.")
		return err
	}

	tw := newTable(w)
	fmt.Fprintln(tw, "DATE\tMOOD\tCOLOR")
	for _, m := range moods {
		fmt.Fprintf(tw, "%s\t%s\t%s\n", m.Date, m.MoodEmoji, m.MoodColor)
	}
	return tw.Flush()
}

// RenderCalendar draws a Sunday-first month grid, marking each day that has
// a mood with its emoji.
func RenderCalendar(w io.Writer, year int, month time.Month, moods []journal.Mood) error {
	byDate := make(map[string]string, len(moods))
	for _, m := range moods {
		byDate[m.Date] = m.MoodEmoji
	}

	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	days := first.AddDate(0, 1, -1).Day()

	var b strings.Builder
	fmt.Fprintf(&b, "%s %d\n", month, year)
	b.WriteString("Su\tMo\tTu\tWe\tTh\tFr\tSa\n")

	col := int(first.Weekday())
	b.WriteString(strings.Repeat("\t", col))
	for day := 1; day <= days; day++ {
		cell := fmt.Sprintf("%2d", day)
		if emoji, ok := byDate[first.AddDate(0, 0, day-1).Format(journal.DateLayout)]; ok {
			cell += " " + emoji
		}
		b.WriteString(cell)

		col++
		if col == 7 {
			b.WriteString("\n")
			col = 0
		} else if day < days {
			b.WriteString("\t")
		}
	}
	if col != 0 {
		b.WriteString("\n")
	}

	tw := newTable(w)
	if _, err := io.WriteString(tw, b.String()); err != nil {
		return err
	}
	return tw.Flush()
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
