// Package extract parses the free-form LLM completion text produced for a
// voice note into a structured domain.Note. The parsing strategy lives
// behind this narrow surface so it can be hardened without touching the
// pipeline or the LLM clients.
package extract

import (
	"encoding/json"
	"strings"
	"time"

	"voicenote/internal/domain"
)

type fields struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Date        string   `json:"date"`
	StartTime   string   `json:"start_time"`
	EndTime     string   `json:"end_time"`
	Location    string   `json:"location"`
	Priority    string   `json:"priority"`
	Category    string   `json:"category"`
	Attendees   []string `json:"attendees"`
	Notes       string   `json:"notes"`
}

// Parse turns a raw LLM response into a Note. A response that cannot be
// parsed degrades to a fallback note built from the transcript, with no
// schedulable intent; it is not an error. Relative-date resolution happens
// in the model (the prompt carries today's date); now is only used when a
// time is given without a date.
func Parse(raw, transcript string, now time.Time) *domain.Note {
	text := trimFences(raw)

	// The model sometimes wraps the JSON in prose; take the outermost object.
	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start < 0 || end <= start {
		return Fallback(transcript)
	}

	var f fields
	if err := json.Unmarshal([]byte(text[start:end+1]), &f); err != nil {
		return Fallback(transcript)
	}

	note := &domain.Note{
		Title:      strings.TrimSpace(f.Title),
		Body:       strings.TrimSpace(f.Description),
		Location:   strings.TrimSpace(f.Location),
		Priority:   domain.NormalizePriority(f.Priority),
		Category:   domain.NormalizeCategory(f.Category),
		Extra:      strings.TrimSpace(f.Notes),
		Transcript: transcript,
	}
	if note.Title == "" {
		note.Title = titleFromTranscript(transcript)
	}
	if note.Body == "" {
		note.Body = strings.TrimSpace(transcript)
	}
	for _, a := range f.Attendees {
		if strings.Contains(a, "@") {
			note.Attendees = append(note.Attendees, strings.TrimSpace(a))
		}
	}

	note.Start, note.End = resolveTimes(f.Date, f.StartTime, f.EndTime, now)

	return note
}

// Fallback builds a minimal note straight from the transcript, used when
// the model response carries no parseable structure.
func Fallback(transcript string) *domain.Note {
	transcript = strings.TrimSpace(transcript)
	return &domain.Note{
		Title:      titleFromTranscript(transcript),
		Body:       transcript,
		Priority:   domain.PriorityMedium,
		Category:   domain.CategoryOther,
		Transcript: transcript,
	}
}

func resolveTimes(date, startClock, endClock string, now time.Time) (*time.Time, *time.Time) {
	startH, startM, startOK := parseClock(startClock)

	day, dayOK := parseDate(date, now)
	if !dayOK && !startOK {
		return nil, nil
	}
	if !dayOK {
		// Time without a date means today.
		day = now
	}
	if !startOK {
		// Date without a time: original behavior schedules the morning.
		startH, startM = 9, 0
	}

	start := time.Date(day.Year(), day.Month(), day.Day(), startH, startM, 0, 0, now.Location())

	end := start.Add(time.Hour)
	if endH, endM, ok := parseClock(endClock); ok {
		candidate := time.Date(day.Year(), day.Month(), day.Day(), endH, endM, 0, 0, now.Location())
		if candidate.After(start) {
			end = candidate
		}
	}

	return &start, &end
}

func parseDate(s string, now time.Time) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	t, err := time.ParseInLocation("2006-01-02", s, now.Location())
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// parseClock accepts HH:MM and rejects garbled values like "29:00".
func parseClock(s string) (int, int, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, 0, false
	}
	t, err := time.Parse("15:04", s)
	if err != nil {
		return 0, 0, false
	}
	return t.Hour(), t.Minute(), true
}

func trimFences(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}

func titleFromTranscript(transcript string) string {
	t := strings.TrimSpace(transcript)
	if t == "" {
		return "Voice Note"
	}
	if i := strings.IndexAny(t, ".\n"); i > 0 {
		t = t[:i]
	}
	if len(t) > 80 {
		t = strings.TrimSpace(t[:80])
	}
	return t
}
