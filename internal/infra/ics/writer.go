// Package ics exports schedulable notes as local iCalendar files, so an
// event is never lost when the calendar service is not configured.
package ics

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/emersion/go-ical"
	"github.com/google/uuid"

	"voicenote/internal/domain"
)

type Writer struct {
	dir    string
	logger *slog.Logger
}

func NewWriter(dir string, logger *slog.Logger) *Writer {
	return &Writer{dir: dir, logger: logger}
}

// Schedule writes one .ics file for the note and logs its path.
func (w *Writer) Schedule(_ context.Context, note *domain.Note) error {
	path, err := w.Write(note)
	if err != nil {
		return err
	}
	w.logger.Info("ics file written", "path", path)
	return nil
}

// Write encodes the note as a single-event calendar and returns the path.
func (w *Writer) Write(note *domain.Note) (string, error) {
	if !note.Schedulable() {
		return "", fmt.Errorf("note has no start time")
	}

	event := ical.NewEvent()
	event.Props.SetText(ical.PropUID, uuid.New().String())
	event.Props.SetDateTime(ical.PropDateTimeStamp, time.Now())
	event.Props.SetText(ical.PropSummary, note.Title)
	event.Props.SetText(ical.PropDescription, note.Body)
	event.Props.SetDateTime(ical.PropDateTimeStart, *note.Start)
	event.Props.SetDateTime(ical.PropDateTimeEnd, note.EndOrDefault())
	if note.Location != "" {
		event.Props.SetText(ical.PropLocation, note.Location)
	}

	cal := ical.NewCalendar()
	cal.Props.SetText(ical.PropVersion, "2.0")
	cal.Props.SetText(ical.PropProductID, "-//voicenote//EN")
	cal.Children = append(cal.Children, event.Component)

	var buf bytes.Buffer
	if err := ical.NewEncoder(&buf).Encode(cal); err != nil {
		return "", fmt.Errorf("encoding calendar: %w", err)
	}

	if err := os.MkdirAll(w.dir, 0755); err != nil {
		return "", fmt.Errorf("creating ics dir: %w", err)
	}

	name := fmt.Sprintf("%s-%s.ics", note.Start.Format("20060102-1504"), slug(note.Title))
	path := filepath.Join(w.dir, name)
	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		return "", fmt.Errorf("writing ics file: %w", err)
	}

	return path, nil
}

func slug(s string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(s) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == ' ' || r == '-' || r == '_':
			b.WriteByte('-')
		}
	}
	out := strings.Trim(b.String(), "-")
	if len(out) > 40 {
		out = out[:40]
	}
	if out == "" {
		out = "note"
	}
	return out
}
