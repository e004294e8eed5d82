package ics

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strings"
	"testing"
	"time"

	"voicenote/internal/domain"
)

func testNote() *domain.Note {
	start := time.Date(2025, 3, 11, 15, 0, 0, 0, time.UTC)
	return &domain.Note{
		Title:    "Call Alex",
		Body:     "Remind me to call Alex",
		Start:    &start,
		Location: "Office",
		Priority: domain.PriorityMedium,
		Category: domain.CategoryReminder,
	}
}

func TestWriter_Write(t *testing.T) {
	dir := t.TempDir()
	w := NewWriter(dir, slog.New(slog.NewTextHandler(io.Discard, nil)))

	path, err := w.Write(testNote())
	if err != nil {
		t.Fatalf("Write error: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading ics: %v", err)
	}
	content := string(data)

	for _, want := range []string{
		"BEGIN:VCALENDAR",
		"BEGIN:VEVENT",
		"SUMMARY:Call Alex",
		"LOCATION:Office",
		"DTSTART",
		"DTEND",
		"UID:",
		"END:VEVENT",
	} {
		if !strings.Contains(content, want) {
			t.Errorf("ics missing %q", want)
		}
	}

	if !strings.HasSuffix(path, "call-alex.ics") {
		t.Errorf("filename: got %q", path)
	}
}

func TestWriter_ScheduleRejectsUnscheduled(t *testing.T) {
	w := NewWriter(t.TempDir(), slog.New(slog.NewTextHandler(io.Discard, nil)))

	err := w.Schedule(context.Background(), &domain.Note{Title: "x", Body: "y"})
	if err == nil {
		t.Fatal("expected error for note without start time")
	}
}
