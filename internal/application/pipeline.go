package application

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/google/uuid"

	"voicenote/internal/domain"
)

// Options control one pipeline run.
type Options struct {
	// Duration of the microphone capture. Zero or negative means the
	// recorder captures until the user stops it.
	Duration time.Duration
	// RemoveAudio deletes the recorded file after the run. Set it only
	// when the recorder owns the file (microphone capture, not --input).
	RemoveAudio bool
	// DryRun stops after extraction and publishes nothing.
	DryRun bool
}

// Result collects what a run produced, including the non-fatal calendar
// outcome: a page can be created even when the calendar call fails.
type Result struct {
	RunID       string
	AudioPath   string
	Transcript  string
	Note        *domain.Note
	PageURL     string
	EventPosted bool
	CalendarErr error
}

// Pipeline runs the four steps of a voice note once, sequentially:
// record, transcribe, extract, publish. Each run is stateless.
type Pipeline struct {
	recorder  Recorder
	stt       Transcriber
	extractor Extractor
	pages     PagePublisher
	calendar  EventScheduler
	notifier  Notifier
	opts      Options
	logger    *slog.Logger
}

func NewPipeline(
	recorder Recorder,
	stt Transcriber,
	extractor Extractor,
	pages PagePublisher,
	calendar EventScheduler,
	notifier Notifier,
	opts Options,
	logger *slog.Logger,
) *Pipeline {
	return &Pipeline{
		recorder:  recorder,
		stt:       stt,
		extractor: extractor,
		pages:     pages,
		calendar:  calendar,
		notifier:  notifier,
		opts:      opts,
		logger:    logger,
	}
}

// Run executes the pipeline once. The first failing step aborts the rest;
// the returned error wraps a *StepError naming the step. A calendar failure
// after a successful page creation is reported in the Result instead.
func (p *Pipeline) Run(ctx context.Context) (*Result, error) {
	result := &Result{RunID: uuid.New().String()}
	logger := p.logger.With("run_id", result.RunID)

	logger.Info("recording", "source", p.recorder.Name(), "duration", p.opts.Duration)
	audioPath, err := p.recorder.Record(ctx, p.opts.Duration)
	if err != nil {
		return result, p.report(ctx, logger, fail(StepRecord, err))
	}
	result.AudioPath = audioPath
	if p.opts.RemoveAudio {
		defer func() {
			if err := os.Remove(audioPath); err != nil {
				logger.Warn("removing recording", "path", audioPath, "error", err)
			}
		}()
	}

	transcript, err := p.stt.Transcribe(ctx, audioPath)
	if err != nil {
		return result, p.report(ctx, logger, fail(StepTranscribe, err))
	}
	result.Transcript = transcript
	logger.Info("transcribed", "text", transcript)

	note, err := p.extractor.Extract(ctx, transcript)
	if err != nil {
		return result, p.report(ctx, logger, fail(StepExtract, err))
	}
	result.Note = note
	logger.Info("extracted note",
		"title", note.Title,
		"category", note.Category,
		"schedulable", note.Schedulable(),
	)

	if p.opts.DryRun {
		logger.Info("dry run, skipping publish")
		return result, nil
	}

	pageURL, err := p.pages.CreatePage(ctx, note)
	if err != nil {
		return result, p.report(ctx, logger, fail(StepPublishPage, err))
	}
	result.PageURL = pageURL
	if pageURL != "" {
		logger.Info("page created", "url", pageURL)
	}

	if note.Schedulable() {
		if err := p.calendar.Schedule(ctx, note); err != nil {
			// The page already exists; partial success is reported, not fatal.
			result.CalendarErr = fail(StepPublishCalendar, err)
			logger.Error("scheduling event", "error", err)
			p.notify(ctx, logger, fmt.Sprintf("Voice note '%s': page created but calendar event failed: %v", note.Title, err))
			return result, nil
		}
		result.EventPosted = true
		logger.Info("calendar event created", "start", note.Start.Format(time.RFC3339))
	}

	p.notify(ctx, logger, successMessage(result))
	return result, nil
}

func (p *Pipeline) report(ctx context.Context, logger *slog.Logger, err error) error {
	if step, ok := FailedStep(err); ok {
		logger.Error("pipeline step failed", "step", string(step), "error", err)
		p.notify(ctx, logger, fmt.Sprintf("Voice note failed at %s: %v", step, err))
	}
	return err
}

func (p *Pipeline) notify(ctx context.Context, logger *slog.Logger, message string) {
	if err := p.notifier.Notify(ctx, message); err != nil {
		logger.Error("sending notification", "error", err)
	}
}

func successMessage(r *Result) string {
	msg := fmt.Sprintf("Voice note '%s' published", r.Note.Title)
	if r.PageURL != "" {
		msg += ": " + r.PageURL
	}
	if r.EventPosted {
		msg += fmt.Sprintf(" (event at %s)", r.Note.Start.Format("2006-01-02 15:04"))
	}
	return msg
}
