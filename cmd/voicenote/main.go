package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"voicenote/config"
	"voicenote/internal/application"
	"voicenote/internal/infra"
	"voicenote/internal/infra/anthropic"
	"voicenote/internal/infra/audio"
	"voicenote/internal/infra/cue"
	"voicenote/internal/infra/gemini"
	"voicenote/internal/infra/googlecal"
	"voicenote/internal/infra/ics"
	"voicenote/internal/infra/notion"
	"voicenote/internal/infra/openai"
	"voicenote/internal/infra/pushover"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file")
	duration := flag.Int("duration", -1, "recording duration in seconds (-1 = config default, 0 = record until Enter)")
	input := flag.String("input", "", "process an existing audio file instead of recording")
	dryRun := flag.Bool("dry-run", false, "stop after extraction, publish nothing")
	authorize := flag.Bool("authorize", false, "run the Google Calendar OAuth flow and exit")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("loading config", "error", err)
		os.Exit(1)
	}

	logger := setupLogger(cfg.Log)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	report := cfg.Validate()
	logReport(logger, report)

	if *authorize {
		calClient, err := calendarClient(cfg)
		if err != nil {
			logger.Error("building calendar client", "error", err)
			os.Exit(1)
		}
		if err := calClient.Authorize(ctx); err != nil {
			logger.Error("authorizing", "error", err)
			os.Exit(1)
		}
		logger.Info("token saved", "path", cfg.Google.TokenFile)
		return
	}

	// Transcription and extraction are required; the rest degrades.
	for _, required := range []string{config.CategoryTranscription, config.CategoryExtraction} {
		if err := report.Err(required); err != nil {
			logger.Error("configuration error", "error", err)
			os.Exit(1)
		}
	}

	recorder := createRecorder(cfg, *input, logger)

	stt := openai.NewWhisperClient(
		cfg.Whisper.APIKey,
		cfg.Whisper.BaseURL,
		cfg.Whisper.Model,
		cfg.Whisper.Language,
	)

	extractor, err := createExtractor(cfg)
	if err != nil {
		logger.Error("creating extractor", "error", err)
		os.Exit(1)
	}

	var pages application.PagePublisher = &application.NoopPagePublisher{}
	if report.OK(config.CategoryWorkspace) {
		pages = notion.NewClient(cfg.Notion.APIKey, cfg.Notion.ParentPageID)
	} else {
		logger.Warn("workspace not configured, pages will be skipped")
	}

	calendar := createScheduler(cfg, report, logger)

	var notifier application.Notifier = &application.NoopNotifier{}
	if cfg.Pushover.Enabled && report.OK(config.CategoryNotify) {
		notifier = pushover.NewClient(cfg.Pushover.Token, cfg.Pushover.UserKey)
	}

	opts := application.Options{
		Duration:    time.Duration(cfg.Audio.DurationSeconds) * time.Second,
		RemoveAudio: *input == "" && !cfg.Audio.KeepRecordings,
		DryRun:      *dryRun,
	}
	if *duration >= 0 {
		opts.Duration = time.Duration(*duration) * time.Second
	}

	pipeline := application.NewPipeline(recorder, stt, extractor, pages, calendar, notifier, opts, logger)

	var result *application.Result
	runErr := infra.DefaultBackoff(cfg.Pipeline.Attempts).Retry(ctx, func() error {
		var err error
		result, err = pipeline.Run(ctx)
		return err
	})
	if runErr != nil {
		if step, ok := application.FailedStep(runErr); ok {
			logger.Error("run failed", "step", string(step), "error", runErr)
		} else {
			logger.Error("run failed", "error", runErr)
		}
		os.Exit(1)
	}

	logger.Info("run complete",
		"title", result.Note.Title,
		"page_url", result.PageURL,
		"event_posted", result.EventPosted,
	)
	if *dryRun {
		printNote(result)
	}
}

func createRecorder(cfg *config.Config, input string, logger *slog.Logger) application.Recorder {
	if input != "" {
		return audio.NewFileRecorder(input)
	}
	var c audio.Cue
	if cfg.Audio.Cue {
		c = cue.NewPlayer(cfg.Audio.SampleRate)
	}
	return audio.NewMicrophoneRecorder(cfg.Audio.SampleRate, c, logger)
}

func createExtractor(cfg *config.Config) (application.Extractor, error) {
	switch cfg.Provider() {
	case "gemini":
		return gemini.NewClient(cfg.Gemini.APIKey, cfg.Gemini.Model), nil
	case "anthropic":
		return anthropic.NewClaudeClient(cfg.Anthropic.APIKey, cfg.Anthropic.Model), nil
	default:
		return nil, &config.MissingKeysError{
			Category: config.CategoryExtraction,
			Keys:     []string{"gemini.api_key", "anthropic.api_key"},
		}
	}
}

func createScheduler(cfg *config.Config, report config.Report, logger *slog.Logger) application.EventScheduler {
	var schedulers application.MultiScheduler

	calendarOK := false
	if report.OK(config.CategoryCalendar) {
		if client, err := calendarClient(cfg); err != nil {
			logger.Warn("calendar unavailable", "error", err)
		} else {
			schedulers = append(schedulers, client)
			calendarOK = true
		}
	}

	if !calendarOK || cfg.ICS.Always {
		schedulers = append(schedulers, ics.NewWriter(cfg.ICS.Dir, logger))
	}

	if len(schedulers) == 0 {
		return &application.NoopScheduler{}
	}
	return schedulers
}

func calendarClient(cfg *config.Config) (*googlecal.Client, error) {
	return googlecal.NewClient(
		cfg.Google.CredentialsFile,
		cfg.Google.TokenFile,
		cfg.Google.CalendarID,
		cfg.Google.TimeZone,
	)
}

func logReport(logger *slog.Logger, report config.Report) {
	for _, c := range report.Categories {
		if c.OK {
			logger.Info("configured", "category", c.Name)
		} else {
			logger.Warn("not configured", "category", c.Name, "missing", c.Missing)
		}
	}
}

func printNote(result *application.Result) {
	note := result.Note
	os.Stdout.WriteString("--- extracted note ---\n")
	os.Stdout.WriteString("Title: " + note.Title + "\n")
	if note.Start != nil {
		os.Stdout.WriteString("Start: " + note.Start.Format(time.RFC3339) + "\n")
		os.Stdout.WriteString("End:   " + note.EndOrDefault().Format(time.RFC3339) + "\n")
	}
	os.Stdout.WriteString(notion.FormatBody(note) + "\n")
}

func setupLogger(cfg config.LogConfig) *slog.Logger {
	var level slog.Level
	switch cfg.Level {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: level}

	var handler slog.Handler
	if cfg.Format == "json" {
		handler = slog.NewJSONHandler(os.Stderr, opts)
	} else {
		handler = slog.NewTextHandler(os.Stderr, opts)
	}

	return slog.New(handler)
}
