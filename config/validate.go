package config

import (
	"fmt"
	"os"
	"strings"
	"time"
)

// Category names used in validation reports.
const (
	CategoryTranscription = "transcription"
	CategoryExtraction    = "extraction"
	CategoryWorkspace     = "workspace"
	CategoryCalendar      = "calendar"
	CategoryNotify        = "notify"
)

// Category is the validation outcome for one concern: whether a minimally
// usable set of settings exists, and which keys are missing if not.
type Category struct {
	Name    string
	OK      bool
	Missing []string
}

type Report struct {
	Categories []Category
}

// MissingKeysError names the settings a category needs before it can be used.
type MissingKeysError struct {
	Category string
	Keys     []string
}

func (e *MissingKeysError) Error() string {
	return fmt.Sprintf("%s not configured: missing %s", e.Category, strings.Join(e.Keys, ", "))
}

// Validate checks each concern for a minimally usable configuration.
// Nothing is mutated. The calendar category stats its credential files:
// setDefaults always fills in file names, so presence on disk is the only
// signal that the calendar is actually set up. Callers decide per category
// whether to abort or degrade.
func (c *Config) Validate() Report {
	var r Report

	r.add(CategoryTranscription, missingIf("whisper.api_key", c.Whisper.APIKey))

	r.add(CategoryExtraction, c.extractionMissing())

	r.add(CategoryWorkspace, append(
		missingIf("notion.api_key", c.Notion.APIKey),
		missingIf("notion.parent_page_id", c.Notion.ParentPageID)...,
	))

	r.add(CategoryCalendar, c.calendarMissing())

	var notifyMissing []string
	if c.Pushover.Enabled {
		notifyMissing = append(
			missingIf("pushover.token", c.Pushover.Token),
			missingIf("pushover.user_key", c.Pushover.UserKey)...,
		)
	}
	r.add(CategoryNotify, notifyMissing)

	return r
}

func (c *Config) extractionMissing() []string {
	switch c.Provider() {
	case "gemini":
		return missingIf("gemini.api_key", c.Gemini.APIKey)
	case "anthropic":
		return missingIf("anthropic.api_key", c.Anthropic.APIKey)
	default:
		// No provider resolvable: neither key is set.
		return []string{"gemini.api_key", "anthropic.api_key"}
	}
}

func (c *Config) calendarMissing() []string {
	var missing []string
	if !fileExists(c.Google.CredentialsFile) {
		missing = append(missing, "google.credentials_file")
	}
	if !fileExists(c.Google.TokenFile) {
		missing = append(missing, "google.token_file")
	}
	if c.Google.TimeZone != "" {
		if _, err := time.LoadLocation(c.Google.TimeZone); err != nil {
			missing = append(missing, "google.time_zone")
		}
	}
	return missing
}

func fileExists(path string) bool {
	if path == "" {
		return false
	}
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

func (r *Report) add(name string, missing []string) {
	r.Categories = append(r.Categories, Category{
		Name:    name,
		OK:      len(missing) == 0,
		Missing: missing,
	})
}

// Category returns the report entry with the given name.
func (r Report) Category(name string) (Category, bool) {
	for _, c := range r.Categories {
		if c.Name == name {
			return c, true
		}
	}
	return Category{}, false
}

// OK reports whether the named category validated cleanly.
func (r Report) OK(name string) bool {
	c, found := r.Category(name)
	return found && c.OK
}

// Err returns a MissingKeysError for the named category, or nil if it is
// usable.
func (r Report) Err(name string) error {
	c, found := r.Category(name)
	if !found || c.OK {
		return nil
	}
	return &MissingKeysError{Category: c.Name, Keys: c.Missing}
}

func missingIf(key, value string) []string {
	if value == "" {
		return []string{key}
	}
	return nil
}
