package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("writing config: %v", err)
	}
	return path
}

func TestLoad_Defaults(t *testing.T) {
	path := writeConfig(t, "whisper:\n  api_key: test\n")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}

	if cfg.Audio.SampleRate != 16000 {
		t.Errorf("SampleRate: got %d, want 16000", cfg.Audio.SampleRate)
	}
	if cfg.Audio.DurationSeconds != 10 {
		t.Errorf("DurationSeconds: got %d, want 10", cfg.Audio.DurationSeconds)
	}
	if cfg.Whisper.BaseURL != "https://api.openai.com/v1" {
		t.Errorf("BaseURL: got %s", cfg.Whisper.BaseURL)
	}
	if cfg.Whisper.Model != "whisper-1" {
		t.Errorf("Model: got %s", cfg.Whisper.Model)
	}
	if cfg.Google.CalendarID != "primary" {
		t.Errorf("CalendarID: got %s", cfg.Google.CalendarID)
	}
	if cfg.Pipeline.Attempts != 1 {
		t.Errorf("Attempts: got %d, want 1", cfg.Pipeline.Attempts)
	}
	if cfg.Log.Level != "info" || cfg.Log.Format != "text" {
		t.Errorf("Log defaults: got %+v", cfg.Log)
	}
}

func TestLoad_ExpandsEnv(t *testing.T) {
	t.Setenv("TEST_WHISPER_KEY", "sk-from-env")

	path := writeConfig(t, "whisper:\n  api_key: ${TEST_WHISPER_KEY}\n")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}

	if cfg.Whisper.APIKey != "sk-from-env" {
		t.Errorf("APIKey: got %q, want sk-from-env", cfg.Whisper.APIKey)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestProvider_Resolution(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
		want string
	}{
		{"explicit", Config{LLM: LLMConfig{Provider: "anthropic"}, Gemini: GeminiConfig{APIKey: "g"}}, "anthropic"},
		{"gemini key only", Config{Gemini: GeminiConfig{APIKey: "g"}}, "gemini"},
		{"anthropic key only", Config{Anthropic: AnthropicConfig{APIKey: "a"}}, "anthropic"},
		{"gemini wins when both", Config{Gemini: GeminiConfig{APIKey: "g"}, Anthropic: AnthropicConfig{APIKey: "a"}}, "gemini"},
		{"none", Config{}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.cfg.Provider(); got != tt.want {
				t.Errorf("Provider: got %q, want %q", got, tt.want)
			}
		})
	}
}
