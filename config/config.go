package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Audio     AudioConfig     `yaml:"audio"`
	Whisper   WhisperConfig   `yaml:"whisper"`
	LLM       LLMConfig       `yaml:"llm"`
	Gemini    GeminiConfig    `yaml:"gemini"`
	Anthropic AnthropicConfig `yaml:"anthropic"`
	Notion    NotionConfig    `yaml:"notion"`
	Google    GoogleConfig    `yaml:"google"`
	ICS       ICSConfig       `yaml:"ics"`
	Pushover  PushoverConfig  `yaml:"pushover"`
	Pipeline  PipelineConfig  `yaml:"pipeline"`
	Log       LogConfig       `yaml:"log"`
}

type AudioConfig struct {
	SampleRate      int  `yaml:"sample_rate"`
	DurationSeconds int  `yaml:"duration_seconds"`
	Cue             bool `yaml:"cue"`
	KeepRecordings  bool `yaml:"keep_recordings"`
}

type WhisperConfig struct {
	APIKey   string `yaml:"api_key"`
	BaseURL  string `yaml:"base_url"`
	Model    string `yaml:"model"`
	Language string `yaml:"language"`
}

type LLMConfig struct {
	// Provider selects the extraction backend: "gemini" or "anthropic".
	// Empty means whichever provider has an API key configured.
	Provider string `yaml:"provider"`
}

type GeminiConfig struct {
	APIKey string `yaml:"api_key"`
	Model  string `yaml:"model"`
}

type AnthropicConfig struct {
	APIKey string `yaml:"api_key"`
	Model  string `yaml:"model"`
}

type NotionConfig struct {
	APIKey       string `yaml:"api_key"`
	ParentPageID string `yaml:"parent_page_id"`
}

type GoogleConfig struct {
	CredentialsFile string `yaml:"credentials_file"`
	TokenFile       string `yaml:"token_file"`
	CalendarID      string `yaml:"calendar_id"`
	TimeZone        string `yaml:"time_zone"`
}

type ICSConfig struct {
	Dir    string `yaml:"dir"`
	Always bool   `yaml:"always"`
}

type PushoverConfig struct {
	Token   string `yaml:"token"`
	UserKey string `yaml:"user_key"`
	Enabled bool   `yaml:"enabled"`
}

type PipelineConfig struct {
	Attempts int `yaml:"attempts"`
}

type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// Load reads the YAML config at path, after loading a .env file (if one
// exists) so that ${VAR} references in the YAML can be expanded from it.
func Load(path string) (*Config, error) {
	// Missing .env is fine; the environment may already be populated.
	_ = godotenv.Load()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	expanded := os.ExpandEnv(string(data))

	var cfg Config
	if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	cfg.setDefaults()

	return &cfg, nil
}

func (c *Config) setDefaults() {
	if c.Audio.SampleRate == 0 {
		c.Audio.SampleRate = 16000
	}
	if c.Audio.DurationSeconds == 0 {
		c.Audio.DurationSeconds = 10
	}
	if c.Whisper.BaseURL == "" {
		c.Whisper.BaseURL = "https://api.openai.com/v1"
	}
	if c.Whisper.Model == "" {
		c.Whisper.Model = "whisper-1"
	}
	if c.Gemini.Model == "" {
		c.Gemini.Model = "gemini-2.0-flash"
	}
	if c.Anthropic.Model == "" {
		c.Anthropic.Model = "claude-sonnet-4-20250514"
	}
	if c.Google.CredentialsFile == "" {
		c.Google.CredentialsFile = "credentials.json"
	}
	if c.Google.TokenFile == "" {
		c.Google.TokenFile = "token.json"
	}
	if c.Google.CalendarID == "" {
		c.Google.CalendarID = "primary"
	}
	if c.Google.TimeZone == "" {
		c.Google.TimeZone = "America/Los_Angeles"
	}
	if c.ICS.Dir == "" {
		c.ICS.Dir = "events"
	}
	if c.Pipeline.Attempts == 0 {
		c.Pipeline.Attempts = 1
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Log.Format == "" {
		c.Log.Format = "text"
	}
}

// Provider resolves which extraction backend to use: the configured one,
// or whichever has an API key when llm.provider is left empty.
func (c *Config) Provider() string {
	if c.LLM.Provider != "" {
		return c.LLM.Provider
	}
	if c.Gemini.APIKey != "" {
		return "gemini"
	}
	if c.Anthropic.APIKey != "" {
		return "anthropic"
	}
	return ""
}
