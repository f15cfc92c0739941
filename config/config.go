package config

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	ProviderOpenAI     = "openai"
	ProviderOpenRouter = "openrouter"
	ProviderAnthropic  = "anthropic"
	ProviderOllama     = "ollama"
)

const (
	MinRequestTimeout = 5 * time.Second
	MaxRequestTimeout = 120 * time.Second
)

type ServerSettings struct {
	Listen            string `toml:"listen"`
	RequestsPerMinute int    `toml:"requests_per_minute"`
	SessionTTL        string `toml:"session_ttl"`
}

// Settings mirrors settings.toml on disk.
type Settings struct {
	Provider       string         `toml:"provider"`
	Model          string         `toml:"model"`
	BaseURL        string         `toml:"base_url,omitempty"`
	RequestTimeout string         `toml:"request_timeout"`
	ProbeMaxTokens int            `toml:"probe_max_tokens"`
	Server         ServerSettings `toml:"server"`
}

type Config struct {
	Provider       string
	Model          string
	BaseURL        string
	RequestTimeout time.Duration
	ProbeMaxTokens int

	ServerListen      string
	RequestsPerMinute int
	SessionTTL        time.Duration

	KeyBindings *KeyBindingsConfig
}

var Debug = false
var DebugLog *log.Logger

// RequiresKey reports whether the configured provider authenticates with an API key.
func (c *Config) RequiresKey() bool {
	return c.Provider != ProviderOllama
}

// CredentialEnvVar returns the environment variable holding a pre-supplied
// API key for the configured provider, or "" when none applies.
func (c *Config) CredentialEnvVar() string {
	switch c.Provider {
	case ProviderOpenAI:
		return "OPENAI_API_KEY"
	case ProviderOpenRouter:
		return "OPENROUTER_API_KEY"
	case ProviderAnthropic:
		return "ANTHROPIC_API_KEY"
	default:
		return ""
	}
}

// DefaultCredential returns the environment-supplied key offered as the
// pre-filled value on the credential screen. It is never trusted without a probe.
func (c *Config) DefaultCredential() string {
	name := c.CredentialEnvVar()
	if name == "" {
		return ""
	}
	return strings.TrimSpace(os.Getenv(name))
}

func (c *Config) applyEnvOverrides() {
	if p := os.Getenv("JETHABOT_PROVIDER"); p != "" {
		p = strings.ToLower(p)
		prev := c.Provider
		if prev == "" {
			prev = ProviderOpenAI
		}
		if p != prev {
			// the file's model belongs to the file's provider
			c.Model = ""
		}
		c.Provider = p
	}
	if m := os.Getenv("JETHABOT_MODEL"); m != "" {
		c.Model = m
	}
	if u := os.Getenv("JETHABOT_BASE_URL"); u != "" {
		c.BaseURL = u
	}
	if t := os.Getenv("JETHABOT_TIMEOUT"); t != "" {
		if d, err := time.ParseDuration(t); err == nil {
			c.RequestTimeout = d
		}
	}
	if l := os.Getenv("JETHABOT_LISTEN"); l != "" {
		c.ServerListen = l
	}
}

// normalize fills zero values with defaults and clamps the request timeout.
func (c *Config) normalize() error {
	switch c.Provider {
	case "":
		c.Provider = ProviderOpenAI
	case ProviderOpenAI, ProviderOpenRouter, ProviderAnthropic, ProviderOllama:
	default:
		return fmt.Errorf("unknown provider %q", c.Provider)
	}

	if c.Model == "" {
		c.Model = DefaultModelFor(c.Provider)
	}
	if c.RequestTimeout == 0 {
		c.RequestTimeout = DefaultRequestTimeout
	}
	if c.RequestTimeout < MinRequestTimeout {
		c.RequestTimeout = MinRequestTimeout
	}
	if c.RequestTimeout > MaxRequestTimeout {
		c.RequestTimeout = MaxRequestTimeout
	}
	if c.ProbeMaxTokens <= 0 {
		c.ProbeMaxTokens = DefaultProbeMaxTokens
	}
	if c.ServerListen == "" {
		c.ServerListen = DefaultServerListen
	}
	if c.RequestsPerMinute <= 0 {
		c.RequestsPerMinute = DefaultRequestsPerMinute
	}
	if c.SessionTTL <= 0 {
		c.SessionTTL = DefaultSessionTTL
	}
	return nil
}

func fromSettings(s *Settings) (*Config, error) {
	cfg := &Config{
		Provider:          strings.ToLower(strings.TrimSpace(s.Provider)),
		Model:             strings.TrimSpace(s.Model),
		BaseURL:           strings.TrimSpace(s.BaseURL),
		ProbeMaxTokens:    s.ProbeMaxTokens,
		ServerListen:      s.Server.Listen,
		RequestsPerMinute: s.Server.RequestsPerMinute,
	}

	if s.RequestTimeout != "" {
		d, err := time.ParseDuration(s.RequestTimeout)
		if err != nil {
			return nil, fmt.Errorf("invalid request_timeout %q: %w", s.RequestTimeout, err)
		}
		cfg.RequestTimeout = d
	}
	if s.Server.SessionTTL != "" {
		d, err := time.ParseDuration(s.Server.SessionTTL)
		if err != nil {
			return nil, fmt.Errorf("invalid server.session_ttl %q: %w", s.Server.SessionTTL, err)
		}
		cfg.SessionTTL = d
	}
	return cfg, nil
}

func CheckDebug() bool {
	debug := os.Getenv("JETHABOT_DEBUG")
	return debug == "true" || debug == "1"
}

// InitDebugLog opens debug.log in dir when debugging is requested via
// JETHABOT_DEBUG or force.
func InitDebugLog(dir string, force bool) {
	if !force && !CheckDebug() {
		return
	}

	if err := EnsureDir(dir); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: Could not create log directory %s: %v\n", dir, err)
		return
	}

	Debug = true
	logPath := filepath.Join(dir, "debug.log")

	// 0600: transcripts end up in here
	f, err := os.OpenFile(logPath, os.O_RDWR|os.O_CREATE|os.O_APPEND, 0600)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: Could not open debug log at %s: %v\n", logPath, err)
		return
	}

	DebugLog = log.New(f, "", log.Ldate|log.Ltime|log.Lmicroseconds|log.Lshortfile)
	DebugLog.Printf("=== Debug logging started (JETHABOT_DEBUG=%s) ===", os.Getenv("JETHABOT_DEBUG"))
	DebugLog.Printf("Log path: %s", logPath)
}

// Debugf writes to the debug log when it is enabled.
func Debugf(format string, args ...any) {
	if DebugLog != nil {
		DebugLog.Printf(format, args...)
	}
}

// Load reads .env, settings.toml and keybindings.toml, then applies
// environment overrides. Missing files are created from templates.
func Load() (*Config, error) {
	// A missing .env is the common case
	_ = godotenv.Load()

	settings, err := LoadSettings()
	if err != nil {
		return nil, fmt.Errorf("failed to load settings: %w", err)
	}

	cfg, err := fromSettings(settings)
	if err != nil {
		return nil, err
	}
	cfg.applyEnvOverrides()
	if err := cfg.normalize(); err != nil {
		return nil, err
	}

	kb, err := LoadKeybindings(GetConfigDir())
	if err != nil {
		return nil, fmt.Errorf("failed to load keybindings: %w", err)
	}
	cfg.KeyBindings = kb

	return cfg, nil
}

// LoadFile builds a Config from a single settings file without touching
// .env, keybindings or creating anything on disk.
func LoadFile(path string) (*Config, error) {
	settings, err := decodeSettings(path)
	if err != nil {
		return nil, err
	}
	cfg, err := fromSettings(settings)
	if err != nil {
		return nil, err
	}
	cfg.applyEnvOverrides()
	if err := cfg.normalize(); err != nil {
		return nil, err
	}
	cfg.KeyBindings = DefaultKeybindings()
	return cfg, nil
}

// Default returns the configuration used when no settings exist.
func Default() *Config {
	cfg := &Config{}
	_ = cfg.normalize()
	cfg.KeyBindings = DefaultKeybindings()
	return cfg
}
