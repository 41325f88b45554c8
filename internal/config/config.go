package config

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Config is the root configuration for schedchat, stored in
// ~/.schedchat/config.json. The file supports single-line // comments for
// documentation purposes.
type Config struct {
	Gemini       GeminiConfig `json:"gemini"`
	SchedulePath string       `json:"schedule_path"`
	AgendaCron   string       `json:"agenda_cron"`
}

// GeminiConfig holds model selection and the optional OAuth2 fallback
// credentials. The primary credential is always the GEMINI_API_KEY
// environment variable.
type GeminiConfig struct {
	// Model is the Gemini model name used for all requests.
	Model string `json:"model"`
	// OAuthClientID enables the OAuth2 device code flow when no API key is
	// set. Leave empty to require GEMINI_API_KEY.
	OAuthClientID string `json:"oauth_client_id"`
	// OAuthClientSecret is the matching client secret for installed apps.
	OAuthClientSecret string `json:"oauth_client_secret"`
}

const (
	// DefaultModel is the Gemini model used when none is configured.
	DefaultModel = "gemini-2.0-flash"
	// DefaultAgendaCron fires the watch-mode agenda at 08:00 every day.
	DefaultAgendaCron = "0 8 * * *"
)

// BaseDir returns the root data directory (~/.schedchat).
func BaseDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine home directory: %w", err)
	}
	return filepath.Join(home, ".schedchat"), nil
}

// defaultConfig returns a Config pre-filled with sensible defaults.
// SchedulePath is left empty here and resolved against the config directory
// in normalize.
func defaultConfig() Config {
	return Config{
		Gemini: GeminiConfig{
			Model: DefaultModel,
		},
		AgendaCron: DefaultAgendaCron,
	}
}

// configTemplate is the annotated config written on first run.
// Lines whose trimmed content starts with // are stripped before JSON parsing,
// allowing human-readable documentation inside the file.
const configTemplate = `// schedchat configuration – ~/.schedchat/config.json
//
// All settings are optional; the built-in defaults shown below work out of
// the box with a GEMINI_API_KEY environment variable.
{
  "gemini": {
    // Gemini model name used for all requests.
    "model": "gemini-2.0-flash",

    // Optional OAuth2 client for the device code flow, used only when
    // GEMINI_API_KEY is not set. Create an "installed app" OAuth client in
    // Google Cloud Console and paste its ID and secret here.
    "oauth_client_id": "",
    "oauth_client_secret": ""
  },

  // Path of the schedule JSON file. Empty means ~/.schedchat/schedule.json.
  "schedule_path": "",

  // Cron schedule for 'schedchat agenda --watch' (minute hour dom month dow).
  "agenda_cron": "0 8 * * *"
}
`

// configFilePath returns the path to ~/.schedchat/config.json.
func configFilePath() (string, error) {
	base, err := BaseDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(base, "config.json"), nil
}

// stripLineComments removes lines whose leading non-whitespace content starts
// with //. Only full-line comments are handled; inline comments are not stripped.
func stripLineComments(data []byte) []byte {
	var out []byte
	for _, line := range bytes.Split(data, []byte("\n")) {
		if bytes.HasPrefix(bytes.TrimLeft(line, " \t"), []byte("//")) {
			continue
		}
		out = append(out, line...)
		out = append(out, '\n')
	}
	return out
}

// Load reads ~/.schedchat/config.json, creating it with annotated defaults on
// first run. Lines starting with // are treated as comments and stripped
// before JSON parsing.
func Load() (Config, error) {
	path, err := configFilePath()
	if err != nil {
		return defaultConfig(), err
	}
	return loadFrom(path)
}

// loadFrom is Load with an explicit path, for tests.
func loadFrom(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		// First run: write the annotated template so users can discover options.
		if writeErr := writeDefault(path); writeErr != nil {
			fmt.Fprintf(os.Stderr, "Warning: could not create config file %s: %v\n", path, writeErr)
		}
		return normalize(defaultConfig(), path), nil
	}
	if err != nil {
		return defaultConfig(), fmt.Errorf("reading config file %s: %w", path, err)
	}

	cleaned := stripLineComments(data)
	var cfg Config
	if err := json.Unmarshal(cleaned, &cfg); err != nil {
		return defaultConfig(), fmt.Errorf("parsing config file %s: %w\nTip: delete the file to regenerate defaults", path, err)
	}
	return normalize(cfg, path), nil
}

// normalize fills zero-value fields with built-in defaults so callers always
// get a usable Config even if the user only partially fills in the file.
func normalize(cfg Config, path string) Config {
	if cfg.Gemini.Model == "" {
		cfg.Gemini.Model = DefaultModel
	}
	if cfg.AgendaCron == "" {
		cfg.AgendaCron = DefaultAgendaCron
	}
	if cfg.SchedulePath == "" {
		cfg.SchedulePath = filepath.Join(filepath.Dir(path), "schedule.json")
	}
	return cfg
}

// writeDefault creates the config directory and writes the annotated default
// config template.
func writeDefault(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	if err := os.WriteFile(path, []byte(configTemplate), 0o600); err != nil {
		return fmt.Errorf("writing default config: %w", err)
	}
	return nil
}
