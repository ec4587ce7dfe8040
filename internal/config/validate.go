package config

import (
	"fmt"
	"strings"

	"github.com/rs/zerolog"
)

// Validate checks the loaded configuration and fills parsed fields.
// Load calls it automatically.
func (c *Config) Validate() error {
	if _, err := zerolog.ParseLevel(strings.ToLower(c.Log.Level)); err != nil {
		return fmt.Errorf("log.level: %w", err)
	}
	switch c.Log.Format {
	case "json", "console":
	default:
		return fmt.Errorf("log.format must be json or console (got %q)", c.Log.Format)
	}

	if err := c.Game.validate(); err != nil {
		return fmt.Errorf("game: %w", err)
	}

	files, err := ParseFiles(c.Words.FilesRaw)
	if err != nil {
		return fmt.Errorf("words.files: %w", err)
	}
	c.Words.Files = files
	if !c.Words.Embedded && len(files) == 0 && c.Words.DB == "" {
		return fmt.Errorf("words: no word list source configured")
	}

	if len(c.Session.Secret) < 16 {
		return fmt.Errorf("session.secret must be at least 16 characters (got %d)", len(c.Session.Secret))
	}
	if c.Session.TTL <= 0 {
		return fmt.Errorf("session.ttl must be > 0 (got %v)", c.Session.TTL)
	}
	return nil
}

func (g *GameConfig) validate() error {
	if g.MaxAttempts < 1 {
		return fmt.Errorf("max_attempts must be >= 1 (got %d)", g.MaxAttempts)
	}
	if g.StartLength < 1 {
		return fmt.Errorf("start_length must be >= 1 (got %d)", g.StartLength)
	}
	if g.RetryAttempts < 0 {
		return fmt.Errorf("retry_attempts must be >= 0 (got %d)", g.RetryAttempts)
	}
	if g.DefaultLanguage == "" {
		return fmt.Errorf("default_language must be set")
	}
	return nil
}

// ParseFiles parses "lang=path" pairs separated by commas. An empty string
// returns an empty map.
func ParseFiles(raw string) (map[string]string, error) {
	out := map[string]string{}
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		lang, path, ok := strings.Cut(part, "=")
		lang, path = strings.TrimSpace(lang), strings.TrimSpace(path)
		if !ok || lang == "" || path == "" {
			return nil, fmt.Errorf("invalid entry %q, want lang=path", part)
		}
		out[strings.ToLower(lang)] = path
	}
	return out, nil
}
