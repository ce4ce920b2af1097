// Package config resolves where plan files live. The user config file
// under XDG_CONFIG_HOME supplies the directory and scan settings; the
// PLAN_DIR environment variable overrides the directory only. A
// missing config is not an error; callers decide whether to prompt
// for first-run setup.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Config holds the resolved user settings.
type Config struct {
	// Dir is the plan directory, already tilde-expanded.
	Dir string

	// WarnUnexpected controls whether non-plan files in Dir are
	// reported on stderr during directory scans.
	WarnUnexpected bool

	// IgnorePatterns lists extra filenames to exclude from scan
	// warnings. A leading * matches any filename with that suffix,
	// otherwise the pattern must match exactly.
	IgnorePatterns []string
}

// Path returns the config file location: $XDG_CONFIG_HOME/plan/config,
// falling back to ~/.config/plan/config.
func Path() (string, error) {
	if base := os.Getenv("XDG_CONFIG_HOME"); base != "" {
		return filepath.Join(base, "plan", "config"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolving home directory: %w", err)
	}
	return filepath.Join(home, ".config", "plan", "config"), nil
}

// Load resolves the plan directory. The config file is always read
// when present so scan settings apply; PLAN_DIR, when set, overrides
// only the directory. The bool result reports whether a directory was
// found at all; false with a nil error means neither PLAN_DIR nor a
// config file names one.
func Load() (Config, bool, error) {
	cfg := Config{WarnUnexpected: true}
	found := false
	if path, err := Path(); err == nil {
		c, f, err := LoadFrom(path)
		if err != nil {
			return Config{}, false, err
		}
		cfg, found = c, f
	}
	if dir := os.Getenv("PLAN_DIR"); dir != "" {
		cfg.Dir = ExpandTilde(dir)
		found = true
	}
	return cfg, found, nil
}

// LoadFrom reads a config file at an explicit path. A missing file is
// reported as not found rather than an error.
func LoadFrom(path string) (Config, bool, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return Config{WarnUnexpected: true}, false, nil
	}
	if err != nil {
		return Config{}, false, fmt.Errorf("reading config %s: %w", path, err)
	}

	cfg := Config{WarnUnexpected: true}
	found := false
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") || strings.HasPrefix(line, ";") {
			continue
		}
		if strings.HasPrefix(line, "[") {
			continue
		}
		key, value, ok := strings.Cut(line, "=")
		if !ok {
			continue
		}
		key = strings.TrimSpace(key)
		value = unquote(strings.TrimSpace(value))
		switch key {
		case "dir":
			// First dir wins.
			if !found {
				cfg.Dir = ExpandTilde(value)
				found = true
			}
		case "warn_unexpected":
			cfg.WarnUnexpected = value != "false"
		case "ignore":
			if value != "" {
				cfg.IgnorePatterns = append(cfg.IgnorePatterns, value)
			}
		}
	}
	return cfg, found, nil
}

// Init writes a fresh config file pointing at dir, creating parent
// directories as needed.
func Init(dir string) error {
	path, err := Path()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	content := fmt.Sprintf("dir = %s\n", dir)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return fmt.Errorf("writing config %s: %w", path, err)
	}
	return nil
}

// ExpandTilde replaces a leading ~ with the user's home directory.
func ExpandTilde(path string) string {
	if path == "~" || strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, strings.TrimPrefix(path, "~"))
	}
	return path
}

func unquote(s string) string {
	if len(s) >= 2 {
		if (s[0] == '"' && s[len(s)-1] == '"') || (s[0] == '\'' && s[len(s)-1] == '\'') {
			return s[1 : len(s)-1]
		}
	}
	return s
}
