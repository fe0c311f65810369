package config

import (
	"errors"
	"os"
	"path/filepath"
)

// Loader finds and reads the rc file.
type Loader struct {
	Version      string // "dev" also searches the working directory
	OverridePath string // set at link time for packaged builds
}

// NewLoader creates a new Loader.
func NewLoader(version string, overridePath string) *Loader {
	return &Loader{Version: version, OverridePath: overridePath}
}

// Load parses the first rc file found. Defaults are returned when there is
// none.
func (l *Loader) Load() (*Config, error) {
	path := l.GetConfigPath()
	if path == "" {
		return New(), nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Parse(f)
}

// Candidates lists the rc files Load considers, highest priority first:
// the override path, $MARKUP_CONFIG, ./.markuprc for dev builds, then
// config.rc and markup.rc in the user config directory.
func (l *Loader) Candidates() []string {
	var paths []string
	if l.OverridePath != "" {
		paths = append(paths, l.OverridePath)
	}
	if env := os.Getenv("MARKUP_CONFIG"); env != "" {
		paths = append(paths, env)
	}
	if l.Version == "dev" {
		if wd, err := os.Getwd(); err == nil {
			paths = append(paths, filepath.Join(wd, ".markuprc"))
		}
	}
	if dir := userDir(); dir != "" {
		paths = append(paths, filepath.Join(dir, "config.rc"), filepath.Join(dir, "markup.rc"))
	}
	return paths
}

// GetConfigPath returns the first existing candidate, or "" if none exists.
func (l *Loader) GetConfigPath() string {
	for _, p := range l.Candidates() {
		if fi, err := os.Stat(p); err == nil && !fi.IsDir() {
			return p
		}
	}
	return ""
}

// DefaultPath is where a new rc file is written when none exists yet.
func DefaultPath() (string, error) {
	dir := userDir()
	if dir == "" {
		return "", errors.New("no user config directory")
	}
	return filepath.Join(dir, "config.rc"), nil
}

func userDir() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "markup")
}
