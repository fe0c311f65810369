package theme

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// Loader resolves theme names against the embedded set and theme
// directories on disk.
type Loader struct {
	ConfigDir string
	SystemDir string
}

// NewLoader creates a Loader searching the user config directory and
// /usr/share/markup/themes.
func NewLoader() *Loader {
	l := &Loader{SystemDir: "/usr/share/markup/themes"}
	if dir, err := os.UserConfigDir(); err == nil {
		l.ConfigDir = filepath.Join(dir, "markup", "themes")
	}
	return l
}

// Load returns the theme called name. An existing file path wins; otherwise
// NAME.theme is looked up in the embedded themes, ConfigDir and SystemDir
// in that order. The empty name is the default theme.
func (l *Loader) Load(name string) (*Theme, error) {
	if name == "" {
		return Default(), nil
	}
	if fi, err := os.Stat(name); err == nil && !fi.IsDir() {
		return parseFile(os.DirFS(filepath.Dir(name)), filepath.Base(name))
	}

	file := name
	if filepath.Ext(file) != ".theme" {
		file += ".theme"
	}
	if !fs.ValidPath(file) {
		return nil, fmt.Errorf("theme %q not found", name)
	}
	for _, fsys := range l.sources() {
		t, err := parseFile(fsys, file)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		return t, err
	}
	return nil, fmt.Errorf("theme %q not found", name)
}

func (l *Loader) sources() []fs.FS {
	var out []fs.FS
	if sub, err := fs.Sub(EmbeddedThemes, "defaults"); err == nil {
		out = append(out, sub)
	}
	for _, dir := range []string{l.ConfigDir, l.SystemDir} {
		if dir != "" {
			out = append(out, os.DirFS(dir))
		}
	}
	return out
}

func parseFile(fsys fs.FS, name string) (*Theme, error) {
	f, err := fsys.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	t, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("theme %s: %w", name, err)
	}
	return t, nil
}
