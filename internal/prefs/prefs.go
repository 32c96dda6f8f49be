// Package prefs persists marquee's look-and-feel settings in
// ~/.config/marquee/prefs.toml. A broken file falls back to the defaults.
package prefs

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	toml "github.com/pelletier/go-toml/v2"
)

const (
	defaultPath         = "~/.config/marquee/prefs.toml"
	defaultTheme        = "Dracula"
	defaultSpinDuration = 4 * time.Second

	minSpinDuration = 500 * time.Millisecond
	maxSpinDuration = 15 * time.Second
)

// Prefs is the contents of prefs.toml.
type Prefs struct {
	Theme        string `toml:"theme"`
	SpinDuration string `toml:"spin_duration"`
}

// DefaultPath is used when no path is given.
func DefaultPath() string { return defaultPath }

// Defaults are the prefs of a fresh install.
func Defaults() Prefs {
	return Prefs{Theme: defaultTheme, SpinDuration: defaultSpinDuration.String()}
}

// Load reads prefs from path. It always returns usable prefs: a missing
// file yields the defaults with no error, while an unreadable or malformed
// file yields the defaults together with an error for the caller to log.
func Load(path string) (Prefs, error) {
	file, err := locate(path)
	if err != nil {
		return Defaults(), err
	}

	data, err := os.ReadFile(file)
	switch {
	case errors.Is(err, os.ErrNotExist):
		return Defaults(), nil
	case err != nil:
		return Defaults(), fmt.Errorf("read prefs: %w", err)
	}

	p := Defaults()
	if err := toml.Unmarshal(data, &p); err != nil {
		return Defaults(), fmt.Errorf("parse prefs %s: %w", file, err)
	}
	return p.normalized(), nil
}

// Save writes p to path via a temporary file and rename.
func Save(path string, p Prefs) error {
	file, err := locate(path)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(file), 0o755); err != nil {
		return fmt.Errorf("create prefs dir: %w", err)
	}

	data, err := toml.Marshal(p.normalized())
	if err != nil {
		return fmt.Errorf("encode prefs: %w", err)
	}

	tmp := file + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write prefs: %w", err)
	}
	if err := os.Rename(tmp, file); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("replace prefs: %w", err)
	}
	return nil
}

// Spin is the wheel animation length, clamped to 500ms..15s. Anything
// unparsable means the default.
func (p Prefs) Spin() time.Duration {
	d, err := time.ParseDuration(strings.TrimSpace(p.SpinDuration))
	if err != nil || d <= 0 {
		return defaultSpinDuration
	}
	return min(max(d, minSpinDuration), maxSpinDuration)
}

func (p Prefs) normalized() Prefs {
	p.Theme = strings.TrimSpace(p.Theme)
	if p.Theme == "" {
		p.Theme = defaultTheme
	}
	p.SpinDuration = p.Spin().String()
	return p
}

// locate resolves path, or the default path when blank, to an absolute
// file name with ~ expanded.
func locate(path string) (string, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		path = defaultPath
	}
	if rest, ok := strings.CutPrefix(path, "~"); ok {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		path = filepath.Join(home, rest)
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("resolve prefs path: %w", err)
	}
	return abs, nil
}
