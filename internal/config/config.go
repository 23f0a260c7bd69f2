// Package config reads the key=value display settings file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
)

// DefaultPath is the settings file looked up in the working directory.
const DefaultPath = "config.txt"

// Config holds the window settings.
type Config struct {
	Fullscreen bool
	// Width and Height are the window size in pixels.
	Width  int
	Height int
	// ResolutionPercentage scales the render buffer relative to the window.
	ResolutionPercentage int
}

// Default returns the settings written to a fresh config file.
func Default() Config {
	return Config{
		Fullscreen:           false,
		Width:                1280,
		Height:               720,
		ResolutionPercentage: 100,
	}
}

// BufferSize is the render buffer size: the window size scaled by the
// resolution percentage. Both sides are at least one pixel.
func (c Config) BufferSize() (w, h int) {
	w = c.Width * c.ResolutionPercentage / 100
	h = c.Height * c.ResolutionPercentage / 100
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	return w, h
}

// Load reads path, creating it with the defaults when it does not exist.
//
// Bad or missing values fall back to their defaults without complaint. The
// returned config is always usable; a non-nil error only reports that the
// default file could not be written or an existing one could not be read.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		cfg := Default()
		if werr := os.WriteFile(path, []byte(cfg.Encode()), 0o644); werr != nil {
			return cfg, fmt.Errorf("create %s: %w", path, werr)
		}
		return cfg, nil
	}
	if err != nil {
		return Default(), fmt.Errorf("read %s: %w", path, err)
	}
	return Parse(string(data)), nil
}

// Parse applies the key=value lines in text over the defaults.
func Parse(text string) Config {
	cfg := Default()
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		key, val, ok := strings.Cut(line, "=")
		if !ok {
			continue
		}
		cfg.applyKV(strings.TrimSpace(key), strings.TrimSpace(val))
	}
	return cfg
}

func (c *Config) applyKV(key, val string) {
	switch key {
	case "fullscreen":
		c.Fullscreen = val == "true"
	case "width":
		c.Width = positiveDef(val, c.Width)
	case "height":
		c.Height = positiveDef(val, c.Height)
	case "resolutionPercentage":
		c.ResolutionPercentage = positiveDef(val, c.ResolutionPercentage)
	}
}

// Encode renders c in the file format Load reads.
func (c Config) Encode() string {
	var b strings.Builder
	fmt.Fprintf(&b, "fullscreen=%t\n", c.Fullscreen)
	fmt.Fprintf(&b, "width=%d\n", c.Width)
	fmt.Fprintf(&b, "height=%d\n", c.Height)
	fmt.Fprintf(&b, "resolutionPercentage=%d\n", c.ResolutionPercentage)
	return b.String()
}

func positiveDef(s string, def int) int {
	n, err := strconv.Atoi(s)
	if err != nil || n <= 0 {
		return def
	}
	return n
}
