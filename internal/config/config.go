package config

import (
	"fmt"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/dshills/mixedtabs/internal/logging"
)

// Config is the complete mixedtabs configuration.
type Config struct {
	Editor  EditorConfig  `toml:"editor" yaml:"editor"`
	InfoBar InfoBarConfig `toml:"infobar" yaml:"infobar"`
	Logging LoggingConfig `toml:"logging" yaml:"logging"`
	Watch   WatchConfig   `toml:"watch" yaml:"watch"`
}

// EditorConfig holds buffer settings.
type EditorConfig struct {
	// TabSize is the number of columns a tab advances to.
	TabSize int `toml:"tabSize" yaml:"tabSize"`
}

// InfoBarConfig controls the mixed-indentation bar.
type InfoBarConfig struct {
	// Enabled is false to start every bar disabled.
	Enabled bool `toml:"enabled" yaml:"enabled"`

	// AutoFix is "", "tabify" or "untabify". When set, the fix is applied
	// instead of showing the bar.
	AutoFix string `toml:"autoFix" yaml:"autoFix"`
}

// LoggingConfig holds logger settings.
type LoggingConfig struct {
	Level string `toml:"level" yaml:"level"`
}

// WatchConfig holds file watcher settings.
type WatchConfig struct {
	// Debounce coalesces write bursts on the same file.
	Debounce Duration `toml:"debounce" yaml:"debounce"`
}

// Duration is a time.Duration written as a string such as "200ms".
type Duration time.Duration

// UnmarshalText parses a duration string.
func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	*d = Duration(v)
	return nil
}

// MarshalText formats the duration as a string.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(time.Duration(d).String()), nil
}

// UnmarshalYAML parses a duration scalar.
func (d *Duration) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		return fmt.Errorf("line %d: duration must be a string", node.Line)
	}
	return d.UnmarshalText([]byte(node.Value))
}

// Std returns the value as a time.Duration.
func (d Duration) Std() time.Duration {
	return time.Duration(d)
}

// DefaultDebounce is the default watch debounce interval.
const DefaultDebounce = 200 * time.Millisecond

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Editor:  EditorConfig{TabSize: 4},
		InfoBar: InfoBarConfig{Enabled: true},
		Logging: LoggingConfig{Level: "info"},
		Watch:   WatchConfig{Debounce: Duration(DefaultDebounce)},
	}
}

// Overrides carries values set explicitly on the command line. Nil fields
// leave the configuration unchanged.
type Overrides struct {
	TabSize  *int
	LogLevel *string
	AutoFix  *string
}

// Apply applies the non-nil overrides.
func (c *Config) Apply(o Overrides) {
	if o.TabSize != nil {
		c.Editor.TabSize = *o.TabSize
	}
	if o.LogLevel != nil {
		c.Logging.Level = *o.LogLevel
	}
	if o.AutoFix != nil {
		c.InfoBar.AutoFix = strings.ToLower(*o.AutoFix)
	}
}

// Validate checks every setting and returns the first failure as a
// *ValidationError.
func (c *Config) Validate() error {
	if c.Editor.TabSize < 1 {
		return &ValidationError{Path: "editor.tabSize", Value: c.Editor.TabSize, Message: "must be at least 1"}
	}
	if _, err := logging.ParseLevel(c.Logging.Level); err != nil {
		return &ValidationError{Path: "logging.level", Value: c.Logging.Level, Message: "must be debug, info, warn or error"}
	}
	switch c.InfoBar.AutoFix {
	case "", "tabify", "untabify":
	default:
		return &ValidationError{Path: "infobar.autoFix", Value: c.InfoBar.AutoFix, Message: `must be "", "tabify" or "untabify"`}
	}
	if c.Watch.Debounce < 0 {
		return &ValidationError{Path: "watch.debounce", Value: c.Watch.Debounce.Std(), Message: "must not be negative"}
	}
	return nil
}

// LogLevel returns the parsed logging level. The configuration must have
// been validated.
func (c *Config) LogLevel() logging.Level {
	level, _ := logging.ParseLevel(c.Logging.Level)
	return level
}
