package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Environment variables read by the loader.
const (
	EnvTabSize        = "MIXEDTABS_TAB_SIZE"
	EnvLogLevel       = "MIXEDTABS_LOG_LEVEL"
	EnvAutoFix        = "MIXEDTABS_AUTO_FIX"
	EnvInfoBarEnabled = "MIXEDTABS_INFOBAR_ENABLED"
	EnvWatchDebounce  = "MIXEDTABS_WATCH_DEBOUNCE"
)

// DefaultEnvFile is the optional dotenv file read from the working directory.
const DefaultEnvFile = ".env"

// DefaultSearchPaths lists the config files tried when none is given.
// The first one that exists wins.
var DefaultSearchPaths = []string{
	".mixedtabs.toml",
	".mixedtabs.yaml",
	".mixedtabs.yml",
}

// Loader resolves a Config from files and the environment.
type Loader struct {
	configPath string
	envFile    string
	lookupEnv  func(string) (string, bool)
	overrides  Overrides
}

// LoaderOption configures a Loader.
type LoaderOption func(*Loader)

// WithConfigFile loads path instead of searching DefaultSearchPaths.
// A missing explicit file is an error.
func WithConfigFile(path string) LoaderOption {
	return func(l *Loader) {
		l.configPath = path
	}
}

// WithEnvFile reads dotenv values from path. An empty path disables it.
func WithEnvFile(path string) LoaderOption {
	return func(l *Loader) {
		l.envFile = path
	}
}

// WithLookupEnv replaces os.LookupEnv.
func WithLookupEnv(fn func(string) (string, bool)) LoaderOption {
	return func(l *Loader) {
		l.lookupEnv = fn
	}
}

// WithOverrides applies o after every other source, so command-line values
// win over the file and the environment.
func WithOverrides(o Overrides) LoaderOption {
	return func(l *Loader) {
		l.overrides = o
	}
}

// NewLoader creates a loader.
func NewLoader(opts ...LoaderOption) *Loader {
	l := &Loader{
		envFile:   DefaultEnvFile,
		lookupEnv: os.LookupEnv,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Load resolves defaults, the config file, the dotenv file, the environment
// and the overrides, then validates the result once every source is applied.
func (l *Loader) Load() (*Config, error) {
	cfg := Default()

	if err := l.loadFile(cfg); err != nil {
		return nil, err
	}

	dotenv, err := l.readEnvFile()
	if err != nil {
		return nil, err
	}

	lookup := func(key string) (string, bool) {
		if v, ok := l.lookupEnv(key); ok {
			return v, true
		}
		v, ok := dotenv[key]
		return v, ok
	}
	if err := applyEnv(cfg, lookup); err != nil {
		return nil, err
	}
	cfg.Apply(l.overrides)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (l *Loader) loadFile(cfg *Config) error {
	if l.configPath != "" {
		data, err := os.ReadFile(l.configPath)
		if errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("%w: %s", ErrFileNotFound, l.configPath)
		}
		if err != nil {
			return fmt.Errorf("reading config file %s: %w", l.configPath, err)
		}
		return decode(l.configPath, data, cfg)
	}

	for _, path := range DefaultSearchPaths {
		data, err := os.ReadFile(path)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return fmt.Errorf("reading config file %s: %w", path, err)
		}
		return decode(path, data, cfg)
	}
	return nil
}

// decode unmarshals data over cfg, picking the format from the extension.
// Keys missing from the file keep their current values.
func decode(path string, data []byte, cfg *Config) error {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		dec := toml.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(cfg); err != nil {
			perr := &ParseError{Path: path, Message: err.Error(), Err: err}
			var derr *toml.DecodeError
			if errors.As(err, &derr) {
				perr.Line, perr.Column = derr.Position()
			}
			return perr
		}
	case ".yaml", ".yml":
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
			return &ParseError{Path: path, Message: err.Error(), Err: err}
		}
	default:
		return fmt.Errorf("%w: %s", ErrUnsupportedFormat, path)
	}
	return nil
}

func (l *Loader) readEnvFile() (map[string]string, error) {
	if l.envFile == "" {
		return nil, nil
	}
	values, err := godotenv.Read(l.envFile)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, &ParseError{Path: l.envFile, Message: err.Error(), Err: err}
	}
	return values, nil
}

func applyEnv(cfg *Config, lookup func(string) (string, bool)) error {
	if v, ok := lookup(EnvTabSize); ok {
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return envError(EnvTabSize, err)
		}
		cfg.Editor.TabSize = n
	}
	if v, ok := lookup(EnvLogLevel); ok {
		cfg.Logging.Level = strings.TrimSpace(v)
	}
	if v, ok := lookup(EnvAutoFix); ok {
		cfg.InfoBar.AutoFix = strings.ToLower(strings.TrimSpace(v))
	}
	if v, ok := lookup(EnvInfoBarEnabled); ok {
		b, err := strconv.ParseBool(strings.TrimSpace(v))
		if err != nil {
			return envError(EnvInfoBarEnabled, err)
		}
		cfg.InfoBar.Enabled = b
	}
	if v, ok := lookup(EnvWatchDebounce); ok {
		d, err := time.ParseDuration(strings.TrimSpace(v))
		if err != nil {
			return envError(EnvWatchDebounce, err)
		}
		cfg.Watch.Debounce = Duration(d)
	}
	return nil
}

func envError(name string, err error) error {
	return &ParseError{Path: "$" + name, Message: err.Error(), Err: err}
}
