// Package config loads threshold breaker definitions from YAML or JSON.
//
// A file holds any number of named breakers:
//
//	breakers:
//	  http-5xx:
//	    threshold: 5
//	    duration: 10s
//	    clear_after: 1m
//	    boundary: 499
//	    operator: ">"
//	    property: status
//	  disk-full:
//	    threshold: 3
//
// Breaker names are used verbatim and may contain dots ("db.primary").
// Durations use Go syntax ("500ms", "10s", "1m"). A missing boundary means
// truthy observations are violations; a boundary without an operator is a
// configuration error reported by Build.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/rawbytes"
	"github.com/knadh/koanf/v2"
	"go.uber.org/zap"

	"github.com/1mb-dev/tripwire"
)

// Format is a configuration file format.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
)

var (
	// ErrEmptyPath is returned by Load for an empty path.
	ErrEmptyPath = errors.New("tripwire/config: empty path")

	// ErrUnsupportedFormat is returned for unknown extensions or formats.
	ErrUnsupportedFormat = errors.New("tripwire/config: unsupported format")

	// ErrLoadFailed wraps file read errors.
	ErrLoadFailed = errors.New("tripwire/config: load failed")

	// ErrParseFailed wraps YAML/JSON syntax errors.
	ErrParseFailed = errors.New("tripwire/config: parse failed")

	// ErrUnmarshalFailed wraps errors decoding into BreakerConfig.
	ErrUnmarshalFailed = errors.New("tripwire/config: unmarshal failed")
)

const rootKey = "breakers"

// keyDelim separates koanf key paths. Breaker names are free-form map keys, so
// the delimiter is a byte that does not occur in them.
const keyDelim = "\x00"

// BreakerConfig is the file representation of tripwire.Settings.
type BreakerConfig struct {
	Threshold  int           `koanf:"threshold"`
	Duration   time.Duration `koanf:"duration"`
	ClearAfter time.Duration `koanf:"clear_after"`
	Boundary   any           `koanf:"boundary"`
	Operator   string        `koanf:"operator"`
	Property   string        `koanf:"property"`
}

// File is a parsed configuration file.
type File struct {
	Breakers map[string]BreakerConfig
}

// Load reads path and parses it according to its extension
// (.yaml, .yml or .json).
func Load(path string) (*File, error) {
	if path == "" {
		return nil, ErrEmptyPath
	}

	format, err := detectFormat(path)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadFailed, err)
	}

	return Parse(data, format)
}

// Parse decodes data in the given format. Empty data yields an empty File.
func Parse(data []byte, format Format) (*File, error) {
	var parser koanf.Parser
	switch format {
	case FormatYAML:
		parser = yaml.Parser()
	case FormatJSON:
		parser = json.Parser()
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}

	k := koanf.New(keyDelim)
	if len(data) > 0 {
		if err := k.Load(rawbytes.Provider(data), parser); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrParseFailed, err)
		}
	}

	f := &File{Breakers: map[string]BreakerConfig{}}
	if err := k.UnmarshalWithConf(rootKey, &f.Breakers, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnmarshalFailed, err)
	}
	return f, nil
}

// Names returns the configured breaker names, sorted.
func (f *File) Names() []string {
	names := make([]string, 0, len(f.Breakers))
	for name := range f.Breakers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Settings converts c into tripwire.Settings for the breaker called name.
func (c BreakerConfig) Settings(name string) (tripwire.Settings, error) {
	op, err := tripwire.ParseOperator(c.Operator)
	if err != nil {
		return tripwire.Settings{}, err
	}

	s := tripwire.Settings{
		Name:       name,
		Threshold:  c.Threshold,
		Duration:   c.Duration,
		ClearAfter: c.ClearAfter,
		Operator:   op,
		Property:   c.Property,
	}
	if c.Boundary != nil {
		s.Boundary = tripwire.ValuePtr(tripwire.ValueOf(c.Boundary))
	}
	return s, nil
}

type buildOptions struct {
	logger *zap.Logger
	clock  clockwork.Clock
}

// BuildOption configures Build.
type BuildOption func(*buildOptions)

// WithLogger sets the logger handed to every breaker.
func WithLogger(l *zap.Logger) BuildOption {
	return func(o *buildOptions) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithClock sets the clock handed to every breaker.
func WithClock(c clockwork.Clock) BuildOption {
	return func(o *buildOptions) {
		if c != nil {
			o.clock = c
		}
	}
}

// Build constructs every configured breaker. It fails on the first invalid
// definition, naming the breaker; the underlying *tripwire.ConfigurationError
// remains reachable with errors.As.
func (f *File) Build(opts ...BuildOption) (map[string]*tripwire.ThresholdBreaker, error) {
	o := &buildOptions{}
	for _, opt := range opts {
		opt(o)
	}

	out := make(map[string]*tripwire.ThresholdBreaker, len(f.Breakers))
	for _, name := range f.Names() {
		s, err := f.Breakers[name].Settings(name)
		if err != nil {
			return nil, fmt.Errorf("breaker %q: %w", name, err)
		}
		s.Logger = o.logger
		s.Clock = o.clock

		b, err := tripwire.New(s)
		if err != nil {
			return nil, fmt.Errorf("breaker %q: %w", name, err)
		}
		out[name] = b
	}
	return out, nil
}

func detectFormat(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".json":
		return FormatJSON, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, filepath.Ext(path))
	}
}
