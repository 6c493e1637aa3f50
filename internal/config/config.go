// Package config handles application configuration and command-line argument parsing.
package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/alexflint/go-arg"
	"gopkg.in/yaml.v3"

	"github.com/joe/env-finder/internal/finder"
	"github.com/joe/env-finder/pkg/filesystem"
)

// DefaultRoot is scanned when no root is given.
const DefaultRoot = "."

// Exported errors.
var (
	ErrNoPattern       = errors.New("search needs --pattern or --glob")
	ErrPatternAndGlob  = errors.New("--pattern and --glob are mutually exclusive")
	ErrInvalidRootPath = errors.New("invalid root")
)

// FindCmd scans for .env files.
type FindCmd struct {
	Roots []string `arg:"positional" help:"directories or sftp://user@host/path URLs to scan (default: .)"`
}

// SearchCmd scans for file names containing a substring or matching a glob.
type SearchCmd struct {
	Pattern string   `arg:"-p,--pattern" help:"substring to look for in file names (empty matches every file)"`
	Glob    string   `arg:"-g,--glob" help:"doublestar pattern matched against file names, e.g. '*.{yml,yaml}'"`
	Roots   []string `arg:"positional" help:"directories or sftp://user@host/path URLs to scan (default: .)"`

	// patternSet records that --pattern appeared, since an empty pattern is valid
	patternSet bool
}

// Config holds the application configuration
type Config struct {
	Find   *FindCmd   `arg:"subcommand:find" help:"find .env files (the default)"`
	Search *SearchCmd `arg:"subcommand:search" help:"find files by name pattern"`

	Exclude            []string `arg:"-e,--exclude,separate" help:"directory name to skip; repeatable"`
	NoDefaultExcludes  bool     `arg:"--no-default-excludes" help:"do not skip node_modules and .git"`
	IgnoreCaseExcludes bool     `arg:"--ignore-case-excludes" help:"compare directory names to exclusions ignoring case"`
	ConfigFile         string   `arg:"-c,--config" help:"YAML file with exclusion settings"`
	LogFile            string   `arg:"--log-file" help:"write a scan log to this file"`
	Quiet              bool     `arg:"-q,--quiet" help:"print matching paths only"`
	Debug              bool     `arg:"-d,--debug" help:"show suggestions for errors"`
	InteractiveMode    bool     `arg:"-i,--interactive" help:"show a live view of the scan (terminals only)"`
}

// FileConfig is the layout of the --config file.
type FileConfig struct {
	Exclude            []string `yaml:"exclude"`
	NoDefaultExcludes  bool     `yaml:"no_default_excludes"`
	IgnoreCaseExcludes bool     `yaml:"ignore_case_excludes"`
}

// Description returns the program description for go-arg
func (Config) Description() string {
	return "Find .env files (or any file by name) in directory trees, skipping node_modules and .git"
}

// Version returns the version string for go-arg
func (Config) Version() string {
	return "env-finder 1.0.0"
}

// ParseFlags parses command-line flags and returns configuration
func ParseFlags() (*Config, error) {
	cfg := &Config{}

	arg.MustParse(cfg)

	if cfg.Search != nil {
		cfg.Search.patternSet = flagGiven(os.Args[1:], "-p", "--pattern")
	}

	return PostProcessConfig(cfg)
}

// Parse parses args (without the program name). It returns arg.ErrHelp or
// arg.ErrVersion when those flags were given.
func Parse(args []string) (*Config, error) {
	cfg := &Config{}

	p, err := arg.NewParser(arg.Config{Program: "env-finder"}, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to build parser: %w", err)
	}

	if err := p.Parse(args); err != nil {
		return nil, err //nolint:wrapcheck // callers compare against arg.ErrHelp
	}

	if cfg.Search != nil {
		cfg.Search.patternSet = flagGiven(args, "-p", "--pattern")
	}

	return PostProcessConfig(cfg)
}

// PostProcessConfig applies post-processing logic to a parsed config
func PostProcessConfig(cfg *Config) (*Config, error) {
	if cfg.Find == nil && cfg.Search == nil {
		cfg.Find = &FindCmd{}
	}

	if cfg.ConfigFile != "" {
		if err := cfg.mergeFile(cfg.ConfigFile); err != nil {
			return nil, err
		}
	}

	if cfg.Search != nil {
		if err := cfg.Search.validate(); err != nil {
			return nil, err
		}
	}

	if err := ValidateRoots(cfg.Roots()); err != nil {
		return nil, err
	}

	return cfg, nil
}

// LoadFile reads a YAML config file.
func LoadFile(path string) (*FileConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("cannot read config file: %w", err)
	}

	var fc FileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return nil, fmt.Errorf("cannot parse config file %s: %w", path, err)
	}

	return &fc, nil
}

// ValidateRoots rejects malformed sftp:// roots. Local roots are not checked
// here; a missing directory is reported by the scan itself.
func ValidateRoots(roots []string) error {
	for _, root := range roots {
		if _, err := filesystem.ParsePath(root); err != nil {
			return fmt.Errorf("%w %q: %w", ErrInvalidRootPath, root, err)
		}
	}

	return nil
}

// Exclusions returns the directory names to skip: the defaults (unless
// disabled) followed by --exclude values.
func (cfg *Config) Exclusions() []string {
	var names []string
	if !cfg.NoDefaultExcludes {
		names = finder.DefaultExclusions()
	}

	return append(names, cfg.Exclude...)
}

// FinderOptions returns the finder options the config describes.
func (cfg *Config) FinderOptions() []finder.Option {
	opts := []finder.Option{finder.WithExclusions(cfg.Exclusions()...)}
	if cfg.IgnoreCaseExcludes {
		opts = append(opts, finder.WithCaseInsensitiveExclusions())
	}

	return opts
}

// Matcher returns the name matcher for the selected subcommand.
func (cfg *Config) Matcher() (finder.Matcher, error) {
	if cfg.Search == nil {
		return finder.EnvFileMatcher(), nil
	}

	if cfg.Search.Glob != "" {
		m, err := finder.NewGlobMatcher(cfg.Search.Glob)
		if err != nil {
			return nil, fmt.Errorf("--glob: %w", err)
		}

		return m, nil
	}

	return finder.SubstringMatcher{Pattern: cfg.Search.Pattern}, nil
}

// Roots returns the roots to scan, DefaultRoot when none were given.
func (cfg *Config) Roots() []string {
	var roots []string

	switch {
	case cfg.Search != nil:
		roots = cfg.Search.Roots
	case cfg.Find != nil:
		roots = cfg.Find.Roots
	}

	if len(roots) == 0 {
		return []string{DefaultRoot}
	}

	return roots
}

// mergeFile applies file settings under the flags: file exclusions come
// before --exclude values and booleans are set if either source sets them.
func (cfg *Config) mergeFile(path string) error {
	fc, err := LoadFile(path)
	if err != nil {
		return err
	}

	cfg.Exclude = append(append([]string{}, fc.Exclude...), cfg.Exclude...)
	cfg.NoDefaultExcludes = cfg.NoDefaultExcludes || fc.NoDefaultExcludes
	cfg.IgnoreCaseExcludes = cfg.IgnoreCaseExcludes || fc.IgnoreCaseExcludes

	return nil
}

func (s *SearchCmd) validate() error {
	hasGlob := s.Glob != ""
	hasPattern := s.patternSet || s.Pattern != ""

	switch {
	case hasGlob && hasPattern:
		return ErrPatternAndGlob
	case !hasGlob && !hasPattern:
		return ErrNoPattern
	}

	if hasGlob {
		if _, err := finder.NewGlobMatcher(s.Glob); err != nil {
			return fmt.Errorf("--glob: %w", err)
		}
	}

	return nil
}

// flagGiven reports whether any of names appears in args, alone or as name=value.
func flagGiven(args []string, names ...string) bool {
	for _, a := range args {
		if a == "--" {
			return false
		}

		for _, name := range names {
			if a == name || len(a) > len(name) && a[:len(name)+1] == name+"=" {
				return true
			}
		}
	}

	return false
}
