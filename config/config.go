// Package config loads the build configuration for schema compilation.
//
// A configuration file lists one or more targets. Each target names the
// schema files to compile, as doublestar globs relative to the directory
// containing the configuration file, and the Go package and output directory
// the generated code goes to:
//
//	targets:
//	  - schemas: ["schemas/**/*.bop"]
//	    package: media
//	    out: gen/media
package config

import (
	"bytes"
	"errors"
	"fmt"
	"go/token"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"slices"

	"github.com/bmatcuk/doublestar/v4"
	"gopkg.in/yaml.v3"
)

// DefaultFile is the configuration file name looked up when none is given.
const DefaultFile = "bop.yaml"

// ErrInvalidConfig is returned for configurations that fail validation.
var ErrInvalidConfig = errors.New("invalid config")

// Config is a build configuration.
type Config struct {
	// Targets are compiled independently, in order.
	Targets []Target `yaml:"targets"`

	// Dir is the directory schema globs and output paths are relative to. It
	// is set by Load.
	Dir string `yaml:"-"`
}

// Target is one generated Go package.
type Target struct {
	// Schemas are doublestar globs selecting the root schema files.
	Schemas []string `yaml:"schemas"`

	// Package is the Go package name of the generated files.
	Package string `yaml:"package"`

	// Out is the directory generated files are written to.
	Out string `yaml:"out"`
}

// Load reads and validates the configuration file at path.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	c, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	c.Dir = filepath.Dir(path)
	return c, nil
}

// Parse decodes and validates a configuration. Unknown keys are rejected.
func Parse(data []byte) (*Config, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	c := &Config{}
	if err := dec.Decode(c); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// Validate checks that the configuration has at least one complete target.
func (c *Config) Validate() error {
	if len(c.Targets) == 0 {
		return fmt.Errorf("%w: no targets", ErrInvalidConfig)
	}
	for i, t := range c.Targets {
		switch {
		case len(t.Schemas) == 0:
			return fmt.Errorf("%w: target %d: no schemas", ErrInvalidConfig, i)
		case t.Package == "":
			return fmt.Errorf("%w: target %d: missing package", ErrInvalidConfig, i)
		case !token.IsIdentifier(t.Package):
			return fmt.Errorf("%w: target %d: package %q is not a Go identifier", ErrInvalidConfig, i, t.Package)
		case t.Out == "":
			return fmt.Errorf("%w: target %d: missing out", ErrInvalidConfig, i)
		}
		for _, pattern := range t.Schemas {
			if !doublestar.ValidatePattern(pattern) {
				return fmt.Errorf("%w: target %d: bad pattern %q", ErrInvalidConfig, i, pattern)
			}
		}
	}
	return nil
}

// Files expands the target's schema globs against fsys. The result is sorted
// and free of duplicates. A pattern matching nothing is an error.
func (t Target) Files(fsys fs.FS) ([]string, error) {
	seen := map[string]bool{}
	files := []string{}
	for _, pattern := range t.Schemas {
		matches, err := doublestar.Glob(fsys, pattern)
		if err != nil {
			return nil, fmt.Errorf("failed to expand %q: %w", pattern, err)
		}
		if len(matches) == 0 {
			return nil, fmt.Errorf("pattern %q matched no files", pattern)
		}
		for _, match := range matches {
			if !seen[match] {
				seen[match] = true
				files = append(files, match)
			}
		}
	}
	slices.Sort(files)
	return files, nil
}
