package compiler

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/wkalt/bop/codegen"
	"github.com/wkalt/bop/config"
	"github.com/wkalt/bop/schema"
	"github.com/wkalt/bop/util/log"
)

/*
Package compiler is the build step. It loads a set of root schema files with
their imports, validates them, and produces one Go source artifact per schema
file. Any schema error is fatal and returned as-is, so it can be printed as a
positioned diagnostic.
*/

////////////////////////////////////////////////////////////////////////////////

// ErrArtifactCollision is returned when two schema files in one build would
// produce the same output file.
var ErrArtifactCollision = errors.New("artifact collision")

// Options control a build.
type Options struct {
	// Package is the Go package name of every artifact.
	Package string
}

// Artifact is one generated Go source file.
type Artifact struct {
	Path   string
	Source []byte
}

// ArtifactName returns the output file name for a schema file.
func ArtifactName(file string) string {
	base := path.Base(file)
	return strings.TrimSuffix(base, path.Ext(base)) + ".bop.go"
}

// Build compiles roots, resolved against fsys. Artifact paths are bare file
// names.
func Build(ctx context.Context, fsys fs.FS, roots []string, opts Options) ([]Artifact, error) {
	s, err := schema.Load(fsys, roots...)
	if err != nil {
		return nil, err
	}
	log.Debugw(ctx, "loaded schema", "files", len(s.Files), "definitions", len(s.Definitions))
	owners := make(map[string]string, len(s.Files))
	artifacts := make([]Artifact, 0, len(s.Files))
	for _, file := range s.Files {
		name := ArtifactName(file)
		if other, ok := owners[name]; ok {
			return nil, fmt.Errorf("%w: %s and %s both produce %s", ErrArtifactCollision, other, file, name)
		}
		owners[name] = file
		src, err := codegen.GenerateFile(s, file, codegen.Options{Package: opts.Package})
		if err != nil {
			return nil, fmt.Errorf("failed to generate %s: %w", file, err)
		}
		log.Debugw(ctx, "generated artifact", "source", file, "artifact", name, "bytes", len(src))
		artifacts = append(artifacts, Artifact{Path: name, Source: src})
	}
	return artifacts, nil
}

// BuildTarget compiles one configured target. Schema globs are expanded in the
// configuration directory and artifact paths are placed under the target's
// output directory.
func BuildTarget(ctx context.Context, cfg *config.Config, target config.Target) ([]Artifact, error) {
	ctx = log.AddTags(ctx, "package", target.Package)
	fsys := os.DirFS(cfg.Dir)
	roots, err := target.Files(fsys)
	if err != nil {
		return nil, err
	}
	artifacts, err := Build(ctx, fsys, roots, Options{Package: target.Package})
	if err != nil {
		return nil, err
	}
	for i := range artifacts {
		artifacts[i].Path = filepath.Join(cfg.Dir, target.Out, artifacts[i].Path)
	}
	log.Infow(ctx, "built target", "roots", len(roots), "artifacts", len(artifacts))
	return artifacts, nil
}

// Write writes artifacts to disk, relative to dir, creating directories as
// needed.
func Write(ctx context.Context, dir string, artifacts []Artifact) error {
	for _, a := range artifacts {
		dest := filepath.Join(dir, a.Path)
		if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
		if err := os.WriteFile(dest, a.Source, 0o644); err != nil { // nolint:gosec
			return fmt.Errorf("failed to write %s: %w", dest, err)
		}
		log.Infow(ctx, "wrote artifact", "path", dest, "bytes", len(a.Source))
	}
	return nil
}
