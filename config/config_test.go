package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/require"
	"github.com/wkalt/bop/config"
)

func TestParse(t *testing.T) {
	c, err := config.Parse([]byte(`
targets:
  - schemas: ["schemas/**/*.bop", "extra.bop"]
    package: media
    out: gen/media
  - schemas: ["other.bop"]
    package: other
    out: gen/other
`))
	require.NoError(t, err)
	require.Equal(t, []config.Target{
		{Schemas: []string{"schemas/**/*.bop", "extra.bop"}, Package: "media", Out: "gen/media"},
		{Schemas: []string{"other.bop"}, Package: "other", Out: "gen/other"},
	}, c.Targets)
}

func TestParseErrors(t *testing.T) {
	cases := []struct {
		assertion string
		input     string
		contains  string
	}{
		{"empty", ``, "no targets"},
		{"no targets", `targets: []`, "no targets"},
		{"no schemas", "targets:\n- package: a\n  out: b", "target 0: no schemas"},
		{"no package", "targets:\n- schemas: [a.bop]\n  out: b", "missing package"},
		{"bad package", "targets:\n- schemas: [a.bop]\n  package: my-pkg\n  out: b", "not a Go identifier"},
		{"no out", "targets:\n- schemas: [a.bop]\n  package: a", "missing out"},
		{"bad pattern", "targets:\n- schemas: ['[a.bop']\n  package: a\n  out: b", "bad pattern"},
		{"unknown key", "targets:\n- schemas: [a.bop]\n  package: a\n  out: b\n  extra: 1", "extra"},
		{"not yaml", "targets: [", "invalid config"},
	}
	for _, c := range cases {
		t.Run(c.assertion, func(t *testing.T) {
			_, err := config.Parse([]byte(c.input))
			require.ErrorIs(t, err, config.ErrInvalidConfig)
			require.ErrorContains(t, err, c.contains)
		})
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, config.DefaultFile)
	require.NoError(t, os.WriteFile(path, []byte("targets:\n- schemas: [a.bop]\n  package: a\n  out: gen"), 0o600))
	c, err := config.Load(path)
	require.NoError(t, err)
	require.Equal(t, dir, c.Dir)
	require.Len(t, c.Targets, 1)

	_, err = config.Load(filepath.Join(dir, "missing.yaml"))
	require.ErrorContains(t, err, "failed to read config")
}

func TestTargetFiles(t *testing.T) {
	fsys := fstest.MapFS{
		"schemas/a.bop":        {},
		"schemas/nested/b.bop": {},
		"schemas/notes.txt":    {},
		"top.bop":              {},
	}
	cases := []struct {
		assertion string
		patterns  []string
		expected  []string
	}{
		{"recursive glob", []string{"schemas/**/*.bop"}, []string{"schemas/a.bop", "schemas/nested/b.bop"}},
		{"literal", []string{"top.bop"}, []string{"top.bop"}},
		{"overlapping patterns", []string{"**/*.bop", "top.bop"}, []string{"schemas/a.bop", "schemas/nested/b.bop", "top.bop"}},
	}
	for _, c := range cases {
		t.Run(c.assertion, func(t *testing.T) {
			files, err := config.Target{Schemas: c.patterns}.Files(fsys)
			require.NoError(t, err)
			require.Equal(t, c.expected, files)
		})
	}

	_, err := config.Target{Schemas: []string{"*.proto"}}.Files(fsys)
	require.ErrorContains(t, err, "matched no files")
}
