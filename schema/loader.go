package schema

import (
	"io/fs"
	"path"
	"slices"
	"strings"
)

/*
The loader parses a root file and everything it imports into one flat schema.
Import paths resolve against the importing file's directory. Imported
definitions are spliced in at the import site, depth first. A file that has
already been loaded is skipped, and a file that is re-entered while it is still
being loaded is a cyclic import.
*/

////////////////////////////////////////////////////////////////////////////////

type loader struct {
	fsys  fs.FS
	done  map[string]bool
	stack []string
	files []string
	defs  []*Definition
}

func newLoader(fsys fs.FS) *loader {
	return &loader{fsys: fsys, done: map[string]bool{}}
}

// Load parses the named root files from fsys, follows their imports, and
// validates the result.
func Load(fsys fs.FS, roots ...string) (*Schema, error) {
	l := newLoader(fsys)
	for _, root := range roots {
		root = path.Clean(root)
		if err := l.load(root, Position{File: root}); err != nil {
			return nil, err
		}
	}
	return l.finish()
}

// Parse parses a single schema text. Imports fail since there is no file
// system to resolve them against.
func Parse(filename string, src []byte) (*Schema, error) {
	l := newLoader(nil)
	if err := l.parse(filename, src); err != nil {
		return nil, err
	}
	return l.finish()
}

func (l *loader) load(name string, from Position) error {
	if slices.Contains(l.stack, name) {
		cycle := append(slices.Clone(l.stack), name)
		return errorf(from, ErrCyclicImport, "%s", strings.Join(cycle, " -> "))
	}
	if l.done[name] {
		return nil
	}
	if l.fsys == nil {
		return errorf(from, ErrImport, "%s: no file system to import from", name)
	}
	src, err := fs.ReadFile(l.fsys, name)
	if err != nil {
		return errorf(from, ErrImport, "%s: %v", name, err)
	}
	return l.parse(name, src)
}

func (l *loader) parse(name string, src []byte) error {
	l.stack = append(l.stack, name)
	defer func() { l.stack = l.stack[:len(l.stack)-1] }()
	ast, err := parseAST(name, src)
	if err != nil {
		return err
	}
	l.files = append(l.files, name)
	for _, entry := range ast.Entries {
		if entry.Import != nil {
			target := path.Join(path.Dir(name), *entry.Import)
			if err := l.load(target, toPosition(entry.Pos)); err != nil {
				return err
			}
			continue
		}
		defs, err := transformDefinition(entry.Definition)
		if err != nil {
			return err
		}
		l.defs = append(l.defs, defs...)
	}
	l.done[name] = true
	return nil
}

func (l *loader) finish() (*Schema, error) {
	s := &Schema{Definitions: l.defs, Files: l.files}
	if err := validate(s); err != nil {
		return nil, err
	}
	return s, nil
}
