package template

import (
	"context"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"
)

// DefaultExtensions are the file extensions FSFinder recognizes unless
// configured otherwise. Earlier entries win when a name exists with several.
var DefaultExtensions = []string{".html", ".tmpl", ".tpl"}

// FSFinder serves template lookups from a file system tree. The tree is
// walked once at construction; lookups afterwards are map reads.
type FSFinder struct {
	fsys  fs.FS
	exts  []string
	index map[string]string
}

// FSOption configures an FSFinder.
type FSOption func(*FSFinder)

// WithExtensions replaces the recognized extension list. Entries are
// normalized to a leading dot and matched case insensitively.
func WithExtensions(exts ...string) FSOption {
	return func(f *FSFinder) {
		normalized := make([]string, 0, len(exts))
		for _, ext := range exts {
			ext = strings.ToLower(strings.TrimSpace(ext))
			if ext == "" {
				continue
			}
			if !strings.HasPrefix(ext, ".") {
				ext = "." + ext
			}
			normalized = append(normalized, ext)
		}
		f.exts = normalized
	}
}

// NewFSFinder walks fsys and indexes every template it recognizes.
func NewFSFinder(fsys fs.FS, opts ...FSOption) (*FSFinder, error) {
	f := &FSFinder{
		fsys: fsys,
		exts: DefaultExtensions,
	}
	for _, opt := range opts {
		opt(f)
	}
	if len(f.exts) == 0 {
		return nil, fmt.Errorf("template: no extensions configured")
	}
	if err := f.scan(); err != nil {
		return nil, err
	}
	return f, nil
}

// FindAll implements Finder against the indexed tree.
func (f *FSFinder) FindAll(ctx context.Context, name string, prefixes ...string) ([]Template, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if len(prefixes) == 0 {
		prefixes = []string{""}
	}

	var found []Template
	for _, prefix := range prefixes {
		id := path.Join(prefix, name)
		p, ok := f.index[id]
		if !ok {
			continue
		}
		found = append(found, Template{
			Name:   name,
			Prefix: prefix,
			Path:   p,
		})
	}
	return found, nil
}

// Path returns the file path backing an identifier.
func (f *FSFinder) Path(identifier string) (string, bool) {
	p, ok := f.index[identifier]
	return p, ok
}

// Has reports whether an identifier is indexed.
func (f *FSFinder) Has(identifier string) bool {
	_, ok := f.index[identifier]
	return ok
}

// List returns every indexed template sorted by identifier.
func (f *FSFinder) List() []Template {
	ids := make([]string, 0, len(f.index))
	for id := range f.index {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	templates := make([]Template, 0, len(ids))
	for _, id := range ids {
		templates = append(templates, Template{Name: id, Path: f.index[id]})
	}
	return templates
}

func (f *FSFinder) scan() error {
	f.index = make(map[string]string)

	err := fs.WalkDir(f.fsys, ".", func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if p != "." && strings.HasPrefix(d.Name(), ".") {
				return fs.SkipDir
			}
			return nil
		}
		ext := strings.ToLower(path.Ext(p))
		rank := f.extRank(ext)
		if rank < 0 {
			return nil
		}
		id := strings.TrimSuffix(p, path.Ext(p))
		if existing, ok := f.index[id]; ok {
			if f.extRank(strings.ToLower(path.Ext(existing))) <= rank {
				return nil
			}
		}
		f.index[id] = p
		return nil
	})
	if err != nil {
		return fmt.Errorf("template: scan: %w", err)
	}
	return nil
}

func (f *FSFinder) extRank(ext string) int {
	for i, known := range f.exts {
		if ext == known {
			return i
		}
	}
	return -1
}
