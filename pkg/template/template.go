// Package template locates the templates that wrapper resolution selects
// from. A Finder answers existence queries by name and prefix; the file
// system implementation walks a tree once and serves lookups from the
// collected index.
package template

import (
	"context"
	"path"
)

// Template is one discovered template.
type Template struct {
	// Name is the template name relative to its prefix, without extension.
	Name string
	// Prefix is the directory the template was found under, "" for the root.
	Prefix string
	// Path is the full file path inside the source tree, with extension.
	Path string
}

// Identifier returns the prefix qualified name used to reference the
// template, for example "wrapperss/bank".
func (t Template) Identifier() string {
	if t.Prefix == "" {
		return t.Name
	}
	return path.Join(t.Prefix, t.Name)
}

func (t Template) String() string {
	return t.Identifier()
}

// Finder locates templates by name under an ordered list of prefixes.
type Finder interface {
	// FindAll returns every template matching name under the given
	// prefixes, in prefix order. A missing template is not an error; the
	// result is simply empty.
	FindAll(ctx context.Context, name string, prefixes ...string) ([]Template, error)
}

// Exists reports whether at least one template matches name under the
// prefixes.
func Exists(ctx context.Context, finder Finder, name string, prefixes ...string) (bool, error) {
	found, err := finder.FindAll(ctx, name, prefixes...)
	if err != nil {
		return false, err
	}
	return len(found) > 0, nil
}
