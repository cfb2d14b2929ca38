// Package testsupport provides fixtures shared by wrapper resolution and
// rendering tests.
package testsupport

import (
	"bytes"
	"context"
	"io"
	"path"
	"sync"
	"testing"

	"github.com/goliatone/go-wrappers/pkg/config"
	"github.com/goliatone/go-wrappers/pkg/handler"
	"github.com/goliatone/go-wrappers/pkg/template"
)

// MemoryFinder is an in-memory template.Finder. Tests seed it with template
// identifiers and can assert on the probes resolution performed.
type MemoryFinder struct {
	mu     sync.Mutex
	names  map[string]struct{}
	probes []string
}

var _ template.Finder = (*MemoryFinder)(nil)

// NewMemoryFinder seeds a finder with identifiers such as "wrapperss/bank".
func NewMemoryFinder(names ...string) *MemoryFinder {
	f := &MemoryFinder{names: make(map[string]struct{}, len(names))}
	f.Add(names...)
	return f
}

// Add registers more template identifiers.
func (f *MemoryFinder) Add(names ...string) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, name := range names {
		f.names[name] = struct{}{}
	}
}

// FindAll reports the seeded templates matching name under the prefixes, in
// prefix order.
func (f *MemoryFinder) FindAll(_ context.Context, name string, prefixes ...string) ([]template.Template, error) {
	if len(prefixes) == 0 {
		prefixes = []string{""}
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	var found []template.Template
	for _, prefix := range prefixes {
		id := name
		if prefix != "" {
			id = path.Join(prefix, name)
		}
		f.probes = append(f.probes, id)
		if _, ok := f.names[id]; ok {
			found = append(found, template.Template{Name: name, Prefix: prefix})
		}
	}
	return found, nil
}

// Probes returns every identifier FindAll looked up, in order.
func (f *MemoryFinder) Probes() []string {
	f.mu.Lock()
	defer f.mu.Unlock()

	out := make([]string, len(f.probes))
	copy(out, f.probes)
	return out
}

// Hierarchy parses an inline declaration document and applies it to a fresh
// registry. Failures end the test; fixtures are assumed valid.
func Hierarchy(t *testing.T, doc string) *handler.Registry {
	t.Helper()

	parsed, err := config.Parse([]byte(doc), "inline")
	if err != nil {
		t.Fatalf("parse declarations: %v", err)
	}

	reg := handler.NewRegistry()
	if err := parsed.Apply(reg); err != nil {
		t.Fatalf("apply declarations: %v", err)
	}
	return reg
}

// Context returns a background context for tests.
func Context() context.Context {
	return context.Background()
}

// CaptureRenderOutput executes a render function that writes to an io.Writer,
// returning both the string result and the writer contents. Tests can assert
// the engine returns and writes the same payload without duplicating buffer
// setup.
func CaptureRenderOutput(t *testing.T, render func(io.Writer) (string, error)) (string, string) {
	t.Helper()

	var buf bytes.Buffer
	out, err := render(&buf)
	if err != nil {
		t.Fatalf("render: %v", err)
	}

	return out, buf.String()
}
