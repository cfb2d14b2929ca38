// Package config loads wrapper declarations for a handler hierarchy from
// JSON or YAML documents and applies them to a handler registry.
package config

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-wrappers/pkg/wrapper"
)

// Entry is one handler declaration read from a document.
type Entry struct {
	Name   string
	Parent string
	Source string

	// HasWrapper distinguishes "wrapper: null", which declares convention
	// lookup, from an entry that only places the handler in the hierarchy.
	HasWrapper bool
	Wrapper    any
	Conditions wrapper.Conditions
}

// Document is a merged set of handler declarations keyed by handler name.
type Document struct {
	entries map[string]Entry
}

// LoadFS walks the provided filesystem and parses JSON/YAML declaration
// files. When fsys is nil or no declaration files are present, the returned
// document is empty.
func LoadFS(fsys fs.FS) (*Document, error) {
	doc := &Document{entries: make(map[string]Entry)}
	if fsys == nil {
		return doc, nil
	}

	err := fs.WalkDir(fsys, ".", func(path string, entry fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if entry.IsDir() {
			return nil
		}
		if !isDeclarationFile(path) {
			return nil
		}

		data, err := fs.ReadFile(fsys, path)
		if err != nil {
			return fmt.Errorf("config: read %s: %w", path, err)
		}
		return doc.merge(data, path)
	})
	if err != nil {
		return nil, err
	}

	return doc, nil
}

// LoadFile parses a single declaration file from disk.
func LoadFile(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}
	return Parse(data, path)
}

// Parse parses one declaration document. The source name only feeds error
// messages.
func Parse(data []byte, source string) (*Document, error) {
	doc := &Document{entries: make(map[string]Entry)}
	if err := doc.merge(data, source); err != nil {
		return nil, err
	}
	return doc, nil
}

// Entry returns the declaration for the named handler.
func (d *Document) Entry(name string) (Entry, bool) {
	if d == nil {
		return Entry{}, false
	}
	entry, ok := d.entries[name]
	return entry, ok
}

// Handlers returns the declared handler names, sorted.
func (d *Document) Handlers() []string {
	if d == nil {
		return nil
	}
	names := make([]string, 0, len(d.entries))
	for name := range d.entries {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Empty reports whether the document declares any handlers.
func (d *Document) Empty() bool {
	return d == nil || len(d.entries) == 0
}

func (d *Document) merge(data []byte, source string) error {
	parsed, err := parseDocument(data, source)
	if err != nil {
		return err
	}

	for rawName, fields := range parsed.Handlers {
		name := strings.TrimSpace(rawName)
		if name == "" {
			return fmt.Errorf("config: file %s defines an empty handler name", source)
		}
		if _, exists := d.entries[name]; exists {
			return fmt.Errorf("config: duplicate handler %q (file %s)", name, source)
		}

		entry, err := normalizeEntry(fields, name, source)
		if err != nil {
			return err
		}
		d.entries[name] = entry
	}

	return nil
}

// documentFile keeps handler fields loose so "wrapper: null" stays
// distinguishable from an absent wrapper key under both decoders.
type documentFile struct {
	Handlers map[string]map[string]any `json:"handlers" yaml:"handlers"`
}

func parseDocument(data []byte, source string) (documentFile, error) {
	var doc documentFile
	if len(strings.TrimSpace(string(data))) == 0 {
		return documentFile{}, fmt.Errorf("config: file %s is empty", source)
	}

	if err := json.Unmarshal(data, &doc); err == nil {
		return doc, nil
	}

	if err := yaml.Unmarshal(data, &doc); err == nil {
		return doc, nil
	}

	return documentFile{}, fmt.Errorf("config: parse %s: invalid JSON or YAML", source)
}

func normalizeEntry(fields map[string]any, name, source string) (Entry, error) {
	entry := Entry{Name: name, Source: source}

	for key := range fields {
		switch key {
		case "parent", "wrapper", "only", "except":
		default:
			return Entry{}, fmt.Errorf("config: handler %q (file %s) has unknown key %q", name, source, key)
		}
	}

	if raw, ok := fields["parent"]; ok && raw != nil {
		parent, ok := raw.(string)
		if !ok {
			return Entry{}, fmt.Errorf("config: handler %q (file %s): parent must be a handler name, got %T", name, source, raw)
		}
		entry.Parent = strings.TrimSpace(parent)
	}

	if raw, ok := fields["wrapper"]; ok {
		value, err := normalizeWrapper(raw, name, source)
		if err != nil {
			return Entry{}, err
		}
		entry.HasWrapper = true
		entry.Wrapper = value
	}

	conds := map[string]any{}
	if raw, ok := fields["only"]; ok {
		conds["only"] = raw
	}
	if raw, ok := fields["except"]; ok {
		conds["except"] = raw
	}
	if len(conds) > 0 {
		if !entry.HasWrapper {
			return Entry{}, fmt.Errorf("config: handler %q (file %s) scopes a wrapper it never declares", name, source)
		}
		parsed, err := wrapper.ConditionsFrom(conds)
		if err != nil {
			return Entry{}, fmt.Errorf("config: handler %q (file %s): %w", name, source, err)
		}
		entry.Conditions = parsed
	}

	return entry, nil
}

// normalizeWrapper validates a declaration value at parse time so a bad
// document fails on load rather than when the registry applies it. Mappings
// name a wrapper method, the file form of a method declaration.
func normalizeWrapper(value any, name, source string) (any, error) {
	if m, ok := value.(map[string]any); ok {
		method, ok := methodRef(m)
		if !ok {
			return nil, fmt.Errorf("config: handler %q (file %s): wrapper mapping must hold a single method name", name, source)
		}
		return wrapper.Method(method), nil
	}

	if _, err := wrapper.From(value); err != nil {
		return nil, fmt.Errorf("config: handler %q (file %s): %w", name, source, err)
	}
	return value, nil
}

func methodRef(m map[string]any) (string, bool) {
	if len(m) != 1 {
		return "", false
	}
	raw, ok := m["method"]
	if !ok {
		return "", false
	}
	method, ok := raw.(string)
	if !ok || strings.TrimSpace(method) == "" {
		return "", false
	}
	return strings.TrimSpace(method), true
}

func isDeclarationFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json", ".yaml", ".yml":
		return true
	default:
		return false
	}
}
