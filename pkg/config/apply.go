package config

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/goliatone/go-wrappers/pkg/handler"
	"github.com/goliatone/go-wrappers/pkg/wrapper"
)

// Apply registers every declared handler, parents before children, and
// attaches the wrapper declarations. A parent may be declared in the same
// document or already registered, so documents can extend a hierarchy that
// was wired in code.
func (d *Document) Apply(reg *handler.Registry) error {
	if d == nil || len(d.entries) == 0 {
		return nil
	}
	if reg == nil {
		return errors.New("config: registry is required")
	}

	pending := make(map[string]Entry, len(d.entries))
	for name, entry := range d.entries {
		pending[name] = entry
	}

	for len(pending) > 0 {
		progressed := false
		for _, name := range sortedNames(pending) {
			entry := pending[name]
			if _, waiting := pending[entry.Parent]; waiting && entry.Parent != name {
				continue
			}
			if err := applyEntry(reg, entry); err != nil {
				return err
			}
			delete(pending, name)
			progressed = true
		}
		if !progressed {
			return fmt.Errorf("config: handlers %s form a parent cycle", strings.Join(sortedNames(pending), ", "))
		}
	}

	return nil
}

func applyEntry(reg *handler.Registry, entry Entry) error {
	desc, err := reg.Define(entry.Name, entry.Parent)
	if err != nil {
		return fmt.Errorf("config: file %s: %w", entry.Source, err)
	}

	if !entry.HasWrapper {
		return nil
	}
	if err := desc.SetWrapperValue(entry.Wrapper, wrapper.WithConditions(entry.Conditions)); err != nil {
		return fmt.Errorf("config: file %s: %w", entry.Source, err)
	}
	return nil
}

func sortedNames(entries map[string]Entry) []string {
	names := make([]string, 0, len(entries))
	for name := range entries {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
