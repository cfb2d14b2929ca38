// Package themefinder serves wrapper template lookups from a go-theme
// selection. Theme manifests map template identifiers to files; the finder
// answers from that mapping and can fall back to another Finder for
// identifiers the theme does not override.
package themefinder

import (
	"context"
	"fmt"
	"path"
	"strings"

	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-wrappers/pkg/template"
)

// Finder resolves template identifiers against a theme selection.
type Finder struct {
	selector theme.ThemeSelector
	theme    string
	variant  string
	next     template.Finder
}

// Option configures a Finder.
type Option func(*Finder)

// WithFallback chains another finder behind the theme lookup.
func WithFallback(next template.Finder) Option {
	return func(f *Finder) {
		f.next = next
	}
}

// New builds a Finder that selects themeName/variant on every lookup, so
// manifests registered later are picked up without rebuilding the finder.
func New(selector theme.ThemeSelector, themeName, variant string, opts ...Option) *Finder {
	f := &Finder{
		selector: selector,
		theme:    themeName,
		variant:  variant,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// FindAll implements template.Finder.
func (f *Finder) FindAll(ctx context.Context, name string, prefixes ...string) ([]template.Template, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	selection, err := f.selector.Select(f.theme, f.variant)
	if err != nil {
		return nil, fmt.Errorf("themefinder: select %s/%s: %w", f.theme, f.variant, err)
	}

	slots := templateSlots(selection)
	if len(prefixes) == 0 {
		prefixes = []string{""}
	}

	var found []template.Template
	for _, prefix := range prefixes {
		id := path.Join(prefix, name)
		p, ok := slots[id]
		if !ok {
			continue
		}
		found = append(found, template.Template{
			Name:   name,
			Prefix: prefix,
			Path:   p,
		})
	}
	if len(found) > 0 || f.next == nil {
		return found, nil
	}
	return f.next.FindAll(ctx, name, prefixes...)
}

// templateSlots merges the base manifest template map with the selected
// variant's overrides.
func templateSlots(selection *theme.Selection) map[string]string {
	if selection == nil || selection.Manifest == nil {
		return nil
	}

	manifest := selection.Manifest
	slots := make(map[string]string, len(manifest.Templates))
	for id, p := range manifest.Templates {
		slots[id] = p
	}
	if variant, ok := manifest.Variants[selection.Variant]; ok {
		for id, p := range variant.Templates {
			slots[id] = p
		}
	}
	return slots
}

// RendererConfig flattens a selection into the render configuration shape:
// fallback partials overlaid by the manifest and variant templates, tokens
// merged variant over base, CSS variables derived from tokens, and an asset
// resolver rooted at the manifest asset prefix.
func RendererConfig(selection *theme.Selection, fallbacks map[string]string) *theme.RendererConfig {
	if selection == nil {
		return nil
	}

	cfg := &theme.RendererConfig{
		Theme:    selection.Theme,
		Variant:  selection.Variant,
		Partials: map[string]string{},
		Tokens:   map[string]string{},
		CSSVars:  map[string]string{},
	}
	for id, p := range fallbacks {
		cfg.Partials[id] = p
	}

	manifest := selection.Manifest
	if manifest == nil {
		cfg.AssetURL = func(string) string { return "" }
		return cfg
	}

	for id, p := range manifest.Templates {
		cfg.Partials[id] = p
	}
	for key, value := range manifest.Tokens {
		cfg.Tokens[key] = value
	}

	assetPrefix := manifest.Assets.Prefix
	assetFiles := make(map[string]string, len(manifest.Assets.Files))
	for key, file := range manifest.Assets.Files {
		assetFiles[key] = file
	}

	if variant, ok := manifest.Variants[selection.Variant]; ok {
		for id, p := range variant.Templates {
			cfg.Partials[id] = p
		}
		for key, value := range variant.Tokens {
			cfg.Tokens[key] = value
		}
		if variant.Assets.Prefix != "" {
			assetPrefix = variant.Assets.Prefix
		}
		for key, file := range variant.Assets.Files {
			assetFiles[key] = file
		}
	}

	for key, value := range cfg.Tokens {
		cfg.CSSVars["--"+key] = value
	}
	cfg.AssetURL = func(key string) string {
		file, ok := assetFiles[key]
		if !ok || file == "" {
			return ""
		}
		return strings.TrimSuffix(assetPrefix, "/") + "/" + file
	}
	return cfg
}
