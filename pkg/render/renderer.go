// Package render executes the two stage wrapper pipeline: render the
// per-action content fragment, resolve the effective wrapper for the handler
// instance, and when one applies render it around the fragment.
package render

import (
	"context"
	"fmt"
	"io"

	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-wrappers/pkg/handler"
	"github.com/goliatone/go-wrappers/pkg/resolver"
	"github.com/goliatone/go-wrappers/pkg/wrapper"
)

// DefaultContentKey is the template variable wrapper templates embed the
// content fragment under.
const DefaultContentKey = "content"

// Engine executes templates by name or from inline content. The pongo2
// adapter in render/gotemplate is the stock implementation.
type Engine interface {
	RenderTemplate(name string, data any, out ...io.Writer) (string, error)
	RenderString(content string, data any, out ...io.Writer) (string, error)
}

// Options describe one render call.
type Options struct {
	// Template names the content template to execute. Leave empty and set
	// Text to render inline content instead.
	Template string
	// Text is inline template content, rendered when Template is empty.
	Text string
	// Partial renders the fragment bare: wrapper resolution is skipped
	// entirely unless Wrapper carries an explicit choice.
	Partial bool
	// Wrapper is the call-site override. The zero value defers to the
	// handler's declared wrapper.
	Wrapper wrapper.Override
	// Assigns is exposed to both the content and wrapper templates.
	Assigns map[string]any
}

// Result is the outcome of one render.
type Result struct {
	// Content is the final output, wrapped when a wrapper resolved.
	Content string
	// Fragment is the bare content fragment before wrapping.
	Fragment string
	// Wrapper reports how the wrapper was resolved.
	Wrapper resolver.Resolution
}

// Renderer drives the pipeline against an engine and a resolver.
type Renderer struct {
	engine     Engine
	resolver   *resolver.Resolver
	sanitizer  *Sanitizer
	theme      *theme.RendererConfig
	contentKey string
}

// RendererOption configures a Renderer.
type RendererOption func(*Renderer)

// WithContentKey renames the variable wrapper templates receive the
// fragment under.
func WithContentKey(key string) RendererOption {
	return func(r *Renderer) {
		if key != "" {
			r.contentKey = key
		}
	}
}

// WithSanitizer runs every content fragment through s before wrapping.
func WithSanitizer(s *Sanitizer) RendererOption {
	return func(r *Renderer) {
		r.sanitizer = s
	}
}

// WithThemeConfig exposes a resolved theme to templates under the "theme"
// key: name, variant, tokens, css_vars, and the asset_url helper.
func WithThemeConfig(cfg *theme.RendererConfig) RendererOption {
	return func(r *Renderer) {
		r.theme = cfg
	}
}

// NewRenderer builds the pipeline. Both collaborators are required.
func NewRenderer(engine Engine, res *resolver.Resolver, opts ...RendererOption) *Renderer {
	r := &Renderer{
		engine:     engine,
		resolver:   res,
		contentKey: DefaultContentKey,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Render executes one render call for an instance.
func (r *Renderer) Render(ctx context.Context, inst handler.Instance, opts Options) (Result, error) {
	if r.engine == nil {
		return Result{}, fmt.Errorf("render: engine is required")
	}
	if r.resolver == nil {
		return Result{}, fmt.Errorf("render: resolver is required")
	}
	if inst == nil || inst.Descriptor() == nil {
		return Result{}, fmt.Errorf("render: instance has no descriptor")
	}
	if opts.Template == "" && opts.Text == "" {
		return Result{}, fmt.Errorf("render: template or text is required")
	}

	data := r.templateData(inst, opts.Assigns)

	fragment, err := r.renderContent(opts, data)
	if err != nil {
		return Result{}, err
	}
	if r.sanitizer != nil {
		fragment = r.sanitizer.Sanitize(fragment)
	}

	res, err := r.resolveWrapper(ctx, inst, opts)
	if err != nil {
		return Result{}, err
	}
	if res.None() {
		return Result{Content: fragment, Fragment: fragment, Wrapper: res}, nil
	}

	wrapped, err := r.renderWrapper(res.Path, fragment, data)
	if err != nil {
		return Result{}, err
	}
	return Result{Content: wrapped, Fragment: fragment, Wrapper: res}, nil
}

func (r *Renderer) renderContent(opts Options, data map[string]any) (string, error) {
	if opts.Template != "" {
		out, err := r.engine.RenderTemplate(opts.Template, data)
		if err != nil {
			return "", fmt.Errorf("render: content template %q: %w", opts.Template, err)
		}
		return out, nil
	}
	out, err := r.engine.RenderString(opts.Text, data)
	if err != nil {
		return "", fmt.Errorf("render: inline content: %w", err)
	}
	return out, nil
}

// resolveWrapper applies the short-circuit rule: a partial render skips
// resolution entirely unless the call site made an explicit wrapper choice.
func (r *Renderer) resolveWrapper(ctx context.Context, inst handler.Instance, opts Options) (resolver.Resolution, error) {
	if opts.Partial && opts.Wrapper.IsZero() {
		return resolver.Resolution{Source: resolver.SourceNone}, nil
	}
	return r.resolver.ResolveWith(ctx, inst, opts.Wrapper)
}

func (r *Renderer) renderWrapper(path, fragment string, data map[string]any) (string, error) {
	wrapperData := make(map[string]any, len(data)+1)
	for key, value := range data {
		wrapperData[key] = value
	}
	wrapperData[r.contentKey] = fragment

	out, err := r.engine.RenderTemplate(path, wrapperData)
	if err != nil {
		return "", fmt.Errorf("render: wrapper template %q: %w", path, err)
	}
	return out, nil
}

func (r *Renderer) templateData(inst handler.Instance, assigns map[string]any) map[string]any {
	data := make(map[string]any, len(assigns)+3)
	for key, value := range assigns {
		data[key] = value
	}
	data["action"] = inst.Action()
	data["handler"] = inst.Descriptor().Name()
	if r.theme != nil {
		data["theme"] = map[string]any{
			"name":      r.theme.Theme,
			"variant":   r.theme.Variant,
			"tokens":    r.theme.Tokens,
			"css_vars":  r.theme.CSSVars,
			"asset_url": r.theme.AssetURL,
		}
	}
	return data
}
