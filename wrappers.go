// Package wrappers selects the wrapper template a handler's rendered content
// is embedded in. Handlers declare wrappers on a descriptor hierarchy,
// declarations inherit and can be scoped per action, and undeclared handlers
// fall back to a name convention. The root package re-exports the pieces most
// callers need; the pkg subpackages hold the full surface.
package wrappers

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/goliatone/go-wrappers/pkg/config"
	"github.com/goliatone/go-wrappers/pkg/handler"
	"github.com/goliatone/go-wrappers/pkg/resolver"
	"github.com/goliatone/go-wrappers/pkg/template"
	"github.com/goliatone/go-wrappers/pkg/wrapper"
)

// Spec is one wrapper declaration.
type Spec = wrapper.Spec

// Conditions scope a declaration to a subset of actions.
type Conditions = wrapper.Conditions

// Condition configures a Conditions value.
type Condition = wrapper.Condition

// Override carries a call-site wrapper choice into a render.
type Override = wrapper.Override

// InlineFunc chooses a wrapper at resolution time.
type InlineFunc = wrapper.InlineFunc

// ConfigError reports an invalid declaration or dynamic result.
type ConfigError = wrapper.ConfigError

// Descriptor is one node in the handler hierarchy.
type Descriptor = handler.Descriptor

// Registry stores descriptors by handler name.
type Registry = handler.Registry

// Instance is a live handler during one request.
type Instance = handler.Instance

// Base is an embeddable Instance implementation.
type Base = handler.Base

// Resolver computes effective wrappers against a template finder.
type Resolver = resolver.Resolver

// Resolution is the outcome of one wrapper lookup.
type Resolution = resolver.Resolution

// Finder locates templates by name and prefix.
type Finder = template.Finder

// Auto declares convention lookup, the zero spec.
func Auto() Spec { return wrapper.Auto() }

// Name declares a literal wrapper template.
func Name(name string) Spec { return wrapper.Name(name) }

// Method defers the choice to a named wrapper method on the handler.
func Method(name string) Spec { return wrapper.Method(name) }

// Inline defers the choice to fn at resolution time.
func Inline(fn InlineFunc) Spec { return wrapper.Inline(fn) }

// None suppresses the wrapper for the declaring handler and its descendants.
func None() Spec { return wrapper.None() }

// Only restricts a declaration to the listed actions.
func Only(actions ...string) Condition { return wrapper.Only(actions...) }

// Except applies a declaration to every action not listed.
func Except(actions ...string) Condition { return wrapper.Except(actions...) }

// Use overrides resolution with the named template for one render.
func Use(name string) Override { return wrapper.Use(name) }

// UseFunc overrides resolution with a function choice for one render.
func UseFunc(fn InlineFunc) Override { return wrapper.UseFunc(fn) }

// UseNone renders without any wrapper regardless of declarations.
func UseNone() Override { return wrapper.UseNone() }

// UseRequired fails the render when resolution produces no wrapper.
func UseRequired() Override { return wrapper.UseRequired() }

// NewRegistry creates an empty descriptor registry.
func NewRegistry() *Registry { return handler.NewRegistry() }

// NewDescriptor creates a hierarchy node. Wire parents with
// handler.WithParent or register through a Registry.
func NewDescriptor(name string, opts ...handler.Option) *Descriptor {
	return handler.New(name, opts...)
}

// Option configures New.
type Option func(*settings)

type settings struct {
	finder     template.Finder
	templates  fs.FS
	dir        string
	extensions []string
	wrapperDir string
	observer   func(handler.Instance, resolver.Resolution)
}

// WithFinder uses an already built template finder.
func WithFinder(finder Finder) Option {
	return func(s *settings) {
		s.finder = finder
	}
}

// WithTemplates locates wrapper templates in an fs.FS.
func WithTemplates(fsys fs.FS) Option {
	return func(s *settings) {
		s.templates = fsys
	}
}

// WithTemplateDir locates wrapper templates under a directory on disk.
func WithTemplateDir(dir string) Option {
	return func(s *settings) {
		s.dir = dir
	}
}

// WithExtensions overrides the template extensions recognized when New
// builds the finder itself.
func WithExtensions(exts ...string) Option {
	return func(s *settings) {
		s.extensions = exts
	}
}

// WithWrapperDir replaces the conventional wrapper directory.
func WithWrapperDir(dir string) Option {
	return func(s *settings) {
		s.wrapperDir = dir
	}
}

// WithObserver registers a hook invoked after every successful resolution.
func WithObserver(fn func(Instance, Resolution)) Option {
	return func(s *settings) {
		s.observer = fn
	}
}

// New builds a ready resolver from a template source.
func New(opts ...Option) (*Resolver, error) {
	s := &settings{}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		opt(s)
	}

	finder := s.finder
	if finder == nil {
		var fsys fs.FS
		switch {
		case s.templates != nil:
			fsys = s.templates
		case s.dir != "":
			fsys = os.DirFS(s.dir)
		default:
			return nil, errors.New("wrappers: need a finder, a template fs, or a template dir")
		}

		var fsOpts []template.FSOption
		if len(s.extensions) > 0 {
			fsOpts = append(fsOpts, template.WithExtensions(s.extensions...))
		}
		built, err := template.NewFSFinder(fsys, fsOpts...)
		if err != nil {
			return nil, fmt.Errorf("wrappers: build finder: %w", err)
		}
		finder = built
	}

	var resOpts []resolver.Option
	if s.wrapperDir != "" {
		resOpts = append(resOpts, resolver.WithDir(s.wrapperDir))
	}
	if s.observer != nil {
		resOpts = append(resOpts, resolver.WithObserver(s.observer))
	}
	return resolver.New(finder, resOpts...), nil
}

// LoadHierarchy loads every declaration document under fsys and applies it
// to a fresh registry.
func LoadHierarchy(fsys fs.FS) (*Registry, error) {
	doc, err := config.LoadFS(fsys)
	if err != nil {
		return nil, err
	}

	reg := handler.NewRegistry()
	if err := doc.Apply(reg); err != nil {
		return nil, err
	}
	return reg, nil
}

// ResolveFor computes the wrapper for one handler action with a throwaway
// resolver over finder. It is the simplest entry point for callers that just
// want the template identifier.
func ResolveFor(ctx context.Context, finder Finder, d *Descriptor, action string) (Resolution, error) {
	return resolver.New(finder).ResolveAction(ctx, d, action)
}
