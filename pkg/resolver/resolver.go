// Package resolver computes the effective wrapper for a handler instance
// and action. Resolution walks the handler chain: the nearest declaration
// decides, conditions scope it per action, dynamic declarations are
// evaluated against the instance, and undeclared handlers fall back to a
// conventional name lookup that climbs toward the root.
package resolver

import (
	"context"
	"fmt"
	"path"

	"github.com/goliatone/go-wrappers/internal/naming"
	"github.com/goliatone/go-wrappers/pkg/handler"
	"github.com/goliatone/go-wrappers/pkg/template"
	"github.com/goliatone/go-wrappers/pkg/wrapper"
)

// DefaultDir is the conventional directory wrapper templates live under.
const DefaultDir = "wrapperss"

// Resolver computes effective wrappers against a template finder.
type Resolver struct {
	finder    template.Finder
	dir       string
	onResolve func(handler.Instance, Resolution)
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithDir replaces the conventional wrapper directory.
func WithDir(dir string) Option {
	return func(r *Resolver) {
		r.dir = dir
	}
}

// WithObserver registers a hook invoked after every successful resolution.
// Failed resolutions do not reach the observer.
func WithObserver(fn func(handler.Instance, Resolution)) Option {
	return func(r *Resolver) {
		r.onResolve = fn
	}
}

// New creates a resolver that consults finder for template existence.
func New(finder template.Finder, opts ...Option) *Resolver {
	r := &Resolver{
		finder: finder,
		dir:    DefaultDir,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Dir returns the conventional wrapper directory in use.
func (r *Resolver) Dir() string {
	return r.dir
}

// Resolve computes the wrapper for an instance with no call-site override.
func (r *Resolver) Resolve(ctx context.Context, inst handler.Instance) (Resolution, error) {
	return r.ResolveWith(ctx, inst, wrapper.Override{})
}

// ResolveAction resolves for a descriptor and action without a live
// instance. Dynamic declarations that need instance state fail with a
// configuration error, exactly as they would on an instance that never
// registered the method.
func (r *Resolver) ResolveAction(ctx context.Context, d *handler.Descriptor, action string) (Resolution, error) {
	return r.Resolve(ctx, handler.NewBase(d, action))
}

// ResolveWith computes the wrapper for an instance honoring a call-site
// override. A named or function override wins unconditionally and skips the
// declaration walk; the default and required markers run it.
func (r *Resolver) ResolveWith(ctx context.Context, inst handler.Instance, override wrapper.Override) (Resolution, error) {
	if r.finder == nil {
		return Resolution{}, fmt.Errorf("resolver: finder is required")
	}
	if inst == nil || inst.Descriptor() == nil {
		return Resolution{}, fmt.Errorf("resolver: instance has no descriptor")
	}

	res, err := r.resolveWith(ctx, inst, override)
	if err != nil {
		return Resolution{}, err
	}
	if r.onResolve != nil {
		r.onResolve(inst, res)
	}
	return res, nil
}

func (r *Resolver) resolveWith(ctx context.Context, inst handler.Instance, override wrapper.Override) (Resolution, error) {
	d := inst.Descriptor()

	if name, ok := override.Name(); ok {
		return Resolution{
			Path:   naming.EnsurePrefix(name, r.dir),
			Source: SourceOverride,
			Origin: d.Name(),
		}, nil
	}
	if fn, ok := override.Func(); ok {
		return r.interpretOverride(d, fn(inst))
	}
	if override.IsNone() {
		return Resolution{Source: SourceNone, Origin: d.Name()}, nil
	}

	// Default resolution. The per-render flag gates it entirely; explicit
	// overrides above are never subject to the flag.
	if !inst.WrapperEnabled() {
		return Resolution{Source: SourceNone, Origin: d.Name()}, nil
	}

	st := &chainState{inst: inst}
	res, err := r.resolveNode(ctx, st, d)
	if err != nil {
		return Resolution{}, err
	}
	if override.Required() && res.None() {
		return Resolution{}, NotFoundError{Handler: d.Name(), Searched: res.Searched}
	}
	return res, nil
}

// chainState carries per-resolution accumulation across the recursive walk.
type chainState struct {
	inst     handler.Instance
	searched []string
}

// resolveNode evaluates one handler in the chain. The effective declaration
// for a node is the nearest one at or above it; an undeclared chain, an
// inactive condition, and an explicit auto declaration all route into
// defaultBehavior, which tries the node's conventional name and then
// re-enters the walk one parent up.
func (r *Resolver) resolveNode(ctx context.Context, st *chainState, node *handler.Descriptor) (Resolution, error) {
	if node == nil {
		return Resolution{Source: SourceNone, Searched: st.searched}, nil
	}

	owner, decl := nearestDeclaration(node)
	if owner == nil || !decl.Conditions.Active(st.inst.Action()) {
		return r.defaultBehavior(ctx, st, node)
	}

	switch decl.Spec.Kind() {
	case wrapper.KindName:
		return r.found(decl.Spec.Name(), SourceDeclared, owner, st), nil
	case wrapper.KindNone:
		return Resolution{Source: SourceNone, Origin: owner.Name(), Searched: st.searched}, nil
	case wrapper.KindAuto:
		return r.defaultBehavior(ctx, st, node)
	case wrapper.KindMethod:
		fn, err := r.methodFunc(st.inst, decl.Spec.Name())
		if err != nil {
			return Resolution{}, err
		}
		return r.interpretDynamic(ctx, st, node, owner, SourceMethod, decl.Spec.Name(), fn(st.inst))
	case wrapper.KindFunc:
		return r.interpretDynamic(ctx, st, node, owner, SourceFunc, "", decl.Spec.Call(st.inst))
	default:
		return Resolution{}, fmt.Errorf("resolver: unknown spec kind %v", decl.Spec.Kind())
	}
}

// defaultBehavior is the conventional lookup for one node: probe the node's
// derived name under the wrapper directory, and on a miss continue the walk
// at the parent.
func (r *Resolver) defaultBehavior(ctx context.Context, st *chainState, node *handler.Descriptor) (Resolution, error) {
	derived := node.DerivedName()
	prefixes := []string{r.dir}
	if naming.HasPrefix(derived, r.dir) {
		prefixes = nil
	}

	found, err := r.finder.FindAll(ctx, derived, prefixes...)
	if err != nil {
		return Resolution{}, fmt.Errorf("resolver: lookup %q: %w", derived, err)
	}

	probe := derived
	if len(prefixes) > 0 {
		probe = path.Join(prefixes[0], derived)
	}
	st.searched = append(st.searched, probe)

	if len(found) > 0 {
		return r.found(found[0].Identifier(), SourceConvention, node, st), nil
	}
	return r.resolveNode(ctx, st, node.Parent())
}

// interpretDynamic maps a wrapper method or function result onto the
// resolution outcome: a string selects, false suppresses, nil falls through
// to the conventional lookup, anything else is a configuration error.
func (r *Resolver) interpretDynamic(ctx context.Context, st *chainState, node, owner *handler.Descriptor, source Source, method string, value any) (Resolution, error) {
	switch v := value.(type) {
	case nil:
		return r.defaultBehavior(ctx, st, node)
	case string:
		return r.found(v, source, owner, st), nil
	case bool:
		if !v {
			return Resolution{Source: SourceNone, Origin: owner.Name(), Searched: st.searched}, nil
		}
	}

	what := "wrapper function"
	if method != "" {
		what = fmt.Sprintf("wrapper method %q", method)
	}
	return Resolution{}, wrapper.ConfigError{
		Handler: st.inst.Descriptor().Name(),
		Method:  method,
		Value:   value,
		Reason:  fmt.Sprintf("%s returned %v; it should have returned a string, false, or nil", what, value),
	}
}

func (r *Resolver) interpretOverride(d *handler.Descriptor, value any) (Resolution, error) {
	switch v := value.(type) {
	case nil:
		return Resolution{Source: SourceNone, Origin: d.Name()}, nil
	case string:
		return Resolution{
			Path:   naming.EnsurePrefix(v, r.dir),
			Source: SourceOverride,
			Origin: d.Name(),
		}, nil
	case bool:
		if !v {
			return Resolution{Source: SourceNone, Origin: d.Name()}, nil
		}
	}
	return Resolution{}, wrapper.ConfigError{
		Handler: d.Name(),
		Value:   value,
		Reason:  fmt.Sprintf("wrapper override function returned %v; it should have returned a string, false, or nil", value),
	}
}

func (r *Resolver) methodFunc(inst handler.Instance, name string) (wrapper.InlineFunc, error) {
	provider, ok := inst.(handler.MethodProvider)
	if ok {
		if fn, found := provider.WrapperMethod(name); found {
			return fn, nil
		}
	}
	return nil, wrapper.ConfigError{
		Handler: inst.Descriptor().Name(),
		Method:  name,
		Reason:  fmt.Sprintf("wrapper method %q is not registered on the handler", name),
	}
}

func (r *Resolver) found(name string, source Source, origin *handler.Descriptor, st *chainState) Resolution {
	return Resolution{
		Path:     naming.EnsurePrefix(name, r.dir),
		Source:   source,
		Origin:   origin.Name(),
		Searched: st.searched,
	}
}

// nearestDeclaration walks from node to the root and returns the first
// declaration found together with its owner.
func nearestDeclaration(node *handler.Descriptor) (*handler.Descriptor, handler.Declaration) {
	for d := node; d != nil; d = d.Parent() {
		if decl, ok := d.Declaration(); ok {
			return d, decl
		}
	}
	return nil, handler.Declaration{}
}
