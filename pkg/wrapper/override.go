package wrapper

import "fmt"

type overrideKind int

const (
	overrideDefault overrideKind = iota
	overrideName
	overrideFunc
	overrideNone
	overrideRequire
)

// Override carries a call-site wrapper choice into a render. The zero value
// defers to the handler's resolved wrapper.
type Override struct {
	kind overrideKind
	name string
	fn   InlineFunc
}

// UseDefault defers to the handler's resolved wrapper. It is the zero value,
// spelled out for call sites that want to be explicit.
func UseDefault() Override {
	return Override{}
}

// Use wraps the render in the named template, bypassing resolution.
func Use(name string) Override {
	return Override{kind: overrideName, name: name}
}

// UseFunc defers the choice to fn at render time. Returning nil selects no
// wrapper.
func UseFunc(fn InlineFunc) Override {
	return Override{kind: overrideFunc, fn: fn}
}

// UseNone renders without any wrapper regardless of declarations.
func UseNone() Override {
	return Override{kind: overrideNone}
}

// UseRequired defers to the resolved wrapper and fails the render when
// resolution produces none.
func UseRequired() Override {
	return Override{kind: overrideRequire}
}

// OverrideFrom converts a loosely typed call-site value into an Override:
// a string names a template, false suppresses the wrapper, true requires
// one, nil defers to resolution, and a function defers the choice.
func OverrideFrom(value any) (Override, error) {
	switch v := value.(type) {
	case nil:
		return UseDefault(), nil
	case Override:
		return v, nil
	case string:
		return Use(v), nil
	case bool:
		if v {
			return UseRequired(), nil
		}
		return UseNone(), nil
	case InlineFunc:
		return UseFunc(v), nil
	case func(any) any:
		return UseFunc(v), nil
	case func() any:
		return UseFunc(func(any) any { return v() }), nil
	default:
		return Override{}, ConfigError{
			Value:  value,
			Reason: fmt.Sprintf("unsupported wrapper override type %T", value),
		}
	}
}

// IsZero reports whether no explicit choice was supplied at the call site.
// Required counts as explicit: it forces resolution to produce a wrapper.
func (o Override) IsZero() bool {
	return o.kind == overrideDefault
}

// IsDefault reports whether the override defers to resolution.
func (o Override) IsDefault() bool {
	return o.kind == overrideDefault || o.kind == overrideRequire
}

// IsNone reports whether the override suppresses the wrapper.
func (o Override) IsNone() bool {
	return o.kind == overrideNone
}

// Required reports whether the render must end up with a wrapper.
func (o Override) Required() bool {
	return o.kind == overrideRequire
}

// Name returns the overriding template name, if one was given.
func (o Override) Name() (string, bool) {
	return o.name, o.kind == overrideName
}

// Func returns the overriding function, if one was given.
func (o Override) Func() (InlineFunc, bool) {
	return o.fn, o.kind == overrideFunc
}

func (o Override) String() string {
	switch o.kind {
	case overrideName:
		return fmt.Sprintf("use(%s)", o.name)
	case overrideFunc:
		return "func"
	case overrideNone:
		return "none"
	case overrideRequire:
		return "required"
	default:
		return "default"
	}
}
