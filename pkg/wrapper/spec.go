package wrapper

import "fmt"

// Kind identifies which variant a Spec holds.
type Kind int

const (
	// KindAuto is the zero kind: no explicit declaration, resolution falls
	// back to convention lookup and then to the ancestor chain.
	KindAuto Kind = iota
	// KindName selects a template by literal name.
	KindName
	// KindMethod defers selection to a named method on the handler instance.
	KindMethod
	// KindFunc defers selection to an inline function.
	KindFunc
	// KindNone suppresses the wrapper entirely.
	KindNone
)

func (k Kind) String() string {
	switch k {
	case KindAuto:
		return "auto"
	case KindName:
		return "name"
	case KindMethod:
		return "method"
	case KindFunc:
		return "func"
	case KindNone:
		return "none"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// InlineFunc is evaluated at resolution time with the handler instance that
// is being rendered. It returns a template name, false to suppress the
// wrapper, or nil to fall through to the default lookup. Any other return
// value is a configuration error.
type InlineFunc func(instance any) any

// Spec is one wrapper declaration. The zero value is the auto spec.
type Spec struct {
	kind Kind
	name string
	fn   InlineFunc
}

// Auto returns the zero spec: resolve by convention and ancestry.
func Auto() Spec {
	return Spec{}
}

// Name declares a literal template name. The conventional directory prefix
// is applied during resolution, so Name("invoice") and
// Name("wrapperss/invoice") select the same template.
func Name(name string) Spec {
	return Spec{kind: KindName, name: name}
}

// Method defers selection to the named wrapper method on the handler.
func Method(name string) Spec {
	return Spec{kind: KindMethod, name: name}
}

// Inline defers selection to fn, called with the handler instance.
func Inline(fn InlineFunc) Spec {
	return Spec{kind: KindFunc, fn: fn}
}

// Inline0 defers selection to a function that ignores the handler instance.
func Inline0(fn func() any) Spec {
	return Spec{kind: KindFunc, fn: func(any) any { return fn() }}
}

// None suppresses the wrapper for the declaring handler and its descendants.
func None() Spec {
	return Spec{kind: KindNone}
}

// From converts a loosely typed declaration value into a Spec. It accepts
// the same shapes the typed constructors cover: a string, an InlineFunc, a
// zero argument function, false, nil, or an existing Spec. Declaring true or
// any other type fails immediately rather than at resolution time.
func From(value any) (Spec, error) {
	switch v := value.(type) {
	case nil:
		return Auto(), nil
	case Spec:
		return v, nil
	case string:
		return Name(v), nil
	case InlineFunc:
		return Inline(v), nil
	case func(any) any:
		return Inline(v), nil
	case func() any:
		return Inline0(v), nil
	case func() string:
		return Inline0(func() any { return v() }), nil
	case bool:
		if v {
			return Spec{}, ConfigError{
				Value:  true,
				Reason: "wrappers must be declared as a string, method, function, false, or nil",
			}
		}
		return None(), nil
	default:
		return Spec{}, ConfigError{
			Value:  value,
			Reason: fmt.Sprintf("unsupported wrapper declaration type %T", value),
		}
	}
}

// Kind reports which variant the declaration holds.
func (s Spec) Kind() Kind {
	return s.kind
}

// Name returns the literal template name for KindName specs and the method
// name for KindMethod specs.
func (s Spec) Name() string {
	return s.name
}

// Call invokes the inline function of a KindFunc spec.
func (s Spec) Call(instance any) any {
	return s.fn(instance)
}

// IsAuto reports whether the declaration is the zero value.
func (s Spec) IsAuto() bool {
	return s.kind == KindAuto
}

func (s Spec) String() string {
	switch s.kind {
	case KindName:
		return fmt.Sprintf("name(%s)", s.name)
	case KindMethod:
		return fmt.Sprintf("method(%s)", s.name)
	case KindFunc:
		return "func"
	case KindNone:
		return "none"
	default:
		return "auto"
	}
}
