package resolver

// Source identifies where a resolved wrapper came from.
type Source int

const (
	// SourceNone marks a resolution that produced no wrapper.
	SourceNone Source = iota
	// SourceDeclared marks a literal name declaration.
	SourceDeclared
	// SourceMethod marks a wrapper method result.
	SourceMethod
	// SourceFunc marks an inline function result.
	SourceFunc
	// SourceConvention marks a conventional name lookup hit.
	SourceConvention
	// SourceOverride marks a call-site override.
	SourceOverride
)

func (s Source) String() string {
	switch s {
	case SourceNone:
		return "none"
	case SourceDeclared:
		return "declared"
	case SourceMethod:
		return "method"
	case SourceFunc:
		return "func"
	case SourceConvention:
		return "convention"
	case SourceOverride:
		return "override"
	default:
		return "unknown"
	}
}

// Resolution is the outcome of one wrapper resolution.
type Resolution struct {
	// Path is the normalized template identifier, "" when no wrapper
	// applies.
	Path string
	// Source reports which rule produced the path.
	Source Source
	// Origin names the handler whose declaration or conventional name
	// supplied the wrapper, "" when none did.
	Origin string
	// Searched lists the identifiers probed during convention lookup, in
	// probe order. Populated even on a miss so callers can report what was
	// tried.
	Searched []string
}

// None reports whether the resolution produced no wrapper.
func (r Resolution) None() bool {
	return r.Path == ""
}

func (r Resolution) String() string {
	if r.None() {
		return "none"
	}
	return r.Path
}
