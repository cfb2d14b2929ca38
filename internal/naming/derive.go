package naming

import (
	"strings"
)

// Derive converts a qualified handler name into the template path implied by
// convention. Namespace separators (".", "::", "/") become path segments and
// each segment is folded to snake_case, so "bank.ExchangeDesk" derives
// "bank/exchange_desk".
func Derive(qualified string) string {
	trimmed := strings.TrimSpace(qualified)
	if trimmed == "" {
		return ""
	}

	normalized := strings.ReplaceAll(trimmed, "::", "/")
	normalized = strings.ReplaceAll(normalized, ".", "/")

	parts := strings.Split(normalized, "/")
	segments := make([]string, 0, len(parts))
	for _, part := range parts {
		segment := snakeCase(strings.TrimSpace(part))
		if segment == "" {
			continue
		}
		segments = append(segments, segment)
	}
	return strings.Join(segments, "/")
}

// EnsurePrefix places name under dir unless it already lives there.
func EnsurePrefix(name, dir string) string {
	if name == "" || dir == "" {
		return name
	}
	if HasPrefix(name, dir) {
		return name
	}
	return dir + "/" + name
}

// HasPrefix reports whether name already starts with the dir segment.
func HasPrefix(name, dir string) bool {
	if dir == "" {
		return true
	}
	return name == dir || strings.HasPrefix(name, dir+"/")
}

// Snake converts one identifier segment to snake case. Splitting on path
// separators is the caller's job.
func Snake(input string) string {
	return snakeCase(input)
}

func snakeCase(input string) string {
	var out strings.Builder
	runes := []rune(input)
	for i, r := range runes {
		if i > 0 && isBoundary(runes, i) {
			out.WriteRune('_')
		}
		out.WriteRune(toLower(r))
	}
	return out.String()
}

// isBoundary reports whether an underscore belongs before runes[index].
// Acronym runs keep their last capital with the following word, so
// "HTTPBank" derives "http_bank".
func isBoundary(runes []rune, index int) bool {
	prev := runes[index-1]
	r := runes[index]
	switch {
	case isLower(prev) && isUpper(r):
		return true
	case isLetter(prev) && isDigit(r):
		return true
	case isDigit(prev) && isLetter(r):
		return true
	case isUpper(prev) && isUpper(r) && index+1 < len(runes) && isLower(runes[index+1]):
		return true
	default:
		return false
	}
}

func isUpper(r rune) bool  { return r >= 'A' && r <= 'Z' }
func isLower(r rune) bool  { return r >= 'a' && r <= 'z' }
func isDigit(r rune) bool  { return r >= '0' && r <= '9' }
func isLetter(r rune) bool { return isUpper(r) || isLower(r) }

func toLower(r rune) rune {
	if isUpper(r) {
		return r + ('a' - 'A')
	}
	return r
}
