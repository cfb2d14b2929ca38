package render

import (
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

var (
	fragmentPolicyOnce sync.Once
	fragmentPolicy     *bluemonday.Policy
)

// Sanitizer cleans content fragments before they are embedded in a wrapper.
type Sanitizer struct {
	policy *bluemonday.Policy
}

// NewSanitizer wraps an explicit bluemonday policy.
func NewSanitizer(policy *bluemonday.Policy) *Sanitizer {
	return &Sanitizer{policy: policy}
}

// FragmentSanitizer returns a sanitizer suitable for user generated content
// fragments: common markup survives, scripts and event handlers do not.
func FragmentSanitizer() *Sanitizer {
	return &Sanitizer{policy: fragmentSanitizerPolicy()}
}

// StrictSanitizer strips the fragment down to plain text.
func StrictSanitizer() *Sanitizer {
	return &Sanitizer{policy: bluemonday.StrictPolicy()}
}

// Sanitize cleans raw fragment markup.
func (s *Sanitizer) Sanitize(raw string) string {
	if s == nil || s.policy == nil {
		return raw
	}
	if strings.TrimSpace(raw) == "" {
		return raw
	}
	return s.policy.Sanitize(raw)
}

func fragmentSanitizerPolicy() *bluemonday.Policy {
	fragmentPolicyOnce.Do(func() {
		policy := bluemonday.UGCPolicy()
		policy.AllowAttrs("class", "id").OnElements(
			"div", "span", "p", "section", "article", "header", "footer",
			"main", "nav", "table", "thead", "tbody", "tr", "td", "th",
		)
		fragmentPolicy = policy
	})
	return fragmentPolicy
}
