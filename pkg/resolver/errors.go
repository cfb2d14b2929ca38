package resolver

import (
	"fmt"
	"strings"
)

// NotFoundError reports a required resolution that exhausted the handler
// chain without finding a wrapper.
type NotFoundError struct {
	// Handler names the handler the resolution started from.
	Handler string
	// Searched lists the template identifiers probed before giving up.
	Searched []string
}

func (e NotFoundError) Error() string {
	if len(e.Searched) == 0 {
		return fmt.Sprintf("resolver: no default wrapper for %s", e.Handler)
	}
	return fmt.Sprintf("resolver: no default wrapper for %s (searched %s)", e.Handler, strings.Join(e.Searched, ", "))
}
