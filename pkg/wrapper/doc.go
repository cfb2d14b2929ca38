// Package wrapper defines the declaration vocabulary for page-shell
// selection: the Spec variants a handler can declare, the only/except
// conditions that scope them per action, the call-site override values, and
// the configuration error type shared across the module.
package wrapper
