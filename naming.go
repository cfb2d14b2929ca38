package wrappers

import "github.com/goliatone/go-wrappers/internal/naming"

// DerivedName returns the conventional template name for a qualified handler
// name, for example "bank/exchange_desk" for "bank.ExchangeDesk". It is the
// same derivation resolution uses, exposed so callers can lay out template
// trees that the convention will find.
func DerivedName(handler string) string {
	return naming.Derive(handler)
}

// Prefixed returns name under the wrapper directory unless it already is,
// so "vault" and "wrapperss/vault" both come back as "wrapperss/vault".
func Prefixed(name, dir string) string {
	return naming.EnsurePrefix(name, dir)
}
