package handler

import (
	"github.com/goliatone/go-wrappers/pkg/wrapper"
)

// Instance is the per-render view of a handler: which descriptor it belongs
// to, the action being rendered, and whether the wrapper is enabled for this
// particular render.
type Instance interface {
	Descriptor() *Descriptor
	Action() string
	WrapperEnabled() bool
}

// MethodProvider is implemented by instances that can dispatch wrapper
// methods by name. Method declarations resolve through it.
type MethodProvider interface {
	WrapperMethod(name string) (wrapper.InlineFunc, bool)
}

var (
	_ Instance       = (*Base)(nil)
	_ MethodProvider = (*Base)(nil)
)

// Base is a ready made Instance for embedding in handler types. The zero
// value is not usable; create it with NewBase.
type Base struct {
	descriptor *Descriptor
	action     string
	disabled   bool
	methods    map[string]wrapper.InlineFunc
}

// NewBase creates an instance bound to a descriptor and action, with the
// wrapper enabled.
func NewBase(descriptor *Descriptor, action string) *Base {
	return &Base{
		descriptor: descriptor,
		action:     action,
	}
}

// Descriptor implements Instance.
func (b *Base) Descriptor() *Descriptor {
	return b.descriptor
}

// Action implements Instance.
func (b *Base) Action() string {
	return b.action
}

// WrapperEnabled implements Instance.
func (b *Base) WrapperEnabled() bool {
	return !b.disabled
}

// SetWrapperEnabled toggles the wrapper for this render. Disabling wins over
// every declaration, including a required wrapper.
func (b *Base) SetWrapperEnabled(enabled bool) {
	b.disabled = !enabled
}

// RegisterWrapperMethod exposes fn under name for method declarations.
func (b *Base) RegisterWrapperMethod(name string, fn wrapper.InlineFunc) {
	if b.methods == nil {
		b.methods = make(map[string]wrapper.InlineFunc)
	}
	b.methods[name] = fn
}

// WrapperMethod implements MethodProvider.
func (b *Base) WrapperMethod(name string) (wrapper.InlineFunc, bool) {
	fn, ok := b.methods[name]
	return fn, ok
}
