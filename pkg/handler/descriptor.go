package handler

import (
	"sync"

	"github.com/goliatone/go-wrappers/internal/naming"
	"github.com/goliatone/go-wrappers/pkg/wrapper"
)

// Declaration is one wrapper declaration attached to a descriptor. Values
// are immutable once attached; SetWrapper swaps the whole declaration.
type Declaration struct {
	Spec       wrapper.Spec
	Conditions wrapper.Conditions
}

// Descriptor is one node in the handler hierarchy. Descriptors are created
// once at wiring time and then read concurrently during resolution; the
// declaration is the only mutable part and is guarded.
type Descriptor struct {
	name   string
	parent *Descriptor

	mu   sync.RWMutex
	decl *Declaration
}

// Option configures a Descriptor at construction.
type Option func(*Descriptor)

// WithParent links the descriptor under parent.
func WithParent(parent *Descriptor) Option {
	return func(d *Descriptor) {
		d.parent = parent
	}
}

// WithWrapper attaches an initial declaration.
func WithWrapper(spec wrapper.Spec, conds ...wrapper.Condition) Option {
	return func(d *Descriptor) {
		d.SetWrapper(spec, conds...)
	}
}

// New creates a descriptor. The name is the qualified handler name, for
// example "bank.Exchange"; it drives the conventional template name.
func New(name string, opts ...Option) *Descriptor {
	d := &Descriptor{name: name}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Name returns the qualified handler name.
func (d *Descriptor) Name() string {
	return d.name
}

// Parent returns the ancestor descriptor, nil at the root.
func (d *Descriptor) Parent() *Descriptor {
	return d.parent
}

// DerivedName returns the conventional template name for this handler,
// for example "bank/exchange_desk" for "bank.ExchangeDesk".
func (d *Descriptor) DerivedName() string {
	return naming.Derive(d.name)
}

// SetWrapper attaches a declaration, replacing any previous one. Declaring
// the auto spec with no conditions still counts as a declaration: it resets
// the node to convention lookup even when an ancestor declared otherwise.
func (d *Descriptor) SetWrapper(spec wrapper.Spec, conds ...wrapper.Condition) {
	decl := &Declaration{
		Spec:       spec,
		Conditions: wrapper.NewConditions(conds...),
	}

	d.mu.Lock()
	d.decl = decl
	d.mu.Unlock()
}

// SetWrapperValue attaches a declaration from a loosely typed value, the
// shape declaration files produce. True and unsupported types fail here so
// a bad declaration never reaches resolution.
func (d *Descriptor) SetWrapperValue(value any, conds ...wrapper.Condition) error {
	spec, err := wrapper.From(value)
	if err != nil {
		if cfgErr, ok := err.(wrapper.ConfigError); ok {
			cfgErr.Handler = d.name
			return cfgErr
		}
		return err
	}
	d.SetWrapper(spec, conds...)
	return nil
}

// ClearWrapper removes the declaration so the node inherits again.
func (d *Descriptor) ClearWrapper() {
	d.mu.Lock()
	d.decl = nil
	d.mu.Unlock()
}

// Declaration returns the node's own declaration, if any. It never consults
// ancestors; the resolver walks the chain itself.
func (d *Descriptor) Declaration() (Declaration, bool) {
	d.mu.RLock()
	decl := d.decl
	d.mu.RUnlock()

	if decl == nil {
		return Declaration{}, false
	}
	return *decl, true
}

// Ancestry returns the chain from the descriptor up to the root, the
// descriptor itself first.
func (d *Descriptor) Ancestry() []*Descriptor {
	var chain []*Descriptor
	for node := d; node != nil; node = node.parent {
		chain = append(chain, node)
	}
	return chain
}

func (d *Descriptor) String() string {
	return d.name
}
