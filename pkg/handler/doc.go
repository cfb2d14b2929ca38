// Package handler models the handler hierarchy that wrapper declarations
// attach to. A Descriptor is one node in the hierarchy and carries the
// wrapper declaration for that node; a Registry stores descriptors by name;
// an Instance is the per-render view the resolver consumes.
package handler
