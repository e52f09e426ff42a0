// Package registry provides the central "glue" for the component system.
//
// The Registry maps every component Kind to the handler that renders it.
// Component packages under modules/ register their handlers at startup, and
// the registry is then validated so that a kind without a handler is caught
// before any layout is translated rather than silently falling back to a
// placeholder.
package registry
