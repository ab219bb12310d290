// Package registry provides the central "glue" for the component system.
//
// The Registry holds the ordered, name-keyed set of components that make up
// one system. Add registers a new name and refuses duplicates; Update
// replaces an existing component in place, keeping its position so hook
// dispatch order is unaffected. Modules group related components and
// register them in one call.
//
// Before a system is built the registry is validated to ensure that every
// component's required components are present, preventing a wide class of
// runtime errors inside lifecycle hooks.
package registry
