// Package component defines what a system component is and the closed set
// of lifecycle hooks a component may implement.
//
// A component is any value with a unique Name and an optional config
// record. Hooks are one-method interfaces grouped by the process that
// invokes them (builder, executor, trainer, parameter server). A component
// implements only the hooks it needs; the process checks each component
// with a type assertion and skips those that do not implement the hook.
//
// Hooks of the same name run in component registration order. The first
// hook to return an error stops the sequence and the error is returned
// wrapped in a *HookError.
package component
