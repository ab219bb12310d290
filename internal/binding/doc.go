// Package binding provides the cty-based implementation of
// config.Converter. It is shared by every configuration loader: loaders
// produce cty values, binding writes them onto component config structs
// using reflection, converting each value to the implied type of its
// target field first.
package binding
