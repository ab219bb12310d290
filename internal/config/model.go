package config

import (
	"errors"
	"fmt"
	"sort"

	"github.com/zclconf/go-cty/cty"
)

// ErrDuplicateBlock is returned when two files define the same component
// block or parameter for one system.
var ErrDuplicateBlock = errors.New("duplicate configuration block")

// Model is the unified, format-agnostic representation of all loaded
// configuration.
type Model struct {
	Systems map[string]*System
}

// NewModel returns an empty model.
func NewModel() *Model {
	return &Model{Systems: make(map[string]*System)}
}

// System is the configuration of one named system.
type System struct {
	Name string

	// Parameters are distributed to whichever component config declares a
	// field with the same name.
	Parameters map[string]cty.Value

	// Components holds per-component attributes keyed by component name.
	Components map[string]*Component
}

// Component holds the attributes of a single `component` block.
type Component struct {
	Name       string
	Attributes map[string]cty.Value
}

// System returns the named system, creating it if needed.
func (m *Model) System(name string) *System {
	if s, ok := m.Systems[name]; ok {
		return s
	}
	s := &System{
		Name:       name,
		Parameters: make(map[string]cty.Value),
		Components: make(map[string]*Component),
	}
	m.Systems[name] = s
	return s
}

// SystemNames returns the names of all configured systems, sorted.
func (m *Model) SystemNames() []string {
	names := make([]string, 0, len(m.Systems))
	for name := range m.Systems {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// AddParameter records a system-level parameter.
func (s *System) AddParameter(name string, v cty.Value) error {
	if _, exists := s.Parameters[name]; exists {
		return fmt.Errorf("%w: parameter %q in system %q", ErrDuplicateBlock, name, s.Name)
	}
	s.Parameters[name] = v
	return nil
}

// AddComponent records a component block.
func (s *System) AddComponent(name string, attrs map[string]cty.Value) error {
	if _, exists := s.Components[name]; exists {
		return fmt.Errorf("%w: component %q in system %q", ErrDuplicateBlock, name, s.Name)
	}
	if attrs == nil {
		attrs = make(map[string]cty.Value)
	}
	s.Components[name] = &Component{Name: name, Attributes: attrs}
	return nil
}

// Merge folds other into m. Duplicate parameters or component blocks are
// an error.
func (m *Model) Merge(other *Model) error {
	if other == nil {
		return nil
	}
	for _, name := range other.SystemNames() {
		src := other.Systems[name]
		dst := m.System(name)
		for pname, v := range src.Parameters {
			if err := dst.AddParameter(pname, v); err != nil {
				return err
			}
		}
		for cname, c := range src.Components {
			if err := dst.AddComponent(cname, c.Attributes); err != nil {
				return err
			}
		}
	}
	return nil
}
