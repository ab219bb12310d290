package config

import (
	"fmt"
	"sort"
)

// ModelFromDocument translates a decoded document with the layout
//
//	system:
//	  <name>:
//	    parameters: {<param>: <value>}
//	    component:
//	      <component>: {<field>: <value>}
//
// into a Model. It is shared by the TOML and YAML loaders.
func ModelFromDocument(doc map[string]any) (*Model, error) {
	model := NewModel()
	rawSystems, ok := doc["system"]
	if !ok {
		return model, nil
	}
	systems, ok := asTable(rawSystems)
	if !ok {
		return nil, fmt.Errorf("'system' must be a table, got %T", rawSystems)
	}

	for _, name := range sortedTableKeys(systems) {
		body, ok := asTable(systems[name])
		if !ok {
			return nil, fmt.Errorf("system '%s' must be a table, got %T", name, systems[name])
		}
		sys := model.System(name)

		for key := range body {
			if key != "parameters" && key != "component" {
				return nil, fmt.Errorf("system '%s': unexpected key '%s'", name, key)
			}
		}

		if raw, ok := body["parameters"]; ok {
			params, ok := asTable(raw)
			if !ok {
				return nil, fmt.Errorf("system '%s': 'parameters' must be a table", name)
			}
			attrs, err := AttributesFromGo(params)
			if err != nil {
				return nil, fmt.Errorf("system '%s' parameters: %w", name, err)
			}
			for pname, v := range attrs {
				if err := sys.AddParameter(pname, v); err != nil {
					return nil, err
				}
			}
		}

		if raw, ok := body["component"]; ok {
			comps, ok := asTable(raw)
			if !ok {
				return nil, fmt.Errorf("system '%s': 'component' must be a table", name)
			}
			for _, cname := range sortedTableKeys(comps) {
				var table map[string]any
				if comps[cname] != nil {
					table, ok = asTable(comps[cname])
					if !ok {
						return nil, fmt.Errorf("system '%s', component '%s' must be a table", name, cname)
					}
				}
				attrs, err := AttributesFromGo(table)
				if err != nil {
					return nil, fmt.Errorf("system '%s', component '%s': %w", name, cname, err)
				}
				if err := sys.AddComponent(cname, attrs); err != nil {
					return nil, err
				}
			}
		}
	}
	return model, nil
}

func asTable(v any) (map[string]any, bool) {
	switch tv := v.(type) {
	case map[string]any:
		return tv, true
	case map[any]any:
		out := make(map[string]any, len(tv))
		for k, val := range tv {
			out[fmt.Sprint(k)] = val
		}
		return out, true
	default:
		return nil, false
	}
}

func sortedTableKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
