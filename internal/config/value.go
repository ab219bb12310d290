package config

import (
	"fmt"
	"math/big"
	"sort"

	"github.com/zclconf/go-cty/cty"
)

// ValueFromGo converts a loosely typed decoded document value (as produced
// by TOML or YAML decoders) into a cty.Value. Maps become objects and
// slices become tuples so mixed element types survive until they are
// converted against the target field's type.
func ValueFromGo(v any) (cty.Value, error) {
	switch tv := v.(type) {
	case nil:
		return cty.NullVal(cty.DynamicPseudoType), nil
	case cty.Value:
		return tv, nil
	case string:
		return cty.StringVal(tv), nil
	case bool:
		return cty.BoolVal(tv), nil
	case int:
		return cty.NumberIntVal(int64(tv)), nil
	case int64:
		return cty.NumberIntVal(tv), nil
	case int32:
		return cty.NumberIntVal(int64(tv)), nil
	case uint64:
		return cty.NumberUIntVal(tv), nil
	case float64:
		return cty.NumberFloatVal(tv), nil
	case float32:
		return cty.NumberFloatVal(float64(tv)), nil
	case *big.Float:
		return cty.NumberVal(tv), nil
	case map[string]any:
		attrs := make(map[string]cty.Value, len(tv))
		keys := make([]string, 0, len(tv))
		for k := range tv {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			av, err := ValueFromGo(tv[k])
			if err != nil {
				return cty.NilVal, fmt.Errorf("%s: %w", k, err)
			}
			attrs[k] = av
		}
		return cty.ObjectVal(attrs), nil
	case map[any]any:
		m := make(map[string]any, len(tv))
		for k, val := range tv {
			m[fmt.Sprint(k)] = val
		}
		return ValueFromGo(m)
	case []any:
		if len(tv) == 0 {
			return cty.EmptyTupleVal, nil
		}
		elems := make([]cty.Value, len(tv))
		for i, e := range tv {
			ev, err := ValueFromGo(e)
			if err != nil {
				return cty.NilVal, fmt.Errorf("[%d]: %w", i, err)
			}
			elems[i] = ev
		}
		return cty.TupleVal(elems), nil
	case []map[string]any:
		elems := make([]any, len(tv))
		for i, e := range tv {
			elems[i] = e
		}
		return ValueFromGo(elems)
	default:
		return cty.NilVal, fmt.Errorf("unsupported configuration value of type %T", v)
	}
}

// AttributesFromGo converts a decoded document table into attributes.
func AttributesFromGo(table map[string]any) (map[string]cty.Value, error) {
	attrs := make(map[string]cty.Value, len(table))
	for k, v := range table {
		cv, err := ValueFromGo(v)
		if err != nil {
			return nil, fmt.Errorf("attribute %q: %w", k, err)
		}
		attrs[k] = cv
	}
	return attrs, nil
}
