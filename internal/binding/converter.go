package binding

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"sort"
	"strings"

	"github.com/vk/marlgrid/internal/ctxlog"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"
	"github.com/zclconf/go-cty/cty/gocty"
)

// TagName is the struct tag that names a config field.
const TagName = "config"

// ErrUnknownField is returned when an attribute has no matching field.
var ErrUnknownField = errors.New("unknown config field")

// Converter is the cty implementation of the config.Converter interface.
type Converter struct{}

// NewConverter creates a new converter.
func NewConverter() *Converter {
	return &Converter{}
}

// DecodeAttributes evaluates each attribute against the matching field of
// the struct pointed to by target and populates it.
func (c *Converter) DecodeAttributes(ctx context.Context, target any, attrs map[string]cty.Value) error {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Starting attribute decoding.", "target", fmt.Sprintf("%T", target), "attributes", len(attrs))

	structVal, err := structValue(target)
	if err != nil {
		return err
	}
	fields := fieldIndex(structVal.Type())

	names := make([]string, 0, len(attrs))
	for name := range attrs {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		idx, ok := fields[name]
		if !ok {
			return fmt.Errorf("%w %q on %T (known: %s)", ErrUnknownField, name, target, strings.Join(sortedKeys(fields), ", "))
		}
		targetPtr := structVal.Field(idx).Addr().Interface()
		if err := c.decode(ctx, attrs[name], targetPtr); err != nil {
			return fmt.Errorf("failed to decode config field '%s': %w", name, err)
		}
	}
	logger.Debug("Finished attribute decoding successfully.")
	return nil
}

// HasField reports whether target declares a config field called name.
func (c *Converter) HasField(target any, name string) bool {
	structVal, err := structValue(target)
	if err != nil {
		return false
	}
	_, ok := fieldIndex(structVal.Type())[name]
	return ok
}

// Fields returns the config field names declared by target, sorted.
func Fields(target any) []string {
	structVal, err := structValue(target)
	if err != nil {
		return nil
	}
	return sortedKeys(fieldIndex(structVal.Type()))
}

// decode handles the conversion and decoding of a cty.Value into a Go pointer.
func (c *Converter) decode(ctx context.Context, val cty.Value, goVal any) error {
	logger := ctxlog.FromContext(ctx)
	valPtr := reflect.ValueOf(goVal)
	if valPtr.Kind() != reflect.Ptr {
		return fmt.Errorf("target for decoding must be a pointer, got %T", goVal)
	}

	if val.IsNull() {
		valPtr.Elem().Set(reflect.Zero(valPtr.Elem().Type()))
		return nil
	}

	impliedType, err := gocty.ImpliedType(valPtr.Elem().Interface())
	if err != nil {
		logger.Debug("Could not imply cty.Type from Go type, attempting direct decoding.", "go_type", valPtr.Elem().Type().String(), "error", err)
		return gocty.FromCtyValue(val, goVal)
	}

	convertedVal, err := convert.Convert(val, impliedType)
	if err != nil {
		return fmt.Errorf("cannot convert %s to required type %s: %w", val.Type().FriendlyName(), impliedType.FriendlyName(), err)
	}

	if !val.Type().Equals(convertedVal.Type()) {
		logger.Debug("Implicitly converted value type.",
			"from", val.Type().FriendlyName(),
			"to", convertedVal.Type().FriendlyName(),
		)
	}

	return gocty.FromCtyValue(convertedVal, goVal)
}

// ToCtyValue converts a native Go value into its corresponding cty.Value.
func (c *Converter) ToCtyValue(v any) (cty.Value, error) {
	if v == nil {
		return cty.NilVal, nil
	}
	ty, err := gocty.ImpliedType(v)
	if err != nil {
		return cty.NilVal, fmt.Errorf("unable to infer cty.Type: %w", err)
	}
	return gocty.ToCtyValue(v, ty)
}

func structValue(target any) (reflect.Value, error) {
	v := reflect.ValueOf(target)
	if v.Kind() != reflect.Ptr || v.IsNil() {
		return reflect.Value{}, fmt.Errorf("config target must be a non-nil pointer, got %T", target)
	}
	v = v.Elem()
	if v.Kind() != reflect.Struct {
		return reflect.Value{}, fmt.Errorf("config target must point to a struct, got %T", target)
	}
	return v, nil
}

// fieldIndex maps config names to field indexes. Unexported fields and
// fields tagged `config:"-"` are skipped.
func fieldIndex(t reflect.Type) map[string]int {
	out := make(map[string]int, t.NumField())
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		if !field.IsExported() {
			continue
		}
		name := field.Name
		if tag := field.Tag.Get(TagName); tag != "" {
			name = strings.Split(tag, ",")[0]
		}
		if name == "-" || name == "" {
			continue
		}
		out[name] = i
	}
	return out
}

func sortedKeys(m map[string]int) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
