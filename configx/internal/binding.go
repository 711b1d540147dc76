package internal

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"time"
)

var (
	durationType = reflect.TypeOf(time.Duration(0))
	timeType     = reflect.TypeOf(time.Time{})
)

// BindToStruct copies snapshot values into the fields of target that carry an
// env tag. A key absent from the snapshot falls back to the default tag; an
// empty value leaves the field untouched. Nested structs are walked, their
// fields use the same flat key space.
func BindToStruct(snapshot map[string]string, target any) error {
	v := reflect.ValueOf(target)
	if v.Kind() != reflect.Ptr || v.IsNil() || v.Elem().Kind() != reflect.Struct {
		return fmt.Errorf("target must be a non-nil pointer to struct, got %T", target)
	}
	return bindFields(snapshot, v.Elem(), "")
}

func bindFields(snapshot map[string]string, sv reflect.Value, path string) error {
	st := sv.Type()
	for i := 0; i < st.NumField(); i++ {
		field, meta := sv.Field(i), st.Field(i)
		if !field.CanSet() {
			continue
		}
		name := meta.Name
		if path != "" {
			name = path + "." + meta.Name
		}

		if field.Kind() == reflect.Struct && field.Type() != timeType {
			if err := bindFields(snapshot, field, name); err != nil {
				return err
			}
			continue
		}

		key, ok := meta.Tag.Lookup("env")
		if !ok || key == "" {
			continue
		}
		raw, found := snapshot[key]
		if !found {
			raw = meta.Tag.Get("default")
		}
		if raw == "" {
			continue
		}
		if err := assign(field, raw); err != nil {
			return fmt.Errorf("field %s (%s=%q): %w", name, key, raw, err)
		}
	}
	return nil
}

// assign parses raw into field according to the field's type.
func assign(field reflect.Value, raw string) error {
	t := field.Type()
	switch {
	case t == durationType:
		d, err := time.ParseDuration(raw)
		if err != nil {
			return err
		}
		field.SetInt(int64(d))
		return nil
	case t.Kind() == reflect.Slice && t.Elem().Kind() == reflect.String:
		parts := strings.Split(raw, ",")
		out := reflect.MakeSlice(t, 0, len(parts))
		for _, p := range parts {
			if p = strings.TrimSpace(p); p != "" {
				out = reflect.Append(out, reflect.ValueOf(p).Convert(t.Elem()))
			}
		}
		field.Set(out)
		return nil
	}

	switch t.Kind() {
	case reflect.String:
		field.SetString(raw)
	case reflect.Bool:
		b, err := strconv.ParseBool(raw)
		if err != nil {
			return err
		}
		field.SetBool(b)
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		n, err := strconv.ParseInt(raw, 10, t.Bits())
		if err != nil {
			return err
		}
		field.SetInt(n)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		n, err := strconv.ParseUint(raw, 10, t.Bits())
		if err != nil {
			return err
		}
		field.SetUint(n)
	case reflect.Float32, reflect.Float64:
		f, err := strconv.ParseFloat(raw, t.Bits())
		if err != nil {
			return err
		}
		field.SetFloat(f)
	default:
		return fmt.Errorf("unsupported field type %s", t)
	}
	return nil
}
