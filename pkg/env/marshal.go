package env

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"time"
)

var durationType = reflect.TypeFor[time.Duration]()

// MarshalEnv renders the `env` tagged fields of a struct pointer as
// KEY=value lines. Zero values are omitted so envDefault tags still apply
// when the file is loaded back.
func MarshalEnv(c any) (string, error) {
	rv := reflect.ValueOf(c)
	if rv.Kind() != reflect.Pointer || rv.Elem().Kind() != reflect.Struct {
		return "", fmt.Errorf("marshal env: expected pointer to struct, got %T", c)
	}
	v := rv.Elem()

	var sb strings.Builder
	for _, field := range reflect.VisibleFields(v.Type()) {
		if !field.IsExported() || len(field.Index) != 1 {
			continue
		}
		key, _, _ := strings.Cut(field.Tag.Get("env"), ",")
		if key == "" {
			continue
		}

		value, ok := encode(v.FieldByIndex(field.Index))
		if !ok {
			continue
		}
		if strings.ContainsAny(value, " #\"'\n") {
			value = strconv.Quote(value)
		}
		sb.WriteString(key)
		sb.WriteByte('=')
		sb.WriteString(value)
		sb.WriteByte('\n')
	}
	return sb.String(), nil
}

// encode reports false for zero values.
func encode(v reflect.Value) (string, bool) {
	if v.IsZero() {
		return "", false
	}
	if v.Type() == durationType {
		return time.Duration(v.Int()).String(), true
	}

	switch v.Kind() {
	case reflect.String:
		return v.String(), true
	case reflect.Bool:
		return strconv.FormatBool(v.Bool()), true
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return strconv.FormatInt(v.Int(), 10), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return strconv.FormatUint(v.Uint(), 10), true
	case reflect.Float32, reflect.Float64:
		return strconv.FormatFloat(v.Float(), 'f', -1, v.Type().Bits()), true
	case reflect.Pointer:
		return encode(v.Elem())
	default:
		return fmt.Sprint(v.Interface()), true
	}
}
