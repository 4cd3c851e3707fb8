package bind

import (
	"encoding"
	"encoding/base64"
	"fmt"
	"reflect"
	"strconv"
	"time"

	"github.com/signadot/docmap/typecache"
)

// acceptsEmpty reports whether "" is a meaningful value of d rather than
// a missing one.
func acceptsEmpty(d *typecache.Descriptor) bool {
	return (d.Kind == reflect.String && !d.IsText) || d.IsBytes
}

// parseScalar converts s into dst, a settable value of scalar type d.
func parseScalar(d *typecache.Descriptor, s string, dst reflect.Value) error {
	switch {
	case d.IsDuration:
		x, err := time.ParseDuration(s)
		if err != nil {
			return err
		}
		dst.SetInt(int64(x))
		return nil
	case d.IsText:
		p := reflect.New(d.Type)
		if err := p.Interface().(encoding.TextUnmarshaler).UnmarshalText([]byte(s)); err != nil {
			return err
		}
		dst.Set(p.Elem())
		return nil
	case d.IsBytes:
		b, err := base64.StdEncoding.DecodeString(s)
		if err != nil {
			return err
		}
		dst.SetBytes(b)
		return nil
	}
	switch d.Kind {
	case reflect.String:
		dst.SetString(s)
	case reflect.Bool:
		x, err := strconv.ParseBool(s)
		if err != nil {
			return err
		}
		dst.SetBool(x)
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		x, err := strconv.ParseInt(s, 10, d.Type.Bits())
		if err != nil {
			return err
		}
		dst.SetInt(x)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		x, err := strconv.ParseUint(s, 10, d.Type.Bits())
		if err != nil {
			return err
		}
		dst.SetUint(x)
	case reflect.Float32, reflect.Float64:
		x, err := strconv.ParseFloat(s, d.Type.Bits())
		if err != nil {
			return err
		}
		dst.SetFloat(x)
	case reflect.Complex64, reflect.Complex128:
		x, err := strconv.ParseComplex(s, d.Type.Bits())
		if err != nil {
			return err
		}
		dst.SetComplex(x)
	default:
		return fmt.Errorf("%s is not a scalar", d)
	}
	return nil
}

// formatScalar renders v, a value of scalar type d, as canonical text.
func formatScalar(d *typecache.Descriptor, v reflect.Value) (string, error) {
	switch {
	case d.IsDuration:
		return time.Duration(v.Int()).String(), nil
	case d.IsText:
		return marshalText(v)
	case d.IsBytes:
		return base64.StdEncoding.EncodeToString(v.Bytes()), nil
	}
	switch d.Kind {
	case reflect.String:
		return v.String(), nil
	case reflect.Bool:
		return strconv.FormatBool(v.Bool()), nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return strconv.FormatInt(v.Int(), 10), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return strconv.FormatUint(v.Uint(), 10), nil
	case reflect.Float32, reflect.Float64:
		return strconv.FormatFloat(v.Float(), 'g', -1, d.Type.Bits()), nil
	case reflect.Complex64, reflect.Complex128:
		return strconv.FormatComplex(v.Complex(), 'g', -1, d.Type.Bits()), nil
	}
	return "", fmt.Errorf("%s is not a scalar", d)
}

func marshalText(v reflect.Value) (string, error) {
	if tm, ok := v.Interface().(encoding.TextMarshaler); ok {
		b, err := tm.MarshalText()
		return string(b), err
	}
	p := reflect.New(v.Type())
	p.Elem().Set(v)
	b, err := p.Interface().(encoding.TextMarshaler).MarshalText()
	return string(b), err
}
