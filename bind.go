package bcfg

import (
	"reflect"
	"strconv"
	"strings"
	"time"
)

const tagName = "bcfg"

var durationType = reflect.TypeOf(time.Duration(0))

func bindStruct(r *Reader, v reflect.Value, segments []string, errs *[]error) {
	if v.Kind() == reflect.Pointer {
		if v.IsNil() {
			return
		}
		v = v.Elem()
	}
	if v.Kind() != reflect.Struct {
		return
	}
	t := v.Type()
	for i := 0; i < v.NumField(); i++ {
		sf := t.Field(i)
		if sf.PkgPath != "" {
			continue
		}
		tag := sf.Tag.Get(tagName)
		if tag == "-" {
			continue
		}
		seg := tag
		if seg == "" {
			seg = toScreamingSnake(sf.Name)
		}
		path := append(append([]string(nil), segments...), seg)
		field := v.Field(i)
		if !field.CanSet() {
			continue
		}

		switch {
		case field.Kind() == reflect.Struct:
			bindStruct(r, field, path, errs)
		case field.Kind() == reflect.Pointer && field.Type().Elem().Kind() == reflect.Struct:
			// Allocate only if at least one nested key exists.
			if !r.hasPrefix(strings.Join(path, "_") + "_") {
				continue
			}
			if field.IsNil() {
				field.Set(reflect.New(field.Type().Elem()))
			}
			bindStruct(r, field, path, errs)
		case field.Kind() == reflect.Pointer:
			key := strings.Join(path, "_")
			if !r.Has(key) || !scalar(field.Type().Elem()) {
				continue
			}
			ptr := reflect.New(field.Type().Elem())
			if err := setValue(r, key, ptr.Elem()); err != nil {
				*errs = append(*errs, err)
				continue
			}
			field.Set(ptr)
		default:
			key := strings.Join(path, "_")
			if !r.Has(key) {
				continue
			}
			if err := setValue(r, key, field); err != nil {
				*errs = append(*errs, err)
			}
		}
	}
}

// setValue converts the stored value for key into dst. Unsupported kinds are ignored.
func setValue(r *Reader, key string, dst reflect.Value) error {
	switch dst.Kind() {
	case reflect.String:
		s, err := r.Str(key)
		if err != nil {
			return err
		}
		dst.SetString(s)
	case reflect.Bool:
		b, err := r.Bool(key)
		if err != nil {
			return err
		}
		dst.SetBool(b)
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		if dst.Type() == durationType {
			s, _ := r.Str(key)
			d, err := time.ParseDuration(strings.TrimSpace(s))
			if err != nil {
				return invalid(key, "duration", s)
			}
			dst.SetInt(int64(d))
			return nil
		}
		n, err := r.Int(key)
		if err != nil {
			return err
		}
		if dst.OverflowInt(n) {
			return invalid(key, dst.Type().String(), strconv.FormatInt(n, 10))
		}
		dst.SetInt(n)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		n, err := r.Uint(key)
		if err != nil {
			return err
		}
		if dst.OverflowUint(n) {
			return invalid(key, dst.Type().String(), strconv.FormatUint(n, 10))
		}
		dst.SetUint(n)
	case reflect.Float32, reflect.Float64:
		f, err := r.Float(key)
		if err != nil {
			return err
		}
		dst.SetFloat(f)
	case reflect.Slice:
		if dst.Type().Elem().Kind() != reflect.String {
			return nil
		}
		items, err := r.Array(key)
		if err != nil {
			return err
		}
		out := reflect.MakeSlice(dst.Type(), len(items), len(items))
		for i, item := range items {
			out.Index(i).SetString(item)
		}
		dst.Set(out)
	}
	return nil
}

func scalar(t reflect.Type) bool {
	switch t.Kind() {
	case reflect.String, reflect.Bool, reflect.Float32, reflect.Float64,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return true
	case reflect.Slice:
		return t.Elem().Kind() == reflect.String
	}
	return false
}

func (r *Reader) hasPrefix(prefix string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for k := range r.store {
		if strings.HasPrefix(k, prefix) {
			return true
		}
	}
	return false
}

func toScreamingSnake(s string) string {
	var b strings.Builder
	for i, r := range s {
		if i > 0 && isBoundary(rune(s[i-1]), r) {
			b.WriteByte('_')
		}
		b.WriteRune(toUpper(r))
	}
	return b.String()
}

// Split words only on lower→upper transitions: ApiKey2FA → API_KEY2FA.
func isBoundary(prev, curr rune) bool {
	return (prev >= 'a' && prev <= 'z') && (curr >= 'A' && curr <= 'Z')
}

func toUpper(r rune) rune {
	if r >= 'a' && r <= 'z' {
		return r - 'a' + 'A'
	}
	return r
}
