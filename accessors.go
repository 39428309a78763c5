package bcfg

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

// Unsigned decimal with optional fraction and exponent: 1, 1., .5, 3.14, 1e3, 2.5E-2.
var ufloatPattern = regexp.MustCompile(`^(?:[0-9]+\.?[0-9]*|\.[0-9]+)(?:[eE][+-]?[0-9]+)?$`)

// Str returns the raw stored value for name. If name is absent, the first
// default is returned, or an ErrMissingValue error when none is given.
func (r *Reader) Str(name string, def ...string) (string, error) {
	v, ok := r.lookup(name)
	if !ok {
		if len(def) > 0 {
			return def[0], nil
		}
		return "", missing(name, "string")
	}
	return v, nil
}

// Uint parses the stored value as a base-10 unsigned integer. Only ASCII
// digits are accepted: signs, whitespace and fractions are ErrInvalidType.
func (r *Reader) Uint(name string, def ...uint64) (uint64, error) {
	v, ok := r.lookup(name)
	if !ok {
		if len(def) > 0 {
			return def[0], nil
		}
		return 0, missing(name, "uint")
	}
	if !isDigits(v) {
		return 0, invalid(name, "uint", v)
	}
	n, err := strconv.ParseUint(v, 10, 64)
	if err != nil {
		return 0, invalid(name, "uint", v)
	}
	return n, nil
}

// Int parses the stored value as a base-10 integer with an optional leading '-'.
func (r *Reader) Int(name string, def ...int64) (int64, error) {
	v, ok := r.lookup(name)
	if !ok {
		if len(def) > 0 {
			return def[0], nil
		}
		return 0, missing(name, "int")
	}
	if !isDigits(strings.TrimPrefix(v, "-")) {
		return 0, invalid(name, "int", v)
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return 0, invalid(name, "int", v)
	}
	return n, nil
}

// Bool accepts exactly "true" and "1" as true, "false" and "0" as false.
func (r *Reader) Bool(name string, def ...bool) (bool, error) {
	v, ok := r.lookup(name)
	if !ok {
		if len(def) > 0 {
			return def[0], nil
		}
		return false, missing(name, "bool")
	}
	switch v {
	case "true", "1":
		return true, nil
	case "false", "0":
		return false, nil
	}
	return false, invalid(name, "bool", v)
}

// Ufloat parses the stored value as a finite non-negative decimal number.
// Exponent notation is accepted; signs, hex floats, inf and nan are not.
func (r *Reader) Ufloat(name string, def ...float64) (float64, error) {
	v, ok := r.lookup(name)
	if !ok {
		if len(def) > 0 {
			return def[0], nil
		}
		return 0, missing(name, "ufloat")
	}
	f, ok := parseUfloat(v)
	if !ok {
		return 0, invalid(name, "ufloat", v)
	}
	return f, nil
}

// Float is Ufloat with an optional leading '-'.
func (r *Reader) Float(name string, def ...float64) (float64, error) {
	v, ok := r.lookup(name)
	if !ok {
		if len(def) > 0 {
			return def[0], nil
		}
		return 0, missing(name, "float")
	}
	f, ok := parseUfloat(strings.TrimPrefix(v, "-"))
	if !ok {
		return 0, invalid(name, "float", v)
	}
	if strings.HasPrefix(v, "-") {
		f = -f
	}
	return f, nil
}

// Array splits the stored value on commas, trimming spaces around items and
// dropping empty ones. An empty stored value yields an empty, non-nil slice.
func (r *Reader) Array(name string, def ...[]string) ([]string, error) {
	v, ok := r.lookup(name)
	if !ok {
		if len(def) > 0 {
			return def[0], nil
		}
		return nil, missing(name, "array")
	}
	return splitList(v), nil
}

func parseUfloat(s string) (float64, bool) {
	if !ufloatPattern.MatchString(s) {
		return 0, false
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsInf(f, 0) || math.IsNaN(f) {
		return 0, false
	}
	return f, true
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

func splitList(s string) []string {
	items := make([]string, 0, strings.Count(s, ",")+1)
	for _, item := range strings.Split(s, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	return items
}
