package bcfg

import (
	"errors"
	"reflect"
	"strings"
	"testing"
)

func loaded(t *testing.T, entries ...string) *Reader {
	t.Helper()
	r := New(WithEnviron(environ(entries...)), WithArgs(nil))
	if err := r.Load(LoadOptions{Env: true}); err != nil {
		t.Fatalf("Load: %v", err)
	}
	return r
}

func TestAccessors_Missing(t *testing.T) {
	r := loaded(t)

	calls := map[string]func() error{
		"Str":    func() error { _, err := r.Str("NOPE"); return err },
		"Uint":   func() error { _, err := r.Uint("NOPE"); return err },
		"Int":    func() error { _, err := r.Int("NOPE"); return err },
		"Bool":   func() error { _, err := r.Bool("NOPE"); return err },
		"Ufloat": func() error { _, err := r.Ufloat("NOPE"); return err },
		"Float":  func() error { _, err := r.Float("NOPE"); return err },
		"Array":  func() error { _, err := r.Array("NOPE"); return err },
	}
	for name, call := range calls {
		t.Run(name, func(t *testing.T) {
			err := call()
			if !errors.Is(err, ErrMissingValue) {
				t.Fatalf("got %v, want ErrMissingValue", err)
			}
			var ke *KeyError
			if !errors.As(err, &ke) || ke.Key != "NOPE" {
				t.Fatalf("expected *KeyError for NOPE, got %T: %v", err, err)
			}
		})
	}
	if r.Has("NOPE") {
		t.Fatalf("Has(NOPE) = true")
	}
}

func TestAccessors_Defaults(t *testing.T) {
	r := loaded(t)

	if got, err := r.Str("NOPE", "d"); err != nil || got != "d" {
		t.Fatalf("Str: %q, %v", got, err)
	}
	if got, err := r.Uint("NOPE", 9); err != nil || got != 9 {
		t.Fatalf("Uint: %d, %v", got, err)
	}
	if got, err := r.Int("NOPE", -9); err != nil || got != -9 {
		t.Fatalf("Int: %d, %v", got, err)
	}
	if got, err := r.Bool("NOPE", true); err != nil || !got {
		t.Fatalf("Bool: %v, %v", got, err)
	}
	if got, err := r.Ufloat("NOPE", 0.5); err != nil || got != 0.5 {
		t.Fatalf("Ufloat: %v, %v", got, err)
	}
	if got, err := r.Float("NOPE", -0.5); err != nil || got != -0.5 {
		t.Fatalf("Float: %v, %v", got, err)
	}
	if got, err := r.Array("NOPE", []string{"x"}); err != nil || !reflect.DeepEqual(got, []string{"x"}) {
		t.Fatalf("Array: %v, %v", got, err)
	}
}

func TestAccessors_DefaultIgnoredWhenPresentButInvalid(t *testing.T) {
	r := loaded(t, "FOO=abc")
	if _, err := r.Uint("FOO", 1); !errors.Is(err, ErrInvalidType) {
		t.Fatalf("got %v, want ErrInvalidType", err)
	}
}

func TestUint(t *testing.T) {
	tests := []struct {
		value   string
		want    uint64
		invalid bool
	}{
		{value: "5", want: 5},
		{value: "0", want: 0},
		{value: "007", want: 7},
		{value: "18446744073709551615", want: 18446744073709551615},
		{value: "18446744073709551616", invalid: true},
		{value: "-5", invalid: true},
		{value: "+5", invalid: true},
		{value: " 5", invalid: true},
		{value: "5 ", invalid: true},
		{value: "5.0", invalid: true},
		{value: "1e3", invalid: true},
		{value: "0x10", invalid: true},
		{value: "1_000", invalid: true},
		{value: "", invalid: true},
	}
	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			r := loaded(t, "FOO="+tt.value)
			got, err := r.Uint("FOO")
			if tt.invalid {
				if !errors.Is(err, ErrInvalidType) {
					t.Fatalf("Uint(%q): got %d, %v; want ErrInvalidType", tt.value, got, err)
				}
				return
			}
			if err != nil || got != tt.want {
				t.Fatalf("Uint(%q): got %d, %v; want %d", tt.value, got, err, tt.want)
			}
		})
	}
}

func TestInt(t *testing.T) {
	tests := []struct {
		value   string
		want    int64
		invalid bool
	}{
		{value: "5", want: 5},
		{value: "-5", want: -5},
		{value: "+5", invalid: true},
		{value: "-", invalid: true},
		{value: "--5", invalid: true},
		{value: "9223372036854775808", invalid: true},
	}
	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			r := loaded(t, "FOO="+tt.value)
			got, err := r.Int("FOO")
			if tt.invalid {
				if !errors.Is(err, ErrInvalidType) {
					t.Fatalf("Int(%q): got %d, %v; want ErrInvalidType", tt.value, got, err)
				}
				return
			}
			if err != nil || got != tt.want {
				t.Fatalf("Int(%q): got %d, %v; want %d", tt.value, got, err, tt.want)
			}
		})
	}
}

func TestBool(t *testing.T) {
	tests := []struct {
		value   string
		want    bool
		invalid bool
	}{
		{value: "true", want: true},
		{value: "1", want: true},
		{value: "false", want: false},
		{value: "0", want: false},
		{value: "yes", invalid: true},
		{value: "TRUE", invalid: true},
		{value: "t", invalid: true},
		{value: " true", invalid: true},
		{value: "", invalid: true},
	}
	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			r := loaded(t, "FOO="+tt.value)
			got, err := r.Bool("FOO")
			if tt.invalid {
				if !errors.Is(err, ErrInvalidType) {
					t.Fatalf("Bool(%q): got %v, %v; want ErrInvalidType", tt.value, got, err)
				}
				return
			}
			if err != nil || got != tt.want {
				t.Fatalf("Bool(%q): got %v, %v; want %v", tt.value, got, err, tt.want)
			}
		})
	}
}

func TestUfloat(t *testing.T) {
	tests := []struct {
		value   string
		want    float64
		invalid bool
	}{
		{value: "3.14", want: 3.14},
		{value: "0", want: 0},
		{value: "1.", want: 1},
		{value: ".5", want: 0.5},
		{value: "1e3", want: 1000},
		{value: "2.5E-2", want: 0.025},
		{value: "-3.14", invalid: true},
		{value: "+3.14", invalid: true},
		{value: "inf", invalid: true},
		{value: "NaN", invalid: true},
		{value: "0x1p-2", invalid: true},
		{value: "1e400", invalid: true},
		{value: ".", invalid: true},
		{value: "e5", invalid: true},
		{value: "abc", invalid: true},
		{value: "", invalid: true},
	}
	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			r := loaded(t, "FOO="+tt.value)
			got, err := r.Ufloat("FOO")
			if tt.invalid {
				if !errors.Is(err, ErrInvalidType) {
					t.Fatalf("Ufloat(%q): got %v, %v; want ErrInvalidType", tt.value, got, err)
				}
				return
			}
			if err != nil || got != tt.want {
				t.Fatalf("Ufloat(%q): got %v, %v; want %v", tt.value, got, err, tt.want)
			}
		})
	}
}

func TestFloat(t *testing.T) {
	r := loaded(t, "NEG=-3.14", "POS=2", "BAD=-", "DOUBLE=--1")
	if got, err := r.Float("NEG"); err != nil || got != -3.14 {
		t.Fatalf("Float(NEG): %v, %v", got, err)
	}
	if got, err := r.Float("POS"); err != nil || got != 2 {
		t.Fatalf("Float(POS): %v, %v", got, err)
	}
	for _, k := range []string{"BAD", "DOUBLE"} {
		if _, err := r.Float(k); !errors.Is(err, ErrInvalidType) {
			t.Fatalf("Float(%s): got %v, want ErrInvalidType", k, err)
		}
	}
}

func TestArray(t *testing.T) {
	r := loaded(t, "LIST= a, b ,,c ", "EMPTY=")
	if got, err := r.Array("LIST"); err != nil || !reflect.DeepEqual(got, []string{"a", "b", "c"}) {
		t.Fatalf("Array(LIST): %v, %v", got, err)
	}
	got, err := r.Array("EMPTY")
	if err != nil || got == nil || len(got) != 0 {
		t.Fatalf("Array(EMPTY): %#v, %v; want empty non-nil slice", got, err)
	}
}

func TestAccessors_Idempotent(t *testing.T) {
	r := loaded(t, "FOO=42", "BAD=x")
	for i := 0; i < 3; i++ {
		if !r.Has("FOO") {
			t.Fatalf("Has changed on call %d", i)
		}
		if got, err := r.Uint("FOO"); err != nil || got != 42 {
			t.Fatalf("Uint changed on call %d: %d, %v", i, got, err)
		}
		if _, err := r.Bool("BAD"); !errors.Is(err, ErrInvalidType) {
			t.Fatalf("Bool(BAD) changed on call %d: %v", i, err)
		}
	}
	if got := r.Keys(); !reflect.DeepEqual(got, []string{"BAD", "FOO"}) {
		t.Fatalf("reads mutated store: %v", got)
	}
}

func TestKeyError_Message(t *testing.T) {
	r := loaded(t, "FOO=yes")
	_, err := r.Bool("FOO")
	if msg := err.Error(); !strings.Contains(msg, `"FOO" is not a bool: "yes"`) {
		t.Fatalf("unexpected message: %q", msg)
	}
	_, err = r.Str("BAR")
	if msg := err.Error(); !strings.Contains(msg, `missing value: "BAR"`) {
		t.Fatalf("unexpected message: %q", msg)
	}
}
