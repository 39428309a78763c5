package bcfg

import (
	"errors"
	"fmt"
)

// Exported error categories returned by this package. These are used with wrapping
// so callers can detect error classes using errors.Is/As.
//   - ErrMissingValue: key is absent and no default was supplied.
//   - ErrInvalidType: key is present but its value cannot be coerced to the requested type.
//   - ErrMalformedArgs: the argument vector could not be split into key/value pairs.
//   - ErrUnsupportedConfigFileType: file extension is neither .yaml/.yml nor .json.
//   - ErrParse: failure to parse an existing config file.
var (
	ErrMissingValue              = errors.New("missing value")
	ErrInvalidType               = errors.New("invalid type")
	ErrMalformedArgs             = errors.New("malformed arguments")
	ErrUnsupportedConfigFileType = errors.New("unsupported config file type")
	ErrParse                     = errors.New("parse config file")
)

// KeyError describes an accessor failure for a single key. Err is always one of
// ErrMissingValue or ErrInvalidType.
type KeyError struct {
	Key   string
	Type  string
	Value string
	Err   error
}

func (e *KeyError) Error() string {
	if errors.Is(e.Err, ErrMissingValue) {
		return fmt.Sprintf("bcfg: %s: %q", e.Err, e.Key)
	}
	return fmt.Sprintf("bcfg: %s: %q is not a %s: %q", e.Err, e.Key, e.Type, e.Value)
}

func (e *KeyError) Unwrap() error { return e.Err }

func missing(key, typ string) error {
	return &KeyError{Key: key, Type: typ, Err: ErrMissingValue}
}

func invalid(key, typ, value string) error {
	return &KeyError{Key: key, Type: typ, Value: value, Err: ErrInvalidType}
}
