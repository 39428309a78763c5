package bcfg

import (
	"errors"
	"reflect"
	"sync"

	modellib "github.com/ygrebnov/model"
)

// Provider binds a loaded Reader to a configuration struct of type T.
//
// A Provider[T] performs the following steps exactly once (it is safe to call Get
// from multiple goroutines):
//  1. Construct a new *T using the factory set via WithDefaultFn (or a zero-value fallback).
//  2. If WithModel is set, bind a model.Model[T] to the same *T and call SetDefaults()
//     to populate zero values using `default` struct tags.
//  3. Copy values from the Reader into exported fields, keyed by `bcfg` tags or
//     field names in SCREAMING_SNAKE_CASE (see Bind).
//  4. If WithModel was set, validate the final object using model.Validate().
//
// The Reader must be loaded before the first Get. Subsequent calls to Get()
// return the same pointer and error.
type Provider[T any] struct {
	initOnce  sync.Once
	reader    *Reader
	cfg       *T
	defaultFn func() *T
	initErr   error
	modelInit ModelInit[T]
	model     *modellib.Model[T]
}

// ProviderOption configures a Provider at construction time.
type ProviderOption[T any] func(*Provider[T])

// ModelInit is a constructor hook that binds a model.Model[T] to the Provider-managed
// *T. Return the constructed model.Model[T] or an error.
type ModelInit[T any] func(*T) (*modellib.Model[T], error)

// NewProvider constructs a Provider[T] reading from r. Panics if r is nil.
func NewProvider[T any](r *Reader, opts ...ProviderOption[T]) *Provider[T] {
	if r == nil {
		panic("bcfg: NewProvider: reader cannot be nil")
	}
	p := &Provider[T]{reader: r}
	for _, opt := range opts {
		opt(p)
	}

	if p.defaultFn == nil {
		p.defaultFn = func() *T { var t T; return &t }
	}

	return p
}

// WithDefaultFn registers a factory that returns a new *T. It is invoked once
// during Get() before any values are bound. Panics if fn is nil.
func WithDefaultFn[T any](fn func() *T) ProviderOption[T] {
	return func(p *Provider[T]) {
		if fn == nil {
			panic("bcfg: WithDefaultFn: fn cannot be nil")
		}
		p.defaultFn = fn
	}
}

// WithModel enables integration with github.com/ygrebnov/model. The provider
// calls SetDefaults() before binding and Validate() after.
// Panics if init is nil.
func WithModel[T any](init ModelInit[T]) ProviderOption[T] {
	return func(p *Provider[T]) {
		if init == nil {
			panic("bcfg: WithModel: init cannot be nil")
		}
		p.modelInit = init
	}
}

// Get initializes and returns the bound configuration.
func (p *Provider[T]) Get() (*T, error) {
	p.initOnce.Do(func() {
		p.cfg = p.defaultFn()

		if p.modelInit != nil {
			mdl, err := p.modelInit(p.cfg)
			if err != nil {
				p.initErr = err
				return
			}
			p.model = mdl

			// Defaults only fill zero values, so they go before binding.
			if err := p.model.SetDefaults(); err != nil {
				p.initErr = err
				return
			}
		}

		if err := Bind(p.reader, p.cfg); err != nil {
			p.initErr = err
			return
		}

		if p.model != nil {
			if err := p.model.Validate(); err != nil {
				p.initErr = err
				return
			}
		}
	})

	if p.initErr != nil {
		return nil, p.initErr
	}
	return p.cfg, nil
}

// Bind copies stored values into the exported fields of the struct cfg points to.
// Field keys come from the `bcfg` tag, or the field name in SCREAMING_SNAKE_CASE;
// nested struct keys are joined with '_' and `bcfg:"-"` skips a field. Absent
// keys leave fields untouched. All conversion failures are returned joined.
func Bind(r *Reader, cfg any) error {
	rv := reflect.ValueOf(cfg)
	if rv.Kind() != reflect.Pointer || rv.IsNil() {
		return nil
	}
	var errs []error
	bindStruct(r, rv.Elem(), nil, &errs)
	return errors.Join(errs...)
}
