// Package bcfg provides a layered key/value configuration reader with typed,
// fail-fast accessors.
//
// It supports:
//  1. Loading keys from the process environment (optionally restricted to a
//     PREFIX_ namespace), from command-line arguments and from a flat YAML/JSON
//     file. Within one Load the precedence is file < environment < arguments.
//  2. Typed accessors (Str, Uint, Int, Bool, Ufloat, Float, Array) that return
//     an optional default for absent keys and a *KeyError wrapping
//     ErrMissingValue or ErrInvalidType otherwise.
//  3. Binding the loaded values into a struct through Provider, with optional
//     github.com/ygrebnov/model integration for `default` and `validate` tags.
//
// Typical usage:
//
//	r := bcfg.New(bcfg.WithEnvPrefix("DTL"))
//	if err := r.Load(bcfg.LoadOptions{Env: true, Argv: true}); err != nil {
//	    log.Fatal(err)
//	}
//	endpoint, err := r.Str("L1_RPC_ENDPOINT")
//	interval, err := r.Uint("POLLING_INTERVAL", 5000)
//
// Argument keys are stored verbatim, so `--L1_RPC_ENDPOINT=http://...` overrides
// DTL_L1_RPC_ENDPOINT from the environment.
package bcfg
