package bcfg

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"sort"
	"sync"
)

const configPathKey = "CONFIG_PATH"

// Reader holds a layered key/value configuration store and exposes typed
// accessors over it. The zero value is not usable; construct with New.
//
// Sources are merged on every Load in the order file, environment, argument
// vector, so argument values win over environment values for the same key.
// Load never removes keys: a later Load only adds or overwrites.
type Reader struct {
	mu         sync.RWMutex
	store      map[string]string
	envPrefix  string
	args       []string
	environ    func() []string
	configPath string
	logger     *slog.Logger
}

// Option configures a Reader at construction time. Options are composable and
// can be passed to New in any order.
type Option func(*Reader)

// LoadOptions selects the sources read by Load. All false is a no-op.
type LoadOptions struct {
	Env    bool
	Argv   bool
	Config bool
}

// New constructs a Reader with an empty store and applies all given options.
// Without WithArgs and WithEnviron the process argument vector (minus the
// program name) and os.Environ are used.
func New(opts ...Option) *Reader {
	r := &Reader{
		store:   make(map[string]string),
		environ: os.Environ,
	}
	if len(os.Args) > 1 {
		r.args = os.Args[1:]
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// WithEnvPrefix restricts environment loading to variables named PREFIX_KEY,
// stored under KEY. When set, ${PREFIX}_CONFIG_PATH also names the config file
// and takes precedence over WithConfigFile.
// Panics if prefix is empty.
func WithEnvPrefix(prefix string) Option {
	return func(r *Reader) {
		if prefix == "" {
			panic("bcfg: WithEnvPrefix: prefix cannot be empty")
		}
		r.envPrefix = prefix
	}
}

// WithArgs sets the argument vector parsed by Load when LoadOptions.Argv is set.
// The slice must not include the program name.
func WithArgs(args []string) Option {
	return func(r *Reader) {
		r.args = append([]string(nil), args...)
	}
}

// WithEnviron replaces os.Environ as the environment source. Panics if fn is nil.
func WithEnviron(fn func() []string) Option {
	return func(r *Reader) {
		if fn == nil {
			panic("bcfg: WithEnviron: fn cannot be nil")
		}
		r.environ = fn
	}
}

// WithConfigFile sets a YAML or JSON file read by Load when LoadOptions.Config
// is set. Panics if path is empty.
func WithConfigFile(path string) Option {
	return func(r *Reader) {
		if path == "" {
			panic("bcfg: WithConfigFile: path cannot be empty")
		}
		r.configPath = path
	}
}

// WithLogger routes load notifications to l at debug level. Accessors never log.
func WithLogger(l *slog.Logger) Option {
	return func(r *Reader) {
		r.logger = l
	}
}

// Load reads the selected sources and merges them into the store. Each call
// takes one snapshot of its sources. If any selected source fails, the store
// is left as it was before the call and nothing is logged.
func (r *Reader) Load(opts LoadOptions) error {
	type layer struct {
		source string
		values map[string]string
	}
	var layers []layer

	var env map[string]string
	if opts.Env || (opts.Config && r.envPrefix != "") {
		env = parseEnviron(r.environ(), r.envPrefix)
	}

	if opts.Config {
		if path := r.resolveConfigPath(env); path != "" {
			values, err := loadFromFile(path)
			if err != nil {
				return err
			}
			layers = append(layers, layer{"config file " + path, values})
		}
	}

	if opts.Env {
		layers = append(layers, layer{"environment", env})
	}

	if opts.Argv {
		values, err := parseArgs(r.args)
		if err != nil {
			return err
		}
		layers = append(layers, layer{"arguments", values})
	}

	r.mu.Lock()
	for _, l := range layers {
		for k, v := range l.values {
			r.store[k] = v
		}
	}
	r.mu.Unlock()

	for _, l := range layers {
		r.debug("loaded "+l.source, "prefix", r.envPrefix, "keys", len(l.values))
	}
	return nil
}

// Has reports whether name is present in the store, regardless of whether its
// value can be coerced to any particular type.
func (r *Reader) Has(name string) bool {
	_, ok := r.lookup(name)
	return ok
}

// Keys returns the stored keys in sorted order.
func (r *Reader) Keys() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	keys := make([]string, 0, len(r.store))
	for k := range r.store {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func (r *Reader) lookup(name string) (string, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	v, ok := r.store[name]
	return v, ok
}

// resolveConfigPath prefers ${PREFIX}_CONFIG_PATH from env, the snapshot
// taken by the current Load.
func (r *Reader) resolveConfigPath(env map[string]string) string {
	if r.envPrefix != "" {
		if path := env[configPathKey]; path != "" {
			return path
		}
	}
	return r.configPath
}

func (r *Reader) debug(msg string, args ...any) {
	if r.logger == nil {
		return
	}
	r.logger.Log(context.Background(), slog.LevelDebug, fmt.Sprintf("bcfg: %s", msg), args...)
}
