// settings.go
//
// Loader construction and the ordered source chain.
//
// Context
// -------
// New builds the chain eagerly, snapshotting every source exactly once
// (highest precedence first):
//
//  1. init     – values handed to WithValues.
//  2. env      – process environment, optionally prefix-filtered.
//  3. dotenv   – optional .env file.
//  4. yaml     – optional static YAML file.
//  5. ssm      – Parameter Store subtree under the absolute prefix.
//  6. secrets  – optional directory of one-file-per-secret mounts.
//
// For any given field, the first source that yields a value wins
// outright.  Later sources only fill fields the earlier ones left
// absent; there is no cross-source sub-field merging.
//
// Load resolves every declared field through the chain, assembles the
// merged tree, and unmarshals it into the caller's struct via Koanf, so
// scalar coercion and koanf struct tags behave exactly as they do in the
// rest of our config tooling.
//
// Notes
// -----
//   - Oxford commas, two spaces after periods.
package ssmsettings

import (
	"context"
	"fmt"
	"path"

	"github.com/knadh/koanf/providers/confmap"
	koanf "github.com/knadh/koanf/v2"

	"github.com/yanizio/ssmsettings/paramstore"
)

// DefaultNestedDelimiter separates nested path segments in flat keys.  It
// matches the Parameter Store path separator, so a parameter at
// <prefix>/foo/bar overrides sub-field "bar" of field "foo" without the
// whole JSON blob being rewritten.
const DefaultNestedDelimiter = "/"

type config struct {
	values        map[string]any
	envPrefix     string
	dotenvPath    string
	yamlPath      string
	secretsDir    string
	delim         string
	caseSensitive bool
	store         paramstore.Store
	validate      bool
}

// Option adjusts Loader construction.
type Option func(*config)

// WithValues supplies programmatic init values, the highest-precedence
// source.  Keys are field names; values are used as given.
func WithValues(values map[string]any) Option {
	return func(c *config) { c.values = values }
}

// WithEnvPrefix narrows the environment snapshot to variables carrying
// the prefix, which is stripped before lookup (APP_FOO resolves field
// "foo" under the default case folding).
func WithEnvPrefix(prefix string) Option {
	return func(c *config) { c.envPrefix = prefix }
}

// WithDotenv adds a dotenv file source after the environment.  A missing
// file is not an error.
func WithDotenv(path string) Option {
	return func(c *config) { c.dotenvPath = path }
}

// WithYAMLFile adds a static YAML file source between dotenv and the
// Parameter Store.  Unlike dotenv, a missing or malformed file fails
// construction.
func WithYAMLFile(path string) Option {
	return func(c *config) { c.yamlPath = path }
}

// WithSecretsDir adds a one-file-per-secret directory source at the tail
// of the chain.  A missing directory is not an error.
func WithSecretsDir(dir string) Option {
	return func(c *config) { c.secretsDir = dir }
}

// WithNestedDelimiter replaces DefaultNestedDelimiter for every source.
// An empty delimiter disables sub-key explosion entirely.
func WithNestedDelimiter(delim string) Option {
	return func(c *config) { c.delim = delim }
}

// CaseSensitive disables the default lower-case folding of keys and
// lookup names.
func CaseSensitive() Option {
	return func(c *config) { c.caseSensitive = true }
}

// WithStore replaces the default AWS-backed Parameter Store client, for
// alternate backends or tests.
func WithStore(s paramstore.Store) Option {
	return func(c *config) { c.store = s }
}

// WithValidation runs go-playground/validator over the destination
// struct after unmarshalling, honoring its `validate` tags.
func WithValidation() Option {
	return func(c *config) { c.validate = true }
}

// Loader resolves a fixed field table against an ordered source chain.
// Build one with New; it is immutable and safe to Load from repeatedly,
// always yielding the same values for an unchanged set of snapshots.
type Loader struct {
	fields   []Field
	sources  []Source
	validate bool
}

// New snapshots every source and returns a ready Loader.  prefix is the
// absolute Parameter Store path the settings live under; a relative
// prefix fails immediately with ErrPrefixNotAbsolute, before any client
// is built.
func New(ctx context.Context, prefix string, fields []Field, opts ...Option) (*Loader, error) {
	cfg := config{delim: DefaultNestedDelimiter}
	for _, o := range opts {
		o(&cfg)
	}

	if !path.IsAbs(prefix) {
		return nil, fmt.Errorf("prefix %q: %w", prefix, ErrPrefixNotAbsolute)
	}

	chain := []Source{
		newInitSource(cfg.values, cfg.caseSensitive),
		newEnvSource(cfg.envPrefix, cfg.delim, cfg.caseSensitive),
	}
	if cfg.dotenvPath != "" {
		chain = append(chain, newDotenvSource(cfg.dotenvPath, cfg.delim, cfg.caseSensitive))
	}
	if cfg.yamlPath != "" {
		ys, err := newYAMLSource(cfg.yamlPath, cfg.caseSensitive)
		if err != nil {
			return nil, err
		}
		chain = append(chain, ys)
	}

	store := cfg.store
	if store == nil {
		store = paramstore.NewSSM()
	}
	chain = append(chain, newSSMSource(ctx, store, prefix, cfg.delim, cfg.caseSensitive))

	if cfg.secretsDir != "" {
		chain = append(chain, newSecretsSource(cfg.secretsDir, cfg.delim, cfg.caseSensitive))
	}

	return &Loader{fields: fields, sources: chain, validate: cfg.validate}, nil
}

// Load resolves every declared field and unmarshals the merged tree into
// dst, which must be a pointer to a struct tagged with `koanf` tags.
// Fields absent from every source are left untouched, so dst may be
// pre-filled with defaults.
func (l *Loader) Load(dst any) error {
	merged := make(map[string]any, len(l.fields))
	for _, f := range l.fields {
		for _, src := range l.sources {
			v, ok, err := src.Resolve(f)
			if err != nil {
				return fmt.Errorf("resolve %q from %s source: %w", f.Name, src.Name(), err)
			}
			if ok {
				merged[f.Name] = v
				break
			}
		}
	}

	k := koanf.New(".")
	if err := k.Load(confmap.Provider(merged, "."), nil); err != nil {
		return fmt.Errorf("assemble settings tree: %w", err)
	}
	if err := k.Unmarshal("", dst); err != nil {
		return fmt.Errorf("unmarshal settings: %w", err)
	}

	if l.validate {
		if err := validateStruct(dst); err != nil {
			return fmt.Errorf("validate settings: %w", err)
		}
	}
	return nil
}
