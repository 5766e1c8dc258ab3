// resolver.go
//
// Per-source value resolution and override engine.
//
// Context
// -------
// Every flat source (environment, dotenv, Parameter Store, secrets dir)
// is a snapshot of string key/value pairs plus the same three steps:
//
//  1. Lookup    – try the field's declared name, then its aliases, with
//     case folding matching the snapshot.
//  2. Decode    – complex fields carry JSON; decode errors are fatal
//     unless the field is a union that may accept the raw scalar.
//  3. Override  – keys segmented by the nested delimiter ("foo/bar")
//     explode into a nested mapping that deep-merges over the decoded
//     value, override winning at every level.
//
// The engine is pure in-memory computation.  Snapshots are built once at
// Loader construction and never mutated afterward.
package ssmsettings

import (
	"encoding/json"
	"strings"

	"go.uber.org/zap"
)

// resolver is the shared engine embedded by every flat source.
type resolver struct {
	vars          map[string]string
	delim         string // nested delimiter, "" disables explosion
	caseSensitive bool
}

// fold lower-cases s when the resolver is case-insensitive.  Snapshot keys
// are folded the same way at construction, so lookups stay consistent.
func (r *resolver) fold(s string) string {
	if r.caseSensitive {
		return s
	}
	return strings.ToLower(s)
}

// foldVars returns vars with every key folded.  Shared by the source
// constructors.
func foldVars(vars map[string]string, caseSensitive bool) map[string]string {
	if caseSensitive {
		return vars
	}
	out := make(map[string]string, len(vars))
	for k, v := range vars {
		out[strings.ToLower(k)] = v
	}
	return out
}

// FieldValue returns the raw value for the first matching candidate key
// (declared name, then aliases), the key that matched, and whether any
// candidate matched at all.
func (r *resolver) FieldValue(f Field) (value, key string, found bool) {
	for _, name := range f.names() {
		k := r.fold(name)
		if v, ok := r.vars[k]; ok {
			return v, k, true
		}
	}
	return "", "", false
}

// Finalize turns a raw lookup result into the value this source
// contributes for the field, or reports the field absent.
//
// Complex fields with no direct value may still be assembled entirely
// from delimiter-segmented keys.  Complex fields with a direct value are
// JSON-decoded, and when the decoded value is a mapping, the exploded
// overrides are merged on top.  Scalar fields pass the raw value through
// untouched; coercion happens later, when the merged tree is
// unmarshalled.
func (r *resolver) Finalize(f Field, raw, key string, found bool) (any, bool, error) {
	isComplex, allowFailure := f.classify()
	if !isComplex {
		if !found {
			return nil, false, nil
		}
		return raw, true, nil
	}

	if !found {
		if built := r.explode(f); len(built) > 0 {
			return built, true, nil
		}
		return nil, false, nil
	}

	var decoded any
	if err := json.Unmarshal([]byte(raw), &decoded); err != nil {
		if !allowFailure {
			return nil, false, &ParseError{Field: f.Name, Key: key, Err: err}
		}
		zap.S().Debugw("union field kept raw value after JSON decode failure",
			"field", f.Name, "key", key)
		return raw, true, nil
	}

	if m, ok := decoded.(map[string]any); ok {
		return deepMerge(m, r.explode(f)), true, nil
	}
	// Already-scalar JSON; nested overrides do not apply.
	return decoded, true, nil
}

// explode collects every key of the form <name><delim><rest>, splits rest
// on the delimiter, and builds the nested override mapping for the field.
// Intermediate levels are created as needed; the last segment receives
// the value.
func (r *resolver) explode(f Field) map[string]any {
	if r.delim == "" {
		return nil
	}
	out := map[string]any{}
	for _, name := range f.names() {
		prefix := r.fold(name) + r.delim
		for k, v := range r.vars {
			if !strings.HasPrefix(k, prefix) {
				continue
			}
			segs := strings.Split(k[len(prefix):], r.delim)
			cur := out
			for _, s := range segs[:len(segs)-1] {
				next, ok := cur[s].(map[string]any)
				if !ok {
					next = map[string]any{}
					cur[s] = next
				}
				cur = next
			}
			cur[segs[len(segs)-1]] = v
		}
	}
	return out
}

// deepMerge overlays override onto base, recursing where both sides are
// mappings.  A non-mapping override always replaces the base value.  base
// is not mutated.
func deepMerge(base, override map[string]any) map[string]any {
	out := make(map[string]any, len(base))
	for k, v := range base {
		out[k] = v
	}
	for k, ov := range override {
		if bm, ok := out[k].(map[string]any); ok {
			if om, ok := ov.(map[string]any); ok {
				out[k] = deepMerge(bm, om)
				continue
			}
		}
		out[k] = ov
	}
	return out
}
