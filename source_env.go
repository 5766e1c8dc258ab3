package ssmsettings

import (
	"os"
	"strings"
)

// envSource snapshots the process environment at construction.  An
// optional prefix narrows the snapshot to matching variables, with the
// prefix stripped before lookup.
//
// The snapshot is taken raw rather than through a tree-building provider
// because the engine needs the pre-explosion flat keys: nesting is the
// resolver's job, applied per field with the shared delimiter.
func newEnvSource(prefix, delim string, caseSensitive bool) *flatSource {
	vars := map[string]string{}
	for _, kv := range os.Environ() {
		k, v, ok := strings.Cut(kv, "=")
		if !ok {
			continue
		}
		if prefix != "" {
			if !strings.HasPrefix(k, prefix) {
				continue
			}
			k = strings.TrimPrefix(k, prefix)
		}
		vars[k] = v
	}
	return &flatSource{
		resolver: resolver{
			vars:          foldVars(vars, caseSensitive),
			delim:         delim,
			caseSensitive: caseSensitive,
		},
		name: "env",
	}
}
