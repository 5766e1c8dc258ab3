package ssmsettings

import (
	"context"

	"go.uber.org/zap"

	"github.com/yanizio/ssmsettings/paramstore"
)

// newSSMSource fetches every parameter under the prefix once, at
// construction, into a flat snapshot keyed by path relative to the
// prefix.  The store returns a typed result; degrading is decided here:
// an unreachable store logs a warning and yields an empty snapshot, so
// settings resolution continues from the other sources and defaults.
func newSSMSource(ctx context.Context, store paramstore.Store, prefix, delim string, caseSensitive bool) *flatSource {
	vars, err := store.Fetch(ctx, prefix, caseSensitive)
	if err != nil {
		zap.S().Warnw("parameter fetch failed, continuing with empty set",
			"prefix", prefix, "err", err)
		vars = map[string]string{}
	}
	zap.S().Debugw("parameters loaded", "prefix", prefix, "count", len(vars))

	return &flatSource{
		resolver: resolver{
			vars:          vars, // keys already folded by the store
			delim:         delim,
			caseSensitive: caseSensitive,
		},
		name: "ssm",
	}
}
