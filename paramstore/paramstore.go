// Package paramstore abstracts "list every key/value nested under an
// absolute prefix" over concrete remote stores.  The default backend is
// AWS Systems Manager Parameter Store; a HashiCorp Vault KV v2 backend
// satisfies the same contract.
package paramstore

import (
	"context"
	"strings"
)

// Store is the fetch contract every remote backend satisfies.  Fetch
// either returns the full flat mapping under prefix, keyed by relative
// path (lower-cased unless caseSensitive), or an error describing why the
// store could not be read.  Degrading to an empty mapping on failure is
// the caller's decision, not the backend's.
type Store interface {
	Fetch(ctx context.Context, prefix string, caseSensitive bool) (map[string]string, error)
}

// RelativeKey reduces an absolute parameter name to its path relative to
// prefix.  It returns "" when name is the prefix itself or does not live
// under it.
func RelativeKey(name, prefix string) string {
	prefix = strings.TrimSuffix(prefix, "/")
	if name == prefix || !strings.HasPrefix(name, prefix+"/") {
		return ""
	}
	return strings.TrimPrefix(name, prefix+"/")
}
