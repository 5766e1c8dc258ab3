package ssmsettings

import (
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
)

// newSecretsSource reads a directory of secret files into a flat
// snapshot: each regular file's name is the key, its trimmed contents the
// value.  This is the usual container-orchestrator layout, one mounted
// file per secret.  A missing directory contributes nothing.
func newSecretsSource(dir, delim string, caseSensitive bool) *flatSource {
	vars := map[string]string{}
	entries, err := os.ReadDir(dir)
	if err != nil {
		zap.S().Debugw("secrets directory not read", "dir", dir, "err", err)
		entries = nil
	}
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		data, err := os.ReadFile(filepath.Join(dir, e.Name()))
		if err != nil {
			zap.S().Debugw("secret file not read", "file", e.Name(), "err", err)
			continue
		}
		vars[e.Name()] = strings.TrimSpace(string(data))
	}
	return &flatSource{
		resolver: resolver{
			vars:          foldVars(vars, caseSensitive),
			delim:         delim,
			caseSensitive: caseSensitive,
		},
		name: "secrets",
	}
}
