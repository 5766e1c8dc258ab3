// paramstore/vault.go
//
// HashiCorp Vault KV v2 backend for the Store contract.
//
// Layout convention
// -----------------
// Secrets under <mount>/<prefix> are walked recursively.  Within one
// secret, the data key "value" maps to the secret's own relative path;
// any other data key maps to <relative path>/<key>.  So the secret
// "database" with data {"value": "x"} yields key "database", while data
// {"user": "a", "pass": "b"} yields "database/user" and "database/pass".
// A secret sitting exactly at the prefix has no relative path, so its
// "value" entry is skipped, matching how the SSM backend drops the
// prefix parameter itself.
package paramstore

import (
	"context"
	"fmt"
	"os"
	"path"
	"strings"

	vault "github.com/hashicorp/vault/api"
)

// logicalAPI is the slice of Vault's logical client the backend needs.
// *vault.Logical satisfies it; tests substitute a canned tree.
type logicalAPI interface {
	ListWithContext(ctx context.Context, path string) (*vault.Secret, error)
	ReadWithContext(ctx context.Context, path string) (*vault.Secret, error)
}

// Vault fetches parameters from a KV v2 mount.  Safe for concurrent use.
type Vault struct {
	mount   string
	logical logicalAPI
}

// NewVault builds a client from the usual environment (VAULT_ADDR, and
// VAULT_TOKEN with a ~/.vault-token fallback).  mount defaults to
// "secret".
func NewVault(mount string) (*Vault, error) {
	cfg := vault.DefaultConfig()
	if err := cfg.ReadEnvironment(); err != nil {
		return nil, fmt.Errorf("vault env cfg: %w", err)
	}

	cli, err := vault.NewClient(cfg)
	if err != nil {
		return nil, fmt.Errorf("vault api: %w", err)
	}
	if tok := os.Getenv("VAULT_TOKEN"); tok != "" {
		cli.SetToken(tok)
	}

	return &Vault{mount: mountOrDefault(mount), logical: cli.Logical()}, nil
}

// NewVaultWithLogical injects a prebuilt logical client, for tests and
// for callers that manage their own Vault session.
func NewVaultWithLogical(mount string, l logicalAPI) *Vault {
	return &Vault{mount: mountOrDefault(mount), logical: l}
}

func mountOrDefault(mount string) string {
	if mount == "" {
		return "secret"
	}
	return mount
}

// Fetch walks the KV v2 subtree under prefix and flattens it per the
// package layout convention.
func (v *Vault) Fetch(ctx context.Context, prefix string, caseSensitive bool) (map[string]string, error) {
	out := make(map[string]string)
	if err := v.walk(ctx, strings.Trim(prefix, "/"), prefix, caseSensitive, out); err != nil {
		return nil, err
	}
	return out, nil
}

// walk lists one directory level and recurses into sub-folders.  Vault
// marks folders with a trailing slash in LIST results.
func (v *Vault) walk(ctx context.Context, dir, prefix string, caseSensitive bool, out map[string]string) error {
	list, err := v.logical.ListWithContext(ctx, path.Join(v.mount, "metadata", dir))
	if err != nil {
		return fmt.Errorf("vault list %s: %w", dir, err)
	}
	if list == nil {
		return nil
	}

	keys, _ := list.Data["keys"].([]any)
	for _, raw := range keys {
		name, _ := raw.(string)
		if name == "" {
			continue
		}
		if strings.HasSuffix(name, "/") {
			if err := v.walk(ctx, path.Join(dir, strings.TrimSuffix(name, "/")), prefix, caseSensitive, out); err != nil {
				return err
			}
			continue
		}

		data, err := v.read(ctx, path.Join(dir, name))
		if err != nil {
			return err
		}

		rel := RelativeKey("/"+path.Join(dir, name), prefix)
		for dk, dv := range data {
			s, ok := dv.(string)
			if !ok {
				continue
			}
			key := rel
			switch {
			case rel == "" && dk == "value":
				// The prefix itself has no relative key to bind.
				continue
			case rel == "":
				key = dk
			case dk != "value":
				key = rel + "/" + dk
			}
			if !caseSensitive {
				key = strings.ToLower(key)
			}
			out[key] = s
		}
	}
	return nil
}

// read returns one secret's KV v2 payload, unwrapping the data envelope.
func (v *Vault) read(ctx context.Context, secretPath string) (map[string]any, error) {
	sec, err := v.logical.ReadWithContext(ctx, path.Join(v.mount, "data", secretPath))
	if err != nil {
		return nil, fmt.Errorf("vault get %s: %w", secretPath, err)
	}
	if sec == nil {
		return nil, nil
	}
	data, _ := sec.Data["data"].(map[string]any)
	return data, nil
}
