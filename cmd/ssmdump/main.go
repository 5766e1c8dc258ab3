// cmd/ssmdump/main.go
//
// ssmdump – print every parameter nested under a prefix.
//
// Workflow
// --------
//
//  1. Load env vars (optional .env in the working directory).
//
//  2. Overlay SSMDUMP_* environment defaults through Koanf, then let
//     command-line flags win.
//
//  3. Start the structured logger (tees to console when running in a
//     TTY).
//
//  4. Fetch the subtree from the chosen backend (ssm or vault) and print
//     the flat mapping, sorted by key.
//
// A fetch failure here is fatal: unlike settings construction, a dump
// exists to inspect the store, so degrading to empty output would only
// hide the fault.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"sort"
	"strings"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/providers/env"
	koanf "github.com/knadh/koanf/v2"

	"github.com/yanizio/ssmsettings/internal/logger"
	"github.com/yanizio/ssmsettings/paramstore"
)

const envPrefix = "SSMDUMP_"

// runningInTTY returns true when stdout is a character device.
func runningInTTY() bool {
	fi, err := os.Stdout.Stat()
	if err != nil {
		return false
	}
	return fi.Mode()&os.ModeCharDevice != 0
}

func main() {
	_ = godotenv.Load()

	// SSMDUMP_PREFIX, SSMDUMP_BACKEND, … become flag defaults.
	k := koanf.New(".")
	if err := k.Load(env.Provider(envPrefix, ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, envPrefix))
	}), nil); err != nil {
		log.Fatalf("read environment: %v", err)
	}

	var (
		prefix        = flag.String("prefix", k.String("prefix"), "absolute parameter prefix, e.g. /myapp/prod")
		backend       = flag.String("backend", strOr(k.String("backend"), "ssm"), "parameter backend: ssm or vault")
		mount         = flag.String("mount", strOr(k.String("mount"), "secret"), "vault KV v2 mount (vault backend only)")
		caseSensitive = flag.Bool("case-sensitive", k.Bool("case_sensitive"), "keep parameter key casing")
		debug         = flag.Bool("debug", k.Bool("debug"), "log at debug level")
	)
	flag.Parse()

	if *prefix == "" || !strings.HasPrefix(*prefix, "/") {
		fmt.Fprintln(os.Stderr, "ssmdump: -prefix must be an absolute path")
		flag.Usage()
		os.Exit(2)
	}

	wd, _ := os.Getwd()
	zlog, err := logger.New(wd, runningInTTY(), *debug)
	if err != nil {
		log.Fatalf("start logger: %v", err)
	}

	var store paramstore.Store
	switch *backend {
	case "ssm":
		store = paramstore.NewSSM()
	case "vault":
		store, err = paramstore.NewVault(*mount)
		if err != nil {
			zlog.Fatalw("vault client", "err", err)
		}
	default:
		zlog.Fatalw("unknown backend", "backend", *backend)
	}

	vars, err := store.Fetch(context.Background(), *prefix, *caseSensitive)
	if err != nil {
		zlog.Fatalw("fetch parameters", "prefix", *prefix, "err", err)
	}

	keys := make([]string, 0, len(vars))
	for key := range vars {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		fmt.Printf("%s=%s\n", key, vars[key])
	}

	zlog.Infow("parameters dumped", "prefix", *prefix, "count", len(vars))
}

func strOr(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}
