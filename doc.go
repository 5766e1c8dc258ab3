// Package ssmsettings resolves application settings from AWS Systems
// Manager Parameter Store, merged with programmatic values, environment
// variables, a dotenv file, an optional YAML file, and a secrets
// directory.
//
// Context
// -------
// A Loader is built once per settings object.  Construction eagerly
// snapshots every source; in particular it fetches all parameters nested
// under an absolute prefix (decrypting SecureStrings) into one flat
// key/value mapping.  Load then resolves each declared Field against the
// ordered source chain, first source wins, and unmarshals the merged tree
// into the caller's struct through Koanf, which supplies scalar coercion
// ("99" into an int field, and so on).
//
// An unreachable Parameter Store is not fatal.  The fetch degrades to an
// empty snapshot with a warn log, and resolution continues from the other
// sources.  A relative prefix, by contrast, is a programming error and
// fails construction before any network activity.
//
// Usage
// -----
//
//	ldr, err := ssmsettings.New(ctx, "/myapp/prod",
//	        []ssmsettings.Field{
//	                {Name: "listen_addr", Type: ssmsettings.KindString},
//	                {Name: "database", Type: ssmsettings.KindObject},
//	        },
//	        ssmsettings.WithDotenv(".env"),
//	)
//	if err != nil { … }
//
//	var cfg Settings
//	if err := ldr.Load(&cfg); err != nil { … }
//
// Notes
// -----
//   - Oxford commas, two spaces after periods.
//   - Construction is synchronous and single-threaded; each Loader owns
//     its snapshots and never mutates them after New returns.
package ssmsettings
