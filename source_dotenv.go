package ssmsettings

import (
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

// newDotenvSource reads a dotenv file into a flat snapshot.  A missing or
// unreadable file is not an error; the source simply contributes nothing,
// matching how a conventional deployment treats an optional .env.
func newDotenvSource(path, delim string, caseSensitive bool) *flatSource {
	vars, err := godotenv.Read(path)
	if err != nil {
		zap.S().Debugw("dotenv file not loaded", "file", path, "err", err)
		vars = map[string]string{}
	}
	return &flatSource{
		resolver: resolver{
			vars:          foldVars(vars, caseSensitive),
			delim:         delim,
			caseSensitive: caseSensitive,
		},
		name: "dotenv",
	}
}
