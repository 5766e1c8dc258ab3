package ssmsettings

import (
	"fmt"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	koanf "github.com/knadh/koanf/v2"
)

// yamlSource serves top-level keys from a YAML file, the static file
// layer of a conventional deployment.  Values come back already
// structured, so neither JSON decoding nor delimiter explosion applies.
type yamlSource struct {
	values        map[string]any
	caseSensitive bool
}

// newYAMLSource parses the file eagerly.  Unlike the dotenv and secrets
// sources, the file was named explicitly, so a read or parse failure is a
// construction error.
func newYAMLSource(path string, caseSensitive bool) (*yamlSource, error) {
	k := koanf.New(".")
	if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
		return nil, fmt.Errorf("yaml source %s: %w", path, err)
	}

	values := map[string]any{}
	for key, v := range k.Raw() {
		if !caseSensitive {
			key = strings.ToLower(key)
		}
		values[key] = v
	}
	return &yamlSource{values: values, caseSensitive: caseSensitive}, nil
}

func (s *yamlSource) Name() string { return "yaml" }

func (s *yamlSource) Resolve(f Field) (any, bool, error) {
	for _, name := range f.names() {
		if !s.caseSensitive {
			name = strings.ToLower(name)
		}
		if v, ok := s.values[name]; ok {
			return v, true, nil
		}
	}
	return nil, false, nil
}
