package ssmsettings

import "strings"

// initSource serves programmatically supplied values, the head of the
// chain.  Values are used exactly as given; JSON decoding and delimiter
// explosion do not apply.
type initSource struct {
	values        map[string]any
	caseSensitive bool
}

func newInitSource(values map[string]any, caseSensitive bool) *initSource {
	folded := make(map[string]any, len(values))
	for k, v := range values {
		if !caseSensitive {
			k = strings.ToLower(k)
		}
		folded[k] = v
	}
	return &initSource{values: folded, caseSensitive: caseSensitive}
}

func (s *initSource) Name() string { return "init" }

func (s *initSource) Resolve(f Field) (any, bool, error) {
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
