package ssmsettings

// Source is one node in the ordered settings chain.  The Loader walks the
// chain per field and stops at the first source that reports the field
// present; later sources never override that decision, not even for a
// sub-field.
type Source interface {
	// Name identifies the source in logs and error messages.
	Name() string

	// Resolve returns the source's finalized value for field, or
	// ok=false when the source has nothing for it.
	Resolve(field Field) (value any, ok bool, err error)
}

// flatSource adapts a resolver snapshot into a Source.
type flatSource struct {
	resolver
	name string
}

func (s *flatSource) Name() string { return s.name }

func (s *flatSource) Resolve(f Field) (any, bool, error) {
	raw, key, found := s.FieldValue(f)
	return s.Finalize(f, raw, key, found)
}
