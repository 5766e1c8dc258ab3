package ssmsettings

// Kind tags the declared type of a settings field.
type Kind int

const (
	KindString Kind = iota
	KindInt
	KindFloat
	KindBool
	KindObject     // nested struct or mapping
	KindCollection // slice, array, or map
	KindUnion      // one of several kinds, branches listed in Field.Union
)

// Field describes one declared settings field.  The Loader consumes a
// static table of these instead of reflecting over the destination struct,
// so the set of resolvable fields is fixed at definition time.
type Field struct {
	Name    string // primary lookup key, also the key in the merged tree
	Type    Kind
	Aliases []string // additional lookup keys, tried after Name
	Union   []Kind   // branch kinds when Type is KindUnion
}

// names returns the candidate lookup keys in priority order.
func (f Field) names() []string {
	return append([]string{f.Name}, f.Aliases...)
}

// classify reports whether the declared type is complex and, when it is,
// whether a JSON decode failure may fall back to the raw string.  Only a
// union with a complex branch tolerates failure: the union may still
// accept the raw scalar through one of its other branches.
func (f Field) classify() (isComplex, allowParseFailure bool) {
	switch f.Type {
	case KindObject, KindCollection:
		return true, false
	case KindUnion:
		for _, b := range f.Union {
			if b == KindObject || b == KindCollection {
				return true, true
			}
		}
	}
	return false, false
}
