// resolver_test.go
//
// Unit-tests for the per-source resolution engine: candidate lookup,
// complexity classification, delimiter explosion, and deep merge.
package ssmsettings

import (
	"errors"
	"reflect"
	"testing"
)

func TestClassify(t *testing.T) {
	cases := []struct {
		name      string
		field     Field
		isComplex bool
		allowFail bool
	}{
		{"scalar string", Field{Name: "a", Type: KindString}, false, false},
		{"scalar int", Field{Name: "a", Type: KindInt}, false, false},
		{"object", Field{Name: "a", Type: KindObject}, true, false},
		{"collection", Field{Name: "a", Type: KindCollection}, true, false},
		{"union of scalars", Field{Name: "a", Type: KindUnion, Union: []Kind{KindString, KindInt}}, false, false},
		{"union with object", Field{Name: "a", Type: KindUnion, Union: []Kind{KindObject, KindString}}, true, true},
		{"union with collection", Field{Name: "a", Type: KindUnion, Union: []Kind{KindInt, KindCollection}}, true, true},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			isComplex, allowFail := c.field.classify()
			if isComplex != c.isComplex || allowFail != c.allowFail {
				t.Fatalf("classify() = (%v, %v), want (%v, %v)",
					isComplex, allowFail, c.isComplex, c.allowFail)
			}
		})
	}
}

func TestFieldValue_AliasesAndFolding(t *testing.T) {
	r := &resolver{
		vars:  map[string]string{"db_url": "primary", "database": "aliased"},
		delim: "/",
	}

	val, key, found := r.FieldValue(Field{Name: "DB_URL", Type: KindString, Aliases: []string{"database"}})
	if !found || val != "primary" || key != "db_url" {
		t.Fatalf("FieldValue = (%q, %q, %v), want (primary, db_url, true)", val, key, found)
	}

	// Primary name absent, alias matches.
	val, key, found = r.FieldValue(Field{Name: "dsn", Type: KindString, Aliases: []string{"Database"}})
	if !found || val != "aliased" || key != "database" {
		t.Fatalf("FieldValue = (%q, %q, %v), want (aliased, database, true)", val, key, found)
	}

	if _, _, found = r.FieldValue(Field{Name: "missing", Type: KindString}); found {
		t.Fatal("expected no match for undeclared key")
	}
}

func TestFieldValue_CaseSensitive(t *testing.T) {
	r := &resolver{
		vars:          map[string]string{"Foo": "x"},
		caseSensitive: true,
	}
	if _, _, found := r.FieldValue(Field{Name: "foo", Type: KindString}); found {
		t.Fatal("case-sensitive lookup must not fold")
	}
	if _, _, found := r.FieldValue(Field{Name: "Foo", Type: KindString}); !found {
		t.Fatal("exact-case lookup failed")
	}
}

func TestExplode(t *testing.T) {
	r := &resolver{
		vars: map[string]string{
			"foo/bar":     "1",
			"foo/baz/qux": "2",
			"other/bar":   "3",
			"foo":         "ignored", // no delimiter suffix, not an override
		},
		delim: "/",
	}

	got := r.explode(Field{Name: "foo", Type: KindObject})
	want := map[string]any{
		"bar": "1",
		"baz": map[string]any{"qux": "2"},
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("explode = %#v, want %#v", got, want)
	}
}

func TestExplode_NoDelimiter(t *testing.T) {
	r := &resolver{vars: map[string]string{"foo/bar": "1"}}
	if got := r.explode(Field{Name: "foo", Type: KindObject}); len(got) != 0 {
		t.Fatalf("explode without delimiter = %#v, want empty", got)
	}
}

func TestDeepMerge(t *testing.T) {
	base := map[string]any{
		"a": "base",
		"nested": map[string]any{
			"keep":     "base",
			"override": "base",
		},
	}
	override := map[string]any{
		"nested": map[string]any{"override": "new"},
		"extra":  "new",
	}

	got := deepMerge(base, override)
	want := map[string]any{
		"a": "base",
		"nested": map[string]any{
			"keep":     "base",
			"override": "new",
		},
		"extra": "new",
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("deepMerge = %#v, want %#v", got, want)
	}

	// base must not be mutated.
	if base["nested"].(map[string]any)["override"] != "base" {
		t.Fatal("deepMerge mutated its base argument")
	}
}

func TestDeepMerge_ScalarReplacesMapping(t *testing.T) {
	base := map[string]any{"a": map[string]any{"b": "1"}}
	got := deepMerge(base, map[string]any{"a": "flat"})
	if got["a"] != "flat" {
		t.Fatalf("override scalar should replace mapping, got %#v", got["a"])
	}
}

func TestFinalize_ComplexDecodeAndOverride(t *testing.T) {
	r := &resolver{
		vars: map[string]string{
			"foo":     `{"bar": "xyz123", "keep": "base"}`,
			"foo/bar": "overwritten",
		},
		delim: "/",
	}
	f := Field{Name: "foo", Type: KindObject}

	raw, key, found := r.FieldValue(f)
	val, ok, err := r.Finalize(f, raw, key, found)
	if err != nil || !ok {
		t.Fatalf("Finalize error = %v, ok = %v", err, ok)
	}
	m, isMap := val.(map[string]any)
	if !isMap || m["bar"] != "overwritten" || m["keep"] != "base" {
		t.Fatalf("merged value = %#v", val)
	}
}

func TestFinalize_ComplexFromExplodedOnly(t *testing.T) {
	r := &resolver{
		vars:  map[string]string{"foo/bar": "1"},
		delim: "/",
	}
	val, ok, err := r.Finalize(Field{Name: "foo", Type: KindObject}, "", "", false)
	if err != nil || !ok {
		t.Fatalf("Finalize error = %v, ok = %v", err, ok)
	}
	if !reflect.DeepEqual(val, map[string]any{"bar": "1"}) {
		t.Fatalf("exploded value = %#v", val)
	}
}

func TestFinalize_ComplexDecodeFailureFatal(t *testing.T) {
	r := &resolver{vars: map[string]string{"foo": "{not json"}, delim: "/"}
	f := Field{Name: "foo", Type: KindObject}

	raw, key, found := r.FieldValue(f)
	_, _, err := r.Finalize(f, raw, key, found)
	var perr *ParseError
	if !errors.As(err, &perr) {
		t.Fatalf("err = %v, want *ParseError", err)
	}
	if perr.Field != "foo" {
		t.Fatalf("ParseError.Field = %q, want foo", perr.Field)
	}
}

func TestFinalize_UnionKeepsRawOnDecodeFailure(t *testing.T) {
	r := &resolver{vars: map[string]string{"foo": "plain text"}, delim: "/"}
	f := Field{Name: "foo", Type: KindUnion, Union: []Kind{KindObject, KindString}}

	raw, key, found := r.FieldValue(f)
	val, ok, err := r.Finalize(f, raw, key, found)
	if err != nil || !ok {
		t.Fatalf("Finalize error = %v, ok = %v", err, ok)
	}
	if val != "plain text" {
		t.Fatalf("union fallback = %#v, want raw string", val)
	}
}

func TestFinalize_ScalarJSONPassesThrough(t *testing.T) {
	r := &resolver{vars: map[string]string{"foo": `[1, 2, 3]`}, delim: "/"}
	f := Field{Name: "foo", Type: KindCollection}

	raw, key, found := r.FieldValue(f)
	val, ok, err := r.Finalize(f, raw, key, found)
	if err != nil || !ok {
		t.Fatalf("Finalize error = %v, ok = %v", err, ok)
	}
	if _, isSlice := val.([]any); !isSlice {
		t.Fatalf("decoded collection = %#v, want []any", val)
	}
}

func TestFinalize_SimpleAbsent(t *testing.T) {
	r := &resolver{vars: map[string]string{}, delim: "/"}
	_, ok, err := r.Finalize(Field{Name: "foo", Type: KindString}, "", "", false)
	if err != nil || ok {
		t.Fatalf("absent scalar: ok = %v, err = %v", ok, err)
	}
}
