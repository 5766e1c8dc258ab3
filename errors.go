package ssmsettings

import (
	"errors"
	"fmt"
)

// ErrPrefixNotAbsolute is returned by New when the parameter prefix does
// not start with "/".  A relative prefix is a configuration error, so
// construction fails before any network activity.
var ErrPrefixNotAbsolute = errors.New("parameter prefix must be an absolute path")

// ParseError reports a JSON decode failure for a complex field whose
// declared type does not tolerate raw values.
type ParseError struct {
	Field string // declared field name
	Key   string // flat key the value was read from
	Err   error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse field %q (key %q): %v", e.Field, e.Key, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }
