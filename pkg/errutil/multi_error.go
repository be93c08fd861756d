// Package errutil contains helpers for combining errors.
package errutil

import "strings"

// Multi combines errors into one. Nil errors are dropped; if nothing remains
// the result is nil, and a single remaining error is returned as is. Errors
// returned by Multi are flattened when passed to Multi again.
func Multi(errs ...error) error {
	var nonNil multiError
	for _, err := range errs {
		switch err := err.(type) {
		case nil:
		case multiError:
			nonNil = append(nonNil, err...)
		default:
			nonNil = append(nonNil, err)
		}
	}
	switch len(nonNil) {
	case 0:
		return nil
	case 1:
		return nonNil[0]
	default:
		return nonNil
	}
}

type multiError []error

func (me multiError) Error() string {
	var sb strings.Builder
	sb.WriteString("multiple errors: ")
	for i, e := range me {
		if i > 0 {
			sb.WriteString("; ")
		}
		sb.WriteString(e.Error())
	}
	return sb.String()
}

// Unwrap makes errors.Is and errors.As look into every combined error.
func (me multiError) Unwrap() []error { return me }
