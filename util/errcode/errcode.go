// Package errcode carries a stable machine-readable code across service
// boundaries so controllers can map failures to HTTP statuses without
// string matching.
package errcode

import "errors"

type Code string

type codedError struct{ code Code }

func (e codedError) Error() string { return string(e.code) }
func (e codedError) Code() Code    { return e.code }

func New(c Code) error { return codedError{code: c} }

// Of extracts the code from err, or "" when err carries none.
func Of(err error) Code {
	var ce interface{ Code() Code }
	if errors.As(err, &ce) {
		return ce.Code()
	}
	return ""
}
