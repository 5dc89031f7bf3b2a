package todo

import "errors"

type notFoundError struct{ id string }

func (e notFoundError) Error() string { return "todo not found: " + e.id }

// ErrNotFound returns an error for a todo id that is not in the list.
func ErrNotFound(id string) error { return notFoundError{id: id} }

// IsNotFound reports whether err indicates a missing todo (404).
func IsNotFound(err error) bool {
	var nf notFoundError
	return errors.As(err, &nf)
}

// invalidError signals a request the service refuses, mapped to 400.
type invalidError struct{ msg string }

func (e invalidError) Error() string { return e.msg }

// ErrInvalid constructs an invalidError.
func ErrInvalid(msg string) error { return invalidError{msg: msg} }

// IsInvalid reports whether err indicates a rejected request.
func IsInvalid(err error) bool {
	var iv invalidError
	return errors.As(err, &iv)
}
