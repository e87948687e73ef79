package main

import "errors"

// ErrBookNotFound is returned when no catalog entry equals the requested book.
var ErrBookNotFound = errors.New("book not found in the library")

// ValidationError names the input field which was empty or absent.
type ValidationError string

func (v ValidationError) Error() string {
	return string(v) + " cannot be null or empty"
}
