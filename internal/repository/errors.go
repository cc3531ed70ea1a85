// Package repository provides MongoDB-backed persistence for users and
// products.  Sentinel errors let higher layers distinguish failure scenarios
// without inspecting message text: handlers translate ErrNotFound into 404
// and ErrEmailExists into 409.
package repository

import "errors"

// ErrNotFound is returned when a lookup does not resolve to a document.
var ErrNotFound = errors.New("not found")

// ErrEmailExists is returned when a user insert collides with the unique
// email index, or when a pre-insert lookup finds the email already taken.
var ErrEmailExists = errors.New("email already exists")
