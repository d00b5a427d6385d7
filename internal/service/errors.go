// Package service implements the listing writes, the listing and detail
// queries and the searches. Every multi-row write runs in one
// transaction.
package service

import (
	"errors"
	"fmt"
)

// Past-tense operation names used in failure messages.
const (
	OpCreate = "listed"
	OpUpdate = "updated"
	OpDelete = "deleted"
)

// ListingError reports a failed venue or artist write. Nothing was
// persisted; Err is the logged cause.
type ListingError struct {
	Type string
	Name string
	Op   string
	Err  error
}

// Error is the message shown to the user.
func (e *ListingError) Error() string {
	if e.Name == "" {
		return fmt.Sprintf("An error occurred. %s could not be %s.", e.Type, e.Op)
	}
	return fmt.Sprintf("An error occurred. %s %s could not be %s.", e.Type, e.Name, e.Op)
}

func (e *ListingError) Unwrap() error { return e.Err }

// ErrShowNotListed is returned for every failed show insert.
var ErrShowNotListed = errors.New("Something went wrong. Make sure the Artist and Venue ID are correct.")
