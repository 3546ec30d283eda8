package conversation

import "errors"

var (
	// ErrNotFound is returned when a session does not exist.
	ErrNotFound = errors.New("not found")
	// ErrEmptyMessage is returned for blank chat input.
	ErrEmptyMessage = errors.New("message is empty")
	// ErrBusy is returned when a send is attempted while a reply is still outstanding.
	ErrBusy = errors.New("a reply is still pending")
)
