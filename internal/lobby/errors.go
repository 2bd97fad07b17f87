// internal/lobby/errors.go
package lobby

import "errors"

var (
	// ErrInvalidSpec rejects a malformed create request before any state
	// mutation.
	ErrInvalidSpec = errors.New("invalid lobby spec")
	// ErrRoomNotFound means the requested lobby id does not exist.
	ErrRoomNotFound = errors.New("lobby not found")
	// ErrRoomFull means both teams are at capacity.
	ErrRoomFull = errors.New("lobby is full")
)
