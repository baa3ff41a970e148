package exchange

import "errors"

// Caller-input failures. All of these are raised before any request is sent
// and are never retried.
var (
	ErrNotPersisted      = errors.New("entity has not been created on the server yet")
	ErrAlreadyPersisted  = errors.New("entity already exists on the server")
	ErrUnsavedChanges    = errors.New("entity has unsaved changes, update or discard them first")
	ErrInvalidScope      = errors.New("unknown notification scope")
	ErrMissingFolderID   = errors.New("destination folder id is required")
	ErrInvalidFolderKind = errors.New("unknown folder kind")
	ErrInvalidEventType  = errors.New("operation is not valid for this event type")
)

// ErrIncompleteResponse reports a response that claims success but lacks data
// the operation needs, e.g. a move that names no moved item. Fatal, not
// retried.
var ErrIncompleteResponse = errors.New("server reported success but returned incomplete data")
