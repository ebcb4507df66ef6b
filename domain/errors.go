package domain

import "errors"

var (
	// ErrInternalServerError will throw if any the Internal Server Error happen
	ErrInternalServerError = errors.New("internal server error")
	// ErrNotFound will throw if the requested tree, comment or parent is not exists
	ErrNotFound = errors.New("your requested item is not found")
	// ErrConflict will throw if the mutation violates a tree invariant
	ErrConflict = errors.New("operation conflicts with the current tree state")
	// ErrForbidden will throw if the caller is not allowed to touch the item
	ErrForbidden = errors.New("you are not allowed to modify this item")
	// ErrBadParamInput will throw if the given request-body or params is not valid
	ErrBadParamInput = errors.New("given param is not valid")
	// ErrStoreUnavailable will throw if the backing store fails transiently
	ErrStoreUnavailable = errors.New("storage backend is unavailable")
)
