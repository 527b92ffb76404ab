package lexicon

import "errors"

var (
	// ErrInvalidToken is returned for a root that is not three Arabic letters.
	ErrInvalidToken = errors.New("invalid root token")
	// ErrNotFound is returned when an operation targets an unknown root.
	ErrNotFound = errors.New("root not found")
	// ErrAlreadyExists is returned when adding a root or scheme twice.
	ErrAlreadyExists = errors.New("already exists")
	// ErrUnknownScheme is returned when removing a scheme that is not registered.
	ErrUnknownScheme = errors.New("scheme not found")
	// ErrInvalidScheme is returned for a scheme name that is not made of
	// Arabic letters, or a category spanning more than one line.
	ErrInvalidScheme = errors.New("invalid scheme")
)
