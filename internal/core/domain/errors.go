package domain

import "errors"

var (
	// ErrInvalidName is thrown for identity or token names not matching the
	// network's naming rules.
	ErrInvalidName = errors.New("name must contain only letters, digits or hyphens, max 64 chars")
	// ErrInvalidSymbol is thrown for token symbols not matching 2-8 uppercase alphanumerics.
	ErrInvalidSymbol = errors.New("symbol must be 2-8 uppercase alphanumeric characters")
	// ErrInvalidPrecision ...
	ErrInvalidPrecision = errors.New("precision must be a non-negative integer")
	// ErrMissingURL ...
	ErrMissingURL = errors.New("url must not be empty")
	// ErrMissingIdentity is thrown when a child entity is created without its parent identity.
	ErrMissingIdentity = errors.New("parent identity is required")
	// ErrMissingKeyBook ...
	ErrMissingKeyBook = errors.New("parent key book is required")
	// ErrMissingKeyPage ...
	ErrMissingKeyPage = errors.New("parent key page is required")
	// ErrInvalidPublicKey ...
	ErrInvalidPublicKey = errors.New("public key must not be empty")
	// ErrInvalidAccountKind ...
	ErrInvalidAccountKind = errors.New("account kind must be either lite or identity")
)
