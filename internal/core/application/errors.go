package application

import "errors"

var (
	// ErrMissingPrivateKey is thrown when no private key is stored for a
	// required signer. It is a recoverable condition distinct from network
	// errors: the remedy is importing or regenerating a key.
	ErrMissingPrivateKey = errors.New("no private key stored for signer address")
	// ErrIdentityNotFound ...
	ErrIdentityNotFound = errors.New("identity not found")
	// ErrKeyBookNotFound ...
	ErrKeyBookNotFound = errors.New("key book not found")
	// ErrKeyPageNotFound ...
	ErrKeyPageNotFound = errors.New("key page not found")
	// ErrNameNotAvailable is thrown by the local availability pre-check.
	// It is a courtesy only: the network remains the source of truth.
	ErrNameNotAvailable = errors.New("name is already in use locally")
	// ErrSymbolNotAvailable ...
	ErrSymbolNotAvailable = errors.New("token symbol is already in use locally")
	// ErrTokenURLNotAvailable ...
	ErrTokenURLNotAvailable = errors.New("token url is already in use locally")
	// ErrZeroAmount ...
	ErrZeroAmount = errors.New("amount must be greater than zero")
	// ErrEmptyData ...
	ErrEmptyData = errors.New("data entry must not be empty")
)
