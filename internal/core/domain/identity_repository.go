package domain

import "context"

// IdentityRepository is the abstraction for any kind of database intended to
// persist the identity hierarchy mirror: identities, key books, key pages
// and keys.
//
// Every GetXByY lookup returns a nil entity, not an error, when no row
// matches: absence is a first-class outcome.
type IdentityRepository interface {
	// AddIdentity inserts a new identity mirror row and returns its id.
	AddIdentity(ctx context.Context, identity *Identity) (uint64, error)
	// GetIdentityByURL returns the identity with the given URL, active or not.
	GetIdentityByURL(ctx context.Context, url string) (*Identity, error)
	// GetIdentityByID ...
	GetIdentityByID(ctx context.Context, id uint64) (*Identity, error)
	// GetAllIdentities returns identities, active-only unless includeInactive.
	GetAllIdentities(ctx context.Context, includeInactive bool) ([]Identity, error)
	// DeactivateIdentity soft-deletes an identity row.
	DeactivateIdentity(ctx context.Context, url string) error
	// DeleteIdentity hard-deletes an identity row, used to roll back a
	// speculative insert after an on-chain rejection.
	DeleteIdentity(ctx context.Context, url string) error

	// AddKeyBook ...
	AddKeyBook(ctx context.Context, book *KeyBook) (uint64, error)
	// GetKeyBookByURL ...
	GetKeyBookByURL(ctx context.Context, url string) (*KeyBook, error)
	// GetKeyBooksByIdentity returns all key books owned by an identity.
	GetKeyBooksByIdentity(ctx context.Context, identityID uint64) ([]KeyBook, error)
	// DeleteKeyBook ...
	DeleteKeyBook(ctx context.Context, url string) error

	// AddKeyPage ...
	AddKeyPage(ctx context.Context, page *KeyPage) (uint64, error)
	// GetKeyPageByURL ...
	GetKeyPageByURL(ctx context.Context, url string) (*KeyPage, error)
	// GetKeyPagesByKeyBook returns all pages of a key book.
	GetKeyPagesByKeyBook(ctx context.Context, keyBookID uint64) ([]KeyPage, error)
	// UpdateKeyPageVersion records the last version counter seen on-chain.
	// The stored value is informational; signers always re-fetch.
	UpdateKeyPageVersion(ctx context.Context, url string, version uint64) error
	// DeleteKeyPage ...
	DeleteKeyPage(ctx context.Context, url string) error

	// AddKey ...
	AddKey(ctx context.Context, key *Key) (uint64, error)
	// GetKeysByKeyPage returns all keys of a page.
	GetKeysByKeyPage(ctx context.Context, keyPageID uint64) ([]Key, error)
	// GetDefaultKey returns the page's default key, nil when none is flagged.
	GetDefaultKey(ctx context.Context, keyPageID uint64) (*Key, error)
	// SetDefaultKey flags the given key as the page default, clearing the
	// flag on its siblings.
	SetDefaultKey(ctx context.Context, keyPageID, keyID uint64) error
}
