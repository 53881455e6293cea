package domain

import (
	"regexp"
	"time"
)

var (
	nameRegexp   = regexp.MustCompile(`^[a-zA-Z0-9-]{1,64}$`)
	symbolRegexp = regexp.MustCompile(`^[A-Z0-9]{2,8}$`)
)

// IsValidName reports whether the given string is a valid identity or token
// name for the network: letters, digits and hyphens, at most 64 characters.
func IsValidName(name string) bool {
	return nameRegexp.MatchString(name)
}

// IsValidSymbol reports whether the given string is a valid token symbol:
// 2 to 8 uppercase alphanumeric characters.
func IsValidSymbol(symbol string) bool {
	return symbolRegexp.MatchString(symbol)
}

// Identity is the local mirror row of an ADI, the root of a hierarchy of key
// books and accounts. Rows are soft-deleted by clearing the Active flag.
type Identity struct {
	ID        uint64 `badgerhold:"key"`
	URL       string `badgerholdIndex:"URL"`
	Name      string
	CreatedAt time.Time
	Active    bool
}

// NewIdentity returns an Identity mirror row after validating its name.
func NewIdentity(url, name string) (*Identity, error) {
	if url == "" {
		return nil, ErrMissingURL
	}
	if !IsValidName(name) {
		return nil, ErrInvalidName
	}
	return &Identity{
		URL:       url,
		Name:      name,
		CreatedAt: time.Now(),
		Active:    true,
	}, nil
}

// KeyBook groups one or more key pages under an identity. PublicKeyHash is
// the hash of the book's first key and is informational only.
type KeyBook struct {
	ID            uint64 `badgerhold:"key"`
	URL           string `badgerholdIndex:"URL"`
	Name          string
	IdentityID    uint64 `badgerholdIndex:"IdentityID"`
	PublicKeyHash string
	Active        bool
	CreatedAt     time.Time
}

// NewKeyBook ...
func NewKeyBook(url, name string, identityID uint64, publicKeyHash string) (*KeyBook, error) {
	if url == "" {
		return nil, ErrMissingURL
	}
	if identityID == 0 {
		return nil, ErrMissingIdentity
	}
	return &KeyBook{
		URL:           url,
		Name:          name,
		IdentityID:    identityID,
		PublicKeyHash: publicKeyHash,
		Active:        true,
		CreatedAt:     time.Now(),
	}, nil
}

// KeyPage is one page of a key book. LastKnownVersion mirrors the network's
// replay-protection counter as of the last query; it is informational only
// and must be re-fetched immediately before signing, never trusted across
// submissions.
type KeyPage struct {
	ID               uint64 `badgerhold:"key"`
	URL              string `badgerholdIndex:"URL"`
	KeyBookID        uint64 `badgerholdIndex:"KeyBookID"`
	LastKnownVersion uint64
	Active           bool
	CreatedAt        time.Time
}

// NewKeyPage ...
func NewKeyPage(url string, keyBookID uint64) (*KeyPage, error) {
	if url == "" {
		return nil, ErrMissingURL
	}
	if keyBookID == 0 {
		return nil, ErrMissingKeyBook
	}
	return &KeyPage{
		URL:              url,
		KeyBookID:        keyBookID,
		LastKnownVersion: 1,
		Active:           true,
		CreatedAt:        time.Now(),
	}, nil
}

// Key is one public key of a key page. The private key, when this wallet
// controls it, lives in the secure store under the page URL and is never
// mirrored here; HasPrivateKey only records that it exists.
type Key struct {
	ID            uint64 `badgerhold:"key"`
	PublicKey     string
	PublicKeyHash string `badgerholdIndex:"PublicKeyHash"`
	KeyPageID     uint64 `badgerholdIndex:"KeyPageID"`
	HasPrivateKey bool
	IsDefault     bool
	CreatedAt     time.Time
}

// NewKey ...
func NewKey(publicKey, publicKeyHash string, keyPageID uint64) (*Key, error) {
	if publicKey == "" || publicKeyHash == "" {
		return nil, ErrInvalidPublicKey
	}
	if keyPageID == 0 {
		return nil, ErrMissingKeyPage
	}
	return &Key{
		PublicKey:     publicKey,
		PublicKeyHash: publicKeyHash,
		KeyPageID:     keyPageID,
		CreatedAt:     time.Now(),
	}, nil
}
