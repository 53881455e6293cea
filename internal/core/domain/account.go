package domain

import (
	"strings"
	"time"
)

// AccountKind discriminates self-sovereign lite accounts from accounts
// anchored under an identity's key hierarchy.
type AccountKind int

const (
	AccountKindLite AccountKind = iota
	AccountKindIdentity
)

func (k AccountKind) String() string {
	switch k {
	case AccountKindLite:
		return "lite"
	case AccountKindIdentity:
		return "identity"
	default:
		return "unknown"
	}
}

// TokenAccount is the mirror row of an on-chain token account. Lite accounts
// have no parent identity; identity-owned ones reference their identity and,
// optionally, the key book/page authorized to sign for them.
type TokenAccount struct {
	ID         uint64 `badgerhold:"key"`
	Address    string `badgerholdIndex:"Address"`
	Kind       AccountKind
	IdentityID uint64 `badgerholdIndex:"IdentityID"`
	TokenURL   string
	KeyBookID  uint64
	KeyPageID  uint64
	Metadata   string
	Active     bool
	CreatedAt  time.Time
}

// NewTokenAccount ...
func NewTokenAccount(
	address string, kind AccountKind, identityID uint64, tokenURL string,
) (*TokenAccount, error) {
	if address == "" {
		return nil, ErrMissingURL
	}
	switch kind {
	case AccountKindLite:
	case AccountKindIdentity:
		if identityID == 0 {
			return nil, ErrMissingIdentity
		}
	default:
		return nil, ErrInvalidAccountKind
	}
	return &TokenAccount{
		Address:    address,
		Kind:       kind,
		IdentityID: identityID,
		TokenURL:   tokenURL,
		Active:     true,
		CreatedAt:  time.Now(),
	}, nil
}

// DataAccount is the mirror row of an on-chain data account. Data accounts
// never exist without a parent identity.
type DataAccount struct {
	ID         uint64 `badgerhold:"key"`
	URL        string `badgerholdIndex:"URL"`
	Name       string
	IdentityID uint64 `badgerholdIndex:"IdentityID"`
	Active     bool
	CreatedAt  time.Time
}

// NewDataAccount ...
func NewDataAccount(url, name string, identityID uint64) (*DataAccount, error) {
	if url == "" {
		return nil, ErrMissingURL
	}
	if identityID == 0 {
		return nil, ErrMissingIdentity
	}
	return &DataAccount{
		URL:        url,
		Name:       name,
		IdentityID: identityID,
		Active:     true,
		CreatedAt:  time.Now(),
	}, nil
}

// DefaultTokenPrecision is the base-unit precision assigned to custom tokens
// that don't specify one.
const DefaultTokenPrecision = 8

// CustomToken is wallet-local bookkeeping for a token issued through this
// wallet. Unlike the other entities it is hard-deletable, since removing the
// row mirrors no ledger mutation.
type CustomToken struct {
	ID                uint64 `badgerhold:"key"`
	URL               string `badgerholdIndex:"URL"`
	Name              string
	Symbol            string `badgerholdIndex:"Symbol"`
	Precision         int
	CreatorIdentityID uint64
	CreatedAt         time.Time
}

// NewCustomToken validates name, symbol and precision and returns the
// bookkeeping row. A negative precision is rejected; zero means the token
// has no fractional units.
func NewCustomToken(
	url, name, symbol string, precision int, creatorIdentityID uint64,
) (*CustomToken, error) {
	if url == "" {
		return nil, ErrMissingURL
	}
	if !IsValidName(name) {
		return nil, ErrInvalidName
	}
	if !IsValidSymbol(symbol) {
		return nil, ErrInvalidSymbol
	}
	if precision < 0 {
		return nil, ErrInvalidPrecision
	}
	return &CustomToken{
		URL:               url,
		Name:              name,
		Symbol:            symbol,
		Precision:         precision,
		CreatorIdentityID: creatorIdentityID,
		CreatedAt:         time.Now(),
	}, nil
}

// WalletAccount is the unified registry row used for listing every account
// the wallet knows about in one dropdown, regardless of its kind.
type WalletAccount struct {
	ID        string `badgerhold:"key"`
	Address   string `badgerholdIndex:"Address"`
	Name      string
	Kind      AccountKind
	TokenURL  string
	Active    bool
	CreatedAt time.Time
}

// DisplayName returns the name when set, else a shortened address.
func (a WalletAccount) DisplayName() string {
	if a.Name != "" {
		return a.Name
	}
	addr := a.Address
	if i := strings.Index(addr, "/"); i >= 0 {
		addr = addr[:i]
	}
	if len(addr) > 12 {
		return addr[:6] + "…" + addr[len(addr)-6:]
	}
	return addr
}
