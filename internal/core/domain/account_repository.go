package domain

import "context"

// AccountRepository is the abstraction for any kind of database intended to
// persist token accounts, data accounts and the unified wallet-account
// registry. Lookups return nil, not an error, when no row matches.
type AccountRepository interface {
	// AddTokenAccount ...
	AddTokenAccount(ctx context.Context, account *TokenAccount) (uint64, error)
	// GetTokenAccountByAddress ...
	GetTokenAccountByAddress(ctx context.Context, address string) (*TokenAccount, error)
	// GetTokenAccountsByIdentity returns all active token accounts owned by
	// an identity.
	GetTokenAccountsByIdentity(ctx context.Context, identityID uint64) ([]TokenAccount, error)
	// GetAllTokenAccounts returns token accounts, active-only unless
	// includeInactive.
	GetAllTokenAccounts(ctx context.Context, includeInactive bool) ([]TokenAccount, error)
	// DeactivateTokenAccount soft-deletes a token account row.
	DeactivateTokenAccount(ctx context.Context, address string) error
	// DeleteTokenAccount hard-deletes a token account row, used to roll back
	// a speculative insert after an on-chain rejection.
	DeleteTokenAccount(ctx context.Context, address string) error

	// AddDataAccount ...
	AddDataAccount(ctx context.Context, account *DataAccount) (uint64, error)
	// GetDataAccountByURL ...
	GetDataAccountByURL(ctx context.Context, url string) (*DataAccount, error)
	// GetDataAccountsByIdentity returns all active data accounts owned by an
	// identity.
	GetDataAccountsByIdentity(ctx context.Context, identityID uint64) ([]DataAccount, error)
	// DeactivateDataAccount soft-deletes a data account row.
	DeactivateDataAccount(ctx context.Context, url string) error
	// DeleteDataAccount ...
	DeleteDataAccount(ctx context.Context, url string) error

	// AddWalletAccount inserts a registry row for the account dropdown.
	AddWalletAccount(ctx context.Context, account *WalletAccount) error
	// GetAllWalletAccounts ...
	GetAllWalletAccounts(ctx context.Context) ([]WalletAccount, error)
	// RemoveWalletAccount ...
	RemoveWalletAccount(ctx context.Context, address string) error
}

// TokenRepository persists wallet-local custom token bookkeeping.
type TokenRepository interface {
	// AddToken ...
	AddToken(ctx context.Context, token *CustomToken) (uint64, error)
	// GetTokenByURL ...
	GetTokenByURL(ctx context.Context, url string) (*CustomToken, error)
	// GetTokenBySymbol ...
	GetTokenBySymbol(ctx context.Context, symbol string) (*CustomToken, error)
	// GetTokenByName ...
	GetTokenByName(ctx context.Context, name string) (*CustomToken, error)
	// GetAllTokens ...
	GetAllTokens(ctx context.Context) ([]CustomToken, error)
	// DeleteToken hard-deletes the bookkeeping row. Custom tokens are the
	// only entity the wallet deletes for good, since the row mirrors no
	// ledger state.
	DeleteToken(ctx context.Context, url string) error
}
