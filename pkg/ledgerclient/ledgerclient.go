package ledgerclient

import (
	"context"
	"encoding/json"
)

// Signer is a capability bound to an address and a private key able to
// produce a detached signature over an arbitrary byte payload. Identity
// signers additionally carry the version of the key page they sign for.
type Signer interface {
	// URL returns the address the signer acts for.
	URL() string
	// PublicKey returns the raw public key bytes.
	PublicKey() []byte
	// Version returns the key page version bound at construction time, or
	// zero for lite signers.
	Version() uint64
	// Sign produces a detached signature over the payload.
	Sign(payload []byte) []byte
}

// Service is the abstraction over the ledger network's RPC interface. Every
// state-changing call returns the normalized SubmitResult; a non-nil error is
// reserved for transport failures.
type Service interface {
	// QueryUrl returns the raw state of any chain URL.
	QueryUrl(ctx context.Context, url string) (json.RawMessage, error)
	// QueryTx returns the raw state of a submitted transaction.
	QueryTx(ctx context.Context, txID string) (json.RawMessage, error)
	// KeyPageVersion returns the current version counter of a key page,
	// defaulting to 1 when the page state does not carry one. The value is
	// only valid at the instant it was fetched and must not be cached across
	// submissions.
	KeyPageVersion(ctx context.Context, pageURL string) (uint64, error)
	// ValueFromOracle returns the network's current token/credit conversion
	// rate.
	ValueFromOracle(ctx context.Context) (uint64, error)

	CreateIdentity(ctx context.Context, fromURL string, params CreateIdentityParams, signer Signer) (*SubmitResult, error)
	CreateKeyBook(ctx context.Context, fromURL string, params CreateKeyBookParams, signer Signer) (*SubmitResult, error)
	CreateKeyPage(ctx context.Context, fromURL string, params CreateKeyPageParams, signer Signer) (*SubmitResult, error)
	UpdateKeyPage(ctx context.Context, fromURL string, params UpdateKeyPageParams, signer Signer) (*SubmitResult, error)
	CreateTokenAccount(ctx context.Context, fromURL string, params CreateTokenAccountParams, signer Signer) (*SubmitResult, error)
	CreateDataAccount(ctx context.Context, fromURL string, params CreateDataAccountParams, signer Signer) (*SubmitResult, error)
	CreateToken(ctx context.Context, fromURL string, params CreateTokenParams, signer Signer) (*SubmitResult, error)
	IssueTokens(ctx context.Context, fromURL string, params IssueTokensParams, signer Signer) (*SubmitResult, error)
	BurnTokens(ctx context.Context, fromURL string, params BurnTokensParams, signer Signer) (*SubmitResult, error)
	SendTokens(ctx context.Context, fromURL string, params SendTokensParams, signer Signer) (*SubmitResult, error)
	AddCredits(ctx context.Context, fromURL string, params AddCreditsParams, signer Signer) (*SubmitResult, error)
	WriteData(ctx context.Context, fromURL string, params WriteDataParams, signer Signer) (*SubmitResult, error)
}
