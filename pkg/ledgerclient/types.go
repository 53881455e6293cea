package ledgerclient

import (
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
)

var (
	// ErrInvalidPublicKeyHash ...
	ErrInvalidPublicKeyHash = errors.New("public key hash is not a valid hex string")
)

// CreateIdentityParams are the inputs of an identity (ADI) creation. The key
// hash is hex as received from the key manager and is decoded to raw bytes
// while building the wire payload.
type CreateIdentityParams struct {
	URL           string `json:"url"`
	KeyBookName   string `json:"keyBookName"`
	KeyPageName   string `json:"keyPageName"`
	PublicKeyHash string `json:"publicKeyHash"`
}

// Validate checks the hex fields decode before any network call.
func (p CreateIdentityParams) Validate() error {
	if _, err := hex.DecodeString(p.PublicKeyHash); err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidPublicKeyHash, p.PublicKeyHash)
	}
	return nil
}

// CreateKeyBookParams ...
type CreateKeyBookParams struct {
	URL      string   `json:"url"`
	PageURLs []string `json:"pages"`
}

// CreateKeyPageParams ...
type CreateKeyPageParams struct {
	URL  string         `json:"url"`
	Keys []KeySpecParams `json:"keys"`
}

// KeySpecParams carries one public key hash of a key page mutation.
type KeySpecParams struct {
	PublicKeyHash string `json:"keyHash"`
}

// Validate ...
func (p KeySpecParams) Validate() error {
	if _, err := hex.DecodeString(p.PublicKeyHash); err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidPublicKeyHash, p.PublicKeyHash)
	}
	return nil
}

// UpdateKeyPage operations. The network applies the batch as independent
// sub-operations, each of which can fail on its own (see ParseSubmitResponse).
const (
	KeyPageOpAdd    = "add"
	KeyPageOpRemove = "remove"
	KeyPageOpUpdate = "update"
)

// UpdateKeyPageParams ...
type UpdateKeyPageParams struct {
	Operation string `json:"operation"`
	Key       string `json:"key,omitempty"`
	NewKey    string `json:"newKey,omitempty"`
}

// CreateTokenAccountParams ...
type CreateTokenAccountParams struct {
	URL      string `json:"url"`
	TokenURL string `json:"tokenUrl"`
	KeyBook  string `json:"keyBookUrl,omitempty"`
}

// CreateDataAccountParams ...
type CreateDataAccountParams struct {
	URL string `json:"url"`
}

// CreateTokenParams describes a custom token issuance account.
type CreateTokenParams struct {
	URL       string `json:"url"`
	Symbol    string `json:"symbol"`
	Precision int    `json:"precision"`
}

// IssueTokensParams ...
type IssueTokensParams struct {
	Recipient string `json:"recipient"`
	Amount    uint64 `json:"amount"`
}

// BurnTokensParams ...
type BurnTokensParams struct {
	Amount uint64 `json:"amount"`
}

// SendTokensParams ...
type SendTokensParams struct {
	To     string `json:"to"`
	Amount uint64 `json:"amount"`
}

// AddCreditsParams ...
type AddCreditsParams struct {
	Recipient string `json:"recipient"`
	// Amount is the token amount in base units spent to purchase credits,
	// computed by the caller from the oracle value.
	Amount uint64 `json:"amount"`
	// Oracle echoes the rate the amount was computed with so the network can
	// reject the purchase if the price moved.
	Oracle uint64 `json:"oracle"`
}

// WriteDataParams ...
type WriteDataParams struct {
	Data []byte `json:"data"`
}

// SubmitResult is the single normalized outcome of any state-changing call:
// either success with the ids the network assigned, or failure with a
// human-readable message. There is no partial-success state.
type SubmitResult struct {
	Ok            bool
	TransactionID string
	Hash          string
	Message       string
	Data          json.RawMessage
}

// Err converts a failed result into an error, nil for successful ones.
func (r *SubmitResult) Err() error {
	if r.Ok {
		return nil
	}
	return errors.New(r.Message)
}
