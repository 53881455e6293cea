package application

import (
	"context"
	"fmt"

	log "github.com/sirupsen/logrus"

	"github.com/accuwallet/walletcore/pkg/ledgerclient"
)

// TxSubmitter drives the per-submission state machine:
//
//	BUILD → VERSION-FETCH (identity-signed only) → SIGN → SUBMIT → PARSE
//
// No state is retried automatically. A terminal failure carries a
// human-readable reason; there is no partial-success state.
type TxSubmitter interface {
	// LiteSigner returns a signer for a lite address, accepting either its
	// base or token-account form. A missing stored key is
	// ErrMissingPrivateKey, distinct from any network error.
	LiteSigner(addr string) (ledgerclient.Signer, error)
	// PageSigner re-fetches the page's current version from the network and
	// binds it into the returned signer. The version is fetched immediately
	// before signing and never cached across submissions: a stale one is
	// rejected by the network as a protocol failure.
	PageSigner(ctx context.Context, pageURL string) (ledgerclient.Signer, error)
	// Submit runs the prepared call and logs its terminal state.
	Submit(
		ctx context.Context, label string,
		op func() (*ledgerclient.SubmitResult, error),
	) (*ledgerclient.SubmitResult, error)
}

type txSubmitter struct {
	keyManager KeyManager
	client     ledgerclient.Service
	registry   RegistryService
}

// NewTxSubmitter ...
func NewTxSubmitter(
	keyManager KeyManager, client ledgerclient.Service, registry RegistryService,
) TxSubmitter {
	return &txSubmitter{
		keyManager: keyManager,
		client:     client,
		registry:   registry,
	}
}

func (t *txSubmitter) LiteSigner(addr string) (ledgerclient.Signer, error) {
	signer, found, err := t.keyManager.NewLiteSigner(addr)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, fmt.Errorf("%w: %s", ErrMissingPrivateKey, addr)
	}
	return signer, nil
}

func (t *txSubmitter) PageSigner(
	ctx context.Context, pageURL string,
) (ledgerclient.Signer, error) {
	version, err := t.client.KeyPageVersion(ctx, pageURL)
	if err != nil {
		return nil, fmt.Errorf("fetching key page version: %w", err)
	}

	// Mirror the last-seen counter for display; signing never reads it back.
	if err := t.registry.RecordKeyPageVersion(ctx, pageURL, version); err != nil {
		log.WithError(err).Warnf("could not record version for key page %s", pageURL)
	}

	signer, found, err := t.keyManager.NewPageSigner(pageURL, version)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, fmt.Errorf("%w: %s", ErrMissingPrivateKey, pageURL)
	}
	return signer, nil
}

func (t *txSubmitter) Submit(
	ctx context.Context, label string,
	op func() (*ledgerclient.SubmitResult, error),
) (*ledgerclient.SubmitResult, error) {
	res, err := op()
	if err != nil {
		log.WithError(err).Errorf("%s: submission failed", label)
		return nil, err
	}

	if !res.Ok {
		log.Warnf("%s: rejected by network: %s", label, res.Message)
		return res, nil
	}

	log.Debugf("%s: accepted, txid %s", label, res.TransactionID)
	return res, nil
}
