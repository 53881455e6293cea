package application_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/accuwallet/walletcore/internal/core/application"
	dbbadger "github.com/accuwallet/walletcore/internal/infrastructure/storage/db/badger"
)

const testNativeTokenURL = "acc://ACME"

type testServices struct {
	wallet     application.WalletService
	registry   application.RegistryService
	keyManager application.KeyManager
	submitter  application.TxSubmitter
	credits    application.CreditService
	client     *mockLedgerService
}

// newTestServices wires the full application stack over on-disk badger
// stores in a temp dir and a mocked ledger client.
func newTestServices(t *testing.T) *testServices {
	t.Helper()

	dbManager, err := dbbadger.NewDbManager(t.TempDir(), nil)
	require.NoError(t, err)
	t.Cleanup(func() { dbManager.Close() })

	registry := application.NewRegistryService(
		dbbadger.NewIdentityRepositoryImpl(dbManager),
		dbbadger.NewAccountRepositoryImpl(dbManager),
		dbbadger.NewTokenRepositoryImpl(dbManager),
	)

	client := &mockLedgerService{}
	keyManager := application.NewKeyManager(newInMemorySecureStore())
	submitter := application.NewTxSubmitter(keyManager, client, registry)
	credits := application.NewCreditService(client)

	return &testServices{
		wallet: application.NewWalletService(
			keyManager, registry, submitter, credits, client, testNativeTokenURL,
		),
		registry:   registry,
		keyManager: keyManager,
		submitter:  submitter,
		credits:    credits,
		client:     client,
	}
}
