package dbbadger

import (
	"fmt"
	"path/filepath"

	"github.com/dgraph-io/badger/v3"
	"github.com/dgraph-io/badger/v3/options"
	"github.com/timshannon/badgerhold/v4"
)

// DbManager holds all the badgerhold stores in a single data structure. Each
// concern gets a dedicated directory: the identity hierarchy, the account
// mirror and the custom-token bookkeeping.
type DbManager struct {
	IdentityStore *badgerhold.Store
	AccountStore  *badgerhold.Store
	TokenStore    *badgerhold.Store
}

// NewDbManager opens (or creates if not exists) the badger stores on disk.
func NewDbManager(baseDbDir string, logger badger.Logger) (*DbManager, error) {
	identityDb, err := createDb(filepath.Join(baseDbDir, "identity"), logger)
	if err != nil {
		return nil, fmt.Errorf("opening identity db: %w", err)
	}

	accountDb, err := createDb(filepath.Join(baseDbDir, "account"), logger)
	if err != nil {
		return nil, fmt.Errorf("opening account db: %w", err)
	}

	tokenDb, err := createDb(filepath.Join(baseDbDir, "token"), logger)
	if err != nil {
		return nil, fmt.Errorf("opening token db: %w", err)
	}

	return &DbManager{
		IdentityStore: identityDb,
		AccountStore:  accountDb,
		TokenStore:    tokenDb,
	}, nil
}

// Close closes the connections to all the stores.
func (d *DbManager) Close() error {
	for _, store := range []*badgerhold.Store{
		d.IdentityStore, d.AccountStore, d.TokenStore,
	} {
		if err := store.Close(); err != nil {
			return err
		}
	}
	return nil
}

func createDb(dbDir string, logger badger.Logger) (*badgerhold.Store, error) {
	opts := badger.DefaultOptions(dbDir)
	opts.Logger = logger
	opts.Compression = options.ZSTD

	return badgerhold.Open(badgerhold.Options{
		Encoder:          badgerhold.DefaultEncode,
		Decoder:          badgerhold.DefaultDecode,
		SequenceBandwith: 100,
		Options:          opts,
	})
}
