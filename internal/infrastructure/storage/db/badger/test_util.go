package dbbadger

import (
	"testing"

	"github.com/dgraph-io/badger/v3"
	"github.com/timshannon/badgerhold/v4"
)

// newTestDb returns a DbManager backed by in-memory badger stores, torn down
// with the test.
func newTestDb(t *testing.T) *DbManager {
	t.Helper()

	open := func() *badgerhold.Store {
		opts := badger.DefaultOptions("").WithInMemory(true)
		opts.Logger = nil
		store, err := badgerhold.Open(badgerhold.Options{
			Encoder:          badgerhold.DefaultEncode,
			Decoder:          badgerhold.DefaultDecode,
			SequenceBandwith: 100,
			Options:          opts,
		})
		if err != nil {
			t.Fatal(err)
		}
		return store
	}

	db := &DbManager{
		IdentityStore: open(),
		AccountStore:  open(),
		TokenStore:    open(),
	}
	t.Cleanup(func() { db.Close() })

	return db
}
