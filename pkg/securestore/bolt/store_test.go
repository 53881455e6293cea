package boltsecurestore_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/accuwallet/walletcore/pkg/securestore"
	boltsecurestore "github.com/accuwallet/walletcore/pkg/securestore/bolt"
)

var (
	password    = []byte("pa55w0rd")
	newPassword = []byte("n3wPa55w0rd")
	accountURL  = []byte("acc://mycorp.acme/book0/1")
	keyName     = []byte("privatekey")
	keyValue    = []byte("deadbeefdeadbeefdeadbeefdeadbeefdeadbeefdeadbeefdeadbeefdeadbeef")
)

func newTestStore(t *testing.T) securestore.SecureStorage {
	t.Helper()

	store, err := boltsecurestore.NewSecureStorage(t.TempDir(), "test.db")
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	return store
}

func TestStoreStartsLocked(t *testing.T) {
	store := newTestStore(t)

	require.True(t, store.IsLocked())

	err := store.AddToBucket(accountURL, keyName, keyValue)
	require.ErrorIs(t, err, boltsecurestore.ErrStoreLocked)

	require.NoError(t, store.CreateUnlock(&password))
	require.False(t, store.IsLocked())
}

func TestUnlockWithWrongPassword(t *testing.T) {
	store := newTestStore(t)

	require.NoError(t, store.CreateUnlock(&password))
	store.Lock()

	wrong := []byte("wrong")
	err := store.CreateUnlock(&wrong)
	require.ErrorIs(t, err, boltsecurestore.ErrInvalidPassword)

	require.NoError(t, store.CreateUnlock(&password))
}

func TestRoundTrip(t *testing.T) {
	store := newTestStore(t)
	require.NoError(t, store.CreateUnlock(&password))

	require.NoError(t, store.CreateBucket(accountURL))
	require.NoError(t, store.AddToBucket(accountURL, keyName, keyValue))

	value, err := store.GetFromBucket(accountURL, keyName)
	require.NoError(t, err)
	require.Equal(t, keyValue, value)

	// Missing keys are a nil value, not an error.
	value, err = store.GetFromBucket(accountURL, []byte("missing"))
	require.NoError(t, err)
	require.Nil(t, value)

	all, err := store.GetAllFromBucket(accountURL)
	require.NoError(t, err)
	require.Len(t, all, 1)
	require.Equal(t, keyValue, all[string(keyName)])

	buckets, err := store.ListBuckets()
	require.NoError(t, err)
	require.Equal(t, [][]byte{accountURL}, buckets)

	require.NoError(t, store.RemoveFromBucket(accountURL, keyName))
	value, err = store.GetFromBucket(accountURL, keyName)
	require.NoError(t, err)
	require.Nil(t, value)

	require.NoError(t, store.RemoveBucket(accountURL))
	_, err = store.GetFromBucket(accountURL, keyName)
	require.ErrorIs(t, err, boltsecurestore.ErrBucketNotFound)
}

func TestChangePassword(t *testing.T) {
	store := newTestStore(t)
	require.NoError(t, store.CreateUnlock(&password))

	require.NoError(t, store.CreateBucket(accountURL))
	require.NoError(t, store.AddToBucket(accountURL, keyName, keyValue))

	require.NoError(t, store.ChangePassword(password, newPassword))
	store.Lock()

	err := store.CreateUnlock(&password)
	require.ErrorIs(t, err, boltsecurestore.ErrInvalidPassword)

	require.NoError(t, store.CreateUnlock(&newPassword))

	value, err := store.GetFromBucket(accountURL, keyName)
	require.NoError(t, err)
	require.Equal(t, keyValue, value)
}
