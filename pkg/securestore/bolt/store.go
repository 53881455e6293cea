package boltsecurestore

import (
	"bytes"
	"os"
	"path/filepath"
	"sync"

	"github.com/btcsuite/btcwallet/snacl"
	bolt "go.etcd.io/bbolt"

	"github.com/accuwallet/walletcore/pkg/securestore"
)

var (
	// rootBucketName is the name of the top-level bucket holding every
	// account bucket plus the encryption key entry.
	rootBucketName = []byte("root")

	// encryptionKeyID is the name of the database key that stores the
	// encryption key, encrypted with a salted + hashed password. The format
	// is 32 bytes of salt, and the rest is encrypted key.
	encryptionKeyID = []byte("enckey")
)

type boltSecureStorage struct {
	db *bolt.DB

	encKeyMtx sync.RWMutex
	encKey    *snacl.SecretKey
}

// NewSecureStorage opens (or creates if not exists) the bolt DB at the given
// location and returns it wrapped in a SecureStorage. The store starts
// locked; CreateUnlock must be called before any read or write.
func NewSecureStorage(datadir, filename string) (securestore.SecureStorage, error) {
	if _, err := os.Stat(datadir); os.IsNotExist(err) {
		if err := os.MkdirAll(datadir, 0700); err != nil {
			return nil, err
		}
	}

	db, err := bolt.Open(filepath.Join(datadir, filename), 0600, nil)
	if err != nil {
		return nil, err
	}

	if err := db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(rootBucketName)
		return err
	}); err != nil {
		db.Close()
		return nil, err
	}

	return &boltSecureStorage{db: db, encKey: nil}, nil
}

// IsLocked returns whether the store is locked by checking if the encryption
// key is stored in-memory.
func (s *boltSecureStorage) IsLocked() bool {
	s.encKeyMtx.RLock()
	defer s.encKeyMtx.RUnlock()
	return s.encKey == nil
}

// Lock eventually locks the store by flushing the in-memory encryption key.
func (s *boltSecureStorage) Lock() {
	s.encKeyMtx.Lock()
	defer s.encKeyMtx.Unlock()
	if s.encKey != nil {
		s.encKey.Zero()
		s.encKey = nil
	}
}

// Close locks the store and closes the connection to the DB.
func (s *boltSecureStorage) Close() error {
	s.Lock()
	return s.db.Close()
}

// CreateUnlock sets an encryption key if one is not already set, otherwise it
// checks if the password is correct for the stored encryption key.
func (s *boltSecureStorage) CreateUnlock(password *[]byte) error {
	if !s.IsLocked() {
		return nil
	}

	if password == nil {
		return ErrPasswordRequired
	}

	s.encKeyMtx.Lock()
	defer s.encKeyMtx.Unlock()

	return s.db.Update(func(tx *bolt.Tx) error {
		bucket := tx.Bucket(rootBucketName)
		if bucket == nil {
			return ErrRootKeyBucketNotFound
		}

		dbKey := bucket.Get(encryptionKeyID)
		if len(dbKey) > 0 {
			// A key is already stored, so try to unlock with the password.
			encKey := &snacl.SecretKey{}
			if err := encKey.Unmarshal(dbKey); err != nil {
				return err
			}

			if err := encKey.DeriveKey(password); err != nil {
				return ErrInvalidPassword
			}

			s.encKey = encKey
			return nil
		}

		// The encryption key is not yet stored, so create a new one.
		encKey, err := snacl.NewSecretKey(
			password, snacl.DefaultN, snacl.DefaultR, snacl.DefaultP,
		)
		if err != nil {
			return err
		}

		if err := bucket.Put(encryptionKeyID, encKey.Marshal()); err != nil {
			return err
		}

		s.encKey = encKey
		return nil
	})
}

// ChangePassword decrypts the whole store with the old password and encrypts
// it again with the new one.
func (s *boltSecureStorage) ChangePassword(oldPw, newPw []byte) error {
	// The store must be already unlocked. This ensures that there already is
	// a key in the DB.
	if s.IsLocked() {
		return ErrStoreLocked
	}

	if oldPw == nil || newPw == nil {
		return ErrPasswordRequired
	}

	encKeyNew, err := snacl.NewSecretKey(
		&newPw, snacl.DefaultN, snacl.DefaultR, snacl.DefaultP,
	)
	if err != nil {
		return err
	}

	// Check that the old password is correct.
	if err := s.db.View(func(tx *bolt.Tx) error {
		bucket := tx.Bucket(rootBucketName)
		if bucket == nil {
			return ErrRootKeyBucketNotFound
		}
		dbKey := bucket.Get(encryptionKeyID)
		if len(dbKey) <= 0 {
			return ErrEncKeyNotFound
		}

		encKeyOld := &snacl.SecretKey{}
		if err := encKeyOld.Unmarshal(dbKey); err != nil {
			return err
		}

		return encKeyOld.DeriveKey(&oldPw)
	}); err != nil {
		return err
	}

	if err := s.reencryptDb(encKeyNew); err != nil {
		return err
	}

	// Finally, store the new encryption key parameters in the DB as well.
	return s.db.Update(func(tx *bolt.Tx) error {
		bucket := tx.Bucket(rootBucketName)
		if bucket == nil {
			return ErrRootKeyBucketNotFound
		}

		if err := bucket.Put(encryptionKeyID, encKeyNew.Marshal()); err != nil {
			return err
		}

		s.encKeyMtx.Lock()
		defer s.encKeyMtx.Unlock()
		s.encKey = encKeyNew
		return nil
	})
}

// CreateBucket creates a nested bucket into the root one.
func (s *boltSecureStorage) CreateBucket(key []byte) error {
	if s.IsLocked() {
		return ErrStoreLocked
	}

	if len(key) <= 0 {
		return ErrMissingBucketKey
	}
	if bytes.Equal(key, encryptionKeyID) {
		return ErrForbiddenBucketKey
	}

	return s.db.Update(func(tx *bolt.Tx) error {
		bucket := tx.Bucket(rootBucketName)
		if bucket == nil {
			return ErrRootKeyBucketNotFound
		}
		_, err := bucket.CreateBucketIfNotExists(key)
		return err
	})
}

// AddToBucket stores the provided data encrypted into the given bucket. If
// the bucket key is nil, the key/value entry is added to the root one.
func (s *boltSecureStorage) AddToBucket(bucketKey, key, value []byte) error {
	if s.IsLocked() {
		return ErrStoreLocked
	}

	if len(key) <= 0 {
		return ErrMissingDataKey
	}
	if bytes.Equal(key, encryptionKeyID) {
		return ErrForbiddenDataKey
	}
	if len(value) <= 0 {
		return ErrMissingData
	}

	return s.db.Update(func(tx *bolt.Tx) error {
		bucket := tx.Bucket(rootBucketName)
		if bucket == nil {
			return ErrRootKeyBucketNotFound
		}

		if len(bucketKey) > 0 {
			bucket = bucket.Bucket(bucketKey)
			if bucket == nil {
				return ErrBucketNotFound
			}
		}

		encryptedValue, err := s.encKey.Encrypt(value)
		if err != nil {
			return err
		}

		return bucket.Put(key, encryptedValue)
	})
}

// GetFromBucket retrieves data for the given key and bucket. If the bucket
// key is nil, data is retrieved from the root bucket. A missing key yields a
// nil value.
func (s *boltSecureStorage) GetFromBucket(bucketKey, key []byte) ([]byte, error) {
	if s.IsLocked() {
		return nil, ErrStoreLocked
	}

	if len(key) <= 0 {
		return nil, ErrMissingDataKey
	}
	if bytes.Equal(key, encryptionKeyID) {
		return nil, ErrForbiddenDataKey
	}

	var value []byte
	if err := s.db.View(func(tx *bolt.Tx) error {
		bucket := tx.Bucket(rootBucketName)
		if bucket == nil {
			return ErrRootKeyBucketNotFound
		}

		if len(bucketKey) > 0 {
			bucket = bucket.Bucket(bucketKey)
			if bucket == nil {
				return ErrBucketNotFound
			}
		}

		encryptedValue := bucket.Get(key)
		if len(encryptedValue) <= 0 {
			return nil
		}

		v, err := s.encKey.Decrypt(encryptedValue)
		if err != nil {
			return err
		}

		value = v
		return nil
	}); err != nil {
		return nil, err
	}

	return value, nil
}

// GetAllFromBucket retrieves all the decrypted key/value pairs contained by
// the given bucket, skipping nested buckets.
func (s *boltSecureStorage) GetAllFromBucket(bucketKey []byte) (map[string][]byte, error) {
	if s.IsLocked() {
		return nil, ErrStoreLocked
	}

	valuesByKey := map[string][]byte{}
	if err := s.db.View(func(tx *bolt.Tx) error {
		bucket := tx.Bucket(rootBucketName)
		if bucket == nil {
			return ErrRootKeyBucketNotFound
		}

		if len(bucketKey) > 0 {
			bucket = bucket.Bucket(bucketKey)
			if bucket == nil {
				return ErrBucketNotFound
			}
		}

		return bucket.ForEach(func(k, v []byte) error {
			if v == nil || bytes.Equal(k, encryptionKeyID) {
				return nil
			}
			decrypted, err := s.encKey.Decrypt(v)
			if err != nil {
				return err
			}
			valuesByKey[string(k)] = decrypted
			return nil
		})
	}); err != nil {
		return nil, err
	}

	return valuesByKey, nil
}

// ListBuckets returns the keys of all nested buckets of the root one.
func (s *boltSecureStorage) ListBuckets() ([][]byte, error) {
	if s.IsLocked() {
		return nil, ErrStoreLocked
	}

	bucketKeys := [][]byte{}
	if err := s.db.View(func(tx *bolt.Tx) error {
		bucket := tx.Bucket(rootBucketName)
		if bucket == nil {
			return ErrRootKeyBucketNotFound
		}

		return bucket.ForEach(func(k, v []byte) error {
			if v != nil {
				return nil
			}
			key := make([]byte, len(k))
			copy(key, k)
			bucketKeys = append(bucketKeys, key)
			return nil
		})
	}); err != nil {
		return nil, err
	}

	return bucketKeys, nil
}

// RemoveFromBucket removes a key/value pair from a bucket. Removing a missing
// key is a no-op.
func (s *boltSecureStorage) RemoveFromBucket(bucketKey, key []byte) error {
	if s.IsLocked() {
		return ErrStoreLocked
	}

	if len(key) <= 0 {
		return ErrMissingDataKey
	}
	if bytes.Equal(key, encryptionKeyID) {
		return ErrForbiddenDataKey
	}

	return s.db.Update(func(tx *bolt.Tx) error {
		bucket := tx.Bucket(rootBucketName)
		if bucket == nil {
			return ErrRootKeyBucketNotFound
		}

		if len(bucketKey) > 0 {
			bucket = bucket.Bucket(bucketKey)
			if bucket == nil {
				return ErrBucketNotFound
			}
		}

		return bucket.Delete(key)
	})
}

// RemoveBucket removes a nested bucket and all of its content.
func (s *boltSecureStorage) RemoveBucket(bucketKey []byte) error {
	if s.IsLocked() {
		return ErrStoreLocked
	}

	if len(bucketKey) <= 0 {
		return ErrMissingBucketKey
	}
	if bytes.Equal(bucketKey, encryptionKeyID) {
		return ErrForbiddenBucketKey
	}

	return s.db.Update(func(tx *bolt.Tx) error {
		bucket := tx.Bucket(rootBucketName)
		if bucket == nil {
			return ErrRootKeyBucketNotFound
		}

		if err := bucket.DeleteBucket(bucketKey); err != nil && err != bolt.ErrBucketNotFound {
			return err
		}
		return nil
	})
}

// reencryptDb walks the whole store, decrypts every entry with the current
// key and encrypts it again with the new one.
func (s *boltSecureStorage) reencryptDb(encKeyNew *snacl.SecretKey) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		root := tx.Bucket(rootBucketName)
		if root == nil {
			return ErrRootKeyBucketNotFound
		}
		return s.reencryptBucket(root, encKeyNew, true)
	})
}

func (s *boltSecureStorage) reencryptBucket(
	bucket *bolt.Bucket, encKeyNew *snacl.SecretKey, isRoot bool,
) error {
	keys := [][]byte{}
	nested := [][]byte{}
	if err := bucket.ForEach(func(k, v []byte) error {
		if v == nil {
			nested = append(nested, append([]byte{}, k...))
			return nil
		}
		if isRoot && bytes.Equal(k, encryptionKeyID) {
			return nil
		}
		keys = append(keys, append([]byte{}, k...))
		return nil
	}); err != nil {
		return err
	}

	for _, k := range keys {
		decrypted, err := s.encKey.Decrypt(bucket.Get(k))
		if err != nil {
			return err
		}
		reencrypted, err := encKeyNew.Encrypt(decrypted)
		if err != nil {
			return err
		}
		if err := bucket.Put(k, reencrypted); err != nil {
			return err
		}
	}

	for _, k := range nested {
		if err := s.reencryptBucket(bucket.Bucket(k), encKeyNew, false); err != nil {
			return err
		}
	}
	return nil
}
