package securestore

import "errors"

// ErrBucketNotFound is returned by implementations when the requested bucket
// does not exist. Callers treat it as absence, not failure.
var ErrBucketNotFound = errors.New("bucket not found")

// SecureStorage is a key/value DB that secures its content by encrypting the
// values of the pairs. Keys are grouped into buckets, one bucket per wallet
// account URL.
type SecureStorage interface {
	// Lock locks the DB once unlocked.
	Lock()
	// Close closes the connection to the DB.
	Close() error
	// IsLocked returns whether the DB is (un)locked.
	IsLocked() bool
	// CreateUnlock creates or unlocks the DB with a password.
	CreateUnlock(password *[]byte) error
	// ChangePassword allows to change the password for unlocking the DB.
	ChangePassword(oldPw, newPw []byte) error
	// CreateBucket creates a nested bucket (a collection of key/value pairs).
	CreateBucket(key []byte) error
	// AddToBucket adds the key/value entry to some bucket.
	AddToBucket(bucketKey, key, value []byte) error
	// GetFromBucket retrieves a key/value entry from some bucket. A missing
	// key yields a nil value, not an error.
	GetFromBucket(bucketKey, key []byte) ([]byte, error)
	// GetAllFromBucket retrieves all key/value pairs contained by a bucket.
	GetAllFromBucket(bucketKey []byte) (map[string][]byte, error)
	// ListBuckets returns the list of all buckets in the DB.
	ListBuckets() ([][]byte, error)
	// RemoveFromBucket removes a key/value pair from a bucket.
	RemoveFromBucket(bucketKey, key []byte) error
	// RemoveBucket removes a bucket from the root one.
	RemoveBucket(bucketKey []byte) error
}
