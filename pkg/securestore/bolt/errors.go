package boltsecurestore

import (
	"errors"

	"github.com/accuwallet/walletcore/pkg/securestore"
)

var (
	// ErrStoreLocked is returned for any operation attempted while the store
	// is locked.
	ErrStoreLocked = errors.New("store is locked")
	// ErrPasswordRequired ...
	ErrPasswordRequired = errors.New("a non-nil password is required")
	// ErrInvalidPassword ...
	ErrInvalidPassword = errors.New("invalid password")
	// ErrRootKeyBucketNotFound ...
	ErrRootKeyBucketNotFound = errors.New("root bucket not found")
	// ErrBucketNotFound ...
	ErrBucketNotFound = securestore.ErrBucketNotFound
	// ErrEncKeyNotFound ...
	ErrEncKeyNotFound = errors.New("encryption key not found")
	// ErrMissingBucketKey ...
	ErrMissingBucketKey = errors.New("bucket key must not be empty")
	// ErrMissingDataKey ...
	ErrMissingDataKey = errors.New("data key must not be empty")
	// ErrMissingData ...
	ErrMissingData = errors.New("data must not be empty")
	// ErrForbiddenBucketKey ...
	ErrForbiddenBucketKey = errors.New("bucket key is reserved")
	// ErrForbiddenDataKey ...
	ErrForbiddenDataKey = errors.New("data key is reserved")
)
