package application_test

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/stretchr/testify/mock"

	"github.com/accuwallet/walletcore/pkg/ledgerclient"
	"github.com/accuwallet/walletcore/pkg/securestore"
)

// **** Ledger client ****

type mockLedgerService struct {
	mock.Mock
}

func (m *mockLedgerService) QueryUrl(
	ctx context.Context, url string,
) (json.RawMessage, error) {
	args := m.Called(ctx, url)

	var res json.RawMessage
	if a := args.Get(0); a != nil {
		res = a.(json.RawMessage)
	}
	return res, args.Error(1)
}

func (m *mockLedgerService) QueryTx(
	ctx context.Context, txID string,
) (json.RawMessage, error) {
	args := m.Called(ctx, txID)

	var res json.RawMessage
	if a := args.Get(0); a != nil {
		res = a.(json.RawMessage)
	}
	return res, args.Error(1)
}

func (m *mockLedgerService) KeyPageVersion(
	ctx context.Context, pageURL string,
) (uint64, error) {
	args := m.Called(ctx, pageURL)

	var res uint64
	if a := args.Get(0); a != nil {
		res = a.(uint64)
	}
	return res, args.Error(1)
}

func (m *mockLedgerService) ValueFromOracle(ctx context.Context) (uint64, error) {
	args := m.Called(ctx)

	var res uint64
	if a := args.Get(0); a != nil {
		res = a.(uint64)
	}
	return res, args.Error(1)
}

func submitResult(args mock.Arguments) (*ledgerclient.SubmitResult, error) {
	var res *ledgerclient.SubmitResult
	if a := args.Get(0); a != nil {
		res = a.(*ledgerclient.SubmitResult)
	}
	return res, args.Error(1)
}

func (m *mockLedgerService) CreateIdentity(
	ctx context.Context, fromURL string,
	params ledgerclient.CreateIdentityParams, signer ledgerclient.Signer,
) (*ledgerclient.SubmitResult, error) {
	return submitResult(m.Called(ctx, fromURL, params, signer))
}

func (m *mockLedgerService) CreateKeyBook(
	ctx context.Context, fromURL string,
	params ledgerclient.CreateKeyBookParams, signer ledgerclient.Signer,
) (*ledgerclient.SubmitResult, error) {
	return submitResult(m.Called(ctx, fromURL, params, signer))
}

func (m *mockLedgerService) CreateKeyPage(
	ctx context.Context, fromURL string,
	params ledgerclient.CreateKeyPageParams, signer ledgerclient.Signer,
) (*ledgerclient.SubmitResult, error) {
	return submitResult(m.Called(ctx, fromURL, params, signer))
}

func (m *mockLedgerService) UpdateKeyPage(
	ctx context.Context, fromURL string,
	params ledgerclient.UpdateKeyPageParams, signer ledgerclient.Signer,
) (*ledgerclient.SubmitResult, error) {
	return submitResult(m.Called(ctx, fromURL, params, signer))
}

func (m *mockLedgerService) CreateTokenAccount(
	ctx context.Context, fromURL string,
	params ledgerclient.CreateTokenAccountParams, signer ledgerclient.Signer,
) (*ledgerclient.SubmitResult, error) {
	return submitResult(m.Called(ctx, fromURL, params, signer))
}

func (m *mockLedgerService) CreateDataAccount(
	ctx context.Context, fromURL string,
	params ledgerclient.CreateDataAccountParams, signer ledgerclient.Signer,
) (*ledgerclient.SubmitResult, error) {
	return submitResult(m.Called(ctx, fromURL, params, signer))
}

func (m *mockLedgerService) CreateToken(
	ctx context.Context, fromURL string,
	params ledgerclient.CreateTokenParams, signer ledgerclient.Signer,
) (*ledgerclient.SubmitResult, error) {
	return submitResult(m.Called(ctx, fromURL, params, signer))
}

func (m *mockLedgerService) IssueTokens(
	ctx context.Context, fromURL string,
	params ledgerclient.IssueTokensParams, signer ledgerclient.Signer,
) (*ledgerclient.SubmitResult, error) {
	return submitResult(m.Called(ctx, fromURL, params, signer))
}

func (m *mockLedgerService) BurnTokens(
	ctx context.Context, fromURL string,
	params ledgerclient.BurnTokensParams, signer ledgerclient.Signer,
) (*ledgerclient.SubmitResult, error) {
	return submitResult(m.Called(ctx, fromURL, params, signer))
}

func (m *mockLedgerService) SendTokens(
	ctx context.Context, fromURL string,
	params ledgerclient.SendTokensParams, signer ledgerclient.Signer,
) (*ledgerclient.SubmitResult, error) {
	return submitResult(m.Called(ctx, fromURL, params, signer))
}

func (m *mockLedgerService) AddCredits(
	ctx context.Context, fromURL string,
	params ledgerclient.AddCreditsParams, signer ledgerclient.Signer,
) (*ledgerclient.SubmitResult, error) {
	return submitResult(m.Called(ctx, fromURL, params, signer))
}

func (m *mockLedgerService) WriteData(
	ctx context.Context, fromURL string,
	params ledgerclient.WriteDataParams, signer ledgerclient.Signer,
) (*ledgerclient.SubmitResult, error) {
	return submitResult(m.Called(ctx, fromURL, params, signer))
}

// **** Secure store ****

// inMemorySecureStore is a plaintext stand-in for the bolt-backed store.
// Encryption is covered by that package's own tests.
type inMemorySecureStore struct {
	lock    sync.RWMutex
	locked  bool
	buckets map[string]map[string][]byte
}

func newInMemorySecureStore() *inMemorySecureStore {
	return &inMemorySecureStore{
		buckets: map[string]map[string][]byte{},
	}
}

func (s *inMemorySecureStore) Lock() {
	s.lock.Lock()
	defer s.lock.Unlock()
	s.locked = true
}

func (s *inMemorySecureStore) Close() error { return nil }

func (s *inMemorySecureStore) IsLocked() bool {
	s.lock.RLock()
	defer s.lock.RUnlock()
	return s.locked
}

func (s *inMemorySecureStore) CreateUnlock(_ *[]byte) error {
	s.lock.Lock()
	defer s.lock.Unlock()
	s.locked = false
	return nil
}

func (s *inMemorySecureStore) ChangePassword(_, _ []byte) error { return nil }

func (s *inMemorySecureStore) CreateBucket(key []byte) error {
	s.lock.Lock()
	defer s.lock.Unlock()
	if _, ok := s.buckets[string(key)]; !ok {
		s.buckets[string(key)] = map[string][]byte{}
	}
	return nil
}

func (s *inMemorySecureStore) AddToBucket(bucketKey, key, value []byte) error {
	s.lock.Lock()
	defer s.lock.Unlock()
	bucket, ok := s.buckets[string(bucketKey)]
	if !ok {
		return securestore.ErrBucketNotFound
	}
	bucket[string(key)] = value
	return nil
}

func (s *inMemorySecureStore) GetFromBucket(bucketKey, key []byte) ([]byte, error) {
	s.lock.RLock()
	defer s.lock.RUnlock()
	bucket, ok := s.buckets[string(bucketKey)]
	if !ok {
		return nil, securestore.ErrBucketNotFound
	}
	return bucket[string(key)], nil
}

func (s *inMemorySecureStore) GetAllFromBucket(bucketKey []byte) (map[string][]byte, error) {
	s.lock.RLock()
	defer s.lock.RUnlock()
	bucket, ok := s.buckets[string(bucketKey)]
	if !ok {
		return nil, securestore.ErrBucketNotFound
	}
	all := make(map[string][]byte, len(bucket))
	for k, v := range bucket {
		all[k] = v
	}
	return all, nil
}

func (s *inMemorySecureStore) ListBuckets() ([][]byte, error) {
	s.lock.RLock()
	defer s.lock.RUnlock()
	keys := make([][]byte, 0, len(s.buckets))
	for k := range s.buckets {
		keys = append(keys, []byte(k))
	}
	return keys, nil
}

func (s *inMemorySecureStore) RemoveFromBucket(bucketKey, key []byte) error {
	s.lock.Lock()
	defer s.lock.Unlock()
	bucket, ok := s.buckets[string(bucketKey)]
	if !ok {
		return securestore.ErrBucketNotFound
	}
	delete(bucket, string(key))
	return nil
}

func (s *inMemorySecureStore) RemoveBucket(bucketKey []byte) error {
	s.lock.Lock()
	defer s.lock.Unlock()
	if _, ok := s.buckets[string(bucketKey)]; !ok {
		return securestore.ErrBucketNotFound
	}
	delete(s.buckets, string(bucketKey))
	return nil
}
