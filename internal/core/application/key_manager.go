package application

import (
	"crypto/ed25519"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"

	log "github.com/sirupsen/logrus"

	"github.com/accuwallet/walletcore/pkg/address"
	"github.com/accuwallet/walletcore/pkg/ledgerclient"
	"github.com/accuwallet/walletcore/pkg/securestore"
)

// privateKeyID is the entry name a private key is stored under inside its
// account's bucket.
var privateKeyID = []byte("privatekey")

// KeyPair is a freshly generated signing key with the hash the network uses
// as its fingerprint.
type KeyPair struct {
	PublicKey     ed25519.PublicKey
	PrivateKey    ed25519.PrivateKey
	PublicKeyHash []byte
}

// PublicKeyHex ...
func (k *KeyPair) PublicKeyHex() string {
	return hex.EncodeToString(k.PublicKey)
}

// PublicKeyHashHex ...
func (k *KeyPair) PublicKeyHashHex() string {
	return hex.EncodeToString(k.PublicKeyHash)
}

// KeyManager generates key pairs, derives lite addresses and stores private
// keys in the secure store, one bucket per account URL. Key lookups are
// soft-fail: a missing key is a (nil, false, nil) outcome, never an error.
// Generation failures are fatal and propagate.
type KeyManager interface {
	GenerateKeyPair() (*KeyPair, error)
	DeriveLiteAddress(publicKeyHash []byte) string
	StoreKey(accountURL string, privateKey ed25519.PrivateKey) error
	RetrieveKey(accountURL string) (ed25519.PrivateKey, bool, error)
	DeleteKey(accountURL string) error
	// NewLiteSigner normalizes the address to its base form before looking
	// up the key, retrying under the raw form if the normalized one misses.
	NewLiteSigner(addr string) (ledgerclient.Signer, bool, error)
	// NewPageSigner looks up the key stored under the exact key page URL and
	// binds it with the version the caller just fetched from the network.
	NewPageSigner(pageURL string, version uint64) (ledgerclient.Signer, bool, error)
}

type keyManager struct {
	store securestore.SecureStorage
}

// NewKeyManager ...
func NewKeyManager(store securestore.SecureStorage) KeyManager {
	return &keyManager{store: store}
}

func (m *keyManager) GenerateKeyPair() (*KeyPair, error) {
	pub, priv, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		return nil, fmt.Errorf("generating key pair: %w", err)
	}

	hash := sha256.Sum256(pub)
	return &KeyPair{
		PublicKey:     pub,
		PrivateKey:    priv,
		PublicKeyHash: hash[:],
	}, nil
}

func (m *keyManager) DeriveLiteAddress(publicKeyHash []byte) string {
	return address.LiteFromHash(publicKeyHash)
}

func (m *keyManager) StoreKey(accountURL string, privateKey ed25519.PrivateKey) error {
	bucket := []byte(accountURL)
	if err := m.store.CreateBucket(bucket); err != nil {
		return err
	}
	return m.store.AddToBucket(
		bucket, privateKeyID, []byte(hex.EncodeToString(privateKey)),
	)
}

func (m *keyManager) RetrieveKey(accountURL string) (ed25519.PrivateKey, bool, error) {
	value, err := m.store.GetFromBucket([]byte(accountURL), privateKeyID)
	if err != nil {
		if errors.Is(err, securestore.ErrBucketNotFound) {
			return nil, false, nil
		}
		return nil, false, err
	}
	if len(value) == 0 {
		return nil, false, nil
	}

	raw, err := hex.DecodeString(string(value))
	if err != nil {
		return nil, false, fmt.Errorf("decoding stored private key: %w", err)
	}
	return ed25519.PrivateKey(raw), true, nil
}

func (m *keyManager) DeleteKey(accountURL string) error {
	err := m.store.RemoveBucket([]byte(accountURL))
	if errors.Is(err, securestore.ErrBucketNotFound) {
		return nil
	}
	return err
}

func (m *keyManager) NewLiteSigner(addr string) (ledgerclient.Signer, bool, error) {
	normalized := address.NormalizeLite(addr)

	priv, found, err := m.RetrieveKey(normalized)
	if err != nil {
		return nil, false, err
	}
	signerURL := normalized

	if !found && normalized != addr {
		// The key may have been persisted under the unnormalized form by an
		// older version of the wallet. The fallback is explicit and logged
		// so it stays observable, never silent magic.
		priv, found, err = m.RetrieveKey(addr)
		if err != nil {
			return nil, false, err
		}
		if found {
			log.Warnf(
				"private key for %s resolved under raw form %s, not its base form",
				normalized, addr,
			)
			signerURL = addr
		}
	}
	if !found {
		return nil, false, nil
	}

	return &signer{url: signerURL, privateKey: priv}, true, nil
}

func (m *keyManager) NewPageSigner(
	pageURL string, version uint64,
) (ledgerclient.Signer, bool, error) {
	// Exact-URL lookup, no normalization: key pages have one spelling.
	priv, found, err := m.RetrieveKey(pageURL)
	if err != nil || !found {
		return nil, false, err
	}
	return &signer{url: pageURL, privateKey: priv, version: version}, true, nil
}

// signer binds an address and a private key, plus the key page version for
// identity signers. It produces detached ed25519 signatures.
type signer struct {
	url        string
	privateKey ed25519.PrivateKey
	version    uint64
}

func (s *signer) URL() string { return s.url }

func (s *signer) PublicKey() []byte {
	return s.privateKey.Public().(ed25519.PublicKey)
}

func (s *signer) Version() uint64 { return s.version }

func (s *signer) Sign(payload []byte) []byte {
	return ed25519.Sign(s.privateKey, payload)
}
