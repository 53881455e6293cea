package application

import (
	"context"
	"encoding/json"
	"fmt"

	log "github.com/sirupsen/logrus"

	"github.com/accuwallet/walletcore/internal/core/domain"
	"github.com/accuwallet/walletcore/pkg/address"
	"github.com/accuwallet/walletcore/pkg/ledgerclient"
	"github.com/accuwallet/walletcore/pkg/mathutil"
)

const (
	// DefaultKeyBookName is the name of the key book created together with a
	// new identity.
	DefaultKeyBookName = "book0"
	// DefaultKeyPageIndex is the index of the page every key book starts
	// with; it exists on-chain as soon as the book does.
	DefaultKeyPageIndex = "1"
)

// WalletService is the task-level facade consumed by the UI: it composes key
// management, the local mirror and the ledger client into whole operations.
//
// Every network-backed creation runs as a saga: the local mirror row is
// inserted speculatively, and compensated with a delete when the network
// rejects the transaction, so the mirror never keeps rows for rejected
// creations. Lite accounts are the exception: they exist without any network
// transaction.
type WalletService interface {
	// CreateLiteAccount generates a key pair, derives the lite address and
	// mirrors the account locally. No network call is involved.
	CreateLiteAccount(ctx context.Context, name string) (*domain.TokenAccount, error)
	// CreateIdentity creates an ADI on-chain, paid by the lite sponsor, and
	// mirrors the identity with its initial key book and page.
	CreateIdentity(
		ctx context.Context, sponsorAddr, identityURL, name string,
	) (*domain.Identity, *ledgerclient.SubmitResult, error)
	// CreateKeyBook adds a key book under an identity.
	CreateKeyBook(
		ctx context.Context, identityURL, name string,
	) (*domain.KeyBook, *ledgerclient.SubmitResult, error)
	// CreateKeyPage adds a page to a key book, seeded with a fresh key.
	CreateKeyPage(
		ctx context.Context, keyBookURL string,
	) (*domain.KeyPage, *ledgerclient.SubmitResult, error)
	// CreateTokenAccount creates an identity-owned token account.
	CreateTokenAccount(
		ctx context.Context, identityURL, name, tokenURL string,
	) (*domain.TokenAccount, *ledgerclient.SubmitResult, error)
	// CreateDataAccount creates a data account under an identity.
	CreateDataAccount(
		ctx context.Context, identityURL, name string,
	) (*domain.DataAccount, *ledgerclient.SubmitResult, error)
	// CreateCustomToken issues a new token type from an identity.
	CreateCustomToken(
		ctx context.Context, identityURL, name, symbol string, precision int,
	) (*domain.CustomToken, *ledgerclient.SubmitResult, error)
	// IssueTokens mints an amount of a custom token to a recipient.
	IssueTokens(
		ctx context.Context, tokenURL, recipient, amount string,
	) (*ledgerclient.SubmitResult, error)
	// BurnTokens burns an amount held by a token account.
	BurnTokens(
		ctx context.Context, accountAddr, amount string,
	) (*ledgerclient.SubmitResult, error)
	// SendTokens transfers native tokens between accounts, signing with
	// whichever signer the sender's address form requires.
	SendTokens(
		ctx context.Context, fromAddr, toAddr, amount string,
	) (*ledgerclient.SubmitResult, error)
	// AddCredits converts tokens into credits for the recipient at the
	// current oracle rate.
	AddCredits(
		ctx context.Context, fromAddr, recipient string, credits uint64,
	) (*CreditPreview, *ledgerclient.SubmitResult, error)
	// WriteData appends an entry to a data account.
	WriteData(
		ctx context.Context, dataAccountURL string, data []byte,
	) (*ledgerclient.SubmitResult, error)
	// Balance queries and formats an account's token balance.
	Balance(ctx context.Context, addr string) (string, error)
	// ListAccounts returns the unified wallet account registry.
	ListAccounts(ctx context.Context) ([]domain.WalletAccount, error)
}

type walletService struct {
	keyManager KeyManager
	registry   RegistryService
	submitter  TxSubmitter
	credits    CreditService
	client     ledgerclient.Service
	tokenURL   string
}

// NewWalletService returns the facade. nativeTokenURL is the chain URL of
// the network's fungible token, denominated by every lite account.
func NewWalletService(
	keyManager KeyManager,
	registry RegistryService,
	submitter TxSubmitter,
	credits CreditService,
	client ledgerclient.Service,
	nativeTokenURL string,
) WalletService {
	return &walletService{
		keyManager: keyManager,
		registry:   registry,
		submitter:  submitter,
		credits:    credits,
		client:     client,
		tokenURL:   nativeTokenURL,
	}
}

func (s *walletService) CreateLiteAccount(
	ctx context.Context, name string,
) (*domain.TokenAccount, error) {
	keyPair, err := s.keyManager.GenerateKeyPair()
	if err != nil {
		return nil, err
	}

	liteAddr := s.keyManager.DeriveLiteAddress(keyPair.PublicKeyHash)
	// The private key is stored under the base form only; that is the
	// canonical storage key, token-account forms are normalized on lookup.
	if err := s.keyManager.StoreKey(liteAddr, keyPair.PrivateKey); err != nil {
		return nil, err
	}

	accountAddr := address.LiteTokenAccount(liteAddr, address.ACME)
	account, err := s.registry.CreateTokenAccount(
		ctx, accountAddr, domain.AccountKindLite, s.tokenURL, name,
	)
	if err != nil {
		// Creating the mirror row failed; don't keep an unreachable key.
		if delErr := s.keyManager.DeleteKey(liteAddr); delErr != nil {
			log.WithError(delErr).Warnf("could not remove orphaned key for %s", liteAddr)
		}
		return nil, err
	}

	return account, nil
}

func (s *walletService) CreateIdentity(
	ctx context.Context, sponsorAddr, identityURL, name string,
) (*domain.Identity, *ledgerclient.SubmitResult, error) {
	if !domain.IsValidName(name) {
		return nil, nil, domain.ErrInvalidName
	}

	signer, err := s.submitter.LiteSigner(sponsorAddr)
	if err != nil {
		return nil, nil, err
	}

	keyPair, err := s.keyManager.GenerateKeyPair()
	if err != nil {
		return nil, nil, err
	}

	identityURL = address.Ensure(identityURL)
	bookURL := address.Join(identityURL, DefaultKeyBookName)
	pageURL := address.Join(bookURL, DefaultKeyPageIndex)

	identity, err := s.registry.CreateIdentity(ctx, identityURL, name)
	if err != nil {
		return nil, nil, err
	}

	res, err := s.submitter.Submit(ctx, "create identity", func() (*ledgerclient.SubmitResult, error) {
		return s.client.CreateIdentity(ctx, signer.URL(), ledgerclient.CreateIdentityParams{
			URL:           identityURL,
			KeyBookName:   DefaultKeyBookName,
			KeyPageName:   DefaultKeyPageIndex,
			PublicKeyHash: keyPair.PublicKeyHashHex(),
		}, signer)
	})
	if err != nil || !res.Ok {
		s.rollback(ctx, "identity", identityURL, func() error {
			return s.registry.DeleteIdentity(ctx, identityURL)
		})
		return nil, res, err
	}

	// Mirror the book and page the network created along with the ADI, and
	// store the page's signing key under its exact URL.
	if err := s.keyManager.StoreKey(pageURL, keyPair.PrivateKey); err != nil {
		return nil, nil, err
	}
	if _, err := s.registry.CreateKeyBook(
		ctx, bookURL, DefaultKeyBookName, keyPair.PublicKeyHashHex(),
	); err != nil {
		return nil, nil, err
	}
	if _, err := s.registry.CreateKeyPage(ctx, pageURL); err != nil {
		return nil, nil, err
	}
	if _, err := s.registry.CreateKey(
		ctx, pageURL, keyPair.PublicKeyHex(), keyPair.PublicKeyHashHex(), true,
	); err != nil {
		return nil, nil, err
	}

	return identity, res, nil
}

// defaultKeyPage resolves the page that signs for an identity: the first
// page of its first key book.
func (s *walletService) defaultKeyPage(
	ctx context.Context, identityURL string,
) (string, error) {
	books, err := s.registry.ListKeyBooks(ctx, identityURL)
	if err != nil {
		return "", err
	}
	if len(books) == 0 {
		return "", fmt.Errorf("%w: no key book for %s", ErrKeyBookNotFound, identityURL)
	}

	pages, err := s.registry.ListKeyPages(ctx, books[0].URL)
	if err != nil {
		return "", err
	}
	if len(pages) == 0 {
		return "", fmt.Errorf("%w: no key page in %s", ErrKeyPageNotFound, books[0].URL)
	}
	return pages[0].URL, nil
}

func (s *walletService) CreateKeyBook(
	ctx context.Context, identityURL, name string,
) (*domain.KeyBook, *ledgerclient.SubmitResult, error) {
	if !domain.IsValidName(name) {
		return nil, nil, domain.ErrInvalidName
	}

	identityURL = address.Ensure(identityURL)
	pageURL, err := s.defaultKeyPage(ctx, identityURL)
	if err != nil {
		return nil, nil, err
	}
	signer, err := s.submitter.PageSigner(ctx, pageURL)
	if err != nil {
		return nil, nil, err
	}

	keyPair, err := s.keyManager.GenerateKeyPair()
	if err != nil {
		return nil, nil, err
	}

	bookURL := address.Join(identityURL, name)
	newPageURL := address.Join(bookURL, DefaultKeyPageIndex)

	book, err := s.registry.CreateKeyBook(ctx, bookURL, name, keyPair.PublicKeyHashHex())
	if err != nil {
		return nil, nil, err
	}

	res, err := s.submitter.Submit(ctx, "create key book", func() (*ledgerclient.SubmitResult, error) {
		return s.client.CreateKeyBook(ctx, identityURL, ledgerclient.CreateKeyBookParams{
			URL:      bookURL,
			PageURLs: []string{newPageURL},
		}, signer)
	})
	if err != nil || !res.Ok {
		s.rollback(ctx, "key book", bookURL, func() error {
			return s.registry.DeleteKeyBook(ctx, bookURL)
		})
		return nil, res, err
	}

	if err := s.keyManager.StoreKey(newPageURL, keyPair.PrivateKey); err != nil {
		return nil, nil, err
	}
	if _, err := s.registry.CreateKeyPage(ctx, newPageURL); err != nil {
		return nil, nil, err
	}
	if _, err := s.registry.CreateKey(
		ctx, newPageURL, keyPair.PublicKeyHex(), keyPair.PublicKeyHashHex(), true,
	); err != nil {
		return nil, nil, err
	}

	return book, res, nil
}

func (s *walletService) CreateKeyPage(
	ctx context.Context, keyBookURL string,
) (*domain.KeyPage, *ledgerclient.SubmitResult, error) {
	keyBookURL = address.Ensure(keyBookURL)

	book, err := s.registry.GetKeyBookByURL(ctx, keyBookURL)
	if err != nil {
		return nil, nil, err
	}
	if book == nil {
		return nil, nil, ErrKeyBookNotFound
	}

	pages, err := s.registry.ListKeyPages(ctx, keyBookURL)
	if err != nil {
		return nil, nil, err
	}
	newPageURL := address.Join(keyBookURL, fmt.Sprintf("%d", len(pages)+1))

	identityURL, err := address.Identity(keyBookURL)
	if err != nil {
		return nil, nil, err
	}
	signerPageURL, err := s.defaultKeyPage(ctx, identityURL)
	if err != nil {
		return nil, nil, err
	}
	signer, err := s.submitter.PageSigner(ctx, signerPageURL)
	if err != nil {
		return nil, nil, err
	}

	keyPair, err := s.keyManager.GenerateKeyPair()
	if err != nil {
		return nil, nil, err
	}

	page, err := s.registry.CreateKeyPage(ctx, newPageURL)
	if err != nil {
		return nil, nil, err
	}

	res, err := s.submitter.Submit(ctx, "create key page", func() (*ledgerclient.SubmitResult, error) {
		return s.client.CreateKeyPage(ctx, keyBookURL, ledgerclient.CreateKeyPageParams{
			URL: newPageURL,
			Keys: []ledgerclient.KeySpecParams{
				{PublicKeyHash: keyPair.PublicKeyHashHex()},
			},
		}, signer)
	})
	if err != nil || !res.Ok {
		s.rollback(ctx, "key page", newPageURL, func() error {
			return s.registry.DeleteKeyPage(ctx, newPageURL)
		})
		return nil, res, err
	}

	if err := s.keyManager.StoreKey(newPageURL, keyPair.PrivateKey); err != nil {
		return nil, nil, err
	}
	if _, err := s.registry.CreateKey(
		ctx, newPageURL, keyPair.PublicKeyHex(), keyPair.PublicKeyHashHex(), true,
	); err != nil {
		return nil, nil, err
	}

	return page, res, nil
}

func (s *walletService) CreateTokenAccount(
	ctx context.Context, identityURL, name, tokenURL string,
) (*domain.TokenAccount, *ledgerclient.SubmitResult, error) {
	if !domain.IsValidName(name) {
		return nil, nil, domain.ErrInvalidName
	}
	if tokenURL == "" {
		tokenURL = s.tokenURL
	}

	identityURL = address.Ensure(identityURL)
	accountAddr := address.Join(identityURL, name)

	pageURL, err := s.defaultKeyPage(ctx, identityURL)
	if err != nil {
		return nil, nil, err
	}
	signer, err := s.submitter.PageSigner(ctx, pageURL)
	if err != nil {
		return nil, nil, err
	}

	account, err := s.registry.CreateTokenAccount(
		ctx, accountAddr, domain.AccountKindIdentity, tokenURL, name,
	)
	if err != nil {
		return nil, nil, err
	}

	res, err := s.submitter.Submit(ctx, "create token account", func() (*ledgerclient.SubmitResult, error) {
		return s.client.CreateTokenAccount(ctx, identityURL, ledgerclient.CreateTokenAccountParams{
			URL:      accountAddr,
			TokenURL: tokenURL,
		}, signer)
	})
	if err != nil || !res.Ok {
		s.rollback(ctx, "token account", accountAddr, func() error {
			return s.registry.DeleteTokenAccount(ctx, accountAddr)
		})
		return nil, res, err
	}

	return account, res, nil
}

func (s *walletService) CreateDataAccount(
	ctx context.Context, identityURL, name string,
) (*domain.DataAccount, *ledgerclient.SubmitResult, error) {
	if !domain.IsValidName(name) {
		return nil, nil, domain.ErrInvalidName
	}

	identityURL = address.Ensure(identityURL)
	accountURL := address.Join(identityURL, name)

	pageURL, err := s.defaultKeyPage(ctx, identityURL)
	if err != nil {
		return nil, nil, err
	}
	signer, err := s.submitter.PageSigner(ctx, pageURL)
	if err != nil {
		return nil, nil, err
	}

	account, err := s.registry.CreateDataAccount(ctx, accountURL, name)
	if err != nil {
		return nil, nil, err
	}

	res, err := s.submitter.Submit(ctx, "create data account", func() (*ledgerclient.SubmitResult, error) {
		return s.client.CreateDataAccount(ctx, identityURL, ledgerclient.CreateDataAccountParams{
			URL: accountURL,
		}, signer)
	})
	if err != nil || !res.Ok {
		s.rollback(ctx, "data account", accountURL, func() error {
			return s.registry.DeleteDataAccount(ctx, accountURL)
		})
		return nil, res, err
	}

	return account, res, nil
}

func (s *walletService) CreateCustomToken(
	ctx context.Context, identityURL, name, symbol string, precision int,
) (*domain.CustomToken, *ledgerclient.SubmitResult, error) {
	identityURL = address.Ensure(identityURL)
	tokenURL := address.Join(identityURL, name)

	pageURL, err := s.defaultKeyPage(ctx, identityURL)
	if err != nil {
		return nil, nil, err
	}
	signer, err := s.submitter.PageSigner(ctx, pageURL)
	if err != nil {
		return nil, nil, err
	}

	token, err := s.registry.CreateCustomToken(
		ctx, tokenURL, name, symbol, precision, identityURL,
	)
	if err != nil {
		return nil, nil, err
	}

	res, err := s.submitter.Submit(ctx, "create token", func() (*ledgerclient.SubmitResult, error) {
		return s.client.CreateToken(ctx, identityURL, ledgerclient.CreateTokenParams{
			URL:       tokenURL,
			Symbol:    symbol,
			Precision: precision,
		}, signer)
	})
	if err != nil || !res.Ok {
		s.rollback(ctx, "custom token", tokenURL, func() error {
			return s.registry.DeleteCustomToken(ctx, tokenURL)
		})
		return nil, res, err
	}

	return token, res, nil
}

func (s *walletService) IssueTokens(
	ctx context.Context, tokenURL, recipient, amount string,
) (*ledgerclient.SubmitResult, error) {
	tokenURL = address.Ensure(tokenURL)

	token, err := s.registry.GetCustomTokenByURL(ctx, tokenURL)
	if err != nil {
		return nil, err
	}
	if token == nil {
		return nil, fmt.Errorf("%w: %s is not a token issued by this wallet", ErrTokenURLNotAvailable, tokenURL)
	}

	baseUnits, err := mathutil.ParseTokenAmount(amount, token.Precision)
	if err != nil {
		return nil, err
	}
	if baseUnits == 0 {
		return nil, ErrZeroAmount
	}

	identityURL, err := address.Identity(tokenURL)
	if err != nil {
		return nil, err
	}
	pageURL, err := s.defaultKeyPage(ctx, identityURL)
	if err != nil {
		return nil, err
	}
	signer, err := s.submitter.PageSigner(ctx, pageURL)
	if err != nil {
		return nil, err
	}

	return s.submitter.Submit(ctx, "issue tokens", func() (*ledgerclient.SubmitResult, error) {
		return s.client.IssueTokens(ctx, tokenURL, ledgerclient.IssueTokensParams{
			Recipient: recipient,
			Amount:    baseUnits,
		}, signer)
	})
}

func (s *walletService) BurnTokens(
	ctx context.Context, accountAddr, amount string,
) (*ledgerclient.SubmitResult, error) {
	account, err := s.registry.GetTokenAccountByAddress(ctx, accountAddr)
	if err != nil {
		return nil, err
	}

	precision := domain.DefaultTokenPrecision
	if account != nil {
		if token, err := s.registry.GetCustomTokenByURL(ctx, account.TokenURL); err == nil && token != nil {
			precision = token.Precision
		}
	}

	baseUnits, err := mathutil.ParseTokenAmount(amount, precision)
	if err != nil {
		return nil, err
	}
	if baseUnits == 0 {
		return nil, ErrZeroAmount
	}

	signer, err := s.signerForAccount(ctx, accountAddr)
	if err != nil {
		return nil, err
	}

	return s.submitter.Submit(ctx, "burn tokens", func() (*ledgerclient.SubmitResult, error) {
		return s.client.BurnTokens(ctx, accountAddr, ledgerclient.BurnTokensParams{
			Amount: baseUnits,
		}, signer)
	})
}

func (s *walletService) SendTokens(
	ctx context.Context, fromAddr, toAddr, amount string,
) (*ledgerclient.SubmitResult, error) {
	baseUnits, err := mathutil.ParseTokenAmount(amount, domain.DefaultTokenPrecision)
	if err != nil {
		return nil, err
	}
	if baseUnits == 0 {
		return nil, ErrZeroAmount
	}

	signer, err := s.signerForAccount(ctx, fromAddr)
	if err != nil {
		return nil, err
	}

	return s.submitter.Submit(ctx, "send tokens", func() (*ledgerclient.SubmitResult, error) {
		return s.client.SendTokens(ctx, fromAddr, ledgerclient.SendTokensParams{
			To:     toAddr,
			Amount: baseUnits,
		}, signer)
	})
}

func (s *walletService) AddCredits(
	ctx context.Context, fromAddr, recipient string, credits uint64,
) (*CreditPreview, *ledgerclient.SubmitResult, error) {
	preview, err := s.credits.PreviewAddCredits(ctx, credits)
	if err != nil {
		return nil, nil, err
	}

	signer, err := s.signerForAccount(ctx, fromAddr)
	if err != nil {
		return nil, nil, err
	}

	res, err := s.submitter.Submit(ctx, "add credits", func() (*ledgerclient.SubmitResult, error) {
		return s.client.AddCredits(ctx, fromAddr, ledgerclient.AddCreditsParams{
			Recipient: recipient,
			Amount:    preview.TokenAmount,
			Oracle:    preview.OracleValue,
		}, signer)
	})
	if err != nil {
		return preview, nil, err
	}
	return preview, res, nil
}

func (s *walletService) WriteData(
	ctx context.Context, dataAccountURL string, data []byte,
) (*ledgerclient.SubmitResult, error) {
	if len(data) == 0 {
		return nil, ErrEmptyData
	}

	dataAccountURL = address.Ensure(dataAccountURL)
	account, err := s.registry.GetDataAccountByURL(ctx, dataAccountURL)
	if err != nil {
		return nil, err
	}
	if account == nil {
		return nil, fmt.Errorf("data account %s not found locally", dataAccountURL)
	}

	identityURL, err := address.Identity(dataAccountURL)
	if err != nil {
		return nil, err
	}
	pageURL, err := s.defaultKeyPage(ctx, identityURL)
	if err != nil {
		return nil, err
	}
	signer, err := s.submitter.PageSigner(ctx, pageURL)
	if err != nil {
		return nil, err
	}

	return s.submitter.Submit(ctx, "write data", func() (*ledgerclient.SubmitResult, error) {
		return s.client.WriteData(ctx, dataAccountURL, ledgerclient.WriteDataParams{
			Data: data,
		}, signer)
	})
}

func (s *walletService) Balance(ctx context.Context, addr string) (string, error) {
	result, err := s.client.QueryUrl(ctx, addr)
	if err != nil {
		return "", err
	}

	var state struct {
		Balance uint64 `json:"balance"`
		Data    struct {
			Balance uint64 `json:"balance"`
		} `json:"data"`
	}
	if err := json.Unmarshal(result, &state); err != nil {
		return "", fmt.Errorf("parsing account state: %w", err)
	}

	balance := state.Balance
	if balance == 0 {
		balance = state.Data.Balance
	}
	return mathutil.FormatTokenAmount(balance, domain.DefaultTokenPrecision)
}

func (s *walletService) ListAccounts(ctx context.Context) ([]domain.WalletAccount, error) {
	return s.registry.ListWalletAccounts(ctx)
}

// signerForAccount picks the signer an account address requires: the lite
// signer for lite addresses, the identity's default key page otherwise.
func (s *walletService) signerForAccount(
	ctx context.Context, addr string,
) (ledgerclient.Signer, error) {
	if address.IsLite(address.NormalizeLite(addr)) {
		return s.submitter.LiteSigner(addr)
	}

	identityURL, err := address.Identity(addr)
	if err != nil {
		return nil, err
	}
	pageURL, err := s.defaultKeyPage(ctx, identityURL)
	if err != nil {
		return nil, err
	}
	return s.submitter.PageSigner(ctx, pageURL)
}

// rollback compensates the speculative local insert of a rejected creation.
// The mirror must never keep rows for creations the network refused.
func (s *walletService) rollback(
	_ context.Context, kind, url string, del func() error,
) {
	if err := del(); err != nil {
		log.WithError(err).Errorf("could not roll back speculative %s row %s", kind, url)
		return
	}
	log.Debugf("rolled back speculative %s row %s", kind, url)
}
