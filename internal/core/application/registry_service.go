package application

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"github.com/accuwallet/walletcore/internal/core/domain"
	"github.com/accuwallet/walletcore/pkg/address"
)

// RegistryService maintains the local relational mirror of the on-chain
// identity hierarchy: CRUD plus hierarchy traversal. When a child entity
// arrives before its parent (out-of-order sync), the missing parent row is
// auto-created from the child URL with placeholder fields; this is a
// defensive repair path, logged at warn level, not a primary flow.
type RegistryService interface {
	CreateIdentity(ctx context.Context, url, name string) (*domain.Identity, error)
	GetIdentityByURL(ctx context.Context, url string) (*domain.Identity, error)
	ListIdentities(ctx context.Context) ([]domain.Identity, error)
	DeleteIdentity(ctx context.Context, url string) error
	IsIdentityNameAvailable(ctx context.Context, name string) (bool, error)

	CreateKeyBook(ctx context.Context, url, name, publicKeyHash string) (*domain.KeyBook, error)
	GetKeyBookByURL(ctx context.Context, url string) (*domain.KeyBook, error)
	ListKeyBooks(ctx context.Context, identityURL string) ([]domain.KeyBook, error)
	DeleteKeyBook(ctx context.Context, url string) error

	CreateKeyPage(ctx context.Context, url string) (*domain.KeyPage, error)
	GetKeyPageByURL(ctx context.Context, url string) (*domain.KeyPage, error)
	ListKeyPages(ctx context.Context, keyBookURL string) ([]domain.KeyPage, error)
	RecordKeyPageVersion(ctx context.Context, url string, version uint64) error
	DeleteKeyPage(ctx context.Context, url string) error

	CreateKey(ctx context.Context, pageURL, publicKey, publicKeyHash string, hasPrivateKey bool) (*domain.Key, error)
	ListKeys(ctx context.Context, pageURL string) ([]domain.Key, error)

	CreateTokenAccount(
		ctx context.Context, addr string, kind domain.AccountKind, tokenURL, name string,
	) (*domain.TokenAccount, error)
	GetTokenAccountByAddress(ctx context.Context, addr string) (*domain.TokenAccount, error)
	ListTokenAccounts(ctx context.Context, identityURL string) ([]domain.TokenAccount, error)
	DeleteTokenAccount(ctx context.Context, addr string) error

	CreateDataAccount(ctx context.Context, url, name string) (*domain.DataAccount, error)
	GetDataAccountByURL(ctx context.Context, url string) (*domain.DataAccount, error)
	ListDataAccounts(ctx context.Context, identityURL string) ([]domain.DataAccount, error)
	DeleteDataAccount(ctx context.Context, url string) error

	CreateCustomToken(
		ctx context.Context, url, name, symbol string, precision int, creatorIdentityURL string,
	) (*domain.CustomToken, error)
	GetCustomTokenByURL(ctx context.Context, url string) (*domain.CustomToken, error)
	ListCustomTokens(ctx context.Context) ([]domain.CustomToken, error)
	DeleteCustomToken(ctx context.Context, url string) error
	IsTokenNameAvailable(ctx context.Context, name string) (bool, error)
	IsTokenSymbolAvailable(ctx context.Context, symbol string) (bool, error)

	ListWalletAccounts(ctx context.Context) ([]domain.WalletAccount, error)
}

type registryService struct {
	identityRepo domain.IdentityRepository
	accountRepo  domain.AccountRepository
	tokenRepo    domain.TokenRepository
}

// NewRegistryService ...
func NewRegistryService(
	identityRepo domain.IdentityRepository,
	accountRepo domain.AccountRepository,
	tokenRepo domain.TokenRepository,
) RegistryService {
	return &registryService{
		identityRepo: identityRepo,
		accountRepo:  accountRepo,
		tokenRepo:    tokenRepo,
	}
}

func (s *registryService) CreateIdentity(
	ctx context.Context, url, name string,
) (*domain.Identity, error) {
	identity, err := domain.NewIdentity(address.Ensure(url), name)
	if err != nil {
		return nil, err
	}
	if _, err := s.identityRepo.AddIdentity(ctx, identity); err != nil {
		return nil, err
	}
	return identity, nil
}

func (s *registryService) GetIdentityByURL(
	ctx context.Context, url string,
) (*domain.Identity, error) {
	return s.identityRepo.GetIdentityByURL(ctx, address.Ensure(url))
}

func (s *registryService) ListIdentities(ctx context.Context) ([]domain.Identity, error) {
	return s.identityRepo.GetAllIdentities(ctx, false)
}

func (s *registryService) DeleteIdentity(ctx context.Context, url string) error {
	return s.identityRepo.DeleteIdentity(ctx, address.Ensure(url))
}

func (s *registryService) IsIdentityNameAvailable(
	ctx context.Context, name string,
) (bool, error) {
	if !domain.IsValidName(name) {
		return false, domain.ErrInvalidName
	}
	identity, err := s.identityRepo.GetIdentityByURL(
		ctx, address.Scheme+strings.ToLower(name)+address.TLD,
	)
	if err != nil {
		return false, err
	}
	return identity == nil, nil
}

// identityForChild resolves the parent identity of a child URL, auto-creating
// a minimal placeholder row when the mirror does not have it yet.
func (s *registryService) identityForChild(
	ctx context.Context, childURL string,
) (*domain.Identity, error) {
	identityURL, err := address.Identity(childURL)
	if err != nil {
		return nil, err
	}

	identity, err := s.identityRepo.GetIdentityByURL(ctx, identityURL)
	if err != nil {
		return nil, err
	}
	if identity != nil {
		return identity, nil
	}

	log.Warnf("auto-creating missing parent identity %s for %s", identityURL, childURL)
	name := strings.TrimSuffix(strings.TrimPrefix(identityURL, address.Scheme), address.TLD)
	identity, err = domain.NewIdentity(identityURL, name)
	if err != nil {
		return nil, fmt.Errorf("repairing parent identity %s: %w", identityURL, err)
	}
	if _, err := s.identityRepo.AddIdentity(ctx, identity); err != nil {
		return nil, err
	}
	return identity, nil
}

func (s *registryService) CreateKeyBook(
	ctx context.Context, url, name, publicKeyHash string,
) (*domain.KeyBook, error) {
	url = address.Ensure(url)
	identity, err := s.identityForChild(ctx, url)
	if err != nil {
		return nil, err
	}

	book, err := domain.NewKeyBook(url, name, identity.ID, publicKeyHash)
	if err != nil {
		return nil, err
	}
	if _, err := s.identityRepo.AddKeyBook(ctx, book); err != nil {
		return nil, err
	}
	return book, nil
}

func (s *registryService) GetKeyBookByURL(
	ctx context.Context, url string,
) (*domain.KeyBook, error) {
	return s.identityRepo.GetKeyBookByURL(ctx, address.Ensure(url))
}

func (s *registryService) ListKeyBooks(
	ctx context.Context, identityURL string,
) ([]domain.KeyBook, error) {
	identity, err := s.identityRepo.GetIdentityByURL(ctx, address.Ensure(identityURL))
	if err != nil {
		return nil, err
	}
	if identity == nil {
		return nil, ErrIdentityNotFound
	}
	return s.identityRepo.GetKeyBooksByIdentity(ctx, identity.ID)
}

func (s *registryService) DeleteKeyBook(ctx context.Context, url string) error {
	return s.identityRepo.DeleteKeyBook(ctx, address.Ensure(url))
}

// keyBookForPage resolves the parent book of a page URL (book URL + "/" +
// page index), auto-creating a placeholder book when missing.
func (s *registryService) keyBookForPage(
	ctx context.Context, pageURL string,
) (*domain.KeyBook, error) {
	i := strings.LastIndex(pageURL, "/")
	if i <= 0 {
		return nil, address.ErrInvalidAddress
	}
	bookURL := pageURL[:i]

	book, err := s.identityRepo.GetKeyBookByURL(ctx, bookURL)
	if err != nil {
		return nil, err
	}
	if book != nil {
		return book, nil
	}

	log.Warnf("auto-creating missing parent key book %s for %s", bookURL, pageURL)
	name := bookURL[strings.LastIndex(bookURL, "/")+1:]
	return s.CreateKeyBook(ctx, bookURL, name, "")
}

func (s *registryService) CreateKeyPage(
	ctx context.Context, url string,
) (*domain.KeyPage, error) {
	url = address.Ensure(url)
	book, err := s.keyBookForPage(ctx, url)
	if err != nil {
		return nil, err
	}

	page, err := domain.NewKeyPage(url, book.ID)
	if err != nil {
		return nil, err
	}
	if _, err := s.identityRepo.AddKeyPage(ctx, page); err != nil {
		return nil, err
	}
	return page, nil
}

func (s *registryService) GetKeyPageByURL(
	ctx context.Context, url string,
) (*domain.KeyPage, error) {
	return s.identityRepo.GetKeyPageByURL(ctx, address.Ensure(url))
}

func (s *registryService) ListKeyPages(
	ctx context.Context, keyBookURL string,
) ([]domain.KeyPage, error) {
	book, err := s.identityRepo.GetKeyBookByURL(ctx, address.Ensure(keyBookURL))
	if err != nil {
		return nil, err
	}
	if book == nil {
		return nil, ErrKeyBookNotFound
	}
	return s.identityRepo.GetKeyPagesByKeyBook(ctx, book.ID)
}

func (s *registryService) RecordKeyPageVersion(
	ctx context.Context, url string, version uint64,
) error {
	return s.identityRepo.UpdateKeyPageVersion(ctx, address.Ensure(url), version)
}

func (s *registryService) DeleteKeyPage(ctx context.Context, url string) error {
	return s.identityRepo.DeleteKeyPage(ctx, address.Ensure(url))
}

func (s *registryService) CreateKey(
	ctx context.Context, pageURL, publicKey, publicKeyHash string, hasPrivateKey bool,
) (*domain.Key, error) {
	page, err := s.identityRepo.GetKeyPageByURL(ctx, address.Ensure(pageURL))
	if err != nil {
		return nil, err
	}
	if page == nil {
		return nil, ErrKeyPageNotFound
	}

	key, err := domain.NewKey(publicKey, publicKeyHash, page.ID)
	if err != nil {
		return nil, err
	}
	key.HasPrivateKey = hasPrivateKey

	keys, err := s.identityRepo.GetKeysByKeyPage(ctx, page.ID)
	if err != nil {
		return nil, err
	}
	key.IsDefault = len(keys) == 0

	if _, err := s.identityRepo.AddKey(ctx, key); err != nil {
		return nil, err
	}
	return key, nil
}

func (s *registryService) ListKeys(
	ctx context.Context, pageURL string,
) ([]domain.Key, error) {
	page, err := s.identityRepo.GetKeyPageByURL(ctx, address.Ensure(pageURL))
	if err != nil {
		return nil, err
	}
	if page == nil {
		return nil, ErrKeyPageNotFound
	}
	return s.identityRepo.GetKeysByKeyPage(ctx, page.ID)
}

func (s *registryService) CreateTokenAccount(
	ctx context.Context, addr string, kind domain.AccountKind, tokenURL, name string,
) (*domain.TokenAccount, error) {
	var identityID uint64
	if kind == domain.AccountKindIdentity {
		addr = address.Ensure(addr)
		identity, err := s.identityForChild(ctx, addr)
		if err != nil {
			return nil, err
		}
		identityID = identity.ID
	}

	account, err := domain.NewTokenAccount(addr, kind, identityID, tokenURL)
	if err != nil {
		return nil, err
	}
	if _, err := s.accountRepo.AddTokenAccount(ctx, account); err != nil {
		return nil, err
	}

	registryRow := &domain.WalletAccount{
		ID:        uuid.New().String(),
		Address:   addr,
		Name:      name,
		Kind:      kind,
		TokenURL:  tokenURL,
		Active:    true,
		CreatedAt: account.CreatedAt,
	}
	if err := s.accountRepo.AddWalletAccount(ctx, registryRow); err != nil {
		return nil, err
	}

	return account, nil
}

func (s *registryService) GetTokenAccountByAddress(
	ctx context.Context, addr string,
) (*domain.TokenAccount, error) {
	return s.accountRepo.GetTokenAccountByAddress(ctx, addr)
}

func (s *registryService) ListTokenAccounts(
	ctx context.Context, identityURL string,
) ([]domain.TokenAccount, error) {
	identity, err := s.identityRepo.GetIdentityByURL(ctx, address.Ensure(identityURL))
	if err != nil {
		return nil, err
	}
	if identity == nil {
		return nil, ErrIdentityNotFound
	}
	return s.accountRepo.GetTokenAccountsByIdentity(ctx, identity.ID)
}

func (s *registryService) DeleteTokenAccount(ctx context.Context, addr string) error {
	if err := s.accountRepo.DeleteTokenAccount(ctx, addr); err != nil {
		return err
	}
	return s.accountRepo.RemoveWalletAccount(ctx, addr)
}

func (s *registryService) CreateDataAccount(
	ctx context.Context, url, name string,
) (*domain.DataAccount, error) {
	url = address.Ensure(url)
	identity, err := s.identityForChild(ctx, url)
	if err != nil {
		return nil, err
	}

	account, err := domain.NewDataAccount(url, name, identity.ID)
	if err != nil {
		return nil, err
	}
	if _, err := s.accountRepo.AddDataAccount(ctx, account); err != nil {
		return nil, err
	}
	return account, nil
}

func (s *registryService) GetDataAccountByURL(
	ctx context.Context, url string,
) (*domain.DataAccount, error) {
	return s.accountRepo.GetDataAccountByURL(ctx, address.Ensure(url))
}

func (s *registryService) ListDataAccounts(
	ctx context.Context, identityURL string,
) ([]domain.DataAccount, error) {
	identity, err := s.identityRepo.GetIdentityByURL(ctx, address.Ensure(identityURL))
	if err != nil {
		return nil, err
	}
	if identity == nil {
		return nil, ErrIdentityNotFound
	}
	return s.accountRepo.GetDataAccountsByIdentity(ctx, identity.ID)
}

func (s *registryService) DeleteDataAccount(ctx context.Context, url string) error {
	return s.accountRepo.DeleteDataAccount(ctx, address.Ensure(url))
}

func (s *registryService) CreateCustomToken(
	ctx context.Context, url, name, symbol string, precision int, creatorIdentityURL string,
) (*domain.CustomToken, error) {
	url = address.Ensure(url)

	// Local uniqueness pre-checks avoid a wasted transaction fee. The
	// network enforces uniqueness too and remains the source of truth.
	if available, err := s.IsTokenNameAvailable(ctx, name); err != nil {
		return nil, err
	} else if !available {
		return nil, ErrNameNotAvailable
	}
	if available, err := s.IsTokenSymbolAvailable(ctx, symbol); err != nil {
		return nil, err
	} else if !available {
		return nil, ErrSymbolNotAvailable
	}
	if existing, err := s.tokenRepo.GetTokenByURL(ctx, url); err != nil {
		return nil, err
	} else if existing != nil {
		return nil, ErrTokenURLNotAvailable
	}

	var creatorID uint64
	if creatorIdentityURL != "" {
		identity, err := s.identityRepo.GetIdentityByURL(ctx, address.Ensure(creatorIdentityURL))
		if err != nil {
			return nil, err
		}
		if identity == nil {
			return nil, ErrIdentityNotFound
		}
		creatorID = identity.ID
	}

	token, err := domain.NewCustomToken(url, name, symbol, precision, creatorID)
	if err != nil {
		return nil, err
	}
	if _, err := s.tokenRepo.AddToken(ctx, token); err != nil {
		return nil, err
	}
	return token, nil
}

func (s *registryService) GetCustomTokenByURL(
	ctx context.Context, url string,
) (*domain.CustomToken, error) {
	return s.tokenRepo.GetTokenByURL(ctx, address.Ensure(url))
}

func (s *registryService) ListCustomTokens(ctx context.Context) ([]domain.CustomToken, error) {
	return s.tokenRepo.GetAllTokens(ctx)
}

func (s *registryService) DeleteCustomToken(ctx context.Context, url string) error {
	return s.tokenRepo.DeleteToken(ctx, address.Ensure(url))
}

func (s *registryService) IsTokenNameAvailable(
	ctx context.Context, name string,
) (bool, error) {
	if !domain.IsValidName(name) {
		return false, domain.ErrInvalidName
	}
	token, err := s.tokenRepo.GetTokenByName(ctx, name)
	if err != nil {
		return false, err
	}
	return token == nil, nil
}

func (s *registryService) IsTokenSymbolAvailable(
	ctx context.Context, symbol string,
) (bool, error) {
	if !domain.IsValidSymbol(symbol) {
		return false, domain.ErrInvalidSymbol
	}
	token, err := s.tokenRepo.GetTokenBySymbol(ctx, symbol)
	if err != nil {
		return false, err
	}
	return token == nil, nil
}

func (s *registryService) ListWalletAccounts(
	ctx context.Context,
) ([]domain.WalletAccount, error) {
	return s.accountRepo.GetAllWalletAccounts(ctx)
}
