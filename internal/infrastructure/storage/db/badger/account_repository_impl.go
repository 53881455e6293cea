package dbbadger

import (
	"context"
	"errors"

	"github.com/timshannon/badgerhold/v4"

	"github.com/accuwallet/walletcore/internal/core/domain"
)

type accountRepositoryImpl struct {
	db *DbManager
}

// NewAccountRepositoryImpl returns the badger implementation of
// domain.AccountRepository.
func NewAccountRepositoryImpl(db *DbManager) domain.AccountRepository {
	return accountRepositoryImpl{db: db}
}

func (r accountRepositoryImpl) AddTokenAccount(
	_ context.Context, account *domain.TokenAccount,
) (uint64, error) {
	if err := r.db.AccountStore.Insert(badgerhold.NextSequence(), account); err != nil {
		return 0, err
	}
	return account.ID, nil
}

func (r accountRepositoryImpl) GetTokenAccountByAddress(
	_ context.Context, address string,
) (*domain.TokenAccount, error) {
	var account domain.TokenAccount
	if err := r.db.AccountStore.FindOne(
		&account, badgerhold.Where("Address").Eq(address),
	); err != nil {
		if errors.Is(err, badgerhold.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &account, nil
}

func (r accountRepositoryImpl) GetTokenAccountsByIdentity(
	_ context.Context, identityID uint64,
) ([]domain.TokenAccount, error) {
	var accounts []domain.TokenAccount
	if err := r.db.AccountStore.Find(
		&accounts,
		badgerhold.Where("IdentityID").Eq(identityID).And("Active").Eq(true),
	); err != nil {
		return nil, err
	}
	return accounts, nil
}

func (r accountRepositoryImpl) GetAllTokenAccounts(
	_ context.Context, includeInactive bool,
) ([]domain.TokenAccount, error) {
	var accounts []domain.TokenAccount
	query := &badgerhold.Query{}
	if !includeInactive {
		query = badgerhold.Where("Active").Eq(true)
	}
	if err := r.db.AccountStore.Find(&accounts, query); err != nil {
		return nil, err
	}
	return accounts, nil
}

func (r accountRepositoryImpl) DeactivateTokenAccount(
	_ context.Context, address string,
) error {
	return r.db.AccountStore.UpdateMatching(
		&domain.TokenAccount{}, badgerhold.Where("Address").Eq(address),
		func(record interface{}) error {
			account, ok := record.(*domain.TokenAccount)
			if !ok {
				return errors.New("record is not a token account")
			}
			account.Active = false
			return nil
		},
	)
}

func (r accountRepositoryImpl) DeleteTokenAccount(
	_ context.Context, address string,
) error {
	return r.db.AccountStore.DeleteMatching(
		&domain.TokenAccount{}, badgerhold.Where("Address").Eq(address),
	)
}

func (r accountRepositoryImpl) AddDataAccount(
	_ context.Context, account *domain.DataAccount,
) (uint64, error) {
	if err := r.db.AccountStore.Insert(badgerhold.NextSequence(), account); err != nil {
		return 0, err
	}
	return account.ID, nil
}

func (r accountRepositoryImpl) GetDataAccountByURL(
	_ context.Context, url string,
) (*domain.DataAccount, error) {
	var account domain.DataAccount
	if err := r.db.AccountStore.FindOne(
		&account, badgerhold.Where("URL").Eq(url),
	); err != nil {
		if errors.Is(err, badgerhold.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &account, nil
}

func (r accountRepositoryImpl) GetDataAccountsByIdentity(
	_ context.Context, identityID uint64,
) ([]domain.DataAccount, error) {
	var accounts []domain.DataAccount
	if err := r.db.AccountStore.Find(
		&accounts,
		badgerhold.Where("IdentityID").Eq(identityID).And("Active").Eq(true),
	); err != nil {
		return nil, err
	}
	return accounts, nil
}

func (r accountRepositoryImpl) DeactivateDataAccount(
	_ context.Context, url string,
) error {
	return r.db.AccountStore.UpdateMatching(
		&domain.DataAccount{}, badgerhold.Where("URL").Eq(url),
		func(record interface{}) error {
			account, ok := record.(*domain.DataAccount)
			if !ok {
				return errors.New("record is not a data account")
			}
			account.Active = false
			return nil
		},
	)
}

func (r accountRepositoryImpl) DeleteDataAccount(
	_ context.Context, url string,
) error {
	return r.db.AccountStore.DeleteMatching(
		&domain.DataAccount{}, badgerhold.Where("URL").Eq(url),
	)
}

func (r accountRepositoryImpl) AddWalletAccount(
	_ context.Context, account *domain.WalletAccount,
) error {
	return r.db.AccountStore.Insert(account.ID, account)
}

func (r accountRepositoryImpl) GetAllWalletAccounts(
	_ context.Context,
) ([]domain.WalletAccount, error) {
	var accounts []domain.WalletAccount
	if err := r.db.AccountStore.Find(
		&accounts, badgerhold.Where("Active").Eq(true),
	); err != nil {
		return nil, err
	}
	return accounts, nil
}

func (r accountRepositoryImpl) RemoveWalletAccount(
	_ context.Context, address string,
) error {
	return r.db.AccountStore.DeleteMatching(
		&domain.WalletAccount{}, badgerhold.Where("Address").Eq(address),
	)
}
