package dbbadger

import (
	"context"
	"errors"

	"github.com/timshannon/badgerhold/v4"

	"github.com/accuwallet/walletcore/internal/core/domain"
)

type tokenRepositoryImpl struct {
	db *DbManager
}

// NewTokenRepositoryImpl returns the badger implementation of
// domain.TokenRepository.
func NewTokenRepositoryImpl(db *DbManager) domain.TokenRepository {
	return tokenRepositoryImpl{db: db}
}

func (r tokenRepositoryImpl) AddToken(
	_ context.Context, token *domain.CustomToken,
) (uint64, error) {
	if err := r.db.TokenStore.Insert(badgerhold.NextSequence(), token); err != nil {
		return 0, err
	}
	return token.ID, nil
}

func (r tokenRepositoryImpl) GetTokenByURL(
	_ context.Context, url string,
) (*domain.CustomToken, error) {
	return r.findOne(badgerhold.Where("URL").Eq(url))
}

func (r tokenRepositoryImpl) GetTokenBySymbol(
	_ context.Context, symbol string,
) (*domain.CustomToken, error) {
	return r.findOne(badgerhold.Where("Symbol").Eq(symbol))
}

func (r tokenRepositoryImpl) GetTokenByName(
	_ context.Context, name string,
) (*domain.CustomToken, error) {
	return r.findOne(badgerhold.Where("Name").Eq(name))
}

func (r tokenRepositoryImpl) GetAllTokens(
	_ context.Context,
) ([]domain.CustomToken, error) {
	var tokens []domain.CustomToken
	if err := r.db.TokenStore.Find(&tokens, &badgerhold.Query{}); err != nil {
		return nil, err
	}
	return tokens, nil
}

func (r tokenRepositoryImpl) DeleteToken(_ context.Context, url string) error {
	return r.db.TokenStore.DeleteMatching(
		&domain.CustomToken{}, badgerhold.Where("URL").Eq(url),
	)
}

func (r tokenRepositoryImpl) findOne(query *badgerhold.Query) (*domain.CustomToken, error) {
	var token domain.CustomToken
	if err := r.db.TokenStore.FindOne(&token, query); err != nil {
		if errors.Is(err, badgerhold.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &token, nil
}
