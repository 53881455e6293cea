package dbbadger

import (
	"context"
	"errors"

	"github.com/timshannon/badgerhold/v4"

	"github.com/accuwallet/walletcore/internal/core/domain"
)

type identityRepositoryImpl struct {
	db *DbManager
}

// NewIdentityRepositoryImpl returns the badger implementation of
// domain.IdentityRepository.
func NewIdentityRepositoryImpl(db *DbManager) domain.IdentityRepository {
	return identityRepositoryImpl{db: db}
}

func (r identityRepositoryImpl) AddIdentity(
	_ context.Context, identity *domain.Identity,
) (uint64, error) {
	if err := r.db.IdentityStore.Insert(badgerhold.NextSequence(), identity); err != nil {
		return 0, err
	}
	return identity.ID, nil
}

func (r identityRepositoryImpl) GetIdentityByURL(
	_ context.Context, url string,
) (*domain.Identity, error) {
	var identity domain.Identity
	if err := r.db.IdentityStore.FindOne(
		&identity, badgerhold.Where("URL").Eq(url),
	); err != nil {
		if errors.Is(err, badgerhold.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &identity, nil
}

func (r identityRepositoryImpl) GetIdentityByID(
	_ context.Context, id uint64,
) (*domain.Identity, error) {
	var identity domain.Identity
	if err := r.db.IdentityStore.Get(id, &identity); err != nil {
		if errors.Is(err, badgerhold.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &identity, nil
}

func (r identityRepositoryImpl) GetAllIdentities(
	_ context.Context, includeInactive bool,
) ([]domain.Identity, error) {
	var identities []domain.Identity
	query := &badgerhold.Query{}
	if !includeInactive {
		query = badgerhold.Where("Active").Eq(true)
	}
	if err := r.db.IdentityStore.Find(&identities, query); err != nil {
		return nil, err
	}
	return identities, nil
}

func (r identityRepositoryImpl) DeactivateIdentity(
	_ context.Context, url string,
) error {
	return r.db.IdentityStore.UpdateMatching(
		&domain.Identity{}, badgerhold.Where("URL").Eq(url),
		func(record interface{}) error {
			identity, ok := record.(*domain.Identity)
			if !ok {
				return errors.New("record is not an identity")
			}
			identity.Active = false
			return nil
		},
	)
}

func (r identityRepositoryImpl) DeleteIdentity(
	_ context.Context, url string,
) error {
	return r.db.IdentityStore.DeleteMatching(
		&domain.Identity{}, badgerhold.Where("URL").Eq(url),
	)
}

func (r identityRepositoryImpl) AddKeyBook(
	_ context.Context, book *domain.KeyBook,
) (uint64, error) {
	if err := r.db.IdentityStore.Insert(badgerhold.NextSequence(), book); err != nil {
		return 0, err
	}
	return book.ID, nil
}

func (r identityRepositoryImpl) GetKeyBookByURL(
	_ context.Context, url string,
) (*domain.KeyBook, error) {
	var book domain.KeyBook
	if err := r.db.IdentityStore.FindOne(
		&book, badgerhold.Where("URL").Eq(url),
	); err != nil {
		if errors.Is(err, badgerhold.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &book, nil
}

func (r identityRepositoryImpl) GetKeyBooksByIdentity(
	_ context.Context, identityID uint64,
) ([]domain.KeyBook, error) {
	var books []domain.KeyBook
	if err := r.db.IdentityStore.Find(
		&books, badgerhold.Where("IdentityID").Eq(identityID).And("Active").Eq(true),
	); err != nil {
		return nil, err
	}
	return books, nil
}

func (r identityRepositoryImpl) DeleteKeyBook(_ context.Context, url string) error {
	return r.db.IdentityStore.DeleteMatching(
		&domain.KeyBook{}, badgerhold.Where("URL").Eq(url),
	)
}

func (r identityRepositoryImpl) AddKeyPage(
	_ context.Context, page *domain.KeyPage,
) (uint64, error) {
	if err := r.db.IdentityStore.Insert(badgerhold.NextSequence(), page); err != nil {
		return 0, err
	}
	return page.ID, nil
}

func (r identityRepositoryImpl) GetKeyPageByURL(
	_ context.Context, url string,
) (*domain.KeyPage, error) {
	var page domain.KeyPage
	if err := r.db.IdentityStore.FindOne(
		&page, badgerhold.Where("URL").Eq(url),
	); err != nil {
		if errors.Is(err, badgerhold.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &page, nil
}

func (r identityRepositoryImpl) GetKeyPagesByKeyBook(
	_ context.Context, keyBookID uint64,
) ([]domain.KeyPage, error) {
	var pages []domain.KeyPage
	if err := r.db.IdentityStore.Find(
		&pages, badgerhold.Where("KeyBookID").Eq(keyBookID).And("Active").Eq(true),
	); err != nil {
		return nil, err
	}
	return pages, nil
}

func (r identityRepositoryImpl) UpdateKeyPageVersion(
	_ context.Context, url string, version uint64,
) error {
	return r.db.IdentityStore.UpdateMatching(
		&domain.KeyPage{}, badgerhold.Where("URL").Eq(url),
		func(record interface{}) error {
			page, ok := record.(*domain.KeyPage)
			if !ok {
				return errors.New("record is not a key page")
			}
			page.LastKnownVersion = version
			return nil
		},
	)
}

func (r identityRepositoryImpl) DeleteKeyPage(_ context.Context, url string) error {
	return r.db.IdentityStore.DeleteMatching(
		&domain.KeyPage{}, badgerhold.Where("URL").Eq(url),
	)
}

func (r identityRepositoryImpl) AddKey(
	_ context.Context, key *domain.Key,
) (uint64, error) {
	if err := r.db.IdentityStore.Insert(badgerhold.NextSequence(), key); err != nil {
		return 0, err
	}
	return key.ID, nil
}

func (r identityRepositoryImpl) GetKeysByKeyPage(
	_ context.Context, keyPageID uint64,
) ([]domain.Key, error) {
	var keys []domain.Key
	if err := r.db.IdentityStore.Find(
		&keys, badgerhold.Where("KeyPageID").Eq(keyPageID),
	); err != nil {
		return nil, err
	}
	return keys, nil
}

func (r identityRepositoryImpl) GetDefaultKey(
	_ context.Context, keyPageID uint64,
) (*domain.Key, error) {
	var key domain.Key
	if err := r.db.IdentityStore.FindOne(
		&key, badgerhold.Where("KeyPageID").Eq(keyPageID).And("IsDefault").Eq(true),
	); err != nil {
		if errors.Is(err, badgerhold.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &key, nil
}

func (r identityRepositoryImpl) SetDefaultKey(
	_ context.Context, keyPageID, keyID uint64,
) error {
	return r.db.IdentityStore.UpdateMatching(
		&domain.Key{}, badgerhold.Where("KeyPageID").Eq(keyPageID),
		func(record interface{}) error {
			key, ok := record.(*domain.Key)
			if !ok {
				return errors.New("record is not a key")
			}
			key.IsDefault = key.ID == keyID
			return nil
		},
	)
}
