package dbbadger

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/accuwallet/walletcore/internal/core/domain"
)

var ctx = context.Background()

func TestIdentityCrud(t *testing.T) {
	repo := NewIdentityRepositoryImpl(newTestDb(t))

	identity, err := domain.NewIdentity("acc://mycorp.acme", "mycorp")
	require.NoError(t, err)

	id, err := repo.AddIdentity(ctx, identity)
	require.NoError(t, err)
	require.NotZero(t, id)

	found, err := repo.GetIdentityByURL(ctx, "acc://mycorp.acme")
	require.NoError(t, err)
	require.NotNil(t, found)
	require.Equal(t, "mycorp", found.Name)
	require.True(t, found.Active)

	byID, err := repo.GetIdentityByID(ctx, id)
	require.NoError(t, err)
	require.NotNil(t, byID)
	require.Equal(t, found.URL, byID.URL)

	// Lookups are exact-match; absence is nil, not an error.
	missing, err := repo.GetIdentityByURL(ctx, "acc://MYCORP.acme")
	require.NoError(t, err)
	require.Nil(t, missing)

	require.NoError(t, repo.DeactivateIdentity(ctx, "acc://mycorp.acme"))

	active, err := repo.GetAllIdentities(ctx, false)
	require.NoError(t, err)
	require.Empty(t, active)

	all, err := repo.GetAllIdentities(ctx, true)
	require.NoError(t, err)
	require.Len(t, all, 1)
	require.False(t, all[0].Active)

	require.NoError(t, repo.DeleteIdentity(ctx, "acc://mycorp.acme"))
	found, err = repo.GetIdentityByURL(ctx, "acc://mycorp.acme")
	require.NoError(t, err)
	require.Nil(t, found)
}

func TestKeyBookHierarchy(t *testing.T) {
	repo := NewIdentityRepositoryImpl(newTestDb(t))

	identity, err := domain.NewIdentity("acc://mycorp.acme", "mycorp")
	require.NoError(t, err)
	identityID, err := repo.AddIdentity(ctx, identity)
	require.NoError(t, err)

	book, err := domain.NewKeyBook("acc://mycorp.acme/book0", "book0", identityID, "aabb")
	require.NoError(t, err)
	bookID, err := repo.AddKeyBook(ctx, book)
	require.NoError(t, err)

	page, err := domain.NewKeyPage("acc://mycorp.acme/book0/1", bookID)
	require.NoError(t, err)
	pageID, err := repo.AddKeyPage(ctx, page)
	require.NoError(t, err)

	books, err := repo.GetKeyBooksByIdentity(ctx, identityID)
	require.NoError(t, err)
	require.Len(t, books, 1)

	pages, err := repo.GetKeyPagesByKeyBook(ctx, bookID)
	require.NoError(t, err)
	require.Len(t, pages, 1)
	require.Equal(t, uint64(1), pages[0].LastKnownVersion)

	require.NoError(t, repo.UpdateKeyPageVersion(ctx, "acc://mycorp.acme/book0/1", 5))
	updated, err := repo.GetKeyPageByURL(ctx, "acc://mycorp.acme/book0/1")
	require.NoError(t, err)
	require.Equal(t, uint64(5), updated.LastKnownVersion)

	key, err := domain.NewKey("pubkey1", "hash1", pageID)
	require.NoError(t, err)
	keyID, err := repo.AddKey(ctx, key)
	require.NoError(t, err)

	otherKey, err := domain.NewKey("pubkey2", "hash2", pageID)
	require.NoError(t, err)
	otherKeyID, err := repo.AddKey(ctx, otherKey)
	require.NoError(t, err)

	keys, err := repo.GetKeysByKeyPage(ctx, pageID)
	require.NoError(t, err)
	require.Len(t, keys, 2)

	// No default until one is flagged.
	def, err := repo.GetDefaultKey(ctx, pageID)
	require.NoError(t, err)
	require.Nil(t, def)

	require.NoError(t, repo.SetDefaultKey(ctx, pageID, keyID))
	def, err = repo.GetDefaultKey(ctx, pageID)
	require.NoError(t, err)
	require.NotNil(t, def)
	require.Equal(t, keyID, def.ID)

	// Re-flagging moves the default, it never duplicates it.
	require.NoError(t, repo.SetDefaultKey(ctx, pageID, otherKeyID))
	def, err = repo.GetDefaultKey(ctx, pageID)
	require.NoError(t, err)
	require.Equal(t, otherKeyID, def.ID)
}
