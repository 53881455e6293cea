package domain_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/accuwallet/walletcore/internal/core/domain"
)

func TestIsValidName(t *testing.T) {
	t.Parallel()

	valid := []string{"mycorp", "my-corp", "Corp42", "a"}
	for _, name := range valid {
		require.True(t, domain.IsValidName(name), name)
	}

	invalid := []string{"", "my corp", "my.corp", "acc://mycorp", string(make([]byte, 65))}
	for _, name := range invalid {
		require.False(t, domain.IsValidName(name), name)
	}
}

func TestIsValidSymbol(t *testing.T) {
	t.Parallel()

	valid := []string{"ACME2", "BT", "TOKEN123"}
	for _, symbol := range valid {
		require.True(t, domain.IsValidSymbol(symbol), symbol)
	}

	invalid := []string{"", "ac", "A", "TOOLONGSYMBOL1", "AC-ME", "acme"}
	for _, symbol := range invalid {
		require.False(t, domain.IsValidSymbol(symbol), symbol)
	}
}

func TestNewIdentity(t *testing.T) {
	t.Parallel()

	identity, err := domain.NewIdentity("acc://mycorp.acme", "mycorp")
	require.NoError(t, err)
	require.True(t, identity.Active)
	require.False(t, identity.CreatedAt.IsZero())

	_, err = domain.NewIdentity("", "mycorp")
	require.ErrorIs(t, err, domain.ErrMissingURL)

	_, err = domain.NewIdentity("acc://mycorp.acme", "my corp")
	require.ErrorIs(t, err, domain.ErrInvalidName)
}

func TestNewKeyBookRequiresIdentity(t *testing.T) {
	t.Parallel()

	_, err := domain.NewKeyBook("acc://mycorp.acme/book0", "book0", 0, "")
	require.ErrorIs(t, err, domain.ErrMissingIdentity)

	book, err := domain.NewKeyBook("acc://mycorp.acme/book0", "book0", 1, "aabb")
	require.NoError(t, err)
	require.Equal(t, uint64(1), book.IdentityID)
}

func TestNewKeyPage(t *testing.T) {
	t.Parallel()

	page, err := domain.NewKeyPage("acc://mycorp.acme/book0/1", 1)
	require.NoError(t, err)
	require.Equal(t, uint64(1), page.LastKnownVersion)

	_, err = domain.NewKeyPage("acc://mycorp.acme/book0/1", 0)
	require.ErrorIs(t, err, domain.ErrMissingKeyBook)
}

func TestNewCustomToken(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name          string
		url           string
		tokenName     string
		symbol        string
		precision     int
		expectedError error
	}{
		{"valid", "acc://mycorp.acme/mytkn", "mytkn", "MYTKN", 8, nil},
		{"zero_precision", "acc://mycorp.acme/mytkn", "mytkn", "MYTKN", 0, nil},
		{"missing_url", "", "mytkn", "MYTKN", 8, domain.ErrMissingURL},
		{"bad_name", "acc://mycorp.acme/mytkn", "my tkn", "MYTKN", 8, domain.ErrInvalidName},
		{"bad_symbol", "acc://mycorp.acme/mytkn", "mytkn", "mytkn", 8, domain.ErrInvalidSymbol},
		{"negative_precision", "acc://mycorp.acme/mytkn", "mytkn", "MYTKN", -1, domain.ErrInvalidPrecision},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			token, err := domain.NewCustomToken(tt.url, tt.tokenName, tt.symbol, tt.precision, 1)
			if tt.expectedError != nil {
				require.ErrorIs(t, err, tt.expectedError)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.precision, token.Precision)
		})
	}
}

func TestNewTokenAccount(t *testing.T) {
	t.Parallel()

	// Lite accounts need no parent identity.
	account, err := domain.NewTokenAccount("somelite/ACME", domain.AccountKindLite, 0, "acc://acme")
	require.NoError(t, err)
	require.Equal(t, domain.AccountKindLite, account.Kind)

	// Identity-owned accounts do.
	_, err = domain.NewTokenAccount("acc://mycorp.acme/tokens", domain.AccountKindIdentity, 0, "acc://acme")
	require.ErrorIs(t, err, domain.ErrMissingIdentity)

	account, err = domain.NewTokenAccount("acc://mycorp.acme/tokens", domain.AccountKindIdentity, 3, "acc://acme")
	require.NoError(t, err)
	require.Equal(t, uint64(3), account.IdentityID)
}

func TestNewDataAccountRequiresIdentity(t *testing.T) {
	t.Parallel()

	_, err := domain.NewDataAccount("acc://mycorp.acme/data", "data", 0)
	require.ErrorIs(t, err, domain.ErrMissingIdentity)

	account, err := domain.NewDataAccount("acc://mycorp.acme/data", "data", 2)
	require.NoError(t, err)
	require.True(t, account.Active)
}

func TestWalletAccountDisplayName(t *testing.T) {
	t.Parallel()

	named := domain.WalletAccount{Name: "savings", Address: "acc://mycorp.acme/tokens"}
	require.Equal(t, "savings", named.DisplayName())

	lite := domain.WalletAccount{
		Address: "0123456789abcdef0123456789abcdef01234567deadbeef/ACME",
	}
	require.Equal(t, "012345…adbeef", lite.DisplayName())
}
