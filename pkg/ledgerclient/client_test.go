package ledgerclient_test

import (
	"context"
	"crypto/ed25519"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/accuwallet/walletcore/pkg/ledgerclient"
)

type testSigner struct {
	url     string
	pub     ed25519.PublicKey
	priv    ed25519.PrivateKey
	version uint64
}

func newTestSigner(t *testing.T, url string, version uint64) *testSigner {
	t.Helper()
	pub, priv, err := ed25519.GenerateKey(nil)
	require.NoError(t, err)
	return &testSigner{url: url, pub: pub, priv: priv, version: version}
}

func (s *testSigner) URL() string       { return s.url }
func (s *testSigner) PublicKey() []byte { return s.pub }
func (s *testSigner) Version() uint64   { return s.version }

func (s *testSigner) Sign(payload []byte) []byte {
	return ed25519.Sign(s.priv, payload)
}

func newTestServer(
	t *testing.T, handler func(method string, params json.RawMessage) string,
) *httptest.Server {
	t.Helper()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			JSONRPC string          `json:"jsonrpc"`
			ID      string          `json:"id"`
			Method  string          `json:"method"`
			Params  json.RawMessage `json:"params"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.Equal(t, "2.0", req.JSONRPC)
		require.NotEmpty(t, req.ID)

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(handler(req.Method, req.Params)))
	}))
	t.Cleanup(srv.Close)

	return srv
}

func TestQueryUrl(t *testing.T) {
	srv := newTestServer(t, func(method string, params json.RawMessage) string {
		require.Equal(t, "query", method)
		require.JSONEq(t, `{"url":"acc://mycorp.acme"}`, string(params))
		return `{"result":{"type":"identity","url":"acc://mycorp.acme"}}`
	})

	svc := ledgerclient.NewService(srv.URL, time.Second)
	result, err := svc.QueryUrl(context.Background(), "acc://mycorp.acme")
	require.NoError(t, err)
	require.JSONEq(t, `{"type":"identity","url":"acc://mycorp.acme"}`, string(result))
}

func TestQueryUrlError(t *testing.T) {
	srv := newTestServer(t, func(method string, params json.RawMessage) string {
		return `{"error":{"message":"url not found"}}`
	})

	svc := ledgerclient.NewService(srv.URL, time.Second)
	_, err := svc.QueryUrl(context.Background(), "acc://nope.acme")
	require.EqualError(t, err, "url not found")
}

func TestKeyPageVersion(t *testing.T) {
	tests := []struct {
		name     string
		response string
		expected uint64
	}{
		{"top_level_version", `{"result":{"version":7}}`, 7},
		{"nested_version", `{"result":{"data":{"version":3}}}`, 3},
		{"missing_defaults_to_one", `{"result":{"type":"keyPage"}}`, 1},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			srv := newTestServer(t, func(method string, params json.RawMessage) string {
				return tt.response
			})

			svc := ledgerclient.NewService(srv.URL, time.Second)
			version, err := svc.KeyPageVersion(context.Background(), "acc://mycorp.acme/book0/1")
			require.NoError(t, err)
			require.Equal(t, tt.expected, version)
		})
	}
}

func TestValueFromOracle(t *testing.T) {
	srv := newTestServer(t, func(method string, params json.RawMessage) string {
		require.Equal(t, "oracle", method)
		return `{"result":{"price":445000}}`
	})

	svc := ledgerclient.NewService(srv.URL, time.Second)
	value, err := svc.ValueFromOracle(context.Background())
	require.NoError(t, err)
	require.Equal(t, uint64(445000), value)
}

func TestSubmitEnvelope(t *testing.T) {
	signer := newTestSigner(t, "acc://mycorp.acme/book0/1", 4)

	srv := newTestServer(t, func(method string, params json.RawMessage) string {
		require.Equal(t, "create-token-account", method)

		var envelope struct {
			Origin    string `json:"origin"`
			Sponsor   string `json:"sponsor"`
			Signature string `json:"sig"`
			Signer    struct {
				PublicKey string `json:"publicKey"`
				Nonce     uint64 `json:"nonce"`
			} `json:"signer"`
			KeyPage *struct {
				Version uint64 `json:"version"`
			} `json:"keyPage"`
			Payload json.RawMessage `json:"payload"`
		}
		require.NoError(t, json.Unmarshal(params, &envelope))
		require.Equal(t, "acc://mycorp.acme", envelope.Origin)
		require.Equal(t, "acc://mycorp.acme/book0/1", envelope.Sponsor)
		require.NotEmpty(t, envelope.Signature)
		require.NotEmpty(t, envelope.Signer.PublicKey)
		require.NotZero(t, envelope.Signer.Nonce)
		require.NotNil(t, envelope.KeyPage)
		require.Equal(t, uint64(4), envelope.KeyPage.Version)
		require.JSONEq(
			t,
			`{"url":"acc://mycorp.acme/tokens","tokenUrl":"acc://acme"}`,
			string(envelope.Payload),
		)

		return `{"result":{"txid":"abc","hash":"def"}}`
	})

	svc := ledgerclient.NewService(srv.URL, time.Second)
	res, err := svc.CreateTokenAccount(
		context.Background(),
		"acc://mycorp.acme",
		ledgerclient.CreateTokenAccountParams{
			URL:      "acc://mycorp.acme/tokens",
			TokenURL: "acc://acme",
		},
		signer,
	)
	require.NoError(t, err)
	require.True(t, res.Ok)
	require.Equal(t, "abc", res.TransactionID)
	require.Equal(t, "def", res.Hash)
}

func TestSubmitLiteSignerHasNoKeyPage(t *testing.T) {
	signer := newTestSigner(t, "lite", 0)

	srv := newTestServer(t, func(method string, params json.RawMessage) string {
		var envelope map[string]interface{}
		require.NoError(t, json.Unmarshal(params, &envelope))
		require.NotContains(t, envelope, "keyPage")
		return `{"result":{"txid":"abc"}}`
	})

	svc := ledgerclient.NewService(srv.URL, time.Second)
	res, err := svc.AddCredits(
		context.Background(), "lite",
		ledgerclient.AddCreditsParams{Recipient: "lite", Amount: 50000, Oracle: 445000},
		signer,
	)
	require.NoError(t, err)
	require.True(t, res.Ok)
}

func TestProtocolRejectionIsNotAnError(t *testing.T) {
	signer := newTestSigner(t, "acc://mycorp.acme/book0/1", 2)

	srv := newTestServer(t, func(method string, params json.RawMessage) string {
		return `{"result":[{"failed":true,"error":{"message":"invalid key page version"}}]}`
	})

	svc := ledgerclient.NewService(srv.URL, time.Second)
	res, err := svc.UpdateKeyPage(
		context.Background(), "acc://mycorp.acme/book0/1",
		ledgerclient.UpdateKeyPageParams{Operation: ledgerclient.KeyPageOpAdd, Key: "aa"},
		signer,
	)
	require.NoError(t, err)
	require.False(t, res.Ok)
	require.Equal(t, "invalid key page version", res.Message)
}

func TestTransportErrorSurfaces(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	t.Cleanup(srv.Close)

	svc := ledgerclient.NewService(srv.URL, time.Second)
	_, err := svc.QueryUrl(context.Background(), "acc://mycorp.acme")
	require.ErrorIs(t, err, ledgerclient.ErrRequestFailed)
}

func TestCreateIdentityValidatesKeyHash(t *testing.T) {
	signer := newTestSigner(t, "lite", 0)

	svc := ledgerclient.NewService("http://unused", time.Second)
	_, err := svc.CreateIdentity(
		context.Background(), "lite",
		ledgerclient.CreateIdentityParams{
			URL:           "acc://mycorp.acme",
			KeyBookName:   "book0",
			KeyPageName:   "page0",
			PublicKeyHash: "not-hex",
		},
		signer,
	)
	require.ErrorIs(t, err, ledgerclient.ErrInvalidPublicKeyHash)
}
