package ledgerclient

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/sony/gobreaker"
	"go.uber.org/ratelimit"

	"github.com/accuwallet/walletcore/pkg/circuitbreaker"
)

const (
	// DefaultRequestTimeout bounds every network call; past it the call
	// fails rather than hangs.
	DefaultRequestTimeout = 20 * time.Second
	// defaultRequestsPerSecond paces requests towards the node.
	defaultRequestsPerSecond = 20
)

var (
	// ErrRequestFailed wraps any non-2xx HTTP status.
	ErrRequestFailed = errors.New("request failed")
)

type client struct {
	endpoint   string
	httpClient *http.Client
	cb         *gobreaker.CircuitBreaker
	limiter    ratelimit.Limiter
}

// NewService returns the JSON-RPC implementation of the Service interface
// for the node at the given endpoint. A zero timeout falls back to
// DefaultRequestTimeout.
func NewService(endpoint string, timeout time.Duration) Service {
	if timeout <= 0 {
		timeout = DefaultRequestTimeout
	}
	return &client{
		endpoint:   endpoint,
		httpClient: &http.Client{Timeout: timeout},
		cb:         circuitbreaker.NewCircuitBreaker(),
		limiter:    ratelimit.New(defaultRequestsPerSecond),
	}
}

type rpcRequest struct {
	JSONRPC string      `json:"jsonrpc"`
	ID      string      `json:"id"`
	Method  string      `json:"method"`
	Params  interface{} `json:"params"`
}

// call performs one bounded JSON-RPC request and returns the raw response
// body. Transport errors surface as errors; protocol-level failures are left
// in the body for the normalizer.
func (c *client) call(ctx context.Context, method string, params interface{}) ([]byte, error) {
	c.limiter.Take()

	body, err := json.Marshal(rpcRequest{
		JSONRPC: "2.0",
		ID:      uuid.New().String(),
		Method:  method,
		Params:  params,
	})
	if err != nil {
		return nil, err
	}

	resp, err := c.cb.Execute(func() (interface{}, error) {
		req, err := http.NewRequestWithContext(
			ctx, http.MethodPost, c.endpoint, bytes.NewReader(body),
		)
		if err != nil {
			return nil, err
		}
		req.Header.Set("Content-Type", "application/json")

		rs, err := c.httpClient.Do(req)
		if err != nil {
			return nil, err
		}
		defer rs.Body.Close()

		respBody, err := io.ReadAll(rs.Body)
		if err != nil {
			return nil, err
		}
		if rs.StatusCode < 200 || rs.StatusCode >= 300 {
			return nil, fmt.Errorf(
				"%w: %s: status %d: %s",
				ErrRequestFailed, method, rs.StatusCode, string(respBody),
			)
		}
		return respBody, nil
	})
	if err != nil {
		return nil, err
	}

	return resp.([]byte), nil
}

type queryParams struct {
	URL string `json:"url"`
}

func (c *client) QueryUrl(ctx context.Context, url string) (json.RawMessage, error) {
	body, err := c.call(ctx, "query", queryParams{URL: url})
	if err != nil {
		return nil, err
	}

	var envelope struct {
		Result json.RawMessage `json:"result"`
		Error  *rpcError       `json:"error"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, err
	}
	if envelope.Error != nil && envelope.Error.Message != "" {
		return nil, errors.New(envelope.Error.Message)
	}
	return envelope.Result, nil
}

func (c *client) QueryTx(ctx context.Context, txID string) (json.RawMessage, error) {
	body, err := c.call(ctx, "query-tx", map[string]string{"txid": txID})
	if err != nil {
		return nil, err
	}

	var envelope struct {
		Result json.RawMessage `json:"result"`
		Error  *rpcError       `json:"error"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, err
	}
	if envelope.Error != nil && envelope.Error.Message != "" {
		return nil, errors.New(envelope.Error.Message)
	}
	return envelope.Result, nil
}

// KeyPageVersion re-reads the page state and extracts its version counter,
// looking in every spot the node is known to put it. Pages that have never
// been mutated report no counter and default to 1.
func (c *client) KeyPageVersion(ctx context.Context, pageURL string) (uint64, error) {
	result, err := c.QueryUrl(ctx, pageURL)
	if err != nil {
		return 0, err
	}

	var page struct {
		Version uint64 `json:"version"`
		Data    struct {
			Version uint64 `json:"version"`
		} `json:"data"`
	}
	if err := json.Unmarshal(result, &page); err != nil {
		return 1, nil
	}
	if page.Version > 0 {
		return page.Version, nil
	}
	if page.Data.Version > 0 {
		return page.Data.Version, nil
	}
	return 1, nil
}

func (c *client) ValueFromOracle(ctx context.Context) (uint64, error) {
	body, err := c.call(ctx, "oracle", struct{}{})
	if err != nil {
		return 0, err
	}

	var envelope struct {
		Result struct {
			Price uint64 `json:"price"`
			Value uint64 `json:"value"`
		} `json:"result"`
		Error *rpcError `json:"error"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil {
		return 0, err
	}
	if envelope.Error != nil && envelope.Error.Message != "" {
		return 0, errors.New(envelope.Error.Message)
	}
	if envelope.Result.Price > 0 {
		return envelope.Result.Price, nil
	}
	return envelope.Result.Value, nil
}

// submitParams is the signed envelope common to every state-changing call.
type submitParams struct {
	Origin    string      `json:"origin"`
	Sponsor   string      `json:"sponsor"`
	Signer    signerInfo  `json:"signer"`
	Signature string      `json:"sig"`
	KeyPage   *keyPageRef `json:"keyPage,omitempty"`
	Payload   interface{} `json:"payload"`
}

type signerInfo struct {
	PublicKey string `json:"publicKey"`
	Nonce     uint64 `json:"nonce"`
}

type keyPageRef struct {
	Version uint64 `json:"version"`
}

func (c *client) submit(
	ctx context.Context, method, fromURL string, payload interface{}, signer Signer,
) (*SubmitResult, error) {
	payloadJSON, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	nonce := uint64(time.Now().UnixMilli())
	sig := signer.Sign(sigHash(fromURL, nonce, payloadJSON))

	params := submitParams{
		Origin:  fromURL,
		Sponsor: signer.URL(),
		Signer: signerInfo{
			PublicKey: hex.EncodeToString(signer.PublicKey()),
			Nonce:     nonce,
		},
		Signature: hex.EncodeToString(sig),
		Payload:   json.RawMessage(payloadJSON),
	}
	if v := signer.Version(); v > 0 {
		params.KeyPage = &keyPageRef{Version: v}
	}

	body, err := c.call(ctx, method, params)
	if err != nil {
		return nil, err
	}
	return ParseSubmitResponse(body), nil
}

// sigHash is the digest the detached signature commits to: origin, nonce and
// the exact payload bytes submitted.
func sigHash(origin string, nonce uint64, payload []byte) []byte {
	h := sha256.New()
	h.Write([]byte(origin))
	nonceBytes := make([]byte, 8)
	binary.BigEndian.PutUint64(nonceBytes, nonce)
	h.Write(nonceBytes)
	h.Write(payload)
	return h.Sum(nil)
}

func (c *client) CreateIdentity(
	ctx context.Context, fromURL string, params CreateIdentityParams, signer Signer,
) (*SubmitResult, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}
	return c.submit(ctx, "create-adi", fromURL, params, signer)
}

func (c *client) CreateKeyBook(
	ctx context.Context, fromURL string, params CreateKeyBookParams, signer Signer,
) (*SubmitResult, error) {
	return c.submit(ctx, "create-key-book", fromURL, params, signer)
}

func (c *client) CreateKeyPage(
	ctx context.Context, fromURL string, params CreateKeyPageParams, signer Signer,
) (*SubmitResult, error) {
	for _, key := range params.Keys {
		if err := key.Validate(); err != nil {
			return nil, err
		}
	}
	return c.submit(ctx, "create-key-page", fromURL, params, signer)
}

func (c *client) UpdateKeyPage(
	ctx context.Context, fromURL string, params UpdateKeyPageParams, signer Signer,
) (*SubmitResult, error) {
	return c.submit(ctx, "update-key-page", fromURL, params, signer)
}

func (c *client) CreateTokenAccount(
	ctx context.Context, fromURL string, params CreateTokenAccountParams, signer Signer,
) (*SubmitResult, error) {
	return c.submit(ctx, "create-token-account", fromURL, params, signer)
}

func (c *client) CreateDataAccount(
	ctx context.Context, fromURL string, params CreateDataAccountParams, signer Signer,
) (*SubmitResult, error) {
	return c.submit(ctx, "create-data-account", fromURL, params, signer)
}

func (c *client) CreateToken(
	ctx context.Context, fromURL string, params CreateTokenParams, signer Signer,
) (*SubmitResult, error) {
	return c.submit(ctx, "create-token", fromURL, params, signer)
}

func (c *client) IssueTokens(
	ctx context.Context, fromURL string, params IssueTokensParams, signer Signer,
) (*SubmitResult, error) {
	return c.submit(ctx, "issue-tokens", fromURL, params, signer)
}

func (c *client) BurnTokens(
	ctx context.Context, fromURL string, params BurnTokensParams, signer Signer,
) (*SubmitResult, error) {
	return c.submit(ctx, "burn-tokens", fromURL, params, signer)
}

func (c *client) SendTokens(
	ctx context.Context, fromURL string, params SendTokensParams, signer Signer,
) (*SubmitResult, error) {
	return c.submit(ctx, "send-tokens", fromURL, params, signer)
}

func (c *client) AddCredits(
	ctx context.Context, fromURL string, params AddCreditsParams, signer Signer,
) (*SubmitResult, error) {
	return c.submit(ctx, "add-credits", fromURL, params, signer)
}

func (c *client) WriteData(
	ctx context.Context, fromURL string, params WriteDataParams, signer Signer,
) (*SubmitResult, error) {
	return c.submit(ctx, "write-data", fromURL, params, signer)
}
