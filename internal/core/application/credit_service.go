package application

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/accuwallet/walletcore/pkg/ledgerclient"
	"github.com/accuwallet/walletcore/pkg/mathutil"
)

// CreditPreview is the fee quote shown before a credit purchase: how many
// token base units the requested credits cost at the oracle rate sampled for
// this preview. The oracle value is volatile and must not be reused for a
// later submission.
type CreditPreview struct {
	Credits     uint64
	OracleValue uint64
	TokenAmount uint64
	TokenCost   decimal.Decimal
}

// CreditService computes the ACME↔credit economics against the network's
// price oracle.
type CreditService interface {
	// OracleValue reads the current conversion rate. The value is never
	// cached beyond a single calculation.
	OracleValue(ctx context.Context) (uint64, error)
	// PreviewAddCredits samples the oracle and quotes the token cost of the
	// given credit amount.
	PreviewAddCredits(ctx context.Context, credits uint64) (*CreditPreview, error)
}

type creditService struct {
	client ledgerclient.Service
}

// NewCreditService ...
func NewCreditService(client ledgerclient.Service) CreditService {
	return &creditService{client: client}
}

func (s *creditService) OracleValue(ctx context.Context) (uint64, error) {
	value, err := s.client.ValueFromOracle(ctx)
	if err != nil {
		return 0, fmt.Errorf("reading oracle: %w", err)
	}
	if value == 0 {
		return 0, mathutil.ErrZeroOracleValue
	}
	return value, nil
}

func (s *creditService) PreviewAddCredits(
	ctx context.Context, credits uint64,
) (*CreditPreview, error) {
	if credits == 0 {
		return nil, ErrZeroAmount
	}

	oracle, err := s.OracleValue(ctx)
	if err != nil {
		return nil, err
	}

	amount, err := mathutil.CreditsToTokenAmount(credits, oracle)
	if err != nil {
		return nil, err
	}

	return &CreditPreview{
		Credits:     credits,
		OracleValue: oracle,
		TokenAmount: amount,
		TokenCost:   mathutil.Div(amount, mathutil.BigOne),
	}, nil
}
