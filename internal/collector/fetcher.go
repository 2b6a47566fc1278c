package collector

import (
	"context"

	"VexlConverter/internal/model"

	"github.com/shopspring/decimal"
)

// PriceSource is the part of the backend the conversion pipeline talks to.
type PriceSource interface {
	Convert(ctx context.Context, btc decimal.Decimal) (model.Result[model.Conversion], error)
	LatestPrices(ctx context.Context) (model.Result[model.PriceSnapshot], error)
}

// HistorySource is the part of the backend the history poller talks to.
type HistorySource interface {
	History(ctx context.Context, rangeHours int) (model.Result[[]model.HistoryRecord], error)
	HistoryTotal(ctx context.Context) (model.Result[int64], error)
}

// QuoteFetcher fetches BTC quotes for a batch of fiat codes from a third-party API.
// Returned keys are upper-case currency codes.
type QuoteFetcher interface {
	FetchRates(ctx context.Context, codes []string) (map[string]decimal.Decimal, error)
	Name() string
}
