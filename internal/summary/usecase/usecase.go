package usecase

import (
	"context"
	"sort"
	"time"

	"github.com/fekuna/omnipos-ledger/internal/logger"
	"github.com/fekuna/omnipos-ledger/internal/model"
	"github.com/fekuna/omnipos-ledger/internal/summary"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const dateLayout = "2006-01-02"

type summaryUseCase struct {
	repo     summary.Repository
	location *time.Location
	logger   logger.ZapLogger
}

// NewSummaryUseCase groups transactions by calendar date in loc. A nil loc
// means UTC.
func NewSummaryUseCase(repo summary.Repository, loc *time.Location, log logger.ZapLogger) summary.UseCase {
	if loc == nil {
		loc = time.UTC
	}
	return &summaryUseCase{
		repo:     repo,
		location: loc,
		logger:   log,
	}
}

func (uc *summaryUseCase) load(ctx context.Context) ([]model.Purchase, []model.Sale, error) {
	var (
		purchases []model.Purchase
		sales     []model.Sale
	)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		purchases, err = uc.repo.ListPurchases(ctx)
		return err
	})
	g.Go(func() error {
		var err error
		sales, err = uc.repo.ListSales(ctx)
		return err
	})
	if err := g.Wait(); err != nil {
		uc.logger.Error("failed to load transaction logs", zap.Error(err))
		return nil, nil, err
	}
	return purchases, sales, nil
}

// DailySummary returns one row per date present in either log, oldest first.
func (uc *summaryUseCase) DailySummary(ctx context.Context) ([]model.DailySummary, error) {
	purchases, sales, err := uc.load(ctx)
	if err != nil {
		return nil, err
	}

	days := map[string]*model.DailySummary{}
	day := func(ts model.Timestamp) *model.DailySummary {
		date := ts.In(uc.location).Format(dateLayout)
		d, ok := days[date]
		if !ok {
			d = &model.DailySummary{Date: date}
			days[date] = d
		}
		return d
	}

	for _, s := range sales {
		d := day(s.Timestamp)
		d.TotalSales = d.TotalSales.Add(s.Amount())
	}
	for _, p := range purchases {
		d := day(p.Timestamp)
		d.TotalPurchases = d.TotalPurchases.Add(p.Amount())
	}

	result := make([]model.DailySummary, 0, len(days))
	for _, d := range days {
		d.Profit = d.TotalSales.Sub(d.TotalPurchases)
		result = append(result, *d)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Date < result[j].Date })

	uc.logger.Debug("daily summary computed", zap.Int("days", len(result)))
	return result, nil
}

func (uc *summaryUseCase) Totals(ctx context.Context) (*model.Totals, error) {
	purchases, sales, err := uc.load(ctx)
	if err != nil {
		return nil, err
	}

	totals := &model.Totals{
		TotalSales:     decimal.Zero,
		TotalPurchases: decimal.Zero,
	}
	for _, s := range sales {
		totals.TotalSales = totals.TotalSales.Add(s.Amount())
	}
	for _, p := range purchases {
		totals.TotalPurchases = totals.TotalPurchases.Add(p.Amount())
	}
	totals.Profit = totals.TotalSales.Sub(totals.TotalPurchases)
	return totals, nil
}
