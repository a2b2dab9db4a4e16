package services

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"saldo/internal/analytics"
	"saldo/internal/cache"
	"saldo/internal/core"
	applog "saldo/internal/log"
	"saldo/internal/store"
)

// DashboardCacheConfig sizes the per-owner result caches. A zero TTL disables caching.
type DashboardCacheConfig struct {
	TTL  time.Duration
	Size int
}

// DashboardService loads an owner's records and runs the analytics engine on them.
type DashboardService struct {
	store  store.TransactionStore
	clock  analytics.Clock
	logger *applog.Logger

	summaries cache.Cache[analytics.SummaryResult]
	monthly   cache.Cache[analytics.MonthlyResult]
	yearly    cache.Cache[analytics.YearlyResult]

	// generations counts invalidations per owner. A result computed while
	// the owner's generation moved is returned but not cached.
	genMu       sync.Mutex
	generations map[string]uint64
}

func NewDashboardService(s store.TransactionStore, clock analytics.Clock, cacheCfg DashboardCacheConfig, logger *applog.Logger) *DashboardService {
	d := &DashboardService{
		store:  s,
		clock:  clock,
		logger: logger.WithComponent(applog.ComponentAnalytics),

		generations: make(map[string]uint64),
	}
	if cacheCfg.TTL > 0 {
		d.summaries = cache.NewLRU[analytics.SummaryResult](cacheCfg.Size, cacheCfg.TTL)
		d.monthly = cache.NewLRU[analytics.MonthlyResult](cacheCfg.Size, cacheCfg.TTL)
		d.yearly = cache.NewLRU[analytics.YearlyResult](cacheCfg.Size, cacheCfg.TTL)
	}
	return d
}

// Cleaners exposes the caches for periodic expiry sweeps.
func (d *DashboardService) Cleaners() []cache.Cleaner {
	if d.summaries == nil {
		return nil
	}
	return []cache.Cleaner{
		d.summaries.(cache.Cleaner),
		d.monthly.(cache.Cleaner),
		d.yearly.(cache.Cleaner),
	}
}

// Invalidate drops every cached result of ownerID.
func (d *DashboardService) Invalidate(ownerID string) {
	if d.summaries == nil {
		return
	}
	d.genMu.Lock()
	d.generations[ownerID]++
	d.genMu.Unlock()

	prefix := ownerID + ":"
	n := d.summaries.DeletePrefix(prefix) + d.monthly.DeletePrefix(prefix) + d.yearly.DeletePrefix(prefix)
	if n > 0 {
		d.logger.Debug("Dashboard cache invalidated", slog.String(applog.FieldOwnerID, ownerID), slog.Int(applog.FieldCount, n))
	}
}

// Summary aggregates the owner's whole history.
func (d *DashboardService) Summary(ctx context.Context, ownerID string) (analytics.SummaryResult, error) {
	key := ownerID + ":summary"
	return cached(d, d.summaries, ownerID, key, func() (analytics.SummaryResult, error) {
		incomes, expenses, err := d.load(ctx, ownerID, nil, nil)
		if err != nil {
			return analytics.SummaryResult{}, err
		}
		return analytics.ComputeSummary(incomes, expenses)
	})
}

// Monthly breaks one month down by day and week. Nil arguments default to
// the current month of the service clock; monthIndex is 0-based.
func (d *DashboardService) Monthly(ctx context.Context, ownerID string, year, monthIndex *int) (analytics.MonthlyResult, error) {
	y, m, err := analytics.ResolveMonth(d.clock, year, monthIndex)
	if err != nil {
		return analytics.MonthlyResult{}, err
	}

	key := fmt.Sprintf("%s:monthly:%04d-%02d", ownerID, y, m+1)
	return cached(d, d.monthly, ownerID, key, func() (analytics.MonthlyResult, error) {
		start, end := analytics.MonthBounds(y, m)
		from, to := core.DateOf(start), core.DateOf(end)
		incomes, expenses, err := d.load(ctx, ownerID, &from, &to)
		if err != nil {
			return analytics.MonthlyResult{}, err
		}
		return analytics.ComputeMonthlyBreakdown(y, m, incomes, expenses)
	})
}

// Yearly breaks one year down by month. A nil year defaults to the current one.
func (d *DashboardService) Yearly(ctx context.Context, ownerID string, year *int) (analytics.YearlyResult, error) {
	y, err := analytics.ResolveYear(d.clock, year)
	if err != nil {
		return analytics.YearlyResult{}, err
	}

	key := fmt.Sprintf("%s:yearly:%04d", ownerID, y)
	return cached(d, d.yearly, ownerID, key, func() (analytics.YearlyResult, error) {
		start, end := analytics.YearBounds(y)
		from, to := core.DateOf(start), core.DateOf(end)
		incomes, expenses, err := d.load(ctx, ownerID, &from, &to)
		if err != nil {
			return analytics.YearlyResult{}, err
		}
		return analytics.ComputeYearlyBreakdown(y, incomes, expenses)
	})
}

// load reads both kinds concurrently. Nil bounds read the full history.
func (d *DashboardService) load(ctx context.Context, ownerID string, from, to *core.Date) (incomes, expenses []core.Transaction, err error) {
	g, gctx := errgroup.WithContext(ctx)
	fetch := func(kind core.Kind, dst *[]core.Transaction) func() error {
		return func() error {
			var (
				records []core.Transaction
				err     error
			)
			if from == nil {
				records, err = d.store.FindByOwner(gctx, kind, ownerID)
			} else {
				records, err = d.store.FindByOwnerAndDateRange(gctx, kind, ownerID, *from, *to)
			}
			if err != nil {
				return fmt.Errorf("load %s: %w", kind, err)
			}
			*dst = records
			return nil
		}
	}
	g.Go(fetch(core.KindIncome, &incomes))
	g.Go(fetch(core.KindExpense, &expenses))
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}
	return incomes, expenses, nil
}

func (d *DashboardService) generation(ownerID string) uint64 {
	d.genMu.Lock()
	defer d.genMu.Unlock()
	return d.generations[ownerID]
}

func cached[T any](d *DashboardService, c cache.Cache[T], ownerID, key string, compute func() (T, error)) (T, error) {
	if c == nil {
		return compute()
	}
	if v, ok := c.Get(key); ok {
		return v, nil
	}
	gen := d.generation(ownerID)
	v, err := compute()
	if err != nil {
		return v, err
	}
	d.genMu.Lock()
	if d.generations[ownerID] == gen {
		c.Set(key, v)
	}
	d.genMu.Unlock()
	return v, nil
}
