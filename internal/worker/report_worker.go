// Package worker keeps the per-owner yearly reports in step with the
// transaction history.
package worker

import (
	"context"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/robfig/cron/v3"
	"golang.org/x/sync/errgroup"

	"saldo/internal/amqp"
	"saldo/internal/analytics"
	"saldo/internal/core"
	applog "saldo/internal/log"
	"saldo/internal/sheets"
	"saldo/internal/store"
)

const defaultConcurrency = 4

// Store is the read side the worker needs.
type Store interface {
	store.TransactionStore
	ListUserIDs(ctx context.Context) ([]string, error)
}

// ReportWorker recomputes yearly breakdowns and hands them to a ReportWriter.
type ReportWorker struct {
	store       Store
	writer      sheets.ReportWriter
	clock       analytics.Clock
	logger      *applog.Logger
	concurrency int

	written atomic.Int64
}

func NewReportWorker(s Store, writer sheets.ReportWriter, clock analytics.Clock, logger *applog.Logger) *ReportWorker {
	return &ReportWorker{
		store:       s,
		writer:      writer,
		clock:       clock,
		logger:      logger.WithComponent(applog.ComponentWorker),
		concurrency: defaultConcurrency,
	}
}

// Written returns how many reports have been written since start.
func (w *ReportWorker) Written() int64 {
	return w.written.Load()
}

// HandleEvent refreshes the report of the owner and year touched by e.
func (w *ReportWorker) HandleEvent(ctx context.Context, e amqp.TransactionEvent) error {
	w.logger.InfoContext(ctx, "Processing transaction event",
		slog.String("event", string(e.Type)),
		slog.String(applog.FieldOwnerID, e.OwnerID),
		slog.String(applog.FieldTransaction, e.TransactionID),
		slog.String(applog.FieldKind, e.Kind.String()))

	year, err := e.Year()
	if err != nil {
		return fmt.Errorf("event year: %w", err)
	}
	return w.RefreshOwner(ctx, e.OwnerID, year)
}

// RefreshOwner rebuilds one owner's report for year.
func (w *ReportWorker) RefreshOwner(ctx context.Context, ownerID string, year int) error {
	start, end := analytics.YearBounds(year)
	from, to := core.DateOf(start), core.DateOf(end)

	incomes, err := w.store.FindByOwnerAndDateRange(ctx, core.KindIncome, ownerID, from, to)
	if err != nil {
		return fmt.Errorf("load incomes: %w", err)
	}
	expenses, err := w.store.FindByOwnerAndDateRange(ctx, core.KindExpense, ownerID, from, to)
	if err != nil {
		return fmt.Errorf("load expenses: %w", err)
	}

	report, err := analytics.ComputeYearlyBreakdown(year, incomes, expenses)
	if err != nil {
		return fmt.Errorf("compute yearly breakdown: %w", err)
	}
	if err := w.writer.WriteYearlyReport(ctx, ownerID, report); err != nil {
		return fmt.Errorf("write yearly report: %w", err)
	}
	w.written.Add(1)

	w.logger.InfoContext(ctx, "Yearly report written",
		slog.String(applog.FieldOwnerID, ownerID),
		slog.Int(applog.FieldYear, year),
		slog.Int(applog.FieldCount, report.Summary.TransactionCount))
	return nil
}

// RefreshAll rebuilds the current year's report for every known owner.
// A failing owner does not stop the others; the first failure is returned.
func (w *ReportWorker) RefreshAll(ctx context.Context) error {
	ids, err := w.store.ListUserIDs(ctx)
	if err != nil {
		return fmt.Errorf("list owners: %w", err)
	}
	if len(ids) == 0 {
		w.logger.InfoContext(ctx, "No owners to report on")
		return nil
	}

	year := w.clock.Now().Year()
	started := time.Now()

	var (
		g        errgroup.Group
		failures atomic.Int64
	)
	g.SetLimit(w.concurrency)
	for _, id := range ids {
		g.Go(func() error {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			if err := w.RefreshOwner(ctx, id, year); err != nil {
				failures.Add(1)
				w.logger.ErrorContext(ctx, "Failed to refresh report",
					slog.String(applog.FieldOwnerID, id),
					slog.Any(applog.FieldError, err))
				return err
			}
			return nil
		})
	}
	err = g.Wait()

	w.logger.InfoContext(ctx, "Report refresh completed",
		slog.Int("owners", len(ids)),
		slog.Int64("errors", failures.Load()),
		slog.Duration("duration", time.Since(started)))

	if err != nil {
		return fmt.Errorf("%d of %d reports failed: %w", failures.Load(), len(ids), err)
	}
	return nil
}

// Schedule runs RefreshAll on the standard cron spec until ctx is done.
// The returned cron is already started.
func (w *ReportWorker) Schedule(ctx context.Context, spec string) (*cron.Cron, error) {
	c := cron.New()
	_, err := c.AddFunc(spec, func() {
		if err := w.RefreshAll(ctx); err != nil {
			w.logger.ErrorContext(ctx, "Scheduled report refresh failed", slog.Any(applog.FieldError, err))
		}
	})
	if err != nil {
		return nil, fmt.Errorf("invalid report schedule %q: %w", spec, err)
	}
	c.Start()

	go func() {
		<-ctx.Done()
		<-c.Stop().Done()
		w.logger.Info("Report scheduler stopped")
	}()
	return c, nil
}
