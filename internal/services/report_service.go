package services

import (
	"context"
	"fmt"
	"time"

	"github.com/helderruiz/controle-mensal/internal/cache"
	"github.com/helderruiz/controle-mensal/internal/core"
	"github.com/helderruiz/controle-mensal/internal/log"
	"github.com/helderruiz/controle-mensal/internal/store"
)

// MonthOverview is everything the dashboard shows for one month.
type MonthOverview struct {
	Year       int
	Month      int
	Entries    core.Money
	Exits      core.Money
	Balance    core.Money
	Categories []core.CategoryAmount
	Recent     []core.Transaction
}

// AnnualReport is the annual view: a trailing month series plus
// year-to-date totals and category breakdown.
type AnnualReport struct {
	Year       int
	Series     []core.MonthSummary
	Entries    core.Money
	Exits      core.Money
	Balance    core.Money
	Categories []core.CategoryAmount
}

// recentLimit is how many transactions the dashboard lists.
const recentLimit = 5

// ReportService derives report data from the store through the pure
// aggregation functions, caching month overviews between mutations.
type ReportService struct {
	store     *store.Store
	overviews *cache.LRUCache[MonthOverview]
	logger    *log.Logger
}

func NewReportService(s *store.Store, logger *log.Logger) *ReportService {
	return &ReportService{
		store:     s,
		overviews: cache.NewLRUCache[MonthOverview](24, 5*time.Minute),
		logger:    logger.WithComponent(log.ComponentReport),
	}
}

// MonthOverview aggregates one calendar month, serving repeated renders
// from cache until the next mutation.
func (s *ReportService) MonthOverview(ctx context.Context, year, month int) MonthOverview {
	key := fmt.Sprintf("%04d-%02d", year, month)
	if cached, ok := s.overviews.Get(key); ok {
		s.logger.DebugContext(ctx, "Month overview served from cache", log.FieldPeriod, key)
		return cached
	}

	monthly := core.FilterByMonth(s.store.All(), year, month)
	entries := core.SumByType(monthly, core.Entry)
	exits := core.SumByType(monthly, core.Exit)

	recent := monthly
	if len(recent) > recentLimit {
		recent = recent[:recentLimit]
	}

	overview := MonthOverview{
		Year:       year,
		Month:      month,
		Entries:    entries,
		Exits:      exits,
		Balance:    core.Money{Cents: entries.Cents - exits.Cents},
		Categories: core.SumByCategory(monthly, core.Exit),
		Recent:     recent,
	}
	s.overviews.Set(key, overview)
	return overview
}

// Annual builds the annual report ending at the given month: a six-month
// cash-flow series plus totals and exit breakdown for the whole year.
func (s *ReportService) Annual(ctx context.Context, year, month int) AnnualReport {
	all := s.store.All()
	yearly := core.FilterByYear(all, year)
	entries := core.SumByType(yearly, core.Entry)
	exits := core.SumByType(yearly, core.Exit)

	return AnnualReport{
		Year:       year,
		Series:     core.MonthlySeries(all, year, month, core.MonthlySeriesDefault),
		Entries:    entries,
		Exits:      exits,
		Balance:    core.Money{Cents: entries.Cents - exits.Cents},
		Categories: core.SumByCategory(yearly, core.Exit),
	}
}

// Invalidate drops every cached overview. Called after any mutation.
func (s *ReportService) Invalidate() {
	s.overviews.Purge()
}

// CacheSize reports how many overviews are currently cached.
func (s *ReportService) CacheSize() int {
	return s.overviews.Size()
}

// CleanExpired drops overviews past their TTL, returning how many were
// removed. The HTTP server calls this from its housekeeping loop.
func (s *ReportService) CleanExpired() int {
	return s.overviews.CleanExpired()
}
