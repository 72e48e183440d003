// Package report provides the application services for the reporting side:
// analytics read models for the API and file exports of the assembled
// report documents.
package report

import (
	"context"
	"sort"
	"strings"
	"time"

	ledgerapp "github.com/teakhata/backend/internal/application/ledger"
	"github.com/teakhata/backend/internal/domain/ledger"
	"github.com/teakhata/backend/internal/domain/partner"
	"github.com/teakhata/backend/internal/domain/report"
	"github.com/teakhata/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// SnapshotLoader loads one consistent snapshot of the upstream data.
type SnapshotLoader interface {
	Load(ctx context.Context, q ledgerapp.SnapshotQuery) (*ledgerapp.Snapshot, error)
}

// AnalyticsService derives the dashboard and breakdown read models from
// snapshots. All derivation is delegated to the pure builders in
// domain/report; this service only loads data and shapes responses.
type AnalyticsService struct {
	snapshots    SnapshotLoader
	businessName string
	countryCode  string
	logger       *zap.Logger
}

// NewAnalyticsService creates a new AnalyticsService
func NewAnalyticsService(snapshots SnapshotLoader, businessName, countryCode string, logger *zap.Logger) *AnalyticsService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if countryCode == "" {
		countryCode = "91"
	}
	return &AnalyticsService{
		snapshots:    snapshots,
		businessName: businessName,
		countryCode:  countryCode,
		logger:       logger,
	}
}

// Dashboard returns the business-wide totals and the highlights shown on
// the app's landing screen.
func (s *AnalyticsService) Dashboard(ctx context.Context) (*DashboardResponse, error) {
	snap, err := s.snapshots.Load(ctx, ledgerapp.SnapshotQuery{})
	if err != nil {
		return nil, err
	}

	summary := ledger.ComputeSummary(snap.Entries)
	totals := summary.Totals()
	outstanding := report.BuildOutstandingBreakdown(summary, snap.Entries, snap.Customers, s.countryCode)
	collections := report.BuildCollectionBreakdown(snap.Entries, snap.Customers)

	resp := &DashboardResponse{
		BusinessName:      s.businessName,
		GeneratedAt:       time.Now(),
		DataAsOf:          snap.FetchedAt,
		TotalSales:        totals.TotalSales,
		TotalCollections:  totals.TotalCollections,
		TotalOutstanding:  totals.Outstanding,
		CustomerCount:     len(snap.Customers),
		EntryCount:        len(snap.Entries),
		BatchCount:        len(snap.Batches),
		TopOutstanding:    topOutstanding(outstanding, 5),
		RecentCollections: recentCollections(collections, 5),
	}
	if len(outstanding) > 0 {
		resp.DueSoon = nearestDue(outstanding)
	}
	return resp, nil
}

// Collections returns the collection breakdown, optionally scoped to a
// customer or date range.
func (s *AnalyticsService) Collections(ctx context.Context, q AnalyticsQuery) (*report.CollectionBreakdown, error) {
	snap, err := s.snapshots.Load(ctx, q.snapshotQuery())
	if err != nil {
		return nil, err
	}
	return report.BuildCollectionBreakdown(snap.Entries, snap.Customers), nil
}

// Outstanding returns the dues list across all customers.
func (s *AnalyticsService) Outstanding(ctx context.Context) ([]report.OutstandingEntry, error) {
	snap, err := s.snapshots.Load(ctx, ledgerapp.SnapshotQuery{})
	if err != nil {
		return nil, err
	}
	summary := ledger.ComputeSummary(snap.Entries)
	return report.BuildOutstandingBreakdown(summary, snap.Entries, snap.Customers, s.countryCode), nil
}

// Pnl returns the inventory profit and loss breakdown.
func (s *AnalyticsService) Pnl(ctx context.Context) (*report.PnlBreakdown, error) {
	snap, err := s.snapshots.Load(ctx, ledgerapp.SnapshotQuery{})
	if err != nil {
		return nil, err
	}
	return report.BuildPnlBreakdown(snap.Batches, snap.Entries), nil
}

// Customers returns every customer with their reconciled totals, filtered
// by an optional case-insensitive search over name, shop and phone.
func (s *AnalyticsService) Customers(ctx context.Context, search string) ([]CustomerOverview, error) {
	snap, err := s.snapshots.Load(ctx, ledgerapp.SnapshotQuery{})
	if err != nil {
		return nil, err
	}

	summary := ledger.ComputeSummary(snap.Entries)
	search = strings.ToLower(strings.TrimSpace(search))

	overviews := make([]CustomerOverview, 0, len(snap.Customers))
	for i := range snap.Customers {
		c := &snap.Customers[i]
		if search != "" && !matchesCustomer(c, search) {
			continue
		}
		overviews = append(overviews, buildOverview(c, summary))
	}

	// Owing customers first, largest due on top, then the rest by name.
	sort.SliceStable(overviews, func(i, j int) bool {
		oi, oj := overviews[i].Outstanding, overviews[j].Outstanding
		if !oi.Equal(oj) {
			return oi.GreaterThan(oj)
		}
		return overviews[i].Name < overviews[j].Name
	})

	return overviews, nil
}

// CustomerSummary returns one customer's reconciled overview. Backs the
// partner portal, where a caller only ever sees their own account.
func (s *AnalyticsService) CustomerSummary(ctx context.Context, customerID string) (*CustomerOverview, error) {
	if customerID == "" {
		return nil, shared.NewDomainError("INVALID_INPUT", "Customer is required")
	}

	snap, err := s.snapshots.Load(ctx, ledgerapp.SnapshotQuery{CustomerID: customerID})
	if err != nil {
		return nil, err
	}

	for i := range snap.Customers {
		if snap.Customers[i].ID == customerID {
			o := buildOverview(&snap.Customers[i], ledger.ComputeSummary(snap.Entries))
			return &o, nil
		}
	}
	return nil, shared.NewDomainError("NOT_FOUND", "Customer not found")
}

// Statement returns the chronological ledger statement for one customer.
func (s *AnalyticsService) Statement(ctx context.Context, customerID string) (*report.Statement, error) {
	if customerID == "" {
		return nil, shared.NewDomainError("INVALID_INPUT", "Customer is required")
	}

	snap, err := s.snapshots.Load(ctx, ledgerapp.SnapshotQuery{CustomerID: customerID})
	if err != nil {
		return nil, err
	}

	var customer *partner.Customer
	for i := range snap.Customers {
		if snap.Customers[i].ID == customerID {
			customer = &snap.Customers[i]
			break
		}
	}
	if customer == nil {
		return nil, shared.NewDomainError("NOT_FOUND", "Customer not found")
	}

	return report.BuildStatement(customer, snap.Entries), nil
}

// Document assembles the renderer-ready document for a report template.
// The export service renders these to files.
func (s *AnalyticsService) Document(ctx context.Context, kind report.TemplateKind, customerID string) (*report.Document, error) {
	snap, err := s.snapshots.Load(ctx, ledgerapp.SnapshotQuery{})
	if err != nil {
		return nil, err
	}

	return report.Assemble(kind, report.AssembleInput{
		BusinessName: s.businessName,
		GeneratedAt:  time.Now(),
		CountryCode:  s.countryCode,
		Customers:    snap.Customers,
		Entries:      snap.Entries,
		Batches:      snap.Batches,
		CustomerID:   customerID,
	})
}

// buildOverview merges a customer row with their reconciled totals. The
// cached balance hint follows the same rule as the dues list: it can raise
// a positive outstanding figure but never resurrects a settled customer.
func buildOverview(c *partner.Customer, summary *ledger.Summary) CustomerOverview {
	o := CustomerOverview{
		ID:        c.ID,
		Name:      c.DisplayName(),
		ShopName:  c.ShopName,
		Address:   c.Address,
		Phone:     c.BestPhone(),
		CreatedAt: c.CreatedAt,
	}
	if totals := summary.Customer(c.ID); totals != nil {
		o.TotalSales = totals.TotalSales
		o.TotalCollections = totals.TotalCollections
		o.Outstanding = totals.Outstanding()
		o.TransactionCount = totals.TransactionCount
		if o.Outstanding.IsPositive() && c.OutstandingHint.GreaterThan(o.Outstanding) {
			o.Outstanding = c.OutstandingHint
		}
	}
	return o
}

func matchesCustomer(c *partner.Customer, search string) bool {
	return strings.Contains(strings.ToLower(c.FullName), search) ||
		strings.Contains(strings.ToLower(c.ShopName), search) ||
		strings.Contains(strings.ToLower(c.Phone), search) ||
		strings.Contains(strings.ToLower(c.WhatsappPhone), search)
}

func topOutstanding(entries []report.OutstandingEntry, n int) []report.OutstandingEntry {
	if len(entries) <= n {
		return entries
	}
	return entries[:n]
}

func recentCollections(b *report.CollectionBreakdown, n int) []report.PaymentRecord {
	var all []report.PaymentRecord
	for _, d := range b.Details {
		all = append(all, d.Payments...)
	}
	sort.SliceStable(all, func(i, j int) bool {
		return all[i].CreatedAt.After(all[j].CreatedAt)
	})
	if len(all) > n {
		all = all[:n]
	}
	return all
}

// nearestDue picks the entry with the earliest upcoming due date.
func nearestDue(entries []report.OutstandingEntry) *report.OutstandingEntry {
	var best *report.OutstandingEntry
	for i := range entries {
		e := &entries[i]
		if e.NextDue == nil {
			continue
		}
		if best == nil || e.NextDue.Before(*best.NextDue) {
			best = e
		}
	}
	if best == nil {
		return nil
	}
	copied := *best
	return &copied
}
