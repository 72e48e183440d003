package ledger

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func saleEntry(id, customerID, amount, paid, balance string, at time.Time) Entry {
	e := Entry{ID: id, CustomerID: customerID, Type: "sale", CreatedAt: at}
	if amount != "" {
		e.Amount = decPtr(amount)
	}
	if paid != "" {
		e.PaidAmount = decPtr(paid)
	}
	if balance != "" {
		e.Balance = decPtr(balance)
	}
	return e
}

func paymentEntry(id, customerID, amount string, at time.Time) Entry {
	e := Entry{ID: id, CustomerID: customerID, Type: "payment", CreatedAt: at}
	if amount != "" {
		e.Amount = decPtr(amount)
	}
	return e
}

func TestComputeSummaryBasics(t *testing.T) {
	base := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	entries := []Entry{
		saleEntry("t1", "c1", "1000", "400", "600", base),
		paymentEntry("t2", "c1", "250", base.Add(time.Hour)),
		saleEntry("t3", "c2", "500", "", "", base.Add(2*time.Hour)),
	}

	s := ComputeSummary(entries)

	c1 := s.Customer("c1")
	require.NotNil(t, c1)
	assert.True(t, c1.TotalSales.Equal(dec("1000")))
	assert.True(t, c1.TotalCollections.Equal(dec("250")))
	assert.True(t, c1.Outstanding().Equal(dec("350")), "600 balance offset by 250 payment")
	assert.Equal(t, 2, c1.TransactionCount)

	c2 := s.Customer("c2")
	require.NotNil(t, c2)
	assert.True(t, c2.TotalSales.Equal(dec("500")))
	assert.True(t, c2.Outstanding().Equal(dec("500")), "balance derived as amount minus paid")

	totals := s.Totals()
	assert.True(t, totals.TotalSales.Equal(dec("1500")))
	assert.True(t, totals.TotalCollections.Equal(dec("250")))
	assert.True(t, totals.Outstanding.Equal(dec("850")))
}

func TestComputeSummarySettledCustomer(t *testing.T) {
	// A sale fully cleared by a later payment leaves no dues.
	base := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	entries := []Entry{
		saleEntry("t1", "c1", "1000", "400", "600", base),
		paymentEntry("t2", "c1", "600", base.Add(time.Hour)),
	}

	s := ComputeSummary(entries)
	c1 := s.Customer("c1")
	require.NotNil(t, c1)
	assert.True(t, c1.Outstanding().IsZero())
	assert.True(t, s.Totals().Outstanding.IsZero())
}

func TestComputeSummaryBalanceFloor(t *testing.T) {
	base := time.Now()
	entries := []Entry{
		saleEntry("t1", "c1", "500", "500", "0", base),
		paymentEntry("t2", "c1", "800", base.Add(time.Minute)),
	}

	s := ComputeSummary(entries)
	c1 := s.Customer("c1")
	require.NotNil(t, c1)
	assert.True(t, c1.Outstanding().IsZero(), "overpayment clamps to zero, never negative")
	assert.True(t, c1.TotalCollections.Equal(dec("800")))
}

func TestComputeSummaryUnknownBucket(t *testing.T) {
	entries := []Entry{
		saleEntry("t1", "", "300", "", "", time.Now()),
		{ID: "t2", Type: "payment", Amount: decPtr("100")},
	}

	s := ComputeSummary(entries)
	unknown := s.Customer(UnknownCustomerKey)
	require.NotNil(t, unknown)
	assert.Equal(t, 2, unknown.TransactionCount)
	assert.True(t, unknown.TotalSales.Equal(dec("300")))
	assert.True(t, unknown.TotalCollections.Equal(dec("100")))

	totals := s.Totals()
	assert.True(t, totals.TotalSales.Equal(dec("300")), "unresolved entries still count globally")
}

func TestComputeSummaryDefectiveRecords(t *testing.T) {
	entries := []Entry{
		{ID: "t1", CustomerID: "c1", Type: "sale", Attrs: map[string]any{"sale_amount": math.NaN()}},
		{ID: "t2", CustomerID: "c1", Type: "sale", Attrs: map[string]any{"sale_amount": "oops"}},
		{ID: "t3", CustomerID: "c1", Type: "payment"},
	}

	var s *Summary
	require.NotPanics(t, func() { s = ComputeSummary(entries) })

	c1 := s.Customer("c1")
	require.NotNil(t, c1)
	assert.True(t, c1.TotalSales.IsZero())
	assert.True(t, c1.TotalCollections.IsZero())
	assert.True(t, c1.Outstanding().IsZero())
	assert.Equal(t, 3, c1.TransactionCount)
}

func TestComputeSummaryDeterministic(t *testing.T) {
	base := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	entries := []Entry{
		saleEntry("t1", "c1", "1000", "400", "600", base),
		paymentEntry("t2", "c1", "600", base.Add(time.Hour)),
		saleEntry("t3", "c2", "900", "100", "", base),
	}

	first := ComputeSummary(entries)
	second := ComputeSummary(entries)

	require.Equal(t, len(first.PerCustomer), len(second.PerCustomer))
	for key, a := range first.PerCustomer {
		b := second.PerCustomer[key]
		require.NotNil(t, b)
		assert.True(t, a.TotalSales.Equal(b.TotalSales))
		assert.True(t, a.TotalCollections.Equal(b.TotalCollections))
		assert.True(t, a.Outstanding().Equal(b.Outstanding()))
	}
}

func TestSummaryTotalsClampPerCustomer(t *testing.T) {
	base := time.Now()
	entries := []Entry{
		// c1 overpaid by 300, c2 owes 500: global dues must be 500, not 200.
		saleEntry("s1", "c1", "200", "200", "0", base),
		paymentEntry("p1", "c1", "300", base),
		saleEntry("s2", "c2", "500", "", "", base),
	}

	s := ComputeSummary(entries)
	assert.True(t, s.Totals().Outstanding.Equal(dec("500")))
}
