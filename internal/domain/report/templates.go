package report

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/teakhata/backend/internal/domain/inventory"
	"github.com/teakhata/backend/internal/domain/ledger"
	"github.com/teakhata/backend/internal/domain/partner"
)

func overviewSection(s *ledger.Summary, customerCount int) Section {
	totals := s.Totals()
	entryCount := 0
	for _, c := range s.PerCustomer {
		entryCount += c.TransactionCount
	}
	return Section{
		Title:   "Overview",
		Headers: []string{"Metric", "Value"},
		Rows: [][]string{
			{"Total sales", FormatMoney(totals.TotalSales)},
			{"Total collections", FormatMoney(totals.TotalCollections)},
			{"Outstanding dues", FormatMoney(totals.Outstanding)},
			{"Customers on record", FormatCount(customerCount)},
			{"Ledger entries", FormatCount(entryCount)},
		},
	}
}

// customerSummarySection lists every bucket with activity: known customers
// in customer-list order, entry-only customers in entry order, the unknown
// bucket last. That makes the section deterministic without depending on
// map iteration.
func customerSummarySection(s *ledger.Summary, customers []partner.Customer, entries []ledger.Entry) Section {
	hints := make(map[string]string)
	for i := range entries {
		key := entries[i].CustomerKey()
		if hints[key] == "" {
			hints[key] = entries[i].CustomerNameHint()
		}
	}

	rows := make([][]string, 0, len(s.PerCustomer))
	emitted := make(map[string]bool)
	add := func(key, name string) {
		c := s.Customer(key)
		if c == nil || emitted[key] {
			return
		}
		emitted[key] = true
		rows = append(rows, []string{
			name,
			FormatMoney(c.TotalSales),
			FormatMoney(c.TotalCollections),
			FormatMoney(c.Outstanding()),
			FormatCount(c.TransactionCount),
		})
	}

	for i := range customers {
		add(customers[i].ID, customers[i].DisplayName())
	}
	for i := range entries {
		key := entries[i].CustomerKey()
		if key == ledger.UnknownCustomerKey {
			continue
		}
		add(key, resolveDisplayName(nil, hints[key]))
	}
	add(ledger.UnknownCustomerKey, partner.UnknownDisplayName)

	return Section{
		Title:   "Customer Summary",
		Headers: []string{"Customer", "Total Sales", "Collections", "Outstanding", "Entries"},
		Rows:    rows,
	}
}

func collectionsSection(cb *CollectionBreakdown) Section {
	rows := make([][]string, 0, cb.Summary.PaymentCount)
	for i := range cb.Details {
		d := &cb.Details[i]
		for j := range d.Payments {
			p := &d.Payments[j]
			rows = append(rows, []string{
				d.Name,
				FormatDate(p.CreatedAt),
				FormatMoney(p.Amount),
				FormatMoney(p.SaleAmount),
				FormatMoney(p.Balance),
				string(p.Status),
			})
		}
	}
	return Section{
		Title: "Collections",
		Meta: []string{
			enIN.Sprintf("%d customers, %d receipts", cb.Summary.CustomerCount, cb.Summary.PaymentCount),
			"Total collected: " + FormatMoney(cb.Summary.TotalAmount),
		},
		Headers: []string{"Customer", "Date", "Amount", "Against Sale", "Balance Left", "Status"},
		Rows:    rows,
	}
}

func outstandingSection(list []OutstandingEntry) Section {
	rows := make([][]string, 0, len(list))
	total := decimal.Zero
	for i := range list {
		o := &list[i]
		phone := o.Phone
		if phone == "" {
			phone = "-"
		}
		rows = append(rows, []string{
			o.Name,
			phone,
			FormatMoney(o.Outstanding),
			FormatCount(o.TransactionCount),
			FormatDatePtr(o.NextDue),
			FormatDate(o.LastActivity),
		})
		total = total.Add(o.Outstanding)
	}
	return Section{
		Title:   "Outstanding Dues",
		Meta:    []string{"Total outstanding: " + FormatMoney(total)},
		Headers: []string{"Customer", "Phone", "Outstanding", "Entries", "Next Due", "Last Activity"},
		Rows:    rows,
	}
}

func pnlSection(pb *PnlBreakdown) Section {
	section := Section{
		Title: "Profit and Loss",
		Meta: []string{
			"Total profit: " + FormatMoney(pb.Totals.Profit),
			"Sold: " + FormatQuantity(pb.Totals.SoldQuantity) + " for " + FormatMoney(pb.Totals.SaleValue),
		},
	}

	if pb.Source == PnlFromTransactions {
		section.Headers = []string{"Date", "Tea", "Quantity", "Sale Rate", "Purchase Rate", "Profit/kg", "Profit"}
		for i := range pb.Rows {
			r := &pb.Rows[i]
			section.Rows = append(section.Rows, []string{
				FormatDate(r.CreatedAt),
				r.TeaName,
				FormatQuantity(r.Quantity),
				FormatMoney(r.SaleRate),
				FormatMoney(r.PurchaseRate),
				FormatMoney(r.ProfitPerKg),
				FormatMoney(r.Profit),
			})
		}
		return section
	}

	section.Headers = []string{"Batch", "Sold", "Remaining", "Purchase Rate", "Avg Sell Rate", "Profit/kg", "Profit"}
	for i := range pb.Rows {
		r := &pb.Rows[i]
		section.Rows = append(section.Rows, []string{
			r.TeaName,
			FormatQuantity(r.Quantity),
			FormatQuantity(r.RemainingQuantity),
			FormatMoney(r.PurchaseRate),
			FormatMoney(r.SaleRate),
			FormatMoney(r.ProfitPerKg),
			FormatMoney(r.Profit),
		})
	}
	return section
}

func stockSection(batches []inventory.Batch) Section {
	ordered := make([]inventory.Batch, len(batches))
	copy(ordered, batches)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].CreatedAt.After(ordered[j].CreatedAt)
	})

	rows := make([][]string, 0, len(ordered))
	totalValue := decimal.Zero
	for i := range ordered {
		b := &ordered[i]
		value := b.StockValue()
		rows = append(rows, []string{
			b.DisplayName(),
			FormatQuantity(b.ResolvedTotalQuantity()),
			FormatQuantity(b.ResolvedRemainingQuantity()),
			FormatQuantity(b.SoldQuantity()),
			FormatMoney(b.ResolvedPurchaseRate()),
			FormatMoney(value),
		})
		totalValue = totalValue.Add(value)
	}
	return Section{
		Title:   "Tea Stock",
		Meta:    []string{"Stock value at cost: " + FormatMoney(totalValue)},
		Headers: []string{"Batch", "Purchased", "Remaining", "Sold", "Purchase Rate", "Stock Value"},
		Rows:    rows,
	}
}

// dailyCollectionSections splits the collection breakdown into one section
// per calendar day, newest day first; undated receipts close the document.
func dailyCollectionSections(cb *CollectionBreakdown) []Section {
	type flat struct {
		name string
		rec  PaymentRecord
	}
	byDay := make(map[string][]flat)
	dayStamp := make(map[string]time.Time)
	for i := range cb.Details {
		d := &cb.Details[i]
		for _, p := range d.Payments {
			day := FormatDate(p.CreatedAt)
			byDay[day] = append(byDay[day], flat{name: d.Name, rec: p})
			if p.CreatedAt.After(dayStamp[day]) {
				dayStamp[day] = p.CreatedAt
			}
		}
	}

	days := make([]string, 0, len(byDay))
	for day := range byDay {
		days = append(days, day)
	}
	sort.SliceStable(days, func(i, j int) bool {
		return dayStamp[days[i]].After(dayStamp[days[j]])
	})

	sections := make([]Section, 0, len(days))
	for _, day := range days {
		receipts := byDay[day]
		rows := make([][]string, 0, len(receipts))
		total := decimal.Zero
		for _, f := range receipts {
			rows = append(rows, []string{f.name, FormatMoney(f.rec.Amount), string(f.rec.Status)})
			total = total.Add(f.rec.Amount)
		}
		title := "Collections - " + day
		if day == "-" {
			title = "Collections - undated"
		}
		sections = append(sections, Section{
			Title:   title,
			Meta:    []string{"Day total: " + FormatMoney(total)},
			Headers: []string{"Customer", "Amount", "Status"},
			Rows:    rows,
		})
	}
	return sections
}

func ledgerSections(in AssembleInput) []Section {
	idx := partner.Index(in.Customers)

	if in.CustomerID != "" {
		c := idx[in.CustomerID]
		if c == nil {
			c = &partner.Customer{ID: in.CustomerID}
		}
		return []Section{statementSection(BuildStatement(c, in.Entries))}
	}

	sections := make([]Section, 0, len(in.Customers))
	for i := range in.Customers {
		st := BuildStatement(&in.Customers[i], in.Entries)
		if len(st.Lines) == 0 {
			continue
		}
		sections = append(sections, statementSection(st))
	}
	return sections
}

func statementSection(st *Statement) Section {
	rows := make([][]string, 0, len(st.Lines))
	for i := range st.Lines {
		l := &st.Lines[i]
		rows = append(rows, []string{
			FormatDate(l.Date),
			l.Description,
			FormatMoney(l.Debit),
			FormatMoney(l.Credit),
			FormatMoney(l.Balance),
			string(l.Status),
		})
	}
	return Section{
		Title:   "Ledger - " + st.CustomerName,
		Meta:    []string{"Closing balance: " + FormatMoney(st.Closing)},
		Headers: []string{"Date", "Particulars", "Debit", "Credit", "Balance", "Status"},
		Rows:    rows,
	}
}
