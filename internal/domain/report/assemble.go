package report

import (
	"time"

	"github.com/teakhata/backend/internal/domain/inventory"
	"github.com/teakhata/backend/internal/domain/ledger"
	"github.com/teakhata/backend/internal/domain/partner"
	"github.com/teakhata/backend/internal/domain/shared"
)

// TemplateKind selects which report document to assemble. The names are
// part of the API and of saved report runs, so they never change casing.
type TemplateKind string

const (
	TemplateComprehensive    TemplateKind = "comprehensive"
	TemplateTeaStock         TemplateKind = "teaStock"
	TemplateCustomerSummary  TemplateKind = "customerSummary"
	TemplateDailyCollections TemplateKind = "dailyCollections"
	TemplateLedger           TemplateKind = "ledger"
)

// TemplateKinds lists every assemblable template.
var TemplateKinds = []TemplateKind{
	TemplateComprehensive,
	TemplateTeaStock,
	TemplateCustomerSummary,
	TemplateDailyCollections,
	TemplateLedger,
}

// ParseTemplateKind validates a template name from the API.
func ParseTemplateKind(s string) (TemplateKind, error) {
	for _, k := range TemplateKinds {
		if string(k) == s {
			return k, nil
		}
	}
	return "", shared.NewDomainError("INVALID_INPUT", "unknown report template: "+s)
}

// Section is one titled table of an assembled document. Meta lines carry
// banner text (period covered, totals) between the title and the table.
type Section struct {
	Title   string     `json:"title"`
	Meta    []string   `json:"meta,omitempty"`
	Headers []string   `json:"headers"`
	Rows    [][]string `json:"rows"`
}

// Document is a fully assembled, renderer-ready report: every cell already
// formatted, every section ordered. Renderers only draw it.
type Document struct {
	Kind         TemplateKind `json:"kind"`
	Title        string       `json:"title"`
	BusinessName string       `json:"business_name"`
	GeneratedAt  time.Time    `json:"generated_at"`
	Sections     []Section    `json:"sections"`
}

// AssembleInput carries one snapshot plus presentation context into
// Assemble. GeneratedAt comes from the caller so assembly stays a pure
// function.
type AssembleInput struct {
	BusinessName string
	GeneratedAt  time.Time
	CountryCode  string

	Customers []partner.Customer
	Entries   []ledger.Entry
	Batches   []inventory.Batch

	// CustomerID narrows the ledger template to one customer's statement.
	// Empty means every customer with entries.
	CustomerID string
}

// Assemble builds the document for kind from one snapshot. Missing
// sub-inputs degrade to empty sections; only an unknown template kind is an
// error.
func Assemble(kind TemplateKind, in AssembleInput) (*Document, error) {
	doc := &Document{
		Kind:         kind,
		BusinessName: in.BusinessName,
		GeneratedAt:  in.GeneratedAt,
	}

	summary := ledger.ComputeSummary(in.Entries)

	switch kind {
	case TemplateComprehensive:
		doc.Title = "Business Overview Report"
		collections := BuildCollectionBreakdown(in.Entries, in.Customers)
		outstanding := BuildOutstandingBreakdown(summary, in.Entries, in.Customers, in.CountryCode)
		pnl := BuildPnlBreakdown(in.Batches, in.Entries)
		doc.Sections = []Section{
			overviewSection(summary, len(in.Customers)),
			customerSummarySection(summary, in.Customers, in.Entries),
			collectionsSection(collections),
			outstandingSection(outstanding),
			pnlSection(pnl),
			stockSection(in.Batches),
		}

	case TemplateTeaStock:
		doc.Title = "Tea Stock Report"
		doc.Sections = []Section{stockSection(in.Batches)}

	case TemplateCustomerSummary:
		doc.Title = "Customer Summary Report"
		doc.Sections = []Section{customerSummarySection(summary, in.Customers, in.Entries)}

	case TemplateDailyCollections:
		doc.Title = "Daily Collections Report"
		collections := BuildCollectionBreakdown(in.Entries, in.Customers)
		doc.Sections = dailyCollectionSections(collections)

	case TemplateLedger:
		doc.Title = "Customer Ledger Statement"
		doc.Sections = ledgerSections(in)

	default:
		return nil, shared.NewDomainError("INVALID_INPUT", "unknown report template: "+string(kind))
	}

	return doc, nil
}
