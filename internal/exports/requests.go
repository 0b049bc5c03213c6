package exports

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"github.com/agriquote/agriquote-backend/pkg/db/models"
)

const (
	RequestsSheet = "Requests"
	QuotesSheet   = "Quotes"

	// ContentType is the MIME type of the generated workbook.
	ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

var (
	requestHeaders = []string{"Request ID", "Created", "Customer", "District", "Brand", "Model", "HP", "Status", "Quotes", "Best Final Price"}
	quoteHeaders   = []string{"Request ID", "Quote ID", "Dealer", "Showroom", "Phone", "Ex-Showroom", "RTO", "Insurance", "Accessories", "On-Road", "Discount", "Final Price", "Notes", "Submitted"}
)

// Generator builds the admin requests workbook.
type Generator struct{}

func NewGenerator() *Generator {
	return &Generator{}
}

// Generate writes one row per request and one row per quote.
func (g *Generator) Generate(reqs []models.QuotationRequest) ([]byte, error) {
	file := excelize.NewFile()
	defer file.Close()

	if err := file.SetSheetName("Sheet1", RequestsSheet); err != nil {
		return nil, fmt.Errorf("rename sheet: %w", err)
	}
	if _, err := file.NewSheet(QuotesSheet); err != nil {
		return nil, fmt.Errorf("add quotes sheet: %w", err)
	}

	if err := writeRow(file, RequestsSheet, 1, toAny(requestHeaders)); err != nil {
		return nil, err
	}
	if err := writeRow(file, QuotesSheet, 1, toAny(quoteHeaders)); err != nil {
		return nil, err
	}

	quoteRow := 2
	for i, r := range reqs {
		best := ""
		if price, ok := BestFinalPrice(r); ok {
			best = price.StringFixed(2)
		}
		row := []any{
			r.ID,
			formatDateTime(r.CreatedAt),
			r.CustomerName,
			r.District,
			r.TractorSnapshot.Brand,
			r.TractorSnapshot.Model,
			r.TractorSnapshot.HP,
			string(r.Status),
			len(r.Quotes),
			best,
		}
		if err := writeRow(file, RequestsSheet, i+2, row); err != nil {
			return nil, err
		}

		for _, q := range r.Quotes {
			row := []any{
				r.ID,
				q.ID,
				q.DealerName,
				q.ShowroomName,
				q.DealerPhone,
				money(q.ExShowroom),
				money(q.RTO),
				money(q.Insurance),
				money(q.Accessories),
				money(q.BasePrice),
				money(q.Discount),
				money(q.FinalPrice),
				q.Notes,
				formatDateTime(q.SubmittedAt),
			}
			if err := writeRow(file, QuotesSheet, quoteRow, row); err != nil {
				return nil, err
			}
			quoteRow++
		}
	}

	_ = file.SetColWidth(RequestsSheet, "A", "A", 44)
	_ = file.SetColWidth(RequestsSheet, "B", "B", 20)
	_ = file.SetColWidth(RequestsSheet, "C", "F", 20)
	_ = file.SetColWidth(QuotesSheet, "A", "B", 44)
	_ = file.SetColWidth(QuotesSheet, "C", "E", 22)
	_ = file.SetColWidth(QuotesSheet, "M", "M", 40)

	file.SetActiveSheet(0)
	buf, err := file.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

// BestFinalPrice returns the lowest final price quoted on r.
func BestFinalPrice(r models.QuotationRequest) (decimal.Decimal, bool) {
	if len(r.Quotes) == 0 {
		return decimal.Zero, false
	}
	best := r.Quotes[0].FinalPrice
	for _, q := range r.Quotes[1:] {
		if q.FinalPrice.LessThan(best) {
			best = q.FinalPrice
		}
	}
	return best, true
}

func writeRow(file *excelize.File, sheet string, row int, values []any) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	if err := file.SetSheetRow(sheet, cell, &values); err != nil {
		return fmt.Errorf("write %s row %d: %w", sheet, row, err)
	}
	return nil
}

func toAny(values []string) []any {
	out := make([]any, len(values))
	for i, v := range values {
		out[i] = v
	}
	return out
}

// money keeps spreadsheet cells numeric; the export is a report, not a ledger.
func money(d decimal.Decimal) float64 {
	return d.InexactFloat64()
}

func formatDateTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format("2006-01-02 15:04:05")
}
