package quotedoc

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/jung-kurt/gofpdf"
	"github.com/shopspring/decimal"
	"github.com/skip2/go-qrcode"

	"github.com/agriquote/agriquote-backend/pkg/db/models"
)

const (
	fontName = "Helvetica"
	qrSize   = 256
	qrImage  = "dealer-phone-qr"
)

// Generator renders a single quote as an A4 PDF.
type Generator struct {
	location *time.Location
}

// NewGenerator prints times in loc; nil falls back to UTC.
func NewGenerator(loc *time.Location) *Generator {
	if loc == nil {
		loc = time.UTC
	}
	return &Generator{location: loc}
}

// Generate renders quote as offered on req.
func (g *Generator) Generate(req models.QuotationRequest, quote models.Quote) ([]byte, error) {
	if quote.RequestID != "" && quote.RequestID != req.ID {
		return nil, fmt.Errorf("quote %s does not belong to request %s", quote.ID, req.ID)
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(15, 15, 15)
	pdf.SetCreationDate(quote.SubmittedAt)
	pdf.SetTitle("Tractor quotation "+quote.ID, true)
	pdf.AddPage()
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.SetFont(fontName, "B", 16)
	pdf.CellFormat(0, 10, "Tractor Quotation", "", 1, "C", false, 0, "")
	pdf.SetFont(fontName, "", 10)
	pdf.CellFormat(0, 6, fmt.Sprintf("Quote %s  |  Request %s", quote.ID, req.ID), "", 1, "C", false, 0, "")
	pdf.Ln(4)

	if err := g.addQR(pdf, quote.DealerPhone); err != nil {
		return nil, err
	}

	section(pdf, "Dealer")
	line(pdf, tr(quote.ShowroomName))
	line(pdf, tr(fmt.Sprintf("%s, %s", quote.DealerName, quote.DealerPhone)))
	pdf.Ln(2)

	section(pdf, "Customer")
	line(pdf, tr(safeValue(req.CustomerName)))
	line(pdf, tr("District: "+req.District))
	pdf.Ln(2)

	section(pdf, "Tractor")
	t := req.TractorSnapshot
	line(pdf, tr(strings.TrimSpace(fmt.Sprintf("%s %s %s", t.Brand, t.Model, t.Variant))))
	line(pdf, fmt.Sprintf("%d HP", t.HP))
	pdf.Ln(4)

	section(pdf, "Price breakdown")
	rows := []struct {
		label  string
		amount decimal.Decimal
		bold   bool
	}{
		{"Ex-Showroom Price", quote.ExShowroom, false},
		{"RTO & Registration", quote.RTO, false},
		{"Insurance", quote.Insurance, false},
		{"Accessories", quote.Accessories, false},
		{"On-Road Price", quote.BasePrice, true},
		{"Discount", quote.Discount.Neg(), false},
		{"Final Price", quote.FinalPrice, true},
	}
	for _, r := range rows {
		style := ""
		if r.bold {
			style = "B"
		}
		pdf.SetFont(fontName, style, 11)
		pdf.CellFormat(120, 8, r.label, "1", 0, "L", false, 0, "")
		pdf.CellFormat(60, 8, FormatINR(r.amount), "1", 1, "R", false, 0, "")
	}
	pdf.Ln(4)

	if notes := strings.TrimSpace(quote.Notes); notes != "" {
		section(pdf, "Notes")
		pdf.SetFont(fontName, "", 10)
		pdf.MultiCell(0, 5, tr(notes), "", "L", false)
		pdf.Ln(2)
	}

	pdf.SetFont(fontName, "I", 9)
	pdf.CellFormat(0, 6, "Submitted "+g.formatTime(quote.SubmittedAt), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 6, "Scan the code to call the dealer.", "", 1, "L", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render quote pdf: %w", err)
	}
	return buf.Bytes(), nil
}

func (g *Generator) addQR(pdf *gofpdf.Fpdf, phone string) error {
	phone = strings.TrimSpace(phone)
	if phone == "" {
		return nil
	}
	png, err := qrcode.Encode("tel:"+phone, qrcode.Medium, qrSize)
	if err != nil {
		return fmt.Errorf("encode dealer qr: %w", err)
	}
	opts := gofpdf.ImageOptions{ImageType: "PNG"}
	pdf.RegisterImageOptionsReader(qrImage, opts, bytes.NewReader(png))
	pageW, _ := pdf.GetPageSize()
	_, _, right, _ := pdf.GetMargins()
	pdf.ImageOptions(qrImage, pageW-right-30, pdf.GetY(), 30, 30, false, opts, 0, "")
	return pdf.Error()
}

func (g *Generator) formatTime(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.In(g.location).Format("02 Jan 2006 15:04")
}

func section(pdf *gofpdf.Fpdf, title string) {
	pdf.SetFont(fontName, "B", 12)
	pdf.CellFormat(0, 8, title, "", 1, "L", false, 0, "")
}

func line(pdf *gofpdf.Fpdf, text string) {
	pdf.SetFont(fontName, "", 11)
	pdf.CellFormat(120, 6, text, "", 1, "L", false, 0, "")
}

func safeValue(value string) string {
	if strings.TrimSpace(value) == "" {
		return "-"
	}
	return value
}
