package infra

// pdf.go — invoice PDF generation using go-pdf/fpdf.
// Produces an A4 invoice with a header, client block, item table and the
// subtotal / CGST / SGST / total breakdown. Amounts are formatted through the
// money package so the PDF is the only place rounding to 2 places happens.

import (
	"fmt"
	"os"
	"path/filepath"

	"crewbooks/internal/model"
	"crewbooks/internal/money"

	"github.com/go-pdf/fpdf"
	"github.com/shopspring/decimal"
)

var twoDecimal = decimal.NewFromInt(2)

// GenerateInvoicePDF renders the invoice into storagePath/invoice_{number}.pdf
// and returns the file name relative to storagePath.
func GenerateInvoicePDF(inv *model.Invoice, storagePath, businessName, locale, currencyCode string) (string, error) {
	if err := os.MkdirAll(storagePath, 0o755); err != nil {
		return "", fmt.Errorf("pdf: create storage dir: %w", err)
	}

	fileName := fmt.Sprintf("invoice_%d.pdf", inv.Number)
	filePath := filepath.Join(storagePath, fileName)

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(15, 15, 15)
	pdf.AddPage()

	// ── Header ───────────────────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "B", 18)
	pdf.CellFormat(0, 10, businessName, "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 11)
	pdf.CellFormat(0, 6, fmt.Sprintf("Tax Invoice #%d", inv.Number), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 6, inv.CreatedAt.Format("02 Jan 2006"), "", 1, "L", false, 0, "")
	pdf.Ln(4)

	// ── Client block ─────────────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "B", 11)
	pdf.CellFormat(0, 6, "Billed to", "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 11)
	pdf.CellFormat(0, 6, inv.ClientName, "", 1, "L", false, 0, "")
	pdf.Ln(4)

	// ── Item table ───────────────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "B", 10)
	pdf.SetFillColor(235, 235, 235)
	pdf.CellFormat(90, 8, "Description", "1", 0, "L", true, 0, "")
	pdf.CellFormat(20, 8, "Qty", "1", 0, "R", true, 0, "")
	pdf.CellFormat(35, 8, "Unit Price", "1", 0, "R", true, 0, "")
	pdf.CellFormat(35, 8, "Amount", "1", 1, "R", true, 0, "")

	pdf.SetFont("Helvetica", "", 10)
	for _, item := range inv.Items {
		pdf.CellFormat(90, 8, item.Description, "1", 0, "L", false, 0, "")
		pdf.CellFormat(20, 8, fmt.Sprintf("%d", item.Quantity), "1", 0, "R", false, 0, "")
		pdf.CellFormat(35, 8, money.Format(item.UnitPrice, locale, currencyCode), "1", 0, "R", false, 0, "")
		pdf.CellFormat(35, 8, money.Format(item.Amount, locale, currencyCode), "1", 1, "R", false, 0, "")
	}
	pdf.Ln(2)

	// ── Totals ───────────────────────────────────────────────────────────────
	totalRow := func(label, value string, bold bool) {
		style := ""
		if bold {
			style = "B"
		}
		pdf.SetFont("Helvetica", style, 10)
		pdf.CellFormat(145, 7, label, "", 0, "R", false, 0, "")
		pdf.CellFormat(35, 7, value, "", 1, "R", false, 0, "")
	}
	totalRow("Subtotal", money.Format(inv.Subtotal, locale, currencyCode), false)
	totalRow(fmt.Sprintf("CGST (%s%%)", inv.TaxPercentage.Div(twoDecimal).String()), money.Format(inv.CGST, locale, currencyCode), false)
	totalRow(fmt.Sprintf("SGST (%s%%)", inv.TaxPercentage.Div(twoDecimal).String()), money.Format(inv.SGST, locale, currencyCode), false)
	totalRow("Total", money.Format(inv.Total, locale, currencyCode), true)

	if err := pdf.OutputFileAndClose(filePath); err != nil {
		return "", fmt.Errorf("pdf: write %s: %w", filePath, err)
	}
	return fileName, nil
}
