package output

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/go-pdf/fpdf"
	"github.com/rpgo/resilience-navigator/internal/domain"
)

const (
	// ReportFileName is the download name of the PDF summary.
	ReportFileName = "Financial_Resilience_Report.pdf"
	// ReportMIMEType is the content type of the PDF summary.
	ReportMIMEType = "application/pdf"

	pdfTitle = "Financial Resilience Navigator Report"
)

// compressPDF is switched off in tests so the page text can be inspected.
var compressPDF = true

// PDFLines returns the body lines of the PDF summary in print order.
func PDFLines(report *domain.ProjectionReport) []string {
	in := report.Inputs
	return []string{
		fmt.Sprintf("Estimated Time to Reach Target: %d months", report.Result.MonthsNeeded),
		"Monthly Income: " + FormatCurrency(in.MonthlyIncome),
		"Monthly Expenses: " + FormatCurrency(in.MonthlyExpenses),
		"Current Savings: " + FormatCurrency(in.CurrentSavings),
		"Current Debt: " + FormatCurrency(in.CurrentDebt),
	}
}

// WritePDF renders the one-page summary and streams it to w.
func WritePDF(w io.Writer, report *domain.ProjectionReport) error {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetCompression(compressPDF)
	pdf.SetCatalogSort(true)
	pdf.SetCreationDate(report.GeneratedAt)
	pdf.SetModificationDate(report.GeneratedAt)
	pdf.SetTitle(pdfTitle, false)
	pdf.SetCreator("resilience", false)

	pdf.AddPage()
	pdf.SetFont("Arial", "B", 16)
	pdf.CellFormat(190, 10, pdfTitle, "", 1, "C", false, 0, "")
	pdf.Ln(10)

	pdf.SetFont("Arial", "", 12)
	for _, line := range PDFLines(report) {
		pdf.CellFormat(190, 10, line, "", 1, "L", false, 0, "")
	}

	if err := pdf.Error(); err != nil {
		return fmt.Errorf("failed to render PDF: %w", err)
	}
	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("failed to write PDF: %w", err)
	}
	return nil
}

// WritePDFFile writes the summary to path. The file is closed on every path;
// a close failure is reported when the write itself succeeded.
func WritePDFFile(path string, report *domain.ProjectionReport) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil {
			err = errors.Join(err, fmt.Errorf("failed to close %s: %w", path, cerr))
		}
	}()
	return WritePDF(f, report)
}
