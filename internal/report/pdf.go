package report

import (
	"context"
	"fmt"
	"time"

	"github.com/go-pdf/fpdf"

	"inventoryManagement/repository"
)

// Report layout in millimeters on an A4 portrait page.
const (
	pdfTopY     = 18.0
	pdfRowStep  = 5.3
	pdfBottomY  = 283.0 // page break once the cursor passes this
	pdfLeftX    = 10.0
	pdfRightX   = 200.0
	nameMaxLen  = 35
	typeMaxLen  = 25
	datePattern = "02/01/2006"
)

var pdfColX = []float64{10, 50, 100, 125, 145, 170}

// WriteStockPDF renders the paginated stock report. When the catalog is empty
// no file is written and (false, nil) is returned.
func WriteStockPDF(ctx context.Context, products repository.ProductRepositoryI, path string) (bool, error) {
	list, err := products.List(ctx)
	if err != nil {
		return false, err
	}
	if len(list) == 0 {
		return false, nil
	}

	pdf := fpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.AddPage()

	y := pdfTopY
	pdf.SetFont("Helvetica", "B", 16)
	pdf.Text(pdfLeftX, y, tr("Relatório de Estoque - Cores e Fragrâncias"))
	y += 7

	pdf.SetFont("Helvetica", "", 10)
	pdf.Text(pdfLeftX, y, tr(fmt.Sprintf("Data de Geração: %s", time.Now().Format("02/01/2006 15:04:05"))))
	y += 7

	y = writeTableHeader(pdf, tr, y)

	pdf.SetFont("Helvetica", "", 9)
	for _, p := range list {
		if y > pdfBottomY {
			pdf.AddPage()
			y = writeTableHeader(pdf, tr, pdfTopY)
			pdf.SetFont("Helvetica", "", 9)
		}

		expiration := "-"
		if p.ExpirationDate != nil {
			if t, err := time.Parse("2006-01-02", *p.ExpirationDate); err == nil {
				expiration = t.Format(datePattern)
			} else {
				expiration = *p.ExpirationDate
			}
		}

		pdf.Text(pdfColX[0], y, tr(truncate(p.Name, nameMaxLen)))
		pdf.Text(pdfColX[1], y, tr(fmt.Sprintf("%s/%s", orDash(p.Brand), orDash(p.Style))))
		pdf.Text(pdfColX[2], y, tr(truncate(orDash(p.Type), typeMaxLen)))
		pdf.Text(pdfColX[3], y, fmt.Sprintf("%d", p.Quantity))
		pdf.Text(pdfColX[4], y, fmt.Sprintf("R$ %.2f", p.Price))
		pdf.Text(pdfColX[5], y, tr(expiration))
		y += pdfRowStep
	}

	if err := pdf.OutputFileAndClose(path); err != nil {
		return false, err
	}
	return true, nil
}

// writeTableHeader draws the column labels and rule, returning the y position
// of the first data row.
func writeTableHeader(pdf *fpdf.Fpdf, tr func(string) string, y float64) float64 {
	pdf.SetFont("Helvetica", "B", 10)
	pdf.Text(pdfColX[0], y, "Nome")
	pdf.Text(pdfColX[1], y, tr("Marca/Estilo"))
	pdf.Text(pdfColX[2], y, "Tipo")
	pdf.Text(pdfColX[3], y, "Qtd")
	pdf.Text(pdfColX[4], y, tr("Preço"))
	pdf.Text(pdfColX[5], y, "Validade")
	y += 2
	pdf.Line(pdfLeftX, y, pdfRightX, y)
	return y + 5
}

func truncate(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max])
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
