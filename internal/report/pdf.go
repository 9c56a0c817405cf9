// Package report renders tabular datasets into downloadable PDF documents:
// a store letterhead, the table itself, and a signature block for a physical
// sign-off.
package report

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/jung-kurt/gofpdf"
)

// StoreMeta is the letterhead information taken from the settings store.
type StoreMeta struct {
	StoreName    string
	StoreAddress string
}

// Extension is the fixed extension of generated artifacts.
const Extension = ".pdf"

// placeFallback is printed in the signature line when no address is set.
const placeFallback = "Tempat"

const (
	leftMargin  = 14.0
	rightEdge   = 180.0
	tableStartY = 50.0
	// vertical room a signature block needs below the table
	signatureRoom = 50.0
)

// nowFn is a test seam for the date line.
var nowFn = time.Now

// Export renders one report and writes it to dir as <filename>.pdf. columns
// is the header row; every row must have len(columns) cells. footer is
// accepted for call-site compatibility but not rendered.
//
// Any panic during document construction is converted into an error, so a
// drawing bug never crashes the caller.
func Export(dir, filename, title string, columns []string, rows [][]string, meta StoreMeta, footer string) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("report: %v", r)
		}
	}()

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	pageW, pageH := pdf.GetPageSize()

	storeName := meta.StoreName
	if storeName == "" {
		storeName = "My Store"
	}

	// letterhead
	pdf.SetFont("Helvetica", "B", 18)
	centerText(pdf, pageW, 15, storeName)

	pdf.SetFont("Helvetica", "", 10)
	if meta.StoreAddress != "" {
		centerText(pdf, pageW, 22, meta.StoreAddress)
	}

	// title and date line
	pdf.SetFont("Helvetica", "B", 14)
	pdf.Text(leftMargin, 35, title)

	dateStr := FormatLongDate(nowFn())
	pdf.SetFont("Helvetica", "", 10)
	pdf.Text(leftMargin, 42, "Date: "+dateStr)

	drawTable(pdf, pageW, columns, rows)
	finalY := pdf.GetY()

	// signature block, on a fresh page when the table left no room
	sigY := finalY + 20
	if finalY+signatureRoom > pageH {
		pdf.AddPage()
		pdf.SetFont("Helvetica", "", 10)
		pdf.Text(leftMargin, 20, "Signature Page")
		sigY = 40
	}

	pdf.SetFont("Helvetica", "", 10)
	place := signaturePlace(meta.StoreAddress)
	rightText(pdf, sigY, fmt.Sprintf("%s, %s", place, dateStr))
	centerTextAt(pdf, rightEdge-20, sigY+10, "Dibuat Oleh,")
	pdf.Line(rightEdge-40, sigY+35, rightEdge, sigY+35)
	centerTextAt(pdf, rightEdge-20, sigY+40, "( .................... )")

	if err := pdf.Error(); err != nil {
		return fmt.Errorf("report: %w", err)
	}

	out := filepath.Join(dir, filename+Extension)
	if err := pdf.OutputFileAndClose(out); err != nil {
		return fmt.Errorf("report: save %s: %w", out, err)
	}
	return nil
}

func drawTable(pdf *gofpdf.Fpdf, pageW float64, columns []string, rows [][]string) {
	if len(columns) == 0 {
		return
	}
	colW := (pageW - 2*leftMargin) / float64(len(columns))

	pdf.SetY(tableStartY)
	pdf.SetX(leftMargin)

	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetFillColor(66, 66, 66)
	pdf.SetTextColor(255, 255, 255)
	for _, h := range columns {
		pdf.CellFormat(colW, 8, h, "1", 0, "C", true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Helvetica", "", 9)
	pdf.SetTextColor(0, 0, 0)
	for _, row := range rows {
		pdf.SetX(leftMargin)
		for i := 0; i < len(columns); i++ {
			var cell string
			if i < len(row) {
				cell = row[i]
			}
			pdf.CellFormat(colW, 7, cell, "1", 0, "L", false, 0, "")
		}
		pdf.Ln(-1)
	}
}

// signaturePlace returns the first comma-segment of the store address, which
// conventionally is the city, or a fallback token when no address is set.
func signaturePlace(address string) string {
	if address == "" {
		return placeFallback
	}
	place := strings.TrimSpace(strings.SplitN(address, ",", 2)[0])
	if place == "" {
		return placeFallback
	}
	return place
}

func centerText(pdf *gofpdf.Fpdf, pageW, y float64, s string) {
	pdf.Text((pageW-pdf.GetStringWidth(s))/2, y, s)
}

func centerTextAt(pdf *gofpdf.Fpdf, x, y float64, s string) {
	pdf.Text(x-pdf.GetStringWidth(s)/2, y, s)
}

func rightText(pdf *gofpdf.Fpdf, y float64, s string) {
	pdf.Text(rightEdge-pdf.GetStringWidth(s), y, s)
}
