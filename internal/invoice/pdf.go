package invoice

import (
	"bytes"
	"fmt"
	"strconv"

	"github.com/buchetul-simonei/order-service/internal/normalize"

	"github.com/jung-kurt/gofpdf"
	"github.com/shopspring/decimal"
)

// Seller is the fixed identity block printed on every invoice.
type Seller struct {
	Name         string
	Address      string
	Registration string
	Contact      string
	Site         string
	Legal        string
}

var DefaultSeller = Seller{
	Name:         "BUCHETUL SIMONEI POEZIA FLORILOR SRL",
	Address:      "jud. Neamt, sat Tamaseni, Str. Unirii 224, Cod 617465",
	Registration: "Inregistrare la Registrul Comertului: J27/802/2016, CUI: 36497181",
	Contact:      "Contact: laurasimona97@yahoo.com - Tel: 0769141250",
	Site:         "www.buchetul-simonei.com",
	Legal: "Site-ul www.buchetul-simonei.com este detinut si operat de BUCHETUL SIMONEI " +
		"POEZIA FLORILOR SRL, cu sediul in judetul Neamt, sat Tamaseni, Str. Unirii 224, " +
		"Cod 617465. Inregistrare la Registrul Comertului: J27/802/2016, CUI: 36497181.",
}

// vatRate is displayed on the invoice; note that the printed total stays equal
// to the pre-VAT subtotal. That matches the storefront's live behavior and
// must not be "fixed" here without a business decision.
var vatRate = decimal.NewFromFloat(0.21)

// LineAmount parses one display line into its subtotal contribution. A price
// or quantity that does not parse contributes exactly zero.
func LineAmount(line normalize.LineDisplay) decimal.Decimal {
	price, err := decimal.NewFromString(line.Price)
	if err != nil {
		return decimal.Zero
	}
	qty, err := strconv.Atoi(line.Quantity)
	if err != nil {
		return decimal.Zero
	}
	return price.Mul(decimal.NewFromInt(int64(qty)))
}

// Totals returns the invoice subtotal and the VAT computed on it.
func Totals(lines []normalize.LineDisplay) (subtotal, vat decimal.Decimal) {
	subtotal = decimal.Zero
	for _, line := range lines {
		subtotal = subtotal.Add(LineAmount(line))
	}
	return subtotal, subtotal.Mul(vatRate)
}

var colWidths = [5]float64{10, 95, 20, 30, 30}

// Build renders one normalized order into an A4 invoice PDF. Missing optional
// fields render as empty strings; Build fails only on PDF encoding errors.
func Build(seller Seller, row normalize.Row, lines []normalize.LineDisplay) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(15, 15, 15)
	pdf.SetAutoPageBreak(true, 15)
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.AddPage()

	// Company header block
	pdf.SetFont("Helvetica", "B", 14)
	pdf.CellFormat(0, 7, tr(seller.Name), "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 8)
	pdf.CellFormat(0, 4, tr(seller.Address), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 4, tr(seller.Registration), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 4, tr(seller.Contact), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 4, tr(seller.Site), "", 1, "L", false, 0, "")
	pdf.Ln(4)

	// Invoice title and order meta
	pdf.SetFont("Helvetica", "B", 18)
	pdf.CellFormat(0, 10, "FACTURA", "", 1, "C", false, 0, "")
	pdf.Ln(2)
	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(0, 5, tr("Numar comanda: "+row["orderNumber"]), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 5, tr("ID comanda: "+row["id"]), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 5, tr("Data comanda: "+row["orderDate"]), "", 1, "L", false, 0, "")
	pdf.Ln(4)

	// Client block
	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(0, 6, tr("Date client"), "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(0, 5, tr("Nume: "+row["clientName"]), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 5, tr("Email: "+row["clientEmail"]), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 5, tr("Telefon: "+row["clientPhone"]), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 5, tr("Adresa: "+row["clientAddress"]), "", 1, "L", false, 0, "")
	pdf.Ln(4)

	writeItemsTable(pdf, tr, lines)
	pdf.Ln(6)

	// Order info and payment method
	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(0, 5, tr("Informatii comanda: "+row["info"]), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 5, tr("Metoda plata: "+row["paymentMethod"]), "", 1, "L", false, 0, "")
	pdf.Ln(4)

	// Legal footer
	pdf.SetFont("Helvetica", "", 8)
	pdf.MultiCell(0, 4, tr(seller.Legal), "", "L", false)
	pdf.Ln(2)
	pdf.SetFont("Helvetica", "B", 9)
	pdf.CellFormat(0, 4, tr("Date de contact operator:"), "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 8)
	pdf.CellFormat(0, 4, tr(seller.Name), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 4, tr(seller.Address), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 4, tr(seller.Contact), "", 1, "L", false, 0, "")
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(0, 5, tr("Multumim pentru comanda!"), "", 1, "C", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to render invoice pdf: %w", err)
	}
	return buf.Bytes(), nil
}

func writeItemsTable(pdf *gofpdf.Fpdf, tr func(string) string, lines []normalize.LineDisplay) {
	pdf.SetFont("Helvetica", "B", 10)
	pdf.SetFillColor(238, 238, 238)
	headers := [5]string{"#", "Produs", "Cant.", "Pret unitar", "Subtotal"}
	for i, h := range headers {
		align := "L"
		if i >= 2 {
			align = "R"
		}
		pdf.CellFormat(colWidths[i], 7, tr(h), "1", 0, align, true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Helvetica", "", 10)
	for i, line := range lines {
		price := line.Price
		if d, err := decimal.NewFromString(line.Price); err == nil {
			price = d.StringFixed(2)
		}
		amount := LineAmount(line)

		pdf.CellFormat(colWidths[0], 6, strconv.Itoa(i+1), "1", 0, "L", false, 0, "")
		pdf.CellFormat(colWidths[1], 6, tr(line.Title), "1", 0, "L", false, 0, "")
		pdf.CellFormat(colWidths[2], 6, tr(line.Quantity), "1", 0, "R", false, 0, "")
		pdf.CellFormat(colWidths[3], 6, tr(price), "1", 0, "R", false, 0, "")
		pdf.CellFormat(colWidths[4], 6, amount.StringFixed(2), "1", 1, "R", false, 0, "")
	}

	// Totals appended as extra rows of the same table
	subtotal, vat := Totals(lines)
	pdf.SetFillColor(250, 250, 250)
	totalRows := [3][2]string{
		{"Subtotal", subtotal.StringFixed(2)},
		{fmt.Sprintf("TVA %s%%", vatRate.Mul(decimal.NewFromInt(100)).String()), vat.StringFixed(2)},
		{"Total (cu TVA)", subtotal.StringFixed(2)},
	}
	for _, trow := range totalRows {
		pdf.CellFormat(colWidths[0]+colWidths[1]+colWidths[2], 6, "", "1", 0, "L", true, 0, "")
		pdf.CellFormat(colWidths[3], 6, tr(trow[0]), "1", 0, "R", true, 0, "")
		pdf.CellFormat(colWidths[4], 6, trow[1], "1", 1, "R", true, 0, "")
	}
}
