package report

import (
	"fmt"
	"io"
	"time"

	"github.com/phpdave11/gofpdf"

	"github.com/simaogato/kidbank-backend/internal/domain"
	"github.com/simaogato/kidbank-backend/internal/money"
	"github.com/simaogato/kidbank-backend/internal/usecase/dashboard"
)

// maxStatementRows caps the transaction table of a statement
const maxStatementRows = 500

// WriteStatementPDF writes an A4 account statement to w.
// Rows follow the display order of detail.Transactions.
func WriteStatementPDF(w io.Writer, detail *dashboard.AccountDetail, generatedAt time.Time) error {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetCreationDate(generatedAt)
	pdf.SetMargins(14, 14, 14)
	pdf.SetTitle(detail.Account.Name+" statement", true)
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.AddPage()

	// Title
	pdf.SetTextColor(20, 20, 20)
	pdf.SetFont("Helvetica", "B", 18)
	pdf.Cell(0, 10, tr(detail.Account.Name+" statement"))
	pdf.Ln(9)

	pdf.SetFont("Helvetica", "", 10)
	pdf.SetTextColor(80, 80, 80)
	pdf.Cell(0, 6, tr("Kid: "+detail.Kid.Name+"    Type: "+detail.Account.Kind.Label()))
	pdf.Ln(5)
	pdf.Cell(0, 6, "Account: "+detail.Account.ID.String())
	pdf.Ln(10)

	// Summary boxes
	pdf.SetDrawColor(200, 200, 200)
	pdf.SetFillColor(248, 248, 248)
	pdf.SetTextColor(20, 20, 20)

	labels := []string{"Cash balance"}
	values := []string{money.FormatAmount(detail.BalanceCents)}
	if m := detail.Market; m != nil {
		labels = append(labels, "Shares", "Cost basis")
		values = append(values, formatShares(m.Position.TotalShares), money.FormatAmount(m.Position.CostBasisCents))
		if m.Valuation != nil {
			labels = append(labels, "Market value")
			values = append(values, money.FormatAmount(m.Valuation.MarketValueCents))
		}
	}
	boxW := 182 / float64(len(labels))
	pdf.SetFont("Helvetica", "B", 10)
	for i, label := range labels {
		pdf.CellFormat(boxW, 9, label, "1", lineBreak(i, len(labels)), "C", true, 0, "")
	}
	pdf.SetFont("Helvetica", "", 10)
	for i, value := range values {
		pdf.CellFormat(boxW, 9, value, "1", lineBreak(i, len(values)), "C", false, 0, "")
	}
	pdf.Ln(4)

	if m := detail.Market; m != nil && m.Ticker != "" {
		pdf.SetFont("Helvetica", "", 9)
		pdf.SetTextColor(80, 80, 80)
		line := "Ticker: " + m.Ticker
		switch {
		case m.Valuation != nil:
			line += fmt.Sprintf("    Price: %s    Gain/Loss: %s (%s%%)",
				formatPrice(m.Valuation.Price),
				money.FormatAmount(m.Valuation.GainLossCents),
				m.Valuation.GainLossPercent.StringFixed(2))
		case m.PriceError != nil:
			line += "    Price unavailable"
		}
		pdf.Cell(0, 6, line)
		pdf.Ln(8)
	}

	// Transactions
	market := detail.Account.Kind.IsMarket()
	headers := []string{"DATE", "TYPE", "AMOUNT", "NOTE"}
	widths := []float64{26, 28, 32, 96}
	aligns := []string{"C", "C", "R", "L"}
	if market {
		headers = []string{"DATE", "TYPE", "AMOUNT", "SHARES", "PRICE", "NOTE"}
		widths = []float64{24, 24, 30, 28, 24, 52}
		aligns = []string{"C", "C", "R", "R", "R", "L"}
	}

	writeHeader := func() {
		pdf.SetFont("Helvetica", "B", 9)
		pdf.SetFillColor(245, 245, 245)
		pdf.SetTextColor(20, 20, 20)
		for i, h := range headers {
			pdf.CellFormat(widths[i], 8, h, "1", lineBreak(i, len(headers)), "C", true, 0, "")
		}
		pdf.SetFont("Helvetica", "", 9)
		pdf.SetTextColor(30, 30, 30)
	}
	writeHeader()

	if len(detail.Transactions) == 0 {
		pdf.SetFont("Helvetica", "I", 9)
		pdf.CellFormat(0, 8, "No transactions", "1", 1, "C", false, 0, "")
	}

	for i, tx := range detail.Transactions {
		if i >= maxStatementRows {
			pdf.SetFont("Helvetica", "I", 9)
			pdf.CellFormat(0, 8, fmt.Sprintf("%d older transactions not shown", len(detail.Transactions)-maxStatementRows), "1", 1, "C", false, 0, "")
			break
		}
		if pdf.GetY() > 270 {
			pdf.AddPage()
			writeHeader()
		}

		cells := []string{
			domain.FormatDate(tx.OccurredAt),
			tx.Direction.Label(),
			money.FormatAmount(tx.SignedAmount()),
		}
		if market {
			shares, price := "-", "-"
			if tx.Fill != nil {
				shares = formatShares(tx.Fill.Shares)
				price = formatPrice(tx.Fill.Price)
			}
			cells = append(cells, shares, price)
		}
		cells = append(cells, tr(trimTo(tx.Note, noteWidth(market))))

		for j, cell := range cells {
			pdf.CellFormat(widths[j], 7, cell, "1", lineBreak(j, len(cells)), aligns[j], false, 0, "")
		}
	}

	pdf.SetY(-18)
	pdf.SetFont("Helvetica", "", 8)
	pdf.SetTextColor(120, 120, 120)
	pdf.CellFormat(0, 10, "Generated "+generatedAt.UTC().Format(time.RFC3339), "", 0, "C", false, 0, "")

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("failed to render statement: %w", err)
	}
	return nil
}

// lineBreak moves to the next line after the last cell of a row
func lineBreak(i, n int) int {
	if i == n-1 {
		return 1
	}
	return 0
}

func noteWidth(market bool) int {
	if market {
		return 28
	}
	return 55
}

func trimTo(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max-3]) + "..."
}
