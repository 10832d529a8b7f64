// Package report renders account views as markdown and PDF statements.
package report

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/simaogato/kidbank-backend/internal/domain"
	"github.com/simaogato/kidbank-backend/internal/money"
	"github.com/simaogato/kidbank-backend/internal/usecase/dashboard"
	"github.com/simaogato/kidbank-backend/internal/usecase/investment"
	"github.com/simaogato/kidbank-backend/internal/usecase/projection"
)

// AccountsMarkdown renders the account list grouped by kid.
func AccountsMarkdown(overviews []dashboard.KidOverview) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# Accounts\n\n")

	if len(overviews) == 0 {
		fmt.Fprintln(&b, "_No kids yet._")
		return b.String()
	}

	for _, overview := range overviews {
		fmt.Fprintf(&b, "## %s\n\n", escape(overview.Kid.Name))
		if len(overview.Accounts) == 0 {
			fmt.Fprintf(&b, "_No accounts yet._\n\n")
			continue
		}

		fmt.Fprintln(&b, "| Account | Type | Balance | Ticker | ID |")
		fmt.Fprintln(&b, "|:---|:---|---:|:---|:---|")
		for _, summary := range overview.Accounts {
			fmt.Fprintf(&b, "| %s | %s | %s | %s | `%s` |\n",
				escape(summary.Account.Name),
				summary.Account.Kind.Label(),
				money.FormatAmount(summary.BalanceCents),
				orDash(summary.Ticker),
				summary.Account.ID,
			)
		}
		fmt.Fprintf(&b, "\n**Total:** %s\n\n", money.FormatAmount(overview.TotalCents))
	}
	return b.String()
}

// AccountMarkdown renders one account with its market block, history and ticker log.
func AccountMarkdown(detail *dashboard.AccountDetail) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", escape(detail.Account.Name))
	fmt.Fprintf(&b, "- **Kid:** %s\n", escape(detail.Kid.Name))
	fmt.Fprintf(&b, "- **Type:** %s\n", detail.Account.Kind.Label())
	fmt.Fprintf(&b, "- **Cash balance:** %s\n\n", money.FormatAmount(detail.BalanceCents))

	if detail.Market != nil {
		writeMarket(&b, detail.Market)
	}

	fmt.Fprintf(&b, "## Transactions\n\n")
	if len(detail.Transactions) == 0 {
		fmt.Fprintf(&b, "_No transactions yet._\n\n")
	} else {
		market := detail.Account.Kind.IsMarket()
		if market {
			fmt.Fprintln(&b, "| Date | Type | Amount | Shares | Price | Note |")
			fmt.Fprintln(&b, "|:---|:---|---:|---:|---:|:---|")
		} else {
			fmt.Fprintln(&b, "| Date | Type | Amount | Note |")
			fmt.Fprintln(&b, "|:---|:---|---:|:---|")
		}
		for _, tx := range detail.Transactions {
			date := domain.FormatDate(tx.OccurredAt)
			amount := money.FormatAmount(tx.SignedAmount())
			if market {
				shares, price := "-", "-"
				if tx.Fill != nil {
					shares = formatShares(tx.Fill.Shares)
					price = formatPrice(tx.Fill.Price)
				}
				fmt.Fprintf(&b, "| %s | %s | %s | %s | %s | %s |\n",
					date, tx.Direction.Label(), amount, shares, price, escape(tx.Note))
			} else {
				fmt.Fprintf(&b, "| %s | %s | %s | %s |\n",
					date, tx.Direction.Label(), amount, escape(tx.Note))
			}
		}
		fmt.Fprintln(&b)
	}

	if len(detail.TickerHistory) > 0 {
		fmt.Fprintf(&b, "## Ticker history\n\n")
		fmt.Fprintln(&b, "| Effective | Ticker |")
		fmt.Fprintln(&b, "|:---|:---|")
		for _, event := range detail.TickerHistory {
			fmt.Fprintf(&b, "| %s | %s |\n", domain.FormatDate(event.EffectiveDate), event.Ticker)
		}
		fmt.Fprintln(&b)
	}

	return b.String()
}

func writeMarket(b *strings.Builder, summary *investment.MarketSummary) {
	fmt.Fprintf(b, "## Market\n\n")
	fmt.Fprintf(b, "- **Ticker:** %s\n", orDash(summary.Ticker))
	fmt.Fprintf(b, "- **Shares:** %s\n", formatShares(summary.Position.TotalShares))
	fmt.Fprintf(b, "- **Cost basis:** %s\n", money.FormatAmount(summary.Position.CostBasisCents))

	switch {
	case summary.Valuation != nil:
		v := summary.Valuation
		fmt.Fprintf(b, "- **Price:** %s\n", formatPrice(v.Price))
		fmt.Fprintf(b, "- **Market value:** %s\n", money.FormatAmount(v.MarketValueCents))
		fmt.Fprintf(b, "- **Gain/Loss:** %s (%s%%)\n", money.FormatAmount(v.GainLossCents), v.GainLossPercent.StringFixed(2))
	case summary.PriceError != nil:
		fmt.Fprintf(b, "- **Price:** unavailable (%s)\n", escape(summary.PriceError.Error()))
	case summary.Ticker == "":
		fmt.Fprintf(b, "- **Price:** set a ticker to see the market value\n")
	}
	fmt.Fprintln(b)
}

// ProjectionMarkdown renders a growth projection.
func ProjectionMarkdown(input projection.Input, p *projection.Projection) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# Growth projection\n\n")
	fmt.Fprintf(&b, "Depositing **$%s** every week for **%d years** (%d weeks) at **%s%%** a year.\n\n",
		strings.TrimSpace(input.WeeklyDeposit), p.Years, p.Weeks, strings.TrimSpace(input.AnnualReturnPercent))
	fmt.Fprintln(&b, "| Deposited | Growth | Final balance |")
	fmt.Fprintln(&b, "|---:|---:|---:|")
	fmt.Fprintf(&b, "| %s | %s | %s |\n",
		money.FormatAmount(p.DepositedCents),
		money.FormatAmount(p.GrowthCents),
		money.FormatAmount(p.FinalCents),
	)
	return b.String()
}

func formatShares(d decimal.Decimal) string {
	return d.Round(6).String()
}

func formatPrice(d decimal.Decimal) string {
	return "$" + d.StringFixed(2)
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

// escape keeps user text from breaking table cells
func escape(s string) string {
	s = strings.ReplaceAll(s, "\n", " ")
	return strings.ReplaceAll(s, "|", `\|`)
}
