package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/google/subcommands"
	"google.golang.org/grpc/status"

	"github.com/simaogato/kidbank-backend/internal/domain"
	"github.com/simaogato/kidbank-backend/internal/money"
	"github.com/simaogato/kidbank-backend/internal/report"
	"github.com/simaogato/kidbank-backend/internal/usecase/projection"
	"github.com/simaogato/kidbank-backend/internal/usecase/transfer"
)

var (
	stdout io.Writer = os.Stdout
	stderr io.Writer = os.Stderr
)

func today() string {
	return domain.FormatDate(time.Now())
}

// run dials the server, calls fn and reports its error
func run(ctx context.Context, fn func(api kidBank) error) subcommands.ExitStatus {
	api, err := dial()
	if err != nil {
		fmt.Fprintf(stderr, "Error connecting: %v\n", err)
		return subcommands.ExitFailure
	}
	defer api.Close()

	if err := fn(api); err != nil {
		fmt.Fprintf(stderr, "Error: %s\n", status.Convert(err).Message())
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}

// addKidCmd holds the flags for the 'add-kid' subcommand.
type addKidCmd struct {
	name string
}

func (*addKidCmd) Name() string     { return "add-kid" }
func (*addKidCmd) Synopsis() string { return "create a kid" }
func (*addKidCmd) Usage() string {
	return `kidbankctl add-kid -name <name>
`
}

func (c *addKidCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.name, "name", "", "Name of the kid")
}

func (c *addKidCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return run(ctx, func(api kidBank) error {
		kid, err := api.CreateKid(ctx, c.name)
		if err != nil {
			return err
		}
		fmt.Fprintf(stdout, "Created kid %s (%s)\n", kid.Name, kid.ID)
		return nil
	})
}

// addAccountCmd holds the flags for the 'add-account' subcommand.
type addAccountCmd struct {
	kid         string
	name        string
	accountType string
}

func (*addAccountCmd) Name() string     { return "add-account" }
func (*addAccountCmd) Synopsis() string { return "open a checking, savings or market account for a kid" }
func (*addAccountCmd) Usage() string {
	return `kidbankctl add-account -kid <kid id> -name <name> -type CHECKING|SAVINGS|MARKET
`
}

func (c *addAccountCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.kid, "kid", "", "ID of the kid owning the account")
	f.StringVar(&c.name, "name", "", "Name of the account")
	f.StringVar(&c.accountType, "type", "", "Account type: CHECKING, SAVINGS or MARKET")
}

func (c *addAccountCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return run(ctx, func(api kidBank) error {
		account, err := api.CreateAccount(ctx, c.kid, c.name, strings.ToUpper(strings.TrimSpace(c.accountType)))
		if err != nil {
			return err
		}
		fmt.Fprintf(stdout, "Created %s account %s (%s)\n", account.Kind.Label(), account.Name, account.ID)
		return nil
	})
}

// postCmd holds the flags for the 'deposit' and 'withdraw' subcommands.
type postCmd struct {
	direction domain.Direction
	account   string
	amount    string
	date      string
	note      string
}

func (c *postCmd) Name() string {
	if c.direction == domain.DirectionWithdrawal {
		return "withdraw"
	}
	return "deposit"
}

func (c *postCmd) Synopsis() string {
	if c.direction == domain.DirectionWithdrawal {
		return "take cash out of an account"
	}
	return "put cash into an account"
}

func (c *postCmd) Usage() string {
	return fmt.Sprintf(`kidbankctl %s -account <account id> -amount <dollars> [-date YYYY-MM-DD] [-note <text>]

  Market accounts buy or sell shares of their current ticker at the live price.
`, c.Name())
}

func (c *postCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.account, "account", "", "ID of the account")
	f.StringVar(&c.amount, "amount", "", "Amount in dollars, e.g. 12.50")
	f.StringVar(&c.date, "date", today(), "Date of the transaction")
	f.StringVar(&c.note, "note", "", "Optional note")
}

func (c *postCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return run(ctx, func(api kidBank) error {
		tx, err := api.AddTransaction(ctx, transfer.AddTransactionInput{
			AccountID:  c.account,
			Type:       string(c.direction),
			Amount:     c.amount,
			OccurredAt: c.date,
			Note:       c.note,
		})
		if err != nil {
			return err
		}
		fmt.Fprintf(stdout, "Recorded %s of %s on %s", strings.ToLower(tx.Direction.Label()), money.FormatAmount(tx.AmountCents), domain.FormatDate(tx.OccurredAt))
		if tx.Fill != nil {
			fmt.Fprintf(stdout, " (%s shares of %s at $%s)", tx.Fill.Shares.Round(6), tx.Fill.Ticker, tx.Fill.Price.StringFixed(2))
		}
		fmt.Fprintln(stdout)
		return nil
	})
}

// transferCmd holds the flags for the 'transfer' subcommand.
type transferCmd struct {
	from   string
	to     string
	amount string
	date   string
	note   string
}

func (*transferCmd) Name() string     { return "transfer" }
func (*transferCmd) Synopsis() string { return "move cash between two accounts" }
func (*transferCmd) Usage() string {
	return `kidbankctl transfer -from <account id> -to <account id> -amount <dollars> [-date YYYY-MM-DD] [-note <text>]

  Both legs are recorded together or not at all.
`
}

func (c *transferCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.from, "from", "", "ID of the source account")
	f.StringVar(&c.to, "to", "", "ID of the destination account")
	f.StringVar(&c.amount, "amount", "", "Amount in dollars")
	f.StringVar(&c.date, "date", today(), "Date of the transfer")
	f.StringVar(&c.note, "note", "", "Optional note")
}

func (c *transferCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return run(ctx, func(api kidBank) error {
		result, err := api.TransferFunds(ctx, transfer.TransferInput{
			FromAccountID: c.from,
			ToAccountID:   c.to,
			Amount:        c.amount,
			OccurredAt:    c.date,
			Note:          c.note,
		})
		if err != nil {
			return err
		}
		fmt.Fprintf(stdout, "Transferred %s (transfer %s)\n", money.FormatAmount(result.Withdrawal.AmountCents), result.TransferID)
		return nil
	})
}

// setTickerCmd holds the flags for the 'set-ticker' subcommand.
type setTickerCmd struct {
	account string
	ticker  string
	date    string
}

func (*setTickerCmd) Name() string     { return "set-ticker" }
func (*setTickerCmd) Synopsis() string { return "change the ticker a market account invests in" }
func (*setTickerCmd) Usage() string {
	return `kidbankctl set-ticker -account <account id> -ticker <symbol> [-date YYYY-MM-DD]
`
}

func (c *setTickerCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.account, "account", "", "ID of the market account")
	f.StringVar(&c.ticker, "ticker", "", "Ticker symbol, e.g. VOO")
	f.StringVar(&c.date, "date", today(), "Effective date")
}

func (c *setTickerCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return run(ctx, func(api kidBank) error {
		event, err := api.SetMarketTicker(ctx, c.account, c.ticker, c.date)
		if err != nil {
			return err
		}
		fmt.Fprintf(stdout, "Ticker set to %s from %s\n", event.Ticker, domain.FormatDate(event.EffectiveDate))
		return nil
	})
}

// accountsCmd holds the flags for the 'accounts' subcommand.
type accountsCmd struct{}

func (*accountsCmd) Name() string     { return "accounts" }
func (*accountsCmd) Synopsis() string { return "list every kid with account balances" }
func (*accountsCmd) Usage() string {
	return `kidbankctl accounts
`
}

func (*accountsCmd) SetFlags(*flag.FlagSet) {}

func (*accountsCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return run(ctx, func(api kidBank) error {
		overviews, err := api.ListAccounts(ctx)
		if err != nil {
			return err
		}
		printMarkdown(report.AccountsMarkdown(overviews))
		return nil
	})
}

// accountCmd holds the flags for the 'account' subcommand.
type accountCmd struct {
	id string
}

func (*accountCmd) Name() string     { return "account" }
func (*accountCmd) Synopsis() string { return "show one account with its history and market value" }
func (*accountCmd) Usage() string {
	return `kidbankctl account -id <account id>
`
}

func (c *accountCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.id, "id", "", "ID of the account")
}

func (c *accountCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	id := c.id
	if id == "" && f.NArg() == 1 {
		id = f.Arg(0)
	}
	return run(ctx, func(api kidBank) error {
		detail, err := api.GetAccountDetail(ctx, id)
		if err != nil {
			return err
		}
		printMarkdown(report.AccountMarkdown(detail))
		return nil
	})
}

// projectCmd holds the flags for the 'project' subcommand.
type projectCmd struct {
	deposit string
	rate    string
	years   string
}

func (*projectCmd) Name() string     { return "project" }
func (*projectCmd) Synopsis() string { return "project the growth of a weekly deposit" }
func (*projectCmd) Usage() string {
	return `kidbankctl project -deposit <dollars per week> -rate <annual %> -years <n>
`
}

func (c *projectCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.deposit, "deposit", "", "Weekly deposit in dollars")
	f.StringVar(&c.rate, "rate", "7", "Annual return in percent")
	f.StringVar(&c.years, "years", "10", "Number of years")
}

func (c *projectCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	input := projection.Input{WeeklyDeposit: c.deposit, AnnualReturnPercent: c.rate, Years: c.years}
	return run(ctx, func(api kidBank) error {
		result, err := api.ProjectGrowth(ctx, input)
		if err != nil {
			return err
		}
		printMarkdown(report.ProjectionMarkdown(input, result))
		return nil
	})
}
