package main

import (
	"context"
	"flag"
	"fmt"
	"strings"

	"github.com/google/subcommands"

	"github.com/simaogato/kidbank-backend/internal/money"
	"github.com/simaogato/kidbank-backend/internal/usecase/transfer"
)

// ruleList collects repeated -rule flags in the order given
type ruleList []transfer.SplitRuleInput

func (l *ruleList) String() string {
	parts := make([]string, 0, len(*l))
	for _, r := range *l {
		part := r.AccountID + "=" + r.Type
		if r.Value != "" {
			part += ":" + r.Value
		}
		parts = append(parts, part)
	}
	return strings.Join(parts, ",")
}

// Set parses "<account id>=TYPE[:value]"
func (l *ruleList) Set(s string) error {
	accountID, rest, ok := strings.Cut(s, "=")
	if !ok || accountID == "" || rest == "" {
		return fmt.Errorf("rule %q must look like <account id>=FIXED:2, =PERCENT:50 or =REMAINDER", s)
	}
	ruleType, value, _ := strings.Cut(rest, ":")
	*l = append(*l, transfer.SplitRuleInput{
		AccountID: strings.TrimSpace(accountID),
		Type:      strings.ToUpper(strings.TrimSpace(ruleType)),
		Value:     strings.TrimSpace(value),
		Priority:  len(*l) + 1,
	})
	return nil
}

// splitCmd holds the flags for the 'split' subcommand.
type splitCmd struct {
	amount string
	date   string
	note   string
	rules  ruleList
}

func (*splitCmd) Name() string     { return "split" }
func (*splitCmd) Synopsis() string { return "share one deposit across a kid's accounts" }
func (*splitCmd) Usage() string {
	return `kidbankctl split -amount <dollars> -rule <account id>=TYPE[:value] ... [-date YYYY-MM-DD] [-note <text>]

  FIXED:<dollars> shares are taken first, then PERCENT:<n> of what is left,
  and the single REMAINDER rule receives the rest. Rules apply in the order given.
`
}

func (c *splitCmd) SetFlags(f *flag.FlagSet) {
	c.rules = nil
	f.StringVar(&c.amount, "amount", "", "Amount in dollars")
	f.StringVar(&c.date, "date", today(), "Date of the deposits")
	f.StringVar(&c.note, "note", "", "Optional note")
	f.Var(&c.rules, "rule", "Split rule, repeatable: <account id>=FIXED:<dollars>|PERCENT:<n>|REMAINDER")
}

func (c *splitCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return run(ctx, func(api kidBank) error {
		deposits, err := api.SplitDeposit(ctx, transfer.SplitDepositInput{
			Amount:     c.amount,
			OccurredAt: c.date,
			Note:       c.note,
			Rules:      c.rules,
		})
		if err != nil {
			return err
		}
		for _, tx := range deposits {
			fmt.Fprintf(stdout, "Deposited %s into %s\n", money.FormatAmount(tx.AmountCents), tx.AccountID)
		}
		return nil
	})
}
