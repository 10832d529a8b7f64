package transfer

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/simaogato/kidbank-backend/internal/domain"
	"github.com/simaogato/kidbank-backend/internal/money"
	"github.com/simaogato/kidbank-backend/internal/usecase/allocator"
)

// SplitNotePrefix tags the note of every leg of a split deposit
const SplitNotePrefix = "Split"

// SplitRuleInput represents the raw input for one share of a split deposit
type SplitRuleInput struct {
	AccountID string
	Type      string // FIXED, PERCENT or REMAINDER
	Value     string // Dollars for FIXED, percent for PERCENT, ignored for REMAINDER
	Priority  int
}

// SplitDepositInput represents the raw input for a deposit shared across accounts
type SplitDepositInput struct {
	Amount     string
	OccurredAt string
	Note       string // Optional
	Rules      []SplitRuleInput
}

// SplitDeposit divides one deposit across several accounts of the same kid.
// Logic:
//  1. Parse the amount, date and rules
//  2. Allocate the amount across the rules
//  3. Fetch every account and require a single owning kid
//  4. Quote MARKET accounts concurrently; any failure fails the whole split
//  5. Save one DEPOSIT per non-empty share in one unit of work
//
// Returns the deposits in rule priority order.
func (s *TransferService) SplitDeposit(ctx context.Context, input SplitDepositInput) ([]*domain.Transaction, error) {
	// 1. Parse input
	amountCents, err := money.ParseAmount(input.Amount)
	if err != nil {
		return nil, err
	}
	occurredAt, err := domain.ParseDate(input.OccurredAt)
	if err != nil {
		return nil, err
	}
	rules, err := parseSplitRules(input.Rules)
	if err != nil {
		return nil, err
	}

	// 2. Allocate
	allocations, err := allocator.CalculateAllocation(amountCents, rules)
	if err != nil {
		return nil, err
	}

	// 3. Fetch accounts
	accounts := make([]*domain.Account, len(allocations))
	for i, a := range allocations {
		account, err := s.AccountRepo.GetByID(ctx, a.AccountID)
		if err != nil {
			return nil, err
		}
		if i > 0 && account.KidID != accounts[0].KidID {
			return nil, fmt.Errorf("all accounts must belong to one kid: %w", domain.ErrInvalidSplit)
		}
		accounts[i] = account
	}

	// 4. Quote market shares
	fills := make([]*domain.MarketFill, len(allocations))
	g, gctx := errgroup.WithContext(ctx)
	for i, a := range allocations {
		if a.AmountCents == 0 {
			continue
		}
		g.Go(func() error {
			fill, err := s.fillFor(gctx, accounts[i], a.AmountCents)
			fills[i] = fill
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	// 5. Build and save
	note := splitNote(input.Note)
	now := time.Now().UTC()
	deposits := make([]*domain.Transaction, 0, len(allocations))
	for i, a := range allocations {
		if a.AmountCents == 0 {
			continue
		}
		tx := &domain.Transaction{
			ID:          uuid.New(),
			AccountID:   a.AccountID,
			Direction:   domain.DirectionDeposit,
			AmountCents: a.AmountCents,
			OccurredAt:  occurredAt,
			Note:        note,
			Fill:        fills[i],
			CreatedAt:   now,
		}
		if err := tx.ValidateFor(accounts[i]); err != nil {
			return nil, err
		}
		deposits = append(deposits, tx)
	}

	err = s.UnitOfWork.Do(ctx, func(ctx context.Context) error {
		for _, tx := range deposits {
			if err := s.TransactionRepo.Create(ctx, tx); err != nil {
				return fmt.Errorf("failed to record split share: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return deposits, nil
}

func parseSplitRules(inputs []SplitRuleInput) ([]allocator.Rule, error) {
	rules := make([]allocator.Rule, 0, len(inputs))
	for i, in := range inputs {
		label := fmt.Sprintf("rule %d account", i+1)
		accountID, err := domain.ParseID(in.AccountID, label)
		if err != nil {
			return nil, err
		}
		ruleType, err := allocator.ParseRuleType(in.Type)
		if err != nil {
			return nil, err
		}

		rule := allocator.Rule{AccountID: accountID, Type: ruleType, Priority: in.Priority}
		switch ruleType {
		case allocator.RuleTypeFixed:
			rule.FixedCents, err = money.ParseAmount(in.Value)
			if err != nil {
				return nil, fmt.Errorf("rule %d: %w", i+1, err)
			}
		case allocator.RuleTypePercent:
			rule.Percent, err = money.ParseDecimal(strings.TrimSuffix(strings.TrimSpace(in.Value), "%"))
			if err != nil {
				return nil, fmt.Errorf("rule %d percent %q: %w", i+1, in.Value, domain.ErrInvalidSplit)
			}
		}
		rules = append(rules, rule)
	}
	return rules, nil
}

func splitNote(note string) string {
	note = strings.TrimSpace(note)
	if note == "" {
		return SplitNotePrefix
	}
	return SplitNotePrefix + ": " + note
}
