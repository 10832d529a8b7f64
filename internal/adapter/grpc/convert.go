package grpc

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	kidbankv1 "github.com/simaogato/kidbank-backend/internal/adapter/grpc/kidbank/v1"
	"github.com/simaogato/kidbank-backend/internal/domain"
	"github.com/simaogato/kidbank-backend/internal/usecase/dashboard"
	"github.com/simaogato/kidbank-backend/internal/usecase/investment"
	"github.com/simaogato/kidbank-backend/internal/usecase/ledger"
)

func domainKidToProto(kid *domain.Kid) *kidbankv1.Kid {
	if kid == nil {
		return nil
	}
	return &kidbankv1.Kid{
		Id:        kid.ID.String(),
		Name:      kid.Name,
		CreatedAt: kid.CreatedAt.UTC().Format(time.RFC3339Nano),
	}
}

func domainAccountToProto(account *domain.Account) *kidbankv1.Account {
	if account == nil {
		return nil
	}
	return &kidbankv1.Account{
		Id:        account.ID.String(),
		KidId:     account.KidID.String(),
		Name:      account.Name,
		Type:      string(account.Kind),
		CreatedAt: account.CreatedAt.UTC().Format(time.RFC3339Nano),
	}
}

func domainTransactionToProto(tx *domain.Transaction) *kidbankv1.Transaction {
	if tx == nil {
		return nil
	}
	protoTx := &kidbankv1.Transaction{
		Id:          tx.ID.String(),
		AccountId:   tx.AccountID.String(),
		Type:        string(tx.Direction),
		AmountCents: tx.AmountCents,
		OccurredAt:  domain.FormatDate(tx.OccurredAt),
		Note:        tx.Note,
		CreatedAt:   tx.CreatedAt.UTC().Format(time.RFC3339Nano),
	}

	// Market fields only exist on MARKET postings
	if tx.Fill != nil {
		protoTx.Shares = tx.Fill.Shares.String()
		protoTx.Price = tx.Fill.Price.String()
		protoTx.Ticker = tx.Fill.Ticker
	}
	if tx.TransferID != nil {
		protoTx.TransferId = tx.TransferID.String()
	}

	return protoTx
}

func domainTickerEventToProto(event *domain.TickerEvent) *kidbankv1.TickerEvent {
	if event == nil {
		return nil
	}
	return &kidbankv1.TickerEvent{
		Id:            event.ID.String(),
		AccountId:     event.AccountID.String(),
		Ticker:        event.Ticker,
		EffectiveDate: domain.FormatDate(event.EffectiveDate),
		CreatedAt:     event.CreatedAt.UTC().Format(time.RFC3339Nano),
	}
}

func kidOverviewToProto(overview dashboard.KidOverview) *kidbankv1.KidOverview {
	protoOverview := &kidbankv1.KidOverview{
		Kid:        domainKidToProto(overview.Kid),
		Accounts:   make([]*kidbankv1.AccountSummary, 0, len(overview.Accounts)),
		TotalCents: overview.TotalCents,
	}
	for _, summary := range overview.Accounts {
		protoOverview.Accounts = append(protoOverview.Accounts, &kidbankv1.AccountSummary{
			Account:      domainAccountToProto(summary.Account),
			BalanceCents: summary.BalanceCents,
			Ticker:       summary.Ticker,
		})
	}
	return protoOverview
}

func marketSummaryToProto(summary *investment.MarketSummary) *kidbankv1.MarketSummary {
	if summary == nil {
		return nil
	}
	protoSummary := &kidbankv1.MarketSummary{
		Ticker:         summary.Ticker,
		TotalShares:    summary.Position.TotalShares.String(),
		CostBasisCents: summary.Position.CostBasisCents,
	}
	if summary.Valuation != nil {
		protoSummary.Price = summary.Valuation.Price.String()
		protoSummary.MarketValueCents = summary.Valuation.MarketValueCents
		protoSummary.GainLossCents = summary.Valuation.GainLossCents
		protoSummary.GainLossPercent = summary.Valuation.GainLossPercent.StringFixed(2)
	}
	if summary.PriceError != nil {
		protoSummary.PriceError = summary.PriceError.Error()
	}
	return protoSummary
}

func accountDetailToProto(detail *dashboard.AccountDetail) *kidbankv1.GetAccountResponse {
	resp := &kidbankv1.GetAccountResponse{
		Account:      domainAccountToProto(detail.Account),
		Kid:          domainKidToProto(detail.Kid),
		BalanceCents: detail.BalanceCents,
		Transactions: make([]*kidbankv1.Transaction, 0, len(detail.Transactions)),
		Market:       marketSummaryToProto(detail.Market),
	}
	for _, tx := range detail.Transactions {
		resp.Transactions = append(resp.Transactions, domainTransactionToProto(tx))
	}
	for _, event := range detail.TickerHistory {
		resp.TickerHistory = append(resp.TickerHistory, domainTickerEventToProto(event))
	}
	return resp
}

// The decoders below turn wire messages back into the use-case views so
// clients can share the server's renderers.

func protoKidToDomain(kid *kidbankv1.Kid) (*domain.Kid, error) {
	if kid == nil {
		return nil, nil
	}
	id, err := uuid.Parse(kid.Id)
	if err != nil {
		return nil, fmt.Errorf("invalid kid id: %w", err)
	}
	createdAt, err := parseTimestamp(kid.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &domain.Kid{ID: id, Name: kid.Name, CreatedAt: createdAt}, nil
}

func protoAccountToDomain(account *kidbankv1.Account) (*domain.Account, error) {
	if account == nil {
		return nil, nil
	}
	id, err := uuid.Parse(account.Id)
	if err != nil {
		return nil, fmt.Errorf("invalid account id: %w", err)
	}
	kidID, err := uuid.Parse(account.KidId)
	if err != nil {
		return nil, fmt.Errorf("invalid kid id: %w", err)
	}
	createdAt, err := parseTimestamp(account.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &domain.Account{
		ID:        id,
		KidID:     kidID,
		Name:      account.Name,
		Kind:      domain.AccountKind(account.Type),
		CreatedAt: createdAt,
	}, nil
}

func protoTransactionToDomain(tx *kidbankv1.Transaction) (*domain.Transaction, error) {
	if tx == nil {
		return nil, nil
	}
	id, err := uuid.Parse(tx.Id)
	if err != nil {
		return nil, fmt.Errorf("invalid transaction id: %w", err)
	}
	accountID, err := uuid.Parse(tx.AccountId)
	if err != nil {
		return nil, fmt.Errorf("invalid account id: %w", err)
	}
	occurredAt, err := domain.ParseDate(tx.OccurredAt)
	if err != nil {
		return nil, err
	}
	createdAt, err := parseTimestamp(tx.CreatedAt)
	if err != nil {
		return nil, err
	}

	domainTx := &domain.Transaction{
		ID:          id,
		AccountID:   accountID,
		Direction:   domain.Direction(tx.Type),
		AmountCents: tx.AmountCents,
		OccurredAt:  occurredAt,
		Note:        tx.Note,
		CreatedAt:   createdAt,
	}

	if tx.Shares != "" {
		shares, err := decimal.NewFromString(tx.Shares)
		if err != nil {
			return nil, fmt.Errorf("invalid shares: %w", err)
		}
		price, err := decimal.NewFromString(tx.Price)
		if err != nil {
			return nil, fmt.Errorf("invalid price: %w", err)
		}
		domainTx.Fill = &domain.MarketFill{Shares: shares, Price: price, Ticker: tx.Ticker}
	}
	if tx.TransferId != "" {
		transferID, err := uuid.Parse(tx.TransferId)
		if err != nil {
			return nil, fmt.Errorf("invalid transfer id: %w", err)
		}
		domainTx.TransferID = &transferID
	}

	return domainTx, nil
}

func protoTickerEventToDomain(event *kidbankv1.TickerEvent) (*domain.TickerEvent, error) {
	id, err := uuid.Parse(event.Id)
	if err != nil {
		return nil, fmt.Errorf("invalid ticker event id: %w", err)
	}
	accountID, err := uuid.Parse(event.AccountId)
	if err != nil {
		return nil, fmt.Errorf("invalid account id: %w", err)
	}
	effective, err := domain.ParseDate(event.EffectiveDate)
	if err != nil {
		return nil, err
	}
	createdAt, err := parseTimestamp(event.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &domain.TickerEvent{
		ID:            id,
		AccountID:     accountID,
		Ticker:        event.Ticker,
		EffectiveDate: effective,
		CreatedAt:     createdAt,
	}, nil
}

func protoKidOverviewToDashboard(overview *kidbankv1.KidOverview) (dashboard.KidOverview, error) {
	kid, err := protoKidToDomain(overview.Kid)
	if err != nil {
		return dashboard.KidOverview{}, err
	}
	result := dashboard.KidOverview{Kid: kid, TotalCents: overview.TotalCents}
	for _, summary := range overview.Accounts {
		account, err := protoAccountToDomain(summary.Account)
		if err != nil {
			return dashboard.KidOverview{}, err
		}
		result.Accounts = append(result.Accounts, dashboard.AccountSummary{
			Account:      account,
			BalanceCents: summary.BalanceCents,
			Ticker:       summary.Ticker,
		})
	}
	return result, nil
}

func protoMarketSummaryToDomain(summary *kidbankv1.MarketSummary) (*investment.MarketSummary, error) {
	if summary == nil {
		return nil, nil
	}
	shares, err := decimal.NewFromString(summary.TotalShares)
	if err != nil {
		return nil, fmt.Errorf("invalid total shares: %w", err)
	}
	result := &investment.MarketSummary{
		Ticker: summary.Ticker,
		Position: ledger.Position{
			TotalShares:    shares,
			CostBasisCents: summary.CostBasisCents,
		},
	}
	if summary.Price != "" {
		price, err := decimal.NewFromString(summary.Price)
		if err != nil {
			return nil, fmt.Errorf("invalid price: %w", err)
		}
		percent, err := decimal.NewFromString(summary.GainLossPercent)
		if err != nil {
			return nil, fmt.Errorf("invalid gain/loss percent: %w", err)
		}
		result.Valuation = &ledger.Valuation{
			Price:            price,
			MarketValueCents: summary.MarketValueCents,
			GainLossCents:    summary.GainLossCents,
			GainLossPercent:  percent,
		}
	}
	if summary.PriceError != "" {
		result.PriceError = fmt.Errorf("%s: %w", summary.PriceError, domain.ErrPriceUnavailable)
	}
	return result, nil
}

func protoAccountDetailToDashboard(resp *kidbankv1.GetAccountResponse) (*dashboard.AccountDetail, error) {
	account, err := protoAccountToDomain(resp.Account)
	if err != nil {
		return nil, err
	}
	kid, err := protoKidToDomain(resp.Kid)
	if err != nil {
		return nil, err
	}
	market, err := protoMarketSummaryToDomain(resp.Market)
	if err != nil {
		return nil, err
	}

	detail := &dashboard.AccountDetail{
		Account:      account,
		Kid:          kid,
		BalanceCents: resp.BalanceCents,
		Transactions: make([]*domain.Transaction, 0, len(resp.Transactions)),
		Market:       market,
	}
	for _, protoTx := range resp.Transactions {
		tx, err := protoTransactionToDomain(protoTx)
		if err != nil {
			return nil, err
		}
		detail.Transactions = append(detail.Transactions, tx)
	}
	for _, protoEvent := range resp.TickerHistory {
		event, err := protoTickerEventToDomain(protoEvent)
		if err != nil {
			return nil, err
		}
		detail.TickerHistory = append(detail.TickerHistory, event)
	}
	return detail, nil
}

func parseTimestamp(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid timestamp %q: %w", s, err)
	}
	return t, nil
}
