package grpc

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"

	kidbankv1 "github.com/simaogato/kidbank-backend/internal/adapter/grpc/kidbank/v1"
	"github.com/simaogato/kidbank-backend/internal/domain"
	"github.com/simaogato/kidbank-backend/internal/usecase/dashboard"
	"github.com/simaogato/kidbank-backend/internal/usecase/projection"
	"github.com/simaogato/kidbank-backend/internal/usecase/transfer"
)

// Client calls a remote KidBankService and decodes responses into the
// same views the services return in-process
type Client struct {
	conn *grpc.ClientConn
	api  kidbankv1.KidBankServiceClient
}

// Dial connects to addr and sends token with every call
func Dial(addr, token string, opts ...grpc.DialOption) (*Client, error) {
	opts = append([]grpc.DialOption{
		grpc.WithTransportCredentials(insecure.NewCredentials()),
		grpc.WithUnaryInterceptor(TokenInterceptor(token)),
	}, opts...)

	conn, err := grpc.NewClient(addr, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to %s: %w", addr, err)
	}
	return &Client{conn: conn, api: kidbankv1.NewKidBankServiceClient(conn)}, nil
}

// Close closes the underlying connection
func (c *Client) Close() error {
	return c.conn.Close()
}

// CreateKid creates a kid
func (c *Client) CreateKid(ctx context.Context, name string) (*domain.Kid, error) {
	resp, err := c.api.CreateKid(ctx, &kidbankv1.CreateKidRequest{Name: name})
	if err != nil {
		return nil, err
	}
	return protoKidToDomain(resp)
}

// CreateAccount opens an account for a kid
func (c *Client) CreateAccount(ctx context.Context, kidID, name, accountType string) (*domain.Account, error) {
	resp, err := c.api.CreateAccount(ctx, &kidbankv1.CreateAccountRequest{KidId: kidID, Name: name, Type: accountType})
	if err != nil {
		return nil, err
	}
	return protoAccountToDomain(resp)
}

// AddTransaction records a deposit or withdrawal
func (c *Client) AddTransaction(ctx context.Context, input transfer.AddTransactionInput) (*domain.Transaction, error) {
	resp, err := c.api.AddTransaction(ctx, &kidbankv1.AddTransactionRequest{
		AccountId:  input.AccountID,
		Type:       input.Type,
		Amount:     input.Amount,
		OccurredAt: input.OccurredAt,
		Note:       input.Note,
	})
	if err != nil {
		return nil, err
	}
	return protoTransactionToDomain(resp)
}

// TransferFunds moves cash between two accounts
func (c *Client) TransferFunds(ctx context.Context, input transfer.TransferInput) (*transfer.Result, error) {
	resp, err := c.api.TransferFunds(ctx, &kidbankv1.TransferFundsRequest{
		FromAccountId: input.FromAccountID,
		ToAccountId:   input.ToAccountID,
		Amount:        input.Amount,
		OccurredAt:    input.OccurredAt,
		Note:          input.Note,
	})
	if err != nil {
		return nil, err
	}

	transferID, err := uuid.Parse(resp.TransferId)
	if err != nil {
		return nil, fmt.Errorf("invalid transfer id: %w", err)
	}
	withdrawal, err := protoTransactionToDomain(resp.Withdrawal)
	if err != nil {
		return nil, err
	}
	deposit, err := protoTransactionToDomain(resp.Deposit)
	if err != nil {
		return nil, err
	}
	return &transfer.Result{TransferID: transferID, Withdrawal: withdrawal, Deposit: deposit}, nil
}

// SplitDeposit divides one deposit across several accounts of a kid
func (c *Client) SplitDeposit(ctx context.Context, input transfer.SplitDepositInput) ([]*domain.Transaction, error) {
	req := &kidbankv1.SplitDepositRequest{
		Amount:     input.Amount,
		OccurredAt: input.OccurredAt,
		Note:       input.Note,
		Rules:      make([]*kidbankv1.SplitRule, 0, len(input.Rules)),
	}
	for _, r := range input.Rules {
		req.Rules = append(req.Rules, &kidbankv1.SplitRule{
			AccountId: r.AccountID,
			Type:      r.Type,
			Value:     r.Value,
			Priority:  int32(r.Priority),
		})
	}

	resp, err := c.api.SplitDeposit(ctx, req)
	if err != nil {
		return nil, err
	}

	deposits := make([]*domain.Transaction, 0, len(resp.Deposits))
	for _, d := range resp.Deposits {
		tx, err := protoTransactionToDomain(d)
		if err != nil {
			return nil, err
		}
		deposits = append(deposits, tx)
	}
	return deposits, nil
}

// SetMarketTicker changes the instrument of a MARKET account
func (c *Client) SetMarketTicker(ctx context.Context, accountID, ticker, effectiveDate string) (*domain.TickerEvent, error) {
	resp, err := c.api.SetMarketTicker(ctx, &kidbankv1.SetMarketTickerRequest{
		AccountId:     accountID,
		Ticker:        ticker,
		EffectiveDate: effectiveDate,
	})
	if err != nil {
		return nil, err
	}
	return protoTickerEventToDomain(resp)
}

// ListAccounts returns every kid with their account balances
func (c *Client) ListAccounts(ctx context.Context) ([]dashboard.KidOverview, error) {
	resp, err := c.api.ListAccounts(ctx, &kidbankv1.ListAccountsRequest{})
	if err != nil {
		return nil, err
	}

	overviews := make([]dashboard.KidOverview, 0, len(resp.Kids))
	for _, protoOverview := range resp.Kids {
		overview, err := protoKidOverviewToDashboard(protoOverview)
		if err != nil {
			return nil, err
		}
		overviews = append(overviews, overview)
	}
	return overviews, nil
}

// GetAccountDetail returns one account with its history
func (c *Client) GetAccountDetail(ctx context.Context, accountID string) (*dashboard.AccountDetail, error) {
	resp, err := c.api.GetAccount(ctx, &kidbankv1.GetAccountRequest{AccountId: accountID})
	if err != nil {
		return nil, err
	}
	return protoAccountDetailToDashboard(resp)
}

// ProjectGrowth runs a weekly compounding projection on the server
func (c *Client) ProjectGrowth(ctx context.Context, input projection.Input) (*projection.Projection, error) {
	resp, err := c.api.ProjectGrowth(ctx, &kidbankv1.ProjectGrowthRequest{
		WeeklyDeposit:       input.WeeklyDeposit,
		AnnualReturnPercent: input.AnnualReturnPercent,
		Years:               input.Years,
	})
	if err != nil {
		return nil, err
	}
	return &projection.Projection{
		Years:          int(resp.Years),
		Weeks:          int(resp.Weeks),
		FinalCents:     resp.FinalCents,
		DepositedCents: resp.DepositedCents,
		GrowthCents:    resp.GrowthCents,
	}, nil
}
