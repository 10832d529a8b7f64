package grpc

import (
	"context"
	"errors"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	kidbankv1 "github.com/simaogato/kidbank-backend/internal/adapter/grpc/kidbank/v1"
	"github.com/simaogato/kidbank-backend/internal/domain"
	"github.com/simaogato/kidbank-backend/internal/usecase/dashboard"
	"github.com/simaogato/kidbank-backend/internal/usecase/household"
	"github.com/simaogato/kidbank-backend/internal/usecase/investment"
	"github.com/simaogato/kidbank-backend/internal/usecase/projection"
	"github.com/simaogato/kidbank-backend/internal/usecase/transfer"
)

// Server implements the KidBankService gRPC server
type Server struct {
	kidbankv1.UnimplementedKidBankServiceServer

	HouseholdService  *household.HouseholdService
	TransferService   *transfer.TransferService
	InvestmentService *investment.InvestmentService
	DashboardService  *dashboard.DashboardService
}

// NewServer creates a new gRPC server instance
func NewServer(
	householdService *household.HouseholdService,
	transferService *transfer.TransferService,
	investmentService *investment.InvestmentService,
	dashboardService *dashboard.DashboardService,
) *Server {
	return &Server{
		HouseholdService:  householdService,
		TransferService:   transferService,
		InvestmentService: investmentService,
		DashboardService:  dashboardService,
	}
}

// CreateKid handles the CreateKid RPC
func (s *Server) CreateKid(ctx context.Context, req *kidbankv1.CreateKidRequest) (*kidbankv1.Kid, error) {
	kid, err := s.HouseholdService.CreateKid(ctx, req.Name)
	if err != nil {
		return nil, mapError(err)
	}
	return domainKidToProto(kid), nil
}

// CreateAccount handles the CreateAccount RPC
func (s *Server) CreateAccount(ctx context.Context, req *kidbankv1.CreateAccountRequest) (*kidbankv1.Account, error) {
	account, err := s.HouseholdService.CreateAccount(ctx, req.KidId, req.Name, req.Type)
	if err != nil {
		return nil, mapError(err)
	}
	return domainAccountToProto(account), nil
}

// AddTransaction handles the AddTransaction RPC
func (s *Server) AddTransaction(ctx context.Context, req *kidbankv1.AddTransactionRequest) (*kidbankv1.Transaction, error) {
	// Fields stay strings; the service owns parsing and validation
	input := transfer.AddTransactionInput{
		AccountID:  req.AccountId,
		Type:       req.Type,
		Amount:     req.Amount,
		OccurredAt: req.OccurredAt,
		Note:       req.Note,
	}

	tx, err := s.TransferService.AddTransaction(ctx, input)
	if err != nil {
		return nil, mapError(err)
	}
	return domainTransactionToProto(tx), nil
}

// TransferFunds handles the TransferFunds RPC
func (s *Server) TransferFunds(ctx context.Context, req *kidbankv1.TransferFundsRequest) (*kidbankv1.TransferFundsResponse, error) {
	input := transfer.TransferInput{
		FromAccountID: req.FromAccountId,
		ToAccountID:   req.ToAccountId,
		Amount:        req.Amount,
		OccurredAt:    req.OccurredAt,
		Note:          req.Note,
	}

	result, err := s.TransferService.Transfer(ctx, input)
	if err != nil {
		return nil, mapError(err)
	}

	return &kidbankv1.TransferFundsResponse{
		TransferId: result.TransferID.String(),
		Withdrawal: domainTransactionToProto(result.Withdrawal),
		Deposit:    domainTransactionToProto(result.Deposit),
	}, nil
}

// SplitDeposit handles the SplitDeposit RPC
func (s *Server) SplitDeposit(ctx context.Context, req *kidbankv1.SplitDepositRequest) (*kidbankv1.SplitDepositResponse, error) {
	input := transfer.SplitDepositInput{
		Amount:     req.Amount,
		OccurredAt: req.OccurredAt,
		Note:       req.Note,
		Rules:      make([]transfer.SplitRuleInput, 0, len(req.Rules)),
	}
	for _, r := range req.Rules {
		if r == nil {
			continue
		}
		input.Rules = append(input.Rules, transfer.SplitRuleInput{
			AccountID: r.AccountId,
			Type:      r.Type,
			Value:     r.Value,
			Priority:  int(r.Priority),
		})
	}

	deposits, err := s.TransferService.SplitDeposit(ctx, input)
	if err != nil {
		return nil, mapError(err)
	}

	resp := &kidbankv1.SplitDepositResponse{Deposits: make([]*kidbankv1.Transaction, 0, len(deposits))}
	for _, tx := range deposits {
		resp.Deposits = append(resp.Deposits, domainTransactionToProto(tx))
	}
	return resp, nil
}

// SetMarketTicker handles the SetMarketTicker RPC
func (s *Server) SetMarketTicker(ctx context.Context, req *kidbankv1.SetMarketTickerRequest) (*kidbankv1.TickerEvent, error) {
	event, err := s.InvestmentService.SetMarketTicker(ctx, req.AccountId, req.Ticker, req.EffectiveDate)
	if err != nil {
		return nil, mapError(err)
	}
	return domainTickerEventToProto(event), nil
}

// ListAccounts handles the ListAccounts RPC
func (s *Server) ListAccounts(ctx context.Context, req *kidbankv1.ListAccountsRequest) (*kidbankv1.ListAccountsResponse, error) {
	overviews, err := s.DashboardService.ListAccounts(ctx)
	if err != nil {
		return nil, mapError(err)
	}

	resp := &kidbankv1.ListAccountsResponse{
		Kids: make([]*kidbankv1.KidOverview, 0, len(overviews)),
	}
	for _, overview := range overviews {
		resp.Kids = append(resp.Kids, kidOverviewToProto(overview))
	}
	return resp, nil
}

// GetAccount handles the GetAccount RPC
func (s *Server) GetAccount(ctx context.Context, req *kidbankv1.GetAccountRequest) (*kidbankv1.GetAccountResponse, error) {
	detail, err := s.DashboardService.GetAccountDetail(ctx, req.AccountId)
	if err != nil {
		return nil, mapError(err)
	}
	return accountDetailToProto(detail), nil
}

// ProjectGrowth handles the ProjectGrowth RPC
func (s *Server) ProjectGrowth(ctx context.Context, req *kidbankv1.ProjectGrowthRequest) (*kidbankv1.ProjectGrowthResponse, error) {
	result, err := projection.ProjectGrowth(projection.Input{
		WeeklyDeposit:       req.WeeklyDeposit,
		AnnualReturnPercent: req.AnnualReturnPercent,
		Years:               req.Years,
	})
	if err != nil {
		return nil, mapError(err)
	}

	return &kidbankv1.ProjectGrowthResponse{
		Years:          int32(result.Years),
		Weeks:          int32(result.Weeks),
		FinalCents:     result.FinalCents,
		DepositedCents: result.DepositedCents,
		GrowthCents:    result.GrowthCents,
	}, nil
}

// mapError converts domain errors to gRPC status errors
func mapError(err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, domain.ErrValidation), errors.Is(err, domain.ErrDomain):
		return status.Error(codes.InvalidArgument, err.Error())
	case errors.Is(err, domain.ErrNotFound):
		return status.Error(codes.NotFound, err.Error())
	case errors.Is(err, domain.ErrOracle):
		return status.Error(codes.Unavailable, err.Error())
	case errors.Is(err, domain.ErrInvariant):
		return status.Error(codes.Internal, err.Error())
	case errors.Is(err, context.Canceled):
		return status.Error(codes.Canceled, err.Error())
	case errors.Is(err, context.DeadlineExceeded):
		return status.Error(codes.DeadlineExceeded, err.Error())
	}

	// Default to Internal error for unknown errors
	return status.Error(codes.Internal, err.Error())
}
