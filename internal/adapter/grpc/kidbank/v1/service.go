package kidbankv1

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const ServiceName = "kidbank.v1.KidBankService"

const (
	KidBankService_CreateKid_FullMethodName       = "/kidbank.v1.KidBankService/CreateKid"
	KidBankService_CreateAccount_FullMethodName   = "/kidbank.v1.KidBankService/CreateAccount"
	KidBankService_AddTransaction_FullMethodName  = "/kidbank.v1.KidBankService/AddTransaction"
	KidBankService_TransferFunds_FullMethodName   = "/kidbank.v1.KidBankService/TransferFunds"
	KidBankService_SplitDeposit_FullMethodName    = "/kidbank.v1.KidBankService/SplitDeposit"
	KidBankService_SetMarketTicker_FullMethodName = "/kidbank.v1.KidBankService/SetMarketTicker"
	KidBankService_ListAccounts_FullMethodName    = "/kidbank.v1.KidBankService/ListAccounts"
	KidBankService_GetAccount_FullMethodName      = "/kidbank.v1.KidBankService/GetAccount"
	KidBankService_ProjectGrowth_FullMethodName   = "/kidbank.v1.KidBankService/ProjectGrowth"
)

// KidBankServiceClient is the client API for KidBankService
type KidBankServiceClient interface {
	CreateKid(ctx context.Context, in *CreateKidRequest, opts ...grpc.CallOption) (*Kid, error)
	CreateAccount(ctx context.Context, in *CreateAccountRequest, opts ...grpc.CallOption) (*Account, error)
	AddTransaction(ctx context.Context, in *AddTransactionRequest, opts ...grpc.CallOption) (*Transaction, error)
	TransferFunds(ctx context.Context, in *TransferFundsRequest, opts ...grpc.CallOption) (*TransferFundsResponse, error)
	SplitDeposit(ctx context.Context, in *SplitDepositRequest, opts ...grpc.CallOption) (*SplitDepositResponse, error)
	SetMarketTicker(ctx context.Context, in *SetMarketTickerRequest, opts ...grpc.CallOption) (*TickerEvent, error)
	ListAccounts(ctx context.Context, in *ListAccountsRequest, opts ...grpc.CallOption) (*ListAccountsResponse, error)
	GetAccount(ctx context.Context, in *GetAccountRequest, opts ...grpc.CallOption) (*GetAccountResponse, error)
	ProjectGrowth(ctx context.Context, in *ProjectGrowthRequest, opts ...grpc.CallOption) (*ProjectGrowthResponse, error)
}

type kidBankServiceClient struct {
	cc grpc.ClientConnInterface
}

// NewKidBankServiceClient returns a client that sends every call with the
// json content-subtype
func NewKidBankServiceClient(cc grpc.ClientConnInterface) KidBankServiceClient {
	return &kidBankServiceClient{cc}
}

func (c *kidBankServiceClient) invoke(ctx context.Context, method string, in, out any, opts []grpc.CallOption) error {
	opts = append([]grpc.CallOption{grpc.CallContentSubtype(CodecName)}, opts...)
	return c.cc.Invoke(ctx, method, in, out, opts...)
}

func (c *kidBankServiceClient) CreateKid(ctx context.Context, in *CreateKidRequest, opts ...grpc.CallOption) (*Kid, error) {
	out := new(Kid)
	if err := c.invoke(ctx, KidBankService_CreateKid_FullMethodName, in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *kidBankServiceClient) CreateAccount(ctx context.Context, in *CreateAccountRequest, opts ...grpc.CallOption) (*Account, error) {
	out := new(Account)
	if err := c.invoke(ctx, KidBankService_CreateAccount_FullMethodName, in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *kidBankServiceClient) AddTransaction(ctx context.Context, in *AddTransactionRequest, opts ...grpc.CallOption) (*Transaction, error) {
	out := new(Transaction)
	if err := c.invoke(ctx, KidBankService_AddTransaction_FullMethodName, in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *kidBankServiceClient) TransferFunds(ctx context.Context, in *TransferFundsRequest, opts ...grpc.CallOption) (*TransferFundsResponse, error) {
	out := new(TransferFundsResponse)
	if err := c.invoke(ctx, KidBankService_TransferFunds_FullMethodName, in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *kidBankServiceClient) SplitDeposit(ctx context.Context, in *SplitDepositRequest, opts ...grpc.CallOption) (*SplitDepositResponse, error) {
	out := new(SplitDepositResponse)
	if err := c.invoke(ctx, KidBankService_SplitDeposit_FullMethodName, in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *kidBankServiceClient) SetMarketTicker(ctx context.Context, in *SetMarketTickerRequest, opts ...grpc.CallOption) (*TickerEvent, error) {
	out := new(TickerEvent)
	if err := c.invoke(ctx, KidBankService_SetMarketTicker_FullMethodName, in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *kidBankServiceClient) ListAccounts(ctx context.Context, in *ListAccountsRequest, opts ...grpc.CallOption) (*ListAccountsResponse, error) {
	out := new(ListAccountsResponse)
	if err := c.invoke(ctx, KidBankService_ListAccounts_FullMethodName, in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *kidBankServiceClient) GetAccount(ctx context.Context, in *GetAccountRequest, opts ...grpc.CallOption) (*GetAccountResponse, error) {
	out := new(GetAccountResponse)
	if err := c.invoke(ctx, KidBankService_GetAccount_FullMethodName, in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *kidBankServiceClient) ProjectGrowth(ctx context.Context, in *ProjectGrowthRequest, opts ...grpc.CallOption) (*ProjectGrowthResponse, error) {
	out := new(ProjectGrowthResponse)
	if err := c.invoke(ctx, KidBankService_ProjectGrowth_FullMethodName, in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

// KidBankServiceServer is the server API for KidBankService.
// Implementations must embed UnimplementedKidBankServiceServer.
type KidBankServiceServer interface {
	CreateKid(context.Context, *CreateKidRequest) (*Kid, error)
	CreateAccount(context.Context, *CreateAccountRequest) (*Account, error)
	AddTransaction(context.Context, *AddTransactionRequest) (*Transaction, error)
	TransferFunds(context.Context, *TransferFundsRequest) (*TransferFundsResponse, error)
	SplitDeposit(context.Context, *SplitDepositRequest) (*SplitDepositResponse, error)
	SetMarketTicker(context.Context, *SetMarketTickerRequest) (*TickerEvent, error)
	ListAccounts(context.Context, *ListAccountsRequest) (*ListAccountsResponse, error)
	GetAccount(context.Context, *GetAccountRequest) (*GetAccountResponse, error)
	ProjectGrowth(context.Context, *ProjectGrowthRequest) (*ProjectGrowthResponse, error)
	mustEmbedUnimplementedKidBankServiceServer()
}

// UnimplementedKidBankServiceServer returns Unimplemented for every method
type UnimplementedKidBankServiceServer struct{}

func (UnimplementedKidBankServiceServer) CreateKid(context.Context, *CreateKidRequest) (*Kid, error) {
	return nil, status.Error(codes.Unimplemented, "method CreateKid not implemented")
}
func (UnimplementedKidBankServiceServer) CreateAccount(context.Context, *CreateAccountRequest) (*Account, error) {
	return nil, status.Error(codes.Unimplemented, "method CreateAccount not implemented")
}
func (UnimplementedKidBankServiceServer) AddTransaction(context.Context, *AddTransactionRequest) (*Transaction, error) {
	return nil, status.Error(codes.Unimplemented, "method AddTransaction not implemented")
}
func (UnimplementedKidBankServiceServer) TransferFunds(context.Context, *TransferFundsRequest) (*TransferFundsResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method TransferFunds not implemented")
}
func (UnimplementedKidBankServiceServer) SplitDeposit(context.Context, *SplitDepositRequest) (*SplitDepositResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method SplitDeposit not implemented")
}
func (UnimplementedKidBankServiceServer) SetMarketTicker(context.Context, *SetMarketTickerRequest) (*TickerEvent, error) {
	return nil, status.Error(codes.Unimplemented, "method SetMarketTicker not implemented")
}
func (UnimplementedKidBankServiceServer) ListAccounts(context.Context, *ListAccountsRequest) (*ListAccountsResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method ListAccounts not implemented")
}
func (UnimplementedKidBankServiceServer) GetAccount(context.Context, *GetAccountRequest) (*GetAccountResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method GetAccount not implemented")
}
func (UnimplementedKidBankServiceServer) ProjectGrowth(context.Context, *ProjectGrowthRequest) (*ProjectGrowthResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method ProjectGrowth not implemented")
}
func (UnimplementedKidBankServiceServer) mustEmbedUnimplementedKidBankServiceServer() {}

// RegisterKidBankServiceServer registers srv on s
func RegisterKidBankServiceServer(s grpc.ServiceRegistrar, srv KidBankServiceServer) {
	s.RegisterService(&KidBankService_ServiceDesc, srv)
}

// unary builds a MethodHandler that decodes a Req and dispatches to call
func unary[Req any, Resp any](fullMethod string, call func(KidBankServiceServer, context.Context, *Req) (*Resp, error)) grpc.MethodHandler {
	return func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
		in := new(Req)
		if err := dec(in); err != nil {
			return nil, err
		}
		if interceptor == nil {
			return call(srv.(KidBankServiceServer), ctx, in)
		}
		info := &grpc.UnaryServerInfo{
			Server:     srv,
			FullMethod: fullMethod,
		}
		handler := func(ctx context.Context, req any) (any, error) {
			return call(srv.(KidBankServiceServer), ctx, req.(*Req))
		}
		return interceptor(ctx, in, info, handler)
	}
}

// KidBankService_ServiceDesc is the grpc.ServiceDesc for KidBankService
var KidBankService_ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*KidBankServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "CreateKid",
			Handler:    unary(KidBankService_CreateKid_FullMethodName, KidBankServiceServer.CreateKid),
		},
		{
			MethodName: "CreateAccount",
			Handler:    unary(KidBankService_CreateAccount_FullMethodName, KidBankServiceServer.CreateAccount),
		},
		{
			MethodName: "AddTransaction",
			Handler:    unary(KidBankService_AddTransaction_FullMethodName, KidBankServiceServer.AddTransaction),
		},
		{
			MethodName: "TransferFunds",
			Handler:    unary(KidBankService_TransferFunds_FullMethodName, KidBankServiceServer.TransferFunds),
		},
		{
			MethodName: "SplitDeposit",
			Handler:    unary(KidBankService_SplitDeposit_FullMethodName, KidBankServiceServer.SplitDeposit),
		},
		{
			MethodName: "SetMarketTicker",
			Handler:    unary(KidBankService_SetMarketTicker_FullMethodName, KidBankServiceServer.SetMarketTicker),
		},
		{
			MethodName: "ListAccounts",
			Handler:    unary(KidBankService_ListAccounts_FullMethodName, KidBankServiceServer.ListAccounts),
		},
		{
			MethodName: "GetAccount",
			Handler:    unary(KidBankService_GetAccount_FullMethodName, KidBankServiceServer.GetAccount),
		},
		{
			MethodName: "ProjectGrowth",
			Handler:    unary(KidBankService_ProjectGrowth_FullMethodName, KidBankServiceServer.ProjectGrowth),
		},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "kidbank/v1/kidbank.json",
}
