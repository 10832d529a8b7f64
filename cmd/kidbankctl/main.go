// Command kidbankctl manages kids, accounts and transactions on a running
// kidbank server.
package main

import (
	"context"
	"flag"
	"os"
	"path"

	"github.com/google/subcommands"

	grpcadapter "github.com/simaogato/kidbank-backend/internal/adapter/grpc"
	"github.com/simaogato/kidbank-backend/internal/config"
	"github.com/simaogato/kidbank-backend/internal/domain"
	"github.com/simaogato/kidbank-backend/internal/usecase/dashboard"
	"github.com/simaogato/kidbank-backend/internal/usecase/projection"
	"github.com/simaogato/kidbank-backend/internal/usecase/transfer"
)

var (
	addr  = flag.String("addr", envOr("KIDBANK_ADDR", "localhost"+config.DefaultGRPCAddr), "Address of the kidbank gRPC server")
	token = flag.String("token", envOr("API_TOKEN", config.DefaultAPIToken), "API token")
	plain = flag.Bool("plain", false, "Print raw markdown instead of styled terminal output")
)

// kidBank is the remote API used by the commands
type kidBank interface {
	CreateKid(ctx context.Context, name string) (*domain.Kid, error)
	CreateAccount(ctx context.Context, kidID, name, accountType string) (*domain.Account, error)
	AddTransaction(ctx context.Context, input transfer.AddTransactionInput) (*domain.Transaction, error)
	TransferFunds(ctx context.Context, input transfer.TransferInput) (*transfer.Result, error)
	SplitDeposit(ctx context.Context, input transfer.SplitDepositInput) ([]*domain.Transaction, error)
	SetMarketTicker(ctx context.Context, accountID, ticker, effectiveDate string) (*domain.TickerEvent, error)
	ListAccounts(ctx context.Context) ([]dashboard.KidOverview, error)
	GetAccountDetail(ctx context.Context, accountID string) (*dashboard.AccountDetail, error)
	ProjectGrowth(ctx context.Context, input projection.Input) (*projection.Projection, error)
	Close() error
}

// dial opens the remote API; tests replace it
var dial = func() (kidBank, error) {
	return grpcadapter.Dial(*addr, *token)
}

// commands lists every subcommand in help order
var commands = []subcommands.Command{
	&addKidCmd{},
	&addAccountCmd{},
	&postCmd{direction: domain.DirectionDeposit},
	&postCmd{direction: domain.DirectionWithdrawal},
	&transferCmd{},
	&splitCmd{},
	&setTickerCmd{},
	&accountsCmd{},
	&accountCmd{},
	&projectCmd{},
}

func main() {
	completion(flag.CommandLine, commands).Complete(path.Base(os.Args[0]))

	commander := subcommands.NewCommander(flag.CommandLine, path.Base(os.Args[0]))
	commander.Register(commander.HelpCommand(), "")
	commander.Register(commander.FlagsCommand(), "")
	for _, c := range commands {
		commander.Register(c, "")
	}

	flag.Parse()
	os.Exit(int(commander.Execute(context.Background())))
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
