// Package kidbankv1 holds the wire messages and service descriptor of the
// kidbank.v1.KidBankService gRPC API. Messages are plain structs encoded with
// the "json" codec registered by this package.
package kidbankv1

// Kid is a child who owns accounts
type Kid struct {
	Id        string `json:"id"`
	Name      string `json:"name"`
	CreatedAt string `json:"created_at"` // RFC 3339
}

// Account is a CHECKING, SAVINGS or MARKET account
type Account struct {
	Id        string `json:"id"`
	KidId     string `json:"kid_id"`
	Name      string `json:"name"`
	Type      string `json:"type"`
	CreatedAt string `json:"created_at"`
}

// Transaction is one posting on an account. Shares, Price and Ticker are
// only set for MARKET accounts.
type Transaction struct {
	Id          string `json:"id"`
	AccountId   string `json:"account_id"`
	Type        string `json:"type"`
	AmountCents int64  `json:"amount_cents"`
	OccurredAt  string `json:"occurred_at"` // YYYY-MM-DD
	Note        string `json:"note,omitempty"`
	Shares      string `json:"shares,omitempty"`
	Price       string `json:"price,omitempty"`
	Ticker      string `json:"ticker,omitempty"`
	TransferId  string `json:"transfer_id,omitempty"`
	CreatedAt   string `json:"created_at"`
}

// TickerEvent is one entry of a market account's ticker log
type TickerEvent struct {
	Id            string `json:"id"`
	AccountId     string `json:"account_id"`
	Ticker        string `json:"ticker"`
	EffectiveDate string `json:"effective_date"`
	CreatedAt     string `json:"created_at"`
}

type CreateKidRequest struct {
	Name string `json:"name"`
}

type CreateAccountRequest struct {
	KidId string `json:"kid_id"`
	Name  string `json:"name"`
	Type  string `json:"type"`
}

type AddTransactionRequest struct {
	AccountId  string `json:"account_id"`
	Type       string `json:"type"`
	Amount     string `json:"amount"`
	OccurredAt string `json:"occurred_at"`
	Note       string `json:"note,omitempty"`
}

type TransferFundsRequest struct {
	FromAccountId string `json:"from_account_id"`
	ToAccountId   string `json:"to_account_id"`
	Amount        string `json:"amount"`
	OccurredAt    string `json:"occurred_at"`
	Note          string `json:"note,omitempty"`
}

type TransferFundsResponse struct {
	TransferId string       `json:"transfer_id"`
	Withdrawal *Transaction `json:"withdrawal"`
	Deposit    *Transaction `json:"deposit"`
}

// SplitRule sends one share of a split deposit to an account
type SplitRule struct {
	AccountId string `json:"account_id"`
	Type      string `json:"type"`            // FIXED, PERCENT or REMAINDER
	Value     string `json:"value,omitempty"` // Dollars for FIXED, percent for PERCENT
	Priority  int32  `json:"priority"`
}

type SplitDepositRequest struct {
	Amount     string       `json:"amount"`
	OccurredAt string       `json:"occurred_at"`
	Note       string       `json:"note,omitempty"`
	Rules      []*SplitRule `json:"rules"`
}

type SplitDepositResponse struct {
	Deposits []*Transaction `json:"deposits"`
}

type SetMarketTickerRequest struct {
	AccountId     string `json:"account_id"`
	Ticker        string `json:"ticker"`
	EffectiveDate string `json:"effective_date"`
}

type ListAccountsRequest struct{}

// AccountSummary is one row of the account list
type AccountSummary struct {
	Account      *Account `json:"account"`
	BalanceCents int64    `json:"balance_cents"`
	Ticker       string   `json:"ticker,omitempty"`
}

// KidOverview groups a kid's accounts with the kid's total cash balance
type KidOverview struct {
	Kid        *Kid              `json:"kid"`
	Accounts   []*AccountSummary `json:"accounts"`
	TotalCents int64             `json:"total_cents"`
}

type ListAccountsResponse struct {
	Kids []*KidOverview `json:"kids"`
}

type GetAccountRequest struct {
	AccountId string `json:"account_id"`
}

// MarketSummary is the market block of an account detail. Valuation fields
// are empty when no ticker is set or the price could not be fetched.
type MarketSummary struct {
	Ticker           string `json:"ticker,omitempty"`
	TotalShares      string `json:"total_shares"`
	CostBasisCents   int64  `json:"cost_basis_cents"`
	Price            string `json:"price,omitempty"`
	MarketValueCents int64  `json:"market_value_cents,omitempty"`
	GainLossCents    int64  `json:"gain_loss_cents,omitempty"`
	GainLossPercent  string `json:"gain_loss_percent,omitempty"`
	PriceError       string `json:"price_error,omitempty"`
}

type GetAccountResponse struct {
	Account       *Account       `json:"account"`
	Kid           *Kid           `json:"kid"`
	BalanceCents  int64          `json:"balance_cents"`
	Transactions  []*Transaction `json:"transactions"`
	TickerHistory []*TickerEvent `json:"ticker_history,omitempty"`
	Market        *MarketSummary `json:"market,omitempty"`
}

type ProjectGrowthRequest struct {
	WeeklyDeposit       string `json:"weekly_deposit"`
	AnnualReturnPercent string `json:"annual_return_percent"`
	Years               string `json:"years"`
}

type ProjectGrowthResponse struct {
	Years          int32 `json:"years"`
	Weeks          int32 `json:"weeks"`
	FinalCents     int64 `json:"final_cents"`
	DepositedCents int64 `json:"deposited_cents"`
	GrowthCents    int64 `json:"growth_cents"`
}
