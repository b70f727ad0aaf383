package client

import "github.com/shopspring/decimal"

// User is the identity returned by a successful login.
type User struct {
	Username string   `json:"username"`
	Name     string   `json:"name,omitempty"`
	Email    string   `json:"email,omitempty"`
	Roles    []string `json:"roles,omitempty"`
}

// Ledger is a book of accounts owned by a user.
type Ledger struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	CostMethod  string `json:"cost_method"`
	Owner       string `json:"owner_username"`
}

// Account is a brokerage or cash account in a ledger.
type Account struct {
	ID          int    `json:"id"`
	LedgerID    int    `json:"ledger_id"`
	Name        string `json:"name"`
	Type        string `json:"type"`
	Currency    string `json:"currency"`
	Description string `json:"description"`
}

// Position is a holding as valued by the server.
//
// Amounts suffixed with CNY are in the reporting currency, the others in the
// security currency.
type Position struct {
	ID             int             `json:"id"`
	LedgerID       int             `json:"ledger_id"`
	AccountID      int             `json:"account_id"`
	AccountName    string          `json:"account_name"`
	Code           string          `json:"code"`
	Name           string          `json:"name"`
	Category       string          `json:"category"`
	Currency       string          `json:"currency"`
	Quantity       decimal.Decimal `json:"quantity"`
	AvgCost        decimal.Decimal `json:"avg_cost"`
	CurrentPrice   decimal.Decimal `json:"current_price"`
	Cost           decimal.Decimal `json:"cost"`
	MarketValue    decimal.Decimal `json:"market_value"`
	CostCNY        decimal.Decimal `json:"cost_cny"`
	MarketValueCNY decimal.Decimal `json:"market_value_cny"`
	Profit         decimal.Decimal `json:"profit"`
	ProfitCNY      decimal.Decimal `json:"profit_cny"`
	ProfitRate     decimal.Decimal `json:"profit_rate"`
	ProfitRateCNY  decimal.Decimal `json:"profit_rate_cny"`
}

// Label returns the name used to chart the position.
func (p Position) Label() string {
	if p.Name != "" {
		return p.Name
	}
	return p.Code
}

// Stats is the portfolio summary computed by the server.
type Stats struct {
	TotalCost      decimal.Decimal `json:"total_cost"`
	TotalValue     decimal.Decimal `json:"total_value"`
	TotalCostCNY   decimal.Decimal `json:"total_cost_cny"`
	TotalValueCNY  decimal.Decimal `json:"total_value_cny"`
	TotalProfit    decimal.Decimal `json:"total_profit"`
	TotalProfitCNY decimal.Decimal `json:"total_profit_cny"`
	ProfitRate     decimal.Decimal `json:"profit_rate"`
	PositionCount  int             `json:"position_count"`
}
