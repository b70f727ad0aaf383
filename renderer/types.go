package renderer

import (
	"fmt"

	"github.com/etnz/pcschart"
	"github.com/etnz/pcschart/client"
	"github.com/shopspring/decimal"
)

// Chart is the tabular view of a chart.
// Amounts are already formatted, so that it can be stored and rendered as is.
type Chart struct {
	Title string     `json:"title"`
	Total string     `json:"total"`
	Rows  []ChartRow `json:"rows"`
}

// ChartRow is one value of a chart.
type ChartRow struct {
	Label string `json:"label"`
	Value string `json:"value"`
	// Share of the total, empty when some values are negative.
	Share string `json:"share,omitempty"`
}

// NewChart creates the view of data, amounts in currency.
func NewChart(title, currency string, data []pcschart.Datum) *Chart {
	total := pcschart.Total(data)
	shares := total != 0
	for _, d := range data {
		if d.Value < 0 {
			shares = false
		}
	}

	c := &Chart{
		Title: title,
		Total: amount(total, currency),
		Rows:  make([]ChartRow, 0, len(data)),
	}
	for _, d := range data {
		row := ChartRow{Label: cell(d.Label), Value: amount(d.Value, currency)}
		if shares {
			row.Share = fmt.Sprintf("%.2f%%", d.Value/total*100)
		}
		c.Rows = append(c.Rows, row)
	}
	return c
}

// Positions is the view of a list of positions.
type Positions struct {
	Title       string        `json:"title"`
	Count       int           `json:"count"`
	TotalValue  string        `json:"totalValue"`
	TotalProfit string        `json:"totalProfit"`
	Rows        []PositionRow `json:"rows"`
}

// PositionRow is a single position. Price is in the security currency, other
// amounts in the reporting currency.
type PositionRow struct {
	Code        string `json:"code"`
	Name        string `json:"name"`
	Account     string `json:"account"`
	Quantity    string `json:"quantity"`
	Price       string `json:"price"`
	MarketValue string `json:"marketValue"`
	Profit      string `json:"profit"`
	ProfitRate  string `json:"profitRate"`
}

// NewPositions creates the view of positions.
func NewPositions(title string, positions []client.Position) *Positions {
	cny := client.ReportingCurrency
	p := &Positions{
		Title:       title,
		Count:       len(positions),
		TotalValue:  client.FormatAmount(client.TotalValueCNY(positions), cny),
		TotalProfit: client.FormatAmount(client.TotalProfitCNY(positions), cny),
		Rows:        make([]PositionRow, 0, len(positions)),
	}
	for _, pos := range positions {
		p.Rows = append(p.Rows, PositionRow{
			Code:        cell(pos.Code),
			Name:        cell(pos.Name),
			Account:     cell(pos.AccountName),
			Quantity:    pos.Quantity.String(),
			Price:       client.FormatAmount(pos.CurrentPrice, pos.Currency),
			MarketValue: client.FormatAmount(pos.MarketValueCNY, cny),
			Profit:      client.FormatAmount(pos.ProfitCNY, cny),
			ProfitRate:  percent(pos.ProfitRateCNY),
		})
	}
	return p
}

// Summary is the view of the portfolio statistics.
type Summary struct {
	Title         string `json:"title"`
	PositionCount int    `json:"positionCount"`
	TotalCost     string `json:"totalCost"`
	TotalValue    string `json:"totalValue"`
	TotalProfit   string `json:"totalProfit"`
	ProfitRate    string `json:"profitRate"`
}

// NewSummary creates the view of stats, in the reporting currency.
func NewSummary(title string, s client.Stats) *Summary {
	cny := client.ReportingCurrency
	return &Summary{
		Title:         title,
		PositionCount: s.PositionCount,
		TotalCost:     client.FormatAmount(s.TotalCostCNY, cny),
		TotalValue:    client.FormatAmount(s.TotalValueCNY, cny),
		TotalProfit:   client.FormatAmount(s.TotalProfitCNY, cny),
		ProfitRate:    percent(s.ProfitRate),
	}
}

func amount(v float64, currency string) string {
	return client.FormatAmount(decimal.NewFromFloat(v), currency)
}

// percent formats a rate already expressed in percent.
func percent(rate decimal.Decimal) string {
	return rate.StringFixed(2) + "%"
}
