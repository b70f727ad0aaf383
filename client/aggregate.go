package client

import (
	"strings"

	"github.com/Rhymond/go-money"
	"github.com/etnz/pcschart"
	"github.com/shopspring/decimal"
)

// ReportingCurrency is the currency of the *CNY amounts.
const ReportingCurrency = "CNY"

// Holding is the sum of the positions sharing the same label.
type Holding struct {
	Label          string
	MarketValueCNY decimal.Decimal
	CostCNY        decimal.Decimal
}

// ProfitCNY returns the unrealized profit of the holding.
func (h Holding) ProfitCNY() decimal.Decimal { return h.MarketValueCNY.Sub(h.CostCNY) }

// Holdings merges positions by label (the same security held in several
// accounts), in order of first appearance.
func Holdings(positions []Position) []Holding {
	var holdings []Holding
	index := make(map[string]int)
	for _, p := range positions {
		label := p.Label()
		i, ok := index[label]
		if !ok {
			i = len(holdings)
			index[label] = i
			holdings = append(holdings, Holding{Label: label})
		}
		h := &holdings[i]
		h.MarketValueCNY = h.MarketValueCNY.Add(p.MarketValueCNY)
		h.CostCNY = h.CostCNY.Add(p.CostCNY)
	}
	return holdings
}

// Allocation returns the market value of each holding, for the pie chart.
func Allocation(positions []Position) []pcschart.Datum {
	holdings := Holdings(positions)
	data := make([]pcschart.Datum, len(holdings))
	for i, h := range holdings {
		data[i] = pcschart.Datum{Label: h.Label, Value: h.MarketValueCNY.InexactFloat64()}
	}
	return data
}

// Profit returns the unrealized profit of each holding, for the bar chart.
func Profit(positions []Position) []pcschart.Datum {
	holdings := Holdings(positions)
	data := make([]pcschart.Datum, len(holdings))
	for i, h := range holdings {
		data[i] = pcschart.Datum{Label: h.Label, Value: h.ProfitCNY().InexactFloat64()}
	}
	return data
}

// TotalValueCNY sums the market value of positions.
func TotalValueCNY(positions []Position) decimal.Decimal {
	var total decimal.Decimal
	for _, p := range positions {
		total = total.Add(p.MarketValueCNY)
	}
	return total
}

// TotalProfitCNY sums the unrealized profit of positions.
func TotalProfitCNY(positions []Position) decimal.Decimal {
	var total decimal.Decimal
	for _, p := range positions {
		total = total.Add(p.MarketValueCNY.Sub(p.CostCNY))
	}
	return total
}

// FormatAmount formats an amount with the currency conventions (symbol,
// separators, number of decimals). Unknown currencies get two decimals and
// their code as suffix.
func FormatAmount(amount decimal.Decimal, currency string) string {
	if money.GetCurrency(currency) == nil {
		return strings.TrimSpace(amount.StringFixed(2) + " " + currency)
	}
	// to get a never nil currency I need to call the Money constructor
	cur := *money.New(0, currency).Currency()
	minor := amount.Shift(int32(cur.Fraction)).Round(0)
	return cur.Formatter().Format(minor.IntPart())
}
