package cmd

import (
	"context"
	"flag"
	"fmt"
	"math"

	"github.com/etnz/pcschart/client"
	"github.com/etnz/pcschart/xlsx"
	"github.com/google/subcommands"
)

type exportCmd struct {
	out string
}

func (*exportCmd) Name() string     { return "export" }
func (*exportCmd) Synopsis() string { return "export the chart data to an Excel workbook" }
func (*exportCmd) Usage() string {
	return `pcv export [-o portfolio.xlsx]

Write the allocation and the profit of the selected ledger or account to an
Excel workbook, one sheet per chart with its values and a native chart.
`
}

func (c *exportCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.out, "o", "portfolio.xlsx", "output workbook")
}

func (c *exportCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	s, err := openSession()
	if err != nil {
		return failf("loading session: %v", err)
	}
	p, err := s.portfolio()
	if err != nil {
		return failf("%v", err)
	}
	st, err := s.cfg.ChartStyle()
	if err != nil {
		return failf("loading config: %v", err)
	}
	positions, err := p.Positions(ctx)
	if err != nil {
		return failf("listing positions: %v", err)
	}

	allocation := xlsx.Sheet{
		Name:     "Allocation",
		Title:    p.title("Allocation"),
		Kind:     xlsx.Pie,
		Currency: client.ReportingCurrency,
		Data:     client.Allocation(positions),
	}
	if st.DonutRatio > 0 {
		allocation.Kind = xlsx.Donut
		allocation.HoleSize = max(1, int(math.Round(st.DonutRatio*100)))
	}
	profit := xlsx.Sheet{
		Name:     "Profit",
		Title:    p.title("Profit"),
		Kind:     xlsx.Bars,
		Currency: client.ReportingCurrency,
		Data:     client.Profit(positions),
	}
	if err := xlsx.Write(c.out, allocation, profit); err != nil {
		return failf("exporting: %v", err)
	}
	fmt.Printf("Wrote %s\n", c.out)
	return subcommands.ExitSuccess
}
