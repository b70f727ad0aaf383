package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/etnz/pcschart/client"
	"github.com/etnz/pcschart/renderer"
	"github.com/google/subcommands"
	"golang.org/x/sync/errgroup"
)

type dashboardCmd struct {
	dir    string
	format string
	output outputFlags
}

func (*dashboardCmd) Name() string     { return "dashboard" }
func (*dashboardCmd) Synopsis() string { return "draw all the charts of the portfolio" }
func (*dashboardCmd) Usage() string {
	return `pcv dashboard [-dir <dir>] [-format png|svg]

Fetch the positions and totals of the selected ledger or account, draw the
allocation and profit charts into dir, and print the summary.
`
}

func (c *dashboardCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.dir, "dir", ".", "output directory")
	f.StringVar(&c.format, "format", "png", "image format, png or svg")
	f.IntVar(&c.output.width, "width", 0, "chart width in pixels (default from config, 640)")
	f.IntVar(&c.output.height, "height", 0, "chart height in pixels (default from config, 480)")
}

func (c *dashboardCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	format := strings.ToLower(strings.TrimPrefix(c.format, "."))
	if format != "png" && format != "svg" {
		return usagef("unsupported format %q, use png or svg", c.format)
	}
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

	var positions []client.Position
	var stats client.Stats
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		positions, err = p.Positions(gctx)
		return err
	})
	g.Go(func() (err error) {
		stats, err = p.Stats(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return failf("reading portfolio: %v", err)
	}

	if err := os.MkdirAll(c.dir, 0o755); err != nil {
		return failf("%v", err)
	}
	charts := []*portfolioChartCmd{newAllocationCmd(), newProfitCmd()}
	files := make([]string, len(charts))
	width, height := c.output.size(s.cfg)
	g = new(errgroup.Group)
	for i, chart := range charts {
		files[i] = filepath.Join(c.dir, chart.name+"."+format)
		title := chart.caption(p)
		g.Go(func() error {
			return renderFile(s.cfg, st, files[i], width, height, chart.kind, chart.data(positions), title)
		})
	}
	if err := g.Wait(); err != nil {
		return failf("drawing charts: %v", err)
	}

	var b strings.Builder
	b.WriteString(renderer.RenderSummary(renderer.NewSummary(p.title("Portfolio"), stats)))
	b.WriteString("\nCharts:\n\n")
	for _, file := range files {
		fmt.Fprintf(&b, "* %s\n", file)
	}
	printMarkdown(b.String())
	return subcommands.ExitSuccess
}
