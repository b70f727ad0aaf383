package cmd

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/etnz/pcschart/agent"
	"github.com/etnz/pcschart/client"
	"github.com/etnz/pcschart/renderer"
	"github.com/google/subcommands"
	"google.golang.org/genai"
)

type assistCmd struct{}

func (*assistCmd) Name() string     { return "assist" }
func (*assistCmd) Synopsis() string { return "start an interactive session with the AI assistant" }
func (*assistCmd) Usage() string {
	return `pcv assist [<question>...]

Start an interactive session with the AI assistant about the selected ledger
or account. The arguments are asked as a first question. Requires a Gemini
API key in GEMINI_API_KEY.
`
}
func (*assistCmd) SetFlags(*flag.FlagSet) {}

func (*assistCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	var prompts []string
	if f.NArg() > 0 {
		prompts = append(prompts, strings.Join(f.Args(), " "))
	}

	s, err := openSession()
	if err != nil {
		return failf("loading session: %v", err)
	}
	p, err := s.portfolio()
	if err != nil {
		return failf("%v", err)
	}
	gc, err := genai.NewClient(ctx, nil)
	if err != nil {
		return failf("initializing Gemini's client: %v", err)
	}

	a := agent.New(os.Stdout, os.Stdin, s.cfg.Model,
		agent.NewAnalyst(s.cfg.Model, p),
		agent.NewMarketWatcher(s.cfg.Model),
	)
	a.Print = func(w io.Writer, md string) { fmt.Fprint(w, renderMarkdown(md)) }
	if err := a.Run(ctx, gc, prompts...); err != nil {
		return failf("assistant failed: %v", err)
	}
	return subcommands.ExitSuccess
}

type describeCmd struct{}

func (*describeCmd) Name() string     { return "describe" }
func (*describeCmd) Synopsis() string { return "comment a chart of the portfolio with the AI" }
func (*describeCmd) Usage() string {
	return `pcv describe [allocation|profit]

Print the values of a chart of the selected ledger or account, followed by a
short commentary written by the AI. Requires a Gemini API key in GEMINI_API_KEY.
`
}
func (*describeCmd) SetFlags(*flag.FlagSet) {}

func (*describeCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() > 1 {
		return usagef("describe takes at most one chart name")
	}
	chart := newAllocationCmd()
	switch f.Arg(0) {
	case "", "allocation":
	case "profit":
		chart = newProfitCmd()
	default:
		return usagef("unknown chart %q, use allocation or profit", f.Arg(0))
	}

	s, err := openSession()
	if err != nil {
		return failf("loading session: %v", err)
	}
	p, err := s.portfolio()
	if err != nil {
		return failf("%v", err)
	}
	positions, err := p.Positions(ctx)
	if err != nil {
		return failf("listing positions: %v", err)
	}
	title := chart.caption(p)
	view := renderer.NewChart(title, client.ReportingCurrency, chart.data(positions))

	gc, err := genai.NewClient(ctx, nil)
	if err != nil {
		return failf("initializing Gemini's client: %v", err)
	}
	text, err := agent.Describe(ctx, gc, s.cfg.Model, view)
	if err != nil {
		return failf("%v", err)
	}
	printMarkdown(renderer.RenderChart(view) + "\n" + text)
	return subcommands.ExitSuccess
}
