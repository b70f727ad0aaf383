package cmd

import (
	"context"
	"flag"

	"github.com/etnz/pcschart/renderer"
	"github.com/google/subcommands"
)

type ledgersCmd struct{}

func (*ledgersCmd) Name() string     { return "ledgers" }
func (*ledgersCmd) Synopsis() string { return "list the ledgers of the user" }
func (*ledgersCmd) Usage() string {
	return `pcv ledgers

List the ledgers of the logged in user, the selected one is marked with a star.
`
}
func (*ledgersCmd) SetFlags(*flag.FlagSet) {}

func (*ledgersCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	s, err := openSession()
	if err != nil {
		return failf("loading session: %v", err)
	}
	if !s.state.LoggedIn() {
		return failf("%v, see 'pcv login'", s.state.RequireLedger())
	}
	api, err := s.client()
	if err != nil {
		return failf("%v", err)
	}
	ledgers, err := api.Ledgers(ctx, s.state.User.Username)
	if err != nil {
		return failf("listing ledgers: %v", err)
	}
	printMarkdown(renderer.RenderLedgers(ledgers, s.state.LedgerID))
	return subcommands.ExitSuccess
}

type accountsCmd struct{}

func (*accountsCmd) Name() string     { return "accounts" }
func (*accountsCmd) Synopsis() string { return "list the accounts of the selected ledger" }
func (*accountsCmd) Usage() string {
	return `pcv accounts

List the accounts of the selected ledger, the selected one is marked with a star.
`
}
func (*accountsCmd) SetFlags(*flag.FlagSet) {}

func (*accountsCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	s, err := openSession()
	if err != nil {
		return failf("loading session: %v", err)
	}
	p, err := s.portfolio()
	if err != nil {
		return failf("%v", err)
	}
	accounts, err := p.c.Accounts(ctx, s.state.LedgerID)
	if err != nil {
		return failf("listing accounts: %v", err)
	}
	printMarkdown(renderer.RenderAccounts(accounts, s.state.AccountID))
	return subcommands.ExitSuccess
}

type positionsCmd struct{}

func (*positionsCmd) Name() string     { return "positions" }
func (*positionsCmd) Synopsis() string { return "list the open positions" }
func (*positionsCmd) Usage() string {
	return `pcv positions

List the open positions of the selected ledger or account.
`
}
func (*positionsCmd) SetFlags(*flag.FlagSet) {}

func (*positionsCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
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
	printMarkdown(renderer.RenderPositions(renderer.NewPositions(p.title("Positions"), positions)))
	return subcommands.ExitSuccess
}

type statsCmd struct{}

func (*statsCmd) Name() string     { return "stats" }
func (*statsCmd) Synopsis() string { return "show the portfolio totals" }
func (*statsCmd) Usage() string {
	return `pcv stats

Show the cost, market value, profit and return of the selected ledger or account.
`
}
func (*statsCmd) SetFlags(*flag.FlagSet) {}

func (*statsCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	s, err := openSession()
	if err != nil {
		return failf("loading session: %v", err)
	}
	p, err := s.portfolio()
	if err != nil {
		return failf("%v", err)
	}
	stats, err := p.Stats(ctx)
	if err != nil {
		return failf("reading stats: %v", err)
	}
	printMarkdown(renderer.RenderSummary(renderer.NewSummary(p.title("Portfolio"), stats)))
	return subcommands.ExitSuccess
}
