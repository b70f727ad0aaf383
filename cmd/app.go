// Package cmd implements the pcv command line application: session
// management, portfolio data and charts.
package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/etnz/pcschart/client"
	"github.com/google/subcommands"
)

// Register the subcommands.
// A main package will call Register() to allow subcommands, and Execute() on the user-selected one.
func Register(c *subcommands.Commander) {
	c.Register(&loginCmd{}, "session")
	c.Register(&logoutCmd{}, "session")
	c.Register(&useCmd{}, "session")
	c.Register(&whoamiCmd{}, "session")

	c.Register(&ledgersCmd{}, "data")
	c.Register(&accountsCmd{}, "data")
	c.Register(&positionsCmd{}, "data")
	c.Register(&statsCmd{}, "data")

	c.Register(newPieCmd(), "charts")
	c.Register(newBarsCmd(), "charts")
	c.Register(newAllocationCmd(), "charts")
	c.Register(newProfitCmd(), "charts")
	c.Register(&dashboardCmd{}, "charts")

	c.Register(&exportCmd{}, "export")

	c.Register(&topicCmd{}, "help")
	c.Register(&describeCmd{}, "help")
	c.Register(&assistCmd{}, "help")
}

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

var serverFlag = flag.String("server", "", "Address of the portfolio server (default from the config file, "+EnvServer+" or "+defaultServer+")")
var sessionFile = flag.String("session-file", "", "Path to the session file (default from the config file, "+EnvSessionFile+" or the user config dir)")
var configFile = flag.String("config", "", "Path to the YAML config file (default "+EnvConfig+", or pcv.yaml in the current or user config dir)")

// Verbose logs every request sent to the server.
var Verbose = flag.Bool("v", false, "Log HTTP requests")

// session is the loaded configuration and state of the current command.
type session struct {
	cfg   *Config
	state client.State
}

// openSession loads the config and the session state for the configured server.
func openSession() (*session, error) {
	cfg, err := appConfig()
	if err != nil {
		return nil, err
	}
	state, err := client.LoadState(cfg.SessionFile)
	if err != nil {
		return nil, err
	}
	return &session{cfg: cfg, state: state.WithServer(cfg.Server)}, nil
}

// save writes the state to the session file.
func (s *session) save() error { return client.SaveState(s.cfg.SessionFile, s.state) }

// client returns a client for the configured server.
func (s *session) client() (*client.Client, error) {
	var opts []client.Option
	if s.cfg.Cache {
		opts = append(opts, client.WithCache(s.cfg.CacheDir))
	}
	if *Verbose {
		opts = append(opts, client.WithLogging())
	}
	return client.New(s.cfg.Server, opts...)
}

// portfolio returns the selected ledger or account, it requires a selection.
func (s *session) portfolio() (*selection, error) {
	if err := s.state.RequireLedger(); err != nil {
		return nil, fmt.Errorf("%w, see 'pcv login' and 'pcv use'", err)
	}
	c, err := s.client()
	if err != nil {
		return nil, err
	}
	return &selection{c: c, state: s.state}, nil
}

// selection reads the positions and stats of the selected ledger or account.
type selection struct {
	c     *client.Client
	state client.State
}

func (p *selection) Positions(ctx context.Context) ([]client.Position, error) {
	return p.c.Positions(ctx, p.state.LedgerID, p.state.AccountID)
}

func (p *selection) Stats(ctx context.Context) (client.Stats, error) {
	return p.c.Stats(ctx, p.state.LedgerID, p.state.AccountID)
}

// title describes the selection in chart titles.
func (p *selection) title(prefix string) string {
	if p.state.AccountID != 0 {
		return fmt.Sprintf("%s (ledger %d, account %d)", prefix, p.state.LedgerID, p.state.AccountID)
	}
	return fmt.Sprintf("%s (ledger %d)", prefix, p.state.LedgerID)
}

// printMarkdown renders markdown to the terminal.
func printMarkdown(md string) { fmt.Print(renderMarkdown(md)) }

// renderMarkdown renders markdown for the terminal, or returns it as is when it
// cannot be rendered.
func renderMarkdown(md string) string {
	r, err := glamour.NewTermRenderer(
		glamour.WithEnvironmentConfig(),
		glamour.WithWordWrap(120),
	)
	if err == nil {
		if out, err := r.Render(md); err == nil {
			return out
		}
	}
	if !strings.HasSuffix(md, "\n") {
		md += "\n"
	}
	return md
}

// failf prints an error message and returns the failure status.
func failf(format string, args ...any) subcommands.ExitStatus {
	fmt.Fprintf(os.Stderr, "Error "+format+"\n", args...)
	return subcommands.ExitFailure
}

// usagef prints an error message and returns the usage error status.
func usagef(format string, args ...any) subcommands.ExitStatus {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
	return subcommands.ExitUsageError
}
