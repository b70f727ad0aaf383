package cmd

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/google/subcommands"
)

type loginCmd struct {
	password string
}

func (*loginCmd) Name() string     { return "login" }
func (*loginCmd) Synopsis() string { return "log in to the portfolio server" }
func (*loginCmd) Usage() string {
	return `pcv login [-password <password>] <username>

Log in to the portfolio server and select the first ledger of the user.
The password is read from standard input when not given.
`
}

func (c *loginCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.password, "password", "", "password of the user")
}

func (c *loginCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		return usagef("login requires exactly one username")
	}
	username := f.Arg(0)

	s, err := openSession()
	if err != nil {
		return failf("loading session: %v", err)
	}
	api, err := s.client()
	if err != nil {
		return failf("%v", err)
	}

	password := c.password
	if password == "" {
		fmt.Fprint(os.Stderr, "Password: ")
		line, err := bufio.NewReader(os.Stdin).ReadString('\n')
		if err != nil && line == "" {
			return failf("reading password: %v", err)
		}
		password = strings.TrimRight(line, "\r\n")
	}

	user, err := api.Login(ctx, username, password)
	if err != nil {
		return failf("logging in as %q: %v", username, err)
	}
	s.state = s.state.WithUser(user)

	ledgers, err := api.Ledgers(ctx, user.Username)
	if err != nil {
		return failf("listing ledgers: %v", err)
	}
	if len(ledgers) > 0 {
		s.state = s.state.WithLedger(ledgers[0].ID)
	}
	if err := s.save(); err != nil {
		return failf("saving session: %v", err)
	}

	fmt.Printf("Logged in as %s on %s\n", displayName(user.Username, user.Name), s.state.Server)
	if len(ledgers) > 0 {
		fmt.Printf("Using ledger %d %q\n", ledgers[0].ID, ledgers[0].Name)
	}
	return subcommands.ExitSuccess
}

type logoutCmd struct{}

func (*logoutCmd) Name() string     { return "logout" }
func (*logoutCmd) Synopsis() string { return "forget the logged in user" }
func (*logoutCmd) Usage() string {
	return `pcv logout

Forget the logged in user and the selected ledger.
`
}
func (*logoutCmd) SetFlags(*flag.FlagSet) {}

func (*logoutCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	s, err := openSession()
	if err != nil {
		return failf("loading session: %v", err)
	}
	s.state = s.state.Logout()
	if err := s.save(); err != nil {
		return failf("saving session: %v", err)
	}
	fmt.Println("Logged out")
	return subcommands.ExitSuccess
}

type useCmd struct{}

func (*useCmd) Name() string     { return "use" }
func (*useCmd) Synopsis() string { return "select the ledger and account to chart" }
func (*useCmd) Usage() string {
	return `pcv use <ledger-id> [<account-id>]

Select a ledger, and optionally one of its accounts. Without account the
whole ledger is used. See 'pcv ledgers' and 'pcv accounts' for the ids.
`
}
func (*useCmd) SetFlags(*flag.FlagSet) {}

func (*useCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() < 1 || f.NArg() > 2 {
		return usagef("use requires a ledger id and an optional account id")
	}
	ids := make([]int, f.NArg())
	for i, arg := range f.Args() {
		id, err := strconv.Atoi(arg)
		if err != nil || id <= 0 {
			return usagef("invalid id %q", arg)
		}
		ids[i] = id
	}

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
	ledgerName := ""
	for _, l := range ledgers {
		if l.ID == ids[0] {
			ledgerName = l.Name
		}
	}
	if ledgerName == "" {
		return failf("ledger %d not found for %s", ids[0], s.state.User.Username)
	}
	s.state = s.state.WithLedger(ids[0])

	if len(ids) == 2 {
		accounts, err := api.Accounts(ctx, ids[0])
		if err != nil {
			return failf("listing accounts: %v", err)
		}
		found := false
		for _, a := range accounts {
			found = found || a.ID == ids[1]
		}
		if !found {
			return failf("account %d not found in ledger %d", ids[1], ids[0])
		}
		s.state = s.state.WithAccount(ids[1])
	}

	if err := s.save(); err != nil {
		return failf("saving session: %v", err)
	}
	if s.state.AccountID != 0 {
		fmt.Printf("Using account %d of ledger %d %q\n", s.state.AccountID, s.state.LedgerID, ledgerName)
	} else {
		fmt.Printf("Using ledger %d %q\n", s.state.LedgerID, ledgerName)
	}
	return subcommands.ExitSuccess
}

type whoamiCmd struct{}

func (*whoamiCmd) Name() string     { return "whoami" }
func (*whoamiCmd) Synopsis() string { return "show the session" }
func (*whoamiCmd) Usage() string {
	return `pcv whoami

Show the server, the logged in user and the selection.
`
}
func (*whoamiCmd) SetFlags(*flag.FlagSet) {}

func (*whoamiCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	s, err := openSession()
	if err != nil {
		return failf("loading session: %v", err)
	}
	fmt.Printf("server:  %s\n", s.state.Server)
	if !s.state.LoggedIn() {
		fmt.Println("user:    (not logged in)")
		return subcommands.ExitSuccess
	}
	u := s.state.User
	fmt.Printf("user:    %s\n", displayName(u.Username, u.Name))
	if len(u.Roles) > 0 {
		fmt.Printf("roles:   %s\n", strings.Join(u.Roles, ", "))
	}
	if s.state.LedgerID != 0 {
		fmt.Printf("ledger:  %d\n", s.state.LedgerID)
	}
	if s.state.AccountID != 0 {
		fmt.Printf("account: %d\n", s.state.AccountID)
	}
	return subcommands.ExitSuccess
}

func displayName(username, name string) string {
	if name == "" || name == username {
		return username
	}
	return fmt.Sprintf("%s (%s)", username, name)
}
