package client

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
)

var (
	// ErrNotLoggedIn is returned when an operation needs a logged in user.
	ErrNotLoggedIn = errors.New("not logged in")
	// ErrNoLedger is returned when an operation needs a selected ledger.
	ErrNoLedger = errors.New("no ledger selected")
)

// State is the client session: who is logged in and what is selected.
//
// State is a value. Update methods return a new State and leave the receiver
// unchanged.
type State struct {
	Server    string `json:"server,omitempty"`
	User      User   `json:"user"`
	LedgerID  int    `json:"ledger_id,omitempty"`
	AccountID int    `json:"account_id,omitempty"` // 0 means the whole ledger
}

// LoggedIn reports whether a user is logged in.
func (s State) LoggedIn() bool { return s.User.Username != "" }

// WithServer returns the state for another server, logged out.
func (s State) WithServer(server string) State {
	if server == s.Server {
		return s
	}
	return State{Server: server}
}

// WithUser returns the state with u logged in. Any previous selection is dropped.
func (s State) WithUser(u User) State {
	u.Roles = slices.Clone(u.Roles)
	return State{Server: s.Server, User: u}
}

// WithLedger returns the state with the ledger selected and no account.
func (s State) WithLedger(id int) State {
	s.User.Roles = slices.Clone(s.User.Roles)
	s.LedgerID, s.AccountID = id, 0
	return s
}

// WithAccount returns the state with the account selected in the current ledger.
// 0 selects the whole ledger.
func (s State) WithAccount(id int) State {
	s.User.Roles = slices.Clone(s.User.Roles)
	s.AccountID = id
	return s
}

// Logout returns the state with nobody logged in.
func (s State) Logout() State { return State{Server: s.Server} }

// RequireLedger returns an error unless a user is logged in with a ledger selected.
func (s State) RequireLedger() error {
	if !s.LoggedIn() {
		return ErrNotLoggedIn
	}
	if s.LedgerID == 0 {
		return ErrNoLedger
	}
	return nil
}

// LoadState reads the state from a JSON file. A missing file is an empty state.
func LoadState(path string) (State, error) {
	var s State
	b, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return s, nil
	}
	if err != nil {
		return s, err
	}
	if err := json.Unmarshal(b, &s); err != nil {
		return s, fmt.Errorf("invalid session file %q: %w", path, err)
	}
	return s, nil
}

// SaveState writes the state as a JSON file, readable by the owner only.
func SaveState(path string, s State) error {
	b, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return err
	}
	return os.WriteFile(path, append(b, '\n'), 0600)
}
