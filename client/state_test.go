package client

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func TestState_Updates(t *testing.T) {
	ann := User{Username: "ann", Roles: []string{"admin"}}
	s0 := State{Server: "http://a"}

	s1 := s0.WithUser(ann)
	if !s1.LoggedIn() || s0.LoggedIn() {
		t.Fatalf("WithUser() changed the receiver or failed: %+v, %+v", s0, s1)
	}
	ann.Roles[0] = "guest"
	if s1.User.Roles[0] != "admin" {
		t.Errorf("WithUser() shares roles with the caller")
	}

	s2 := s1.WithLedger(3).WithAccount(5)
	if s1.LedgerID != 0 || s2.LedgerID != 3 || s2.AccountID != 5 {
		t.Errorf("WithLedger().WithAccount() = %+v from %+v", s2, s1)
	}
	s2.User.Roles[0] = "other"
	if s1.User.Roles[0] != "admin" {
		t.Errorf("WithLedger() shares roles with the receiver")
	}

	s3 := s2.WithLedger(4)
	if s3.AccountID != 0 {
		t.Errorf("WithLedger() kept account %d", s3.AccountID)
	}

	testCases := []struct {
		name  string
		state State
		want  State
	}{
		{"logout keeps server", s2.Logout(), State{Server: "http://a"}},
		{"same server keeps session", s2.WithServer("http://a"), s2},
		{"other server logs out", s2.WithServer("http://b"), State{Server: "http://b"}},
		{"new user drops selection", s2.WithUser(User{Username: "bob"}), State{Server: "http://a", User: User{Username: "bob"}}},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if !reflect.DeepEqual(tc.state, tc.want) {
				t.Errorf("got %+v, want %+v", tc.state, tc.want)
			}
		})
	}
}

func TestState_RequireLedger(t *testing.T) {
	testCases := []struct {
		state State
		want  error
	}{
		{State{}, ErrNotLoggedIn},
		{State{LedgerID: 1}, ErrNotLoggedIn},
		{State{User: User{Username: "ann"}}, ErrNoLedger},
		{State{User: User{Username: "ann"}, LedgerID: 1}, nil},
	}
	for _, tc := range testCases {
		if got := tc.state.RequireLedger(); got != tc.want {
			t.Errorf("%+v.RequireLedger() = %v, want %v", tc.state, got, tc.want)
		}
	}
}

func TestLoadSaveState(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "session.json")

	s, err := LoadState(path)
	if err != nil || !reflect.DeepEqual(s, State{}) {
		t.Fatalf("LoadState(missing) = %+v, %v, want empty state", s, err)
	}

	want := State{Server: "http://a", User: User{Username: "ann", Name: "Ann", Roles: []string{"admin"}}, LedgerID: 2, AccountID: 7}
	if err := SaveState(path, want); err != nil {
		t.Fatalf("SaveState() error = %v", err)
	}
	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("Stat() error = %v", err)
	}
	if perm := info.Mode().Perm(); perm != 0600 {
		t.Errorf("session file mode = %v, want 0600", perm)
	}

	got, err := LoadState(path)
	if err != nil {
		t.Fatalf("LoadState() error = %v", err)
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("LoadState() = %+v, want %+v", got, want)
	}

	if err := os.WriteFile(path, []byte("{not json"), 0600); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadState(path); err == nil {
		t.Error("LoadState(corrupted) succeeded, want an error")
	}
}
