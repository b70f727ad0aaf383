package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shopspring/decimal"
)

const positionsJSON = `[
	{"id": 1, "ledger_id": 1, "account_id": 2, "account_name": "Broker", "code": "600519", "name": "Kweichow Moutai",
	 "category": null, "currency": "CNY", "quantity": 10, "avg_cost": 1500.5, "current_price": 1700,
	 "cost": 15005, "market_value": 17000, "cost_cny": 15005, "market_value_cny": 17000.10, "profit_cny": 1995.10},
	{"id": 2, "ledger_id": 1, "account_id": 2, "code": "AAPL", "name": "", "currency": "USD",
	 "cost_cny": 7000, "market_value_cny": 6500.25}
]`

// newTestServer serves a fake backend. Envelope selects the response flavour.
func newTestServer(t *testing.T, envelope bool) *httptest.Server {
	t.Helper()
	reply := func(w http.ResponseWriter, status int, key, raw string) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		if envelope {
			fmt.Fprintf(w, `{"success": true, "data": {%q: %s}}`, key, raw)
			return
		}
		fmt.Fprintf(w, `{%q: %s}`, key, raw)
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/health", func(w http.ResponseWriter, r *http.Request) {
		reply(w, 200, "status", `"ok"`)
	})
	mux.HandleFunc("POST /api/auth/login", func(w http.ResponseWriter, r *http.Request) {
		var body map[string]string
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Errorf("login body: %v", err)
		}
		if body["password"] != "secret" {
			w.WriteHeader(http.StatusUnauthorized)
			fmt.Fprint(w, `{"error": "invalid credentials"}`)
			return
		}
		fmt.Fprintf(w, `{"success": true, "username": %q, "name": "Ann", "roles": ["admin"]}`, body["username"])
	})
	mux.HandleFunc("GET /api/ledgers", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("username") == "" {
			w.WriteHeader(http.StatusBadRequest)
			fmt.Fprint(w, `{"error": "username required"}`)
			return
		}
		reply(w, 200, "ledgers", `[{"id": 1, "name": "Main", "cost_method": "FIFO", "owner_username": "ann"}]`)
	})
	mux.HandleFunc("GET /api/accounts", func(w http.ResponseWriter, r *http.Request) {
		reply(w, 200, "accounts", `[{"id": 2, "ledger_id": 1, "name": "Broker", "type": "stock", "currency": "CNY"}]`)
	})
	mux.HandleFunc("GET /api/positions", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("ledger_id") != "1" {
			reply(w, 200, "positions", `[]`)
			return
		}
		reply(w, 200, "positions", positionsJSON)
	})
	mux.HandleFunc("GET /api/portfolio/stats", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("account_id") == "99" {
			w.WriteHeader(http.StatusInternalServerError)
			fmt.Fprint(w, `{"error": "no such account"}`)
			return
		}
		reply(w, 200, "stats", `{"total_value_cny": 23500.35, "total_cost_cny": 22005, "profit_rate": 6.79, "position_count": 2}`)
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestClient(t *testing.T) {
	for _, envelope := range []bool{false, true} {
		t.Run(fmt.Sprintf("envelope=%v", envelope), func(t *testing.T) {
			srv := newTestServer(t, envelope)
			c, err := New(srv.URL + "/")
			if err != nil {
				t.Fatalf("New() error = %v", err)
			}
			ctx := context.Background()

			if err := c.Health(ctx); err != nil {
				t.Errorf("Health() error = %v", err)
			}

			u, err := c.Login(ctx, "ann", "secret")
			if err != nil {
				t.Fatalf("Login() error = %v", err)
			}
			if u.Username != "ann" || u.Name != "Ann" || len(u.Roles) != 1 {
				t.Errorf("Login() = %+v", u)
			}

			ledgers, err := c.Ledgers(ctx, "ann")
			if err != nil || len(ledgers) != 1 || ledgers[0].Name != "Main" || ledgers[0].CostMethod != "FIFO" {
				t.Errorf("Ledgers() = %+v, %v", ledgers, err)
			}

			accounts, err := c.Accounts(ctx, 1)
			if err != nil || len(accounts) != 1 || accounts[0].LedgerID != 1 {
				t.Errorf("Accounts() = %+v, %v", accounts, err)
			}

			positions, err := c.Positions(ctx, 1, 0)
			if err != nil {
				t.Fatalf("Positions() error = %v", err)
			}
			if len(positions) != 2 {
				t.Fatalf("Positions() = %d positions, want 2", len(positions))
			}
			if want := decimal.RequireFromString("17000.10"); !positions[0].MarketValueCNY.Equal(want) {
				t.Errorf("MarketValueCNY = %v, want %v", positions[0].MarketValueCNY, want)
			}
			if positions[0].Category != "" || positions[1].Label() != "AAPL" {
				t.Errorf("Positions() = %+v", positions)
			}

			empty, err := c.Positions(ctx, 7, 0)
			if err != nil || len(empty) != 0 {
				t.Errorf("Positions(7) = %v, %v, want none", empty, err)
			}

			stats, err := c.Stats(ctx, 1, 0)
			if err != nil || stats.PositionCount != 2 || !stats.TotalValueCNY.Equal(decimal.RequireFromString("23500.35")) {
				t.Errorf("Stats() = %+v, %v", stats, err)
			}
		})
	}
}

func TestClient_Errors(t *testing.T) {
	srv := newTestServer(t, false)
	c, _ := New(srv.URL)
	ctx := context.Background()

	testCases := []struct {
		name       string
		call       func() error
		wantStatus int
		wantMsg    string
	}{
		{
			name:       "bad password",
			call:       func() error { _, err := c.Login(ctx, "ann", "wrong"); return err },
			wantStatus: http.StatusUnauthorized,
			wantMsg:    "invalid credentials",
		},
		{
			name:       "missing parameter",
			call:       func() error { _, err := c.Ledgers(ctx, ""); return err },
			wantStatus: http.StatusBadRequest,
			wantMsg:    "username required",
		},
		{
			name:       "server failure",
			call:       func() error { _, err := c.Stats(ctx, 1, 99); return err },
			wantStatus: http.StatusInternalServerError,
			wantMsg:    "no such account",
		},
		{
			name:       "not found",
			call:       func() error { _, err := c.do(ctx, http.MethodGet, "/api/nowhere", nil, nil); return err },
			wantStatus: http.StatusNotFound,
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.call()
			var apiErr *APIError
			if !errors.As(err, &apiErr) {
				t.Fatalf("error = %v, want an *APIError", err)
			}
			if apiErr.Status != tc.wantStatus || apiErr.Message != tc.wantMsg {
				t.Errorf("error = %+v, want %d %q", apiErr, tc.wantStatus, tc.wantMsg)
			}
		})
	}
}

func TestClient_Canceled(t *testing.T) {
	srv := newTestServer(t, false)
	c, _ := New(srv.URL)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := c.Positions(ctx, 1, 0); !errors.Is(err, context.Canceled) {
		t.Errorf("Positions() error = %v, want context.Canceled", err)
	}
}

func TestNew_InvalidAddress(t *testing.T) {
	for _, addr := range []string{"", "localhost:5000", "ftp://host", "http://a b"} {
		if _, err := New(addr); err == nil {
			t.Errorf("New(%q) succeeded, want an error", addr)
		}
	}
}
