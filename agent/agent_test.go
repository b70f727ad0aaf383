package agent

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/etnz/pcschart/client"
	"github.com/shopspring/decimal"
	"google.golang.org/genai"
)

type fakePortfolio struct {
	positions []client.Position
	stats     client.Stats
	err       error
}

func (f *fakePortfolio) Positions(context.Context) ([]client.Position, error) {
	return f.positions, f.err
}

func (f *fakePortfolio) Stats(context.Context) (client.Stats, error) { return f.stats, f.err }

func TestPortfolioTools(t *testing.T) {
	p := &fakePortfolio{
		positions: []client.Position{
			{Code: "600519", Name: "Moutai", MarketValueCNY: decimal.NewFromInt(300), CostCNY: decimal.NewFromInt(200)},
			{Code: "AAPL", MarketValueCNY: decimal.NewFromInt(100), CostCNY: decimal.NewFromInt(150)},
		},
		stats: client.Stats{PositionCount: 2},
	}
	lib := NewLibrary(PortfolioTools(p))

	testCases := []struct {
		function string
		want     []string
	}{
		{"Positions", []string{"| 600519 | Moutai |", "2 positions"}},
		{"Allocation", []string{"# Allocation", "75.00%", "25.00%"}},
		{"Profit", []string{"# Profit", "| AAPL |"}},
		{"Stats", []string{"| Positions | 2 |"}},
	}
	for _, tc := range testCases {
		t.Run(tc.function, func(t *testing.T) {
			resp := lib(context.Background(), &genai.FunctionCall{ID: "1", Name: tc.function})
			if resp.ID != "1" || resp.Name != tc.function {
				t.Errorf("response = %+v, want id 1 and name %s", resp, tc.function)
			}
			out, ok := resp.Response["output"].(string)
			if !ok {
				t.Fatalf("response = %v, want an output", resp.Response)
			}
			for _, w := range tc.want {
				if !strings.Contains(out, w) {
					t.Errorf("%s output = %q, want it to contain %q", tc.function, out, w)
				}
			}
		})
	}
}

func TestPortfolioTools_Error(t *testing.T) {
	lib := NewLibrary(PortfolioTools(&fakePortfolio{err: client.ErrNoLedger}))
	resp := lib(context.Background(), &genai.FunctionCall{Name: "Stats"})
	if got := resp.Response["error"]; got != client.ErrNoLedger.Error() {
		t.Errorf("error = %v, want %q", got, client.ErrNoLedger.Error())
	}
}

func TestLibrary_UnknownFunction(t *testing.T) {
	lib := NewLibrary(PortfolioTools(&fakePortfolio{}))
	resp := lib(context.Background(), &genai.FunctionCall{ID: "7", Name: "Transfer"})
	if resp.ID != "7" || resp.Response["error"] != "unknown function Transfer" {
		t.Errorf("response = %+v", resp)
	}
}

func TestNewDeclaration(t *testing.T) {
	analyst := NewAnalyst(DefaultModel, &fakePortfolio{})
	decls := analyst.Config.Tools[0].FunctionDeclarations
	var names []string
	for _, d := range decls {
		names = append(names, d.Name)
	}
	if got := strings.Join(names, ","); got != "Positions,Allocation,Profit,Stats" {
		t.Errorf("analyst tools = %s", got)
	}

	f := newFacilitator(DefaultModel, analyst, NewMarketWatcher(DefaultModel))
	decls = f.Config.Tools[0].FunctionDeclarations
	if len(decls) != 2 || decls[0].Name != "Analyst" || decls[0].Parameters.Required[0] != "question" {
		t.Errorf("facilitator tools = %+v", decls)
	}
}

func TestExpert_NotStarted(t *testing.T) {
	e := NewMarketWatcher(DefaultModel)
	if _, err := e.Ask(context.Background(), &genai.Part{Text: "hello"}); err == nil {
		t.Error("Ask() on a closed chat succeeded")
	}

	resp := e.Call(context.Background(), "1", map[string]any{"question": 42})
	if _, ok := resp.Response["error"]; !ok {
		t.Errorf("Call() with an invalid question = %v, want an error", resp.Response)
	}
}

func TestAgent_Next(t *testing.T) {
	var out bytes.Buffer
	a := New(&out, strings.NewReader("how much?\n\nlast"), DefaultModel)
	prompts := []string{"  first  "}

	var got []string
	for {
		input, err := a.next(&prompts)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			t.Fatalf("next() error = %v", err)
		}
		got = append(got, input)
	}
	if want := "first|how much?||last"; strings.Join(got, "|") != want {
		t.Errorf("inputs = %q, want %q", strings.Join(got, "|"), want)
	}
	if !strings.HasPrefix(out.String(), prompt+"first\n") {
		t.Errorf("output = %q, want the echoed prompt", out.String())
	}
}
