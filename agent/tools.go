package agent

import (
	"context"

	"github.com/etnz/pcschart/client"
	"github.com/etnz/pcschart/renderer"
	"google.golang.org/genai"
)

// Portfolio gives access to the selected ledger or account.
type Portfolio interface {
	Positions(ctx context.Context) ([]client.Position, error)
	Stats(ctx context.Context) (client.Stats, error)
}

// Tool is a Function without parameters returning markdown.
type Tool struct {
	Name        string
	Description string
	Output      string // description of the markdown returned
	Run         func(ctx context.Context) (string, error)
}

func (t *Tool) Declaration() *genai.FunctionDeclaration {
	return &genai.FunctionDeclaration{
		Name:        t.Name,
		Description: t.Description,
		Response: &genai.Schema{
			Type:        genai.TypeString,
			Description: t.Output,
		},
	}
}

func (t *Tool) Call(ctx context.Context, id string, _ map[string]any) *genai.FunctionResponse {
	out, err := t.Run(ctx)
	if err != nil {
		return failure(id, t.Name, err)
	}
	return success(id, t.Name, out)
}

// PortfolioTools returns the tools reading p.
func PortfolioTools(p Portfolio) []*Tool {
	cny := client.ReportingCurrency
	return []*Tool{
		{
			Name:        "Positions",
			Description: "Positions lists the open positions with their quantity, price, market value and unrealized profit.",
			Output:      "A markdown table of the positions, amounts in " + cny + ".",
			Run: func(ctx context.Context) (string, error) {
				positions, err := p.Positions(ctx)
				if err != nil {
					return "", err
				}
				return renderer.RenderPositions(renderer.NewPositions("Positions", positions)), nil
			},
		},
		{
			Name:        "Allocation",
			Description: "Allocation returns the market value of each holding and its share of the portfolio, as shown on the allocation pie chart.",
			Output:      "A markdown table of the holdings with value and share.",
			Run: func(ctx context.Context) (string, error) {
				positions, err := p.Positions(ctx)
				if err != nil {
					return "", err
				}
				return renderer.RenderChart(renderer.NewChart("Allocation", cny, client.Allocation(positions))), nil
			},
		},
		{
			Name:        "Profit",
			Description: "Profit returns the unrealized profit or loss of each holding, as shown on the profit bar chart.",
			Output:      "A markdown table of the holdings with their profit, negative for a loss.",
			Run: func(ctx context.Context) (string, error) {
				positions, err := p.Positions(ctx)
				if err != nil {
					return "", err
				}
				return renderer.RenderChart(renderer.NewChart("Profit", cny, client.Profit(positions))), nil
			},
		},
		{
			Name:        "Stats",
			Description: "Stats returns the portfolio totals: cost, market value, profit and return.",
			Output:      "A markdown table of the portfolio totals.",
			Run: func(ctx context.Context) (string, error) {
				stats, err := p.Stats(ctx)
				if err != nil {
					return "", err
				}
				return renderer.RenderSummary(renderer.NewSummary("Portfolio", stats)), nil
			},
		},
	}
}
