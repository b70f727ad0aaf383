package agent

import (
	"context"
	"fmt"

	"github.com/etnz/pcschart/renderer"
	"google.golang.org/genai"
)

// DefaultModel is the model used by the experts.
const DefaultModel = "gemini-2.5-pro"

func instruction(text string) *genai.Content {
	return &genai.Content{Parts: []*genai.Part{{Text: text}}}
}

// newFacilitator creates the expert talking to the user, who delegates to experts.
func newFacilitator(model string, experts ...*Expert) *Expert {
	return &Expert{
		Name:      "Facilitator",
		ModelName: model,
		Config: &genai.GenerateContentConfig{
			Tools: []*genai.Tool{
				{FunctionDeclarations: NewDeclaration(experts)},
			},
			SystemInstruction: instruction(`
			As a facilitator you are in charge of the conversation and solving the user's request.

			Learn about the expert's skill that you can get from the Tools to ask them questions.
			They keep context of your previous questions.

			The user is looking at the charts of their portfolio: the allocation pie and the profit bars.
			Devise a plan of questions to ask to each expert and come up with the best response to the user's request.
			Answer in markdown.
		`),
		},
		Library: NewLibrary(experts),
	}
}

// NewMarketWatcher creates an expert grounded on Google Search.
func NewMarketWatcher(model string) *Expert {
	return &Expert{
		Name: "MarketWatcher",
		Description: `This expert follows the markets, the news about companies and funds.
		Ask the MarketWatcher whenever you need recent or grounding information.`,
		ModelName: model,
		Config: &genai.GenerateContentConfig{
			Tools: []*genai.Tool{
				{GoogleSearch: &genai.GoogleSearch{}},
			},
			SystemInstruction: instruction(`
			You follow financial markets, companies and funds. You leverage Google Search to
			ground your assertions, and relate the latest news to the question.
			`),
		},
	}
}

// NewAnalyst creates the expert reading the user's portfolio through tools.
func NewAnalyst(model string, p Portfolio) *Expert {
	tools := PortfolioTools(p)
	return &Expert{
		Name: "Analyst",
		Description: `This expert reads the user's portfolio: positions, allocation, profit per holding and totals.
		Amounts are in the reporting currency (CNY).`,
		ModelName: model,
		Config: &genai.GenerateContentConfig{
			Tools: []*genai.Tool{
				{FunctionDeclarations: NewDeclaration(tools)},
			},
			SystemInstruction: instruction(`
			You are the portfolio analyst. Use the Tools to read the positions, the allocation,
			the profit per holding and the totals before answering.
			Point out concentration (a holding above a third of the portfolio) and the largest losses.
			`),
		},
		Library: NewLibrary(tools),
	}
}

// Describe asks the model for a short commentary of a chart.
func Describe(ctx context.Context, client *genai.Client, model string, chart *renderer.Chart) (string, error) {
	e := &Expert{
		Name:      "Commentator",
		ModelName: model,
		Config: &genai.GenerateContentConfig{
			SystemInstruction: instruction(`
			You comment portfolio charts in a few sentences of markdown.
			A chart is given as a markdown table of labels and values. State the dominant items,
			the balance between them, and anything unusual. Do not repeat the table.
			`),
		},
	}
	if err := e.Start(ctx, client); err != nil {
		return "", err
	}
	text, err := e.Ask(ctx, &genai.Part{Text: renderer.RenderChart(chart)})
	if err != nil {
		return "", fmt.Errorf("describing chart %q: %w", chart.Title, err)
	}
	return text, nil
}
