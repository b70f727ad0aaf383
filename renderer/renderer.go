// Package renderer renders chart data, positions and portfolio statistics
// as markdown.
package renderer

import (
	"embed"
	"fmt"
	"io/fs"
	"strings"
	"text/template"

	"github.com/etnz/pcschart/client"
)

//go:embed *.md
var templates embed.FS

// RenderChart renders the table of a chart's data.
func RenderChart(c *Chart) string {
	partials := map[string]string{
		"chart_title": "chart_title.md",
		"chart_table": "chart_table.md",
	}
	return renderTemplate("chart", "chart.md", partials, c)
}

// RenderPositions renders the positions of a ledger or an account.
func RenderPositions(p *Positions) string {
	partials := map[string]string{
		"positions_title": "positions_title.md",
		"positions_table": "positions_table.md",
	}
	return renderTemplate("positions", "positions.md", partials, p)
}

// RenderSummary renders the portfolio statistics.
func RenderSummary(s *Summary) string {
	return renderTemplate("summary", "summary.md", nil, s)
}

// RenderLedgers lists the ledgers, marking the selected one.
func RenderLedgers(ledgers []client.Ledger, selected int) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# Ledgers\n\n")
	fmt.Fprintln(&b, "| | ID | Name | Cost Method | Description |")
	fmt.Fprintln(&b, "|:---:|---:|:---|:---|:---|")
	for _, l := range ledgers {
		fmt.Fprintf(&b, "| %s | %d | %s | %s | %s |\n",
			mark(l.ID == selected),
			l.ID,
			cell(l.Name),
			l.CostMethod,
			cell(l.Description),
		)
	}
	return b.String()
}

// RenderAccounts lists the accounts of a ledger, marking the selected one.
func RenderAccounts(accounts []client.Account, selected int) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# Accounts\n\n")
	fmt.Fprintln(&b, "| | ID | Name | Type | Currency |")
	fmt.Fprintln(&b, "|:---:|---:|:---|:---|:---|")
	for _, a := range accounts {
		fmt.Fprintf(&b, "| %s | %d | %s | %s | %s |\n",
			mark(a.ID == selected),
			a.ID,
			cell(a.Name),
			a.Type,
			a.Currency,
		)
	}
	return b.String()
}

func mark(selected bool) string {
	if selected {
		return "*"
	}
	return " "
}

// cell escapes text for a markdown table cell.
func cell(s string) string {
	s = strings.ReplaceAll(s, "|", `\|`)
	return strings.ReplaceAll(s, "\n", " ")
}

// renderTemplate is a generic utility to render a main template that depends on several partials.
func renderTemplate(templateName, mainFile string, partials map[string]string, data any) string {
	mainContent, err := fs.ReadFile(templates, mainFile)
	if err != nil {
		return fmt.Sprintf("error reading main template %q: %v", mainFile, err)
	}

	tmpl, err := template.New(templateName).Parse(string(mainContent))
	if err != nil {
		return fmt.Sprintf("error parsing main template %q: %v", mainFile, err)
	}

	for name, file := range partials {
		content, err := fs.ReadFile(templates, file)
		if err != nil {
			return fmt.Sprintf("error reading partial template %q: %v", file, err)
		}
		if _, err := tmpl.New(name).Parse(string(content)); err != nil {
			return fmt.Sprintf("error parsing partial template %q for %q: %v", file, name, err)
		}
	}

	var b strings.Builder
	if err := tmpl.ExecuteTemplate(&b, templateName, data); err != nil {
		return fmt.Sprintf("error executing template %q: %v", templateName, err)
	}
	return b.String()
}
