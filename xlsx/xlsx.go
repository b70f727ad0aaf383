// Package xlsx exports chart data to Excel workbooks, one sheet per chart,
// with the values table and a native Excel chart drawn from it.
package xlsx

import (
	"errors"
	"fmt"
	"strings"

	"github.com/etnz/pcschart"
	"github.com/xuri/excelize/v2"
)

// Kind is the kind of chart added to a sheet.
type Kind int

const (
	Pie Kind = iota
	Donut
	Bars
)

func (k Kind) chartType() excelize.ChartType {
	switch k {
	case Donut:
		return excelize.Doughnut
	case Bars:
		return excelize.Col
	default:
		return excelize.Pie
	}
}

// Sheet is one chart to export.
type Sheet struct {
	Name     string // sheet name, sanitized to what Excel accepts
	Title    string // chart title, defaults to Name
	Kind     Kind
	HoleSize int    // donut hole in percent of the radius, 50 if 0
	Currency string // header of the values column, "Value" if empty
	Data     []pcschart.Datum
}

// Write saves sheets as a new workbook at path.
func Write(path string, sheets ...Sheet) error {
	f, err := NewWorkbook(sheets...)
	if err != nil {
		return err
	}
	defer f.Close()
	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("saving %q: %w", path, err)
	}
	return nil
}

// NewWorkbook builds a workbook containing sheets.
func NewWorkbook(sheets ...Sheet) (*excelize.File, error) {
	if len(sheets) == 0 {
		return nil, errors.New("no sheet to export")
	}
	f := excelize.NewFile()
	seen := make(map[string]bool)
	for i, s := range sheets {
		name := sheetName(s.Name, i)
		if seen[strings.ToLower(name)] {
			f.Close()
			return nil, fmt.Errorf("duplicate sheet name %q", name)
		}
		seen[strings.ToLower(name)] = true

		if i == 0 {
			if err := f.SetSheetName("Sheet1", name); err != nil {
				f.Close()
				return nil, err
			}
		} else if _, err := f.NewSheet(name); err != nil {
			f.Close()
			return nil, err
		}
		if err := writeSheet(f, name, s); err != nil {
			f.Close()
			return nil, fmt.Errorf("sheet %q: %w", name, err)
		}
	}
	return f, nil
}

// writeSheet writes the table starting at A1 and the chart next to it.
func writeSheet(f *excelize.File, name string, s Sheet) error {
	header := s.Currency
	if header == "" {
		header = "Value"
	}
	if err := f.SetSheetRow(name, "A1", &[]any{"Label", header}); err != nil {
		return err
	}
	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return err
	}
	if err := f.SetCellStyle(name, "A1", "B1", bold); err != nil {
		return err
	}

	for i, d := range s.Data {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(name, cell, &[]any{d.Label, d.Value}); err != nil {
			return err
		}
	}
	if err := f.SetColWidth(name, "A", "A", 24); err != nil {
		return err
	}
	if len(s.Data) == 0 {
		return nil
	}

	last := len(s.Data) + 1
	amounts, err := f.NewStyle(&excelize.Style{NumFmt: 4}) // #,##0.00
	if err != nil {
		return err
	}
	if err := f.SetCellStyle(name, "B2", fmt.Sprintf("B%d", last), amounts); err != nil {
		return err
	}
	return f.AddChart(name, "D2", newChart(name, last, s))
}

func newChart(name string, last int, s Sheet) *excelize.Chart {
	title := s.Title
	if title == "" {
		title = s.Name
	}
	ref := "'" + strings.ReplaceAll(name, "'", "''") + "'"
	c := &excelize.Chart{
		Type: s.Kind.chartType(),
		Series: []excelize.ChartSeries{{
			Name:       fmt.Sprintf("%s!$B$1", ref),
			Categories: fmt.Sprintf("%s!$A$2:$A$%d", ref, last),
			Values:     fmt.Sprintf("%s!$B$2:$B$%d", ref, last),
		}},
		Title:     []excelize.RichTextRun{{Text: title}},
		Dimension: excelize.ChartDimension{Width: 640, Height: 400},
		Legend:    excelize.ChartLegend{Position: "right"},
	}
	switch s.Kind {
	case Pie, Donut:
		c.PlotArea.ShowPercent = true
	case Bars:
		c.Legend.Position = "none"
		c.PlotArea.ShowVal = true
	}
	if s.Kind == Donut {
		c.HoleSize = s.HoleSize
		if c.HoleSize <= 0 || c.HoleSize > 90 {
			c.HoleSize = 50
		}
	}
	return c
}

// sheetName returns a name Excel accepts: at most 31 characters, none of : \ / ? * [ ].
func sheetName(name string, i int) string {
	name = strings.Map(func(r rune) rune {
		if strings.ContainsRune(`:\/?*[]`, r) {
			return '_'
		}
		return r
	}, strings.TrimSpace(name))
	name = strings.Trim(name, "'")
	if name == "" {
		return fmt.Sprintf("Sheet%d", i+1)
	}
	if r := []rune(name); len(r) > 31 {
		name = string(r[:31])
	}
	return name
}
