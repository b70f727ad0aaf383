package cmd

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/etnz/pcschart"
	"github.com/etnz/pcschart/client"
	"github.com/etnz/pcschart/raster"
	"github.com/etnz/pcschart/renderer"
	"github.com/etnz/pcschart/svg"
	"github.com/google/subcommands"
)

// chartKind selects the renderer.
type chartKind string

const (
	pieChart  chartKind = "pie"
	barsChart chartKind = "bars"
)

// draw renders data on s.
func (k chartKind) draw(st pcschart.Style, s pcschart.Surface, data []pcschart.Datum, title string) {
	labels, values := pcschart.Unzip(data)
	if k == pieChart {
		st.RenderPie(s, labels, values, title)
		return
	}
	st.RenderBars(s, labels, values, title)
}

// outputFlags are the flags shared by the chart commands.
type outputFlags struct {
	out    string
	width  int
	height int
	dump   bool
}

func (o *outputFlags) setFlags(f *flag.FlagSet, out string) {
	f.StringVar(&o.out, "o", out, "output file, the extension selects the format: .png or .svg")
	f.IntVar(&o.width, "width", 0, "chart width in pixels (default from config, 640)")
	f.IntVar(&o.height, "height", 0, "chart height in pixels (default from config, 480)")
	f.BoolVar(&o.dump, "dump", false, "print the drawing operations instead of writing a file")
}

// size returns the chart size, flags taking precedence over cfg.
func (o *outputFlags) size(cfg *Config) (int, int) {
	w, h := cfg.Width, cfg.Height
	if o.width > 0 {
		w = o.width
	}
	if o.height > 0 {
		h = o.height
	}
	return w, h
}

// write renders the chart to the output file, or dumps the operations to w.
func (o *outputFlags) write(cfg *Config, w io.Writer, kind chartKind, data []pcschart.Datum, title string) error {
	st, err := cfg.ChartStyle()
	if err != nil {
		return err
	}
	width, height := o.size(cfg)
	if o.dump {
		rec := pcschart.NewRecorder(float64(width), float64(height))
		kind.draw(st, rec, data, title)
		return rec.Dump(w)
	}
	return renderFile(cfg, st, o.out, width, height, kind, data, title)
}

// renderFile renders a chart into a .png or .svg file.
func renderFile(cfg *Config, st pcschart.Style, path string, width, height int, kind chartKind, data []pcschart.Datum, title string) error {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".png":
		regular, bold, err := cfg.fonts()
		if err != nil {
			return err
		}
		s, err := raster.NewWithOptions(width, height, raster.Options{Font: regular, BoldFont: bold})
		if err != nil {
			return err
		}
		kind.draw(st, s, data, title)
		return writeFile(path, s.EncodePNG)
	case ".svg":
		s := svg.New(float64(width), float64(height))
		kind.draw(st, s, data, title)
		return writeFile(path, func(w io.Writer) error {
			_, err := s.WriteTo(w)
			return err
		})
	default:
		return fmt.Errorf("unsupported output file %q, use .png or .svg", path)
	}
}

func writeFile(path string, write func(io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := write(f); err != nil {
		f.Close()
		return fmt.Errorf("writing %q: %w", path, err)
	}
	return f.Close()
}

// chartCmd draws a chart from values given on the command line or in a file.
type chartCmd struct {
	kind   chartKind
	labels string
	values string
	data   string
	title  string
	output outputFlags
}

func newPieCmd() *chartCmd  { return &chartCmd{kind: pieChart} }
func newBarsCmd() *chartCmd { return &chartCmd{kind: barsChart} }

func (c *chartCmd) Name() string { return string(c.kind) }
func (c *chartCmd) Synopsis() string {
	if c.kind == pieChart {
		return "draw a donut chart of values"
	}
	return "draw a bar chart of signed values"
}
func (c *chartCmd) Usage() string {
	return fmt.Sprintf(`pcv %[1]s [-title <title>] (-labels <a,b,c> -values <1,2,3> | -data <file.json>) [-o %[1]s.png] [-dump]

Draw a %[1]s chart. Values are given either as two comma separated lists, or as
a JSON file holding a list of {"label": ..., "value": ...} objects ("-" reads
standard input).

`, c.kind)
}

func (c *chartCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.labels, "labels", "", "comma separated labels")
	f.StringVar(&c.values, "values", "", "comma separated values")
	f.StringVar(&c.data, "data", "", "JSON file of labeled values, - for standard input")
	f.StringVar(&c.title, "title", "", "chart title")
	c.output.setFlags(f, string(c.kind)+".png")
}

func (c *chartCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() > 0 {
		return usagef("unexpected arguments %v", f.Args())
	}
	data, err := c.readData()
	if err != nil {
		return usagef("%v", err)
	}
	cfg, err := appConfig()
	if err != nil {
		return failf("loading config: %v", err)
	}
	if err := c.output.write(cfg, os.Stdout, c.kind, data, c.title); err != nil {
		return failf("drawing %s chart: %v", c.kind, err)
	}
	if !c.output.dump {
		fmt.Printf("Wrote %s\n", c.output.out)
	}
	return subcommands.ExitSuccess
}

// readData reads the values from the flags.
func (c *chartCmd) readData() ([]pcschart.Datum, error) {
	if c.data != "" {
		if c.labels != "" || c.values != "" {
			return nil, fmt.Errorf("-data cannot be combined with -labels or -values")
		}
		return readDataFile(c.data)
	}
	if c.values == "" {
		return nil, fmt.Errorf("missing -values or -data")
	}
	var labels []string
	if c.labels != "" {
		labels = strings.Split(c.labels, ",")
	}
	values, err := parseValues(c.values)
	if err != nil {
		return nil, err
	}
	if len(labels) == 0 {
		labels = make([]string, len(values))
	}
	if len(labels) != len(values) {
		log.Printf("warning: %d labels for %d values, the extra ones are ignored", len(labels), len(values))
	}
	return pcschart.Zip(labels, values), nil
}

func parseValues(s string) ([]float64, error) {
	fields := strings.Split(s, ",")
	values := make([]float64, len(fields))
	for i, field := range fields {
		v, err := strconv.ParseFloat(strings.TrimSpace(field), 64)
		if err != nil {
			return nil, fmt.Errorf("invalid value %q", field)
		}
		values[i] = v
	}
	return values, nil
}

func readDataFile(path string) ([]pcschart.Datum, error) {
	var r io.Reader = os.Stdin
	if path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		r = f
	}
	var data []pcschart.Datum
	if err := json.NewDecoder(r).Decode(&data); err != nil {
		return nil, fmt.Errorf("decoding %s: %w", path, err)
	}
	// Zip drops non finite values.
	return pcschart.Zip(pcschart.Unzip(data)), nil
}

// portfolioChartCmd draws a chart of the selected ledger or account.
type portfolioChartCmd struct {
	kind     chartKind
	name     string
	synopsis string
	data     func([]client.Position) []pcschart.Datum
	title    string
	table    bool
	output   outputFlags
}

func newAllocationCmd() *portfolioChartCmd {
	return &portfolioChartCmd{
		kind:     pieChart,
		name:     "allocation",
		synopsis: "draw the allocation donut of the portfolio",
		data:     client.Allocation,
	}
}

func newProfitCmd() *portfolioChartCmd {
	return &portfolioChartCmd{
		kind:     barsChart,
		name:     "profit",
		synopsis: "draw the profit and loss bars of the portfolio",
		data:     client.Profit,
	}
}

func (c *portfolioChartCmd) Name() string     { return c.name }
func (c *portfolioChartCmd) Synopsis() string { return c.synopsis }
func (c *portfolioChartCmd) Usage() string {
	return fmt.Sprintf(`pcv %[1]s [-title <title>] [-table] [-o %[1]s.png] [-dump]

Fetch the positions of the selected ledger or account and %[2]s.
Positions of the same security are merged, amounts are in %[3]s.

`, c.name, c.synopsis, client.ReportingCurrency)
}

func (c *portfolioChartCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.title, "title", "", "chart title (default from the selection)")
	f.BoolVar(&c.table, "table", false, "also print the values as a table")
	c.output.setFlags(f, c.name+".png")
}

// caption is the default title of the chart of p.
func (c *portfolioChartCmd) caption(p *selection) string {
	return p.title(strings.ToUpper(c.name[:1]) + c.name[1:])
}

func (c *portfolioChartCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	s, err := openSession()
	if err != nil {
		return failf("loading session: %v", err)
	}
	p, err := s.portfolio()
	if err != nil {
		return failf("%v", err)
	}
	positions, err := p.Positions(ctx)
	if err != nil {
		return failf("listing positions: %v", err)
	}

	title := c.title
	if title == "" {
		title = c.caption(p)
	}
	data := c.data(positions)
	if err := c.output.write(s.cfg, os.Stdout, c.kind, data, title); err != nil {
		return failf("drawing %s chart: %v", c.name, err)
	}
	if c.table {
		printMarkdown(renderer.RenderChart(renderer.NewChart(title, client.ReportingCurrency, data)))
	}
	if !c.output.dump {
		fmt.Printf("Wrote %s\n", c.output.out)
	}
	return subcommands.ExitSuccess
}
