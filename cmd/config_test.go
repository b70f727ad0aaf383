package cmd

import (
	"image/color"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/etnz/pcschart"
	"github.com/etnz/pcschart/agent"
)

// isolate points the user config dir to a temp dir, and clears the
// environment overrides.
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	for _, env := range []string{EnvServer, EnvSessionFile, "PCV_WIDTH", "PCV_HEIGHT", "PCV_STYLE_DONUT_RATIO"} {
		t.Setenv(env, "") // empty variables are ignored
	}
	return dir
}

func TestLoadConfig_Defaults(t *testing.T) {
	dir := isolate(t)
	t.Chdir(t.TempDir())

	cfg, err := LoadConfig("")
	if err != nil {
		t.Fatalf("LoadConfig() failed: %v", err)
	}
	if cfg.Server != defaultServer {
		t.Errorf("Server = %q, want %q", cfg.Server, defaultServer)
	}
	if want := filepath.Join(dir, "pcv", "session.json"); cfg.SessionFile != want {
		t.Errorf("SessionFile = %q, want %q", cfg.SessionFile, want)
	}
	if cfg.Width != 640 || cfg.Height != 480 {
		t.Errorf("size = %dx%d, want 640x480", cfg.Width, cfg.Height)
	}
	if cfg.Model != agent.DefaultModel {
		t.Errorf("Model = %q, want %q", cfg.Model, agent.DefaultModel)
	}

	st, err := cfg.ChartStyle()
	if err != nil {
		t.Fatalf("ChartStyle() failed: %v", err)
	}
	def := pcschart.DefaultStyle()
	if len(st.Palette) != len(def.Palette) {
		t.Errorf("len(Palette) = %d, want %d", len(st.Palette), len(def.Palette))
	}
	for _, c := range []struct {
		name      string
		got, want any
	}{
		{"positive", hex(st.Positive), hex(def.Positive)},
		{"negative", hex(st.Negative), hex(def.Negative)},
		{"background", hex(st.Background), hex(def.Background)},
		{"foreground", hex(st.Foreground), hex(def.Foreground)},
		{"donut_ratio", st.DonutRatio, def.DonutRatio},
		{"placeholder", st.Placeholder, def.Placeholder},
	} {
		if c.got != c.want {
			t.Errorf("%s = %v, want %v", c.name, c.got, c.want)
		}
	}
	if math.Abs(st.LabelAngle-def.LabelAngle) > 1e-9 {
		t.Errorf("LabelAngle = %v, want %v", st.LabelAngle, def.LabelAngle)
	}
}

func TestLoadConfig_File(t *testing.T) {
	isolate(t)
	path := filepath.Join(t.TempDir(), "pcv.yaml")
	yaml := `server: http://pcs.example.com
width: 800
height: 600
style:
  palette: ["#ff0000", "00ff00"]
  positive: "#00ff00"
  negative: "#ff0000"
  donut_ratio: 0
  label_angle: -90
  placeholder: No data
`
	if err := os.WriteFile(path, []byte(yaml), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("PCV_HEIGHT", "700")

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig() failed: %v", err)
	}
	if cfg.Server != "http://pcs.example.com" {
		t.Errorf("Server = %q", cfg.Server)
	}
	if cfg.Width != 800 || cfg.Height != 700 {
		t.Errorf("size = %dx%d, want 800x700", cfg.Width, cfg.Height)
	}

	st, err := cfg.ChartStyle()
	if err != nil {
		t.Fatalf("ChartStyle() failed: %v", err)
	}
	if len(st.Palette) != 2 || hex(st.Palette[1]) != "#00ff00" {
		t.Errorf("Palette = %v, want 2 colors ending with #00ff00", st.Palette)
	}
	if hex(st.Positive) != "#00ff00" || hex(st.Negative) != "#ff0000" {
		t.Errorf("Positive, Negative = %s, %s", hex(st.Positive), hex(st.Negative))
	}
	if st.DonutRatio != 0 {
		t.Errorf("DonutRatio = %v, want 0", st.DonutRatio)
	}
	if math.Abs(st.LabelAngle+math.Pi/2) > 1e-9 {
		t.Errorf("LabelAngle = %v, want -π/2", st.LabelAngle)
	}
	if st.Placeholder != "No data" {
		t.Errorf("Placeholder = %q", st.Placeholder)
	}
}

func TestLoadConfig_Errors(t *testing.T) {
	isolate(t)
	tests := []struct {
		name string
		yaml string
	}{
		{"invalid yaml", "width: [800\n"},
		{"invalid size", "width: 0\n"},
		{"negative height", "height: -1\n"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "pcv.yaml")
			if err := os.WriteFile(path, []byte(tc.yaml), 0o644); err != nil {
				t.Fatal(err)
			}
			if _, err := LoadConfig(path); err == nil {
				t.Errorf("LoadConfig() succeeded, want error")
			}
		})
	}
}

func TestChartStyle_Errors(t *testing.T) {
	tests := []struct {
		name  string
		style StyleConfig
	}{
		{"palette", StyleConfig{Palette: []string{"#5470c6", "blue"}}},
		{"background", StyleConfig{Background: "#zzzzzz"}},
		{"positive", StyleConfig{Positive: "#12"}},
		{"donut ratio", StyleConfig{DonutRatio: 1}},
		{"negative donut ratio", StyleConfig{DonutRatio: -0.1}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := &Config{Width: 640, Height: 480, Style: tc.style}
			if _, err := cfg.ChartStyle(); err == nil {
				t.Errorf("ChartStyle() succeeded, want error")
			}
		})
	}
}

func TestConfigFonts(t *testing.T) {
	cfg := &Config{Font: filepath.Join(t.TempDir(), "missing.ttf")}
	if _, _, err := cfg.fonts(); err == nil {
		t.Errorf("fonts() succeeded with a missing file")
	}
	regular, bold, err := (&Config{}).fonts()
	if err != nil || regular != nil || bold != nil {
		t.Errorf("fonts() = %v, %v, %v, want nothing", regular, bold, err)
	}
}

func hex(c color.Color) string {
	h, _ := pcschart.Hex(c)
	return h
}
