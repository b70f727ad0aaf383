package pcschart

import (
	"image/color"
	"strings"
	"testing"
)

func TestParseColor(t *testing.T) {
	testCases := []struct {
		in      string
		wantHex string
		wantErr bool
	}{
		{in: "#5470c6", wantHex: "#5470c6"},
		{in: "5470C6", wantHex: "#5470c6"},
		{in: " #fff ", wantHex: "#ffffff"},
		{in: "#zzzzzz", wantErr: true},
		{in: "", wantErr: true},
	}
	for _, tc := range testCases {
		c, err := ParseColor(tc.in)
		if (err != nil) != tc.wantErr {
			t.Errorf("ParseColor(%q) error = %v, wantErr %v", tc.in, err, tc.wantErr)
			continue
		}
		if err != nil {
			continue
		}
		if hex, alpha := Hex(c); hex != tc.wantHex || alpha != 1 {
			t.Errorf("Hex(ParseColor(%q)) = %s %v, want %s 1", tc.in, hex, alpha, tc.wantHex)
		}
	}
}

func TestParsePalette(t *testing.T) {
	if _, err := ParsePalette([]string{"#000", "nope"}); err == nil || !strings.Contains(err.Error(), "nope") {
		t.Errorf("ParsePalette() error = %v, want one naming the bad color", err)
	}
	p, err := ParsePalette(DefaultPalette)
	if err != nil || len(p) != len(DefaultPalette) {
		t.Errorf("ParsePalette(DefaultPalette) = %d colors, %v", len(p), err)
	}
}

func TestHex_Transparent(t *testing.T) {
	if hex, alpha := Hex(color.RGBA{}); hex != "#000000" || alpha != 0 {
		t.Errorf("Hex(transparent) = %s %v", hex, alpha)
	}
	if hex, alpha := Hex(nil); hex != "#000000" || alpha != 0 {
		t.Errorf("Hex(nil) = %s %v", hex, alpha)
	}
}

func TestStyle_Colors(t *testing.T) {
	st := DefaultStyle()
	if st.BarColor(0) != st.Positive || st.BarColor(-0.01) != st.Negative {
		t.Error("BarColor() must use Positive for zero and Negative below")
	}
	st.Palette = nil
	if st.SliceColor(3) != st.Foreground {
		t.Error("SliceColor() without palette must fall back to Foreground")
	}
}
