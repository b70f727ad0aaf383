package pcschart

import "math"

// Datum is a labeled value to be charted.
type Datum struct {
	Label string  `json:"label"`
	Value float64 `json:"value"`
}

// Zip pairs labels and values into data.
// Extra labels or values are ignored, non finite values count as 0.
func Zip(labels []string, values []float64) []Datum {
	n := min(len(labels), len(values))
	data := make([]Datum, n)
	for i := range n {
		data[i] = Datum{Label: labels[i], Value: finite(values[i])}
	}
	return data
}

// Unzip splits data into labels and values.
func Unzip(data []Datum) (labels []string, values []float64) {
	labels = make([]string, len(data))
	values = make([]float64, len(data))
	for i, d := range data {
		labels[i], values[i] = d.Label, d.Value
	}
	return
}

// Total returns the sum of all values.
func Total(data []Datum) float64 {
	var total float64
	for _, d := range data {
		total += finite(d.Value)
	}
	return total
}

// MaxMagnitude returns the largest absolute value, floored at 1.
func MaxMagnitude(data []Datum) float64 {
	m := 1.0
	for _, d := range data {
		m = math.Max(m, math.Abs(finite(d.Value)))
	}
	return m
}

// finite maps NaN and infinities to 0.
func finite(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}
