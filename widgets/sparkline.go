package widgets

import (
	"math"

	"git.sr.ht/~rockorager/vaxis"
	"git.sr.ht/~rockorager/vaxis/vxfw"
)

// Block characters for sparkline rendering (8 levels).
var sparkBlocks = [8]rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

// Sparkline renders a 1-row graph of a series using block characters.
// Values are scaled against the fixed range [Min, Max]; when Max <= Min the
// series' own range is used.
type Sparkline struct {
	values []float64
	Min    float64
	Max    float64
}

// NewSparkline creates a Sparkline with a fixed scale.
func NewSparkline(minV, maxV float64) *Sparkline {
	return &Sparkline{Min: minV, Max: maxV}
}

// SetValues replaces the series.
func (sl *Sparkline) SetValues(vals []float64) {
	sl.values = append(sl.values[:0], vals...)
}

// Count returns the number of values in the series.
func (sl *Sparkline) Count() int {
	return len(sl.values)
}

// resample reduces vals to at most width points by averaging buckets.
func resample(vals []float64, width int) []float64 {
	if len(vals) <= width || width <= 0 {
		return vals
	}
	out := make([]float64, width)
	for i := range out {
		lo := i * len(vals) / width
		hi := (i + 1) * len(vals) / width
		var sum float64
		for _, v := range vals[lo:hi] {
			sum += v
		}
		out[i] = sum / float64(hi-lo)
	}
	return out
}

// Level maps v to a block index 0–7 within [minV, maxV].
func Level(v, minV, maxV float64) int {
	if maxV <= minV {
		if v > 0 {
			return 4 // flat non-zero line
		}
		return 0
	}
	level := int(math.Round((v - minV) / (maxV - minV) * 7))
	return max(0, min(level, 7))
}

// Draw renders the sparkline as a single row.
func (sl *Sparkline) Draw(ctx vxfw.DrawContext) (vxfw.Surface, error) {
	s := vxfw.NewSurface(ctx.Max.Width, 1, sl)

	vals := resample(sl.values, int(ctx.Max.Width))
	if len(vals) == 0 {
		return s, nil
	}

	minV, maxV := sl.Min, sl.Max
	if maxV <= minV {
		minV, maxV = vals[0], vals[0]
		for _, v := range vals[1:] {
			minV = math.Min(minV, v)
			maxV = math.Max(maxV, v)
		}
	}

	for i, v := range vals {
		ch := sparkBlocks[Level(v, minV, maxV)]
		for _, c := range ctx.Characters(string(ch)) {
			s.WriteCell(uint16(i), 0, vaxis.Cell{
				Character: c,
				Style:     vaxis.Style{Foreground: AgreementColor(v)},
			})
		}
	}
	return s, nil
}
