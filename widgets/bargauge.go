package widgets

import (
	"fmt"

	"git.sr.ht/~rockorager/vaxis"
	"git.sr.ht/~rockorager/vaxis/vxfw"
)

// BarGauge is a horizontal percentage gauge.
//
//	Sanders            [████████████░░░░░░░░]  61.3%  212 votes
type BarGauge struct {
	Label      string
	LabelWidth int     // label column width; 0 sizes it to the label
	Value      float64 // 0.0–100.0
	Suffix     string  // dim text after the percentage
	BarWidth   int     // cells between the brackets
	LabelStyle vaxis.Style
}

const (
	barFilled = '█' // U+2588
	barEmpty  = '░' // U+2591
)

// AgreementColor returns the bar color for an agreement percentage.
func AgreementColor(pct float64) vaxis.Color {
	switch {
	case pct >= 80:
		return vaxis.IndexColor(2) // green
	case pct >= 50:
		return vaxis.IndexColor(3) // yellow
	default:
		return vaxis.IndexColor(1) // red
	}
}

// Clamp limits v to 0–100.
func Clamp(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}

// Draw renders the gauge as a single row.
func (bg *BarGauge) Draw(ctx vxfw.DrawContext) (vxfw.Surface, error) {
	s := vxfw.NewSurface(ctx.Max.Width, 1, bg)
	col := uint16(0)
	write := func(text string, style vaxis.Style) {
		for _, ch := range ctx.Characters(text) {
			if col+uint16(ch.Width) > ctx.Max.Width {
				return
			}
			s.WriteCell(col, 0, vaxis.Cell{Character: ch, Style: style})
			col += uint16(ch.Width)
		}
	}

	labelWidth := bg.LabelWidth
	if labelWidth == 0 {
		labelWidth = len([]rune(bg.Label))
	}
	label := []rune(bg.Label)
	if len(label) > labelWidth {
		label = label[:labelWidth]
	}
	write(fmt.Sprintf("%-*s ", labelWidth, string(label)), bg.LabelStyle)
	write("[", vaxis.Style{})

	v := Clamp(bg.Value)
	filled := int(v / 100 * float64(bg.BarWidth))
	fillStyle := vaxis.Style{Foreground: AgreementColor(v)}
	emptyStyle := vaxis.Style{Foreground: vaxis.IndexColor(8)}
	for i := 0; i < bg.BarWidth; i++ {
		if i < filled {
			write(string(barFilled), fillStyle)
		} else {
			write(string(barEmpty), emptyStyle)
		}
	}

	write(fmt.Sprintf("] %5.1f%%", v), vaxis.Style{})
	if bg.Suffix != "" {
		write("  "+bg.Suffix, vaxis.Style{Attribute: vaxis.AttrDim})
	}
	return s, nil
}
