package widgets

import (
	"git.sr.ht/~rockorager/vaxis"
	"git.sr.ht/~rockorager/vaxis/vxfw"
)

// TableColumn defines a column in a Table.
type TableColumn struct {
	Width      int  // fixed character width
	AlignRight bool // right-align text within the column
}

// Table renders rows of text with fixed-width columns using WriteCell.
// Each row is a []string matching the Columns slice.
type Table struct {
	Columns []TableColumn
	Rows    [][]string
	Header  []string // optional header row rendered bold
	Gap     int      // spaces between columns (default 1)
	Offset  int      // index of the first data row drawn

	// CellStyle, if set, styles each data cell.
	CellStyle func(row, col int, text string) vaxis.Style
}

// WriteText writes s into surf at (col, row) within maxWidth. If
// right-aligned, text is padded on the left. Text wider than maxWidth is
// truncated.
func WriteText(surf *vxfw.Surface, col, row uint16, maxWidth int, s string, style vaxis.Style, alignRight bool) {
	chars := vaxis.Characters(s)

	displayWidth := 0
	for _, ch := range chars {
		displayWidth += ch.Width
	}

	offset := 0
	if alignRight && displayWidth < maxWidth {
		offset = maxWidth - displayWidth
	}

	pos := offset
	for _, ch := range chars {
		if pos+ch.Width > maxWidth {
			break
		}
		surf.WriteCell(col+uint16(pos), row, vaxis.Cell{
			Character: ch,
			Style:     style,
		})
		pos += ch.Width
	}
}

// VisibleRows returns how many data rows fit in height.
func (t *Table) VisibleRows(height int) int {
	if t.Header != nil {
		height--
	}
	return max(height, 0)
}

func (t *Table) drawRow(s *vxfw.Surface, row uint16, width uint16, cells []string, style func(col int, text string) vaxis.Style) {
	gap := t.Gap
	if gap == 0 {
		gap = 1
	}
	col := uint16(0)
	for i, c := range t.Columns {
		if col >= width {
			break
		}
		text := ""
		if i < len(cells) {
			text = cells[i]
		}
		w := min(c.Width, int(width-col))
		WriteText(s, col, row, w, text, style(i, text), c.AlignRight)
		col += uint16(c.Width + gap)
	}
}

// Draw renders the table header (if set) and the rows from Offset on.
func (t *Table) Draw(ctx vxfw.DrawContext) (vxfw.Surface, error) {
	offset := max(0, min(t.Offset, len(t.Rows)))
	rows := t.Rows[offset:]

	totalRows := len(rows)
	if t.Header != nil {
		totalRows++
	}
	height := uint16(min(totalRows, int(ctx.Max.Height)))

	s := vxfw.NewSurface(ctx.Max.Width, height, t)
	row := uint16(0)

	if t.Header != nil && row < height {
		bold := vaxis.Style{Attribute: vaxis.AttrBold}
		t.drawRow(&s, row, ctx.Max.Width, t.Header, func(int, string) vaxis.Style { return bold })
		row++
	}

	for i, cells := range rows {
		if row >= height {
			break
		}
		dataRow := offset + i
		t.drawRow(&s, row, ctx.Max.Width, cells, func(col int, text string) vaxis.Style {
			if t.CellStyle == nil {
				return vaxis.Style{}
			}
			return t.CellStyle(dataRow, col, text)
		})
		row++
	}

	return s, nil
}
