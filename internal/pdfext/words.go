package pdfext

import (
	"sort"
	"strings"

	"github.com/ledongthuc/pdf"
)

// rowTolerance is the maximum vertical distance, in points, between glyph
// baselines that still belong to the same text row.
const rowTolerance = 3.0

// MergeWords assembles the per-glyph fragments the PDF library emits into
// whole words. Glyphs are first grouped into rows by baseline, then fused
// left to right whenever the horizontal gap is small relative to the font
// size. The result is ordered top to bottom, left to right.
func MergeWords(texts []pdf.Text) []Word {
	rows := groupRows(texts)

	var words []Word
	for _, row := range rows {
		words = append(words, fuseRow(row)...)
	}
	return words
}

// groupRows buckets glyphs by baseline. Rows come back top-first (PDF Y
// grows upward) with glyphs sorted by X within each row.
func groupRows(texts []pdf.Text) [][]pdf.Text {
	if len(texts) == 0 {
		return nil
	}

	sorted := make([]pdf.Text, len(texts))
	copy(sorted, texts)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Y != sorted[j].Y {
			return sorted[i].Y > sorted[j].Y
		}
		return sorted[i].X < sorted[j].X
	})

	var rows [][]pdf.Text
	current := []pdf.Text{sorted[0]}
	rowY := sorted[0].Y

	for _, t := range sorted[1:] {
		if rowY-t.Y > rowTolerance {
			rows = append(rows, current)
			current = nil
			rowY = t.Y
		}
		current = append(current, t)
	}
	rows = append(rows, current)

	for _, row := range rows {
		sort.SliceStable(row, func(i, j int) bool { return row[i].X < row[j].X })
	}
	return rows
}

// fuseRow joins adjacent glyphs of one row into words. A gap wider than
// 30% of the font size (with a 1pt floor for tiny fonts) starts a new word.
func fuseRow(row []pdf.Text) []Word {
	var words []Word
	var sb strings.Builder
	var cur Word

	flush := func() {
		text := strings.TrimSpace(sb.String())
		if text != "" {
			cur.Text = text
			words = append(words, cur)
		}
		sb.Reset()
	}

	for _, t := range row {
		if strings.TrimSpace(t.S) == "" {
			flush()
			continue
		}

		gapLimit := t.FontSize * 0.3
		if gapLimit < 1.0 {
			gapLimit = 1.0
		}

		if sb.Len() == 0 {
			cur = Word{X: t.X, Y: t.Y}
		} else if t.X-(cur.X+cur.W) > gapLimit {
			flush()
			cur = Word{X: t.X, Y: t.Y}
		}

		sb.WriteString(t.S)
		cur.W = t.X + t.W - cur.X
	}
	flush()

	return words
}
