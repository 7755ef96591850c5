// Package tableextract recovers tabular structure from positioned page
// words. Column boundaries are inferred from the horizontal gaps that
// repeat across rows, so no ruling lines are required.
package tableextract

import (
	"sort"
	"strings"

	"github.com/akpradhn/nitiArthik/internal/dateutils"
	"github.com/akpradhn/nitiArthik/internal/logging"
	"github.com/akpradhn/nitiArthik/internal/models"
	"github.com/akpradhn/nitiArthik/internal/pdfext"
)

const (
	// rowTolerance matches the baseline tolerance used during word assembly.
	rowTolerance = 3.0

	// bucketWidth is the histogram resolution, in points, for locating
	// the vertical whitespace channels that separate columns.
	bucketWidth = 20.0

	// minColumns is the narrowest word grid still treated as a table.
	minColumns = 2

	// minRows filters out stray multi-column text such as address blocks.
	minRows = 2
)

// Extractor reconstructs row groups from page words.
type Extractor struct {
	log logging.Logger
}

// NewExtractor returns an Extractor logging through the given logger.
func NewExtractor(log logging.Logger) *Extractor {
	if log == nil {
		log = logging.NewLogrusAdapter("info", "text")
	}
	return &Extractor{log: log}
}

// RowGroups detects the tables on one page. Pages without tabular content
// yield an empty slice, never an error.
func (e *Extractor) RowGroups(page pdfext.Page) []models.RowGroup {
	rows := groupWordRows(page.Words)

	var groups []models.RowGroup
	for _, block := range splitBlocks(rows) {
		boundaries := columnBoundaries(block)
		if len(boundaries)+1 < minColumns {
			continue
		}

		cells := make([][]string, 0, len(block))
		for _, row := range block {
			cells = append(cells, splitRow(row, boundaries))
		}
		cells = mergeContinuations(cells)

		if len(cells) < minRows {
			continue
		}
		groups = append(groups, models.RowGroup{Page: page.Number, Rows: cells})
	}

	e.log.Debug("extracted row groups",
		logging.Field{Key: "page", Value: page.Number},
		logging.Field{Key: "groups", Value: len(groups)})

	return groups
}

// groupWordRows buckets words by baseline, top row first.
func groupWordRows(words []pdfext.Word) [][]pdfext.Word {
	if len(words) == 0 {
		return nil
	}

	sorted := make([]pdfext.Word, len(words))
	copy(sorted, words)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Y != sorted[j].Y {
			return sorted[i].Y > sorted[j].Y
		}
		return sorted[i].X < sorted[j].X
	})

	var rows [][]pdfext.Word
	current := []pdfext.Word{sorted[0]}
	rowY := sorted[0].Y

	for _, w := range sorted[1:] {
		if rowY-w.Y > rowTolerance {
			rows = append(rows, current)
			current = nil
			rowY = w.Y
		}
		current = append(current, w)
	}
	return append(rows, current)
}

// splitBlocks cuts the row sequence wherever the vertical gap jumps well
// above the typical line spacing, separating distinct tables and headers
// from the transaction grid.
func splitBlocks(rows [][]pdfext.Word) [][][]pdfext.Word {
	if len(rows) == 0 {
		return nil
	}

	spacings := make([]float64, 0, len(rows)-1)
	for i := 1; i < len(rows); i++ {
		spacings = append(spacings, rows[i-1][0].Y-rows[i][0].Y)
	}
	typical := median(spacings)
	if typical <= 0 {
		typical = rowTolerance
	}

	var blocks [][][]pdfext.Word
	current := [][]pdfext.Word{rows[0]}
	for i := 1; i < len(rows); i++ {
		if rows[i-1][0].Y-rows[i][0].Y > typical*2.5 {
			blocks = append(blocks, current)
			current = nil
		}
		current = append(current, rows[i])
	}
	return append(blocks, current)
}

func median(vals []float64) float64 {
	if len(vals) == 0 {
		return 0
	}
	sorted := make([]float64, len(vals))
	copy(sorted, vals)
	sort.Float64s(sorted)
	return sorted[len(sorted)/2]
}

// columnBoundaries finds the X positions of the whitespace channels that
// run vertically through the block. The page width is divided into
// fixed-size buckets; a bucket qualifies when it falls inside an
// inter-word gap in at least max(3, 75% of rows) rows, capped at the row
// count so a header plus a single transaction still yields columns, and
// adjacent qualifying buckets collapse into a single boundary. Requiring
// near-total coverage keeps a sparsely filled column (empty debit or
// credit cells) from bridging two real columns into one.
func columnBoundaries(rows [][]pdfext.Word) []float64 {
	minX, maxX := rowExtent(rows)
	counts := make(map[int]int)

	for _, row := range rows {
		start := minX
		mark := func(from, to float64) {
			for b := int(from / bucketWidth); b <= int(to/bucketWidth); b++ {
				center := float64(b)*bucketWidth + bucketWidth/2
				if center >= from && center < to {
					counts[b]++
				}
			}
		}
		for _, w := range row {
			if w.X > start {
				mark(start, w.X)
			}
			if end := w.X + w.W; end > start {
				start = end
			}
		}
		if maxX > start {
			mark(start, maxX)
		}
	}

	threshold := (len(rows)*3 + 3) / 4
	if threshold < 3 {
		threshold = 3
	}
	if threshold > len(rows) {
		threshold = len(rows)
	}

	var qualifying []int
	for b, n := range counts {
		if n >= threshold {
			qualifying = append(qualifying, b)
		}
	}
	sort.Ints(qualifying)

	var boundaries []float64
	for i := 0; i < len(qualifying); {
		j := i
		for j+1 < len(qualifying) && qualifying[j+1] == qualifying[j]+1 {
			j++
		}
		mid := float64(qualifying[i]+qualifying[j])/2*bucketWidth + bucketWidth/2
		boundaries = append(boundaries, mid)
		i = j + 1
	}
	return boundaries
}

func rowExtent(rows [][]pdfext.Word) (minX, maxX float64) {
	first := true
	for _, row := range rows {
		for _, w := range row {
			if first || w.X < minX {
				minX = w.X
			}
			if end := w.X + w.W; first || end > maxX {
				maxX = end
			}
			first = false
		}
	}
	return minX, maxX
}

// splitRow assigns each word of a row to the column its left edge falls
// in, joining multi-word cells with single spaces.
func splitRow(row []pdfext.Word, boundaries []float64) []string {
	cells := make([]string, len(boundaries)+1)
	for _, w := range row {
		col := sort.SearchFloat64s(boundaries, w.X)
		if cells[col] == "" {
			cells[col] = w.Text
		} else {
			cells[col] += " " + w.Text
		}
	}
	for i := range cells {
		cells[i] = strings.TrimSpace(cells[i])
	}
	return cells
}

// mergeContinuations folds wrapped description lines into the row above.
// A continuation row has an empty first cell and carries no date anywhere,
// which distinguishes it from a genuine transaction row.
func mergeContinuations(rows [][]string) [][]string {
	var out [][]string
	for _, row := range rows {
		if len(out) > 0 && isContinuation(row) {
			prev := out[len(out)-1]
			for i, cell := range row {
				if cell == "" || i >= len(prev) {
					continue
				}
				if prev[i] == "" {
					prev[i] = cell
				} else {
					prev[i] += " " + cell
				}
			}
			continue
		}
		out = append(out, row)
	}
	return out
}

func isContinuation(row []string) bool {
	if len(row) == 0 || row[0] != "" {
		return false
	}
	for _, cell := range row {
		if dateutils.ContainsDate(cell) {
			return false
		}
	}
	return true
}
