package store

import (
	"fmt"
	"io"
)

// padding added to the longest column name when computing the cell width.
const gridPadding = 2

// Grid renders rows right-aligned to one uniform width derived from the
// longest column name, without external dependencies.
type Grid struct {
	writer  io.Writer
	headers []string
	mask    []bool
	rows    [][]string
}

// NewGrid creates a new grid writer.
func NewGrid(w io.Writer) *Grid {
	return &Grid{
		writer: w,
		rows:   make([][]string, 0),
	}
}

// Header sets the column names.
func (g *Grid) Header(headers []string) {
	g.headers = headers
}

// Mask marks columns whose data cells are not rendered at all. The header
// still shows every column name.
func (g *Grid) Mask(mask []bool) {
	g.mask = mask
}

// Row adds a single row.
func (g *Grid) Row(row []string) {
	g.rows = append(g.rows, row)
}

// Bulk adds multiple rows.
func (g *Grid) Bulk(rows [][]string) {
	g.rows = append(g.rows, rows...)
}

// Render outputs the formatted grid: header line first, then data lines.
func (g *Grid) Render() {
	if len(g.headers) == 0 {
		return
	}

	width := g.cellWidth()

	for _, name := range g.headers {
		fmt.Fprintf(g.writer, "%*s", width, name)
	}
	fmt.Fprintln(g.writer)

	for _, row := range g.rows {
		for i := range g.headers {
			if i < len(g.mask) && g.mask[i] {
				continue
			}
			cell := ""
			if i < len(row) {
				cell = row[i]
			}
			fmt.Fprintf(g.writer, "%*s", width, cell)
		}
		fmt.Fprintln(g.writer)
	}
}

// cellWidth returns the uniform cell width: longest column name plus
// padding.
func (g *Grid) cellWidth() int {
	max := 0
	for _, name := range g.headers {
		if len(name) > max {
			max = len(name)
		}
	}
	return max + gridPadding
}
