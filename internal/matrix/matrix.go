// Package matrix buckets risk records into the 5x5 likelihood/impact grid.
package matrix

import (
	"fmt"

	"github.com/riskreg/riskreg/internal/risk"
)

// Position addresses one cell of the grid.
type Position struct {
	Likelihood int `json:"likelihood"`
	Impact     int `json:"impact"`
}

// Key renders the position as "<likelihood>-<impact>".
func (p Position) Key() string {
	return fmt.Sprintf("%d-%d", p.Likelihood, p.Impact)
}

// Cell holds the assets assessed at one position. Level follows from the position alone,
// so empty cells still carry one.
type Cell struct {
	Position
	Score   int        `json:"score"`
	Level   risk.Level `json:"level"`
	Members []string   `json:"members"`
}

// Count returns the number of records in the cell.
func (c Cell) Count() int {
	return len(c.Members)
}

// Matrix maps every position of the grid to its cell. A built Matrix always has 25 entries.
type Matrix map[Position]Cell

// Positions lists all grid positions, likelihood-major in ascending order.
func Positions() []Position {
	positions := make([]Position, 0, risk.MaxRating*risk.MaxRating)
	for l := risk.MinRating; l <= risk.MaxRating; l++ {
		for i := risk.MinRating; i <= risk.MaxRating; i++ {
			positions = append(positions, Position{Likelihood: l, Impact: i})
		}
	}
	return positions
}

// Build groups records by their exact likelihood/impact pair. Members keep the order of
// records. A record with an out-of-range rating panics.
func Build(records []risk.Record) Matrix {
	m := make(Matrix, risk.MaxRating*risk.MaxRating)
	for _, p := range Positions() {
		score, level := risk.Classify(p.Likelihood, p.Impact)
		m[p] = Cell{Position: p, Score: score, Level: level, Members: []string{}}
	}

	for _, r := range records {
		p := Position{Likelihood: r.Likelihood, Impact: r.Impact}
		cell, ok := m[p]
		if !ok {
			panic(fmt.Sprintf("matrix: record %d has out-of-range position %s", r.ID, p.Key()))
		}
		cell.Members = append(cell.Members, r.Asset)
		m[p] = cell
	}
	return m
}

// At returns the cell at the given ratings.
func (m Matrix) At(likelihood, impact int) Cell {
	return m[Position{Likelihood: likelihood, Impact: impact}]
}

// Total returns the number of records across all cells.
func (m Matrix) Total() int {
	total := 0
	for _, c := range m {
		total += c.Count()
	}
	return total
}

// Rows returns the cells in display order: likelihood from high to low, impact from low to high.
func (m Matrix) Rows() [][]Cell {
	rows := make([][]Cell, 0, risk.MaxRating)
	for l := risk.MaxRating; l >= risk.MinRating; l-- {
		row := make([]Cell, 0, risk.MaxRating)
		for i := risk.MinRating; i <= risk.MaxRating; i++ {
			row = append(row, m.At(l, i))
		}
		rows = append(rows, row)
	}
	return rows
}

// Cells returns all cells in Positions order.
func (m Matrix) Cells() []Cell {
	cells := make([]Cell, 0, len(m))
	for _, p := range Positions() {
		cells = append(cells, m[p])
	}
	return cells
}
