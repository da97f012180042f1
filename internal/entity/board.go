package entity

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/rocketscienceinc/gomoku-backend/internal/apperror"
)

const (
	BoardSize = 15

	// Columns maps letters to indices: A is column 0, O is column 14.
	Columns = "ABCDEFGHIJKLMNO"
)

// Coordinate is a board position in game notation: column letter A-O, row 1-15.
type Coordinate struct {
	Column string `json:"column"`
	Row    int    `json:"row"`
}

func (that Coordinate) String() string {
	return fmt.Sprintf("%s%d", that.Column, that.Row)
}

// Indices converts the coordinate to zero-based (row, column) array indices.
func (that Coordinate) Indices() (int, int, error) {
	colIdx := strings.Index(Columns, that.Column)
	if len(that.Column) != 1 || colIdx < 0 {
		return 0, 0, fmt.Errorf("%w: column %q", apperror.ErrOutOfBounds, that.Column)
	}

	if that.Row < 1 || that.Row > BoardSize {
		return 0, 0, fmt.Errorf("%w: row %d", apperror.ErrOutOfBounds, that.Row)
	}

	return that.Row - 1, colIdx, nil
}

// CoordinateAt is the inverse of Indices.
func CoordinateAt(rowIdx, colIdx int) Coordinate {
	return Coordinate{Column: string(Columns[colIdx]), Row: rowIdx + 1}
}

// ParseCoordinate parses game notation like "H8" into a Coordinate.
func ParseCoordinate(raw string) (Coordinate, error) {
	raw = strings.TrimSpace(raw)
	if len(raw) < 2 {
		return Coordinate{}, fmt.Errorf("%w: %q", apperror.ErrMalformedProposal, raw)
	}

	row, err := strconv.Atoi(raw[1:])
	if err != nil {
		return Coordinate{}, fmt.Errorf("%w: %q", apperror.ErrMalformedProposal, raw)
	}

	return Coordinate{Column: strings.ToUpper(raw[:1]), Row: row}, nil
}

// Board is a 15x15 grid of cells indexed [row][column], row 0 holds row 1.
// A cell is EmptyCell, PlayerBlack or PlayerWhite. Stones are never removed
// or overwritten once placed.
type Board [BoardSize][BoardSize]string

// Place puts a stone of the given color on the board.
func (that *Board) Place(coord Coordinate, stone string) error {
	rowIdx, colIdx, err := coord.Indices()
	if err != nil {
		return err
	}

	if that[rowIdx][colIdx] != EmptyCell {
		return fmt.Errorf("%w: %s", apperror.ErrCellOccupied, coord)
	}

	that[rowIdx][colIdx] = stone

	return nil
}

// Get returns the cell state at the given coordinate.
func (that *Board) Get(coord Coordinate) (string, error) {
	rowIdx, colIdx, err := coord.Indices()
	if err != nil {
		return "", err
	}

	return that[rowIdx][colIdx], nil
}

// At returns the cell state at zero-based indices without bounds checking.
func (that *Board) At(rowIdx, colIdx int) string {
	return that[rowIdx][colIdx]
}

func (that *Board) IsFull() bool {
	return that.StoneCount() == BoardSize*BoardSize
}

func (that *Board) StoneCount() int {
	count := 0
	for rowIdx := range that {
		for colIdx := range that[rowIdx] {
			if that[rowIdx][colIdx] != EmptyCell {
				count++
			}
		}
	}

	return count
}

// String renders the board with row 15 on top and a column header, the way
// it is shown to players and models.
func (that *Board) String() string {
	var builder strings.Builder

	for row := BoardSize; row >= 1; row-- {
		builder.WriteString(fmt.Sprintf("%2d ", row))
		for colIdx := range Columns {
			cell := that[row-1][colIdx]
			if cell == EmptyCell {
				cell = "."
			}
			builder.WriteString(cell)
			if colIdx < len(Columns)-1 {
				builder.WriteString(" ")
			}
		}
		builder.WriteString("\n")
	}

	builder.WriteString("   " + strings.Join(strings.Split(Columns, ""), " "))

	return builder.String()
}
