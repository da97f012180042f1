package gomoku

import (
	"github.com/rocketscienceinc/gomoku-backend/internal/entity"
)

const winLength = 5

// axes scanned for five-in-a-row: horizontal, vertical and both diagonals,
// as (row, column) deltas.
var axes = [4][2]int{
	{0, 1},
	{1, 0},
	{1, 1},
	{1, -1},
}

// CheckWin reports the winning line created by the stone at last, or nil if
// that stone does not complete five in a row. When a run is longer than five,
// the reported window is the one containing the triggering stone, extended in
// the positive axis direction first; coordinates are ordered along the axis.
func CheckWin(board *entity.Board, last entity.Coordinate) []entity.Coordinate {
	rowIdx, colIdx, err := last.Indices()
	if err != nil {
		return nil
	}

	stone := board.At(rowIdx, colIdx)
	if stone == entity.EmptyCell {
		return nil
	}

	for _, axis := range axes {
		posCount := countRun(board, rowIdx, colIdx, axis[0], axis[1], stone)
		negCount := countRun(board, rowIdx, colIdx, -axis[0], -axis[1], stone)

		if 1+posCount+negCount < winLength {
			continue
		}

		forward := posCount
		if forward > winLength-1 {
			forward = winLength - 1
		}
		back := winLength - 1 - forward

		line := make([]entity.Coordinate, 0, winLength)
		for offset := -back; offset <= forward; offset++ {
			line = append(line, entity.CoordinateAt(rowIdx+offset*axis[0], colIdx+offset*axis[1]))
		}

		return line
	}

	return nil
}

// FindWinner scans the whole board for a five-in-a-row. It must agree with
// CheckWin anchored on the last placed stone; it exists as a fallback and as
// the reference for that equivalence.
func FindWinner(board *entity.Board) (string, []entity.Coordinate) {
	for rowIdx := 0; rowIdx < entity.BoardSize; rowIdx++ {
		for colIdx := 0; colIdx < entity.BoardSize; colIdx++ {
			stone := board.At(rowIdx, colIdx)
			if stone == entity.EmptyCell {
				continue
			}

			for _, axis := range axes {
				// only start counting at the first stone of a run
				prevRow, prevCol := rowIdx-axis[0], colIdx-axis[1]
				if inBounds(prevRow, prevCol) && board.At(prevRow, prevCol) == stone {
					continue
				}

				if 1+countRun(board, rowIdx, colIdx, axis[0], axis[1], stone) < winLength {
					continue
				}

				line := make([]entity.Coordinate, 0, winLength)
				for offset := 0; offset < winLength; offset++ {
					line = append(line, entity.CoordinateAt(rowIdx+offset*axis[0], colIdx+offset*axis[1]))
				}

				return stone, line
			}
		}
	}

	return "", nil
}

func countRun(board *entity.Board, rowIdx, colIdx, dRow, dCol int, stone string) int {
	count := 0

	row, col := rowIdx+dRow, colIdx+dCol
	for inBounds(row, col) && board.At(row, col) == stone {
		count++
		row += dRow
		col += dCol
	}

	return count
}

func inBounds(rowIdx, colIdx int) bool {
	return rowIdx >= 0 && rowIdx < entity.BoardSize && colIdx >= 0 && colIdx < entity.BoardSize
}
