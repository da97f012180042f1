package player

import (
	"bufio"
	"context"
	"fmt"
	"io"

	"github.com/rocketscienceinc/gomoku-backend/internal/entity"
)

// Human reads moves from an interactive stream in game notation, e.g. "H8".
type Human struct {
	reader *bufio.Reader
	writer io.Writer
}

func NewHuman(in io.Reader, out io.Writer) *Human {
	return &Human{
		reader: bufio.NewReader(in),
		writer: out,
	}
}

func (that *Human) Propose(_ context.Context, game *entity.Game, mark string) (entity.Proposal, error) {
	fmt.Fprintf(that.writer, "\n%s\n", game.Board.String())
	fmt.Fprintf(that.writer, "%s (%s) to move, enter coordinate (e.g. H8): ", entity.ColorName(mark), mark)

	line, err := that.reader.ReadString('\n')
	if err != nil {
		return entity.Proposal{}, fmt.Errorf("failed to read move: %w", err)
	}

	coord, err := entity.ParseCoordinate(line)
	if err != nil {
		return entity.Proposal{}, err
	}

	return entity.Proposal{Column: coord.Column, Row: coord.Row}, nil
}
