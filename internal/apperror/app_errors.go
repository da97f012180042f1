package apperror

import "errors"

var (
	ErrGameFinished      = errors.New("game is already finished")
	ErrNotYourTurn       = errors.New("it's not your turn")
	ErrOutOfBounds       = errors.New("coordinate is out of bounds")
	ErrCellOccupied      = errors.New("cell is already occupied")
	ErrMalformedProposal = errors.New("malformed move proposal")
	ErrUnknownGameStatus = errors.New("unknown game status")
)
