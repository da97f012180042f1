package entity

import (
	"fmt"
	"time"

	"github.com/rocketscienceinc/gomoku-backend/internal/apperror"
)

const (
	StatusFinished = "finished"
	StatusOngoing  = "ongoing"

	PlayerBlack = "B"
	PlayerWhite = "W"

	EmptyCell = ""
)

const (
	ResultWin     = "win"
	ResultDraw    = "draw"
	ResultForfeit = "forfeit"
)

// Move is a stone placement that has been validated and applied.
type Move struct {
	Number    int       `json:"move_number"`
	Player    string    `json:"player"`
	Column    string    `json:"column"`
	Row       int       `json:"row"`
	Timestamp time.Time `json:"timestamp"`
}

func (that Move) Coordinate() Coordinate {
	return Coordinate{Column: that.Column, Row: that.Row}
}

// Proposal is a raw move as returned by a move source, before validation.
type Proposal struct {
	Column string `json:"column"`
	Row    int    `json:"row"`
}

func (that Proposal) Coordinate() Coordinate {
	return Coordinate{Column: that.Column, Row: that.Row}
}

func (that Proposal) String() string {
	return fmt.Sprintf("%s%d", that.Column, that.Row)
}

// InvalidAttempt is an audit entry for a rejected proposal.
type InvalidAttempt struct {
	Player    string    `json:"player"`
	Proposal  string    `json:"proposal,omitempty"`
	Reason    string    `json:"reason"`
	Timestamp time.Time `json:"timestamp"`
}

// Game holds the full state of one match. It is mutated one validated move
// at a time and becomes read-only once Status is StatusFinished.
type Game struct {
	ID          string           `json:"id"`
	Board       Board            `json:"board"`
	Turn        string           `json:"player_turn,omitempty"`
	Status      string           `json:"status"`
	Result      string           `json:"result,omitempty"`
	Winner      string           `json:"winner,omitempty"`
	WinningLine []Coordinate     `json:"winning_line,omitempty"`
	Moves       []Move           `json:"moves"`
	Invalid     []InvalidAttempt `json:"invalid_attempts,omitempty"`
	Players     []*Player        `json:"players,omitempty"`
	StartedAt   time.Time        `json:"started_at"`

	// TurnAttempts counts failed proposals in the current turn only.
	TurnAttempts int `json:"-"`
}

func NewGame(id string) *Game {
	return &Game{
		ID:        id,
		Turn:      PlayerBlack,
		Status:    StatusOngoing,
		StartedAt: time.Now().UTC(),
	}
}

func (that *Game) IsFinished() bool {
	return that.Status == StatusFinished
}

func (that *Game) IsOngoing() bool {
	return that.Status == StatusOngoing
}

func (that *Game) ConfirmOngoingState() error {
	switch {
	case that.IsFinished():
		return apperror.ErrGameFinished
	case that.IsOngoing():
		return nil
	default:
		return fmt.Errorf("%w: %s", apperror.ErrUnknownGameStatus, that.Status)
	}
}

// RecordMove appends a validated move to the history. The stone must already
// be on the board.
func (that *Game) RecordMove(player string, coord Coordinate) {
	that.Moves = append(that.Moves, Move{
		Number:    len(that.Moves) + 1,
		Player:    player,
		Column:    coord.Column,
		Row:       coord.Row,
		Timestamp: time.Now().UTC(),
	})
}

// RecordInvalidAttempt counts one failed proposal in the current turn and
// keeps it in the audit log.
func (that *Game) RecordInvalidAttempt(player, proposal, reason string) {
	that.TurnAttempts++
	that.Invalid = append(that.Invalid, InvalidAttempt{
		Player:    player,
		Proposal:  proposal,
		Reason:    reason,
		Timestamp: time.Now().UTC(),
	})
}

// FinishWithWin seals the game with a five-in-a-row result.
func (that *Game) FinishWithWin(winner string, line []Coordinate) {
	that.Status = StatusFinished
	that.Result = ResultWin
	that.Winner = winner
	that.WinningLine = line
	that.Turn = ""
}

// FinishWithDraw seals the game with a full board and no winner.
func (that *Game) FinishWithDraw() {
	that.Status = StatusFinished
	that.Result = ResultDraw
	that.Turn = ""
}

// FinishWithForfeit seals the game against the player who exhausted the
// attempt budget; the opponent wins.
func (that *Game) FinishWithForfeit(loser string) {
	that.Status = StatusFinished
	that.Result = ResultForfeit
	that.Winner = OpponentOf(loser)
	that.Turn = ""
}

func (that *Game) PlayerByMark(mark string) *Player {
	for _, player := range that.Players {
		if player.Mark == mark {
			return player
		}
	}

	return nil
}

func OpponentOf(mark string) string {
	if mark == PlayerBlack {
		return PlayerWhite
	}
	return PlayerBlack
}

// ColorName returns the spoken name of a stone color, for logs and prompts.
func ColorName(mark string) string {
	if mark == PlayerBlack {
		return "Black"
	}
	return "White"
}
