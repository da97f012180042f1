package player

import (
	"context"
	"errors"

	"github.com/rocketscienceinc/gomoku-backend/internal/entity"
)

var ErrScriptExhausted = errors.New("scripted move source has no moves left")

// Scripted replays a fixed sequence of proposals. It is used for replays and
// deterministic tests; proposals may be deliberately invalid.
type Scripted struct {
	proposals []entity.Proposal
	next      int
}

func NewScripted(proposals ...entity.Proposal) *Scripted {
	return &Scripted{proposals: proposals}
}

func (that *Scripted) Propose(_ context.Context, _ *entity.Game, _ string) (entity.Proposal, error) {
	if that.next >= len(that.proposals) {
		return entity.Proposal{}, ErrScriptExhausted
	}

	proposal := that.proposals[that.next]
	that.next++

	return proposal, nil
}

// Remaining reports how many scripted proposals have not been consumed.
func (that *Scripted) Remaining() int {
	return len(that.proposals) - that.next
}
