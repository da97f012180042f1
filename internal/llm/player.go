package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/rocketscienceinc/gomoku-backend/internal/apperror"
	"github.com/rocketscienceinc/gomoku-backend/internal/entity"
)

const placeStoneFunction = "place_stone"

// placeStoneSchema is the function-calling schema the model must answer with.
// Column and row are constrained to the board's coordinate system.
var placeStoneSchema = json.RawMessage(`{
	"type": "object",
	"properties": {
		"column": {
			"type": "string",
			"description": "Column letter (A-O)",
			"enum": ["A","B","C","D","E","F","G","H","I","J","K","L","M","N","O"]
		},
		"row": {
			"type": "integer",
			"description": "Row number (1-15)",
			"minimum": 1,
			"maximum": 15
		}
	},
	"required": ["column", "row"]
}`)

// Player is a model-backed move source. It sends the rendered board to an
// OpenAI-compatible endpoint and reads the move back from a forced
// place_stone function call. Returned proposals are raw and unvalidated.
type Player struct {
	logger *slog.Logger

	client      *Client
	model       string
	displayName string
}

func NewPlayer(logger *slog.Logger, client *Client, model, displayName string) *Player {
	return &Player{
		logger: logger.With("component", "llm-player", "model", model),

		client:      client,
		model:       model,
		displayName: displayName,
	}
}

func (that *Player) Propose(ctx context.Context, game *entity.Game, mark string) (entity.Proposal, error) {
	request := &ChatRequest{
		Model: that.model,
		Messages: []Message{
			{Role: "system", Content: systemPrompt(mark)},
			{Role: "user", Content: boardMessage(game, mark)},
		},
		Tools: []Tool{
			{
				Type: "function",
				Function: Function{
					Name:        placeStoneFunction,
					Description: "Place a stone on the Gomoku board at specified coordinates",
					Parameters:  placeStoneSchema,
				},
			},
		},
		ToolChoice: ForceTool(placeStoneFunction),
	}

	response, err := that.client.CreateChatCompletion(ctx, request)
	if err != nil {
		return entity.Proposal{}, fmt.Errorf("failed to get move from model: %w", err)
	}

	proposal, err := parseProposal(response)
	if err != nil {
		return entity.Proposal{}, err
	}

	that.logger.Debug("model proposed move", "player", mark, "move", proposal.String())

	return proposal, nil
}

func parseProposal(response *ChatResponse) (entity.Proposal, error) {
	message := response.Choices[0].Message
	if len(message.ToolCalls) == 0 {
		return entity.Proposal{}, fmt.Errorf("%w: no tool call in completion", apperror.ErrMalformedProposal)
	}

	call := message.ToolCalls[0]
	if call.Function.Name != placeStoneFunction {
		return entity.Proposal{}, fmt.Errorf("%w: unexpected function %q", apperror.ErrMalformedProposal, call.Function.Name)
	}

	var proposal entity.Proposal
	if err := json.Unmarshal([]byte(call.Function.Arguments), &proposal); err != nil {
		return entity.Proposal{}, fmt.Errorf("%w: %v", apperror.ErrMalformedProposal, err)
	}

	return proposal, nil
}

func systemPrompt(mark string) string {
	colorName := entity.ColorName(mark)
	opponentName := entity.ColorName(entity.OpponentOf(mark))

	return fmt.Sprintf(`You are playing Gomoku (Five-in-a-Row) as %s stones.

RULES:
- The board is 15x15 with coordinates A-O (columns) and 1-15 (rows)
- Goal: Get 5 of your stones in a row (horizontal, vertical, or diagonal)
- You play %s stones ('%s'), opponent plays %s stones ('%s')
- '.' represents empty spaces

IMPORTANT MOVE RULES:
- You can ONLY place stones on empty positions marked with '.'
- You CANNOT place stones on positions already occupied by 'B' or 'W'

Always use the place_stone function to make your move.`,
		colorName, colorName, mark, opponentName, entity.OpponentOf(mark))
}

func boardMessage(game *entity.Game, mark string) string {
	message := fmt.Sprintf("Current board state:\n%s\n\n", game.Board.String())

	if len(game.Moves) > 0 {
		lastMove := game.Moves[len(game.Moves)-1]
		message += fmt.Sprintf("Last move: %s played at %s\n", entity.ColorName(lastMove.Player), lastMove.Coordinate())
	} else {
		message += "Board is empty. You have the first move.\n"
	}

	message += fmt.Sprintf("\nYou are playing %s stones. Make your move using the place_stone function.", mark)

	return message
}
