package handlers

import (
	"fmt"

	"github.com/vancomm/minesweeper/internal/board"
	"github.com/vancomm/minesweeper/internal/command"
	"github.com/vancomm/minesweeper/internal/render"
	"github.com/vancomm/minesweeper/internal/session"
)

// Coordinates in requests are 1-indexed, as in the console game.

type NewGameDTO struct {
	Height      int      `schema:"height,required"`
	Width       int      `schema:"width,required"`
	X           int      `schema:"x,required"`
	Y           int      `schema:"y,required"`
	Probability *float64 `schema:"probability"`
}

func ParseNewGameDTO(src map[string][]string) (NewGameDTO, error) {
	var dto NewGameDTO
	err := decoder.Decode(&dto, src)
	return dto, err
}

type MoveDTO struct {
	Action string `schema:"action,required"`
	X      int    `schema:"x,required"`
	Y      int    `schema:"y,required"`
}

func ParseMoveDTO(src map[string][]string) (MoveDTO, error) {
	var dto MoveDTO
	err := decoder.Decode(&dto, src)
	return dto, err
}

func (m MoveDTO) Command() (command.Command, error) {
	action, err := command.ParseAction(m.Action)
	if err != nil {
		return command.Command{}, err
	}
	if m.X < 1 || m.Y < 1 {
		return command.Command{}, fmt.Errorf("%w: %d %d", command.ErrBadCoordinate, m.X, m.Y)
	}
	return command.Command{Action: action, X: m.X - 1, Y: m.Y - 1}, nil
}

type GameSessionDTO struct {
	GameSessionId string   `json:"game_session_id"`
	Token         string   `json:"token,omitempty"`
	Height        int      `json:"height"`
	Width         int      `json:"width"`
	Remaining     int      `json:"remaining"`
	Dead          bool     `json:"dead"`
	Won           bool     `json:"won"`
	Grid          []string `json:"grid"`
	StartedAt     int64    `json:"started_at"`
	EndedAt       *int64   `json:"ended_at,omitempty"`
	Error         string   `json:"error,omitempty"`
	Kind          string   `json:"kind,omitempty"`
}

func NewGameSessionDTO(s session.Snapshot) *GameSessionDTO {
	var endedAt *int64
	if !s.EndedAt.IsZero() {
		e := s.EndedAt.UnixMilli()
		endedAt = &e
	}
	return &GameSessionDTO{
		GameSessionId: s.ID.String(),
		Height:        s.Height,
		Width:         s.Width,
		Remaining:     s.Remaining,
		Dead:          s.Dead,
		Won:           s.Won,
		Grid:          render.Rows(s.View),
		StartedAt:     s.StartedAt.UnixMilli(),
		EndedAt:       endedAt,
	}
}

// withError attaches a move outcome to the session state.
func (dto *GameSessionDTO) withError(err error) *GameSessionDTO {
	if err != nil {
		dto.Error = err.Error()
		dto.Kind = board.KindOf(err).String()
	}
	return dto
}
