package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vancomm/minesweeper/internal/board"
	"github.com/vancomm/minesweeper/internal/command"
	"github.com/vancomm/minesweeper/internal/config"
	"github.com/vancomm/minesweeper/internal/session"
)

func TestStatusOf(t *testing.T) {
	_, schemaErr := ParseMoveDTO(url.Values{})
	require.Error(t, schemaErr)

	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, http.StatusOK},
		{"schema", schemaErr, http.StatusBadRequest},
		{"params", fmt.Errorf("%w: size 0x0", board.ErrInvalidParams), http.StatusBadRequest},
		{"range", &board.OpError{Action: board.ActionOpen, Kind: board.KindOutOfRange}, http.StatusBadRequest},
		{"action", command.ErrUnknownAction, http.StatusBadRequest},
		{"token", config.ErrInvalidToken, http.StatusUnauthorized},
		{"missing", session.ErrNotFound, http.StatusNotFound},
		{"duplicate", &board.OpError{Action: board.ActionMark, Kind: board.KindDuplicateOperation}, http.StatusConflict},
		{"failure", &board.OpError{Action: board.ActionOpen, Kind: board.KindOperationFailure}, http.StatusUnprocessableEntity},
		{"finished", session.ErrFinished, http.StatusGone},
		{"mine", &board.OpError{Action: board.ActionOpen, Kind: board.KindMineHit}, http.StatusOK},
		{"other", errors.New("boom"), http.StatusInternalServerError},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			assert.Equal(t, test.want, statusOf(test.err))
		})
	}
}

func TestMoveDTOCommand(t *testing.T) {
	dto, err := ParseMoveDTO(url.Values{"action": {"m"}, "x": {"2"}, "y": {"5"}})
	require.NoError(t, err)

	c, err := dto.Command()
	require.NoError(t, err)
	assert.Equal(t, command.Command{Action: board.ActionMark, X: 1, Y: 4}, c)

	_, err = MoveDTO{Action: "o", X: 0, Y: 1}.Command()
	assert.ErrorIs(t, err, command.ErrBadCoordinate)

	_, err = MoveDTO{Action: "flag", X: 1, Y: 1}.Command()
	assert.ErrorIs(t, err, command.ErrUnknownAction)
}

func TestParseNewGameDTO(t *testing.T) {
	dto, err := ParseNewGameDTO(url.Values{
		"height": {"9"}, "width": {"9"}, "x": {"1"}, "y": {"2"}, "extra": {"ignored"},
	})
	require.NoError(t, err)
	assert.Equal(t, 9, dto.Height)
	assert.Nil(t, dto.Probability)

	dto, err = ParseNewGameDTO(url.Values{
		"height": {"9"}, "width": {"9"}, "x": {"1"}, "y": {"2"}, "probability": {"0.25"},
	})
	require.NoError(t, err)
	require.NotNil(t, dto.Probability)
	assert.Equal(t, 0.25, *dto.Probability)

	_, err = ParseNewGameDTO(url.Values{"height": {"9"}})
	assert.Error(t, err)
}

func TestWithError(t *testing.T) {
	dto := (&GameSessionDTO{}).withError(&board.OpError{Action: board.ActionOpen, X: 1, Y: 2, Kind: board.KindMineHit})
	assert.Equal(t, "open 1:2: mine hit", dto.Error)
	assert.Equal(t, "mine_hit", dto.Kind)

	dto = (&GameSessionDTO{}).withError(nil)
	assert.Empty(t, dto.Error)
	assert.Empty(t, dto.Kind)
}
