package handlers

import (
	"fmt"
	"log/slog"
	"math/rand/v2"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/vancomm/minesweeper/internal/board"
	"github.com/vancomm/minesweeper/internal/command"
	"github.com/vancomm/minesweeper/internal/config"
	"github.com/vancomm/minesweeper/internal/middleware"
	"github.com/vancomm/minesweeper/internal/session"
)

type GameHandler struct {
	logger   *slog.Logger
	registry *session.Registry
	jwt      *config.JWT
	ws       *config.WebSocket
	game     *config.Game

	mu  sync.Mutex
	rnd *rand.Rand
}

func NewGameHandler(
	logger *slog.Logger,
	registry *session.Registry,
	jwt *config.JWT,
	ws *config.WebSocket,
	game *config.Game,
	rnd *rand.Rand,
) *GameHandler {
	handler := &GameHandler{
		logger:   logger,
		registry: registry,
		jwt:      jwt,
		ws:       ws,
		game:     game,
		rnd:      rnd,
	}

	return handler
}

// boardRand derives a generator for one board, since *rand.Rand is not safe
// for concurrent use.
func (g *GameHandler) boardRand() *rand.Rand {
	g.mu.Lock()
	defer g.mu.Unlock()
	return rand.New(rand.NewPCG(g.rnd.Uint64(), g.rnd.Uint64()))
}

// ownedSession resolves the {id} path value and checks it against the
// session token of the request.
func (g *GameHandler) ownedSession(r *http.Request) (*session.Session, error) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", session.ErrNotFound, err)
	}
	owner, ok := r.Context().Value(middleware.CtxSessionID).(string)
	if !ok || owner != id.String() {
		return nil, fmt.Errorf("%w: token not issued for session %s", config.ErrInvalidToken, id)
	}
	return g.registry.Get(id)
}

func (g *GameHandler) NewGame(w http.ResponseWriter, r *http.Request) {
	dto, err := ParseNewGameDTO(r.URL.Query())
	if err != nil {
		sendErrorOrLog(w, g.logger, err)
		return
	}

	probability := g.game.Probability
	if dto.Probability != nil {
		probability = *dto.Probability
	}

	if err := board.CheckSize(dto.Height, dto.Width, g.game.MaxCells); err != nil {
		sendErrorOrLog(w, g.logger, err)
		return
	}
	b, err := board.New(
		dto.Height, dto.Width, probability, dto.X-1, dto.Y-1, g.boardRand(),
	)
	if err != nil {
		sendErrorOrLog(w, g.logger, err)
		return
	}

	s := g.registry.Create(b)
	token, err := g.jwt.Sign(s.ID.String(), time.Now())
	if err != nil {
		if delErr := g.registry.Delete(s.ID); delErr != nil {
			g.logger.Debug("unable to drop unsigned session",
				slog.String("id", s.ID.String()),
				slog.Any("error", delErr),
			)
		}
		sendErrorOrLog(w, g.logger, fmt.Errorf("unable to sign session token: %w", err))
		return
	}

	g.logger.Debug("created session",
		slog.String("id", s.ID.String()),
		slog.Int("height", dto.Height),
		slog.Int("width", dto.Width),
		slog.Float64("probability", probability),
	)

	res := NewGameSessionDTO(s.Snapshot())
	res.Token = token
	sendJSONOrLog(w, g.logger, http.StatusCreated, res)
}

func (g *GameHandler) Fetch(w http.ResponseWriter, r *http.Request) {
	s, err := g.ownedSession(r)
	if err != nil {
		sendErrorOrLog(w, g.logger, err)
		return
	}
	sendJSONOrLog(w, g.logger, http.StatusOK, NewGameSessionDTO(s.Snapshot()))
}

// move applies c to s. Only errors that leave the session unusable for this
// request are returned; move outcomes travel in the DTO.
func (g *GameHandler) move(s *session.Session, c command.Command) (*GameSessionDTO, error) {
	snap, err := s.Do(func(b *board.Board) error {
		return command.Apply(b, c)
	})
	g.logger.Debug("move",
		slog.String("id", s.ID.String()),
		slog.String("command", c.String()),
		slog.String("outcome", board.KindOf(err).String()),
	)
	return NewGameSessionDTO(snap).withError(err), err
}

func (g *GameHandler) MakeAMove(w http.ResponseWriter, r *http.Request) {
	s, err := g.ownedSession(r)
	if err != nil {
		sendErrorOrLog(w, g.logger, err)
		return
	}

	dto, err := ParseMoveDTO(r.URL.Query())
	if err != nil {
		sendErrorOrLog(w, g.logger, err)
		return
	}
	c, err := dto.Command()
	if err != nil {
		sendErrorOrLog(w, g.logger, err)
		return
	}

	res, err := g.move(s, c)
	sendJSONOrLog(w, g.logger, statusOf(err), res)
}

func (g *GameHandler) Delete(w http.ResponseWriter, r *http.Request) {
	s, err := g.ownedSession(r)
	if err != nil {
		sendErrorOrLog(w, g.logger, err)
		return
	}
	if err := g.registry.Delete(s.ID); err != nil {
		sendErrorOrLog(w, g.logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
