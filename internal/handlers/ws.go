package handlers

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/vancomm/minesweeper/internal/command"
)

// ConnectWS streams moves for a session. Each text frame holds one or more
// newline separated commands ("o 3 4"); the frame is answered with the
// session state after the last command that was applied. Processing of a
// frame stops at the first command that fails.
func (g *GameHandler) ConnectWS(w http.ResponseWriter, r *http.Request) {
	s, err := g.ownedSession(r)
	if err != nil {
		sendErrorOrLog(w, g.logger, err)
		return
	}

	c, err := g.ws.Upgrader.Upgrade(w, r, nil)
	if err != nil {
		g.logger.Warn("unable to upgrade connection", slog.Any("error", err))
		return
	}
	defer c.Close()
	if g.ws.ReadLimit > 0 {
		c.SetReadLimit(g.ws.ReadLimit)
	}

	logger := g.logger.With(slog.String("id", s.ID.String()))
	logger.Debug("ws connected")

	for {
		mt, message, err := c.ReadMessage()
		if err != nil {
			if !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				logger.Warn("ws read failed", slog.Any("error", err))
			}
			return
		}
		if mt != websocket.TextMessage {
			closeWS(c, logger, websocket.CloseUnsupportedData, "text frames only")
			return
		}

		res, err := g.runFrame(s.ID, string(message))
		if err != nil {
			logger.Debug("ws session gone", slog.Any("error", err))
			closeWS(c, logger, websocket.CloseGoingAway, "session not found")
			return
		}
		if err := c.WriteJSON(res); err != nil {
			logger.Warn("ws write failed", slog.Any("error", err))
			return
		}
		if res.Dead || res.Won {
			closeWS(c, logger, websocket.CloseNormalClosure, "game over")
			return
		}
	}
}

func closeWS(c *websocket.Conn, logger *slog.Logger, code int, text string) {
	err := c.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(code, text))
	if err != nil {
		logger.Warn("ws close failed", slog.Int("code", code), slog.Any("error", err))
	}
}

// runFrame looks the session up again for every frame so that a deleted or
// expired session stops accepting moves.
func (g *GameHandler) runFrame(id uuid.UUID, text string) (*GameSessionDTO, error) {
	s, err := g.registry.Get(id)
	if err != nil {
		return nil, err
	}
	res := NewGameSessionDTO(s.Snapshot())
	for _, line := range strings.Split(strings.TrimSpace(text), "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		c, err := command.Parse(line)
		if err != nil {
			return res.withError(err), nil
		}
		var moveErr error
		res, moveErr = g.move(s, c)
		if moveErr != nil || res.Dead || res.Won {
			break
		}
	}
	return res, nil
}
