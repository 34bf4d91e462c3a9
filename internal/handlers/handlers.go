package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gorilla/schema"

	"github.com/vancomm/minesweeper/internal/board"
	"github.com/vancomm/minesweeper/internal/command"
	"github.com/vancomm/minesweeper/internal/config"
	"github.com/vancomm/minesweeper/internal/session"
)

var decoder = schema.NewDecoder()

func init() {
	decoder.IgnoreUnknownKeys(true)
}

func SendJSON(w http.ResponseWriter, status int, v any) (int, error) {
	payload, err := json.Marshal(v)
	if err != nil {
		return 0, err
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	return w.Write(payload)
}

func sendJSONOrLog(w http.ResponseWriter, logger *slog.Logger, status int, v any) {
	_, err := SendJSON(w, status, v)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		logger.Error(
			"unable to send response",
			slog.Any("response", v),
			slog.Any("error", err),
		)
	}
}

type errorDTO struct {
	Error string `json:"error"`
	Kind  string `json:"kind,omitempty"`
}

func wrapError(err error) errorDTO {
	dto := errorDTO{Error: err.Error()}
	if k := board.KindOf(err); k != board.KindUnknown {
		dto.Kind = k.String()
	}
	return dto
}

func sendErrorOrLog(w http.ResponseWriter, logger *slog.Logger, err error) {
	status := statusOf(err)
	if status >= http.StatusInternalServerError {
		logger.Error("request failed", slog.Any("error", err))
	}
	sendJSONOrLog(w, logger, status, wrapError(err))
}

// statusOf maps game errors to HTTP status codes.
func statusOf(err error) int {
	var schemaErr schema.MultiError
	switch {
	case err == nil:
		return http.StatusOK
	case errors.As(err, &schemaErr),
		errors.Is(err, board.ErrInvalidParams),
		errors.Is(err, board.ErrOutOfRange),
		errors.Is(err, command.ErrUnknownAction),
		errors.Is(err, command.ErrArgCount),
		errors.Is(err, command.ErrBadCoordinate):
		return http.StatusBadRequest
	case errors.Is(err, config.ErrInvalidToken):
		return http.StatusUnauthorized
	case errors.Is(err, session.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, board.ErrDuplicateOperation):
		return http.StatusConflict
	case errors.Is(err, board.ErrOperationFailure):
		return http.StatusUnprocessableEntity
	case errors.Is(err, session.ErrFinished):
		return http.StatusGone
	case errors.Is(err, board.ErrMineHit):
		return http.StatusOK
	default:
		return http.StatusInternalServerError
	}
}
