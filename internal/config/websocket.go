package config

import (
	"net/http"
	"slices"

	"github.com/gorilla/websocket"
	"github.com/spf13/viper"
)

type WebSocket struct {
	Upgrader     websocket.Upgrader
	ReadLimit    int64
	AllowOrigins []string
}

// NewWebSocket reads server.allowed_origins; an empty list accepts any
// origin.
func NewWebSocket(v *viper.Viper) (*WebSocket, error) {
	ws := &WebSocket{
		ReadLimit:    v.GetInt64("server.ws_read_limit"),
		AllowOrigins: v.GetStringSlice("server.allowed_origins"),
	}
	ws.Upgrader = websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 4096,
		CheckOrigin:     ws.checkOrigin,
	}
	return ws, nil
}

func (ws *WebSocket) checkOrigin(r *http.Request) bool {
	if len(ws.AllowOrigins) == 0 {
		return true
	}
	return slices.Contains(ws.AllowOrigins, r.Header.Get("Origin"))
}
