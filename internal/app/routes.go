package app

import (
	"math/rand/v2"

	"github.com/vancomm/minesweeper/internal/handlers"
)

func createRand() *rand.Rand {
	return rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
}

func (a *App) loadRoutes() {
	game := handlers.NewGameHandler(
		a.logger, a.registry, a.jwt, a.ws, a.game, createRand(),
	)

	base := a.server.BasePath

	a.router.HandleFunc("POST "+base+"/game", game.NewGame)
	a.router.HandleFunc("GET "+base+"/game/{id}", game.Fetch)
	a.router.HandleFunc("POST "+base+"/game/{id}/move", game.MakeAMove)
	a.router.HandleFunc("DELETE "+base+"/game/{id}", game.Delete)
	a.router.HandleFunc("GET "+base+"/game/{id}/connect", game.ConnectWS)
}
