package app

import (
	"net/http"
	"strings"

	"github.com/vancomm/sweeper/internal/handlers"
)

func (a *App) loadRoutes() {
	board := handlers.NewBoardHandler(
		a.logger, a.registry, a.cfg.Board.Params(), a.cfg.Session.MaxCells, a.ws,
	)

	routes := http.NewServeMux()
	routes.HandleFunc("POST /board", board.Create)
	routes.HandleFunc("GET /board/{id}", board.Fetch)
	routes.HandleFunc("POST /board/{id}/move", board.MakeAMove)
	routes.HandleFunc("POST /board/{id}/pointer", board.Pointer)
	routes.HandleFunc("POST /board/{id}/restart", board.Restart)
	routes.HandleFunc("DELETE /board/{id}", board.Delete)
	routes.HandleFunc("/board/{id}/connect", board.Connect)

	base := strings.TrimSuffix(a.cfg.BasePath, "/")
	if base == "" {
		a.router.Handle("/", routes)
		return
	}
	a.router.Handle(base+"/", http.StripPrefix(base, routes))
}
