package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/genpoke/battle-backend/internal/room"
	"github.com/genpoke/battle-backend/internal/ws"
)

func SetupRoutes(log *zap.Logger, rooms *room.Manager, wsDeps ws.Deps) http.Handler {
	r := chi.NewRouter()

	r.Post("/rooms", CreateRoom(log, rooms))
	r.Get("/rooms", ListRooms(rooms))
	r.Get("/rooms/{code}", RoomInfo(rooms))
	r.Get("/rooms/{code}/ws", ws.Handler(wsDeps))
	r.Get("/healthz", Healthz)
	return r
}
