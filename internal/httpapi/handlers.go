package httpapi

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/genpoke/battle-backend/internal/room"
	"github.com/genpoke/battle-backend/internal/types"
)

type createRoomRequest struct {
	MaxPlayers int `json:"max_players"`
	BossBaseHP int `json:"boss_base_hp"`
}

type createRoomResponse struct {
	RoomCode string `json:"room_code"`
}

func CreateRoom(log *zap.Logger, rooms *room.Manager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req createRoomRequest
		if r.Body != nil {
			// An empty body means all defaults; a malformed one is a client error.
			if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
				http.Error(w, "invalid request body", http.StatusBadRequest)
				return
			}
		}

		sess, err := rooms.Create(req.MaxPlayers, req.BossBaseHP)
		if err != nil {
			log.Error("create room failed", zap.Error(err))
			http.Error(w, "failed to create room", http.StatusInternalServerError)
			return
		}

		writeJSON(w, http.StatusCreated, createRoomResponse{RoomCode: sess.Code})
	}
}

func RoomInfo(rooms *room.Manager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		code := chi.URLParam(r, "code")
		sess, ok := rooms.Get(code)
		if !ok {
			http.Error(w, "room not found", http.StatusNotFound)
			return
		}
		writeJSON(w, http.StatusOK, sess.Snapshot())
	}
}

func ListRooms(rooms *room.Manager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		all := rooms.List()
		snaps := make([]types.RoomSnapshot, 0, len(all))
		for _, sess := range all {
			snaps = append(snaps, sess.Snapshot())
		}
		writeJSON(w, http.StatusOK, map[string]any{
			"rooms": snaps,
			"count": len(snaps),
		})
	}
}

func Healthz(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
