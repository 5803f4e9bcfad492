// Package ws terminates websocket connections and dispatches client frames
// into the session core.
package ws

import (
	"context"
	"encoding/json"
	"errors"
	"math/rand"
	"net/http"
	"time"

	"github.com/coder/websocket"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/genpoke/battle-backend/internal/battle"
	"github.com/genpoke/battle-backend/internal/evaluator"
	"github.com/genpoke/battle-backend/internal/orchestrator"
	"github.com/genpoke/battle-backend/internal/registry"
	"github.com/genpoke/battle-backend/internal/room"
	"github.com/genpoke/battle-backend/internal/types"
)

// StatusRoomNotFound is the application close code for joining an unknown
// session.
const StatusRoomNotFound = 4004

// Deps carries everything the websocket endpoint needs. BaseCtx parents the
// orchestrator goroutines so they outlive individual requests but not the
// server.
type Deps struct {
	Log       *zap.Logger
	Registry  *registry.Registry
	Rooms     *room.Manager
	Evaluator evaluator.Evaluator
	Orch      orchestrator.Config
	BaseCtx   context.Context

	BossHPPerPlayer int
}

// conn adapts coder/websocket to the registry's transport interface.
type conn struct {
	ws *websocket.Conn
}

func (c conn) Write(ctx context.Context, data []byte) error {
	return c.ws.Write(ctx, websocket.MessageText, data)
}

func (c conn) Close(code int, reason string) error {
	return c.ws.Close(websocket.StatusCode(code), reason)
}

// Handler serves GET /rooms/{code}/ws?creature_id=...&name=...
func Handler(d Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		code := chi.URLParam(r, "code")
		creatureID := r.URL.Query().Get("creature_id")
		playerName := r.URL.Query().Get("name")
		if playerName == "" {
			playerName = "Trainer"
		}
		if creatureID == "" {
			http.Error(w, "missing creature_id", http.StatusBadRequest)
			return
		}

		sess, ok := d.Rooms.Get(code)

		ws, err := websocket.Accept(w, r, nil)
		if err != nil {
			d.Log.Warn("websocket accept failed", zap.Error(err))
			return
		}

		if !ok {
			// Distinct close code so clients can tell "no such room" from a
			// normal close.
			_ = ws.Close(StatusRoomNotFound, "room not found")
			return
		}

		connID := uuid.NewString()
		d.Registry.Register(conn{ws: ws}, connID, code, playerName)

		ctx := r.Context()
		sess, member, err := d.Rooms.Join(ctx, code, connID, creatureID, playerName)
		if err != nil {
			d.Log.Warn("join rejected",
				zap.String("room_code", code), zap.Error(err))
			d.Registry.Send(ctx, connID, types.NewError(joinErrorMessage(err)))
			d.Registry.Unregister(connID)
			_ = ws.Close(websocket.StatusPolicyViolation, "join rejected")
			return
		}

		defer func() {
			d.Registry.Unregister(connID)
			// While the room is forming the member leaves outright. Once the
			// battle has started the roster entry stays, so damage already
			// dealt to it keeps meaning; the room is torn down when the last
			// connection drops.
			if sess.Status() == room.StatusWaiting {
				d.Rooms.Leave(code, connID)
			} else if d.Registry.RoomCount(code) == 0 {
				d.Rooms.Teardown(code)
			}
			if left, ok := d.Rooms.Get(code); ok {
				d.Registry.Broadcast(d.BaseCtx, code, types.NewRoomUpdate(left.Snapshot()))
			}
			_ = ws.Close(websocket.StatusNormalClosure, "bye")
		}()

		d.Registry.Send(ctx, connID, types.NewWelcome("Welcome to room "+code+"!", sess.Snapshot()))
		d.Registry.Broadcast(ctx, code, types.NewRoomUpdate(sess.Snapshot()))

		readLoop(ctx, d, ws, sess, member, connID)
	}
}

func readLoop(ctx context.Context, d Deps, ws *websocket.Conn, sess *room.Room, member *room.Member, connID string) {
	for {
		_, data, err := ws.Read(ctx)
		if err != nil {
			switch websocket.CloseStatus(err) {
			case websocket.StatusNormalClosure, websocket.StatusGoingAway:
			default:
				if !errors.Is(err, context.Canceled) {
					d.Log.Debug("read loop ended", zap.String("connection_id", connID), zap.Error(err))
				}
			}
			return
		}

		var cm types.ClientMessage
		if err := json.Unmarshal(data, &cm); err != nil {
			// Protocol error: tell the sender, keep the connection.
			d.Registry.Send(ctx, connID, types.NewError("invalid message format"))
			continue
		}

		d.Registry.Heartbeat(connID)

		switch cm.Type {
		case "heartbeat":
			d.Registry.Send(ctx, connID, types.NewHeartbeatAck())

		case "ready":
			if err := sess.SetReady(connID, cm.IsReady); err != nil {
				d.Registry.Send(ctx, connID, types.NewError("not in this room"))
				continue
			}
			d.Registry.Broadcast(ctx, sess.Code, types.NewRoomUpdate(sess.Snapshot()))
			maybeStartBattle(d, sess)

		case "use_skill":
			if err := sess.SubmitAction(connID, cm.SkillID, cm.Prompt); err != nil {
				d.Registry.Send(ctx, connID, types.NewError(submitErrorMessage(err)))
			}

		case "chat":
			d.Registry.Broadcast(ctx, sess.Code, types.NewChat(member.PlayerName, cm.Message))

		default:
			d.Registry.Send(ctx, connID, types.NewError("unknown message type"))
		}
	}
}

// maybeStartBattle races safely: Room.StartBattle re-checks the all-ready
// guard under the room lock, so concurrent ready handlers launch at most one
// orchestrator.
func maybeStartBattle(d Deps, sess *room.Room) {
	if !sess.AllReady() || sess.Status() != room.StatusWaiting {
		return
	}

	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	boss := battle.GenerateBoss(sess.MemberCount(), sess.BossBaseHP, d.BossHPPerPlayer, "", d.Rooms.Catalog(), rng)

	if err := sess.StartBattle(boss); err != nil {
		return // another ready handler won the race
	}

	d.Log.Info("battle starting",
		zap.String("room_code", sess.Code),
		zap.String("boss", boss.Name),
		zap.Int("boss_hp", boss.MaxHP))
	d.Rooms.MirrorBattleState(sess)
	d.Registry.Broadcast(d.BaseCtx, sess.Code, types.NewBattleStart(sess.Snapshot()))

	octx, cancel := context.WithCancel(d.BaseCtx)
	sess.SetStop(cancel)

	o := orchestrator.New(sess, d.Registry, d.Evaluator, rng, d.Log, d.Orch)
	o.SetOnFinished(func() { d.Rooms.MirrorBattleState(sess) })
	go o.Run(octx)
}

func joinErrorMessage(err error) string {
	switch {
	case errors.Is(err, room.ErrRoomFull):
		return "room is full"
	case errors.Is(err, room.ErrNotWaiting):
		return "battle already started"
	case errors.Is(err, room.ErrAlreadyJoined):
		return "already joined"
	default:
		return "unable to join room"
	}
}

func submitErrorMessage(err error) string {
	switch {
	case errors.Is(err, room.ErrNotInBattle):
		return "battle has not started"
	case errors.Is(err, room.ErrUnknownSkill):
		return "unknown skill"
	default:
		return "unable to submit action"
	}
}
