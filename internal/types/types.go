// Package types defines the JSON frames exchanged over the websocket.
package types

import "github.com/genpoke/battle-backend/internal/skills"

// ClientMessage is every client→server frame. Type selects which of the
// optional fields are meaningful:
//
//	"heartbeat" — none
//	"ready"     — is_ready
//	"use_skill" — skill_id, prompt
//	"chat"      — message
type ClientMessage struct {
	Type    string `json:"type"`
	IsReady bool   `json:"is_ready,omitempty"`
	SkillID string `json:"skill_id,omitempty"`
	Prompt  string `json:"prompt,omitempty"`
	Message string `json:"message,omitempty"`
}

// Server→client frames. Each message type gets its own struct so the wire
// shape stays explicit; constructors pin the type tag.

type Welcome struct {
	Type    string       `json:"type"`
	Message string       `json:"message"`
	Room    RoomSnapshot `json:"room"`
}

func NewWelcome(message string, room RoomSnapshot) Welcome {
	return Welcome{Type: "welcome", Message: message, Room: room}
}

type RoomUpdate struct {
	Type string       `json:"type"`
	Room RoomSnapshot `json:"room"`
}

func NewRoomUpdate(room RoomSnapshot) RoomUpdate {
	return RoomUpdate{Type: "room_update", Room: room}
}

type BattleStart struct {
	Type    string       `json:"type"`
	Message string       `json:"message"`
	Room    RoomSnapshot `json:"room"`
}

func NewBattleStart(room RoomSnapshot) BattleStart {
	return BattleStart{Type: "battle_start", Message: "The battle begins!", Room: room}
}

type NewTurn struct {
	Type     string `json:"type"`
	Turn     int    `json:"turn"`
	Duration int    `json:"duration"` // seconds
}

func NewNewTurn(turn, durationSec int) NewTurn {
	return NewTurn{Type: "new_turn", Turn: turn, Duration: durationSec}
}

type TurnTimer struct {
	Type          string `json:"type"`
	RemainingTime int    `json:"remaining_time"`
	CurrentTurn   int    `json:"current_turn"`
	PendingCount  int    `json:"pending_count"`
}

func NewTurnTimer(remaining, turn, pending int) TurnTimer {
	return TurnTimer{Type: "turn_timer", RemainingTime: remaining, CurrentTurn: turn, PendingCount: pending}
}

// BattleAction reports one resolved action. BossHP fields are set when the
// boss was the target, TargetHP fields when a participant was.
type BattleAction struct {
	Type          string  `json:"type"`
	Actor         string  `json:"actor"`
	Skill         string  `json:"skill"`
	Target        string  `json:"target"`
	Damage        int     `json:"damage"`
	BossHP        *int    `json:"boss_hp,omitempty"`
	BossMaxHP     *int    `json:"boss_max_hp,omitempty"`
	TargetHP      *int    `json:"target_hp,omitempty"`
	TargetMaxHP   *int    `json:"target_max_hp,omitempty"`
	Effectiveness float64 `json:"effectiveness"`
	Message       string  `json:"message"`
}

type BattleEnd struct {
	Type    string `json:"type"`
	Result  string `json:"result"` // "win" | "lose"
	Message string `json:"message"`
}

func NewBattleEnd(result, message string) BattleEnd {
	return BattleEnd{Type: "battle_end", Result: result, Message: message}
}

type HeartbeatAck struct {
	Type string `json:"type"`
}

func NewHeartbeatAck() HeartbeatAck { return HeartbeatAck{Type: "heartbeat_ack"} }

// HeartbeatProbe is pushed by the sweep so idle clients keep the link warm.
type HeartbeatProbe struct {
	Type      string `json:"type"`
	Timestamp int64  `json:"timestamp"`
}

func NewHeartbeatProbe(ts int64) HeartbeatProbe {
	return HeartbeatProbe{Type: "heartbeat", Timestamp: ts}
}

type Chat struct {
	Type    string `json:"type"`
	Player  string `json:"player"`
	Message string `json:"message"`
}

func NewChat(player, message string) Chat {
	return Chat{Type: "chat", Player: player, Message: message}
}

type ErrorMessage struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

func NewError(message string) ErrorMessage {
	return ErrorMessage{Type: "error", Message: message}
}

// Snapshots mirror session state out to clients.

type CreatureSnapshot struct {
	Name       string         `json:"name"`
	Type       string         `json:"type"`
	FrontImage string         `json:"front_image"`
	Stats      map[string]int `json:"stats"`
}

type MemberSnapshot struct {
	ConnectionID string           `json:"connection_id"`
	CreatureID   string           `json:"creature_id"`
	PlayerName   string           `json:"player_name"`
	Creature     CreatureSnapshot `json:"creature"`
	Skills       []skills.Skill   `json:"skills"`
	IsReady      bool             `json:"is_ready"`
	CurrentHP    int              `json:"current_hp"`
	MaxHP        int              `json:"max_hp"`
}

type BossSnapshot struct {
	Name      string         `json:"name"`
	Type      string         `json:"type"`
	Level     int            `json:"level"`
	CurrentHP int            `json:"current_hp"`
	MaxHP     int            `json:"max_hp"`
	Stats     map[string]int `json:"stats"`
	Skills    []skills.Skill `json:"skills"`
}

type RoomSnapshot struct {
	RoomCode       string           `json:"room_code"`
	Status         string           `json:"status"`
	MaxPlayers     int              `json:"max_players"`
	CurrentPlayers int              `json:"current_players"`
	Members        []MemberSnapshot `json:"members"`
	Boss           *BossSnapshot    `json:"boss,omitempty"`
	CurrentTurn    int              `json:"current_turn"`
	CreatedAt      string           `json:"created_at"`
}
