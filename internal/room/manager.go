package room

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/genpoke/battle-backend/internal/creature"
	"github.com/genpoke/battle-backend/internal/mirror"
	"github.com/genpoke/battle-backend/internal/skills"
)

var ErrRoomNotFound = errors.New("room not found")

const (
	minPlayers = 2
	maxPlayers = 4
)

// Manager is the session registry: creates, looks up and destroys rooms.
type Manager struct {
	log     *zap.Logger
	store   creature.Store
	catalog skills.Catalog
	sink    *mirror.Sink

	defaultBossHP  int
	turnDuration   time.Duration
	memberSkillCnt int

	mu    sync.RWMutex
	rooms map[string]*Room
}

type ManagerConfig struct {
	DefaultBossHP    int
	TurnDuration     time.Duration
	MemberSkillCount int
}

func NewManager(log *zap.Logger, store creature.Store, catalog skills.Catalog, sink *mirror.Sink, cfg ManagerConfig) *Manager {
	return &Manager{
		log:            log,
		store:          store,
		catalog:        catalog,
		sink:           sink,
		defaultBossHP:  cfg.DefaultBossHP,
		turnDuration:   cfg.TurnDuration,
		memberSkillCnt: cfg.MemberSkillCount,
		rooms:          make(map[string]*Room),
	}
}

// Create builds a room with a fresh collision-free code. maxPlayers is
// clamped to [2,4]; bossBaseHP ≤ 0 takes the configured default.
func (m *Manager) Create(players, bossBaseHP int) (*Room, error) {
	if players < minPlayers {
		players = minPlayers
	}
	if players > maxPlayers {
		players = maxPlayers
	}
	if bossBaseHP <= 0 {
		bossBaseHP = m.defaultBossHP
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	var code string
	for {
		c, err := generateCode()
		if err != nil {
			return nil, fmt.Errorf("generate room code: %w", err)
		}
		if _, taken := m.rooms[c]; !taken {
			code = c
			break
		}
		m.log.Debug("room code collision, regenerating", zap.String("code", c))
	}

	r := New(code, players, bossBaseHP, m.turnDuration)
	m.rooms[code] = r

	m.sink.SaveRoom(mirror.RoomRecord{
		Code:       code,
		Status:     string(StatusWaiting),
		MaxPlayers: players,
	})

	m.log.Info("room created",
		zap.String("room_code", code), zap.Int("max_players", players))
	return r, nil
}

// Join fetches the creature, builds a member with a skill loadout, and adds
// it to the room. State errors come back typed; collaborator failures wrap
// the underlying error.
func (m *Manager) Join(ctx context.Context, code, connectionID, creatureID, playerName string) (*Room, *Member, error) {
	r, ok := m.Get(code)
	if !ok {
		return nil, nil, ErrRoomNotFound
	}

	c, err := m.store.FetchByID(ctx, creatureID)
	if err != nil {
		return nil, nil, fmt.Errorf("fetch creature %s: %w", creatureID, err)
	}

	moves := m.catalog.SkillsByType(c.Type, m.memberSkillCnt)
	member := NewMember(connectionID, playerName, *c, moves)
	if err := r.AddMember(member); err != nil {
		return nil, nil, err
	}

	m.sink.SaveMember(mirror.MemberRecord{
		RoomCode:     code,
		ConnectionID: connectionID,
		CreatureID:   creatureID,
		PlayerName:   playerName,
	})

	m.log.Info("member joined room",
		zap.String("room_code", code),
		zap.String("player", playerName),
		zap.Int("members", r.MemberCount()))
	return r, member, nil
}

// Leave removes a member; the room (and its orchestrator) is torn down when
// it empties.
func (m *Manager) Leave(code, connectionID string) {
	r, ok := m.Get(code)
	if !ok {
		return
	}

	if empty := r.RemoveMember(connectionID); empty {
		m.teardown(r)
	}
}

// Teardown destroys a room outright, regardless of remaining membership.
// Used when every connection is gone but downed or disconnected participants
// are still on the roster.
func (m *Manager) Teardown(code string) {
	r, ok := m.Get(code)
	if !ok {
		return
	}
	m.teardown(r)
}

func (m *Manager) teardown(r *Room) {
	r.Stop()
	r.Finish()

	m.mu.Lock()
	delete(m.rooms, r.Code)
	m.mu.Unlock()

	m.sink.UpdateRoomStatus(r.Code, string(StatusFinished), 0, 0)
	m.log.Info("room torn down", zap.String("room_code", r.Code))
}

// Catalog exposes the skill catalog for boss-pool construction.
func (m *Manager) Catalog() skills.Catalog { return m.catalog }

func (m *Manager) Get(code string) (*Room, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	r, ok := m.rooms[code]
	return r, ok
}

func (m *Manager) List() []*Room {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]*Room, 0, len(m.rooms))
	for _, r := range m.rooms {
		out = append(out, r)
	}
	return out
}

// MirrorBattleState pushes the room's battle state to the mirror store.
func (m *Manager) MirrorBattleState(r *Room) {
	snap := r.Snapshot()
	bossHP, bossMaxHP := 0, 0
	if snap.Boss != nil {
		bossHP, bossMaxHP = snap.Boss.CurrentHP, snap.Boss.MaxHP
	}
	m.sink.UpdateRoomStatus(r.Code, snap.Status, bossHP, bossMaxHP)
}

const (
	codeLetters = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	codeDigits  = "0123456789"
)

// generateCode returns a code of four letters followed by four digits.
func generateCode() (string, error) {
	code := make([]byte, 8)
	for i := 0; i < 4; i++ {
		n, err := rand.Int(rand.Reader, big.NewInt(int64(len(codeLetters))))
		if err != nil {
			return "", err
		}
		code[i] = codeLetters[n.Int64()]
	}
	for i := 4; i < 8; i++ {
		n, err := rand.Int(rand.Reader, big.NewInt(int64(len(codeDigits))))
		if err != nil {
			return "", err
		}
		code[i] = codeDigits[n.Int64()]
	}
	return string(code), nil
}
