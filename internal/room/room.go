// Package room implements the session state machine and the session
// registry that owns it.
package room

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/genpoke/battle-backend/internal/battle"
	"github.com/genpoke/battle-backend/internal/creature"
	"github.com/genpoke/battle-backend/internal/skills"
	"github.com/genpoke/battle-backend/internal/types"
)

type Status string

const (
	StatusWaiting  Status = "waiting"
	StatusBattle   Status = "battle"
	StatusFinished Status = "finished"
)

var (
	ErrRoomFull      = errors.New("room is full")
	ErrAlreadyJoined = errors.New("already in room")
	ErrNotWaiting    = errors.New("room is not accepting players")
	ErrNoSuchMember  = errors.New("no such member")
	ErrNotInBattle   = errors.New("battle is not in progress")
	ErrUnknownSkill  = errors.New("skill not available to this member")
	ErrNotAllReady   = errors.New("not all members are ready")
)

// Member is a participant: a connection plus its creature. Health is set at
// join time and only mutated by turn resolution.
type Member struct {
	ConnectionID string
	CreatureID   string
	PlayerName   string
	Creature     creature.Creature
	Skills       []skills.Skill
	Ready        bool
	CurrentHP    int
	MaxHP        int
}

func NewMember(connectionID, playerName string, c creature.Creature, moves []skills.Skill) *Member {
	hp := c.HP
	if hp <= 0 {
		hp = 100
	}
	return &Member{
		ConnectionID: connectionID,
		CreatureID:   c.ID,
		PlayerName:   playerName,
		Creature:     c,
		Skills:       moves,
		CurrentHP:    hp,
		MaxHP:        hp,
	}
}

func (m *Member) skillByID(id string) (skills.Skill, bool) {
	for _, s := range m.Skills {
		if s.ID == id {
			return s, true
		}
	}
	return skills.Skill{}, false
}

// PendingAction is a member's submitted-but-unresolved choice for the
// current turn.
type PendingAction struct {
	ConnectionID string
	SkillID      string
	Prompt       string
}

// TurnAction is a pending action resolved against its member, ready for the
// combat engine.
type TurnAction struct {
	ConnectionID string
	PlayerName   string
	Skill        skills.Skill
	Prompt       string
	Defaulted    bool
}

// Target is the view of a living member the boss can retaliate against.
type Target struct {
	ConnectionID string
	PlayerName   string
	CreatureType string
}

// Room is one session. All state behind mu; status moves monotonically
// waiting → battle → finished.
type Room struct {
	Code         string
	MaxPlayers   int
	BossBaseHP   int
	TurnDuration time.Duration

	mu           sync.Mutex
	status       Status
	members      map[string]*Member
	joinOrder    []string
	boss         *battle.Boss
	turn         int
	pending      map[string]PendingAction
	pendingOrder []string
	deadline     time.Time
	createdAt    time.Time
	stop         context.CancelFunc
}

func New(code string, maxPlayers, bossBaseHP int, turnDuration time.Duration) *Room {
	return &Room{
		Code:         code,
		MaxPlayers:   maxPlayers,
		BossBaseHP:   bossBaseHP,
		TurnDuration: turnDuration,
		status:       StatusWaiting,
		members:      make(map[string]*Member),
		pending:      make(map[string]PendingAction),
		createdAt:    time.Now(),
	}
}

func (r *Room) Status() Status {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.status
}

func (r *Room) MemberCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.members)
}

// AddMember admits a participant while the room is waiting and under
// capacity.
func (r *Room) AddMember(m *Member) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.status != StatusWaiting {
		return ErrNotWaiting
	}
	if len(r.members) >= r.MaxPlayers {
		return ErrRoomFull
	}
	if _, dup := r.members[m.ConnectionID]; dup {
		return ErrAlreadyJoined
	}
	r.members[m.ConnectionID] = m
	r.joinOrder = append(r.joinOrder, m.ConnectionID)
	return nil
}

// RemoveMember drops a participant and reports whether the room is now
// empty. Removing an unknown member is a no-op.
func (r *Room) RemoveMember(connectionID string) (empty bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.members[connectionID]; !ok {
		return len(r.members) == 0
	}
	delete(r.members, connectionID)
	for i, id := range r.joinOrder {
		if id == connectionID {
			r.joinOrder = append(r.joinOrder[:i], r.joinOrder[i+1:]...)
			break
		}
	}
	delete(r.pending, connectionID)
	for i, id := range r.pendingOrder {
		if id == connectionID {
			r.pendingOrder = append(r.pendingOrder[:i], r.pendingOrder[i+1:]...)
			break
		}
	}
	return len(r.members) == 0
}

func (r *Room) SetReady(connectionID string, ready bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	m, ok := r.members[connectionID]
	if !ok {
		return ErrNoSuchMember
	}
	m.Ready = ready
	return nil
}

// AllReady reports whether every member has flagged ready. An empty room is
// never ready.
func (r *Room) AllReady() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.allReadyLocked()
}

func (r *Room) allReadyLocked() bool {
	if len(r.members) == 0 {
		return false
	}
	for _, m := range r.members {
		if !m.Ready {
			return false
		}
	}
	return true
}

// StartBattle transitions waiting → battle. The all-ready guard is checked
// under the lock, so concurrent ready handlers race safely: exactly one
// caller wins, the rest get ErrNotWaiting or ErrNotAllReady.
func (r *Room) StartBattle(boss *battle.Boss) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.status != StatusWaiting {
		return ErrNotWaiting
	}
	if !r.allReadyLocked() {
		return ErrNotAllReady
	}

	r.status = StatusBattle
	r.boss = boss
	r.turn = 0
	r.pending = make(map[string]PendingAction)
	r.pendingOrder = nil
	r.deadline = time.Now().Add(r.TurnDuration)
	return nil
}

// SubmitAction records (or overwrites) a member's action for the current
// turn. Only legal during battle, and only for skills the member owns.
func (r *Room) SubmitAction(connectionID, skillID, prompt string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.status != StatusBattle {
		return ErrNotInBattle
	}
	m, ok := r.members[connectionID]
	if !ok {
		return ErrNoSuchMember
	}
	if _, ok := m.skillByID(skillID); !ok {
		return ErrUnknownSkill
	}

	if _, resubmit := r.pending[connectionID]; !resubmit {
		r.pendingOrder = append(r.pendingOrder, connectionID)
	}
	r.pending[connectionID] = PendingAction{
		ConnectionID: connectionID,
		SkillID:      skillID,
		Prompt:       prompt,
	}
	return nil
}

// AllSubmitted reports whether every current member has a pending action.
func (r *Room) AllSubmitted() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.members) > 0 && len(r.pending) == len(r.members)
}

// PendingCount returns how many members have yet to submit.
func (r *Room) PendingCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := len(r.members) - len(r.pending)
	if n < 0 {
		n = 0
	}
	return n
}

// Remaining returns whole seconds left in the current turn, floored at 0.
func (r *Room) Remaining() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	rem := int(time.Until(r.deadline).Seconds())
	if rem < 0 {
		rem = 0
	}
	return rem
}

// CurrentTurn returns the turn counter.
func (r *Room) CurrentTurn() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.turn
}

// DrainActions atomically backfills defaults for members who never
// submitted, snapshots the turn's actions in submission order (backfills
// follow, in join order), and clears the pending map. Anything submitted
// after this returns belongs to the next turn.
func (r *Room) DrainActions() []TurnAction {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]TurnAction, 0, len(r.members))
	for _, id := range r.pendingOrder {
		p, ok := r.pending[id]
		if !ok {
			continue
		}
		m, ok := r.members[id]
		if !ok {
			continue
		}
		skill, ok := m.skillByID(p.SkillID)
		if !ok {
			continue
		}
		out = append(out, TurnAction{
			ConnectionID: id,
			PlayerName:   m.PlayerName,
			Skill:        skill,
			Prompt:       p.Prompt,
		})
	}

	for _, id := range r.joinOrder {
		if _, submitted := r.pending[id]; submitted {
			continue
		}
		m := r.members[id]
		if len(m.Skills) == 0 {
			continue
		}
		out = append(out, TurnAction{
			ConnectionID: id,
			PlayerName:   m.PlayerName,
			Skill:        m.Skills[0],
			Defaulted:    true,
		})
	}

	r.pending = make(map[string]PendingAction)
	r.pendingOrder = nil
	return out
}

// Boss returns the session boss, nil while waiting. The pointer's mutable
// fields are only written through ApplyBossDamage.
func (r *Room) Boss() *battle.Boss {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.boss
}

// ApplyBossDamage subtracts damage from the boss, floored at zero. No-op
// once the session is finished.
func (r *Room) ApplyBossDamage(damage int) (hp, maxHP int, defeated bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.status != StatusBattle || r.boss == nil {
		if r.boss != nil {
			return r.boss.CurrentHP, r.boss.MaxHP, r.boss.CurrentHP == 0
		}
		return 0, 0, false
	}
	_, defeated = r.boss.TakeDamage(damage)
	return r.boss.CurrentHP, r.boss.MaxHP, defeated
}

// LivingTargets lists members with health remaining.
func (r *Room) LivingTargets() []Target {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]Target, 0, len(r.members))
	for _, id := range r.joinOrder {
		m := r.members[id]
		if m.CurrentHP > 0 {
			out = append(out, Target{
				ConnectionID: id,
				PlayerName:   m.PlayerName,
				CreatureType: m.Creature.Type,
			})
		}
	}
	return out
}

// ApplyMemberDamage decrements a member's health, floored at zero, and
// reports whether every member is now down. No-op once finished.
func (r *Room) ApplyMemberDamage(connectionID string, damage int) (hp, maxHP int, allDown bool, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	m, ok := r.members[connectionID]
	if !ok {
		return 0, 0, false, ErrNoSuchMember
	}
	if r.status == StatusBattle {
		m.CurrentHP -= damage
		if m.CurrentHP < 0 {
			m.CurrentHP = 0
		}
	}

	allDown = true
	for _, mm := range r.members {
		if mm.CurrentHP > 0 {
			allDown = false
			break
		}
	}
	return m.CurrentHP, m.MaxHP, allDown, nil
}

// Finish moves the session to its terminal state. Monotonic: finishing an
// already-finished room is a no-op.
func (r *Room) Finish() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.status = StatusFinished
}

// NextTurn opens a fresh turn: resets the deadline and increments the
// counter. Pending actions are left untouched — DrainActions already cleared
// the resolved turn's set, and anything submitted while that turn was still
// resolving belongs to the turn opening here. Returns the new turn number,
// or an error once the battle is over.
func (r *Room) NextTurn() (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.status != StatusBattle {
		return r.turn, ErrNotInBattle
	}
	r.turn++
	r.deadline = time.Now().Add(r.TurnDuration)
	return r.turn, nil
}

// SetStop hands the room the cancel function for its orchestrator.
func (r *Room) SetStop(stop context.CancelFunc) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.stop = stop
}

// Stop cancels the room's orchestrator, if one is running.
func (r *Room) Stop() {
	r.mu.Lock()
	stop := r.stop
	r.stop = nil
	r.mu.Unlock()
	if stop != nil {
		stop()
	}
}

// Snapshot renders the room for the wire.
func (r *Room) Snapshot() types.RoomSnapshot {
	r.mu.Lock()
	defer r.mu.Unlock()

	snap := types.RoomSnapshot{
		RoomCode:       r.Code,
		Status:         string(r.status),
		MaxPlayers:     r.MaxPlayers,
		CurrentPlayers: len(r.members),
		CurrentTurn:    r.turn,
		CreatedAt:      r.createdAt.UTC().Format(time.RFC3339),
		Members:        make([]types.MemberSnapshot, 0, len(r.members)),
	}

	for _, id := range r.joinOrder {
		m := r.members[id]
		snap.Members = append(snap.Members, types.MemberSnapshot{
			ConnectionID: m.ConnectionID,
			CreatureID:   m.CreatureID,
			PlayerName:   m.PlayerName,
			Creature: types.CreatureSnapshot{
				Name:       m.Creature.Name,
				Type:       m.Creature.Type,
				FrontImage: m.Creature.FrontImageURL,
				Stats: map[string]int{
					"level":   m.Creature.Level,
					"hp":      m.Creature.HP,
					"attack":  m.Creature.Attack,
					"defense": m.Creature.Defense,
					"speed":   m.Creature.Speed,
				},
			},
			Skills:    m.Skills,
			IsReady:   m.Ready,
			CurrentHP: m.CurrentHP,
			MaxHP:     m.MaxHP,
		})
	}

	if r.boss != nil {
		snap.Boss = &types.BossSnapshot{
			Name:      r.boss.Name,
			Type:      r.boss.Type,
			Level:     r.boss.Level,
			CurrentHP: r.boss.CurrentHP,
			MaxHP:     r.boss.MaxHP,
			Stats: map[string]int{
				"attack":  r.boss.Attack,
				"defense": r.boss.Defense,
				"speed":   r.boss.Speed,
			},
			Skills: r.boss.Skills,
		}
	}
	return snap
}
