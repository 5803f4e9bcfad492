package room

import (
	"errors"
	"testing"
	"time"

	"github.com/genpoke/battle-backend/internal/battle"
	"github.com/genpoke/battle-backend/internal/creature"
	"github.com/genpoke/battle-backend/internal/skills"
)

func testSkills() []skills.Skill {
	return []skills.Skill{
		{ID: "skill_001", Name: "Ember", Type: "fire", Power: 40},
		{ID: "skill_002", Name: "Flamethrower", Type: "fire", Power: 90},
	}
}

func testMember(id string, hp int) *Member {
	return NewMember(id, "player-"+id, creature.Creature{
		ID: "crt-" + id, Name: "Cindertail", Type: "fire", HP: hp,
	}, testSkills())
}

func testBoss(hp int) *battle.Boss {
	return &battle.Boss{
		Name: "Infernodon", Type: "electric", Level: 20,
		CurrentHP: hp, MaxHP: hp,
		Skills: []skills.Skill{{ID: "s1", Name: "Thunder", Type: "electric", Power: 110}},
	}
}

// battleRoom returns a room already in battle with the given members.
func battleRoom(t *testing.T, bossHP int, members ...*Member) *Room {
	t.Helper()
	r := New("TEST0001", 4, bossHP, 30*time.Second)
	for _, m := range members {
		if err := r.AddMember(m); err != nil {
			t.Fatalf("add member %s: %v", m.ConnectionID, err)
		}
		if err := r.SetReady(m.ConnectionID, true); err != nil {
			t.Fatalf("ready %s: %v", m.ConnectionID, err)
		}
	}
	if err := r.StartBattle(testBoss(bossHP)); err != nil {
		t.Fatalf("start battle: %v", err)
	}
	return r
}

func TestAddMemberCapacityAndDuplicates(t *testing.T) {
	r := New("TEST0001", 2, 1000, 30*time.Second)

	if err := r.AddMember(testMember("a", 100)); err != nil {
		t.Fatalf("first join: %v", err)
	}
	if err := r.AddMember(testMember("a", 100)); !errors.Is(err, ErrAlreadyJoined) {
		t.Fatalf("duplicate join: want ErrAlreadyJoined, got %v", err)
	}
	if err := r.AddMember(testMember("b", 100)); err != nil {
		t.Fatalf("second join: %v", err)
	}
	if err := r.AddMember(testMember("c", 100)); !errors.Is(err, ErrRoomFull) {
		t.Fatalf("third join into 2-player room: want ErrRoomFull, got %v", err)
	}
}

func TestAddMemberRejectedOnceBattleStarts(t *testing.T) {
	r := battleRoom(t, 1000, testMember("a", 100), testMember("b", 100))
	if err := r.AddMember(testMember("c", 100)); !errors.Is(err, ErrNotWaiting) {
		t.Fatalf("join during battle: want ErrNotWaiting, got %v", err)
	}
}

func TestStartBattleRequiresEveryoneReady(t *testing.T) {
	r := New("TEST0001", 4, 1000, 30*time.Second)

	if r.AllReady() {
		t.Fatal("empty room must not count as ready")
	}
	if err := r.StartBattle(testBoss(1000)); !errors.Is(err, ErrNotAllReady) {
		t.Fatalf("empty room start: want ErrNotAllReady, got %v", err)
	}

	_ = r.AddMember(testMember("a", 100))
	_ = r.AddMember(testMember("b", 100))
	_ = r.SetReady("a", true)

	if err := r.StartBattle(testBoss(1000)); !errors.Is(err, ErrNotAllReady) {
		t.Fatalf("partial ready start: want ErrNotAllReady, got %v", err)
	}

	_ = r.SetReady("b", true)
	if err := r.StartBattle(testBoss(1000)); err != nil {
		t.Fatalf("start: %v", err)
	}
	if r.Status() != StatusBattle {
		t.Fatalf("status after start: %s", r.Status())
	}

	// Only one caller can win the transition.
	if err := r.StartBattle(testBoss(1000)); !errors.Is(err, ErrNotWaiting) {
		t.Fatalf("second start: want ErrNotWaiting, got %v", err)
	}
}

func TestSubmitActionValidation(t *testing.T) {
	r := New("TEST0001", 4, 1000, 30*time.Second)
	_ = r.AddMember(testMember("a", 100))

	if err := r.SubmitAction("a", "skill_001", ""); !errors.Is(err, ErrNotInBattle) {
		t.Fatalf("submit while waiting: want ErrNotInBattle, got %v", err)
	}

	_ = r.SetReady("a", true)
	if err := r.StartBattle(testBoss(1000)); err != nil {
		t.Fatalf("start: %v", err)
	}

	if err := r.SubmitAction("ghost", "skill_001", ""); !errors.Is(err, ErrNoSuchMember) {
		t.Fatalf("unknown member: want ErrNoSuchMember, got %v", err)
	}
	if err := r.SubmitAction("a", "skill_999", ""); !errors.Is(err, ErrUnknownSkill) {
		t.Fatalf("foreign skill: want ErrUnknownSkill, got %v", err)
	}
	if err := r.SubmitAction("a", "skill_001", "aim low"); err != nil {
		t.Fatalf("valid submit: %v", err)
	}
}

func TestSubmitActionOverwrites(t *testing.T) {
	r := battleRoom(t, 1000, testMember("a", 100), testMember("b", 100))

	_ = r.SubmitAction("a", "skill_001", "")
	_ = r.SubmitAction("a", "skill_002", "second thoughts")

	if r.AllSubmitted() {
		t.Fatal("one member resubmitting must not satisfy the whole room")
	}
	if got := r.PendingCount(); got != 1 {
		t.Fatalf("pending count: want 1, got %d", got)
	}

	_ = r.SubmitAction("b", "skill_001", "")
	actions := r.DrainActions()
	if len(actions) != 2 {
		t.Fatalf("want 2 actions, got %d", len(actions))
	}
	if actions[0].ConnectionID != "a" || actions[0].Skill.ID != "skill_002" {
		t.Fatalf("overwrite lost: got %s/%s", actions[0].ConnectionID, actions[0].Skill.ID)
	}
}

func TestDrainActionsBackfillsDefaults(t *testing.T) {
	r := battleRoom(t, 1000, testMember("a", 100), testMember("b", 100), testMember("c", 100))

	// Only b submits; a and c time out.
	_ = r.SubmitAction("b", "skill_002", "go for the horns")

	actions := r.DrainActions()
	if len(actions) != 3 {
		t.Fatalf("want 3 actions, got %d", len(actions))
	}
	// Submissions first, then defaults in join order.
	if actions[0].ConnectionID != "b" || actions[0].Defaulted {
		t.Fatalf("first action should be b's submission, got %+v", actions[0])
	}
	if actions[1].ConnectionID != "a" || actions[2].ConnectionID != "c" {
		t.Fatalf("defaults out of join order: %s, %s", actions[1].ConnectionID, actions[2].ConnectionID)
	}
	for _, a := range actions[1:] {
		if !a.Defaulted {
			t.Fatalf("backfilled action for %s not marked defaulted", a.ConnectionID)
		}
		if a.Skill.ID != "skill_001" {
			t.Fatalf("default must be the first loadout skill, got %s", a.Skill.ID)
		}
		if a.Prompt != "" {
			t.Fatalf("defaults carry no prompt, got %q", a.Prompt)
		}
	}
}

func TestLateSubmissionCountsTowardNextTurn(t *testing.T) {
	r := battleRoom(t, 1000, testMember("a", 100), testMember("b", 100))

	_ = r.SubmitAction("a", "skill_001", "")
	_ = r.DrainActions()

	// b's submission lands while the drained turn is still resolving, before
	// the next turn opens.
	if err := r.SubmitAction("b", "skill_002", "strike now"); err != nil {
		t.Fatalf("mid-resolution submit: %v", err)
	}

	if _, err := r.NextTurn(); err != nil {
		t.Fatalf("next turn: %v", err)
	}

	actions := r.DrainActions()
	if len(actions) != 2 {
		t.Fatalf("want 2 actions next turn, got %d", len(actions))
	}
	if actions[0].ConnectionID != "b" || actions[0].Defaulted {
		t.Fatalf("mid-resolution submission lost: %+v", actions[0])
	}
	if actions[0].Skill.ID != "skill_002" || actions[0].Prompt != "strike now" {
		t.Fatalf("mid-resolution submission replaced by a default: %+v", actions[0])
	}
	if actions[1].ConnectionID != "a" || !actions[1].Defaulted {
		t.Fatalf("silent member should be backfilled: %+v", actions[1])
	}
}

func TestApplyBossDamage(t *testing.T) {
	r := battleRoom(t, 100, testMember("a", 100))

	hp, maxHP, defeated := r.ApplyBossDamage(60)
	if hp != 40 || maxHP != 100 || defeated {
		t.Fatalf("partial: hp=%d max=%d defeated=%v", hp, maxHP, defeated)
	}

	hp, _, defeated = r.ApplyBossDamage(999)
	if hp != 0 || !defeated {
		t.Fatalf("overkill: hp=%d defeated=%v", hp, defeated)
	}

	r.Finish()
	hp, _, _ = r.ApplyBossDamage(10)
	if hp != 0 {
		t.Fatalf("finished room must not mutate boss, hp=%d", hp)
	}
}

func TestApplyMemberDamage(t *testing.T) {
	r := battleRoom(t, 1000, testMember("a", 50), testMember("b", 50))

	hp, maxHP, allDown, err := r.ApplyMemberDamage("a", 30)
	if err != nil || hp != 20 || maxHP != 50 || allDown {
		t.Fatalf("partial: hp=%d max=%d allDown=%v err=%v", hp, maxHP, allDown, err)
	}

	hp, _, allDown, _ = r.ApplyMemberDamage("a", 100)
	if hp != 0 || allDown {
		t.Fatalf("floor: hp=%d allDown=%v", hp, allDown)
	}

	_, _, allDown, _ = r.ApplyMemberDamage("b", 100)
	if !allDown {
		t.Fatal("all members down should be reported")
	}

	if _, _, _, err := r.ApplyMemberDamage("ghost", 1); !errors.Is(err, ErrNoSuchMember) {
		t.Fatalf("unknown member: want ErrNoSuchMember, got %v", err)
	}

	r.Finish()
	hp, _, _, _ = r.ApplyMemberDamage("b", 100)
	if hp != 0 {
		t.Fatalf("finished room must not mutate members, hp=%d", hp)
	}
}

func TestLivingTargetsExcludesDowned(t *testing.T) {
	r := battleRoom(t, 1000, testMember("a", 50), testMember("b", 50))

	_, _, _, _ = r.ApplyMemberDamage("a", 999)
	targets := r.LivingTargets()
	if len(targets) != 1 || targets[0].ConnectionID != "b" {
		t.Fatalf("want only b alive, got %+v", targets)
	}
}

func TestNextTurn(t *testing.T) {
	r := battleRoom(t, 1000, testMember("a", 100))

	turn, err := r.NextTurn()
	if err != nil || turn != 1 {
		t.Fatalf("next turn: turn=%d err=%v", turn, err)
	}

	// Only DrainActions clears the pending set; opening a turn must not.
	_ = r.SubmitAction("a", "skill_001", "")
	if _, err := r.NextTurn(); err != nil {
		t.Fatalf("next turn: %v", err)
	}
	if !r.AllSubmitted() {
		t.Fatal("opening a turn must not discard submitted actions")
	}

	r.Finish()
	if _, err := r.NextTurn(); !errors.Is(err, ErrNotInBattle) {
		t.Fatalf("next turn after finish: want ErrNotInBattle, got %v", err)
	}
}

func TestRemoveMember(t *testing.T) {
	r := New("TEST0001", 4, 1000, 30*time.Second)
	_ = r.AddMember(testMember("a", 100))
	_ = r.AddMember(testMember("b", 100))

	if empty := r.RemoveMember("a"); empty {
		t.Fatal("room with b should not be empty")
	}
	if empty := r.RemoveMember("a"); empty {
		t.Fatal("removing an unknown member twice must stay a no-op")
	}
	if empty := r.RemoveMember("b"); !empty {
		t.Fatal("room should report empty after last member leaves")
	}
}

func TestRemoveMemberDropsPendingAction(t *testing.T) {
	r := battleRoom(t, 1000, testMember("a", 100), testMember("b", 100))
	_ = r.SubmitAction("a", "skill_001", "")

	r.RemoveMember("a")
	actions := r.DrainActions()
	if len(actions) != 1 || actions[0].ConnectionID != "b" {
		t.Fatalf("leaver's action should vanish, got %+v", actions)
	}
}

func TestSnapshot(t *testing.T) {
	r := battleRoom(t, 1500, testMember("a", 120), testMember("b", 130))

	snap := r.Snapshot()
	if snap.RoomCode != "TEST0001" || snap.Status != string(StatusBattle) {
		t.Fatalf("snapshot header: %+v", snap)
	}
	if snap.CurrentPlayers != 2 || len(snap.Members) != 2 {
		t.Fatalf("snapshot members: %+v", snap)
	}
	if snap.Members[0].ConnectionID != "a" || snap.Members[1].ConnectionID != "b" {
		t.Fatal("snapshot must list members in join order")
	}
	if snap.Boss == nil || snap.Boss.MaxHP != 1500 {
		t.Fatalf("snapshot boss: %+v", snap.Boss)
	}
}
