// Package orchestrator drives one session's turn loop: timer ticks, batch
// resolution, boss retaliation.
package orchestrator

import (
	"context"
	"fmt"
	"math/rand"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/genpoke/battle-backend/internal/battle"
	"github.com/genpoke/battle-backend/internal/evaluator"
	"github.com/genpoke/battle-backend/internal/room"
	"github.com/genpoke/battle-backend/internal/types"
)

// Broadcaster is the slice of the connection registry the loop sends through.
type Broadcaster interface {
	Broadcast(ctx context.Context, roomCode string, msg any, exclude ...string)
}

type Config struct {
	Tick        time.Duration // timer resolution, 1s in production
	Pace        time.Duration // delay between per-action broadcasts
	EvalTimeout time.Duration // budget per evaluator call
}

// Orchestrator runs one goroutine per active session. It holds only a
// reference to its room and never outlives it: teardown cancels the context
// it runs under.
type Orchestrator struct {
	room *room.Room
	bc   Broadcaster
	eval evaluator.Evaluator
	log  *zap.Logger
	rng  *rand.Rand
	cfg  Config

	onFinished func() // optional; invoked once when the battle ends
}

func New(r *room.Room, bc Broadcaster, eval evaluator.Evaluator, rng *rand.Rand, log *zap.Logger, cfg Config) *Orchestrator {
	if cfg.Tick <= 0 {
		cfg.Tick = time.Second
	}
	return &Orchestrator{
		room: r,
		bc:   bc,
		eval: eval,
		log:  log.With(zap.String("room_code", r.Code)),
		rng:  rng,
		cfg:  cfg,
	}
}

// SetOnFinished registers a callback fired after the battle ends (not on
// cancellation).
func (o *Orchestrator) SetOnFinished(fn func()) { o.onFinished = fn }

// Run loops until the battle ends or ctx is cancelled. Cancellation exits
// without emitting further state.
func (o *Orchestrator) Run(ctx context.Context) {
	o.log.Info("turn orchestrator started")
	ticker := time.NewTicker(o.cfg.Tick)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			o.log.Info("turn orchestrator cancelled")
			return
		case <-ticker.C:
			if done := o.step(ctx); done {
				o.log.Info("turn orchestrator finished")
				if o.onFinished != nil {
					o.onFinished()
				}
				return
			}
		}
	}
}

// step runs one tick. Panics are contained here so a bad turn never kills
// the loop.
func (o *Orchestrator) step(ctx context.Context) (done bool) {
	defer func() {
		if rec := recover(); rec != nil {
			o.log.Error("turn loop panic recovered", zap.Any("panic", rec))
		}
	}()

	if o.room.Status() != room.StatusBattle {
		return true
	}

	remaining := o.room.Remaining()
	o.bc.Broadcast(ctx, o.room.Code,
		types.NewTurnTimer(remaining, o.room.CurrentTurn(), o.room.PendingCount()))

	if remaining > 0 && !o.room.AllSubmitted() {
		return false
	}
	return o.resolveTurn(ctx)
}

// resolveTurn is the atomic resolution step: DrainActions backfills and
// clears the pending map in one critical section, so any submission landing
// after this point counts toward the next turn.
func (o *Orchestrator) resolveTurn(ctx context.Context) (done bool) {
	boss := o.room.Boss()
	if boss == nil {
		return true
	}

	actions := o.room.DrainActions()
	o.log.Info("resolving turn",
		zap.Int("turn", o.room.CurrentTurn()), zap.Int("actions", len(actions)))

	bossHP := boss.CurrentHP
	for i, a := range actions {
		bonus := o.scorePrompt(ctx, a, boss)
		dmg, eff, effMsg := battle.CalculateDamage(a.Skill.Power, a.Skill.Type, boss.Type, bonus)
		hp, maxHP, _ := o.room.ApplyBossDamage(dmg)
		bossHP = hp

		if i > 0 {
			o.pause(ctx)
		}
		o.bc.Broadcast(ctx, o.room.Code, types.BattleAction{
			Type:          "battle_action",
			Actor:         a.PlayerName,
			Skill:         a.Skill.Name,
			Target:        boss.Name,
			Damage:        dmg,
			BossHP:        &hp,
			BossMaxHP:     &maxHP,
			Effectiveness: eff,
			Message:       actionMessage(a.PlayerName, a.Skill.Name, effMsg),
		})
	}

	if bossHP == 0 {
		o.room.Finish()
		o.bc.Broadcast(ctx, o.room.Code,
			types.NewBattleEnd("win", fmt.Sprintf("%s was defeated!", boss.Name)))
		return true
	}

	if done := o.bossRetaliation(ctx, boss); done {
		return true
	}

	turn, err := o.room.NextTurn()
	if err != nil {
		return true
	}
	o.bc.Broadcast(ctx, o.room.Code,
		types.NewNewTurn(turn, int(o.room.TurnDuration.Seconds())))
	return false
}

func (o *Orchestrator) bossRetaliation(ctx context.Context, boss *battle.Boss) (done bool) {
	targets := o.room.LivingTargets()
	if len(targets) == 0 {
		o.room.Finish()
		o.bc.Broadcast(ctx, o.room.Code,
			types.NewBattleEnd("lose", "The party has fallen..."))
		return true
	}

	target := targets[o.rng.Intn(len(targets))]
	skill := boss.SelectSkill(o.rng)
	dmg, eff, effMsg := battle.CalculateDamage(skill.Power, skill.Type, target.CreatureType, 0)

	hp, maxHP, allDown, err := o.room.ApplyMemberDamage(target.ConnectionID, dmg)
	if err != nil {
		// Target left between snapshot and apply; skip retaliation this turn.
		return false
	}

	o.pause(ctx)
	o.bc.Broadcast(ctx, o.room.Code, types.BattleAction{
		Type:          "battle_action",
		Actor:         boss.Name,
		Skill:         skill.Name,
		Target:        target.PlayerName,
		Damage:        dmg,
		TargetHP:      &hp,
		TargetMaxHP:   &maxHP,
		Effectiveness: eff,
		Message:       actionMessage(boss.Name, skill.Name, effMsg),
	})

	if allDown {
		o.room.Finish()
		o.bc.Broadcast(ctx, o.room.Code,
			types.NewBattleEnd("lose", "The party has fallen..."))
		return true
	}
	return false
}

// scorePrompt asks the evaluator for the tactical bonus. Defaulted actions
// and blank prompts are worth nothing; the evaluator absorbs its own
// failures.
func (o *Orchestrator) scorePrompt(ctx context.Context, a room.TurnAction, boss *battle.Boss) float64 {
	if a.Defaulted || strings.TrimSpace(a.Prompt) == "" {
		return 0
	}

	ectx := ctx
	if o.cfg.EvalTimeout > 0 {
		var cancel context.CancelFunc
		ectx, cancel = context.WithTimeout(ctx, o.cfg.EvalTimeout)
		defer cancel()
	}
	return evaluator.Clamp(o.eval.Evaluate(ectx, evaluator.Request{
		Prompt:       a.Prompt,
		SkillName:    a.Skill.Name,
		SkillType:    a.Skill.Type,
		DefenderName: boss.Name,
		DefenderType: boss.Type,
	}))
}

// pause spaces out per-action broadcasts so clients can render them in
// sequence.
func (o *Orchestrator) pause(ctx context.Context) {
	if o.cfg.Pace <= 0 {
		return
	}
	select {
	case <-ctx.Done():
	case <-time.After(o.cfg.Pace):
	}
}

func actionMessage(actor, skill, effMsg string) string {
	msg := fmt.Sprintf("%s used %s!", actor, skill)
	if effMsg != "" {
		msg += " " + effMsg
	}
	return msg
}
