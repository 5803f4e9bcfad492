package main

import (
	"context"
	"errors"
	"log"
	"math/rand"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/genpoke/battle-backend/internal/config"
	"github.com/genpoke/battle-backend/internal/creature"
	"github.com/genpoke/battle-backend/internal/evaluator"
	"github.com/genpoke/battle-backend/internal/httpapi"
	"github.com/genpoke/battle-backend/internal/mirror"
	"github.com/genpoke/battle-backend/internal/orchestrator"
	"github.com/genpoke/battle-backend/internal/registry"
	"github.com/genpoke/battle-backend/internal/room"
	"github.com/genpoke/battle-backend/internal/skills"
	"github.com/genpoke/battle-backend/internal/ws"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logger, err := buildLogger(cfg.Environment)
	if err != nil {
		log.Fatalf("build logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	creatureStore, mirrorStore := buildStores(cfg, logger)
	sink := mirror.NewSink(mirrorStore, logger)

	catalog := skills.NewStaticCatalog(rand.New(rand.NewSource(time.Now().UnixNano())))
	reg := registry.New(ctx, logger, cfg.HeartbeatInterval, cfg.HeartbeatTimeout)
	rooms := room.NewManager(logger, creatureStore, catalog, sink, room.ManagerConfig{
		DefaultBossHP:    cfg.BossBaseHP,
		TurnDuration:     cfg.TurnDuration,
		MemberSkillCount: cfg.MemberSkillCnt,
	})

	var eval evaluator.Evaluator
	if cfg.EvaluatorURL != "" {
		eval = evaluator.NewHTTP(cfg.EvaluatorURL, cfg.EvaluatorTimeout, logger)
	} else {
		logger.Warn("no evaluator configured, using fixed prompt bonus")
		eval = evaluator.Fixed{Bonus: evaluator.FallbackBonus}
	}

	handler := httpapi.SetupRoutes(logger, rooms, ws.Deps{
		Log:       logger,
		Registry:  reg,
		Rooms:     rooms,
		Evaluator: eval,
		Orch: orchestrator.Config{
			Tick:        cfg.TurnTick,
			Pace:        cfg.BroadcastPace,
			EvalTimeout: cfg.EvaluatorTimeout,
		},
		BaseCtx:         ctx,
		BossHPPerPlayer: cfg.BossHPPerPlayer,
	})

	srv := &http.Server{Addr: cfg.Addr, Handler: handler}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("listening", zap.String("addr", cfg.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		logger.Fatal("server error", zap.Error(err))
	}
	logger.Info("shut down cleanly")
}

func buildLogger(environment string) (*zap.Logger, error) {
	if environment == "production" {
		return zap.NewProduction()
	}
	return zap.NewDevelopment()
}

// buildStores opens postgres when configured; otherwise the server runs
// fully in memory with a seeded dev roster and a no-op mirror.
func buildStores(cfg *config.Config, logger *zap.Logger) (creature.Store, mirror.Store) {
	if cfg.DatabaseURL == "" {
		logger.Warn("no DATABASE_URL, using in-memory stores")
		return creature.NewMemoryStore(creature.DevSeed()...), mirror.Noop{}
	}

	db, err := gorm.Open(postgres.Open(cfg.DatabaseURL), &gorm.Config{})
	if err != nil {
		logger.Warn("database unavailable, falling back to in-memory stores", zap.Error(err))
		return creature.NewMemoryStore(creature.DevSeed()...), mirror.Noop{}
	}
	if err := db.AutoMigrate(&creature.Creature{}, &mirror.RoomRecord{}, &mirror.MemberRecord{}); err != nil {
		logger.Warn("automigrate failed", zap.Error(err))
	}
	return creature.NewGormStore(db), mirror.NewGormStore(db)
}
