// Package mirror persists session snapshots for observability. Writes are
// best-effort: the battle core calls the Sink and never waits on, or fails
// because of, the database.
package mirror

import (
	"context"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type RoomRecord struct {
	Code       string `gorm:"primaryKey"`
	Status     string
	MaxPlayers int
	BossHP     int
	BossMaxHP  int
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

func (RoomRecord) TableName() string { return "rooms" }

type MemberRecord struct {
	ID           uint   `gorm:"primaryKey"`
	RoomCode     string `gorm:"index"`
	ConnectionID string
	CreatureID   string
	PlayerName   string
	IsReady      bool
	CreatedAt    time.Time
}

func (MemberRecord) TableName() string { return "room_members" }

type Store interface {
	SaveRoom(ctx context.Context, rec RoomRecord) error
	SaveMember(ctx context.Context, rec MemberRecord) error
	UpdateRoomStatus(ctx context.Context, code, status string, bossHP, bossMaxHP int) error
}

type GormStore struct {
	db *gorm.DB
}

func NewGormStore(db *gorm.DB) *GormStore { return &GormStore{db: db} }

func (s *GormStore) SaveRoom(ctx context.Context, rec RoomRecord) error {
	return s.db.WithContext(ctx).
		Clauses(clause.OnConflict{UpdateAll: true}).
		Create(&rec).Error
}

func (s *GormStore) SaveMember(ctx context.Context, rec MemberRecord) error {
	return s.db.WithContext(ctx).Create(&rec).Error
}

func (s *GormStore) UpdateRoomStatus(ctx context.Context, code, status string, bossHP, bossMaxHP int) error {
	return s.db.WithContext(ctx).Model(&RoomRecord{}).
		Where("code = ?", code).
		Updates(map[string]any{"status": status, "boss_hp": bossHP, "boss_max_hp": bossMaxHP}).Error
}

// Noop satisfies Store when no database is configured.
type Noop struct{}

func (Noop) SaveRoom(context.Context, RoomRecord) error     { return nil }
func (Noop) SaveMember(context.Context, MemberRecord) error { return nil }
func (Noop) UpdateRoomStatus(context.Context, string, string, int, int) error {
	return nil
}

// Sink wraps a Store with fire-and-forget semantics: each write runs in its
// own goroutine with a bounded deadline, and failures are only logged.
type Sink struct {
	store   Store
	log     *zap.Logger
	timeout time.Duration
}

func NewSink(store Store, log *zap.Logger) *Sink {
	return &Sink{store: store, log: log, timeout: 5 * time.Second}
}

func (s *Sink) SaveRoom(rec RoomRecord) {
	s.async("save room", func(ctx context.Context) error {
		return s.store.SaveRoom(ctx, rec)
	})
}

func (s *Sink) SaveMember(rec MemberRecord) {
	s.async("save member", func(ctx context.Context) error {
		return s.store.SaveMember(ctx, rec)
	})
}

func (s *Sink) UpdateRoomStatus(code, status string, bossHP, bossMaxHP int) {
	s.async("update room status", func(ctx context.Context) error {
		return s.store.UpdateRoomStatus(ctx, code, status, bossHP, bossMaxHP)
	})
}

func (s *Sink) async(op string, fn func(ctx context.Context) error) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
		defer cancel()
		if err := fn(ctx); err != nil {
			s.log.Warn("session mirror write failed", zap.String("op", op), zap.Error(err))
		}
	}()
}
