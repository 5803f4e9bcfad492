// Package creature exposes the read-only creature store the session core
// joins participants from.
package creature

import (
	"context"
	"errors"
	"sync"

	"gorm.io/gorm"
)

var ErrNotFound = errors.New("creature not found")

type Creature struct {
	ID            string `gorm:"primaryKey" json:"id"`
	Name          string `json:"name"`
	Type          string `json:"type"`
	FrontImageURL string `json:"front_image"`
	Level         int    `json:"level"`
	HP            int    `json:"hp"`
	Attack        int    `json:"attack"`
	Defense       int    `json:"defense"`
	Speed         int    `json:"speed"`
}

func (Creature) TableName() string { return "creatures" }

// Store fetches creatures by id. Implementations must be safe for
// concurrent use.
type Store interface {
	FetchByID(ctx context.Context, id string) (*Creature, error)
}

type GormStore struct {
	db *gorm.DB
}

func NewGormStore(db *gorm.DB) *GormStore { return &GormStore{db: db} }

func (s *GormStore) FetchByID(ctx context.Context, id string) (*Creature, error) {
	var c Creature
	err := s.db.WithContext(ctx).First(&c, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// MemoryStore is the no-database fallback used in development and tests.
type MemoryStore struct {
	mu sync.RWMutex
	m  map[string]Creature
}

func NewMemoryStore(seed ...Creature) *MemoryStore {
	s := &MemoryStore{m: make(map[string]Creature, len(seed))}
	for _, c := range seed {
		s.m[c.ID] = c
	}
	return s
}

func (s *MemoryStore) Put(c Creature) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.m[c.ID] = c
}

func (s *MemoryStore) FetchByID(_ context.Context, id string) (*Creature, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	c, ok := s.m[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &c, nil
}

// DevSeed is a small roster so a fresh checkout can run sessions without a
// database or the upload pipeline.
func DevSeed() []Creature {
	return []Creature{
		{ID: "starter-flame", Name: "Cindertail", Type: "fire", Level: 12, HP: 120, Attack: 55, Defense: 40, Speed: 65},
		{ID: "starter-tide", Name: "Wavefin", Type: "water", Level: 12, HP: 130, Attack: 48, Defense: 50, Speed: 55},
		{ID: "starter-spark", Name: "Voltcub", Type: "electric", Level: 12, HP: 110, Attack: 52, Defense: 38, Speed: 80},
		{ID: "starter-bloom", Name: "Thornleaf", Type: "grass", Level: 12, HP: 125, Attack: 50, Defense: 48, Speed: 50},
	}
}
