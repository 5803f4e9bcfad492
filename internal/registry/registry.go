// Package registry owns the set of live client connections and the
// room→connection index, and provides the unicast/broadcast primitives the
// rest of the server sends through.
package registry

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/genpoke/battle-backend/internal/types"
)

// Conn is the transport side of a connection. The websocket layer adapts the
// real socket to this; tests plug in fakes.
type Conn interface {
	Write(ctx context.Context, data []byte) error
	Close(code int, reason string) error
}

const writeTimeout = 3 * time.Second

// StatusSweepTimeout is the application close code for heartbeat expiry.
const StatusSweepTimeout = 4008

// Connection is one live client. Created on handshake, destroyed on
// disconnect or sweep timeout.
type Connection struct {
	ID         string
	RoomCode   string
	PlayerName string

	conn Conn

	mu            sync.Mutex
	lastHeartbeat time.Time
	alive         bool
}

// Touch records a fresh heartbeat.
func (c *Connection) Touch() {
	c.mu.Lock()
	c.lastHeartbeat = time.Now()
	c.mu.Unlock()
}

// Alive reports whether the last write succeeded.
func (c *Connection) Alive() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.alive
}

func (c *Connection) expired(timeout time.Duration) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return time.Since(c.lastHeartbeat) > timeout
}

// write sends one frame, serialized per connection. A transport failure
// marks the connection dead; it never propagates to the caller.
func (c *Connection) write(ctx context.Context, data []byte, log *zap.Logger) {
	wctx, cancel := context.WithTimeout(ctx, writeTimeout)
	defer cancel()

	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.alive {
		return
	}
	if err := c.conn.Write(wctx, data); err != nil {
		c.alive = false
		log.Warn("send failed, marking connection dead",
			zap.String("connection_id", c.ID), zap.Error(err))
	}
}

// Registry tracks every live connection. The heartbeat sweep starts lazily
// on the first registration and runs for the life of the parent context.
type Registry struct {
	log      *zap.Logger
	interval time.Duration
	timeout  time.Duration

	ctx       context.Context
	sweepOnce sync.Once

	mu    sync.RWMutex
	conns map[string]*Connection
	rooms map[string]map[string]struct{}
}

func New(ctx context.Context, log *zap.Logger, interval, timeout time.Duration) *Registry {
	return &Registry{
		log:      log,
		interval: interval,
		timeout:  timeout,
		ctx:      ctx,
		conns:    make(map[string]*Connection),
		rooms:    make(map[string]map[string]struct{}),
	}
}

// Register adds a live connection under its room index.
func (r *Registry) Register(conn Conn, id, roomCode, playerName string) *Connection {
	c := &Connection{
		ID:            id,
		RoomCode:      roomCode,
		PlayerName:    playerName,
		conn:          conn,
		lastHeartbeat: time.Now(),
		alive:         true,
	}

	r.mu.Lock()
	r.conns[id] = c
	if r.rooms[roomCode] == nil {
		r.rooms[roomCode] = make(map[string]struct{})
	}
	r.rooms[roomCode][id] = struct{}{}
	total := len(r.conns)
	r.mu.Unlock()

	r.log.Info("connection registered",
		zap.String("connection_id", id),
		zap.String("room_code", roomCode),
		zap.Int("total_connections", total))

	r.sweepOnce.Do(func() { go r.sweep(r.ctx) })
	return c
}

// Unregister removes a connection from both indices. Idempotent. The room
// index entry is dropped when it empties; tearing down the room itself is
// the session registry's job.
func (r *Registry) Unregister(id string) {
	r.mu.Lock()
	c, ok := r.conns[id]
	if !ok {
		r.mu.Unlock()
		return
	}
	delete(r.conns, id)
	if set := r.rooms[c.RoomCode]; set != nil {
		delete(set, id)
		if len(set) == 0 {
			delete(r.rooms, c.RoomCode)
		}
	}
	total := len(r.conns)
	r.mu.Unlock()

	r.log.Info("connection unregistered",
		zap.String("connection_id", id),
		zap.String("room_code", c.RoomCode),
		zap.Int("total_connections", total))
}

// Send is a best-effort unicast.
func (r *Registry) Send(ctx context.Context, id string, msg any) {
	r.mu.RLock()
	c := r.conns[id]
	r.mu.RUnlock()
	if c == nil {
		return
	}

	data, err := json.Marshal(msg)
	if err != nil {
		r.log.Error("marshal outbound message", zap.Error(err))
		return
	}
	c.write(ctx, data, r.log)
}

// Broadcast fans a message out to every live connection in a room. Sends run
// concurrently and a failing recipient never blocks the others.
func (r *Registry) Broadcast(ctx context.Context, roomCode string, msg any, exclude ...string) {
	skip := make(map[string]struct{}, len(exclude))
	for _, id := range exclude {
		skip[id] = struct{}{}
	}

	r.mu.RLock()
	targets := make([]*Connection, 0, len(r.rooms[roomCode]))
	for id := range r.rooms[roomCode] {
		if _, excluded := skip[id]; excluded {
			continue
		}
		if c := r.conns[id]; c != nil {
			targets = append(targets, c)
		}
	}
	r.mu.RUnlock()

	if len(targets) == 0 {
		return
	}

	data, err := json.Marshal(msg)
	if err != nil {
		r.log.Error("marshal broadcast message", zap.Error(err))
		return
	}

	var wg sync.WaitGroup
	for _, c := range targets {
		wg.Add(1)
		go func(c *Connection) {
			defer wg.Done()
			c.write(ctx, data, r.log)
		}(c)
	}
	wg.Wait()
}

// Heartbeat refreshes a connection's liveness timestamp.
func (r *Registry) Heartbeat(id string) {
	r.mu.RLock()
	c := r.conns[id]
	r.mu.RUnlock()
	if c != nil {
		c.Touch()
	}
}

// RoomCount returns the number of registered connections in a room.
func (r *Registry) RoomCount(roomCode string) int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.rooms[roomCode])
}

// sweep force-disconnects connections whose heartbeat has lapsed and probes
// the survivors. Closing the transport unblocks the connection's read loop,
// which performs the session-level cleanup.
func (r *Registry) sweep(ctx context.Context) {
	r.log.Info("heartbeat sweep started", zap.Duration("interval", r.interval))
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			r.sweepOnceNow(ctx)
		}
	}
}

func (r *Registry) sweepOnceNow(ctx context.Context) {
	r.mu.RLock()
	var stale []*Connection
	roomCodes := make(map[string]struct{})
	for _, c := range r.conns {
		if c.expired(r.timeout) || !c.Alive() {
			stale = append(stale, c)
			continue
		}
		roomCodes[c.RoomCode] = struct{}{}
	}
	r.mu.RUnlock()

	for _, c := range stale {
		r.log.Warn("heartbeat timeout, dropping connection",
			zap.String("connection_id", c.ID))
		r.Unregister(c.ID)
		_ = c.conn.Close(StatusSweepTimeout, "heartbeat timeout")
	}

	probe := types.NewHeartbeatProbe(time.Now().Unix())
	for code := range roomCodes {
		r.Broadcast(ctx, code, probe)
	}
}
