package irc

import (
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	proto "gotwitcher/internal/app/domain/irc"
	"gotwitcher/pkg/logger"
)

// DispatchFunc receives every event a connection produced.
type DispatchFunc func(conn *Conn, ev proto.Event)

// Reactor drives all connections from a single processing loop.
// Deferred calls queued with ExecuteDelayed run on that loop before
// the next poll round, so handlers and senders never race.
type Reactor struct {
	log      logger.Logger
	dispatch DispatchFunc

	mu      sync.Mutex
	conns   []*Conn
	delayed []func()

	looping atomic.Bool
}

func NewReactor(log logger.Logger, dispatch DispatchFunc) *Reactor {
	return &Reactor{log: log, dispatch: dispatch}
}

func (r *Reactor) AddConn(conn *Conn) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.conns = append(r.conns, conn)
}

func (r *Reactor) RemoveConn(conn *Conn) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, c := range r.conns {
		if c == conn {
			r.conns = append(r.conns[:i], r.conns[i+1:]...)
			return
		}
	}
}

// ExecuteDelayed queues fn to run on the processing loop before the
// next poll round.
func (r *Reactor) ExecuteDelayed(fn func()) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.delayed = append(r.delayed, fn)
}

// ProcessForever loops until Shutdown, polling every connection with
// the given timeout per round. It can be called again after a
// shutdown to resume processing.
func (r *Reactor) ProcessForever(timeout time.Duration) {
	r.looping.Store(true)
	for r.looping.Load() {
		r.ProcessOnce(timeout)
	}
}

// ProcessOnce runs the queued deferred calls, then polls each
// connection once and dispatches the resulting events.
func (r *Reactor) ProcessOnce(timeout time.Duration) {
	for _, fn := range r.takeDelayed() {
		fn()
	}

	conns := r.snapshot()
	active := 0
	for _, conn := range conns {
		if conn.Connected() {
			active++
		}
	}
	if active == 0 {
		time.Sleep(timeout)
		return
	}

	per := timeout / time.Duration(active)
	for _, conn := range conns {
		if !conn.Connected() {
			continue
		}
		events, err := conn.Poll(per)
		for _, ev := range events {
			if r.dispatch != nil {
				r.dispatch(conn, ev)
			}
		}
		if err != nil {
			if conn.Connected() {
				r.log.Warn("connection lost",
					slog.String("conn", conn.Name()), slog.String("error", err.Error()))
			}
			_ = conn.Close()
		}
	}
}

// Shutdown closes every connection and stops the processing loop.
func (r *Reactor) Shutdown() {
	for _, conn := range r.snapshot() {
		_ = conn.Close()
	}
	r.looping.Store(false)
}

func (r *Reactor) takeDelayed() []func() {
	r.mu.Lock()
	defer r.mu.Unlock()
	fns := r.delayed
	r.delayed = nil
	return fns
}

func (r *Reactor) snapshot() []*Conn {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]*Conn(nil), r.conns...)
}
