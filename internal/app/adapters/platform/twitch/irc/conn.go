package irc

import (
	"errors"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"gotwitcher/internal/app/adapters/metrics"
	proto "gotwitcher/internal/app/domain/irc"
	"gotwitcher/pkg/logger"
)

type State int32

const (
	StateDisconnected State = iota
	StateConnecting
	StateConnected
)

var ErrNotConnected = errors.New("connection is not established")

// Dialer opens the line transport to a chat server.
type Dialer func(server string, port int) (wire, error)

// Conn is one registered connection to a chat server. Outbound lines
// go through the shared send limiter; inbound lines are decoded into
// protocol events by Poll.
type Conn struct {
	log     logger.Logger
	name    string
	limiter *Limiter
	dial    Dialer

	mu       sync.Mutex
	w        wire
	decoder  proto.Decoder
	state    atomic.Int32
	nickname string
}

func NewConn(log logger.Logger, name string, limiter *Limiter) *Conn {
	c := &Conn{log: log, name: name, limiter: limiter, dial: dialTCP}
	c.setState(StateDisconnected)
	return c
}

// UseWebsocket switches the connection to the websocket transport for
// subsequent Connect calls.
func (c *Conn) UseWebsocket() {
	c.dial = dialWebsocket
}

// Connect dials the server and registers with the given credentials.
// The password goes out first so the server can tie it to the
// registration.
func (c *Conn) Connect(server string, port int, nickname, username, password string) error {
	c.setState(StateConnecting)
	w, err := c.dial(server, port)
	if err != nil {
		c.setState(StateDisconnected)
		return err
	}

	c.mu.Lock()
	c.w = w
	c.decoder = proto.Decoder{}
	c.nickname = nickname
	c.mu.Unlock()
	c.setState(StateConnected)

	if password != "" {
		if err := c.SendLine(proto.Pass(password)); err != nil {
			return err
		}
	}
	if err := c.SendLine(proto.Nick(nickname)); err != nil {
		return err
	}
	return c.SendLine(proto.User(username, username))
}

// SendLine writes one CRLF-terminated line, sleeping first when the
// send budget is exhausted.
func (c *Conn) SendLine(raw string) error {
	wait := c.limiter.WaitTime()
	metrics.RateLimitWait.Observe(wait.Seconds())
	if wait > 0 {
		c.log.Debug("sent too many messages, waiting",
			slog.String("conn", c.name), slog.Duration("wait", wait))
		time.Sleep(wait)
	}

	c.mu.Lock()
	w := c.w
	c.mu.Unlock()
	if w == nil || c.State() != StateConnected {
		return ErrNotConnected
	}
	return w.writeLine(raw)
}

// Poll reads lines for at most timeout and returns the events they
// decode to. After the first line it keeps draining until the
// transport runs dry. Undecodable lines are logged and skipped.
func (c *Conn) Poll(timeout time.Duration) ([]proto.Event, error) {
	c.mu.Lock()
	w := c.w
	c.mu.Unlock()
	if w == nil || c.State() != StateConnected {
		return nil, nil
	}

	var events []proto.Event
	deadline := time.Now().Add(timeout)
	for {
		line, err := w.readLine(deadline)
		if err != nil {
			if isTimeout(err) {
				return events, nil
			}
			return events, err
		}

		evs, err := c.decode(line)
		events = append(events, evs...)

		// drain whatever is already buffered
		deadline = time.Now().Add(time.Millisecond)
	}
}

func (c *Conn) decode(line string) ([]proto.Event, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	evs, err := c.decoder.Decode(line)
	if err != nil {
		c.log.Warn("skipping undecodable line",
			slog.String("conn", c.name), slog.String("line", line))
		return nil, err
	}
	return evs, nil
}

func (c *Conn) Close() error {
	c.setState(StateDisconnected)

	c.mu.Lock()
	w := c.w
	c.w = nil
	c.mu.Unlock()
	if w == nil {
		return nil
	}
	return w.close()
}

func (c *Conn) State() State {
	return State(c.state.Load())
}

func (c *Conn) Connected() bool {
	return c.State() == StateConnected
}

func (c *Conn) Nickname() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.nickname
}

func (c *Conn) Name() string {
	return c.name
}

func (c *Conn) setState(s State) {
	c.state.Store(int32(s))
	metrics.ConnectionState.WithLabelValues(c.name).Set(float64(s))
}
