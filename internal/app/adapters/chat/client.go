// Package chat implements the dual connection chat client: one
// connection receives everything, the other only sends, so inbound
// traffic is never stalled by the send budget.
package chat

import (
	"context"
	"log/slog"
	"strings"
	"sync"

	ircconn "gotwitcher/internal/app/adapters/platform/twitch/irc"
	"gotwitcher/internal/app/adapters/metrics"
	proto "gotwitcher/internal/app/domain/irc"
	"gotwitcher/internal/app/domain/message"
	"gotwitcher/internal/app/infrastructure/config"
	"gotwitcher/internal/app/infrastructure/storage"
	"gotwitcher/internal/app/ports"
	"gotwitcher/pkg/logger"
)

// HandlerFunc handles one protocol event.
type HandlerFunc func(conn *ircconn.Conn, ev proto.Event)

// Client connects to a single channel over two connections. The out
// connection only sees the welcome and join events it needs to
// register; everything else is handled by the in connection.
type Client struct {
	log       logger.Logger
	session   ports.SessionPort
	loginUser *ports.User
	cfg       config.Chat

	reactor *ircconn.Reactor
	inConn  *ircconn.Conn
	outConn *ircconn.Conn

	messages *storage.Queue[message.TaggedMessage]

	mu       sync.Mutex
	channel  string
	target   string
	handlers map[string]HandlerFunc
}

// New builds a client for the given channel. The session must be
// authorized; the chat nickname is the login user's name. An empty
// channel leaves the client disconnected until SetChannel.
func New(log logger.Logger, session ports.SessionPort, channel string, cfg config.Chat) (*Client, error) {
	if !session.Authorized() {
		return nil, ports.ErrNotAuthorized
	}
	loginUser, err := session.CurrentUser()
	if err != nil {
		return nil, err
	}

	c := &Client{
		log:       log,
		session:   session,
		loginUser: loginUser,
		cfg:       cfg,
		messages:  storage.NewQueue[message.TaggedMessage](cfg.QueueSize),
		handlers:  make(map[string]HandlerFunc),
	}
	c.inConn = ircconn.NewConn(log, "in", ircconn.NewLimiter(cfg.MessageLimit, cfg.LimitInterval))
	c.outConn = ircconn.NewConn(log, "out", ircconn.NewLimiter(cfg.MessageLimit, cfg.LimitInterval))
	if cfg.UseWebsocket {
		c.inConn.UseWebsocket()
		c.outConn.UseWebsocket()
	}
	c.reactor = ircconn.NewReactor(log, c.dispatch)
	c.reactor.AddConn(c.inConn)
	c.reactor.AddConn(c.outConn)

	c.Handle("welcome", c.onWelcome)
	c.Handle("pubmsg", c.storeMessage)
	c.Handle("privmsg", c.storeMessage)

	if channel != "" {
		if err := c.SetChannel(channel); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// Handle registers fn for the given event type, replacing any
// previous handler.
func (c *Client) Handle(eventType string, fn HandlerFunc) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.handlers[eventType] = fn
}

// SetChannel connects both connections to the server hosting the
// channel's chat. An empty channel disconnects. Setting the same
// channel again reconnects.
func (c *Client) SetChannel(channel string) error {
	name := strings.TrimPrefix(channel, "#")

	c.disconnect()
	c.mu.Lock()
	c.channel = name
	c.target = ""
	if name != "" {
		c.target = "#" + name
	}
	c.mu.Unlock()

	if name == "" {
		return nil
	}

	host, port, err := c.session.GetChatServer(name)
	if err != nil {
		return err
	}
	password := "oauth:" + c.session.Token()

	// distinct nicknames keep the server from treating the two
	// connections as duplicates of one client
	for _, conn := range []*ircconn.Conn{c.inConn, c.outConn} {
		nickname := c.loginUser.Name + conn.Name()
		if err := conn.Connect(host, port, nickname, nickname, password); err != nil {
			c.disconnect()
			return err
		}
	}
	c.log.Info("connected to chat",
		slog.String("channel", name), slog.String("server", host), slog.Int("port", port))
	return nil
}

func (c *Client) disconnect() {
	for _, conn := range []*ircconn.Conn{c.inConn, c.outConn} {
		if conn != nil && conn.Connected() {
			_ = conn.SendLine(proto.Quit("Disconnect."))
			_ = conn.Close()
		}
	}
}

// Channel returns the currently set channel name without the "#".
func (c *Client) Channel() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.channel
}

// Target returns the channel in message target form, e.g. "#somechannel".
func (c *Client) Target() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.target
}

// ProcessForever runs the event loop until Shutdown. It blocks the
// calling goroutine.
func (c *Client) ProcessForever() {
	c.reactor.ProcessForever(c.cfg.PollTimeout)
}

// Shutdown closes both connections and stops the event loop. Safe to
// call from another goroutine.
func (c *Client) Shutdown() {
	c.reactor.Shutdown()
}

// NextMessage returns the oldest stored chat message, blocking until
// one arrives or ctx is done.
func (c *Client) NextMessage(ctx context.Context) (message.TaggedMessage, error) {
	return c.messages.Get(ctx)
}

// Messages returns the queue buffering the received chat messages.
func (c *Client) Messages() *storage.Queue[message.TaggedMessage] {
	return c.messages
}

// dispatch routes events to the registered handlers. The out
// connection only dispatches welcome and join, so it can register and
// enter the channel but never double-handles chat traffic.
func (c *Client) dispatch(conn *ircconn.Conn, ev proto.Event) {
	c.log.Trace("dispatching event",
		slog.String("conn", conn.Name()), slog.String("type", ev.Type))

	// keepalive is answered on every connection, beneath the out
	// connection filter; the server drops whichever one stays silent
	if ev.Type == "ping" {
		c.onPing(conn, ev)
	}

	if conn == c.outConn && ev.Type != "welcome" && ev.Type != "join" {
		return
	}

	c.mu.Lock()
	handler, ok := c.handlers[ev.Type]
	c.mu.Unlock()
	if ok {
		handler(conn, ev)
	}
}

// onWelcome negotiates the message tag capability and joins the
// channel once the server accepts the registration.
func (c *Client) onWelcome(conn *ircconn.Conn, ev proto.Event) {
	target := c.Target()
	if !proto.IsChannel(target) {
		return
	}
	_ = conn.SendLine(proto.Cap("LS"))
	_ = conn.SendLine(proto.Cap("REQ", "twitch.tv/tags"))
	_ = conn.SendLine(proto.Cap("END"))
	c.log.Debug("joining channel",
		slog.String("conn", conn.Name()), slog.String("target", target))
	_ = conn.SendLine(proto.Join(target))
}

func (c *Client) onPing(conn *ircconn.Conn, ev proto.Event) {
	target := ev.Target
	if target == "" && len(ev.Arguments) > 0 {
		target = ev.Arguments[0]
	}
	_ = conn.SendLine(proto.Pong(target))
}

// storeMessage converts the event into a tagged message and buffers
// it, evicting the oldest message when the queue is full.
func (c *Client) storeMessage(conn *ircconn.Conn, ev proto.Event) {
	var text string
	if len(ev.Arguments) > 0 {
		text = ev.Arguments[0]
	}
	m := message.FromEvent(ev.Source, ev.Target, text, ev.Tags)
	if c.messages.Put(m) {
		metrics.QueueEvictions.Inc()
	}
	metrics.MessagesReceived.WithLabelValues(ev.Target).Inc()
}
