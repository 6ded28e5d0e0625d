package chat

import (
	"bufio"
	"context"
	"net"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gotwitcher/internal/app/infrastructure/config"
	"gotwitcher/internal/app/ports"
	"gotwitcher/pkg/logger"
)

// chatServer is an in-process IRC server. It answers every NICK with
// a welcome reply and records all received lines per nickname.
type chatServer struct {
	ln net.Listener

	mu    sync.Mutex
	conns map[string]net.Conn
	lines map[string][]string
}

func newChatServer(t *testing.T) *chatServer {
	t.Helper()
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	s := &chatServer{
		ln:    ln,
		conns: make(map[string]net.Conn),
		lines: make(map[string][]string),
	}
	go s.serve()
	t.Cleanup(func() { _ = ln.Close() })
	return s
}

func (s *chatServer) serve() {
	for {
		conn, err := s.ln.Accept()
		if err != nil {
			return
		}
		go s.handle(conn)
	}
}

func (s *chatServer) handle(conn net.Conn) {
	reader := bufio.NewReader(conn)
	var nick string
	var early []string // lines before NICK, e.g. PASS
	for {
		line, err := reader.ReadString('\n')
		if err != nil {
			return
		}
		line = strings.TrimRight(line, "\r\n")

		if strings.HasPrefix(line, "NICK ") {
			nick = strings.TrimPrefix(line, "NICK ")
			s.mu.Lock()
			s.conns[nick] = conn
			s.lines[nick] = append(s.lines[nick], early...)
			s.mu.Unlock()
			early = nil
			_, _ = conn.Write([]byte(":testserver 001 " + nick + " :Welcome, GLHF!\r\n"))
		}
		if nick == "" {
			early = append(early, line)
			continue
		}
		s.mu.Lock()
		s.lines[nick] = append(s.lines[nick], line)
		s.mu.Unlock()
	}
}

func (s *chatServer) addr() (string, int) {
	addr := s.ln.Addr().(*net.TCPAddr)
	return addr.IP.String(), addr.Port
}

func (s *chatServer) linesOf(nick string) []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.lines[nick]...)
}

func (s *chatServer) waitFor(t *testing.T, nick, prefix string) {
	t.Helper()
	deadline := time.Now().Add(3 * time.Second)
	for time.Now().Before(deadline) {
		for _, line := range s.linesOf(nick) {
			if strings.HasPrefix(line, prefix) {
				return
			}
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("%s never sent a %q line: %v", nick, prefix, s.linesOf(nick))
}

func (s *chatServer) sendTo(t *testing.T, nick, line string) {
	t.Helper()
	deadline := time.Now().Add(3 * time.Second)
	for time.Now().Before(deadline) {
		s.mu.Lock()
		conn := s.conns[nick]
		s.mu.Unlock()
		if conn != nil {
			_, err := conn.Write([]byte(line + "\r\n"))
			require.NoError(t, err)
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("no connection registered for %s", nick)
}

type fakeSession struct {
	authorized bool
	host       string
	port       int
}

func (f *fakeSession) Authorized() bool { return f.authorized }
func (f *fakeSession) Token() string    { return "sometoken" }
func (f *fakeSession) CurrentUser() (*ports.User, error) {
	return &ports.User{Name: "mynick"}, nil
}
func (f *fakeSession) GetChatServer(channel string) (string, int, error) {
	return f.host, f.port, nil
}

var _ ports.SessionPort = (*fakeSession)(nil)

func testChatConfig() config.Chat {
	return config.Chat{
		MessageLimit:  20,
		LimitInterval: 30 * time.Second,
		QueueSize:     10,
		PollTimeout:   20 * time.Millisecond,
	}
}

func startClient(t *testing.T, channel string) (*Client, *chatServer) {
	t.Helper()
	server := newChatServer(t)
	host, port := server.addr()
	session := &fakeSession{authorized: true, host: host, port: port}

	client, err := New(logger.NopLogger{}, session, channel, testChatConfig())
	require.NoError(t, err)

	done := make(chan struct{})
	go func() {
		client.ProcessForever()
		close(done)
	}()
	t.Cleanup(func() {
		client.Shutdown()
		select {
		case <-done:
		case <-time.After(3 * time.Second):
			t.Error("event loop did not stop after Shutdown")
		}
	})
	return client, server
}

func TestNewUnauthorized(t *testing.T) {
	_, err := New(logger.NopLogger{}, &fakeSession{authorized: false}, "somechannel", testChatConfig())
	assert.ErrorIs(t, err, ports.ErrNotAuthorized)
}

func TestClientRegistersAndJoins(t *testing.T) {
	_, server := startClient(t, "somechannel")

	for _, nick := range []string{"mynickin", "mynickout"} {
		server.waitFor(t, nick, "JOIN ")
		lines := server.linesOf(nick)

		assert.Equal(t, "PASS oauth:sometoken", lines[0])
		assert.Equal(t, "NICK "+nick, lines[1])

		var after []string
		for _, line := range lines {
			if strings.HasPrefix(line, "CAP ") || strings.HasPrefix(line, "JOIN ") {
				after = append(after, line)
			}
		}
		want := []string{"CAP LS", "CAP REQ :twitch.tv/tags", "CAP END", "JOIN #somechannel"}
		assert.Equal(t, want, after, "capability negotiation for %s", nick)
	}
}

func TestClientStoresOnlyInConnMessages(t *testing.T) {
	client, server := startClient(t, "somechannel")
	server.waitFor(t, "mynickin", "JOIN ")
	server.waitFor(t, "mynickout", "JOIN ")

	raw := "@color=#0000FF;subscriber=1 :other!other@host PRIVMSG #somechannel :hello there"
	server.sendTo(t, "mynickin", raw)
	server.sendTo(t, "mynickout", raw)

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	m, err := client.NextMessage(ctx)
	require.NoError(t, err)
	assert.Equal(t, "hello there", m.Text)
	assert.Equal(t, "#somechannel", m.Target)
	assert.Equal(t, "other", m.Source.Nickname)
	assert.Equal(t, "#0000FF", m.Color)
	assert.True(t, m.Subscriber)

	// the out connection must not store a duplicate
	shortCtx, shortCancel := context.WithTimeout(context.Background(), 200*time.Millisecond)
	defer shortCancel()
	_, err = client.NextMessage(shortCtx)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestClientSendMessage(t *testing.T) {
	client, server := startClient(t, "somechannel")
	server.waitFor(t, "mynickout", "JOIN ")

	require.NoError(t, client.SendMessage("hi everyone"))
	server.waitFor(t, "mynickout", "PRIVMSG #somechannel :hi everyone")

	// outbound messages go through the out connection only
	for _, line := range server.linesOf("mynickin") {
		assert.False(t, strings.HasPrefix(line, "PRIVMSG "), "in conn sent %q", line)
	}
}

func TestClientSendsActionAndNotice(t *testing.T) {
	client, server := startClient(t, "somechannel")
	server.waitFor(t, "mynickout", "JOIN ")

	require.NoError(t, client.SendAction("waves"))
	server.waitFor(t, "mynickout", "PRIVMSG #somechannel :\x01ACTION waves\x01")

	client.Notice("#somechannel", "heads up")
	server.waitFor(t, "mynickout", "NOTICE #somechannel :heads up")
}

func TestSetChannelEmptyDisconnects(t *testing.T) {
	client, server := startClient(t, "somechannel")
	server.waitFor(t, "mynickin", "JOIN ")

	require.NoError(t, client.SetChannel(""))
	assert.Equal(t, "", client.Channel())
	assert.ErrorIs(t, client.SendMessage("hi"), ErrNoChannel)
}

func TestClientAnswersPing(t *testing.T) {
	_, server := startClient(t, "somechannel")
	server.waitFor(t, "mynickin", "JOIN ")
	server.waitFor(t, "mynickout", "JOIN ")

	// both connections answer the keepalive, the out connection too,
	// despite its dispatch filter
	for _, nick := range []string{"mynickin", "mynickout"} {
		server.sendTo(t, nick, "PING :testserver")
		server.waitFor(t, nick, "PONG testserver")
	}
}
