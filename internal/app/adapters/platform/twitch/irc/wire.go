package irc

import (
	"bufio"
	"fmt"
	"net"
	"strings"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

// wire is one line-oriented transport under a connection. readLine
// honors the deadline and returns a net timeout error when no full
// line arrived in time.
type wire interface {
	readLine(deadline time.Time) (string, error)
	writeLine(line string) error
	close() error
}

func isTimeout(err error) bool {
	nerr, ok := err.(net.Error)
	return ok && nerr.Timeout()
}

type tcpWire struct {
	conn    net.Conn
	reader  *bufio.Reader
	pending string
}

func dialTCP(server string, port int) (wire, error) {
	conn, err := net.DialTimeout("tcp", fmt.Sprintf("%s:%d", server, port), 10*time.Second)
	if err != nil {
		return nil, err
	}
	return &tcpWire{conn: conn, reader: bufio.NewReader(conn)}, nil
}

func (w *tcpWire) readLine(deadline time.Time) (string, error) {
	_ = w.conn.SetReadDeadline(deadline)
	s, err := w.reader.ReadString('\n')
	if err != nil {
		// keep the partial line for the next read
		w.pending += s
		return "", err
	}
	line := w.pending + s
	w.pending = ""
	return strings.TrimRight(line, "\r\n"), nil
}

func (w *tcpWire) writeLine(line string) error {
	_, err := w.conn.Write([]byte(line))
	return err
}

func (w *tcpWire) close() error {
	return w.conn.Close()
}

// wsTimeoutError reports an idle read round. Unlike a reader deadline
// it leaves the connection usable.
type wsTimeoutError struct{}

func (wsTimeoutError) Error() string   { return "websocket read timeout" }
func (wsTimeoutError) Timeout() bool   { return true }
func (wsTimeoutError) Temporary() bool { return true }

// wsWire reads frames on a dedicated goroutine because a gorilla
// connection does not survive an expired read deadline. readLine just
// waits on the line channel, so an idle round costs nothing.
type wsWire struct {
	conn    *websocket.Conn
	writeMu sync.Mutex

	lines  chan string
	closed chan struct{}

	errMu   sync.Mutex
	readErr error
}

func dialWebsocket(server string, port int) (wire, error) {
	scheme := "ws"
	if port == 443 {
		scheme = "wss"
	}
	url := fmt.Sprintf("%s://%s:%d", scheme, server, port)
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		return nil, err
	}
	w := &wsWire{
		conn:   conn,
		lines:  make(chan string, 64),
		closed: make(chan struct{}),
	}
	go w.readLoop()
	return w, nil
}

func (w *wsWire) readLoop() {
	for {
		_, data, err := w.conn.ReadMessage()
		if err != nil {
			w.errMu.Lock()
			w.readErr = err
			w.errMu.Unlock()
			close(w.lines)
			return
		}
		for _, line := range strings.Split(string(data), "\r\n") {
			if line == "" {
				continue
			}
			select {
			case w.lines <- line:
			case <-w.closed:
				return
			}
		}
	}
}

func (w *wsWire) readLine(deadline time.Time) (string, error) {
	timer := time.NewTimer(time.Until(deadline))
	defer timer.Stop()

	select {
	case line, ok := <-w.lines:
		if !ok {
			w.errMu.Lock()
			defer w.errMu.Unlock()
			return "", w.readErr
		}
		return line, nil
	case <-timer.C:
		return "", wsTimeoutError{}
	}
}

// writeLine serializes writers; gorilla allows at most one concurrent
// writer per connection.
func (w *wsWire) writeLine(line string) error {
	w.writeMu.Lock()
	defer w.writeMu.Unlock()
	return w.conn.WriteMessage(websocket.TextMessage, []byte(line))
}

func (w *wsWire) close() error {
	select {
	case <-w.closed:
	default:
		close(w.closed)
	}
	return w.conn.Close()
}
