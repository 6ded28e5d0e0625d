package chat

import (
	"errors"
	"log/slog"

	"gotwitcher/internal/app/adapters/metrics"
	proto "gotwitcher/internal/app/domain/irc"
)

var ErrNoChannel = errors.New("no channel set")

// sendCommand queues the line for the out connection on the event
// loop. Queueing keeps senders thread safe: the actual write happens
// on the reactor goroutine.
func (c *Client) sendCommand(raw string) {
	c.reactor.ExecuteDelayed(func() {
		if err := c.outConn.SendLine(raw); err != nil {
			c.log.Warn("failed to send command", slog.String("error", err.Error()))
		}
	})
}

// SendMessage sends a chat message to the current channel. Safe to
// call from any goroutine while the client runs in ProcessForever.
func (c *Client) SendMessage(text string) error {
	target := c.Target()
	if target == "" {
		return ErrNoChannel
	}
	c.Privmsg(target, text)
	metrics.MessagesSent.WithLabelValues(c.Channel()).Inc()
	return nil
}

// SendAction sends a "/me" action to the current channel.
func (c *Client) SendAction(text string) error {
	target := c.Target()
	if target == "" {
		return ErrNoChannel
	}
	c.Action(target, text)
	metrics.MessagesSent.WithLabelValues(c.Channel()).Inc()
	return nil
}

// Privmsg sends a message to an arbitrary target.
func (c *Client) Privmsg(target, text string) {
	c.sendCommand(proto.Privmsg(target, text))
}

// Notice sends a notice to the given target.
func (c *Client) Notice(target, text string) {
	c.sendCommand(proto.Notice(target, text))
}

// Action sends a CTCP action to the given target.
func (c *Client) Action(target, text string) {
	c.sendCommand(proto.Action(target, text))
}

// Join enters another channel on the existing connections.
func (c *Client) Join(channel string) {
	c.sendCommand(proto.Join(channel))
}

// Part leaves the given channel.
func (c *Client) Part(channel string) {
	c.sendCommand(proto.Part(channel))
}

// Mode queries or changes the modes of a channel or user; an empty
// modes string queries.
func (c *Client) Mode(target, modes string) {
	c.sendCommand(proto.Mode(target, modes))
}

// Topic queries or sets the channel topic; an empty topic queries.
func (c *Client) Topic(channel, topic string) {
	c.sendCommand(proto.Topic(channel, topic))
}

// Whois asks the server about the given nickname.
func (c *Client) Whois(nickname string) {
	c.sendCommand(proto.Whois(nickname))
}

// Who lists the visible users matching the target.
func (c *Client) Who(target string) {
	c.sendCommand(proto.Who(target))
}

// Invite invites the nickname into the channel.
func (c *Client) Invite(nickname, channel string) {
	c.sendCommand(proto.Invite(nickname, channel))
}

// Kick removes the nickname from the channel.
func (c *Client) Kick(channel, nickname, reason string) {
	c.sendCommand(proto.Kick(channel, nickname, reason))
}

// Ping sends a keepalive probe to the server.
func (c *Client) Ping(target string) {
	c.sendCommand(proto.Ping(target))
}

// SendRaw queues a raw protocol line for the out connection.
func (c *Client) SendRaw(line string) {
	c.sendCommand(line + "\r\n")
}
