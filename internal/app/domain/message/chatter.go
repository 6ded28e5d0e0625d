package message

import "strings"

// Chatter is the source of a chat event, derived from a raw
// "nick!user@host" origin. It is a value type, constructed fresh per
// event. Missing components stay empty.
type Chatter struct {
	Full     string
	Nickname string
	User     string
	Host     string
}

// NewChatter splits a raw origin string into its components. An origin
// without "!" or "@" (e.g. a plain server name) leaves User and Host
// empty and uses the whole string as nickname.
func NewChatter(source string) Chatter {
	c := Chatter{Full: source}

	rest := source
	if idx := strings.IndexByte(rest, '!'); idx != -1 {
		c.Nickname = rest[:idx]
		rest = rest[idx+1:]
	} else if idx := strings.IndexByte(rest, '@'); idx == -1 {
		c.Nickname = rest
		return c
	}

	if idx := strings.IndexByte(rest, '@'); idx != -1 {
		c.User = rest[:idx]
		c.Host = rest[idx+1:]
		if c.Nickname == "" {
			c.Nickname = c.User
		}
	} else {
		c.User = rest
	}
	return c
}

// Userhost returns the "user@host" part of the origin.
func (c Chatter) Userhost() string {
	if c.Host == "" {
		return c.User
	}
	return c.User + "@" + c.Host
}

func (c Chatter) String() string {
	return c.Full
}
