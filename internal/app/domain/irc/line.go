// Package irc implements the wire codec for the IRC-derivative chat
// protocol: line parsing with IRCv3 tags, numeric reply translation,
// CTCP dequoting and outbound command formatting.
package irc

import (
	"errors"
	"strings"

	"gotwitcher/internal/app/domain/message"
)

// ErrBadLine is returned for input that does not match the base
// grammar "[@tags ][:prefix ]<command>[ arguments][ :trailing]".
var ErrBadLine = errors.New("line does not match the IRC grammar")

// Line is one parsed wire line before event resolution.
type Line struct {
	Raw     string
	Tags    []message.Tag
	Prefix  string
	Command string
	Args    []string
}

// ParseLine splits a raw line (without the trailing CRLF) into its
// tag block, prefix, command and arguments. The command is lowercased;
// numeric replies are left untouched here. Tagless input yields an
// empty tag slice, never an error.
func ParseLine(raw string) (*Line, error) {
	l := &Line{Raw: raw, Tags: []message.Tag{}}
	rest := strings.TrimRight(raw, "\r\n")

	if strings.HasPrefix(rest, "@") {
		idx := strings.IndexByte(rest, ' ')
		if idx == -1 {
			return nil, ErrBadLine
		}
		l.Tags = message.ParseTags(rest[1:idx])
		rest = strings.TrimLeft(rest[idx+1:], " ")
	}

	if strings.HasPrefix(rest, ":") {
		idx := strings.IndexByte(rest, ' ')
		if idx == -1 {
			return nil, ErrBadLine
		}
		l.Prefix = rest[1:idx]
		rest = strings.TrimLeft(rest[idx+1:], " ")
	}

	if rest == "" {
		return nil, ErrBadLine
	}

	if idx := strings.IndexByte(rest, ' '); idx != -1 {
		l.Command = strings.ToLower(rest[:idx])
		l.Args = parseArgs(rest[idx+1:])
	} else {
		l.Command = strings.ToLower(rest)
	}
	return l, nil
}

// parseArgs splits the argument string on whitespace; a token
// introduced by " :" captures the rest of the line verbatim.
func parseArgs(s string) []string {
	var trailing string
	hasTrailing := false

	if strings.HasPrefix(s, ":") {
		trailing = s[1:]
		hasTrailing = true
		s = ""
	} else if idx := strings.Index(s, " :"); idx != -1 {
		trailing = s[idx+2:]
		hasTrailing = true
		s = s[:idx]
	}

	args := strings.Fields(s)
	if hasTrailing {
		args = append(args, trailing)
	}
	return args
}

// IsChannel reports whether target names a channel rather than a user.
func IsChannel(target string) bool {
	return len(target) > 1 && (target[0] == '#' || target[0] == '&')
}
