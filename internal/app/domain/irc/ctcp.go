package irc

import "strings"

const ctcpDelimiter = "\x01"

// ctcpChunk is one segment of a dequoted message body. Tagged chunks
// carry the CTCP command (e.g. "ACTION") and its payload; plain
// chunks carry untagged text.
type ctcpChunk struct {
	Tagged  bool
	Command string
	Payload string
	Text    string
}

// dequoteCTCP splits a message body on \x01 delimiters into ordered
// chunks. Text between delimiter pairs becomes a tagged chunk whose
// command is the first space-separated token; text outside them stays
// plain. An unbalanced trailing delimiter closes at end of line.
func dequoteCTCP(body string) []ctcpChunk {
	if !strings.Contains(body, ctcpDelimiter) {
		return []ctcpChunk{{Text: body}}
	}

	var chunks []ctcpChunk
	parts := strings.Split(body, ctcpDelimiter)
	for i, part := range parts {
		if part == "" {
			continue
		}
		if i%2 == 1 {
			cmd, payload, _ := strings.Cut(part, " ")
			chunks = append(chunks, ctcpChunk{Tagged: true, Command: cmd, Payload: payload})
		} else {
			chunks = append(chunks, ctcpChunk{Text: part})
		}
	}
	return chunks
}
